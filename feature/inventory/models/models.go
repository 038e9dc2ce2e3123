package models

import "time"

// UnitRecord is one physical unit from the per-unit field export.
// Records are immutable once loaded; one record per unit.
type UnitRecord struct {
	// MaterialCode is the stable stock-keeping identifier (NMU).
	MaterialCode string `json:"material_code"`

	// Description is the material description from the export, if present.
	Description string `json:"description"`

	// WarehouseCode is the source-local site code (may be empty).
	WarehouseCode string `json:"warehouse_code"`

	// SerialPrimary is the primary serial number, the join key to the ledger.
	SerialPrimary string `json:"serial_primary"`

	// SerialSecondary is the supplier-side serial number, if present.
	SerialSecondary string `json:"serial_secondary"`

	// StatusRaw is the export's own status field, carried through untouched.
	StatusRaw string `json:"status_raw"`

	// RegionalStatusCode is the regional management status code, if present.
	RegionalStatusCode string `json:"regional_status_code"`
}

// LedgerEntry is one movement transaction from the ledger workbook.
// Multiple entries may share a serial number before deduplication.
type LedgerEntry struct {
	// SerialPrimary matches UnitRecord.SerialPrimary.
	SerialPrimary string `json:"serial_primary"`

	// MovementType is the transaction type (e.g. "Carico", "Rientro").
	MovementType string `json:"movement_type"`

	// MovementSeq is the movement sequence number, the dedupe tie-break.
	MovementSeq int `json:"movement_seq"`

	// RegistrationDate is nil when the source value could not be parsed;
	// nil dates rank last in the most-recent-wins ordering.
	RegistrationDate *time.Time `json:"registration_date"`

	// Subcontractor is the subcontractor name, if any.
	Subcontractor string `json:"subcontractor"`

	// CrewLeaderCode is the crew leader resource code, if any.
	CrewLeaderCode string `json:"crew_leader_code"`

	// CreatedAt is nil when the source value could not be parsed.
	CreatedAt *time.Time `json:"created_at"`
}

// StockLine is one (material, warehouse, quantity) observation recovered
// from the warehouse stock extract by the stateful parser.
type StockLine struct {
	// MaterialCode is the numeric material identifier.
	MaterialCode string `json:"material_code"`

	// WarehouseCode is inherited from the nearest preceding header line.
	WarehouseCode string `json:"warehouse_code"`

	// Description is the material description field.
	Description string `json:"description"`

	// QuantityRaw is the quantity field as found in the extract.
	QuantityRaw string `json:"quantity_raw"`

	// Quantity is QuantityRaw with the locale decimal comma normalized
	// and parsed; 0 when unparsable.
	Quantity float64 `json:"quantity"`
}

// LedgerStock is one aggregated (material, warehouse) stock observation
// from the ledger workbook, the third contribution to the summary.
type LedgerStock struct {
	MaterialCode  string  `json:"material_code"`
	WarehouseCode string  `json:"warehouse_code"`
	Description   string  `json:"description"`
	Quantity      float64 `json:"quantity"`
}

// DetailRow is one row of the per-serial detail view: a UnitRecord enriched
// with its resolved status and, when the ledger matched, the registration date.
type DetailRow struct {
	MaterialCode       string     `json:"material_code"`
	Description        string     `json:"description"`
	Status             string     `json:"status"`
	SerialPrimary      string     `json:"serial_primary"`
	SerialSecondary    string     `json:"serial_secondary"`
	StatusRaw          string     `json:"status_raw"`
	WarehouseCode      string     `json:"warehouse_code"`
	RegionalStatusCode string     `json:"regional_status_code"`
	RegistrationDate   *time.Time `json:"registration_date"`
}

// SummaryRow is one row of the per-(material, province) variance summary.
// Quantities default to 0 when a source had no contribution for the key.
type SummaryRow struct {
	// MaterialCode is the material identifier (NMU).
	MaterialCode string `json:"material_code"`

	// Province is the normalized warehouse code.
	Province string `json:"province"`

	// Description is resolved stock → unit → ledger, else empty.
	Description string `json:"description"`

	// StockQty is the available quantity from the stock extract.
	StockQty int `json:"stock_qty"`

	// UnitCount is the number of unit records from the field export.
	UnitCount int `json:"unit_count"`

	// DeltaUnits is UnitCount - StockQty. Negative values are meaningful.
	DeltaUnits int `json:"delta_units"`

	// LedgerQty is the aggregated quantity from the ledger workbook.
	LedgerQty int `json:"ledger_qty"`

	// DeltaTransit is LedgerQty - StockQty (units in transit/unaccounted).
	DeltaTransit int `json:"delta_transit"`
}

// Result bundles the two views produced by one pipeline run.
type Result struct {
	// Detail is the per-serial ledger view.
	Detail []DetailRow `json:"detail"`

	// Summary is the per-(material, province) variance view.
	Summary []SummaryRow `json:"summary"`
}

// RunInfo describes a completed pipeline run for the status endpoint.
type RunInfo struct {
	// Fingerprint identifies the input file set of the run.
	Fingerprint string `json:"fingerprint"`

	// FinishedAt is when the run completed.
	FinishedAt time.Time `json:"finished_at"`

	// DetailRows and SummaryRows are the output table sizes.
	DetailRows  int `json:"detail_rows"`
	SummaryRows int `json:"summary_rows"`

	// Cached is true when the result was served from the run cache.
	Cached bool `json:"cached"`
}
