package inventory

import (
	"encoding/csv"
	"io"
	"strconv"

	"stock-reconciler/feature/inventory/models"
)

// Output column headings. These are the downstream consumers' interchange
// format, carried over verbatim from the exporting systems.
var (
	detailHeader = []string{
		"NMU", "desc_nmu", "Stato", "serial_number_tim", "serial_number_forn",
		"status", "cod_terr_sap", "status_regman", "Data di Registrazione",
	}
	summaryHeader = []string{
		"NMU", "Provincia", "Descrizione", "Qtà Disponibile(SAP)", "Qtà Digigem",
		"Delta(Digigem - SAP)", "NAV.Giacenza", "VIAGGIANTE (NAV - SAP)",
	}
)

const exportDateLayout = "2006-01-02"

// WriteDetailCSV writes the detail view as CSV.
func WriteDetailCSV(w io.Writer, rows []models.DetailRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(detailHeader); err != nil {
		return err
	}
	for _, r := range rows {
		date := ""
		if r.RegistrationDate != nil {
			date = r.RegistrationDate.Format(exportDateLayout)
		}
		record := []string{
			r.MaterialCode, r.Description, r.Status, r.SerialPrimary,
			r.SerialSecondary, r.StatusRaw, r.WarehouseCode,
			r.RegionalStatusCode, date,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSummaryCSV writes the variance summary as CSV.
func WriteSummaryCSV(w io.Writer, rows []models.SummaryRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(summaryHeader); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			r.MaterialCode,
			r.Province,
			r.Description,
			strconv.Itoa(r.StockQty),
			strconv.Itoa(r.UnitCount),
			strconv.Itoa(r.DeltaUnits),
			strconv.Itoa(r.LedgerQty),
			strconv.Itoa(r.DeltaTransit),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
