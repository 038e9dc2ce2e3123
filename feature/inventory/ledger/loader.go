package ledger

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"stock-reconciler/core/utils"
	"stock-reconciler/feature/inventory/models"
)

// SheetName is the worksheet the ledger export always lands on.
const SheetName = "Foglio1"

// Workbook column headings, as written by the exporting system.
const (
	colSerial       = "Nr. Seriale"
	colMovementType = "Tipo Movimento"
	colMovementSeq  = "Nr. Movimento"
	colRegDate      = "Data di Registrazione"
	colSubcontract  = "Subappaltatore"
	colCrewLeader   = "Cod. Risorsa Caposquadra"
	colCreatedAt    = "createdAt"
	colMaterial     = "Nr. Articolo"
	colWarehouse    = "Cod. Ubicazione"
	colQuantity     = "Quantità"
	colDescription  = "Descrizione Articolo D"
)

// ErrMissing indicates the ledger workbook is absent. Like the unit export,
// this is fatal for the whole run.
var ErrMissing = errors.New("ledger: workbook not found")

// dateLayouts covers the formats observed in exported registration and
// creation timestamps. Values matching none of them stay nil and rank last
// in the most-recent-wins ordering.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006",
	"01-02-06",
	"1/2/06 15:04",
}

func parseDate(raw string) *time.Time {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// columns maps heading names to positions, resolved once per workbook.
type columns map[string]int

func resolveColumns(header []string) columns {
	cols := make(columns, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	return cols
}

func (c columns) field(row []string, name string) string {
	i, ok := c[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// Load reads the ledger workbook and produces both shapes the pipeline
// needs from it: the raw movement entries (for the detail view, before
// deduplication) and the per-row stock observations (for the summary).
func Load(r io.Reader) ([]models.LedgerEntry, []models.LedgerStock, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("ledger: open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("ledger: read sheet %s: %w", SheetName, err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("ledger: sheet %s is empty", SheetName)
	}

	cols := resolveColumns(rows[0])
	if _, ok := cols[colSerial]; !ok {
		return nil, nil, fmt.Errorf("ledger: header lacks %q column", colSerial)
	}

	var entries []models.LedgerEntry
	var stock []models.LedgerStock
	for _, row := range rows[1:] {
		serial := cols.field(row, colSerial)
		if serial != "" {
			entries = append(entries, models.LedgerEntry{
				SerialPrimary:    serial,
				MovementType:     cols.field(row, colMovementType),
				MovementSeq:      utils.ParseInt(cols.field(row, colMovementSeq)),
				RegistrationDate: parseDate(cols.field(row, colRegDate)),
				Subcontractor:    cols.field(row, colSubcontract),
				CrewLeaderCode:   cols.field(row, colCrewLeader),
				CreatedAt:        parseDate(cols.field(row, colCreatedAt)),
			})
		}

		material := cols.field(row, colMaterial)
		warehouse := cols.field(row, colWarehouse)
		if material == "" || warehouse == "" {
			continue
		}
		stock = append(stock, models.LedgerStock{
			MaterialCode:  material,
			WarehouseCode: warehouse,
			Description:   cols.field(row, colDescription),
			Quantity:      utils.ParseQuantity(cols.field(row, colQuantity)),
		})
	}

	return entries, stock, nil
}
