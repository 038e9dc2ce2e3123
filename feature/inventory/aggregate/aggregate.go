package aggregate

import (
	"sort"
	"strings"

	"stock-reconciler/feature/inventory/models"
)

// DefaultProvinceMap is the static normalization from raw site codes to
// canonical province codes. Unmapped codes pass through unchanged.
var DefaultProvinceMap = map[string]string{
	"S014": "CT",
	"S016": "SR",
	"S017": "RG",
	"S230": "ME",
}

// key identifies one summary row: material plus normalized warehouse.
type key struct {
	material string
	province string
}

// contribution is one source's aggregate for a key.
type contribution struct {
	qty  float64
	desc string
}

// Aggregator computes the per-(material, province) variance summary from
// the three independent sources.
type Aggregator struct {
	provinces map[string]string
}

// New creates an Aggregator with the given site-to-province mapping.
// An empty mapping uses DefaultProvinceMap.
func New(provinces map[string]string) *Aggregator {
	if len(provinces) == 0 {
		provinces = DefaultProvinceMap
	}
	return &Aggregator{provinces: provinces}
}

// normalize maps a raw warehouse code onto its canonical province code.
// Normalization happens before grouping so that multiple raw codes for the
// same physical site merge into one summary row.
func (a *Aggregator) normalize(code string) string {
	code = strings.TrimSpace(code)
	if p, ok := a.provinces[code]; ok {
		return p
	}
	return code
}

// canonMaterial strips leading zeros from digit-only material codes so the
// numerically keyed stock extract joins the string-keyed unit export.
func canonMaterial(code string) string {
	code = strings.TrimSpace(code)
	trimmed := strings.TrimLeft(code, "0")
	if trimmed == "" {
		if code == "" {
			return ""
		}
		return "0"
	}
	for _, r := range trimmed {
		if r < '0' || r > '9' {
			return code
		}
	}
	return trimmed
}

// Summarize outer-joins the three keyed aggregates and derives the variance
// columns. Missing contributions default to 0; both deltas are plain
// subtraction with no clamping, so negative values come through as-is.
func (a *Aggregator) Summarize(
	unitRecs []models.UnitRecord,
	stockLines []models.StockLine,
	ledgerStock []models.LedgerStock,
) []models.SummaryRow {
	unitCounts := make(map[key]int)
	unitDescs := make(map[string]string) // per material, first seen
	for _, rec := range unitRecs {
		k := key{material: canonMaterial(rec.MaterialCode), province: a.normalize(rec.WarehouseCode)}
		if k.material == "" {
			continue
		}
		unitCounts[k]++
		if rec.Description != "" {
			if _, ok := unitDescs[k.material]; !ok {
				unitDescs[k.material] = rec.Description
			}
		}
	}

	stockAgg := make(map[key]contribution)
	for _, line := range stockLines {
		k := key{material: canonMaterial(line.MaterialCode), province: a.normalize(line.WarehouseCode)}
		c := stockAgg[k]
		c.qty += line.Quantity
		if c.desc == "" {
			c.desc = line.Description
		}
		stockAgg[k] = c
	}

	ledgerAgg := make(map[key]contribution)
	for _, obs := range ledgerStock {
		k := key{material: canonMaterial(obs.MaterialCode), province: a.normalize(obs.WarehouseCode)}
		c := ledgerAgg[k]
		c.qty += obs.Quantity
		if c.desc == "" {
			c.desc = obs.Description
		}
		ledgerAgg[k] = c
	}

	union := make(map[key]struct{})
	for k := range unitCounts {
		union[k] = struct{}{}
	}
	for k := range stockAgg {
		union[k] = struct{}{}
	}
	for k := range ledgerAgg {
		union[k] = struct{}{}
	}

	rows := make([]models.SummaryRow, 0, len(union))
	for k := range union {
		stock := stockAgg[k]
		ledg := ledgerAgg[k]
		count := unitCounts[k]

		desc := stock.desc
		if desc == "" {
			desc = unitDescs[k.material]
		}
		if desc == "" {
			desc = ledg.desc
		}

		stockQty := int(stock.qty)
		ledgerQty := int(ledg.qty)
		rows = append(rows, models.SummaryRow{
			MaterialCode: k.material,
			Province:     k.province,
			Description:  desc,
			StockQty:     stockQty,
			UnitCount:    count,
			DeltaUnits:   count - stockQty,
			LedgerQty:    ledgerQty,
			DeltaTransit: ledgerQty - stockQty,
		})
	}

	// Deterministic order keeps identical inputs yielding identical tables.
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].MaterialCode != rows[j].MaterialCode {
			return materialLess(rows[i].MaterialCode, rows[j].MaterialCode)
		}
		return rows[i].Province < rows[j].Province
	})
	return rows
}

// materialLess orders digit-only material codes numerically and everything
// else lexically, digits first.
func materialLess(a, b string) bool {
	da, db := isAllDigits(a), isAllDigits(b)
	if da && db {
		if len(a) != len(b) {
			return len(a) < len(b)
		}
		return a < b
	}
	if da != db {
		return da
	}
	return a < b
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
