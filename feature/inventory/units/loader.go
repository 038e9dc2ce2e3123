package units

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"stock-reconciler/feature/inventory/extract"
	"stock-reconciler/feature/inventory/models"
)

// Column names as they appear in the export's header row.
const (
	colMaterial      = "cod_nmu"
	colDescription   = "desc_nmu"
	colSerialPrimary = "serial_number_tim"
	colSerialSecond  = "serial_number_forn"
	colStatus        = "status"
	colWarehouse     = "cod_terr_sap"
	colRegionStatus  = "status_regman"
)

// ErrNoFiles indicates the unit export is entirely absent. The pipeline
// treats this as fatal: without unit records neither view can be built.
var ErrNoFiles = errors.New("units: no export files found")

// schema maps the columns a file actually has to their positions.
// Files are concatenated by union of columns, so every column except the
// material code is optional and resolved once per file here, not checked
// again downstream.
type schema struct {
	material      int
	description   int
	serialPrimary int
	serialSecond  int
	status        int
	warehouse     int
	regionStatus  int
}

func resolveSchema(header []string) (schema, error) {
	s := schema{
		material:      -1,
		description:   -1,
		serialPrimary: -1,
		serialSecond:  -1,
		status:        -1,
		warehouse:     -1,
		regionStatus:  -1,
	}
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case colMaterial:
			s.material = i
		case colDescription:
			s.description = i
		case colSerialPrimary:
			s.serialPrimary = i
		case colSerialSecond:
			s.serialSecond = i
		case colStatus:
			s.status = i
		case colWarehouse:
			s.warehouse = i
		case colRegionStatus:
			s.regionStatus = i
		}
	}
	if s.material < 0 {
		return s, fmt.Errorf("units: header lacks %q column", colMaterial)
	}
	return s, nil
}

func (s schema) field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func (s schema) record(row []string) models.UnitRecord {
	return models.UnitRecord{
		MaterialCode:       s.field(row, s.material),
		Description:        s.field(row, s.description),
		SerialPrimary:      s.field(row, s.serialPrimary),
		SerialSecondary:    s.field(row, s.serialSecond),
		StatusRaw:          s.field(row, s.status),
		WarehouseCode:      s.field(row, s.warehouse),
		RegionalStatusCode: s.field(row, s.regionStatus),
	}
}

// Load reads one unit export. The export is Latin-1 encoded and
// comma-delimited with a header row. Malformed rows are dropped silently;
// rows without a material code are kept only if they carry a serial, since
// they can still join the ledger.
func Load(r io.Reader) ([]models.UnitRecord, error) {
	decoded := transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	cr := csv.NewReader(decoded)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("units: read header: %w", err)
	}
	s, err := resolveSchema(header)
	if err != nil {
		return nil, err
	}

	var records []models.UnitRecord
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed row: drop and keep going.
			continue
		}
		rec := s.record(row)
		if rec.MaterialCode == "" && rec.SerialPrimary == "" {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// LoadFiles concatenates every named export through Load. Files whose
// header cannot be resolved are skipped; an empty file set is ErrNoFiles.
func LoadFiles(opener extract.Opener, names []string) ([]models.UnitRecord, error) {
	if len(names) == 0 {
		return nil, ErrNoFiles
	}

	var all []models.UnitRecord
	var lastErr error
	loaded := 0
	for _, name := range names {
		rc, err := opener.Open(name)
		if err != nil {
			lastErr = fmt.Errorf("units: open %s: %w", name, err)
			continue
		}
		records, err := Load(rc)
		rc.Close()
		if err != nil {
			lastErr = err
			continue
		}
		all = append(all, records...)
		loaded++
	}
	if loaded == 0 {
		if lastErr != nil {
			return nil, lastErr
		}
		return nil, ErrNoFiles
	}
	return all, nil
}
