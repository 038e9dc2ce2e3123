package status

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"stock-reconciler/core/utils"
)

// DefaultCode is the directory key used when a label contains no digits.
const DefaultCode = "0"

// Directory column headings.
const (
	colCode = "Codice"
	colName = "Nome"
)

// Directory maps extracted digit codes to supplier display names.
type Directory map[string]string

// LoadDirectory reads the semicolon-delimited supplier directory. Entries
// are keyed by the first digit run of their code field, the same way raw
// status labels are keyed at resolution time.
//
// Two entries can normalize to the same digit code; the last one on load
// order wins, and the collision is logged so it is visible at load time
// rather than silently order-dependent.
func LoadDirectory(r io.Reader, log *zap.Logger) (Directory, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("directory: read header: %w", err)
	}
	codeIdx, nameIdx := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case colCode:
			codeIdx = i
		case colName:
			nameIdx = i
		}
	}
	if codeIdx < 0 || nameIdx < 0 {
		return nil, fmt.Errorf("directory: header lacks %q/%q columns", colCode, colName)
	}

	dir := make(Directory)
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		if codeIdx >= len(row) || nameIdx >= len(row) {
			continue
		}
		rawCode := strings.TrimSpace(row[codeIdx])
		name := strings.TrimSpace(row[nameIdx])
		if rawCode == "" || name == "" {
			continue
		}
		code := utils.FirstDigits(rawCode, DefaultCode)
		if prev, ok := dir[code]; ok && prev != name {
			log.Warn("supplier directory code collision, keeping later entry",
				zap.String("code", code),
				zap.String("dropped", prev),
				zap.String("kept", name),
			)
		}
		dir[code] = name
	}
	return dir, nil
}
