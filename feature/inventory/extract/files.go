package extract

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"stock-reconciler/feature/inventory/models"
)

// ErrNoHeader indicates an extract set contained no group-header line at
// all, so no data line could ever be attributed to a warehouse.
var ErrNoHeader = errors.New("extract: no group header found")

// Opener yields the decoded contents of one extract by name. The source
// package provides implementations for local folders and object storage.
type Opener interface {
	Open(name string) (io.ReadCloser, error)
}

// utf16Reader wraps r with a UTF-16 little-endian decoder. The stock
// extracts are exported 16-bit encoded; a BOM overrides the endianness.
func utf16Reader(r io.Reader) io.Reader {
	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	return transform.NewReader(r, enc.NewDecoder())
}

// ParseFiles parses the named extracts in order through a single Parser, so
// the warehouse context concatenates across files.
//
// A file that cannot be opened or decoded aborts the scan only when no
// group-header has ever been reached; after that, partial results are kept
// and the remaining files are still read (best effort).
func ParseFiles(opener Opener, names []string, opts Options) ([]models.StockLine, Stats, error) {
	p := New(opts)
	var lines []models.StockLine

	for _, name := range names {
		rc, err := opener.Open(name)
		if err != nil {
			if !p.HeaderSeen() {
				return nil, p.Stats(), fmt.Errorf("open stock extract %s: %w", name, err)
			}
			continue
		}

		lines, err = p.Parse(utf16Reader(rc), lines)
		rc.Close()
		if err != nil {
			if !p.HeaderSeen() {
				return nil, p.Stats(), fmt.Errorf("read stock extract %s: %w", name, err)
			}
			continue
		}
	}

	if len(names) > 0 && !p.HeaderSeen() {
		return nil, p.Stats(), ErrNoHeader
	}
	return lines, p.Stats(), nil
}
