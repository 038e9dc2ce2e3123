package extract

import (
	"bufio"
	"io"
	"strings"

	"stock-reconciler/core/utils"
	"stock-reconciler/feature/inventory/models"
)

// Options controls how the warehouse stock extract is parsed.
// The quantity field position varies across extract revisions, so it is
// configuration, not a literal.
type Options struct {
	// HeaderMarker is the literal first field of a group-header line.
	HeaderMarker string

	// QuantityField is the zero-based field index holding the available
	// quantity on a data line. Observed revisions use 6 or 7.
	QuantityField int
}

// DefaultOptions matches the most recent observed extract revision.
func DefaultOptions() Options {
	return Options{
		HeaderMarker:  "IMSU",
		QuantityField: 6,
	}
}

// Stats counts what the parser did with the lines it saw.
type Stats struct {
	Headers      int
	DataLines    int
	Skipped      int
	DroppedNoCtx int
}

// Parser recovers StockLine records from the semi-structured stock extract.
//
// The extract has no per-line warehouse key: a group-header line names the
// warehouse and every following data line belongs to it until the next
// header. The parser models that as a single piece of carried state,
// mutated only by header lines and read by data lines.
type Parser struct {
	opts Options

	warehouse string
	seenHdr   bool
	stats     Stats
}

// New creates a Parser. Zero-valued options fall back to DefaultOptions.
func New(opts Options) *Parser {
	if opts.HeaderMarker == "" {
		opts.HeaderMarker = DefaultOptions().HeaderMarker
	}
	if opts.QuantityField <= 0 {
		opts.QuantityField = DefaultOptions().QuantityField
	}
	return &Parser{opts: opts}
}

// HeaderSeen reports whether any group-header line has been consumed yet,
// across all files fed to this parser.
func (p *Parser) HeaderSeen() bool {
	return p.seenHdr
}

// Stats returns the running line statistics.
func (p *Parser) Stats() Stats {
	return p.stats
}

// ParseLine consumes one extract line. It returns the emitted StockLine and
// true for data lines; header lines mutate the carried warehouse and emit
// nothing; every other line is discarded.
func (p *Parser) ParseLine(line string) (models.StockLine, bool) {
	fields := splitFields(line)
	if len(fields) == 0 || fields[0] == "" {
		p.stats.Skipped++
		return models.StockLine{}, false
	}

	if fields[0] == p.opts.HeaderMarker {
		if len(fields) >= 2 {
			p.warehouse = fields[1]
			p.seenHdr = true
			p.stats.Headers++
			return models.StockLine{}, false
		}
		p.stats.Skipped++
		return models.StockLine{}, false
	}

	if isDigits(fields[0]) && len(fields) > p.opts.QuantityField {
		if !p.seenHdr {
			// Data before the first header has no warehouse context.
			p.stats.DroppedNoCtx++
			return models.StockLine{}, false
		}
		raw := fields[p.opts.QuantityField]
		p.stats.DataLines++
		return models.StockLine{
			MaterialCode:  fields[0],
			WarehouseCode: p.warehouse,
			Description:   fields[1],
			QuantityRaw:   raw,
			Quantity:      utils.ParseQuantity(raw),
		}, true
	}

	// Footers, separators, column headings: all dropped silently.
	p.stats.Skipped++
	return models.StockLine{}, false
}

// Parse consumes every line of one decoded extract and appends the emitted
// StockLines to dst. Warehouse context carries over from previously parsed
// files, matching the concatenated-sequence semantics of the extract set.
func (p *Parser) Parse(r io.Reader, dst []models.StockLine) ([]models.StockLine, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if line, ok := p.ParseLine(scanner.Text()); ok {
			dst = append(dst, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return dst, err
	}
	return dst, nil
}

// splitFields splits a raw extract line on runs of tabs and trims each
// field. Descriptions contain spaces, so only tabs delimit fields.
func splitFields(line string) []string {
	parts := strings.FieldsFunc(line, func(r rune) bool { return r == '\t' })
	fields := make([]string, 0, len(parts))
	for _, part := range parts {
		fields = append(fields, strings.TrimSpace(part))
	}
	// FieldsFunc swallows a leading tab run, which would shift a
	// tab-indented continuation line into looking like a record. Keep the
	// empty first field so those lines are skipped instead.
	if strings.HasPrefix(line, "\t") {
		fields = append([]string{""}, fields...)
	}
	return fields
}

// isDigits reports whether s is non-empty and entirely ASCII digits.
func isDigits(s string) bool {
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
