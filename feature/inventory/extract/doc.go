// Package extract parses the warehouse stock extract: a UTF-16,
// tab-delimited dump where the warehouse is named by a group-header line
// and implied for every data line that follows it.
//
// The parser is a small explicit state machine: header lines set the
// carried warehouse, digit-keyed data lines read it, everything else is
// discarded. Data lines seen before any header have no context and are
// dropped. The quantity field position differs between extract revisions
// and is therefore part of Options rather than a constant.
package extract
