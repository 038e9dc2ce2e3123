// Package status assigns each unit its lifecycle label.
//
// Classification is a fixed ordered list of predicate/value pairs over the
// unit's deduplicated ledger entry; the first true condition wins and later
// ones are ignored even when also true. The raw label is then optionally
// humanized through the supplier directory, keyed by the label's leading
// digit run. A missing directory degrades to raw labels, never an error.
package status
