package importer

import "regexp"

// ColumnSpec carries the user-declared column identifiers for the semantic
// fields of a statement row. For header files these are header names; for
// positional files they are zero-based column indices.
type ColumnSpec struct {
	Date        string
	Description string
	Amount      string
	Notes       string
	Type        string
}

// Pattern tables for guessing a column when the declared identifier does not
// match anything in the file. Ordered most common first; the first header
// matching any pattern wins.
var (
	datePatterns = compilePatterns(
		`date`, `datum`, `fecha`, `transaction\s*date`,
	)
	descPatterns = compilePatterns(
		`description`, `^name`, `omschrijving`, `counter.?party`, `merchant`, `narrative`,
	)
	amountPatterns = compilePatterns(
		`amount`, `bedrag`, `importe`, `eur`, `value`,
	)
	notesPatterns = compilePatterns(
		`notes?`, `notifications?`, `reference`, `kenmerk`, `memo`,
	)
	typePatterns = compilePatterns(
		`debit`, `credit`, `transaction\s*type`, `af/?bij`, `mutatie`, `dc`,
	)
)

func compilePatterns(exprs ...string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(exprs))
	for i, expr := range exprs {
		patterns[i] = regexp.MustCompile(`(?i)` + expr)
	}
	return patterns
}

// ResolveColumns returns the column mapping to use for an import. A declared
// identifier that already yields a non-empty value in the first record is
// kept unchanged; otherwise the file's headers are scanned against the
// per-field pattern tables and the first match substitutes it. A field with
// no declared identifier and no match keeps its empty identifier, so every
// row resolves it to the empty string. Notes and type are only guessed when
// the caller declared an identifier for them.
//
// Resolution runs once per import, not per row, and only applies to header
// files; positional files address columns by index directly.
func ResolveColumns(file *File, declared ColumnSpec) ColumnSpec {
	if len(file.Records) == 0 || file.Records[0].fields == nil {
		return declared
	}

	first := file.Records[0]
	resolved := declared

	if first.Value(declared.Date) == "" {
		if g := guessColumn(file.Headers, datePatterns); g != "" {
			resolved.Date = g
		}
	}
	if first.Value(declared.Description) == "" {
		if g := guessColumn(file.Headers, descPatterns); g != "" {
			resolved.Description = g
		}
	}
	if first.Value(declared.Amount) == "" {
		if g := guessColumn(file.Headers, amountPatterns); g != "" {
			resolved.Amount = g
		}
	}
	if declared.Notes != "" && first.Value(declared.Notes) == "" {
		if g := guessColumn(file.Headers, notesPatterns); g != "" {
			resolved.Notes = g
		}
	}
	if declared.Type != "" && first.Value(declared.Type) == "" {
		if g := guessColumn(file.Headers, typePatterns); g != "" {
			resolved.Type = g
		}
	}

	return resolved
}

func guessColumn(headers []string, patterns []*regexp.Regexp) string {
	for _, p := range patterns {
		for _, h := range headers {
			if p.MatchString(h) {
				return h
			}
		}
	}
	return ""
}
