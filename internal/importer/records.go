// Package importer implements the CSV bank-statement import pipeline:
// parsing heterogeneous bank export formats, resolving column mappings,
// normalizing amounts and dates, classifying rows into categories,
// provisioning categories and payees on first use, and deduplicating against
// already-imported transactions.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/gocarina/gocsv"
)

// gocsv routes reader construction through package-global state, so the
// configure/parse/reset sequence must not interleave across concurrent
// imports.
var gocsvMu sync.Mutex

// Record is one parsed CSV row. Header files carry a field map keyed by
// header name; positional files carry raw cells addressed by index.
type Record struct {
	fields map[string]string
	cells  []string
}

// Value resolves a column identifier against the record. For positional
// records the identifier is the zero-based column index. For header records
// the lookup is exact first, then case-insensitive. Unknown identifiers
// resolve to the empty string.
func (r Record) Value(column string) string {
	if column == "" {
		return ""
	}
	if r.fields == nil {
		idx, err := strconv.Atoi(column)
		if err != nil || idx < 0 || idx >= len(r.cells) {
			return ""
		}
		return strings.TrimSpace(r.cells[idx])
	}
	if v, ok := r.fields[column]; ok {
		return strings.TrimSpace(v)
	}
	for k, v := range r.fields {
		if strings.EqualFold(k, column) {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// File is the parsed content of one uploaded statement.
type File struct {
	// Headers preserves the header row order; empty for positional files.
	Headers []string
	Records []Record
}

// ParseFile reads an uploaded statement into records. Files with a header are
// unmarshaled by header name via gocsv; positional files are read as raw
// cells. Fully empty lines are dropped either way.
func ParseFile(content string, delimiter rune, hasHeader bool) (*File, error) {
	if delimiter == 0 {
		delimiter = ';'
	}

	if !hasHeader {
		return parsePositional(content, delimiter)
	}

	headers, err := readHeaderRow(content, delimiter)
	if err != nil {
		return nil, err
	}

	gocsvMu.Lock()
	defer gocsvMu.Unlock()
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.Comma = delimiter
		r.LazyQuotes = true
		r.TrimLeadingSpace = true
		r.FieldsPerRecord = -1
		return r
	})
	defer gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		return csv.NewReader(in)
	})

	maps, err := gocsv.CSVToMaps(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("error parsing CSV: %w", err)
	}

	file := &File{Headers: headers, Records: make([]Record, 0, len(maps))}
	for _, m := range maps {
		if isEmptyRow(m) {
			continue
		}
		file.Records = append(file.Records, Record{fields: m})
	}
	return file, nil
}

func parsePositional(content string, delimiter rune) (*File, error) {
	r := csv.NewReader(strings.NewReader(content))
	r.Comma = delimiter
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error parsing CSV: %w", err)
	}

	file := &File{Records: make([]Record, 0, len(rows))}
	for _, cells := range rows {
		if len(cells) == 0 || (len(cells) == 1 && strings.TrimSpace(cells[0]) == "") {
			continue
		}
		file.Records = append(file.Records, Record{cells: cells})
	}
	return file, nil
}

func readHeaderRow(content string, delimiter rune) ([]string, error) {
	r := csv.NewReader(strings.NewReader(content))
	r.Comma = delimiter
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	headers, err := r.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading header row: %w", err)
	}
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}
	return headers, nil
}

func isEmptyRow(m map[string]string) bool {
	for _, v := range m {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
