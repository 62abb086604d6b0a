// Package rentroll imports tenant rent rolls and unit mixes from XLSX and
// CSV files into the generic records the engine's record adapters accept.
// Column headers are normalized to camelCase so common spreadsheet headings
// ("Tenant Name", "Annual Rent", "SF") line up with the adapter alias tables.
package rentroll

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// Options configures the rent roll reader.
type Options struct {
	SheetIndex int    // XLSX only; default 0
	SheetName  string // XLSX only; if set, overrides SheetIndex
	SkipRows   int    // extra rows above the header row
}

// Read parses a rent roll file into one record per data row, keyed by the
// normalized header. Cell values stay strings; the record adapters coerce
// numerics and dates downstream.
func Read(path string, opts Options) ([]map[string]any, error) {
	var rows [][]string
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		rows, err = readXLSX(path, opts)
	case ".csv":
		rows, err = readCSV(path, opts)
	default:
		return nil, eris.Errorf("rentroll: %s: unsupported extension (want .xlsx or .csv)", path)
	}
	if err != nil {
		return nil, err
	}

	return recordsFrom(rows), nil
}

func readXLSX(path string, opts Options) ([][]string, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "rentroll: open %s", path)
	}

	sheet, err := getSheet(f, opts)
	if err != nil {
		return nil, err
	}

	var rows [][]string
	for i, row := range sheet.Rows {
		if i < opts.SkipRows {
			continue
		}
		cells := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = cell.String()
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

func getSheet(f *xlsx.File, opts Options) (*xlsx.Sheet, error) {
	if opts.SheetName != "" {
		sheet, ok := f.Sheet[opts.SheetName]
		if !ok {
			return nil, eris.Errorf("rentroll: sheet %q not found", opts.SheetName)
		}
		return sheet, nil
	}

	if opts.SheetIndex >= len(f.Sheets) {
		return nil, eris.Errorf("rentroll: sheet index %d out of range (file has %d sheets)", opts.SheetIndex, len(f.Sheets))
	}
	return f.Sheets[opts.SheetIndex], nil
}

func readCSV(path string, opts Options) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "rentroll: open %s", path)
	}
	defer f.Close() //nolint:errcheck

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // allow variable fields

	all, err := reader.ReadAll()
	if err != nil {
		return nil, eris.Wrapf(err, "rentroll: parse %s", path)
	}
	if opts.SkipRows > 0 && opts.SkipRows < len(all) {
		all = all[opts.SkipRows:]
	} else if opts.SkipRows >= len(all) {
		return nil, nil
	}
	return all, nil
}

// recordsFrom maps data rows onto the normalized header row. Blank cells and
// rows with no values at all are dropped.
func recordsFrom(rows [][]string) []map[string]any {
	if len(rows) < 2 {
		return nil
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = headerKey(h)
	}

	var records []map[string]any
	for _, row := range rows[1:] {
		rec := map[string]any{}
		for i, cell := range row {
			if i >= len(header) || header[i] == "" {
				continue
			}
			if cell = strings.TrimSpace(cell); cell != "" {
				rec[header[i]] = cell
			}
		}
		if len(rec) > 0 {
			records = append(records, rec)
		}
	}
	return records
}

// headerKey normalizes a column heading to camelCase: "Tenant Name" becomes
// tenantName, "Rentable SF" becomes rentableSF, "SF" becomes sf. Headings
// already in camelCase pass through unchanged.
func headerKey(h string) string {
	tokens := strings.FieldsFunc(strings.TrimSpace(h), func(r rune) bool {
		return r == ' ' || r == '_' || r == '-' || r == '/'
	})
	if len(tokens) == 0 {
		return ""
	}

	var b strings.Builder
	for i, tok := range tokens {
		switch {
		case i == 0 && isAllUpper(tok):
			b.WriteString(strings.ToLower(tok))
		case i == 0:
			b.WriteString(lowerFirst(tok))
		case isAllUpper(tok):
			b.WriteString(tok)
		default:
			b.WriteString(upperFirst(tok))
		}
	}
	return b.String()
}

func isAllUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}

func lowerFirst(s string) string {
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

func upperFirst(s string) string {
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
