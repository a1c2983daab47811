package pipeline

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"caabdwc/internal"
)

// ReadSourceFile loads a register dump into records, dispatching on the file
// extension. CSV dumps are exported with a UTF-8 byte-order mark; XLSX dumps
// are read from the first sheet.
func ReadSourceFile(path string) ([]internal.Record, error) {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".xlsx") || strings.HasSuffix(lower, ".xls"):
		return readSourceXLSX(path)
	case strings.HasSuffix(lower, ".csv"):
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return readSourceCSV(f)
	default:
		return nil, fmt.Errorf("unsupported source format: %s", path)
	}
}

func readSourceCSV(r io.Reader) ([]internal.Record, error) {
	// BOMOverride strips the utf-8-sig marker the register export carries.
	decoded := transform.NewReader(r, unicode.BOMOverride(transform.Nop))
	cr := csv.NewReader(decoded)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read source header: %w", err)
	}
	columns, err := mapHeader(header, internal.CaabSchema, internal.CaabRequired)
	if err != nil {
		return nil, err
	}

	var out []internal.Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read source row: %w", err)
		}
		out = append(out, rowToRecord(columns, row))
	}
	return out, nil
}

func readSourceXLSX(path string) ([]internal.Record, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets in %s", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty sheet in %s", path)
	}

	columns, err := mapHeader(rows[0], internal.CaabSchema, internal.CaabRequired)
	if err != nil {
		return nil, err
	}
	out := make([]internal.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := rowToRecord(columns, row)
		if rec.Len() == 0 {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

// mapHeader resolves file columns to schema fields, case-insensitively, and
// checks every required field is present. Columns outside the schema are
// ignored.
func mapHeader(header, schema, required []string) (map[int]string, error) {
	known := map[string]string{}
	for _, field := range schema {
		known[strings.ToUpper(field)] = field
	}

	columns := map[int]string{}
	seen := map[string]bool{}
	for i, h := range header {
		name := strings.ToUpper(strings.TrimSpace(h))
		if field, ok := known[name]; ok {
			columns[i] = field
			seen[field] = true
		}
	}
	for _, field := range required {
		if !seen[field] {
			return nil, fmt.Errorf("source header missing column %s", field)
		}
	}
	return columns, nil
}

func rowToRecord(columns map[int]string, row []string) internal.Record {
	rec := internal.NewRecord()
	for i, field := range columns {
		if i < len(row) {
			rec.Set(field, strings.TrimSpace(row[i]))
		}
	}
	return rec
}

// Lookup tables joined into the pipeline. All three are small curated CSVs
// shipped next to the dump.

// ReadKeyValueCSV loads a two-column lookup (key in the first column, value
// in the second), skipping the header row. Used for the nomenclatural code
// map and the name rename map.
func ReadKeyValueCSV(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cr := csv.NewReader(transform.NewReader(f, unicode.BOMOverride(transform.Nop)))
	cr.FieldsPerRecord = -1

	out := map[string]string{}
	first := true
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read lookup %s: %w", path, err)
		}
		if first {
			first = false
			continue
		}
		if len(row) < 2 {
			continue
		}
		key := strings.TrimSpace(row[0])
		if key == "" {
			continue
		}
		out[key] = strings.TrimSpace(row[1])
	}
	return out, nil
}

// NamePattern classifies a scientific name string by regex, overriding the
// statuses of synonym records whose names match.
type NamePattern struct {
	Pattern             *regexp.Regexp
	TaxonomicStatus     string
	NomenclaturalStatus string
}

// ReadNamePatternsCSV loads pattern,taxonomicStatus,nomenclaturalStatus rows.
// Patterns are anchored at the start of the name.
func ReadNamePatternsCSV(path string) ([]NamePattern, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cr := csv.NewReader(transform.NewReader(f, unicode.BOMOverride(transform.Nop)))
	cr.FieldsPerRecord = -1

	var out []NamePattern
	first := true
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read patterns %s: %w", path, err)
		}
		if first {
			first = false
			continue
		}
		if len(row) < 2 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		expr := strings.TrimSpace(row[0])
		if !strings.HasPrefix(expr, "^") {
			expr = "^" + expr
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("pattern %q in %s: %w", row[0], path, err)
		}
		p := NamePattern{Pattern: re, TaxonomicStatus: strings.TrimSpace(row[1])}
		if len(row) > 2 {
			p.NomenclaturalStatus = strings.TrimSpace(row[2])
		}
		out = append(out, p)
	}
	return out, nil
}
