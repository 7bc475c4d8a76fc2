package source

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"symdiff/core/symdiff"
	"symdiff/core/utils"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/xuri/excelize/v2"
	"sigs.k8s.io/yaml"
)

var (
	// ErrUnsupportedFormat is returned when a source name has no known format extension.
	ErrUnsupportedFormat = errors.New("unsupported source format")
	// ErrMalformed is returned when a source's content does not describe a list of records.
	ErrMalformed = errors.New("malformed source")
)

// Format is a record encoding, named after its file extension.
type Format string

const (
	// FormatJSON is an array of objects, or an object holding a "records" array.
	FormatJSON Format = "json"
	// FormatNDJSON is one object per line.
	FormatNDJSON Format = "ndjson"
	// FormatYAML is a sequence of mappings.
	FormatYAML Format = "yaml"
	// FormatCSV is a header row followed by data rows.
	FormatCSV Format = "csv"
	// FormatXLSX is the first sheet of a workbook, header row first.
	FormatXLSX Format = "xlsx"
)

var formatsByExt = map[string]Format{
	".json":   FormatJSON,
	".ndjson": FormatNDJSON,
	".jsonl":  FormatNDJSON,
	".yaml":   FormatYAML,
	".yml":    FormatYAML,
	".csv":    FormatCSV,
	".xlsx":   FormatXLSX,
}

// DetectFormat returns the format of name and whether it carries a .gz or .zst suffix.
func DetectFormat(name string) (format Format, compression string, err error) {
	lower := strings.ToLower(name)
	switch ext := path.Ext(lower); ext {
	case ".gz", ".zst":
		compression = ext
		lower = strings.TrimSuffix(lower, ext)
	}

	format, ok := formatsByExt[path.Ext(lower)]
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
	return format, compression, nil
}

// Decode reads the records in r, choosing the decoder from the extension of name.
// CSV and XLSX columns are typed from this source alone; Loader.LoadPair types
// a column shared by two tabular sources across both.
func Decode(name string, r io.Reader) ([]symdiff.Record, error) {
	records, tabular, err := decode(name, r)
	if err != nil {
		return nil, err
	}
	if tabular {
		inferColumns(records)
	}
	return records, nil
}

// decode reads the records in r. Records of tabular formats hold the raw cell
// text and must go through inferColumns before use.
func decode(name string, r io.Reader) (records []symdiff.Record, tabular bool, err error) {
	format, compression, err := DetectFormat(name)
	if err != nil {
		return nil, false, err
	}

	switch compression {
	case ".gz":
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, false, fmt.Errorf("%w: gzip: %v", ErrMalformed, err)
		}
		defer zr.Close()
		r = zr
	case ".zst":
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, false, fmt.Errorf("%w: zstd: %v", ErrMalformed, err)
		}
		defer zr.Close()
		r = zr
	}

	switch format {
	case FormatJSON:
		records, err = decodeJSON(r)
	case FormatNDJSON:
		records, err = decodeNDJSON(r)
	case FormatYAML:
		records, err = decodeYAML(r)
	case FormatCSV:
		records, err = decodeCSV(r)
		tabular = true
	default:
		records, err = decodeXLSX(r)
		tabular = true
	}
	if err != nil {
		return nil, false, err
	}
	return records, tabular, nil
}

func decodeJSON(r io.Reader) ([]symdiff.Record, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: json: %v", ErrMalformed, err)
	}
	return recordsFrom(doc)
}

func decodeNDJSON(r io.Reader) ([]symdiff.Record, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	records := []symdiff.Record{}
	for line := 1; ; line++ {
		var obj map[string]any
		err := dec.Decode(&obj)
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: ndjson record %d: %v", ErrMalformed, line, err)
		}
		records = append(records, symdiff.Record(obj))
	}
}

func decodeYAML(r io.Reader) ([]symdiff.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	js, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%w: yaml: %v", ErrMalformed, err)
	}
	return decodeJSON(bytes.NewReader(js))
}

// recordsFrom accepts a top-level array of objects or an object with a "records" array.
func recordsFrom(doc any) ([]symdiff.Record, error) {
	if obj, ok := doc.(map[string]any); ok {
		doc = obj["records"]
	}

	items, ok := doc.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected an array of objects", ErrMalformed)
	}

	records := make([]symdiff.Record, len(items))
	for i, it := range items {
		obj, ok := it.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: element %d is not an object", ErrMalformed, i)
		}
		records[i] = symdiff.Record(obj)
	}
	return records, nil
}

func decodeCSV(r io.Reader) ([]symdiff.Record, error) {
	rows, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: csv: %v", ErrMalformed, err)
	}
	return tabular(rows)
}

func decodeXLSX(r io.Reader) ([]symdiff.Record, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: xlsx: %v", ErrMalformed, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return []symdiff.Record{}, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: xlsx sheet %s: %v", ErrMalformed, sheets[0], err)
	}
	return tabular(rows)
}

// tabular turns a header row plus data rows into records holding the cell
// text. Short rows are padded with empty cells.
func tabular(rows [][]string) ([]symdiff.Record, error) {
	if len(rows) == 0 {
		return []symdiff.Record{}, nil
	}

	header, data := rows[0], rows[1:]
	seen := make(map[string]bool, len(header))
	for _, name := range header {
		if name == "" {
			continue
		}
		if seen[name] {
			return nil, fmt.Errorf("%w: duplicate column %q", ErrMalformed, name)
		}
		seen[name] = true
	}

	records := make([]symdiff.Record, len(data))
	for i, row := range data {
		r := make(symdiff.Record, len(seen))
		for col, name := range header {
			if name == "" {
				continue
			}
			cell := ""
			if col < len(row) {
				cell = row[col]
			}
			r[name] = cell
		}
		records[i] = r
	}
	return records, nil
}

// inferColumns types the raw cells of tabular records with utils.InferColumn.
// Each column is typed over every record of every set passed in, so a column
// shared by two sources gets one kind on both sides.
func inferColumns(sets ...[]symdiff.Record) {
	columns := make(map[string][]symdiff.Record)
	for _, set := range sets {
		for _, r := range set {
			for name := range r {
				columns[name] = append(columns[name], r)
			}
		}
	}

	var cells []string
	for name, records := range columns {
		cells = cells[:0]
		for _, r := range records {
			text, _ := r[name].(string)
			cells = append(cells, text)
		}
		for i, v := range utils.InferColumn(cells) {
			records[i][name] = v
		}
	}
}
