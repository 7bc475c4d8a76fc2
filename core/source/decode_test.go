package source

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"symdiff/core/symdiff"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestDecode_Formats(t *testing.T) {
	tests := []struct {
		name  string
		file  string
		input string
		want  []symdiff.Record
	}{
		{
			name:  "JSON array",
			file:  "x.json",
			input: `[{"a": 6, "b": "foo"}, {"a": 12345678901234567890, "b": "big"}]`,
			want: []symdiff.Record{
				{"a": json.Number("6"), "b": "foo"},
				{"a": json.Number("12345678901234567890"), "b": "big"},
			},
		},
		{
			name:  "JSON wrapped",
			file:  "x.JSON",
			input: `{"records": [{"id": 1}]}`,
			want:  []symdiff.Record{{"id": json.Number("1")}},
		},
		{
			name:  "NDJSON",
			file:  "x.jsonl",
			input: "{\"id\": 1}\n{\"id\": 2}\n",
			want:  []symdiff.Record{{"id": json.Number("1")}, {"id": json.Number("2")}},
		},
		{
			name:  "YAML",
			file:  "x.yml",
			input: "- id: 1\n  name: ada\n- id: 2\n  name: lin\n",
			want: []symdiff.Record{
				{"id": json.Number("1"), "name": "ada"},
				{"id": json.Number("2"), "name": "lin"},
			},
		},
		{
			name:  "CSV",
			file:  "x.csv",
			input: "id,name,score\n1,ada,\n2,lin,2.5\n",
			want: []symdiff.Record{
				{"id": int64(1), "name": "ada", "score": nil},
				{"id": int64(2), "name": "lin", "score": 2.5},
			},
		},
		{
			name:  "CSV header only",
			file:  "x.csv",
			input: "id,name\n",
			want:  []symdiff.Record{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.file, strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		file  string
		input string
	}{
		{"Scalar JSON", "x.json", `42`},
		{"Array of scalars", "x.json", `[1, 2]`},
		{"Broken JSON", "x.json", `[{"a":`},
		{"Object without records", "x.json", `{"rows": []}`},
		{"Broken NDJSON", "x.ndjson", "{\"id\": 1}\n{\n"},
		{"Duplicate CSV column", "x.csv", "id,id\n1,2\n"},
		{"Ragged CSV", "x.csv", "id,name\n1\n"},
		{"Not gzip", "x.json.gz", "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.file, strings.NewReader(tt.input))
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestDecode_UnsupportedFormat(t *testing.T) {
	_, err := Decode("records.parquet", strings.NewReader(""))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Decode("records.gz", strings.NewReader(""))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestDecode_Compressed(t *testing.T) {
	payload := `[{"id": 1}, {"id": 2}]`
	want := []symdiff.Record{{"id": json.Number("1")}, {"id": json.Number("2")}}

	t.Run("gzip", func(t *testing.T) {
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		_, err := zw.Write([]byte(payload))
		require.NoError(t, err)
		require.NoError(t, zw.Close())

		got, err := Decode("x.json.gz", &buf)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("zstd", func(t *testing.T) {
		var buf bytes.Buffer
		zw, err := zstd.NewWriter(&buf)
		require.NoError(t, err)
		_, err = zw.Write([]byte(payload))
		require.NoError(t, err)
		require.NoError(t, zw.Close())

		got, err := Decode("x.json.zst", &buf)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
}

func TestDecode_XLSX(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"sku", "label"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{101, "chair"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{102}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	got, err := Decode("stock.xlsx", buf)
	require.NoError(t, err)
	assert.Equal(t, []symdiff.Record{
		{"sku": int64(101), "label": "chair"},
		{"sku": int64(102), "label": nil},
	}, got)
}

func TestDetectFormat(t *testing.T) {
	format, compression, err := DetectFormat("a/b/Records.CSV.ZST")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, format)
	assert.Equal(t, ".zst", compression)
}

func TestDecode_FeedsEngine(t *testing.T) {
	left, err := Decode("l.json", strings.NewReader(`[{"id": 1}, {"id": 2.0}, {"id": 3}]`))
	require.NoError(t, err)
	right, err := Decode("r.csv", strings.NewReader("id\n2\n3\n4\n"))
	require.NoError(t, err)

	got, err := symdiff.Compute([]string{"id"}, left, right)
	require.NoError(t, err)
	require.Len(t, got, 2)
}

func TestDecode_ZeroPaddedCodes(t *testing.T) {
	got, err := Decode("zips.csv", strings.NewReader("zip,count\n01234,1\n1234,2\n"))
	require.NoError(t, err)
	assert.Equal(t, []symdiff.Record{
		{"zip": "01234", "count": int64(1)},
		{"zip": "1234", "count": int64(2)},
	}, got)

	diff, err := symdiff.Compute([]string{"zip"}, got[:1], got[1:])
	require.NoError(t, err)
	assert.Len(t, diff, 2)
}
