package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocation(t *testing.T) {
	tests := []struct {
		raw  string
		want Location
	}{
		{"left.json", Location{Scheme: SchemeFile, Path: "left.json"}},
		{"/data/right.csv.gz", Location{Scheme: SchemeFile, Path: "/data/right.csv.gz"}},
		{"file://rel/x.yaml", Location{Scheme: SchemeFile, Path: "rel/x.yaml"}},
		{"s3://exports/2024/customers.json", Location{Scheme: SchemeS3, Bucket: "exports", Path: "2024/customers.json"}},
		{"S3:///customers.json", Location{Scheme: SchemeS3, Path: "customers.json"}},
		{"db://customers", Location{Scheme: SchemeDB, Path: "customers"}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseLocation(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLocation_Invalid(t *testing.T) {
	for _, raw := range []string{"", "s3://bucket", "s3://bucket/", "db://", "ftp://host/x.json", "file://"} {
		t.Run(raw, func(t *testing.T) {
			_, err := ParseLocation(raw)
			assert.ErrorIs(t, err, ErrInvalidLocation)
		})
	}
}

func TestLocation_String(t *testing.T) {
	assert.Equal(t, "s3://b/o.json", Location{Scheme: SchemeS3, Bucket: "b", Path: "o.json"}.String())
	assert.Equal(t, "db://t", Location{Scheme: SchemeDB, Path: "t"}.String())
	assert.Equal(t, "x.csv", Location{Scheme: SchemeFile, Path: "x.csv"}.String())
}
