package source

import (
	"errors"
	"fmt"
	"strings"
)

// Scheme identifies where a record collection lives.
type Scheme string

const (
	// SchemeFile is a path on the local filesystem.
	SchemeFile Scheme = "file"
	// SchemeS3 is an object in S3-compatible storage.
	SchemeS3 Scheme = "s3"
	// SchemeDB is a database table.
	SchemeDB Scheme = "db"
)

var (
	// ErrInvalidLocation is returned for source strings that cannot be parsed.
	ErrInvalidLocation = errors.New("invalid source location")
)

// Location is a parsed source string.
type Location struct {
	Scheme Scheme
	// Bucket is set for s3 locations and may be empty to use the default bucket.
	Bucket string
	// Path is the file path, object name, or table name.
	Path string
}

// ParseLocation parses a local path, s3://bucket/object, s3:///object, file://path or db://table.
func ParseLocation(raw string) (Location, error) {
	if raw == "" {
		return Location{}, fmt.Errorf("%w: empty", ErrInvalidLocation)
	}

	scheme, rest, ok := strings.Cut(raw, "://")
	if !ok {
		return Location{Scheme: SchemeFile, Path: raw}, nil
	}

	switch Scheme(strings.ToLower(scheme)) {
	case SchemeFile:
		if rest == "" {
			return Location{}, fmt.Errorf("%w: %q has no path", ErrInvalidLocation, raw)
		}
		return Location{Scheme: SchemeFile, Path: rest}, nil
	case SchemeS3:
		bucket, object, _ := strings.Cut(rest, "/")
		if object == "" {
			return Location{}, fmt.Errorf("%w: %q has no object name", ErrInvalidLocation, raw)
		}
		return Location{Scheme: SchemeS3, Bucket: bucket, Path: object}, nil
	case SchemeDB:
		if rest == "" {
			return Location{}, fmt.Errorf("%w: %q has no table name", ErrInvalidLocation, raw)
		}
		return Location{Scheme: SchemeDB, Path: rest}, nil
	default:
		return Location{}, fmt.Errorf("%w: unknown scheme %q", ErrInvalidLocation, scheme)
	}
}

// String renders the location back into source syntax.
func (l Location) String() string {
	switch l.Scheme {
	case SchemeS3:
		return "s3://" + l.Bucket + "/" + l.Path
	case SchemeDB:
		return "db://" + l.Path
	default:
		return l.Path
	}
}
