// Package source loads record collections for the symmetric-difference engine.
//
// A source is addressed by a location string:
//
//   - a local path, or file://path
//   - s3://bucket/object (s3:///object uses the configured bucket)
//   - db://table
//
// # Formats
//
// File and object sources are decoded by extension: .json (an array of objects,
// or an object holding a "records" array), .ndjson/.jsonl, .yaml/.yml, .csv and
// .xlsx (first sheet). A trailing .gz or .zst is decompressed first. JSON numbers
// are kept as json.Number so large integers survive. CSV and XLSX cells are typed
// per column, so a column never mixes numbers and strings, and only canonical
// text becomes a number: "01234" stays a string. LoadPair types a column shared
// by two tabular sources over both of them.
//
// # Caching
//
// Storage downloads are cached for the configured TTL and concurrent requests for
// the same object share a single download.
//
// # Database Tables
//
// Table sources check that every key property is a column before reading any rows,
// failing with symdiff.ErrMissingField otherwise.
package source
