// Package database handles database connections and table access for record sources.
//
// It provides a wrapper around GORM to configure MySQL connections based on the
// application's configuration, plus helpers used by db:// record sources.
//
// # Connect
//
// Connect establishes a pooled connection and verifies it with a ping bounded by
// the configured timeout.
//
// # Table Access
//
//   - GetTableColumns / MissingColumns inspect a table so that key properties can
//     be validated before any rows are read.
//   - LoadRows reads a whole table as column-keyed maps.
//
// Table names are restricted to plain identifiers because they are interpolated
// into SQL.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	rows, err := database.LoadRows(ctx, db, "customers")
package database
