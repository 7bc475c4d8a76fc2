// Package utils provides common conversion helpers for the symdiff application.
// They turn the textual cells of CSV and XLSX inputs into typed key values.
package utils
