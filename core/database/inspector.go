package database

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"
)

// ErrInvalidTable is returned for table names that are not plain identifiers.
var ErrInvalidTable = errors.New("invalid table name")

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,63}$`)

// ColumnInfo matches the output of SHOW COLUMNS
type ColumnInfo struct {
	Field   string
	Type    string
	Null    string
	Key     string
	Default *string // NULL default is possible
	Extra   string
}

// ValidateTable checks that name can be safely interpolated as a table identifier.
func ValidateTable(name string) error {
	if !identifier.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidTable, name)
	}
	return nil
}

// GetTableColumns retrieves the column definitions for a given table.
func GetTableColumns(ctx context.Context, db *gorm.DB, tableName string) ([]ColumnInfo, error) {
	if err := ValidateTable(tableName); err != nil {
		return nil, err
	}

	var columns []ColumnInfo
	err := db.WithContext(ctx).Raw(fmt.Sprintf("SHOW COLUMNS FROM `%s`", tableName)).Scan(&columns).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
	}
	for i := range columns {
		columns[i].Type = strings.ToLower(columns[i].Type)
		columns[i].Field = strings.ToLower(columns[i].Field)
	}
	return columns, nil
}

// MissingColumns returns the names in want that are not columns of tableName.
func MissingColumns(ctx context.Context, db *gorm.DB, tableName string, want []string) ([]string, error) {
	columns, err := GetTableColumns(ctx, db, tableName)
	if err != nil {
		return nil, err
	}

	have := make(map[string]struct{}, len(columns))
	for _, col := range columns {
		have[col.Field] = struct{}{}
	}

	var missing []string
	for _, name := range want {
		if _, ok := have[strings.ToLower(name)]; !ok {
			missing = append(missing, name)
		}
	}
	return missing, nil
}

// LoadRows reads every row of tableName as a column-name keyed map.
func LoadRows(ctx context.Context, db *gorm.DB, tableName string) ([]map[string]any, error) {
	if err := ValidateTable(tableName); err != nil {
		return nil, err
	}

	var rows []map[string]any
	if err := db.WithContext(ctx).Table(tableName).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load rows from %s: %w", tableName, err)
	}
	return rows, nil
}
