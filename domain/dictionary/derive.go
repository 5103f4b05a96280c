package dictionary

import (
	"fmt"

	"datacheck/domain/table"
	"datacheck/domain/valuetype"
)

// Derivation of a data dictionary from a dataset's columns, used when no
// dictionary is supplied. The extended attempt adds valueType, label and
// missing columns; when it fails the caller retries in minimal mode.

// DeriveMinimal synthesizes a minimal data dictionary from a dataset: one
// Variables row per non-id column, no categories.
func DeriveMinimal(ds *table.Dataset) (*DataDict, error) {
	names := ds.VariableColumns()
	if len(names) == 0 {
		// A dataset reduced to its id column still declares that column.
		names = ds.Columns()
	}
	variables := table.New()
	if err := variables.AddColumn(ColName, names); err != nil {
		return nil, fmt.Errorf("failed to derive variables: %w", err)
	}
	return New(variables, nil)
}

// DeriveExtended synthesizes a tagged data dictionary: the minimal derivation
// plus an inferred valueType and an empty label per variable.
func DeriveExtended(ds *table.Dataset) (*DataDict, error) {
	names := ds.VariableColumns()
	if len(names) == 0 {
		names = ds.Columns()
	}
	valueTypes := make([]string, len(names))
	labels := make([]string, len(names))
	for i, name := range names {
		valueTypes[i] = valuetype.Infer(ds.Column(name)).Name
	}
	variables := table.New()
	if err := variables.AddColumn(ColName, names); err != nil {
		return nil, fmt.Errorf("failed to derive variables: %w", err)
	}
	if err := variables.AddColumn(ColValueType, valueTypes); err != nil {
		return nil, fmt.Errorf("failed to derive value types: %w", err)
	}
	if err := variables.AddColumn(ColLabel, labels); err != nil {
		return nil, fmt.Errorf("failed to derive labels: %w", err)
	}
	return New(variables, nil)
}

// Derive attempts the extended derivation first and falls back to the minimal
// one when it fails. The swallowed error is handed to onFallback so callers
// can log it; the original convention discards it silently.
func Derive(ds *table.Dataset, extended bool, onFallback func(error)) (*DataDict, error) {
	if !extended {
		return DeriveMinimal(ds)
	}
	dd, err := DeriveExtended(ds)
	if err == nil {
		return dd, nil
	}
	if onFallback != nil {
		onFallback(err)
	}
	return DeriveMinimal(ds)
}
