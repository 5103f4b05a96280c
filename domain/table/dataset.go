package table

import (
	"fmt"

	"datacheck/domain/core"
)

// IndexColumn is the name of the synthetic zero-based row identifier injected
// when a dataset declares no id column.
const IndexColumn = "datacheck::index"

// Dataset is a table of observations with an optional declared id column.
// The id column is a first-class field rather than attached metadata.
type Dataset struct {
	*Table
	idColumn string
}

// NewDataset wraps a table as a dataset. idColumn may be empty when no row
// identifier is declared.
func NewDataset(t *Table, idColumn string) (*Dataset, error) {
	d := &Dataset{Table: t, idColumn: idColumn}
	if err := ValidateDatasetShape(d); err != nil {
		return nil, err
	}
	return d, nil
}

// IDColumn returns the declared id column name, or "" when none exists.
func (d *Dataset) IDColumn() string {
	return d.idColumn
}

// HasIDColumn reports whether an id column is declared.
func (d *Dataset) HasIDColumn() bool {
	return d.idColumn != ""
}

// IDValues returns the id column values, or the synthetic zero-based row
// index when no id column is declared.
func (d *Dataset) IDValues() []string {
	if d.idColumn != "" {
		return d.Column(d.idColumn)
	}
	ids := make([]string, d.NumRows())
	for i := range ids {
		ids[i] = fmt.Sprintf("%d", i)
	}
	return ids
}

// VariableColumns returns the dataset columns excluding the id column.
func (d *Dataset) VariableColumns() []string {
	out := make([]string, 0, d.NumCols())
	for _, name := range d.Columns() {
		if name == d.idColumn {
			continue
		}
		out = append(out, name)
	}
	return out
}

// EnsureIDColumn returns a dataset that is guaranteed to carry an id column,
// injecting the synthetic zero-based row index when none is declared or when
// the dataset has a single column.
func (d *Dataset) EnsureIDColumn() *Dataset {
	if d.idColumn != "" && d.NumCols() > 1 {
		return d
	}
	ids := make([]string, d.NumRows())
	for i := range ids {
		ids[i] = fmt.Sprintf("%d", i)
	}
	t := d.Table.Clone()
	indexed := New()
	_ = indexed.AddColumn(IndexColumn, ids)
	for _, name := range t.Columns() {
		_ = indexed.AddColumn(name, t.Column(name))
	}
	return &Dataset{Table: indexed, idColumn: IndexColumn}
}

// ValidateDatasetShape verifies the minimal structural contract of a dataset:
// a non-nil table with at least one column, and non-missing id values when an
// id column is declared. Id uniqueness is a detected finding, not a
// precondition.
func ValidateDatasetShape(d *Dataset) error {
	if d == nil || d.Table == nil {
		return core.NewShapeError("dataset", "", "dataset is nil")
	}
	if d.NumCols() == 0 {
		return core.NewShapeError("dataset", "", "dataset has no columns")
	}
	if d.idColumn == "" {
		return nil
	}
	if !d.Has(d.idColumn) {
		return core.NewShapeError("dataset", d.idColumn, "declared id column is absent")
	}
	for i, v := range d.Column(d.idColumn) {
		if IsMissing(v) {
			return core.NewShapeError("dataset", d.idColumn,
				fmt.Sprintf("id value at row %d is missing", i))
		}
	}
	return nil
}
