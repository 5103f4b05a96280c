// Package dictionary models the data dictionary convention: a Variables table
// describing a dataset's variables and an optional Categories table declaring
// the allowed category values per variable.
package dictionary

import (
	"fmt"

	"datacheck/domain/core"
	"datacheck/domain/table"
)

// Column names fixed by the schema convention.
const (
	ColName      = "name"
	ColVariable  = "variable"
	ColLabel     = "label"
	ColValueType = "valueType"
	ColMissing   = "missing"
	ColIndex     = "index"
)

// DataDict is the validated product type for a data dictionary. Categories is
// never nil; a dictionary without categories carries an empty table.
type DataDict struct {
	Variables  *table.Table
	Categories *table.Table
}

// New builds a data dictionary and validates its shape, including key
// uniqueness. categories may be nil.
func New(variables, categories *table.Table) (*DataDict, error) {
	if categories == nil {
		categories = emptyCategories()
	}
	dd := &DataDict{Variables: variables, Categories: categories}
	if err := ValidateShape(dd); err != nil {
		return nil, err
	}
	if err := validateUniqueness(dd); err != nil {
		return nil, err
	}
	return dd, nil
}

func emptyCategories() *table.Table {
	t := table.New()
	_ = t.AddColumn(ColVariable, nil)
	_ = t.AddColumn(ColName, nil)
	return t
}

// ValidateShape verifies the minimal structural contract every evaluator
// requires: required columns present and key values non-missing. Key
// uniqueness is deliberately not part of this contract — dictionaries merged
// from several sources may carry duplicated names, which the uniqueness check
// surfaces as a finding rather than a precondition failure.
func ValidateShape(dd *DataDict) error {
	if dd == nil || dd.Variables == nil {
		return core.NewShapeError("data dictionary", "", "Variables table is nil")
	}
	if !dd.Variables.Has(ColName) {
		return core.NewShapeError("data dictionary", ColName, "required column is absent from Variables")
	}
	for i, name := range dd.Variables.Column(ColName) {
		if table.IsMissing(name) {
			return core.NewShapeError("data dictionary", ColName,
				fmt.Sprintf("variable name at row %d is missing", i))
		}
	}
	if dd.Categories == nil || dd.Categories.NumRows() == 0 {
		return nil
	}
	for _, col := range []string{ColVariable, ColName} {
		if !dd.Categories.Has(col) {
			return core.NewShapeError("data dictionary", col, "required column is absent from Categories")
		}
	}
	variables := dd.Categories.Column(ColVariable)
	names := dd.Categories.Column(ColName)
	for i := range variables {
		if table.IsMissing(variables[i]) || table.IsMissing(names[i]) {
			return core.NewShapeError("data dictionary", ColVariable,
				fmt.Sprintf("category at row %d has a missing variable or name", i))
		}
	}
	return nil
}

// validateUniqueness enforces the key-uniqueness invariants at construction
// time: variable names unique, category (variable, name) pairs unique.
func validateUniqueness(dd *DataDict) error {
	seen := make(map[string]struct{})
	for _, name := range dd.Variables.Column(ColName) {
		if _, ok := seen[name]; ok {
			return core.NewShapeError("data dictionary", ColName,
				fmt.Sprintf("variable name %q is duplicated", name))
		}
		seen[name] = struct{}{}
	}
	if dd.Categories.NumRows() == 0 {
		return nil
	}
	pairs := make(map[[2]string]struct{})
	variables := dd.Categories.Column(ColVariable)
	names := dd.Categories.Column(ColName)
	for i := range variables {
		pair := [2]string{variables[i], names[i]}
		if _, ok := pairs[pair]; ok {
			return core.NewShapeError("data dictionary", ColName,
				fmt.Sprintf("category %q of variable %q is duplicated", names[i], variables[i]))
		}
		pairs[pair] = struct{}{}
	}
	return nil
}

// VariableNames returns the declared variable names in order.
func (dd *DataDict) VariableNames() []string {
	src := dd.Variables.Column(ColName)
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// HasVariable reports whether a variable is declared.
func (dd *DataDict) HasVariable(name string) bool {
	for _, v := range dd.Variables.Column(ColName) {
		if v == name {
			return true
		}
	}
	return false
}

// ValueTypeOf returns the declared value type of a variable, or "" when the
// dictionary carries no valueType column or the variable declares none.
func (dd *DataDict) ValueTypeOf(name string) string {
	if !dd.Variables.Has(ColValueType) {
		return ""
	}
	for i, v := range dd.Variables.Column(ColName) {
		if v == name {
			vt := dd.Variables.Cell(i, ColValueType)
			if table.IsMissing(vt) {
				return ""
			}
			return vt
		}
	}
	return ""
}

// CategoryValues returns the declared category names for a variable in
// declaration order, empty when the variable declares no categories.
func (dd *DataDict) CategoryValues(variable string) []string {
	if dd.Categories == nil || dd.Categories.NumRows() == 0 {
		return nil
	}
	variables := dd.Categories.Column(ColVariable)
	names := dd.Categories.Column(ColName)
	var out []string
	for i := range variables {
		if variables[i] == variable {
			out = append(out, names[i])
		}
	}
	return out
}
