// Package checks implements the fixed battery of cross-reference checks run
// by the evaluators. Every checker is a pure function of normalized entities
// returning a findings slice, possibly empty, never nil-vs-present dependent.
// Severity prefixes in messages are advisory text, not control flow.
package checks

import (
	"fmt"
	"strings"

	"datacheck/domain/dictionary"
	"datacheck/domain/report"
	"datacheck/domain/table"
	"datacheck/domain/valuetype"
)

// displayLimit bounds how many offending values a single finding lists.
const displayLimit = 5

func displayList(values []string) string {
	if len(values) <= displayLimit {
		return strings.Join(values, ", ")
	}
	return strings.Join(values[:displayLimit], ", ") + ", ..."
}

// NamingStandard flags names violating the identifier-naming convention, one
// finding per offending name.
func NamingStandard(names []string, sheet report.Sheet, column string) []report.Finding {
	var findings []report.Finding
	for _, name := range table.InvalidNames(names) {
		findings = append(findings, report.Finding{
			Entity:  name,
			Column:  column,
			Sheet:   sheet,
			Message: report.ErrorMessage("name does not follow the naming convention"),
		})
	}
	return findings
}

// DatasetNaming flags dataset columns violating the naming convention. The
// offending name doubles as the column so the assessment grid can join it
// against the dictionary index.
func DatasetNaming(ds *table.Dataset) []report.Finding {
	var findings []report.Finding
	for _, name := range table.InvalidNames(ds.VariableColumns()) {
		findings = append(findings, report.Finding{
			Entity:  name,
			Column:  name,
			Sheet:   report.SheetDataset,
			Message: report.ErrorMessage("name does not follow the naming convention"),
		})
	}
	return findings
}

// DatasetVariables reconciles dataset columns against dictionary variables,
// reporting orphans on both sides as two distinct finding subtypes.
func DatasetVariables(ds *table.Dataset, dd *dictionary.DataDict) []report.Finding {
	declared := make(map[string]struct{})
	for _, name := range dd.VariableNames() {
		declared[name] = struct{}{}
	}
	// The id column counts as observed so a dictionary declaring it is not
	// flagged, but it is never reported as a dataset-only orphan itself.
	observed := make(map[string]struct{})
	for _, name := range ds.Columns() {
		observed[name] = struct{}{}
	}
	var findings []report.Finding
	for _, name := range ds.VariableColumns() {
		if _, ok := declared[name]; !ok {
			findings = append(findings, report.Finding{
				Column:  name,
				Sheet:   report.SheetDataset,
				Message: report.ErrorMessage("variable is present in the dataset but absent from the data dictionary"),
			})
		}
	}
	for _, name := range dd.VariableNames() {
		if _, ok := observed[name]; !ok {
			findings = append(findings, report.Finding{
				Column:  name,
				Sheet:   report.SheetDataset,
				Message: report.ErrorMessage("variable is declared in the data dictionary but absent from the dataset"),
			})
		}
	}
	return findings
}

// VariableUniqueness surfaces duplicated variable names. Shape validation
// enforces uniqueness at construction; this check catches violations
// introduced when dictionaries are merged.
func VariableUniqueness(names []string) []report.Finding {
	counts := make(map[string]int)
	for _, name := range names {
		counts[name]++
	}
	var findings []report.Finding
	seen := make(map[string]struct{})
	for _, name := range names {
		if counts[name] < 2 {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		findings = append(findings, report.Finding{
			Entity:  name,
			Column:  dictionary.ColName,
			Sheet:   report.SheetVariables,
			Message: report.ErrorMessage("variable name is duplicated"),
		})
	}
	return findings
}

// DatasetCategories flags dataset values that are not declared as categories,
// evaluated only for columns with at least one declared category.
func DatasetCategories(ds *table.Dataset, dd *dictionary.DataDict) []report.Finding {
	var findings []report.Finding
	for _, name := range ds.VariableColumns() {
		declared := dd.CategoryValues(name)
		if len(declared) == 0 {
			continue
		}
		allowed := make(map[string]struct{}, len(declared))
		for _, v := range declared {
			allowed[v] = struct{}{}
		}
		var undeclared []string
		for _, v := range table.DistinctNonMissing(ds.Column(name)) {
			if _, ok := allowed[v]; !ok {
				undeclared = append(undeclared, v)
			}
		}
		if len(undeclared) > 0 {
			findings = append(findings, report.Finding{
				Column:   name,
				Sheet:    report.SheetDataset,
				Message:  report.ErrorMessage("dataset contains values not declared as categories"),
				Evidence: displayList(undeclared),
			})
		}
	}
	return findings
}

// DictionaryCategories flags category rows referencing variables absent from
// the Variables table.
func DictionaryCategories(dd *dictionary.DataDict) []report.Finding {
	if dd.Categories.NumRows() == 0 {
		return nil
	}
	var findings []report.Finding
	seen := make(map[string]struct{})
	for _, variable := range dd.Categories.Column(dictionary.ColVariable) {
		if dd.HasVariable(variable) {
			continue
		}
		if _, ok := seen[variable]; ok {
			continue
		}
		seen[variable] = struct{}{}
		findings = append(findings, report.Finding{
			Entity:  variable,
			Column:  dictionary.ColVariable,
			Sheet:   report.SheetCategories,
			Message: report.ErrorMessage("categories reference a variable absent from Variables"),
		})
	}
	return findings
}

// MissingCategoryLogical flags values of the Categories missing column that do
// not coerce to a boolean.
func MissingCategoryLogical(dd *dictionary.DataDict) []report.Finding {
	if dd.Categories.NumRows() == 0 || !dd.Categories.Has(dictionary.ColMissing) {
		return nil
	}
	names := dd.Categories.Column(dictionary.ColName)
	variables := dd.Categories.Column(dictionary.ColVariable)
	var findings []report.Finding
	for i, v := range dd.Categories.Column(dictionary.ColMissing) {
		if table.IsMissing(v) || valuetype.IsBooleanLike(v) {
			continue
		}
		findings = append(findings, report.Finding{
			Entity:   fmt.Sprintf("%s::%s", variables[i], names[i]),
			Column:   dictionary.ColMissing,
			Sheet:    report.SheetCategories,
			Message:  report.ErrorMessage("missing flag is not boolean-coercible"),
			Evidence: v,
		})
	}
	return findings
}

// DuplicatedColumns flags groups of element-wise identical columns, one
// finding per duplicate group.
func DuplicatedColumns(t *table.Table, sheet report.Sheet) []report.Finding {
	var findings []report.Finding
	for _, group := range table.DuplicatedColumnGroups(t) {
		findings = append(findings, report.Finding{
			Column:   group[0],
			Sheet:    sheet,
			Message:  report.ErrorMessage("columns hold identical values"),
			Evidence: strings.Join(group, ", "),
		})
	}
	return findings
}

// DuplicatedRows flags groups of rows identical across all non-id columns,
// listing the duplicate id values truncated at five entries. Datasets without
// rows are skipped entirely.
func DuplicatedRows(ds *table.Dataset) []report.Finding {
	var findings []report.Finding
	for _, group := range table.DuplicatedRowGroups(ds) {
		findings = append(findings, report.Finding{
			Sheet:    report.SheetDataset,
			Message:  report.ErrorMessage("rows are duplicated across all non-id columns"),
			Evidence: group.DisplayIDs(),
		})
	}
	return findings
}

// AllMissingRows flags rows that are entirely missing outside the id column,
// one finding per offending row. The row id is carried in both the entity and
// evidence fields; dictionary grids render the former, dataset grids the
// latter.
func AllMissingRows(ds *table.Dataset, sheet report.Sheet) []report.Finding {
	var findings []report.Finding
	for _, id := range table.AllMissingRowIDs(ds) {
		findings = append(findings, report.Finding{
			Entity:   id,
			Sheet:    sheet,
			Message:  report.ErrorMessage("row is entirely missing"),
			Evidence: id,
		})
	}
	return findings
}

// AllMissingColumns flags columns that are entirely missing, one finding per
// offending column.
func AllMissingColumns(t *table.Table, exclude string, sheet report.Sheet) []report.Finding {
	var findings []report.Finding
	for _, name := range table.AllMissingColumnNames(t, exclude) {
		findings = append(findings, report.Finding{
			Column:  name,
			Sheet:   sheet,
			Message: report.ErrorMessage("column is entirely missing"),
		})
	}
	return findings
}

// UniqueValueColumns flags degenerate columns where every non-missing value is
// identical. Empty datasets are skipped entirely.
func UniqueValueColumns(ds *table.Dataset) []report.Finding {
	var findings []report.Finding
	for _, name := range table.ConstantColumns(ds.Table, ds.IDColumn()) {
		evidence := ""
		for _, v := range ds.Column(name) {
			if !table.IsMissing(v) {
				evidence = v
				break
			}
		}
		findings = append(findings, report.Finding{
			Column:   name,
			Sheet:    report.SheetDataset,
			Message:  report.InfoMessage("column holds a single constant value"),
			Evidence: evidence,
		})
	}
	return findings
}
