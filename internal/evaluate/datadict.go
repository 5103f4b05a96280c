package evaluate

import (
	"datacheck/domain/dictionary"
	"datacheck/domain/report"
	"datacheck/domain/table"
	"datacheck/internal/checks"
)

// DataDictionary assesses a data dictionary on its own, without a dataset.
// Shape failures abort the call; individual check failures degrade to skipped
// sections. The returned report carries the summary section and, when any
// finding survived assembly, the assessment section.
func (e *Evaluator) DataDictionary(dd *dictionary.DataDict, taxo *dictionary.Taxonomy, extended bool) (*report.Report, error) {
	rep, _, err := e.evaluateDictionary(dd, taxo, extended)
	return rep, err
}

// DataDictionary runs the default evaluator.
func DataDictionary(dd *dictionary.DataDict, taxo *dictionary.Taxonomy, extended bool) (*report.Report, error) {
	return defaultEvaluator.DataDictionary(dd, taxo, extended)
}

// evaluateDictionary additionally returns the variable-name to summary-index
// mapping the dataset evaluator joins its findings against.
func (e *Evaluator) evaluateDictionary(dd *dictionary.DataDict, taxo *dictionary.Taxonomy, extended bool) (*report.Report, map[string]int, error) {
	if err := dictionary.ValidateShape(dd); err != nil {
		return nil, nil, err
	}
	if taxo != nil {
		if err := dictionary.ValidateTaxonomyShape(taxo, extended); err != nil {
			return nil, nil, err
		}
	}

	norm := normalizeDictionary(dd, extended)

	rep := report.New()
	summary, indexOf := summaryGrid(norm)
	rep.Add(SectionDictionarySummary, summary)

	var findings []report.Finding
	findings = append(findings, e.run("naming standard (Variables)", func() []report.Finding {
		return checks.NamingStandard(norm.Variables.Column(dictionary.ColName), report.SheetVariables, dictionary.ColName)
	})...)
	findings = append(findings, e.run("naming standard (Categories)", func() []report.Finding {
		if norm.Categories.NumRows() == 0 {
			return nil
		}
		return checks.NamingStandard(norm.Categories.Column(dictionary.ColVariable), report.SheetCategories, dictionary.ColVariable)
	})...)
	findings = append(findings, e.run("variable uniqueness", func() []report.Finding {
		return checks.VariableUniqueness(norm.Variables.Column(dictionary.ColName))
	})...)
	findings = append(findings, e.run("duplicated columns (Variables)", func() []report.Finding {
		return checks.DuplicatedColumns(norm.Variables, report.SheetVariables)
	})...)
	findings = append(findings, e.run("duplicated columns (Categories)", func() []report.Finding {
		if norm.Categories.NumRows() == 0 {
			return nil
		}
		return checks.DuplicatedColumns(norm.Categories, report.SheetCategories)
	})...)
	findings = append(findings, e.run("all-missing rows and columns (Variables)", func() []report.Finding {
		// The injected index is never missing, so it is stripped before the
		// row check to keep genuinely empty rows detectable.
		return sheetMissing(withoutColumn(norm.Variables, dictionary.ColIndex), dictionary.ColName, report.SheetVariables)
	})...)
	findings = append(findings, e.run("all-missing rows and columns (Categories)", func() []report.Finding {
		if norm.Categories.NumRows() == 0 {
			return nil
		}
		return sheetMissing(norm.Categories, dictionary.ColName, report.SheetCategories)
	})...)
	findings = append(findings, e.run("category references", func() []report.Finding {
		return checks.DictionaryCategories(norm)
	})...)

	if extended {
		findings = append(findings, e.run("label completeness", func() []report.Finding {
			return checks.LabelCompleteness(norm)
		})...)
		findings = append(findings, e.run("value type declarations", func() []report.Finding {
			return checks.ValueTypeDeclarations(norm)
		})...)
		findings = append(findings, e.run("missing-category flags", func() []report.Finding {
			return checks.MissingCategoryLogical(norm)
		})...)
	}

	assessment := report.DictionaryGrid(findings)
	e.notice(SectionDictionaryAssessment, assessment)
	rep.Add(SectionDictionaryAssessment, assessment)
	return rep, indexOf, nil
}

// withoutColumn returns a copy of the table lacking the named column.
func withoutColumn(t *table.Table, drop string) *table.Table {
	out := table.New()
	for _, c := range t.Columns() {
		if c == drop {
			continue
		}
		_ = out.AddColumn(c, t.Column(c))
	}
	return out
}

// sheetMissing runs the all-missing row and column checks over one dictionary
// sheet, using its name column as the row identifier.
func sheetMissing(t *table.Table, idCol string, sheet report.Sheet) []report.Finding {
	var findings []report.Finding
	if ds, err := table.NewDataset(t, idCol); err == nil {
		findings = append(findings, checks.AllMissingRows(ds, sheet)...)
	}
	findings = append(findings, checks.AllMissingColumns(t, idCol, sheet)...)
	return findings
}

// normalizeDictionary produces the call-scoped working copy every check runs
// against: a stable index injected into Variables, and in extended mode the
// optional columns synthesized as all-missing when absent.
func normalizeDictionary(dd *dictionary.DataDict, extended bool) *dictionary.DataDict {
	variables := table.InjectIndex(dd.Variables, dictionary.ColIndex)
	var categories *table.Table
	if dd.Categories != nil {
		categories = dd.Categories.Clone()
	} else {
		categories = table.New()
		_ = categories.AddColumn(dictionary.ColVariable, nil)
		_ = categories.AddColumn(dictionary.ColName, nil)
	}
	if extended {
		for _, col := range []string{dictionary.ColValueType, dictionary.ColLabel} {
			if !variables.Has(col) {
				_ = variables.AddColumn(col, make([]string, variables.NumRows()))
			}
		}
		if categories.NumRows() > 0 && !categories.Has(dictionary.ColMissing) {
			_ = categories.AddColumn(dictionary.ColMissing, make([]string, categories.NumRows()))
		}
	}
	return &dictionary.DataDict{Variables: variables, Categories: categories}
}

// summaryGrid reshapes the normalized Variables table to the fixed summary
// layout: index, name, label, valueType, one column per declared category
// value, then any remaining columns. It also returns the name-to-index join
// map used by the dataset assessment.
func summaryGrid(dd *dictionary.DataDict) (report.Grid, map[string]int) {
	vars := dd.Variables
	names := vars.Column(dictionary.ColName)

	fixed := []string{dictionary.ColIndex, dictionary.ColName, dictionary.ColLabel, dictionary.ColValueType}
	inFixed := map[string]bool{}
	for _, c := range fixed {
		inFixed[c] = true
	}
	var remaining []string
	for _, c := range vars.Columns() {
		if !inFixed[c] {
			remaining = append(remaining, c)
		}
	}

	catNames, catCells := pivotCategories(dd)

	header := append([]string{}, fixed...)
	for _, c := range catNames {
		header = append(header, "category:"+c)
	}
	header = append(header, remaining...)

	g := report.Grid{Header: header}
	indexOf := make(map[string]int, len(names))
	for i := range names {
		indexOf[names[i]] = i
		row := make([]string, 0, len(header))
		for _, c := range fixed {
			row = append(row, vars.Cell(i, c))
		}
		for _, c := range catNames {
			row = append(row, catCells[names[i]][c])
		}
		for _, c := range remaining {
			row = append(row, vars.Cell(i, c))
		}
		g.Rows = append(g.Rows, row)
	}
	return g, indexOf
}

// pivotCategories spreads the Categories sheet into one column per declared
// category value, cells holding the category label when present, otherwise
// the value itself.
func pivotCategories(dd *dictionary.DataDict) ([]string, map[string]map[string]string) {
	cells := make(map[string]map[string]string)
	var order []string
	seen := make(map[string]bool)
	if dd.Categories.NumRows() == 0 {
		return order, cells
	}
	variables := dd.Categories.Column(dictionary.ColVariable)
	names := dd.Categories.Column(dictionary.ColName)
	hasLabel := dd.Categories.Has(dictionary.ColLabel)
	for i := range variables {
		if !seen[names[i]] {
			seen[names[i]] = true
			order = append(order, names[i])
		}
		cell := names[i]
		if hasLabel {
			if label := dd.Categories.Cell(i, dictionary.ColLabel); !table.IsMissing(label) {
				cell = label
			}
		}
		if cells[variables[i]] == nil {
			cells[variables[i]] = make(map[string]string)
		}
		cells[variables[i]][names[i]] = cell
	}
	return order, cells
}

// indexOfFunc adapts the summary join map to the report projection signature.
func indexOfFunc(m map[string]int) func(string) (int, bool) {
	return func(name string) (int, bool) {
		if name == "" {
			return 0, false
		}
		idx, ok := m[name]
		return idx, ok
	}
}
