package checks

import (
	"strings"

	"datacheck/domain/dictionary"
	"datacheck/domain/report"
	"datacheck/domain/table"
	"datacheck/domain/valuetype"
)

// Checks that only run in extended (tagged) mode, where the dictionary carries
// valueType, label and missing columns.

// labelColumns returns the label-bearing columns of a table: label itself and
// any localized label:<locale> variant.
func labelColumns(t *table.Table) []string {
	var out []string
	for _, name := range t.Columns() {
		if name == dictionary.ColLabel || strings.HasPrefix(name, dictionary.ColLabel+":") {
			out = append(out, name)
		}
	}
	return out
}

// LabelCompleteness flags variables and categories lacking a non-missing
// label in every label column.
func LabelCompleteness(dd *dictionary.DataDict) []report.Finding {
	var findings []report.Finding
	findings = append(findings, missingLabels(dd.Variables, dictionary.ColName, report.SheetVariables)...)
	if dd.Categories.NumRows() > 0 {
		findings = append(findings, missingLabels(dd.Categories, dictionary.ColName, report.SheetCategories)...)
	}
	return findings
}

func missingLabels(t *table.Table, nameCol string, sheet report.Sheet) []report.Finding {
	labels := labelColumns(t)
	var findings []report.Finding
	names := t.Column(nameCol)
	for i := range names {
		labelled := false
		for _, col := range labels {
			if !table.IsMissing(t.Cell(i, col)) {
				labelled = true
				break
			}
		}
		if !labelled {
			findings = append(findings, report.Finding{
				Entity:  names[i],
				Column:  dictionary.ColLabel,
				Sheet:   sheet,
				Message: report.ErrorMessage("entry has no label"),
			})
		}
	}
	return findings
}

// ValueTypeDeclarations flags declared value types that are not catalog
// entries.
func ValueTypeDeclarations(dd *dictionary.DataDict) []report.Finding {
	if !dd.Variables.Has(dictionary.ColValueType) {
		return nil
	}
	names := dd.Variables.Column(dictionary.ColName)
	var findings []report.Finding
	for i, vt := range dd.Variables.Column(dictionary.ColValueType) {
		if table.IsMissing(vt) {
			continue
		}
		if _, ok := valuetype.Lookup(vt); !ok {
			findings = append(findings, report.Finding{
				Entity:   names[i],
				Column:   dictionary.ColValueType,
				Sheet:    report.SheetVariables,
				Message:  report.ErrorMessage("declared valueType is not a known value type"),
				Evidence: vt,
			})
		}
	}
	return findings
}

// TypeReconciliation compares each dataset column's content against its
// declared valueType. Compatible columns and columns without a declared type
// produce no finding; empty columns never mismatch.
func TypeReconciliation(ds *table.Dataset, dd *dictionary.DataDict) []report.Finding {
	var findings []report.Finding
	for _, name := range ds.VariableColumns() {
		declared := dd.ValueTypeOf(name)
		mismatch := valuetype.Reconcile(ds.Column(name), declared)
		if mismatch == nil {
			continue
		}
		msg := report.ErrorMessage("values cannot be represented as the declared type %q (inferred %q)",
			mismatch.Declared.Name, mismatch.Inferred.Name)
		if mismatch.Lossless {
			msg = report.InfoMessage("declared type %q is broader than the inferred type %q",
				mismatch.Declared.Name, mismatch.Inferred.Name)
		}
		findings = append(findings, report.Finding{
			Column:   name,
			Sheet:    report.SheetDataset,
			Message:  msg,
			Evidence: mismatch.Inferred.Name,
		})
	}
	return findings
}
