package evaluate

import (
	"datacheck/domain/dictionary"
	"datacheck/domain/report"
	"datacheck/domain/table"
	"datacheck/internal/checks"
	"datacheck/internal/summarize"
)

// Dataset assesses one dataset together with its supplied or derived data
// dictionary, producing the layered report: dictionary summary, dictionary
// assessment, dataset assessment, variables summary. Sections that stay empty
// are computed but omitted.
func (e *Evaluator) Dataset(ds *table.Dataset, dd *dictionary.DataDict, taxo *dictionary.Taxonomy, name string, extended bool) (*report.Report, error) {
	if err := table.ValidateDatasetShape(ds); err != nil {
		return nil, err
	}
	if name == "" {
		name = "dataset"
	}
	e.log.Notice("evaluating dataset %q", name)

	// Identifier-dependent checks need an id column; synthesize the row
	// index when none is declared or the dataset has a single column.
	ds = ds.EnsureIDColumn()

	if dd == nil {
		var err error
		dd, err = dictionary.Derive(ds, extended, func(derr error) {
			e.log.Warn("extended dictionary derivation failed for %q, retrying minimal: %v", name, derr)
		})
		if err != nil {
			return nil, err
		}
	}

	dictReport, indexOf, err := e.evaluateDictionary(dd, taxo, extended)
	if err != nil {
		return nil, err
	}

	rep := report.New()
	for _, s := range dictReport.Sections() {
		rep.Add(s.Name, s.Grid)
	}

	var findings []report.Finding
	findings = append(findings, e.run("naming standard (dataset)", func() []report.Finding {
		return checks.DatasetNaming(ds)
	})...)
	findings = append(findings, e.run("dataset vs dictionary variables", func() []report.Finding {
		return checks.DatasetVariables(ds, dd)
	})...)
	findings = append(findings, e.run("duplicated columns", func() []report.Finding {
		return checks.DuplicatedColumns(ds.Table, report.SheetDataset)
	})...)
	if ds.NumRows() > 0 {
		findings = append(findings, e.run("duplicated rows", func() []report.Finding {
			return checks.DuplicatedRows(ds)
		})...)
		findings = append(findings, e.run("constant columns", func() []report.Finding {
			return checks.UniqueValueColumns(ds)
		})...)
	}
	findings = append(findings, e.run("all-missing rows", func() []report.Finding {
		return checks.AllMissingRows(ds, report.SheetDataset)
	})...)
	findings = append(findings, e.run("all-missing columns", func() []report.Finding {
		return checks.AllMissingColumns(ds.Table, ds.IDColumn(), report.SheetDataset)
	})...)
	findings = append(findings, e.run("category values", func() []report.Finding {
		return checks.DatasetCategories(ds, dd)
	})...)
	if extended {
		findings = append(findings, e.run("type reconciliation", func() []report.Finding {
			return checks.TypeReconciliation(ds, dd)
		})...)
	}

	findings = dropSyntheticID(findings)
	assessment := report.DatasetGrid(findings, indexOfFunc(indexOf))
	e.notice(SectionDatasetAssessment, assessment)
	rep.Add(SectionDatasetAssessment, assessment)

	summary := e.runGrid("variables summary", func() report.Grid {
		return summarize.Variables(ds)
	})
	rep.Add(SectionVariablesSummary, summary)

	return rep, nil
}

// Dataset runs the default evaluator.
func Dataset(ds *table.Dataset, dd *dictionary.DataDict, taxo *dictionary.Taxonomy, name string, extended bool) (*report.Report, error) {
	return defaultEvaluator.Dataset(ds, dd, taxo, name, extended)
}

// runGrid mirrors run for checks that build a whole grid.
func (e *Evaluator) runGrid(phase string, fn func() report.Grid) (g report.Grid) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Warn("check %q failed, section skipped: %v", phase, r)
			g = report.Grid{}
		}
	}()
	e.log.Notice("running check: %s", phase)
	return fn()
}

// dropSyntheticID removes findings that name the synthetic row-index column;
// it exists only to anchor identifier-dependent checks.
func dropSyntheticID(findings []report.Finding) []report.Finding {
	out := findings[:0]
	for _, f := range findings {
		if f.Column == table.IndexColumn || f.Entity == table.IndexColumn {
			continue
		}
		out = append(out, f)
	}
	return out
}
