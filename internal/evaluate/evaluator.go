// Package evaluate orchestrates the checker battery into layered quality
// reports for data dictionaries, datasets and dossiers.
package evaluate

import (
	"datacheck/domain/report"
	"datacheck/internal"
)

// Report section names, fixed by the reporting convention.
const (
	SectionDictionarySummary    = "Data dictionary summary"
	SectionDictionaryAssessment = "Data dictionary assessment"
	SectionDatasetAssessment    = "Dataset assessment"
	SectionVariablesSummary     = "Variables summary"
)

// Evaluator runs evaluations and reports progress through its logger. It
// holds no mutable state between calls; every evaluation is call-scoped.
type Evaluator struct {
	log      *internal.Logger
	parallel int
}

// New creates an evaluator. A nil logger falls back to the default.
func New(log *internal.Logger) *Evaluator {
	if log == nil {
		log = internal.DefaultLogger
	}
	return &Evaluator{log: log, parallel: 4}
}

// WithParallelism bounds concurrent dossier entries. Values below one are
// coerced to sequential evaluation.
func (e *Evaluator) WithParallelism(n int) *Evaluator {
	if n < 1 {
		n = 1
	}
	return &Evaluator{log: e.log, parallel: n}
}

// run executes one check phase, degrading an unexpected panic to a skipped
// section instead of aborting the whole evaluation.
func (e *Evaluator) run(phase string, fn func() []report.Finding) (findings []report.Finding) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Warn("check %q failed, section skipped: %v", phase, r)
			findings = nil
		}
	}()
	e.log.Notice("running check: %s", phase)
	return fn()
}

// notice reports an assembled section, or the explicit no-issues outcome for a
// section that was computed but stayed empty.
func (e *Evaluator) notice(section string, g report.Grid) {
	if g.Empty() {
		e.log.Notice("%s: no issues found", section)
		return
	}
	e.log.Notice("%s: %d rows", section, len(g.Rows))
}

var defaultEvaluator = New(nil)
