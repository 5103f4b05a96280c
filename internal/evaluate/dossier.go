package evaluate

import (
	"sync"

	"golang.org/x/sync/errgroup"

	"datacheck/domain/core"
	"datacheck/domain/dictionary"
	"datacheck/domain/report"
	"datacheck/domain/table"
)

// Entry is one named dataset of a dossier.
type Entry struct {
	Name    string
	Dataset *table.Dataset
}

// DossierResult maps each entry name to its report. A failing entry surfaces
// its own error in Errors without suppressing sibling reports.
type DossierResult struct {
	Order   []string
	Reports map[string]*report.Report
	Errors  map[string]error
}

// Dossier applies the dataset evaluator to every entry of a named collection,
// preserving entry names as report keys. Entries are independent and run
// concurrently up to the evaluator's parallelism bound; no cross-dataset
// checks are performed. An entry whose evaluation fails, including a dataset
// shape failure, surfaces in Errors without suppressing sibling reports.
func (e *Evaluator) Dossier(entries []Entry, taxo *dictionary.Taxonomy, extended bool) (*DossierResult, error) {
	if err := validateDossierShape(entries); err != nil {
		return nil, err
	}

	result := &DossierResult{
		Reports: make(map[string]*report.Report, len(entries)),
		Errors:  make(map[string]error),
	}
	for _, entry := range entries {
		result.Order = append(result.Order, entry.Name)
	}

	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(e.parallel)
	for _, entry := range entries {
		entry := entry
		g.Go(func() error {
			rep, err := e.Dataset(entry.Dataset, nil, taxo, entry.Name, extended)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Errors[entry.Name] = err
				return nil
			}
			result.Reports[entry.Name] = rep
			return nil
		})
	}
	_ = g.Wait()
	return result, nil
}

// Dossier runs the default evaluator.
func Dossier(entries []Entry, taxo *dictionary.Taxonomy, extended bool) (*DossierResult, error) {
	return defaultEvaluator.Dossier(entries, taxo, extended)
}

// validateDossierShape checks the collection contract: non-empty, uniquely
// named entries. Each entry's own dataset shape is checked by the dataset
// evaluator, so a malformed entry fails alone instead of aborting the dossier.
func validateDossierShape(entries []Entry) error {
	if len(entries) == 0 {
		return core.NewShapeError("dossier", "", "dossier is empty")
	}
	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		if entry.Name == "" {
			return core.NewShapeError("dossier", "", "entry has no name")
		}
		if _, ok := seen[entry.Name]; ok {
			return core.NewShapeError("dossier", entry.Name, "entry name is duplicated")
		}
		seen[entry.Name] = struct{}{}
	}
	return nil
}
