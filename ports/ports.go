// Package ports declares the interfaces the core exposes to and consumes from
// external collaborators.
package ports

import (
	"context"

	"datacheck/domain/core"
	"datacheck/domain/dictionary"
	"datacheck/domain/report"
	"datacheck/domain/table"
)

// DatasetReader loads tabular data. The core treats implementations as opaque
// table producers.
type DatasetReader interface {
	// ReadDataset loads a dataset; idColumn may be empty.
	ReadDataset(idColumn string) (*table.Dataset, error)
	// ReadDataDict loads a data dictionary workbook (Variables/Categories).
	ReadDataDict() (*dictionary.DataDict, error)
}

// ReportWriter renders a report for consumers, one worksheet per section.
type ReportWriter interface {
	WriteReport(path string, rep *report.Report) error
}

// RunSummary describes one persisted evaluation run.
type RunSummary struct {
	ID          core.ID `db:"id"`
	DatasetName string  `db:"dataset_name"`
	Extended    bool    `db:"extended"`
	Sections    int     `db:"sections"`
	CreatedAt   string  `db:"created_at"`
}

// EvaluationStore persists evaluation runs. Persistence happens strictly
// outside the evaluators; the core stays pure.
type EvaluationStore interface {
	Save(ctx context.Context, datasetName string, extended bool, rep *report.Report) (*RunSummary, error)
	Get(ctx context.Context, id core.ID) (*RunSummary, *report.Report, error)
	List(ctx context.Context, limit int) ([]RunSummary, error)
}
