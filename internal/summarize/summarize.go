// Package summarize computes per-variable summary statistics for a dataset,
// the companion table appended after the assessment sections.
package summarize

import (
	"sort"
	"strconv"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"datacheck/domain/report"
	"datacheck/domain/table"
	"datacheck/domain/valuetype"
)

var header = []string{
	"name", "valueType", "n", "n_missing", "pct_missing", "n_distinct",
	"min", "max", "mean", "median", "sd", "q1", "q3",
}

// Variables builds the per-variable summary grid: counts for every column,
// plus moment and quartile statistics for numerically inferred columns.
func Variables(ds *table.Dataset) report.Grid {
	g := report.Grid{Header: header}
	for _, name := range ds.VariableColumns() {
		g.Rows = append(g.Rows, summarizeColumn(name, ds.Column(name)))
	}
	return g
}

func summarizeColumn(name string, values []string) []string {
	n := len(values)
	missing := 0
	distinct := make(map[string]struct{})
	var numeric []float64
	for _, v := range values {
		if table.IsMissing(v) {
			missing++
			continue
		}
		distinct[v] = struct{}{}
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			numeric = append(numeric, f)
		}
	}

	vt := valuetype.Infer(values)
	row := []string{
		name,
		vt.Name,
		strconv.Itoa(n),
		strconv.Itoa(missing),
		formatPct(missing, n),
		strconv.Itoa(len(distinct)),
	}

	if vt.Generic != valuetype.GenericNumeric || len(numeric) == 0 {
		return append(row, "", "", "", "", "", "", "")
	}

	min, _ := stats.Min(numeric)
	max, _ := stats.Max(numeric)
	mean, _ := stats.Mean(numeric)
	median, _ := stats.Median(numeric)
	sd, _ := stats.StandardDeviationSample(numeric)
	if len(numeric) < 2 {
		sd = 0
	}

	sorted := make([]float64, len(numeric))
	copy(sorted, numeric)
	sort.Float64s(sorted)
	q1 := stat.Quantile(0.25, stat.Empirical, sorted, nil)
	q3 := stat.Quantile(0.75, stat.Empirical, sorted, nil)

	return append(row,
		formatFloat(min), formatFloat(max), formatFloat(mean),
		formatFloat(median), formatFloat(sd), formatFloat(q1), formatFloat(q3),
	)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', 6, 64)
}

func formatPct(part, whole int) string {
	if whole == 0 {
		return "0"
	}
	return strconv.FormatFloat(100*float64(part)/float64(whole), 'f', 1, 64)
}
