package summarize

import (
	"testing"

	"datacheck/domain/table"
)

func buildDataset(t *testing.T, header []string, rows [][]string, idColumn string) *table.Dataset {
	t.Helper()
	tbl, err := table.FromRows(header, rows)
	if err != nil {
		t.Fatalf("FromRows failed: %v", err)
	}
	ds, err := table.NewDataset(tbl, idColumn)
	if err != nil {
		t.Fatalf("NewDataset failed: %v", err)
	}
	return ds
}

func rowFor(g map[string][]string, name string) []string {
	return g[name]
}

func index(header []string, col string) int {
	for i, h := range header {
		if h == col {
			return i
		}
	}
	return -1
}

func TestVariables(t *testing.T) {
	ds := buildDataset(t,
		[]string{"id", "age", "note"},
		[][]string{
			{"1", "10", "alpha"},
			{"2", "20", "beta"},
			{"3", "30", ""},
			{"4", "NA", "alpha"},
		},
		"id")

	g := Variables(ds)
	if len(g.Rows) != 2 {
		t.Fatalf("id column must be excluded, rows = %v", g.Rows)
	}

	byName := make(map[string][]string)
	for _, row := range g.Rows {
		byName[row[0]] = row
	}

	age := rowFor(byName, "age")
	if age == nil {
		t.Fatal("no summary row for age")
	}
	cases := map[string]string{
		"valueType":   "integer",
		"n":           "4",
		"n_missing":   "1",
		"pct_missing": "25.0",
		"n_distinct":  "3",
		"min":         "10",
		"max":         "30",
		"mean":        "20",
		"median":      "20",
		"sd":          "10",
	}
	for col, want := range cases {
		if got := age[index(g.Header, col)]; got != want {
			t.Errorf("age %s = %q, want %q", col, got, want)
		}
	}

	note := rowFor(byName, "note")
	if note == nil {
		t.Fatal("no summary row for note")
	}
	if got := note[index(g.Header, "valueType")]; got != "text" {
		t.Errorf("note valueType = %q", got)
	}
	if got := note[index(g.Header, "n_distinct")]; got != "2" {
		t.Errorf("note n_distinct = %q", got)
	}
	// Non-numeric columns carry no moment statistics.
	for _, col := range []string{"min", "max", "mean", "median", "sd", "q1", "q3"} {
		if got := note[index(g.Header, col)]; got != "" {
			t.Errorf("note %s = %q, want empty", col, got)
		}
	}
}

func TestVariables_SingleValueSD(t *testing.T) {
	ds := buildDataset(t, []string{"id", "x"}, [][]string{{"1", "5"}}, "id")
	g := Variables(ds)
	if got := g.Rows[0][index(g.Header, "sd")]; got != "0" {
		t.Errorf("sd of a single value = %q, want 0", got)
	}
}

func TestVariables_EmptyDataset(t *testing.T) {
	ds := buildDataset(t, []string{"id", "x"}, nil, "id")
	g := Variables(ds)
	if len(g.Rows) != 1 {
		t.Fatalf("rows = %v", g.Rows)
	}
	row := g.Rows[0]
	if got := row[index(g.Header, "n")]; got != "0" {
		t.Errorf("n = %q", got)
	}
	if got := row[index(g.Header, "pct_missing")]; got != "0" {
		t.Errorf("pct_missing = %q", got)
	}
	if got := row[index(g.Header, "valueType")]; got != "text" {
		t.Errorf("all-missing column must infer text, got %q", got)
	}
}
