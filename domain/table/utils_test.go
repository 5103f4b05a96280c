package table

import (
	"reflect"
	"testing"
)

func TestDuplicatedColumnGroups(t *testing.T) {
	tbl := mustTable(t, []string{"a", "b", "c", "d"}, [][]string{
		{"1", "1", "2", "1"},
		{"3", "3", "4", "3"},
	})
	groups := DuplicatedColumnGroups(tbl)
	if len(groups) != 1 {
		t.Fatalf("groups = %v", groups)
	}
	if !reflect.DeepEqual(groups[0], []string{"a", "b", "d"}) {
		t.Errorf("group = %v", groups[0])
	}
}

func TestDuplicatedRowGroups(t *testing.T) {
	t.Run("groups identical rows under their id values", func(t *testing.T) {
		ds := mustDataset(t, []string{"id", "a"}, [][]string{{"1", "x"}, {"2", "x"}}, "id")
		groups := DuplicatedRowGroups(ds)
		if len(groups) != 1 {
			t.Fatalf("groups = %v", groups)
		}
		if got := groups[0].DisplayIDs(); got != "1, 2" {
			t.Errorf("DisplayIDs() = %q, want %q (no ellipsis below six entries)", got, "1, 2")
		}
	})

	t.Run("truncates displayed ids at five with ellipsis", func(t *testing.T) {
		rows := [][]string{}
		for _, id := range []string{"1", "2", "3", "4", "5", "6", "7"} {
			rows = append(rows, []string{id, "same"})
		}
		ds := mustDataset(t, []string{"id", "a"}, rows, "id")
		groups := DuplicatedRowGroups(ds)
		if len(groups) != 1 {
			t.Fatalf("groups = %v", groups)
		}
		if got := groups[0].DisplayIDs(); got != "1, 2, 3, 4, 5, ..." {
			t.Errorf("DisplayIDs() = %q", got)
		}
	})

	t.Run("empty dataset produces no groups", func(t *testing.T) {
		ds := mustDataset(t, []string{"id", "a"}, nil, "id")
		if groups := DuplicatedRowGroups(ds); groups != nil {
			t.Errorf("groups = %v", groups)
		}
	})
}

func TestAllMissingRowIDs(t *testing.T) {
	ds := mustDataset(t, []string{"id", "a", "b"}, [][]string{
		{"1", "", "NA"},
		{"2", "x", ""},
	}, "id")
	if got := AllMissingRowIDs(ds); !reflect.DeepEqual(got, []string{"1"}) {
		t.Errorf("AllMissingRowIDs() = %v", got)
	}
}

func TestAllMissingColumnNames(t *testing.T) {
	tbl := mustTable(t, []string{"id", "a", "b"}, [][]string{
		{"1", "", "x"},
		{"2", "NA", "y"},
	})
	if got := AllMissingColumnNames(tbl, "id"); !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("AllMissingColumnNames() = %v", got)
	}

	empty := mustTable(t, []string{"a"}, nil)
	if got := AllMissingColumnNames(empty, ""); got != nil {
		t.Errorf("zero-row table reported all-missing columns: %v", got)
	}
}

func TestConstantColumns(t *testing.T) {
	tbl := mustTable(t, []string{"id", "a", "b", "c"}, [][]string{
		{"1", "x", "p", ""},
		{"2", "x", "q", "NA"},
		{"3", "NA", "p", ""},
	})
	// c is all-missing, not constant; a is constant ignoring missing values
	if got := ConstantColumns(tbl, "id"); !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("ConstantColumns() = %v", got)
	}

	empty := mustTable(t, []string{"a"}, nil)
	if got := ConstantColumns(empty, ""); got != nil {
		t.Errorf("zero-row table reported constant columns: %v", got)
	}
}

func TestInjectIndex(t *testing.T) {
	tbl := mustTable(t, []string{"name"}, [][]string{{"a"}, {"b"}})
	indexed := InjectIndex(tbl, "index")
	if !reflect.DeepEqual(indexed.Columns(), []string{"index", "name"}) {
		t.Fatalf("Columns() = %v", indexed.Columns())
	}
	if !reflect.DeepEqual(indexed.Column("index"), []string{"0", "1"}) {
		t.Errorf("index = %v", indexed.Column("index"))
	}
	// the source table is untouched
	if tbl.Has("index") {
		t.Error("InjectIndex mutated its input")
	}
}

func TestDistinctNonMissing(t *testing.T) {
	got := DistinctNonMissing([]string{"b", "a", "", "b", "NA", "a"})
	if !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("DistinctNonMissing() = %v", got)
	}
}
