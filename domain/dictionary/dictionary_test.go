package dictionary

import (
	"errors"
	"reflect"
	"testing"

	"datacheck/domain/core"
	"datacheck/domain/table"
)

func mustTable(t *testing.T, header []string, rows [][]string) *table.Table {
	t.Helper()
	tbl, err := table.FromRows(header, rows)
	if err != nil {
		t.Fatalf("FromRows failed: %v", err)
	}
	return tbl
}

func TestNew_Validation(t *testing.T) {
	t.Run("variables without a name column fail", func(t *testing.T) {
		_, err := New(mustTable(t, []string{"label"}, nil), nil)
		if !errors.Is(err, core.ErrShape) {
			t.Fatalf("expected shape error, got %v", err)
		}
	})

	t.Run("duplicated variable names fail at construction", func(t *testing.T) {
		variables := mustTable(t, []string{"name"}, [][]string{{"age"}, {"age"}})
		_, err := New(variables, nil)
		if !errors.Is(err, core.ErrShape) {
			t.Fatalf("expected shape error, got %v", err)
		}
	})

	t.Run("duplicated category pairs fail at construction", func(t *testing.T) {
		variables := mustTable(t, []string{"name"}, [][]string{{"sex"}})
		categories := mustTable(t, []string{"variable", "name"}, [][]string{{"sex", "1"}, {"sex", "1"}})
		_, err := New(variables, categories)
		if !errors.Is(err, core.ErrShape) {
			t.Fatalf("expected shape error, got %v", err)
		}
	})

	t.Run("nil categories are synthesized empty", func(t *testing.T) {
		dd, err := New(mustTable(t, []string{"name"}, [][]string{{"age"}}), nil)
		if err != nil {
			t.Fatal(err)
		}
		if dd.Categories == nil || dd.Categories.NumRows() != 0 {
			t.Error("expected an empty Categories table")
		}
	})
}

func TestValidateShape_ToleratesDuplicateNames(t *testing.T) {
	// Merged dictionaries may carry duplicated names; evaluation surfaces
	// them as a finding instead of refusing the input.
	variables := mustTable(t, []string{"name"}, [][]string{{"age"}, {"age"}})
	dd := &DataDict{Variables: variables, Categories: emptyCategories()}
	if err := ValidateShape(dd); err != nil {
		t.Fatalf("ValidateShape rejected duplicated names: %v", err)
	}
}

func TestCategoryValues(t *testing.T) {
	variables := mustTable(t, []string{"name"}, [][]string{{"sex"}, {"age"}})
	categories := mustTable(t, []string{"variable", "name"}, [][]string{
		{"sex", "0"}, {"sex", "1"},
	})
	dd, err := New(variables, categories)
	if err != nil {
		t.Fatal(err)
	}
	if got := dd.CategoryValues("sex"); !reflect.DeepEqual(got, []string{"0", "1"}) {
		t.Errorf("CategoryValues(sex) = %v", got)
	}
	if got := dd.CategoryValues("age"); got != nil {
		t.Errorf("CategoryValues(age) = %v", got)
	}
}

func TestValueTypeOf(t *testing.T) {
	variables := mustTable(t, []string{"name", "valueType"}, [][]string{
		{"age", "integer"}, {"note", ""},
	})
	dd, err := New(variables, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := dd.ValueTypeOf("age"); got != "integer" {
		t.Errorf("ValueTypeOf(age) = %q", got)
	}
	if got := dd.ValueTypeOf("note"); got != "" {
		t.Errorf("ValueTypeOf(note) = %q", got)
	}
	if got := dd.ValueTypeOf("absent"); got != "" {
		t.Errorf("ValueTypeOf(absent) = %q", got)
	}
}

func TestDerive(t *testing.T) {
	tbl := mustTable(t, []string{"id", "age"}, [][]string{{"1", "30"}, {"2", "41"}})
	ds, err := table.NewDataset(tbl, "id")
	if err != nil {
		t.Fatal(err)
	}

	t.Run("minimal derivation declares non-id columns", func(t *testing.T) {
		dd, err := DeriveMinimal(ds)
		if err != nil {
			t.Fatal(err)
		}
		if got := dd.VariableNames(); !reflect.DeepEqual(got, []string{"age"}) {
			t.Errorf("VariableNames() = %v", got)
		}
		if dd.Variables.Has(ColValueType) {
			t.Error("minimal derivation must not carry a valueType column")
		}
	})

	t.Run("extended derivation infers value types", func(t *testing.T) {
		dd, err := DeriveExtended(ds)
		if err != nil {
			t.Fatal(err)
		}
		if got := dd.ValueTypeOf("age"); got != "integer" {
			t.Errorf("ValueTypeOf(age) = %q", got)
		}
		if !dd.Variables.Has(ColLabel) {
			t.Error("extended derivation must carry a label column")
		}
	})

	t.Run("fallback is not taken when extended succeeds", func(t *testing.T) {
		called := false
		dd, err := Derive(ds, true, func(error) { called = true })
		if err != nil {
			t.Fatal(err)
		}
		if called {
			t.Error("fallback invoked without a failure")
		}
		if !dd.Variables.Has(ColValueType) {
			t.Error("expected the extended derivation")
		}
	})
}

func TestValidateTaxonomyShape(t *testing.T) {
	base := mustTable(t, []string{"taxonomy", "vocabulary", "terms"}, [][]string{{"a", "b", "c"}})
	if _, err := NewTaxonomy(base, false); err != nil {
		t.Fatalf("minimal taxonomy rejected: %v", err)
	}
	if _, err := NewTaxonomy(base, true); !errors.Is(err, core.ErrShape) {
		t.Fatalf("extended mode must require the scale columns, got %v", err)
	}

	ext := mustTable(t, []string{
		"taxonomy", "vocabulary", "terms",
		"vocabulary_short", "taxonomy_scale", "vocabulary_scale", "term_scale",
	}, nil)
	if _, err := NewTaxonomy(ext, true); err != nil {
		t.Fatalf("extended taxonomy rejected: %v", err)
	}
}
