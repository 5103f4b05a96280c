package valuetype

import (
	"testing"
)

func TestInfer_Priority(t *testing.T) {
	cases := []struct {
		name   string
		values []string
		want   string
	}{
		{"integers with missing", []string{"1", "2", "NA"}, "integer"},
		{"integers with empty", []string{"-3", "", "42"}, "integer"},
		{"decimals", []string{"1.5", "2"}, "decimal"},
		{"booleans", []string{"true", "FALSE", "NA"}, "boolean"},
		{"zero one codes read as integer", []string{"0", "1"}, "integer"},
		{"dates", []string{"2021-01-02", "1999/12/31"}, "date"},
		{"datetimes", []string{"2021-01-02T10:00:00Z", "2021-01-02 10:00:00"}, "datetime"},
		{"mixed falls back to text", []string{"1", "abc"}, "text"},
		{"all missing infers text", []string{"", "NA", ""}, "text"},
		{"empty column infers text", nil, "text"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Infer(tc.values)
			if got.Name != tc.want {
				t.Errorf("Infer(%v) = %q, want %q", tc.values, got.Name, tc.want)
			}
		})
	}
}

func TestCatalog_FixedEntries(t *testing.T) {
	if len(Catalog) != 12 {
		t.Fatalf("catalog must hold exactly 12 entries, got %d", len(Catalog))
	}
	generics := map[string]GenericType{
		"boolean": GenericNumeric, "integer": GenericNumeric, "decimal": GenericNumeric,
		"date": GenericTemporal, "datetime": GenericTemporal,
		"text": GenericCharacter,
	}
	for name, want := range generics {
		vt, ok := Lookup(name)
		if !ok {
			t.Fatalf("catalog is missing %q", name)
		}
		if vt.Generic != want {
			t.Errorf("%s generic = %q, want %q", name, vt.Generic, want)
		}
	}
	if _, ok := Lookup("unknown"); ok {
		t.Error("Lookup accepted an unknown type name")
	}
}

func TestReconcile(t *testing.T) {
	integers := []string{"1", "2", "NA"}

	t.Run("integer content under text declaration mismatches once", func(t *testing.T) {
		m := Reconcile(integers, "text")
		if m == nil {
			t.Fatal("expected a mismatch")
		}
		if m.Inferred.Name != "integer" || m.Declared.Name != "text" {
			t.Errorf("got %s vs %s", m.Declared.Name, m.Inferred.Name)
		}
		if !m.Lossless {
			t.Error("text can represent integer content, mismatch should be lossless")
		}
	})

	t.Run("integer content satisfies decimal declaration", func(t *testing.T) {
		if m := Reconcile(integers, "decimal"); m != nil {
			t.Errorf("unexpected mismatch: %+v", m)
		}
	})

	t.Run("text content under integer declaration is lossy", func(t *testing.T) {
		m := Reconcile([]string{"abc", "def"}, "integer")
		if m == nil {
			t.Fatal("expected a mismatch")
		}
		if m.Lossless {
			t.Error("integer cannot represent text content")
		}
	})

	t.Run("no declared type yields no mismatch", func(t *testing.T) {
		if m := Reconcile(integers, ""); m != nil {
			t.Errorf("unexpected mismatch: %+v", m)
		}
	})

	t.Run("all-missing column yields no mismatch", func(t *testing.T) {
		if m := Reconcile([]string{"", "NA"}, "integer"); m != nil {
			t.Errorf("unexpected mismatch: %+v", m)
		}
	})

	t.Run("unknown declared type is left to the declaration check", func(t *testing.T) {
		if m := Reconcile(integers, "varchar"); m != nil {
			t.Errorf("unexpected mismatch: %+v", m)
		}
	})
}

func TestIsBooleanLike(t *testing.T) {
	for _, v := range []string{"true", "FALSE", "0", "1", "yes", "NO", "T"} {
		if !IsBooleanLike(v) {
			t.Errorf("IsBooleanLike(%q) = false", v)
		}
	}
	for _, v := range []string{"2", "maybe", ""} {
		if IsBooleanLike(v) {
			t.Errorf("IsBooleanLike(%q) = true", v)
		}
	}
}
