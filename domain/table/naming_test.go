package table

import (
	"reflect"
	"testing"
)

func TestInvalidNames(t *testing.T) {
	names := []string{"age", "visit_1", "lab.result", "1bad", "has space", "", "héight"}
	got := InvalidNames(names)
	want := []string{"1bad", "has space", "", "héight"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("InvalidNames() = %v, want %v", got, want)
	}
}
