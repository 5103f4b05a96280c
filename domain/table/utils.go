package table

import (
	"sort"
	"strconv"
	"strings"
)

// Column-group and row-group utilities shared by the checker battery. They
// return plain results; the checks layer formats them into findings.

// DuplicatedColumnGroups returns groups of columns whose values are
// element-wise identical. Each group lists the column names in table order.
// Tables with no rows report no groups.
func DuplicatedColumnGroups(t *Table) [][]string {
	if t.NumRows() == 0 {
		return nil
	}
	groups := make(map[string][]string)
	var keys []string
	for _, name := range t.Columns() {
		key := strings.Join(t.Column(name), "\x1f")
		if _, ok := groups[key]; !ok {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], name)
	}
	var out [][]string
	for _, key := range keys {
		if len(groups[key]) > 1 {
			out = append(out, groups[key])
		}
	}
	return out
}

// RowGroup describes one set of duplicated rows, identified by their id
// values in row order.
type RowGroup struct {
	IDs []string
}

// duplicateDisplayLimit bounds how many id values a duplicate-row group lists.
const duplicateDisplayLimit = 5

// DisplayIDs renders the group's id values truncated at the display limit,
// with an ellipsis marker when values were cut.
func (g RowGroup) DisplayIDs() string {
	if len(g.IDs) <= duplicateDisplayLimit {
		return strings.Join(g.IDs, ", ")
	}
	return strings.Join(g.IDs[:duplicateDisplayLimit], ", ") + ", ..."
}

// DuplicatedRowGroups returns groups of rows that are identical across all
// non-id columns. Datasets with no rows produce no groups.
func DuplicatedRowGroups(d *Dataset) []RowGroup {
	cols := d.VariableColumns()
	if len(cols) == 0 || d.NumRows() == 0 {
		return nil
	}
	ids := d.IDValues()
	groups := make(map[string][]string)
	var keys []string
	for i := 0; i < d.NumRows(); i++ {
		parts := make([]string, len(cols))
		for j, name := range cols {
			parts[j] = d.Cell(i, name)
		}
		key := strings.Join(parts, "\x1f")
		if _, ok := groups[key]; !ok {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], ids[i])
	}
	var out []RowGroup
	for _, key := range keys {
		if len(groups[key]) > 1 {
			out = append(out, RowGroup{IDs: groups[key]})
		}
	}
	return out
}

// AllMissingRowIDs returns the ids of rows whose every non-id value is
// missing.
func AllMissingRowIDs(d *Dataset) []string {
	cols := d.VariableColumns()
	if len(cols) == 0 {
		return nil
	}
	ids := d.IDValues()
	var out []string
	for i := 0; i < d.NumRows(); i++ {
		allMissing := true
		for _, name := range cols {
			if !IsMissing(d.Cell(i, name)) {
				allMissing = false
				break
			}
		}
		if allMissing {
			out = append(out, ids[i])
		}
	}
	return out
}

// AllMissingColumnNames returns columns whose every value is missing, skipping
// the excluded column. Tables with no rows report no all-missing columns.
func AllMissingColumnNames(t *Table, exclude string) []string {
	if t.NumRows() == 0 {
		return nil
	}
	var out []string
	for _, name := range t.Columns() {
		if name == exclude {
			continue
		}
		if missingCount(t.Column(name)) == t.NumRows() {
			out = append(out, name)
		}
	}
	return out
}

// ConstantColumns returns columns where every non-missing value is identical
// (degenerate columns). Columns that are entirely missing are reported by
// AllMissingColumnNames instead.
func ConstantColumns(t *Table, exclude string) []string {
	if t.NumRows() == 0 {
		return nil
	}
	var out []string
	for _, name := range t.Columns() {
		if name == exclude {
			continue
		}
		first := ""
		seen := false
		constant := true
		for _, v := range t.Column(name) {
			if IsMissing(v) {
				continue
			}
			if !seen {
				first, seen = v, true
				continue
			}
			if v != first {
				constant = false
				break
			}
		}
		if seen && constant {
			out = append(out, name)
		}
	}
	return out
}

// InjectIndex returns a copy of the table with a stable zero-based index
// column prepended under the given name. An existing column with that name is
// replaced by the fresh index.
func InjectIndex(t *Table, name string) *Table {
	indexed := New()
	values := make([]string, t.NumRows())
	for i := range values {
		values[i] = strconv.Itoa(i)
	}
	_ = indexed.AddColumn(name, values)
	for _, col := range t.Columns() {
		if col == name {
			continue
		}
		src := t.Column(col)
		dst := make([]string, len(src))
		copy(dst, src)
		_ = indexed.AddColumn(col, dst)
	}
	return indexed
}

// DistinctNonMissing returns the distinct non-missing values of a column in
// sorted order.
func DistinctNonMissing(values []string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, v := range values {
		if IsMissing(v) {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
