package report

import (
	"fmt"
	"sort"
	"strings"
)

// Sheet identifies which part of the input a finding refers to.
type Sheet string

const (
	SheetVariables  Sheet = "Variables"
	SheetCategories Sheet = "Categories"
	SheetDataset    Sheet = "Dataset"
)

// Finding is the atomic report unit. Findings are produced by checkers and
// never mutated afterward.
type Finding struct {
	Entity   string `json:"entity_name,omitempty"`
	Column   string `json:"column_name,omitempty"`
	Sheet    Sheet  `json:"sheet"`
	Message  string `json:"message"`
	Evidence string `json:"evidence,omitempty"`
}

// InfoMessage formats an advisory finding message.
func InfoMessage(format string, args ...interface{}) string {
	return "[INFO] - " + fmt.Sprintf(format, args...)
}

// ErrorMessage formats a severe finding message. The prefix is advisory text,
// not control flow.
func ErrorMessage(format string, args ...interface{}) string {
	return "[ERROR] - " + fmt.Sprintf(format, args...)
}

// Grid is a rendered section: an ordered header plus data rows. Every report
// section, including non-finding summaries, reduces to a Grid so consumers can
// render each one as a worksheet.
type Grid struct {
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

// Empty reports whether the grid carries no data rows.
func (g Grid) Empty() bool {
	return len(g.Rows) == 0
}

// Section pairs a fixed section name with its grid.
type Section struct {
	Name string `json:"name"`
	Grid Grid   `json:"grid"`
}

// Report is an ordered mapping from section name to a grid. Sections are
// produced independently and assembled in a fixed order; empty sections are
// computed but not added.
type Report struct {
	sections []Section
}

// New creates an empty report.
func New() *Report {
	return &Report{}
}

// Add appends a section. Empty grids are dropped; the caller is expected to
// emit a "no issues" notice instead.
func (r *Report) Add(name string, g Grid) {
	if g.Empty() {
		return
	}
	r.sections = append(r.sections, Section{Name: name, Grid: g})
}

// Sections returns the sections in assembly order.
func (r *Report) Sections() []Section {
	return r.sections
}

// Section returns the named section's grid when present.
func (r *Report) Section(name string) (Grid, bool) {
	for _, s := range r.sections {
		if s.Name == name {
			return s.Grid, true
		}
	}
	return Grid{}, false
}

// Len returns the number of non-empty sections.
func (r *Report) Len() int {
	return len(r.sections)
}

// Dedup collapses exact-duplicate finding rows to one, preserving first
// occurrence order.
func Dedup(findings []Finding) []Finding {
	seen := make(map[Finding]struct{}, len(findings))
	out := make([]Finding, 0, len(findings))
	for _, f := range findings {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}

// SortForDictionary orders findings by sheet descending, then column, then
// entity, then message. The order is total so repeated evaluations are
// byte-identical.
func SortForDictionary(findings []Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		if a.Sheet != b.Sheet {
			return a.Sheet > b.Sheet
		}
		if a.Column != b.Column {
			return a.Column < b.Column
		}
		if a.Entity != b.Entity {
			return a.Entity < b.Entity
		}
		return a.Message < b.Message
	})
}

// DictionaryGrid projects dictionary-assessment findings to the fixed
// {sheet, column_name, entity_name, message} layout.
func DictionaryGrid(findings []Finding) Grid {
	findings = Dedup(findings)
	SortForDictionary(findings)
	g := Grid{Header: []string{"sheet", "column_name", "entity_name", "message"}}
	for _, f := range findings {
		g.Rows = append(g.Rows, []string{string(f.Sheet), f.Column, f.Entity, f.Message})
	}
	return g
}

// DatasetGrid projects dataset-assessment findings to the fixed
// {index, name, message, evidence} layout, sorted by the dictionary index of
// the finding's column ascending. Names absent from the dictionary sort last.
func DatasetGrid(findings []Finding, indexOf func(name string) (int, bool)) Grid {
	findings = Dedup(findings)
	type keyed struct {
		f     Finding
		idx   int
		known bool
	}
	rows := make([]keyed, 0, len(findings))
	for _, f := range findings {
		idx, ok := indexOf(f.Column)
		rows = append(rows, keyed{f: f, idx: idx, known: ok})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.known != b.known {
			return a.known
		}
		if a.known && a.idx != b.idx {
			return a.idx < b.idx
		}
		if a.f.Column != b.f.Column {
			return a.f.Column < b.f.Column
		}
		return a.f.Message < b.f.Message
	})
	g := Grid{Header: []string{"index", "name", "message", "evidence"}}
	for _, r := range rows {
		idx := ""
		if r.known {
			idx = fmt.Sprintf("%d", r.idx)
		}
		g.Rows = append(g.Rows, []string{idx, r.f.Column, r.f.Message, r.f.Evidence})
	}
	return g
}

// Markdown renders the report as a markdown document, one table per section.
func (r *Report) Markdown() string {
	var b strings.Builder
	for _, s := range r.sections {
		b.WriteString("## ")
		b.WriteString(s.Name)
		b.WriteString("\n\n")
		writeMarkdownTable(&b, s.Grid)
		b.WriteString("\n")
	}
	if r.Len() == 0 {
		b.WriteString("No issues found.\n")
	}
	return b.String()
}

func writeMarkdownTable(b *strings.Builder, g Grid) {
	b.WriteString("| " + strings.Join(g.Header, " | ") + " |\n")
	sep := make([]string, len(g.Header))
	for i := range sep {
		sep[i] = "---"
	}
	b.WriteString("| " + strings.Join(sep, " | ") + " |\n")
	for _, row := range g.Rows {
		cells := make([]string, len(g.Header))
		for i := range cells {
			if i < len(row) {
				cells[i] = strings.ReplaceAll(row[i], "|", "\\|")
			}
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
}
