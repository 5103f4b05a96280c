// Package valuetype carries the fixed value-type catalog of the cataloguing
// ecosystem and the content-based type inference used to reconcile declared
// types against observed data.
package valuetype

import (
	"time"

	"datacheck/domain/table"
)

// GenericType is the coarse category used for compatibility comparisons.
type GenericType string

const (
	GenericNumeric   GenericType = "numeric"
	GenericCharacter GenericType = "character"
	GenericTemporal  GenericType = "temporal"
)

// ValueType is one entry of the catalog: a semantic type name, its concrete
// storage representation, and its generic category.
type ValueType struct {
	Name    string
	Storage string
	Generic GenericType
}

// Catalog is the fixed, built-in value-type lookup table. It is data, not
// logic: loaded once, never mutated at runtime.
var Catalog = [12]ValueType{
	{Name: "boolean", Storage: "bool", Generic: GenericNumeric},
	{Name: "integer", Storage: "int64", Generic: GenericNumeric},
	{Name: "decimal", Storage: "float64", Generic: GenericNumeric},
	{Name: "date", Storage: "time.Time", Generic: GenericTemporal},
	{Name: "datetime", Storage: "time.Time", Generic: GenericTemporal},
	{Name: "text", Storage: "string", Generic: GenericCharacter},
	{Name: "locale", Storage: "string", Generic: GenericCharacter},
	{Name: "keyword", Storage: "string", Generic: GenericCharacter},
	{Name: "binary", Storage: "string", Generic: GenericCharacter},
	{Name: "point", Storage: "string", Generic: GenericCharacter},
	{Name: "linestring", Storage: "string", Generic: GenericCharacter},
	{Name: "polygon", Storage: "string", Generic: GenericCharacter},
}

// Text is the most general value type; all-missing columns infer as Text.
var Text = Catalog[5]

// Lookup finds a catalog entry by name.
func Lookup(name string) (ValueType, bool) {
	for _, vt := range Catalog {
		if vt.Name == name {
			return vt, true
		}
	}
	return ValueType{}, false
}

// Infer determines the best-fit value type of a column from content alone,
// trying boolean, integer, decimal, date and datetime in that order. A column
// qualifies for a type only when every non-missing value parses as it; columns
// with no non-missing values infer as text.
func Infer(values []string) ValueType {
	candidates := []struct {
		name  string
		parse func(string) bool
	}{
		{"boolean", parseBoolean},
		{"integer", parseInteger},
		{"decimal", parseDecimal},
		{"date", parseDate},
		{"datetime", parseDatetime},
	}
	seen := false
	for _, c := range candidates {
		all := true
		for _, v := range values {
			if table.IsMissing(v) {
				continue
			}
			seen = true
			if !c.parse(v) {
				all = false
				break
			}
		}
		if all && seen {
			vt, _ := Lookup(c.name)
			return vt
		}
	}
	return Text
}

// Compatible reports whether a declared type accepts a column whose inferred
// type is given: the two are compatible when their generic categories match.
// Any integer-inferred column therefore satisfies a decimal declaration, and
// vice versa within the numeric category.
func Compatible(declared, inferred ValueType) bool {
	return declared.Generic == inferred.Generic
}

// Mismatch describes an incompatibility between a declared and an inferred
// value type.
type Mismatch struct {
	Declared ValueType
	Inferred ValueType
	// Lossless is true when the declared type can still represent the
	// observed content (widening, e.g. integer content under a text
	// declaration); false when representation would lose or reject values.
	Lossless bool
}

// Reconcile compares a column's content against its declared type name.
// It returns nil when no type is declared, when the column is empty or
// all-missing, or when declared and inferred generic categories match.
// An unknown declared type name is reported by the value-type declaration
// check, not here, and also yields nil.
func Reconcile(values []string, declared string) *Mismatch {
	if declared == "" {
		return nil
	}
	dvt, ok := Lookup(declared)
	if !ok {
		return nil
	}
	if allMissing(values) {
		return nil
	}
	ivt := Infer(values)
	if Compatible(dvt, ivt) {
		return nil
	}
	return &Mismatch{
		Declared: dvt,
		Inferred: ivt,
		Lossless: dvt.Generic == GenericCharacter,
	}
}

// IsBooleanLike reports whether a value coerces to a boolean for the
// missing-category logical check, which accepts the usual spreadsheet
// encodings in addition to true/false.
func IsBooleanLike(v string) bool {
	switch v {
	case "true", "TRUE", "True", "false", "FALSE", "False", "t", "T", "f", "F", "0", "1", "yes", "no", "YES", "NO":
		return true
	}
	return false
}

func allMissing(values []string) bool {
	for _, v := range values {
		if !table.IsMissing(v) {
			return false
		}
	}
	return true
}

func parseBoolean(v string) bool {
	switch v {
	case "true", "TRUE", "True", "false", "FALSE", "False":
		return true
	}
	return false
}

func parseInteger(v string) bool {
	if v == "" {
		return false
	}
	i := 0
	if v[0] == '+' || v[0] == '-' {
		i = 1
	}
	if i == len(v) {
		return false
	}
	for ; i < len(v); i++ {
		if v[i] < '0' || v[i] > '9' {
			return false
		}
	}
	return true
}

func parseDecimal(v string) bool {
	if v == "" {
		return false
	}
	i := 0
	if v[0] == '+' || v[0] == '-' {
		i = 1
	}
	digits, dot := 0, false
	for ; i < len(v); i++ {
		switch {
		case v[i] >= '0' && v[i] <= '9':
			digits++
		case v[i] == '.' && !dot:
			dot = true
		default:
			return false
		}
	}
	return digits > 0
}

var dateLayouts = []string{"2006-01-02", "2006/01/02"}

func parseDate(v string) bool {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, v); err == nil {
			return true
		}
	}
	return false
}

var datetimeLayouts = []string{time.RFC3339, "2006-01-02 15:04:05"}

func parseDatetime(v string) bool {
	for _, layout := range datetimeLayouts {
		if _, err := time.Parse(layout, v); err == nil {
			return true
		}
	}
	return false
}
