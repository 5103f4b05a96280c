package dictionary

import (
	"datacheck/domain/core"
	"datacheck/domain/table"
)

// Taxonomy is an optional classification table used for naming and tag
// validation.
type Taxonomy struct {
	*table.Table
}

var taxonomyColumns = []string{"taxonomy", "vocabulary", "terms"}

var extendedTaxonomyColumns = []string{
	"vocabulary_short", "taxonomy_scale", "vocabulary_scale", "term_scale",
}

// NewTaxonomy wraps a table as a taxonomy after shape validation.
func NewTaxonomy(t *table.Table, extended bool) (*Taxonomy, error) {
	taxo := &Taxonomy{Table: t}
	if err := ValidateTaxonomyShape(taxo, extended); err != nil {
		return nil, err
	}
	return taxo, nil
}

// ValidateTaxonomyShape verifies the required taxonomy columns; extended mode
// additionally requires the scale columns.
func ValidateTaxonomyShape(taxo *Taxonomy, extended bool) error {
	if taxo == nil || taxo.Table == nil {
		return core.NewShapeError("taxonomy", "", "taxonomy is nil")
	}
	required := taxonomyColumns
	if extended {
		required = append(append([]string{}, taxonomyColumns...), extendedTaxonomyColumns...)
	}
	for _, col := range required {
		if !taxo.Has(col) {
			return core.NewShapeError("taxonomy", col, "required column is absent")
		}
	}
	return nil
}
