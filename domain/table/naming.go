package table

import "regexp"

// namePattern is the identifier-naming convention used across the cataloguing
// ecosystem: a letter followed by letters, digits, underscores or dots.
var namePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_.]*$`)

// ValidName reports whether a single name follows the naming convention.
func ValidName(name string) bool {
	return namePattern.MatchString(name)
}

// InvalidNames returns the entries of names that violate the naming
// convention, in input order. Missing entries count as violations.
func InvalidNames(names []string) []string {
	var out []string
	for _, name := range names {
		if !ValidName(name) {
			out = append(out, name)
		}
	}
	return out
}
