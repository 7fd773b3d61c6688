package category

import (
	"fmt"
	"strings"
)

// Category is the interview domain that shapes question content.
// Only the values in All are valid.
type Category string

const (
	DataAnalysis Category = "Data Analysis"
	Finance      Category = "Finance"
	Operations   Category = "Operations"
)

// All returns the supported domains in display order.
func All() []Category {
	return []Category{DataAnalysis, Finance, Operations}
}

// Parse resolves user input to a Category. Matching ignores case and treats
// spaces, dashes and underscores alike, so "data_analysis" and "Data Analysis"
// are the same domain. "Operation" is accepted as an alias for Operations.
func Parse(s string) (Category, error) {
	key := normalize(s)
	if key == "" {
		return "", fmt.Errorf("domain is required")
	}
	for _, c := range All() {
		if normalize(string(c)) == key {
			return c, nil
		}
	}
	if key == "operation" {
		return Operations, nil
	}
	return "", fmt.Errorf("unknown domain %q", s)
}

func (c Category) String() string {
	return string(c)
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '-' || r == '_'
	}), "")
}
