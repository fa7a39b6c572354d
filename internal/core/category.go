package core

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Category classifies an expense. Stored lower-case.
type Category string

const (
	Food          Category = "food"
	Healthcare    Category = "healthcare"
	Debt          Category = "debt"
	Entertainment Category = "entertainment"
	Education     Category = "education"
	Investments   Category = "investments"
	Utilities     Category = "utilities"
	Miscellaneous Category = "miscellaneous"
)

// DefaultCategory is used when an expense is added without one.
const DefaultCategory = Miscellaneous

// Categories lists every accepted category in display order.
var Categories = []Category{
	Food,
	Healthcare,
	Debt,
	Entertainment,
	Education,
	Investments,
	Utilities,
	Miscellaneous,
}

// ParseCategory matches raw case-insensitively against Categories.
func ParseCategory(raw string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(raw)))
	if !c.Valid() {
		return "", fmt.Errorf("%w %q: categories must be among these: %s", ErrInvalidCategory, raw, categoryList())
	}
	return c, nil
}

// CheckCategory accepts an empty value (no category supplied) or a known category.
func CheckCategory(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	_, err := ParseCategory(raw)
	return err
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Matches compares case-insensitively.
func (c Category) Matches(other Category) bool {
	return strings.EqualFold(string(c), string(other))
}

// Title returns the category with its first letter upper-cased.
func (c Category) Title() string {
	if c == "" {
		return ""
	}
	return strings.ToUpper(string(c[:1])) + string(c[1:])
}

func (c Category) String() string { return string(c) }

// UnmarshalJSON lower-cases the stored value; older files kept the user's casing.
func (c *Category) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*c = Category(strings.ToLower(strings.TrimSpace(s)))
	return nil
}

func categoryList() string {
	names := make([]string, len(Categories))
	for i, c := range Categories {
		names[i] = c.Title()
	}
	return strings.Join(names, ", ")
}
