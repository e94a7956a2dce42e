package domain

import "fmt"

// Category is the closed set of record categories.
type Category uint8

const (
	CategoryAll Category = iota
	CategoryMotionGraphics
	CategoryVideoProduction
	CategoryWebApps
	CategoryDocumentary
)

var categoryLabels = [...]string{
	CategoryAll:             "All",
	CategoryMotionGraphics:  "Motion Graphics",
	CategoryVideoProduction: "Video Production",
	CategoryWebApps:         "Web Apps",
	CategoryDocumentary:     "Documentary",
}

// Categories returns every category in display order.
func Categories() []Category {
	out := make([]Category, len(categoryLabels))
	for i := range categoryLabels {
		out[i] = Category(i)
	}
	return out
}

// CategoryLabels returns the display labels in the same order as Categories.
func CategoryLabels() []string {
	out := make([]string, len(categoryLabels))
	copy(out, categoryLabels[:])
	return out
}

// ParseCategory resolves a display label to its Category.
func ParseCategory(label string) (Category, error) {
	for i, l := range categoryLabels {
		if l == label {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown category %q", ErrValidation, label)
}

// Valid reports whether c is one of the declared categories.
func (c Category) Valid() bool {
	return int(c) < len(categoryLabels)
}

func (c Category) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Category(%d)", uint8(c))
	}
	return categoryLabels[c]
}

// Matches reports whether a record in category other is shown under c.
// All matches everything.
func (c Category) Matches(other Category) bool {
	return c == CategoryAll || c == other
}

func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid category %d", uint8(c))
	}
	return []byte(categoryLabels[c]), nil
}

func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
