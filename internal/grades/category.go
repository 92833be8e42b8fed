package grades

import (
	"errors"
	"fmt"
)

// Category represents one of the fixed grade categories
type Category string

const (
	Challenge  Category = "Challenge"
	Global     Category = "Global"
	Checkpoint Category = "Checkpoint"
)

// ErrUnknownCategory is returned when a category name is not one of the closed set
var ErrUnknownCategory = errors.New("unknown grade category")

// Categories returns every category in display order
func Categories() []Category {
	return []Category{Challenge, Global, Checkpoint}
}

// ParseCategory resolves a category by its exact name
func ParseCategory(name string) (Category, error) {
	for _, c := range Categories() {
		if string(c) == name {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, name)
}

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	_, err := ParseCategory(string(c))
	return err == nil
}

// PeriodLabel returns the ordinal label for the score at position n (1-based).
// Global scores are numbered by semester, everything else by sprint.
func (c Category) PeriodLabel(n int) string {
	if c == Global {
		return fmt.Sprintf("%dº semestre", n)
	}
	return fmt.Sprintf("%dª sprint", n)
}
