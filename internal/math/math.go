package math

import (
	"fmt"
	"strconv"
	"strings"
)

// Format formats a float based on the given precision
func Format(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

// Size returns the number of elements a tensor of the given shape holds.
// NOTE : a scalar has an empty shape and a size of 1
func Size(shape []int) int {
	s := 1
	for _, d := range shape {
		s *= d
	}
	return s
}

// SameShape checks if the two shapes have the same dimensions.
func SameShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// FormatShape prints the shape in the form [2 3].
func FormatShape(shape []int) string {
	dims := make([]string, len(shape))
	for i, d := range shape {
		dims[i] = strconv.Itoa(d)
	}
	return fmt.Sprintf("[%s]", strings.Join(dims, " "))
}

// ValidShape checks that all dimensions are positive.
func ValidShape(shape []int) error {
	for i, d := range shape {
		if d <= 0 {
			return fmt.Errorf("invalid dimension %d at index %d of shape %s", d, i, FormatShape(shape))
		}
	}
	return nil
}

// Equal checks if the two slices carry the same values.
func Equal(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
