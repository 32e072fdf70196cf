package invers

import "fmt"

// Percent is a percentage, 100 being the whole.
type Percent float64

// Equal compares with a precision of 1e-4.
func (p Percent) Equal(q Percent) bool {
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.1f%%", float64(p))
}
