package salary

import (
	"errors"
	"math"
)

var ErrNegativeComponent = errors.New("salary components cannot be negative")

// Net computes the take-home amount rounded to 2 decimal places.
func Net(basic, allowances, deductions float64) (float64, error) {
	if basic < 0 || allowances < 0 || deductions < 0 {
		return 0, ErrNegativeComponent
	}
	return round2(basic + allowances - deductions), nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
