package config

import "fmt"

func errNonNegative(field string, got int) error {
	return fmt.Errorf("%s must be >= 0, got %d", field, got)
}

func errNonNegativeFloat(field string, got float64) error {
	return fmt.Errorf("%s must be >= 0, got %f", field, got)
}

func errRange(field string, got float64) error {
	return fmt.Errorf("%s must be in [0.0, 1.0], got %f", field, got)
}
