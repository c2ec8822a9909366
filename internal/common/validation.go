package common

import "fmt"

// ValidatePositive returns an error naming key when value is not positive
func ValidatePositive(key string, value int) error {
	if value <= 0 {
		return fmt.Errorf("%s must be positive", key)
	}
	return nil
}

// ValidateRange returns an error naming key when value is outside [lo, hi]
func ValidateRange(key string, value, lo, hi int) error {
	if value < lo || value > hi {
		return fmt.Errorf("%s must be between %d and %d", key, lo, hi)
	}
	return nil
}
