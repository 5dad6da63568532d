package config

import "fmt"

// Number is a setting type that can be range checked. time.Duration
// qualifies through its int64 underlying type.
type Number interface {
	~int | ~int64 | ~float64
}

// InRange returns an error naming key unless lo <= v <= hi.
func InRange[T Number](key string, v, lo, hi T) error {
	if v < lo || v > hi {
		return fmt.Errorf("%s must be between %v and %v, got %v", key, lo, hi, v)
	}
	return nil
}

// AtLeast returns an error naming key unless v >= lo.
func AtLeast[T Number](key string, v, lo T) error {
	if v < lo {
		return fmt.Errorf("%s must be at least %v, got %v", key, lo, v)
	}
	return nil
}

// Positive returns an error naming key unless v > 0.
func Positive[T Number](key string, v T) error {
	if v <= 0 {
		return fmt.Errorf("%s must be positive, got %v", key, v)
	}
	return nil
}
