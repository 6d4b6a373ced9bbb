package errors

import "math"

// ValidatePositive checks that v is a finite number greater than zero.
// name identifies the offending parameter in the message.
func ValidatePositive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidConfig, "%s must be finite, got %v", name, v)
	}
	if v <= 0 {
		return New(ErrCodeInvalidConfig, "%s must be positive, got %v", name, v)
	}
	return nil
}

// ValidateNonNegative checks that v is a finite number not below zero.
func ValidateNonNegative(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidConfig, "%s must be finite, got %v", name, v)
	}
	if v < 0 {
		return New(ErrCodeInvalidConfig, "%s must not be negative, got %v", name, v)
	}
	return nil
}

// ValidateLength checks that a per-track list has exactly want entries.
// An empty list is accepted and means "use the default".
func ValidateLength(name string, got, want int) error {
	if got == 0 || got == want {
		return nil
	}
	return New(ErrCodeInvalidConfig, "%s has %d entries, want %d", name, got, want)
}

// ValidateGaps checks a spacing list against the number of tracks. Valid
// lengths are zero (default), one (broadcast) and tracks-1.
func ValidateGaps(name string, gaps []float64, tracks int) error {
	n := len(gaps)
	if n > 1 && n != tracks-1 {
		return New(ErrCodeInvalidConfig, "%s has %d entries, want 1 or %d", name, n, max(tracks-1, 0))
	}
	for i, g := range gaps {
		if err := ValidateNonNegative(name, g); err != nil {
			return Wrap(ErrCodeInvalidConfig, err, "%s[%d]", name, i)
		}
	}
	return nil
}
