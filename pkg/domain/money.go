package domain

import "math"

// ToCents converts a decimal amount from the API boundary into cents.
// Non-finite and non-positive values are rejected.
func ToCents(amount float64) (int64, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return 0, ErrAmountMustBePositive
	}
	cents := math.Round(amount * 100)
	if cents > math.MaxInt64 || cents <= 0 {
		return 0, ErrAmountMustBePositive
	}
	return int64(cents), nil
}

// FromCents converts a cent amount back to the decimal representation used
// in responses.
func FromCents(cents int64) float64 {
	return float64(cents) / 100.0
}
