// utils/validation.go
package utils

// ValidClaimPercent reports whether a milestone claim percentage is usable.
func ValidClaimPercent(p float64) bool {
	return p >= 0 && p <= 100
}
