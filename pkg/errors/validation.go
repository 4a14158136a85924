package errors

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ValidateID validates a region or node identifier.
//
// The rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters
//   - Maximum length of 256 characters
func ValidateID(kind, id string) error {
	if id == "" {
		return New(ErrCodeInvalidConfig, "%s id cannot be empty", kind)
	}
	if len(id) > 256 {
		return New(ErrCodeInvalidConfig, "%s id too long (max 256 characters)", kind)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidConfig, "%s id contains invalid control characters", kind)
		}
	}
	return nil
}

// ValidateDimensions rejects zero, negative or non-finite region extents.
func ValidateDimensions(id string, width, height float64) error {
	if !isFinite(width) || !isFinite(height) {
		return New(ErrCodeInvalidGeometry, "region %q has non-finite size %vx%v", id, width, height)
	}
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidGeometry, "region %q must have positive size, got %vx%v", id, width, height)
	}
	return nil
}

// ParseNumber parses a numeric geometry field from an annotation argument map.
// Missing and non-numeric values are configuration errors.
func ParseNumber(args map[string]string, key string) (float64, error) {
	raw, ok := args[key]
	if !ok || strings.TrimSpace(raw) == "" {
		return 0, New(ErrCodeInvalidConfig, "missing geometry field %q", key)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, Wrap(ErrCodeInvalidConfig, err, "geometry field %q is not numeric: %q", key, raw)
	}
	if !isFinite(v) {
		return 0, New(ErrCodeInvalidConfig, "geometry field %q is not finite: %q", key, raw)
	}
	return v, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
