package utils

import (
	"math"
	"strings"
)

// Tolerant coercion helpers shared by the candidate slimmer and the
// itinerary sanitizer. The pipeline never raises on a bad field; it
// substitutes the fallback and moves on.

func NonNegativeFloat(v *float64, fallback float64) float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) || *v < 0 {
		return fallback
	}
	return *v
}

func PositiveInt(v *int, fallback int) int {
	if v == nil || *v <= 0 {
		return fallback
	}
	return *v
}

func BoundedInt(v *int, lo, hi, fallback int) int {
	if v == nil {
		return ClampInt(fallback, lo, hi)
	}
	return ClampInt(*v, lo, hi)
}

func ClampInt(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

// NormalizeCategory trims and lower-cases a category label so it can be
// compared against the fixed category vocabulary.
func NormalizeCategory(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Round2 rounds to currency precision. Both the sanitizer and the
// fallback planner compute money with this, so the two paths agree.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FirstNonBlank returns the first candidate that is not blank after
// trimming. Used for field backfill from ground-truth listings.
func FirstNonBlank(candidates ...string) string {
	for _, c := range candidates {
		if trimmed := strings.TrimSpace(c); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// StringOrNil maps an optional URL column to a pointer: nil when blank,
// never an empty string, so the generation model cannot be handed a
// hallucinatable placeholder.
func StringOrNil(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
