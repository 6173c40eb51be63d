package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNonNegativeFloat(t *testing.T) {
	price := 12.5
	zero := 0.0
	negative := -3.0
	nan := math.NaN()

	assert.Equal(t, 12.5, NonNegativeFloat(&price, 99))
	assert.Equal(t, 0.0, NonNegativeFloat(&zero, 99), "explicit zero is a real price, not a missing one")
	assert.Equal(t, 99.0, NonNegativeFloat(nil, 99))
	assert.Equal(t, 99.0, NonNegativeFloat(&negative, 99))
	assert.Equal(t, 99.0, NonNegativeFloat(&nan, 99))
}

func TestPositiveInt(t *testing.T) {
	ninety := 90
	zero := 0
	negative := -5

	assert.Equal(t, 90, PositiveInt(&ninety, 60))
	assert.Equal(t, 60, PositiveInt(nil, 60))
	assert.Equal(t, 60, PositiveInt(&zero, 60))
	assert.Equal(t, 60, PositiveInt(&negative, 60))
}

func TestBoundedInt(t *testing.T) {
	twelve := 12
	three := 3

	assert.Equal(t, 3, BoundedInt(&three, 1, 7, 2))
	assert.Equal(t, 7, BoundedInt(&twelve, 1, 7, 2))
	assert.Equal(t, 2, BoundedInt(nil, 1, 7, 2))
	assert.Equal(t, 7, BoundedInt(nil, 1, 7, 12), "fallback itself is clamped")
}

func TestClampInt(t *testing.T) {
	assert.Equal(t, 1, ClampInt(0, 1, 7))
	assert.Equal(t, 7, ClampInt(30, 1, 7))
	assert.Equal(t, 4, ClampInt(4, 1, 7))
}

func TestNormalizeCategory(t *testing.T) {
	assert.Equal(t, "comida", NormalizeCategory("  Comida "))
	assert.Equal(t, "historico", NormalizeCategory("HISTORICO"))
	assert.Equal(t, "", NormalizeCategory("   "))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 10.56, Round2(10.555))
	assert.Equal(t, 0.1, Round2(0.1+0.2-0.2))
}

func TestFirstNonBlank(t *testing.T) {
	assert.Equal(t, "b", FirstNonBlank("", "   ", "b", "c"))
	assert.Equal(t, "", FirstNonBlank("", "  "))
}

func TestStringOrNil(t *testing.T) {
	assert.Nil(t, StringOrNil("   "))

	got := StringOrNil(" https://maps.example/x ")
	if assert.NotNil(t, got) {
		assert.Equal(t, "https://maps.example/x", *got)
	}
}
