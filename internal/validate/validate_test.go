package validate_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"harvestdesk/internal/validate"
)

func TestDay(t *testing.T) {
	for _, s := range []string{"2024-01-01", " 2024-02-29 "} {
		_, ok := validate.Day(s)
		assert.True(t, ok, s)
	}
	for _, s := range []string{"2023-02-29", "2024-1-01", "01/02/2024", "", "2024-13-01"} {
		_, ok := validate.Day(s)
		assert.False(t, ok, s)
	}
}

func TestMoney(t *testing.T) {
	assert.True(t, validate.Money(0))
	assert.True(t, validate.Money(12.5))
	for _, f := range []float64{-1, math.NaN(), math.Inf(1)} {
		assert.False(t, validate.Money(f), f)
	}
}

func TestIDAndSeason(t *testing.T) {
	_, ok := validate.ID("fruits_2024")
	assert.True(t, ok)
	_, ok = validate.ID("has/slash")
	assert.False(t, ok)
	_, ok = validate.ID("dot.ted")
	assert.False(t, ok)

	s, ok := validate.Season(" Summer ")
	assert.True(t, ok)
	assert.Equal(t, "summer", s)
}

func TestImageRefAndFile(t *testing.T) {
	_, ok := validate.ImageRef("drawable/mango")
	assert.True(t, ok)
	_, ok = validate.ImageRef("../etc/passwd")
	assert.False(t, ok)

	assert.True(t, validate.ImageFile("a.JPG"))
	assert.False(t, validate.ImageFile("a.gif"))
}
