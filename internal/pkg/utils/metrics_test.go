package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRate(t *testing.T) {
	assert.Equal(t, 0.0, Rate(3, 0))
	assert.Equal(t, 33.3, Rate(1, 3))
	assert.Equal(t, 100.0, Rate(4, 4))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 0.0, Percent(2.5, 0))
	assert.Equal(t, 25.0, Percent(2.5, 10))
}

func TestStdDev(t *testing.T) {
	assert.InDelta(t, 2.0, StdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9}), 1e-9)
	assert.Equal(t, 0.0, StdDev(nil))
}

func TestLinearRegression(t *testing.T) {
	slope, intercept := LinearRegression([]float64{10, 12, 14, 16})
	assert.InDelta(t, 2, slope, 1e-9)
	assert.InDelta(t, 10, intercept, 1e-9)

	slope, intercept = LinearRegression([]float64{5})
	assert.Equal(t, 0.0, slope)
	assert.Equal(t, 5.0, intercept)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1, Clamp(0, 1, 36))
	assert.Equal(t, 36, Clamp(99, 1, 36))
	assert.Equal(t, 12, Clamp(12, 1, 36))
}
