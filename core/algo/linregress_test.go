package algo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinregressPerfectLine(t *testing.T) {
	x := []float64{0, 1, 2, 3}
	y := []float64{10, 12, 14, 16}
	fit := Linregress(x, y)
	assert.InDelta(t, 2.0, fit.Slope, 1e-12)
	assert.InDelta(t, 10.0, fit.Intercept, 1e-12)
	assert.InDelta(t, 1.0, fit.RSquared, 1e-12)
	assert.InDelta(t, 0.0, fit.StdError, 1e-12)
	assert.InDelta(t, 0.0, fit.PValue, 1e-12)
}

func TestLinregressTwoPoints(t *testing.T) {
	fit := Linregress([]float64{1, 3}, []float64{5.0, 9.0})
	assert.InDelta(t, 2.0, fit.Slope, 1e-12)
	assert.InDelta(t, 3.0, fit.Intercept, 1e-12)
	assert.InDelta(t, 1.0, fit.RSquared, 1e-12)
	assert.True(t, math.IsNaN(fit.StdError))
	assert.True(t, math.IsNaN(fit.PValue))
}

func TestLinregressNoisy(t *testing.T) {
	// Reference values computed with scipy.stats.linregress.
	x := []float64{0, 1, 2, 3, 4}
	y := []float64{2.1, 2.9, 4.2, 4.8, 6.1}
	fit := Linregress(x, y)
	assert.InDelta(t, 0.99, fit.Slope, 1e-9)
	assert.InDelta(t, 2.04, fit.Intercept, 1e-9)
	assert.InDelta(t, 0.9892006459, fit.RSquared, 1e-7)
	assert.InDelta(t, 0.0597215796, fit.StdError, 1e-7)
	assert.InDelta(t, 0.0005575, fit.PValue, 1e-5)
}

func TestLinregressZeroTimeVariance(t *testing.T) {
	fit := Linregress([]float64{2, 2, 2}, []float64{1, 2, 3})
	assert.True(t, math.IsNaN(fit.Slope))
	assert.True(t, math.IsNaN(fit.Intercept))
	assert.True(t, math.IsNaN(fit.RSquared))
	assert.True(t, math.IsNaN(fit.PValue))
	assert.True(t, math.IsNaN(fit.StdError))
}

func TestLinregressFlatSeries(t *testing.T) {
	fit := Linregress([]float64{0, 1, 2, 3}, []float64{7, 7, 7, 7})
	assert.InDelta(t, 0.0, fit.Slope, 1e-12)
	assert.InDelta(t, 7.0, fit.Intercept, 1e-12)
	assert.InDelta(t, 0.0, fit.RSquared, 1e-12)
	assert.InDelta(t, 1.0, fit.PValue, 1e-12)
}
