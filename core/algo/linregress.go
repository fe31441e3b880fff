// Package algo has the numerical routines behind trend estimation.
package algo

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// FitResult holds an ordinary-least-squares fit of y on x together with the
// statistics derived from it.
type FitResult struct {
	Slope     float64
	Intercept float64
	RSquared  float64
	PValue    float64
	StdError  float64
}

// Linregress fits y = intercept + slope*x by ordinary least squares and
// derives the coefficient of determination, the standard error of the slope,
// and the two-sided p-value for the null hypothesis slope == 0 under a
// Student's t distribution with n-2 degrees of freedom.
//
// Callers must pass len(x) == len(y) >= 2. Degenerate inputs never panic:
//   - zero variance in x: slope, intercept, StdError and PValue are NaN.
//   - exactly two points: the line is fully determined, RSquared is 1 and
//     the error terms (StdError, PValue) are NaN since the t test has zero
//     degrees of freedom.
//   - zero variance in y: RSquared is 0, matching the usual convention for
//     an undefined Pearson correlation.
func Linregress(x, y []float64) FitResult {
	n := len(x)
	nan := math.NaN()

	xbar := stat.Mean(x, nil)
	sxx := 0.0
	for _, xi := range x {
		dx := xi - xbar
		sxx += dx * dx
	}
	if sxx == 0 {
		// All observations share one time ordinal; no line exists.
		return FitResult{Slope: nan, Intercept: nan, RSquared: nan, PValue: nan, StdError: nan}
	}

	intercept, slope := stat.LinearRegression(x, y, nil, false)

	var r2 float64
	switch {
	case n == 2:
		r2 = 1.0
	default:
		ybar := stat.Mean(y, nil)
		syy := 0.0
		for _, yi := range y {
			dy := yi - ybar
			syy += dy * dy
		}
		if syy == 0 {
			r2 = 0.0
		} else {
			r := stat.Correlation(x, y, nil)
			r2 = r * r
		}
	}

	df := float64(n - 2)
	if df <= 0 {
		return FitResult{Slope: slope, Intercept: intercept, RSquared: r2, PValue: nan, StdError: nan}
	}

	rss := 0.0
	for i := range x {
		resid := y[i] - (intercept + slope*x[i])
		rss += resid * resid
	}
	stdErr := math.Sqrt(rss / df / sxx)

	var p float64
	if stdErr == 0 {
		// Exact fit with spare degrees of freedom: a zero slope carries no
		// evidence against the null, a non-zero slope is unambiguous.
		if slope == 0 {
			p = 1.0
		} else {
			p = 0.0
		}
	} else {
		t := slope / stdErr
		dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
		p = 2 * dist.CDF(-math.Abs(t))
	}

	return FitResult{Slope: slope, Intercept: intercept, RSquared: r2, PValue: p, StdError: stdErr}
}
