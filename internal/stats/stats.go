// Package stats computes the summary statistics embedded in plots and
// reports. Moments use population (biased) estimators and kurtosis is
// excess kurtosis, matching the conventions of the engine's own summaries.
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Summary holds the descriptive statistics of one series.
type Summary struct {
	Count    int
	Mean     float64
	StdDev   float64
	Min      float64
	Max      float64
	Skewness float64
	Kurtosis float64 // excess kurtosis
}

// Summarize computes the summary of a series. An empty series yields NaN
// moments; loaders reject zero-row inputs so callers on the supported path
// never observe that.
func Summarize(values []float64) Summary {
	s := Summary{
		Count:    len(values),
		Mean:     stat.Mean(values, nil),
		StdDev:   math.Sqrt(stat.PopVariance(values, nil)),
		Min:      math.Inf(1),
		Max:      math.Inf(-1),
		Skewness: popSkewness(values),
		Kurtosis: popExcessKurtosis(values),
	}
	if len(values) == 0 {
		s.Min = math.NaN()
		s.Max = math.NaN()
		return s
	}
	for _, v := range values {
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
	}
	return s
}

// popSkewness is the population skewness m3 / m2^(3/2).
func popSkewness(values []float64) float64 {
	n := float64(len(values))
	if n == 0 {
		return math.NaN()
	}
	mean := stat.Mean(values, nil)
	var m2, m3 float64
	for _, v := range values {
		d := v - mean
		m2 += d * d
		m3 += d * d * d
	}
	m2 /= n
	m3 /= n
	return m3 / math.Pow(m2, 1.5)
}

// popExcessKurtosis is the population kurtosis m4/m2^2 - 3.
func popExcessKurtosis(values []float64) float64 {
	n := float64(len(values))
	if n == 0 {
		return math.NaN()
	}
	mean := stat.Mean(values, nil)
	var m2, m4 float64
	for _, v := range values {
		d := v - mean
		d2 := d * d
		m2 += d2
		m4 += d2 * d2
	}
	m2 /= n
	m4 /= n
	return m4/(m2*m2) - 3
}

// Percentile returns the p-th percentile (0..100) of the series using
// linear interpolation between order statistics.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// Mean is a convenience wrapper over gonum's estimator.
func Mean(values []float64) float64 {
	return stat.Mean(values, nil)
}

// SampleStdDev is the unbiased (n-1) standard deviation. Forecast summary
// tables use it; everything else in this package is population-based.
func SampleStdDev(values []float64) float64 {
	if len(values) < 2 {
		return math.NaN()
	}
	return stat.StdDev(values, nil)
}

// stdNormal is shared by the quantile and density helpers.
var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

// ZScore returns the standard-normal quantile for a two-sided confidence
// level, i.e. Phi^-1((1+level)/2). ZScore(0.95) is 1.959964.
func ZScore(level float64) float64 {
	return stdNormal.Quantile((1 + level) / 2)
}

// NormalQuantile returns Phi^-1(p) for the standard normal.
func NormalQuantile(p float64) float64 {
	return stdNormal.Quantile(p)
}

// NormalPDF returns the standard-normal density at x.
func NormalPDF(x float64) float64 {
	return stdNormal.Prob(x)
}
