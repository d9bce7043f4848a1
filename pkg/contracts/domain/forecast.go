package domain

// ForecastStep is one row of the engine's forecast output: the conditional
// mean and volatility h steps ahead.
type ForecastStep struct {
	Step     int
	Mean     float64
	Variance float64
	StdDev   float64
}

// ForecastTable holds the full forecast trajectory in step order.
// HasVariance records whether the optional variance column was present in
// the source file.
type ForecastTable struct {
	Steps       []ForecastStep
	HasVariance bool
}

// Horizon reports the number of forecast steps.
func (f *ForecastTable) Horizon() int {
	return len(f.Steps)
}

// Means returns the mean forecasts in step order.
func (f *ForecastTable) Means() []float64 {
	out := make([]float64, len(f.Steps))
	for i, s := range f.Steps {
		out[i] = s.Mean
	}
	return out
}

// StdDevs returns the forecast standard deviations in step order.
func (f *ForecastTable) StdDevs() []float64 {
	out := make([]float64, len(f.Steps))
	for i, s := range f.Steps {
		out[i] = s.StdDev
	}
	return out
}
