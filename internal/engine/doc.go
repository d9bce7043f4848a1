// Package engine locates and invokes the external ARIMA-GARCH estimation
// executable. It produces the model, forecast, diagnostics and simulation
// artifacts that the loaders consume; no estimation happens in-process.
package engine
