package domain

// ArimaOrder holds the (p,d,q) order of the mean equation.
type ArimaOrder struct {
	P int `json:"p"`
	D int `json:"d"`
	Q int `json:"q"`
}

// GarchOrder holds the (p,q) order of the variance equation.
type GarchOrder struct {
	P int `json:"p"`
	Q int `json:"q"`
}

// ModelSpec describes the structure of a fitted ARIMA-GARCH model.
// Orders default to zero when the engine omits them; that default is for
// display only, loaders never fabricate a missing spec.
type ModelSpec struct {
	Arima ArimaOrder `json:"arima"`
	Garch GarchOrder `json:"garch"`
}

// ArimaParameters holds the estimated mean-equation coefficients.
// Every field is optional: the engine only writes what it estimated.
type ArimaParameters struct {
	Intercept *float64  `json:"intercept,omitempty"`
	ARCoef    []float64 `json:"ar_coef,omitempty"`
	MACoef    []float64 `json:"ma_coef,omitempty"`
}

// GarchParameters holds the estimated variance-equation coefficients.
type GarchParameters struct {
	Omega     *float64  `json:"omega,omitempty"`
	AlphaCoef []float64 `json:"alpha_coef,omitempty"`
	BetaCoef  []float64 `json:"beta_coef,omitempty"`
}

// ModelParameters groups the estimated coefficients of both equations.
type ModelParameters struct {
	Arima ArimaParameters `json:"arima"`
	Garch GarchParameters `json:"garch"`
}

// ModelArtifact is the in-memory form of a model JSON file produced by the
// engine's fit command. Spec and Parameters are pointers so that consumers
// can distinguish "present but partially filled" from "absent": the loader
// guarantees both are non-nil, but hand-built artifacts (and the spec
// formatter) must tolerate nil.
type ModelArtifact struct {
	Spec       *ModelSpec       `json:"spec,omitempty"`
	Parameters *ModelParameters `json:"parameters,omitempty"`
}

// Persistence returns the summed GARCH alpha and beta coefficients and
// whether both coefficient sets are present. Values close to one indicate
// long-lived volatility shocks.
func (m *ModelArtifact) Persistence() (float64, bool) {
	if m == nil || m.Parameters == nil {
		return 0, false
	}
	g := m.Parameters.Garch
	if len(g.AlphaCoef) == 0 || len(g.BetaCoef) == 0 {
		return 0, false
	}
	var sum float64
	for _, a := range g.AlphaCoef {
		sum += a
	}
	for _, b := range g.BetaCoef {
		sum += b
	}
	return sum, true
}
