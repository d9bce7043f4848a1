package domain

import "fmt"

// UnknownModel is returned by FormatModelSpec when the artifact carries no
// usable specification. Formatting is best-effort: a malformed model must
// never abort a plot or report.
const UnknownModel = "Unknown Model"

// FormatModelSpec renders a compact identifier such as
// "ARIMA(1,0,1)-GARCH(1,1)" for the given artifact. Orders the engine
// omitted render as zero. The function is total: any artifact without a
// spec yields UnknownModel.
func FormatModelSpec(m *ModelArtifact) string {
	if m == nil || m.Spec == nil {
		return UnknownModel
	}
	return m.Spec.String()
}

// String renders the spec in the fixed "ARIMA(p,d,q)-GARCH(p,q)" form.
func (s *ModelSpec) String() string {
	if s == nil {
		return UnknownModel
	}
	return fmt.Sprintf("ARIMA(%d,%d,%d)-GARCH(%d,%d)",
		s.Arima.P, s.Arima.D, s.Arima.Q, s.Garch.P, s.Garch.Q)
}
