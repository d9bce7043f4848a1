package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatModelSpec(t *testing.T) {
	tests := []struct {
		name  string
		model *ModelArtifact
		want  string
	}{
		{
			name: "full spec",
			model: &ModelArtifact{
				Spec: &ModelSpec{
					Arima: ArimaOrder{P: 1, D: 0, Q: 1},
					Garch: GarchOrder{P: 1, Q: 1},
				},
			},
			want: "ARIMA(1,0,1)-GARCH(1,1)",
		},
		{
			name: "omitted orders default to zero",
			model: &ModelArtifact{
				Spec: &ModelSpec{Arima: ArimaOrder{P: 2}},
			},
			want: "ARIMA(2,0,0)-GARCH(0,0)",
		},
		{
			name:  "no spec yields sentinel",
			model: &ModelArtifact{},
			want:  UnknownModel,
		},
		{
			name:  "nil artifact yields sentinel",
			model: nil,
			want:  UnknownModel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatModelSpec(tt.model))
		})
	}
}

func TestPersistence(t *testing.T) {
	omega := 0.01
	model := &ModelArtifact{
		Parameters: &ModelParameters{
			Garch: GarchParameters{
				Omega:     &omega,
				AlphaCoef: []float64{0.1},
				BetaCoef:  []float64{0.85},
			},
		},
	}

	sum, ok := model.Persistence()
	assert.True(t, ok)
	assert.InDelta(t, 0.95, sum, 1e-12)

	_, ok = (&ModelArtifact{}).Persistence()
	assert.False(t, ok)
}
