package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundError(t *testing.T) {
	err := NewNotFound("model file", "/tmp/model.json")
	assert.Contains(t, err.Error(), "model file not found")
	assert.Contains(t, err.Error(), "/tmp/model.json")
	assert.True(t, IsNotFound(err))
	assert.False(t, IsSchema(err))
}

func TestSchemaError(t *testing.T) {
	tests := []struct {
		name string
		err  *SchemaError
		want string
	}{
		{
			name: "missing fields listed in order",
			err:  NewSchemaMissing("forecast.csv", []string{"step", "std_dev"}),
			want: "forecast.csv: missing required fields: step, std_dev",
		},
		{
			name: "structural reason",
			err:  NewSchemaInvalid("data.csv", "no data rows"),
			want: "data.csv: no data rows",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
			assert.True(t, IsSchema(tt.err))
		})
	}
}

func TestParseErrorWrapsCause(t *testing.T) {
	cause := stderrors.New("unexpected EOF")
	err := NewParse("model.json", "json", cause)

	assert.Contains(t, err.Error(), "invalid json in model.json")
	assert.True(t, IsParse(err))
	assert.ErrorIs(t, err, cause)
}

func TestClassifiersSeeThroughWrapping(t *testing.T) {
	inner := NewSchemaMissing("sim.csv", []string{"path"})
	wrapped := fmt.Errorf("load simulation: %w", inner)

	assert.True(t, IsSchema(wrapped))
	assert.False(t, IsNotFound(wrapped))
	assert.False(t, IsParse(wrapped))
}
