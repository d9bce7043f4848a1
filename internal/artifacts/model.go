package artifacts

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	apperrors "agviz/internal/errors"
	"agviz/pkg/contracts/domain"
)

// LoadModel loads a model JSON artifact. The document must carry both
// top-level keys "spec" and "parameters"; deeper fields are optional and
// consumers tolerate their absence.
func LoadModel(path string) (*domain.ModelArtifact, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, apperrors.NewNotFound("model file", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, apperrors.NewParse(path, "json", err)
	}

	var missing []string
	for _, key := range []string{"spec", "parameters"} {
		if _, ok := raw[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, apperrors.NewSchemaMissing(path, missing)
	}

	var model domain.ModelArtifact
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, apperrors.NewParse(path, "json", err)
	}

	slog.Debug("loaded model artifact",
		slog.String("path", path),
		slog.String("spec", domain.FormatModelSpec(&model)))

	return &model, nil
}
