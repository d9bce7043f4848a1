package artifacts

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	apperrors "agviz/internal/errors"
	"agviz/pkg/contracts/domain"
)

// LoadDiagnostics loads a diagnostics JSON artifact. No keys are required:
// a file containing {} is a valid "diagnostics not computed" report, which
// is a different condition from a missing file.
func LoadDiagnostics(path string) (*domain.DiagnosticsReport, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, apperrors.NewNotFound("diagnostics file", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var report domain.DiagnosticsReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, apperrors.NewParse(path, "json", err)
	}

	slog.Debug("loaded diagnostics artifact",
		slog.String("path", path),
		slog.Bool("empty", report.Empty()))

	return &report, nil
}
