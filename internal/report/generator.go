package report

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Generator renders the Markdown reports. The clock is injectable so that
// two runs over the same inputs can be compared byte for byte under test.
type Generator struct {
	logger *slog.Logger
	now    func() time.Time
}

// Option customizes a Generator.
type Option func(*Generator)

// WithLogger overrides the default slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithClock overrides the timestamp source used in report headers.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// NewGenerator returns a Generator with the default clock and logger.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Generator) timestamp() string {
	return g.now().Format("2006-01-02 15:04:05")
}

func (g *Generator) dateStamp() string {
	return g.now().Format("2006-01-02")
}

func (g *Generator) footer() string {
	return fmt.Sprintf("\n---\n\n*Report generated by agviz on %s*\n",
		g.now().Format("2006-01-02 at 15:04:05"))
}

// write persists a finished report, creating parent directories as needed.
func (g *Generator) write(kind, content, outputPath string) (string, error) {
	if dir := filepath.Dir(outputPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create report directory: %w", err)
		}
	}
	if err := os.WriteFile(outputPath, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write %s report: %w", kind, err)
	}

	g.logger.Info("wrote markdown report",
		slog.String("kind", kind),
		slog.String("path", outputPath),
		slog.Int("bytes", len(content)))

	return outputPath, nil
}
