package cli

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"agviz/internal/config"
	"agviz/internal/engine"
	"agviz/internal/infrastructure"
	"agviz/pkg/contracts/domain"
)

// Version is stamped at build time.
var Version = "0.1.0"

// App carries the configuration and logger shared by every subcommand.
type App struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewRootCmd creates the agviz root command.
func NewRootCmd() *cobra.Command {
	app := &App{}

	rootCmd := &cobra.Command{
		Use:     "agviz",
		Short:   "Visualization and reporting for ARIMA-GARCH models",
		Version: Version,
		Long: `agviz wraps the ag estimation engine and turns its artifacts into
diagnostic charts and Markdown reports.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger, err := infrastructure.InitializeLogger(cfg.Logging)
			if err != nil {
				return fmt.Errorf("initialize logger: %w", err)
			}
			app.cfg = cfg
			app.logger = logger

			if _, err := engine.FindExecutable(); err != nil && cfg.Engine.Executable == "" {
				// A missing engine is fatal only when a command actually
				// invokes it, so just warn here.
				logger.Warn("engine executable not found",
					slog.String("hint", "build the engine or set AG_EXECUTABLE"))
			}
			return nil
		},
	}

	rootCmd.AddCommand(newFitCmd(app))
	rootCmd.AddCommand(newForecastCmd(app))
	rootCmd.AddCommand(newDiagnosticsCmd(app))
	rootCmd.AddCommand(newSimulateCmd(app))

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	defer infrastructure.CloseLogFile()
	return NewRootCmd().Execute()
}

func (a *App) newRunner() (*engine.Runner, error) {
	return engine.NewRunner(a.cfg.Engine, a.logger)
}

// parseArimaOrder parses "p,d,q".
func parseArimaOrder(s string) (domain.ArimaOrder, error) {
	parts, err := parseInts(s, 3)
	if err != nil {
		return domain.ArimaOrder{}, fmt.Errorf("invalid ARIMA order %q: expected p,d,q: %w", s, err)
	}
	return domain.ArimaOrder{P: parts[0], D: parts[1], Q: parts[2]}, nil
}

// parseGarchOrder parses "p,q".
func parseGarchOrder(s string) (domain.GarchOrder, error) {
	parts, err := parseInts(s, 2)
	if err != nil {
		return domain.GarchOrder{}, fmt.Errorf("invalid GARCH order %q: expected p,q: %w", s, err)
	}
	return domain.GarchOrder{P: parts[0], Q: parts[1]}, nil
}

func parseInts(s string, want int) ([]int, error) {
	fields := strings.Split(s, ",")
	if len(fields) != want {
		return nil, fmt.Errorf("got %d components, want %d", len(fields), want)
	}
	out := make([]int, want)
	for i, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("component %d: %w", i+1, err)
		}
		if v < 0 {
			return nil, fmt.Errorf("component %d: must be non-negative", i+1)
		}
		out[i] = v
	}
	return out, nil
}
