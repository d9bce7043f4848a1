package engine

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"agviz/internal/config"
	"agviz/pkg/contracts/domain"
)

// CommandError reports a non-zero exit from the engine, carrying enough
// context to reproduce the failing invocation.
type CommandError struct {
	Command  string
	ExitCode int
	Stderr   string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("ag command failed with exit code %d\ncommand: %s\nstderr: %s",
		e.ExitCode, e.Command, e.Stderr)
}

// Runner invokes the engine executable.
type Runner struct {
	executable string
	timeout    time.Duration
	logger     *slog.Logger
}

// NewRunner resolves the engine executable from configuration, falling
// back to discovery when no explicit path is set.
func NewRunner(cfg config.EngineConfig, logger *slog.Logger) (*Runner, error) {
	if logger == nil {
		logger = slog.Default()
	}

	executable := cfg.Executable
	if executable == "" {
		found, err := FindExecutable()
		if err != nil {
			return nil, err
		}
		executable = found
	}

	return &Runner{
		executable: executable,
		timeout:    cfg.Timeout,
		logger:     logger,
	}, nil
}

// Executable returns the resolved engine binary path.
func (r *Runner) Executable() string {
	return r.executable
}

// Fit estimates a model on the given data and writes it to outputPath.
func (r *Runner) Fit(ctx context.Context, dataPath string, arima domain.ArimaOrder, garch domain.GarchOrder, outputPath string) (string, error) {
	args := []string{
		"fit",
		"-d", dataPath,
		"-a", fmt.Sprintf("%d,%d,%d", arima.P, arima.D, arima.Q),
		"-g", fmt.Sprintf("%d,%d", garch.P, garch.Q),
		"-o", outputPath,
	}
	return r.run(ctx, args)
}

// Forecast produces a horizon-step forecast CSV from a fitted model.
func (r *Runner) Forecast(ctx context.Context, modelPath string, horizon int, outputPath string) (string, error) {
	args := []string{
		"forecast",
		"-m", modelPath,
		"-n", strconv.Itoa(horizon),
		"-o", outputPath,
	}
	return r.run(ctx, args)
}

// Diagnostics computes residual diagnostics for a fitted model against the
// original data and writes the JSON document to outputPath.
func (r *Runner) Diagnostics(ctx context.Context, modelPath, dataPath, outputPath string) (string, error) {
	args := []string{
		"diagnostics",
		"-m", modelPath,
		"-d", dataPath,
		"-o", outputPath,
	}
	return r.run(ctx, args)
}

// SimulateOptions parameterizes a Monte Carlo run.
type SimulateOptions struct {
	Paths  int
	Length int
	Seed   int
	Stats  bool
}

// Simulate draws simulated paths from a fitted model into a CSV panel.
func (r *Runner) Simulate(ctx context.Context, modelPath string, opts SimulateOptions, outputPath string) (string, error) {
	args := []string{
		"simulate",
		"-m", modelPath,
		"-p", strconv.Itoa(opts.Paths),
		"-n", strconv.Itoa(opts.Length),
		"-s", strconv.Itoa(opts.Seed),
		"-o", outputPath,
	}
	if opts.Stats {
		args = append(args, "--stats")
	}
	return r.run(ctx, args)
}

// run executes one engine invocation and returns its stdout.
func (r *Runner) run(ctx context.Context, args []string) (string, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	commandLine := r.executable + " " + strings.Join(args, " ")
	r.logger.Info("running engine command",
		slog.String("subcommand", args[0]),
		slog.String("command", commandLine))

	cmd := exec.CommandContext(ctx, r.executable, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return stdout.String(), fmt.Errorf("ag %s: %w", args[0], ctxErr)
		}
		if exitErr, ok := err.(*exec.ExitError); ok {
			return stdout.String(), &CommandError{
				Command:  commandLine,
				ExitCode: exitErr.ExitCode(),
				Stderr:   stderr.String(),
			}
		}
		return stdout.String(), fmt.Errorf("run ag %s: %w", args[0], err)
	}

	r.logger.Info("engine command finished",
		slog.String("subcommand", args[0]),
		slog.Duration("elapsed", elapsed))

	return stdout.String(), nil
}
