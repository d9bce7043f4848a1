package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agviz/internal/config"
	"agviz/pkg/contracts/domain"
)

// fakeEngine writes a shell script that echoes its arguments and exits
// with the given code.
func fakeEngine(t *testing.T, exitCode int) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake engine script requires a POSIX shell")
	}

	path := filepath.Join(t.TempDir(), "ag")
	script := "#!/bin/sh\necho \"args: $@\"\n"
	if exitCode != 0 {
		script += "echo \"engine failure\" >&2\n"
	}
	script += "exit " + strconv.Itoa(exitCode) + "\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func TestFindExecutableFromEnv(t *testing.T) {
	path := fakeEngine(t, 0)
	t.Setenv(ExecutableEnv, path)

	found, err := FindExecutable()
	require.NoError(t, err)
	assert.Equal(t, path, found)
}

func TestFindExecutableIgnoresStaleEnv(t *testing.T) {
	// A dangling env path falls through to the other search locations.
	t.Setenv(ExecutableEnv, filepath.Join(t.TempDir(), "missing"))
	t.Setenv("PATH", t.TempDir())

	_, err := FindExecutable()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExecutableNotFound)
}

func TestNewRunnerUsesConfiguredExecutable(t *testing.T) {
	path := fakeEngine(t, 0)

	r, err := NewRunner(config.EngineConfig{Executable: path, Timeout: time.Minute}, nil)
	require.NoError(t, err)
	assert.Equal(t, path, r.Executable())
}

func TestNewRunnerNotFound(t *testing.T) {
	t.Setenv(ExecutableEnv, "")
	t.Setenv("PATH", t.TempDir())

	_, err := NewRunner(config.EngineConfig{}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExecutableNotFound)
}

func TestRunnerFit(t *testing.T) {
	r, err := NewRunner(config.EngineConfig{Executable: fakeEngine(t, 0), Timeout: time.Minute}, nil)
	require.NoError(t, err)

	out, err := r.Fit(context.Background(), "data.csv",
		domain.ArimaOrder{P: 1, D: 0, Q: 1}, domain.GarchOrder{P: 1, Q: 1}, "model.json")
	require.NoError(t, err)
	assert.Contains(t, out, "args: fit -d data.csv -a 1,0,1 -g 1,1 -o model.json")
}

func TestRunnerForecast(t *testing.T) {
	r, err := NewRunner(config.EngineConfig{Executable: fakeEngine(t, 0), Timeout: time.Minute}, nil)
	require.NoError(t, err)

	out, err := r.Forecast(context.Background(), "model.json", 30, "forecast.csv")
	require.NoError(t, err)
	assert.Contains(t, out, "args: forecast -m model.json -n 30 -o forecast.csv")
}

func TestRunnerSimulateWithStats(t *testing.T) {
	r, err := NewRunner(config.EngineConfig{Executable: fakeEngine(t, 0), Timeout: time.Minute}, nil)
	require.NoError(t, err)

	opts := SimulateOptions{Paths: 100, Length: 500, Seed: 42, Stats: true}
	out, err := r.Simulate(context.Background(), "model.json", opts, "simulation.csv")
	require.NoError(t, err)
	assert.Contains(t, out, "args: simulate -m model.json -p 100 -n 500 -s 42 -o simulation.csv --stats")
}

func TestRunnerCommandError(t *testing.T) {
	r, err := NewRunner(config.EngineConfig{Executable: fakeEngine(t, 3), Timeout: time.Minute}, nil)
	require.NoError(t, err)

	_, err = r.Diagnostics(context.Background(), "model.json", "data.csv", "diagnostics.json")
	require.Error(t, err)

	var cmdErr *CommandError
	require.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, 3, cmdErr.ExitCode)
	assert.Contains(t, cmdErr.Stderr, "engine failure")
	assert.Contains(t, cmdErr.Command, "diagnostics -m model.json")
}

func TestRunnerTimeout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake engine script requires a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "ag")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\nsleep 5\n"), 0o755))

	r, err := NewRunner(config.EngineConfig{Executable: path, Timeout: 50 * time.Millisecond}, nil)
	require.NoError(t, err)

	_, err = r.Forecast(context.Background(), "model.json", 10, "forecast.csv")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
