package engine

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
)

// ExecutableEnv overrides executable discovery when set.
const ExecutableEnv = "AG_EXECUTABLE"

// executableName is the engine binary searched for on PATH.
const executableName = "ag"

// ErrExecutableNotFound is returned when no engine binary can be located.
var ErrExecutableNotFound = errors.New(
	"ag executable not found: build the engine or set the AG_EXECUTABLE environment variable")

// buildDirs are the conventional build output locations, relative to the
// working directory, checked after the environment and PATH.
var buildDirs = []string{
	filepath.Join("build", "src"),
	filepath.Join("build", "Release", "src"),
	filepath.Join("build", "Debug", "src"),
}

// FindExecutable locates the engine binary. Search order: the
// AG_EXECUTABLE environment variable, the system PATH, then the
// conventional build directories.
func FindExecutable() (string, error) {
	if envPath := os.Getenv(ExecutableEnv); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
	}

	if path, err := exec.LookPath(executableName); err == nil {
		return path, nil
	}

	for _, dir := range buildDirs {
		candidate := filepath.Join(dir, executableName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	return "", ErrExecutableNotFound
}
