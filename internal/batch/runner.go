package batch

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/mwiater/afplotter/internal/appconfig"
)

// Launcher builds the child command line for one confidence file.
type Launcher struct {
	// Runner is the environment launcher executable, e.g. conda.
	Runner string
	// Env names the environment the plotter runs in.
	Env string
	// Plotter is the path of the single-run plotter.
	Plotter string
}

// Command returns the argv that plots file into its own directory.
func (l Launcher) Command(file string) []string {
	return []string{
		l.Runner, "run", "-n", l.Env,
		l.Plotter,
		file,
		"--output", filepath.Dir(file),
		"--glob", appconfig.BatchGlob,
	}
}

// Runner executes one child command and waits for it.
type Runner interface {
	Run(ctx context.Context, argv []string) error
}

// ExecRunner runs children with os/exec, streaming their output.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

// Run starts argv[0] with the remaining arguments and waits for it to exit.
// A non-zero exit is returned as *exec.ExitError.
func (r ExecRunner) Run(ctx context.Context, argv []string) error {
	if len(argv) == 0 {
		return errors.New("empty command")
	}
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Env = os.Environ()
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	return cmd.Run()
}

// exitCode extracts the child's exit status from a Run error: 0 for nil,
// the process status for *exec.ExitError, -1 when the child never ran.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
