package batch

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/afero"

	"github.com/mwiater/afplotter/internal/appconfig"
	"github.com/mwiater/afplotter/internal/logging"
	"github.com/mwiater/afplotter/internal/util"
)

const maxErrWidth = 120

var (
	progress = color.New(color.FgCyan)
	failure  = color.New(color.FgRed)
)

// Result records the outcome of one child run.
type Result struct {
	File     string
	Args     []string
	ExitCode int
	Err      error
	Duration time.Duration
}

// OK reports whether the child exited cleanly.
func (r Result) OK() bool { return r.Err == nil }

// Run finds every valid confidence file under cfg.Root and plots each one in
// a child process, one at a time. A failing child never stops the walk; its
// status is kept in the returned Summary.
func Run(ctx context.Context, afs afero.Fs, cfg appconfig.BatchConfig, runner Runner, out io.Writer) (Summary, error) {
	files, err := Find(afs, cfg.Root)
	if err != nil {
		return Summary{}, err
	}
	if len(files) == 0 {
		fmt.Fprintln(out, "No *_confidences.json files found.")
		return Summary{}, nil
	}

	launcher := Launcher{Runner: cfg.RunnerCommand(), Env: cfg.Env, Plotter: cfg.Plotter}
	summary := Summary{Results: make([]Result, 0, len(files))}
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		argv := launcher.Command(file)
		progress.Fprintf(out, "Running plotter for: %s\n", file)
		logging.LogDebug("exec %v", argv)

		start := time.Now()
		runErr := runner.Run(ctx, argv)
		res := Result{File: file, Args: argv, ExitCode: exitCode(runErr), Err: runErr, Duration: time.Since(start)}
		if !res.OK() {
			failure.Fprintf(out, "Plotter failed for: %s (%s)\n", file, util.TruncateRunes(runErr.Error(), maxErrWidth))
			logging.LogFileEvent("failed", file, runErr)
		}
		summary.Results = append(summary.Results, res)
	}
	return summary, nil
}
