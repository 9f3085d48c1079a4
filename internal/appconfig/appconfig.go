// internal/appconfig/appconfig.go
// Package appconfig holds the resolved settings of the plotter and batch commands.
package appconfig

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

const (
	// DefaultGlob selects confidence files when searching target directories.
	DefaultGlob = "*confidences.json"
	// BatchGlob is the pattern the batch walker searches for and hands to each child run.
	BatchGlob = "*_confidences.json"
	// DefaultRunner launches the plotter inside a named environment.
	DefaultRunner = "conda"
	// EnvPrefix prefixes environment variables read by viper.
	EnvPrefix = "AFPLOTTER"
)

// PlotConfig is the merged configuration of a single plotter run.
type PlotConfig struct {
	Targets    []string `mapstructure:"-"`
	Recursive  bool     `mapstructure:"recursive"`
	NoPLDDT    bool     `mapstructure:"noplddt"`
	NoPAE      bool     `mapstructure:"nopae"`
	Glob       string   `mapstructure:"glob"`
	Output     string   `mapstructure:"output"`
	Debug      bool     `mapstructure:"debug"`
	LogFile    string   `mapstructure:"log-file"`
	ConfigPath string   `mapstructure:"-"`
}

// PLDDTEnabled reports whether pLDDT plots are produced.
func (c PlotConfig) PLDDTEnabled() bool { return !c.NoPLDDT }

// PAEEnabled reports whether PAE heatmaps are produced.
func (c PlotConfig) PAEEnabled() bool { return !c.NoPAE }

// GlobPattern returns the configured glob, falling back to DefaultGlob.
func (c PlotConfig) GlobPattern() string {
	if g := strings.TrimSpace(c.Glob); g != "" {
		return g
	}
	return DefaultGlob
}

// OutputDir returns the directory plots are written to, defaulting to the working directory.
func (c PlotConfig) OutputDir() string {
	if o := strings.TrimSpace(c.Output); o != "" {
		return o
	}
	return "."
}

// TargetPaths returns the configured targets, defaulting to the working directory.
func (c PlotConfig) TargetPaths() []string {
	if len(c.Targets) == 0 {
		return []string{"."}
	}
	return c.Targets
}

// Validate rejects settings the plotter cannot run with.
func (c PlotConfig) Validate() error {
	if _, err := filepath.Match(c.GlobPattern(), ""); err != nil {
		return fmt.Errorf("invalid glob %q: %w", c.GlobPattern(), err)
	}
	return nil
}

// BatchConfig is the merged configuration of a batch run.
type BatchConfig struct {
	Root        string `mapstructure:"-"`
	Plotter     string `mapstructure:"-"`
	Env         string `mapstructure:"-"`
	Runner      string `mapstructure:"runner"`
	FailOnError bool   `mapstructure:"fail-on-error"`
	Debug       bool   `mapstructure:"debug"`
	LogFile     string `mapstructure:"log-file"`
	ConfigPath  string `mapstructure:"-"`
}

// RunnerCommand returns the environment launcher, defaulting to conda.
func (c BatchConfig) RunnerCommand() string {
	if r := strings.TrimSpace(c.Runner); r != "" {
		return r
	}
	return DefaultRunner
}

// Validate checks that every positional argument was supplied.
func (c BatchConfig) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Root) == "" {
		errs = append(errs, errors.New("root directory is required"))
	}
	if strings.TrimSpace(c.Plotter) == "" {
		errs = append(errs, errors.New("plotter path is required"))
	}
	if strings.TrimSpace(c.Env) == "" {
		errs = append(errs, errors.New("environment name is required"))
	}
	return errors.Join(errs...)
}
