// internal/cli/root.go
// Package cli wires the afplotter and afbatch commands to cobra and viper.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mwiater/afplotter/internal/appconfig"
)

const configName = "afplotter"

var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo allows the main package to inject build-time variables.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

func versionString() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", appVersion, appCommit, appDate)
}

// loadViper layers flags over AFPLOTTER_* environment variables over the
// config file. With no explicit path, a missing config file is not an error.
func loadViper(fs afero.Fs, cmd *cobra.Command, path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetFs(fs)
	v.SetEnvPrefix(appconfig.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", configName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}
	return v, nil
}

// addAmbientFlags registers the flags both commands share.
func addAmbientFlags(cmd *cobra.Command, cfgFile *string) {
	cmd.Flags().StringVarP(cfgFile, "config", "c", "", "config file (default: afplotter.{yaml,json,toml} in . or ~/.config/afplotter)")
	cmd.Flags().Bool("debug", false, "enable debug logging")
	cmd.Flags().String("log-file", "", "also append log output to this file")
}

// ExecutePlotter runs the single-run plotter and exits 1 on error.
func ExecutePlotter() {
	execute(NewPlotterCmd(afero.NewOsFs()))
}

// ExecuteBatch runs the batch walker and exits 1 on error.
func ExecuteBatch() {
	execute(NewBatchCmd(afero.NewOsFs(), nil))
}

func execute(cmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
