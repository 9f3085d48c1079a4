package cli

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/mwiater/afplotter/internal/appconfig"
	"github.com/mwiater/afplotter/internal/logging"
	"github.com/mwiater/afplotter/internal/processor"
)

// NewPlotterCmd builds the afplotter command. Inputs are read from and plots
// written to fs.
func NewPlotterCmd(fs afero.Fs) *cobra.Command {
	var (
		cfgFile    string
		showConfig bool
		cfg        appconfig.PlotConfig
		configUsed string
	)

	cmd := &cobra.Command{
		Use:   "afplotter [target ...]",
		Short: "Plot pLDDT and PAE from AlphaFold3 confidence files",
		Long: `Plot per-atom pLDDT scores and the PAE heatmap for every AlphaFold3
confidence file found among the targets. Directories are searched with --glob;
files are plotted as given. With no targets the current directory is searched.`,
		Version: versionString(),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			v, err := loadViper(fs, cmd, cfgFile)
			if err != nil {
				return err
			}
			cfg = appconfig.PlotConfig{}
			if err := v.Unmarshal(&cfg); err != nil {
				return fmt.Errorf("unmarshal config: %w", err)
			}
			cfg.Targets = args
			cfg.ConfigPath = cfgFile
			configUsed = v.ConfigFileUsed()
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := logging.Init(cfg.LogFile, cfg.Debug); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			defer logging.Close()
			cmd.SilenceUsage = true

			if showConfig {
				appconfig.ShowConfig(cmd.OutOrStdout(), configUsed, cfg)
				return nil
			}
			written, err := processor.New(fs, cfg).Run()
			logging.LogDebug("wrote %d plot(s)", len(written))
			return err
		},
	}

	flags := cmd.Flags()
	flags.BoolP("recursive", "R", false, "search directory targets recursively")
	flags.Bool("noplddt", false, "do not produce pLDDT plots")
	flags.Bool("nopae", false, "do not produce PAE heatmaps")
	flags.String("glob", appconfig.DefaultGlob, "file pattern used when searching directories")
	flags.String("output", "", "directory plots are written to (must exist; default: current directory)")
	flags.BoolVar(&showConfig, "show-config", false, "print the merged configuration and exit")
	addAmbientFlags(cmd, &cfgFile)
	return cmd
}
