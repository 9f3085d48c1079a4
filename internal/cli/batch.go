package cli

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/mwiater/afplotter/internal/appconfig"
	"github.com/mwiater/afplotter/internal/batch"
	"github.com/mwiater/afplotter/internal/logging"
)

// NewBatchCmd builds the afbatch command. A nil runner executes children as
// real processes whose output streams through the command's writers.
func NewBatchCmd(fs afero.Fs, runner batch.Runner) *cobra.Command {
	var (
		cfgFile string
		cfg     appconfig.BatchConfig
	)

	cmd := &cobra.Command{
		Use:   "afbatch <root_dir> <plotter_path> <env_name>",
		Short: "Run the plotter over every AlphaFold3 output directory under a root",
		Long: `Walk root_dir for files named <dir>/<dir>_confidences.json and run the
plotter on each one inside the named environment, writing plots next to the
input. Failed runs are reported in a summary and never stop the walk.`,
		Version: versionString(),
		Args:    cobra.ExactArgs(3),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			v, err := loadViper(fs, cmd, cfgFile)
			if err != nil {
				return err
			}
			cfg = appconfig.BatchConfig{}
			if err := v.Unmarshal(&cfg); err != nil {
				return fmt.Errorf("unmarshal config: %w", err)
			}
			cfg.Root, cfg.Plotter, cfg.Env = args[0], args[1], args[2]
			cfg.ConfigPath = cfgFile
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

			r := runner
			if r == nil {
				r = batch.ExecRunner{Stdout: cmd.OutOrStdout(), Stderr: cmd.ErrOrStderr()}
			}
			summary, err := batch.Run(cmd.Context(), fs, cfg, r, cmd.OutOrStdout())
			if len(summary.Results) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), summary.Render())
			}
			if err != nil {
				return err
			}
			logging.LogEvent("batch finished: %d succeeded, %d failed", summary.Succeeded(), summary.Failed())
			if cfg.FailOnError && summary.Failed() > 0 {
				return fmt.Errorf("%d of %d plotter run(s) failed", summary.Failed(), len(summary.Results))
			}
			return nil
		},
	}

	cmd.Flags().String("runner", appconfig.DefaultRunner, "environment launcher used to run the plotter")
	cmd.Flags().Bool("fail-on-error", false, "exit 1 when any plotter run fails")
	addAmbientFlags(cmd, &cfgFile)
	return cmd
}
