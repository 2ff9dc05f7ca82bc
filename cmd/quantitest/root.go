package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mrsinham/quantitest/internal/config"
	"github.com/mrsinham/quantitest/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// skipSetup marks commands that run without loading config or opening the log.
const skipSetup = "skip-setup"

// app carries the state shared by every subcommand once setup has run.
type app struct {
	v      *viper.Viper
	cfg    *config.Config
	logger *zap.Logger
}

// NewRootCmd creates the root command for quantitest. Without a subcommand it
// starts the guided test.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New(), logger: zap.NewNop()}

	cmd := &cobra.Command{
		Use:   "quantitest",
		Short: "Guided Quanti-Test skin prick allergy workflow",
		Long: `quantitest guides an operator through a Quanti-Test skin prick allergy test:
kit verification, well and tray setup, applicator loading, skin preparation,
timed application, the reading window, medication screening and a summary.

Settings come from flags, QUANTITEST_* environment variables and
$XDG_CONFIG_HOME/quantitest/config.yaml, in that order of precedence.
Run "quantitest init" to write a commented default config file.`,
		Version:           getVersion(),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.logger.Sync()
		},
		RunE: a.runWizard,
	}
	addOutFlag(cmd)

	// Global flags that apply to all commands
	cmd.PersistentFlags().StringP("config", "c", "", "config file (default is $XDG_CONFIG_HOME/quantitest/config.yaml)")
	cmd.PersistentFlags().String("assets", "", "directory holding reference images, results template and sound")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(newRunCmd(a))
	cmd.AddCommand(NewStepsCmd())
	cmd.AddCommand(newExportCmd(a))
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup loads the configuration and opens the session log.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if cmd.Annotations[skipSetup] == "true" {
		return nil
	}

	if err := a.loadConfig(cmd); err != nil {
		return err
	}

	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return err
	}
	logger, err := logging.New(logging.Options{
		Level:   a.cfg.Logging.Level,
		File:    a.cfg.Logging.File,
		Verbose: verbose,
	})
	if err != nil {
		return err
	}
	a.logger = logger
	a.logger.Debug("configuration loaded",
		zap.String("command", cmd.Name()),
		zap.String("config_file", a.v.ConfigFileUsed()),
		zap.String("assets_dir", a.cfg.Assets.Dir))
	return nil
}

func (a *app) loadConfig(cmd *cobra.Command) error {
	v := a.v
	config.SetDefaults(v)

	cfgFile, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(config.Dir())
	}

	if flag := cmd.Flags().Lookup("assets"); flag != nil {
		if err := v.BindPFlag("assets.dir", flag); err != nil {
			return err
		}
	}

	v.SetEnvPrefix(config.EnvPrefix)
	// QUANTITEST_TIMERS_PRESS_DURATION for timers.press_duration
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing default file is fine; an explicit one must exist.
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}

	cfg, err := config.Load(v)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	a.cfg = cfg
	return nil
}

func addOutFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("out", "o", ".", "directory for exported results")
}
