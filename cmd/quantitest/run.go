package main

import (
	"github.com/mrsinham/quantitest/cmd/quantitest/wizard"
	"github.com/mrsinham/quantitest/internal/assets"
	"github.com/mrsinham/quantitest/internal/timer"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRunCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the guided test (default)",
		Long: `Start the interactive guided test in the terminal.

Navigate with ctrl+n / ctrl+p, open the assistant with ctrl+t and quit with ctrl+c.
Exports triggered from the results steps are written to --out.`,
		Args: cobra.NoArgs,
		RunE: a.runWizard,
	}
	addOutFlag(cmd)
	return cmd
}

func (a *app) runWizard(cmd *cobra.Command, _ []string) error {
	out, err := cmd.Flags().GetString("out")
	if err != nil {
		return err
	}

	store := assets.NewStore(a.cfg.Assets.Dir)
	if missing := store.Missing(); len(missing) > 0 {
		a.logger.Warn("assets missing",
			zap.String("dir", store.Root()),
			zap.Strings("names", missing))
	}

	a.logger.Info("starting wizard", zap.String("out", out))
	return wizard.Run(wizard.Options{
		Config:    a.cfg,
		Store:     store,
		Sink:      a.notificationSink(store),
		Bell:      a.cfg.Notifications.Enabled,
		Logger:    a.logger,
		OutputDir: out,
	})
}

// notificationSink builds the completion sound from the notifications
// section. The wizard rings the bell itself since the terminal belongs to the
// renderer.
func (a *app) notificationSink(store *assets.Store) timer.NotificationSink {
	if !a.cfg.Notifications.Enabled {
		return timer.NoopSink{}
	}
	return timer.BellSink{
		SoundCommand: a.cfg.Notifications.SoundCommand,
		SoundPath:    store.Path(assets.CompletionBeep),
		Logger:       a.logger,
	}
}
