package main

import (
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/mrsinham/quantitest/internal/assets"
	"github.com/mrsinham/quantitest/internal/media"
	"github.com/mrsinham/quantitest/internal/report"
	"github.com/mrsinham/quantitest/internal/workflow"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newExportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the results bundle without starting the guided test",
		Long: `Export writes the results document, a Markdown summary and, when a reaction
photo is given, a DICOM Secondary Capture of it.

The summary is built from an empty session, so every step shows as not yet
completed.

Examples:
  # Write the bundle to ./results
  quantitest export -o results

  # Include a reaction photo
  quantitest export -o results --reaction arm.jpg`,
		Args: cobra.NoArgs,
		RunE: a.runExport,
	}
	addOutFlag(cmd)
	cmd.Flags().String("reaction", "", "reaction photo to include as a DICOM capture")
	return cmd
}

func (a *app) runExport(cmd *cobra.Command, _ []string) error {
	out, err := cmd.Flags().GetString("out")
	if err != nil {
		return err
	}
	reactionPath, err := cmd.Flags().GetString("reaction")
	if err != nil {
		return err
	}

	var reaction *media.Image
	if reactionPath != "" {
		reaction, err = media.Open(reactionPath, a.cfg.UploadLimits())
		if err != nil {
			return fmt.Errorf("reading reaction photo: %w", err)
		}
	}

	var rng *rand.Rand
	if seed := a.cfg.Analysis.Seed; seed != 0 {
		rng = rand.New(rand.NewPCG(seed, 2))
	}

	state := workflow.NewState(uuid.NewString())
	bundle := report.Bundle{
		Sink:     report.TemplateSink{Store: assets.NewStore(a.cfg.Assets.Dir)},
		Summary:  report.FromState(state, a.cfg.ValidationProtocol(), report.TrendSeries(rng)),
		Reaction: reaction,
	}

	paths, err := bundle.Write(cmd.Context(), out)
	if err != nil {
		a.logger.Error("export failed", zap.String("out", out), zap.Error(err))
		return fmt.Errorf("exporting results: %w", err)
	}
	a.logger.Info("export written", zap.String("session", state.SessionID), zap.Strings("paths", paths))

	for _, p := range paths {
		fmt.Fprintln(cmd.OutOrStdout(), p)
	}
	return nil
}
