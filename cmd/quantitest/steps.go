package main

import (
	"fmt"

	"github.com/mrsinham/quantitest/internal/steps"
	"github.com/spf13/cobra"
)

// NewStepsCmd creates the steps command.
func NewStepsCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "steps",
		Short:       "List the workflow steps in order",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipSetup: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, step := range steps.Default().Steps() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), step.Label()); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
