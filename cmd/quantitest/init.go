package main

import (
	"fmt"

	"github.com/mrsinham/quantitest/internal/config"
	"github.com/spf13/cobra"
)

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default quantitest configuration file",
		Long: `Init writes the default configuration as YAML.

Examples:
  # Create $XDG_CONFIG_HOME/quantitest/config.yaml
  quantitest init

  # Create a config file at a specific path
  quantitest init -o quantitest.yaml

  # Force overwrite existing file
  quantitest init -f`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipSetup: "true"},
		RunE:        runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.File(), "Output file path for the configuration")
	cmd.Flags().BoolP("force", "f", false, "Overwrite existing configuration file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if err := config.WriteDefault(outputPath, force); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created configuration file: %s\n", outputPath)
	return nil
}
