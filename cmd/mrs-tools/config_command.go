package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bloyl/fsl-mrs/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the mrs-tools configuration file",
	}
	cmd.AddCommand(newConfigInitCommand())
	cmd.AddCommand(newConfigShowCommand(ctx))
	return cmd
}

func newConfigInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write an annotated sample config if none exists",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.DefaultConfigPath()
			if err != nil {
				return err
			}
			if _, statErr := os.Stat(path); statErr == nil {
				return fmt.Errorf("config already exists at %s", path)
			}
			if err := config.CreateSample(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote sample config to %s\n", path)
			return nil
		},
	}
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			rows := [][]string{
				{"output_dir", orDash(cfg.OutputDir)},
				{"journal.enabled", fmt.Sprintf("%t", cfg.Journal.Enabled)},
				{"journal.path", orDash(cfg.Journal.Path)},
				{"log.level", cfg.Log.Level},
				{"log.format", cfg.Log.Format},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Setting", "Value"}, rows))
			return nil
		},
	}
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
