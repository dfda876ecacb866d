package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bloyl/fsl-mrs/internal/niftiio"
	"github.com/bloyl/fsl-mrs/internal/niftimrs"
	"github.com/bloyl/fsl-mrs/internal/proc"
)

func newAverageCommand(ctx *commandContext) *cobra.Command {
	var file string
	var dim string
	out := &outputFlags{}

	cmd := &cobra.Command{
		Use:   "average",
		Short: "Collapse a tagged dimension by taking the mean across it",
		RunE: func(cmd *cobra.Command, args []string) error {
			tag, err := niftimrs.ParseTag(dim)
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			img, err := niftiio.Read(file)
			if err != nil {
				return err
			}
			averaged, err := proc.Average(img, tag)
			if err != nil {
				return fmt.Errorf("average %s: %w", file, err)
			}

			path, err := out.resolvePath(cfg, file, "averaged")
			if err != nil {
				return err
			}
			if err := niftiio.Write(averaged, path); err != nil {
				return err
			}
			ctx.log().Info("averaged", "dim", tag.String(), "output", path)
			ctx.recordOperation(cmd.Context(), "average", "dim="+tag.String(), []string{file}, []string{path})
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Input file")
	cmd.Flags().StringVar(&dim, "dim", "", "Dimension tag to average across")
	out.register(cmd)
	markFlagRequired(cmd, "file", "dim")
	return cmd
}
