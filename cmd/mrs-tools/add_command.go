package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bloyl/fsl-mrs/internal/niftiio"
	"github.com/bloyl/fsl-mrs/internal/niftimrs"
	"github.com/bloyl/fsl-mrs/internal/proc"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	var file string
	var dim string
	out := &outputFlags{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Collapse a length-2 tagged dimension into the half-sum of its conditions",
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
			summed, err := proc.Add(img, tag)
			if err != nil {
				return fmt.Errorf("add %s: %w", file, err)
			}

			path, err := out.resolvePath(cfg, file, "added")
			if err != nil {
				return err
			}
			if err := niftiio.Write(summed, path); err != nil {
				return err
			}
			ctx.log().Info("added", "dim", tag.String(), "output", path)
			ctx.recordOperation(cmd.Context(), "add", "dim="+tag.String(), []string{file}, []string{path})
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Input file")
	cmd.Flags().StringVar(&dim, "dim", "", "Length-2 dimension tag to collapse")
	out.register(cmd)
	markFlagRequired(cmd, "file", "dim")
	return cmd
}
