package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bloyl/fsl-mrs/internal/niftiio"
	"github.com/bloyl/fsl-mrs/internal/proc"
)

func newCoilCombineCommand(ctx *commandContext) *cobra.Command {
	var file string
	out := &outputFlags{}

	cmd := &cobra.Command{
		Use:   "coilcombine",
		Short: "Combine the receive-coil dimension into a single channel",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			img, err := niftiio.Read(file)
			if err != nil {
				return err
			}
			// Sensitivity-derived weights come from an external pipeline;
			// the CLI applies the uniform combination.
			combined, err := proc.CoilCombine(img, nil)
			if err != nil {
				return fmt.Errorf("coilcombine %s: %w", file, err)
			}

			path, err := out.resolvePath(cfg, file, "combined")
			if err != nil {
				return err
			}
			if err := niftiio.Write(combined, path); err != nil {
				return err
			}
			ctx.log().Info("coil combined", "output", path)
			ctx.recordOperation(cmd.Context(), "coilcombine", "", []string{file}, []string{path})
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Input file")
	out.register(cmd)
	markFlagRequired(cmd, "file")
	return cmd
}
