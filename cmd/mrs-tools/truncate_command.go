package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bloyl/fsl-mrs/internal/niftiio"
	"github.com/bloyl/fsl-mrs/internal/proc"
)

func newTruncateCommand(ctx *commandContext) *cobra.Command {
	var file string
	var points int
	var position string
	out := &outputFlags{}

	cmd := &cobra.Command{
		Use:   "truncate",
		Short: "Truncate or zero-pad the spectral axis",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			img, err := niftiio.Read(file)
			if err != nil {
				return err
			}
			resized, err := proc.TruncateOrPad(img, points, position)
			if err != nil {
				return fmt.Errorf("truncate %s: %w", file, err)
			}

			path, err := out.resolvePath(cfg, file, "truncated")
			if err != nil {
				return err
			}
			if err := niftiio.Write(resized, path); err != nil {
				return err
			}
			detail := fmt.Sprintf("points=%d, position=%s", points, position)
			ctx.log().Info("resized spectral axis", "points", points, "position", position, "output", path)
			ctx.recordOperation(cmd.Context(), "truncate_or_pad", detail, []string{file}, []string{path})
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Input file")
	cmd.Flags().IntVar(&points, "points", 0, "Samples to add (positive pads, negative truncates)")
	cmd.Flags().StringVar(&position, "position", "last", "End of the FID to grow or shrink (first or last)")
	out.register(cmd)
	markFlagRequired(cmd, "file", "points")
	return cmd
}
