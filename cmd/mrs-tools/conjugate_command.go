package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bloyl/fsl-mrs/internal/niftiio"
	"github.com/bloyl/fsl-mrs/internal/proc"
)

func newConjugateCommand(ctx *commandContext) *cobra.Command {
	var file string
	out := &outputFlags{}

	cmd := &cobra.Command{
		Use:   "conjugate",
		Short: "Complex-conjugate a dataset to flip its sign convention",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			img, err := niftiio.Read(file)
			if err != nil {
				return err
			}
			conj, err := proc.Conjugate(img)
			if err != nil {
				return fmt.Errorf("conjugate %s: %w", file, err)
			}

			path, err := out.resolvePath(cfg, file, "conjugated")
			if err != nil {
				return err
			}
			if err := niftiio.Write(conj, path); err != nil {
				return err
			}
			ctx.log().Info("conjugated", "output", path)
			ctx.recordOperation(cmd.Context(), "conjugate", "", []string{file}, []string{path})
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Input file")
	out.register(cmd)
	markFlagRequired(cmd, "file")
	return cmd
}
