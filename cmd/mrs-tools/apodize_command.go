package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bloyl/fsl-mrs/internal/niftiio"
	"github.com/bloyl/fsl-mrs/internal/proc"
)

func newApodizeCommand(ctx *commandContext) *cobra.Command {
	var file string
	var amount float64
	out := &outputFlags{}

	cmd := &cobra.Command{
		Use:   "apodize",
		Short: "Apply exponential line broadening to every FID",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			img, err := niftiio.Read(file)
			if err != nil {
				return err
			}
			filtered, err := proc.Apodize(img, amount)
			if err != nil {
				return fmt.Errorf("apodize %s: %w", file, err)
			}

			path, err := out.resolvePath(cfg, file, "apodized")
			if err != nil {
				return err
			}
			if err := niftiio.Write(filtered, path); err != nil {
				return err
			}
			ctx.log().Info("apodized", "amount_hz", amount, "output", path)
			ctx.recordOperation(cmd.Context(), "apodize", fmt.Sprintf("amount=%gHz", amount), []string{file}, []string{path})
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Input file")
	cmd.Flags().Float64Var(&amount, "amount", 0, "Line broadening in Hz")
	out.register(cmd)
	markFlagRequired(cmd, "file", "amount")
	return cmd
}
