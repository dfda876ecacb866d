package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bloyl/fsl-mrs/internal/niftiio"
	"github.com/bloyl/fsl-mrs/internal/proc"
)

func newFShiftCommand(ctx *commandContext) *cobra.Command {
	var file string
	var amount float64
	out := &outputFlags{}

	cmd := &cobra.Command{
		Use:   "fshift",
		Short: "Shift the spectrum by a fixed frequency offset",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			img, err := niftiio.Read(file)
			if err != nil {
				return err
			}
			shifted, err := proc.FrequencyShift(img, amount)
			if err != nil {
				return fmt.Errorf("fshift %s: %w", file, err)
			}

			path, err := out.resolvePath(cfg, file, "fshifted")
			if err != nil {
				return err
			}
			if err := niftiio.Write(shifted, path); err != nil {
				return err
			}
			ctx.log().Info("frequency shifted", "amount_hz", amount, "output", path)
			ctx.recordOperation(cmd.Context(), "fshift", fmt.Sprintf("amount=%gHz", amount), []string{file}, []string{path})
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Input file")
	cmd.Flags().Float64Var(&amount, "amount", 0, "Shift in Hz (positive moves the spectrum up)")
	out.register(cmd)
	markFlagRequired(cmd, "file", "amount")
	return cmd
}
