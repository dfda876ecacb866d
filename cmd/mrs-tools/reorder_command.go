package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bloyl/fsl-mrs/internal/niftiio"
	"github.com/bloyl/fsl-mrs/internal/niftimrs"
	"github.com/bloyl/fsl-mrs/internal/proc"
)

func newReorderCommand(ctx *commandContext) *cobra.Command {
	var file string
	var dimOrder []string
	out := &outputFlags{}

	cmd := &cobra.Command{
		Use:   "reorder",
		Short: "Permute the tagged dimensions of a dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			order, err := niftimrs.ParseTags(dimOrder)
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
			reordered, err := proc.Reorder(img, order)
			if err != nil {
				return fmt.Errorf("reorder %s: %w", file, err)
			}

			path, err := out.resolvePath(cfg, file, "reordered")
			if err != nil {
				return err
			}
			if err := niftiio.Write(reordered, path); err != nil {
				return err
			}
			detail := "dim_order=" + strings.Join(niftimrs.TagLabels(order), ",")
			ctx.log().Info("reordered", "dim_order", niftimrs.TagLabels(order), "output", path)
			ctx.recordOperation(cmd.Context(), "reorder", detail, []string{file}, []string{path})
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Input file")
	cmd.Flags().StringSliceVar(&dimOrder, "dim_order", nil, "Requested tag order (1-3 tags)")
	out.register(cmd)
	markFlagRequired(cmd, "file", "dim_order")
	return cmd
}
