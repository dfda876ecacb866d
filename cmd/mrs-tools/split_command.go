package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bloyl/fsl-mrs/internal/niftiio"
	"github.com/bloyl/fsl-mrs/internal/niftimrs"
	"github.com/bloyl/fsl-mrs/internal/proc"
)

func newSplitCommand(ctx *commandContext) *cobra.Command {
	var file string
	var dim string
	var index int
	var indices []int
	out := &outputFlags{}

	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split a dataset in two along a tagged dimension",
		RunE: func(cmd *cobra.Command, args []string) error {
			indexSet := cmd.Flags().Changed("index")
			indicesSet := cmd.Flags().Changed("indices")
			if indexSet == indicesSet {
				return fmt.Errorf("split %s: exactly one of --index or --indices is required", file)
			}
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

			var first, second *niftimrs.Image
			var detail string
			if indexSet {
				first, second, err = proc.Split(img, tag, index)
				detail = fmt.Sprintf("dim=%s, index=%d", tag, index)
			} else {
				first, second, err = proc.SplitIndices(img, tag, indices)
				detail = fmt.Sprintf("dim=%s, indices=%v", tag, indices)
			}
			if err != nil {
				return fmt.Errorf("split %s: %w", file, err)
			}

			base, err := out.resolvePath(cfg, file, "split")
			if err != nil {
				return err
			}
			firstPath, secondPath := splitOutputPaths(base)
			if err := niftiio.Write(first, firstPath); err != nil {
				return err
			}
			if err := niftiio.Write(second, secondPath); err != nil {
				return err
			}
			ctx.log().Info("split", "dim", tag.String(), "outputs", []string{firstPath, secondPath})
			ctx.recordOperation(cmd.Context(), "split", detail, []string{file}, []string{firstPath, secondPath})
			fmt.Fprintln(cmd.OutOrStdout(), firstPath)
			fmt.Fprintln(cmd.OutOrStdout(), secondPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Input file")
	cmd.Flags().StringVar(&dim, "dim", "", "Dimension tag to split along")
	cmd.Flags().IntVar(&index, "index", 0, "Cut index: first output keeps 0..index inclusive")
	cmd.Flags().IntSliceVar(&indices, "indices", nil, "Explicit indices extracted into the second output")
	out.register(cmd)
	markFlagRequired(cmd, "file", "dim")
	return cmd
}
