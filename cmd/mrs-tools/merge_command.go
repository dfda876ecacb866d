package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bloyl/fsl-mrs/internal/niftiio"
	"github.com/bloyl/fsl-mrs/internal/niftimrs"
	"github.com/bloyl/fsl-mrs/internal/proc"
)

func newMergeCommand(ctx *commandContext) *cobra.Command {
	var files []string
	var dim string
	out := &outputFlags{}

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Concatenate datasets along a tagged dimension",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(files) < 2 {
				return fmt.Errorf("%w: merge needs at least 2 files via --files", niftimrs.ErrInsufficientInput)
			}
			tag, err := niftimrs.ParseTag(dim)
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			images := make([]*niftimrs.Image, len(files))
			for i, path := range files {
				img, readErr := niftiio.Read(path)
				if readErr != nil {
					return readErr
				}
				images[i] = img
			}

			merged, err := proc.Merge(images, tag)
			if err != nil {
				return fmt.Errorf("merge %v: %w", files, err)
			}

			path, err := out.resolvePath(cfg, files[0], "merged")
			if err != nil {
				return err
			}
			if err := niftiio.Write(merged, path); err != nil {
				return err
			}
			ctx.log().Info("merged", "dim", tag.String(), "inputs", len(files), "output", path)
			ctx.recordOperation(cmd.Context(), "merge", "dim="+tag.String(), files, []string{path})
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&files, "files", nil, "Input files to merge, in order")
	cmd.Flags().StringVar(&dim, "dim", "", "Dimension tag to concatenate along")
	out.register(cmd)
	markFlagRequired(cmd, "files", "dim")
	return cmd
}

func markFlagRequired(cmd *cobra.Command, names ...string) {
	for _, name := range names {
		if err := cmd.MarkFlagRequired(name); err != nil {
			panic(err)
		}
	}
}
