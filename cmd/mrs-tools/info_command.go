package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bloyl/fsl-mrs/internal/niftiio"
	"github.com/bloyl/fsl-mrs/internal/niftimrs"
)

func newInfoCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>...",
		Short: "Print shape, dimension tags, and acquisition metadata",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := make([][]string, 0, len(args))
			for _, path := range args {
				img, err := niftiio.Read(path)
				if err != nil {
					return err
				}
				hdr := img.Header()
				tags := strings.Join(niftimrs.TagLabels(img.Tags()), ", ")
				if tags == "" {
					tags = "-"
				}
				rows = append(rows, []string{
					path,
					formatShape(img.Shape()),
					tags,
					fmt.Sprintf("%.4f", hdr.SpectrometerFrequency),
					fmt.Sprintf("%.3e", hdr.DwellTime),
					hdr.Nucleus,
				})
			}
			headers := []string{"File", "Shape", "Tags", "Frequency (MHz)", "Dwell (s)", "Nucleus"}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, 4, 5))
			return nil
		},
	}
}
