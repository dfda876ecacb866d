package main

import (
	"fmt"
	"math/cmplx"
	"os"
	"path/filepath"
	"sort"
	"strings"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/bloyl/fsl-mrs/internal/niftiio"
	"github.com/bloyl/fsl-mrs/internal/niftimrs"
)

const (
	previewWidth = 72
	ansiCyan     = "\x1b[36m"
	ansiReset    = "\x1b[0m"
)

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

func newVisCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "vis <file-or-dir>",
		Short: "Render a quick terminal preview of the magnitude spectrum",
		Long: "Renders a coarse magnitude-spectrum preview of the first spectrum in a " +
			"dataset. Full interactive plotting lives outside this tool; vis is meant " +
			"for a fast sanity check on the command line.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := previewTargets(args[0])
			if err != nil {
				return err
			}
			colorize := isatty.IsTerminal(os.Stdout.Fd())
			for _, path := range paths {
				img, err := niftiio.Read(path)
				if err != nil {
					return err
				}
				line, err := spectrumPreview(img)
				if err != nil {
					return fmt.Errorf("vis %s: %w", path, err)
				}
				if colorize {
					line = ansiCyan + line + ansiReset
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s %s\n", line, filepath.Base(path), formatShape(img.Shape()))
			}
			return nil
		},
	}
}

// previewTargets expands a basis-set directory into its container files.
func previewTargets(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), niftiio.Ext) {
			continue
		}
		paths = append(paths, filepath.Join(path, entry.Name()))
	}
	sort.Strings(paths)
	if len(paths) == 0 {
		return nil, fmt.Errorf("vis %s: no %s files in directory", path, niftiio.Ext)
	}
	return paths, nil
}

// spectrumPreview transforms the first FID to the frequency domain and
// renders its magnitude as a sparkline.
func spectrumPreview(img *niftimrs.Image) (string, error) {
	fid := firstFID(img)

	size := 1
	for size < len(fid) {
		size *= 2
	}
	in := make([]complex128, size)
	copy(in, fid)

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return "", fmt.Errorf("fft plan: %w", err)
	}
	out := make([]complex128, size)
	if err := plan.Forward(out, in); err != nil {
		return "", fmt.Errorf("fft: %w", err)
	}

	// fftshift so the carrier frequency sits mid-line.
	mags := make([]float64, size)
	for i, v := range out {
		mags[(i+size/2)%size] = cmplx.Abs(v)
	}
	return sparkline(mags, previewWidth), nil
}

func firstFID(img *niftimrs.Image) []complex128 {
	points := img.SpectralLen()
	fid := make([]complex128, points)
	idx := make([]int, img.NDim())
	for n := 0; n < points; n++ {
		idx[3] = n
		fid[n] = img.At(idx...)
	}
	return fid
}

func sparkline(values []float64, width int) string {
	if width > len(values) {
		width = len(values)
	}
	binned := make([]float64, width)
	peak := 0.0
	for i, v := range values {
		bin := i * width / len(values)
		if v > binned[bin] {
			binned[bin] = v
		}
		if v > peak {
			peak = v
		}
	}
	var b strings.Builder
	for _, v := range binned {
		level := 0
		if peak > 0 {
			level = int(v / peak * float64(len(sparkRunes)-1))
		}
		b.WriteRune(sparkRunes[level])
	}
	return b.String()
}
