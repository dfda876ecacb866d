package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bloyl/fsl-mrs/internal/config"
	"github.com/bloyl/fsl-mrs/internal/niftiio"
)

// outputFlags are the destination options shared by every transforming
// command.
type outputFlags struct {
	dir      string
	filename string
}

func (f *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.dir, "output", "", "Output directory")
	cmd.Flags().StringVar(&f.filename, "filename", "", "Output file name (without extension)")
}

// resolvePath builds the output file path: --output wins, then the
// configured default directory. The base name defaults to the input stem
// plus an operation suffix.
func (f *outputFlags) resolvePath(cfg *config.Config, inputPath, opSuffix string) (string, error) {
	dir := strings.TrimSpace(f.dir)
	if dir == "" && cfg != nil {
		dir = cfg.OutputDir
	}
	if dir == "" {
		return "", errors.New("no output directory: pass --output or set output_dir in the config")
	}
	expanded, err := config.ExpandPath(dir)
	if err != nil {
		return "", err
	}

	name := strings.TrimSpace(f.filename)
	if name == "" {
		name = stem(inputPath) + "_" + opSuffix
	}
	name = strings.TrimSuffix(name, niftiio.Ext)
	return filepath.Join(expanded, name+niftiio.Ext), nil
}

func stem(path string) string {
	base := filepath.Base(path)
	for {
		ext := filepath.Ext(base)
		if ext == "" {
			return base
		}
		base = strings.TrimSuffix(base, ext)
	}
}

// splitPaths derives the two split output paths by suffixing _1 and _2.
func splitOutputPaths(path string) (string, string) {
	trimmed := strings.TrimSuffix(path, niftiio.Ext)
	return trimmed + "_1" + niftiio.Ext, trimmed + "_2" + niftiio.Ext
}

func formatShape(shape []int) string {
	parts := make([]string, len(shape))
	for i, n := range shape {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
