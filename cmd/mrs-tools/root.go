package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:           "mrs-tools",
		Short:         "Inspect and transform NIfTI-MRS datasets",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newInfoCommand(ctx))
	rootCmd.AddCommand(newVisCommand(ctx))
	rootCmd.AddCommand(newMergeCommand(ctx))
	rootCmd.AddCommand(newSplitCommand(ctx))
	rootCmd.AddCommand(newReorderCommand(ctx))
	rootCmd.AddCommand(newConjugateCommand(ctx))
	rootCmd.AddCommand(newAverageCommand(ctx))
	rootCmd.AddCommand(newCoilCombineCommand(ctx))
	rootCmd.AddCommand(newAddCommand(ctx))
	rootCmd.AddCommand(newSubtractCommand(ctx))
	rootCmd.AddCommand(newFShiftCommand(ctx))
	rootCmd.AddCommand(newPhaseCommand(ctx))
	rootCmd.AddCommand(newApodizeCommand(ctx))
	rootCmd.AddCommand(newTruncateCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
