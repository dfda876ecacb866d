package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bloyl/fsl-mrs/internal/journal"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List journaled operations, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.Journal.Enabled {
				return errors.New("journal disabled in config")
			}
			store, err := journal.Open(cfg.Journal.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no journaled operations")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{
					entry.CreatedAt.Local().Format("2006-01-02 15:04:05"),
					entry.Operation,
					entry.Detail,
					strings.Join(entry.Inputs, ", "),
					strings.Join(entry.Outputs, ", "),
				})
			}
			headers := []string{"When", "Operation", "Detail", "Inputs", "Outputs"}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum entries to list (0 for all)")
	return cmd
}
