package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"snipelabel/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently generated labels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.History.Enabled {
				fmt.Fprintln(cmd.OutOrStdout(), "Run history is disabled in the configuration")
				return nil
			}

			store, err := history.Open(cfg.Paths.DataDir)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No labels generated yet")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					strconv.FormatInt(run.ID, 10),
					run.ItemType,
					run.ItemID,
					run.OutputPath,
					strconv.Itoa(run.TagCount),
					strconv.Itoa(run.MissingTags),
					run.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				})
			}
			cols := []column{
				{name: "#", rightAlign: true},
				{name: "Type"},
				{name: "Item", rightAlign: true},
				{name: "Output"},
				{name: "Tags", rightAlign: true},
				{name: "Missing", rightAlign: true},
				{name: "Generated"},
			}
			fmt.Fprintln(out, renderTable(cols, rows))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to display")
	return cmd
}
