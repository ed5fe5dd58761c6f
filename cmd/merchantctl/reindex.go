package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/merchant-in-go/pkg/app"
	"github.com/doodlesbykumbi/merchant-in-go/pkg/config"
	"github.com/doodlesbykumbi/merchant-in-go/pkg/service"
)

// reindexCmd represents the reindex command
var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Rebuild the search mirror from the primary store",
	Long: `Rebuild the search mirror from the primary store.

Every row of every entity type is written to the mirror, and mirror documents
whose row no longer exists are removed. Mirror write failures are counted and
reported; a primary store failure stops the run.

Example:
  merchantctl reindex
  merchantctl reindex --batch 1000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		batch, _ := cmd.Flags().GetInt("batch")

		cfg := config.Get()
		a, err := app.Open(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer func() { _ = a.Close(context.Background()) }()

		stats, err := a.Reindex(cmd.Context(), batch)
		printReindexStats(cmd.OutOrStdout(), stats)
		return err
	},
}

func init() {
	rootCmd.AddCommand(reindexCmd)
	reindexCmd.Flags().Int("batch", service.DefaultReindexBatch, "Rows read from the primary store per page")
}

func printReindexStats(w io.Writer, stats []service.ReindexStats) {
	_, _ = fmt.Fprintf(w, "%-20s %8s %8s %8s\n", "ENTITY", "INDEXED", "REMOVED", "FAILED")
	for _, s := range stats {
		_, _ = fmt.Fprintf(w, "%-20s %8d %8d %8d\n", s.Entity, s.Indexed, s.Removed, s.Failed)
	}
}
