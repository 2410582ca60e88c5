package commands

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"rankcrawl/lib/rankstore"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var showDb *string

func init() {
	showDb = showCmd.Flags().String("db", "rankings.db", "The database to read crawl results from.")
	rootCmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show <contest id> [contest id...]",
	Short: "Prints the most recently crawled standings of the given contests.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		db, err := rankstore.Open(*showDb)
		if err != nil {
			fatal("failed to open db", err)
		}
		defer db.Close()
		store := rankstore.NewStore(db)

		for _, contest := range args {
			run, records, ok, err := store.Latest(cmd.Context(), contest)
			if err != nil {
				fatal("failed to read stored results", err)
			}
			if !ok {
				slog.Warn("contest has not been crawled yet", "contest", contest)
				continue
			}

			slog.Info(
				"stored run",
				"contest", run.Contest,
				"fetched_at", run.FetchedAt.Format(time.ANSIC),
				"source", run.Source,
			)

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.AppendHeader(table.Row{"Rank", "Team", "Score", "Penalty", "Solved", "Problems"})
			for _, r := range records {
				t.AppendRow(table.Row{
					r.Rank, r.Team, r.Score, r.Penalty, r.Solved,
					strings.Join(r.Problems, " "),
				})
			}
			t.Render()
		}
	},
}
