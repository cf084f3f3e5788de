package commands

import (
	"courseprobe/lib/outcomestore"
	"courseprobe/lib/serviceutil"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history --db <path>",
	Short: "List recorded probe outcomes, newest first.",
	Run: func(cmd *cobra.Command, args []string) {
		if flagDb == "" {
			serviceutil.Fatal("history requires --db", os.ErrInvalid)
		}
		store, err := outcomestore.Open(flagDb)
		if err != nil {
			serviceutil.Fatal("failed to open probe history", err)
		}
		defer store.Close()

		records, err := store.List(cmd.Context(), flagLimit)
		if err != nil {
			serviceutil.Fatal("failed to list probe history", err)
		}

		t := table.NewWriter()
		t.SetStyle(table.StyleRounded)
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"id", "time", "operation", "endpoint", "outcome", "status"})
		for _, rec := range records {
			t.AppendRow(table.Row{
				rec.Id,
				rec.CreatedAt.Format(time.DateTime),
				rec.Operation,
				rec.Endpoint,
				rec.Outcome.Kind,
				rec.Outcome.HTTPStatus,
			})
		}
		t.Render()
	},
}
