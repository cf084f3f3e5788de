package commands

import (
	"courseprobe/lib/platforms/coursera"
	"courseprobe/lib/render"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(batchCmd)
}

var batchCmd = &cobra.Command{
	Use:   "batch <term>...",
	Short: "Search through the batch gateway (ProductSearch over /graphqlBatch).",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		term := strings.Join(args, " ")
		client := newClient()

		fmt.Printf("Searching for %q...\n", term)
		out := client.SearchBatch(cmd.Context(), term, flagLimit)
		if !finishOutcome(cmd.Context(), "ProductSearch", "/graphqlBatch", out) {
			return
		}

		results := extractRecords(coursera.BatchResultsSpec(), out.Body)
		render.Hits(os.Stdout, "catalog results", -1, results)
	},
}
