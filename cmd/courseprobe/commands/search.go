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
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <term>...",
	Short: "Search the graphql gateway for products, with suggestions batched alongside.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		term := strings.Join(args, " ")
		client := newClient()

		fmt.Printf("Searching for %q...\n", term)
		out := client.Search(cmd.Context(), term, flagLimit)
		if !finishOutcome(cmd.Context(), "Search", "/graphql-gateway", out) {
			return
		}

		products := extractRecords(coursera.ProductHitsSpec(), out.Body)
		total := reportedTotal(coursera.SearchPaginationSpec(), out.Body, len(products))
		render.Hits(os.Stdout, "search results", total, products)
		render.Suggestions(os.Stdout, term, extractRecords(coursera.SuggestionHitsSpec(), out.Body))
		render.Facets(os.Stdout, extractRecords(coursera.SearchFacetsSpec(), out.Body))
	},
}
