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
	rootCmd.AddCommand(autocompleteCmd)
}

var autocompleteCmd = &cobra.Command{
	Use:   "autocomplete <term>...",
	Short: "Search through the autocomplete endpoint, the most reliable of the bunch.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		term := strings.Join(args, " ")
		client := newClient()

		fmt.Printf("Searching for %q...\n", term)
		out := client.Autocomplete(cmd.Context(), term, flagLimit)
		if !finishOutcome(cmd.Context(), "Autocomplete", "/api/autocomplete.v2", out) {
			return
		}

		courses := extractRecords(coursera.AutocompleteCoursesSpec(), out.Body)
		render.Hits(os.Stdout, "autocomplete results", -1, courses)
	},
}
