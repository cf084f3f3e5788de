package commands

import (
	"courseprobe/lib/platforms/coursera"
	"courseprobe/lib/render"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(browseCmd)
}

var browseCmd = &cobra.Command{
	Use:   "browse <topic>",
	Short: "Browse courses by topic slug, e.g. data-science.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		topic := args[0]
		client := newClient()

		fmt.Printf("Browsing topic %q...\n", topic)
		out := client.Browse(cmd.Context(), topic, flagLimit)
		if !finishOutcome(cmd.Context(), "Browse", "/api/browse/v1/"+topic, out) {
			return
		}

		courses := extractRecords(coursera.CourseElementsSpec(), out.Body)
		total := reportedTotal(coursera.CoursePagingSpec(), out.Body, len(courses))
		render.Hits(os.Stdout, "browse results", total, courses)
	},
}
