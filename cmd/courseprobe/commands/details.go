package commands

import (
	"courseprobe/lib/platforms/coursera"
	"courseprobe/lib/render"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var flagDetailsFallback *bool

func init() {
	flagDetailsFallback = detailsCmd.Flags().Bool("fallback", false, "Substitute a synthetic sample record when the call fails.")
	rootCmd.AddCommand(detailsCmd)
}

var detailsCmd = &cobra.Command{
	Use:   "details <slug>",
	Short: "Look up a single course by slug on the onDemandCourses.v1 endpoint.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		slug := args[0]
		client := newClient()

		fmt.Printf("Looking up course %q...\n", slug)
		out := client.CourseDetails(cmd.Context(), slug)
		if !out.IsSuccess() && *flagDetailsFallback {
			render.Diagnostic(os.Stdout, out)
			fmt.Println("substituting sample record")
			out = coursera.FallbackCourseDetails(slug)
		}
		if !finishOutcome(cmd.Context(), "CourseDetails", "/api/onDemandCourses.v1", out) {
			return
		}

		courses := extractRecords(coursera.CourseDetailsSpec(), out.Body)
		render.Hits(os.Stdout, "course details", -1, courses)
	},
}
