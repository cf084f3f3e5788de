package commands

import (
	"courseprobe/lib/platforms/coursera"
	"courseprobe/lib/render"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var flagFallback *bool

func init() {
	flagFallback = coursesCmd.Flags().Bool("fallback", false, "Substitute synthetic sample records when the call fails.")
	rootCmd.AddCommand(coursesCmd)
}

var coursesCmd = &cobra.Command{
	Use:   "courses <term>...",
	Short: "Search the courses.v1 REST endpoint.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		term := strings.Join(args, " ")
		client := newClient()

		fmt.Printf("Searching for %q...\n", term)
		out := client.SearchCourses(cmd.Context(), term, flagLimit)
		if !out.IsSuccess() && *flagFallback {
			render.Diagnostic(os.Stdout, out)
			fmt.Println("substituting sample records")
			out = coursera.FallbackCourses(term, 1)
		}
		if !finishOutcome(cmd.Context(), "SearchCourses", "/api/courses.v1", out) {
			return
		}

		courses := extractRecords(coursera.CourseElementsSpec(), out.Body)
		total := reportedTotal(coursera.CoursePagingSpec(), out.Body, len(courses))
		render.Hits(os.Stdout, "course results", total, courses)
	},
}
