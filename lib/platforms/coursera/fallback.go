package coursera

import (
	"courseprobe/lib/queryclient"
	"fmt"
	"net/http"

	"github.com/mazen160/go-random"
)

// FallbackCourses builds a Success-shaped outcome holding synthetic
// sample records, for callers that want placeholder output when the
// real call fails. The substitution happens here in the caller's
// hands, the query client itself never fabricates data.
func FallbackCourses(term string, n int) queryclient.Outcome {
	if n < 1 {
		n = 1
	}
	elements := make([]any, n)
	for i := range elements {
		id, err := random.String(8)
		if err != nil {
			id = fmt.Sprintf("sample-%d", i)
		}
		elements[i] = map[string]any{
			"id":          id,
			"name":        fmt.Sprintf("Sample Course for %s", term),
			"slug":        "python-programming",
			"description": "This is a sample course description.",
			"partners":    []any{map[string]any{"name": "Example University"}},
			"workload":    "4-6 hours/week",
		}
	}
	return queryclient.Success(http.StatusOK, map[string]any{
		"elements": elements,
		"paging":   map[string]any{"total": n},
		"note":     "This is a fallback response as the actual API call failed.",
	})
}

// FallbackCourseDetails is the single-course counterpart of
// FallbackCourses, shaped like an onDemandCourses.v1 response.
func FallbackCourseDetails(slug string) queryclient.Outcome {
	return queryclient.Success(http.StatusOK, map[string]any{
		"elements": []any{map[string]any{
			"name":              fmt.Sprintf("Course: %s", slug),
			"slug":              slug,
			"description":       "This is a sample course description.",
			"partners":          []any{map[string]any{"name": "Example University"}},
			"workload":          "4-6 hours/week",
			"primaryLanguages":  []any{"en"},
			"subtitleLanguages": []any{"en", "es"},
		}},
		"note": "This is a fallback response as the actual API call failed.",
	})
}
