package coursera

import (
	"context"
	"courseprobe/lib/extract"
	"courseprobe/lib/queryclient"
	"fmt"
)

const courseFields = "name,slug,photoUrl,partners,description,workload"

// SearchCourses queries the courses.v1 REST endpoint.
func (c *Client) SearchCourses(ctx context.Context, term string, limit int) queryclient.Outcome {
	return c.qc.Execute(ctx, queryclient.Request{
		Operation: "SearchCourses",
		Variables: map[string]any{
			"q":      "search",
			"query":  term,
			"limit":  limit,
			"fields": courseFields,
		},
		Endpoint: queryclient.Endpoint{
			Path:   "/api/courses.v1",
			Format: queryclient.WireREST,
		},
	})
}

// Browse lists courses under a topic slug, e.g. "data-science".
func (c *Client) Browse(ctx context.Context, topic string, limit int) queryclient.Outcome {
	return c.qc.Execute(ctx, queryclient.Request{
		Operation: "Browse",
		Variables: map[string]any{
			"start":  "0",
			"limit":  limit,
			"fields": "name,slug,photoUrl,description,partners",
		},
		Endpoint: queryclient.Endpoint{
			Path:   fmt.Sprintf("/api/browse/v1/%s", topic),
			Format: queryclient.WireREST,
		},
	})
}

// CourseDetails looks up a single course by its slug.
func (c *Client) CourseDetails(ctx context.Context, slug string) queryclient.Outcome {
	return c.qc.Execute(ctx, queryclient.Request{
		Operation: "CourseDetails",
		Variables: map[string]any{
			"q":      "slug",
			"slug":   slug,
			"fields": "name,slug,description,workload,primaryLanguages,subtitleLanguages,partners",
		},
		Endpoint: queryclient.Endpoint{
			Path:   "/api/onDemandCourses.v1",
			Format: queryclient.WireREST,
		},
	})
}

// CourseDetailsSpec adds the language fields that only the details
// endpoint returns.
func CourseDetailsSpec() extract.Spec {
	return extract.Spec{
		Collection: "elements",
		Fields: extract.FieldMap{
			"name":      "name",
			"slug":      "slug",
			"desc":      "description",
			"partners":  "partners",
			"workload":  "workload",
			"languages": "primaryLanguages",
			"subtitles": "subtitleLanguages",
		},
	}
}

// CourseElementsSpec covers both courses.v1 and browse responses,
// which share the elements + paging envelope.
func CourseElementsSpec() extract.Spec {
	return extract.Spec{
		Collection: "elements",
		Fields: extract.FieldMap{
			"name":     "name",
			"slug":     "slug",
			"desc":     "description",
			"partners": "partners",
			"workload": "workload",
		},
	}
}

func CoursePagingSpec() extract.Spec {
	return extract.Spec{
		Collection: "paging",
		Fields: extract.FieldMap{
			"total": "total",
		},
	}
}
