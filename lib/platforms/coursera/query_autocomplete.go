package coursera

import (
	"context"
	"courseprobe/lib/extract"
	"courseprobe/lib/queryclient"
)

// Autocomplete hits the autocomplete endpoint, the simplest and most
// reliable of the search surfaces.
func (c *Client) Autocomplete(ctx context.Context, term string, limit int) queryclient.Outcome {
	return c.qc.Execute(ctx, queryclient.Request{
		Operation: "Autocomplete",
		Variables: map[string]any{
			"q":       term,
			"context": "search",
			"limit":   limit,
		},
		Endpoint: queryclient.Endpoint{
			Path:   "/api/autocomplete.v2",
			Format: queryclient.WireREST,
		},
	})
}

func AutocompleteCoursesSpec() extract.Spec {
	return extract.Spec{
		Collection: "courses",
		Fields: extract.FieldMap{
			"name":    "name",
			"slug":    "domainId",
			"partner": "partnerName",
		},
	}
}
