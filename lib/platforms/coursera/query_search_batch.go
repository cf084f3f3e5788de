package coursera

import (
	"context"
	"courseprobe/lib/extract"
	"courseprobe/lib/queryclient"
)

const productSearchQuery = `query ProductSearch($query: String!, $start: Int!, $limit: Int!, $filters: CoursesFilters) {
  CatalogResultsV2(query: $query, start: $start, limit: $limit, filters: $filters) {
    numResults
    results {
      ... on Course {
        courseId: id
        name
        description
        partners {
          name
        }
        duration
        rating
      }
    }
  }
}`

// SearchBatch runs the ProductSearch operation against the batch
// gateway, whose body is a one-element list and whose response is a
// list of per-operation results.
func (c *Client) SearchBatch(ctx context.Context, term string, limit int) queryclient.Outcome {
	return c.qc.Execute(ctx, queryclient.Request{
		Operation: "ProductSearch",
		Query:     productSearchQuery,
		Variables: map[string]any{
			"query":   term,
			"start":   0,
			"limit":   limit,
			"filters": map[string]any{},
		},
		Endpoint: queryclient.Endpoint{
			Path:   "/graphqlBatch",
			Format: queryclient.WireBatch,
		},
	})
}

// BatchResultsSpec walks the first per-operation result in the batch
// response list.
func BatchResultsSpec() extract.Spec {
	return extract.Spec{
		Collection: "[0].data.CatalogResultsV2.results",
		Fields: extract.FieldMap{
			"id":       "courseId",
			"name":     "name",
			"desc":     "description",
			"partners": "partners",
			"duration": "duration",
			"rating":   "rating",
		},
	}
}
