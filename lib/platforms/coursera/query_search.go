package coursera

import (
	"context"
	"courseprobe/lib/extract"
	"courseprobe/lib/queryclient"
)

// the fragment set mirrors what the search page itself sends, trimmed
// to the hit types the probe cares about
const searchQuery = `query Search($requests: [Search_Request!]!) {
  SearchResult {
    search(requests: $requests) {
      ...SearchResult
      __typename
    }
    __typename
  }
}

fragment SearchResult on Search_Result {
  elements {
    ...SearchHit
    __typename
  }
  facets {
    ...SearchFacets
    __typename
  }
  pagination {
    cursor
    totalElements
    __typename
  }
  totalPages
  source {
    indexName
    recommender {
      context
      hash
      __typename
    }
    __typename
  }
  __typename
}

fragment SearchHit on Search_Hit {
  ...SearchProductHit
  ...SearchSuggestionHit
  __typename
}

fragment SearchProductHit on Search_ProductHit {
  avgProductRating
  cobrandingEnabled
  completions
  duration
  id
  imageUrl
  isCourseFree
  isCreditEligible
  isNewContent
  isPartOfCourseraPlus
  name
  numProductRatings
  parentCourseName
  parentLessonName
  partnerLogos
  partners
  productDifficultyLevel
  productDuration
  productType
  skills
  url
  tagline
  __typename
}

fragment SearchSuggestionHit on Search_SuggestionHit {
  id
  name
  score
  __typename
}

fragment SearchFacets on Search_Facet {
  name
  nameDisplay
  valuesAndCounts {
    ...ValuesAndCounts
    __typename
  }
  __typename
}

fragment ValuesAndCounts on Search_FacetValueAndCount {
  count
  value
  valueDisplay
  __typename
}`

type SearchRequest struct {
	EntityType         string   `json:"entityType"`
	Limit              int      `json:"limit"`
	DisableRecommender bool     `json:"disableRecommender"`
	MaxValuesPerFacet  int      `json:"maxValuesPerFacet"`
	FacetFilters       []string `json:"facetFilters"`
	Cursor             string   `json:"cursor"`
	Query              string   `json:"query"`
}

func newSearchRequest(entityType, term string, limit int) SearchRequest {
	return SearchRequest{
		EntityType:         entityType,
		Limit:              limit,
		DisableRecommender: true,
		MaxValuesPerFacet:  1000,
		FacetFilters:       []string{},
		Cursor:             "0",
		Query:              term,
	}
}

// Search runs the gateway Search operation. Products and suggestions
// are batched into the one variables.requests list, the way the search
// page does it: still a single blocking call, demultiplexed by the
// source.indexName discriminator on the way out.
func (c *Client) Search(ctx context.Context, term string, limit int) queryclient.Outcome {
	requests := []SearchRequest{
		newSearchRequest("PRODUCTS", term, limit),
		newSearchRequest("SUGGESTIONS", term, 7),
	}
	return c.qc.Execute(ctx, queryclient.Request{
		Operation: "Search",
		Query:     searchQuery,
		Variables: map[string]any{"requests": requests},
		Endpoint: queryclient.Endpoint{
			Path:   "/graphql-gateway",
			Format: queryclient.WireGateway,
		},
	})
}

// ProductHitsSpec locates the product result group by its index name
// discriminator and normalizes each hit.
func ProductHitsSpec() extract.Spec {
	return extract.Spec{
		Collection: "data.SearchResult.search",
		Pick:       &extract.Pick{Path: "source.indexName", Equals: "PRODUCTS"},
		Elements:   "elements",
		Fields: extract.FieldMap{
			"name":     "name",
			"type":     "productType",
			"url":      "url",
			"rating":   "avgProductRating",
			"reviews":  "numProductRatings",
			"partners": "partners",
			"skills":   "skills",
			"free":     "isCourseFree",
			"plus":     "isPartOfCourseraPlus",
			"tagline":  "tagline",
		},
	}
}

func SuggestionHitsSpec() extract.Spec {
	return extract.Spec{
		Collection: "data.SearchResult.search",
		Pick:       &extract.Pick{Path: "source.indexName", Equals: "SUGGESTIONS"},
		Elements:   "elements",
		Fields: extract.FieldMap{
			"name":  "name",
			"score": "score",
		},
	}
}

// SearchPaginationSpec yields a single record holding the product
// group's pagination metadata.
func SearchPaginationSpec() extract.Spec {
	return extract.Spec{
		Collection: "data.SearchResult.search",
		Pick:       &extract.Pick{Path: "source.indexName", Equals: "PRODUCTS"},
		Elements:   "pagination",
		Fields: extract.FieldMap{
			"total":  "totalElements",
			"cursor": "cursor",
		},
	}
}

func SearchFacetsSpec() extract.Spec {
	return extract.Spec{
		Collection: "data.SearchResult.search",
		Pick:       &extract.Pick{Path: "source.indexName", Equals: "PRODUCTS"},
		Elements:   "facets",
		Fields: extract.FieldMap{
			"name":   "nameDisplay",
			"values": "valuesAndCounts",
		},
	}
}
