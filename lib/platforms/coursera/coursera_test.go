package coursera

import (
	"bytes"
	"context"
	"courseprobe/lib/extract"
	"courseprobe/lib/queryclient"
	"courseprobe/lib/render"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	_ "embed"

	"github.com/stretchr/testify/require"
)

//go:embed search_response_test.json
var searchResponseTest []byte

func newTestClient(t *testing.T, baseUrl string) *Client {
	client, err := NewClient(ClientOptions{BaseUrl: baseUrl})
	require.NoError(t, err)
	return client
}

func mustExtract(t *testing.T, spec extract.Spec, body any) []extract.Record {
	t.Helper()
	ex, err := extract.New(spec)
	require.NoError(t, err)
	return ex.Extract(body)
}

func TestSearchEndToEnd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/graphql-gateway", r.URL.Path)
		require.Equal(t, "Search", r.URL.Query().Get("opname"))

		var payload struct {
			Name      string `json:"operationName"`
			Variables struct {
				Requests []SearchRequest `json:"requests"`
			} `json:"variables"`
			Query string `json:"query"`
		}
		err := json.NewDecoder(r.Body).Decode(&payload)
		require.NoError(t, err)
		require.Equal(t, "Search", payload.Name)
		require.NotEmpty(t, payload.Query)
		require.Len(t, payload.Variables.Requests, 2)
		require.Equal(t, "PRODUCTS", payload.Variables.Requests[0].EntityType)
		require.Equal(t, 1, payload.Variables.Requests[0].Limit)
		require.Equal(t, "python", payload.Variables.Requests[0].Query)
		require.Equal(t, "SUGGESTIONS", payload.Variables.Requests[1].EntityType)

		w.Header().Set("content-type", "application/json")
		w.Write(searchResponseTest)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	out := client.Search(context.Background(), "python", 1)
	require.Equal(t, queryclient.KindSuccess, out.Kind)

	products := mustExtract(t, ProductHitsSpec(), out.Body)
	require.Len(t, products, 1)
	require.Equal(t, "Python for Everybody", products[0]["name"])

	pagination := mustExtract(t, SearchPaginationSpec(), out.Body)
	require.Len(t, pagination, 1)
	require.Equal(t, float64(1), pagination[0]["total"])

	suggestions := mustExtract(t, SuggestionHitsSpec(), out.Body)
	require.Len(t, suggestions, 2)

	var buf bytes.Buffer
	render.Hits(&buf, "search results", 1, products)
	render.Suggestions(&buf, "python", suggestions)
	require.Contains(t, buf.String(), "Python for Everybody")
	require.Contains(t, buf.String(), "Found 1 result(s)")
	require.Contains(t, buf.String(), "python for beginners")
}

func TestAutocomplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/autocomplete.v2", r.URL.Path)
		require.Equal(t, "python", r.URL.Query().Get("q"))
		require.Equal(t, "search", r.URL.Query().Get("context"))
		require.Equal(t, "10", r.URL.Query().Get("limit"))

		w.Write([]byte(`{"courses": [
			{"name": "Programming for Everybody", "domainId": "python", "partnerName": "University of Michigan"}
		]}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	out := client.Autocomplete(context.Background(), "python", 10)
	require.Equal(t, queryclient.KindSuccess, out.Kind)

	courses := mustExtract(t, AutocompleteCoursesSpec(), out.Body)
	require.Len(t, courses, 1)
	require.Equal(t, "Programming for Everybody", courses[0]["name"])
	require.Equal(t, "python", courses[0]["slug"])
	require.Equal(t, "University of Michigan", courses[0]["partner"])
}

func TestSearchCoursesAndBrowse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/courses.v1":
			require.Equal(t, "search", r.URL.Query().Get("q"))
			require.Equal(t, "python", r.URL.Query().Get("query"))
			require.Equal(t, courseFields, r.URL.Query().Get("fields"))
		case "/api/browse/v1/data-science":
			require.Equal(t, "0", r.URL.Query().Get("start"))
		default:
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{
			"elements": [{
				"name": "Sample Course",
				"slug": "sample-course",
				"description": "A course.",
				"partners": [{"name": "Example University"}],
				"workload": "4-6 hours/week"
			}],
			"paging": {"total": 123}
		}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	out := client.SearchCourses(context.Background(), "python", 10)
	require.Equal(t, queryclient.KindSuccess, out.Kind)
	courses := mustExtract(t, CourseElementsSpec(), out.Body)
	require.Len(t, courses, 1)
	require.Equal(t, "Sample Course", courses[0]["name"])

	paging := mustExtract(t, CoursePagingSpec(), out.Body)
	require.Len(t, paging, 1)
	require.Equal(t, float64(123), paging[0]["total"])

	out = client.Browse(context.Background(), "data-science", 10)
	require.Equal(t, queryclient.KindSuccess, out.Kind)
	require.Len(t, mustExtract(t, CourseElementsSpec(), out.Body), 1)
}

func TestSearchBatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/graphqlBatch", r.URL.Path)

		var payloads []map[string]any
		err := json.NewDecoder(r.Body).Decode(&payloads)
		require.NoError(t, err)
		require.Len(t, payloads, 1)
		require.Equal(t, "ProductSearch", payloads[0]["operationName"])

		w.Write([]byte(`[{"data": {"CatalogResultsV2": {"numResults": 1, "results": [
			{"courseId": "c1", "name": "Machine Learning", "partners": [{"name": "Stanford"}], "rating": 4.9}
		]}}}]`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	out := client.SearchBatch(context.Background(), "machine learning", 10)
	require.Equal(t, queryclient.KindSuccess, out.Kind)

	results := mustExtract(t, BatchResultsSpec(), out.Body)
	require.Len(t, results, 1)
	require.Equal(t, "Machine Learning", results[0]["name"])
}

func TestCourseDetails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/onDemandCourses.v1", r.URL.Path)
		require.Equal(t, "slug", r.URL.Query().Get("q"))
		require.Equal(t, "machine-learning", r.URL.Query().Get("slug"))
		require.Contains(t, r.URL.Query().Get("fields"), "primaryLanguages")

		w.Write([]byte(`{"elements": [{
			"name": "Machine Learning",
			"slug": "machine-learning",
			"description": "A course.",
			"workload": "5-7 hours/week",
			"primaryLanguages": ["en"],
			"subtitleLanguages": ["en", "es", "fr"],
			"partners": [{"name": "Stanford"}]
		}]}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	out := client.CourseDetails(context.Background(), "machine-learning")
	require.Equal(t, queryclient.KindSuccess, out.Kind)

	courses := mustExtract(t, CourseDetailsSpec(), out.Body)
	require.Len(t, courses, 1)
	require.Equal(t, "Machine Learning", courses[0]["name"])
	require.Equal(t, []any{"en"}, courses[0]["languages"])

	var buf bytes.Buffer
	render.Hits(&buf, "course details", -1, courses)
	require.Contains(t, buf.String(), "Languages: en")
	require.Contains(t, buf.String(), "Subtitles: en, es, fr")
}

func TestFallbackCourseDetails(t *testing.T) {
	out := FallbackCourseDetails("machine-learning")
	require.True(t, out.IsSuccess())

	courses := mustExtract(t, CourseDetailsSpec(), out.Body)
	require.Len(t, courses, 1)
	require.Equal(t, "Course: machine-learning", courses[0]["name"])
	require.Equal(t, "machine-learning", courses[0]["slug"])
	require.Equal(t, []any{"en", "es"}, courses[0]["subtitles"])
}

func TestFallbackCourses(t *testing.T) {
	out := FallbackCourses("python", 2)
	require.True(t, out.IsSuccess())

	courses := mustExtract(t, CourseElementsSpec(), out.Body)
	require.Len(t, courses, 2)
	require.Equal(t, "Sample Course for python", courses[0]["name"])

	paging := mustExtract(t, CoursePagingSpec(), out.Body)
	require.Len(t, paging, 1)
	require.Equal(t, float64(2), paging[0]["total"])
}
