package queryclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, baseUrl string) *Client {
	client, err := New(Options{BaseURL: baseUrl})
	require.NoError(t, err)
	return client
}

func TestExecuteSuccess(t *testing.T) {
	var gotOpname string
	var gotContentType string
	var gotPayload gatewayPayload

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotOpname = r.URL.Query().Get("opname")
		gotContentType = r.Header.Get("content-type")
		err := json.NewDecoder(r.Body).Decode(&gotPayload)
		require.NoError(t, err)

		w.Header().Set("content-type", "application/json")
		w.Write([]byte(`{"data": {"X": 1}}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	out := client.Execute(context.Background(), Request{
		Operation: "Search",
		Query:     "query Search { X }",
		Variables: map[string]any{"limit": 1},
		Endpoint:  Endpoint{Path: "/graphql-gateway", Format: WireGateway},
	})

	require.Equal(t, KindSuccess, out.Kind)
	require.Equal(t, 200, out.HTTPStatus)
	require.Equal(t, map[string]any{"data": map[string]any{"X": float64(1)}}, out.Body)

	require.Equal(t, "Search", gotOpname)
	require.Equal(t, "application/json", gotContentType)
	require.Equal(t, "Search", gotPayload.Name)
	require.Equal(t, "query Search { X }", gotPayload.Query)
}

func TestExecuteBatch(t *testing.T) {
	var gotPayloads []gatewayPayload

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := json.NewDecoder(r.Body).Decode(&gotPayloads)
		require.NoError(t, err)
		w.Write([]byte(`[{"data": {"CatalogResultsV2": {"numResults": 0}}}]`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	out := client.Execute(context.Background(), Request{
		Operation: "ProductSearch",
		Query:     "query ProductSearch { x }",
		Variables: map[string]any{"query": "python"},
		Endpoint:  Endpoint{Path: "/graphqlBatch", Format: WireBatch},
	})

	require.Equal(t, KindSuccess, out.Kind)
	require.Len(t, gotPayloads, 1)
	require.Equal(t, "ProductSearch", gotPayloads[0].Name)

	// the response demultiplexes as a plain list
	list, ok := out.Body.([]any)
	require.True(t, ok)
	require.Len(t, list, 1)
}

func TestExecuteREST(t *testing.T) {
	var gotQuery map[string][]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"elements": []}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	out := client.Execute(context.Background(), Request{
		Operation: "SearchCourses",
		Variables: map[string]any{
			"q":      "search",
			"query":  "python",
			"limit":  10,
			"free":   true,
			"fields": []string{"name", "slug"},
		},
		Endpoint: Endpoint{Path: "/api/courses.v1", Format: WireREST},
	})

	require.Equal(t, KindSuccess, out.Kind)
	require.Equal(t, []string{"search"}, gotQuery["q"])
	require.Equal(t, []string{"python"}, gotQuery["query"])
	require.Equal(t, []string{"10"}, gotQuery["limit"])
	require.Equal(t, []string{"true"}, gotQuery["free"])
	require.Equal(t, []string{"name,slug"}, gotQuery["fields"])
}

func TestExecuteServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("oops"))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	out := client.Execute(context.Background(), Request{
		Operation: "Search",
		Endpoint:  Endpoint{Path: "/graphql-gateway", Format: WireGateway},
	})

	require.Equal(t, KindServerError, out.Kind)
	require.Equal(t, 500, out.HTTPStatus)
	require.Equal(t, "oops", out.RawBody)
	require.Nil(t, out.Body)
}

func TestExecuteDecodeFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	out := client.Execute(context.Background(), Request{
		Operation: "Search",
		Endpoint:  Endpoint{Path: "/graphql-gateway", Format: WireGateway},
	})

	require.Equal(t, KindDecodeFailure, out.Kind)
	require.Equal(t, 200, out.HTTPStatus)
	require.Equal(t, "not json", out.RawBody)
}

func TestExecuteTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := newTestClient(t, url)
	out := client.Execute(context.Background(), Request{
		Operation: "Search",
		Endpoint:  Endpoint{Path: "/graphql-gateway", Format: WireGateway},
	})

	require.Equal(t, KindTransportFailure, out.Kind)
	require.NotEmpty(t, out.Cause)
	require.Zero(t, out.HTTPStatus)
}

func TestExecuteUnserializableVariables(t *testing.T) {
	client := newTestClient(t, "http://127.0.0.1:0")
	out := client.Execute(context.Background(), Request{
		Operation: "Search",
		Variables: map[string]any{"bad": make(chan int)},
		Endpoint:  Endpoint{Path: "/graphql-gateway", Format: WireGateway},
	})

	require.Equal(t, KindTransportFailure, out.Kind)
	require.Contains(t, out.Cause, "serialize request")
}

func TestQueryParamValue(t *testing.T) {
	require.Equal(t, "hello", queryParamValue("hello"))
	require.Equal(t, "true", queryParamValue(true))
	require.Equal(t, "7", queryParamValue(7))
	require.Equal(t, "2.5", queryParamValue(2.5))
	require.Equal(t, "a,b", queryParamValue([]string{"a", "b"}))
	require.Equal(t, "a,1", queryParamValue([]any{"a", 1}))
	require.Equal(t, `{"k":"v"}`, queryParamValue(map[string]string{"k": "v"}))
}
