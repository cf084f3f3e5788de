package render

import (
	"bytes"
	"courseprobe/lib/extract"
	"courseprobe/lib/queryclient"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func TestDiagnosticCoversEveryFailureKind(t *testing.T) {
	cases := []struct {
		outcome queryclient.Outcome
		expect  []string
	}{
		{
			queryclient.TransportFailure("connection refused"),
			[]string{"transport_failure", "connection refused"},
		},
		{
			queryclient.ServerError(503, "service unavailable"),
			[]string{"server_error", "503", "service unavailable"},
		},
		{
			queryclient.DecodeFailure(200, "<html>not json</html>"),
			[]string{"decode_failure", "200", "not json"},
		},
	}

	for _, c := range cases {
		t.Run(string(c.outcome.Kind), func(t *testing.T) {
			var buf bytes.Buffer
			Diagnostic(&buf, c.outcome)
			for _, want := range c.expect {
				require.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestDiagnosticSilentOnSuccess(t *testing.T) {
	var buf bytes.Buffer
	Diagnostic(&buf, queryclient.Success(200, map[string]any{}))
	require.Empty(t, buf.String())
}

func TestHits(t *testing.T) {
	var buf bytes.Buffer
	Hits(&buf, "search results", 7000, []extract.Record{
		{
			"name":     "Python for Everybody",
			"type":     "SPECIALIZATION",
			"url":      "/specializations/python",
			"rating":   4.8,
			"reviews":  float64(210543),
			"partners": []any{"University of Michigan"},
			"skills":   []any{"Python Programming", "Data Structures", "Web Scraping", "SQL"},
			"free":     false,
			"plus":     true,
			"tagline":  "Learn to Program and Analyze Data with Python.",
		},
		{
			"name":     "Sample Course",
			"slug":     "sample-course",
			"partners": []any{map[string]any{"name": "Example University"}},
			"desc":     strings.Repeat("long description ", 20),
		},
	})

	text := buf.String()
	require.Contains(t, text, "SEARCH RESULTS")
	require.Contains(t, text, "Found 7000 result(s)")
	require.Contains(t, text, "1. Python for Everybody")
	require.Contains(t, text, "Rating: 4.8 (210543 reviews)")
	require.Contains(t, text, "Partners: University of Michigan")
	require.Contains(t, text, "+ 1 more")
	require.Contains(t, text, "Included in Coursera Plus")
	require.NotContains(t, text, "FREE COURSE")
	require.Contains(t, text, "2. Sample Course")
	require.Contains(t, text, "https://www.coursera.org/learn/sample-course")
	require.Contains(t, text, "Partners: Example University")
	require.Contains(t, text, "...")
}

func TestHitsFallsBackToRecordCount(t *testing.T) {
	var buf bytes.Buffer
	Hits(&buf, "results", -1, []extract.Record{{"name": "A"}, {"name": "B"}})
	require.Contains(t, buf.String(), "Found 2 result(s)")
}

func TestClipKeepsRunesIntact(t *testing.T) {
	long := strings.Repeat("编程与数据分析", 30)
	clipped := clip(long, 100)
	require.True(t, utf8.ValidString(clipped))
	require.LessOrEqual(t, len(clipped), 100)
	require.True(t, strings.HasSuffix(clipped, "..."))

	require.Equal(t, "short", clip("short", 100))
}

func TestSuggestionsOrderedByScore(t *testing.T) {
	var buf bytes.Buffer
	Suggestions(&buf, "python", []extract.Record{
		{"name": "python data science", "score": 71.5},
		{"name": "python for beginners", "score": 88.0},
	})

	text := buf.String()
	require.Less(
		t,
		strings.Index(text, "python for beginners"),
		strings.Index(text, "python data science"),
	)
	require.Contains(t, text, "(score: 88)")
}

func TestSuggestionsOrderedBySimilarityWithoutScore(t *testing.T) {
	var buf bytes.Buffer
	Suggestions(&buf, "python", []extract.Record{
		{"name": "java fundamentals"},
		{"name": "python basics"},
	})

	text := buf.String()
	require.Less(
		t,
		strings.Index(text, "python basics"),
		strings.Index(text, "java fundamentals"),
	)
}

func TestFacets(t *testing.T) {
	var buf bytes.Buffer
	Facets(&buf, []extract.Record{
		{
			"name": "Level",
			"values": []any{
				map[string]any{"count": float64(4213), "valueDisplay": "Beginner"},
				map[string]any{"count": float64(2117), "valueDisplay": "Intermediate"},
			},
		},
	})

	text := buf.String()
	require.Contains(t, text, "Level")
	require.Contains(t, text, "Beginner (4213)")
}
