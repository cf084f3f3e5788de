// Package render is the presentation layer: it turns outcomes and
// extraction results into text. It never branches on HTTP status
// codes, only on the outcome kind, and it is the only place
// user-visible error text is produced.
package render

import (
	"courseprobe/lib/extract"
	"courseprobe/lib/queryclient"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/antzucaro/matchr"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Diagnostic reports a non-success outcome uniformly. Success outcomes
// get no diagnostic, render the extraction instead.
func Diagnostic(w io.Writer, out queryclient.Outcome) {
	switch out.Kind {
	case queryclient.KindSuccess:
		return
	case queryclient.KindTransportFailure:
		fmt.Fprintf(w, "probe failed: %s\n", out.Kind)
		fmt.Fprintf(w, "cause: %s\n", out.Cause)
	case queryclient.KindServerError:
		fmt.Fprintf(w, "probe failed: %s\n", out.Kind)
		fmt.Fprintf(w, "status: %d\n", out.HTTPStatus)
		fmt.Fprintf(w, "body: %s\n", clip(out.RawBody, 2000))
	case queryclient.KindDecodeFailure:
		fmt.Fprintf(w, "probe failed: %s\n", out.Kind)
		fmt.Fprintf(w, "status: %d\n", out.HTTPStatus)
		fmt.Fprintf(w, "body: %s\n", clip(out.RawBody, 2000))
	default:
		fmt.Fprintf(w, "probe failed: unknown outcome %q\n", out.Kind)
	}
}

// Hits prints a numbered listing of normalized records. `total` is
// the upstream-reported result count, pass a negative value to fall
// back to the record count.
func Hits(w io.Writer, heading string, total int, recs []extract.Record) {
	fmt.Fprintf(w, "\n===== %s =====\n\n", strings.ToUpper(heading))
	if total < 0 {
		total = len(recs)
	}
	fmt.Fprintf(w, "Found %d result(s)\n\n", total)

	for i, rec := range recs {
		fmt.Fprintf(w, "%d. %v\n", i+1, stringField(rec, "name", "(unnamed)"))
		printIf(w, rec, "type", "   Type: %v\n")
		printIf(w, rec, "url", "   URL: %v\n")
		if slug, ok := rec["slug"]; ok {
			fmt.Fprintf(w, "   URL: https://www.coursera.org/learn/%v\n", slug)
		}
		if rating, ok := rec["rating"]; ok {
			if reviews, ok := rec["reviews"]; ok {
				fmt.Fprintf(w, "   Rating: %v (%v reviews)\n", rating, reviews)
			} else {
				fmt.Fprintf(w, "   Rating: %v\n", rating)
			}
		}
		if partners := stringList(rec["partners"]); len(partners) > 0 {
			fmt.Fprintf(w, "   Partners: %s\n", strings.Join(partners, ", "))
		}
		printIf(w, rec, "partner", "   Partner: %v\n")
		if skills := stringList(rec["skills"]); len(skills) > 0 {
			shown := skills
			if len(shown) > 3 {
				shown = shown[:3]
			}
			fmt.Fprintf(w, "   Skills: %s\n", strings.Join(shown, ", "))
			if len(skills) > 3 {
				fmt.Fprintf(w, "           + %d more\n", len(skills)-3)
			}
		}
		if free, ok := rec["free"].(bool); ok && free {
			fmt.Fprintln(w, "   FREE COURSE")
		}
		if plus, ok := rec["plus"].(bool); ok && plus {
			fmt.Fprintln(w, "   Included in Coursera Plus")
		}
		printIf(w, rec, "workload", "   Workload: %v\n")
		if languages := stringList(rec["languages"]); len(languages) > 0 {
			fmt.Fprintf(w, "   Languages: %s\n", strings.Join(languages, ", "))
		}
		if subtitles := stringList(rec["subtitles"]); len(subtitles) > 0 {
			fmt.Fprintf(w, "   Subtitles: %s\n", strings.Join(subtitles, ", "))
		}
		if desc, ok := rec["desc"].(string); ok && desc != "" {
			fmt.Fprintf(w, "   Description: %s\n", clip(desc, 100))
		}
		printIf(w, rec, "tagline", "   Tagline: %v\n")
		fmt.Fprintln(w)
	}
}

// Suggestions prints suggestion records ordered by upstream score
// when present, otherwise by string similarity against the query term.
func Suggestions(w io.Writer, term string, recs []extract.Record) {
	if len(recs) == 0 {
		return
	}
	sorted := make([]extract.Record, len(recs))
	copy(sorted, recs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return suggestionRank(term, sorted[i]) > suggestionRank(term, sorted[j])
	})

	fmt.Fprintf(w, "\n===== SEARCH SUGGESTIONS =====\n\n")
	for i, rec := range sorted {
		name := stringField(rec, "name", "(unnamed)")
		if score, ok := rec["score"]; ok {
			fmt.Fprintf(w, "%d. %s (score: %v)\n", i+1, name, score)
		} else {
			fmt.Fprintf(w, "%d. %s\n", i+1, name)
		}
	}
}

func suggestionRank(term string, rec extract.Record) float64 {
	if score, ok := rec["score"].(float64); ok {
		return score
	}
	name, _ := rec["name"].(string)
	return matchr.JaroWinkler(strings.ToLower(term), strings.ToLower(name), false)
}

// Facets renders the available search filters as a table.
func Facets(w io.Writer, recs []extract.Record) {
	if len(recs) == 0 {
		return
	}
	fmt.Fprintf(w, "\n===== AVAILABLE FILTERS =====\n\n")
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Filter", "Top values"})
	for _, rec := range recs {
		name := stringField(rec, "name", "?")
		values, _ := rec["values"].([]any)
		var parts []string
		for i, v := range values {
			if i >= 5 {
				parts = append(parts, fmt.Sprintf("+ %d more", len(values)-5))
				break
			}
			entry, _ := v.(map[string]any)
			parts = append(parts, fmt.Sprintf("%v (%v)", entry["valueDisplay"], entry["count"]))
		}
		if len(parts) == 0 {
			continue
		}
		t.AppendRow(table.Row{name, strings.Join(parts, "\n")})
	}
	t.Render()
}

func printIf(w io.Writer, rec extract.Record, key, format string) {
	if v, ok := rec[key]; ok && v != "" {
		fmt.Fprintf(w, format, v)
	}
}

func stringField(rec extract.Record, key, fallback string) string {
	if v, ok := rec[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

func stringList(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, e := range list {
		switch t := e.(type) {
		case string:
			out = append(out, t)
		case map[string]any:
			// partners sometimes arrive as [{name: ...}]
			if name, ok := t["name"].(string); ok {
				out = append(out, name)
			}
		}
	}
	return out
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
