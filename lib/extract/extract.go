// Package extract normalizes the hit records buried inside a probe
// response. The upstream schema is externally controlled and drifts,
// so the response shape is configuration here: a path to the hit
// collection plus a field map, not a set of hardcoded structs.
package extract

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/itchyny/gojq"
)

// Record is one normalized hit. Fields absent or type-mismatched in
// the source are simply omitted.
type Record map[string]any

// FieldMap maps an output field name to a source key path, in jq-style
// dotted/indexed notation relative to one raw record, e.g.
// "source.indexName" or "partners[0]".
type FieldMap map[string]string

// Pick selects one element of an intermediate collection by comparing
// a key path against a value, e.g. the result group whose
// source.indexName equals "PRODUCTS".
type Pick struct {
	Path   string
	Equals any
}

// Spec describes where the raw hit records live in a response body
// and how to normalize each of them.
type Spec struct {
	// Collection is the key path from the body root to the hit
	// collection (or to the intermediate group list when Pick is set).
	Collection string
	// Pick optionally chooses one group out of the intermediate
	// collection before extraction.
	Pick *Pick
	// Elements is the key path from the located collection (or the
	// picked group) to the record list. Empty means the collection is
	// already the record list.
	Elements string
	Fields   FieldMap
}

type Extractor struct {
	collection *gojq.Code
	pick       *Pick
	pickPath   *gojq.Code
	elements   *gojq.Code
	fields     map[string]*gojq.Code
}

// New compiles the spec's key paths. Path syntax errors surface here,
// extraction itself never fails.
func New(spec Spec) (*Extractor, error) {
	e := &Extractor{
		pick:   spec.Pick,
		fields: make(map[string]*gojq.Code, len(spec.Fields)),
	}

	var err error
	e.collection, err = compilePath(spec.Collection)
	if err != nil {
		return nil, fmt.Errorf("collection path: %w", err)
	}
	if spec.Pick != nil {
		e.pickPath, err = compilePath(spec.Pick.Path)
		if err != nil {
			return nil, fmt.Errorf("pick path: %w", err)
		}
	}
	if spec.Elements != "" {
		e.elements, err = compilePath(spec.Elements)
		if err != nil {
			return nil, fmt.Errorf("elements path: %w", err)
		}
	}
	for name, path := range spec.Fields {
		code, err := compilePath(path)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		e.fields[name] = code
	}
	return e, nil
}

// Extract walks the body and normalizes every located record. A body
// that doesn't match the expected shape yields an empty result, never
// an error: "the shape was not found" is an answer, not a failure.
func (e *Extractor) Extract(body any) []Record {
	body, ok := normalize(body)
	if !ok {
		return nil
	}

	located := evalFirst(e.collection, body)
	if located == nil {
		return nil
	}

	if e.pick != nil {
		groups, ok := located.([]any)
		if !ok {
			return nil
		}
		located = nil
		want, _ := normalize(e.pick.Equals)
		for _, group := range groups {
			got := evalFirst(e.pickPath, group)
			if reflect.DeepEqual(got, want) {
				located = group
				break
			}
		}
		if located == nil {
			return nil
		}
	}

	if e.elements != nil {
		located = evalFirst(e.elements, located)
		if located == nil {
			return nil
		}
	}

	raws, ok := located.([]any)
	if !ok {
		// a single object where a list was expected is treated as a
		// one-record collection, shapes drift both ways
		if _, isObj := located.(map[string]any); !isObj {
			return nil
		}
		raws = []any{located}
	}

	records := make([]Record, 0, len(raws))
	for _, raw := range raws {
		rec := Record{}
		for name, code := range e.fields {
			if v := evalFirst(code, raw); v != nil {
				rec[name] = v
			}
		}
		records = append(records, rec)
	}
	return records
}

// compilePath turns a dotted/indexed key path into a gojq program.
// The `?` suffix makes missing keys and type mismatches yield nothing
// instead of erroring.
func compilePath(path string) (*gojq.Code, error) {
	expr := strings.TrimPrefix(path, ".")
	if expr == "" {
		expr = "."
	} else {
		expr = "." + expr + "?"
	}
	query, err := gojq.Parse(expr)
	if err != nil {
		return nil, err
	}
	return gojq.Compile(query)
}

func evalFirst(code *gojq.Code, v any) any {
	iter := code.Run(v)
	for {
		out, ok := iter.Next()
		if !ok {
			return nil
		}
		if _, isErr := out.(error); isErr {
			continue
		}
		if out == nil {
			continue
		}
		return out
	}
}

// normalize forces arbitrary Go values into the generic JSON shape
// gojq understands (map[string]any, []any, float64, ...).
func normalize(v any) (any, bool) {
	switch v.(type) {
	case nil, string, bool, float64:
		return v, true
	}
	encoded, err := json.Marshal(v)
	if err != nil {
		return nil, false
	}
	var out any
	if err := json.Unmarshal(encoded, &out); err != nil {
		return nil, false
	}
	return out, true
}
