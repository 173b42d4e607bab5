// Package document is the ingestion collaborator around the core: it decodes
// YAML or JSON bytes into the normalized nested mappings the compiler and
// loader consume. The core itself never reads files or touches encodings.
//
// Normalization guarantees: mappings are map[string]any, sequences are []any,
// numbers are int64 or float64, and the remaining scalars are string, bool or
// nil. An empty input normalizes to a nil document (the empty model).
package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// FromYAML decodes a single YAML document.
func FromYAML(data []byte) (map[string]any, error) {
	return FromYAMLReader(bytes.NewReader(data))
}

// FromYAMLReader decodes a single YAML document from the reader. The caller
// owns the reader lifetime (scoped acquire/release of the file handle stays
// outside the core).
func FromYAMLReader(r io.Reader) (map[string]any, error) {
	var node any
	if err := yaml.NewDecoder(r).Decode(&node); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("document: decoding YAML: %w", err)
	}
	return normalizeRoot(node)
}

// FromJSON decodes a JSON document. Numbers pass through a UseNumber decoder
// so integers survive without a float round-trip.
func FromJSON(data []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	dec := gojson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var node any
	if err := dec.Decode(&node); err != nil {
		return nil, fmt.Errorf("document: decoding JSON: %w", err)
	}
	return normalizeRoot(node)
}

func normalizeRoot(node any) (map[string]any, error) {
	if node == nil {
		return nil, nil
	}
	m := toStringMap(node)
	if m == nil {
		return nil, fmt.Errorf("document: top level must be a mapping, got %T", node)
	}
	return m, nil
}

// toStringMap converts decoded mappings (which may arrive as map[any]any from
// YAML) into map[string]any recursively. Non-map roots return nil.
func toStringMap(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = normalizeValue(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			ks, ok := k.(string)
			if !ok {
				ks = fmt.Sprintf("%v", k)
			}
			out[ks] = normalizeValue(vv)
		}
		return out
	default:
		return nil
	}
}

func normalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any, map[any]any:
		return toStringMap(t)
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = normalizeValue(t[i])
		}
		return arr
	case gojson.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case int:
		return int64(t)
	case int32:
		return int64(t)
	case uint64:
		return int64(t)
	case float32:
		return float64(t)
	default:
		return v
	}
}
