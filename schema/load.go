package schema

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Parse decodes a JSON schema document.
func Parse(data []byte) (*Schema, error) {
	s := new(Schema)
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("decode schema: %w", err)
	}
	return s, nil
}

// ParseYAML decodes a YAML schema document. The YAML tree is decoded to a
// generic value first and round-tripped through JSON so that the Schema
// type's custom decoding (type lists, tuple items, raw defaults) applies
// to both input formats identically.
func ParseYAML(data []byte) (*Schema, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	doc = stringifyKeys(doc)
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("convert yaml to json: %w", err)
	}
	return Parse(raw)
}

// Load reads and decodes a schema document from disk, choosing the decoder
// by file extension.
func Load(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return Parse(data)
	}
}

// stringifyKeys rewrites map[any]any nodes, which yaml.v3 produces for
// non-scalar keys, into map[string]any so the tree marshals as JSON.
func stringifyKeys(v any) any {
	switch m := v.(type) {
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = stringifyKeys(val)
		}
		return out
	case map[string]any:
		for k, val := range m {
			m[k] = stringifyKeys(val)
		}
		return m
	case []any:
		for i, val := range m {
			m[i] = stringifyKeys(val)
		}
		return m
	default:
		return v
	}
}
