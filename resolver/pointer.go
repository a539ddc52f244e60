package resolver

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/schemaforge/tsgen/schema"
)

// evalPointer walks a JSON Pointer ("#", "#/definitions/Foo",
// "#/properties/a/items/2", ...) over the typed schema graph. Only the
// keywords that hold schema nodes are addressable; a pointer into scalar
// keywords is an error.
func evalPointer(doc *schema.Schema, pointer string) (*schema.Schema, error) {
	frag := strings.TrimPrefix(pointer, "#")
	frag = strings.TrimPrefix(frag, "/")
	if frag == "" {
		return doc, nil
	}

	cur := doc
	segments := strings.Split(frag, "/")
	for i := 0; i < len(segments); i++ {
		seg := unescapeSegment(segments[i])
		next, consumed, err := step(cur, seg, segments[i+1:])
		if err != nil {
			return nil, fmt.Errorf("at %q: %w", strings.Join(segments[:i+1], "/"), err)
		}
		cur = next
		i += consumed
	}
	return cur, nil
}

// step advances one keyword. Map- and list-valued keywords consume the
// following segment as the key or index.
func step(cur *schema.Schema, seg string, rest []string) (*schema.Schema, int, error) {
	mapped := func(m map[string]*schema.Schema) (*schema.Schema, int, error) {
		if len(rest) == 0 {
			return nil, 0, fmt.Errorf("missing key after %q", seg)
		}
		key := unescapeSegment(rest[0])
		child, ok := m[key]
		if !ok {
			return nil, 0, fmt.Errorf("no entry %q", key)
		}
		return child, 1, nil
	}
	indexed := func(list []*schema.Schema) (*schema.Schema, int, error) {
		if len(rest) == 0 {
			return nil, 0, fmt.Errorf("missing index after %q", seg)
		}
		idx, err := strconv.Atoi(rest[0])
		if err != nil || idx < 0 || idx >= len(list) {
			return nil, 0, fmt.Errorf("bad index %q", rest[0])
		}
		return list[idx], 1, nil
	}

	switch seg {
	case "definitions":
		return mapped(cur.Definitions)
	case "properties":
		return mapped(cur.Properties)
	case "patternProperties":
		return mapped(cur.PatternProperties)
	case "items":
		if cur.Items == nil {
			return nil, 0, fmt.Errorf("no items")
		}
		if cur.Items.Single != nil {
			return cur.Items.Single, 0, nil
		}
		return indexed(cur.Items.Tuple)
	case "additionalItems":
		if cur.AdditionalItems == nil || cur.AdditionalItems.Schema == nil {
			return nil, 0, fmt.Errorf("no additionalItems schema")
		}
		return cur.AdditionalItems.Schema, 0, nil
	case "additionalProperties":
		if cur.AdditionalProperties == nil || cur.AdditionalProperties.Schema == nil {
			return nil, 0, fmt.Errorf("no additionalProperties schema")
		}
		return cur.AdditionalProperties.Schema, 0, nil
	case "allOf":
		return indexed(cur.AllOf)
	case "anyOf":
		return indexed(cur.AnyOf)
	case "oneOf":
		return indexed(cur.OneOf)
	default:
		return nil, 0, fmt.Errorf("keyword %q is not addressable", seg)
	}
}

// unescapeSegment applies the JSON Pointer escape order: ~1 before ~0.
func unescapeSegment(seg string) string {
	seg = strings.ReplaceAll(seg, "~1", "/")
	return strings.ReplaceAll(seg, "~0", "~")
}
