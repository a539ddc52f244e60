package parser

import (
	"bytes"

	json "github.com/goccy/go-json"

	"github.com/schemaforge/tsgen/ast"
	"github.com/schemaforge/tsgen/errdefs"
	"github.com/schemaforge/tsgen/schema"
)

// memberDefault validates and renders the default of a non-required
// member. Every optional member must declare one: the generated factory
// has no other source of truth for what to substitute. A null default is
// only legal on a nullable member or one whose type is a named
// declaration (a reference type may default to null even when not
// declared nullable). Non-null defaults must structurally match the
// member's type, unless the member is nullable, in which case the kind
// check is skipped.
func (p *parser) memberDefault(prop *schema.Schema, node ast.Node, nullable bool) (string, error) {
	if !prop.HasDefault() {
		return "", errdefs.New(errdefs.CodeDefaultValue,
			"optional member declares no default value")
	}
	raw := compact(prop.Default)

	if string(raw) == "null" {
		if !nullable && !ast.Named(node) {
			return "", errdefs.New(errdefs.CodeDefaultValue,
				"null default on a non-nullable, unnamed member")
		}
		return "null", nil
	}
	if !nullable {
		if kind, ok := literalKindOf(raw); ok && !kindMatches(kind, node) {
			return "", errdefs.Newf(errdefs.CodeDefaultValue,
				"default of kind %s does not match member type %s", kind, node.Kind())
		}
	}
	return string(raw), nil
}

// literalKindOf classifies a raw JSON literal by its leading byte.
func literalKindOf(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}
	switch raw[0] {
	case '"':
		return "string", true
	case 't', 'f':
		return "boolean", true
	case '[':
		return "array", true
	case '{':
		return "object", true
	case 'n':
		return "null", true
	default:
		return "number", true
	}
}

// kindMatches reports whether a literal of the given kind can inhabit the
// node's type. Compound and unconstrained node kinds accept anything; the
// structural check only rejects what is provably wrong.
func kindMatches(literalKind string, node ast.Node) bool {
	switch node.Kind() {
	case ast.KindString:
		return literalKind == "string"
	case ast.KindNumber:
		return literalKind == "number"
	case ast.KindBoolean:
		return literalKind == "boolean"
	case ast.KindNull:
		return literalKind == "null"
	case ast.KindArray, ast.KindTuple:
		return literalKind == "array"
	case ast.KindObject, ast.KindInterface:
		return literalKind == "object"
	default:
		return true
	}
}

// renderLiteral renders a decoded literal value as source text. JSON
// literal syntax is valid TypeScript expression syntax, so the rendered
// form is the JSON encoding.
func renderLiteral(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", errdefs.Newf(errdefs.CodeShape, "unrepresentable literal value: %v", err)
	}
	return string(raw), nil
}

// compact strips insignificant whitespace from raw JSON so rendered
// defaults are stable regardless of source formatting.
func compact(raw json.RawMessage) json.RawMessage {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return raw
	}
	return buf.Bytes()
}
