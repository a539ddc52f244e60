// Package schema defines the normalized schema node model consumed by the
// compiler, along with loading, shape classification, and structural rule
// validation. Schema values are produced by decoding a JSON or YAML document
// and are treated as immutable once the normalization pre-pass has run.
package schema

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// Schema is one node of a schema document. All fields are optional; which
// fields are present determines the node's shape (see TypeOf).
//
// Node identity matters: the parser's visitation cache is keyed on *Schema
// pointers, so a subtree reachable through two paths must be represented by
// one shared node, not two structurally equal copies. The reference resolver
// preserves this by splicing the referenced node itself into the graph.
type Schema struct {
	ID          string `json:"$id,omitempty"`
	Ref         string `json:"$ref,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`

	// Type is the declared primitive kind. A bare string decodes as a
	// single-element list. After normalization it holds at most two
	// entries, and a second entry is always "null".
	Type TypeList `json:"type,omitempty"`

	Properties        map[string]*Schema `json:"properties,omitempty"`
	PatternProperties map[string]*Schema `json:"patternProperties,omitempty"`
	Required          []string           `json:"required,omitempty"`

	Items                *Items      `json:"items,omitempty"`
	AdditionalItems      *Additional `json:"additionalItems,omitempty"`
	AdditionalProperties *Additional `json:"additionalProperties,omitempty"`
	MinItems             int         `json:"minItems,omitempty"`
	// MaxItems of 0 means unset. The parser treats an unset maximum as
	// exactly the declared positions: no implicit trailing remainder.
	MaxItems int `json:"maxItems,omitempty"`

	Enum  []any     `json:"enum,omitempty"`
	AllOf []*Schema `json:"allOf,omitempty"`
	AnyOf []*Schema `json:"anyOf,omitempty"`
	OneOf []*Schema `json:"oneOf,omitempty"`

	// Default is kept raw so that an explicit `"default": null` is
	// distinguishable from an absent default, and so the rendered
	// literal reproduces the source text exactly.
	Default json.RawMessage `json:"default,omitempty"`

	Definitions map[string]*Schema `json:"definitions,omitempty"`

	// TSType overrides the generated type with raw target-language text.
	TSType string `json:"tsType,omitempty"`
}

// HasDefault reports whether the node carries an explicit default,
// including an explicit null.
func (s *Schema) HasDefault() bool {
	return len(s.Default) > 0
}

// IsRequired reports whether key appears in the node's required list.
func (s *Schema) IsRequired(key string) bool {
	for _, r := range s.Required {
		if r == key {
			return true
		}
	}
	return false
}

// IsNullable reports whether the node's declared type is a two-element
// list pairing "null" with one other primitive. A single "null" type is
// the null type itself, not a nullable type.
func (s *Schema) IsNullable() bool {
	if len(s.Type) != 2 {
		return false
	}
	return (s.Type[0] == "null") != (s.Type[1] == "null")
}

// NonNullType returns the sole non-null entry of the type list, or ""
// if the list is empty or contains only "null".
func (s *Schema) NonNullType() string {
	for _, t := range s.Type {
		if t != "null" {
			return t
		}
	}
	return ""
}

// TypeList is a schema "type" keyword: either a bare string or a list.
type TypeList []string

// UnmarshalJSON accepts both the string and list forms.
func (t *TypeList) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '[' {
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return fmt.Errorf("type list: %w", err)
		}
		*t = list
		return nil
	}
	var one string
	if err := json.Unmarshal(data, &one); err != nil {
		return fmt.Errorf("type: %w", err)
	}
	*t = TypeList{one}
	return nil
}

// MarshalJSON emits the single-string form when possible.
func (t TypeList) MarshalJSON() ([]byte, error) {
	if len(t) == 1 {
		return json.Marshal(t[0])
	}
	return json.Marshal([]string(t))
}

// Items is a schema "items" keyword: a single element schema for
// homogeneous arrays, or an ordered list of positional schemas for tuples.
type Items struct {
	Single *Schema
	Tuple  []*Schema
}

// IsTuple reports whether items was declared in list form.
func (it *Items) IsTuple() bool {
	return it != nil && it.Tuple != nil
}

// UnmarshalJSON accepts both the schema and list forms.
func (it *Items) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '[' {
		if err := json.Unmarshal(data, &it.Tuple); err != nil {
			return fmt.Errorf("items list: %w", err)
		}
		if it.Tuple == nil {
			it.Tuple = []*Schema{}
		}
		return nil
	}
	it.Single = new(Schema)
	if err := json.Unmarshal(data, it.Single); err != nil {
		return fmt.Errorf("items: %w", err)
	}
	return nil
}

// MarshalJSON emits whichever form was populated.
func (it Items) MarshalJSON() ([]byte, error) {
	if it.Tuple != nil {
		return json.Marshal(it.Tuple)
	}
	return json.Marshal(it.Single)
}

// Additional is an "additionalItems" or "additionalProperties" keyword:
// either a boolean toggle or a constraining schema.
type Additional struct {
	Allowed *bool
	Schema  *Schema
}

// Permits reports whether additional entries are allowed at all.
// An absent keyword permits everything.
func (a *Additional) Permits() bool {
	if a == nil {
		return true
	}
	if a.Allowed != nil {
		return *a.Allowed
	}
	return true
}

// UnmarshalJSON accepts both the boolean and schema forms.
func (a *Additional) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case "true", "false":
		b := string(data) == "true"
		a.Allowed = &b
		return nil
	}
	a.Schema = new(Schema)
	if err := json.Unmarshal(data, a.Schema); err != nil {
		return fmt.Errorf("additional: %w", err)
	}
	return nil
}

// MarshalJSON emits whichever form was populated.
func (a Additional) MarshalJSON() ([]byte, error) {
	if a.Allowed != nil {
		return json.Marshal(*a.Allowed)
	}
	return json.Marshal(a.Schema)
}

// Walk visits every schema node reachable from root exactly once,
// including root itself. Traversal is cycle-safe.
func Walk(root *Schema, visit func(*Schema)) {
	seen := make(map[*Schema]bool)
	var walk func(*Schema)
	walk = func(s *Schema) {
		if s == nil || seen[s] {
			return
		}
		seen[s] = true
		visit(s)
		for _, c := range s.Properties {
			walk(c)
		}
		for _, c := range s.PatternProperties {
			walk(c)
		}
		for _, c := range s.Definitions {
			walk(c)
		}
		if s.Items != nil {
			walk(s.Items.Single)
			for _, c := range s.Items.Tuple {
				walk(c)
			}
		}
		if s.AdditionalItems != nil {
			walk(s.AdditionalItems.Schema)
		}
		if s.AdditionalProperties != nil {
			walk(s.AdditionalProperties.Schema)
		}
		for _, c := range s.AllOf {
			walk(c)
		}
		for _, c := range s.AnyOf {
			walk(c)
		}
		for _, c := range s.OneOf {
			walk(c)
		}
	}
	walk(root)
}
