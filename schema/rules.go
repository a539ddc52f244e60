package schema

import (
	"fmt"
	"sort"
	"strings"
)

// Rule is one independent structural check applied to every node of a
// schema graph. Rules return a message describing the violation, or ""
// when the node passes.
type Rule struct {
	Name  string
	Check func(s *Schema) string
}

// Violation is one failed rule at one location in the schema graph.
type Violation struct {
	Rule    string
	Path    string
	Message string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s at %s", v.Rule, v.Message, v.Path)
}

// rules are run over the whole graph before parsing. Failures are
// collected and reported together rather than failing fast, so one run
// surfaces every bound-consistency problem at once.
var rules = []Rule{
	{
		Name: "min_items_non_negative",
		Check: func(s *Schema) string {
			if s.MinItems < 0 {
				return fmt.Sprintf("minItems must be >= 0, got %d", s.MinItems)
			}
			return ""
		},
	},
	{
		Name: "max_items_non_negative",
		Check: func(s *Schema) string {
			if s.MaxItems < 0 {
				return fmt.Sprintf("maxItems must be >= 0, got %d", s.MaxItems)
			}
			return ""
		},
	},
	{
		Name: "items_bounds_ordered",
		Check: func(s *Schema) string {
			if s.MaxItems > 0 && s.MinItems > s.MaxItems {
				return fmt.Sprintf("minItems %d exceeds maxItems %d", s.MinItems, s.MaxItems)
			}
			return ""
		},
	},
	{
		Name: "tuple_within_max_items",
		Check: func(s *Schema) string {
			if s.Items.IsTuple() && s.MaxItems > 0 && len(s.Items.Tuple) > s.MaxItems {
				return fmt.Sprintf("%d positional items exceed maxItems %d", len(s.Items.Tuple), s.MaxItems)
			}
			return ""
		},
	},
	{
		Name: "enum_not_empty",
		Check: func(s *Schema) string {
			if s.Enum != nil && len(s.Enum) == 0 {
				return "enum must list at least one value"
			}
			return ""
		},
	},
}

// ValidateRules runs every structural rule over every reachable node and
// returns all violations found. An empty result means the graph passed.
func ValidateRules(root *Schema) []Violation {
	paths := pathIndex(root)
	var out []Violation
	Walk(root, func(s *Schema) {
		for _, r := range rules {
			if msg := r.Check(s); msg != "" {
				out = append(out, Violation{Rule: r.Name, Path: paths[s], Message: msg})
			}
		}
	})
	return out
}

// pathIndex assigns each reachable node the JSON-Pointer-style path of its
// first discovery, used only to locate violations in diagnostics.
func pathIndex(root *Schema) map[*Schema]string {
	paths := make(map[*Schema]string)
	var walk func(s *Schema, path string)
	walk = func(s *Schema, path string) {
		if s == nil {
			return
		}
		if _, ok := paths[s]; ok {
			return
		}
		paths[s] = path
		for _, key := range sortedKeys(s.Properties) {
			walk(s.Properties[key], path+"/properties/"+key)
		}
		for _, key := range sortedKeys(s.PatternProperties) {
			walk(s.PatternProperties[key], path+"/patternProperties/"+key)
		}
		for _, key := range sortedKeys(s.Definitions) {
			walk(s.Definitions[key], path+"/definitions/"+key)
		}
		if s.Items != nil {
			walk(s.Items.Single, path+"/items")
			for i, c := range s.Items.Tuple {
				walk(c, fmt.Sprintf("%s/items/%d", path, i))
			}
		}
		if s.AdditionalItems != nil {
			walk(s.AdditionalItems.Schema, path+"/additionalItems")
		}
		if s.AdditionalProperties != nil {
			walk(s.AdditionalProperties.Schema, path+"/additionalProperties")
		}
		for i, c := range s.AllOf {
			walk(c, fmt.Sprintf("%s/allOf/%d", path, i))
		}
		for i, c := range s.AnyOf {
			walk(c, fmt.Sprintf("%s/anyOf/%d", path, i))
		}
		for i, c := range s.OneOf {
			walk(c, fmt.Sprintf("%s/oneOf/%d", path, i))
		}
	}
	walk(root, "#")
	return paths
}

func sortedKeys(m map[string]*Schema) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FormatViolations renders a violation list for diagnostics, one per line.
func FormatViolations(vs []Violation) string {
	lines := make([]string, len(vs))
	for i, v := range vs {
		lines[i] = v.String()
	}
	return strings.Join(lines, "\n")
}
