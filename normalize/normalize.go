// Package normalize implements the canonicalization pre-pass. It rewrites
// shorthand schema forms into the strict shape the parser assumes, so the
// parser never has to special-case notation. Rules run in declaration
// order over every reachable node.
package normalize

// The rules are deliberately small and independent; each one states the
// invariant it establishes.

import (
	"github.com/schemaforge/tsgen/schema"
)

// rule rewrites one node in place.
type rule struct {
	name  string
	apply func(s *schema.Schema)
}

var normalizeRules = []rule{
	{
		// A type list holds at most one non-null entry plus "null",
		// with "null" ordered last. Duplicate entries collapse.
		name: "tidy_type_list",
		apply: func(s *schema.Schema) {
			if len(s.Type) < 2 {
				return
			}
			var out schema.TypeList
			hasNull := false
			for _, t := range s.Type {
				if t == "null" {
					hasNull = true
					continue
				}
				if !contains(out, t) {
					out = append(out, t)
				}
			}
			if hasNull {
				out = append(out, "null")
			}
			s.Type = out
		},
	},
	{
		// Array bounds never appear without items: a bound on an
		// implicit-any array gets an explicit any element schema.
		name: "implicit_items",
		apply: func(s *schema.Schema) {
			if s.Items != nil {
				return
			}
			if s.MinItems > 0 || s.MaxItems > 0 {
				s.Items = &schema.Items{Single: &schema.Schema{}}
			}
		},
	},
	{
		// additionalItems true carries no information; only false and
		// the schema form survive normalization.
		name: "drop_permissive_additional_items",
		apply: func(s *schema.Schema) {
			if s.AdditionalItems != nil && s.AdditionalItems.Allowed != nil && *s.AdditionalItems.Allowed {
				s.AdditionalItems = nil
			}
		},
	},
	{
		// Positional items beyond maxItems can never be filled;
		// the surplus declarations are dropped. The rule validator
		// reports the inconsistency separately.
		name: "clamp_tuple_to_max_items",
		apply: func(s *schema.Schema) {
			if s.Items.IsTuple() && s.MaxItems > 0 && len(s.Items.Tuple) > s.MaxItems {
				s.Items.Tuple = s.Items.Tuple[:s.MaxItems]
			}
		},
	},
	{
		// Duplicate required entries collapse so membership checks
		// and diagnostics see each key once.
		name: "dedupe_required",
		apply: func(s *schema.Schema) {
			if len(s.Required) < 2 {
				return
			}
			var out []string
			for _, k := range s.Required {
				if !contains(out, k) {
					out = append(out, k)
				}
			}
			s.Required = out
		},
	},
}

// Normalize rewrites every reachable node of the graph into canonical
// form. It is idempotent: normalizing an already-normalized graph is a
// no-op.
func Normalize(root *schema.Schema) {
	schema.Walk(root, func(s *schema.Schema) {
		for _, r := range normalizeRules {
			r.apply(s)
		}
	})
}

func contains[S ~[]E, E comparable](list S, v E) bool {
	for _, e := range list {
		if e == v {
			return true
		}
	}
	return false
}
