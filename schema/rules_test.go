package schema

import (
	"strings"
	"testing"
)

func TestValidateRules(t *testing.T) {
	tests := []struct {
		name     string
		root     *Schema
		wantRule string
		wantPath string
	}{
		{
			name: "inverted bounds",
			root: &Schema{
				Properties: map[string]*Schema{
					"list": {Type: TypeList{"array"}, MinItems: 5, MaxItems: 2},
				},
			},
			wantRule: "items_bounds_ordered",
			wantPath: "#/properties/list",
		},
		{
			name: "positional items exceed maximum",
			root: &Schema{
				Items:    &Items{Tuple: []*Schema{{}, {}, {}}},
				MaxItems: 2,
			},
			wantRule: "tuple_within_max_items",
			wantPath: "#",
		},
		{
			name: "empty enum",
			root: &Schema{
				Definitions: map[string]*Schema{
					"status": {Enum: []any{}},
				},
			},
			wantRule: "enum_not_empty",
			wantPath: "#/definitions/status",
		},
		{
			name:     "negative minimum",
			root:     &Schema{MinItems: -1},
			wantRule: "min_items_non_negative",
			wantPath: "#",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := ValidateRules(tt.root)
			if len(violations) == 0 {
				t.Fatal("ValidateRules() found nothing")
			}
			found := false
			for _, v := range violations {
				if v.Rule == tt.wantRule && v.Path == tt.wantPath {
					found = true
				}
			}
			if !found {
				t.Errorf("no violation %s at %s in %v", tt.wantRule, tt.wantPath, violations)
			}
		})
	}
}

func TestValidateRules_CleanGraph(t *testing.T) {
	root := &Schema{
		Title:    "Clean",
		Type:     TypeList{"object"},
		Required: []string{"list"},
		Properties: map[string]*Schema{
			"list": {
				Items:    &Items{Tuple: []*Schema{{Type: TypeList{"string"}}}},
				MinItems: 1,
				MaxItems: 1,
			},
		},
	}
	if violations := ValidateRules(root); len(violations) != 0 {
		t.Errorf("ValidateRules() = %v, want none", violations)
	}
}

// Rule failures are collected across the whole graph, not reported one at
// a time.
func TestValidateRules_CollectsAll(t *testing.T) {
	root := &Schema{
		Properties: map[string]*Schema{
			"a": {MinItems: 5, MaxItems: 2},
			"b": {Enum: []any{}},
		},
	}
	violations := ValidateRules(root)
	if len(violations) != 2 {
		t.Fatalf("got %d violations, want 2: %v", len(violations), violations)
	}
}

func TestValidateRules_CycleSafe(t *testing.T) {
	root := &Schema{Title: "Loop", MinItems: -1}
	root.Properties = map[string]*Schema{"self": root}
	violations := ValidateRules(root)
	if len(violations) != 1 {
		t.Errorf("got %d violations, want the node reported once: %v", len(violations), violations)
	}
}

func TestFormatViolations(t *testing.T) {
	root := &Schema{
		Properties: map[string]*Schema{
			"a": {MinItems: 5, MaxItems: 2},
			"b": {Enum: []any{}},
		},
	}
	out := FormatViolations(ValidateRules(root))
	if len(strings.Split(out, "\n")) != 2 {
		t.Errorf("want one line per violation, got:\n%s", out)
	}
	if !strings.Contains(out, "#/properties/a") || !strings.Contains(out, "#/properties/b") {
		t.Errorf("missing violation paths in:\n%s", out)
	}
}
