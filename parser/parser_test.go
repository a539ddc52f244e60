package parser

import (
	"strings"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/schemaforge/tsgen/ast"
	"github.com/schemaforge/tsgen/errdefs"
	"github.com/schemaforge/tsgen/schema"
)

func TestParse_NamedObject(t *testing.T) {
	root := &schema.Schema{
		Title:    "Person",
		Type:     schema.TypeList{"object"},
		Required: []string{"first"},
		Properties: map[string]*schema.Schema{
			"first": {Type: schema.TypeList{"string"}},
			"age":   {Type: schema.TypeList{"number"}, Default: json.RawMessage("16")},
		},
	}

	node, err := Parse(root, "fallback")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	iface, ok := node.(*ast.Interface)
	if !ok {
		t.Fatalf("Parse() = %T, want *ast.Interface", node)
	}
	if iface.StandaloneName != "Person" {
		t.Errorf("StandaloneName = %q, want %q (title wins over fallback)", iface.StandaloneName, "Person")
	}
	if len(iface.Members) != 2 {
		t.Fatalf("got %d members, want 2", len(iface.Members))
	}
	// Members are ordered by key.
	age, first := iface.Members[0], iface.Members[1]
	if age.KeyName != "age" || first.KeyName != "first" {
		t.Fatalf("member order = [%q, %q], want [age, first]", age.KeyName, first.KeyName)
	}
	if age.Required {
		t.Error("age is required, want optional")
	}
	if age.Default != "16" {
		t.Errorf("age default = %q, want %q", age.Default, "16")
	}
	if !first.Required {
		t.Error("first is optional, want required")
	}
	if first.Default != "" {
		t.Errorf("first default = %q, want empty", first.Default)
	}
}

func TestParse_RootNameFallback(t *testing.T) {
	root := &schema.Schema{
		Type:     schema.TypeList{"object"},
		Required: []string{"v"},
		Properties: map[string]*schema.Schema{
			"v": {Type: schema.TypeList{"string"}},
		},
	}
	node, err := Parse(root, "my schema")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if got := node.Base().StandaloneName; got != "My_schema" {
		t.Errorf("StandaloneName = %q, want %q", got, "My_schema")
	}
}

func TestParse_RootNameRequired(t *testing.T) {
	_, err := Parse(&schema.Schema{Title: "T"}, "")
	if !errdefs.IsNaming(err) {
		t.Fatalf("Parse() error = %v, want naming error", err)
	}
}

func TestParse_OptionalWithoutDefault(t *testing.T) {
	root := &schema.Schema{
		Title: "Person",
		Type:  schema.TypeList{"object"},
		Properties: map[string]*schema.Schema{
			"age": {Type: schema.TypeList{"number"}},
		},
	}
	_, err := Parse(root, "person")
	if !errdefs.IsDefaultValue(err) {
		t.Fatalf("Parse() error = %v, want default-value error", err)
	}
	// The error names the member and its containing type.
	for _, part := range []string{`"age"`, `"Person"`} {
		if !strings.Contains(err.Error(), part) {
			t.Errorf("error %q missing %s", err.Error(), part)
		}
	}
}

func TestParse_Defaults(t *testing.T) {
	tests := []struct {
		name    string
		prop    *schema.Schema
		wantErr bool
		want    string
	}{
		{
			name:    "null default on plain member",
			prop:    &schema.Schema{Type: schema.TypeList{"string"}, Default: json.RawMessage("null")},
			wantErr: true,
		},
		{
			name: "null default on nullable member",
			prop: &schema.Schema{Type: schema.TypeList{"string", "null"}, Default: json.RawMessage("null")},
			want: "null",
		},
		{
			name: "null default on named member",
			prop: &schema.Schema{Title: "Alias", Type: schema.TypeList{"string"}, Default: json.RawMessage("null")},
			want: "null",
		},
		{
			name:    "kind mismatch",
			prop:    &schema.Schema{Type: schema.TypeList{"number"}, Default: json.RawMessage(`"ten"`)},
			wantErr: true,
		},
		{
			name: "nullable member skips the kind check",
			prop: &schema.Schema{Type: schema.TypeList{"number", "null"}, Default: json.RawMessage(`"ten"`)},
			want: `"ten"`,
		},
		{
			name: "compound default compacted",
			prop: &schema.Schema{Type: schema.TypeList{"array"}, Default: json.RawMessage("[ 1,  2 ]")},
			want: "[1,2]",
		},
		{
			name: "boolean default",
			prop: &schema.Schema{Type: schema.TypeList{"boolean"}, Default: json.RawMessage("true")},
			want: "true",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := &schema.Schema{
				Title:      "Holder",
				Type:       schema.TypeList{"object"},
				Properties: map[string]*schema.Schema{"v": tt.prop},
			}
			node, err := Parse(root, "holder")
			if tt.wantErr {
				if !errdefs.IsDefaultValue(err) {
					t.Fatalf("Parse() error = %v, want default-value error", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() error: %v", err)
			}
			m := node.(*ast.Interface).Members[0]
			if m.Default != tt.want {
				t.Errorf("default = %q, want %q", m.Default, tt.want)
			}
		})
	}
}

func TestParse_CycleTerminates(t *testing.T) {
	root := &schema.Schema{
		Title:    "TreeNode",
		Type:     schema.TypeList{"object"},
		Required: []string{"next", "value"},
	}
	root.Properties = map[string]*schema.Schema{
		"next":  root,
		"value": {Type: schema.TypeList{"string"}},
	}

	node, err := Parse(root, "node")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	iface := node.(*ast.Interface)
	if iface.Members[0].KeyName != "next" {
		t.Fatalf("first member = %q, want next", iface.Members[0].KeyName)
	}
	if iface.Members[0].Node != node {
		t.Error("cyclic member did not resolve to the root node itself")
	}
}

func TestParse_SharedNodeParsedOnce(t *testing.T) {
	shared := &schema.Schema{
		Title:    "Address",
		Type:     schema.TypeList{"object"},
		Required: []string{"city"},
		Properties: map[string]*schema.Schema{
			"city": {Type: schema.TypeList{"string"}},
		},
	}
	root := &schema.Schema{
		Title:    "Order",
		Type:     schema.TypeList{"object"},
		Required: []string{"billing", "shipping"},
		Properties: map[string]*schema.Schema{
			"billing":  shared,
			"shipping": shared,
		},
	}

	node, err := Parse(root, "order")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	iface := node.(*ast.Interface)
	if iface.Members[0].Node != iface.Members[1].Node {
		t.Error("shared schema node parsed into two distinct AST nodes")
	}
}

func TestParse_DiscriminantInference(t *testing.T) {
	root := &schema.Schema{
		OneOf: []*schema.Schema{
			{Properties: map[string]*schema.Schema{"a": {Type: schema.TypeList{"string"}}}},
			{Properties: map[string]*schema.Schema{"b": {Type: schema.TypeList{"number"}}}},
		},
	}

	node, err := Parse(root, "msg")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	union, ok := node.(*ast.Union)
	if !ok {
		t.Fatalf("Parse() = %T, want *ast.Union", node)
	}
	if len(union.Members) != 2 {
		t.Fatalf("got %d union members, want 2", len(union.Members))
	}
	first, ok := union.Members[0].(*ast.Interface)
	if !ok {
		t.Fatalf("branch = %T, want *ast.Interface", union.Members[0])
	}
	if first.StandaloneName != "Msg_A" {
		t.Errorf("branch name = %q, want Msg_A", first.StandaloneName)
	}
	if !first.Members[0].Required {
		t.Error("sole branch property not inferred as required")
	}
	if second := union.Members[1].(*ast.Interface); second.StandaloneName != "Msg_B" {
		t.Errorf("branch name = %q, want Msg_B", second.StandaloneName)
	}
}

func TestParse_EnumBranchSynthesizedName(t *testing.T) {
	root := &schema.Schema{
		AnyOf: []*schema.Schema{
			{Enum: []any{"on", "off"}},
			{Properties: map[string]*schema.Schema{"level": {Type: schema.TypeList{"number"}}}},
		},
	}

	node, err := Parse(root, "state")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	union := node.(*ast.Union)
	if got := union.Members[0].Base().StandaloneName; got != "State_On_Off" {
		t.Errorf("enum branch name = %q, want State_On_Off", got)
	}
}

func TestParse_AnonymousUnionBranches(t *testing.T) {
	tests := []struct {
		name   string
		branch *schema.Schema
		check  func(error) bool
	}{
		{
			// A single-property branch away from the root has no
			// synthesis path, so it stays anonymous.
			name: "single property branch",
			branch: &schema.Schema{
				Properties: map[string]*schema.Schema{"a": {Type: schema.TypeList{"string"}}},
			},
			check: errdefs.IsNaming,
		},
		{
			name: "multi property branch",
			branch: &schema.Schema{
				Required: []string{"a", "b"},
				Properties: map[string]*schema.Schema{
					"a": {Type: schema.TypeList{"string"}},
					"b": {Type: schema.TypeList{"number"}},
				},
			},
			check: errdefs.IsShape,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := &schema.Schema{
				Title:    "Holder",
				Type:     schema.TypeList{"object"},
				Required: []string{"u"},
				Properties: map[string]*schema.Schema{
					"u": {OneOf: []*schema.Schema{tt.branch}},
				},
			}
			_, err := Parse(root, "holder")
			if err == nil || !tt.check(err) {
				t.Fatalf("Parse() error = %v, want branch error", err)
			}
		})
	}
}

func TestParse_NameCollision(t *testing.T) {
	root := &schema.Schema{
		Title:    "Root",
		Type:     schema.TypeList{"object"},
		Required: []string{"a", "b"},
		Properties: map[string]*schema.Schema{
			"a": {Title: "Dup", Type: schema.TypeList{"string"}},
			"b": {Title: "Dup", Type: schema.TypeList{"number"}},
		},
	}
	_, err := Parse(root, "root")
	if !errdefs.IsNaming(err) {
		t.Fatalf("Parse() error = %v, want naming error", err)
	}
	if !strings.Contains(err.Error(), `"Dup"`) {
		t.Errorf("error %q does not name the colliding name", err.Error())
	}
}

func TestParse_UnresolvedRef(t *testing.T) {
	root := &schema.Schema{
		Title:    "Root",
		Type:     schema.TypeList{"object"},
		Required: []string{"v"},
		Properties: map[string]*schema.Schema{
			"v": {Ref: "#/definitions/missing"},
		},
	}
	_, err := Parse(root, "root")
	if errdefs.CodeOf(err) != errdefs.CodeUnresolvedRef {
		t.Fatalf("Parse() error = %v, want unresolved-ref error", err)
	}
}

func TestParse_Tuples(t *testing.T) {
	t.Run("declared spread schema", func(t *testing.T) {
		root := &schema.Schema{
			Title: "Args",
			Items: &schema.Items{Tuple: []*schema.Schema{
				{Type: schema.TypeList{"string"}},
			}},
			MinItems:        1,
			AdditionalItems: &schema.Additional{Schema: &schema.Schema{Type: schema.TypeList{"number"}}},
		}
		node, err := Parse(root, "args")
		if err != nil {
			t.Fatalf("Parse() error: %v", err)
		}
		tup := node.(*ast.Tuple)
		if tup.Spread == nil || tup.Spread.Kind() != ast.KindNumber {
			t.Errorf("spread = %v, want number node", tup.Spread)
		}
	})

	t.Run("maximum beyond positions implies any spread", func(t *testing.T) {
		root := &schema.Schema{
			Title: "Row",
			Items: &schema.Items{Tuple: []*schema.Schema{
				{Type: schema.TypeList{"string"}},
			}},
			MinItems: 1,
			MaxItems: 3,
		}
		node, err := Parse(root, "row")
		if err != nil {
			t.Fatalf("Parse() error: %v", err)
		}
		tup := node.(*ast.Tuple)
		if tup.Spread == nil || tup.Spread.Kind() != ast.KindAny {
			t.Errorf("spread = %v, want any node", tup.Spread)
		}
	})

	t.Run("bounded tuple gets no spread", func(t *testing.T) {
		root := &schema.Schema{
			Title: "Pair",
			Items: &schema.Items{Tuple: []*schema.Schema{
				{Type: schema.TypeList{"string"}},
				{Type: schema.TypeList{"number"}},
			}},
			MinItems: 2,
			MaxItems: 2,
		}
		node, err := Parse(root, "pair")
		if err != nil {
			t.Fatalf("Parse() error: %v", err)
		}
		if tup := node.(*ast.Tuple); tup.Spread != nil {
			t.Errorf("spread = %v, want nil", tup.Spread)
		}
	})
}

func TestParse_UnreachableDefinitions(t *testing.T) {
	reached := &schema.Schema{
		Title:    "Used",
		Type:     schema.TypeList{"object"},
		Required: []string{"v"},
		Properties: map[string]*schema.Schema{
			"v": {Type: schema.TypeList{"string"}},
		},
	}
	root := &schema.Schema{
		Title:    "Root",
		Type:     schema.TypeList{"object"},
		Required: []string{"used"},
		Properties: map[string]*schema.Schema{
			"used": reached,
		},
		Definitions: map[string]*schema.Schema{
			"used":   reached,
			"orphan": {Type: schema.TypeList{"string"}},
		},
	}

	node, err := Parse(root, "root")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	iface := node.(*ast.Interface)
	if len(iface.Members) != 2 {
		t.Fatalf("got %d members, want property + orphan definition", len(iface.Members))
	}
	orphan := iface.Members[1]
	if !orphan.UnreachableDefinition {
		t.Error("orphan definition not flagged")
	}
	if got := orphan.Node.Base().StandaloneName; got != "Orphan" {
		t.Errorf("orphan name = %q, want Orphan (definitions key)", got)
	}
}

// Unreached definitions survive even when the root is not an object:
// they hang off the root node's base instead of its member list.
func TestParse_DefinitionsOnUnionRoot(t *testing.T) {
	root := &schema.Schema{
		OneOf: []*schema.Schema{
			{
				Title:      "A",
				Type:       schema.TypeList{"object"},
				Required:   []string{"a"},
				Properties: map[string]*schema.Schema{"a": {Type: schema.TypeList{"string"}}},
			},
			{
				Title:      "B",
				Type:       schema.TypeList{"object"},
				Required:   []string{"b"},
				Properties: map[string]*schema.Schema{"b": {Type: schema.TypeList{"number"}}},
			},
		},
		Definitions: map[string]*schema.Schema{
			"aux": {Type: schema.TypeList{"string"}},
		},
	}

	node, err := Parse(root, "msg")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	union := node.(*ast.Union)
	if len(union.Definitions) != 1 {
		t.Fatalf("got %d attached definitions, want 1", len(union.Definitions))
	}
	if got := union.Definitions[0].Base().StandaloneName; got != "Aux" {
		t.Errorf("definition name = %q, want Aux", got)
	}
}

func TestParse_AdditionalProperties(t *testing.T) {
	allow := true
	deny := false
	tests := []struct {
		name       string
		additional *schema.Additional
		wantExtra  bool
		wantKind   ast.Kind
	}{
		{
			name:       "schema form becomes pattern member",
			additional: &schema.Additional{Schema: &schema.Schema{Type: schema.TypeList{"number"}}},
			wantExtra:  true,
			wantKind:   ast.KindNumber,
		},
		{
			name:       "true becomes any pattern member",
			additional: &schema.Additional{Allowed: &allow},
			wantExtra:  true,
			wantKind:   ast.KindAny,
		},
		{
			name:       "false adds nothing",
			additional: &schema.Additional{Allowed: &deny},
		},
		{
			name: "absent adds nothing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := &schema.Schema{
				Title:    "Map",
				Type:     schema.TypeList{"object"},
				Required: []string{"v"},
				Properties: map[string]*schema.Schema{
					"v": {Type: schema.TypeList{"string"}},
				},
				AdditionalProperties: tt.additional,
			}
			node, err := Parse(root, "map")
			if err != nil {
				t.Fatalf("Parse() error: %v", err)
			}
			members := node.(*ast.Interface).Members
			if !tt.wantExtra {
				if len(members) != 1 {
					t.Fatalf("got %d members, want 1", len(members))
				}
				return
			}
			if len(members) != 2 {
				t.Fatalf("got %d members, want 2", len(members))
			}
			extra := members[1]
			if !extra.PatternProperty {
				t.Error("additional member not flagged as pattern property")
			}
			if extra.Node.Kind() != tt.wantKind {
				t.Errorf("additional member kind = %v, want %v", extra.Node.Kind(), tt.wantKind)
			}
		})
	}
}

func TestParse_PatternPropertiesCarryNoDefaultObligation(t *testing.T) {
	root := &schema.Schema{
		Title: "Env",
		Type:  schema.TypeList{"object"},
		PatternProperties: map[string]*schema.Schema{
			"^TSGEN_": {Type: schema.TypeList{"string"}},
		},
	}
	node, err := Parse(root, "env")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	m := node.(*ast.Interface).Members[0]
	if !m.PatternProperty {
		t.Error("pattern member not flagged")
	}
	if m.Default != "" {
		t.Errorf("pattern member default = %q, want none", m.Default)
	}
}

func TestParse_CustomTypeText(t *testing.T) {
	root := &schema.Schema{
		Title:    "Holder",
		Type:     schema.TypeList{"object"},
		Required: []string{"when"},
		Properties: map[string]*schema.Schema{
			"when": {TSType: "Date | string"},
		},
	}
	node, err := Parse(root, "holder")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	ref, ok := node.(*ast.Interface).Members[0].Node.(*ast.Reference)
	if !ok {
		t.Fatalf("member node = %T, want *ast.Reference", node.(*ast.Interface).Members[0].Node)
	}
	if ref.TypeText != "Date | string" {
		t.Errorf("TypeText = %q, want raw override", ref.TypeText)
	}
}

func TestToTypeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"person", "Person"},
		{"my schema", "My_schema"},
		{"9lives", "_9lives"},
		{"$special", "$special"},
		{"kebab-case-name", "Kebab_case_name"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := toTypeName(tt.in); got != tt.want {
			t.Errorf("toTypeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIDBaseName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://example.com/schemas/person.schema.json", "person.schema"},
		{"person.json", "person"},
		{"https://example.com/thing#", "thing"},
		{"https://example.com/thing/", "thing"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := idBaseName(tt.in); got != tt.want {
			t.Errorf("idBaseName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
