package typescript

import (
	"sort"
	"strings"

	"github.com/schemaforge/tsgen/ast"
	"github.com/schemaforge/tsgen/errdefs"
)

// renderType renders a node as a type expression in reference position:
// a named node renders as its name, everything else renders structurally.
func (g *generator) renderType(n ast.Node) (string, error) {
	if ast.Named(n) {
		return escapeReservedWord(n.Base().StandaloneName), nil
	}
	return g.renderBody(n)
}

// renderBody renders a node's structural form, ignoring its own name.
// Used for the right-hand side of its declaration.
func (g *generator) renderBody(n ast.Node) (string, error) {
	switch n.Kind() {
	case ast.KindObject, ast.KindInterface, ast.KindArray, ast.KindTuple,
		ast.KindUnion, ast.KindIntersection:
		if g.rendering[n] {
			return "", errdefs.New(errdefs.CodeGeneration,
				"cycle through an anonymous type has no name to reference")
		}
		g.rendering[n] = true
		defer delete(g.rendering, n)
	}

	switch t := n.(type) {
	case *ast.Literal:
		return t.Value, nil
	case *ast.Boolean:
		return "boolean", nil
	case *ast.Number:
		return "number", nil
	case *ast.String:
		return "string", nil
	case *ast.Null:
		return "null", nil
	case *ast.Any:
		return g.cfg.UnknownType, nil
	case *ast.Reference:
		return t.TypeText, nil
	case *ast.Array:
		return g.renderArray(t)
	case *ast.Tuple:
		return g.renderTuple(t)
	case *ast.Union:
		return g.renderUnion(t)
	case *ast.Intersection:
		return g.renderIntersection(t)
	case *ast.Enum:
		return g.renderEnum(t)
	case *ast.Object:
		return g.renderObject(t.Members)
	case *ast.Interface:
		return g.renderObject(t.Members)
	default:
		return "", errdefs.Newf(errdefs.CodeGeneration, "unsupported node kind %s", n.Kind())
	}
}

func (g *generator) renderArray(t *ast.Array) (string, error) {
	elem, err := g.renderType(t.Element)
	if err != nil {
		return "", err
	}
	if needsParens(t.Element) {
		return "(" + elem + ")[]", nil
	}
	return elem + "[]", nil
}

// needsParens reports whether an element type must be parenthesized
// before an [] suffix to keep its precedence.
func needsParens(n ast.Node) bool {
	switch n.Kind() {
	case ast.KindUnion, ast.KindIntersection:
		return true
	case ast.KindEnum:
		return !ast.Named(n)
	}
	return false
}

// renderTuple renders a bounded tuple. With no slack between the minimum
// and the declared positions it is a single fixed-arity sequence type.
// With slack, optional-position syntax would silently admit holes a
// bounded JSON array can never contain, so the tuple renders instead as
// the union of every fixed-arity prefix the bounds permit. A spread slot
// extends the longest variant with a repeatable trailing element.
func (g *generator) renderTuple(t *ast.Tuple) (string, error) {
	n := len(t.Items)
	m := t.MinItems
	if m > n {
		return "", errdefs.Newf(errdefs.CodeGeneration,
			"tuple minimum %d exceeds its %d declared positions", m, n).
			At(t.StandaloneName, "")
	}

	rendered := make([]string, n)
	for i, item := range t.Items {
		r, err := g.renderType(item)
		if err != nil {
			return "", err
		}
		rendered[i] = r
	}
	spread := ""
	if t.Spread != nil {
		r, err := g.renderType(t.Spread)
		if err != nil {
			return "", err
		}
		if needsParens(t.Spread) {
			r = "(" + r + ")"
		}
		spread = "..." + r + "[]"
	}

	variant := func(length int, withSpread bool) string {
		parts := append([]string(nil), rendered[:length]...)
		if withSpread && spread != "" {
			parts = append(parts, spread)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}

	if m == n {
		return variant(n, true), nil
	}
	variants := make([]string, 0, n-m+1)
	for length := m; length <= n; length++ {
		variants = append(variants, variant(length, length == n))
	}
	return strings.Join(variants, " | "), nil
}

// renderUnion renders an alternative set. Every member must be the null
// type or carry a standalone name: an anonymous non-null member has no
// way to appear in a union of named alternatives. Members are emitted
// sorted, with null always last regardless of declaration order, so the
// output is diff-stable.
func (g *generator) renderUnion(t *ast.Union) (string, error) {
	if len(t.Members) == 0 {
		return "", errdefs.New(errdefs.CodeGeneration, "union with no members").
			At(t.StandaloneName, "")
	}
	var names []string
	hasNull := false
	for _, m := range t.Members {
		if isNullAlternative(m) {
			hasNull = true
			continue
		}
		if !ast.Named(m) {
			return "", errdefs.Newf(errdefs.CodeGeneration,
				"anonymous %s member inside a union", m.Kind()).
				At(t.StandaloneName, "")
		}
		names = append(names, escapeReservedWord(m.Base().StandaloneName))
	}
	sort.Strings(names)
	names = dedupe(names)
	if hasNull {
		names = append(names, "null")
	}
	return strings.Join(names, " | "), nil
}

func isNullAlternative(n ast.Node) bool {
	if n.Kind() == ast.KindNull {
		return true
	}
	lit, ok := n.(*ast.Literal)
	return ok && lit.Value == "null"
}

// renderIntersection renders merged structural members combined with the
// named members via the intersection operator.
func (g *generator) renderIntersection(t *ast.Intersection) (string, error) {
	var parts []string
	var structural []ast.Member
	for _, m := range t.Members {
		if ast.Named(m) {
			parts = append(parts, escapeReservedWord(m.Base().StandaloneName))
			continue
		}
		switch obj := m.(type) {
		case *ast.Object:
			structural = append(structural, obj.Members...)
		default:
			r, err := g.renderType(m)
			if err != nil {
				return "", err
			}
			parts = append(parts, r)
		}
	}
	if len(structural) > 0 {
		r, err := g.renderObject(structural)
		if err != nil {
			return "", err
		}
		parts = append(parts, r)
	}
	if len(parts) == 0 {
		return "", errdefs.New(errdefs.CodeGeneration, "intersection with no renderable members").
			At(t.StandaloneName, "")
	}
	return strings.Join(parts, " & "), nil
}

func (g *generator) renderEnum(t *ast.Enum) (string, error) {
	if len(t.Values) == 0 {
		return "", errdefs.New(errdefs.CodeGeneration, "enumeration with no values").
			At(t.StandaloneName, "")
	}
	parts := make([]string, len(t.Values))
	for i, v := range t.Values {
		parts[i] = v.Value
	}
	return strings.Join(parts, " | "), nil
}

// renderObject renders a structural object literal type inline.
func (g *generator) renderObject(members []ast.Member) (string, error) {
	var parts []string
	patterns, err := g.indexSignature(members)
	if err != nil {
		return "", err
	}
	for i := range members {
		m := &members[i]
		if m.PatternProperty || m.UnreachableDefinition {
			continue
		}
		line, err := g.renderMember(m)
		if err != nil {
			return "", err
		}
		parts = append(parts, line)
	}
	if patterns != "" {
		parts = append(parts, patterns)
	}
	if len(parts) == 0 {
		return "{}", nil
	}
	return "{ " + strings.Join(parts, " ") + " }", nil
}

// renderMember renders one `key: T;` entry.
func (g *generator) renderMember(m *ast.Member) (string, error) {
	typ, err := g.renderType(m.Node)
	if err != nil {
		return "", err
	}
	if m.Nullable {
		typ += " | null"
	}
	key := propertyKey(m.KeyName)
	if !m.Required {
		key += "?"
	}
	return key + ": " + typ + ";", nil
}

// indexSignature merges all pattern-property members into one index
// signature; TypeScript allows only a single string index per type.
func (g *generator) indexSignature(members []ast.Member) (string, error) {
	var types []string
	for i := range members {
		if !members[i].PatternProperty {
			continue
		}
		r, err := g.renderType(members[i].Node)
		if err != nil {
			return "", err
		}
		types = append(types, r)
	}
	types = dedupe(types)
	if len(types) == 0 {
		return "", nil
	}
	return "[k: string]: " + strings.Join(types, " | ") + ";", nil
}

func dedupe(list []string) []string {
	var out []string
	seen := make(map[string]bool, len(list))
	for _, v := range list {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
