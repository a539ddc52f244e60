// Package typescript renders an AST into TypeScript source text: one type
// declaration per distinct named type, and a companion factory function
// for every named object and intersection type.
package typescript

import (
	"bytes"
	"strings"

	"github.com/schemaforge/tsgen/ast"
)

// Config provides generation options.
type Config struct {
	// Export adds the 'export' modifier to declarations.
	Export bool

	// UnknownType renders the unconstrained type.
	// SHOULD be one of: "any", "unknown".
	UnknownType string

	// FactoryPrefix is prepended to a type's name to form its factory
	// function name.
	FactoryPrefix string

	// Frontmatter is written verbatim at the top of the output.
	Frontmatter string

	// EmitComments renders schema descriptions as JSDoc blocks.
	EmitComments bool
}

func applyConfigDefaults(cfg Config) Config {
	if cfg.UnknownType == "" {
		cfg.UnknownType = "any"
	}
	if cfg.FactoryPrefix == "" {
		cfg.FactoryPrefix = "make"
	}
	return cfg
}

// Generate renders the AST reachable from root as raw TypeScript source.
// The AST is read, never mutated; each call owns its own emission
// bookkeeping, so the same graph can be generated any number of times.
func Generate(root ast.Node, cfg Config) (string, error) {
	g := &generator{
		cfg:        applyConfigDefaults(cfg),
		typesSeen:  make(map[ast.Node]bool),
		ifacesSeen: make(map[ast.Node]bool),
		rendering:  make(map[ast.Node]bool),
	}

	var buf bytes.Buffer
	if g.cfg.Frontmatter != "" {
		buf.WriteString(g.cfg.Frontmatter)
		buf.WriteString("\n\n")
	}
	if err := g.declareTypes(&buf, root); err != nil {
		return "", err
	}
	if err := g.declareInterfaces(&buf, root); err != nil {
		return "", err
	}
	return buf.String(), nil
}

type generator struct {
	cfg Config

	// Per-pass emitted markers, keyed on node identity. The two passes
	// track separately so a name appears in each output section at
	// most once, however many paths reach its node.
	typesSeen  map[ast.Node]bool
	ifacesSeen map[ast.Node]bool

	// rendering tracks nodes whose structural form is currently being
	// rendered. A cycle normally breaks at a named node, which renders
	// as its name; re-entering an anonymous node means the cycle has no
	// name to reference and inline expansion would never terminate.
	rendering map[ast.Node]bool
}

// declareTypes walks the graph and emits a type declaration for every
// named node that is not a plain object. Named objects belong to the
// interface pass; their nested named types are still reached here.
func (g *generator) declareTypes(buf *bytes.Buffer, n ast.Node) error {
	if n == nil || g.typesSeen[n] {
		return nil
	}
	g.typesSeen[n] = true

	if ast.Named(n) && n.Kind() != ast.KindInterface {
		body, err := g.renderBody(n)
		if err != nil {
			return err
		}
		g.emitComment(buf, n.Base().Comment, "")
		if g.cfg.Export {
			buf.WriteString("export ")
		}
		buf.WriteString("type ")
		buf.WriteString(escapeReservedWord(n.Base().StandaloneName))
		buf.WriteString(" = ")
		buf.WriteString(body)
		buf.WriteString(";\n\n")

		if isect, ok := n.(*ast.Intersection); ok {
			if err := g.emitIntersectionFactory(buf, isect); err != nil {
				return err
			}
		}
	}

	for _, child := range children(n) {
		if err := g.declareTypes(buf, child); err != nil {
			return err
		}
	}
	return nil
}

// declareInterfaces walks the graph and emits every named object as an
// interface declaration followed by its factory function.
func (g *generator) declareInterfaces(buf *bytes.Buffer, n ast.Node) error {
	if n == nil || g.ifacesSeen[n] {
		return nil
	}
	g.ifacesSeen[n] = true

	if iface, ok := n.(*ast.Interface); ok {
		if err := g.emitInterface(buf, iface); err != nil {
			return err
		}
		if err := g.emitInterfaceFactory(buf, iface); err != nil {
			return err
		}
	}

	for _, child := range children(n) {
		if err := g.declareInterfaces(buf, child); err != nil {
			return err
		}
	}
	return nil
}

// children lists a node's direct child nodes in deterministic order,
// including any definitions entries attached to a non-object root.
func children(n ast.Node) []ast.Node {
	var out []ast.Node
	switch t := n.(type) {
	case *ast.Object:
		out = memberNodes(t.Members)
	case *ast.Interface:
		out = memberNodes(t.Members)
	case *ast.Array:
		out = []ast.Node{t.Element}
	case *ast.Tuple:
		out = append([]ast.Node(nil), t.Items...)
		if t.Spread != nil {
			out = append(out, t.Spread)
		}
	case *ast.Union:
		out = t.Members
	case *ast.Intersection:
		out = t.Members
	case *ast.Enum:
		out = make([]ast.Node, len(t.Values))
		for i, v := range t.Values {
			out[i] = v
		}
	}
	if defs := n.Base().Definitions; len(defs) > 0 {
		out = append(append([]ast.Node(nil), out...), defs...)
	}
	return out
}

func memberNodes(members []ast.Member) []ast.Node {
	out := make([]ast.Node, len(members))
	for i := range members {
		out[i] = members[i].Node
	}
	return out
}

// emitComment writes a JSDoc block for a description, indented to match
// the declaration it precedes.
func (g *generator) emitComment(buf *bytes.Buffer, comment, indent string) {
	if !g.cfg.EmitComments || comment == "" {
		return
	}
	lines := strings.Split(comment, "\n")
	if len(lines) == 1 {
		buf.WriteString(indent)
		buf.WriteString("/** ")
		buf.WriteString(strings.TrimSpace(lines[0]))
		buf.WriteString(" */\n")
		return
	}
	buf.WriteString(indent)
	buf.WriteString("/**\n")
	for _, line := range lines {
		buf.WriteString(indent)
		buf.WriteString(" * ")
		buf.WriteString(strings.TrimSpace(line))
		buf.WriteString("\n")
	}
	buf.WriteString(indent)
	buf.WriteString(" */\n")
}
