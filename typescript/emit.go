package typescript

import (
	"bytes"

	"github.com/schemaforge/tsgen/ast"
)

// emitInterface emits a named object as an interface declaration.
// Required members appear first-class, optional members carry the ?
// marker, nullable members are unioned with null.
func (g *generator) emitInterface(buf *bytes.Buffer, iface *ast.Interface) error {
	g.emitComment(buf, iface.Comment, "")
	if g.cfg.Export {
		buf.WriteString("export ")
	}
	buf.WriteString("interface ")
	buf.WriteString(escapeReservedWord(iface.StandaloneName))
	buf.WriteString(" {\n")

	for i := range iface.Members {
		m := &iface.Members[i]
		if m.PatternProperty || m.UnreachableDefinition {
			continue
		}
		g.emitComment(buf, m.Node.Base().Comment, "  ")
		line, err := g.renderMember(m)
		if err != nil {
			return err
		}
		buf.WriteString("  ")
		buf.WriteString(line)
		buf.WriteString("\n")
	}
	patterns, err := g.indexSignature(iface.Members)
	if err != nil {
		return err
	}
	if patterns != "" {
		buf.WriteString("  ")
		buf.WriteString(patterns)
		buf.WriteString("\n")
	}
	buf.WriteString("}\n\n")
	return nil
}

// emitInterfaceFactory emits the companion factory for a named object:
// it accepts a partially-specified value and returns a fully-populated
// one, substituting rendered defaults for omitted optional members and
// delegating to nested factories so defaults resolve transitively.
func (g *generator) emitInterfaceFactory(buf *bytes.Buffer, iface *ast.Interface) error {
	name := escapeReservedWord(iface.StandaloneName)
	if g.cfg.Export {
		buf.WriteString("export ")
	}
	buf.WriteString("function ")
	buf.WriteString(g.factoryName(iface.StandaloneName))
	buf.WriteString("(input: ")
	buf.WriteString(name)
	buf.WriteString("): ")
	buf.WriteString(name)
	buf.WriteString(" {\n  return {\n")

	for i := range iface.Members {
		m := &iface.Members[i]
		if m.PatternProperty || m.UnreachableDefinition {
			continue
		}
		buf.WriteString("    ")
		buf.WriteString(propertyKey(m.KeyName))
		buf.WriteString(": ")
		buf.WriteString(g.factoryValue(m))
		buf.WriteString(",\n")
	}
	buf.WriteString("  };\n}\n\n")
	return nil
}

// factoryValue renders the expression producing one member of the
// factory's result. A named-object member delegates to its factory, but
// only on the arm that holds an actual value: the member may legally be
// null at runtime (a nullable member, or a null default), and its factory
// must never see null.
func (g *generator) factoryValue(m *ast.Member) string {
	access := propertyAccess("input", m.KeyName)

	expr := access
	if iface, ok := m.Node.(*ast.Interface); ok {
		expr = g.factoryName(iface.StandaloneName) + "(" + access + ")"
		if m.Nullable {
			expr = "(" + access + " !== null ? " + expr + " : null)"
		}
	}
	if !m.Required && m.HasDefault() {
		return access + " !== undefined ? " + expr + " : " + m.Default
	}
	return expr
}

// emitIntersectionFactory emits the factory for a named intersection: own
// structural members are assigned directly, named object members are
// delegated to their own factories via spreads.
func (g *generator) emitIntersectionFactory(buf *bytes.Buffer, t *ast.Intersection) error {
	name := escapeReservedWord(t.StandaloneName)
	if g.cfg.Export {
		buf.WriteString("export ")
	}
	buf.WriteString("function ")
	buf.WriteString(g.factoryName(t.StandaloneName))
	buf.WriteString("(input: ")
	buf.WriteString(name)
	buf.WriteString("): ")
	buf.WriteString(name)
	buf.WriteString(" {\n  return {\n")

	// Delegated spreads come first so the intersection's own members win
	// when a referenced type overlaps them.
	for _, member := range t.Members {
		switch obj := member.(type) {
		case *ast.Interface:
			buf.WriteString("    ...")
			buf.WriteString(g.factoryName(obj.StandaloneName))
			buf.WriteString("(input),\n")
		case *ast.Intersection:
			if ast.Named(obj) {
				buf.WriteString("    ...")
				buf.WriteString(g.factoryName(obj.StandaloneName))
				buf.WriteString("(input),\n")
			}
		}
	}
	for _, member := range t.Members {
		obj, ok := member.(*ast.Object)
		if !ok {
			continue
		}
		for i := range obj.Members {
			m := &obj.Members[i]
			if m.PatternProperty || m.UnreachableDefinition {
				continue
			}
			buf.WriteString("    ")
			buf.WriteString(propertyKey(m.KeyName))
			buf.WriteString(": ")
			buf.WriteString(g.factoryValue(m))
			buf.WriteString(",\n")
		}
	}
	buf.WriteString("  };\n}\n\n")
	return nil
}

// factoryName forms a factory function name from a type name.
func (g *generator) factoryName(typeName string) string {
	return escapeReservedWord(g.cfg.FactoryPrefix + typeName)
}
