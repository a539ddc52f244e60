package parser

import (
	"strings"
	"unicode"

	"github.com/schemaforge/tsgen/schema"
)

// nameSep joins the pieces of a synthesized standalone name.
const nameSep = "_"

// resolveName resolves a node's standalone name through the fallback
// chain: explicit title, explicit identifier, the definitions key the
// node appears under, then a synthesized name for anonymous alternative
// branches of a root-level union. An empty result means the node stays
// anonymous and renders inline.
func (p *parser) resolveName(s *schema.Schema, keyName string) string {
	if s.Title != "" {
		return toTypeName(s.Title)
	}
	if s.ID != "" {
		return toTypeName(idBaseName(s.ID))
	}
	if def, ok := p.defNames[s]; ok {
		return toTypeName(def)
	}
	if s == p.root {
		return p.rootName
	}
	if keyName == "" && p.rootIsAlternativeSet() {
		if name := p.synthesizeName(s); name != "" {
			return name
		}
	}
	return ""
}

func (p *parser) rootIsAlternativeSet() bool {
	switch p.rootKind {
	case schema.KindOneOf, schema.KindAnyOf:
		return true
	}
	return false
}

// synthesizeName names an anonymous alternative branch after the root:
// the root's name joined with the branch's sole member key, or with the
// branch's enumeration values.
func (p *parser) synthesizeName(s *schema.Schema) string {
	if len(s.Properties) == 1 {
		for key := range s.Properties {
			return p.rootName + nameSep + toTypeName(key)
		}
	}
	if len(s.Enum) > 0 {
		parts := make([]string, 0, len(s.Enum)+1)
		parts = append(parts, p.rootName)
		for _, v := range s.Enum {
			text, err := renderLiteral(v)
			if err != nil {
				return ""
			}
			parts = append(parts, toTypeName(strings.Trim(text, `"`)))
		}
		return strings.Join(parts, nameSep)
	}
	return ""
}

// indexDefinitions records, for every definitions map in the graph, which
// key each node appears under. First discovery wins so a node shared
// between two maps keeps one stable name.
func indexDefinitions(root *schema.Schema) map[*schema.Schema]string {
	names := make(map[*schema.Schema]string)
	schema.Walk(root, func(s *schema.Schema) {
		for _, key := range sortedKeys(s.Definitions) {
			def := s.Definitions[key]
			if _, ok := names[def]; !ok {
				names[def] = key
			}
		}
	})
	return names
}

// idBaseName extracts a usable name from an $id value, dropping any URI
// path, fragment, and extension.
func idBaseName(id string) string {
	name := id
	if i := strings.IndexAny(name, "#?"); i >= 0 {
		name = name[:i]
	}
	name = strings.TrimRight(name, "/")
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.LastIndex(name, "."); i > 0 {
		name = name[:i]
	}
	return name
}

// toTypeName turns an arbitrary naming hint into a valid exported type
// identifier: invalid characters become underscores and the first letter
// is upper-cased.
func toTypeName(name string) string {
	var b strings.Builder
	for i, r := range name {
		switch {
		case unicode.IsLetter(r) || r == '_' || r == '$':
			b.WriteRune(r)
		case unicode.IsDigit(r):
			if i == 0 {
				b.WriteRune('_')
			}
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	out := b.String()
	if out == "" {
		return ""
	}
	return strings.ToUpper(out[:1]) + out[1:]
}
