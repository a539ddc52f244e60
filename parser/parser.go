// Package parser builds the typed AST from a resolved, normalized schema
// graph. Each distinct schema node parses to exactly one AST node: a
// visitation cache keyed on schema node identity guarantees that shared
// subtrees reappear as shared AST nodes and that cyclic graphs terminate.
package parser

import (
	"errors"
	"sort"

	"github.com/schemaforge/tsgen/ast"
	"github.com/schemaforge/tsgen/errdefs"
	"github.com/schemaforge/tsgen/schema"
)

// Parse builds the AST for a schema graph. rootName names the root
// declaration when the root schema carries no naming hint of its own.
// Parsing fails with a shape, default-value, or naming error; it never
// returns a partial AST.
func Parse(root *schema.Schema, rootName string) (ast.Node, error) {
	if rootName == "" {
		return nil, errdefs.New(errdefs.CodeNaming, "a root name is required")
	}
	rootKind, err := schema.TypeOf(root)
	if err != nil {
		return nil, err
	}
	p := &parser{
		root:      root,
		rootName:  toTypeName(rootName),
		rootKind:  rootKind,
		cache:     make(map[*schema.Schema]ast.Node),
		defNames:  indexDefinitions(root),
		usedNames: make(map[string]*schema.Schema),
	}
	node, err := p.parse(root, "")
	if err != nil {
		return nil, err
	}
	if err := p.attachDefinitions(node); err != nil {
		return nil, err
	}
	return node, nil
}

type parser struct {
	root     *schema.Schema
	rootName string
	rootKind schema.Kind

	// cache maps schema node identity to its AST node. Entries are
	// installed before children are parsed, so a cycle resolves to the
	// same in-progress node instead of recursing forever.
	cache map[*schema.Schema]ast.Node

	// defNames maps schema nodes to the definitions key they appear
	// under, the third step of the standalone-name fallback chain.
	defNames map[*schema.Schema]string

	// usedNames tracks claimed standalone names; two distinct schema
	// nodes resolving to the same name is a naming error, never a
	// silent overwrite.
	usedNames map[string]*schema.Schema
}

func (p *parser) parse(s *schema.Schema, keyName string) (ast.Node, error) {
	if n, ok := p.cache[s]; ok {
		return n, nil
	}

	kind, err := schema.TypeOf(s)
	if err != nil {
		return nil, err
	}

	switch kind {
	case schema.KindRef:
		return nil, errdefs.Newf(errdefs.CodeUnresolvedRef,
			"reference %q survived dereferencing", s.Ref)
	case schema.KindCustom:
		n := &ast.Reference{TypeText: s.TSType}
		if err := p.install(s, n, keyName); err != nil {
			return nil, err
		}
		return n, nil
	case schema.KindAllOf:
		return p.parseIntersection(s, keyName)
	case schema.KindOneOf:
		return p.parseUnion(s, s.OneOf, keyName)
	case schema.KindAnyOf:
		return p.parseUnion(s, s.AnyOf, keyName)
	case schema.KindTuple:
		return p.parseTuple(s, keyName)
	case schema.KindList:
		return p.parseList(s, keyName)
	case schema.KindEnum:
		return p.parseEnum(s, keyName)
	case schema.KindNamedObject, schema.KindUnnamedObject:
		return p.parseObject(s, keyName)
	case schema.KindBoolean:
		return p.installed(s, &ast.Boolean{}, keyName)
	case schema.KindNumber:
		return p.installed(s, &ast.Number{}, keyName)
	case schema.KindString:
		return p.installed(s, &ast.String{}, keyName)
	case schema.KindNull:
		return p.installed(s, &ast.Null{}, keyName)
	default:
		return p.installed(s, &ast.Any{}, keyName)
	}
}

// install caches the node under the schema's identity and fills in the
// shared metadata, claiming the resolved standalone name if there is one.
// It must run before the caller recurses into children.
func (p *parser) install(s *schema.Schema, n ast.Node, keyName string) error {
	p.cache[s] = n
	base := n.Base()
	base.KeyName = keyName
	base.Comment = s.Description

	name := p.resolveName(s, keyName)
	if name != "" {
		if owner, taken := p.usedNames[name]; taken && owner != s {
			return errdefs.Newf(errdefs.CodeNaming,
				"standalone name %q resolved for two distinct schema nodes", name)
		}
		p.usedNames[name] = s
		base.StandaloneName = name
	}
	return nil
}

// installed is install for leaf nodes with no children to recurse into.
func (p *parser) installed(s *schema.Schema, n ast.Node, keyName string) (ast.Node, error) {
	if err := p.install(s, n, keyName); err != nil {
		return nil, err
	}
	return n, nil
}

func (p *parser) parseIntersection(s *schema.Schema, keyName string) (ast.Node, error) {
	n := &ast.Intersection{}
	if err := p.install(s, n, keyName); err != nil {
		return nil, err
	}
	for _, branch := range s.AllOf {
		child, err := p.parse(branch, "")
		if err != nil {
			return nil, at(err, n.StandaloneName, "")
		}
		n.Members = append(n.Members, child)
	}
	return n, nil
}

func (p *parser) parseUnion(s *schema.Schema, branches []*schema.Schema, keyName string) (ast.Node, error) {
	n := &ast.Union{}
	if err := p.install(s, n, keyName); err != nil {
		return nil, err
	}
	for _, branch := range branches {
		// The discriminant idiom: a single-property object branch
		// with no required list of its own requires exactly that
		// property. Applied before recursion so the branch's member
		// parses as required.
		inferDiscriminant(branch)

		child, err := p.parse(branch, "")
		if err != nil {
			return nil, at(err, n.StandaloneName, "")
		}
		if obj, ok := child.(*ast.Object); ok {
			// An anonymous object branch cannot be referenced from
			// the union. Single-property branches would have been
			// named by synthesis if this union were the root.
			if len(obj.Members) == 1 {
				return nil, errdefs.New(errdefs.CodeNaming,
					"alternative branch needs a standalone name and none could be synthesized").
					At(n.StandaloneName, "")
			}
			return nil, errdefs.Newf(errdefs.CodeShape,
				"anonymous alternative branch has %d properties, want exactly one", len(obj.Members)).
				At(n.StandaloneName, "")
		}
		n.Members = append(n.Members, child)
	}
	return n, nil
}

func (p *parser) parseTuple(s *schema.Schema, keyName string) (ast.Node, error) {
	n := &ast.Tuple{MinItems: s.MinItems}
	if err := p.install(s, n, keyName); err != nil {
		return nil, err
	}
	for _, item := range s.Items.Tuple {
		child, err := p.parse(item, "")
		if err != nil {
			return nil, at(err, n.StandaloneName, "")
		}
		n.Items = append(n.Items, child)
	}

	// The spread slot: declared additional items parse into it; a
	// maximum beyond the declared positions leaves an any-typed
	// remainder; an unbounded tuple gets neither.
	switch {
	case s.AdditionalItems != nil && s.AdditionalItems.Schema != nil:
		spread, err := p.parse(s.AdditionalItems.Schema, "")
		if err != nil {
			return nil, at(err, n.StandaloneName, "")
		}
		n.Spread = spread
	case s.MaxItems > len(n.Items):
		n.Spread = &ast.Any{}
	}
	return n, nil
}

func (p *parser) parseList(s *schema.Schema, keyName string) (ast.Node, error) {
	n := &ast.Array{}
	if err := p.install(s, n, keyName); err != nil {
		return nil, err
	}
	if s.Items != nil && s.Items.Single != nil {
		child, err := p.parse(s.Items.Single, "")
		if err != nil {
			return nil, at(err, n.StandaloneName, "")
		}
		n.Element = child
	} else {
		n.Element = &ast.Any{}
	}
	return n, nil
}

func (p *parser) parseEnum(s *schema.Schema, keyName string) (ast.Node, error) {
	n := &ast.Enum{}
	if err := p.install(s, n, keyName); err != nil {
		return nil, err
	}
	for _, v := range s.Enum {
		text, err := renderLiteral(v)
		if err != nil {
			return nil, at(err, n.StandaloneName, "")
		}
		n.Values = append(n.Values, &ast.Literal{Value: text})
	}
	return n, nil
}

func (p *parser) parseObject(s *schema.Schema, keyName string) (ast.Node, error) {
	name := p.resolveName(s, keyName)

	var node ast.Node
	var members *[]ast.Member
	if name != "" {
		iface := &ast.Interface{}
		node, members = iface, &iface.Members
	} else {
		obj := &ast.Object{}
		node, members = obj, &obj.Members
	}
	if err := p.install(s, node, keyName); err != nil {
		return nil, err
	}
	typeName := node.Base().StandaloneName

	for _, key := range sortedKeys(s.Properties) {
		prop := s.Properties[key]
		child, err := p.parse(prop, key)
		if err != nil {
			return nil, at(err, typeName, key)
		}
		m := ast.Member{
			KeyName:  key,
			Node:     child,
			Required: s.IsRequired(key),
			Nullable: prop.IsNullable(),
		}
		if !m.Required {
			def, err := p.memberDefault(prop, child, m.Nullable)
			if err != nil {
				return nil, at(err, typeName, key)
			}
			m.Default = def
		}
		*members = append(*members, m)
	}

	// Pattern properties are open-ended key maps. Deliberately
	// permissive: their value schemas carry no default obligation.
	for _, pattern := range sortedKeys(s.PatternProperties) {
		child, err := p.parse(s.PatternProperties[pattern], pattern)
		if err != nil {
			return nil, at(err, typeName, pattern)
		}
		*members = append(*members, ast.Member{
			KeyName:         pattern,
			Node:            child,
			PatternProperty: true,
		})
	}
	if ap := s.AdditionalProperties; ap != nil {
		switch {
		case ap.Schema != nil:
			child, err := p.parse(ap.Schema, "")
			if err != nil {
				return nil, at(err, typeName, "")
			}
			*members = append(*members, ast.Member{Node: child, PatternProperty: true})
		case ap.Allowed != nil && *ap.Allowed:
			*members = append(*members, ast.Member{Node: &ast.Any{}, PatternProperty: true})
		}
	}
	return node, nil
}

// attachDefinitions parses definitions entries nothing else reached and
// hangs them off the root node so they are still emitted as declarations.
// An object root carries them as flagged members that never appear as
// properties; any other root (a union, an enum, a tuple) carries them on
// its base node.
func (p *parser) attachDefinitions(root ast.Node) error {
	iface, _ := root.(*ast.Interface)
	for _, key := range sortedKeys(p.root.Definitions) {
		def := p.root.Definitions[key]
		if _, reached := p.cache[def]; reached {
			continue
		}
		child, err := p.parse(def, key)
		if err != nil {
			return at(err, root.Base().StandaloneName, key)
		}
		if iface != nil {
			iface.Members = append(iface.Members, ast.Member{
				KeyName:               key,
				Node:                  child,
				UnreachableDefinition: true,
			})
			continue
		}
		root.Base().Definitions = append(root.Base().Definitions, child)
	}
	return nil
}

// inferDiscriminant makes the sole property of a bare single-property
// alternative branch required.
func inferDiscriminant(branch *schema.Schema) {
	if len(branch.Required) > 0 || len(branch.Properties) != 1 {
		return
	}
	// Composed or explicitly typed non-object branches keep their shape.
	if len(branch.AllOf) > 0 || len(branch.AnyOf) > 0 || len(branch.OneOf) > 0 {
		return
	}
	if t := branch.NonNullType(); t != "" && t != "object" {
		return
	}
	for key := range branch.Properties {
		branch.Required = []string{key}
	}
}

func sortedKeys(m map[string]*schema.Schema) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// at annotates a pipeline error with the schema location it surfaced in,
// keeping the deepest location already recorded.
func at(err error, typeName, keyName string) error {
	var e *errdefs.Error
	if errors.As(err, &e) {
		return e.At(typeName, keyName)
	}
	return err
}
