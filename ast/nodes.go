package ast

// Literal is a single literal value, as found in enumerations. Value holds
// the rendered source text of the literal (a JSON literal is valid
// TypeScript).
type Literal struct {
	BaseNode
	Value string
}

// Kind returns KindLiteral.
func (n *Literal) Kind() Kind { return KindLiteral }

// Boolean is the boolean primitive type.
type Boolean struct{ BaseNode }

// Kind returns KindBoolean.
func (n *Boolean) Kind() Kind { return KindBoolean }

// Number is the numeric primitive type, covering integers and floats.
type Number struct{ BaseNode }

// Kind returns KindNumber.
func (n *Number) Kind() Kind { return KindNumber }

// String is the string primitive type.
type String struct{ BaseNode }

// Kind returns KindString.
func (n *String) Kind() Kind { return KindString }

// Null is the null type.
type Null struct{ BaseNode }

// Kind returns KindNull.
func (n *Null) Kind() Kind { return KindNull }

// Any is the unconstrained type.
type Any struct{ BaseNode }

// Kind returns KindAny.
func (n *Any) Kind() Kind { return KindAny }

// Member is one property of an object or interface node.
type Member struct {
	// KeyName is the property name, or the key pattern for pattern
	// properties.
	KeyName string

	// Node is the member's type.
	Node Node

	// Required marks members listed in the parent's required set.
	Required bool

	// Nullable marks members whose declared type pairs null with a
	// primitive; they render unioned with null.
	Nullable bool

	// Default is the rendered default literal, or "" when the member
	// has none. Required members never carry one.
	Default string

	// PatternProperty marks open-ended key-pattern members, rendered
	// as index signatures and exempt from default checking.
	PatternProperty bool

	// UnreachableDefinition marks definitions-map entries attached to
	// the root so their declarations are emitted; they are not
	// properties and never appear in an interface body.
	UnreachableDefinition bool
}

// HasDefault reports whether the member carries a rendered default.
func (m *Member) HasDefault() bool { return m.Default != "" }

// Object is an anonymous structural object, rendered inline where it is
// used.
type Object struct {
	BaseNode
	Members []Member
}

// Kind returns KindObject.
func (n *Object) Kind() Kind { return KindObject }

// Interface is a named object emitted as its own interface declaration
// with a companion factory function.
type Interface struct {
	BaseNode
	Members []Member
}

// Kind returns KindInterface.
func (n *Interface) Kind() Kind { return KindInterface }

// Array is an unbounded homogeneous array.
type Array struct {
	BaseNode
	Element Node
}

// Kind returns KindArray.
func (n *Array) Kind() Kind { return KindArray }

// Tuple is a bounded array with one type per fixed position. MinItems
// positions are mandatory; Spread, when set, types an unbounded trailing
// remainder.
type Tuple struct {
	BaseNode
	Items    []Node
	MinItems int
	Spread   Node
}

// Kind returns KindTuple.
func (n *Tuple) Kind() Kind { return KindTuple }

// Union is an alternative set. Members must each be the null literal kind
// or carry a standalone name by the time generation runs.
type Union struct {
	BaseNode
	Members []Node
}

// Kind returns KindUnion.
func (n *Union) Kind() Kind { return KindUnion }

// Intersection combines its members into one merged type.
type Intersection struct {
	BaseNode
	Members []Node
}

// Kind returns KindIntersection.
func (n *Intersection) Kind() Kind { return KindIntersection }

// Enum is an enumeration of literal values.
type Enum struct {
	BaseNode
	Values []*Literal
}

// Kind returns KindEnum.
func (n *Enum) Kind() Kind { return KindEnum }

// Reference holds raw target-language type text, the escape hatch for
// types the schema cannot express.
type Reference struct {
	BaseNode
	TypeText string
}

// Kind returns KindReference.
func (n *Reference) Kind() Kind { return KindReference }
