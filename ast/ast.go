// Package ast defines the typed intermediate representation built from a
// schema graph. One AST node exists per distinct schema node; shared and
// cyclic schema structure is mirrored by shared node pointers, so
// generators must track visited nodes rather than assume a tree.
package ast

// Kind identifies the category of an AST node.
type Kind int

const (
	KindLiteral Kind = iota
	KindBoolean
	KindNumber
	KindString
	KindNull
	KindAny
	KindObject    // anonymous structural object, rendered inline
	KindInterface // named object, emitted as its own declaration
	KindArray
	KindTuple
	KindUnion
	KindIntersection
	KindEnum
	KindReference
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "Literal"
	case KindBoolean:
		return "Boolean"
	case KindNumber:
		return "Number"
	case KindString:
		return "String"
	case KindNull:
		return "Null"
	case KindAny:
		return "Any"
	case KindObject:
		return "Object"
	case KindInterface:
		return "Interface"
	case KindArray:
		return "Array"
	case KindTuple:
		return "Tuple"
	case KindUnion:
		return "Union"
	case KindIntersection:
		return "Intersection"
	case KindEnum:
		return "Enum"
	case KindReference:
		return "Reference"
	default:
		return "Unknown"
	}
}

// Node is the interface implemented by all AST node types.
type Node interface {
	// Kind returns the node kind for type switching.
	Kind() Kind

	// Base returns the shared metadata carried by every node.
	Base() *BaseNode

	// Ensure only types in this package implement Node.
	sealed()
}

// BaseNode holds the metadata every AST node shares.
type BaseNode struct {
	// StandaloneName is set iff the node is emitted as its own named
	// top-level declaration. Anonymous nodes render inline.
	StandaloneName string

	// Comment is emitted as a JSDoc block above the declaration.
	Comment string

	// KeyName is the member key under which the node was reached. It is
	// only meaningful while the node is considered as part of its parent.
	KeyName string

	// Definitions holds otherwise-unreachable definitions entries.
	// Only the root of a graph carries any, and only when the root is
	// not an object (object roots carry them as flagged members); they
	// are emitted as declarations and nothing else.
	Definitions []Node
}

// Base returns the node's shared metadata.
func (b *BaseNode) Base() *BaseNode { return b }

func (b *BaseNode) sealed() {}

// Named reports whether the node carries a standalone name.
func Named(n Node) bool {
	return n != nil && n.Base().StandaloneName != ""
}
