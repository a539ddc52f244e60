package schema

import (
	"github.com/schemaforge/tsgen/errdefs"
)

// Kind identifies the structural shape of a schema node.
type Kind int

const (
	KindAllOf Kind = iota // composed intersection
	KindAnyOf             // composed union
	KindOneOf             // tagged alternative union
	KindRef               // unresolved reference marker
	KindCustom            // raw target-language type override
	KindTuple             // bounded array with positional items
	KindList              // unbounded array
	KindEnum              // enumeration of literal values
	KindBoolean
	KindNull
	KindNumber
	KindString
	KindNamedObject
	KindUnnamedObject
	KindAny
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindAllOf:
		return "AllOf"
	case KindAnyOf:
		return "AnyOf"
	case KindOneOf:
		return "OneOf"
	case KindRef:
		return "Ref"
	case KindCustom:
		return "Custom"
	case KindTuple:
		return "Tuple"
	case KindList:
		return "List"
	case KindEnum:
		return "Enum"
	case KindBoolean:
		return "Boolean"
	case KindNull:
		return "Null"
	case KindNumber:
		return "Number"
	case KindString:
		return "String"
	case KindNamedObject:
		return "NamedObject"
	case KindUnnamedObject:
		return "UnnamedObject"
	case KindAny:
		return "Any"
	default:
		return "Unknown"
	}
}

// TypeOf classifies a schema node into exactly one shape category. The
// precedence of the checks is part of the contract: a node may structurally
// satisfy several categories, and the first match wins. The function is
// pure and never consults ancestors.
func TypeOf(s *Schema) (Kind, error) {
	// Composition keywords win over any declared type.
	if len(s.AllOf) > 0 {
		return KindAllOf, nil
	}
	if len(s.OneOf) > 0 {
		return KindOneOf, nil
	}
	if len(s.AnyOf) > 0 {
		return KindAnyOf, nil
	}

	// A reference marker always wins over an inferred type. Seeing one
	// after dereferencing is an upstream contract violation, which the
	// parser reports.
	if s.Ref != "" {
		return KindRef, nil
	}
	if s.TSType != "" {
		return KindCustom, nil
	}

	if s.Items != nil {
		if s.Items.IsTuple() {
			return KindTuple, nil
		}
		return KindList, nil
	}

	if len(s.Enum) > 0 {
		return KindEnum, nil
	}

	// An absent type keyword (nil) falls through to structural checks;
	// an explicitly empty type array is malformed.
	if s.Type != nil {
		t, err := soleType(s)
		if err != nil {
			return 0, err
		}
		switch t {
		case "boolean":
			return KindBoolean, nil
		case "null":
			return KindNull, nil
		case "number", "integer":
			return KindNumber, nil
		case "string":
			return KindString, nil
		case "array":
			// Normalization guarantees items is present on arrays
			// with bounds; a bare array type is an unbounded list
			// of anything.
			return KindList, nil
		case "object":
			return objectKind(s), nil
		case "any":
			return KindAny, nil
		default:
			return 0, errdefs.Newf(errdefs.CodeShape, "unsupported type %q", t)
		}
	}

	// No type at all. An object-like body still classifies as an object;
	// anything else is unconstrained.
	if s.Title != "" || s.ID != "" || len(s.Properties) > 0 || len(s.PatternProperties) > 0 {
		return objectKind(s), nil
	}
	return KindAny, nil
}

// soleType validates the declared type list and returns its single
// non-null entry. A two-element list must pair "null" with exactly one
// other type; anything longer, shorter than one, or doubled is malformed.
func soleType(s *Schema) (string, error) {
	switch len(s.Type) {
	case 0:
		return "", errdefs.New(errdefs.CodeShape, "empty type array")
	case 1:
		return s.Type[0], nil
	case 2:
		if s.Type[0] == "null" && s.Type[1] != "null" {
			return s.Type[1], nil
		}
		if s.Type[1] == "null" && s.Type[0] != "null" {
			return s.Type[0], nil
		}
		return "", errdefs.Newf(errdefs.CodeShape,
			"type array %v must pair null with one other type", []string(s.Type))
	default:
		return "", errdefs.Newf(errdefs.CodeShape,
			"type array %v has more than two entries", []string(s.Type))
	}
}

// objectKind distinguishes named from unnamed objects by node-local
// naming hints only. Names arriving from elsewhere (definitions keys,
// synthesized names) are the parser's business.
func objectKind(s *Schema) Kind {
	if s.Title != "" || s.ID != "" {
		return KindNamedObject
	}
	return KindUnnamedObject
}
