package typescript

import (
	"fmt"
	"unicode"
)

// TypeScript reserved words; identifiers colliding with one are escaped.
var reservedWords = map[string]bool{
	"break":      true,
	"case":       true,
	"catch":      true,
	"class":      true,
	"const":      true,
	"continue":   true,
	"debugger":   true,
	"default":    true,
	"delete":     true,
	"do":         true,
	"else":       true,
	"enum":       true,
	"export":     true,
	"extends":    true,
	"false":      true,
	"finally":    true,
	"for":        true,
	"function":   true,
	"if":         true,
	"implements": true,
	"import":     true,
	"in":         true,
	"instanceof": true,
	"interface":  true,
	"let":        true,
	"new":        true,
	"null":       true,
	"package":    true,
	"private":    true,
	"protected":  true,
	"public":     true,
	"return":     true,
	"static":     true,
	"super":      true,
	"switch":     true,
	"this":       true,
	"throw":      true,
	"true":       true,
	"try":        true,
	"type":       true,
	"typeof":     true,
	"var":        true,
	"void":       true,
	"while":      true,
	"with":       true,
	"yield":      true,
}

// escapeReservedWord escapes a reserved word by appending an underscore.
func escapeReservedWord(name string) string {
	if reservedWords[name] {
		return name + "_"
	}
	return name
}

// needsQuoting returns true if a property name must be written as a
// string literal.
func needsQuoting(name string) bool {
	if name == "" {
		return true
	}
	if unicode.IsDigit(rune(name[0])) {
		return true
	}
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '$' {
			return true
		}
	}
	return reservedWords[name]
}

// propertyKey renders a property name for declaration position, quoting
// it when it is not a plain identifier.
func propertyKey(name string) string {
	if needsQuoting(name) {
		return fmt.Sprintf("%q", name)
	}
	return name
}

// propertyAccess renders an access to a property, using bracket syntax
// for names that cannot follow a dot.
func propertyAccess(receiver, name string) string {
	if needsQuoting(name) {
		return fmt.Sprintf("%s[%q]", receiver, name)
	}
	return receiver + "." + name
}
