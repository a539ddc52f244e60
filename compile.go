// Package tsgen compiles schema descriptions into TypeScript type
// declarations with companion factory functions. The public entry points
// wrap a synchronous pipeline: structural rule validation, recursive
// parsing of the schema graph into an AST, and code generation from the
// AST. Each call owns its own caches, so independent compilations may
// run concurrently; one schema graph is never compiled in parallel.
package tsgen

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/schemaforge/tsgen/normalize"
	"github.com/schemaforge/tsgen/parser"
	"github.com/schemaforge/tsgen/resolver"
	"github.com/schemaforge/tsgen/schema"
	"github.com/schemaforge/tsgen/typescript"
)

// Compile renders a resolved, normalized schema graph as TypeScript
// source. rootName names the root declaration when the schema itself
// carries no naming hint. It either returns complete formatted source
// or fails; there is no partial output.
func Compile(root *schema.Schema, rootName string, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if err := opts.validate(); err != nil {
		return "", err
	}

	if violations := schema.ValidateRules(root); len(violations) > 0 {
		return "", fmt.Errorf("schema failed structural validation:\n%s",
			schema.FormatViolations(violations))
	}

	node, err := parser.Parse(root, rootName)
	if err != nil {
		return "", err
	}

	raw, err := typescript.Generate(node, typescript.Config{
		Export:        opts.Export,
		UnknownType:   opts.UnknownType,
		FactoryPrefix: opts.FactoryPrefix,
		Frontmatter:   opts.Frontmatter,
		EmitComments:  opts.EmitComments,
	})
	if err != nil {
		return "", err
	}
	return typescript.Format(raw), nil
}

// CompileFile loads a schema document, runs the reference-resolution and
// normalization pre-passes, and compiles it. File references inside the
// document resolve relative to its directory. An empty rootName falls
// back to the file's base name.
func CompileFile(path, rootName string, opts *Options) (string, error) {
	doc, err := schema.Load(path)
	if err != nil {
		return "", err
	}
	root, err := resolver.New(filepath.Dir(path)).Resolve(doc)
	if err != nil {
		return "", err
	}
	normalize.Normalize(root)

	if rootName == "" {
		base := filepath.Base(path)
		rootName = strings.TrimSuffix(base, filepath.Ext(base))
		rootName = strings.TrimSuffix(rootName, ".schema")
	}
	return Compile(root, rootName, opts)
}
