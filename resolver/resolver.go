// Package resolver implements the $ref resolution pre-pass. It replaces
// every reference marker in a schema graph with the referenced subtree,
// splicing in the referenced node itself rather than a copy. Cyclic
// references therefore resolve to object-identity cycles, which the
// parser's visitation cache handles; what must never reach the parser is
// a node still carrying a $ref marker.
package resolver

import (
	"path/filepath"
	"strings"

	"github.com/schemaforge/tsgen/errdefs"
	"github.com/schemaforge/tsgen/schema"
)

// Resolver resolves references within one schema document and across
// sibling documents reachable by relative file paths.
type Resolver struct {
	// Base is the directory relative file references are resolved
	// against. Empty means file references are rejected.
	Base string

	files map[string]*schema.Schema
}

// New creates a Resolver with the given base directory.
func New(base string) *Resolver {
	return &Resolver{Base: base, files: make(map[string]*schema.Schema)}
}

// Resolve rewrites root in place so that no reachable node carries a $ref
// marker, and returns the root (which is itself replaced when the document
// root is a bare reference). Chains of references are followed to their
// final target; reference cycles with no concrete target are an error.
func (r *Resolver) Resolve(root *schema.Schema) (*schema.Schema, error) {
	root, err := r.target(root, root)
	if err != nil {
		return nil, err
	}

	seen := make(map[*schema.Schema]bool)
	var walk func(s *schema.Schema) error
	walk = func(s *schema.Schema) error {
		if s == nil || seen[s] {
			return nil
		}
		seen[s] = true

		resolveMap := func(m map[string]*schema.Schema) error {
			for key, child := range m {
				t, err := r.target(child, root)
				if err != nil {
					return err
				}
				m[key] = t
				if err := walk(t); err != nil {
					return err
				}
			}
			return nil
		}
		resolveList := func(list []*schema.Schema) error {
			for i, child := range list {
				t, err := r.target(child, root)
				if err != nil {
					return err
				}
				list[i] = t
				if err := walk(t); err != nil {
					return err
				}
			}
			return nil
		}

		if err := resolveMap(s.Properties); err != nil {
			return err
		}
		if err := resolveMap(s.PatternProperties); err != nil {
			return err
		}
		if err := resolveMap(s.Definitions); err != nil {
			return err
		}
		if s.Items != nil {
			if s.Items.Single != nil {
				t, err := r.target(s.Items.Single, root)
				if err != nil {
					return err
				}
				s.Items.Single = t
				if err := walk(t); err != nil {
					return err
				}
			}
			if err := resolveList(s.Items.Tuple); err != nil {
				return err
			}
		}
		if s.AdditionalItems != nil && s.AdditionalItems.Schema != nil {
			t, err := r.target(s.AdditionalItems.Schema, root)
			if err != nil {
				return err
			}
			s.AdditionalItems.Schema = t
			if err := walk(t); err != nil {
				return err
			}
		}
		if s.AdditionalProperties != nil && s.AdditionalProperties.Schema != nil {
			t, err := r.target(s.AdditionalProperties.Schema, root)
			if err != nil {
				return err
			}
			s.AdditionalProperties.Schema = t
			if err := walk(t); err != nil {
				return err
			}
		}
		if err := resolveList(s.AllOf); err != nil {
			return err
		}
		if err := resolveList(s.AnyOf); err != nil {
			return err
		}
		return resolveList(s.OneOf)
	}

	if err := walk(root); err != nil {
		return nil, err
	}
	return root, nil
}

// target follows a node's reference chain to its concrete target. A node
// without a $ref is its own target.
func (r *Resolver) target(s, root *schema.Schema) (*schema.Schema, error) {
	hops := 0
	for s != nil && s.Ref != "" {
		// A chain longer than the graph can only be a pure reference
		// cycle, which has no concrete target to splice in.
		if hops++; hops > 1000 {
			return nil, errdefs.Newf(errdefs.CodeUnresolvedRef, "reference cycle with no target at %q", s.Ref)
		}
		next, err := r.lookup(s.Ref, root)
		if err != nil {
			return nil, err
		}
		s = next
	}
	return s, nil
}

// lookup resolves one reference string: "#/..." within the current
// document, or "file#/..." / "file" against the base directory.
func (r *Resolver) lookup(ref string, root *schema.Schema) (*schema.Schema, error) {
	doc := root
	pointer := ref
	if !strings.HasPrefix(ref, "#") {
		file, frag, _ := strings.Cut(ref, "#")
		loaded, err := r.loadFile(file)
		if err != nil {
			return nil, err
		}
		doc = loaded
		pointer = "#" + frag
	}
	target, err := evalPointer(doc, pointer)
	if err != nil {
		return nil, errdefs.Newf(errdefs.CodeUnresolvedRef, "cannot resolve %q: %v", ref, err)
	}
	return target, nil
}

func (r *Resolver) loadFile(name string) (*schema.Schema, error) {
	if r.Base == "" {
		return nil, errdefs.Newf(errdefs.CodeUnresolvedRef, "file reference %q with no base directory", name)
	}
	path := filepath.Join(r.Base, filepath.FromSlash(name))
	if doc, ok := r.files[path]; ok {
		return doc, nil
	}
	doc, err := schema.Load(path)
	if err != nil {
		return nil, errdefs.Newf(errdefs.CodeUnresolvedRef, "load %q: %v", name, err)
	}
	r.files[path] = doc
	return doc, nil
}
