package scanner

import (
	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/lintgate/lintgate/internal/baseline"
)

// decl is a uniform view of one Rust declaration: the lints its allow
// attributes name, plus its directly nested declarations when it is a
// container (mod body, impl block, trait block, extern block). Leaf kinds
// and unrecognized kinds have no children.
type decl struct {
	lints    []string
	children []decl
}

// containerKinds are the declaration kinds whose suppression weight scales
// with the number of declarations they shield.
var containerKinds = map[string]bool{
	"mod_item":         true,
	"impl_item":        true,
	"trait_item":       true,
	"foreign_mod_item": true,
}

// leafKinds are the declaration kinds counted with weight 1. Anything not
// listed here or in containerKinds is treated as a no-op leaf: it occupies
// a declaration slot but contributes no counts, which keeps the walk
// forward-compatible with unhandled syntax.
var leafKinds = map[string]bool{
	"function_item":            true,
	"function_signature_item":  true,
	"struct_item":              true,
	"enum_item":                true,
	"union_item":               true,
	"const_item":               true,
	"static_item":              true,
	"type_item":                true,
	"associated_type":          true,
	"use_declaration":          true,
	"extern_crate_declaration": true,
	"macro_definition":         true,
	"macro_invocation":         true,
}

// buildFileDecl normalizes a parsed source file into a decl tree. The file
// itself behaves like a container: its inner attributes (#![allow(...)])
// weigh in at the number of top-level declarations.
func buildFileDecl(root sitter.Node, src []byte) decl {
	var file decl

	file.children = buildDeclList(root, src, &file.lints)

	return file
}

// buildDeclList walks the named children of a declaration list (or the
// source file root) and groups them into decls. In the syntax tree an
// outer attribute (#[...]) is a sibling preceding the item it decorates,
// and an inner attribute (#![...]) belongs to the enclosing body, so the
// walk carries pending outer attributes forward and routes inner ones to
// the owner's lint list.
func buildDeclList(parent sitter.Node, src []byte, ownerLints *[]string) []decl {
	var (
		decls   []decl
		pending []string
	)

	for idx := range parent.NamedChildCount() {
		child := parent.NamedChild(idx)
		if child.IsNull() {
			continue
		}

		switch kind := child.Type(); kind {
		case "line_comment", "block_comment":
			// Comments are extras, not declarations.
		case "attribute_item":
			pending = append(pending, allowedLints(child, src)...)
		case "inner_attribute_item":
			*ownerLints = append(*ownerLints, allowedLints(child, src)...)
		default:
			decls = append(decls, buildDecl(child, src, kind, pending))
			pending = nil
		}
	}

	return decls
}

// buildDecl normalizes a single declaration node. Outer attributes already
// collected for it arrive in pending.
func buildDecl(node sitter.Node, src []byte, kind string, pending []string) decl {
	if containerKinds[kind] {
		d := decl{lints: pending}

		if body, ok := declarationList(node); ok {
			d.children = buildDeclList(body, src, &d.lints)
		}

		return d
	}

	if leafKinds[kind] {
		return decl{lints: pending}
	}

	// Unrecognized kind: a declaration slot whose attributes are dropped.
	return decl{}
}

// declarationList finds the body of a container declaration. A bodyless
// container ("mod foo;") has none and is weighted like a leaf.
func declarationList(node sitter.Node) (sitter.Node, bool) {
	for idx := range node.NamedChildCount() {
		child := node.NamedChild(idx)
		if !child.IsNull() && child.Type() == "declaration_list" {
			return child, true
		}
	}

	return sitter.Node{}, false
}

// allowedLints extracts the bare lint identifiers named by an allow
// attribute, e.g. #[allow(dead_code, unused_imports)] yields both names.
// Attributes other than allow, and path-qualified lints such as
// clippy::all, contribute nothing.
func allowedLints(attrItem sitter.Node, src []byte) []string {
	attr, ok := namedChildOfType(attrItem, "attribute")
	if !ok {
		return nil
	}

	path := attr.NamedChild(0)
	if path.IsNull() || path.Type() != "identifier" || path.Content(src) != "allow" {
		return nil
	}

	args, ok := namedChildOfType(attr, "token_tree")
	if !ok {
		return nil
	}

	// A token_tree is a flat token sequence: clippy::all arrives as two
	// identifier tokens around an anonymous "::", not as one path node.
	// An identifier touching a "::" is half of a qualified path, never a
	// bare lint.
	tokens := make([]sitter.Node, 0, args.ChildCount())

	for idx := range args.ChildCount() {
		tok := args.Child(idx)
		if !tok.IsNull() {
			tokens = append(tokens, tok)
		}
	}

	var lints []string

	for i, tok := range tokens {
		if tok.Type() != "identifier" {
			continue
		}

		if i > 0 && tokens[i-1].Type() == "::" {
			continue
		}

		if i+1 < len(tokens) && tokens[i+1].Type() == "::" {
			continue
		}

		lints = append(lints, tok.Content(src))
	}

	return lints
}

func namedChildOfType(node sitter.Node, kind string) (sitter.Node, bool) {
	for idx := range node.NamedChildCount() {
		child := node.NamedChild(idx)
		if !child.IsNull() && child.Type() == kind {
			return child, true
		}
	}

	return sitter.Node{}, false
}

// countDecl adds one declaration's suppression contributions to counts and
// recurses into its children. A suppression on a container silences the
// lint for everything it contains, so its weight is the number of
// declarations directly nested in it, never less than one.
func countDecl(counts baseline.LintCounts, d *decl) {
	weight := len(d.children)
	if weight < 1 {
		weight = 1
	}

	for _, lint := range d.lints {
		counts[lint] += weight
	}

	for i := range d.children {
		countDecl(counts, &d.children[i])
	}
}
