// Package scanner counts suppressed lints in Rust source files. Each
// #[allow(...)] attribute contributes the number of declarations it
// shields, so a block-level suppression weighs as much as the code it
// actually silences.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexaandru/go-sitter-forest/rust"
	sitter "github.com/alexaandru/go-tree-sitter-bare"
	"github.com/src-d/enry/v2"

	"github.com/lintgate/lintgate/internal/baseline"
)

// targetLanguage is the enry classification of files the scanner accepts.
const targetLanguage = "Rust"

var errNoRootNode = errors.New("parse produced no root node")

// ParseError reports a file whose content is not syntactically valid
// Rust. It aborts the whole run before any comparison or persistence.
type ParseError struct {
	File   string
	Detail string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %s", e.File, e.Detail)
}

// Scanner parses Rust files and tallies their suppressed lints.
// It is not safe for concurrent use; a run is fully sequential.
type Scanner struct {
	parser *sitter.Parser
}

// New creates a Scanner with the Rust grammar loaded.
func New() *Scanner {
	parser := sitter.NewParser()
	parser.SetLanguage(sitter.NewLanguage(rust.GetLanguage()))

	return &Scanner{parser: parser}
}

// Recognizes reports whether the path's extension marks it as Rust.
func (s *Scanner) Recognizes(path string) bool {
	return enry.GetLanguage(filepath.Base(path), nil) == targetLanguage
}

// Scan parses one file's content and returns its suppression counts.
func (s *Scanner) Scan(ctx context.Context, filename string, content []byte) (baseline.LintCounts, error) {
	tree, parseErr := s.parser.ParseString(ctx, nil, content)
	if parseErr != nil {
		return nil, &ParseError{File: filename, Detail: parseErr.Error()}
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.IsNull() {
		return nil, &ParseError{File: filename, Detail: errNoRootNode.Error()}
	}

	if root.HasError() {
		return nil, &ParseError{File: filename, Detail: firstSyntaxError(root)}
	}

	counts := baseline.LintCounts{}

	file := buildFileDecl(root, content)
	countDecl(counts, &file)

	return counts, nil
}

// ScanFiles builds the observed ledger for one run. Paths that are not
// Rust, or that cannot be read (e.g. deleted in the change being
// examined), are skipped silently; the first malformed file aborts.
func (s *Scanner) ScanFiles(ctx context.Context, paths []string) (baseline.Ledger, error) {
	observed := baseline.Ledger{}

	for _, path := range paths {
		if !s.Recognizes(path) {
			continue
		}

		content, readErr := os.ReadFile(path)
		if readErr != nil {
			continue
		}

		counts, scanErr := s.Scan(ctx, path, content)
		if scanErr != nil {
			return nil, scanErr
		}

		observed[path] = counts
	}

	return observed, nil
}

// firstSyntaxError locates the first error or missing node in the tree
// and renders its position for the diagnostic.
func firstSyntaxError(node sitter.Node) string {
	if node.IsError() || node.IsMissing() {
		point := node.StartPoint()

		return fmt.Sprintf("syntax error at line %d, column %d", point.Row+1, point.Column+1)
	}

	for idx := range node.ChildCount() {
		child := node.Child(idx)
		if !child.IsNull() && child.HasError() {
			return firstSyntaxError(child)
		}
	}

	return "syntax error"
}
