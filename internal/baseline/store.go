package baseline

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// filePerm is the permission mode for the persisted ledger.
const filePerm = 0o644

// tmpExtension is appended to the ledger path while writing.
const tmpExtension = ".tmp"

// Store abstracts ledger persistence so the analyzer and updater can be
// tested against an in-memory implementation.
type Store interface {
	// Load reads the persisted ledger. A missing store is not an error:
	// the first run bootstraps with an empty ledger.
	Load() (Ledger, error)

	// Save persists the ledger. Writes are atomic-or-failed, never partial.
	Save(Ledger) error
}

// FileStore persists the ledger as YAML at a fixed path. The file is
// written with sorted keys so it stays diff-friendly under version control.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore backed by the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the path the store reads and writes.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the ledger from disk, returning an empty ledger if the file
// does not exist.
func (s *FileStore) Load() (Ledger, error) {
	data, readErr := os.ReadFile(s.path)
	if readErr != nil {
		if os.IsNotExist(readErr) {
			return Ledger{}, nil
		}

		return nil, fmt.Errorf("baseline load %s: %w", s.path, readErr)
	}

	var ledger Ledger

	unmarshalErr := yaml.Unmarshal(data, &ledger)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("baseline parse %s: %w", s.path, unmarshalErr)
	}

	if ledger == nil {
		ledger = Ledger{}
	}

	return ledger, nil
}

// Save writes the ledger to a temp file in the same directory and renames
// it over the target, so a failed write never leaves a partial store.
func (s *FileStore) Save(ledger Ledger) error {
	data, marshalErr := yaml.Marshal(sortedDocument(ledger))
	if marshalErr != nil {
		return fmt.Errorf("baseline marshal: %w", marshalErr)
	}

	tmpPath := s.path + tmpExtension

	writeErr := os.WriteFile(tmpPath, data, filePerm)
	if writeErr != nil {
		return fmt.Errorf("baseline write %s: %w", tmpPath, writeErr)
	}

	renameErr := os.Rename(tmpPath, s.path)
	if renameErr != nil {
		return fmt.Errorf("baseline rename %s: %w", filepath.Base(s.path), renameErr)
	}

	return nil
}

// sortedDocument builds a yaml.Node tree with file and lint keys in sorted
// order. Plain map marshalling leaves key order to the encoder; building
// the document explicitly keeps the persisted artifact deterministic.
func sortedDocument(ledger Ledger) *yaml.Node {
	root := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	for _, file := range ledger.Files() {
		counts := ledger[file]
		fileNode := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

		for _, lint := range counts.Lints() {
			fileNode.Content = append(fileNode.Content,
				scalarNode(lint, "!!str"),
				scalarNode(strconv.Itoa(counts[lint]), "!!int"),
			)
		}

		root.Content = append(root.Content, scalarNode(file, "!!str"), fileNode)
	}

	return root
}

func scalarNode(value, tag string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

// MemStore is an in-memory Store for tests and embedding.
type MemStore struct {
	ledger Ledger
	saves  int
}

// NewMemStore creates a MemStore seeded with the given ledger. A nil seed
// behaves like a missing file store.
func NewMemStore(seed Ledger) *MemStore {
	if seed == nil {
		seed = Ledger{}
	}

	return &MemStore{ledger: seed.Clone()}
}

// Load returns a copy of the stored ledger.
func (s *MemStore) Load() (Ledger, error) {
	return s.ledger.Clone(), nil
}

// Save replaces the stored ledger.
func (s *MemStore) Save(ledger Ledger) error {
	s.ledger = ledger.Clone()
	s.saves++

	return nil
}

// Ledger returns the currently stored ledger.
func (s *MemStore) Ledger() Ledger {
	return s.ledger.Clone()
}

// Saves returns how many times Save has been called.
func (s *MemStore) Saves() int {
	return s.saves
}
