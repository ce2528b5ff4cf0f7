// Package manifest locates Cargo build manifests and the repository root
// by directory-ancestor search.
package manifest

import (
	"os"
	"path/filepath"
)

// cargoManifest is the Cargo build manifest filename.
const cargoManifest = "Cargo.toml"

// gitDir marks the repository root.
const gitDir = ".git"

// FindManifest walks up from the given file path until it finds a
// Cargo.toml, returning the manifest path (including the filename).
func FindManifest(path string) (string, bool) {
	for dir := filepath.Dir(path); ; dir = filepath.Dir(dir) {
		candidate := filepath.Join(dir, cargoManifest)
		if _, statErr := os.Stat(candidate); statErr == nil {
			return candidate, true
		}

		if dir == filepath.Dir(dir) {
			return "", false
		}
	}
}

// FindRepoRoot walks up from the working directory until it finds a .git
// entry, returning that directory.
func FindRepoRoot() (string, bool) {
	cwd, wdErr := os.Getwd()
	if wdErr != nil {
		cwd = os.Getenv("PWD")
		if cwd == "" {
			return "", false
		}
	}

	for dir := cwd; ; dir = filepath.Dir(dir) {
		if _, statErr := os.Stat(filepath.Join(dir, gitDir)); statErr == nil {
			return dir, true
		}

		if dir == filepath.Dir(dir) {
			return "", false
		}
	}
}
