// Package vaultfs implements the VaultRepository port on the local
// filesystem. All operations are confined to the vault root.
package vaultfs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"breakdown/internal/ports"
)

// Repository implements ports.VaultRepository over a vault directory.
type Repository struct {
	root string
}

// Ensure Repository implements VaultRepository
var _ ports.VaultRepository = (*Repository)(nil)

// NewRepository creates a repository rooted at vaultPath, expanding ~.
func NewRepository(vaultPath string) *Repository {
	if strings.HasPrefix(vaultPath, "~") {
		home, _ := os.UserHomeDir()
		vaultPath = filepath.Join(home, vaultPath[1:])
	}
	return &Repository{root: filepath.Clean(vaultPath)}
}

// Root returns the absolute vault root.
func (r *Repository) Root() string {
	return r.root
}

// resolve maps a vault-relative path to an absolute one, rejecting paths
// that escape the vault root.
func (r *Repository) resolve(path string) (string, error) {
	abs := filepath.Join(r.root, filepath.FromSlash(path))
	if abs != r.root && !strings.HasPrefix(abs, r.root+string(filepath.Separator)) {
		return "", fmt.Errorf("path escapes the vault: %s", path)
	}
	return abs, nil
}

// ReadFile returns the content of a vault file.
func (r *Repository) ReadFile(path string) (string, error) {
	abs, err := r.resolve(path)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

// WriteFile writes a vault file, creating parent folders as needed.
func (r *Repository) WriteFile(path, content string) error {
	abs, err := r.resolve(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return fmt.Errorf("creating parent folder for %s: %w", path, err)
	}
	if err := os.WriteFile(abs, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// CreateFolder creates a folder (and any missing parents) in the vault.
func (r *Repository) CreateFolder(path string) error {
	abs, err := r.resolve(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return fmt.Errorf("creating folder %s: %w", path, err)
	}
	return nil
}

// ListFiles lists entries under a vault folder. With recursive set, nested
// files are returned with their vault-relative paths; folders themselves
// are omitted.
func (r *Repository) ListFiles(path string, recursive bool) ([]string, error) {
	abs, err := r.resolve(path)
	if err != nil {
		return nil, err
	}

	if !recursive {
		entries, err := os.ReadDir(abs)
		if err != nil {
			return nil, fmt.Errorf("listing %s: %w", path, err)
		}
		var names []string
		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() {
				name += "/"
			}
			names = append(names, name)
		}
		return names, nil
	}

	var files []string
	err = filepath.WalkDir(abs, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(r.root, p)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", path, err)
	}
	return files, nil
}

// Search scans markdown files under path for a case-insensitive substring
// and returns per-line hits.
func (r *Repository) Search(query, path string) ([]ports.SearchHit, error) {
	abs, err := r.resolve(path)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(query)

	var hits []ports.SearchHit
	err = filepath.WalkDir(abs, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(p) != ".md" {
			return nil
		}

		data, err := os.ReadFile(p)
		if err != nil {
			// Unreadable files are skipped, not fatal.
			return nil
		}
		rel, relErr := filepath.Rel(r.root, p)
		if relErr != nil {
			return relErr
		}
		for i, line := range strings.Split(string(data), "\n") {
			if strings.Contains(strings.ToLower(line), needle) {
				hits = append(hits, ports.SearchHit{
					Path: filepath.ToSlash(rel),
					Line: i + 1,
					Text: strings.TrimSpace(line),
				})
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("searching %s: %w", path, err)
	}
	return hits, nil
}
