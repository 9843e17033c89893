package modules

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// reservedNames are top-level entries under the modules root that belong to
// the build infrastructure and must never be treated as modules.
var reservedNames = map[string]struct{}{
	"common": {},
	"inc":    {},
	".git":   {},
}

// Store enumerates the module directories on disk. The filesystem is the
// source of truth; nothing is cached.
type Store struct {
	Root string
}

// List returns the identifiers of all module directories under the modules
// root, sorted, excluding reserved infrastructure directories.
func (s Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to read modules directory %s: %w", s.Root, err)
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, reserved := reservedNames[e.Name()]; reserved {
			continue
		}
		out = append(out, e.Name())
	}
	sort.Strings(out)
	return out, nil
}

// Resolve maps a module identifier to its directory path. Reserved names
// never resolve, so infrastructure directories cannot be offered for
// removal.
func (s Store) Resolve(id string) (string, error) {
	if _, reserved := reservedNames[id]; reserved {
		return "", fmt.Errorf("%s is a reserved directory: %w", id, ErrNotFound)
	}
	dir := filepath.Join(s.Root, id)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("module %s not found in %s: %w", id, s.Root, ErrNotFound)
	}
	return dir, nil
}
