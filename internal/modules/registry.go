package modules

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Registry edits the modules CMakeLists.txt: one add_subdirectory line per
// registered module. Both operations read the whole file, transform the
// line sequence in memory, and write it back atomically (temp file plus
// rename), so a crash leaves either the old or the new file, never a mix.
type Registry struct {
	Path string
}

// Directive returns the inclusion line for id.
func Directive(id string) string {
	return fmt.Sprintf("add_subdirectory(%s)", id)
}

// Add appends the inclusion directive for id as a new line at the end of
// the file. Adding an identifier that is already registered is a no-op.
// Reports whether the file changed.
func (r Registry) Add(id string) (bool, error) {
	lines, mode, err := r.read()
	if err != nil {
		return false, err
	}
	directive := Directive(id)
	for _, line := range lines {
		if strings.TrimSpace(line) == directive {
			return false, nil
		}
	}
	lines = append(lines, directive)
	if err := r.write(lines, mode); err != nil {
		return false, err
	}
	return true, nil
}

// Remove deletes every line whose trimmed content equals the inclusion
// directive for id, leaving the relative order of the remaining lines
// unchanged. Matching is exact on the trimmed line, never substring.
// Reports whether any line was removed; removing an absent identifier is a
// safe no-op.
func (r Registry) Remove(id string) (bool, error) {
	lines, mode, err := r.read()
	if err != nil {
		return false, err
	}
	directive := Directive(id)
	kept := lines[:0]
	removed := false
	for _, line := range lines {
		if strings.TrimSpace(line) == directive {
			removed = true
			continue
		}
		kept = append(kept, line)
	}
	if !removed {
		return false, nil
	}
	if err := r.write(kept, mode); err != nil {
		return false, err
	}
	return true, nil
}

// Contains reports whether id is currently registered.
func (r Registry) Contains(id string) (bool, error) {
	lines, _, err := r.read()
	if err != nil {
		return false, err
	}
	directive := Directive(id)
	for _, line := range lines {
		if strings.TrimSpace(line) == directive {
			return true, nil
		}
	}
	return false, nil
}

func (r Registry) read() ([]string, fs.FileMode, error) {
	info, err := os.Stat(r.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, fmt.Errorf("registry file %s not found: %w", r.Path, err)
		}
		return nil, 0, fmt.Errorf("failed to stat registry %s: %w", r.Path, err)
	}
	data, err := os.ReadFile(r.Path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read registry %s: %w", r.Path, err)
	}
	lines := strings.Split(string(data), "\n")
	// A trailing newline produces one empty trailing element; drop it so the
	// file round-trips unchanged.
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines, info.Mode().Perm(), nil
}

func (r Registry) write(lines []string, mode fs.FileMode) error {
	dir := filepath.Dir(r.Path)
	tmp, err := os.CreateTemp(dir, ".cmakelists-*")
	if err != nil {
		return fmt.Errorf("failed to create temp registry file: %w", err)
	}
	tmpName := tmp.Name()
	content := ""
	if len(lines) > 0 {
		content = strings.Join(lines, "\n") + "\n"
	}
	if _, err := tmp.WriteString(content); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write registry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write registry: %w", err)
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to set registry mode: %w", err)
	}
	if err := os.Rename(tmpName, r.Path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace registry %s: %w", r.Path, err)
	}
	return nil
}
