package modules

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/ssp-tools/rnbokit/internal/project"
)

// Instantiate copies the module template to modules/<id>, creates the RNBO
// export directory, then substitutes every placeholder in the copy. The
// target directory must not already exist. Returns the module directory and
// the substitution report.
//
// The copy is not transactional: if it fails partway a partial tree may
// remain on disk for the caller to clean up.
func Instantiate(layout project.Layout, id string, attrs AttributeSet) (string, SubstitutionReport, error) {
	target := layout.ModuleDir(id)
	if _, err := os.Stat(target); err == nil {
		return "", SubstitutionReport{}, fmt.Errorf("target directory %s: %w", target, ErrAlreadyExists)
	}
	if err := copyTree(layout.TemplateDir(), target); err != nil {
		return "", SubstitutionReport{}, fmt.Errorf("failed to copy template to %s: %w", target, err)
	}
	if err := os.MkdirAll(layout.ExportDir(id), 0o755); err != nil {
		return "", SubstitutionReport{}, fmt.Errorf("failed to create export directory: %w", err)
	}
	rep, err := Substitute(target, attrs)
	if err != nil {
		return "", rep, fmt.Errorf("failed to substitute placeholders under %s: %w", target, err)
	}
	return target, rep, nil
}

// copyTree recursively copies the directory src to dst, preserving file
// modes, modification times and directory structure. Irregular files
// (sockets, symlinks) are skipped.
func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		info, err := d.Info()
		if err != nil {
			return err
		}
		if d.IsDir() {
			return os.MkdirAll(target, info.Mode().Perm())
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if err := copyFile(path, target, info.Mode().Perm()); err != nil {
			return err
		}
		// A zero access time leaves it unchanged.
		return os.Chtimes(target, time.Time{}, info.ModTime())
	})
}

func copyFile(src, dst string, perm fs.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
