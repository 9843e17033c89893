package modules

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// SubstitutionReport records the per-file outcome of a substitution pass.
// Iteration order across files is unspecified.
type SubstitutionReport struct {
	Replaced []string    // files rewritten with at least one token replaced
	Skipped  []string    // non-text files left byte-identical
	Failed   []FileError // files that could not be read or written
}

// FileError ties a substitution failure to the file it happened on.
type FileError struct {
	Path string
	Err  error
}

var errNotText = errors.New("not a text file")

// Substitute walks every regular file under root and replaces each
// placeholder token with its mapped value, plain substring replacement.
// Files that do not decode as UTF-8 text are skipped so binary assets
// survive unmodified. A read or write failure on one file is recorded and
// the walk continues with the rest.
func Substitute(root string, attrs AttributeSet) (SubstitutionReport, error) {
	var rep SubstitutionReport
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		changed, err := substituteFile(path, attrs)
		switch {
		case errors.Is(err, errNotText):
			rep.Skipped = append(rep.Skipped, path)
		case err != nil:
			rep.Failed = append(rep.Failed, FileError{Path: path, Err: err})
		case changed:
			rep.Replaced = append(rep.Replaced, path)
		}
		return nil
	})
	return rep, err
}

// substituteFile rewrites a single file in place. Reports whether anything
// was replaced; returns errNotText for files that are not UTF-8 text.
func substituteFile(path string, attrs AttributeSet) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	if !utf8.Valid(data) || bytes.IndexByte(data, 0) >= 0 {
		return false, errNotText
	}
	content := string(data)
	for _, a := range attrs {
		content = strings.ReplaceAll(content, a.Token, a.Value)
	}
	if content == string(data) {
		return false, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	if err := os.WriteFile(path, []byte(content), info.Mode().Perm()); err != nil {
		return false, err
	}
	return true, nil
}
