package modules

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstantiate(t *testing.T) {
	t.Parallel()
	layout := newTestLayout(t)
	attrs := ModuleInfo{ID: "TEST", Name: "Test Module", Author: "Dev"}.Attributes()

	dir, rep, err := Instantiate(layout, "TEST", attrs)
	require.NoError(t, err)
	assert.Equal(t, layout.ModuleDir("TEST"), dir)

	// Export directory created, initially empty.
	info, err := os.Stat(layout.ExportDir("TEST"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.True(t, strings.HasSuffix(layout.ExportDir("TEST"), "TEST-rnbo"))

	// Placeholders replaced throughout the copy.
	cmake, err := os.ReadFile(filepath.Join(dir, "CMakeLists.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(cmake), "project(TEST VERSION 1.0)")
	assert.NotContains(t, string(cmake), TokenMod)

	src, err := os.ReadFile(filepath.Join(dir, "Source", "Plugin.cpp"))
	require.NoError(t, err)
	assert.Contains(t, string(src), "class TESTProcessor")
	assert.Contains(t, string(src), "Test Module")

	// Binary asset copied byte for byte and reported as skipped.
	icon, err := os.ReadFile(filepath.Join(dir, "Source", "icon.png"))
	require.NoError(t, err)
	assert.Equal(t, binaryFixture, icon)
	require.Len(t, rep.Skipped, 1)

	// The template itself is never mutated.
	tplSrc, err := os.ReadFile(layout.Path("template", "module", "Source", "Plugin.cpp"))
	require.NoError(t, err)
	assert.Contains(t, string(tplSrc), TokenName)
}

func TestInstantiateRefusesExistingTarget(t *testing.T) {
	t.Parallel()
	layout := newTestLayout(t)
	require.NoError(t, os.MkdirAll(layout.ModuleDir("TEST"), 0o755))

	_, _, err := Instantiate(layout, "TEST", ModuleInfo{ID: "TEST"}.Attributes())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAlreadyExists))
}

func TestInstantiatePreservesModTimes(t *testing.T) {
	t.Parallel()
	layout := newTestLayout(t)
	// The binary asset is never rewritten by substitution, so its copy must
	// keep the template's modification time.
	tplIcon := layout.Path("template", "module", "Source", "icon.png")
	stamp := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(tplIcon, time.Time{}, stamp))

	dir, _, err := Instantiate(layout, "TEST", ModuleInfo{ID: "TEST"}.Attributes())
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(dir, "Source", "icon.png"))
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(stamp), "expected mtime %v, got %v", stamp, info.ModTime())
}

func TestInstantiatePreservesFileModes(t *testing.T) {
	t.Parallel()
	layout := newTestLayout(t)
	script := layout.Path("template", "module", "build.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\necho __MOD__\n"), 0o755))

	dir, _, err := Instantiate(layout, "TEST", ModuleInfo{ID: "TEST"}.Attributes())
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(dir, "build.sh"))
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0o755), info.Mode().Perm())
}
