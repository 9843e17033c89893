package modules

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T, content string) Registry {
	t.Helper()
	path := filepath.Join(t.TempDir(), "CMakeLists.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return Registry{Path: path}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRegistryAdd(t *testing.T) {
	t.Parallel()
	r := newTestRegistry(t, "# registry\nadd_subdirectory(common)\n")

	changed, err := r.Add("TEST")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "# registry\nadd_subdirectory(common)\nadd_subdirectory(TEST)\n", readFile(t, r.Path))
}

func TestRegistryAddIdempotent(t *testing.T) {
	t.Parallel()
	r := newTestRegistry(t, "")

	changed, err := r.Add("TEST")
	require.NoError(t, err)
	assert.True(t, changed)
	before := readFile(t, r.Path)

	changed, err = r.Add("TEST")
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, before, readFile(t, r.Path))
	assert.Equal(t, 1, strings.Count(readFile(t, r.Path), Directive("TEST")))
}

func TestRegistryRemoveExactMatchOnly(t *testing.T) {
	t.Parallel()
	r := newTestRegistry(t, strings.Join([]string{
		"# registry",
		"add_subdirectory(TEST)",
		"add_subdirectory(TESTX)",
		"add_subdirectory(VERB)",
	}, "\n")+"\n")

	removed, err := r.Remove("TEST")
	require.NoError(t, err)
	assert.True(t, removed)
	// The TESTX line contains TEST as a substring and must survive, in its
	// original position.
	assert.Equal(t, "# registry\nadd_subdirectory(TESTX)\nadd_subdirectory(VERB)\n", readFile(t, r.Path))
}

func TestRegistryRemoveTrimsWhitespace(t *testing.T) {
	t.Parallel()
	r := newTestRegistry(t, "  add_subdirectory(TEST)  \nadd_subdirectory(VERB)\n")

	removed, err := r.Remove("TEST")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, "add_subdirectory(VERB)\n", readFile(t, r.Path))
}

func TestRegistryRemoveAbsentIsNoop(t *testing.T) {
	t.Parallel()
	r := newTestRegistry(t, "add_subdirectory(VERB)\n")
	before := readFile(t, r.Path)

	removed, err := r.Remove("TEST")
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, before, readFile(t, r.Path))
}

func TestRegistryMissingFile(t *testing.T) {
	t.Parallel()
	r := Registry{Path: filepath.Join(t.TempDir(), "missing", "CMakeLists.txt")}

	_, err := r.Add("TEST")
	assert.ErrorContains(t, err, "not found")
	_, err = r.Remove("TEST")
	assert.ErrorContains(t, err, "not found")
}

func TestRegistryUnreadableParent(t *testing.T) {
	t.Parallel()
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
	dir := filepath.Join(t.TempDir(), "locked")
	require.NoError(t, os.Mkdir(dir, 0o755))
	r := Registry{Path: filepath.Join(dir, "CMakeLists.txt")}
	require.NoError(t, os.WriteFile(r.Path, []byte("add_subdirectory(TEST)\n"), 0o644))
	require.NoError(t, os.Chmod(dir, 0o000))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	// A permission failure is not a missing file and must not be reported
	// as one.
	_, err := r.Add("VERB")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "not found")
	assert.Contains(t, err.Error(), "failed to stat registry")
}

func TestRegistryContains(t *testing.T) {
	t.Parallel()
	r := newTestRegistry(t, "add_subdirectory(TEST)\n")

	ok, err := r.Contains("TEST")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.Contains("VERB")
	require.NoError(t, err)
	assert.False(t, ok)
}
