package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocate(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "template", "module"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "modules"), 0o755))

	layout, err := Locate(root)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "modules", "CMakeLists.txt"), layout.RegistryFile())
	assert.Equal(t, filepath.Join(root, "modules", "VERB"), layout.ModuleDir("VERB"))
	assert.Equal(t, filepath.Join(root, "modules", "VERB", "VERB-rnbo"), layout.ExportDir("VERB"))
	assert.Equal(t, filepath.Join(root, "template", "Demo", "Demo-rnbo"), layout.DemoAssetDir())
}

func TestLocateMissingTemplate(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "modules"), 0o755))

	_, err := Locate(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "template directory")
}

func TestLocateMissingModulesDir(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "template", "module"), 0o755))

	_, err := Locate(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "modules directory")
}
