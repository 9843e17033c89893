package modules

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/ssp-tools/rnbokit/internal/project"
)

// binaryFixture is deliberately not valid UTF-8 so it exercises the
// skip-binary path.
var binaryFixture = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0xFF, 0xFE, 0x01}

// newTestLayout builds a miniature SSP/XMX tree: a module template with
// placeholder-laden files plus a binary asset, reserved infrastructure
// directories, and a registry file with pre-existing lines.
func newTestLayout(t *testing.T) project.Layout {
	t.Helper()
	root := t.TempDir()

	tpl := filepath.Join(root, "template", "module")
	require.NoError(t, os.MkdirAll(filepath.Join(tpl, "Source"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(tpl, "CMakeLists.txt"),
		[]byte("project(__MOD__ VERSION 1.0)\n# __DESCRIPTION__ by __AUTHOR__\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(tpl, "Source", "Plugin.cpp"),
		[]byte("// __NAME__ (__BRAND__)\nclass __MOD__Processor {};\n// contact: __EMAIL__ __URL__\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(tpl, "Source", "icon.png"), binaryFixture, 0o644))

	modulesDir := filepath.Join(root, "modules")
	require.NoError(t, os.MkdirAll(filepath.Join(modulesDir, "common"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(modulesDir, "inc"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(modulesDir, "CMakeLists.txt"),
		[]byte("# module registry\nadd_subdirectory(common)\n"), 0o644))

	layout, err := project.Locate(root)
	require.NoError(t, err)
	return layout
}

func testOrchestrator(t *testing.T, layout project.Layout) *Orchestrator {
	t.Helper()
	return NewOrchestrator(layout, log.New(io.Discard))
}

func readRegistry(t *testing.T, layout project.Layout) string {
	t.Helper()
	data, err := os.ReadFile(layout.RegistryFile())
	require.NoError(t, err)
	return string(data)
}
