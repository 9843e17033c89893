package project

import (
	"fmt"
	"os"
	"path/filepath"
)

// ExportSuffix is appended to a module identifier to form the name of the
// nested directory where exported RNBO code lands.
const ExportSuffix = "-rnbo"

// Layout points at the pieces of an SSP/XMX build tree the tool touches.
type Layout struct {
	Root string
}

// Path joins the project root with provided parts.
func (l Layout) Path(parts ...string) string {
	all := append([]string{l.Root}, parts...)
	return filepath.Join(all...)
}

// TemplateDir is the module creation template.
func (l Layout) TemplateDir() string {
	return l.Path("template", "module")
}

// DemoAssetDir holds the example RNBO patch used to populate the DEMO module.
func (l Layout) DemoAssetDir() string {
	return l.Path("template", "Demo", "Demo-rnbo")
}

// ModulesDir is the root under which every module directory lives.
func (l Layout) ModulesDir() string {
	return l.Path("modules")
}

// RegistryFile is the CMakeLists.txt listing which modules are built.
func (l Layout) RegistryFile() string {
	return l.Path("modules", "CMakeLists.txt")
}

// ModuleDir returns the directory for the given module identifier.
func (l Layout) ModuleDir(id string) string {
	return l.Path("modules", id)
}

// ExportDir returns the nested RNBO export directory for the given module.
func (l Layout) ExportDir(id string) string {
	return l.Path("modules", id, id+ExportSuffix)
}

// Locate resolves root to an absolute path and validates that it contains
// the directories the lifecycle operations depend on.
func Locate(root string) (Layout, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return Layout{}, fmt.Errorf("failed to resolve project root %s: %w", root, err)
	}
	l := Layout{Root: abs}
	if err := requireDir(l.TemplateDir(), "template directory"); err != nil {
		return l, err
	}
	if err := requireDir(l.ModulesDir(), "modules directory"); err != nil {
		return l, err
	}
	return l, nil
}

func requireDir(path, what string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%s %s not found", what, path)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s %s is not a directory", what, path)
	}
	return nil
}
