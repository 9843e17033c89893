package modules

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/ssp-tools/rnbokit/internal/project"
)

// Orchestrator drives module create and remove against a project layout.
// Operations are synchronous and single-operator; concurrent runs against
// the same tree are unsupported.
type Orchestrator struct {
	Layout project.Layout
	Log    *log.Logger
}

// NewOrchestrator builds an orchestrator; a nil logger falls back to the
// package default.
func NewOrchestrator(layout project.Layout, logger *log.Logger) *Orchestrator {
	if logger == nil {
		logger = log.Default()
	}
	return &Orchestrator{Layout: layout, Log: logger}
}

func (o *Orchestrator) store() Store {
	return Store{Root: o.Layout.ModulesDir()}
}

func (o *Orchestrator) registry() Registry {
	return Registry{Path: o.Layout.RegistryFile()}
}

// CreateResult reports what a successful create produced.
type CreateResult struct {
	Dir             string
	ExportDir       string
	Substitution    SubstitutionReport
	RegistryChanged bool
}

// Create scaffolds a new module: validate the identifier, instantiate the
// template, register the module in the build. The sequence aborts on the
// first failure and completed steps are not rolled back; the returned error
// names the step that failed so the operator can clean up.
func (o *Orchestrator) Create(info ModuleInfo) (CreateResult, error) {
	var res CreateResult
	if err := ValidateID(info.ID); err != nil {
		return res, err
	}
	attrs := info.Attributes()

	o.Log.Debug("instantiating template", "module", info.ID, "template", o.Layout.TemplateDir())
	dir, rep, err := Instantiate(o.Layout, info.ID, attrs)
	if err != nil {
		return res, err
	}
	res.Dir = dir
	res.ExportDir = o.Layout.ExportDir(info.ID)
	res.Substitution = rep
	for _, p := range rep.Skipped {
		o.Log.Debug("skipped binary file", "file", p)
	}
	for _, f := range rep.Failed {
		o.Log.Warn("substitution failed, file left as copied", "file", f.Path, "err", f.Err)
	}

	changed, err := o.registry().Add(info.ID)
	if err != nil {
		return res, fmt.Errorf("module directory %s was created but registration failed, verify the tree manually: %w", dir, err)
	}
	res.RegistryChanged = changed
	if !changed {
		o.Log.Info("module already present in registry", "module", info.ID)
	}
	o.Log.Info("module created", "module", info.ID, "dir", dir)
	return res, nil
}

// RemoveOutcome reports which of the two removal steps succeeded, so a
// partial removal is distinguishable from total success or total failure.
type RemoveOutcome struct {
	Dir             string
	RegistryRemoved bool
	RegistryErr     error
	DirRemoved      bool
	DirErr          error
}

// Success reports whether both steps completed without error.
func (out RemoveOutcome) Success() bool {
	return out.RegistryErr == nil && out.DirErr == nil
}

// Partial reports whether exactly one of the two steps failed.
func (out RemoveOutcome) Partial() bool {
	return !out.Success() && (out.RegistryErr == nil || out.DirErr == nil)
}

// Remove deletes a module's registry line and its directory. The registry
// edit runs first because rewriting a text file is the lower-risk mutation;
// the directory delete is attempted even when the registry edit fails.
// Removing an unknown identifier returns ErrNotFound without mutating
// anything.
func (o *Orchestrator) Remove(id string) (RemoveOutcome, error) {
	var out RemoveOutcome
	dir, err := o.store().Resolve(id)
	if err != nil {
		return out, err
	}
	out.Dir = dir

	removed, err := o.registry().Remove(id)
	if err != nil {
		out.RegistryErr = err
		o.Log.Error("failed to update registry", "module", id, "err", err)
	} else {
		out.RegistryRemoved = removed
		if !removed {
			o.Log.Warn("module was not registered", "module", id, "registry", o.Layout.RegistryFile())
		}
	}

	o.Log.Debug("removing module directory", "dir", dir)
	if err := os.RemoveAll(dir); err != nil {
		out.DirErr = fmt.Errorf("failed to remove directory %s: %w", dir, err)
		o.Log.Error("failed to remove module directory", "module", id, "err", err)
	} else {
		out.DirRemoved = true
	}

	if out.Success() {
		o.Log.Info("module removed", "module", id)
		return out, nil
	}
	var failed []string
	if out.RegistryErr != nil {
		failed = append(failed, "registry: "+out.RegistryErr.Error())
	}
	if out.DirErr != nil {
		failed = append(failed, "directory: "+out.DirErr.Error())
	}
	return out, fmt.Errorf("module %s was only partially removed (%s), check %s and %s manually",
		id, strings.Join(failed, "; "), dir, o.Layout.RegistryFile())
}

// PopulateDemo copies files and subdirectories from a secondary asset tree
// into the module's export directory. An existing subdirectory with the
// same name is replaced wholesale; plain files are overwritten.
func (o *Orchestrator) PopulateDemo(id, srcDir string) error {
	info, err := os.Stat(srcDir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("asset directory %s not found", srcDir)
	}
	exportDir := o.Layout.ExportDir(id)
	if _, err := os.Stat(exportDir); err != nil {
		return fmt.Errorf("export directory %s not found, create the module first", exportDir)
	}

	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return fmt.Errorf("failed to read asset directory %s: %w", srcDir, err)
	}
	for _, e := range entries {
		src := filepath.Join(srcDir, e.Name())
		dst := filepath.Join(exportDir, e.Name())
		switch {
		case e.IsDir():
			if err := os.RemoveAll(dst); err != nil {
				return fmt.Errorf("failed to replace %s: %w", dst, err)
			}
			if err := copyTree(src, dst); err != nil {
				return fmt.Errorf("failed to copy %s: %w", e.Name(), err)
			}
		case e.Type().IsRegular():
			fi, err := e.Info()
			if err != nil {
				return err
			}
			if err := copyFile(src, dst, fi.Mode().Perm()); err != nil {
				return fmt.Errorf("failed to copy %s: %w", e.Name(), err)
			}
		}
		o.Log.Debug("copied demo asset", "name", e.Name())
	}
	return nil
}
