package rnbokit

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ssp-tools/rnbokit/internal/app"
	"github.com/ssp-tools/rnbokit/internal/modules"
	"github.com/ssp-tools/rnbokit/internal/project"
	"github.com/ssp-tools/rnbokit/internal/tui"
	"github.com/ssp-tools/rnbokit/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "rnbokit",
	Short: "rnbokit: RNBO module scaffolding for Percussa SSP/XMX build trees",
	Long: "rnbokit creates and removes RNBO modules inside an SSP/XMX build tree: " +
		"it instantiates the module template with placeholder substitution and keeps " +
		"modules/CMakeLists.txt in sync with the module directories on disk.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if lvl, err := log.ParseLevel(viper.GetString("log_level")); err == nil {
			log.SetLevel(lvl)
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	// Persistent flags (available to all subcommands).
	rootCmd.PersistentFlags().String("project", ".", "Path to the SSP/XMX project root")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug|info|warn|error)")

	// Bind flags to Viper.
	_ = viper.BindPFlag("project", rootCmd.PersistentFlags().Lookup("project"))
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))

	// Env support: RNBOKIT_PROJECT, RNBOKIT_LOG_LEVEL.
	viper.SetEnvPrefix("RNBOKIT")
	viper.AutomaticEnv()

	// Register subcommands.
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(fixturesCmd)
	rootCmd.AddCommand(versionCmd)
}

// Helper to create app context
func createAppContext() (app.Context, error) {
	cfg := app.MustLoadConfigFromViper()
	layout, err := project.Locate(cfg.Project)
	if err != nil {
		return app.Context{}, err
	}
	return app.Context{
		Ctx:    context.Background(),
		Config: cfg,
		Layout: layout,
		Log:    log.Default(),
		Now:    time.Now(),
	}, nil
}

// `create` subcommand: scaffold a new module from the template.
var createCmd = &cobra.Command{
	Use:   "create [ID]",
	Short: "Create a new RNBO module from the template",
	Long: `Create a new RNBO module with the given 4-character identifier.

The identifier becomes both the module directory name and the generated
class name, so it must be exactly 4 alphanumeric characters, uppercase,
starting with a letter.

Examples:
  rnbokit create                      # interactive prompts
  rnbokit create VERB --description "Reverb Effect"
  rnbokit create TEST --name "Test Module" --author "Your Name"`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appCtx, err := createAppContext()
		if err != nil {
			return err
		}

		var info modules.ModuleInfo
		if len(args) == 0 {
			collected, ok, err := tui.PromptModuleInfo()
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("Cancelled.")
				return nil
			}
			info = collected
		} else {
			info.ID = args[0]
			info.Name, _ = cmd.Flags().GetString("name")
			info.Description, _ = cmd.Flags().GetString("description")
			info.Brand, _ = cmd.Flags().GetString("brand")
			info.Author, _ = cmd.Flags().GetString("author")
			info.Email, _ = cmd.Flags().GetString("email")
			info.Website, _ = cmd.Flags().GetString("website")
		}

		orch := modules.NewOrchestrator(appCtx.Layout, appCtx.Log)
		res, err := orch.Create(info)
		if err != nil {
			return err
		}
		printCreateSuccess(res)
		return nil
	},
}

func init() {
	createCmd.Flags().String("name", "", "Module display name (default: module ID)")
	createCmd.Flags().String("description", "", "Module description (default: module name)")
	createCmd.Flags().String("brand", "", "Brand/Company name")
	createCmd.Flags().String("author", "", "Author name")
	createCmd.Flags().String("email", "", "Author email")
	createCmd.Flags().String("website", "", "Author website")
}

func printCreateSuccess(res modules.CreateResult) {
	fmt.Println(titleStyle.Render("Module created successfully"))
	fmt.Printf("%s Path: %s\n", infoIcon, pathStyle.Render(res.Dir))
	for _, f := range res.Substitution.Failed {
		fmt.Printf("%s Could not process %s: %v\n", warnIcon, f.Path, f.Err)
	}
	fmt.Println()
	fmt.Printf("%s Next steps:\n", infoIcon)
	fmt.Printf("   1. Export your RNBO code to %s\n", pathStyle.Render(res.ExportDir))
	fmt.Println("   2. Build the module:")
	fmt.Printf("      %s\n", cmdStyle.Render("cmake --fresh -B build.ssp -DCMAKE_BUILD_TYPE=Release -DCMAKE_TOOLCHAIN_FILE=./xcSSP.cmake && cmake --build build.ssp"))
	fmt.Printf("      %s\n", cmdStyle.Render("cmake --fresh -B build.xmx -DCMAKE_BUILD_TYPE=Release -DCMAKE_TOOLCHAIN_FILE=./xcXMX.cmake && cmake --build build.xmx"))
	fmt.Printf("      %s\n", cmdStyle.Render("cmake --fresh -B build && cmake --build build"))
}

// `remove` subcommand: delete a module directory and its registry line.
var removeCmd = &cobra.Command{
	Use:   "remove [ID]",
	Short: "Remove an RNBO module (directory and registry entry)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appCtx, err := createAppContext()
		if err != nil {
			return err
		}
		force, _ := cmd.Flags().GetBool("force")
		listOnly, _ := cmd.Flags().GetBool("list")

		store := modules.Store{Root: appCtx.Layout.ModulesDir()}
		available, err := store.List()
		if err != nil {
			return err
		}

		if listOnly {
			fmt.Println("Available modules:")
			if len(available) == 0 {
				fmt.Println("  (no modules found)")
			}
			for _, id := range available {
				fmt.Printf("  - %s\n", id)
			}
			return nil
		}

		var id string
		if len(args) == 1 {
			id = args[0]
		} else {
			if len(available) == 0 {
				fmt.Println("No modules found to remove.")
				return nil
			}
			picked, ok, err := tui.PickModule(available)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("Cancelled.")
				return nil
			}
			id = picked
		}

		dir, err := store.Resolve(id)
		if err != nil {
			if len(available) > 0 {
				return fmt.Errorf("%w (available: %v)", err, available)
			}
			return err
		}

		if !force {
			ok, err := tui.ConfirmRemoval(id, dir)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("Removal cancelled.")
				return nil
			}
		}

		orch := modules.NewOrchestrator(appCtx.Layout, appCtx.Log)
		out, removeErr := orch.Remove(id)
		if removeErr != nil {
			printRemoveResidual(out)
			return removeErr
		}
		fmt.Printf("%s Module %s removed\n", successIcon, id)
		if !out.RegistryRemoved {
			fmt.Printf("%s Module was not listed in the registry\n", warnIcon)
		}
		fmt.Println()
		fmt.Println("You may want to clean your build directories:")
		fmt.Printf("   %s\n", cmdStyle.Render("rm -rf build*/"))
		return nil
	},
}

func init() {
	removeCmd.Flags().Bool("force", false, "Remove without confirmation")
	removeCmd.Flags().Bool("list", false, "List available modules and exit")
}

// printRemoveResidual tells the operator exactly what was and was not
// removed after a partial failure.
func printRemoveResidual(out modules.RemoveOutcome) {
	if out.RegistryErr != nil {
		fmt.Printf("%s Registry entry NOT removed: %v\n", failIcon, out.RegistryErr)
	} else {
		fmt.Printf("%s Registry entry removed\n", successIcon)
	}
	if out.DirErr != nil {
		fmt.Printf("%s Module directory NOT removed: %v\n", failIcon, out.DirErr)
	} else {
		fmt.Printf("%s Module directory removed\n", successIcon)
	}
	fmt.Printf("%s Please verify the module tree manually.\n", warnIcon)
}

// `list` subcommand: enumerate the modules on disk.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List modules currently present in the build tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		appCtx, err := createAppContext()
		if err != nil {
			return err
		}
		store := modules.Store{Root: appCtx.Layout.ModulesDir()}
		ids, err := store.List()
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			fmt.Println("No modules found.")
			return nil
		}
		for _, id := range ids {
			fmt.Printf("  - %s\n", id)
		}
		return nil
	},
}

// demoInfo is the fixed configuration of the DEMO module.
var demoInfo = modules.ModuleInfo{
	ID:          "DEMO",
	Name:        "Demo Module",
	Description: "Demo module with example RNBO patch",
	Brand:       "Example",
	Author:      "Example Team",
	Email:       "info@example.com",
	Website:     "https://example.com",
}

// `demo` subcommand: create the DEMO module and populate its export
// directory with the example patch.
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Create a DEMO module with example RNBO code",
	RunE: func(cmd *cobra.Command, args []string) error {
		appCtx, err := createAppContext()
		if err != nil {
			return err
		}
		force, _ := cmd.Flags().GetBool("force")

		store := modules.Store{Root: appCtx.Layout.ModulesDir()}
		orch := modules.NewOrchestrator(appCtx.Layout, appCtx.Log)

		if _, err := store.Resolve(demoInfo.ID); err == nil {
			if !force {
				return fmt.Errorf("DEMO module already exists, use --force to recreate it")
			}
			if _, err := orch.Remove(demoInfo.ID); err != nil {
				return err
			}
		}

		res, err := orch.Create(demoInfo)
		if err != nil {
			return err
		}
		if err := orch.PopulateDemo(demoInfo.ID, appCtx.Layout.DemoAssetDir()); err != nil {
			return fmt.Errorf("DEMO module was created but demo code could not be copied: %w", err)
		}
		fmt.Printf("%s DEMO module created with example RNBO code\n", successIcon)
		fmt.Printf("%s Path: %s\n", infoIcon, pathStyle.Render(res.Dir))
		fmt.Printf("%s Remove it when done: %s\n", infoIcon, cmdStyle.Render("rnbokit remove DEMO --force"))
		return nil
	},
}

func init() {
	demoCmd.Flags().Bool("force", false, "Remove an existing DEMO module and recreate it")
}

// `fixtures` subcommand group: bulk create/remove for test scaffolding.
var fixturesCmd = &cobra.Command{
	Use:   "fixtures",
	Short: "Create or remove development fixture modules in bulk",
}

var fixturesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create the fixture module set (built-in TEST/VERB or a YAML file)",
	RunE: func(cmd *cobra.Command, args []string) error {
		appCtx, err := createAppContext()
		if err != nil {
			return err
		}
		file, _ := cmd.Flags().GetString("file")

		set := modules.DefaultFixtureSet()
		if file != "" {
			set, err = modules.LoadFixtureSet(file)
			if err != nil {
				return err
			}
		}

		orch := modules.NewOrchestrator(appCtx.Layout, appCtx.Log)
		res := modules.Batch{Orch: orch}.CreateFixtureSet(set)
		fmt.Printf("Fixture creation complete: %d/%d modules created successfully\n", res.Succeeded, res.Total)
		if !res.AllSucceeded() {
			return fmt.Errorf("%d of %d fixture modules could not be created", res.Total-res.Succeeded, res.Total)
		}
		return nil
	},
}

var fixturesCleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove every module in the build tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		appCtx, err := createAppContext()
		if err != nil {
			return err
		}
		force, _ := cmd.Flags().GetBool("force")

		store := modules.Store{Root: appCtx.Layout.ModulesDir()}
		ids, err := store.List()
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			fmt.Println("No modules found to remove.")
			return nil
		}

		if !force {
			ok, err := tui.Confirm(fmt.Sprintf(
				"WARNING: this will permanently delete ALL %d modules: %v\nThis action cannot be undone!\n\nRemove all modules?",
				len(ids), ids))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("Removal cancelled.")
				return nil
			}
		}

		orch := modules.NewOrchestrator(appCtx.Layout, appCtx.Log)
		res := modules.Batch{Orch: orch}.RemoveAll(ids)
		fmt.Printf("Removal complete: %d/%d modules removed successfully\n", res.Succeeded, res.Total)
		if !res.AllSucceeded() {
			return fmt.Errorf("%d of %d modules could not be removed", res.Total-res.Succeeded, res.Total)
		}
		return nil
	},
}

func init() {
	fixturesCreateCmd.Flags().String("file", "", "YAML fixture set file (default: built-in TEST/VERB set)")
	fixturesCleanCmd.Flags().Bool("force", false, "Remove all modules without confirmation")
	fixturesCmd.AddCommand(fixturesCreateCmd)
	fixturesCmd.AddCommand(fixturesCleanCmd)
}

// `version` subcommand.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.String())
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
