package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/AndroidModLoader/gta3sc/internal/commands"
	"github.com/AndroidModLoader/gta3sc/internal/config"
	"github.com/AndroidModLoader/gta3sc/internal/diag"
	"github.com/AndroidModLoader/gta3sc/internal/driver"
	"github.com/AndroidModLoader/gta3sc/internal/models"
)

var compileCmd = &cobra.Command{
	Use:   "compile [flags] <script.sc>...",
	Short: "Compile script source files",
	Long:  `Compile one or more script source files for the selected target generation, running command and entity resolution with full diagnostics`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCompile,
}

func init() {
	addCompileFlags(compileCmd.Flags())
}

func addCompileFlags(flags *pflag.FlagSet) {
	flags.String("target", "gta3", "target generation (gta3|gtavc|gtasa|none)")
	flags.String("preset", "", "TOML preset file overlaying the target defaults")
	flags.StringArrayP("define", "D", nil, "define a preprocessor symbol (NAME or NAME=VALUE)")
	flags.String("commands-file", "", "TOML command definitions (default: built-in catalog)")
	flags.StringArray("ide", nil, "object definition file to load into the default model table")
	flags.String("dat", "", "level .dat file to load into the level model table")
	flags.String("game-root", ".", "directory that .dat file paths resolve against")
	flags.Bool("model-cache", false, "cache parsed object definition files on disk")
	flags.Bool("fsyntax-only", false, "check syntax and resolution only, suppress code generation")
	flags.Bool("pedantic", false, "enable pedantic diagnostics")
	flags.Bool("guesser", false, "enable guessing passes for incomplete definitions")
	flags.Bool("ui", false, "render interactive progress while compiling")
	flags.Bool("summary", false, "print batch metrics after compilation")
}

func runCompile(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()

	targetName, err := flags.GetString("target")
	if err != nil {
		return err
	}
	target, err := config.ParseTarget(targetName)
	if err != nil {
		return err
	}

	opt := config.Preset(target)
	if presetPath, _ := flags.GetString("preset"); presetPath != "" {
		opt, err = config.LoadPreset(presetPath, opt)
		if err != nil {
			return err
		}
	}

	if v, _ := flags.GetBool("fsyntax-only"); v {
		opt.FSyntaxOnly = true
	}
	if v, _ := flags.GetBool("pedantic"); v {
		opt.Pedantic = true
	}
	if v, _ := flags.GetBool("guesser"); v {
		opt.Guesser = true
	}

	defines, _ := flags.GetStringArray("define")
	for _, def := range defines {
		name, value, found := strings.Cut(def, "=")
		if name == "" {
			return fmt.Errorf("empty define name in %q", def)
		}
		if found {
			opt.DefineValue(name, value)
		} else {
			opt.Define(name)
		}
	}

	var catalog *commands.Catalog
	if defsPath, _ := flags.GetString("commands-file"); defsPath != "" {
		catalog, err = commands.LoadFile(defsPath, target)
	} else {
		catalog, err = commands.DefaultCatalog(target)
	}
	if err != nil {
		return err
	}

	store, err := loadModelTables(flags)
	if err != nil {
		return err
	}

	jobs, _ := cmd.Root().PersistentFlags().GetInt("jobs")
	engine := diag.NewEngine(cmd.ErrOrStderr())

	req := &driver.Request{
		Options: &opt,
		Catalog: catalog,
		Models:  store,
		Engine:  engine,
		Paths:   args,
		Jobs:    jobs,
	}

	var result *driver.BatchResult
	if useUI, _ := flags.GetBool("ui"); useUI && isTerminal(stdoutFile()) {
		result, err = runBatchWithUI(cmd.Context(), "compiling", args, req)
	} else {
		result, err = driver.Run(cmd.Context(), req)
	}
	if err != nil {
		return err
	}

	if showSummary, _ := flags.GetBool("summary"); showSummary {
		fmt.Fprintln(cmd.OutOrStdout(), result.Summary)
		if result.Timings != "" {
			fmt.Fprint(cmd.OutOrStdout(), result.Timings)
		}
	}

	if engine.HasError() {
		return fmt.Errorf("compilation failed with %d error(s)", engine.ErrorCount()+engine.FatalCount())
	}
	return nil
}

// loadModelTables builds the entity store from --ide and --dat inputs.
// Loading happens before the batch starts; the store is read-only after.
func loadModelTables(flags *pflag.FlagSet) (*models.Store, error) {
	store := models.NewStore()

	var cache *models.Cache
	if useCache, _ := flags.GetBool("model-cache"); useCache {
		var err error
		cache, err = models.OpenCache("gta3sc")
		if err != nil {
			return nil, err
		}
	}

	defaultModels := models.NewTable()
	idePaths, _ := flags.GetStringArray("ide")
	for _, path := range idePaths {
		if err := models.LoadIDECached(cache, path, defaultModels); err != nil {
			return nil, err
		}
	}

	var levelModels *models.Table
	if datPath, _ := flags.GetString("dat"); datPath != "" {
		root, _ := flags.GetString("game-root")
		var err error
		levelModels, err = models.LoadDAT(datPath, root)
		if err != nil {
			return nil, err
		}
	}

	store.Setup(defaultModels, levelModels)
	return store, nil
}
