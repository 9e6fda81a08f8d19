// Package cli provides the command line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/temirov/tree/internal/config"
	"github.com/temirov/tree/internal/gitignore"
	"github.com/temirov/tree/internal/output"
	"github.com/temirov/tree/internal/services/clipboard"
	"github.com/temirov/tree/internal/types"
	"github.com/temirov/tree/internal/utils"
	"github.com/temirov/tree/internal/walker"
)

const (
	allFlagName        = "all"
	allFlagShorthand   = "a"
	dirsOnlyFlagName   = "dirs-only"
	dirsOnlyShorthand  = "d"
	noIndentFlagName   = "no-indent"
	noIndentShorthand  = "i"
	fullPathFlagName   = "full-path"
	fullPathShorthand  = "f"
	gitignoreFlagName  = "gitignore"
	gitignoreShorthand = "g"
	levelFlagName      = "level"
	levelShorthand     = "L"
	outputFlagName     = "output"
	outputShorthand    = "o"
	formatFlagName     = "format"
	colorFlagName      = "color"
	configFlagName     = "config"
	initFlagName       = "init"
	forceFlagName      = "force"
	verboseFlagName    = "verbose"
	versionFlagName    = "version"

	allFlagDescription       = "show hidden entries"
	dirsOnlyFlagDescription  = "list directories only"
	noIndentFlagDescription  = "do not print indentation lines"
	fullPathFlagDescription  = "print the absolute path of every entry"
	gitignoreFlagDescription = "apply the root .gitignore and hide the root .git directory"
	levelFlagDescription     = "descend at most this many levels (must be at least 1)"
	outputFlagDescription    = "write the tree to this file instead of standard output"
	formatFlagDescription    = "output format: raw, json, xml or yaml"
	colorFlagDescription     = "colorize raw output: auto, always or never"
	configFlagDescription    = "read configuration from this file instead of ./" + utils.ConfigFileName
	initFlagDescription      = "write a default configuration file (local or global) and exit"
	forceFlagDescription     = "overwrite an existing configuration file with --init"
	verboseFlagDescription   = "log skipped entries and filter decisions"
	versionFlagDescription   = "display application version"

	rootUse              = "tree [paths...]"
	rootShortDescription = "display a directory tree"
	rootLongDescription  = `tree recursively lists directories and files as an indented tree.
Entries are sorted by name. Hidden entries are skipped unless --all is given,
and --gitignore applies the .gitignore found in each root.
Use --format to select raw, json, xml or yaml output.`
	rootUsageExample = `  # Show two levels of the current directory
  tree -L 2

  # Respect .gitignore and write the result to a file
  tree -g -o tree.txt ./project

  # Emit JSON and copy it to the clipboard
  tree --format json --copy .`

	defaultPath               = "."
	versionTemplate           = "tree version: %s\n"
	outputSuccessMessage      = "Tree output generated successfully."
	initSuccessFormat         = "Configuration written to %s\n"
	logMessageGitignoreFailed = "unable to load .gitignore"
	logMessageSkippedLine     = "skipping malformed .gitignore line"
	logFieldPath              = "path"
	logFieldLine              = "line"
	logFieldText              = "text"

	errorInvalidLevelFormat        = "invalid level %d: must be at least 1"
	errorInvalidConfigDepthFormat  = "invalid max_depth %d in configuration: must not be negative"
	errorInvalidFormatFormat       = "invalid format %q: expected raw, json, xml or yaml"
	errorInvalidColorFormat        = "invalid color mode %q: expected auto, always or never"
	errorWorkingDirectoryFormat    = "unable to determine working directory: %w"
	errorLoadConfigurationFormat   = "load configuration: %w"
	errorLoggerFormat              = "create verbose logger: %w"
	errorCloseOutputFormat         = "close %s: %w"
	errorInitializeConfigFormat    = "initialize configuration: %w"
	errorUnexpectedArgumentsFormat = "--%s does not accept paths: %s"
)

// Dependencies are the collaborators of the command. Zero values are replaced
// with the operating-system implementations.
type Dependencies struct {
	FileSystem       afero.Fs
	Stdout           io.Writer
	Clipboard        clipboard.Copier
	Logger           *zap.Logger
	NewLogger        func(verbose bool) (*zap.Logger, error)
	IsTerminal       func(writer io.Writer) bool
	WorkingDirectory string
	HomeDirectory    string
}

// commandOptions holds raw flag values before configuration is applied.
type commandOptions struct {
	all         bool
	dirsOnly    bool
	noIndent    bool
	fullPath    bool
	gitignore   bool
	copyOutput  bool
	verbose     bool
	showVersion bool
	force       bool
	level       int
	outputPath  string
	format      string
	color       string
	configPath  string
	initTarget  string
}

// runSettings is the validated result of flags layered over configuration.
type runSettings struct {
	traversal  types.TraversalConfig
	format     string
	color      string
	copyOutput bool
	outputPath string
}

type application struct {
	dependencies Dependencies
	logger       *zap.Logger
}

// Execute runs the tree application with the process arguments.
func Execute(logger *zap.Logger) error {
	rootCommand := NewRootCommand(Dependencies{Logger: logger})
	return rootCommand.Execute()
}

// NewRootCommand builds the tree command.
func NewRootCommand(dependencies Dependencies) *cobra.Command {
	app := &application{dependencies: withDefaults(dependencies)}
	app.logger = app.dependencies.Logger

	var options commandOptions
	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		Example:       rootUsageExample,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return app.run(command, arguments, options)
		},
	}
	rootCommand.SetOut(app.dependencies.Stdout)
	rootCommand.SetFlagErrorFunc(func(command *cobra.Command, flagError error) error {
		return newUsageError(flagError)
	})

	flagSet := rootCommand.Flags()
	registerBooleanFlag(flagSet, &options.all, allFlagName, allFlagShorthand, false, allFlagDescription)
	registerBooleanFlag(flagSet, &options.dirsOnly, dirsOnlyFlagName, dirsOnlyShorthand, false, dirsOnlyFlagDescription)
	registerBooleanFlag(flagSet, &options.noIndent, noIndentFlagName, noIndentShorthand, false, noIndentFlagDescription)
	registerBooleanFlag(flagSet, &options.fullPath, fullPathFlagName, fullPathShorthand, false, fullPathFlagDescription)
	registerBooleanFlag(flagSet, &options.gitignore, gitignoreFlagName, gitignoreShorthand, false, gitignoreFlagDescription)
	registerBooleanFlag(flagSet, &options.copyOutput, copyFlagName, "", false, copyFlagDescription)
	registerBooleanFlag(flagSet, &options.verbose, verboseFlagName, "", false, verboseFlagDescription)
	registerBooleanFlag(flagSet, &options.showVersion, versionFlagName, "", false, versionFlagDescription)
	registerBooleanFlag(flagSet, &options.force, forceFlagName, "", false, forceFlagDescription)
	flagSet.IntVarP(&options.level, levelFlagName, levelShorthand, 0, levelFlagDescription)
	flagSet.StringVarP(&options.outputPath, outputFlagName, outputShorthand, "", outputFlagDescription)
	flagSet.StringVar(&options.format, formatFlagName, types.FormatRaw, formatFlagDescription)
	flagSet.StringVar(&options.color, colorFlagName, types.ColorAuto, colorFlagDescription)
	flagSet.StringVar(&options.configPath, configFlagName, "", configFlagDescription)
	flagSet.StringVar(&options.initTarget, initFlagName, "", initFlagDescription)
	if lookup := flagSet.Lookup(initFlagName); lookup != nil {
		lookup.NoOptDefVal = string(config.InitTargetLocal)
	}
	return rootCommand
}

func withDefaults(dependencies Dependencies) Dependencies {
	if dependencies.FileSystem == nil {
		dependencies.FileSystem = afero.NewOsFs()
	}
	if dependencies.Stdout == nil {
		dependencies.Stdout = os.Stdout
	}
	if dependencies.Clipboard == nil {
		dependencies.Clipboard = clipboard.NewService()
	}
	if dependencies.Logger == nil {
		dependencies.Logger = zap.NewNop()
	}
	if dependencies.NewLogger == nil {
		dependencies.NewLogger = utils.NewApplicationLogger
	}
	if dependencies.IsTerminal == nil {
		dependencies.IsTerminal = isTerminal
	}
	return dependencies
}

func (app *application) run(command *cobra.Command, arguments []string, options commandOptions) error {
	if options.showVersion {
		_, printError := fmt.Fprintf(app.dependencies.Stdout, versionTemplate, utils.GetApplicationVersion())
		return printError
	}
	if options.verbose {
		verboseLogger, loggerError := app.dependencies.NewLogger(true)
		if loggerError != nil {
			return fmt.Errorf(errorLoggerFormat, loggerError)
		}
		app.logger = verboseLogger
	}

	workingDirectory := app.dependencies.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			return fmt.Errorf(errorWorkingDirectoryFormat, workingDirectoryError)
		}
		workingDirectory = currentDirectory
	}

	if command.Flags().Changed(initFlagName) {
		if len(arguments) > 0 {
			return newUsageError(fmt.Errorf(errorUnexpectedArgumentsFormat, initFlagName, strings.Join(arguments, " ")))
		}
		return app.initializeConfiguration(options, workingDirectory)
	}

	loadedConfiguration, loadError := config.LoadApplicationConfiguration(config.LoadOptions{
		FileSystem:       app.dependencies.FileSystem,
		WorkingDirectory: workingDirectory,
		HomeDirectory:    app.dependencies.HomeDirectory,
		ExplicitFilePath: options.configPath,
	})
	if loadError != nil {
		return newUsageError(fmt.Errorf(errorLoadConfigurationFormat, loadError))
	}

	settings, settingsError := resolveSettings(command, options, loadedConfiguration)
	if settingsError != nil {
		return settingsError
	}

	if len(arguments) == 0 {
		arguments = []string{defaultPath}
	}
	return app.renderTrees(resolvePaths(arguments, workingDirectory), settings)
}

func (app *application) initializeConfiguration(options commandOptions, workingDirectory string) error {
	destinationPath, initError := config.InitializeConfiguration(config.InitOptions{
		FileSystem:       app.dependencies.FileSystem,
		Target:           config.InitTarget(strings.ToLower(options.initTarget)),
		Force:            options.force,
		WorkingDirectory: workingDirectory,
		HomeDirectory:    app.dependencies.HomeDirectory,
	})
	if initError != nil {
		return fmt.Errorf(errorInitializeConfigFormat, initError)
	}
	_, printError := fmt.Fprintf(app.dependencies.Stdout, initSuccessFormat, destinationPath)
	return printError
}

// renderTrees validates every root before anything is written, so a fatal
// root error produces no partial output.
func (app *application) renderTrees(paths []types.ValidatedPath, settings runSettings) (err error) {
	trees := make([]output.Tree, 0, len(paths))
	for _, path := range paths {
		rules := app.loadRules(path.AbsolutePath, settings.traversal)
		stats := &types.Stats{}
		treeWalker := walker.New(app.dependencies.FileSystem, settings.traversal, rules, app.logger)
		nodes, walkError := treeWalker.Walk(path.AbsolutePath, stats)
		if walkError != nil {
			return walkError
		}
		trees = append(trees, output.Tree{
			Root:         path.InputPath,
			AbsoluteRoot: path.AbsolutePath,
			Nodes:        nodes,
			Stats:        stats,
		})
	}

	destination := app.dependencies.Stdout
	destinationName := ""
	if settings.outputPath != "" {
		file, createError := app.dependencies.FileSystem.Create(settings.outputPath)
		if createError != nil {
			return &output.WriteError{Destination: settings.outputPath, Err: createError}
		}
		defer func() {
			if closeError := file.Close(); closeError != nil && err == nil {
				err = &output.WriteError{Destination: settings.outputPath, Err: fmt.Errorf(errorCloseOutputFormat, settings.outputPath, closeError)}
			}
		}()
		destination = file
		destinationName = settings.outputPath
	}

	writer, tee, teeError := newClipboardTee(destination, settings.copyOutput, app.dependencies.Clipboard)
	if teeError != nil {
		return teeError
	}

	renderOptions := output.Options{
		Format:      settings.format,
		NoIndent:    settings.traversal.NoIndent,
		FullPath:    settings.traversal.FullPath,
		Color:       app.colorEnabled(settings),
		Destination: destinationName,
	}
	if renderError := output.Render(writer, trees, renderOptions); renderError != nil {
		return renderError
	}
	if commitError := tee.commit(); commitError != nil {
		return commitError
	}

	if settings.outputPath != "" {
		if _, printError := fmt.Fprintln(app.dependencies.Stdout, outputSuccessMessage); printError != nil {
			return printError
		}
	}
	return nil
}

// loadRules reads the root .gitignore. Problems are logged and never fatal.
func (app *application) loadRules(rootPath string, traversal types.TraversalConfig) gitignore.RuleSet {
	if !traversal.UseGitignore {
		return nil
	}
	rules, loadError := gitignore.Load(app.dependencies.FileSystem, rootPath)
	if loadError == nil {
		return rules
	}
	var typedError *gitignore.LoadError
	if errors.As(loadError, &typedError) {
		for _, skipped := range typedError.Skipped {
			app.logger.Warn(logMessageSkippedLine,
				zap.String(logFieldPath, typedError.Path),
				zap.Int(logFieldLine, skipped.Number),
				zap.String(logFieldText, skipped.Text),
				zap.Error(skipped.Err))
		}
		if typedError.Err == nil {
			return rules
		}
	}
	app.logger.Warn(logMessageGitignoreFailed, zap.String(logFieldPath, rootPath), zap.Error(loadError))
	return rules
}

// colorEnabled styles only raw output. In auto mode color is used when writing
// to a terminal and nothing is being copied.
func (app *application) colorEnabled(settings runSettings) bool {
	if settings.format != types.FormatRaw {
		return false
	}
	switch settings.color {
	case types.ColorAlways:
		return true
	case types.ColorNever:
		return false
	default:
		return settings.outputPath == "" && !settings.copyOutput && app.dependencies.IsTerminal(app.dependencies.Stdout)
	}
}

// resolveSettings layers explicitly set flags over configuration values and validates the result.
func resolveSettings(command *cobra.Command, options commandOptions, loaded config.ApplicationConfiguration) (runSettings, error) {
	flags := command.Flags()
	boolSetting := func(flagName string, flagValue bool, configured *bool) bool {
		if flags.Changed(flagName) {
			return flagValue
		}
		return config.BoolValue(configured, flagValue)
	}
	stringSetting := func(flagName string, flagValue string, configured string) string {
		if flags.Changed(flagName) || configured == "" {
			return strings.ToLower(strings.TrimSpace(flagValue))
		}
		return strings.ToLower(strings.TrimSpace(configured))
	}

	maxDepth := 0
	if flags.Changed(levelFlagName) {
		if options.level < 1 {
			return runSettings{}, newUsageError(fmt.Errorf(errorInvalidLevelFormat, options.level))
		}
		maxDepth = options.level
	} else if loaded.MaxDepth != nil {
		if *loaded.MaxDepth < 0 {
			return runSettings{}, newUsageError(fmt.Errorf(errorInvalidConfigDepthFormat, *loaded.MaxDepth))
		}
		maxDepth = *loaded.MaxDepth
	}

	format := stringSetting(formatFlagName, options.format, loaded.Format)
	switch format {
	case types.FormatRaw, types.FormatJSON, types.FormatXML, types.FormatYAML:
	default:
		return runSettings{}, newUsageError(fmt.Errorf(errorInvalidFormatFormat, format))
	}

	color := stringSetting(colorFlagName, options.color, loaded.Color)
	switch color {
	case types.ColorAuto, types.ColorAlways, types.ColorNever:
	default:
		return runSettings{}, newUsageError(fmt.Errorf(errorInvalidColorFormat, color))
	}

	return runSettings{
		traversal: types.TraversalConfig{
			ShowHidden:      boolSetting(allFlagName, options.all, loaded.All),
			DirectoriesOnly: boolSetting(dirsOnlyFlagName, options.dirsOnly, loaded.DirsOnly),
			MaxDepth:        maxDepth,
			FullPath:        boolSetting(fullPathFlagName, options.fullPath, loaded.FullPath),
			UseGitignore:    boolSetting(gitignoreFlagName, options.gitignore, loaded.Gitignore),
			NoIndent:        boolSetting(noIndentFlagName, options.noIndent, loaded.NoIndent),
		},
		format:     format,
		color:      color,
		copyOutput: boolSetting(copyFlagName, options.copyOutput, loaded.Clipboard),
		outputPath: options.outputPath,
	}, nil
}

// resolvePaths converts input paths to absolute form, dropping repeats of the same directory.
func resolvePaths(inputs []string, workingDirectory string) []types.ValidatedPath {
	seen := make(map[string]struct{})
	var result []types.ValidatedPath
	for _, inputPath := range utils.DeduplicatePaths(inputs) {
		absolutePath := inputPath
		if !filepath.IsAbs(absolutePath) {
			absolutePath = filepath.Join(workingDirectory, absolutePath)
		}
		cleanPath := filepath.Clean(absolutePath)
		if _, ok := seen[cleanPath]; ok {
			continue
		}
		seen[cleanPath] = struct{}{}
		result = append(result, types.ValidatedPath{InputPath: inputPath, AbsolutePath: cleanPath})
	}
	return result
}

func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}
