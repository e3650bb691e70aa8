// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/temirov/skel/internal/classify"
	"github.com/temirov/skel/internal/config"
	"github.com/temirov/skel/internal/filter"
	"github.com/temirov/skel/internal/output"
	"github.com/temirov/skel/internal/project"
	"github.com/temirov/skel/internal/skeleton"
	"github.com/temirov/skel/internal/tokenizer"
	"github.com/temirov/skel/internal/tree"
	"github.com/temirov/skel/internal/types"
	"github.com/temirov/skel/internal/utils"
	"github.com/temirov/skel/internal/walker"
)

const (
	modeFlagName         = "mode"
	includeFullFlagName  = "include-full"
	fullPatternFlagName  = "full-pattern"
	includeFlagName      = "include"
	exclusionFlagName    = "exclude"
	maxFileSizeFlagName  = "max-file-size"
	showExcludedFlagName = "show-excluded"
	showImportsFlagName  = "imports"
	sortFlagName         = "sort"
	workersFlagName      = "workers"
	progressFlagName     = "progress"
	outputFlagName       = "output"
	copyFlagName         = "copy"
	configFlagName       = "config"
	versionFlagName      = "version"
	versionTemplate      = "skel version: %s\n"
	defaultPath          = "."
	rootUse              = "skel"
	rootShortDescription = "skel command line interface"
	rootLongDescription  = `skel condenses a source tree into a single structured document.
Configuration files, documentation, and explicitly requested paths keep their
full content; everything else is reduced to a structural skeleton of imports,
signatures, and docstrings. Use --mode to pick the reduction strategy and
--version to print the application version.`
	versionFlagDescription = "display application version"

	scanUse              = "scan [path]"
	treeUse              = "tree [path]"
	scanAlias            = "s"
	treeAlias            = "t"
	scanShortDescription = "render the structured document (" + scanAlias + ")"
	treeShortDescription = "display the filtered directory tree (" + treeAlias + ")"

	// scanLongDescription provides detailed help for the scan command.
	scanLongDescription = `Walk a directory and render its structured document.
Use --mode to select skeleton, overview, hybrid, or custom reduction,
--include-full and --full-pattern to grant full content to specific files,
and --include / --exclude to control which paths are visited.`
	// scanUsageExample demonstrates scan command usage.
	scanUsageExample = `  # Reduce the current directory with default settings
  skel scan

  # Keep handlers verbatim and everything else as skeletons
  skel scan --mode custom --full-pattern 'src/handlers/*' .

  # Write the document to a file and copy it to the clipboard
  skel scan --output context.xml --copy .`

	// treeLongDescription provides detailed help for the tree command.
	treeLongDescription = `List the directories and files a scan would visit,
after include and exclude filtering, as an ASCII tree.`
	// treeUsageExample demonstrates tree command usage.
	treeUsageExample = `  # Show the filtered tree for the current directory
  skel tree

  # Exclude generated code
  skel tree --exclude 'gen/*' .`

	modeFlagDescription         = "reduction mode: skeleton, overview, hybrid, or custom"
	includeFullFlagDescription  = "relative path that keeps full content (repeatable)"
	fullPatternFlagDescription  = "glob pattern that keeps full content (repeatable)"
	includeFlagDescription      = "only visit paths matching this pattern (repeatable)"
	exclusionFlagDescription    = "skip paths matching this pattern (repeatable)"
	maxFileSizeFlagDescription  = "skip files larger than this many bytes (0 disables the limit)"
	showExcludedFlagDescription = "append the excluded directory tally to the document"
	showImportsFlagDescription  = "attach scanned import names to full content entries"
	sortFlagDescription         = "file order: traversal or lexicographic"
	workersFlagDescription      = "number of concurrent skeleton extraction workers"
	progressFlagDescription     = "show an extraction progress bar on stderr"
	outputFlagDescription       = "write the document to this file instead of stdout"
	copyFlagDescription         = "copy the document to the system clipboard"
	configFlagDescription       = "path to an alternate configuration file"

	sortModeTraversal     = "traversal"
	sortModeLexicographic = "lexicographic"

	defaultMode            = types.ModeSkeleton
	defaultMaxFileSize     = int64(1024 * 1024)
	defaultWorkerCount     = 1
	invalidModeMessage     = "invalid mode value '%s'"
	invalidSortMessage     = "invalid sort value '%s'"
	clipboardErrorFormat   = "copy document to clipboard: %w"
	outputWriteErrorFormat = "write document to %s: %w"
)

// isSupportedMode reports whether the provided reduction mode is recognized.
func isSupportedMode(mode string) bool {
	switch mode {
	case types.ModeSkeleton, types.ModeOverview, types.ModeHybrid, types.ModeCustom:
		return true
	default:
		return false
	}
}

// Execute runs the skel application.
func Execute() error {
	rootCommand := createRootCommand()
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand() *cobra.Command {
	var showVersion bool

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if showVersion {
				fmt.Printf(versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
		},
	}
	rootCommand.PersistentFlags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	rootCommand.AddCommand(
		createScanCommand(),
		createTreeCommand(),
	)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// scanOptions stores the flag values of the scan command before they are
// merged with configuration file defaults.
type scanOptions struct {
	mode             string
	includeFullPaths []string
	fullPatterns     []string
	includePatterns  []string
	excludePatterns  []string
	maxFileSize      int64
	showExcluded     bool
	showImports      bool
	sortMode         string
	workerCount      int
	showProgress     bool
	outputPath       string
	copyToClipboard  bool
	configPath       string
}

// createScanCommand returns the scan subcommand.
func createScanCommand() *cobra.Command {
	var options scanOptions

	scanCommand := &cobra.Command{
		Use:     scanUse,
		Aliases: []string{scanAlias},
		Short:   scanShortDescription,
		Long:    scanLongDescription,
		Example: scanUsageExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			rootPath := defaultPath
			if len(arguments) == 1 {
				rootPath = arguments[0]
			}
			return runScan(command, rootPath, options)
		},
	}

	scanCommand.Flags().StringVar(&options.mode, modeFlagName, defaultMode, modeFlagDescription)
	scanCommand.Flags().StringArrayVar(&options.includeFullPaths, includeFullFlagName, nil, includeFullFlagDescription)
	scanCommand.Flags().StringArrayVar(&options.fullPatterns, fullPatternFlagName, nil, fullPatternFlagDescription)
	scanCommand.Flags().StringArrayVar(&options.includePatterns, includeFlagName, nil, includeFlagDescription)
	scanCommand.Flags().StringArrayVar(&options.excludePatterns, exclusionFlagName, nil, exclusionFlagDescription)
	scanCommand.Flags().Int64Var(&options.maxFileSize, maxFileSizeFlagName, defaultMaxFileSize, maxFileSizeFlagDescription)
	scanCommand.Flags().BoolVar(&options.showExcluded, showExcludedFlagName, false, showExcludedFlagDescription)
	scanCommand.Flags().BoolVar(&options.showImports, showImportsFlagName, false, showImportsFlagDescription)
	scanCommand.Flags().StringVar(&options.sortMode, sortFlagName, sortModeTraversal, sortFlagDescription)
	scanCommand.Flags().IntVar(&options.workerCount, workersFlagName, defaultWorkerCount, workersFlagDescription)
	scanCommand.Flags().BoolVar(&options.showProgress, progressFlagName, false, progressFlagDescription)
	scanCommand.Flags().StringVar(&options.outputPath, outputFlagName, "", outputFlagDescription)
	scanCommand.Flags().BoolVar(&options.copyToClipboard, copyFlagName, false, copyFlagDescription)
	scanCommand.Flags().StringVar(&options.configPath, configFlagName, "", configFlagDescription)
	return scanCommand
}

// createTreeCommand returns the tree subcommand.
func createTreeCommand() *cobra.Command {
	var includePatterns []string
	var excludePatterns []string
	var configPath string

	treeCommand := &cobra.Command{
		Use:     treeUse,
		Aliases: []string{treeAlias},
		Short:   treeShortDescription,
		Long:    treeLongDescription,
		Example: treeUsageExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			rootPath := defaultPath
			if len(arguments) == 1 {
				rootPath = arguments[0]
			}
			applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{ExplicitFilePath: configPath})
			if configurationError != nil {
				return configurationError
			}
			validatedRoot, validationError := walker.ValidateRoot(rootPath)
			if validationError != nil {
				return validationError
			}
			pathFilter := filter.New(
				utils.DeduplicatePatterns(append(applicationConfiguration.Tree.Paths.Include, includePatterns...)),
				utils.DeduplicatePatterns(append(applicationConfiguration.Tree.Paths.Exclude, excludePatterns...)),
			)
			fmt.Fprintln(command.OutOrStdout(), tree.Render(validatedRoot.AbsolutePath, pathFilter))
			return nil
		},
	}

	treeCommand.Flags().StringArrayVar(&includePatterns, includeFlagName, nil, includeFlagDescription)
	treeCommand.Flags().StringArrayVar(&excludePatterns, exclusionFlagName, nil, exclusionFlagDescription)
	treeCommand.Flags().StringVar(&configPath, configFlagName, "", configFlagDescription)
	return treeCommand
}

// runScan merges configuration defaults into the flag values, walks the root,
// and delivers the rendered document.
func runScan(command *cobra.Command, rootPath string, options scanOptions) error {
	applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{ExplicitFilePath: options.configPath})
	if configurationError != nil {
		return configurationError
	}
	effective := applyScanConfiguration(command, options, applicationConfiguration.Scan)

	modeLower := strings.ToLower(effective.mode)
	if !isSupportedMode(modeLower) {
		return fmt.Errorf(invalidModeMessage, effective.mode)
	}
	sortLower := strings.ToLower(effective.sortMode)
	if sortLower != sortModeTraversal && sortLower != sortModeLexicographic {
		return fmt.Errorf(invalidSortMessage, effective.sortMode)
	}

	validatedRoot, validationError := walker.ValidateRoot(rootPath)
	if validationError != nil {
		return validationError
	}

	pathFilter := filter.New(effective.includePatterns, effective.excludePatterns)
	classifier := classify.New(modeLower, effective.includeFullPaths, effective.fullPatterns)
	extractor := skeleton.NewExtractor(skeleton.NewRegistry())
	treeWalker := walker.New(pathFilter, classifier, extractor, tokenizer.NewCounter(), walker.Options{
		MaxFileSizeBytes:  effective.maxFileSize,
		SortLexicographic: sortLower == sortModeLexicographic,
		Workers:           effective.workerCount,
		ShowProgress:      effective.showProgress,
		ScanImports:       effective.showImports,
	})

	walkResult, walkError := treeWalker.Walk(command.Context(), validatedRoot)
	if walkError != nil {
		return walkError
	}

	document := output.RenderDocument(
		validatedRoot,
		project.Detect(validatedRoot.AbsolutePath),
		tree.Render(validatedRoot.AbsolutePath, pathFilter),
		walkResult,
		output.Options{
			Mode:         modeLower,
			ShowExcluded: effective.showExcluded,
			ShowImports:  effective.showImports,
		},
	)

	if effective.outputPath != "" {
		if writeError := os.WriteFile(effective.outputPath, []byte(document), 0o644); writeError != nil {
			return fmt.Errorf(outputWriteErrorFormat, effective.outputPath, writeError)
		}
	} else {
		fmt.Fprint(command.OutOrStdout(), document)
	}
	if effective.copyToClipboard {
		if clipboardError := clipboard.WriteAll(document); clipboardError != nil {
			return fmt.Errorf(clipboardErrorFormat, clipboardError)
		}
	}
	return nil
}

// applyScanConfiguration overlays configuration file defaults onto flag
// values. A flag the user set on the command line always wins; list settings
// from both sources are combined.
func applyScanConfiguration(command *cobra.Command, options scanOptions, scanConfiguration config.ScanCommandConfiguration) scanOptions {
	effective := options
	flagSet := command.Flags()

	if !flagSet.Changed(modeFlagName) && scanConfiguration.Mode != "" {
		effective.mode = scanConfiguration.Mode
	}
	if !flagSet.Changed(maxFileSizeFlagName) && scanConfiguration.MaxFileSize != nil {
		effective.maxFileSize = *scanConfiguration.MaxFileSize
	}
	if !flagSet.Changed(showExcludedFlagName) && scanConfiguration.ShowExcluded != nil {
		effective.showExcluded = *scanConfiguration.ShowExcluded
	}
	if !flagSet.Changed(showImportsFlagName) && scanConfiguration.ShowImports != nil {
		effective.showImports = *scanConfiguration.ShowImports
	}
	if !flagSet.Changed(sortFlagName) && scanConfiguration.Sort != "" {
		effective.sortMode = scanConfiguration.Sort
	}
	if !flagSet.Changed(workersFlagName) && scanConfiguration.Workers != nil {
		effective.workerCount = *scanConfiguration.Workers
	}
	if !flagSet.Changed(progressFlagName) && scanConfiguration.Progress != nil {
		effective.showProgress = *scanConfiguration.Progress
	}
	if !flagSet.Changed(copyFlagName) && scanConfiguration.Clipboard != nil {
		effective.copyToClipboard = *scanConfiguration.Clipboard
	}
	if !flagSet.Changed(outputFlagName) && scanConfiguration.Output != "" {
		effective.outputPath = scanConfiguration.Output
	}

	effective.includeFullPaths = utils.DeduplicatePatterns(append(append([]string(nil), scanConfiguration.IncludeFull...), options.includeFullPaths...))
	effective.fullPatterns = utils.DeduplicatePatterns(append(append([]string(nil), scanConfiguration.FullPatterns...), options.fullPatterns...))
	effective.includePatterns = utils.DeduplicatePatterns(append(append([]string(nil), scanConfiguration.Paths.Include...), options.includePatterns...))
	effective.excludePatterns = utils.DeduplicatePatterns(append(append([]string(nil), scanConfiguration.Paths.Exclude...), options.excludePatterns...))
	return effective
}
