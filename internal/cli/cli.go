// Package cli provides the dirscribe command line interface.
package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vkuzmin/dirscribe/internal/config"
	"github.com/vkuzmin/dirscribe/internal/ignore"
	"github.com/vkuzmin/dirscribe/internal/render"
	"github.com/vkuzmin/dirscribe/internal/services/clipboard"
	"github.com/vkuzmin/dirscribe/internal/style"
	"github.com/vkuzmin/dirscribe/internal/tokenizer"
	"github.com/vkuzmin/dirscribe/internal/utils"
	"github.com/vkuzmin/dirscribe/internal/walker"
)

const (
	rootUse              = "dirscribe [project-path]"
	rootShortDescription = "render an annotated directory tree and dump file contents"
	rootLongDescription  = `dirscribe renders a directory subtree as a connector-annotated tree diagram
and optionally dumps the textual contents of the files it contains.
Exclusion patterns, .gitignore rules, and a depth limit bound the traversal;
binary files are detected and skipped during content emission.`
	rootUsageExample = `  # Render tree and contents of the current project
  dirscribe .

  # Structure only, two levels deep, vendor excluded
  dirscribe --structure-only -d 2 -e vendor .

  # Emit only TypeScript sources, copy everything to the clipboard
  dirscribe -x ts --contents-only --copy ./web`

	extensionFlagName     = "ext"
	extensionFlagShort    = "x"
	exclusionFlagName     = "exclude"
	exclusionFlagShort    = "e"
	depthFlagName         = "depth"
	depthFlagShort        = "d"
	colorFlagName         = "color"
	noGitignoreFlagName   = "no-gitignore"
	noIgnoreFlagName      = "no-ignore"
	structureOnlyFlagName = "structure-only"
	structureOnlyShort    = "s"
	contentsOnlyFlagName  = "contents-only"
	contentsOnlyShort     = "c"
	copyFlagName          = "copy"
	tokensFlagName        = "tokens"
	modelFlagName         = "model"
	configFlagName        = "config"
	versionFlagName       = "version"

	extensionFlagDescription     = "extension or base-name filter for content emission (comma-separated or repeated)"
	exclusionFlagDescription     = "additional ignore pattern (repeatable, value taken verbatim)"
	depthFlagDescription         = "maximum recursion depth"
	colorFlagDescription         = "enable ANSI styling and syntax highlighting"
	noGitignoreFlagDescription   = "do not read .gitignore at the project root"
	noIgnoreFlagDescription      = "do not read .dirscribeignore at the project root"
	structureOnlyFlagDescription = "render the structure view only"
	contentsOnlyFlagDescription  = "render the contents view only"
	copyFlagDescription          = "copy the rendered output to the system clipboard"
	tokensFlagDescription        = "append a token-count summary after content emission"
	modelFlagDescription         = "tokenizer model for token counting"
	configFlagDescription        = "path to a configuration file"
	versionFlagDescription       = "display application version"

	versionTemplate = "dirscribe version: %s\n"
	defaultPath     = "."

	errorAbsolutePathFormat   = "abs failed for '%s': %w"
	errorPathMissingFormat    = "path '%s' does not exist"
	errorStatFormat           = "stat failed for '%s': %w"
	errorNotADirectoryFormat  = "path '%s' is not a directory"
	warningTokenizerMessage   = "tokenizer unavailable, skipping token counts"
	warningClipboardMessage   = "clipboard copy failed"
)

// flagOptions stores the raw flag values of one invocation.
type flagOptions struct {
	extensions        []string
	exclusions        []string
	maxDepth          int
	colorEnabled      bool
	disableGitignore  bool
	disableIgnoreFile bool
	structureOnly     bool
	contentsOnly      bool
	copyToClipboard   bool
	tokensEnabled     bool
	tokenModel        string
	configFilePath    string
}

// Execute runs the dirscribe application.
func Execute(logger *zap.Logger) error {
	return createRootCommand(logger).Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand(logger *zap.Logger) *cobra.Command {
	var flagValues flagOptions
	var showVersion bool

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Example:      rootUsageExample,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if showVersion {
				fmt.Printf(versionTemplate, utils.GetApplicationVersion())
				return nil
			}
			projectPath := defaultPath
			if len(arguments) == 1 {
				projectPath = arguments[0]
			}
			return run(command, logger, projectPath, flagValues)
		},
	}

	commandFlags := rootCommand.Flags()
	commandFlags.StringSliceVarP(&flagValues.extensions, extensionFlagName, extensionFlagShort, nil, extensionFlagDescription)
	commandFlags.StringArrayVarP(&flagValues.exclusions, exclusionFlagName, exclusionFlagShort, nil, exclusionFlagDescription)
	commandFlags.IntVarP(&flagValues.maxDepth, depthFlagName, depthFlagShort, 0, depthFlagDescription)
	commandFlags.BoolVar(&flagValues.colorEnabled, colorFlagName, true, colorFlagDescription)
	commandFlags.BoolVar(&flagValues.disableGitignore, noGitignoreFlagName, false, noGitignoreFlagDescription)
	commandFlags.BoolVar(&flagValues.disableIgnoreFile, noIgnoreFlagName, false, noIgnoreFlagDescription)
	commandFlags.BoolVarP(&flagValues.structureOnly, structureOnlyFlagName, structureOnlyShort, false, structureOnlyFlagDescription)
	commandFlags.BoolVarP(&flagValues.contentsOnly, contentsOnlyFlagName, contentsOnlyShort, false, contentsOnlyFlagDescription)
	commandFlags.BoolVar(&flagValues.copyToClipboard, copyFlagName, false, copyFlagDescription)
	commandFlags.BoolVar(&flagValues.tokensEnabled, tokensFlagName, false, tokensFlagDescription)
	commandFlags.StringVar(&flagValues.tokenModel, modelFlagName, "", modelFlagDescription)
	commandFlags.StringVar(&flagValues.configFilePath, configFlagName, "", configFlagDescription)
	commandFlags.BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)

	return rootCommand
}

// run performs one full invocation: configuration layering, a single walk,
// then the structure and contents views in document order.
func run(command *cobra.Command, logger *zap.Logger, projectPath string, flagValues flagOptions) error {
	absoluteRootPath, absolutePathError := filepath.Abs(projectPath)
	if absolutePathError != nil {
		return fmt.Errorf(errorAbsolutePathFormat, projectPath, absolutePathError)
	}
	rootInfo, rootStatError := os.Stat(absoluteRootPath)
	if rootStatError != nil {
		if os.IsNotExist(rootStatError) {
			return fmt.Errorf(errorPathMissingFormat, projectPath)
		}
		return fmt.Errorf(errorStatFormat, projectPath, rootStatError)
	}
	if !rootInfo.IsDir() {
		return fmt.Errorf(errorNotADirectoryFormat, projectPath)
	}

	applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: absoluteRootPath,
		ExplicitFilePath: flagValues.configFilePath,
	})
	if configurationError != nil {
		return configurationError
	}
	mergedConfiguration := config.DefaultConfiguration().
		Merge(applicationConfiguration).
		Merge(flagOverrides(command, flagValues))
	resolved := config.ResolveRenderConfig(mergedConfiguration, stdoutIsTerminal())

	ignorePatterns, ignoreLoadError := config.LoadCombinedIgnorePatterns(
		absoluteRootPath, resolved.ExcludePatterns, resolved.UseGitignore, resolved.UseIgnoreFile)
	if ignoreLoadError != nil {
		return ignoreLoadError
	}
	patternMatcher := ignore.NewMatcher(ignorePatterns, true)

	treeWalker := &walker.Walker{Matcher: patternMatcher, MaxDepth: resolved.MaxDepth, Logger: logger}
	entries, walkError := treeWalker.Walk(absoluteRootPath)
	if walkError != nil {
		return walkError
	}

	var outputWriter io.Writer = os.Stdout
	var clipboardBuffer bytes.Buffer
	if resolved.CopyToClipboard {
		outputWriter = io.MultiWriter(os.Stdout, &clipboardBuffer)
	}

	palette := style.NewPalette(resolved.ColorEnabled, resolved.Colors)

	if !resolved.ContentsOnly {
		structureRenderer := &render.StructureRenderer{
			Writer:  outputWriter,
			Palette: palette,
			Symbols: render.SymbolsFromMap(resolved.Symbols),
		}
		structureRenderer.RenderTree(absoluteRootPath, entries)
	}

	if !resolved.StructureOnly {
		if !resolved.ContentsOnly {
			fmt.Fprintln(outputWriter)
		}
		tokenCounter, tokenModelName := newTokenCounter(resolved, logger)
		filePaths := render.CollectFiles(entries, absoluteRootPath)
		contentEmitter := render.NewContentEmitter(outputWriter, palette, resolved.Extensions, tokenCounter, logger)
		emissionSummary := contentEmitter.EmitAll(filePaths, absoluteRootPath)
		if tokenCounter != nil {
			fmt.Fprintln(outputWriter, render.FormatSummaryLine(emissionSummary, tokenModelName))
		}
	}

	if resolved.CopyToClipboard {
		if copyError := clipboard.NewService().Copy(clipboardBuffer.String()); copyError != nil {
			logger.Warn(warningClipboardMessage, zap.Error(copyError))
		}
	}
	return nil
}

// flagOverrides converts explicitly set flags into a configuration overlay.
// Untouched flags contribute nothing, so file-layer values survive.
func flagOverrides(command *cobra.Command, flagValues flagOptions) config.ApplicationConfiguration {
	var override config.ApplicationConfiguration
	commandFlags := command.Flags()
	if commandFlags.Changed(depthFlagName) {
		override.Depth = &flagValues.maxDepth
	}
	if commandFlags.Changed(extensionFlagName) {
		override.Extensions = flagValues.extensions
	}
	if commandFlags.Changed(exclusionFlagName) {
		override.Exclude = flagValues.exclusions
	}
	if commandFlags.Changed(colorFlagName) {
		override.Color = &flagValues.colorEnabled
	}
	if commandFlags.Changed(noGitignoreFlagName) {
		useGitignore := !flagValues.disableGitignore
		override.UseGitignore = &useGitignore
	}
	if commandFlags.Changed(noIgnoreFlagName) {
		useIgnoreFile := !flagValues.disableIgnoreFile
		override.UseIgnoreFile = &useIgnoreFile
	}
	if commandFlags.Changed(structureOnlyFlagName) {
		override.StructureOnly = &flagValues.structureOnly
	}
	if commandFlags.Changed(contentsOnlyFlagName) {
		override.ContentsOnly = &flagValues.contentsOnly
	}
	if commandFlags.Changed(copyFlagName) {
		override.Clipboard = &flagValues.copyToClipboard
	}
	if commandFlags.Changed(tokensFlagName) {
		override.Tokens.Enabled = &flagValues.tokensEnabled
	}
	if commandFlags.Changed(modelFlagName) {
		override.Tokens.Model = flagValues.tokenModel
	}
	return override
}

// newTokenCounter builds the tokenizer when token counting is enabled. A
// tokenizer initialization failure downgrades to a warning; content emission
// proceeds without counts.
func newTokenCounter(resolved config.RenderConfig, logger *zap.Logger) (tokenizer.Counter, string) {
	if !resolved.TokensEnabled {
		return nil, ""
	}
	tokenCounter, selectedModelName, counterError := tokenizer.NewCounter(resolved.TokenModel)
	if counterError != nil {
		logger.Warn(warningTokenizerMessage, zap.Error(counterError))
		return nil, ""
	}
	return tokenCounter, selectedModelName
}

// stdoutIsTerminal reports whether stdout is attached to a terminal; it
// supplies the automatic default for color enablement.
func stdoutIsTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}
