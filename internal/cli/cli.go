// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/dirtree/internal/commands"
	"github.com/temirov/dirtree/internal/config"
	"github.com/temirov/dirtree/internal/filter"
	"github.com/temirov/dirtree/internal/output"
	"github.com/temirov/dirtree/internal/services/clipboard"
	"github.com/temirov/dirtree/internal/tokenizer"
	"github.com/temirov/dirtree/internal/utils"
)

const (
	rootUse              = "dirtree [path]"
	rootShortDescription = "write a filtered directory tree to a text file"
	rootLongDescription  = `dirtree walks a directory and writes an ASCII tree of it to a file.
Dependency caches, version-control metadata, build output, hidden entries and
log/cache/lock files are left out. The tree is meant as project context for AI assistants.`
	rootUsageExample = `  # Write the tree of the current directory to estructura_proyecto.txt
  dirtree

  # Three levels of ./src into tree.txt, also copying it to the clipboard
  dirtree src -d 3 -o tree.txt --copy

  # Skip fixtures and report a token estimate
  dirtree -e fixtures --tokens`

	depthShorthand   = "d"
	outputShorthand  = "o"
	excludeShorthand = "e"
	verboseShorthand = "v"
	versionFlagName  = "version"
	versionTemplate  = "dirtree version: %s\n"

	depthFlagDescription   = "maximum recursion depth"
	outputFlagDescription  = "output file, overwritten if it exists"
	excludeFlagDescription = "additional entry name to exclude (repeatable)"
	copyFlagDescription    = "copy the tree to the clipboard"
	tokensFlagDescription  = "report an estimated token count of the tree"
	modelFlagDescription   = "tokenizer model used for --tokens"
	verboseFlagDescription = "log traversal details"
	versionFlagDescription = "display application version"

	errorCopyFormat       = "copy to clipboard: %w"
	errorTokenCountFormat = "count tokens: %w"
)

// CounterFactory builds the token counter used for --tokens.
type CounterFactory func(tokenizer.Config) (tokenizer.Counter, string, error)

// Dependencies are the collaborators a run is wired with.
type Dependencies struct {
	FileSystem     afero.Fs
	Logger         *zap.Logger
	LogLevel       *zap.AtomicLevel
	Copier         clipboard.Copier
	CounterFactory CounterFactory
}

// Execute runs the dirtree application with the process arguments.
func Execute(logger *zap.Logger, logLevel *zap.AtomicLevel) error {
	rootCommand := NewRootCommand(Dependencies{
		FileSystem:     afero.NewOsFs(),
		Logger:         logger,
		LogLevel:       logLevel,
		Copier:         clipboard.NewService(),
		CounterFactory: tokenizer.NewCounter,
	})
	rootCommand.SetArgs(normalizeBooleanFlagArguments(rootCommand, os.Args[1:]))
	return rootCommand.Execute()
}

// NewRootCommand builds the dirtree Cobra command.
func NewRootCommand(dependencies Dependencies) *cobra.Command {
	dependencies = dependencies.withDefaults()
	var showVersion bool
	var copyToClipboard bool
	var countTokens bool
	var verbose bool

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		Example:       rootUsageExample,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if showVersion {
				_, printError := fmt.Fprintf(command.OutOrStdout(), versionTemplate, utils.GetApplicationVersion())
				return printError
			}
			settings, settingsError := config.LoadSettings(command.Flags(), arguments)
			if settingsError != nil {
				return settingsError
			}
			if settings.Verbose && dependencies.LogLevel != nil {
				dependencies.LogLevel.SetLevel(zap.DebugLevel)
			}
			return runTool(command, dependencies, settings)
		},
	}

	flagSet := rootCommand.Flags()
	flagSet.IntP(config.DepthKey, depthShorthand, commands.DefaultMaxDepth, depthFlagDescription)
	flagSet.StringP(config.OutputKey, outputShorthand, config.DefaultOutputPath, outputFlagDescription)
	flagSet.StringArrayP(config.ExcludeKey, excludeShorthand, nil, excludeFlagDescription)
	flagSet.String(config.ModelKey, config.DefaultTokenizerModel, modelFlagDescription)
	registerBooleanFlag(flagSet, &copyToClipboard, config.CopyKey, "", false, copyFlagDescription)
	registerBooleanFlag(flagSet, &countTokens, config.TokensKey, "", false, tokensFlagDescription)
	registerBooleanFlag(flagSet, &verbose, config.VerboseKey, verboseShorthand, false, verboseFlagDescription)
	registerBooleanFlag(flagSet, &showVersion, versionFlagName, "", false, versionFlagDescription)
	rootCommand.CompletionOptions.DisableDefaultCmd = true
	return rootCommand
}

func (dependencies Dependencies) withDefaults() Dependencies {
	if dependencies.FileSystem == nil {
		dependencies.FileSystem = afero.NewOsFs()
	}
	if dependencies.Logger == nil {
		dependencies.Logger = zap.NewNop()
	}
	if dependencies.Copier == nil {
		dependencies.Copier = clipboard.NewService()
	}
	if dependencies.CounterFactory == nil {
		dependencies.CounterFactory = tokenizer.NewCounter
	}
	return dependencies
}

// runTool renders the tree, stores it, and reports the result.
func runTool(command *cobra.Command, dependencies Dependencies, settings config.Settings) error {
	logger := dependencies.Logger
	rules := filter.DefaultRules(settings.Exclusions...)
	logger.Debug("settings resolved",
		zap.String("path", settings.RootPath),
		zap.Int("depth", settings.MaxDepth),
		zap.String("output", settings.OutputPath),
		zap.Strings("excluded_names", rules.ExcludedNames()),
	)

	treeBuilder := commands.NewTreeBuilder(rules, settings.MaxDepth, logger)
	treeBuilder.FileSystem = dependencies.FileSystem
	tree, buildError := treeBuilder.GenerateTree(settings.RootPath)
	if buildError != nil {
		return buildError
	}

	writtenBytes, writeError := output.WriteTreeFile(dependencies.FileSystem, settings.OutputPath, tree)
	if writeError != nil {
		return writeError
	}
	logger.Debug("tree stored", zap.String("output", settings.OutputPath), zap.Int64("bytes", writtenBytes))

	summary := output.Summary{
		OutputPath: settings.OutputPath,
		TotalLines: commands.CountLines(tree),
	}

	if settings.CountTokens {
		counter, resolvedModel, counterError := dependencies.CounterFactory(tokenizer.Config{Model: settings.TokenizerModel})
		if counterError != nil {
			return fmt.Errorf(errorTokenCountFormat, counterError)
		}
		tokens, countError := tokenizer.CountText(counter, tree)
		if countError != nil {
			return fmt.Errorf(errorTokenCountFormat, countError)
		}
		summary.CountedTokens = true
		summary.Tokens = tokens
		summary.TokenizerModel = resolvedModel
	}

	if settings.CopyToClipboard {
		if copyError := dependencies.Copier.Copy(tree); copyError != nil {
			return fmt.Errorf(errorCopyFormat, copyError)
		}
		summary.Copied = true
	}

	return output.WriteSummary(command.OutOrStdout(), summary)
}
