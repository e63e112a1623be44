// Package config resolves the run settings from the parsed command line.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/temirov/dirtree/internal/utils"
)

// Flag keys shared by the command definition and settings resolution.
const (
	DepthKey   = "depth"
	OutputKey  = "output"
	ExcludeKey = "exclude"
	CopyKey    = "copy"
	TokensKey  = "tokens"
	ModelKey   = "model"
	VerboseKey = "verbose"

	// DefaultRootPath is scanned when no path argument is given.
	DefaultRootPath = "."
	// DefaultOutputPath receives the tree when no output flag is given.
	DefaultOutputPath = "estructura_proyecto.txt"
	// DefaultTokenizerModel selects the tokenizer for token estimates.
	DefaultTokenizerModel = "gpt-4o"

	errorBindFlagsFormat  = "bind flags: %w"
	errorTooManyPaths     = "expected at most one path, got %d"
	errorEmptyOutputPath  = "output path must not be empty"
	errorEmptyRootPath    = "path must not be empty"
	errorEmptyModelFormat = "--%s requires a model name when --%s is set"
)

// Settings is the immutable configuration of one run.
type Settings struct {
	RootPath        string
	MaxDepth        int
	OutputPath      string
	Exclusions      []string
	CopyToClipboard bool
	CountTokens     bool
	TokenizerModel  string
	Verbose         bool
}

// LoadSettings reads the bound flag values and the positional arguments into Settings.
func LoadSettings(flagSet *pflag.FlagSet, arguments []string) (Settings, error) {
	reader := viper.New()
	if bindError := reader.BindPFlags(flagSet); bindError != nil {
		return Settings{}, fmt.Errorf(errorBindFlagsFormat, bindError)
	}

	if len(arguments) > 1 {
		return Settings{}, fmt.Errorf(errorTooManyPaths, len(arguments))
	}
	rootPath := DefaultRootPath
	if len(arguments) == 1 {
		rootPath = arguments[0]
	}
	if strings.TrimSpace(rootPath) == "" {
		return Settings{}, fmt.Errorf(errorEmptyRootPath)
	}

	settings := Settings{
		RootPath:        rootPath,
		MaxDepth:        reader.GetInt(DepthKey),
		OutputPath:      strings.TrimSpace(reader.GetString(OutputKey)),
		Exclusions:      normalizeExclusions(reader.GetStringSlice(ExcludeKey)),
		CopyToClipboard: reader.GetBool(CopyKey),
		CountTokens:     reader.GetBool(TokensKey),
		TokenizerModel:  strings.TrimSpace(reader.GetString(ModelKey)),
		Verbose:         reader.GetBool(VerboseKey),
	}
	if settings.OutputPath == "" {
		return Settings{}, fmt.Errorf(errorEmptyOutputPath)
	}
	if settings.CountTokens && settings.TokenizerModel == "" {
		return Settings{}, fmt.Errorf(errorEmptyModelFormat, ModelKey, TokensKey)
	}
	return settings, nil
}

func normalizeExclusions(exclusions []string) []string {
	normalized := make([]string, 0, len(exclusions))
	for _, exclusion := range exclusions {
		trimmedExclusion := strings.TrimSuffix(strings.TrimSpace(exclusion), "/")
		if trimmedExclusion == "" {
			continue
		}
		normalized = append(normalized, trimmedExclusion)
	}
	return utils.DeduplicatePatterns(normalized)
}
