package config_test

import (
	"io"
	"testing"

	"github.com/spf13/pflag"

	"github.com/temirov/dirtree/internal/config"
)

func newFlagSet() *pflag.FlagSet {
	flagSet := pflag.NewFlagSet("settings", pflag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.IntP(config.DepthKey, "d", 6, "")
	flagSet.StringP(config.OutputKey, "o", config.DefaultOutputPath, "")
	flagSet.StringArrayP(config.ExcludeKey, "e", nil, "")
	flagSet.Bool(config.CopyKey, false, "")
	flagSet.Bool(config.TokensKey, false, "")
	flagSet.String(config.ModelKey, config.DefaultTokenizerModel, "")
	flagSet.BoolP(config.VerboseKey, "v", false, "")
	return flagSet
}

func TestLoadSettings(t *testing.T) {
	testCases := []struct {
		name        string
		arguments   []string
		expectError bool
		expected    config.Settings
	}{
		{
			name:      "defaults",
			arguments: []string{},
			expected: config.Settings{
				RootPath:       config.DefaultRootPath,
				MaxDepth:       6,
				OutputPath:     config.DefaultOutputPath,
				Exclusions:     []string{},
				TokenizerModel: config.DefaultTokenizerModel,
			},
		},
		{
			name:      "short flags and path",
			arguments: []string{"src", "-d", "2", "-o", "tree.txt", "-e", "fixtures/", "-e", "fixtures", "-v"},
			expected: config.Settings{
				RootPath:       "src",
				MaxDepth:       2,
				OutputPath:     "tree.txt",
				Exclusions:     []string{"fixtures"},
				TokenizerModel: config.DefaultTokenizerModel,
				Verbose:        true,
			},
		},
		{
			name:      "long flags",
			arguments: []string{"--depth=3", "--output", "out/tree.txt", "--copy", "--tokens", "--model", "gpt-4"},
			expected: config.Settings{
				RootPath:        config.DefaultRootPath,
				MaxDepth:        3,
				OutputPath:      "out/tree.txt",
				Exclusions:      []string{},
				CopyToClipboard: true,
				CountTokens:     true,
				TokenizerModel:  "gpt-4",
			},
		},
		{
			name:        "two paths",
			arguments:   []string{"a", "b"},
			expectError: true,
		},
		{
			name:        "blank output",
			arguments:   []string{"-o", " "},
			expectError: true,
		},
		{
			name:        "tokens without model",
			arguments:   []string{"--tokens", "--model", ""},
			expectError: true,
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			flagSet := newFlagSet()
			if parseError := flagSet.Parse(testCase.arguments); parseError != nil {
				t.Fatalf("parse: %v", parseError)
			}
			settings, loadError := config.LoadSettings(flagSet, flagSet.Args())
			if testCase.expectError {
				if loadError == nil {
					t.Fatalf("expected error for %v", testCase.arguments)
				}
				return
			}
			if loadError != nil {
				t.Fatalf("LoadSettings error: %v", loadError)
			}
			if settings.RootPath != testCase.expected.RootPath ||
				settings.MaxDepth != testCase.expected.MaxDepth ||
				settings.OutputPath != testCase.expected.OutputPath ||
				settings.CopyToClipboard != testCase.expected.CopyToClipboard ||
				settings.CountTokens != testCase.expected.CountTokens ||
				settings.TokenizerModel != testCase.expected.TokenizerModel ||
				settings.Verbose != testCase.expected.Verbose {
				t.Fatalf("unexpected settings: %+v", settings)
			}
			if len(settings.Exclusions) != len(testCase.expected.Exclusions) {
				t.Fatalf("expected exclusions %v, got %v", testCase.expected.Exclusions, settings.Exclusions)
			}
			for index, exclusion := range testCase.expected.Exclusions {
				if settings.Exclusions[index] != exclusion {
					t.Fatalf("expected exclusions %v, got %v", testCase.expected.Exclusions, settings.Exclusions)
				}
			}
		})
	}
}
