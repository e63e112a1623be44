package commands

import (
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/temirov/dirtree/internal/filter"
)

// DefaultMaxDepth is the number of directory levels descended when no depth is given.
const DefaultMaxDepth = 6

// TreeBuilder renders directory trees using configured options.
// A TreeBuilder holds no state between calls, so one value may render many roots.
type TreeBuilder struct {
	Rules      filter.Rules
	MaxDepth   int
	FileSystem afero.Fs
	Logger     *zap.Logger
}

// NewTreeBuilder returns a builder reading the operating system filesystem.
func NewTreeBuilder(rules filter.Rules, maxDepth int, logger *zap.Logger) *TreeBuilder {
	return &TreeBuilder{
		Rules:      rules,
		MaxDepth:   maxDepth,
		FileSystem: afero.NewOsFs(),
		Logger:     logger,
	}
}

func (treeBuilder *TreeBuilder) fileSystem() afero.Fs {
	if treeBuilder.FileSystem == nil {
		return afero.NewOsFs()
	}
	return treeBuilder.FileSystem
}

func (treeBuilder *TreeBuilder) logger() *zap.Logger {
	if treeBuilder.Logger == nil {
		return zap.NewNop()
	}
	return treeBuilder.Logger
}
