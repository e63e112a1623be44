// Package commands contains the directory tree generation logic.
package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/temirov/dirtree/internal/types"
)

const (
	branchConnector = "├── "
	cornerConnector = "└── "
	verticalPadding = "│   "
	blankPadding    = "    "
	directorySuffix = "/"
	lineSeparator   = "\n"

	// AccessDeniedPlaceholder replaces the children of a directory that cannot be listed.
	AccessDeniedPlaceholder = "[Access denied]"

	// errorAbsolutePathFormat is used when the absolute path cannot be determined.
	errorAbsolutePathFormat = "getting absolute path for %s: %w"
	// errorRootNotFoundFormat wraps ErrRootNotFound with the requested path.
	errorRootNotFoundFormat = "%w: %s"
	// errorStatRootFormat is used when the root cannot be inspected.
	errorStatRootFormat = "inspecting %s: %w"
	// errorResolveRootFormat is used when symlinks in the root cannot be followed.
	errorResolveRootFormat = "resolving %s: %w"
	// errorReadDirectoryFormat is used when a directory cannot be read.
	errorReadDirectoryFormat = "reading directory %s: %w"
)

// ErrRootNotFound reports a root path that does not exist.
var ErrRootNotFound = errors.New("path does not exist")

// GenerateTree renders the tree below rootDirectoryPath as newline-joined lines.
func (treeBuilder *TreeBuilder) GenerateTree(rootDirectoryPath string) (string, error) {
	lines, buildError := treeBuilder.BuildLines(rootDirectoryPath)
	if buildError != nil {
		return "", buildError
	}
	return strings.Join(lines, lineSeparator), nil
}

// CountLines reports how many lines a tree produced by GenerateTree holds.
func CountLines(tree string) int {
	if tree == "" {
		return 0
	}
	return strings.Count(tree, lineSeparator) + 1
}

// BuildLines renders the tree below rootDirectoryPath.
// The first line is the root header; every following line is one visible entry.
func (treeBuilder *TreeBuilder) BuildLines(rootDirectoryPath string) ([]string, error) {
	absoluteRootDirPath, absolutePathError := filepath.Abs(rootDirectoryPath)
	if absolutePathError != nil {
		return nil, fmt.Errorf(errorAbsolutePathFormat, rootDirectoryPath, absolutePathError)
	}

	if _, rootStatError := treeBuilder.fileSystem().Stat(absoluteRootDirPath); rootStatError != nil {
		if errors.Is(rootStatError, fs.ErrNotExist) {
			return nil, fmt.Errorf(errorRootNotFoundFormat, ErrRootNotFound, rootDirectoryPath)
		}
		return nil, fmt.Errorf(errorStatRootFormat, rootDirectoryPath, rootStatError)
	}
	absoluteRootDirPath, resolveError := treeBuilder.resolveRoot(absoluteRootDirPath)
	if resolveError != nil {
		return nil, fmt.Errorf(errorResolveRootFormat, rootDirectoryPath, resolveError)
	}

	lines := []string{rootHeader(absoluteRootDirPath)}
	lines, walkError := treeBuilder.walkDirectory(absoluteRootDirPath, "", 0, lines)
	if walkError != nil {
		return nil, walkError
	}
	return lines, nil
}

// resolveRoot follows symlinks in the root path on the operating system
// filesystem, so a linked root is headed and walked by its target.
func (treeBuilder *TreeBuilder) resolveRoot(absoluteRootDirPath string) (string, error) {
	if _, onDisk := treeBuilder.fileSystem().(*afero.OsFs); !onDisk {
		return absoluteRootDirPath, nil
	}
	return filepath.EvalSymlinks(absoluteRootDirPath)
}

// rootHeader names the root the way the tree header shows it.
// The filesystem root has no base name and renders as a bare separator.
func rootHeader(absoluteRootDirPath string) string {
	rootName := filepath.Base(absoluteRootDirPath)
	if rootName == string(filepath.Separator) {
		rootName = ""
	}
	return rootName + directorySuffix
}

// walkDirectory appends the lines for the children of currentDirectoryPath.
// Nothing is listed once depth reaches the configured maximum.
func (treeBuilder *TreeBuilder) walkDirectory(currentDirectoryPath string, prefix string, depth int, lines []string) ([]string, error) {
	if depth >= treeBuilder.MaxDepth {
		return lines, nil
	}

	children, listError := treeBuilder.listChildren(currentDirectoryPath, depth)
	if listError != nil {
		if errors.Is(listError, fs.ErrPermission) {
			treeBuilder.logger().Debug("access denied", zap.String("path", currentDirectoryPath))
			return append(lines, prefix+cornerConnector+AccessDeniedPlaceholder), nil
		}
		return nil, fmt.Errorf(errorReadDirectoryFormat, currentDirectoryPath, listError)
	}

	for childIndex, child := range children {
		connector := branchConnector
		childPrefix := prefix + verticalPadding
		if childIndex == len(children)-1 {
			connector = cornerConnector
			childPrefix = prefix + blankPadding
		}

		if !child.IsDir() {
			lines = append(lines, prefix+connector+child.Name)
			continue
		}

		lines = append(lines, prefix+connector+child.Name+directorySuffix)
		var walkError error
		lines, walkError = treeBuilder.walkDirectory(filepath.Join(currentDirectoryPath, child.Name), childPrefix, depth+1, lines)
		if walkError != nil {
			return nil, walkError
		}
	}

	return lines, nil
}

// listChildren returns the visible children of currentDirectoryPath,
// directories and unresolved entries first, then regular files, each group
// ordered by case-insensitive name.
func (treeBuilder *TreeBuilder) listChildren(currentDirectoryPath string, depth int) ([]types.Entry, error) {
	directoryEntries, readDirectoryError := afero.ReadDir(treeBuilder.fileSystem(), currentDirectoryPath)
	if readDirectoryError != nil {
		return nil, readDirectoryError
	}

	children := make([]types.Entry, 0, len(directoryEntries))
	for _, directoryEntry := range directoryEntries {
		entryName := directoryEntry.Name()
		childPath := filepath.Join(currentDirectoryPath, entryName)
		if treeBuilder.Rules.Excludes(entryName) {
			treeBuilder.logger().Debug("excluded", zap.String("path", childPath))
			continue
		}
		child := types.Entry{
			Name:  entryName,
			Kind:  treeBuilder.resolveKind(childPath, directoryEntry),
			Depth: depth,
		}
		treeBuilder.logger().Debug("visited", zap.String("path", childPath), zap.Stringer("kind", child.Kind), zap.Int("depth", child.Depth))
		children = append(children, child)
	}

	sort.SliceStable(children, func(leftIndex, rightIndex int) bool {
		left := children[leftIndex]
		right := children[rightIndex]
		if left.IsRegularFile() != right.IsRegularFile() {
			return !left.IsRegularFile()
		}
		leftLower := strings.ToLower(left.Name)
		rightLower := strings.ToLower(right.Name)
		if leftLower != rightLower {
			return leftLower < rightLower
		}
		return left.Name < right.Name
	})

	return children, nil
}

// resolveKind classifies an entry, following symlinks to their target.
func (treeBuilder *TreeBuilder) resolveKind(childPath string, entryInfo os.FileInfo) types.EntryKind {
	if entryInfo.Mode()&os.ModeSymlink != 0 {
		targetInfo, statError := treeBuilder.fileSystem().Stat(childPath)
		if statError != nil {
			treeBuilder.logger().Debug("unresolved entry", zap.String("path", childPath), zap.Error(statError))
			return types.EntryKindOther
		}
		entryInfo = targetInfo
	}
	switch {
	case entryInfo.IsDir():
		return types.EntryKindDirectory
	case entryInfo.Mode().IsRegular():
		return types.EntryKindFile
	default:
		return types.EntryKindOther
	}
}
