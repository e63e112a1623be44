// Package types defines the cross-package data structures used by the dirtree CLI.
package types

// EntryKind classifies a filesystem entry met during traversal.
type EntryKind int

const (
	// EntryKindOther marks entries whose target cannot be resolved, such as broken symlinks.
	EntryKindOther EntryKind = iota
	// EntryKindDirectory marks directories, including symlinks that resolve to one.
	EntryKindDirectory
	// EntryKindFile marks regular files.
	EntryKindFile
)

// Node type names reported by EntryKind.String in traversal traces.
const (
	// NodeTypeFile names regular files.
	NodeTypeFile = "file"
	// NodeTypeDirectory names directories.
	NodeTypeDirectory = "directory"
	// NodeTypeOther names entries that are neither, such as broken symlinks.
	NodeTypeOther = "other"
)

// String returns the node type name of the kind.
func (kind EntryKind) String() string {
	switch kind {
	case EntryKindDirectory:
		return NodeTypeDirectory
	case EntryKindFile:
		return NodeTypeFile
	default:
		return NodeTypeOther
	}
}

// Entry is one filesystem object encountered during traversal.
type Entry struct {
	Name  string
	Kind  EntryKind
	Depth int
}

// IsDir reports whether the entry is descended into.
func (entry Entry) IsDir() bool {
	return entry.Kind == EntryKindDirectory
}

// IsRegularFile reports whether the entry sorts in the file group.
func (entry Entry) IsRegularFile() bool {
	return entry.Kind == EntryKindFile
}
