// Package filter decides which filesystem entries are visible to the tree walk.
package filter

import (
	"sort"
	"strings"

	"github.com/temirov/dirtree/internal/utils"
)

const (
	// HiddenMarker prefixes the names of hidden entries.
	HiddenMarker       = "."
	extensionSeparator = "."
)

var defaultExcludedNames = []string{
	"node_modules", ".git", ".next", ".nuxt", "dist", "build",
	"__pycache__", ".pytest_cache", "venv", "env", ".env",
	"coverage", ".coverage", "logs", "tmp", "temp",
	".DS_Store", "Thumbs.db", ".vscode", ".idea",
	"migrations", "vendor", "target", "bin", "obj",
}

var defaultExcludedExtensions = []string{
	".log", ".tmp", ".cache", ".lock", ".pyc", ".pyo",
	".DS_Store", ".git",
}

var defaultHiddenAllowList = []string{
	".env.example", ".gitkeep", ".gitignore",
}

// Rules is the exclusion rule set applied to every entry.
// A Rules value is never modified after construction.
type Rules struct {
	excludedNames      map[string]struct{}
	excludedExtensions map[string]struct{}
	hiddenAllowList    map[string]struct{}
}

// DefaultRules returns the built-in rule set, extended with additional exact names.
func DefaultRules(additionalNames ...string) Rules {
	return NewRules(
		append(append([]string{}, defaultExcludedNames...), additionalNames...),
		defaultExcludedExtensions,
		defaultHiddenAllowList,
	)
}

// NewRules builds a rule set from explicit name, extension and allow-list members.
// Blank members are dropped.
func NewRules(excludedNames []string, excludedExtensions []string, hiddenAllowList []string) Rules {
	return Rules{
		excludedNames:      toSet(excludedNames),
		excludedExtensions: toSet(excludedExtensions),
		hiddenAllowList:    toSet(hiddenAllowList),
	}
}

// Excludes reports whether the entry named name must be hidden from the tree.
func (rules Rules) Excludes(name string) bool {
	if _, excluded := rules.excludedNames[name]; excluded {
		return true
	}
	if strings.HasPrefix(name, HiddenMarker) {
		if _, allowed := rules.hiddenAllowList[name]; !allowed {
			return true
		}
	}
	if extension := Extension(name); extension != "" {
		if _, excluded := rules.excludedExtensions[extension]; excluded {
			return true
		}
	}
	return false
}

// ExcludedNames returns the excluded names in sorted order.
func (rules Rules) ExcludedNames() []string {
	return sortedMembers(rules.excludedNames)
}

// Extension returns the suffix of name starting at its final dot.
// A dot that opens or closes the name does not start an extension,
// so ".gitignore" and "notes." have none.
func Extension(name string) string {
	separatorIndex := strings.LastIndex(name, extensionSeparator)
	if separatorIndex <= 0 || separatorIndex == len(name)-1 {
		return ""
	}
	return name[separatorIndex:]
}

func toSet(members []string) map[string]struct{} {
	set := make(map[string]struct{}, len(members))
	for _, member := range utils.DeduplicatePatterns(members) {
		trimmedMember := strings.TrimSpace(member)
		if trimmedMember == "" {
			continue
		}
		set[trimmedMember] = struct{}{}
	}
	return set
}

func sortedMembers(set map[string]struct{}) []string {
	members := make([]string, 0, len(set))
	for member := range set {
		members = append(members, member)
	}
	sort.Strings(members)
	return members
}
