// Package types defines the cross-package data structures used by the dirscribe CLI.
package types

// Entry kinds recorded during traversal. A symbolic link is never reclassified
// as a file or directory and is never descended into.
const (
	KindFile      = "file"
	KindDirectory = "directory"
	KindSymlink   = "symlink"
)

// Entry is a single node discovered during traversal. The tree is built once
// per invocation and is read-only afterwards.
//
// Name holds the raw filesystem base name and is the only field used for path
// reconstruction. DisplayName is set for symbolic links only and carries the
// decorated form shown in the structure view. Ignored entries are retained as
// tombstones so that sibling indices stay stable for connector computation;
// a tombstone never has children.
type Entry struct {
	Name        string
	DisplayName string
	Kind        string
	Ignored     bool
	Children    []*Entry
}

// DisplayLabel returns the name to show in rendered output, preferring the
// decorated symlink form when present.
func (entry *Entry) DisplayLabel() string {
	if entry.DisplayName != "" {
		return entry.DisplayName
	}
	return entry.Name
}
