// Package walker builds the classified directory tree consumed by the
// structure renderer and the file collector. The filesystem is walked exactly
// once per invocation; both consumers read the resulting tree.
package walker

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/vkuzmin/dirscribe/internal/ignore"
	"github.com/vkuzmin/dirscribe/internal/types"
	"github.com/vkuzmin/dirscribe/internal/utils"
)

const (
	// warningSkipDirectoryMessage is logged when a subdirectory cannot be listed.
	warningSkipDirectoryMessage = "skipping unreadable directory"
	// errorReadRootFormat reports a failure to list the walk root itself.
	errorReadRootFormat = "reading root directory %s: %w"
	// symlinkDecorationSeparator joins a symlink name with its target in the display name.
	symlinkDecorationSeparator = " -> "
)

// entryCollator orders sibling entries with locale-aware lexicographic comparison.
var entryCollator = collate.New(language.Und)

// Walker traverses a directory tree up to MaxDepth directory levels below the
// root, classifying each entry and consulting the ignore Matcher with paths
// relative to the walk root. Entries matching an ignore rule are retained as
// tombstones so downstream views can suppress them without re-walking.
type Walker struct {
	Matcher  *ignore.Matcher
	MaxDepth int
	Logger   *zap.Logger
}

// Walk lists the root's direct children (depth 0) and recurses below them.
// An unreadable root is a fatal error; unreadable subdirectories are logged
// and yield empty subtrees instead of aborting the traversal.
func (walker *Walker) Walk(rootPath string) ([]*types.Entry, error) {
	directoryEntries, readError := os.ReadDir(rootPath)
	if readError != nil {
		return nil, fmt.Errorf(errorReadRootFormat, rootPath, readError)
	}
	return walker.buildLevel(rootPath, rootPath, directoryEntries, 0), nil
}

// walkLevel returns the entries of currentPath, or an empty sequence once the
// depth bound is exceeded or the directory cannot be listed.
func (walker *Walker) walkLevel(currentPath string, rootPath string, depth int) []*types.Entry {
	if depth > walker.MaxDepth {
		return nil
	}
	directoryEntries, readError := os.ReadDir(currentPath)
	if readError != nil {
		walker.logger().Warn(warningSkipDirectoryMessage,
			zap.String("path", currentPath),
			zap.Error(readError))
		return nil
	}
	return walker.buildLevel(currentPath, rootPath, directoryEntries, depth)
}

// buildLevel classifies the listed entries of one directory level and sorts
// them by name. The symlink check precedes the directory check: a symlinked
// directory is reported as a symlink and never traversed.
func (walker *Walker) buildLevel(currentPath string, rootPath string, directoryEntries []os.DirEntry, depth int) []*types.Entry {
	var entries []*types.Entry

	for _, directoryEntry := range directoryEntries {
		entryPath := filepath.Join(currentPath, directoryEntry.Name())
		relativePath := utils.RelativePathOrSelf(entryPath, rootPath)

		isSymlink := directoryEntry.Type()&os.ModeSymlink != 0
		isDirectory := !isSymlink && directoryEntry.IsDir()

		entry := &types.Entry{
			Name: directoryEntry.Name(),
			Kind: classifyEntry(isSymlink, isDirectory),
		}

		if walker.Matcher != nil && walker.Matcher.Ignores(relativePath, isDirectory) {
			entry.Ignored = true
			entries = append(entries, entry)
			continue
		}

		switch {
		case isSymlink:
			entry.DisplayName = decorateSymlinkName(entryPath, directoryEntry.Name())
		case isDirectory:
			entry.Children = walker.walkLevel(entryPath, rootPath, depth+1)
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(firstIndex, secondIndex int) bool {
		return entryCollator.CompareString(entries[firstIndex].Name, entries[secondIndex].Name) < 0
	})
	return entries
}

// classifyEntry maps the lstat-derived flags onto an entry kind.
func classifyEntry(isSymlink bool, isDirectory bool) string {
	switch {
	case isSymlink:
		return types.KindSymlink
	case isDirectory:
		return types.KindDirectory
	}
	return types.KindFile
}

// decorateSymlinkName returns the display form "name -> target", falling back
// to the bare name when the link target cannot be read.
func decorateSymlinkName(entryPath string, entryName string) string {
	linkTarget, readlinkError := os.Readlink(entryPath)
	if readlinkError != nil {
		return entryName
	}
	return entryName + symlinkDecorationSeparator + linkTarget
}

func (walker *Walker) logger() *zap.Logger {
	if walker.Logger == nil {
		return zap.NewNop()
	}
	return walker.Logger
}
