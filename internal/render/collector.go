package render

import (
	"path/filepath"

	"github.com/vkuzmin/dirscribe/internal/types"
)

// CollectFiles flattens the walked tree into the ordered sequence of absolute
// regular-file paths, reconstructing each path from the nested raw names so
// symlink display decoration never reaches the joined path. Tombstones are
// skipped, and since an ignored directory carries no children its whole
// subtree is skipped with it. Symbolic links are not collected: they are
// rendered in the structure view only. The result preserves the walker's
// depth-first, per-level-sorted order.
func CollectFiles(entries []*types.Entry, basePath string) []string {
	var filePaths []string
	for _, entry := range entries {
		if entry.Ignored {
			continue
		}
		entryPath := filepath.Join(basePath, entry.Name)
		switch entry.Kind {
		case types.KindDirectory:
			filePaths = append(filePaths, CollectFiles(entry.Children, entryPath)...)
		case types.KindFile:
			filePaths = append(filePaths, entryPath)
		}
	}
	return filePaths
}
