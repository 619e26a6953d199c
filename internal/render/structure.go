// Package render contains the consumers of the walked tree: the structure
// renderer, the file collector, and the content emitter. All three operate on
// the tree produced by a single walk; the filesystem is never re-walked.
package render

import (
	"fmt"
	"io"

	"github.com/vkuzmin/dirscribe/internal/style"
	"github.com/vkuzmin/dirscribe/internal/types"
)

// Default connector glyphs.
const (
	defaultBranchConnector = "├── "
	defaultLastConnector   = "└── "
	defaultVerticalFiller  = "│   "
	defaultSpaceFiller     = "    "

	directorySuffix = "/"
)

// Symbol map keys recognized by SymbolsFromMap.
const (
	symbolKeyBranch   = "branch"
	symbolKeyLast     = "last"
	symbolKeyVertical = "vertical"
	symbolKeySpace    = "space"
)

// Symbols is the resolved connector glyph set used by the structure renderer.
type Symbols struct {
	Branch   string
	Last     string
	Vertical string
	Space    string
}

// DefaultSymbols returns the standard box-drawing glyph set.
func DefaultSymbols() Symbols {
	return Symbols{
		Branch:   defaultBranchConnector,
		Last:     defaultLastConnector,
		Vertical: defaultVerticalFiller,
		Space:    defaultSpaceFiller,
	}
}

// SymbolsFromMap overlays configured glyph overrides onto the defaults
// key-by-key. Unknown keys are ignored, empty values keep the default.
func SymbolsFromMap(overrides map[string]string) Symbols {
	symbols := DefaultSymbols()
	for overrideKey, overrideValue := range overrides {
		if overrideValue == "" {
			continue
		}
		switch overrideKey {
		case symbolKeyBranch:
			symbols.Branch = overrideValue
		case symbolKeyLast:
			symbols.Last = overrideValue
		case symbolKeyVertical:
			symbols.Vertical = overrideValue
		case symbolKeySpace:
			symbols.Space = overrideValue
		}
	}
	return symbols
}

// StructureRenderer writes the connector-annotated tree view. Tombstone
// entries produce no line and are not recursed into, but they keep their
// original sibling index: the last-sibling test is computed on the full
// entry slice, so an ignored middle entry does not shift which sibling is
// rendered with the end connector.
type StructureRenderer struct {
	Writer  io.Writer
	Palette *style.Palette
	Symbols Symbols
}

// RenderTree writes the root label followed by the tree of entries.
func (renderer *StructureRenderer) RenderTree(rootLabel string, entries []*types.Entry) {
	fmt.Fprintln(renderer.Writer, renderer.Palette.Resolve(style.SemanticDirectory)(rootLabel))
	renderer.renderLevel(entries, "")
}

// renderLevel emits one directory level, accumulating the ancestor prefix
// down the recursion: space filler under a last entry, vertical filler
// otherwise.
func (renderer *StructureRenderer) renderLevel(entries []*types.Entry, ancestorPrefix string) {
	for entryIndex, entry := range entries {
		if entry.Ignored {
			continue
		}

		connector := renderer.Symbols.Branch
		childPrefix := ancestorPrefix + renderer.Symbols.Vertical
		if entryIndex == len(entries)-1 {
			connector = renderer.Symbols.Last
			childPrefix = ancestorPrefix + renderer.Symbols.Space
		}

		fmt.Fprintf(renderer.Writer, "%s%s%s\n", ancestorPrefix, connector, renderer.styledLabel(entry))

		if entry.Kind == types.KindDirectory {
			renderer.renderLevel(entry.Children, childPrefix)
		}
	}
}

// styledLabel applies the visual classification: directory > symlink > file.
func (renderer *StructureRenderer) styledLabel(entry *types.Entry) string {
	switch entry.Kind {
	case types.KindDirectory:
		return renderer.Palette.Resolve(style.SemanticDirectory)(entry.Name + directorySuffix)
	case types.KindSymlink:
		return renderer.Palette.Resolve(style.SemanticSymlink)(entry.DisplayLabel())
	}
	return renderer.Palette.Resolve(style.SemanticFile)(entry.Name)
}
