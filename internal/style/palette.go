// Package style resolves semantic display names to ANSI styling functions.
// The resolved Palette is immutable and passed explicitly to the renderers;
// no ambient color-library state is consulted after construction.
package style

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// SprintFunc renders its arguments into a possibly styled string.
type SprintFunc func(arguments ...interface{}) string

// Semantic names understood by the Palette.
const (
	SemanticDirectory = "directory"
	SemanticSymlink   = "symlink"
	SemanticFile      = "file"
	SemanticLabel     = "label"
)

// defaultColorNames maps each semantic name to its default color.
var defaultColorNames = map[string]string{
	SemanticDirectory: "blue",
	SemanticSymlink:   "cyan",
	SemanticFile:      "white",
	SemanticLabel:     "yellow",
}

// colorAttributesByName maps configuration color names to color attributes.
var colorAttributesByName = map[string]color.Attribute{
	"black":   color.FgBlack,
	"red":     color.FgRed,
	"green":   color.FgGreen,
	"yellow":  color.FgYellow,
	"blue":    color.FgBlue,
	"magenta": color.FgMagenta,
	"cyan":    color.FgCyan,
	"white":   color.FgWhite,
}

// Palette maps semantic names to styling functions.
type Palette struct {
	enabled bool
	styles  map[string]SprintFunc
}

// NewPalette constructs a Palette. colorNameOverrides overrides the default
// color per semantic name key-by-key; unknown color names fall back to plain
// rendering. A disabled palette resolves every name to fmt.Sprint.
func NewPalette(enabled bool, colorNameOverrides map[string]string) *Palette {
	styles := make(map[string]SprintFunc, len(defaultColorNames))
	for semanticName, colorName := range defaultColorNames {
		if overrideName, hasOverride := colorNameOverrides[semanticName]; hasOverride && overrideName != "" {
			colorName = overrideName
		}
		styles[semanticName] = newSprintFunc(enabled, colorName)
	}
	return &Palette{enabled: enabled, styles: styles}
}

// Enabled reports whether the palette emits ANSI styling.
func (palette *Palette) Enabled() bool {
	return palette.enabled
}

// Resolve returns the styling function for the provided semantic name.
// Unknown names resolve to plain rendering.
func (palette *Palette) Resolve(semanticName string) SprintFunc {
	if styleFunction, known := palette.styles[semanticName]; known {
		return styleFunction
	}
	return fmt.Sprint
}

// newSprintFunc builds the styling function for one color name. Enabled
// colors are forced on per-instance so the palette does not depend on the
// color library's global TTY detection.
func newSprintFunc(enabled bool, colorName string) SprintFunc {
	if !enabled {
		return fmt.Sprint
	}
	attribute, known := colorAttributesByName[strings.ToLower(strings.TrimSpace(colorName))]
	if !known {
		return fmt.Sprint
	}
	styledColor := color.New(attribute)
	styledColor.EnableColor()
	return styledColor.SprintFunc()
}
