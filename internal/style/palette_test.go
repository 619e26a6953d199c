package style

import (
	"strings"
	"testing"
)

// TestDisabledPaletteIsPlain verifies that a disabled palette never emits
// escape sequences.
func TestDisabledPaletteIsPlain(testingHandle *testing.T) {
	palette := NewPalette(false, map[string]string{SemanticDirectory: "green"})
	rendered := palette.Resolve(SemanticDirectory)("src")
	if rendered != "src" {
		testingHandle.Fatalf("expected plain output, got %q", rendered)
	}
	if palette.Enabled() {
		testingHandle.Fatalf("expected palette to report disabled")
	}
}

// TestEnabledPaletteEmitsEscapes verifies that an enabled palette styles
// output regardless of the ambient terminal.
func TestEnabledPaletteEmitsEscapes(testingHandle *testing.T) {
	palette := NewPalette(true, nil)
	rendered := palette.Resolve(SemanticDirectory)("src")
	if !strings.Contains(rendered, "\x1b[") {
		testingHandle.Fatalf("expected ANSI styling, got %q", rendered)
	}
	if !strings.Contains(rendered, "src") {
		testingHandle.Fatalf("expected label text to survive styling, got %q", rendered)
	}
}

// TestUnknownSemanticNameIsPlain verifies the fallback for names the palette
// does not know.
func TestUnknownSemanticNameIsPlain(testingHandle *testing.T) {
	palette := NewPalette(true, nil)
	rendered := palette.Resolve("banner")("text")
	if rendered != "text" {
		testingHandle.Fatalf("expected plain fallback, got %q", rendered)
	}
}

// TestUnknownColorNameIsPlain verifies that a misspelled color override
// degrades to plain rendering for that semantic name only.
func TestUnknownColorNameIsPlain(testingHandle *testing.T) {
	palette := NewPalette(true, map[string]string{SemanticFile: "chartreuse"})
	if rendered := palette.Resolve(SemanticFile)("main.go"); rendered != "main.go" {
		testingHandle.Fatalf("expected plain fallback for unknown color, got %q", rendered)
	}
	if rendered := palette.Resolve(SemanticDirectory)("src"); !strings.Contains(rendered, "\x1b[") {
		testingHandle.Fatalf("expected other semantic names to stay styled, got %q", rendered)
	}
}
