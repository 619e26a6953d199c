package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/vkuzmin/dirscribe/internal/utils"
)

// writeTestFile creates a file with the specified content, failing the test on error.
func writeTestFile(testingHandle *testing.T, filePath string, content string) {
	testingHandle.Helper()
	if writeError := os.WriteFile(filePath, []byte(content), 0o644); writeError != nil {
		testingHandle.Fatalf("failed to write %s: %v", filePath, writeError)
	}
}

// TestLoadIgnoreFilePatternsSkipsCommentsAndBlanks verifies line filtering and
// that negation lines pass through verbatim.
func TestLoadIgnoreFilePatternsSkipsCommentsAndBlanks(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	ignoreFilePath := filepath.Join(rootDirectory, utils.GitIgnoreFileName)
	writeTestFile(testingHandle, ignoreFilePath, "# comment\n\n*.log\n!keep.log\n  spaced.txt  \n")

	patternLines, loadError := LoadIgnoreFilePatterns(ignoreFilePath)
	if loadError != nil {
		testingHandle.Fatalf("LoadIgnoreFilePatterns failed: %v", loadError)
	}

	expectedLines := []string{"*.log", "!keep.log", "spaced.txt"}
	if !reflect.DeepEqual(patternLines, expectedLines) {
		testingHandle.Fatalf("unexpected patterns: got %v want %v", patternLines, expectedLines)
	}
}

// TestLoadIgnoreFilePatternsMissingFile verifies that a missing ignore file
// yields no patterns and no error.
func TestLoadIgnoreFilePatternsMissingFile(testingHandle *testing.T) {
	patternLines, loadError := LoadIgnoreFilePatterns(filepath.Join(testingHandle.TempDir(), "absent"))
	if loadError != nil {
		testingHandle.Fatalf("expected no error for missing file, got %v", loadError)
	}
	if len(patternLines) != 0 {
		testingHandle.Fatalf("expected no patterns, got %v", patternLines)
	}
}

// TestLoadCombinedIgnorePatternsOrderAndDedup verifies source ordering
// (defaults, tool ignore file, gitignore, CLI) and duplicate removal.
func TestLoadCombinedIgnorePatternsOrderAndDedup(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeTestFile(testingHandle, filepath.Join(rootDirectory, utils.IgnoreFileName), "tool.txt\nshared.txt\n")
	writeTestFile(testingHandle, filepath.Join(rootDirectory, utils.GitIgnoreFileName), "git.txt\nshared.txt\n")

	combinedPatterns, loadError := LoadCombinedIgnorePatterns(rootDirectory, []string{"cli.txt", " "}, true, true)
	if loadError != nil {
		testingHandle.Fatalf("LoadCombinedIgnorePatterns failed: %v", loadError)
	}

	expectedPatterns := []string{gitDirectoryPattern, "tool.txt", "shared.txt", "git.txt", "cli.txt"}
	if !reflect.DeepEqual(combinedPatterns, expectedPatterns) {
		testingHandle.Fatalf("unexpected patterns: got %v want %v", combinedPatterns, expectedPatterns)
	}
}

// TestLoadCombinedIgnorePatternsTogglesSources verifies the gitignore and
// ignore-file toggles.
func TestLoadCombinedIgnorePatternsTogglesSources(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeTestFile(testingHandle, filepath.Join(rootDirectory, utils.IgnoreFileName), "tool.txt\n")
	writeTestFile(testingHandle, filepath.Join(rootDirectory, utils.GitIgnoreFileName), "git.txt\n")

	combinedPatterns, loadError := LoadCombinedIgnorePatterns(rootDirectory, nil, false, false)
	if loadError != nil {
		testingHandle.Fatalf("LoadCombinedIgnorePatterns failed: %v", loadError)
	}

	expectedPatterns := []string{gitDirectoryPattern}
	if !reflect.DeepEqual(combinedPatterns, expectedPatterns) {
		testingHandle.Fatalf("unexpected patterns: got %v want %v", combinedPatterns, expectedPatterns)
	}
}
