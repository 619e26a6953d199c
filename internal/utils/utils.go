// Package utils contains general helper functions used across the dirscribe tool.
package utils

import (
	"path/filepath"
)

// Well-known file and directory names consulted during pattern loading.
const (
	// IgnoreFileName is the name of the tool's own ignore file.
	IgnoreFileName = ".dirscribeignore"
	// GitIgnoreFileName is the name of the Git ignore file.
	GitIgnoreFileName = ".gitignore"
	// GitDirectoryName is the name of the Git repository directory.
	GitDirectoryName = ".git"
	// ConfigFileName is the name of the local configuration file.
	ConfigFileName = ".dirscribe.yaml"
	// GlobalConfigDirectoryName is the directory under $HOME holding the global configuration.
	GlobalConfigDirectoryName = ".dirscribe"
	// GlobalConfigFileName is the configuration file name inside GlobalConfigDirectoryName.
	GlobalConfigFileName = "config.yaml"
)

// DeduplicatePatterns removes duplicate patterns from a slice while preserving order.
// The first occurrence of each unique pattern is kept.
func DeduplicatePatterns(patterns []string) []string {
	encounteredPatterns := make(map[string]struct{})
	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if _, exists := encounteredPatterns[pattern]; !exists {
			encounteredPatterns[pattern] = struct{}{}
			result = append(result, pattern)
		}
	}
	return result
}

// ContainsString checks if a slice of strings contains a specific target string.
func ContainsString(stringSlice []string, targetString string) bool {
	for _, currentString := range stringSlice {
		if currentString == targetString {
			return true
		}
	}
	return false
}

// RelativePathOrSelf calculates the forward-slash relative path from root to
// fullPath. Returns the cleaned fullPath if relative calculation fails and "."
// if fullPath and root resolve to the same directory. All ignore matching is
// anchored on paths produced by this function.
func RelativePathOrSelf(fullPath, root string) string {
	cleanPath := filepath.Clean(fullPath)
	absoluteRoot, absoluteError := filepath.Abs(root)
	if absoluteError != nil {
		return cleanPath
	}
	cleanAbsoluteRoot := filepath.Clean(absoluteRoot)

	if cleanPath == cleanAbsoluteRoot {
		return "."
	}

	relativePath, relativeError := filepath.Rel(cleanAbsoluteRoot, cleanPath)
	if relativeError != nil {
		return cleanPath
	}
	return filepath.ToSlash(relativePath)
}
