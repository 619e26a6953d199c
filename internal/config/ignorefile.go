// Package config loads ignore-pattern sources and the layered application
// configuration.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vkuzmin/dirscribe/internal/utils"
)

const (
	// gitDirectoryPattern excludes the Git repository directory by default.
	gitDirectoryPattern = utils.GitDirectoryName + "/"
	// commentLinePrefix marks comment lines in ignore files.
	commentLinePrefix = "#"
)

// LoadIgnoreFilePatterns reads the ignore file at ignoreFilePath and returns
// its pattern lines with comments and blank lines excluded. Negation lines
// are preserved verbatim. A missing file yields no patterns and no error.
func LoadIgnoreFilePatterns(ignoreFilePath string) ([]string, error) {
	fileHandle, openFileError := os.Open(ignoreFilePath)
	if openFileError != nil {
		if os.IsNotExist(openFileError) {
			return nil, nil
		}
		return nil, openFileError
	}
	defer func() {
		closeError := fileHandle.Close()
		if closeError != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close %s: %v\n", ignoreFilePath, closeError)
		}
	}()

	var patternLines []string
	scanner := bufio.NewScanner(fileHandle)
	for scanner.Scan() {
		trimmedLine := strings.TrimSpace(scanner.Text())
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, commentLinePrefix) {
			continue
		}
		patternLines = append(patternLines, trimmedLine)
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, scanError
	}
	return patternLines, nil
}

// LoadCombinedIgnorePatterns aggregates the ignore sources for one walk, in
// precedence order: built-in defaults first, then the tool ignore file, then
// .gitignore, then the explicitly supplied exclusion patterns. Later patterns
// override earlier ones under the matcher's last-match-wins evaluation, so
// CLI patterns take precedence over file-sourced ones.
func LoadCombinedIgnorePatterns(absoluteDirectoryPath string, exclusionPatterns []string, useGitignore bool, useIgnoreFile bool) ([]string, error) {
	combinedPatterns := []string{gitDirectoryPattern}

	if useIgnoreFile {
		ignoreFilePath := filepath.Join(absoluteDirectoryPath, utils.IgnoreFileName)
		ignoreFilePatterns, loadError := LoadIgnoreFilePatterns(ignoreFilePath)
		if loadError != nil {
			return nil, fmt.Errorf("loading %s from %s: %w", utils.IgnoreFileName, absoluteDirectoryPath, loadError)
		}
		combinedPatterns = append(combinedPatterns, ignoreFilePatterns...)
	}

	if useGitignore {
		gitIgnoreFilePath := filepath.Join(absoluteDirectoryPath, utils.GitIgnoreFileName)
		gitIgnoreFilePatterns, loadError := LoadIgnoreFilePatterns(gitIgnoreFilePath)
		if loadError != nil {
			return nil, fmt.Errorf("loading %s from %s: %w", utils.GitIgnoreFileName, absoluteDirectoryPath, loadError)
		}
		combinedPatterns = append(combinedPatterns, gitIgnoreFilePatterns...)
	}

	for _, exclusionPattern := range exclusionPatterns {
		trimmedPattern := strings.TrimSpace(exclusionPattern)
		if trimmedPattern != "" {
			combinedPatterns = append(combinedPatterns, trimmedPattern)
		}
	}

	return utils.DeduplicatePatterns(combinedPatterns), nil
}
