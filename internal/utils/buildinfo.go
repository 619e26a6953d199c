package utils

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime/debug"
	"strings"
)

const unknownVersion = "unknown"

// GetApplicationVersion attempts to determine the application version.
// It checks Go build info first, then falls back to git describe when the
// binary runs from a checkout.
func GetApplicationVersion() string {
	buildInfo, buildInfoAvailable := debug.ReadBuildInfo()
	if buildInfoAvailable && buildInfo.Main.Version != "" && buildInfo.Main.Version != "(devel)" {
		return buildInfo.Main.Version
	}

	gitDirectoryPath, gitDirectoryError := findGitDirectory(".")
	if gitDirectoryError == nil && gitDirectoryPath != "" {
		// #nosec G204
		gitDescribeCommand := exec.Command("git", "describe", "--tags", "--always", "--dirty")
		gitDescribeCommand.Dir = gitDirectoryPath
		gitDescribeOutput, describeError := gitDescribeCommand.Output()
		if describeError == nil && len(gitDescribeOutput) > 0 {
			return strings.TrimSpace(string(gitDescribeOutput))
		}
	}

	return unknownVersion
}

// findGitDirectory searches upward from the provided starting directory until
// it locates a directory containing the .git folder.
func findGitDirectory(startDirectory string) (string, error) {
	absoluteStartDirectory, absoluteError := filepath.Abs(startDirectory)
	if absoluteError != nil {
		return "", fmt.Errorf("failed to get absolute path for %s: %w", startDirectory, absoluteError)
	}

	currentDirectory := absoluteStartDirectory
	for {
		gitPath := filepath.Join(currentDirectory, GitDirectoryName)
		fileInformation, statError := os.Stat(gitPath)
		if statError == nil && fileInformation.IsDir() {
			return currentDirectory, nil
		}

		parentDirectory := filepath.Dir(currentDirectory)
		if parentDirectory == currentDirectory {
			break
		}
		currentDirectory = parentDirectory
	}

	return "", fmt.Errorf("%s directory not found in or above %s", GitDirectoryName, absoluteStartDirectory)
}
