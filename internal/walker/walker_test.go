package walker_test

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/vkuzmin/dirscribe/internal/ignore"
	"github.com/vkuzmin/dirscribe/internal/types"
	"github.com/vkuzmin/dirscribe/internal/walker"
)

// writeTestFile creates a file with placeholder content, failing the test on error.
func writeTestFile(testingHandle *testing.T, filePath string) {
	testingHandle.Helper()
	if writeError := os.WriteFile(filePath, []byte("content\n"), 0o644); writeError != nil {
		testingHandle.Fatalf("failed to write %s: %v", filePath, writeError)
	}
}

// makeTestDirectory creates a directory, failing the test on error.
func makeTestDirectory(testingHandle *testing.T, directoryPath string) {
	testingHandle.Helper()
	if makeDirError := os.MkdirAll(directoryPath, 0o755); makeDirError != nil {
		testingHandle.Fatalf("failed to create %s: %v", directoryPath, makeDirError)
	}
}

// entryNames extracts the raw names of a level in order.
func entryNames(entries []*types.Entry) []string {
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name)
	}
	return names
}

// findEntry returns the entry with the given name, or nil.
func findEntry(entries []*types.Entry, name string) *types.Entry {
	for _, entry := range entries {
		if entry.Name == name {
			return entry
		}
	}
	return nil
}

// TestWalkSortsEntriesPerLevel verifies lexicographic ordering at each level.
func TestWalkSortsEntriesPerLevel(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "charlie.txt"))
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "alpha.txt"))
	makeTestDirectory(testingHandle, filepath.Join(rootDirectory, "bravo"))

	treeWalker := &walker.Walker{Matcher: ignore.NewMatcher(nil, true), MaxDepth: 4}
	entries, walkError := treeWalker.Walk(rootDirectory)
	if walkError != nil {
		testingHandle.Fatalf("Walk failed: %v", walkError)
	}

	expectedNames := []string{"alpha.txt", "bravo", "charlie.txt"}
	if !reflect.DeepEqual(entryNames(entries), expectedNames) {
		testingHandle.Fatalf("unexpected order: got %v want %v", entryNames(entries), expectedNames)
	}
}

// TestWalkRecordsIgnoredDirectoryAsTombstone verifies that an ignored
// directory stays in the tree without children.
func TestWalkRecordsIgnoredDirectoryAsTombstone(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	makeTestDirectory(testingHandle, filepath.Join(rootDirectory, "vendor"))
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "vendor", "lib.go"))
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "main.go"))

	treeWalker := &walker.Walker{Matcher: ignore.NewMatcher([]string{"vendor/"}, true), MaxDepth: 4}
	entries, walkError := treeWalker.Walk(rootDirectory)
	if walkError != nil {
		testingHandle.Fatalf("Walk failed: %v", walkError)
	}

	vendorEntry := findEntry(entries, "vendor")
	if vendorEntry == nil {
		testingHandle.Fatalf("expected tombstone entry for vendor")
	}
	if !vendorEntry.Ignored {
		testingHandle.Fatalf("expected vendor to be marked ignored")
	}
	if vendorEntry.Kind != types.KindDirectory {
		testingHandle.Fatalf("expected tombstone to keep its kind, got %s", vendorEntry.Kind)
	}
	if len(vendorEntry.Children) != 0 {
		testingHandle.Fatalf("expected tombstone to have no children, got %d", len(vendorEntry.Children))
	}
}

// TestWalkDepthBound verifies that entries at the bound are listed but not
// expanded further.
func TestWalkDepthBound(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	makeTestDirectory(testingHandle, filepath.Join(rootDirectory, "level1", "level2"))
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "level1", "level2", "deep.txt"))

	treeWalker := &walker.Walker{Matcher: ignore.NewMatcher(nil, true), MaxDepth: 1}
	entries, walkError := treeWalker.Walk(rootDirectory)
	if walkError != nil {
		testingHandle.Fatalf("Walk failed: %v", walkError)
	}

	levelOneEntry := findEntry(entries, "level1")
	if levelOneEntry == nil {
		testingHandle.Fatalf("expected level1 to be listed")
	}
	levelTwoEntry := findEntry(levelOneEntry.Children, "level2")
	if levelTwoEntry == nil {
		testingHandle.Fatalf("expected level2 to be listed at the depth bound")
	}
	if len(levelTwoEntry.Children) != 0 {
		testingHandle.Fatalf("expected level2 not to be expanded, got %d children", len(levelTwoEntry.Children))
	}
}

// TestWalkZeroDepthListsRootChildrenOnly verifies the inclusive depth
// semantics at depth zero.
func TestWalkZeroDepthListsRootChildrenOnly(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	makeTestDirectory(testingHandle, filepath.Join(rootDirectory, "child"))
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "child", "inner.txt"))

	treeWalker := &walker.Walker{Matcher: ignore.NewMatcher(nil, true), MaxDepth: 0}
	entries, walkError := treeWalker.Walk(rootDirectory)
	if walkError != nil {
		testingHandle.Fatalf("Walk failed: %v", walkError)
	}

	childEntry := findEntry(entries, "child")
	if childEntry == nil {
		testingHandle.Fatalf("expected child to be listed at depth 0")
	}
	if len(childEntry.Children) != 0 {
		testingHandle.Fatalf("expected child not to be expanded at depth 0")
	}
}

// TestWalkSymlinkNeverTraversed verifies that a symlinked directory is
// reported as a symlink with a decorated display name and no children.
func TestWalkSymlinkNeverTraversed(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	targetDirectory := filepath.Join(rootDirectory, "target")
	makeTestDirectory(testingHandle, targetDirectory)
	writeTestFile(testingHandle, filepath.Join(targetDirectory, "inside.txt"))

	linkPath := filepath.Join(rootDirectory, "linked")
	if symlinkError := os.Symlink(targetDirectory, linkPath); symlinkError != nil {
		testingHandle.Skipf("symlinks unavailable: %v", symlinkError)
	}

	treeWalker := &walker.Walker{Matcher: ignore.NewMatcher(nil, true), MaxDepth: 4}
	entries, walkError := treeWalker.Walk(rootDirectory)
	if walkError != nil {
		testingHandle.Fatalf("Walk failed: %v", walkError)
	}

	linkedEntry := findEntry(entries, "linked")
	if linkedEntry == nil {
		testingHandle.Fatalf("expected linked entry")
	}
	if linkedEntry.Kind != types.KindSymlink {
		testingHandle.Fatalf("expected symlink kind, got %s", linkedEntry.Kind)
	}
	if len(linkedEntry.Children) != 0 {
		testingHandle.Fatalf("expected symlink not to be traversed")
	}
	if linkedEntry.DisplayName == "" || linkedEntry.DisplayName == linkedEntry.Name {
		testingHandle.Fatalf("expected decorated display name, got %q", linkedEntry.DisplayName)
	}
}

// TestWalkIsIdempotent verifies that walking an unmodified tree twice
// produces structurally identical results.
func TestWalkIsIdempotent(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	makeTestDirectory(testingHandle, filepath.Join(rootDirectory, "pkg"))
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "pkg", "a.go"))
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "readme.md"))

	treeWalker := &walker.Walker{Matcher: ignore.NewMatcher(nil, true), MaxDepth: 4}
	firstEntries, firstError := treeWalker.Walk(rootDirectory)
	if firstError != nil {
		testingHandle.Fatalf("first Walk failed: %v", firstError)
	}
	secondEntries, secondError := treeWalker.Walk(rootDirectory)
	if secondError != nil {
		testingHandle.Fatalf("second Walk failed: %v", secondError)
	}
	if !reflect.DeepEqual(firstEntries, secondEntries) {
		testingHandle.Fatalf("expected identical trees across walks")
	}
}

// TestWalkUnreadableSubdirectoryYieldsEmptySubtree verifies that a
// subdirectory that cannot be listed stays in the tree as a childless
// directory entry without aborting the walk.
func TestWalkUnreadableSubdirectoryYieldsEmptySubtree(testingHandle *testing.T) {
	if os.Geteuid() == 0 {
		testingHandle.Skip("directory permissions are not enforced for root")
	}
	rootDirectory := testingHandle.TempDir()
	sealedDirectory := filepath.Join(rootDirectory, "sealed")
	makeTestDirectory(testingHandle, sealedDirectory)
	writeTestFile(testingHandle, filepath.Join(sealedDirectory, "hidden.txt"))
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "visible.txt"))

	if chmodError := os.Chmod(sealedDirectory, 0o000); chmodError != nil {
		testingHandle.Fatalf("failed to chmod %s: %v", sealedDirectory, chmodError)
	}
	testingHandle.Cleanup(func() {
		if chmodError := os.Chmod(sealedDirectory, 0o755); chmodError != nil {
			testingHandle.Errorf("failed to restore %s: %v", sealedDirectory, chmodError)
		}
	})

	treeWalker := &walker.Walker{Matcher: ignore.NewMatcher(nil, true), MaxDepth: 4}
	entries, walkError := treeWalker.Walk(rootDirectory)
	if walkError != nil {
		testingHandle.Fatalf("expected walk to survive an unreadable subdirectory, got %v", walkError)
	}

	sealedEntry := findEntry(entries, "sealed")
	if sealedEntry == nil {
		testingHandle.Fatalf("expected sealed directory to stay listed")
	}
	if sealedEntry.Ignored {
		testingHandle.Fatalf("expected sealed directory not to be marked ignored")
	}
	if len(sealedEntry.Children) != 0 {
		testingHandle.Fatalf("expected empty subtree, got %d children", len(sealedEntry.Children))
	}
	if findEntry(entries, "visible.txt") == nil {
		testingHandle.Fatalf("expected sibling entries to survive")
	}
}

// TestWalkUnreadableRootIsFatal verifies that a missing root aborts the walk
// with an error.
func TestWalkUnreadableRootIsFatal(testingHandle *testing.T) {
	treeWalker := &walker.Walker{Matcher: ignore.NewMatcher(nil, true), MaxDepth: 4}
	missingRoot := filepath.Join(testingHandle.TempDir(), "does-not-exist")
	if _, walkError := treeWalker.Walk(missingRoot); walkError == nil {
		testingHandle.Fatalf("expected error for unreadable root")
	}
}
