package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/vkuzmin/dirscribe/internal/highlight"
	"github.com/vkuzmin/dirscribe/internal/style"
	"github.com/vkuzmin/dirscribe/internal/tokenizer"
	"github.com/vkuzmin/dirscribe/internal/utils"
)

const (
	// fileLabelFormat labels the start of one content block.
	fileLabelFormat = "File: %s"
	// fileTrailerFormat labels the end of one content block.
	fileTrailerFormat = "End of file: %s"
	// separatorLine closes each content block.
	separatorLine = "----------------------------------------"

	// warningReadFileMessage is logged when a file cannot be read.
	warningReadFileMessage = "skipping unreadable file"
	// warningTokenCountMessage is logged when token estimation fails for a file.
	warningTokenCountMessage = "token count failed"

	extensionDotPrefix = "."
)

// EmissionSummary aggregates what the content emitter produced.
type EmissionSummary struct {
	Files  int
	Tokens int
}

// ContentEmitter filters the collected file list by the extension/name
// allow-list, reads each surviving file, silently skips binary content, and
// emits one labeled content block per text file. A highlighting failure falls
// back to a single-color rendering of the raw content; read failures are
// warned about and skipped.
type ContentEmitter struct {
	writer       io.Writer
	palette      *style.Palette
	filterList   []string
	tokenCounter tokenizer.Counter
	logger       *zap.Logger
}

// NewContentEmitter builds an emitter. filterEntries is the extension/name
// allow-list; entries are normalized to the canonical form (lowercase,
// leading dot stripped) and an empty list includes all files. tokenCounter
// may be nil to disable token counting.
func NewContentEmitter(writer io.Writer, palette *style.Palette, filterEntries []string, tokenCounter tokenizer.Counter, logger *zap.Logger) *ContentEmitter {
	return &ContentEmitter{
		writer:       writer,
		palette:      palette,
		filterList:   normalizeFilterEntries(filterEntries),
		tokenCounter: tokenCounter,
		logger:       logger,
	}
}

// normalizeFilterEntries lowercases every entry and strips a leading dot so
// "ts", ".ts" and "TS" all denote the same filter.
func normalizeFilterEntries(filterEntries []string) []string {
	normalized := make([]string, 0, len(filterEntries))
	for _, filterEntry := range filterEntries {
		trimmedEntry := strings.TrimSpace(strings.ToLower(filterEntry))
		trimmedEntry = strings.TrimPrefix(trimmedEntry, extensionDotPrefix)
		if trimmedEntry != "" {
			normalized = append(normalized, trimmedEntry)
		}
	}
	return normalized
}

// EmitAll emits a content block for every included file and returns the
// aggregate summary. A single unreadable file does not abort emission.
func (emitter *ContentEmitter) EmitAll(filePaths []string, basePath string) EmissionSummary {
	var summary EmissionSummary
	for _, filePath := range filePaths {
		emitted, tokenCount := emitter.Emit(filePath, basePath)
		if emitted {
			summary.Files++
			summary.Tokens += tokenCount
		}
	}
	return summary
}

// Emit writes one labeled content block for filePath, or nothing when the
// file is excluded by the filter, binary, or unreadable. Binary content is
// detected by sniffing a bounded prefix before the full read. It reports
// whether a block was emitted and the token count of the emitted content.
func (emitter *ContentEmitter) Emit(filePath string, basePath string) (bool, int) {
	if !emitter.includes(filepath.Base(filePath)) {
		return false, 0
	}

	if utils.IsFileBinary(filePath) {
		return false, 0
	}
	fileBytes, readError := os.ReadFile(filePath)
	if readError != nil {
		emitter.warnLogger().Warn(warningReadFileMessage,
			zap.String("path", filePath),
			zap.Error(readError))
		return false, 0
	}

	relativePath := utils.RelativePathOrSelf(filePath, basePath)
	fileContent := string(fileBytes)

	tokenCount := 0
	if emitter.tokenCounter != nil {
		countedTokens, countError := emitter.tokenCounter.CountString(fileContent)
		if countError != nil {
			emitter.warnLogger().Warn(warningTokenCountMessage,
				zap.String("path", filePath),
				zap.Error(countError))
		} else {
			tokenCount = countedTokens
		}
	}

	labelStyle := emitter.palette.Resolve(style.SemanticLabel)
	fmt.Fprintln(emitter.writer, labelStyle(fmt.Sprintf(fileLabelFormat, relativePath)))
	fmt.Fprintln(emitter.writer, emitter.styledContent(filePath, fileContent))
	fmt.Fprintln(emitter.writer, labelStyle(fmt.Sprintf(fileTrailerFormat, relativePath)))
	fmt.Fprintln(emitter.writer, separatorLine)
	return true, tokenCount
}

// styledContent runs the content through the highlighting collaborator when
// color is enabled, falling back to a single-color rendering when no lexer
// matches or highlighting fails. Highlighting failure never suppresses the
// content itself.
func (emitter *ContentEmitter) styledContent(filePath string, fileContent string) string {
	if !emitter.palette.Enabled() {
		return fileContent
	}
	highlightedContent, highlightError := highlight.Highlight(filePath, fileContent)
	if highlightError != nil {
		return emitter.palette.Resolve(style.SemanticFile)(fileContent)
	}
	return highlightedContent
}

// includes applies the inclusion predicate: with an empty allow-list every
// file is included; otherwise the file's extension or its base name with the
// extension stripped must exactly match a normalized list entry.
func (emitter *ContentEmitter) includes(baseName string) bool {
	if len(emitter.filterList) == 0 {
		return true
	}
	fileExtension := strings.ToLower(strings.TrimPrefix(filepath.Ext(baseName), extensionDotPrefix))
	fileStem := strings.ToLower(strings.TrimSuffix(baseName, filepath.Ext(baseName)))
	if fileExtension != "" && utils.ContainsString(emitter.filterList, fileExtension) {
		return true
	}
	return utils.ContainsString(emitter.filterList, fileStem)
}

// FormatSummaryLine formats the trailing token summary for content emission.
func FormatSummaryLine(summary EmissionSummary, modelName string) string {
	fileLabel := "files"
	if summary.Files == 1 {
		fileLabel = "file"
	}
	modelSuffix := ""
	if modelName != "" {
		modelSuffix = fmt.Sprintf(" (model: %s)", modelName)
	}
	return fmt.Sprintf("Summary: %d %s, %d tokens%s", summary.Files, fileLabel, summary.Tokens, modelSuffix)
}

func (emitter *ContentEmitter) warnLogger() *zap.Logger {
	if emitter.logger == nil {
		return zap.NewNop()
	}
	return emitter.logger
}
