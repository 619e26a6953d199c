// Package tokenizer estimates token counts for emitted file content.
package tokenizer

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

const (
	defaultModel        = "gpt-4o"
	defaultEncodingName = "cl100k_base"
)

// Counter estimates token counts for text content.
type Counter interface {
	Name() string
	CountString(input string) (int, error)
}

// NewCounter returns a Counter for the requested model along with the name
// actually selected. Models without a dedicated encoding fall back to the
// default encoding rather than failing.
func NewCounter(model string) (Counter, string, error) {
	selectedModel := strings.ToLower(strings.TrimSpace(model))
	if selectedModel == "" {
		selectedModel = defaultModel
	}

	encoding, encodingError := tiktoken.EncodingForModel(selectedModel)
	if encodingError == nil && encoding != nil {
		return encodingCounter{encoding: encoding, name: selectedModel}, selectedModel, nil
	}

	fallbackEncoding, fallbackError := tiktoken.GetEncoding(defaultEncodingName)
	if fallbackError != nil {
		return nil, "", fmt.Errorf("initialize fallback tokenizer: %w", fallbackError)
	}
	return encodingCounter{encoding: fallbackEncoding, name: defaultEncodingName}, defaultEncodingName, nil
}

// encodingCounter counts tokens with a tiktoken encoding.
type encodingCounter struct {
	encoding *tiktoken.Tiktoken
	name     string
}

// Name returns the encoding or model name backing the counter.
func (counter encodingCounter) Name() string {
	return counter.name
}

// CountString returns the number of tokens in input.
func (counter encodingCounter) CountString(input string) (int, error) {
	return len(counter.encoding.Encode(input, nil, nil)), nil
}
