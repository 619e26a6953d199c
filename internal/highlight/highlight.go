// Package highlight renders source text with ANSI syntax highlighting.
package highlight

import (
	"bytes"
	"errors"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

const (
	formatterName = "terminal256"
	styleName     = "monokai"
)

// ErrNoLexer indicates that no language could be derived from the file name.
var ErrNoLexer = errors.New("no lexer matches file")

// Highlight returns content with ANSI styling derived from fileName's
// language. It returns an error when no lexer matches or tokenization fails;
// callers are expected to fall back to a plain rendering, never to drop the
// content.
func Highlight(fileName string, content string) (string, error) {
	lexer := lexers.Match(fileName)
	if lexer == nil {
		return "", ErrNoLexer
	}
	lexer = chroma.Coalesce(lexer)

	iterator, tokenizeError := lexer.Tokenise(nil, content)
	if tokenizeError != nil {
		return "", tokenizeError
	}

	var renderedBuffer bytes.Buffer
	formatError := formatters.Get(formatterName).Format(&renderedBuffer, styles.Get(styleName), iterator)
	if formatError != nil {
		return "", formatError
	}
	return renderedBuffer.String(), nil
}
