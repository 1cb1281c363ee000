// Package parser extracts function signatures and remote function records
// from brace-language client sources.
package parser

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/QTest-hq/clientgen/internal/lexer"
	"github.com/rs/zerolog/log"
)

// ErrClassNotFound is returned when the expected class header never appears.
var ErrClassNotFound = errors.New("class declaration not found")

// Default markers for generated client sources
var (
	DefaultHeaderKeywords = []string{"isolated", "client", "class"}
	DefaultRemoteMarker   = "remote"
	DefaultCommentMarker  = "#"
)

// Scanner locates the client class and walks its remote functions
type Scanner struct {
	HeaderKeywords []string // Tokens preceding the class name in its header
	RemoteMarker   string   // First token of a remote function declaration
	CommentMarker  string   // First token of a doc comment line
}

// NewScanner creates a scanner with the default markers
func NewScanner() *Scanner {
	return &Scanner{
		HeaderKeywords: slices.Clone(DefaultHeaderKeywords),
		RemoteMarker:   DefaultRemoteMarker,
		CommentMarker:  DefaultCommentMarker,
	}
}

// IsDocComment reports whether tokens belong to a doc comment line
func (s *Scanner) IsDocComment(tokens []string) bool {
	return len(tokens) > 0 && tokens[0] == s.CommentMarker
}

// IsRemoteStart reports whether tokens start a remote function declaration
func (s *Scanner) IsRemoteStart(tokens []string) bool {
	return len(tokens) > 0 && tokens[0] == s.RemoteMarker
}

// IsClassStart reports whether tokens are the header of class name, whatever
// its qualifiers: "class", name and "{" end the line. Comment lines never
// match.
func IsClassStart(tokens []string, name string) bool {
	n := len(tokens)
	if n < 3 || isComment(tokens[0]) {
		return false
	}
	return tokens[n-3] == "class" && tokens[n-2] == name && tokens[n-1] == "{"
}

func isComment(tok string) bool {
	return strings.HasPrefix(tok, "#") || strings.HasPrefix(tok, "//")
}

// LocateClass advances buf to the header of class name and returns a new
// buffer over the whole class block, header and closing brace included.
func (s *Scanner) LocateClass(buf *lexer.Buffer, name string) (*lexer.Buffer, error) {
	expected := append(slices.Clone(s.HeaderKeywords), name, "{")

	for !buf.AtEnd() {
		if slices.Equal(buf.Tokens(), expected) {
			block, err := buf.ReadBlock()
			if err != nil {
				return nil, fmt.Errorf("class %s: %w", name, err)
			}
			return buf.Sub(block), nil
		}
		buf.Advance()
	}

	return nil, fmt.Errorf("%w: %s", ErrClassNotFound, name)
}

// RemoteFunctions walks a class body and returns its remote functions in
// declaration order, each paired with the doc comment directly above it.
// Comments that are not followed by a remote function are dropped.
func (s *Scanner) RemoteFunctions(buf *lexer.Buffer) ([]RemoteFunction, error) {
	functions := make([]RemoteFunction, 0)

	for !buf.AtEnd() {
		var doc []string
		for !buf.AtEnd() && s.IsDocComment(buf.Tokens()) {
			doc = append(doc, buf.Current())
			buf.Advance()
		}
		if buf.AtEnd() {
			break
		}
		if !s.IsRemoteStart(buf.Tokens()) {
			buf.Advance()
			continue
		}

		body, err := readFunction(buf)
		if err != nil {
			return nil, err
		}
		functions = append(functions, RemoteFunction{Doc: doc, Body: body})
		buf.Advance()
	}

	log.Debug().Int("functions", len(functions)).Msg("collected remote functions")
	return functions, nil
}

// Extract locates class name in lines and returns its remote functions
func (s *Scanner) Extract(lines []string, name string) ([]RemoteFunction, error) {
	class, err := s.LocateClass(lexer.NewBuffer(lines), name)
	if err != nil {
		return nil, err
	}
	return s.RemoteFunctions(class)
}

// readFunction returns the declaration and body lines of the function at the
// cursor. Declarations may span lines before the body's brace.
func readFunction(buf *lexer.Buffer) ([]string, error) {
	start := buf.Line()
	if _, err := ParseSignature(buf); err != nil {
		return nil, err
	}
	prelude := buf.Lines(start, buf.Line())

	block, err := buf.ReadBlock()
	if err != nil {
		return nil, err
	}
	return slices.Concat(prelude, block), nil
}
