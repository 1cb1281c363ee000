package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/QTest-hq/clientgen/internal/lexer"
)

var (
	// ErrUnterminatedSignature is returned when input ends before the body's "{".
	ErrUnterminatedSignature = errors.New("function signature not terminated by '{'")
	// ErrUnterminatedParams is returned when input ends inside a parameter list.
	ErrUnterminatedParams = errors.New("parameter list not closed")
	// ErrMalformedParams is returned for a parameter without a type or name.
	ErrMalformedParams = errors.New("malformed parameter list")
	// ErrMissingName is returned when no name follows the function keyword.
	ErrMissingName = errors.New("function name not found")
)

// tokenStream yields the tokens of a buffer across line boundaries. It
// leaves the buffer on the line of the last token returned.
type tokenStream struct {
	buf    *lexer.Buffer
	tokens []string
	pos    int
	loaded bool
}

func (s *tokenStream) next() (string, bool) {
	for !s.buf.AtEnd() {
		if !s.loaded {
			s.tokens = s.buf.Tokens()
			s.pos = 0
			s.loaded = true
		}
		if s.pos < len(s.tokens) {
			tok := s.tokens[s.pos]
			s.pos++
			return tok, true
		}
		s.buf.Advance()
		s.loaded = false
	}
	return "", false
}

// trailing returns the raw text after the brace most recently returned by next.
func (s *tokenStream) trailing() string {
	nth := 0
	for _, tok := range s.tokens[:s.pos-1] {
		if tok == "{" {
			nth++
		}
	}
	line := s.buf.Current()
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '"':
			i = lexer.QuoteEnd(line, i)
		case '{':
			if nth == 0 {
				return strings.TrimSpace(line[i+1:])
			}
			nth--
		}
	}
	return ""
}

// ParseSignature reads the function declaration starting at the cursor, across
// as many lines as needed, and stops at the "{" that opens its body. The
// cursor is left on the line holding that brace.
func ParseSignature(buf *lexer.Buffer) (Signature, error) {
	start := buf.Line()
	stream := &tokenStream{buf: buf}
	sig := Signature{nameIndex: -1}
	expectName := false
	paramsDone := false

	for {
		tok, ok := stream.next()
		if !ok {
			return Signature{}, fmt.Errorf("line %d: %w", start+1, ErrUnterminatedSignature)
		}

		switch {
		case tok == "{":
			if sig.nameIndex < 0 {
				return Signature{}, fmt.Errorf("line %d: %w", start+1, ErrMissingName)
			}
			sig.Text = lexer.JoinCall(sig.Tokens, sig.nameIndex+1)
			sig.Trailing = stream.trailing()
			return sig, nil
		case expectName:
			expectName = false
			sig.Name = tok
			sig.nameIndex = len(sig.Tokens)
			sig.Tokens = append(sig.Tokens, tok)
		case tok == "function":
			expectName = true
			sig.Tokens = append(sig.Tokens, tok)
		case tok == "(" && sig.nameIndex >= 0 && !paramsDone:
			paramsDone = true
			sig.Tokens = append(sig.Tokens, tok)
			params, err := parseParams(stream, &sig.Tokens)
			if err != nil {
				return Signature{}, fmt.Errorf("line %d: %w", start+1, err)
			}
			sig.Params = params
		case tok == lexer.EmptyParens && sig.nameIndex >= 0:
			paramsDone = true
			sig.Tokens = append(sig.Tokens, tok)
		default:
			sig.Tokens = append(sig.Tokens, tok)
		}
	}
}

// parseParams consumes (type, name) pairs up to the ")" closing the list.
// Every consumed token is appended to accum. Defaults may hold nested
// parentheses or braces; only top-level "," and ")" end a parameter.
func parseParams(s *tokenStream, accum *[]string) ([]Parameter, error) {
	params := make([]Parameter, 0)

	for {
		typ, ok := s.next()
		if !ok {
			return nil, ErrUnterminatedParams
		}
		*accum = append(*accum, typ)
		if typ == ")" {
			return params, nil
		}
		if isDelimiter(typ) {
			return nil, fmt.Errorf("%w: unexpected %q", ErrMalformedParams, typ)
		}

		name, ok := s.next()
		if !ok {
			return nil, ErrUnterminatedParams
		}
		*accum = append(*accum, name)
		if isDelimiter(name) {
			return nil, fmt.Errorf("%w: parameter of type %s has no name", ErrMalformedParams, typ)
		}
		params = append(params, Parameter{Type: typ, Name: name})

		depth := 0
	rest:
		for {
			tok, ok := s.next()
			if !ok {
				return nil, ErrUnterminatedParams
			}
			*accum = append(*accum, tok)
			switch tok {
			case "(", "{":
				depth++
			case "}":
				depth--
			case ")":
				if depth == 0 {
					return params, nil
				}
				depth--
			case ",":
				if depth == 0 {
					break rest
				}
			}
		}
	}
}

func isDelimiter(tok string) bool {
	return tok == lexer.EmptyParens || (len(tok) == 1 && lexer.IsDelimiter(tok[0]))
}
