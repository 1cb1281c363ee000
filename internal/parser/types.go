package parser

import (
	"slices"

	"github.com/QTest-hq/clientgen/internal/lexer"
)

// Parameter represents a declared function parameter
type Parameter struct {
	Type string
	Name string
}

// Signature represents a function declaration up to the opening brace of its body
type Signature struct {
	Text     string      // Single-spaced declaration text, without the "{"
	Name     string      // Function name
	Params   []Parameter // In declaration order
	Tokens   []string    // Tokens that make up Text
	Trailing string      // Raw text after the body's "{" on the same line

	nameIndex int
}

// ParamNames returns the parameter names in declaration order
func (s Signature) ParamNames() []string {
	names := make([]string, len(s.Params))
	for i, p := range s.Params {
		names[i] = p.Name
	}
	return names
}

// WithName returns the declaration text with the function name replaced.
// Only the name token changes; parameters that happen to contain the old
// name are left alone.
func (s Signature) WithName(name string) string {
	if s.nameIndex < 0 || s.nameIndex >= len(s.Tokens) {
		return s.Text
	}
	tokens := slices.Clone(s.Tokens)
	tokens[s.nameIndex] = name
	return lexer.JoinCall(tokens, s.nameIndex+1)
}

// RemoteFunction is a remote method of the client class: the doc comment lines
// directly above it and the raw lines of its declaration and body.
type RemoteFunction struct {
	Doc  []string
	Body []string
}

// Signature parses the declaration at the top of the function body
func (f RemoteFunction) Signature() (Signature, error) {
	return ParseSignature(lexer.NewBuffer(f.Body))
}
