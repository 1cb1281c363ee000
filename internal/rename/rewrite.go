package rename

import (
	"fmt"

	"github.com/QTest-hq/clientgen/internal/lexer"
	"github.com/QTest-hq/clientgen/internal/parser"
)

// FixClassName replaces the header of class generated with header
func FixClassName(lines []string, generated, header string) []string {
	buf := lexer.NewBuffer(lines)
	out := make([]string, 0, len(lines))

	for ; !buf.AtEnd(); buf.Advance() {
		if parser.IsClassStart(buf.Tokens(), generated) {
			out = append(out, header)
			continue
		}
		out = append(out, buf.Current())
	}
	return out
}

// RenameFunctions rewrites every remote function declaration with its new
// name: the entry in names when present and non-empty, else GenericName.
// A declaration spread over several lines is rewritten as one line; bodies
// are copied unchanged.
func RenameFunctions(lines []string, names map[string]string, prefix string, s *parser.Scanner) ([]string, error) {
	buf := lexer.NewBuffer(lines)
	out := make([]string, 0, len(lines))

	for ; !buf.AtEnd(); buf.Advance() {
		if !s.IsRemoteStart(buf.Tokens()) {
			out = append(out, buf.Current())
			continue
		}

		indent := lexer.Indentation(buf.Current())
		sig, err := parser.ParseSignature(buf)
		if err != nil {
			return nil, err
		}

		name := names[sig.Name]
		if name == "" {
			name, err = GenericName(sig.Name, prefix)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", buf.Line()+1, err)
			}
		}

		decl := indent + sig.WithName(name) + " {"
		if sig.Trailing != "" {
			decl += " " + sig.Trailing
		}
		out = append(out, decl)
	}
	return out, nil
}

// ReplacePatterns applies every rule, in order, to every line
func ReplacePatterns(lines []string, rules []Rule) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		for _, rule := range rules {
			line = rule.Pattern.ReplaceAllString(line, rule.Replacement)
		}
		out[i] = line
	}
	return out
}

// FixDocComments adds a "# + <param> - <description>" line for each parameter
// of a remote function that has an entry in comments and no annotation yet.
// The new lines go after the description part of the doc comment, before
// any existing annotation.
func FixDocComments(lines []string, comments map[string]string, s *parser.Scanner) ([]string, error) {
	buf := lexer.NewBuffer(lines)
	out := make([]string, 0, len(lines))
	var doc []string

	for ; !buf.AtEnd(); buf.Advance() {
		tokens := buf.Tokens()
		switch {
		case s.IsDocComment(tokens):
			doc = append(doc, buf.Current())
		case s.IsRemoteStart(tokens):
			start := buf.Line()
			indent := lexer.Indentation(buf.Current())
			sig, err := parser.ParseSignature(buf)
			if err != nil {
				return nil, err
			}

			split := descriptionEnd(doc, s)
			out = append(out, doc[:split]...)
			for _, p := range sig.Params {
				desc, ok := comments[p.Name]
				if !ok || annotated(doc, p.Name, s) {
					continue
				}
				out = append(out, fmt.Sprintf("%s%s + %s - %s", indent, s.CommentMarker, p.Name, desc))
			}
			out = append(out, doc[split:]...)
			out = append(out, buf.Lines(start, buf.Line()+1)...)
			doc = nil
		default:
			out = append(out, doc...)
			out = append(out, buf.Current())
			doc = nil
		}
	}
	return append(out, doc...), nil
}

// descriptionEnd returns the index of the first annotation line in doc
func descriptionEnd(doc []string, s *parser.Scanner) int {
	for i, line := range doc {
		tokens := lexer.Tokenize(line)
		if len(tokens) > 1 && tokens[0] == s.CommentMarker && tokens[1] == "+" {
			return i
		}
	}
	return len(doc)
}

func annotated(doc []string, param string, s *parser.Scanner) bool {
	for _, line := range doc {
		tokens := lexer.Tokenize(line)
		if len(tokens) > 2 && tokens[0] == s.CommentMarker && tokens[1] == "+" && tokens[2] == param {
			return true
		}
	}
	return false
}
