// Package lexer splits brace-language source lines into tokens and scans
// brace-delimited blocks over an in-memory line buffer.
package lexer

import "strings"

// EmptyParens is the combined token emitted for a no-argument parameter list.
const EmptyParens = "()"

// IsDelimiter reports whether c is a self-delimiting single-character token.
func IsDelimiter(c byte) bool {
	switch c {
	case '(', ')', '{', '}', ',', ';', '=':
		return true
	}
	return false
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r'
}

// Tokenize splits one line into tokens. Whitespace separates tokens and is
// never returned; each delimiter is its own token, except "()" which is
// returned as a single token. A double-quoted string is part of the token it
// appears in, delimiters and spaces included. Every other run of characters
// is one token.
func Tokenize(line string) []string {
	var tokens []string
	start := -1
	flush := func(end int) {
		if start >= 0 {
			tokens = append(tokens, line[start:end])
			start = -1
		}
	}

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			if start < 0 {
				start = i
			}
			i = QuoteEnd(line, i)
		case isSpace(c):
			flush(i)
		case c == '(' && i+1 < len(line) && line[i+1] == ')':
			flush(i)
			tokens = append(tokens, EmptyParens)
			i++
		case IsDelimiter(c):
			flush(i)
			tokens = append(tokens, line[i:i+1])
		default:
			if start < 0 {
				start = i
			}
		}
	}
	flush(len(line))

	return tokens
}

// QuoteEnd returns the index of the '"' closing the string that opens at
// line[open], or the last index of line when the string is not closed.
func QuoteEnd(line string, open int) int {
	for i := open + 1; i < len(line); i++ {
		switch line[i] {
		case '\\':
			i++
		case '"':
			return i
		}
	}
	return len(line) - 1
}

// Join rebuilds source text from tokens using single spaces, with no space
// before "(", ",", ")" and no space after "(". "()" is spaced like any
// other token; use JoinCall when it belongs to a name.
func Join(tokens []string) string {
	return JoinCall(tokens, -1)
}

// JoinCall is Join, except that when tokens[call] is "()" it is written
// directly after the token before it, as in "f()".
func JoinCall(tokens []string, call int) string {
	var b strings.Builder
	for i, tok := range tokens {
		if i > 0 && !(i == call && tok == EmptyParens) && spaceBetween(tokens[i-1], tok) {
			b.WriteByte(' ')
		}
		b.WriteString(tok)
	}
	return b.String()
}

func spaceBetween(prev, tok string) bool {
	if prev == "(" {
		// "( )" must not collapse into the "()" token
		return tok == ")"
	}
	switch tok {
	case "(", ",", ")":
		return false
	}
	return true
}

// BraceCount returns the number of opening and closing braces in line,
// ignoring braces inside double-quoted strings.
func BraceCount(line string) (open, close int) {
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '"':
			i = QuoteEnd(line, i)
		case '{':
			open++
		case '}':
			close++
		}
	}
	return open, close
}

// Indentation returns the leading whitespace of line.
func Indentation(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}
