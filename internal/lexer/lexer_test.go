package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{
			name: "remote function declaration",
			line: "    remote isolated function getValues(string spreadsheetId, string range) returns Values|error {",
			want: []string{"remote", "isolated", "function", "getValues", "(", "string", "spreadsheetId", ",", "string", "range", ")", "returns", "Values|error", "{"},
		},
		{
			name: "empty parameter list",
			line: "remote function ping() returns error? {",
			want: []string{"remote", "function", "ping", "()", "returns", "error?", "{"},
		},
		{
			name: "repeated whitespace",
			line: "  a   \t b  ",
			want: []string{"a", "b"},
		},
		{
			name: "adjacent delimiters",
			line: "x = f(a,b);}",
			want: []string{"x", "=", "f", "(", "a", ",", "b", ")", ";", "}"},
		},
		{
			name: "spaced parens stay separate",
			line: "f( )",
			want: []string{"f", "(", ")"},
		},
		{
			name: "nested empty parens",
			line: "(())",
			want: []string{"(", "()", ")"},
		},
		{
			name: "macro comment",
			line: "    // includeRemoteFunctions!(GsheetClient, client)",
			want: []string{"//", "includeRemoteFunctions!", "(", "GsheetClient", ",", "client", ")"},
		},
		{
			name: "doc comment",
			line: "# + spreadsheetId - The spreadsheet",
			want: []string{"#", "+", "spreadsheetId", "-", "The", "spreadsheet"},
		},
		{
			name: "quoted string keeps delimiters",
			line: `string s = "a, b(c) {d}";`,
			want: []string{"string", "s", "=", `"a, b(c) {d}"`, ";"},
		},
		{
			name: "escaped quote",
			line: `x = "say \"hi\", ok")`,
			want: []string{"x", "=", `"say \"hi\", ok"`, ")"},
		},
		{
			name: "unterminated quote runs to end of line",
			line: `x = "open, (`,
			want: []string{"x", "=", `"open, (`},
		},
		{
			name: "empty line",
			line: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.line))
		})
	}
}

func TestTokenize_NoEmptyTokens(t *testing.T) {
	lines := []string{
		"   ",
		"((,,))",
		"{ } { }",
		"a=b;c = d ;",
		"\tremote  function   x ( int  a ,string b )returns int{",
	}
	for _, line := range lines {
		for _, tok := range Tokenize(line) {
			assert.NotEmpty(t, tok, "line %q", line)
		}
	}
}

func TestJoin(t *testing.T) {
	tests := []struct {
		tokens []string
		want   string
	}{
		{[]string{"remote", "function", "f", "(", "string", "a", ",", "int", "b", ")", "returns", "int"}, "remote function f(string a, int b) returns int"},
		{[]string{"function", "f", "()", "returns", "error?"}, "function f () returns error?"},
		{[]string{"returns", "()"}, "returns ()"},
		{[]string{"f", "(", ")"}, "f( )"},
		{[]string{"int?", "x", "=", "()"}, "int? x = ()"},
		{[]string{"int", "x", "=", "g", "(", "1", ")"}, "int x = g(1)"},
		{nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Join(tt.tokens))
		})
	}
}

func TestJoinCall(t *testing.T) {
	tokens := []string{"function", "f", "()", "returns", "()"}

	assert.Equal(t, "function f() returns ()", JoinCall(tokens, 2))
	assert.Equal(t, "function f () returns ()", JoinCall(tokens, -1))
	// only "()" is glued
	assert.Equal(t, "function f () returns ()", JoinCall(tokens, 3))
}

func TestQuoteEnd(t *testing.T) {
	assert.Equal(t, 4, QuoteEnd(`x "a" y`, 2))
	assert.Equal(t, 5, QuoteEnd(`"a\"b" c`, 0))
	assert.Equal(t, 3, QuoteEnd(`"abc`, 0))
}

func TestJoin_RoundTrip(t *testing.T) {
	lines := []string{
		"remote isolated function getValues(string spreadsheetId, string range) returns Values|error {",
		"f( )",
		"(())",
		"x = f(a,b);}",
		"  resource function get path/[string id]() returns json|error {  ",
		"map<string> headers = {}, int? limit = ()",
		`string s = "a,b", int n = 1`,
	}
	for _, line := range lines {
		t.Run(line, func(t *testing.T) {
			tokens := Tokenize(line)
			assert.Equal(t, tokens, Tokenize(Join(tokens)))
		})
	}
}

func TestBraceCount(t *testing.T) {
	open, closed := BraceCount("if (x) { y = {}; }")
	assert.Equal(t, 3, open)
	assert.Equal(t, 2, closed)

	open, closed = BraceCount(`f(string s = "{") {`)
	assert.Equal(t, 1, open)
	assert.Equal(t, 0, closed)
}

func TestIndentation(t *testing.T) {
	assert.Equal(t, "    ", Indentation("    foo"))
	assert.Equal(t, "\t", Indentation("\tfoo {"))
	assert.Equal(t, "", Indentation("foo"))
	assert.Equal(t, "  ", Indentation("  "))
}
