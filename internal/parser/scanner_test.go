package parser

import (
	"testing"

	"github.com/QTest-hq/clientgen/internal/lexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const clientSource = `import ballerina/http;

# Unrelated comment
public type Values record {
    string range;
};

# The sheets client
isolated client class GsheetClient {
    final http:Client clientEp;

    # Gets values
    #
    # + spreadsheetId - The spreadsheet
    # + return - The values
    remote isolated function getValues(string spreadsheetId, string range) returns Values|error {
        if range == "" {
            return error("empty");
        }
        return self.clientEp->get(spreadsheetId);
    }

    # A helper that must not be picked up
    isolated function helper() returns string {
        return "x";
    }

    # Clears values
    remote isolated function clearValues(string spreadsheetId,
            string range) returns error? {
        return;
    }
}

isolated client class Other {
    remote isolated function ignored() returns error? {
    }
}
`

func TestScanner_Extract(t *testing.T) {
	s := NewScanner()

	functions, err := s.Extract(splitLines(clientSource), "GsheetClient")
	require.NoError(t, err)
	require.Len(t, functions, 2)

	first := functions[0]
	assert.Equal(t, []string{
		"    # Gets values",
		"    #",
		"    # + spreadsheetId - The spreadsheet",
		"    # + return - The values",
	}, first.Doc)
	assert.Len(t, first.Body, 6)
	assert.Contains(t, first.Body[0], "function getValues(")
	assert.Equal(t, "    }", first.Body[len(first.Body)-1])

	second := functions[1]
	assert.Equal(t, []string{"    # Clears values"}, second.Doc)
	assert.Len(t, second.Body, 4)
	sig, err := second.Signature()
	require.NoError(t, err)
	assert.Equal(t, "clearValues", sig.Name)
	assert.Equal(t, []string{"spreadsheetId", "range"}, sig.ParamNames())
}

func TestScanner_LocateClass(t *testing.T) {
	s := NewScanner()
	buf := lexer.NewBuffer(splitLines(clientSource))

	class, err := s.LocateClass(buf, "Other")
	require.NoError(t, err)
	assert.Equal(t, 4, class.Len())
	assert.Equal(t, []string{"isolated", "client", "class", "Other", "{"}, class.Tokens())
}

func TestScanner_LocateClass_HeaderMustMatchExactly(t *testing.T) {
	s := NewScanner()

	// "public" makes the header differ from the expected tokens
	_, err := s.LocateClass(lexer.NewBuffer([]string{"public isolated client class Other {", "}"}), "Other")
	assert.ErrorIs(t, err, ErrClassNotFound)

	s.HeaderKeywords = []string{"public", "isolated", "client", "class"}
	_, err = s.LocateClass(lexer.NewBuffer([]string{"public isolated client class Other {", "}"}), "Other")
	assert.NoError(t, err)
}

func TestScanner_LocateClass_NotFound(t *testing.T) {
	_, err := NewScanner().Extract(splitLines(clientSource), "Missing")
	assert.ErrorIs(t, err, ErrClassNotFound)
}

func TestScanner_LocateClass_Unterminated(t *testing.T) {
	_, err := NewScanner().Extract([]string{"isolated client class C {", "    remote function f() {}"}, "C")
	assert.ErrorIs(t, err, lexer.ErrUnterminatedBlock)
}

func TestScanner_RemoteFunctions_CommentAtEnd(t *testing.T) {
	buf := lexer.NewBuffer([]string{
		"remote function a() {",
		"}",
		"# dangling",
	})
	functions, err := NewScanner().RemoteFunctions(buf)
	require.NoError(t, err)
	require.Len(t, functions, 1)
	assert.Empty(t, functions[0].Doc)
}

func TestScanner_RemoteFunctions_SingleLineBody(t *testing.T) {
	buf := lexer.NewBuffer([]string{
		"# one liner",
		"remote function a() returns int { return 1; } // done",
		"remote function b() {",
		"}",
	})
	functions, err := NewScanner().RemoteFunctions(buf)
	require.NoError(t, err)
	require.Len(t, functions, 2)
	assert.Equal(t, []string{"remote function a() returns int { return 1; }"}, functions[0].Body)
	assert.Empty(t, functions[1].Doc)
}

func TestScanner_RemoteFunctions_Unterminated(t *testing.T) {
	buf := lexer.NewBuffer([]string{"remote function a() {", "    x;"})
	_, err := NewScanner().RemoteFunctions(buf)
	assert.ErrorIs(t, err, lexer.ErrUnterminatedBlock)
}

func TestIsClassStart(t *testing.T) {
	assert.True(t, IsClassStart([]string{"public", "isolated", "client", "class", "Client", "{"}, "Client"))
	assert.False(t, IsClassStart([]string{"public", "type", "Client", "record", "{"}, "Client"))
	assert.False(t, IsClassStart([]string{"class", "ClientX", "{"}, "Client"))
	assert.False(t, IsClassStart([]string{"#", "The", "Client", "class"}, "Client"))
	assert.True(t, IsClassStart([]string{"class", "Client", "{"}, "Client"))
}

func TestIsClassStart_IgnoresMentions(t *testing.T) {
	lines := []string{
		"# Wraps the generated class Client for users",
		"# see class Client {",
		"// class Client {",
		"#class Client {",
		"string s = class Client;",
		"isolated client class Client {} // inline",
	}
	for _, line := range lines {
		t.Run(line, func(t *testing.T) {
			assert.False(t, IsClassStart(lexer.Tokenize(line), "Client"))
		})
	}
}

func splitLines(s string) []string {
	lines := make([]string, 0)
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}
