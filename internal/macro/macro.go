// Package macro expands comment macros in template sources into wrapper
// functions that delegate to a client's remote functions.
package macro

import (
	"errors"
	"fmt"

	"github.com/QTest-hq/clientgen/internal/lexer"
)

// Macro names, written as the second token of a "//" comment line
const (
	CommentMarker          = "//"
	IncludeRemoteFunctions = "includeRemoteFunctions!"
	IncludeClient          = "includeClient!" // older spelling of IncludeRemoteFunctions
	TypeInclusionName      = "typeInclusion!"
	EndName                = "end!"
)

// ErrMalformedMacro is returned for a macro with the wrong arguments.
var ErrMalformedMacro = errors.New("malformed macro")

// Macro is one of EndMarker, TypeInclusion or FunctionInclusion. A nil Macro
// means the line holds no macro.
type Macro interface {
	macro()
}

// EndMarker closes the region opened by the preceding macro.
type EndMarker struct{}

// TypeInclusion opens a region holding a single "*Name;" type inclusion.
type TypeInclusion struct {
	Name string
}

// FunctionInclusion opens a region holding one wrapper per remote function,
// each delegating to the client held in field ClientVar. Target names the
// client class and is informational only.
type FunctionInclusion struct {
	Target    string
	ClientVar string
}

func (EndMarker) macro()         {}
func (TypeInclusion) macro()     {}
func (FunctionInclusion) macro() {}

// Parse recognizes a macro in the tokens of one line.
func Parse(tokens []string) (Macro, error) {
	if len(tokens) < 2 || tokens[0] != CommentMarker {
		return nil, nil
	}

	switch tokens[1] {
	case IncludeRemoteFunctions, IncludeClient:
		if len(tokens) != 7 || tokens[2] != "(" || tokens[4] != "," || tokens[6] != ")" {
			return nil, fmt.Errorf("%w: %s", ErrMalformedMacro, lexer.Join(tokens))
		}
		return FunctionInclusion{Target: tokens[3], ClientVar: tokens[5]}, nil
	case TypeInclusionName:
		if len(tokens) != 5 || tokens[2] != "(" || tokens[4] != ")" {
			return nil, fmt.Errorf("%w: %s", ErrMalformedMacro, lexer.Join(tokens))
		}
		return TypeInclusion{Name: tokens[3]}, nil
	case EndName:
		return EndMarker{}, nil
	}

	return nil, nil
}

func isEnd(tokens []string) bool {
	return len(tokens) >= 2 && tokens[0] == CommentMarker && tokens[1] == EndName
}
