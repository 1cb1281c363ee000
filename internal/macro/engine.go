package macro

import (
	"errors"
	"fmt"
	"strings"

	"github.com/QTest-hq/clientgen/internal/lexer"
	"github.com/QTest-hq/clientgen/internal/parser"
	"github.com/rs/zerolog/log"
)

// ErrUnterminatedMacro is returned when a macro region has no end marker.
var ErrUnterminatedMacro = errors.New("macro region not closed by end marker")

// DefaultIndentSize is the number of spaces per nesting level in generated code
const DefaultIndentSize = 4

type state int

const (
	scanning state = iota
	expandingFunctions
	expandingType
)

func (s state) String() string {
	switch s {
	case expandingFunctions:
		return "expanding functions"
	case expandingType:
		return "expanding type"
	}
	return "scanning"
}

// Engine rewrites the macro regions of a template. Each region's previous
// content is discarded and regenerated, so expanding an expanded template
// changes nothing.
type Engine struct {
	Functions  []parser.RemoteFunction
	Clean      bool // emit only the macro and end marker lines
	IndentSize int
}

// NewEngine creates an engine generating wrappers for functions
func NewEngine(functions []parser.RemoteFunction) *Engine {
	return &Engine{
		Functions:  functions,
		IndentSize: DefaultIndentSize,
	}
}

// Expand returns the template lines with every macro region regenerated.
func (e *Engine) Expand(lines []string) ([]string, error) {
	buf := lexer.NewBuffer(lines)
	out := make([]string, 0, len(lines))
	st := scanning
	opened := 0

	for ; !buf.AtEnd(); buf.Advance() {
		line := buf.Current()

		if st != scanning {
			if isEnd(buf.Tokens()) {
				out = append(out, line)
				st = scanning
			}
			continue
		}

		m, err := Parse(buf.Tokens())
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", buf.Line()+1, err)
		}
		out = append(out, line)

		indent := lexer.Indentation(line)
		switch m := m.(type) {
		case FunctionInclusion:
			st, opened = expandingFunctions, buf.Line()
			if !e.Clean {
				wrappers, err := e.wrappers(m, indent)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", buf.Line()+1, err)
				}
				out = append(out, wrappers...)
			}
		case TypeInclusion:
			st, opened = expandingType, buf.Line()
			if !e.Clean {
				out = append(out, indent+"*"+m.Name+";")
			}
		case EndMarker:
			log.Warn().Int("line", buf.Line()+1).Msg("end marker outside a macro region")
		}

		if st != scanning {
			log.Debug().Int("line", buf.Line()+1).Stringer("state", st).Bool("clean", e.Clean).Msg("macro region")
		}
	}

	if st != scanning {
		return nil, fmt.Errorf("line %d: %w", opened+1, ErrUnterminatedMacro)
	}
	return out, nil
}

// wrappers generates a delegating wrapper for every remote function
func (e *Engine) wrappers(m FunctionInclusion, indent string) ([]string, error) {
	size := e.IndentSize
	if size <= 0 {
		size = DefaultIndentSize
	}
	inner := indent + strings.Repeat(" ", size)

	out := make([]string, 0, len(e.Functions)*4)
	for _, fn := range e.Functions {
		sig, err := fn.Signature()
		if err != nil {
			return nil, err
		}
		for _, doc := range fn.Doc {
			out = append(out, indent+strings.TrimSpace(doc))
		}
		out = append(out,
			indent+sig.Text+" {",
			inner+fmt.Sprintf("return self.%s->%s(%s);", m.ClientVar, sig.Name, strings.Join(sig.ParamNames(), ", ")),
			indent+"}",
		)
	}
	return out, nil
}
