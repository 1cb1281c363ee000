package rename

import (
	"errors"

	"github.com/QTest-hq/clientgen/internal/parser"
	"github.com/rs/zerolog/log"
)

// Defaults for the generated class header
const (
	DefaultGeneratedClass = "Client"
	DefaultClassHeader    = "isolated client class GsheetClient {"
)

// Pipeline runs the rename steps over a client file and its types file.
// Every step works on the complete output of the previous one.
type Pipeline struct {
	Tables         *Tables
	Scanner        *parser.Scanner
	Prefix         string
	GeneratedClass string // class name emitted by the generator
	ClassHeader    string // header that replaces the generated one
}

// NewPipeline creates a pipeline with the default names
func NewPipeline(tables *Tables) *Pipeline {
	if tables == nil {
		tables = NewTables()
	}
	return &Pipeline{
		Tables:         tables,
		Scanner:        parser.NewScanner(),
		Prefix:         DefaultPrefix,
		GeneratedClass: DefaultGeneratedClass,
		ClassHeader:    DefaultClassHeader,
	}
}

// Client rewrites the client source
func (p *Pipeline) Client(lines []string) ([]string, error) {
	if p.Tables == nil || p.Scanner == nil {
		return nil, errors.New("pipeline is missing its tables or scanner")
	}

	out := FixClassName(lines, p.GeneratedClass, p.ClassHeader)

	out, err := RenameFunctions(out, p.Tables.Functions, p.Prefix, p.Scanner)
	if err != nil {
		return nil, err
	}

	out = ReplacePatterns(out, p.Tables.Patterns)

	if len(p.Tables.Comments) > 0 {
		out, err = FixDocComments(out, p.Tables.Comments, p.Scanner)
		if err != nil {
			return nil, err
		}
	}

	log.Debug().
		Int("functions", len(p.Tables.Functions)).
		Int("patterns", len(p.Tables.Patterns)).
		Int("comments", len(p.Tables.Comments)).
		Msg("renamed client")
	return out, nil
}

// Types rewrites the types source; only pattern renames apply there
func (p *Pipeline) Types(lines []string) []string {
	if p.Tables == nil {
		return lines
	}
	return ReplacePatterns(lines, p.Tables.Patterns)
}
