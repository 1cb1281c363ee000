package rename

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// Section headers of a name-list file
const (
	SectionFunctions = "# functions"
	SectionRegex     = "# regex"
	SectionComments  = "# comments"
)

// Rule is one pattern rename. Replacement uses regexp expansion syntax ($1).
type Rule struct {
	Pattern     *regexp.Regexp
	Replacement string
}

// Tables holds the three rename tables of a name-list file
type Tables struct {
	Functions map[string]string // function name -> new name
	Patterns  []Rule            // applied in file order
	Comments  map[string]string // parameter name -> description
}

// NewTables creates empty tables
func NewTables() *Tables {
	return &Tables{
		Functions: make(map[string]string),
		Patterns:  make([]Rule, 0),
		Comments:  make(map[string]string),
	}
}

// ReadNameList reads a name-list file
func ReadNameList(path string) (*Tables, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open name list: %w", err)
	}
	defer f.Close()

	tables, err := ParseNameList(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tables, nil
}

// ParseNameList parses name-list content. Entries before any section header
// belong to the functions table. Each entry is a key followed by an optional
// value; blank lines and other "#" lines are skipped.
func ParseNameList(r io.Reader) (*Tables, error) {
	tables := NewTables()
	patternIndex := make(map[string]int)
	section := SectionFunctions

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		switch line {
		case SectionFunctions, SectionRegex, SectionComments:
			section = line
			continue
		}
		if line == "" || line[0] == '#' {
			continue
		}

		fields := strings.Fields(line)
		key, value := fields[0], strings.Join(fields[1:], " ")

		switch section {
		case SectionFunctions:
			tables.Functions[key] = value
		case SectionComments:
			tables.Comments[key] = value
		case SectionRegex:
			re, err := regexp.Compile(key)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid pattern: %w", lineNo, err)
			}
			rule := Rule{Pattern: re, Replacement: value}
			if i, ok := patternIndex[key]; ok {
				tables.Patterns[i] = rule
				continue
			}
			patternIndex[key] = len(tables.Patterns)
			tables.Patterns = append(tables.Patterns, rule)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read name list: %w", err)
	}

	return tables, nil
}
