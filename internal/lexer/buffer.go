package lexer

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	lru "github.com/hashicorp/golang-lru/v2"
)

// ErrUnterminatedBlock is returned when the input ends inside a { } block.
var ErrUnterminatedBlock = errors.New("unterminated block")

// DefaultCacheSize is the number of distinct lines a Tokenizer remembers.
const DefaultCacheSize = 4096

// Tokenizer memoizes Tokenize per distinct line text. Scanners test the same
// line several times (comment, remote marker, macro) so the cache saves the
// repeated splits.
type Tokenizer struct {
	cache *lru.Cache[string, []string]
}

// NewTokenizer creates a tokenizer caching up to size lines.
func NewTokenizer(size int) *Tokenizer {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, []string](size)
	if err != nil {
		// only reachable with a non-positive size
		panic(err)
	}
	return &Tokenizer{cache: cache}
}

// Tokens returns the tokens of line. The returned slice is shared and must
// not be modified.
func (t *Tokenizer) Tokens(line string) []string {
	if tokens, ok := t.cache.Get(line); ok {
		return tokens
	}
	tokens := Tokenize(line)
	t.cache.Add(line, tokens)
	return tokens
}

// NewBuffer creates a buffer over lines backed by this tokenizer's cache.
func (t *Tokenizer) NewBuffer(lines []string) *Buffer {
	return &Buffer{lines: lines, tok: t}
}

var defaultTokenizer = NewTokenizer(DefaultCacheSize)

// Buffer is a line sequence with a cursor. A Buffer belongs to a single scan;
// it is not safe for concurrent use.
type Buffer struct {
	lines []string
	pos   int
	tok   *Tokenizer
}

// NewBuffer creates a buffer positioned at the first line.
func NewBuffer(lines []string) *Buffer {
	return defaultTokenizer.NewBuffer(lines)
}

// Sub creates a new buffer over lines sharing this buffer's tokenizer.
func (b *Buffer) Sub(lines []string) *Buffer {
	return b.tok.NewBuffer(lines)
}

// Current returns the line under the cursor, or "" past the end.
func (b *Buffer) Current() string {
	if b.AtEnd() {
		return ""
	}
	return b.lines[b.pos]
}

// Tokens returns the tokens of the current line.
func (b *Buffer) Tokens() []string {
	if b.AtEnd() {
		return nil
	}
	return b.tok.Tokens(b.lines[b.pos])
}

// Advance moves the cursor to the next line.
func (b *Buffer) Advance() {
	if b.pos < len(b.lines) {
		b.pos++
	}
}

// AtEnd reports whether the cursor is past the last line.
func (b *Buffer) AtEnd() bool {
	return b.pos >= len(b.lines)
}

// Line returns the 0-based index of the current line.
func (b *Buffer) Line() int {
	return b.pos
}

// Len returns the number of lines in the buffer.
func (b *Buffer) Len() int {
	return len(b.lines)
}

// Lines returns the raw lines in [from, to).
func (b *Buffer) Lines(from, to int) []string {
	return b.lines[from:to]
}

// ReadBlock returns the lines of the block opened on the current line, up to
// and including the line that balances its braces. A block that opens and
// closes on the current line is returned as that line alone. Text after the
// final closing brace is dropped. The cursor is left on the last line of the
// block.
func (b *Buffer) ReadBlock() ([]string, error) {
	start := b.pos
	if b.AtEnd() {
		return nil, fmt.Errorf("line %d: %w", start+1, ErrUnterminatedBlock)
	}

	open, closed := BraceCount(b.Current())
	depth := open - closed
	block := []string{b.Current()}
	for depth > 0 {
		if b.pos+1 >= len(b.lines) {
			return nil, fmt.Errorf("line %d: %w", start+1, ErrUnterminatedBlock)
		}
		b.pos++
		line := b.lines[b.pos]
		block = append(block, line)
		open, closed = BraceCount(line)
		depth += open - closed
	}

	last := strings.TrimRightFunc(block[len(block)-1], unicode.IsSpace)
	if i := strings.LastIndexByte(last, '}'); i >= 0 {
		last = last[:i+1]
	}
	block[len(block)-1] = last

	return block, nil
}

// ResizeCache changes the capacity of the cache used by NewBuffer.
func ResizeCache(size int) {
	if size > 0 {
		defaultTokenizer.cache.Resize(size)
	}
}
