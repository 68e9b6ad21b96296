package internal

import "fmt"

// Position is a location in the template source.
// Line and Column are 0-based; Column counts bytes since the last newline.
type Position struct {
	Offset    int // Byte offset from start
	Line      int // 0-based line number
	Column    int // 0-based byte column
	LineStart int // Offset of the first byte of Line
}

// String returns a human-readable, 1-based position
func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line+1, p.Column+1)
}

// Cursor walks a template source one byte at a time and keeps
// line/column bookkeeping for diagnostics.
type Cursor struct {
	source    string
	pos       int
	line      int
	column    int
	lineStart int
}

// NewCursor creates a cursor at the start of source
func NewCursor(source string) *Cursor {
	return &Cursor{source: source}
}

// Source returns the full input
func (c *Cursor) Source() string {
	return c.source
}

// Offset returns the current byte offset
func (c *Cursor) Offset() int {
	return c.pos
}

// Mark snapshots the current position
func (c *Cursor) Mark() Position {
	return Position{
		Offset:    c.pos,
		Line:      c.line,
		Column:    c.column,
		LineStart: c.lineStart,
	}
}

// IsEOF reports whether the cursor is past the last byte
func (c *Cursor) IsEOF() bool {
	return c.pos >= len(c.source)
}

// Peek returns the current byte, or 0 at EOF
func (c *Cursor) Peek() byte {
	if c.IsEOF() {
		return 0
	}
	return c.source[c.pos]
}

// Advance consumes one byte. It is a no-op at EOF.
func (c *Cursor) Advance() {
	if c.IsEOF() {
		return
	}
	if c.source[c.pos] == CharNewline {
		c.line++
		c.column = 0
		c.lineStart = c.pos + 1
	} else {
		c.column++
	}
	c.pos++
}

// AdvanceN consumes up to n bytes
func (c *Cursor) AdvanceN(n int) {
	for i := 0; i < n && !c.IsEOF(); i++ {
		c.Advance()
	}
}

// CheckDelimiter reports whether the remaining input starts with delim,
// without consuming anything.
func (c *Cursor) CheckDelimiter(delim string) bool {
	end := c.pos + len(delim)
	return end <= len(c.source) && c.source[c.pos:end] == delim
}

// AdvanceDelimiter consumes delim only if the remaining input starts with it.
func (c *Cursor) AdvanceDelimiter(delim string) bool {
	if !c.CheckDelimiter(delim) {
		return false
	}
	c.AdvanceN(len(delim))
	return true
}

// SkipWhitespace consumes ASCII whitespace
func (c *Cursor) SkipWhitespace() {
	for !c.IsEOF() && isASCIIWhitespace(c.Peek()) {
		c.Advance()
	}
}

// Slice returns source[start:end]
func (c *Cursor) Slice(start, end int) string {
	return c.source[start:end]
}

// LineContext returns the full source line that contains pos,
// without its trailing newline.
func LineContext(source string, pos Position) string {
	start := pos.LineStart
	if start > len(source) {
		start = len(source)
	}
	end := start
	for end < len(source) && source[end] != CharNewline {
		end++
	}
	line := source[start:end]
	if n := len(line); n > 0 && line[n-1] == CharCarriageRet {
		line = line[:n-1]
	}
	return line
}

// Character classification helpers

func isASCIIWhitespace(ch byte) bool {
	return ch == CharSpace || ch == CharTab || ch == CharNewline || ch == CharCarriageRet || ch == CharFormFeed
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentByte(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || isDigit(ch) || ch == CharUnderscore
}
