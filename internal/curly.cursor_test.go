package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCursor_Advance_TracksLinesAndColumns(t *testing.T) {
	c := NewCursor("ab\ncd")

	c.AdvanceN(2)
	assert.Equal(t, Position{Offset: 2, Line: 0, Column: 2, LineStart: 0}, c.Mark())

	c.Advance()
	assert.Equal(t, Position{Offset: 3, Line: 1, Column: 0, LineStart: 3}, c.Mark())

	c.Advance()
	assert.Equal(t, Position{Offset: 4, Line: 1, Column: 1, LineStart: 3}, c.Mark())
}

func TestCursor_Advance_NoOpAtEOF(t *testing.T) {
	c := NewCursor("x")
	c.AdvanceN(5)

	assert.True(t, c.IsEOF())
	assert.Equal(t, 1, c.Offset())
	assert.Equal(t, byte(0), c.Peek())

	c.Advance()
	assert.Equal(t, 1, c.Offset())
}

func TestCursor_Delimiters(t *testing.T) {
	c := NewCursor("{{x")

	assert.True(t, c.CheckDelimiter("{{"))
	assert.Equal(t, 0, c.Offset(), "check must not consume")

	assert.False(t, c.AdvanceDelimiter("{%"))
	assert.Equal(t, 0, c.Offset())

	assert.True(t, c.AdvanceDelimiter("{{"))
	assert.Equal(t, 2, c.Offset())

	assert.False(t, c.CheckDelimiter("x}}"), "delimiter longer than the rest of the input")
}

func TestCursor_SkipWhitespace(t *testing.T) {
	c := NewCursor(" \t\r\n\fx")
	c.SkipWhitespace()

	assert.Equal(t, byte('x'), c.Peek())
	assert.Equal(t, 1, c.Mark().Line)
	assert.Equal(t, 1, c.Mark().Column)
}

func TestPosition_String(t *testing.T) {
	assert.Equal(t, "line 3, column 1", Position{Line: 2, Column: 0}.String())
}

func TestLineContext(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		pos      Position
		expected string
	}{
		{"single line", "hello", Position{}, "hello"},
		{"second line", "a\nbcd\ne", Position{Offset: 3, Line: 1, Column: 1, LineStart: 2}, "bcd"},
		{"crlf", "ab\r\ncd", Position{}, "ab"},
		{"at eof after newline", "ab\n", Position{Offset: 3, Line: 1, LineStart: 3}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, LineContext(tt.source, tt.pos))
		})
	}
}
