package internal

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// SyntaxErrorKind classifies parse failures
type SyntaxErrorKind string

// Syntax error kinds
const (
	SyntaxUnterminatedString   SyntaxErrorKind = "UNTERMINATED_STRING"
	SyntaxFloatDotted          SyntaxErrorKind = "FLOAT_DOTTED"
	SyntaxInvalidNumber        SyntaxErrorKind = "INVALID_NUMBER"
	SyntaxUnterminatedArgs     SyntaxErrorKind = "UNTERMINATED_ARGUMENTS"
	SyntaxExpectedIdentifier   SyntaxErrorKind = "EXPECTED_IDENTIFIER"
	SyntaxExpectedCloseDelimit SyntaxErrorKind = "EXPECTED_CLOSE_DELIMITER"
)

// SyntaxError is the diagnostic produced by the first scan failure.
type SyntaxError struct {
	Kind        SyntaxErrorKind
	Description string
	Offset      int
	Line        int // 0-based
	Column      int // 0-based
	Context     string
	Help        string
}

// Error implements the error interface
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at line %d, column %d", e.Description, e.Line+1, e.Column+1)
}

// Position returns the error location
func (e *SyntaxError) Position() Position {
	return Position{Offset: e.Offset, Line: e.Line, Column: e.Column, LineStart: e.Offset - e.Column}
}

// Format renders the error as a caret snippet:
//
//	unterminated string literal
//	 1 | {{ f("abc) }}
//	 . | -----^
//	     at 1:6
func (e *SyntaxError) Format() string {
	lineNo := strconv.Itoa(e.Line + 1)
	var sb strings.Builder
	sb.WriteString(e.Description)
	sb.WriteByte(CharNewline)
	sb.WriteString(fmt.Sprintf(DiagnosticGutterFmt, lineNo))
	sb.WriteString(e.Context)
	sb.WriteByte(CharNewline)
	sb.WriteString(fmt.Sprintf(DiagnosticGutterFmt, strings.Repeat(DiagnosticDotChar, len(lineNo))))
	sb.WriteString(strings.Repeat(DiagnosticArrowChar, e.Column))
	sb.WriteString(DiagnosticCaret)
	sb.WriteByte(CharNewline)
	sb.WriteString(fmt.Sprintf(DiagnosticAtFmt, e.Line+1, e.Column+1))
	if e.Help != StringValueEmpty {
		sb.WriteByte(CharNewline)
		sb.WriteString(fmt.Sprintf(DiagnosticHelpFmt, e.Help))
	}
	return sb.String()
}

// NewSyntaxError builds a diagnostic anchored at pos
func NewSyntaxError(kind SyntaxErrorKind, description, help, source string, pos Position) *SyntaxError {
	return &SyntaxError{
		Kind:        kind,
		Description: description,
		Offset:      pos.Offset,
		Line:        pos.Line,
		Column:      pos.Column,
		Context:     LineContext(source, pos),
		Help:        help,
	}
}

func newUnterminatedStringError(source string, quote Position) *SyntaxError {
	return NewSyntaxError(SyntaxUnterminatedString, ErrMsgUnterminatedString, HelpUnterminatedString, source, quote)
}

func newFloatDottedError(source string, pos Position) *SyntaxError {
	return NewSyntaxError(SyntaxFloatDotted, ErrMsgFloatDotted, HelpFloatDotted, source, pos)
}

func newInvalidNumberError(source string, pos Position) *SyntaxError {
	return NewSyntaxError(SyntaxInvalidNumber, ErrMsgInvalidNumber, HelpInvalidNumber, source, pos)
}

func newUnterminatedArgsError(source string, name Position) *SyntaxError {
	return NewSyntaxError(SyntaxUnterminatedArgs, ErrMsgUnterminatedArgs, HelpUnterminatedArgs, source, name)
}

func newExpectedIdentifierError(source string, pos Position) *SyntaxError {
	return NewSyntaxError(SyntaxExpectedIdentifier, ErrMsgExpectedIdentifier, HelpExpectedIdentifier, source, pos)
}

func newExpectedCloseError(c *Cursor, closeDelim string) *SyntaxError {
	found := ErrMsgFoundEndOfInput
	if !c.IsEOF() {
		_, size := utf8.DecodeRuneInString(c.Source()[c.Offset():])
		found = strconv.Quote(c.Slice(c.Offset(), c.Offset()+size))
	}
	return NewSyntaxError(
		SyntaxExpectedCloseDelimit,
		fmt.Sprintf(ErrMsgExpectedCloseFmt, closeDelim, found),
		fmt.Sprintf(HelpExpectedCloseFmt, closeDelim),
		c.Source(),
		c.Mark(),
	)
}
