package internal

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

// Delimiters holds the open and close tokens that frame an expression
type Delimiters struct {
	Open  string
	Close string
}

// DefaultDelimiters returns the "{{" / "}}" pair
func DefaultDelimiters() Delimiters {
	return Delimiters{Open: DefaultOpenDelim, Close: DefaultCloseDelim}
}

// Validate checks that both tokens are non-empty ASCII without whitespace
func (d Delimiters) Validate() error {
	for _, delim := range []string{d.Open, d.Close} {
		if err := validateDelimiter(delim); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgInvalidDelimiters, err)
		}
	}
	return nil
}

func validateDelimiter(delim string) error {
	if delim == StringValueEmpty {
		return errors.New(ErrMsgEmptyDelimiter)
	}
	for i := 0; i < len(delim); i++ {
		if delim[i] >= utf8.RuneSelf {
			return fmt.Errorf("%s: %q", ErrMsgNonASCIIDelimiter, delim)
		}
		if isASCIIWhitespace(delim[i]) {
			return fmt.Errorf("%s: %q", ErrMsgWhitespaceDelimiter, delim)
		}
	}
	return nil
}

// Parser turns template source into an ordered node list
type Parser struct {
	cursor *Cursor
	delims Delimiters
	logger *zap.Logger
}

// NewParser creates a parser for source. Delimiters are assumed valid.
func NewParser(source string, delims Delimiters, logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Parser{
		cursor: NewCursor(source),
		delims: delims,
		logger: logger,
	}
}

// Parse scans the whole source. The first syntax error aborts the pass and
// no nodes are returned with it.
func (p *Parser) Parse() ([]Node, error) {
	p.logger.Debug(LogMsgParserStart, zap.Int(LogFieldSource, len(p.cursor.Source())))

	var nodes []Node
	for !p.cursor.IsEOF() {
		if p.cursor.AdvanceDelimiter(p.delims.Open) {
			node, err := p.parseDelimited()
			if err != nil {
				p.logFailure(err)
				return nil, err
			}
			nodes = append(nodes, node)
			continue
		}
		nodes = append(nodes, p.parseRawText())
	}

	p.logger.Debug(LogMsgParserEnd, zap.Int(LogFieldNodes, len(nodes)))
	return nodes, nil
}

// parseDelimited parses one expression after the open delimiter and
// requires the close delimiter right after it
func (p *Parser) parseDelimited() (Node, error) {
	node, err := parseExpression(p.cursor)
	if err != nil {
		return Node{}, err
	}
	if !p.cursor.AdvanceDelimiter(p.delims.Close) {
		return Node{}, newExpectedCloseError(p.cursor, p.delims.Close)
	}
	return node, nil
}

// parseRawText consumes bytes up to the next open delimiter or EOF
func (p *Parser) parseRawText() Node {
	start := p.cursor.Mark()
	for !p.cursor.IsEOF() && !p.cursor.CheckDelimiter(p.delims.Open) {
		p.cursor.Advance()
	}
	return NewRawTextNode(Span{Start: start.Offset, End: p.cursor.Offset()}, start)
}

func (p *Parser) logFailure(err error) {
	var syntaxErr *SyntaxError
	if !errors.As(err, &syntaxErr) {
		p.logger.Debug(LogMsgParserFailed)
		return
	}
	p.logger.Debug(LogMsgParserFailed,
		zap.String(LogFieldKind, string(syntaxErr.Kind)),
		zap.Int(LogFieldLine, syntaxErr.Line+1),
		zap.Int(LogFieldColumn, syntaxErr.Column+1))
}

// Parse is a convenience wrapper around NewParser(...).Parse()
func Parse(source string, delims Delimiters, logger *zap.Logger) ([]Node, error) {
	return NewParser(source, delims, logger).Parse()
}

// FormatNodes renders a node list as one debug line per node
func FormatNodes(source string, nodes []Node) string {
	lines := make([]string, 0, len(nodes))
	for _, n := range nodes {
		lines = append(lines, n.Format(source))
	}
	return strings.Join(lines, string(CharNewline))
}
