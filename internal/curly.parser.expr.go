package internal

// parseExpression parses the body of a delimited expression: a variable
// reference or a function call. Leading and trailing whitespace is consumed.
func parseExpression(c *Cursor) (Node, error) {
	c.SkipWhitespace()

	namePos := c.Mark()
	name, err := parseIdentifier(c)
	if err != nil {
		return Node{}, err
	}
	c.SkipWhitespace()

	if c.IsEOF() || c.Peek() != CharOpenParen {
		return NewVariableNode(name, namePos), nil
	}

	c.Advance()
	args, err := parseArguments(c)
	if err != nil {
		return Node{}, err
	}
	c.SkipWhitespace()

	if !c.AdvanceDelimiter(StrCloseParen) {
		return Node{}, newUnterminatedArgsError(c.Source(), namePos)
	}
	c.SkipWhitespace()

	return NewFunctionNode(name, namePos, args), nil
}

// parseIdentifier consumes a maximal run of ASCII letters, digits and
// underscores. An empty run is an error.
func parseIdentifier(c *Cursor) (Span, error) {
	start := c.Offset()
	for !c.IsEOF() && isIdentByte(c.Peek()) {
		c.Advance()
	}
	if c.Offset() == start {
		return Span{}, newExpectedIdentifierError(c.Source(), c.Mark())
	}
	return Span{Start: start, End: c.Offset()}, nil
}

// parseArguments parses a comma-separated argument list up to, but not
// including, the closing parenthesis. A trailing comma is allowed.
func parseArguments(c *Cursor) ([]Node, error) {
	var args []Node

	for {
		c.SkipWhitespace()
		if c.IsEOF() || c.Peek() == CharCloseParen {
			break
		}

		arg, err := parseArgument(c)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		c.SkipWhitespace()
		if !c.AdvanceDelimiter(StrComma) {
			break
		}
	}

	return args, nil
}

// parseArgument dispatches on the first byte of an argument
func parseArgument(c *Cursor) (Node, error) {
	ch := c.Peek()
	switch {
	case ch == CharDoubleQuote:
		return lexString(c)
	case isDigit(ch):
		return lexNumber(c)
	default:
		return parseExpression(c)
	}
}
