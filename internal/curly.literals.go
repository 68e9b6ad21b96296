package internal

// lexString reads a double-quoted string literal. The cursor must be on the
// opening quote. The returned span covers the body between the quotes;
// escapes are tracked only to find the closing quote and are kept verbatim.
func lexString(c *Cursor) (Node, error) {
	quote := c.Mark()
	c.Advance()

	start := c.Mark()
	escaped := false
	for !c.IsEOF() {
		ch := c.Peek()
		switch {
		case escaped:
			escaped = false
		case ch == CharBackslash:
			escaped = true
		case ch == CharDoubleQuote:
			end := c.Offset()
			c.Advance()
			return NewLiteralNode(NodeKindString, Span{Start: start.Offset, End: end}, start), nil
		}
		c.Advance()
	}

	return Node{}, newUnterminatedStringError(c.Source(), quote)
}

// lexNumber reads an unsigned integer or float literal. The cursor must be
// on the first digit.
func lexNumber(c *Cursor) (Node, error) {
	start := c.Mark()
	dotted := false

	for !c.IsEOF() {
		ch := c.Peek()
		if isDigit(ch) {
			c.Advance()
			continue
		}
		if ch != CharDot {
			break
		}
		if dotted {
			return Node{}, newFloatDottedError(c.Source(), c.Mark())
		}
		dotted = true
		c.Advance()
	}

	if !c.IsEOF() && !isNumberTerminator(c.Peek()) {
		return Node{}, newInvalidNumberError(c.Source(), c.Mark())
	}

	kind := NodeKindNumber
	if dotted {
		kind = NodeKindFloat
	}
	return NewLiteralNode(kind, Span{Start: start.Offset, End: c.Offset()}, start), nil
}

// isNumberTerminator reports whether ch may directly follow a number literal
func isNumberTerminator(ch byte) bool {
	return ch == CharComma || ch == CharCloseParen
}
