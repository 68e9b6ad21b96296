package internal

import (
	"fmt"
	"strings"
)

// NodeKind identifies the variant of a Node
type NodeKind int

// Node kind constants
const (
	NodeKindRawText NodeKind = iota
	NodeKindVariable
	NodeKindFunction
	NodeKindString
	NodeKindNumber
	NodeKindFloat
)

// Node kind names for debugging
const (
	NodeKindNameRawText  = "RAW_TEXT"
	NodeKindNameVariable = "VARIABLE"
	NodeKindNameFunction = "FUNCTION"
	NodeKindNameString   = "STRING"
	NodeKindNameNumber   = "NUMBER"
	NodeKindNameFloat    = "FLOAT"
	NodeKindNameUnknown  = "UNKNOWN"
)

// String returns the string representation of the node kind
func (k NodeKind) String() string {
	switch k {
	case NodeKindRawText:
		return NodeKindNameRawText
	case NodeKindVariable:
		return NodeKindNameVariable
	case NodeKindFunction:
		return NodeKindNameFunction
	case NodeKindString:
		return NodeKindNameString
	case NodeKindNumber:
		return NodeKindNameNumber
	case NodeKindFloat:
		return NodeKindNameFloat
	default:
		return NodeKindNameUnknown
	}
}

// Span is a [Start, End) byte range into the template source
type Span struct {
	Start int
	End   int
}

// Text resolves the span against source
func (s Span) Text(source string) string {
	return source[s.Start:s.End]
}

// Len returns the number of bytes covered
func (s Span) Len() int {
	return s.End - s.Start
}

// Node is one parsed template element. For functions Span covers the
// name and Args holds the arguments in source order.
type Node struct {
	Kind NodeKind
	Span Span
	Pos  Position
	Args []Node
}

// NewRawTextNode creates a raw text node
func NewRawTextNode(span Span, pos Position) Node {
	return Node{Kind: NodeKindRawText, Span: span, Pos: pos}
}

// NewVariableNode creates a variable node
func NewVariableNode(span Span, pos Position) Node {
	return Node{Kind: NodeKindVariable, Span: span, Pos: pos}
}

// NewFunctionNode creates a function call node
func NewFunctionNode(name Span, pos Position, args []Node) Node {
	return Node{Kind: NodeKindFunction, Span: name, Pos: pos, Args: args}
}

// NewLiteralNode creates a string, number or float literal node
func NewLiteralNode(kind NodeKind, span Span, pos Position) Node {
	return Node{Kind: kind, Span: span, Pos: pos}
}

// Format returns a debug representation of the node resolved against source
func (n Node) Format(source string) string {
	if n.Kind != NodeKindFunction {
		return fmt.Sprintf("%s(%q)", n.Kind, n.Span.Text(source))
	}
	args := make([]string, 0, len(n.Args))
	for _, arg := range n.Args {
		args = append(args, arg.Format(source))
	}
	return fmt.Sprintf("%s(%q, [%s])", n.Kind, n.Span.Text(source), strings.Join(args, ", "))
}
