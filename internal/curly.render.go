package internal

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Renderer evaluates parsed nodes against variable and function registries
type Renderer struct {
	vars   *Registry[string]
	funcs  *Registry[Func]
	logger *zap.Logger
}

// NewRenderer creates a renderer over the given registries
func NewRenderer(vars *Registry[string], funcs *Registry[Func], logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{
		vars:   vars,
		funcs:  funcs,
		logger: logger,
	}
}

// Render concatenates the value of every node. The first failing node
// aborts the call and no partial output is returned.
func (r *Renderer) Render(source string, nodes []Node) (string, error) {
	r.logger.Debug(LogMsgRenderStart, zap.Int(LogFieldNodes, len(nodes)))

	var sb strings.Builder
	sb.Grow(len(source))
	for i := range nodes {
		out, err := r.eval(source, &nodes[i])
		if err != nil {
			return StringValueEmpty, err
		}
		sb.WriteString(out)
	}

	r.logger.Debug(LogMsgRenderEnd, zap.Int(LogFieldOutput, sb.Len()))
	return sb.String(), nil
}

func (r *Renderer) eval(source string, n *Node) (string, error) {
	switch n.Kind {
	case NodeKindVariable:
		return r.evalVariable(source, n)
	case NodeKindFunction:
		return r.evalFunction(source, n)
	default:
		return n.Span.Text(source), nil
	}
}

func (r *Renderer) evalVariable(source string, n *Node) (string, error) {
	name := n.Span.Text(source)
	if value, ok := r.vars.Get(name); ok {
		return value, nil
	}
	return StringValueEmpty, &VariableNotFoundError{
		Name:        name,
		Pos:         n.Pos,
		Suggestions: SuggestNames(name, r.vars.Keys(), MaxSuggestions),
	}
}

// evalFunction evaluates every argument left to right before resolving
// the function, so argument errors win over a missing function.
func (r *Renderer) evalFunction(source string, n *Node) (string, error) {
	name := n.Span.Text(source)

	args := make([]string, len(n.Args))
	for i := range n.Args {
		value, err := r.eval(source, &n.Args[i])
		if err != nil {
			return StringValueEmpty, err
		}
		args[i] = value
	}

	fn, ok := r.funcs.Get(name)
	if !ok || fn == nil {
		return StringValueEmpty, &FunctionNotImplementedError{
			Name:        name,
			Pos:         n.Pos,
			Suggestions: SuggestNames(name, r.funcs.Keys(), MaxSuggestions),
		}
	}

	r.logger.Debug(LogMsgFunctionInvoked, zap.String(LogFieldFunction, name), zap.Int(LogFieldArgs, len(args)))
	out, err := fn(args)
	if err != nil {
		r.logger.Debug(LogMsgFunctionFailed, zap.String(LogFieldFunction, name), zap.Error(err))
		return StringValueEmpty, &FunctionCallError{Name: name, Pos: n.Pos, Err: err}
	}
	return out, nil
}

// VariableNotFoundError reports a reference to an unregistered variable
type VariableNotFoundError struct {
	Name        string
	Pos         Position
	Suggestions []string
}

// Error implements the error interface
func (e *VariableNotFoundError) Error() string {
	return withSuggestions(fmt.Sprintf(ErrFmtNameMessage, ErrMsgVariableNotFound, e.Name), e.Suggestions)
}

// FunctionNotImplementedError reports a call to an unregistered function
type FunctionNotImplementedError struct {
	Name        string
	Pos         Position
	Suggestions []string
}

// Error implements the error interface
func (e *FunctionNotImplementedError) Error() string {
	return withSuggestions(fmt.Sprintf(ErrFmtNameMessage, ErrMsgFunctionNotImplemented, e.Name), e.Suggestions)
}

// FunctionCallError wraps the error a function returned
type FunctionCallError struct {
	Name string
	Pos  Position
	Err  error
}

// Error implements the error interface
func (e *FunctionCallError) Error() string {
	return fmt.Sprintf(ErrFmtFunctionFailed, ErrMsgFunctionFailed, e.Name, e.Err)
}

// Unwrap returns the function's own error
func (e *FunctionCallError) Unwrap() error {
	return e.Err
}

func withSuggestions(msg string, suggestions []string) string {
	if len(suggestions) == 0 {
		return msg
	}
	return fmt.Sprintf(ErrFmtDidYouMean, msg, FormatSuggestions(suggestions))
}
