package internal

import "fmt"

// Func is the signature of every callable template function. Arguments
// arrive already evaluated, in source order.
type Func func(args []string) (string, error)

// FuncErrorKind classifies failures raised by template functions
type FuncErrorKind string

// Function error kinds
const (
	FuncErrInvalidArgument     FuncErrorKind = "INVALID_ARGUMENT"
	FuncErrInvalidType         FuncErrorKind = "INVALID_TYPE"
	FuncErrArgumentsIncomplete FuncErrorKind = "ARGUMENTS_INCOMPLETE"
	FuncErrRuntime             FuncErrorKind = "RUNTIME"
)

// FuncError is the error type template functions are expected to return
type FuncError struct {
	Kind     FuncErrorKind
	Detail   string
	Bound    string // ArgumentsIncomplete only: "at least" or "at most"
	Expected int    // ArgumentsIncomplete only
	Found    int    // ArgumentsIncomplete only
	Err      error
}

// Error implements the error interface
func (e *FuncError) Error() string {
	msg := e.message()
	switch {
	case e.Kind == FuncErrArgumentsIncomplete:
		msg = fmt.Sprintf(ErrFmtArgumentsCount, msg, e.Bound, e.Expected, e.Found)
	case e.Detail != StringValueEmpty:
		msg = fmt.Sprintf(ErrFmtNameMessage, msg, e.Detail)
	}
	if e.Err != nil {
		msg = fmt.Sprintf(ErrFmtNameMessage, msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying cause, if any
func (e *FuncError) Unwrap() error {
	return e.Err
}

func (e *FuncError) message() string {
	switch e.Kind {
	case FuncErrInvalidArgument:
		return ErrMsgInvalidArgument
	case FuncErrInvalidType:
		return ErrMsgInvalidType
	case FuncErrArgumentsIncomplete:
		return ErrMsgArgumentsIncomplete
	default:
		return ErrMsgRuntime
	}
}

// NewInvalidArgumentError reports an argument value the function rejects
func NewInvalidArgumentError(arg string) *FuncError {
	return &FuncError{Kind: FuncErrInvalidArgument, Detail: arg}
}

// NewInvalidTypeError reports an argument that does not parse as the expected type
func NewInvalidTypeError(arg string, cause error) *FuncError {
	return &FuncError{Kind: FuncErrInvalidType, Detail: arg, Err: cause}
}

// NewArgumentsIncompleteError reports a wrong argument count
func NewArgumentsIncompleteError(bound string, expected, found int) *FuncError {
	return &FuncError{Kind: FuncErrArgumentsIncomplete, Bound: bound, Expected: expected, Found: found}
}

// NewRuntimeError reports a failure while the function was running
func NewRuntimeError(detail string, cause error) *FuncError {
	return &FuncError{Kind: FuncErrRuntime, Detail: detail, Err: cause}
}

// ArgsMinLen fails with ArgumentsIncomplete when fewer than n args are given
func ArgsMinLen(args []string, n int) error {
	if len(args) < n {
		return NewArgumentsIncompleteError(ArgBoundAtLeast, n, len(args))
	}
	return nil
}

// ArgsMaxLen fails with ArgumentsIncomplete when more than n args are given
func ArgsMaxLen(args []string, n int) error {
	if len(args) > n {
		return NewArgumentsIncompleteError(ArgBoundAtMost, n, len(args))
	}
	return nil
}
