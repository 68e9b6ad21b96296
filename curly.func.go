package curly

import (
	"github.com/itsatony/go-curly/internal"
)

// Func is a template function. It receives its arguments already
// evaluated, in source order, and returns the text to substitute.
//
// Example:
//
//	engine.AddFunction("repeat", func(args []string) (string, error) {
//	    if err := curly.ArgsMinLen(args, 2); err != nil {
//	        return "", err
//	    }
//	    n, err := curly.ParseArg[int](args, 1)
//	    if err != nil {
//	        return "", err
//	    }
//	    return strings.Repeat(args[0], n), nil
//	})
//
// used as {{ repeat("ab", 3) }}.
type Func = internal.Func

// FuncError is the error type builtin functions return and custom
// functions are encouraged to return
type FuncError = internal.FuncError

// FuncErrorKind classifies a FuncError
type FuncErrorKind = internal.FuncErrorKind

// Function error kinds
const (
	FuncErrInvalidArgument     = internal.FuncErrInvalidArgument
	FuncErrInvalidType         = internal.FuncErrInvalidType
	FuncErrArgumentsIncomplete = internal.FuncErrArgumentsIncomplete
	FuncErrRuntime             = internal.FuncErrRuntime
)

// ArgType lists the types ParseArg can produce
type ArgType = internal.ArgType

// NewInvalidArgumentError reports an argument value a function rejects
func NewInvalidArgumentError(arg string) *FuncError {
	return internal.NewInvalidArgumentError(arg)
}

// NewInvalidTypeError reports an argument that does not parse as the
// expected type
func NewInvalidTypeError(arg string, cause error) *FuncError {
	return internal.NewInvalidTypeError(arg, cause)
}

// NewRuntimeError reports a failure inside a function
func NewRuntimeError(detail string, cause error) *FuncError {
	return internal.NewRuntimeError(detail, cause)
}

// ArgsMinLen fails with FuncErrArgumentsIncomplete when fewer than n
// arguments are given
func ArgsMinLen(args []string, n int) error {
	return internal.ArgsMinLen(args, n)
}

// ArgsMaxLen fails with FuncErrArgumentsIncomplete when more than n
// arguments are given
func ArgsMaxLen(args []string, n int) error {
	return internal.ArgsMaxLen(args, n)
}

// ParseArg parses args[i] as T. A missing argument fails with
// FuncErrArgumentsIncomplete, a malformed one with FuncErrInvalidType.
func ParseArg[T ArgType](args []string, i int) (T, error) {
	return internal.ParseArg[T](args, i)
}

// ValidateArgType reports whether arg parses as T
func ValidateArgType[T ArgType](arg string) error {
	return internal.ValidateArgType[T](arg)
}

// MathFuncName returns the registered name of a math builtin,
// e.g. MathFuncName("add", "u8") == "add_u8"
func MathFuncName(op, width string) string {
	return internal.MathFuncName(op, width)
}
