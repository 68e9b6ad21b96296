package curly

import (
	"errors"
	"strconv"
	"strings"

	"github.com/itsatony/go-cuserr"

	"github.com/itsatony/go-curly/internal"
)

// SyntaxError is the diagnostic for a template that fails to parse.
// Line and Column are 0-based; Error and Format print them 1-based.
type SyntaxError = internal.SyntaxError

// SyntaxErrorKind classifies syntax errors
type SyntaxErrorKind = internal.SyntaxErrorKind

// Syntax error kinds
const (
	SyntaxUnterminatedString     = internal.SyntaxUnterminatedString
	SyntaxFloatDotted            = internal.SyntaxFloatDotted
	SyntaxInvalidNumber          = internal.SyntaxInvalidNumber
	SyntaxUnterminatedArguments  = internal.SyntaxUnterminatedArgs
	SyntaxExpectedIdentifier     = internal.SyntaxExpectedIdentifier
	SyntaxExpectedCloseDelimiter = internal.SyntaxExpectedCloseDelimit
)

// Position is a 0-based location in a template
type Position = internal.Position

// VariableNotFoundError reports a reference to an unregistered variable
type VariableNotFoundError = internal.VariableNotFoundError

// FunctionNotImplementedError reports a call to an unregistered function
type FunctionNotImplementedError = internal.FunctionNotImplementedError

// FunctionCallError wraps the error returned by a template function
type FunctionCallError = internal.FunctionCallError

// ErrorKind is the coarse category of an error returned by this package
type ErrorKind string

// Error kinds
const (
	ErrorKindNone                   ErrorKind = ""
	ErrorKindSyntax                 ErrorKind = "SYNTAX"
	ErrorKindVariableNotFound       ErrorKind = "VARIABLE_NOT_FOUND"
	ErrorKindFunctionNotImplemented ErrorKind = "FUNCTION_NOT_IMPLEMENTED"
	ErrorKindFunction               ErrorKind = "FUNCTION"
	ErrorKindStorage                ErrorKind = "STORAGE"
	ErrorKindOther                  ErrorKind = "OTHER"
)

// ErrorKindOf classifies err. It returns ErrorKindNone for nil.
func ErrorKindOf(err error) ErrorKind {
	if err == nil {
		return ErrorKindNone
	}

	var syntaxErr *SyntaxError
	var varErr *VariableNotFoundError
	var missingErr *FunctionNotImplementedError
	var callErr *FunctionCallError
	var storageErr *StorageError

	// A function may itself render templates, so the call error is the
	// outermost typed error and is checked first.
	switch {
	case errors.As(err, &callErr):
		return ErrorKindFunction
	case errors.As(err, &syntaxErr):
		return ErrorKindSyntax
	case errors.As(err, &varErr):
		return ErrorKindVariableNotFound
	case errors.As(err, &missingErr):
		return ErrorKindFunctionNotImplemented
	case errors.As(err, &storageErr):
		return ErrorKindStorage
	default:
		return ErrorKindOther
	}
}

// AsSyntaxError extracts the syntax diagnostic from err, if any
func AsSyntaxError(err error) (*SyntaxError, bool) {
	var syntaxErr *SyntaxError
	if errors.As(err, &syntaxErr) {
		return syntaxErr, true
	}
	return nil, false
}

// NewSyntaxError wraps a parse diagnostic with its position as metadata
func NewSyntaxError(err *SyntaxError) error {
	return cuserr.WrapStdError(err, ErrCodeSyntax, ErrMsgSyntax).
		WithMetadata(MetaKeyKind, string(err.Kind)).
		WithMetadata(MetaKeyLine, strconv.Itoa(err.Line)).
		WithMetadata(MetaKeyColumn, strconv.Itoa(err.Column)).
		WithMetadata(MetaKeyOffset, strconv.Itoa(err.Offset))
}

// NewVariableNotFoundError wraps a failed variable lookup
func NewVariableNotFoundError(err *VariableNotFoundError) error {
	return withPosition(cuserr.WrapStdError(err, ErrCodeVariable, ErrMsgVariableNotFound), err.Pos).
		WithMetadata(MetaKeyName, err.Name).
		WithMetadata(MetaKeySuggestion, strings.Join(err.Suggestions, ","))
}

// NewFunctionNotImplementedError wraps a failed function lookup
func NewFunctionNotImplementedError(err *FunctionNotImplementedError) error {
	return withPosition(cuserr.WrapStdError(err, ErrCodeFunctionMissing, ErrMsgFunctionNotImplemented), err.Pos).
		WithMetadata(MetaKeyName, err.Name).
		WithMetadata(MetaKeySuggestion, strings.Join(err.Suggestions, ","))
}

// NewFunctionCallError wraps an error returned by a template function
func NewFunctionCallError(err *FunctionCallError) error {
	custom := withPosition(cuserr.WrapStdError(err, ErrCodeFunction, ErrMsgFunctionFailed), err.Pos).
		WithMetadata(MetaKeyName, err.Name)
	var funcErr *FuncError
	if errors.As(err, &funcErr) {
		custom = custom.WithMetadata(MetaKeyKind, string(funcErr.Kind))
	}
	return custom
}

// NewDelimiterError reports an invalid delimiter pair
func NewDelimiterError(open, close string, cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeDelimiter, ErrMsgInvalidDelimiters).
		WithMetadata(MetaKeyOpenDelim, open).
		WithMetadata(MetaKeyCloseDelim, close)
}

// NewConfigError reports a config file that cannot be read or decoded
func NewConfigError(msg, path string, cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeConfig, msg).
		WithMetadata(MetaKeyPath, path)
}

// wrapRenderError converts an error from the parser or renderer into the
// public form
func wrapRenderError(err error) error {
	switch e := err.(type) {
	case *SyntaxError:
		return NewSyntaxError(e)
	case *VariableNotFoundError:
		return NewVariableNotFoundError(e)
	case *FunctionNotImplementedError:
		return NewFunctionNotImplementedError(e)
	case *FunctionCallError:
		return NewFunctionCallError(e)
	default:
		return cuserr.WrapStdError(err, ErrCodeFunction, ErrMsgRenderFailed)
	}
}

func withPosition(err *cuserr.CustomError, pos Position) *cuserr.CustomError {
	return err.
		WithMetadata(MetaKeyLine, strconv.Itoa(pos.Line)).
		WithMetadata(MetaKeyColumn, strconv.Itoa(pos.Column)).
		WithMetadata(MetaKeyOffset, strconv.Itoa(pos.Offset))
}
