package internal

// Default delimiter tokens
const (
	DefaultOpenDelim  = "{{"
	DefaultCloseDelim = "}}"
)

// Character constants
const (
	CharNewline      = '\n'
	CharDoubleQuote  = '"'
	CharBackslash    = '\\'
	CharDot          = '.'
	CharComma        = ','
	CharUnderscore   = '_'
	CharOpenParen    = '('
	CharCloseParen   = ')'
	CharSpace        = ' '
	CharTab          = '\t'
	CharCarriageRet  = '\r'
	CharFormFeed     = '\f'
	StrComma         = ","
	StrCloseParen    = ")"
	StringValueEmpty = ""
)

// Log message constants
const (
	LogMsgParserStart       = "starting parse"
	LogMsgParserEnd         = "parse complete"
	LogMsgParserFailed      = "parse failed"
	LogMsgRenderStart       = "starting render"
	LogMsgRenderEnd         = "render complete"
	LogMsgFunctionInvoked   = "function invoked"
	LogMsgFunctionFailed    = "function failed"
	LogMsgStoreCreated      = "registry store created"
	LogMsgEntrySet          = "registry entry set"
	LogMsgEntryRemoved      = "registry entry removed"
	LogMsgEntriesCleared    = "registry cleared"
	LogMsgBuiltinRegistered = "builtin module registered"
)

// Log field names
const (
	LogFieldSource   = "source_length"
	LogFieldNodes    = "node_count"
	LogFieldOutput   = "output_length"
	LogFieldFunction = "function"
	LogFieldArgs     = "arg_count"
	LogFieldStore    = "store"
	LogFieldKey      = "key"
	LogFieldCount    = "count"
	LogFieldModule   = "module"
	LogFieldLine     = "line"
	LogFieldColumn   = "column"
	LogFieldKind     = "kind"
)

// Registry store names, used as log context
const (
	StoreNameVariables = "variables"
	StoreNameFunctions = "functions"
)

// Syntax error descriptions
const (
	ErrMsgUnterminatedString  = "unterminated string literal"
	ErrMsgFloatDotted         = "float must have exactly one decimal point"
	ErrMsgInvalidNumber       = "invalid character in number literal"
	ErrMsgUnterminatedArgs    = "unterminated function arguments"
	ErrMsgExpectedIdentifier  = "expected identifier"
	ErrMsgExpectedCloseFmt    = "expected close delimiter %q, found %s"
	ErrMsgFoundEndOfInput     = "end of input"
	ErrMsgInvalidDelimiters   = "invalid delimiters"
	ErrMsgEmptyDelimiter      = "delimiter cannot be empty"
	ErrMsgNonASCIIDelimiter   = "delimiter must be ASCII"
	ErrMsgWhitespaceDelimiter = "delimiter cannot contain whitespace"
)

// Syntax error help texts
const (
	HelpUnterminatedString = "add a closing '\"' to the string literal"
	HelpFloatDotted        = "remove the extra '.'"
	HelpInvalidNumber      = "numbers may only be followed by ',' or ')'; quote the argument to pass text"
	HelpUnterminatedArgs   = "add a closing ')' after the last argument"
	HelpExpectedIdentifier = "expressions start with a variable or function name made of letters, digits and '_'"
	HelpExpectedCloseFmt   = "close the expression with %q"
)

// Render error messages
const (
	ErrMsgVariableNotFound       = "variable not found"
	ErrMsgFunctionNotImplemented = "function not implemented"
	ErrMsgFunctionFailed         = "error processing function"
	ErrFmtNameMessage            = "%s: %s"
	ErrFmtDidYouMean             = "%s (did you mean %s?)"
	ErrFmtFunctionFailed         = "%s %s: %v"
)

// Function error messages
const (
	ErrMsgInvalidArgument     = "invalid function argument"
	ErrMsgInvalidType         = "invalid function argument type"
	ErrMsgArgumentsIncomplete = "wrong number of function arguments"
	ErrMsgRuntime             = "error calling the function"
	ErrFmtArgumentsCount      = "%s: expected %s %d, found %d"
	ErrMsgOverflow            = "arithmetic overflow"
	ErrMsgDivisionByZero      = "division by zero"
	ArgBoundAtLeast           = "at least"
	ArgBoundAtMost            = "at most"
)

// Diagnostic rendering
const (
	DiagnosticGutterFmt = " %s | "
	DiagnosticArrowChar = "-"
	DiagnosticDotChar   = "."
	DiagnosticCaret     = "^"
	DiagnosticAtFmt     = "     at %d:%d"
	DiagnosticHelpFmt   = "help: %s"
)

// Suggestion limits
const (
	MaxSuggestions = 3
)

// Builtin module names
const (
	BuiltinModuleText = "text"
	BuiltinModuleMath = "math"
	BuiltinModuleOS   = "os"
)

// Text builtin names
const (
	FuncNameToLower = "toLower"
	FuncNameToUpper = "toUpper"
	FuncNameTrim    = "trim"
)

// OS builtin names
const (
	FuncNameEnv = "env"
)

// Math builtin operations, combined with a width as "<op>_<width>"
const (
	MathOpAdd = "add"
	MathOpSub = "sub"
	MathOpMul = "mul"
	MathOpDiv = "div"

	MathNameSep = "_"
)

// Builtin argument separator for functions applied per argument
const (
	BuiltinJoinSep = " "
)
