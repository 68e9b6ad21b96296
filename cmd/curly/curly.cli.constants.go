package main

// CLI identity
const (
	CLIName        = "curly"
	CLIDescription = "Render {{ variable }} and {{ function(args) }} templates."
)

// Command names
const (
	CmdNameRender   = "render"
	CmdNameValidate = "validate"
	CmdNameVersion  = "version"
)

// Exit codes
const (
	ExitCodeSuccess         = 0
	ExitCodeError           = 1
	ExitCodeUsageError      = 2
	ExitCodeValidationError = 3
	ExitCodeInputError      = 4
)

// Input and output
const (
	InputSourceStdin   = "-"
	OutputTargetStdout = "-"
	FlagHelp           = "--help"
)

// Output formats
const (
	OutputFormatText = "text"
	OutputFormatJSON = "json"
)

// Error messages - ALL must be constants
const (
	ErrMsgMissingTemplate   = "template source required: use --template or --name"
	ErrMsgBothSources       = "--template and --name are mutually exclusive"
	ErrMsgNoStoreForName    = "--name requires --store or a store section in --config"
	ErrMsgReadFileFailed    = "failed to read file"
	ErrMsgLoadConfigFailed  = "failed to load config"
	ErrMsgVarsFileFailed    = "failed to load variables file"
	ErrMsgOpenStoreFailed   = "failed to open template store"
	ErrMsgEngineFailed      = "invalid engine configuration"
	ErrMsgRenderFailed      = "template rendering failed"
	ErrMsgValidationFailed  = "template is invalid"
	ErrMsgWriteOutputFailed = "failed to write output"
	ErrMsgProfileFailed     = "failed to start profiler"
)

// Output messages
const (
	MsgTemplateValid = "template is valid"
)

// Log messages and fields
const (
	LogMsgRendering     = "rendering template"
	LogMsgValidating    = "validating template"
	LogMsgProfiling     = "profiling enabled"
	LogFieldSource      = "source"
	LogFieldProfileMode = "mode"
	LogFieldProfileDir  = "dir"
	LogFieldBytes       = "bytes"
)

// Format strings
const (
	FmtErrorWithCause = "Error: %s: %v\n"
	FmtError          = "Error: %s\n"
	FmtNewline        = "\n"
	VersionTextFmt    = "%s version %s (%s)"
)

// Profile modes accepted by --profile
const (
	ProfileModeCPU   = "cpu"
	ProfileModeMem   = "mem"
	ProfileModeBlock = "block"
	ProfileModeMutex = "mutex"
	ProfileModeTrace = "trace"
)

// Terminal colors for diagnostics (ANSI 256 palette indices)
const (
	ColorError = "1"
	ColorCaret = "3"
	ColorHint  = "8"
)

// File permissions
const (
	FilePermissions = 0o644
)
