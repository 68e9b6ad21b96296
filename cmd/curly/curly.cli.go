package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// CLI is the top-level command-line interface
type CLI struct {
	Verbose    bool   `help:"Log debug output to stderr" short:"V"`
	NoColor    bool   `help:"Disable colored diagnostics"`
	Profile    string `default:"" enum:",cpu,mem,block,mutex,trace" help:"Profile the run (${enum})" placeholder:"MODE"`
	ProfileDir string `default:"." help:"Profile output directory" type:"path"`

	Render   renderCmd   `cmd:"" help:"Render a template"`
	Validate validateCmd `cmd:"" help:"Check template syntax without rendering"`
	Version  versionCmd  `cmd:"" help:"Print version information"`
}

// app carries the streams and shared services commands run with
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger *zap.Logger
	styles diagnosticStyles
}

// cliError carries an exit code up to run
type cliError struct {
	code int
	msg  string
	err  error
}

func (e *cliError) Error() string {
	if e.err == nil {
		return e.msg
	}
	return e.msg + ": " + e.err.Error()
}

func (e *cliError) Unwrap() error {
	return e.err
}

func newCLIError(code int, msg string, err error) error {
	return &cliError{code: code, msg: msg, err: err}
}

// exitRequest is raised through kong.Exit so help output ends parsing
// without terminating the process
type exitRequest int

// run is the main entry point for the CLI, separated for testing
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) (code int) {
	if len(args) == 0 {
		args = []string{FlagHelp}
	}

	defer func() {
		if r := recover(); r != nil {
			req, ok := r.(exitRequest)
			if !ok {
				panic(r)
			}
			code = int(req)
		}
	}()

	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name(CLIName),
		kong.Description(CLIDescription),
		kong.Writers(stdout, stderr),
		kong.Exit(func(code int) { panic(exitRequest(code)) }),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
	)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, CLIName, err)
		return ExitCodeError
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, FmtError, err)
		return ExitCodeUsageError
	}

	logger := newLogger(cli.Verbose, stderr)
	defer func() { _ = logger.Sync() }()

	stop, err := startProfile(cli.Profile, cli.ProfileDir, logger)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgProfileFailed, err)
		return ExitCodeUsageError
	}
	defer stop()

	a := &app{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		logger: logger,
		styles: newDiagnosticStyles(stderr, cli.NoColor),
	}

	if err := ktx.Run(a); err != nil {
		var cliErr *cliError
		if errors.As(err, &cliErr) {
			if cliErr.msg != "" {
				fmt.Fprintf(stderr, FmtError, cliErr.Error())
			}
			return cliErr.code
		}
		fmt.Fprintf(stderr, FmtError, err)
		return ExitCodeError
	}
	return ExitCodeSuccess
}

// newLogger returns a no-op logger unless verbose is set, in which case
// development-style console logs go to w
func newLogger(verbose bool, w io.Writer) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	encoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	core := zapcore.NewCore(encoder, zapcore.AddSync(w), zap.DebugLevel)
	return zap.New(core, zap.Development())
}
