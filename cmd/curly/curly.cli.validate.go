package main

import (
	"fmt"

	"go.uber.org/zap"
)

// validateCmd parses a template and reports the first syntax error
type validateCmd struct {
	Template string `help:"Template file, or - for stdin" placeholder:"FILE" required:"" short:"t"`

	Engine engineFlags `embed:""`
}

// Run validates the template. Unknown names are not reported.
func (c *validateCmd) Run(a *app) error {
	cfg, err := c.Engine.loadConfig()
	if err != nil {
		return err
	}
	engine, err := newEngine(c.Engine.options(cfg, a.logger))
	if err != nil {
		return err
	}

	source, err := readInput(c.Template, a.stdin)
	if err != nil {
		return newCLIError(ExitCodeInputError, ErrMsgReadFileFailed, err)
	}

	a.logger.Debug(LogMsgValidating, zap.String(LogFieldSource, c.Template))
	if err := engine.Validate(string(source)); err != nil {
		a.reportError(ErrMsgValidationFailed, err)
		return newCLIError(ExitCodeValidationError, "", err)
	}

	fmt.Fprintln(a.stdout, MsgTemplateValid)
	return nil
}
