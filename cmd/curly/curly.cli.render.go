package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/itsatony/go-curly"
)

// renderCmd renders a template file, stdin, or a stored template
type renderCmd struct {
	Template string            `help:"Template file, or - for stdin" placeholder:"FILE" short:"t"`
	Name     string            `help:"Render the stored template NAME" placeholder:"NAME"`
	Store    string            `help:"Storage driver for --name" placeholder:"DRIVER"`
	DSN      string            `help:"Connection string for --store" name:"dsn" placeholder:"DSN"`
	Vars     map[string]string `help:"Set a variable (repeatable)" mapsep:"none" name:"var" placeholder:"KEY=VALUE" short:"v"`
	VarsFile string            `help:"YAML file of variables" placeholder:"FILE" short:"f"`
	Output   string            `default:"-" help:"Output file, or - for stdout" placeholder:"FILE" short:"o"`

	Engine engineFlags `embed:""`
}

// Run renders the template and writes the result
func (c *renderCmd) Run(a *app) error {
	if c.Template == "" && c.Name == "" {
		return newCLIError(ExitCodeUsageError, ErrMsgMissingTemplate, nil)
	}
	if c.Template != "" && c.Name != "" {
		return newCLIError(ExitCodeUsageError, ErrMsgBothSources, nil)
	}

	cfg, err := c.Engine.loadConfig()
	if err != nil {
		return err
	}

	fileVars, err := loadVarsFile(c.VarsFile)
	if err != nil {
		return newCLIError(ExitCodeInputError, ErrMsgVarsFileFailed, err)
	}

	opts := c.Engine.options(cfg, a.logger)
	opts = append(opts, curly.WithVariables(fileVars), curly.WithVariables(flagVars(c.Vars)))

	var store curly.Store
	if c.Name != "" {
		store, err = c.openStore(cfg)
		if err != nil {
			return err
		}
		defer store.Close()
		opts = append(opts, curly.WithStore(store))
	}

	engine, err := newEngine(opts)
	if err != nil {
		return err
	}

	var out string
	if c.Name != "" {
		a.logger.Debug(LogMsgRendering, zap.String(LogFieldSource, c.Name))
		out, err = engine.RenderStored(context.Background(), c.Name)
	} else {
		source, readErr := readInput(c.Template, a.stdin)
		if readErr != nil {
			return newCLIError(ExitCodeInputError, ErrMsgReadFileFailed, readErr)
		}
		a.logger.Debug(LogMsgRendering,
			zap.String(LogFieldSource, c.Template),
			zap.Int(LogFieldBytes, len(source)))
		out, err = engine.Render(string(source))
	}
	if err != nil {
		if curly.IsTemplateNotFound(err) {
			return newCLIError(ExitCodeInputError, ErrMsgRenderFailed, err)
		}
		a.reportError(ErrMsgRenderFailed, err)
		return newCLIError(ExitCodeError, "", err)
	}

	if err := writeOutput(c.Output, []byte(out), a.stdout); err != nil {
		return newCLIError(ExitCodeError, ErrMsgWriteOutputFailed, err)
	}
	return nil
}

// openStore opens --store/--dsn, falling back to the config's store section
func (c *renderCmd) openStore(cfg *curly.Config) (curly.Store, error) {
	var (
		store curly.Store
		err   error
	)
	if c.Store != "" {
		store, err = curly.OpenStore(c.Store, c.DSN)
	} else {
		store, err = cfg.OpenStore()
	}
	if err != nil {
		return nil, newCLIError(ExitCodeInputError, ErrMsgOpenStoreFailed, err)
	}
	if store == nil {
		return nil, newCLIError(ExitCodeUsageError, ErrMsgNoStoreForName, nil)
	}
	return store, nil
}

func flagVars(vars map[string]string) map[string]any {
	converted := make(map[string]any, len(vars))
	for k, v := range vars {
		converted[k] = v
	}
	return converted
}
