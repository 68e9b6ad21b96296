package main

import (
	"go.uber.org/zap"

	"github.com/itsatony/go-curly"
)

// engineFlags are shared by the commands that build an engine
type engineFlags struct {
	Config     string `help:"YAML config file" placeholder:"FILE" short:"c"`
	Open       string `help:"Open delimiter (default {{)" placeholder:"TOKEN"`
	Close      string `help:"Close delimiter (default }})" placeholder:"TOKEN"`
	NoBuiltins bool   `help:"Disable the text, math and os builtins"`
}

// loadConfig reads the --config file, or returns an empty config
func (f engineFlags) loadConfig() (*curly.Config, error) {
	if f.Config == "" {
		return &curly.Config{}, nil
	}
	cfg, err := curly.LoadConfig(f.Config)
	if err != nil {
		return nil, newCLIError(ExitCodeInputError, ErrMsgLoadConfigFailed, err)
	}
	return cfg, nil
}

// options merges config and flags; flags win
func (f engineFlags) options(cfg *curly.Config, logger *zap.Logger) []curly.Option {
	opts := append(cfg.Options(), curly.WithLogger(logger))
	if f.NoBuiltins {
		opts = append(opts, curly.WithoutBuiltins())
	}
	if f.Open != "" || f.Close != "" {
		open, close := curly.DefaultOpenDelim, curly.DefaultCloseDelim
		if cfg.Delimiters != nil {
			open, close = cfg.Delimiters.Open, cfg.Delimiters.Close
		}
		if f.Open != "" {
			open = f.Open
		}
		if f.Close != "" {
			close = f.Close
		}
		opts = append(opts, curly.WithDelimiter(open, close))
	}
	return opts
}

func newEngine(opts []curly.Option) (*curly.Engine, error) {
	engine, err := curly.New(opts...)
	if err != nil {
		return nil, newCLIError(ExitCodeUsageError, ErrMsgEngineFailed, err)
	}
	return engine, nil
}
