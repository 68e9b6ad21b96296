package curly

import (
	"go.uber.org/zap"
)

// Option is a functional option for configuring the Engine.
type Option func(*engineConfig)

// engineConfig holds the internal configuration for an Engine.
type engineConfig struct {
	openDelim    string
	closeDelim   string
	textBuiltins bool
	mathBuiltins bool
	osBuiltins   bool
	variables    map[string]any
	functions    map[string]Func
	store        Store
	logger       *zap.Logger
}

// defaultEngineConfig returns the default engine configuration.
func defaultEngineConfig() *engineConfig {
	return &engineConfig{
		openDelim:    DefaultOpenDelim,
		closeDelim:   DefaultCloseDelim,
		textBuiltins: true,
		mathBuiltins: true,
		osBuiltins:   true,
	}
}

// WithDelimiter sets the open and close tokens of expressions.
// Both must be non-empty ASCII without whitespace; New fails otherwise.
// Default: "{{" and "}}"
func WithDelimiter(open, close string) Option {
	return func(c *engineConfig) {
		c.openDelim = open
		c.closeDelim = close
	}
}

// WithLogger sets the logger for the engine.
// Default: nil (no logging)
func WithLogger(logger *zap.Logger) Option {
	return func(c *engineConfig) {
		c.logger = logger
	}
}

// WithTextBuiltins toggles toLower, toUpper and trim.
// Default: enabled
func WithTextBuiltins(enabled bool) Option {
	return func(c *engineConfig) {
		c.textBuiltins = enabled
	}
}

// WithMathBuiltins toggles the add/sub/mul/div family.
// Default: enabled
func WithMathBuiltins(enabled bool) Option {
	return func(c *engineConfig) {
		c.mathBuiltins = enabled
	}
}

// WithOSBuiltins toggles env.
// Default: enabled
func WithOSBuiltins(enabled bool) Option {
	return func(c *engineConfig) {
		c.osBuiltins = enabled
	}
}

// WithoutBuiltins disables every builtin module
func WithoutBuiltins() Option {
	return func(c *engineConfig) {
		c.textBuiltins = false
		c.mathBuiltins = false
		c.osBuiltins = false
	}
}

// WithVariables registers initial variables. Values are stringified the
// same way AddVariable does. Repeated use merges.
func WithVariables(vars map[string]any) Option {
	return func(c *engineConfig) {
		if c.variables == nil {
			c.variables = make(map[string]any, len(vars))
		}
		for k, v := range vars {
			c.variables[k] = v
		}
	}
}

// WithFunctions registers initial functions after the builtins, so they
// replace builtins of the same name. Repeated use merges.
func WithFunctions(funcs map[string]Func) Option {
	return func(c *engineConfig) {
		if c.functions == nil {
			c.functions = make(map[string]Func, len(funcs))
		}
		for k, f := range funcs {
			c.functions[k] = f
		}
	}
}

// WithStore sets the template store used by RenderStored
func WithStore(store Store) Option {
	return func(c *engineConfig) {
		c.store = store
	}
}
