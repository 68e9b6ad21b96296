package curly

import (
	"context"
	"sync/atomic"

	"github.com/itsatony/go-cuserr"
	"go.uber.org/zap"

	"github.com/itsatony/go-curly/internal"
)

// Engine is a render context: a handle over a variable map, a function
// map and a delimiter pair. It is safe for concurrent use.
type Engine struct {
	vars     *internal.Registry[string]
	funcs    *internal.Registry[Func]
	renderer *internal.Renderer
	delims   atomic.Pointer[internal.Delimiters]
	store    Store
	logger   *zap.Logger
}

// New creates a new Engine with the given options.
func New(opts ...Option) (*Engine, error) {
	config := defaultEngineConfig()
	for _, opt := range opts {
		opt(config)
	}

	logger := config.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	delims := internal.Delimiters{Open: config.openDelim, Close: config.closeDelim}
	if err := delims.Validate(); err != nil {
		return nil, NewDelimiterError(delims.Open, delims.Close, err)
	}

	vars := internal.NewRegistry[string](internal.StoreNameVariables, logger)
	funcs := internal.NewRegistry[Func](internal.StoreNameFunctions, logger)

	var modules []internal.BuiltinModule
	if config.textBuiltins {
		modules = append(modules, internal.TextBuiltins())
	}
	if config.mathBuiltins {
		modules = append(modules, internal.MathBuiltins())
	}
	if config.osBuiltins {
		modules = append(modules, internal.OSBuiltins())
	}
	internal.RegisterBuiltins(funcs, logger, modules...)

	e := &Engine{
		vars:     vars,
		funcs:    funcs,
		renderer: internal.NewRenderer(vars, funcs, logger),
		store:    config.store,
		logger:   logger,
	}
	e.delims.Store(&delims)

	e.AddVariables(config.variables)
	e.AddFunctions(config.functions)

	logger.Debug(LogMsgEngineCreated,
		zap.Int(LogFieldVariableCount, vars.Count()),
		zap.Int(LogFieldFunctionCount, funcs.Count()))
	return e, nil
}

// MustNew creates a new Engine and panics if there's an error.
func MustNew(opts ...Option) *Engine {
	engine, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return engine
}

// Render parses template with the current delimiters and evaluates it.
// The first error aborts the call; no partial output is returned.
func (e *Engine) Render(template string) (string, error) {
	nodes, err := internal.Parse(template, *e.delims.Load(), e.logger)
	if err != nil {
		return "", e.fail(err)
	}
	out, err := e.renderer.Render(template, nodes)
	if err != nil {
		return "", e.fail(err)
	}
	return out, nil
}

// Validate parses template without evaluating it. Unknown variables and
// functions are not reported.
func (e *Engine) Validate(template string) error {
	if _, err := internal.Parse(template, *e.delims.Load(), e.logger); err != nil {
		return e.fail(err)
	}
	return nil
}

// RenderStored fetches the template source called name from the
// configured Store and renders it.
func (e *Engine) RenderStored(ctx context.Context, name string) (string, error) {
	if e.store == nil {
		return "", cuserr.NewValidationError(ErrCodeStorage, ErrMsgNoStore).
			WithMetadata(MetaKeyTemplate, name)
	}
	e.logger.Debug(LogMsgRenderStored, zap.String(LogFieldTemplate, name))

	source, err := e.store.Get(ctx, name)
	if err != nil {
		return "", err
	}
	return e.Render(source)
}

// Store returns the configured template store, or nil
func (e *Engine) Store() Store {
	return e.store
}

// Clone returns a new handle over the same variables and functions.
// Mutations through either handle are visible to both; delimiters are
// copied and then independent.
func (e *Engine) Clone() *Engine {
	c := &Engine{
		vars:     e.vars,
		funcs:    e.funcs,
		renderer: e.renderer,
		store:    e.store,
		logger:   e.logger,
	}
	d := *e.delims.Load()
	c.delims.Store(&d)
	e.logger.Debug(LogMsgEngineCloned)
	return c
}

// SetDelimiter replaces the delimiters used by subsequent renders of this
// handle. Renders already running keep the pair they started with.
func (e *Engine) SetDelimiter(open, close string) error {
	d := internal.Delimiters{Open: open, Close: close}
	if err := d.Validate(); err != nil {
		return NewDelimiterError(open, close, err)
	}
	e.delims.Store(&d)
	e.logger.Debug(LogMsgDelimitersSet,
		zap.String(LogFieldOpenDelim, open),
		zap.String(LogFieldCloseDelim, close))
	return nil
}

// Delimiters returns the current open and close tokens
func (e *Engine) Delimiters() (open, close string) {
	d := e.delims.Load()
	return d.Open, d.Close
}

// AddVariable inserts or overwrites a variable. The value is converted to
// text once, here: strings, []byte, fmt.Stringer, error, bool and numbers
// are formatted directly, nil becomes "", anything else uses fmt.Sprint.
func (e *Engine) AddVariable(name string, value any) {
	e.vars.Set(name, internal.Stringify(value))
}

// AddVariables inserts or overwrites several variables
func (e *Engine) AddVariables(vars map[string]any) {
	if len(vars) == 0 {
		return
	}
	converted := make(map[string]string, len(vars))
	for k, v := range vars {
		converted[k] = internal.Stringify(v)
	}
	e.vars.SetAll(converted)
}

// RemoveVariable deletes a variable. Missing names are ignored.
func (e *Engine) RemoveVariable(name string) {
	e.vars.Remove(name)
}

// ClearVariables deletes every variable
func (e *Engine) ClearVariables() {
	e.vars.Clear()
}

// ContainsVariable reports whether name is registered
func (e *Engine) ContainsVariable(name string) bool {
	return e.vars.Has(name)
}

// Variable returns the stored text of a variable
func (e *Engine) Variable(name string) (string, bool) {
	return e.vars.Get(name)
}

// VariableNames returns all variable names in sorted order
func (e *Engine) VariableNames() []string {
	return e.vars.Keys()
}

// AddFunction inserts or overwrites a function, builtins included.
// A nil fn is ignored and leaves any existing function in place.
func (e *Engine) AddFunction(name string, fn Func) {
	if fn == nil {
		e.logger.Debug(LogMsgNilFunction, zap.String(LogFieldFunction, name))
		return
	}
	e.funcs.Set(name, fn)
}

// AddFunctions inserts or overwrites several functions. Nil entries are
// ignored as in AddFunction.
func (e *Engine) AddFunctions(funcs map[string]Func) {
	valid := make(map[string]Func, len(funcs))
	for name, fn := range funcs {
		if fn == nil {
			e.logger.Debug(LogMsgNilFunction, zap.String(LogFieldFunction, name))
			continue
		}
		valid[name] = fn
	}
	if len(valid) == 0 {
		return
	}
	e.funcs.SetAll(valid)
}

// RemoveFunction deletes a function. Missing names are ignored.
func (e *Engine) RemoveFunction(name string) {
	e.funcs.Remove(name)
}

// ClearFunctions deletes every function, builtins included
func (e *Engine) ClearFunctions() {
	e.funcs.Clear()
}

// ContainsFunction reports whether name is registered
func (e *Engine) ContainsFunction(name string) bool {
	return e.funcs.Has(name)
}

// FunctionNames returns all function names in sorted order
func (e *Engine) FunctionNames() []string {
	return e.funcs.Keys()
}

// fail wraps err for the public API and logs it at debug level
func (e *Engine) fail(err error) error {
	wrapped := wrapRenderError(err)
	e.logger.Debug(LogMsgRenderFailed, zap.Error(err))
	return wrapped
}
