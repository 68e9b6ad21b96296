package internal

import (
	"strings"

	"go.uber.org/zap"
)

// BuiltinModule is a named group of functions that can be registered at once
type BuiltinModule struct {
	Name  string
	Funcs map[string]Func
}

// RegisterBuiltins adds every function of each module to funcs, overwriting
// entries with the same name.
func RegisterBuiltins(funcs *Registry[Func], logger *zap.Logger, modules ...BuiltinModule) {
	if logger == nil {
		logger = zap.NewNop()
	}
	for _, m := range modules {
		funcs.SetAll(m.Funcs)
		logger.Debug(LogMsgBuiltinRegistered,
			zap.String(LogFieldModule, m.Name),
			zap.Int(LogFieldCount, len(m.Funcs)))
	}
}

// mapArgs applies fn to every argument and joins the results with a space.
// At least one argument is required.
func mapArgs(fn func(string) string) Func {
	return func(args []string) (string, error) {
		if err := ArgsMinLen(args, 1); err != nil {
			return StringValueEmpty, err
		}
		out := make([]string, len(args))
		for i, a := range args {
			out[i] = fn(a)
		}
		return strings.Join(out, BuiltinJoinSep), nil
	}
}
