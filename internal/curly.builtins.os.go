package internal

import (
	"os"
	"strings"
)

// OSBuiltins returns env
func OSBuiltins() BuiltinModule {
	return BuiltinModule{
		Name: BuiltinModuleOS,
		Funcs: map[string]Func{
			FuncNameEnv: env,
		},
	}
}

// env looks up each argument as an environment variable name. A variable
// that is set to the empty string is not an error; an unset one is.
func env(args []string) (string, error) {
	if err := ArgsMinLen(args, 1); err != nil {
		return StringValueEmpty, err
	}
	values := make([]string, len(args))
	for i, name := range args {
		v, ok := os.LookupEnv(name)
		if !ok {
			return StringValueEmpty, NewInvalidArgumentError(name)
		}
		values[i] = v
	}
	return strings.Join(values, BuiltinJoinSep), nil
}
