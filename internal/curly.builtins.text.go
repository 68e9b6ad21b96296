package internal

import "strings"

// TextBuiltins returns toLower, toUpper and trim
func TextBuiltins() BuiltinModule {
	return BuiltinModule{
		Name: BuiltinModuleText,
		Funcs: map[string]Func{
			FuncNameToLower: mapArgs(strings.ToLower),
			FuncNameToUpper: mapArgs(strings.ToUpper),
			FuncNameTrim:    mapArgs(strings.TrimSpace),
		},
	}
}
