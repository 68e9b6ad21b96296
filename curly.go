// Package curly provides a small, embeddable text templating engine.
//
// Templates mix raw text with expressions framed by configurable
// delimiters, "{{" and "}}" by default:
//
//	Hello {{ name }}!
//	{{ toUpper(trim(title)) }}
//	{{ greet("a,b", user) }}
//
// An expression is either a variable reference or a function call. Function
// arguments are variables, nested calls, double-quoted string literals
// (escapes are kept verbatim) or bare numbers. Text outside delimiters is
// copied unchanged. There are no operators, conditionals or loops.
//
// # Basic Usage
//
//	engine := curly.MustNew()
//	engine.AddVariable("name", "World")
//	out, err := engine.Render("Hello {{ name }}")
//	// out: "Hello World"
//
// # Functions
//
// Functions receive their arguments already evaluated, left to right:
//
//	engine.AddFunction("greet", func(args []string) (string, error) {
//	    if err := curly.ArgsMinLen(args, 1); err != nil {
//	        return "", err
//	    }
//	    return "Hi " + strings.Join(args, " & "), nil
//	})
//
// Builtin modules are enabled by default and can be toggled with options:
//
//   - text: toLower, toUpper, trim
//   - math: add, sub, mul and div for u8..u128, i8..i128, f32 and f64,
//     named "<op>_<width>" (e.g. add_u8, div_f64)
//   - os: env
//
// # Errors
//
// Render fails fast. Errors are *cuserr.CustomError values wrapping one of
// *SyntaxError, *VariableNotFoundError, *FunctionNotImplementedError or
// *FunctionCallError, so both errors.As targets work. ErrorKindOf
// classifies an error without type assertions.
//
// # Storage
//
// A Store keeps template sources by name. Drivers for "memory",
// "filesystem", "sqlite" and "postgres" register themselves and are opened
// with OpenStore; Engine.RenderStored fetches a source and renders it.
// Stores hold text only, so every render parses again.
//
// # Concurrency
//
// An Engine is safe for concurrent use. Variables and functions live in
// sharded concurrent maps; Clone returns a handle over the same maps with
// its own delimiters.
package curly
