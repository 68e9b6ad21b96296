package curly

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/itsatony/go-cuserr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestEngine_Scenarios(t *testing.T) {
	tests := []struct {
		name     string
		template string
		vars     map[string]any
		want     string
		kind     ErrorKind
	}{
		{
			name:     "variable substitution",
			template: "Hello {{ var }}",
			vars:     map[string]any{"var": "World"},
			want:     "Hello World",
		},
		{
			name:     "nested builtins",
			template: "{{ toUpper(trim(var)) }}",
			vars:     map[string]any{"var": "  hi  "},
			want:     "HI",
		},
		{
			name:     "math fold",
			template: "{{ add_u8(1, 2, 3) }}",
			want:     "6",
		},
		{
			name:     "math rejects non numeric",
			template: "{{ add_u8(1, x) }}",
			vars:     map[string]any{"x": "abc"},
			kind:     ErrorKindFunction,
		},
		{
			name:     "malformed closing marker",
			template: "Hi {{ name }",
			vars:     map[string]any{"name": "x"},
			kind:     ErrorKindSyntax,
		},
		{
			name:     "no delimiters passes through",
			template: "plain } text { with } braces",
			want:     "plain } text { with } braces",
		},
		{
			name:     "raw text preserved byte for byte",
			template: "  a\t{{v}}\r\n b ",
			vars:     map[string]any{"v": "X"},
			want:     "  a\tX\r\n b ",
		},
		{
			name:     "unknown variable",
			template: "{{ nope }}",
			kind:     ErrorKindVariableNotFound,
		},
		{
			name:     "unknown function",
			template: "{{ nope() }}",
			kind:     ErrorKindFunctionNotImplemented,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := MustNew(WithVariables(tt.vars))
			got, err := engine.Render(tt.template)
			if tt.kind != ErrorKindNone {
				require.Error(t, err)
				assert.Equal(t, tt.kind, ErrorKindOf(err))
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEngine_InvalidTypeError(t *testing.T) {
	engine := MustNew(WithVariables(map[string]any{"x": "abc"}))
	_, err := engine.Render("{{ add_u8(1, x) }}")
	require.Error(t, err)

	var funcErr *FuncError
	require.True(t, errors.As(err, &funcErr))
	assert.Equal(t, FuncErrInvalidType, funcErr.Kind)

	var callErr *FunctionCallError
	require.True(t, errors.As(err, &callErr))
	assert.Equal(t, "add_u8", callErr.Name)

	var customErr *cuserr.CustomError
	require.True(t, errors.As(err, &customErr))
	kind, ok := customErr.GetMetadata(MetaKeyKind)
	assert.True(t, ok)
	assert.Equal(t, string(FuncErrInvalidType), kind)
	name, ok := customErr.GetMetadata(MetaKeyName)
	assert.True(t, ok)
	assert.Equal(t, "add_u8", name)
}

func TestEngine_ArgumentsReceivedExactly(t *testing.T) {
	var got []string
	engine := MustNew(
		WithVariables(map[string]any{"x": 42}),
		WithFunctions(map[string]Func{
			"greet": func(args []string) (string, error) {
				if err := ArgsMinLen(args, 2); err != nil {
					return "", err
				}
				got = append([]string(nil), args...)
				return "ok", nil
			},
		}),
	)

	out, err := engine.Render(`{{ greet("a,b", x) }}`)
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, []string{"a,b", "42"}, got)
}

func TestEngine_EvaluatesArgumentsLeftToRight(t *testing.T) {
	var order []string
	record := func(args []string) (string, error) {
		order = append(order, args[0])
		return args[0], nil
	}
	engine := MustNew(WithFunctions(map[string]Func{"rec": record}))

	out, err := engine.Render(`{{ rec(rec("a"), rec(rec("b")), rec("c")) }}`)
	require.NoError(t, err)
	assert.Equal(t, "a", out)
	assert.Equal(t, []string{"a", "b", "b", "c", "a"}, order)
}

func TestEngine_SyntaxErrorMetadata(t *testing.T) {
	engine := MustNew()
	_, err := engine.Render("line one\n  {{ f(\"open }}")
	require.Error(t, err)

	syntaxErr, ok := AsSyntaxError(err)
	require.True(t, ok)
	assert.Equal(t, SyntaxUnterminatedString, syntaxErr.Kind)
	assert.Equal(t, 1, syntaxErr.Line)
	assert.Equal(t, 7, syntaxErr.Column)
	assert.Contains(t, err.Error(), "line 2, column 8")

	var customErr *cuserr.CustomError
	require.True(t, errors.As(err, &customErr))
	line, ok := customErr.GetMetadata(MetaKeyLine)
	assert.True(t, ok)
	assert.Equal(t, "1", line)
	column, ok := customErr.GetMetadata(MetaKeyColumn)
	assert.True(t, ok)
	assert.Equal(t, "7", column)
	offset, ok := customErr.GetMetadata(MetaKeyOffset)
	assert.True(t, ok)
	assert.Equal(t, "16", offset)
}

func TestEngine_Suggestions(t *testing.T) {
	engine := MustNew(WithVariables(map[string]any{"name": "x"}))
	_, err := engine.Render("{{ nme }}")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "did you mean 'name'")

	var customErr *cuserr.CustomError
	require.True(t, errors.As(err, &customErr))
	suggestion, ok := customErr.GetMetadata(MetaKeySuggestion)
	assert.True(t, ok)
	assert.Equal(t, "name", suggestion)

	_, err = engine.Render("{{ toUper(name) }}")
	require.Error(t, err)
	assert.Equal(t, ErrorKindFunctionNotImplemented, ErrorKindOf(err))
	assert.Contains(t, err.Error(), "toUpper")
}

func TestEngine_Variables(t *testing.T) {
	engine := MustNew()

	engine.AddVariable("s", "text")
	engine.AddVariable("n", 7)
	engine.AddVariable("f", 1.5)
	engine.AddVariable("b", true)
	engine.AddVariable("nil", nil)
	engine.AddVariable("stringer", Position{Line: 1, Column: 2})
	engine.AddVariables(map[string]any{"u": uint8(200), "bytes": []byte("raw")})

	for name, want := range map[string]string{
		"s":        "text",
		"n":        "7",
		"f":        "1.5",
		"b":        "true",
		"nil":      "",
		"stringer": "line 2, column 3",
		"u":        "200",
		"bytes":    "raw",
	} {
		got, ok := engine.Variable(name)
		require.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}

	assert.True(t, engine.ContainsVariable("s"))
	engine.AddVariable("s", "replaced")
	out, err := engine.Render("{{ s }}")
	require.NoError(t, err)
	assert.Equal(t, "replaced", out)

	engine.RemoveVariable("s")
	engine.RemoveVariable("never-added")
	assert.False(t, engine.ContainsVariable("s"))

	assert.Equal(t, []string{"b", "bytes", "f", "n", "nil", "stringer", "u"}, engine.VariableNames())

	engine.ClearVariables()
	assert.Empty(t, engine.VariableNames())
	_, err = engine.Render("{{ n }}")
	assert.Equal(t, ErrorKindVariableNotFound, ErrorKindOf(err))
}

func TestEngine_Functions(t *testing.T) {
	engine := MustNew()
	assert.True(t, engine.ContainsFunction("toUpper"))
	assert.True(t, engine.ContainsFunction("env"))
	assert.True(t, engine.ContainsFunction(MathFuncName("div", "f64")))

	engine.AddFunction("toUpper", func(args []string) (string, error) {
		return "shadowed", nil
	})
	out, err := engine.Render(`{{ toUpper("x") }}`)
	require.NoError(t, err)
	assert.Equal(t, "shadowed", out)

	engine.AddFunctions(map[string]Func{
		"one": func([]string) (string, error) { return "1", nil },
		"two": func([]string) (string, error) { return "2", nil },
	})
	out, err = engine.Render("{{ one() }}{{ two() }}")
	require.NoError(t, err)
	assert.Equal(t, "12", out)

	engine.RemoveFunction("one")
	assert.False(t, engine.ContainsFunction("one"))

	engine.ClearFunctions()
	assert.Empty(t, engine.FunctionNames())
	_, err = engine.Render(`{{ trim("x") }}`)
	assert.Equal(t, ErrorKindFunctionNotImplemented, ErrorKindOf(err))
}

func TestEngine_BuiltinToggles(t *testing.T) {
	tests := []struct {
		name    string
		opts    []Option
		present []string
		absent  []string
	}{
		{
			name:    "defaults",
			present: []string{"toLower", "add_i128", "env"},
		},
		{
			name:   "without builtins",
			opts:   []Option{WithoutBuiltins()},
			absent: []string{"toLower", "add_i128", "env"},
		},
		{
			name:    "no os",
			opts:    []Option{WithOSBuiltins(false)},
			present: []string{"toLower", "add_i128"},
			absent:  []string{"env"},
		},
		{
			name:    "only math",
			opts:    []Option{WithoutBuiltins(), WithMathBuiltins(true)},
			present: []string{"mul_f32"},
			absent:  []string{"trim", "env"},
		},
		{
			name:    "no text",
			opts:    []Option{WithTextBuiltins(false)},
			present: []string{"env"},
			absent:  []string{"toUpper"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := MustNew(tt.opts...)
			for _, name := range tt.present {
				assert.True(t, engine.ContainsFunction(name), name)
			}
			for _, name := range tt.absent {
				assert.False(t, engine.ContainsFunction(name), name)
			}
		})
	}

	t.Run("without builtins leaves an empty registry", func(t *testing.T) {
		assert.Empty(t, MustNew(WithoutBuiltins()).FunctionNames())
	})
}

func TestEngine_Delimiters(t *testing.T) {
	t.Run("construct with delimiter", func(t *testing.T) {
		engine := MustNew(
			WithDelimiter("<%", "%>"),
			WithVariables(map[string]any{"x": "1"}),
		)
		out, err := engine.Render("<% x %> and {{ x }}")
		require.NoError(t, err)
		assert.Equal(t, "1 and {{ x }}", out)

		open, close := engine.Delimiters()
		assert.Equal(t, "<%", open)
		assert.Equal(t, "%>", close)
	})

	t.Run("set delimiter affects later renders only", func(t *testing.T) {
		engine := MustNew(WithVariables(map[string]any{"x": "1"}))
		out, err := engine.Render("{{ x }}")
		require.NoError(t, err)
		assert.Equal(t, "1", out)

		require.NoError(t, engine.SetDelimiter("[[", "]]"))
		out, err = engine.Render("{{ x }} [[ x ]]")
		require.NoError(t, err)
		assert.Equal(t, "{{ x }} 1", out)
	})

	t.Run("same open and close", func(t *testing.T) {
		engine := MustNew(WithDelimiter("|", "|"), WithVariables(map[string]any{"x": "1"}))
		out, err := engine.Render("a |x| b")
		require.NoError(t, err)
		assert.Equal(t, "a 1 b", out)
	})

	t.Run("invalid delimiters", func(t *testing.T) {
		for _, pair := range [][2]string{{"", "}}"}, {"{{", ""}, {"{ {", "}}"}, {"«", "»"}} {
			_, err := New(WithDelimiter(pair[0], pair[1]))
			require.Error(t, err, pair)
			assert.Contains(t, err.Error(), ErrMsgInvalidDelimiters)

			var customErr *cuserr.CustomError
			require.True(t, errors.As(err, &customErr))
			open, ok := customErr.GetMetadata(MetaKeyOpenDelim)
			assert.True(t, ok)
			assert.Equal(t, pair[0], open)
		}
	})

	t.Run("set delimiter rejects and keeps previous", func(t *testing.T) {
		engine := MustNew()
		require.Error(t, engine.SetDelimiter("", ""))
		open, close := engine.Delimiters()
		assert.Equal(t, DefaultOpenDelim, open)
		assert.Equal(t, DefaultCloseDelim, close)
	})

	t.Run("must new panics", func(t *testing.T) {
		assert.Panics(t, func() { MustNew(WithDelimiter("", "")) })
	})
}

func TestEngine_Clone(t *testing.T) {
	engine := MustNew()
	clone := engine.Clone()

	engine.AddVariable("shared", "yes")
	clone.AddFunction("hello", func([]string) (string, error) { return "hi", nil })

	out, err := clone.Render("{{ shared }}")
	require.NoError(t, err)
	assert.Equal(t, "yes", out)

	out, err = engine.Render("{{ hello() }}")
	require.NoError(t, err)
	assert.Equal(t, "hi", out)

	require.NoError(t, clone.SetDelimiter("<<", ">>"))
	open, _ := engine.Delimiters()
	assert.Equal(t, DefaultOpenDelim, open)

	out, err = clone.Render("<< shared >> {{ shared }}")
	require.NoError(t, err)
	assert.Equal(t, "yes {{ shared }}", out)
}

func TestEngine_ConcurrentUse(t *testing.T) {
	engine := MustNew()
	var wg sync.WaitGroup

	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			handle := engine
			if i%2 == 0 {
				handle = engine.Clone()
			}
			name := fmt.Sprintf("v%d", i)
			handle.AddVariable(name, i)
			for j := 0; j < 50; j++ {
				out, err := handle.Render(fmt.Sprintf("{{ toUpper(%s) }}-{{ add_i32(%s, 1) }}", name, name))
				assert.NoError(t, err)
				assert.Equal(t, fmt.Sprintf("%d-%d", i, i+1), out)
			}
		}(i)
	}
	wg.Wait()

	assert.Len(t, engine.VariableNames(), 16)
}

func TestEngine_FunctionsMayRender(t *testing.T) {
	engine := MustNew(WithVariables(map[string]any{"who": "nested"}))
	engine.AddFunction("include", func(args []string) (string, error) {
		return engine.Render(args[0])
	})

	out, err := engine.Render(`[{{ include("<{{ who }}>") }}]`)
	require.NoError(t, err)
	assert.Equal(t, "[<nested>]", out)

	_, err = engine.Render(`{{ include("{{ missing }}") }}`)
	require.Error(t, err)
	assert.Equal(t, ErrorKindFunction, ErrorKindOf(err))
}

func TestEngine_Validate(t *testing.T) {
	engine := MustNew()
	assert.NoError(t, engine.Validate("{{ unknown(also.unknown) }}"))
	err := engine.Validate("{{ f(1 2) }}")
	require.Error(t, err)
	assert.Equal(t, ErrorKindSyntax, ErrorKindOf(err))
}

func TestEngine_RenderStored(t *testing.T) {
	ctx := context.Background()

	t.Run("no store", func(t *testing.T) {
		_, err := MustNew().RenderStored(ctx, "x")
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgNoStore)
	})

	t.Run("memory store", func(t *testing.T) {
		store := NewMemoryStore()
		require.NoError(t, store.Put(ctx, "hello", "Hello {{ toUpper(name) }}"))

		engine := MustNew(WithStore(store), WithVariables(map[string]any{"name": "ada"}))
		assert.Same(t, store, engine.Store())

		out, err := engine.RenderStored(ctx, "hello")
		require.NoError(t, err)
		assert.Equal(t, "Hello ADA", out)

		_, err = engine.RenderStored(ctx, "missing")
		assert.True(t, IsTemplateNotFound(err))
	})
}

func TestEngine_Logging(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	engine := MustNew(WithLogger(zap.New(core)))

	assert.Equal(t, 1, logs.FilterMessage(LogMsgEngineCreated).Len())

	_, err := engine.Render("{{ missing }}")
	require.Error(t, err)
	assert.Equal(t, 1, logs.FilterMessage(LogMsgRenderFailed).Len())

	require.NoError(t, engine.SetDelimiter("<", ">"))
	entries := logs.FilterMessage(LogMsgDelimitersSet).All()
	require.Len(t, entries, 1)
	assert.Equal(t, "<", entries[0].ContextMap()[LogFieldOpenDelim])
}

func TestErrorKindOf(t *testing.T) {
	assert.Equal(t, ErrorKindNone, ErrorKindOf(nil))
	assert.Equal(t, ErrorKindOther, ErrorKindOf(errors.New("x")))
	assert.Equal(t, ErrorKindStorage, ErrorKindOf(NewStoreClosedError()))

	_, err := MustNew().Render("{{ ")
	assert.Equal(t, ErrorKindSyntax, ErrorKindOf(err))
	assert.Contains(t, err.Error(), "expected identifier")
}

func TestEngine_SyntaxErrorRunsNoFunction(t *testing.T) {
	engine := MustNew()
	calls := 0
	engine.AddFunction("f", func([]string) (string, error) {
		calls++
		return "called", nil
	})

	_, err := engine.Render("{{ f() }} {{ bad")
	require.Error(t, err)
	assert.Equal(t, ErrorKindSyntax, ErrorKindOf(err))
	assert.Equal(t, 0, calls)
	assert.Equal(t,
		`template syntax error: expected close delimiter "}}", found end of input at line 1, column 17`,
		err.Error())
}

func TestEngine_NilValues(t *testing.T) {
	engine := MustNew()

	t.Run("nil pointer stringer", func(t *testing.T) {
		var pos *Position
		assert.NotPanics(t, func() { engine.AddVariable("pos", pos) })
		out, err := engine.Render("[{{ pos }}]")
		require.NoError(t, err)
		assert.Equal(t, "[]", out)
	})

	t.Run("nil function", func(t *testing.T) {
		engine.AddFunction("missing", nil)
		assert.False(t, engine.ContainsFunction("missing"))

		engine.AddFunction("keep", func([]string) (string, error) { return "kept", nil })
		engine.AddFunctions(map[string]Func{"keep": nil, "other": nil})
		assert.False(t, engine.ContainsFunction("other"))

		out, err := engine.Render("{{ keep() }}")
		require.NoError(t, err)
		assert.Equal(t, "kept", out)
	})
}
