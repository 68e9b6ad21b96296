package internal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFuncError_Error(t *testing.T) {
	cause := errors.New("io")
	tests := []struct {
		name     string
		err      *FuncError
		expected string
	}{
		{"invalid argument", NewInvalidArgumentError("HOME2"), "invalid function argument: HOME2"},
		{"invalid type", NewInvalidTypeError("x", nil), "invalid function argument type: x"},
		{"arguments incomplete", NewArgumentsIncompleteError(ArgBoundAtLeast, 2, 1), "wrong number of function arguments: expected at least 2, found 1"},
		{"runtime with cause", NewRuntimeError("boom", cause), "error calling the function: boom: io"},
		{"runtime bare", NewRuntimeError("", nil), "error calling the function"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestFuncError_Unwrap(t *testing.T) {
	cause := errors.New("io")
	err := error(NewRuntimeError("boom", cause))

	assert.ErrorIs(t, err, cause)
}

func TestArgsLen(t *testing.T) {
	args := []string{"Some", "Other", "Again"}

	assert.NoError(t, ArgsMinLen(args, 2))
	assert.NoError(t, ArgsMaxLen(args, 3))

	var funcErr *FuncError
	require.ErrorAs(t, ArgsMinLen(args, 10), &funcErr)
	assert.Equal(t, FuncErrArgumentsIncomplete, funcErr.Kind)
	assert.Equal(t, 10, funcErr.Expected)
	assert.Equal(t, 3, funcErr.Found)

	require.ErrorAs(t, ArgsMaxLen(args, 1), &funcErr)
	assert.Equal(t, ArgBoundAtMost, funcErr.Bound)
}

func TestValidateArgType(t *testing.T) {
	assert.NoError(t, ValidateArgType[uint32]("54"))
	assert.NoError(t, ValidateArgType[float32]("3.5"))
	assert.NoError(t, ValidateArgType[int32]("-54"))
	assert.Error(t, ValidateArgType[uint32]("3.5"))
	assert.Error(t, ValidateArgType[uint32]("-54"))
	assert.Error(t, ValidateArgType[bool]("yes"))
}

func TestParseArg(t *testing.T) {
	args := []string{"127", "128", "true", "1.5", "text"}

	i8, err := ParseArg[int8](args, 0)
	require.NoError(t, err)
	assert.Equal(t, int8(127), i8)

	_, err = ParseArg[int8](args, 1)
	var funcErr *FuncError
	require.ErrorAs(t, err, &funcErr)
	assert.Equal(t, FuncErrInvalidType, funcErr.Kind)

	u8, err := ParseArg[uint8](args, 1)
	require.NoError(t, err)
	assert.Equal(t, uint8(128), u8)

	b, err := ParseArg[bool](args, 2)
	require.NoError(t, err)
	assert.True(t, b)

	f, err := ParseArg[float32](args, 3)
	require.NoError(t, err)
	assert.Equal(t, float32(1.5), f)

	s, err := ParseArg[string](args, 4)
	require.NoError(t, err)
	assert.Equal(t, "text", s)

	_, err = ParseArg[string](args, 5)
	require.ErrorAs(t, err, &funcErr)
	assert.Equal(t, FuncErrArgumentsIncomplete, funcErr.Kind)
	assert.Equal(t, 6, funcErr.Expected)
	assert.Equal(t, 5, funcErr.Found)
}
