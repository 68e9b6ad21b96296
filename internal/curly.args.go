package internal

import "strconv"

// ArgType lists the types a function argument can be parsed into
type ArgType interface {
	string | bool |
		int | int8 | int16 | int32 | int64 |
		uint | uint8 | uint16 | uint32 | uint64 |
		float32 | float64
}

// ParseValue parses s as T. Integers are base 10 and must fit the width
// of T exactly; a failure is an InvalidType FuncError.
func ParseValue[T ArgType](s string) (T, error) {
	var zero T
	var out any
	var err error

	switch any(zero).(type) {
	case string:
		out = s
	case bool:
		out, err = strconv.ParseBool(s)
	case int:
		var v int64
		v, err = strconv.ParseInt(s, 10, strconv.IntSize)
		out = int(v)
	case int8:
		var v int64
		v, err = strconv.ParseInt(s, 10, 8)
		out = int8(v)
	case int16:
		var v int64
		v, err = strconv.ParseInt(s, 10, 16)
		out = int16(v)
	case int32:
		var v int64
		v, err = strconv.ParseInt(s, 10, 32)
		out = int32(v)
	case int64:
		out, err = strconv.ParseInt(s, 10, 64)
	case uint:
		var v uint64
		v, err = strconv.ParseUint(s, 10, strconv.IntSize)
		out = uint(v)
	case uint8:
		var v uint64
		v, err = strconv.ParseUint(s, 10, 8)
		out = uint8(v)
	case uint16:
		var v uint64
		v, err = strconv.ParseUint(s, 10, 16)
		out = uint16(v)
	case uint32:
		var v uint64
		v, err = strconv.ParseUint(s, 10, 32)
		out = uint32(v)
	case uint64:
		out, err = strconv.ParseUint(s, 10, 64)
	case float32:
		var v float64
		v, err = strconv.ParseFloat(s, 32)
		out = float32(v)
	case float64:
		out, err = strconv.ParseFloat(s, 64)
	}

	if err != nil {
		return zero, NewInvalidTypeError(s, err)
	}
	return out.(T), nil
}

// ParseArg parses args[i] as T. A missing argument is reported as
// ArgumentsIncomplete.
func ParseArg[T ArgType](args []string, i int) (T, error) {
	if i < 0 || i >= len(args) {
		var zero T
		return zero, NewArgumentsIncompleteError(ArgBoundAtLeast, i+1, len(args))
	}
	return ParseValue[T](args[i])
}

// ValidateArgType reports whether arg parses as T
func ValidateArgType[T ArgType](arg string) error {
	_, err := ParseValue[T](arg)
	return err
}
