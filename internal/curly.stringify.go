package internal

import (
	"fmt"
	"reflect"
	"strconv"
)

// Stringify converts a variable value to the text stored in the registry.
// Scalars use strconv formatting; anything else falls back to fmt.Sprint.
// Nil, including a nil pointer behind a Stringer or error, becomes "".
func Stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return StringValueEmpty
	case string:
		return v
	case []byte:
		return string(v)
	case fmt.Stringer:
		if isNilPointer(v) {
			return StringValueEmpty
		}
		return v.String()
	case error:
		if isNilPointer(v) {
			return StringValueEmpty
		}
		return v.Error()
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int8:
		return strconv.FormatInt(int64(v), 10)
	case int16:
		return strconv.FormatInt(int64(v), 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case uint8:
		return strconv.FormatUint(uint64(v), 10)
	case uint16:
		return strconv.FormatUint(uint64(v), 10)
	case uint32:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func isNilPointer(value any) bool {
	rv := reflect.ValueOf(value)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
