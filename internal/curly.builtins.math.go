package internal

import (
	"math/big"
	"strconv"
	"strings"
)

// numberWidth describes one numeric type of the math module
type numberWidth struct {
	name     string
	bits     int
	float    bool
	unsigned bool
}

var mathWidths = []numberWidth{
	{name: "u8", bits: 8, unsigned: true},
	{name: "u16", bits: 16, unsigned: true},
	{name: "u32", bits: 32, unsigned: true},
	{name: "u64", bits: 64, unsigned: true},
	{name: "u128", bits: 128, unsigned: true},
	{name: "i8", bits: 8},
	{name: "i16", bits: 16},
	{name: "i32", bits: 32},
	{name: "i64", bits: 64},
	{name: "i128", bits: 128},
	{name: "f32", bits: 32, float: true},
	{name: "f64", bits: 64, float: true},
}

var mathOps = []string{MathOpAdd, MathOpSub, MathOpMul, MathOpDiv}

// MathBuiltins returns add, sub, mul and div for every width, named
// "<op>_<width>" (e.g. add_u8, div_f64).
func MathBuiltins() BuiltinModule {
	funcs := make(map[string]Func, len(mathOps)*len(mathWidths))
	for _, op := range mathOps {
		for _, w := range mathWidths {
			name := MathFuncName(op, w.name)
			if w.float {
				funcs[name] = floatFold(op, w.bits)
			} else {
				funcs[name] = intFold(op, w)
			}
		}
	}
	return BuiltinModule{Name: BuiltinModuleMath, Funcs: funcs}
}

// MathFuncName builds the registered name for op at width, e.g. "add_i32"
func MathFuncName(op, width string) string {
	return op + MathNameSep + width
}

// intFold folds the arguments left to right starting from the first one.
// Every intermediate result must fit the width.
func intFold(op string, w numberWidth) Func {
	lo, hi := intBounds(w)
	return func(args []string) (string, error) {
		if err := ArgsMinLen(args, 1); err != nil {
			return StringValueEmpty, err
		}

		acc, err := parseBigInt(args[0], w, lo, hi)
		if err != nil {
			return StringValueEmpty, err
		}
		for _, a := range args[1:] {
			x, err := parseBigInt(a, w, lo, hi)
			if err != nil {
				return StringValueEmpty, err
			}
			switch op {
			case MathOpAdd:
				acc.Add(acc, x)
			case MathOpSub:
				acc.Sub(acc, x)
			case MathOpMul:
				acc.Mul(acc, x)
			case MathOpDiv:
				if x.Sign() == 0 {
					return StringValueEmpty, NewRuntimeError(ErrMsgDivisionByZero, nil)
				}
				acc.Quo(acc, x)
			}
			if acc.Cmp(lo) < 0 || acc.Cmp(hi) > 0 {
				return StringValueEmpty, NewRuntimeError(ErrMsgOverflow, nil)
			}
		}
		return acc.String(), nil
	}
}

func intBounds(w numberWidth) (lo, hi *big.Int) {
	one := big.NewInt(1)
	if w.unsigned {
		hi = new(big.Int).Lsh(one, uint(w.bits))
		return big.NewInt(0), hi.Sub(hi, one)
	}
	limit := new(big.Int).Lsh(one, uint(w.bits-1))
	return new(big.Int).Neg(limit), new(big.Int).Sub(limit, one)
}

// parseBigInt accepts an optional sign followed by decimal digits, within
// [lo, hi]. Unsigned widths reject a leading '-'.
func parseBigInt(s string, w numberWidth, lo, hi *big.Int) (*big.Int, error) {
	if w.unsigned && strings.HasPrefix(s, "-") {
		return nil, NewInvalidTypeError(s, nil)
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok || v.Cmp(lo) < 0 || v.Cmp(hi) > 0 {
		return nil, NewInvalidTypeError(s, nil)
	}
	return v, nil
}

// floatFold folds the arguments with IEEE semantics at the given precision.
// Division by zero yields an infinity, as the hardware does.
func floatFold(op string, bits int) Func {
	round := func(v float64) float64 {
		if bits == 32 {
			return float64(float32(v))
		}
		return v
	}
	return func(args []string) (string, error) {
		if err := ArgsMinLen(args, 1); err != nil {
			return StringValueEmpty, err
		}

		acc, err := strconv.ParseFloat(args[0], bits)
		if err != nil {
			return StringValueEmpty, NewInvalidTypeError(args[0], err)
		}
		for _, a := range args[1:] {
			x, err := strconv.ParseFloat(a, bits)
			if err != nil {
				return StringValueEmpty, NewInvalidTypeError(a, err)
			}
			switch op {
			case MathOpAdd:
				acc = round(acc + x)
			case MathOpSub:
				acc = round(acc - x)
			case MathOpMul:
				acc = round(acc * x)
			case MathOpDiv:
				acc = round(acc / x)
			}
		}
		return strconv.FormatFloat(acc, 'f', -1, bits), nil
	}
}
