package lilt

import (
	"fmt"
	"strconv"
)

type ValueKind int

const (
	NumberValue ValueKind = iota
	StringValue
)

// Value is a runtime value: a float64 number or a string. All numbers share
// the one representation, so 3 and 3.0 are the same value.
type Value struct {
	Kind ValueKind
	Num  float64
	Str  string
}

func NumberOf(f float64) Value {
	return Value{Kind: NumberValue, Num: f}
}

func StringOf(s string) Value {
	return Value{Kind: StringValue, Str: s}
}

// String renders the value as print would emit it: numbers in plain decimal
// form without a trailing fractional part, strings without quotes.
func (v Value) String() string {
	if v.Kind == StringValue {
		return v.Str
	}

	return strconv.FormatFloat(v.Num, 'f', -1, 64)
}

func (v Value) kindName() string {
	if v.Kind == StringValue {
		return "string"
	}

	return "number"
}

// parseNumber converts a lexed number literal. The lexer only emits digit
// runs, so a failure here means the tree was built by hand with a bad literal.
func parseNumber(text string) (float64, error) {
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, &RuntimeError{Kind: TypeMismatch, Detail: fmt.Sprintf("malformed number literal '%s'", text)}
	}

	return f, nil
}
