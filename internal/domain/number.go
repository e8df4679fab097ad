package domain

import (
	"strconv"
	"strings"
)

// NumberConverter turns a bulletin token into a Number, or nil when the token
// carries no usable value. The decode engine treats the converter as opaque:
// whatever it returns nil for becomes an absent slot.
type NumberConverter func(token string) *Number

// ParseNumber is the default NumberConverter for MOS tokens. It handles the
// conventions that appear in guidance products: surrounding whitespace,
// slash-only missing-value sentinels ("//"), and a leading "M" minus marker
// on sub-zero temperatures. Anything else non-numeric yields nil.
func ParseNumber(token string) *Number {
	token = strings.TrimSpace(token)
	if token == "" || strings.Trim(token, "/") == "" {
		return nil
	}
	repr := token
	if len(token) > 1 && token[0] == 'M' {
		token = "-" + token[1:]
	}
	value, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return nil
	}
	return &Number{Repr: repr, Value: value}
}
