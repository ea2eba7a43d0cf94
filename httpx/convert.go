package httpx

import (
	"strconv"
)

// Scalar is the closed set of types the typed accessors can convert a
// string value into.
type Scalar interface {
	string | bool |
		int | int8 | int16 | int32 | int64 |
		uint | uint8 | uint16 | uint32 | uint64 |
		float32 | float64
}

// ParseAs converts s into T. Integers are parsed in base 10 and must fit the
// width of T. Booleans accept the strconv.ParseBool forms ("1", "t", "T",
// "true", "TRUE", "True" and their false counterparts). Strings are returned
// unchanged. Surrounding whitespace is not trimmed.
func ParseAs[T Scalar](s string) (T, error) {
	var v T
	var err error
	switch p := any(&v).(type) {
	case *string:
		*p = s
	case *bool:
		*p, err = strconv.ParseBool(s)
	case *int:
		*p, err = parseSigned[int](s, strconv.IntSize)
	case *int8:
		*p, err = parseSigned[int8](s, 8)
	case *int16:
		*p, err = parseSigned[int16](s, 16)
	case *int32:
		*p, err = parseSigned[int32](s, 32)
	case *int64:
		*p, err = parseSigned[int64](s, 64)
	case *uint:
		*p, err = parseUnsigned[uint](s, strconv.IntSize)
	case *uint8:
		*p, err = parseUnsigned[uint8](s, 8)
	case *uint16:
		*p, err = parseUnsigned[uint16](s, 16)
	case *uint32:
		*p, err = parseUnsigned[uint32](s, 32)
	case *uint64:
		*p, err = parseUnsigned[uint64](s, 64)
	case *float32:
		var f float64
		f, err = strconv.ParseFloat(s, 32)
		*p = float32(f)
	case *float64:
		*p, err = strconv.ParseFloat(s, 64)
	}
	if err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

func parseSigned[I int | int8 | int16 | int32 | int64](s string, bits int) (I, error) {
	n, err := strconv.ParseInt(s, 10, bits)
	return I(n), err
}

func parseUnsigned[U uint | uint8 | uint16 | uint32 | uint64](s string, bits int) (U, error) {
	n, err := strconv.ParseUint(s, 10, bits)
	return U(n), err
}

// CheckGetAs looks up key in m and converts its value into T. It returns
// (def, false) when the key is absent or the value does not convert.
func CheckGetAs[T Scalar](m *StringMap, key string, def T) (T, bool) {
	s, ok := m.Get(key)
	if !ok {
		return def, false
	}
	v, err := ParseAs[T](s)
	if err != nil {
		return def, false
	}
	return v, true
}

// GetAs is CheckGetAs without the success flag.
func GetAs[T Scalar](m *StringMap, key string, def T) T {
	v, _ := CheckGetAs(m, key, def)
	return v
}

// Message is implemented by Request and Response.
type Message interface {
	Headers() *StringMap
}

// CheckHeaderAs converts header key of msg into T. Reading headers never
// triggers lazy parsing.
func CheckHeaderAs[T Scalar](msg Message, key string, def T) (T, bool) {
	return CheckGetAs(msg.Headers(), key, def)
}

// HeaderAs is CheckHeaderAs without the success flag.
func HeaderAs[T Scalar](msg Message, key string, def T) T {
	return GetAs(msg.Headers(), key, def)
}

// CheckParamAs materializes r's params and converts param key into T.
func CheckParamAs[T Scalar](r *Request, key string, def T) (T, bool) {
	return CheckGetAs(r.Params(), key, def)
}

// ParamAs is CheckParamAs without the success flag.
func ParamAs[T Scalar](r *Request, key string, def T) T {
	return GetAs(r.Params(), key, def)
}

// CheckCookieAs materializes r's cookies and converts cookie key into T.
func CheckCookieAs[T Scalar](r *Request, key string, def T) (T, bool) {
	return CheckGetAs(r.Cookies(), key, def)
}

// CookieAs is CheckCookieAs without the success flag.
func CookieAs[T Scalar](r *Request, key string, def T) T {
	return GetAs(r.Cookies(), key, def)
}
