package httpx

import (
	"strings"
)

const formContentType = "application/x-www-form-urlencoded"

// FormDecode decodes an application/x-www-form-urlencoded component: '+'
// becomes a space and %XX becomes the byte it encodes. A '%' that does not
// start a valid escape is kept literally.
func FormDecode(s string) string { return unescape(s, true) }

// PercentDecode decodes %XX escapes only; '+' is kept as is.
func PercentDecode(s string) string { return unescape(s, false) }

func unescape(s string, plus bool) string {
	i := 0
	for ; i < len(s); i++ {
		if c := s[i]; c == '%' || (plus && c == '+') {
			break
		}
	}
	if i == len(s) {
		return s
	}
	b := make([]byte, 0, len(s))
	b = append(b, s[:i]...)
	for ; i < len(s); i++ {
		switch c := s[i]; {
		case c == '+' && plus:
			b = append(b, ' ')
		case c == '%' && i+2 < len(s) && ishex(s[i+1]) && ishex(s[i+2]):
			b = append(b, unhex(s[i+1])<<4|unhex(s[i+2]))
			i += 2
		default:
			b = append(b, c)
		}
	}
	return string(b)
}

func ishex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}

// ParseForm decodes an '&'-separated list of key=value pairs into dst.
// Empty segments and pairs with an empty key are skipped; a segment without
// '=' yields an empty value. Later keys overwrite earlier ones.
func ParseForm(dst *StringMap, s string) {
	for s != "" {
		var seg string
		seg, s, _ = strings.Cut(s, "&")
		if seg == "" {
			continue
		}
		k, v, _ := strings.Cut(seg, "=")
		key := FormDecode(k)
		if key == "" {
			continue
		}
		dst.Set(key, FormDecode(v))
	}
}

// ParseCookieHeader decodes a Cookie header value ("k1=v1; k2=v2") into
// dst. Segments without '=' or with an empty name are skipped. Values are
// percent-decoded and may be wrapped in double quotes.
func ParseCookieHeader(dst *StringMap, s string) {
	for s != "" {
		var seg string
		seg, s, _ = strings.Cut(s, ";")
		seg = strings.Trim(seg, " \t")
		k, v, ok := strings.Cut(seg, "=")
		if !ok {
			continue
		}
		k = strings.TrimRight(k, " \t")
		if k == "" {
			continue
		}
		v = strings.TrimLeft(v, " \t")
		if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' {
			v = v[1 : len(v)-1]
		}
		dst.Set(k, PercentDecode(v))
	}
}

func isFormContentType(ct string) bool {
	mt, _, _ := strings.Cut(ct, ";")
	return EqualFold(strings.TrimSpace(mt), formContentType)
}
