package httpx

import (
	"strconv"
	"strings"
	"time"
)

// TimeFormat is the IMF-fixdate layout used for cookie expiry and other
// HTTP dates. Times must be in UTC when formatted with it.
const TimeFormat = "Mon, 02 Jan 2006 15:04:05 GMT"

// SameSite is the SameSite attribute of a Set-Cookie line.
type SameSite uint8

const (
	SameSiteDefault SameSite = iota
	SameSiteLax
	SameSiteStrict
	SameSiteNone
)

func (s SameSite) String() string {
	switch s {
	case SameSiteLax:
		return "Lax"
	case SameSiteStrict:
		return "Strict"
	case SameSiteNone:
		return "None"
	default:
		return ""
	}
}

// Cookie describes one Set-Cookie line. Zero-valued attributes are left out.
type Cookie struct {
	Name    string
	Value   string
	Expires time.Time
	Path    string
	Domain  string
	Secure  bool

	// MaxAge > 0 emits Max-Age; MaxAge < 0 emits "Max-Age=0" to delete.
	MaxAge   int
	HttpOnly bool
	SameSite SameSite
}

// String renders c as a Set-Cookie value:
//
//	name=value[; expires=<date>][; path=p][; domain=d][; secure]
//
// followed by max-age, httponly and samesite when set.
func (c *Cookie) String() string {
	var sb strings.Builder
	sb.Grow(len(c.Name) + len(c.Value) + 16)
	sb.WriteString(c.Name)
	sb.WriteByte('=')
	sb.WriteString(c.Value)
	if !c.Expires.IsZero() {
		sb.WriteString("; expires=")
		sb.WriteString(c.Expires.UTC().Format(TimeFormat))
	}
	if c.Path != "" {
		sb.WriteString("; path=")
		sb.WriteString(c.Path)
	}
	if c.Domain != "" {
		sb.WriteString("; domain=")
		sb.WriteString(c.Domain)
	}
	if c.Secure {
		sb.WriteString("; secure")
	}
	switch {
	case c.MaxAge > 0:
		sb.WriteString("; max-age=")
		sb.WriteString(strconv.Itoa(c.MaxAge))
	case c.MaxAge < 0:
		sb.WriteString("; max-age=0")
	}
	if c.HttpOnly {
		sb.WriteString("; httponly")
	}
	if c.SameSite != SameSiteDefault {
		sb.WriteString("; samesite=")
		sb.WriteString(c.SameSite.String())
	}
	return sb.String()
}
