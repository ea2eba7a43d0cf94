package httpx

import "slices"

// Response is the value a handler fills in for one exchange. Set-Cookie
// lines are kept apart from Header because one response may carry several
// of them.
type Response struct {
    Status    Status
    Version   Version
    Close     bool
    Websocket bool
    Body      string
    // Reason overrides the reason phrase derived from Status when non-empty.
    Reason    string
    Header    StringMap

    cookies []string
}

// NewResponse returns a 200 OK response for version.
func NewResponse(version Version, close bool) *Response {
    return &Response{Status: StatusOK, Version: version, Close: close}
}

// Headers returns the header map. It satisfies Message.
func (r *Response) Headers() *StringMap { return &r.Header }

func (r *Response) GetHeader(key, def string) string    { return r.Header.Value(key, def) }
func (r *Response) HasHeader(key string) (string, bool) { return r.Header.Get(key) }
func (r *Response) SetHeader(key, val string)           { r.Header.Set(key, val) }
func (r *Response) DelHeader(key string)                { r.Header.Del(key) }

// ReplaceHeaders replaces the header map with a copy of m.
func (r *Response) ReplaceHeaders(m *StringMap) { r.Header = *m.Clone() }

// ReasonPhrase returns Reason if set, else the phrase for Status.
func (r *Response) ReasonPhrase() string {
    if r.Reason != "" {
        return r.Reason
    }
    return r.Status.String()
}

// SetCookie appends one Set-Cookie line built from c. Earlier lines are
// kept, including lines for the same cookie name.
func (r *Response) SetCookie(c Cookie) {
    r.cookies = append(r.cookies, c.String())
}

// SetCookies returns a copy of the accumulated Set-Cookie lines in the
// order they were added.
func (r *Response) SetCookies() []string { return slices.Clone(r.cookies) }

// SetRedirect points the client at uri with 302 Found.
func (r *Response) SetRedirect(uri string) {
    r.SetRedirectStatus(StatusFound, uri)
}

// SetRedirectStatus points the client at uri with the given status. Codes
// that are not redirects fall back to 302 Found.
func (r *Response) SetRedirectStatus(code Status, uri string) {
    if !code.IsRedirect() {
        code = StatusFound
    }
    r.Status = code
    r.Header.Set("Location", uri)
}
