package httpx

import (
    "context"
    "net/url"
)

// ParseState records whether one lazily parsed source of a Request has been
// materialized. The only transition is Unparsed -> Parsed.
type ParseState uint8

const (
    Unparsed ParseState = iota
    Parsed
)

func (s ParseState) String() string {
    if s == Parsed {
        return "parsed"
    }
    return "unparsed"
}

// Request represents an HTTP request after the wire parser has extracted
// its fields.
//
// Params and cookies are derived from Query, Body and the Cookie header on
// first access and at most once per Request. Changing Query, Body or Header
// after the corresponding source was parsed does not parse it again.
// A Request is owned by the goroutine serving the exchange and is not safe
// for concurrent use.
type Request struct {
    Method    Method
    Version   Version
    // Close reports whether the connection should be closed after the
    // response is written.
    Close     bool
    Websocket bool
    // Path is the decoded request path without query or fragment.
    Path      string
    // Query is the raw, still percent-encoded query string.
    Query     string
    Fragment  string
    Body      string
    // Header holds the header fields as received. It is never derived.
    Header    StringMap

    // ID is the server generated identifier for this request.
    ID         string
    RemoteAddr string
    // Trace is the W3C trace context read from traceparent, if any.
    Trace      Trace

    params  StringMap
    cookies StringMap

    queryState  ParseState
    bodyState   ParseState
    cookieState ParseState

    ctx context.Context
}

// NewRequest returns an empty GET request for version that closes the
// connection after the response when close is true.
func NewRequest(version Version, close bool) *Request {
    return &Request{Method: MethodGet, Version: version, Close: close}
}

// Context returns the request's context. If nil, returns Background.
func (r *Request) Context() context.Context {
    if r == nil || r.ctx == nil { return context.Background() }
    return r.ctx
}

// WithContext returns a shallow copy of r with its context changed to ctx.
// The copy shares no map storage with r.
func WithContext(r *Request, ctx context.Context) *Request {
    if r == nil { return nil }
    r2 := *r
    r2.Header = *r.Header.Clone()
    r2.params = *r.params.Clone()
    r2.cookies = *r.cookies.Clone()
    r2.ctx = ctx
    return &r2
}

// QueryState reports whether Query has been parsed into params.
func (r *Request) QueryState() ParseState { return r.queryState }

// BodyState reports whether Body has been considered for params. A body
// that is not form encoded still moves to Parsed once checked.
func (r *Request) BodyState() ParseState { return r.bodyState }

// CookieState reports whether the Cookie header has been parsed.
func (r *Request) CookieState() ParseState { return r.cookieState }

func (r *Request) parseQueryParams() {
    if r.queryState == Parsed {
        return
    }
    r.queryState = Parsed
    ParseForm(&r.params, r.Query)
}

func (r *Request) parseBodyParams() {
    if r.bodyState == Parsed {
        return
    }
    r.bodyState = Parsed
    ct, ok := r.Header.Get("Content-Type")
    if !ok || !isFormContentType(ct) {
        return
    }
    ParseForm(&r.params, r.Body)
}

func (r *Request) parseCookies() {
    if r.cookieState == Parsed {
        return
    }
    r.cookieState = Parsed
    if v, ok := r.Header.Get("Cookie"); ok {
        ParseCookieHeader(&r.cookies, v)
    }
}

// EnsureParams parses the query and then a form-encoded body into params,
// each at most once. Body values win over query values with the same key.
func (r *Request) EnsureParams() {
    r.parseQueryParams()
    r.parseBodyParams()
}

// EnsureCookies parses the Cookie header into cookies at most once.
func (r *Request) EnsureCookies() {
    r.parseCookies()
}

// Headers returns the header map. It satisfies Message.
func (r *Request) Headers() *StringMap { return &r.Header }

// Params materializes and returns the param map.
func (r *Request) Params() *StringMap {
    r.EnsureParams()
    return &r.params
}

// Cookies materializes and returns the cookie map.
func (r *Request) Cookies() *StringMap {
    r.EnsureCookies()
    return &r.cookies
}

func (r *Request) GetHeader(key, def string) string { return r.Header.Value(key, def) }
func (r *Request) GetParam(key, def string) string  { return r.Params().Value(key, def) }
func (r *Request) GetCookie(key, def string) string { return r.Cookies().Value(key, def) }

func (r *Request) HasHeader(key string) (string, bool) { return r.Header.Get(key) }
func (r *Request) HasParam(key string) (string, bool)  { return r.Params().Get(key) }
func (r *Request) HasCookie(key string) (string, bool) { return r.Cookies().Get(key) }

// SetHeader, SetParam and SetCookie write straight into the map and never
// trigger parsing; a later first read may still overwrite a param or cookie
// set before its source was parsed.
func (r *Request) SetHeader(key, val string) { r.Header.Set(key, val) }
func (r *Request) SetParam(key, val string)  { r.params.Set(key, val) }
func (r *Request) SetCookie(key, val string) { r.cookies.Set(key, val) }

func (r *Request) DelHeader(key string) { r.Header.Del(key) }
func (r *Request) DelParam(key string)  { r.params.Del(key) }
func (r *Request) DelCookie(key string) { r.cookies.Del(key) }

// ReplaceHeaders replaces the header map with a copy of m.
func (r *Request) ReplaceHeaders(m *StringMap) { r.Header = *m.Clone() }

// ReplaceParams replaces the param map with a copy of m and marks the query
// and body as parsed, so m stays authoritative.
func (r *Request) ReplaceParams(m *StringMap) {
    r.params = *m.Clone()
    r.queryState, r.bodyState = Parsed, Parsed
}

// ReplaceCookies replaces the cookie map with a copy of m and marks the
// Cookie header as parsed.
func (r *Request) ReplaceCookies(m *StringMap) {
    r.cookies = *m.Clone()
    r.cookieState = Parsed
}

// URI returns the request target: the escaped path, then "?query" and the
// escaped "#fragment" when present.
func (r *Request) URI() string {
    u := url.URL{Path: r.Path}
    s := u.EscapedPath()
    if s == "" {
        s = "/"
    }
    if r.Query != "" {
        s += "?" + r.Query
    }
    if r.Fragment != "" {
        f := url.URL{Fragment: r.Fragment}
        s += "#" + f.EscapedFragment()
    }
    return s
}
