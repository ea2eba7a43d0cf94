package httpx

import (
	"bufio"
	"net/url"
	"strings"

	"golang.org/x/net/http/httpguts"

	"dqx0.com/go/httpmsg/httpx/internal/http1"
)

// Limits bounds the size of requests read from the wire. Zero fields mean
// no limit.
type Limits struct {
	MaxLineBytes   int
	MaxHeaderBytes int
	MaxBodyBytes   int64
}

func (l Limits) reader(br *bufio.Reader) *http1.Reader {
	return &http1.Reader{
		BR:                  br,
		MaxHeaderBytes:      l.MaxLineBytes,
		MaxTotalHeaderBytes: l.MaxHeaderBytes,
		MaxBodyBytes:        l.MaxBodyBytes,
	}
}

// ReadRequest reads one request from br and fills a Request with its raw
// fields. Params and cookies are left for lazy parsing. An unknown method
// is not an error; the Request carries MethodInvalid.
func ReadRequest(br *bufio.Reader, lim Limits) (*Request, error) {
	rd := lim.reader(br)
	pr, err := rd.ReadHead()
	if err != nil {
		return nil, err
	}
	r, err := requestFromWire(pr)
	if err != nil {
		return nil, err
	}
	if err := rd.ReadBody(pr); err != nil {
		return nil, err
	}
	r.Body = string(pr.Body)
	return r, nil
}

func requestFromWire(pr *http1.ParsedRequest) (*Request, error) {
	v, ok := ParseVersion(pr.Proto)
	if !ok {
		return nil, ErrBadRequest
	}
	r := &Request{Method: MethodFromString(pr.Method), Version: v}
	for _, f := range pr.Fields {
		prev, ok := r.Header.Get(f.Name)
		switch {
		case !ok:
			r.Header.Set(f.Name, f.Value)
		case EqualFold(f.Name, "Cookie"):
			r.Header.Set(f.Name, prev+"; "+f.Value)
		default:
			r.Header.Set(f.Name, prev+", "+f.Value)
		}
	}
	if err := r.setTarget(pr.RequestURI); err != nil {
		return nil, err
	}
	conn := pr.Values("Connection")
	if v == Version10 || v.Major() == 0 {
		r.Close = !httpguts.HeaderValuesContainsToken(conn, "keep-alive")
	} else {
		r.Close = httpguts.HeaderValuesContainsToken(conn, "close")
	}
	r.Websocket = httpguts.HeaderValuesContainsToken(conn, "upgrade") &&
		strings.EqualFold(pr.Get("Upgrade"), "websocket")
	return r, nil
}

// setTarget splits a request target into Path, Query and Fragment. The path
// is percent-decoded; the query stays raw.
func (r *Request) setTarget(target string) error {
	if target == "*" {
		r.Path = target
		return nil
	}
	if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
		u, err := url.Parse(target)
		if err != nil {
			return ErrBadRequest
		}
		if !r.Header.Has("Host") {
			r.Header.Set("Host", u.Host)
		}
		target = u.RequestURI()
		if u.Fragment != "" {
			target += "#" + u.EscapedFragment()
		}
	}
	if !strings.HasPrefix(target, "/") {
		return ErrProtocolViolation
	}
	rest, frag, _ := strings.Cut(target, "#")
	path, query, _ := strings.Cut(rest, "?")
	r.Path = PercentDecode(path)
	r.Query = query
	r.Fragment = PercentDecode(frag)
	return nil
}
