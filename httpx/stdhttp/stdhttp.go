// Package stdhttp adapts net/http requests and response writers to the
// httpx value model, so httpx handlers can run behind net/http servers.
package stdhttp

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"

	"dqx0.com/go/httpmsg/httpx"
)

// NewRequest copies r into an httpx.Request. At most maxBody bytes of body
// are read; a larger body yields httpx.ErrBodyTooLarge. maxBody <= 0 means
// no limit.
func NewRequest(r *http.Request, maxBody int64) (*httpx.Request, error) {
	req := httpx.NewRequest(httpx.MakeVersion(r.ProtoMajor, r.ProtoMinor), r.Close)
	req.Method = httpx.MethodFromString(r.Method)
	req.Websocket = websocket.IsWebSocketUpgrade(r)
	req.Path = r.URL.Path
	req.Query = r.URL.RawQuery
	req.Fragment = r.URL.Fragment
	req.RemoteAddr = r.RemoteAddr

	if r.Host != "" {
		req.SetHeader("Host", r.Host)
	}
	for name, vals := range r.Header {
		sep := ", "
		if httpx.EqualFold(name, "Cookie") {
			sep = "; "
		}
		req.SetHeader(name, strings.Join(vals, sep))
	}

	if r.Body != nil {
		body, err := readBody(r.Body, maxBody)
		if err != nil {
			return nil, err
		}
		req.Body = body
	}

	req.ID = httpx.NewRequestID()
	req.Trace = httpx.ChildOf(req.GetHeader("Traceparent", ""))
	ctx := httpx.WithRequestID(r.Context(), req.ID)
	if cid := req.GetHeader("X-Request-Id", ""); cid != "" {
		ctx = httpx.WithCorrelationID(ctx, cid)
	}
	ctx = httpx.WithTrace(ctx, req.Trace)
	return httpx.WithContext(req, ctx), nil
}

func readBody(rc io.Reader, max int64) (string, error) {
	if max <= 0 {
		b, err := io.ReadAll(rc)
		return string(b), err
	}
	b, err := io.ReadAll(io.LimitReader(rc, max+1))
	if err != nil {
		return "", err
	}
	if int64(len(b)) > max {
		return "", httpx.ErrBodyTooLarge
	}
	return string(b), nil
}

// WriteResponse writes resp to w. Set-Cookie lines follow the header map,
// and Connection: close is added when resp.Close is set.
func WriteResponse(w http.ResponseWriter, resp *httpx.Response) error {
	h := w.Header()
	resp.Header.Each(func(k, v string) bool {
		h.Set(k, v)
		return true
	})
	for _, c := range resp.SetCookies() {
		h.Add("Set-Cookie", c)
	}
	if resp.Close && !resp.Websocket {
		h.Set("Connection", "close")
	}
	if h.Get("Content-Length") == "" {
		h.Set("Content-Length", strconv.Itoa(len(resp.Body)))
	}
	w.WriteHeader(int(resp.Status))
	_, err := io.WriteString(w, resp.Body)
	return err
}

// DefaultMaxBodyBytes bounds request bodies read by Handler.
const DefaultMaxBodyBytes = 10 << 20

// Handler returns an http.Handler that runs h for every request, reading
// at most DefaultMaxBodyBytes of body.
func Handler(h httpx.Handler) http.Handler {
	return LimitHandler(h, DefaultMaxBodyBytes)
}

// LimitHandler is Handler with an explicit body limit. Oversized bodies are
// answered with 413 and other read failures with 400.
func LimitHandler(h httpx.Handler, maxBody int64) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, err := NewRequest(r, maxBody)
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, httpx.ErrBodyTooLarge) {
				status = http.StatusRequestEntityTooLarge
			}
			http.Error(w, http.StatusText(status), status)
			return
		}
		resp := httpx.NewResponse(req.Version, req.Close)
		resp.SetHeader("X-Request-Id", req.ID)
		if req.Method == httpx.MethodInvalid {
			resp.Status = httpx.StatusNotImplemented
		} else {
			h.ServeHTTP(resp, req)
		}
		_ = WriteResponse(w, resp)
	})
}
