package stdhttp

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"dqx0.com/go/httpmsg/httpx"
)

func TestNewRequest(t *testing.T) {
	r := httptest.NewRequest("POST", "/a%20b?x=1&y=two", strings.NewReader("y=body"))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.Header.Add("Cookie", "a=1")
	r.Header.Add("Cookie", "b=2")
	r.Header.Set("Connection", "Upgrade")
	r.Header.Set("Upgrade", "websocket")

	req, err := NewRequest(r, 0)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	if req.Method != httpx.MethodPost || req.Version != httpx.Version11 || req.Path != "/a b" || req.Query != "x=1&y=two" {
		t.Fatalf("request = %v %v %q %q", req.Method, req.Version, req.Path, req.Query)
	}
	if !req.Websocket {
		t.Fatal("websocket upgrade not detected")
	}
	if got := req.GetHeader("host", ""); got != "example.com" {
		t.Fatalf("Host = %q", got)
	}
	if got := req.GetParam("y", ""); got != "body" {
		t.Fatalf("param y = %q", got)
	}
	if got := req.GetCookie("b", ""); got != "2" {
		t.Fatalf("cookie b = %q", got)
	}
	if id, ok := httpx.RequestIDFrom(req.Context()); !ok || id != req.ID || id == "" {
		t.Fatalf("request id in context = %q, %v", id, ok)
	}
}

func TestNewRequestBodyLimit(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader("abcdef"))
	if _, err := NewRequest(r, 3); !errors.Is(err, httpx.ErrBodyTooLarge) {
		t.Fatalf("err = %v", err)
	}
	r = httptest.NewRequest("POST", "/", strings.NewReader("abc"))
	if req, err := NewRequest(r, 3); err != nil || req.Body != "abc" {
		t.Fatalf("exact limit: %v", err)
	}
}

func TestHandler(t *testing.T) {
	h := Handler(httpx.HandlerFunc(func(w *httpx.Response, r *httpx.Request) {
		w.SetHeader("Content-Type", "text/plain")
		w.SetCookie(httpx.Cookie{Name: "seen", Value: r.GetParam("q", "")})
		w.SetCookie(httpx.Cookie{Name: "n", Value: "1"})
		w.SetRedirect("/next")
		w.Body = "moved"
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/?q=yes", nil))

	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/next" {
		t.Fatalf("code=%d location=%q", rec.Code, rec.Header().Get("Location"))
	}
	if got := rec.Header().Values("Set-Cookie"); len(got) != 2 || got[0] != "seen=yes" || got[1] != "n=1" {
		t.Fatalf("Set-Cookie = %q", got)
	}
	if rec.Body.String() != "moved" || rec.Header().Get("Content-Length") != "5" {
		t.Fatalf("body=%q length=%q", rec.Body.String(), rec.Header().Get("Content-Length"))
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatal("missing X-Request-Id")
	}
}

func TestHandlerErrors(t *testing.T) {
	called := false
	h := LimitHandler(httpx.HandlerFunc(func(w *httpx.Response, r *httpx.Request) { called = true }), 2)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("POST", "/", strings.NewReader("abc")))
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("oversized code = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("BREW", "/", nil))
	if rec.Code != http.StatusNotImplemented {
		t.Fatalf("unknown method code = %d", rec.Code)
	}
	if called {
		t.Fatal("handler should not run")
	}
}
