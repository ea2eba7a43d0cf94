package httpx

import (
	"strings"
	"testing"
	"time"
)

func TestSetCookieLine(t *testing.T) {
	w := NewResponse(Version11, false)
	w.SetCookie(Cookie{Name: "sid", Value: "abc", Path: "/"})
	out := w.String()
	if !strings.Contains(out, "Set-Cookie: sid=abc; path=/\r\n") {
		t.Fatalf("missing cookie line in %q", out)
	}
	for _, attr := range []string{"expires", "domain", "secure"} {
		if strings.Contains(out, attr) {
			t.Fatalf("unexpected %s in %q", attr, out)
		}
	}
}

func TestSetCookieAllAttributes(t *testing.T) {
	exp := time.Date(2030, time.January, 2, 3, 4, 5, 0, time.FixedZone("X", 3600))
	c := Cookie{Name: "k", Value: "v", Expires: exp, Path: "/p", Domain: "example.com", Secure: true, MaxAge: 60, HttpOnly: true, SameSite: SameSiteLax}
	want := "k=v; expires=Wed, 02 Jan 2030 02:04:05 GMT; path=/p; domain=example.com; secure; max-age=60; httponly; samesite=Lax"
	if got := c.String(); got != want {
		t.Fatalf("got  %q\nwant %q", got, want)
	}
	del := Cookie{Name: "k", MaxAge: -1}
	if got := del.String(); got != "k=; max-age=0" {
		t.Fatalf("delete cookie = %q", got)
	}
}

func TestSetCookiesAccumulate(t *testing.T) {
	w := NewResponse(Version11, false)
	w.SetCookie(Cookie{Name: "a", Value: "1"})
	w.SetCookie(Cookie{Name: "a", Value: "2"})
	lines := w.SetCookies()
	if len(lines) != 2 || lines[0] != "a=1" || lines[1] != "a=2" {
		t.Fatalf("lines = %q", lines)
	}
	lines[0] = "mutated"
	if w.SetCookies()[0] != "a=1" {
		t.Fatal("SetCookies exposes internal slice")
	}
	if w.Header.Has("Set-Cookie") {
		t.Fatal("cookies folded into headers")
	}
	if got := strings.Count(w.String(), "Set-Cookie: "); got != 2 {
		t.Fatalf("Set-Cookie lines = %d", got)
	}
}

func TestSetRedirect(t *testing.T) {
	w := NewResponse(Version11, false)
	w.SetRedirect("/login")
	if w.Status.Class() != 3 || w.GetHeader("location", "") != "/login" {
		t.Fatalf("status=%d location=%q", w.Status, w.GetHeader("Location", ""))
	}
	out := w.String()
	if !strings.HasPrefix(out, "HTTP/1.1 302 Found\r\n") || !strings.Contains(out, "\r\nLocation: /login\r\n") {
		t.Fatalf("wire = %q", out)
	}
	w.SetRedirectStatus(StatusPermanentRedirect, "/new")
	if w.Status != StatusPermanentRedirect || w.GetHeader("Location", "") != "/new" {
		t.Fatal("SetRedirectStatus")
	}
	w.SetRedirectStatus(StatusOK, "/x")
	if w.Status != StatusFound {
		t.Fatalf("non-redirect code kept: %d", w.Status)
	}
}

func TestReasonPhrase(t *testing.T) {
	w := NewResponse(Version10, true)
	w.Status = StatusNotFound
	if w.ReasonPhrase() != "Not Found" {
		t.Fatalf("reason = %q", w.ReasonPhrase())
	}
	w.Reason = "Nope"
	if !strings.HasPrefix(w.String(), "HTTP/1.0 404 Nope\r\n") {
		t.Fatalf("wire = %q", w.String())
	}
	w.Reason = ""
	w.Status = 599
	if !strings.HasPrefix(w.String(), "HTTP/1.0 599 Unknown Status\r\n") {
		t.Fatalf("wire = %q", w.String())
	}
}

func TestZeroValueSerialization(t *testing.T) {
	var w Response
	w.Status = StatusNoContent
	if line, _, _ := strings.Cut(w.String(), "\r\n"); line != "HTTP/1.1 204 No Content" {
		t.Fatalf("status line = %q", line)
	}
	r := Request{Method: MethodGet, Path: "/"}
	if line, _, _ := strings.Cut(r.String(), "\r\n"); line != "GET / HTTP/1.1" {
		t.Fatalf("request line = %q", line)
	}
}

func TestResponseSerialization(t *testing.T) {
	w := NewResponse(Version11, false)
	w.SetHeader("X-B", "2")
	w.SetHeader("content-type", "text/plain")
	w.SetHeader("x-a", "1")
	w.SetCookie(Cookie{Name: "sid", Value: "abc"})
	w.Body = "héllo"
	want := "HTTP/1.1 200 OK\r\n" +
		"Connection: keep-alive\r\n" +
		"Content-Length: 6\r\n" +
		"content-type: text/plain\r\n" +
		"x-a: 1\r\n" +
		"X-B: 2\r\n" +
		"Set-Cookie: sid=abc\r\n" +
		"\r\n" +
		"héllo"
	var sb strings.Builder
	n, err := w.WriteTo(&sb)
	if err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if sb.String() != want || n != int64(len(want)) {
		t.Fatalf("got %q (n=%d)\nwant %q", sb.String(), n, want)
	}
	if w.Header.Has("Content-Length") || w.Header.Has("Connection") {
		t.Fatal("serialization mutated headers")
	}
}

func TestSerializationKeepsContentLength(t *testing.T) {
	w := NewResponse(Version11, true)
	w.SetHeader("content-length", "99")
	w.SetHeader("Connection", "upgrade")
	w.Body = "abc"
	out := w.String()
	if strings.Count(out, "ontent-") != 1 || !strings.Contains(out, "content-length: 99\r\n") {
		t.Fatalf("wire = %q", out)
	}
	if !strings.Contains(out, "Connection: close\r\n") || strings.Contains(out, "upgrade") {
		t.Fatalf("Connection not derived from Close: %q", out)
	}
	empty := NewResponse(Version11, true)
	if strings.Contains(empty.String(), "Content-Length") {
		t.Fatal("Content-Length added for empty body")
	}
}

func TestWebsocketKeepsConnectionHeader(t *testing.T) {
	w := NewResponse(Version11, false)
	w.Status = StatusSwitchingProtocols
	w.Websocket = true
	w.SetHeader("Connection", "Upgrade")
	w.SetHeader("Upgrade", "websocket")
	want := "HTTP/1.1 101 Switching Protocols\r\nConnection: Upgrade\r\nUpgrade: websocket\r\n\r\n"
	if got := w.String(); got != want {
		t.Fatalf("got %q", got)
	}
}

func TestRequestSerialization(t *testing.T) {
	r := NewRequest(Version11, true)
	r.Method = MethodPost
	r.Path = "/form"
	r.Query = "a=1"
	r.SetHeader("Host", "example.com")
	r.SetHeader("Content-Type", "application/x-www-form-urlencoded")
	r.Body = "b=2"
	want := "POST /form?a=1 HTTP/1.1\r\n" +
		"Connection: close\r\n" +
		"Content-Length: 3\r\n" +
		"Content-Type: application/x-www-form-urlencoded\r\n" +
		"Host: example.com\r\n" +
		"\r\n" +
		"b=2"
	if got := r.String(); got != want {
		t.Fatalf("got %q\nwant %q", got, want)
	}
	if r.QueryState() != Unparsed || r.BodyState() != Unparsed {
		t.Fatal("serialization triggered lazy parsing")
	}
}

func TestSerializationSanitizes(t *testing.T) {
	w := NewResponse(Version11, false)
	w.SetHeader("X-Evil", "a\r\nSet-Cookie: pwned=1")
	w.SetHeader("Bad Name", "x")
	out := w.String()
	if strings.Contains(out, "Bad Name") || strings.Contains(out, "\r\nSet-Cookie") {
		t.Fatalf("wire = %q", out)
	}
	if !strings.Contains(out, "X-Evil: aSet-Cookie: pwned=1\r\n") {
		t.Fatalf("value not sanitized: %q", out)
	}
}
