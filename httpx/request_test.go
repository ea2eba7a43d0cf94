package httpx

import (
	"context"
	"testing"
)

func wantMap(t *testing.T, m *StringMap, want map[string]string) {
	t.Helper()
	if m.Len() != len(want) {
		t.Fatalf("map = %v, want %v", m.String(), want)
	}
	for k, v := range want {
		if got, ok := m.Get(k); !ok || got != v {
			t.Fatalf("%s = %q, %v; want %q (map %v)", k, got, ok, v, m.String())
		}
	}
}

func TestQueryParams(t *testing.T) {
	r := NewRequest(Version11, false)
	r.Query = "a=1&b=two%20words&c"
	if r.QueryState() != Unparsed {
		t.Fatal("parsed before access")
	}
	wantMap(t, r.Params(), map[string]string{"a": "1", "b": "two words", "c": ""})
	if r.QueryState() != Parsed || r.BodyState() != Parsed {
		t.Fatalf("states = %v, %v", r.QueryState(), r.BodyState())
	}
	if r.CookieState() != Unparsed {
		t.Fatal("param access parsed cookies")
	}
}

func TestEnsureParamsIdempotent(t *testing.T) {
	r := NewRequest(Version11, false)
	r.Query = "a=1"
	r.SetHeader("Content-Type", "application/x-www-form-urlencoded")
	r.Body = "b=2"
	r.EnsureParams()
	r.Query = "a=changed&x=1"
	r.Body = "b=changed&y=1"
	r.EnsureParams()
	wantMap(t, r.Params(), map[string]string{"a": "1", "b": "2"})
}

func TestBodyOverridesQuery(t *testing.T) {
	r := NewRequest(Version11, false)
	r.Query = "k=query&q=1"
	r.SetHeader("content-type", "application/x-www-form-urlencoded; charset=UTF-8")
	r.Body = "k=body&b=2"
	wantMap(t, r.Params(), map[string]string{"k": "body", "q": "1", "b": "2"})
}

func TestBodyIgnoredWithoutFormContentType(t *testing.T) {
	r := NewRequest(Version11, false)
	r.Body = "a=1"
	if _, ok := r.HasParam("a"); ok {
		t.Fatal("body parsed without form content type")
	}
	r.SetHeader("Content-Type", "application/x-www-form-urlencoded")
	if _, ok := r.HasParam("a"); ok {
		t.Fatal("body gate re-ran after header change")
	}
	if r.BodyState() != Parsed {
		t.Fatal("body gate should be closed once checked")
	}
}

func TestCookies(t *testing.T) {
	r := NewRequest(Version11, false)
	r.SetHeader("Cookie", "id=42; name=John%20Doe")
	if r.CookieState() != Unparsed {
		t.Fatal("cookies parsed on header set")
	}
	wantMap(t, r.Cookies(), map[string]string{"id": "42", "name": "John Doe"})
	if id := CookieAs(r, "ID", 0); id != 42 {
		t.Fatalf("CookieAs = %d", id)
	}
	r.SetHeader("Cookie", "other=1")
	if _, ok := r.HasCookie("other"); ok {
		t.Fatal("cookie gate re-ran")
	}
	if r.QueryState() != Unparsed {
		t.Fatal("cookie access parsed params")
	}
}

func TestNoCookieHeader(t *testing.T) {
	r := NewRequest(Version11, false)
	if got := r.GetCookie("sid", "none"); got != "none" {
		t.Fatalf("GetCookie = %q", got)
	}
	if r.CookieState() != Parsed {
		t.Fatal("cookie gate should close even without a header")
	}
}

func TestMutatorsDoNotTriggerParsing(t *testing.T) {
	r := NewRequest(Version11, false)
	r.Query = "a=from-query"
	r.SetParam("a", "manual")
	r.SetParam("m", "1")
	r.SetCookie("c", "1")
	r.DelParam("none")
	if r.QueryState() != Unparsed || r.CookieState() != Unparsed {
		t.Fatal("mutator triggered parsing")
	}
	// the first read parses the query on top of what was set
	wantMap(t, r.Params(), map[string]string{"a": "from-query", "m": "1"})
	r.SetParam("a", "after")
	if got := r.GetParam("A", ""); got != "after" {
		t.Fatalf("GetParam = %q", got)
	}
	r.DelParam("a")
	if _, ok := r.HasParam("a"); ok {
		t.Fatal("DelParam")
	}
}

func TestTypedParams(t *testing.T) {
	r := NewRequest(Version11, false)
	r.Query = "page=2&ratio=0.5&on=1&bad=x"
	if v, ok := CheckParamAs(r, "page", 1); !ok || v != 2 {
		t.Fatalf("page = %d, %v", v, ok)
	}
	if v := ParamAs(r, "ratio", 1.0); v != 0.5 {
		t.Fatalf("ratio = %v", v)
	}
	if v := ParamAs(r, "on", false); !v {
		t.Fatal("on = false")
	}
	if v, ok := CheckParamAs[uint32](r, "bad", 7); ok || v != 7 {
		t.Fatalf("bad = %d, %v", v, ok)
	}
	if _, ok := CheckCookieAs(r, "none", 0); ok {
		t.Fatal("missing cookie ok")
	}
}

func TestReplaceMaps(t *testing.T) {
	r := NewRequest(Version11, false)
	r.Query = "a=1"
	r.SetHeader("Cookie", "c=1")
	var m StringMap
	m.Set("x", "y")
	r.ReplaceParams(&m)
	r.ReplaceCookies(&m)
	m.Set("z", "later")
	wantMap(t, r.Params(), map[string]string{"x": "y"})
	wantMap(t, r.Cookies(), map[string]string{"x": "y"})
	r.ReplaceHeaders(&m)
	if r.GetHeader("Z", "") != "later" || r.GetHeader("cookie", "gone") != "gone" {
		t.Fatalf("headers = %v", r.Header.String())
	}
}

func TestWithContextCopies(t *testing.T) {
	r := NewRequest(Version11, false)
	r.Query = "a=1"
	r.EnsureParams()
	ctx := WithRequestID(context.Background(), "rid")
	r2 := WithContext(r, ctx)
	r2.SetParam("a", "2")
	if r.GetParam("a", "") != "1" {
		t.Fatal("copy shares params")
	}
	if id, ok := RequestIDFrom(r2.Context()); !ok || id != "rid" {
		t.Fatalf("RequestIDFrom = %q, %v", id, ok)
	}
	if r.Context() != context.Background() {
		t.Fatal("original context changed")
	}
}

func TestURI(t *testing.T) {
	r := NewRequest(Version11, false)
	if r.URI() != "/" {
		t.Fatalf("empty URI = %q", r.URI())
	}
	r.Path = "/a b/c"
	r.Query = "x=1"
	r.Fragment = "top"
	if got := r.URI(); got != "/a%20b/c?x=1#top" {
		t.Fatalf("URI = %q", got)
	}
	r.Fragment = "a b"
	if got := r.URI(); got != "/a%20b/c?x=1#a%20b" {
		t.Fatalf("URI with spaced fragment = %q", got)
	}
}
