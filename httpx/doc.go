// Package httpx is the in-memory value model of HTTP/1.x requests and
// responses used by a server framework.
//
// A Request holds the fields a wire parser extracted (method, path, raw
// query, raw body, headers). Query parameters, form-encoded bodies and the
// Cookie header are decoded into case-insensitive maps on first access,
// once per request. Accessors never fail: a missing key or a value that does
// not convert yields the caller's default.
//
// Highlights
//   - StringMap: ASCII case-insensitive map kept in sorted key order.
//   - Typed accessors: GetAs, ParamAs, CookieAs, HeaderAs over a closed set
//     of scalar types.
//   - Method and status tables with sentinel values instead of errors.
//   - Response cookies as repeated Set-Cookie lines, redirects, reason
//     phrases.
//   - Serialization with WriteTo/String, adding Connection and
//     Content-Length where needed.
//   - A small Server and ReadRequest so the model can be driven from a
//     socket; no chunked encoding, TLS or HTTP/2.
//
// Quick start:
//
//	s := &httpx.Server{Addr: ":8080"}
//	s.Handler = httpx.HandlerFunc(func(w *httpx.Response, r *httpx.Request) {
//	    name := r.GetParam("name", "world")
//	    n := httpx.ParamAs(r, "n", 1)
//	    w.SetHeader("Content-Type", "text/plain; charset=utf-8")
//	    w.Body = strings.Repeat("hello "+name+"\n", n)
//	})
//	if err := s.ListenAndServe(); err != nil { log.Fatal(err) }
package httpx
