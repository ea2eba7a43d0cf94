package httpx

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"dqx0.com/go/httpmsg/httpx/internal/http1"
)

// WriteTo writes r in HTTP/1.x wire format. Headers are written in the
// header map's order; Connection is derived from Close unless r is a
// websocket request, and Content-Length is added for a non-empty body when
// missing. r itself is not modified and no lazy parsing happens.
func (r *Request) WriteTo(w io.Writer) (int64, error) {
	cw := &countWriter{w: w}
	bw := bufio.NewWriter(cw)
	_ = http1.WriteStartLine(bw, r.Method.String(), r.URI(), wireVersion(r.Version))
	writeHead(bw, &r.Header, nil, r.Close, r.Websocket, len(r.Body))
	bw.WriteString(r.Body)
	err := bw.Flush()
	return cw.n, err
}

// wireVersion is v's protocol string; the zero Version goes out as HTTP/1.1.
func wireVersion(v Version) string {
	if v == 0 {
		return Version11.String()
	}
	return v.String()
}

// String returns the wire form of r.
func (r *Request) String() string {
	var sb strings.Builder
	_, _ = r.WriteTo(&sb)
	return sb.String()
}

// WriteTo writes r in HTTP/1.x wire format: status line, headers, one
// Set-Cookie line per SetCookie call, blank line and body. Header rules are
// those of Request.WriteTo.
func (r *Response) WriteTo(w io.Writer) (int64, error) {
	cw := &countWriter{w: w}
	bw := bufio.NewWriter(cw)
	_ = http1.WriteStartLine(bw, wireVersion(r.Version), strconv.Itoa(int(r.Status)), r.ReasonPhrase())
	writeHead(bw, &r.Header, r.cookies, r.Close, r.Websocket, len(r.Body))
	bw.WriteString(r.Body)
	err := bw.Flush()
	return cw.n, err
}

// String returns the wire form of r.
func (r *Response) String() string {
	var sb strings.Builder
	_, _ = r.WriteTo(&sb)
	return sb.String()
}

// writeHead writes header fields and the terminating blank line. Errors are
// sticky in bw and surface on Flush.
func writeHead(bw *bufio.Writer, hdr *StringMap, cookies []string, close, websocket bool, bodyLen int) {
	h := hdr.Clone()
	if !websocket {
		h.Del("Connection")
		if close {
			h.Set("Connection", "close")
		} else {
			h.Set("Connection", "keep-alive")
		}
	}
	if bodyLen > 0 && !h.Has("Content-Length") {
		h.Set("Content-Length", strconv.Itoa(bodyLen))
	}
	h.Each(func(k, v string) bool {
		_, err := http1.WriteField(bw, k, v)
		return err == nil
	})
	for _, line := range cookies {
		_, _ = http1.WriteField(bw, "Set-Cookie", line)
	}
	_ = http1.EndHead(bw)
}

type countWriter struct {
	w io.Writer
	n int64
}

func (c *countWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
