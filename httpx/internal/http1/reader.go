package http1

import (
    "bufio"
    "errors"
    "io"
    "strconv"
    "strings"

    "golang.org/x/net/http/httpguts"
)

var (
    ErrMalformed      = errors.New("httpx: bad request")
    ErrLineTooLong    = errors.New("httpx: header line too long")
    ErrHeaderTooLarge = errors.New("httpx: header too large")
    ErrBodyTooLarge   = errors.New("httpx: body too large")
    ErrChunked        = errors.New("httpx: unsupported transfer encoding")
)

// Field is one header line as received.
type Field struct {
    Name  string
    Value string
}

// ParsedRequest is a minimal representation parsed from the wire.
type ParsedRequest struct {
    Method        string
    RequestURI    string
    Proto         string
    Fields        []Field
    ContentLength int64
    Body          []byte
}

// Values returns every value received for name, in arrival order.
func (p *ParsedRequest) Values(name string) []string {
    var vv []string
    for _, f := range p.Fields {
        if strings.EqualFold(f.Name, name) {
            vv = append(vv, f.Value)
        }
    }
    return vv
}

// Get returns the first value received for name.
func (p *ParsedRequest) Get(name string) string {
    for _, f := range p.Fields {
        if strings.EqualFold(f.Name, name) {
            return f.Value
        }
    }
    return ""
}

// Reader reads HTTP/1.x requests. Bodies must be framed by Content-Length;
// any Transfer-Encoding is refused with ErrChunked.
type Reader struct {
    BR                  *bufio.Reader
    MaxHeaderBytes      int   // per line; 0 means unlimited
    MaxTotalHeaderBytes int   // request line plus all header lines
    MaxBodyBytes        int64 // 0 means unlimited
}

// ReadRequest reads a request head and its body.
func (r *Reader) ReadRequest() (*ParsedRequest, error) {
    pr, err := r.ReadHead()
    if err != nil {
        return nil, err
    }
    if err := r.ReadBody(pr); err != nil {
        return nil, err
    }
    return pr, nil
}

// ReadHead reads the request line and header fields and works out the body
// length. The body is left unread.
func (r *Reader) ReadHead() (*ParsedRequest, error) {
    total := 0
    line, err := r.readLine(&total)
    if err != nil {
        return nil, err
    }
    parts := strings.SplitN(line, " ", 3)
    if len(parts) != 3 || parts[0] == "" || parts[1] == "" {
        return nil, ErrMalformed
    }
    method, uri, proto := parts[0], parts[1], parts[2]
    if !strings.HasPrefix(proto, "HTTP/1.") {
        return nil, ErrMalformed
    }
    fields, err := r.readFields(&total)
    if err != nil {
        return nil, err
    }
    pr := &ParsedRequest{Method: method, RequestURI: uri, Proto: proto, Fields: fields}
    cls := pr.Values("Content-Length")
    if len(pr.Values("Transfer-Encoding")) > 0 {
        if len(cls) > 0 {
            return nil, ErrMalformed
        }
        return nil, ErrChunked
    }
    cl, err := contentLength(cls)
    if err != nil {
        return nil, err
    }
    if r.MaxBodyBytes > 0 && cl > r.MaxBodyBytes {
        return nil, ErrBodyTooLarge
    }
    pr.ContentLength = cl
    return pr, nil
}

// ReadBody reads exactly pr.ContentLength bytes into pr.Body.
func (r *Reader) ReadBody(pr *ParsedRequest) error {
    if pr.ContentLength <= 0 {
        return nil
    }
    body := make([]byte, pr.ContentLength)
    if _, err := io.ReadFull(r.BR, body); err != nil {
        if err == io.EOF {
            err = io.ErrUnexpectedEOF
        }
        return err
    }
    pr.Body = body
    return nil
}

// contentLength folds repeated or comma-joined Content-Length values, which
// must all agree.
func contentLength(values []string) (int64, error) {
    var cl int64 = -1
    for _, v := range values {
        for _, part := range strings.Split(v, ",") {
            n, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
            if err != nil || n < 0 {
                return 0, ErrMalformed
            }
            if cl >= 0 && n != cl {
                return 0, ErrMalformed
            }
            cl = n
        }
    }
    if cl < 0 {
        return 0, nil
    }
    return cl, nil
}

func (r *Reader) readFields(total *int) ([]Field, error) {
    var fields []Field
    for {
        line, err := r.readLine(total)
        if err != nil {
            return nil, err
        }
        if line == "" {
            break
        }
        i := strings.IndexByte(line, ':')
        if i <= 0 {
            return nil, ErrMalformed
        }
        k := line[:i]
        v := strings.TrimSpace(line[i+1:])
        if !httpguts.ValidHeaderFieldName(k) || !httpguts.ValidHeaderFieldValue(v) {
            return nil, ErrMalformed
        }
        fields = append(fields, Field{Name: k, Value: v})
    }
    return fields, nil
}

func (r *Reader) readLine(total *int) (string, error) {
    var sb strings.Builder
    for {
        b, err := r.BR.ReadByte()
        if err != nil {
            return "", err
        }
        if b == '\n' {
            break
        }
        if b != '\r' {
            sb.WriteByte(b)
        }
        if r.MaxHeaderBytes > 0 && sb.Len() > r.MaxHeaderBytes {
            return "", ErrLineTooLong
        }
    }
    *total += sb.Len()
    if r.MaxTotalHeaderBytes > 0 && *total > r.MaxTotalHeaderBytes {
        return "", ErrHeaderTooLarge
    }
    return sb.String(), nil
}
