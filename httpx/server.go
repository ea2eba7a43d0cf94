package httpx

import (
    "bufio"
    "context"
    "errors"
    "io"
    "net"
    "strconv"
    "sync"
    "sync/atomic"
    "time"

    "dqx0.com/go/httpmsg/httpx/internal/http1"
    "dqx0.com/go/httpmsg/internal/obs"
)

// Handler fills in w for request r. The server writes w once the handler
// returns.
type Handler interface {
    ServeHTTP(w *Response, r *Request)
}

type HandlerFunc func(*Response, *Request)

func (f HandlerFunc) ServeHTTP(w *Response, r *Request) {
    f(w, r)
}

// Server reads requests into Request values, runs Handler and writes the
// Response back on the same connection while both sides keep it alive.
type Server struct {
    Addr               string
    Handler            Handler
    ReadTimeout        time.Duration
    ReadHeaderTimeout  time.Duration
    WriteTimeout       time.Duration
    IdleTimeout        time.Duration
    MaxLineBytes       int
    MaxHeaderBytes     int
    MaxBodyBytes       int64

    Logger obs.Logger
    Meter  obs.Meter

    mu        sync.Mutex
    listeners map[net.Listener]struct{}
    conns     map[net.Conn]struct{}
    wg        sync.WaitGroup
    closing   atomic.Bool
}

func (s *Server) ListenAndServe() error {
    addr := s.Addr
    if addr == "" {
        addr = ":8080"
    }
    ln, err := net.Listen("tcp", addr)
    if err != nil {
        return err
    }
    return s.Serve(ln)
}

// Serve accepts connections on l until l fails or Shutdown is called, in
// which case it returns ErrServerClosed.
func (s *Server) Serve(l net.Listener) error {
    if s.closing.Load() {
        l.Close()
        return ErrServerClosed
    }
    s.track(l, nil, true)
    defer s.track(l, nil, false)
    ctx, cancel := context.WithCancel(context.Background())
    defer cancel()
    for {
        c, err := l.Accept()
        if err != nil {
            if s.closing.Load() {
                return ErrServerClosed
            }
            return err
        }
        s.wg.Add(1)
        go func() {
            defer s.wg.Done()
            s.serveConn(ctx, c)
        }()
    }
}

// Shutdown stops accepting connections, wakes idle connections and waits
// for in-flight exchanges to finish or ctx to end.
func (s *Server) Shutdown(ctx context.Context) error {
    s.closing.Store(true)
    s.mu.Lock()
    for l := range s.listeners {
        l.Close()
    }
    for c := range s.conns {
        _ = c.SetReadDeadline(time.Now())
    }
    s.mu.Unlock()

    done := make(chan struct{})
    go func() {
        s.wg.Wait()
        close(done)
    }()
    select {
    case <-done:
        return nil
    case <-ctx.Done():
        return ctx.Err()
    }
}

func (s *Server) track(l net.Listener, c net.Conn, add bool) {
    s.mu.Lock()
    defer s.mu.Unlock()
    if s.listeners == nil {
        s.listeners = make(map[net.Listener]struct{})
        s.conns = make(map[net.Conn]struct{})
    }
    switch {
    case l != nil && add:
        s.listeners[l] = struct{}{}
    case l != nil:
        delete(s.listeners, l)
    case add:
        s.conns[c] = struct{}{}
    default:
        delete(s.conns, c)
    }
}

func (s *Server) limits() Limits {
    lim := Limits{MaxLineBytes: s.MaxLineBytes, MaxHeaderBytes: s.MaxHeaderBytes, MaxBodyBytes: s.MaxBodyBytes}
    if lim.MaxLineBytes <= 0 {
        lim.MaxLineBytes = 8 << 10
    }
    if lim.MaxHeaderBytes <= 0 {
        lim.MaxHeaderBytes = 64 << 10
    }
    if lim.MaxBodyBytes <= 0 {
        lim.MaxBodyBytes = 10 << 20
    }
    return lim
}

func (s *Server) serveConn(ctx context.Context, c net.Conn) {
    s.track(nil, c, true)
    defer s.track(nil, c, false)
    defer c.Close()
    br := bufio.NewReader(c)
    bw := bufio.NewWriter(c)
    rd := s.limits().reader(br)
    first := true
    for !s.closing.Load() {
        switch {
        case first && s.ReadHeaderTimeout > 0:
            _ = c.SetReadDeadline(time.Now().Add(s.ReadHeaderTimeout))
        case !first && s.IdleTimeout > 0:
            _ = c.SetReadDeadline(time.Now().Add(s.IdleTimeout))
        case s.ReadTimeout > 0:
            _ = c.SetReadDeadline(time.Now().Add(s.ReadTimeout))
        default:
            _ = c.SetReadDeadline(time.Time{})
        }
        first = false

        pr, err := rd.ReadHead()
        if err != nil {
            if !errors.Is(err, io.EOF) && !isTimeout(err) {
                s.logf(obs.Debug, "read request from %s: %v", c.RemoteAddr(), err)
                s.writeError(bw, statusForError(err))
            }
            return
        }
        req, err := requestFromWire(pr)
        if err != nil {
            s.logf(obs.Debug, "bad request from %s: %v", c.RemoteAddr(), err)
            s.writeError(bw, statusForError(err))
            return
        }
        if pr.ContentLength > 0 && EqualFold(req.GetHeader("Expect", ""), "100-continue") {
            _ = http1.WriteContinue(bw, pr.Proto)
            if err := bw.Flush(); err != nil {
                return
            }
        }
        if s.ReadTimeout > 0 {
            _ = c.SetReadDeadline(time.Now().Add(s.ReadTimeout))
        }
        if err := rd.ReadBody(pr); err != nil {
            s.logf(obs.Debug, "read body from %s: %v", c.RemoteAddr(), err)
            return
        }
        req.Body = string(pr.Body)
        req.RemoteAddr = c.RemoteAddr().String()
        req.ID = NewRequestID()
        req.Trace = ChildOf(req.GetHeader("Traceparent", ""))
        req.ctx = ctx
        annotate(req)

        resp := s.exchange(req)

        if s.WriteTimeout > 0 {
            _ = c.SetWriteDeadline(time.Now().Add(s.WriteTimeout))
        }
        if _, err := wireResponse(req, resp).WriteTo(bw); err != nil {
            s.logf(obs.Debug, "write response to %s: %v", c.RemoteAddr(), err)
            return
        }
        if err := bw.Flush(); err != nil {
            return
        }
        if req.Close || resp.Close || resp.Websocket {
            return
        }
    }
}

// exchange runs the handler for req and records metrics. A panicking
// handler yields 500.
func (s *Server) exchange(req *Request) (resp *Response) {
    start := time.Now()
    resp = NewResponse(req.Version, req.Close)
    resp.SetHeader("X-Request-Id", req.ID)
    defer func() {
        if p := recover(); p != nil {
            s.logf(obs.Error, "request %s %s %s: handler panic: %v", req.ID, req.Method, req.Path, p)
            resp = NewResponse(req.Version, true)
            resp.Status = StatusInternalServerError
            resp.SetHeader("X-Request-Id", req.ID)
        }
        labels := []obs.Label{{Key: "method", Value: req.Method.String()}, {Key: "status", Value: strconv.Itoa(int(resp.Status))}}
        s.meter().Counter("httpx_server_requests_total", 1, labels...)
        s.meter().Histogram("httpx_server_request_duration_seconds", time.Since(start).Seconds(), labels...)
        s.logf(obs.Info, "request %s %s %s -> %d (%s)", req.ID, req.Method, req.Path, resp.Status, time.Since(start))
    }()

    if req.Method == MethodInvalid {
        resp.Status = StatusNotImplemented
        return resp
    }
    h := s.Handler
    if h == nil {
        h = HandlerFunc(func(w *Response, r *Request) {
            w.Status = StatusNotFound
            w.Body = "not found"
        })
    }
    h.ServeHTTP(resp, req)
    return resp
}

// wireResponse returns resp as it goes on the wire for req: HEAD and
// bodiless statuses drop the body but HEAD keeps its Content-Length.
func wireResponse(req *Request, resp *Response) *Response {
    if resp.Body == "" || !noResponseBody(resp.Status, req.Method) {
        return resp
    }
    out := *resp
    out.Header = *resp.Header.Clone()
    if req.Method == MethodHead && !out.Header.Has("Content-Length") {
        out.Header.Set("Content-Length", strconv.Itoa(len(resp.Body)))
    }
    out.Body = ""
    return &out
}

func (s *Server) writeError(bw *bufio.Writer, status Status) {
    resp := NewResponse(Version11, true)
    resp.Status = status
    resp.SetHeader("Content-Length", "0")
    _, _ = resp.WriteTo(bw)
    _ = bw.Flush()
}

func statusForError(err error) Status {
    switch {
    case errors.Is(err, ErrHeaderTooLarge), errors.Is(err, ErrLineTooLong):
        return StatusRequestHeaderFieldsTooLarge
    case errors.Is(err, ErrBodyTooLarge):
        return StatusPayloadTooLarge
    case errors.Is(err, ErrUnsupportedTransferEncoding):
        return StatusNotImplemented
    case errors.Is(err, ErrProtocolViolation):
        return StatusBadRequest
    default:
        return StatusBadRequest
    }
}

func isTimeout(err error) bool {
    var ne net.Error
    return errors.As(err, &ne) && ne.Timeout()
}

func (s *Server) logf(level obs.Level, format string, args ...interface{}) {
    if s.Logger != nil {
        s.Logger.Logf(level, format, args...)
    }
}

func (s *Server) meter() obs.Meter {
    if s.Meter == nil {
        return obs.NopMeter{}
    }
    return s.Meter
}

func noResponseBody(status Status, method Method) bool {
    if method == MethodHead {
        return true
    }
    if status >= 100 && status < 200 {
        return true
    }
    return status == StatusNoContent || status == StatusNotModified
}

