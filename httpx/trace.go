package httpx

import (
    "crypto/rand"
    "encoding/hex"
    "strings"
)

// Trace carries minimal W3C trace context for propagation.
// TraceID is 32 hex digits, SpanID and ParentSpanID 16. Flags are 2 hex
// digits (e.g. "01").
type Trace struct {
    TraceID      string
    SpanID       string
    ParentSpanID string
    Flags        string
}

// Valid reports whether t has both a trace and a span ID.
func (t Trace) Valid() bool { return t.TraceID != "" && t.SpanID != "" }

// Traceparent renders t as a traceparent header value.
func (t Trace) Traceparent() string {
    flags := t.Flags
    if flags == "" { flags = "01" }
    return "00-" + t.TraceID + "-" + t.SpanID + "-" + flags
}

// NewTrace starts a new sampled trace.
func NewTrace() Trace {
    return Trace{TraceID: randomHex(16), SpanID: randomHex(8), Flags: "01"}
}

// ChildOf returns a new span within the trace named by a traceparent header
// value. An absent or invalid value starts a new trace.
func ChildOf(traceparent string) Trace {
    parent, ok := ParseTraceparent(traceparent)
    if !ok {
        return NewTrace()
    }
    return Trace{TraceID: parent.TraceID, SpanID: randomHex(8), ParentSpanID: parent.SpanID, Flags: parent.Flags}
}

// ParseTraceparent extracts trace-id, span-id and flags from v. The
// returned Trace has SpanID set to the sender's span.
func ParseTraceparent(v string) (Trace, bool) {
    v = strings.TrimSpace(v)
    if v == "" { return Trace{}, false }
    parts := strings.Split(v, "-")
    if len(parts) < 4 { return Trace{}, false }
    ver, tid, sid, fl := parts[0], parts[1], parts[2], parts[3]
    if len(ver) != 2 || len(tid) != 32 || len(sid) != 16 || len(fl) != 2 {
        return Trace{}, false
    }
    if !isHex(ver) || !isHex(tid) || !isHex(sid) || !isHex(fl) { return Trace{}, false }
    if strings.EqualFold(ver, "ff") { return Trace{}, false }
    tid, sid = strings.ToLower(tid), strings.ToLower(sid)
    if tid == strings.Repeat("0", 32) || sid == strings.Repeat("0", 16) {
        return Trace{}, false
    }
    return Trace{TraceID: tid, SpanID: sid, Flags: strings.ToLower(fl)}, true
}

func isHex(s string) bool {
    for i := 0; i < len(s); i++ {
        if !ishex(s[i]) { return false }
    }
    return true
}

// randomHex returns n random bytes hex encoded, never all zeros.
func randomHex(n int) string {
    b := make([]byte, n)
    for {
        if _, err := rand.Read(b); err == nil {
            for _, v := range b {
                if v != 0 {
                    return hex.EncodeToString(b)
                }
            }
        }
    }
}
