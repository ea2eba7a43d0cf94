package http1

import (
    "bufio"
    "fmt"
    "strings"
)

// WriteContinue writes an interim 100 Continue response.
func WriteContinue(bw *bufio.Writer, proto string) error {
    _, err := fmt.Fprintf(bw, "%s 100 Continue\r\n\r\n", proto)
    return err
}

// SanitizeHeaderValue removes CR/LF and control chars except HTAB.
func SanitizeHeaderValue(v string) string {
    if v == "" { return v }
    clean := true
    for i := 0; i < len(v); i++ {
        if c := v[i]; (c < 0x20 && c != '\t') || c == 0x7f {
            clean = false
            break
        }
    }
    if clean { return v }
    var b strings.Builder
    b.Grow(len(v))
    for i := 0; i < len(v); i++ {
        c := v[i]
        if c == '\r' || c == '\n' || c == 0x7f { continue }
        if c < 0x20 && c != '\t' { continue }
        b.WriteByte(c)
    }
    return b.String()
}
