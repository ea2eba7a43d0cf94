package http1

import (
	"bufio"
	"strings"

	"golang.org/x/net/http/httpguts"
)

// WriteStartLine writes a request or status line: "a b c\r\n".
func WriteStartLine(bw *bufio.Writer, a, b, c string) error {
	bw.WriteString(a)
	bw.WriteByte(' ')
	bw.WriteString(b)
	bw.WriteByte(' ')
	bw.WriteString(sanitizeLine(c))
	_, err := bw.WriteString("\r\n")
	return err
}

// WriteField writes "name: value\r\n". Fields whose name is not a valid
// token are dropped and report false; control bytes are removed from value.
func WriteField(bw *bufio.Writer, name, value string) (bool, error) {
	if !httpguts.ValidHeaderFieldName(name) {
		return false, nil
	}
	bw.WriteString(name)
	bw.WriteString(": ")
	bw.WriteString(SanitizeHeaderValue(value))
	_, err := bw.WriteString("\r\n")
	return true, err
}

// EndHead writes the blank line that terminates a message head.
func EndHead(bw *bufio.Writer) error {
	_, err := bw.WriteString("\r\n")
	return err
}

func sanitizeLine(s string) string {
	if strings.ContainsAny(s, "\r\n") {
		return strings.NewReplacer("\r", "", "\n", "").Replace(s)
	}
	return s
}
