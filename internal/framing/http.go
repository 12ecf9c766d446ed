package framing

import (
	"sort"
	"strings"
)

const crlf = "\r\n"

// renderHeaderLines turns a header map into "Key: value" lines sorted
// by key, giving deterministic, diffable packet text — header order
// carries no protocol meaning here.
func renderHeaderLines(headers map[string]string) []string {
	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	lines := make([]string, len(keys))
	for i, k := range keys {
		lines[i] = k + ": " + headers[k]
	}
	return lines
}

// assemblePacket joins a first line, header lines, and a body into a
// standards-compliant HTTP/1.1 message: CRLF between header lines, a
// blank CRLFCRLF line before the body.
func assemblePacket(firstLine string, headerLines []string, body []byte) []byte {
	var b strings.Builder
	b.WriteString(firstLine)
	b.WriteString(crlf)
	for _, h := range headerLines {
		b.WriteString(h)
		b.WriteString(crlf)
	}
	b.WriteString(crlf)
	out := []byte(b.String())
	return append(out, body...)
}

// splitHeadersBody locates CRLFCRLF and returns the header block text
// and the remaining body bytes.
func splitHeadersBody(buf []byte, crlfcrlfIdx int) (string, []byte) {
	headerBlock := string(buf[:crlfcrlfIdx])
	body := buf[crlfcrlfIdx+4:]
	return headerBlock, body
}

func headerLinesOf(headerBlock string) []string {
	lines := strings.Split(headerBlock, crlf)
	if len(lines) > 0 {
		return lines[1:] // drop the request/status line
	}
	return nil
}

func firstLineOf(headerBlock string) string {
	idx := strings.Index(headerBlock, crlf)
	if idx == -1 {
		return headerBlock
	}
	return headerBlock[:idx]
}

// findHeaderValue returns the value of the first header named name
// (case-insensitive), or "" with ok=false.
func findHeaderValue(lines []string, name string) (string, bool) {
	for _, line := range lines {
		if hasHeaderName(line, name) {
			return headerValue(line), true
		}
	}
	return "", false
}
