package httputil

import (
	"bytes"
	"strings"

	"github.com/faanross/rainbow/internal/rainbowerr"
)

const minPacketSize = 16

// ValidateHTTPPacket rejects buf unless it looks like a complete,
// well-formed HTTP/1.1 request or response first line.
//
// Acceptance rules:
// - shorter than minPacketSize bytes -> reject
// - first line starts with "HTTP/" and contains a space -> response
// - OR first line is a 3-token request line whose method is GET/POST
// and whose third token starts with "HTTP/" -> request
func ValidateHTTPPacket(buf []byte) error {
	if len(buf) < minPacketSize {
		return rainbowerr.InvalidData("packet shorter than minimum HTTP size")
	}

	lineEnd := bytes.IndexByte(buf, '\n')
	var firstLine string
	if lineEnd == -1 {
		firstLine = string(buf)
	} else {
		firstLine = string(buf[:lineEnd])
	}
	firstLine = strings.TrimRight(firstLine, "\r\n")

	if strings.HasPrefix(firstLine, "HTTP/") && strings.Contains(firstLine, " ") {
		return nil
	}

	tokens := strings.Fields(firstLine)
	if len(tokens) == 3 {
		method, _, version := tokens[0], tokens[1], tokens[2]
		if (method == "GET" || method == "POST") && strings.HasPrefix(version, "HTTP/") {
			return nil
		}
	}

	return rainbowerr.InvalidData("first line is neither a valid status line nor a valid request line")
}

// IsResponse reports whether buf begins with a status line rather than
// a request line. Caller must have already validated the packet.
func IsResponse(buf []byte) bool {
	return bytes.HasPrefix(buf, []byte("HTTP/1.1"))
}
