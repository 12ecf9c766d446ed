package framing

import (
	"encoding/base64"
	"strings"

	"github.com/faanross/rainbow/internal/codec"
	"github.com/faanross/rainbow/internal/httputil"
	"github.com/faanross/rainbow/internal/rainbowerr"
	"github.com/faanross/rainbow/internal/rng"
)

// DecryptSingleRead validates, parses, and decodes one packet
// previously produced by EncodeWrite.
func DecryptSingleRead(packetBytes []byte, packetIndex uint32, isClient bool, reg *codec.Registry, src rng.Source) (data []byte, expectedReplyLength uint32, isReadEnd bool, err error) {
	if err := httputil.ValidateHTTPPacket(packetBytes); err != nil {
		return nil, 0, false, err
	}

	isResponse := httputil.IsResponse(packetBytes)
	if isClient && !isResponse {
		return nil, 0, false, rainbowerr.InvalidData("decrypt_single_read: client received a request")
	}
	if !isClient && isResponse {
		return nil, 0, false, rainbowerr.InvalidData("decrypt_single_read: server received a response")
	}

	crlfcrlf := httputil.FindCRLFCRLF(packetBytes)
	if crlfcrlf == -1 {
		return nil, 0, false, rainbowerr.InvalidData("decrypt_single_read: missing header/body separator")
	}
	headerBlock, body := splitHeadersBody(packetBytes, crlfcrlf)
	firstLine := firstLineOf(headerBlock)
	lines := headerLinesOf(headerBlock)

	var plaintext []byte
	if strings.HasPrefix(firstLine, "GET ") {
		xdata, ok := findHeaderValue(lines, "X-Data")
		if !ok {
			return nil, 0, false, rainbowerr.InvalidData("decrypt_single_read: GET packet missing X-Data")
		}
		raw, decErr := base64.StdEncoding.DecodeString(xdata)
		if decErr != nil {
			return nil, 0, false, rainbowerr.WrapBase64(decErr)
		}
		plaintext, err = reg.DecodeByMIME("text/plain", raw, src)
		if err != nil {
			plaintext, err = reg.DecodeByMIME("application/json", raw, src)
			if err != nil {
				return nil, 0, false, rainbowerr.InvalidData("decrypt_single_read: GET body matched neither text/plain nor application/json")
			}
		}
	} else {
		mime, ok := findHeaderValue(lines, "Content-Type")
		if !ok {
			return nil, 0, false, rainbowerr.InvalidData("decrypt_single_read: missing Content-Type")
		}
		plaintext, err = reg.DecodeByMIME(mime, body, src)
		if err != nil {
			return nil, 0, false, err
		}
	}

	pi, ok := extractPacketInfo(lines)
	if !ok {
		return nil, 0, false, rainbowerr.InvalidData("decrypt_single_read: no cookie decoded to a valid PacketInfo")
	}

	r := rng.Or(src)
	if isClient {
		expectedReplyLength = uint32(200 + r.IntN(8000-200))
	} else {
		expectedReplyLength = uint32(100 + r.IntN(2000-100))
	}

	isReadEnd = packetIndex+1 >= pi.Total
	return plaintext, expectedReplyLength, isReadEnd, nil
}
