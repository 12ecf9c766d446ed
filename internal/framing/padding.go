package framing

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/faanross/rainbow/internal/codec"
	"github.com/faanross/rainbow/internal/httputil"
	"github.com/faanross/rainbow/internal/rainbowerr"
	"github.com/faanross/rainbow/internal/rng"
)

// contentLengthWidth is the fixed digit width of the Content-Length
// placeholder: keeping its width constant across the whole bisection
// search means header byte-length never shifts as the probed body
// size changes.
const contentLengthWidth = 10

// cookie2Prefix is the minimum padding header requires
// ("padding header length minimum 9 bytes"): the bare "COOKIE2: " tag
// with an empty value.
const cookie2Prefix = "COOKIE2: "

// GenerateStegoPacketWithLength produces a packet of approximately
// target_len bytes carrying random, undecodable body content — no
// real payload chunk is embedded.
func GenerateStegoPacketWithLength(targetLen int, isRequest bool, reg *codec.Registry, src rng.Source) ([]byte, error) {
	mime := reg.RandomMIME(src)
	if mime == "" {
		return nil, rainbowerr.InvalidData("generate_stego_packet_with_length: empty registry")
	}

	encodeProbe := func(n int) ([]byte, error) {
		raw := make([]byte, n)
		rng.Or(src).Read(raw)
		body, _, err := reg.EncodeByMIME(mime, raw, src)
		return body, err
	}

	assemble := func(body []byte) ([]byte, error) {
		if isRequest {
			return assembleRequestFixedWidth(mime, body, src)
		}
		return assembleResponseFixedWidth(mime, body, src)
	}

	// baseline: empty body, to know the fixed header overhead.
	baseline, err := assemble(nil)
	if err != nil {
		return nil, err
	}
	if len(baseline) >= targetLen {
		// Can't shrink headers; return as-is, at least as long as requested.
		return baseline, nil
	}

	// Bisect over probe plaintext size to find the largest body that
	// keeps the total packet length <= targetLen.
	lo, hi := 0, targetLen*4+64 // generous upper bound on plaintext size
	bestPacket := baseline
	for lo <= hi {
		mid := (lo + hi) / 2
		body, err := encodeProbe(mid)
		if err != nil {
			return nil, err
		}
		packet, err := assemble(body)
		if err != nil {
			return nil, err
		}
		if len(packet) <= targetLen {
			bestPacket = packet
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}

	if len(bestPacket) >= targetLen {
		return bestPacket, nil
	}

	// Pad the shortfall with a COOKIE2 header sized so the total lands
	// near target_len. The base64 value's length is a multiple of four
	// and the inserted line is at least 15 bytes, so the result can
	// exceed target_len by a few bytes.
	shortfall := targetLen - len(bestPacket)
	return appendCookie2Padding(bestPacket, shortfall)
}

func assembleRequestFixedWidth(mime string, body []byte, src rng.Source) ([]byte, error) {
	r := rng.Or(src)
	method := "POST"
	if getMIMEs[mime] {
		method = "GET"
	}
	pathPool := httputil.POSTPaths
	if method == "GET" {
		pathPool = httputil.GETPaths
	}
	path := pathPool[r.IntN(len(pathPool))]

	headers := httputil.GenerateRealisticHeaders(true, src)
	headers["Date"] = time.Now().UTC().Format(time.RFC1123)
	headers["Accept"] = httputil.AcceptHeaderForPath(path)

	if method == "GET" {
		headers["X-Data"] = base64.StdEncoding.EncodeToString(body)
		firstLine := fmt.Sprintf("GET %s HTTP/1.1", path)
		return assemblePacket(firstLine, renderHeaderLines(headers), nil), nil
	}

	headers["Content-Type"] = mime
	headers["Content-Length"] = fmt.Sprintf("%0*d", contentLengthWidth, len(body))
	firstLine := fmt.Sprintf("POST %s HTTP/1.1", path)
	return assemblePacket(firstLine, renderHeaderLines(headers), body), nil
}

func assembleResponseFixedWidth(mime string, body []byte, src rng.Source) ([]byte, error) {
	code := httputil.DrawStatusCode(src)
	headers := httputil.GenerateRealisticHeaders(false, src)
	headers["Date"] = time.Now().UTC().Format(time.RFC1123)
	headers["Content-Type"] = mime
	headers["Content-Length"] = fmt.Sprintf("%0*d", contentLengthWidth, len(body))

	firstLine := fmt.Sprintf("HTTP/1.1 %d OK", code)
	return assemblePacket(firstLine, renderHeaderLines(headers), body), nil
}

// appendCookie2Padding inserts a COOKIE2 header whose base64 random
// value is sized so the packet grows by approximately shortfall bytes.
// Insertion happens before the header/body boundary, so a correct
// packet still has its blank-line separator and body intact.
func appendCookie2Padding(packet []byte, shortfall int) ([]byte, error) {
	valueLen := shortfall - len(cookie2Prefix) - len(crlf)
	if valueLen < 0 {
		valueLen = 0
	}

	rawLen := (valueLen * 3) / 4
	if rawLen < 1 {
		rawLen = 1
	}
	raw := make([]byte, rawLen)
	if _, err := rand.Read(raw); err != nil {
		return nil, rainbowerr.WrapIO(err)
	}
	value := base64.StdEncoding.EncodeToString(raw)

	idx := httputil.FindCRLFCRLF(packet)
	if idx == -1 {
		return nil, rainbowerr.InvalidData("generate_stego_packet_with_length: malformed packet, no header terminator")
	}

	line := cookie2Prefix + value + crlf
	out := make([]byte, 0, len(packet)+len(line))
	out = append(out, packet[:idx]...)
	out = append(out, crlf...)
	out = append(out, line[:len(line)-len(crlf)]...)
	out = append(out, packet[idx:]...)
	return out, nil
}
