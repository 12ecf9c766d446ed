package framing

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/faanross/rainbow/internal/codec"
	"github.com/faanross/rainbow/internal/httputil"
	"github.com/faanross/rainbow/internal/rng"
)

// Options controls encode_write's per-call choices.
type Options struct {
	// MIME overrides the registry's random MIME draw when non-empty.
	MIME string
}

// getMIMEs is the set of MIME types whose chunk rides in the X-Data
// header of a GET request rather than in a POST body.
var getMIMEs = map[string]bool{
	"text/plain": true,
	"application/json": true,
}

func ceilDiv(a, b int) int {
	if a == 0 {
		return 0
	}
	return (a + b - 1) / b
}

// EncodeWrite splits payload into chunks, encodes each through a
// chosen codec, and assembles either a client request or a server
// response packet per chunk.
func EncodeWrite(payload []byte, isClient bool, opts Options, reg *codec.Registry, src rng.Source) ([][]byte, []uint32, error) {
	n := ceilDiv(len(payload), ChunkSize)
	if n == 0 {
		return nil, nil, nil
	}

	r := rng.Or(src)
	packets := make([][]byte, 0, n)
	expectedLengths := make([]uint32, 0, n)

	for i := 0; i < n; i++ {
		start := i * ChunkSize
		end := start + ChunkSize
		if end > len(payload) {
			end = len(payload)
		}
		chunk := payload[start:end]

		pi := PacketInfo{
			Version: 1,
			Timestamp: time.Now().Unix(),
			Index: uint32(i),
			Total: uint32(n),
			Length: uint32(len(chunk)),
		}

		mime := opts.MIME
		if mime == "" {
			mime = reg.RandomMIME(src)
		}
		body, _, err := reg.EncodeByMIME(mime, chunk, src)
		if err != nil {
			return nil, nil, err
		}

		var packet []byte
		if isClient {
			packet, err = buildRequest(mime, body, pi, src)
		} else {
			packet, err = buildResponse(mime, body, pi, src)
		}
		if err != nil {
			return nil, nil, err
		}
		packets = append(packets, packet)

		var expected uint32
		if isClient {
			expected = uint32(200 + r.IntN(8000-200))
		} else {
			expected = uint32(100 + r.IntN(2000-100))
		}
		expectedLengths = append(expectedLengths, expected)
	}

	return packets, expectedLengths, nil
}

func buildRequest(mime string, body []byte, pi PacketInfo, src rng.Source) ([]byte, error) {
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

	pairs, err := buildCookies(pi, src)
	if err != nil {
		return nil, err
	}

	headers := httputil.GenerateRealisticHeaders(true, src)
	headers["Date"] = time.Now().UTC().Format(time.RFC1123)
	headers["Accept"] = httputil.AcceptHeaderForPath(path)
	headers["Cookie"] = renderCookieHeader(pairs)

	if method == "GET" {
		headers["X-Data"] = base64.StdEncoding.EncodeToString(body)
		firstLine := fmt.Sprintf("GET %s HTTP/1.1", path)
		return assemblePacket(firstLine, renderHeaderLines(headers), nil), nil
	}

	headers["Content-Type"] = mime
	headers["Content-Length"] = fmt.Sprintf("%d", len(body))
	firstLine := fmt.Sprintf("POST %s HTTP/1.1", path)
	return assemblePacket(firstLine, renderHeaderLines(headers), body), nil
}

func buildResponse(mime string, body []byte, pi PacketInfo, src rng.Source) ([]byte, error) {
	code := httputil.DrawStatusCode(src)

	pairs, err := buildCookies(pi, src)
	if err != nil {
		return nil, err
	}

	headers := httputil.GenerateRealisticHeaders(false, src)
	headers["Date"] = time.Now().UTC().Format(time.RFC1123)
	headers["Content-Type"] = mime
	headers["Content-Length"] = fmt.Sprintf("%d", len(body))

	lines := renderHeaderLines(headers)
	lines = append(lines, renderSetCookieLines(pairs)...)

	// reason phrase is always "OK" regardless of code: intentional,
	// exploited by the decoder's is_response test.
	firstLine := fmt.Sprintf("HTTP/1.1 %d OK", code)
	return assemblePacket(firstLine, lines, body), nil
}
