package httputil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindCRLFCRLF(t *testing.T) {
	buf := []byte("GET / HTTP/1.1\r\nHost: x\r\n\r\nbody")
	idx := FindCRLFCRLF(buf)
	require.Equal(t, strings.Index(string(buf), "\r\n\r\n"), idx)

	require.Equal(t, -1, FindCRLFCRLF([]byte("no terminator here")))
}

func TestFindMatchingBrace(t *testing.T) {
	text := "a {b {c} d} e"
	require.Equal(t, 10, FindMatchingBrace(text, 2))
	require.Equal(t, 7, FindMatchingBrace(text, 5))
	require.Equal(t, -1, FindMatchingBrace("{unbalanced", 0))
}

func TestValidateHTTPPacketRejectsShort(t *testing.T) {
	err := ValidateHTTPPacket([]byte("GET /"))
	require.Error(t, err)
}

func TestValidateHTTPPacketAcceptsRequest(t *testing.T) {
	buf := []byte("GET /index.html HTTP/1.1\r\nHost: example.com\r\n\r\n")
	require.NoError(t, ValidateHTTPPacket(buf))
}

func TestValidateHTTPPacketAcceptsResponse(t *testing.T) {
	buf := []byte("HTTP/1.1 200 OK\r\nContent-Length: 0\r\n\r\n")
	require.NoError(t, ValidateHTTPPacket(buf))
}

func TestValidateHTTPPacketRejectsGarbage(t *testing.T) {
	buf := []byte("this is not http at all, just garbage bytes padded out")
	require.Error(t, ValidateHTTPPacket(buf))
}

func TestIsResponse(t *testing.T) {
	require.True(t, IsResponse([]byte("HTTP/1.1 200 OK\r\n")))
	require.False(t, IsResponse([]byte("GET / HTTP/1.1\r\n")))
}

func TestDrawStatusCodeDefaultsTo200(t *testing.T) {
	// with a source that always returns a sample above all weights, the
	// walk should fall through to the 200 default.
	src := constSource{f: 0.999}
	require.Equal(t, 200, DrawStatusCode(src))
}

type constSource struct{ f float64 }

func (c constSource) IntN(n int) int { return 0 }
func (c constSource) Float64() float64 { return c.f }
func (c constSource) Uint32() uint32 { return 0 }
func (c constSource) Shuffle(n int, swap func(i, j int)) {}
func (c constSource) Read(p []byte) {}

func TestAcceptHeaderForPath(t *testing.T) {
	cases := map[string]string{
		"/a.css": "text/css,*/*;q=0.1",
		"/a.js": "application/javascript,*/*;q=0.1",
		"/a.png": "image/png,image/*;q=0.8,*/*;q=0.5",
		"/api/v1/x": "application/json",
		"/index.html": "*/*",
	}
	for path, want := range cases {
		require.Equal(t, want, AcceptHeaderForPath(path), path)
	}
}
