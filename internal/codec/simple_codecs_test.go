package codec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, c Codec, plaintext []byte) {
	t.Helper()
	artifact, err := c.Encode(plaintext)
	require.NoError(t, err)

	decoded, err := c.Decode(artifact)
	require.NoError(t, err)
	require.Equal(t, plaintext, decoded)
}

func TestSimpleCodecsRoundTrip(t *testing.T) {
	codecs := []Codec{
		&HTMLCodec{src: nil},
		&JSONCodec{src: nil},
		&XMLCodec{src: nil},
		&RSSCodec{src: nil},
		&PrismCodec{src: nil},
		&FontCodec{src: nil},
		&CSSCodec{src: nil},
		&GridCodec{src: nil},
		&SVGCodec{src: nil},
		NewHoudiniCodec(nil),
		NewWAVCodec(),
	}

	for _, c := range codecs {
		c := c
		t.Run(c.Name(), func(t *testing.T) {
			roundTrip(t, c, []byte("hello, covert world"))
		})
	}
}

func TestSimpleCodecsRoundTripEmpty(t *testing.T) {
	codecs := []Codec{
		&HTMLCodec{src: nil},
		&JSONCodec{src: nil},
		&XMLCodec{src: nil},
		&RSSCodec{src: nil},
		&PrismCodec{src: nil},
		&FontCodec{src: nil},
		NewHoudiniCodec(nil),
		NewWAVCodec(),
	}
	for _, c := range codecs {
		c := c
		t.Run(c.Name(), func(t *testing.T) {
			roundTrip(t, c, []byte{})
		})
	}
}

func TestBitLevelCodecsRoundTripVariousLengths(t *testing.T) {
	codecs := []Codec{
		&CSSCodec{src: nil},
		&GridCodec{src: nil},
		&SVGCodec{src: nil},
	}
	lengths := []int{0, 1, 2, 3, 5, 16}
	for _, c := range codecs {
		c := c
		for _, n := range lengths {
			data := make([]byte, n)
			for i := range data {
				data[i] = byte(i*7 + 3)
			}
			t.Run(c.Name(), func(t *testing.T) {
				roundTrip(t, c, data)
			})
		}
	}
}

func TestHTMLCodecRejectsMissingAnchor(t *testing.T) {
	c := &HTMLCodec{src: nil}
	_, err := c.Decode([]byte("<html><body>no anchor here</body></html>"))
	require.Error(t, err)
}

func TestOctetCodecRoundTripAndFallback(t *testing.T) {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}

	aesCodec := NewOctetCodec(key, octetMethodAESGCM)
	artifact, err := aesCodec.Encode([]byte("top secret"))
	require.NoError(t, err)

	chachaCodec := NewOctetCodec(key, octetMethodChaCha20Poly)
	decoded, err := chachaCodec.Decode(artifact)
	require.NoError(t, err)
	require.Equal(t, []byte("top secret"), decoded)
}

func TestOctetCodecRejectsTruncated(t *testing.T) {
	key := make([]byte, 32)
	c := NewOctetCodec(key, octetMethodAESGCM)
	_, err := c.Decode([]byte{1, 2, 3})
	require.Error(t, err)
}

func TestWAVCodecRejectsBadMagic(t *testing.T) {
	c := NewWAVCodec()
	bad := make([]byte, 50)
	_, err := c.Decode(bad)
	require.Error(t, err)
}
