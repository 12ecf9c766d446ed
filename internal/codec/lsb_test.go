package codec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLSBRoundTripNoCover(t *testing.T) {
	for _, depth := range []int{1, 2, 4, 8} {
		depth := depth
		t.Run("depth", func(t *testing.T) {
			c, err := NewLSBCodec(depth, nil, nil)
			require.NoError(t, err)

			plaintext := []byte("the quick brown fox jumps over the lazy dog")
			artifact, err := c.Encode(plaintext)
			require.NoError(t, err)

			decoded, err := c.Decode(artifact)
			require.NoError(t, err)
			require.Equal(t, plaintext, decoded)
		})
	}
}

func TestLSBRoundTripEmptyPayload(t *testing.T) {
	c, err := NewLSBCodec(1, nil, nil)
	require.NoError(t, err)

	artifact, err := c.Encode([]byte{})
	require.NoError(t, err)
	decoded, err := c.Decode(artifact)
	require.NoError(t, err)
	require.Equal(t, []byte{}, decoded)
}

func TestNewLSBCodecRejectsBadBitDepth(t *testing.T) {
	_, err := NewLSBCodec(0, nil, nil)
	require.Error(t, err)
	_, err = NewLSBCodec(9, nil, nil)
	require.Error(t, err)
}

func TestLSBDecodeRejectsNonPNG(t *testing.T) {
	c, err := NewLSBCodec(1, nil, nil)
	require.NoError(t, err)
	_, err = c.Decode([]byte("not a png"))
	require.Error(t, err)
}

func TestRequiredPixelsMargin(t *testing.T) {
	// k=1 gets a flat +100 pixel margin.
	base := requiredPixels(10, 1)
	require.Greater(t, base, 100)

	// k>1 doubles the raw requirement.
	k2 := requiredPixels(10, 2)
	raw := (32 + 8*10 + 3*2 - 1) / (3 * 2)
	require.Equal(t, raw*2, k2)
}
