package codec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGrammarCapacities(t *testing.T) {
	require.Equal(t, 4, Example1Grammar().Capacity())
	require.Equal(t, 32, Example2Grammar().Capacity())
}

func TestCFGRoundTripExample1(t *testing.T) {
	c := NewCFGCodec(Example1Grammar())
	for _, s := range []string{"", "a", "hi", "hello, cfg world!", "\x00\x01\x02\xff"} {
		artifact, err := c.Encode([]byte(s))
		require.NoError(t, err)
		decoded, err := c.Decode(artifact)
		require.NoError(t, err)
		require.Equal(t, []byte(s), decoded)
	}
}

func TestCFGRoundTripExample2(t *testing.T) {
	c := NewCFGCodec(Example2Grammar())
	for _, s := range []string{"", "short", "a slightly longer payload to exercise more than one sentence"} {
		artifact, err := c.Encode([]byte(s))
		require.NoError(t, err)
		decoded, err := c.Decode(artifact)
		require.NoError(t, err)
		require.Equal(t, []byte(s), decoded)
	}
}

func TestCFGDecodeRejectsGarbage(t *testing.T) {
	c := NewCFGCodec(Example2Grammar())
	_, err := c.Decode([]byte("this text matches no grammar production at all"))
	require.Error(t, err)
}

func TestCFGDecodeRejectsNonPowerOfTwoCapacity(t *testing.T) {
	// Two 3-bit variables (8 options each) sum to 6 bits of capacity,
	// which is not a power of two; decode must reject outright.
	g, err := NewGrammar(
		[]string{"start", "a", "b"},
		map[string][]string{
			"start": {"{a} {b}"},
			"a": {"0", "1", "2", "3", "4", "5", "6", "7"},
			"b": {"0", "1", "2", "3", "4", "5", "6", "7"},
		},
	)
	require.NoError(t, err)
	require.Equal(t, 6, g.Capacity())

	c := NewCFGCodec(g)
	_, err = c.Decode([]byte("1 2"))
	require.Error(t, err)
}

func TestRandomGrammarHas32BitCapacity(t *testing.T) {
	g, err := RandomGrammar(nil)
	require.NoError(t, err)
	require.Equal(t, 32, g.Capacity())

	c := NewCFGCodec(g)
	artifact, err := c.Encode([]byte("random grammar round trip"))
	require.NoError(t, err)
	decoded, err := c.Decode(artifact)
	require.NoError(t, err)
	require.Equal(t, []byte("random grammar round trip"), decoded)
}
