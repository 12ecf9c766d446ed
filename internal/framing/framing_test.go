package framing

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/faanross/rainbow/internal/codec"
	"github.com/faanross/rainbow/internal/httputil"
)

func testRegistry(t *testing.T) *codec.Registry {
	t.Helper()
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i * 5)
	}
	reg, err := codec.NewDefaultRegistry(key, nil)
	require.NoError(t, err)
	return reg
}

func TestEncodeWriteEmptyPayload(t *testing.T) {
	reg := testRegistry(t)
	packets, lengths, err := EncodeWrite(nil, true, Options{}, reg, nil)
	require.NoError(t, err)
	require.Nil(t, packets)
	require.Nil(t, lengths)
}

func TestEncodeWriteChunkCount(t *testing.T) {
	reg := testRegistry(t)
	payload := make([]byte, ChunkSize*2+10)
	for i := range payload {
		payload[i] = byte(i)
	}
	packets, lengths, err := EncodeWrite(payload, true, Options{}, reg, nil)
	require.NoError(t, err)
	require.Len(t, packets, 3)
	require.Len(t, lengths, 3)
	for _, l := range lengths {
		require.GreaterOrEqual(t, l, uint32(200))
		require.Less(t, l, uint32(8000))
	}
}

func TestEncodeDecodeRoundTripClient(t *testing.T) {
	reg := testRegistry(t)
	payload := []byte("a payload spanning more than one chunk if large enough, but this is small")

	packets, _, err := EncodeWrite(payload, true, Options{}, reg, nil)
	require.NoError(t, err)
	require.Len(t, packets, 1)

	require.NoError(t, httputil.ValidateHTTPPacket(packets[0]))

	// the server side reads the client's request.
	data, _, isReadEnd, err := DecryptSingleRead(packets[0], 0, false, reg, nil)
	require.NoError(t, err)
	require.Equal(t, payload, data)
	require.True(t, isReadEnd)
}

func TestEncodeDecodeRoundTripServer(t *testing.T) {
	reg := testRegistry(t)
	payload := []byte("server-authored response payload")

	packets, _, err := EncodeWrite(payload, false, Options{}, reg, nil)
	require.NoError(t, err)
	require.Len(t, packets, 1)
	require.True(t, httputil.IsResponse(packets[0]))

	// the client side reads the server's response.
	data, _, isReadEnd, err := DecryptSingleRead(packets[0], 0, true, reg, nil)
	require.NoError(t, err)
	require.Equal(t, payload, data)
	require.True(t, isReadEnd)
}

func TestEncodeDecodeRoundTripMultiChunk(t *testing.T) {
	reg := testRegistry(t)
	payload := make([]byte, ChunkSize*3-7)
	for i := range payload {
		payload[i] = byte((i * 13) % 256)
	}

	packets, _, err := EncodeWrite(payload, true, Options{}, reg, nil)
	require.NoError(t, err)
	require.Len(t, packets, 3)

	var recovered []byte
	for i, packet := range packets {
		data, _, isReadEnd, err := DecryptSingleRead(packet, uint32(i), false, reg, nil)
		require.NoError(t, err)
		recovered = append(recovered, data...)
		require.Equal(t, i == len(packets)-1, isReadEnd)
	}
	require.Equal(t, payload, recovered)
}

func TestEncodeWriteForcedMIMEUsesGETForTextPlain(t *testing.T) {
	reg := testRegistry(t)
	packets, _, err := EncodeWrite([]byte("cfg-carried payload"), true, Options{MIME: "text/plain"}, reg, nil)
	require.NoError(t, err)
	require.Len(t, packets, 1)
	require.Contains(t, string(packets[0][:4]), "GET ")
}

func TestEncodeWriteForcedMIMEUsesPOSTForHTML(t *testing.T) {
	reg := testRegistry(t)
	packets, _, err := EncodeWrite([]byte("html-carried payload"), true, Options{MIME: "text/html"}, reg, nil)
	require.NoError(t, err)
	require.Len(t, packets, 1)
	require.Contains(t, string(packets[0][:5]), "POST ")
}

func TestDecryptSingleReadRejectsWrongDirection(t *testing.T) {
	reg := testRegistry(t)
	packets, _, err := EncodeWrite([]byte("x"), true, Options{}, reg, nil)
	require.NoError(t, err)

	// a client must not receive a request packet.
	_, _, _, err = DecryptSingleRead(packets[0], 0, true, reg, nil)
	require.Error(t, err)
}

func TestGenerateStegoPacketWithLengthApproximatesTarget(t *testing.T) {
	reg := testRegistry(t)
	for _, target := range []int{500, 2000, 3000} {
		target := target
		packet, err := GenerateStegoPacketWithLength(target, true, reg, nil)
		require.NoError(t, err)
		diff := target - len(packet)
		require.GreaterOrEqual(t, diff, -100)
		require.LessOrEqual(t, diff, 100)
	}
}
