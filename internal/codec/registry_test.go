package codec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testKey() []byte {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i * 3)
	}
	return key
}

func TestDefaultRegistryMIMEMapping(t *testing.T) {
	reg, err := NewDefaultRegistry(testKey(), nil)
	require.NoError(t, err)

	expected := map[string]int{
		"text/html": 3,
		"text/css": 3,
		"application/json": 1,
		"application/xml": 2,
		"audio/wav": 1,
		"image/svg+xml": 1,
		"image/png": 1,
		"text/plain": 1,
		"application/octet-stream": 1,
	}
	for mime, count := range expected {
		require.Contains(t, reg.byMIME, mime)
		require.Len(t, reg.byMIME[mime], count, mime)
	}
}

func TestDefaultRegistryEncodeDecodeByMIME(t *testing.T) {
	reg, err := NewDefaultRegistry(testKey(), nil)
	require.NoError(t, err)

	for mime := range reg.byMIME {
		mime := mime
		t.Run(mime, func(t *testing.T) {
			plaintext := []byte("registry round trip payload")
			artifact, name, err := reg.EncodeByMIME(mime, plaintext, nil)
			require.NoError(t, err)
			require.NotEmpty(t, name)

			decoded, err := reg.DecodeByMIME(mime, artifact, nil)
			require.NoError(t, err)
			require.Equal(t, plaintext, decoded)
		})
	}
}

func TestRegistryEncodeByNameAndGet(t *testing.T) {
	reg, err := NewDefaultRegistry(testKey(), nil)
	require.NoError(t, err)

	c, ok := reg.Get("html")
	require.True(t, ok)
	require.Equal(t, "text/html", c.MIME())

	artifact, err := reg.EncodeByName("html", []byte("abc"))
	require.NoError(t, err)
	decoded, err := reg.DecodeByName("html", artifact)
	require.NoError(t, err)
	require.Equal(t, []byte("abc"), decoded)
}

func TestRegistryRandomMIMEIsRegistered(t *testing.T) {
	reg, err := NewDefaultRegistry(testKey(), nil)
	require.NoError(t, err)
	mime := reg.RandomMIME(nil)
	require.Contains(t, reg.MIMETypes(), mime)
}

func TestRegistryUnknownNameOrMIMEFails(t *testing.T) {
	reg, err := NewDefaultRegistry(testKey(), nil)
	require.NoError(t, err)

	_, err = reg.EncodeByName("nonexistent", []byte("x"))
	require.Error(t, err)

	_, _, err = reg.EncodeByMIME("nonexistent/mime", []byte("x"), nil)
	require.Error(t, err)
}

func TestRandomizedRegistryBuilds(t *testing.T) {
	reg, err := NewRandomizedRegistry(nil)
	require.NoError(t, err)
	require.NotEmpty(t, reg.MIMETypes())
}

// emptyCodec always succeeds with a zero-length plaintext, exercising
// DecodeByMIME's empty-decode rejection.
type emptyCodec struct{}

func (emptyCodec) Name() string { return "empty-test-codec" }
func (emptyCodec) MIME() string { return "application/x-empty-test" }
func (emptyCodec) Encode(plaintext []byte) ([]byte, error) { return plaintext, nil }
func (emptyCodec) Decode(artifact []byte) ([]byte, error) { return nil, nil }

func TestDecodeByMIMERejectsEmptySuccess(t *testing.T) {
	reg := NewRegistry()
	reg.Add(emptyCodec{})

	_, err := reg.DecodeByMIME("application/x-empty-test", []byte("anything"), nil)
	require.Error(t, err)
}
