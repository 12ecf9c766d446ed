package codec

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/binary"
	"io"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/faanross/rainbow/internal/rainbowerr"
)

const (
	octetMethodAESGCM byte = 0
	octetMethodChaCha20Poly byte = 1
	octetNonceSize = 12
	octetLenPrefixSize = 4
	octetKeySize = 32
)

// OctetCodec encrypts the plaintext with either AES-256-GCM or
// ChaCha20-Poly1305 (method fixed per instance), tagging the artifact
// with a one-byte method marker. The decoder tries the tagged method
// first and, only when the tag differs from the instance's preferred
// method, falls back to the other method.
type OctetCodec struct {
	key [octetKeySize]byte
	preferred byte
}

// NewOctetCodec constructs an instance bound to key (must be 32 bytes)
// and a preferred AEAD method.
func NewOctetCodec(key []byte, preferred byte) *OctetCodec {
	c := &OctetCodec{preferred: preferred}
	copy(c.key[:], key)
	return c
}

// NewRandomOctetCodec generates a fresh random key and preferred
// method, for use by the registry's randomized construction mode.
func NewRandomOctetCodec() (*OctetCodec, error) {
	key := make([]byte, octetKeySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, rainbowerr.WrapIO(err)
	}
	preferred := octetMethodAESGCM
	var b [1]byte
	if _, err := io.ReadFull(rand.Reader, b[:]); err != nil {
		return nil, rainbowerr.WrapIO(err)
	}
	if b[0]&1 == 1 {
		preferred = octetMethodChaCha20Poly
	}
	return NewOctetCodec(key, preferred), nil
}

func (c *OctetCodec) Name() string { return "octet" }
func (c *OctetCodec) MIME() string { return "application/octet-stream" }

func (c *OctetCodec) aeadFor(method byte) (cipher.AEAD, error) {
	switch method {
	case octetMethodAESGCM:
		block, err := aes.NewCipher(c.key[:])
		if err != nil {
			return nil, err
		}
		return cipher.NewGCM(block)
	case octetMethodChaCha20Poly:
		return chacha20poly1305.New(c.key[:])
	default:
		return nil, rainbowerr.InvalidData("octet codec: unknown method tag")
	}
}

func (c *OctetCodec) Encode(plaintext []byte) ([]byte, error) {
	aead, err := c.aeadFor(c.preferred)
	if err != nil {
		return nil, rainbowerr.EncodeFailed("octet codec: cipher init failed")
	}

	nonce := make([]byte, octetNonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, rainbowerr.WrapIO(err)
	}

	ciphertext := aead.Seal(nil, nonce, plaintext, nil)

	out := make([]byte, 0, 1+octetNonceSize+octetLenPrefixSize+len(ciphertext))
	out = append(out, c.preferred)
	out = append(out, nonce...)
	lenPrefix := make([]byte, octetLenPrefixSize)
	binary.LittleEndian.PutUint32(lenPrefix, uint32(len(ciphertext)))
	out = append(out, lenPrefix...)
	out = append(out, ciphertext...)
	return out, nil
}

func (c *OctetCodec) Decode(artifact []byte) ([]byte, error) {
	minLen := 1 + octetNonceSize + octetLenPrefixSize
	if len(artifact) < minLen {
		return nil, rainbowerr.InvalidData("octet codec: artifact truncated")
	}

	tag := artifact[0]
	nonce := artifact[1 : 1+octetNonceSize]
	lenOff := 1 + octetNonceSize
	ciphertextLen := binary.LittleEndian.Uint32(artifact[lenOff : lenOff+octetLenPrefixSize])
	ciphertext := artifact[lenOff+octetLenPrefixSize:]
	if uint32(len(ciphertext)) != ciphertextLen {
		return nil, rainbowerr.LengthMismatch(int(ciphertextLen), len(ciphertext), "octet codec ciphertext")
	}

	tryOrder := []byte{tag}
	if tag != c.preferred {
		// tag disagrees with this instance's own method: the artifact
		// may have been produced by the other instance sharing this
		// key, so fall back to the untagged method too.
		tryOrder = append(tryOrder, otherMethod(tag))
	}

	var lastErr error
	for _, method := range tryOrder {
		aead, err := c.aeadFor(method)
		if err != nil {
			lastErr = err
			continue
		}
		plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
		if err == nil {
			return plaintext, nil
		}
		lastErr = err
	}
	return nil, rainbowerr.Wrap(rainbowerr.KindInvalidData, "octet codec: decryption failed for both methods", lastErr)
}

func otherMethod(m byte) byte {
	if m == octetMethodAESGCM {
		return octetMethodChaCha20Poly
	}
	return octetMethodAESGCM
}
