// Package codec implements the steganographic body-codec registry: the
// shared Codec contract, the simple base64/bit-embedding codecs, the
// LSB image codec, the CFG codec, and the name/MIME registry that
// dispatches between them.
package codec

// Codec maps bytes to a MIME-tagged carrier artifact and back. An
// implementation is immutable after construction and safe for
// concurrent use.
type Codec interface {
	// Name is the stable identifier used for registry keying.
	Name() string
	// MIME is the label the framing layer uses to pick this codec.
	MIME() string
	// Encode maps arbitrary plaintext (possibly empty) to an artifact.
	Encode(plaintext []byte) ([]byte, error)
	// Decode recovers the plaintext from an artifact previously
	// produced by Encode. Returns InvalidData when unrecognizable.
	Decode(artifact []byte) ([]byte, error)
}
