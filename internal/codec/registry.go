package codec

import (
	"github.com/faanross/rainbow/internal/rainbowerr"
	"github.com/faanross/rainbow/internal/rng"
)

// Registry dispatches by codec name or by MIME type.
// A MIME type may map to several candidate codecs (e.g. text/html ->
// html, prism, font); DecodeByMIME tries each until one succeeds.
type Registry struct {
	byName map[string]Codec
	byMIME map[string][]Codec
}

func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Codec), byMIME: make(map[string][]Codec)}
}

// Add registers a codec under its own Name and appends it to the
// candidate list for its MIME type.
func (r *Registry) Add(c Codec) {
	r.byName[c.Name()] = c
	r.byMIME[c.MIME()] = append(r.byMIME[c.MIME()], c)
}

func (r *Registry) Get(name string) (Codec, bool) {
	c, ok := r.byName[name]
	return c, ok
}

// MIMETypes lists every MIME type with at least one registered codec.
func (r *Registry) MIMETypes() []string {
	out := make([]string, 0, len(r.byMIME))
	for m := range r.byMIME {
		out = append(out, m)
	}
	return out
}

// RandomMIME draws a uniformly random registered MIME type.
func (r *Registry) RandomMIME(src rng.Source) string {
	mimes := r.MIMETypes()
	if len(mimes) == 0 {
		return ""
	}
	return mimes[rng.Or(src).IntN(len(mimes))]
}

func (r *Registry) EncodeByName(name string, plaintext []byte) ([]byte, error) {
	c, ok := r.byName[name]
	if !ok {
		return nil, rainbowerr.InvalidData("registry: no codec registered with name " + name)
	}
	return c.Encode(plaintext)
}

func (r *Registry) DecodeByName(name string, artifact []byte) ([]byte, error) {
	c, ok := r.byName[name]
	if !ok {
		return nil, rainbowerr.InvalidData("registry: no codec registered with name " + name)
	}
	return c.Decode(artifact)
}

// EncodeByMIME picks uniformly at random among the codecs registered
// for mime. Callers that need a specific codec within a
// shared MIME type should use EncodeByName instead.
func (r *Registry) EncodeByMIME(mime string, plaintext []byte, src rng.Source) ([]byte, string, error) {
	candidates, ok := r.byMIME[mime]
	if !ok || len(candidates) == 0 {
		return nil, "", rainbowerr.InvalidData("registry: no codec registered for mime " + mime)
	}
	c := candidates[rng.Or(src).IntN(len(candidates))]
	artifact, err := c.Encode(plaintext)
	if err != nil {
		return nil, "", err
	}
	return artifact, c.Name(), nil
}

// DecodeByMIME tries every codec registered for mime, in randomized
// order, returning the first decode that succeeds with a non-empty
// plaintext. A decode that yields zero bytes counts as a failure, not
// as a valid empty payload.
func (r *Registry) DecodeByMIME(mime string, artifact []byte, src rng.Source) ([]byte, error) {
	candidates, ok := r.byMIME[mime]
	if !ok || len(candidates) == 0 {
		return nil, rainbowerr.InvalidData("registry: no codec registered for mime " + mime)
	}

	order := make([]int, len(candidates))
	for i := range order {
		order[i] = i
	}
	rng.Or(src).Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	var lastErr error
	for _, idx := range order {
		plaintext, err := candidates[idx].Decode(artifact)
		if err != nil || len(plaintext) == 0 {
			lastErr = err
			continue
		}
		return plaintext, nil
	}
	if lastErr == nil {
		lastErr = rainbowerr.InvalidData("registry: no candidate codec could decode artifact")
	}
	return nil, rainbowerr.Other("registry: all candidate codecs failed decode: " + lastErr.Error())
}

// NewDefaultRegistry builds the fixed-parameter MIME dispatch table:
// one instance per codec, deterministic construction (a cover-less
// LSB codec, the example2 32-bit grammar, a fixed-key octet codec
// caller-supplied via key).
func NewDefaultRegistry(octetKey []byte, src rng.Source) (*Registry, error) {
	r := NewRegistry()

	r.Add(&HTMLCodec{src: src})
	r.Add(&PrismCodec{src: src})
	r.Add(&FontCodec{src: src})

	r.Add(&CSSCodec{src: src})
	r.Add(NewHoudiniCodec(src))
	r.Add(&GridCodec{src: src})

	r.Add(&JSONCodec{src: src})

	r.Add(&XMLCodec{src: src})
	r.Add(&RSSCodec{src: src})

	r.Add(NewWAVCodec())

	r.Add(&SVGCodec{src: src})

	lsb, err := NewLSBCodec(2, nil, src)
	if err != nil {
		return nil, err
	}
	r.Add(lsb)

	r.Add(NewCFGCodec(Example2Grammar()))

	r.Add(NewOctetCodec(octetKey, octetMethodAESGCM))

	return r, nil
}

// NewRandomizedRegistry builds a registry where every codec with
// randomized parameters (LSB bit depth, octet key/method, CFG grammar)
// invokes its own random constructor instead of a fixed default.
func NewRandomizedRegistry(src rng.Source) (*Registry, error) {
	r := NewRegistry()
	rr := rng.Or(src)

	r.Add(&HTMLCodec{src: src})
	r.Add(&PrismCodec{src: src})
	r.Add(&FontCodec{src: src})

	r.Add(&CSSCodec{src: src})
	r.Add(NewHoudiniCodec(src))
	r.Add(&GridCodec{src: src})

	r.Add(&JSONCodec{src: src})

	r.Add(&XMLCodec{src: src})
	r.Add(&RSSCodec{src: src})

	r.Add(NewWAVCodec())

	r.Add(&SVGCodec{src: src})

	bitDepth := 1 + rr.IntN(8)
	lsb, err := NewLSBCodec(bitDepth, nil, src)
	if err != nil {
		return nil, err
	}
	r.Add(lsb)

	grammar, err := RandomGrammar(src)
	if err != nil {
		return nil, err
	}
	r.Add(NewCFGCodec(grammar))

	octet, err := NewRandomOctetCodec()
	if err != nil {
		return nil, err
	}
	r.Add(octet)

	return r, nil
}
