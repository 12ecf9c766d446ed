package codec

import (
	"encoding/base64"
	"encoding/json"

	"github.com/faanross/rainbow/internal/rainbowerr"
	"github.com/faanross/rainbow/internal/rng"
)

// jsonEnvelope is the plausible-looking JSON document the payload rides
// inside of. The payload lives base64-encoded in the Metadata field.
type jsonEnvelope struct {
	Status string `json:"status"`
	Title string `json:"title"`
	Timestamp int64 `json:"timestamp"`
	Metadata string `json:"metadata"`
}

// JSONCodec embeds the payload, base64-encoded, in a JSON metadata
// string field.
type JSONCodec struct {
	src rng.Source
}

func NewJSONCodec(src rng.Source) *JSONCodec { return &JSONCodec{src: src} }

func (c *JSONCodec) Name() string { return "json" }
func (c *JSONCodec) MIME() string { return "application/json" }

func (c *JSONCodec) Encode(plaintext []byte) ([]byte, error) {
	env := jsonEnvelope{
		Status: "ok",
		Title: randomTitle(c.src),
		Timestamp: int64(rng.Or(c.src).Uint32()),
		Metadata: base64.StdEncoding.EncodeToString(plaintext),
	}
	out, err := json.Marshal(env)
	if err != nil {
		return nil, rainbowerr.WrapJSON(err)
	}
	return out, nil
}

func (c *JSONCodec) Decode(artifact []byte) ([]byte, error) {
	var env jsonEnvelope
	if err := json.Unmarshal(artifact, &env); err != nil {
		return nil, rainbowerr.InvalidData("json codec: malformed envelope")
	}
	if env.Metadata == "" {
		return []byte{}, nil
	}
	data, err := base64.StdEncoding.DecodeString(env.Metadata)
	if err != nil {
		return nil, rainbowerr.WrapBase64(err)
	}
	return data, nil
}
