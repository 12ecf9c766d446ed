package codec

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/faanross/rainbow/internal/rainbowerr"
	"github.com/faanross/rainbow/internal/rng"
)

// houdiniEnvelope is the JSON shape carried inside the CSS custom
// property: a {"version", "metadata": {"info", "payload"}} envelope
// rather than a bare base64 string.
type houdiniEnvelope struct {
	Version int `json:"version"`
	Metadata struct {
		Info string `json:"info"`
		Payload string `json:"payload"`
	} `json:"metadata"`
}

const (
	houdiniPropOpen = `--stego-data: '`
	houdiniPropClose = `';`
)

// HoudiniCodec registers a fake CSS Paint Worklet, stashing the
// payload inside a custom-property-carried JSON envelope.
type HoudiniCodec struct {
	src rng.Source
}

func NewHoudiniCodec(src rng.Source) *HoudiniCodec { return &HoudiniCodec{src: src} }

func (c *HoudiniCodec) Name() string { return "houdini" }
func (c *HoudiniCodec) MIME() string { return "text/css" }

func (c *HoudiniCodec) Encode(plaintext []byte) ([]byte, error) {
	var env houdiniEnvelope
	env.Version = 1
	env.Metadata.Info = randomSentence(c.src, 4)
	env.Metadata.Payload = base64.StdEncoding.EncodeToString(plaintext)

	envBytes, err := json.Marshal(env)
	if err != nil {
		return nil, rainbowerr.WrapJSON(err)
	}
	// single-quote the envelope so it can live inside a CSS string
	// literal without needing to escape double quotes.
	escaped := strings.ReplaceAll(string(envBytes), `'`, `\'`)

	css := fmt.Sprintf(`@property --paint-seed {
 syntax: '<number>';
 inherits: false;
 initial-value: 0;
}
:root {
 %s%s%s
}
.%s { background: paint(customPaint); }
`, houdiniPropOpen, escaped, houdiniPropClose, "worklet-surface")
	return []byte(css), nil
}

func (c *HoudiniCodec) Decode(artifact []byte) ([]byte, error) {
	s := string(artifact)
	start := strings.Index(s, houdiniPropOpen)
	if start == -1 {
		return nil, rainbowerr.InvalidData("houdini codec: custom property not found")
	}
	start += len(houdiniPropOpen)
	end := strings.Index(s[start:], houdiniPropClose)
	if end == -1 {
		return nil, rainbowerr.InvalidData("houdini codec: unterminated custom property")
	}
	escaped := s[start : start+end]
	envStr := strings.ReplaceAll(escaped, `\'`, `'`)

	var env houdiniEnvelope
	if err := json.Unmarshal([]byte(envStr), &env); err != nil {
		return nil, rainbowerr.InvalidData("houdini codec: malformed envelope json")
	}
	if env.Metadata.Payload == "" {
		return []byte{}, nil
	}
	data, err := base64.StdEncoding.DecodeString(env.Metadata.Payload)
	if err != nil {
		return nil, rainbowerr.WrapBase64(err)
	}
	return data, nil
}
