package codec

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/faanross/rainbow/internal/rainbowerr"
	"github.com/faanross/rainbow/internal/rng"
)

const (
	prismAttrOpen = `data-src="`
	prismAttrClose = `"`
)

// PrismCodec mimics a Prism.js syntax-highlighted code block, embedding
// the payload base64-encoded in a data-src attribute.
type PrismCodec struct {
	src rng.Source
}

func NewPrismCodec(src rng.Source) *PrismCodec { return &PrismCodec{src: src} }

func (c *PrismCodec) Name() string { return "prism" }
func (c *PrismCodec) MIME() string { return "text/html" }

func (c *PrismCodec) Encode(plaintext []byte) ([]byte, error) {
	encoded := base64.StdEncoding.EncodeToString(plaintext)
	page := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><link rel="stylesheet" href="prism.css"></head>
<body>
<pre class="language-go"><code %s%s%s class="language-go">
func main() {
	fmt.Println("%s")
}
</code></pre>
</body>
</html>`, prismAttrOpen, encoded, prismAttrClose, randomSentence(c.src, 3))
	return []byte(page), nil
}

func (c *PrismCodec) Decode(artifact []byte) ([]byte, error) {
	s := string(artifact)
	start := strings.Index(s, prismAttrOpen)
	if start == -1 {
		return nil, rainbowerr.InvalidData("prism codec: data-src attribute not found")
	}
	start += len(prismAttrOpen)
	end := strings.Index(s[start:], prismAttrClose)
	if end == -1 {
		return nil, rainbowerr.InvalidData("prism codec: unterminated data-src attribute")
	}
	payload := s[start : start+end]
	if payload == "" {
		return []byte{}, nil
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, rainbowerr.WrapBase64(err)
	}
	return data, nil
}
