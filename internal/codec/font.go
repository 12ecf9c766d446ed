package codec

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/faanross/rainbow/internal/rainbowerr"
	"github.com/faanross/rainbow/internal/rng"
)

const (
	fontAttrOpen = `data-woff2="`
	fontAttrClose = `"`
)

// FontCodec mimics an @font-face declaration page, embedding the
// payload base64-encoded in a data-woff2 attribute.
type FontCodec struct {
	src rng.Source
}

func NewFontCodec(src rng.Source) *FontCodec { return &FontCodec{src: src} }

func (c *FontCodec) Name() string { return "font" }
func (c *FontCodec) MIME() string { return "text/html" }

func (c *FontCodec) Encode(plaintext []byte) ([]byte, error) {
	encoded := base64.StdEncoding.EncodeToString(plaintext)
	page := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
<style>
@font-face { font-family: "CustomSans"; src: url("custom-sans.woff2") format("woff2"); }
</style>
</head>
<body %s%s%s>
<p style="font-family: CustomSans;">%s</p>
</body>
</html>`, fontAttrOpen, encoded, fontAttrClose, randomSentence(c.src, 6))
	return []byte(page), nil
}

func (c *FontCodec) Decode(artifact []byte) ([]byte, error) {
	s := string(artifact)
	start := strings.Index(s, fontAttrOpen)
	if start == -1 {
		return nil, rainbowerr.InvalidData("font codec: data-woff2 attribute not found")
	}
	start += len(fontAttrOpen)
	end := strings.Index(s[start:], fontAttrClose)
	if end == -1 {
		return nil, rainbowerr.InvalidData("font codec: unterminated data-woff2 attribute")
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
