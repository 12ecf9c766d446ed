package codec

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/faanross/rainbow/internal/rainbowerr"
	"github.com/faanross/rainbow/internal/rng"
)

const (
	xmlDataOpen = "<data><![CDATA["
	xmlDataClose = "]]></data>"
)

// XMLCodec embeds the payload, base64-encoded, inside a CDATA section
// of a plausible XML document.
type XMLCodec struct {
	src rng.Source
}

func NewXMLCodec(src rng.Source) *XMLCodec { return &XMLCodec{src: src} }

func (c *XMLCodec) Name() string { return "xml" }
func (c *XMLCodec) MIME() string { return "application/xml" }

func (c *XMLCodec) Encode(plaintext []byte) ([]byte, error) {
	encoded := base64.StdEncoding.EncodeToString(plaintext)
	doc := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<document>
<title>%s</title>
<summary>%s</summary>
%s%s%s
</document>`, randomTitle(c.src), randomSentence(c.src, 8), xmlDataOpen, encoded, xmlDataClose)
	return []byte(doc), nil
}

func (c *XMLCodec) Decode(artifact []byte) ([]byte, error) {
	s := string(artifact)
	start := strings.Index(s, xmlDataOpen)
	if start == -1 {
		return nil, rainbowerr.InvalidData("xml codec: CDATA open anchor not found")
	}
	start += len(xmlDataOpen)
	end := strings.Index(s[start:], xmlDataClose)
	if end == -1 {
		return nil, rainbowerr.InvalidData("xml codec: CDATA close anchor not found")
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
