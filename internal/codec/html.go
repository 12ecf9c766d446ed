package codec

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/faanross/rainbow/internal/rainbowerr"
	"github.com/faanross/rainbow/internal/rng"
)

const (
	htmlAnchorOpen = "<!-- "
	htmlAnchorClose = " -->"
)

// HTMLCodec embeds the payload, base64-encoded, inside an HTML comment
// of an otherwise plausible page.
type HTMLCodec struct {
	src rng.Source
}

func NewHTMLCodec(src rng.Source) *HTMLCodec { return &HTMLCodec{src: src} }

func (c *HTMLCodec) Name() string { return "html" }
func (c *HTMLCodec) MIME() string { return "text/html" }

func (c *HTMLCodec) Encode(plaintext []byte) ([]byte, error) {
	encoded := base64.StdEncoding.EncodeToString(plaintext)
	title := randomTitle(c.src)
	body := randomSentence(c.src, 12)

	page := fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>%s</title>
</head>
<body>
<main>
<h1>%s</h1>
<p>%s</p>
</main>
%s%s%s
</body>
</html>`, title, title, body, htmlAnchorOpen, encoded, htmlAnchorClose)

	return []byte(page), nil
}

func (c *HTMLCodec) Decode(artifact []byte) ([]byte, error) {
	s := string(artifact)
	start := strings.LastIndex(s, htmlAnchorOpen)
	if start == -1 {
		return nil, rainbowerr.InvalidData("html codec: comment anchor not found")
	}
	start += len(htmlAnchorOpen)
	end := strings.Index(s[start:], htmlAnchorClose)
	if end == -1 {
		return nil, rainbowerr.InvalidData("html codec: comment close anchor not found")
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
