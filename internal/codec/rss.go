package codec

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/faanross/rainbow/internal/rainbowerr"
	"github.com/faanross/rainbow/internal/rng"
)

const (
	rssGuidOpen = "<guid isPermaLink=\"false\">"
	rssGuidClose = "</guid>"
)

// RSSCodec embeds the payload, base64-encoded, inside an RSS <guid>
// element of a plausible news feed.
type RSSCodec struct {
	src rng.Source
}

func NewRSSCodec(src rng.Source) *RSSCodec { return &RSSCodec{src: src} }

func (c *RSSCodec) Name() string { return "rss" }
func (c *RSSCodec) MIME() string { return "application/xml" }

func (c *RSSCodec) Encode(plaintext []byte) ([]byte, error) {
	encoded := base64.StdEncoding.EncodeToString(plaintext)
	feed := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
<title>%s</title>
<item>
<title>%s</title>
<description>%s</description>
%s%s%s
</item>
</channel>
</rss>`, randomTitle(c.src), randomTitle(c.src), randomSentence(c.src, 10), rssGuidOpen, encoded, rssGuidClose)
	return []byte(feed), nil
}

func (c *RSSCodec) Decode(artifact []byte) ([]byte, error) {
	s := string(artifact)
	start := strings.Index(s, rssGuidOpen)
	if start == -1 {
		return nil, rainbowerr.InvalidData("rss codec: guid open anchor not found")
	}
	start += len(rssGuidOpen)
	end := strings.Index(s[start:], rssGuidClose)
	if end == -1 {
		return nil, rainbowerr.InvalidData("rss codec: guid close anchor not found")
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
