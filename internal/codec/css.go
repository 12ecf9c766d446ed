package codec

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/faanross/rainbow/internal/rainbowerr"
	"github.com/faanross/rainbow/internal/rng"
)

const (
	cssUnitBits = 4 // 16 buckets
	cssBaseMs = 100
	cssStepMs = 50
)

var cssLenRe = regexp.MustCompile(`/\* len:(\d+) \*/`)
var cssDurationRe = regexp.MustCompile(`animation-duration:\s*(\d+)ms`)

// CSSCodec embeds bit groups as animation-duration values quantized
// into 16 buckets.
type CSSCodec struct {
	src rng.Source
}

func NewCSSCodec(src rng.Source) *CSSCodec { return &CSSCodec{src: src} }

func (c *CSSCodec) Name() string { return "css" }
func (c *CSSCodec) MIME() string { return "text/css" }

func (c *CSSCodec) Encode(plaintext []byte) ([]byte, error) {
	bits := bitsFromBytes(plaintext)
	buckets := groupIntoBuckets(bits, cssUnitBits)

	var b strings.Builder
	fmt.Fprintf(&b, "/* len:%d */\n", len(plaintext))
	for i, bucket := range buckets {
		ms := cssBaseMs + bucket*cssStepMs
		fmt.Fprintf(&b, "%s { animation-name: fade; animation-duration: %dms; animation-timing-function: ease-in-out; }\n",
			randomSelector(c.src), ms)
		_ = i
	}
	return []byte(b.String()), nil
}

func (c *CSSCodec) Decode(artifact []byte) ([]byte, error) {
	s := string(artifact)
	lenMatch := cssLenRe.FindStringSubmatch(s)
	if lenMatch == nil {
		return nil, rainbowerr.InvalidData("css codec: length marker not found")
	}
	wantLen, err := strconv.Atoi(lenMatch[1])
	if err != nil {
		return nil, rainbowerr.InvalidData("css codec: malformed length marker")
	}
	if wantLen == 0 {
		return []byte{}, nil
	}

	matches := cssDurationRe.FindAllStringSubmatch(s, -1)
	buckets := make([]int, 0, len(matches))
	for _, m := range matches {
		ms, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, rainbowerr.InvalidData("css codec: malformed duration")
		}
		bucket := (ms - cssBaseMs) / cssStepMs
		if bucket < 0 || bucket > 15 {
			return nil, rainbowerr.InvalidData("css codec: duration out of range")
		}
		buckets = append(buckets, bucket)
	}

	bits := bitsFromBuckets(buckets, cssUnitBits)
	data := bytesFromBits(bits)
	if len(data) < wantLen {
		return nil, rainbowerr.InvalidData("css codec: insufficient declarations for declared length")
	}
	return data[:wantLen], nil
}
