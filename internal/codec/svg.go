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
	svgUnitBits = 4 // 16 buckets
	svgBase = 10
	svgStep = 10
)

var svgLenRe = regexp.MustCompile(`<!-- len:(\d+) -->`)
var svgWidthRe = regexp.MustCompile(`width="(\d+)"`)

// SVGCodec embeds bit groups as <rect width="..."> values quantized
// into 16 buckets.
type SVGCodec struct {
	src rng.Source
}

func NewSVGCodec(src rng.Source) *SVGCodec { return &SVGCodec{src: src} }

func (c *SVGCodec) Name() string { return "svg-path" }
func (c *SVGCodec) MIME() string { return "image/svg+xml" }

func (c *SVGCodec) Encode(plaintext []byte) ([]byte, error) {
	bits := bitsFromBytes(plaintext)
	buckets := groupIntoBuckets(bits, svgUnitBits)

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 200 200">` + "\n")
	fmt.Fprintf(&b, "<!-- len:%d -->\n", len(plaintext))
	y := 0
	for _, bucket := range buckets {
		width := svgBase + bucket*svgStep
		fmt.Fprintf(&b, `<rect x="0" y="%d" width="%d" height="8" fill="#%06x"/>`+"\n", y, width, 0x333333+y)
		y += 10
	}
	b.WriteString("</svg>")
	return []byte(b.String()), nil
}

func (c *SVGCodec) Decode(artifact []byte) ([]byte, error) {
	s := string(artifact)
	lenMatch := svgLenRe.FindStringSubmatch(s)
	if lenMatch == nil {
		return nil, rainbowerr.InvalidData("svg codec: length marker not found")
	}
	wantLen, err := strconv.Atoi(lenMatch[1])
	if err != nil {
		return nil, rainbowerr.InvalidData("svg codec: malformed length marker")
	}
	if wantLen == 0 {
		return []byte{}, nil
	}

	matches := svgWidthRe.FindAllStringSubmatch(s, -1)
	buckets := make([]int, 0, len(matches))
	for _, m := range matches {
		width, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, rainbowerr.InvalidData("svg codec: malformed width")
		}
		bucket := (width - svgBase) / svgStep
		if bucket < 0 || bucket > 15 {
			return nil, rainbowerr.InvalidData("svg codec: width out of range")
		}
		buckets = append(buckets, bucket)
	}

	bits := bitsFromBuckets(buckets, svgUnitBits)
	data := bytesFromBits(bits)
	if len(data) < wantLen {
		return nil, rainbowerr.InvalidData("svg codec: insufficient rects for declared length")
	}
	return data[:wantLen], nil
}
