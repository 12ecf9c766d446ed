package codec

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/faanross/rainbow/internal/rainbowerr"
	"github.com/faanross/rainbow/internal/rng"
)

const gridUnitBits = 4 // 16 buckets -> track counts 1..16

var gridLenRe = regexp.MustCompile(`/\* len:(\d+) \*/`)
var gridRepeatRe = regexp.MustCompile(`repeat\((\d+),\s*1fr\)`)

// GridCodec embeds bit groups as CSS grid-template-columns track
// counts, one declaration per group.
type GridCodec struct {
	src rng.Source
}

func NewGridCodec(src rng.Source) *GridCodec { return &GridCodec{src: src} }

func (c *GridCodec) Name() string { return "grid" }
func (c *GridCodec) MIME() string { return "text/css" }

func (c *GridCodec) Encode(plaintext []byte) ([]byte, error) {
	bits := bitsFromBytes(plaintext)
	buckets := groupIntoBuckets(bits, gridUnitBits)

	var b strings.Builder
	fmt.Fprintf(&b, "/* len:%d */\n", len(plaintext))
	for i, bucket := range buckets {
		tracks := bucket + 1 // 1..16
		fmt.Fprintf(&b, ".%s { display: grid; grid-template-columns: repeat(%d, 1fr); gap: %dpx; }\n",
			fmt.Sprintf("cell-%d", i), tracks, 4+i%8)
	}
	return []byte(b.String()), nil
}

func (c *GridCodec) Decode(artifact []byte) ([]byte, error) {
	s := string(artifact)
	lenMatch := gridLenRe.FindStringSubmatch(s)
	if lenMatch == nil {
		return nil, rainbowerr.InvalidData("grid codec: length marker not found")
	}
	wantLen, err := strconv.Atoi(lenMatch[1])
	if err != nil {
		return nil, rainbowerr.InvalidData("grid codec: malformed length marker")
	}
	if wantLen == 0 {
		return []byte{}, nil
	}

	matches := gridRepeatRe.FindAllStringSubmatch(s, -1)
	buckets := make([]int, 0, len(matches))
	for _, m := range matches {
		tracks, err := strconv.Atoi(m[1])
		if err != nil || tracks < 1 || tracks > 16 {
			return nil, rainbowerr.InvalidData("grid codec: track count out of range")
		}
		buckets = append(buckets, tracks-1)
	}

	bits := bitsFromBuckets(buckets, gridUnitBits)
	data := bytesFromBits(bits)
	if len(data) < wantLen {
		return nil, rainbowerr.InvalidData("grid codec: insufficient declarations for declared length")
	}
	return data[:wantLen], nil
}
