package codec

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"math"

	"github.com/faanross/rainbow/internal/rainbowerr"
	"github.com/faanross/rainbow/internal/rng"
)

const lsbHeaderBits = 32

// LSBCodec maps bytes into the least-significant k bits of the RGB
// channels of a PNG image, row-major, channel-first, R->G->B->next
// pixel. The cover image is owned by the codec instance
// and cloned into a mutable buffer on each encode; callers never
// observe aliasing.
type LSBCodec struct {
	bitDepth int
	cover image.Image // may be nil: a fresh cover is generated per encode
	src rng.Source
}

// NewLSBCodec constructs a codec with bit-depth k in [1,8]. cover may
// be nil, in which case encode allocates a uniformly-random RGBA image
// just large enough for the payload.
func NewLSBCodec(bitDepth int, cover image.Image, src rng.Source) (*LSBCodec, error) {
	if bitDepth < 1 || bitDepth > 8 {
		return nil, rainbowerr.InvalidData("lsb codec: bit depth must be in [1,8]")
	}
	return &LSBCodec{bitDepth: bitDepth, cover: cover, src: src}, nil
}

func (c *LSBCodec) Name() string { return "lsb" }
func (c *LSBCodec) MIME() string { return "image/png" }

// requiredPixels computes the minimum pixel count for len bytes at
// bit-depth k, including a safety margin.
func requiredPixels(payloadLen, bitDepth int) int {
	totalBits := lsbHeaderBits + 8*payloadLen
	bitsPerPixel := 3 * bitDepth
	minPixels := int(math.Ceil(float64(totalBits) / float64(bitsPerPixel)))
	if bitDepth == 1 {
		return minPixels + 100
	}
	return minPixels * 2
}

func (c *LSBCodec) Encode(plaintext []byte) ([]byte, error) {
	minPixels := requiredPixels(len(plaintext), c.bitDepth)

	var canvas *image.RGBA
	if c.cover != nil {
		bounds := c.cover.Bounds()
		w, h := bounds.Dx(), bounds.Dy()
		if w*h < minPixels {
			return nil, rainbowerr.InvalidData("lsb codec: supplied cover image too small for payload")
		}
		canvas = image.NewRGBA(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				canvas.Set(x, y, c.cover.At(bounds.Min.X+x, bounds.Min.Y+y))
			}
		}
	} else {
		w := int(math.Ceil(math.Sqrt(float64(minPixels))))
		if w < 1 {
			w = 1
		}
		h := int(math.Ceil(float64(minPixels) / float64(w)))
		canvas = image.NewRGBA(image.Rect(0, 0, w, h))
		r := rng.Or(c.src)
		px := make([]byte, 3)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				r.Read(px)
				canvas.Set(x, y, color.RGBA{R: px[0], G: px[1], B: px[2], A: 255})
			}
		}
	}

	bounds := canvas.Bounds()
	w := bounds.Dx()

	header := make([]byte, 4)
	binary.LittleEndian.PutUint32(header, uint32(len(plaintext)))
	bits := bitsFromBytes(header)
	bits = append(bits, bitsFromBytes(plaintext)...)

	totalPixels := bounds.Dx() * bounds.Dy()
	if (len(bits)+3*c.bitDepth-1)/(3*c.bitDepth) > totalPixels {
		return nil, rainbowerr.InvalidData("lsb codec: payload exceeds image capacity")
	}

	for pos, bit := range bits {
		pixelIdx := pos / (3 * c.bitDepth)
		rem := pos % (3 * c.bitDepth)
		channel := rem / c.bitDepth
		slot := rem % c.bitDepth

		px := pixelIdx % w
		py := pixelIdx / w
		rr, gg, bb, aa := canvas.At(px, py).RGBA()
		rgba := color.RGBA{R: uint8(rr >> 8), G: uint8(gg >> 8), B: uint8(bb >> 8), A: uint8(aa >> 8)}

		switch channel {
		case 0:
			rgba.R = setChannelBit(rgba.R, c.bitDepth, slot, bit)
		case 1:
			rgba.G = setChannelBit(rgba.G, c.bitDepth, slot, bit)
		case 2:
			rgba.B = setChannelBit(rgba.B, c.bitDepth, slot, bit)
		}
		canvas.Set(px, py, rgba)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, rainbowerr.Wrap(rainbowerr.KindEncodeFailed, "lsb codec: png encode failed", err)
	}
	return buf.Bytes(), nil
}

func (c *LSBCodec) Decode(artifact []byte) ([]byte, error) {
	img, err := png.Decode(bytes.NewReader(artifact))
	if err != nil {
		return nil, rainbowerr.Wrap(rainbowerr.KindDecodeFailed, "lsb codec: png decode failed", err)
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	totalPixels := w * h
	totalBitCapacity := totalPixels * 3 * c.bitDepth

	if totalBitCapacity < lsbHeaderBits {
		return nil, rainbowerr.InvalidData("lsb codec: image too small for length header")
	}

	readBit := func(pos int) (bool, bool) {
		pixelIdx := pos / (3 * c.bitDepth)
		if pixelIdx >= totalPixels {
			return false, false
		}
		rem := pos % (3 * c.bitDepth)
		channel := rem / c.bitDepth
		slot := rem % c.bitDepth

		px := pixelIdx % w
		py := pixelIdx / w
		rr, gg, bb, _ := img.At(bounds.Min.X+px, bounds.Min.Y+py).RGBA()
		var v uint8
		switch channel {
		case 0:
			v = uint8(rr >> 8)
		case 1:
			v = uint8(gg >> 8)
		case 2:
			v = uint8(bb >> 8)
		}
		return getChannelBit(v, c.bitDepth, slot), true
	}

	headerBits := make([]bool, lsbHeaderBits)
	for i := 0; i < lsbHeaderBits; i++ {
		bit, ok := readBit(i)
		if !ok {
			return nil, rainbowerr.InvalidData("lsb codec: cursor ran past final pixel reading header")
		}
		headerBits[i] = bit
	}
	length := binary.LittleEndian.Uint32(bytesFromBits(headerBits))

	maxPayload := (totalBitCapacity - lsbHeaderBits) / 8
	if int(length) > maxPayload {
		return nil, rainbowerr.InvalidData("lsb codec: declared length exceeds image capacity")
	}

	payloadBits := make([]bool, int(length)*8)
	for i := range payloadBits {
		bit, ok := readBit(lsbHeaderBits + i)
		if !ok {
			return nil, rainbowerr.InvalidData("lsb codec: cursor ran past final pixel row")
		}
		payloadBits[i] = bit
	}
	return bytesFromBits(payloadBits), nil
}

// setChannelBit writes bit into the slot-th most-significant position
// of the low bitDepth bits of value, leaving the remaining high bits
// untouched.
func setChannelBit(value uint8, bitDepth, slot int, bit bool) uint8 {
	shift := uint(bitDepth - 1 - slot)
	mask := uint8(1) << shift
	if bit {
		return value | mask
	}
	return value &^ mask
}

func getChannelBit(value uint8, bitDepth, slot int) bool {
	shift := uint(bitDepth - 1 - slot)
	return (value>>shift)&1 == 1
}
