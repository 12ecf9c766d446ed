package codec

import (
	"encoding/binary"

	"github.com/faanross/rainbow/internal/rainbowerr"
)

// wavHeaderSize is the fixed 44-byte canonical RIFF/WAVE header size:
// "RIFF"(4)+size(4)+"WAVE"(4)+"fmt "(4)+16(4)+fmtchunk(16)+"data"(4)+size(4).
const wavHeaderSize = 44

const (
	wavSampleRate = 44100
	wavBitsPerSample = 16
	wavChannels = 1
)

// WAVCodec wraps the payload verbatim as the "data" chunk of a minimal
// mono 16-bit PCM WAV container. No WAV library appears anywhere in
// the retrieved pack (see DESIGN.md); the 44-byte canonical header is
// simple enough to hand-roll with encoding/binary.
type WAVCodec struct{}

func NewWAVCodec() *WAVCodec { return &WAVCodec{} }

func (c *WAVCodec) Name() string { return "wav-audio" }
func (c *WAVCodec) MIME() string { return "audio/wav" }

func (c *WAVCodec) Encode(plaintext []byte) ([]byte, error) {
	dataLen := len(plaintext)
	byteRate := wavSampleRate * wavChannels * wavBitsPerSample / 8
	blockAlign := wavChannels * wavBitsPerSample / 8

	buf := make([]byte, wavHeaderSize+dataLen)
	copy(buf[0:4], "RIFF")
	binary.LittleEndian.PutUint32(buf[4:8], uint32(36+dataLen))
	copy(buf[8:12], "WAVE")
	copy(buf[12:16], "fmt ")
	binary.LittleEndian.PutUint32(buf[16:20], 16) // fmt chunk size
	binary.LittleEndian.PutUint16(buf[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(buf[22:24], uint16(wavChannels))
	binary.LittleEndian.PutUint32(buf[24:28], uint32(wavSampleRate))
	binary.LittleEndian.PutUint32(buf[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(buf[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(buf[34:36], uint16(wavBitsPerSample))
	copy(buf[36:40], "data")
	binary.LittleEndian.PutUint32(buf[40:44], uint32(dataLen))
	copy(buf[wavHeaderSize:], plaintext)

	return buf, nil
}

func (c *WAVCodec) Decode(artifact []byte) ([]byte, error) {
	if len(artifact) < wavHeaderSize {
		return nil, rainbowerr.InvalidData("wav codec: artifact shorter than header")
	}
	if string(artifact[0:4]) != "RIFF" || string(artifact[8:12]) != "WAVE" {
		return nil, rainbowerr.InvalidData("wav codec: missing RIFF/WAVE magic")
	}
	if string(artifact[36:40]) != "data" {
		return nil, rainbowerr.InvalidData("wav codec: missing data chunk")
	}
	dataLen := binary.LittleEndian.Uint32(artifact[40:44])
	if wavHeaderSize+int(dataLen) > len(artifact) {
		return nil, rainbowerr.InvalidData("wav codec: declared data length exceeds artifact size")
	}
	out := make([]byte, dataLen)
	copy(out, artifact[wavHeaderSize:wavHeaderSize+int(dataLen)])
	return out, nil
}
