// Package framing assembles and parses the HTTP/1.1 packets that
// carry steganographically-encoded chunks between two endpoints. It
// owns chunking, per-chunk PacketInfo cookies, request/response
// assembly, and length-targeted padding.
package framing

import (
	"encoding/base64"
	"encoding/json"

	"github.com/faanross/rainbow/internal/rainbowerr"
)

// ChunkSize is the maximum payload bytes carried by a single packet.
const ChunkSize = 1024

// PacketInfo is the per-chunk metadata carried in a cookie: version,
// a timestamp, this chunk's index, the total chunk count, and this
// chunk's original (pre-encode) byte length.
type PacketInfo struct {
	Version uint8 `json:"version"`
	Timestamp int64 `json:"timestamp"`
	Index uint32 `json:"index"`
	Total uint32 `json:"total"`
	Length uint32 `json:"length"`
}

// Valid enforces PacketInfo invariants.
func (p PacketInfo) Valid() bool {
	return p.Index < p.Total && p.Length <= ChunkSize && p.Total >= 1
}

// EncodeCookie serializes p as canonical JSON, then standard base64.
func (p PacketInfo) EncodeCookie() (string, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return "", rainbowerr.WrapJSON(err)
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// DecodePacketInfo reverses EncodeCookie, accepting either standard or
// URL-safe base64, and rejects a result that fails PacketInfo's
// invariants.
func DecodePacketInfo(value string) (PacketInfo, error) {
	raw, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		raw, err = base64.URLEncoding.DecodeString(value)
		if err != nil {
			return PacketInfo{}, rainbowerr.WrapBase64(err)
		}
	}
	var p PacketInfo
	if err := json.Unmarshal(raw, &p); err != nil {
		return PacketInfo{}, rainbowerr.WrapJSON(err)
	}
	if !p.Valid() {
		return PacketInfo{}, rainbowerr.InvalidData("packetinfo: invariant violated")
	}
	return p, nil
}
