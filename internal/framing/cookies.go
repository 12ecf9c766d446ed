package framing

import (
	"strings"

	"github.com/google/uuid"

	"github.com/faanross/rainbow/internal/httputil"
	"github.com/faanross/rainbow/internal/rng"
)

// cookiePair is one name=value entry parsed from a Cookie/Set-Cookie
// header.
type cookiePair struct {
	Name string
	Value string
}

// buildCookies assembles the packet's full cookie set: one
// well-known-named cookie carrying pi's base64 JSON, plus noise
// cookies (sid as a UUID v4, and occasional _ga/_gid/theme).
func buildCookies(pi PacketInfo, src rng.Source) ([]cookiePair, error) {
	r := rng.Or(src)

	infoValue, err := pi.EncodeCookie()
	if err != nil {
		return nil, err
	}
	infoName := httputil.CookieNames[r.IntN(len(httputil.CookieNames))]

	pairs := []cookiePair{{Name: infoName, Value: infoValue}}
	pairs = append(pairs, cookiePair{Name: "sid", Value: uuid.New().String()})

	if r.Float64() < 0.3 {
		pairs = append(pairs, cookiePair{Name: "_ga", Value: "GA1.2." + uuid.New().String()[:8]})
	}
	if r.Float64() < 0.3 {
		pairs = append(pairs, cookiePair{Name: "_gid", Value: "GA1.2." + uuid.New().String()[:8]})
	}
	if r.Float64() < 0.3 {
		pairs = append(pairs, cookiePair{Name: "theme", Value: "light"})
	}
	return pairs, nil
}

// renderCookieHeader joins pairs into the single-line "Cookie:"
// value a request carries.
func renderCookieHeader(pairs []cookiePair) string {
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = p.Name + "=" + p.Value
	}
	return strings.Join(parts, "; ")
}

// renderSetCookieLines renders one "Set-Cookie: name=value" header
// line per pair, the canonical response shape.
func renderSetCookieLines(pairs []cookiePair) []string {
	lines := make([]string, len(pairs))
	for i, p := range pairs {
		lines[i] = "Set-Cookie: " + p.Name + "=" + p.Value
	}
	return lines
}

// parseCookieValue splits a Cookie or Set-Cookie header value on ';'
// and trims whitespace around each name=value pair.
func parseCookieValue(value string) []cookiePair {
	raw := strings.Split(value, ";")
	pairs := make([]cookiePair, 0, len(raw))
	for _, entry := range raw {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		eq := strings.IndexByte(entry, '=')
		if eq == -1 {
			continue
		}
		pairs = append(pairs, cookiePair{
			Name: strings.TrimSpace(entry[:eq]),
			Value: strings.TrimSpace(entry[eq+1:]),
		})
	}
	return pairs
}

// isWellKnownCookieName reports whether name is one of the fixed
// cookie names the framing layer uses to carry PacketInfo.
func isWellKnownCookieName(name string) bool {
	for _, n := range httputil.CookieNames {
		if n == name {
			return true
		}
	}
	return false
}

// extractPacketInfo scans header lines for a Cookie or Set-Cookie
// header, and returns the first well-known-named cookie whose value
// decodes into a valid PacketInfo.
func extractPacketInfo(headerLines []string) (PacketInfo, bool) {
	for _, line := range headerLines {
		var value string
		switch {
		case hasHeaderName(line, "Cookie"):
			value = headerValue(line)
		case hasHeaderName(line, "Set-Cookie"):
			value = headerValue(line)
		default:
			continue
		}
		for _, pair := range parseCookieValue(value) {
			if !isWellKnownCookieName(pair.Name) {
				continue
			}
			if pi, err := DecodePacketInfo(pair.Value); err == nil {
				return pi, true
			}
		}
	}
	return PacketInfo{}, false
}

func hasHeaderName(line, name string) bool {
	return len(line) > len(name)+1 &&
		strings.EqualFold(line[:len(name)], name) &&
		line[len(name)] == ':'
}

func headerValue(line string) string {
	idx := strings.IndexByte(line, ':')
	if idx == -1 {
		return ""
	}
	return strings.TrimSpace(line[idx+1:])
}
