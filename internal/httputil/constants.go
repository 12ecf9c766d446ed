package httputil

import "github.com/faanross/rainbow/internal/rng"

// CookieNames is the well-known set a packet's PacketInfo cookie is
// drawn from. Exactly one cookie among potentially several must carry
// one of these names with a PacketInfo-decodable value.
var CookieNames = []string{
	"session_id",
	"sid",
	"trk",
	"_pid",
	"visitor",
}

// GETPaths and POSTPaths are the path pools requests are drawn from.
var GETPaths = []string{
	"/",
	"/index.html",
	"/assets/app.css",
	"/assets/bundle.js",
	"/api/v1/status",
	"/api/v1/users/me",
	"/images/logo.png",
	"/favicon.ico",
	"/static/fonts/main.woff2",
	"/feed.xml",
}

var POSTPaths = []string{
	"/api/v1/events",
	"/api/v1/telemetry",
	"/api/v1/upload",
	"/submit",
	"/api/v1/log",
	"/checkout",
}

// StatusEntry is one row of the weighted status-code table.
type StatusEntry struct {
	Code int
	Reason string
	Weight float64
}

// StatusTable is the weighted draw table; weights sum to <= 1.0 and 200
// is the fallback default when the cumulative walk exhausts the table
// without crossing the sampled point.
var StatusTable = []StatusEntry{
	{200, "OK", 0.78},
	{201, "Created", 0.03},
	{204, "No Content", 0.03},
	{301, "Moved Permanently", 0.02},
	{302, "Found", 0.03},
	{304, "Not Modified", 0.05},
	{404, "Not Found", 0.03},
	{500, "Internal Server Error", 0.01},
}

// DrawStatusCode walks the table accumulating probability, and returns
// the first code whose cumulative weight exceeds a uniform [0,1)
// sample; 200 otherwise.
func DrawStatusCode(src rng.Source) int {
	sample := rng.Or(src).Float64()
	var cumulative float64
	for _, e := range StatusTable {
		cumulative += e.Weight
		if sample < cumulative {
			return e.Code
		}
	}
	return 200
}

// AcceptHeaderForPath derives the Accept header value from a request
// path's suffix/prefix.
func AcceptHeaderForPath(path string) string {
	switch {
	case hasSuffix(path, ".css"):
		return "text/css,*/*;q=0.1"
	case hasSuffix(path, ".js"):
		return "application/javascript,*/*;q=0.1"
	case hasSuffix(path, ".png"):
		return "image/png,image/*;q=0.8,*/*;q=0.5"
	case hasPrefix(path, "/api/"):
		return "application/json"
	default:
		return "*/*"
	}
}

func hasSuffix(s, suf string) bool {
	return len(s) >= len(suf) && s[len(s)-len(suf):] == suf
}

func hasPrefix(s, pre string) bool {
	return len(s) >= len(pre) && s[:len(pre)] == pre
}
