package httputil

import "github.com/faanross/rainbow/internal/rng"

var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36",
	"Mozilla/5.0 (iPhone; CPU iPhone OS 17_4 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Mobile/15E148 Safari/604.1",
}

var acceptLanguages = []string{
	"en-US,en;q=0.9",
	"en-GB,en;q=0.8",
	"de-DE,de;q=0.9,en;q=0.7",
	"fr-FR,fr;q=0.9,en-US;q=0.6",
}

var servers = []string{
	"nginx/1.25.4",
	"Apache/2.4.58 (Unix)",
	"cloudflare",
	"gunicorn/21.2.0",
}

// GenerateRealisticHeaders returns a deterministic-core + optional
// header set: requests get User-Agent + Accept-Language +
// Accept-Encoding; responses get Server + X-Frame-Options +
// X-Content-Type-Options. A handful of optional headers are each
// included independently with probability 0.5.
func GenerateRealisticHeaders(isRequest bool, src rng.Source) map[string]string {
	r := rng.Or(src)
	h := make(map[string]string)

	if isRequest {
		h["User-Agent"] = userAgents[r.IntN(len(userAgents))]
		h["Accept-Language"] = acceptLanguages[r.IntN(len(acceptLanguages))]
		h["Accept-Encoding"] = "gzip, deflate, br"

		optional := map[string]string{
			"Connection": "keep-alive",
			"Cache-Control": "no-cache",
			"DNT": "1",
			"Sec-Fetch-Site": "same-origin",
			"Sec-Fetch-Mode": "navigate",
			"Upgrade-Insecure-Requests": "1",
		}
		for k, v := range optional {
			if r.Float64() < 0.5 {
				h[k] = v
			}
		}
		return h
	}

	h["Server"] = servers[r.IntN(len(servers))]
	h["X-Frame-Options"] = "SAMEORIGIN"
	h["X-Content-Type-Options"] = "nosniff"

	optional := map[string]string{
		"X-XSS-Protection": "1; mode=block",
		"Referrer-Policy": "strict-origin-when-cross-origin",
		"Cache-Control": "public, max-age=3600",
		"Vary": "Accept-Encoding",
		"Strict-Transport-Security": "max-age=31536000; includeSubDomains",
	}
	for k, v := range optional {
		if r.Float64() < 0.5 {
			h[k] = v
		}
	}
	return h
}
