package app

import (
	"net/url"
	"strings"
)

// originAllowed checks a browser Origin header against the configured
// allow-list. Patterns address the origin's host[:port] and come in three
// forms:
//
//	app.example.com   exact host
//	*.example.com     the apex and any subdomain
//	localhost:*       any port on that host
//
// Matching is case-insensitive. An origin that does not parse as a URL is
// compared as-is, so bare hosts in the header still match exact patterns.
func originAllowed(patterns []string, origin string) bool {
	host := strings.ToLower(originHost(origin))
	if host == "" {
		return false
	}

	for _, pattern := range patterns {
		pattern = strings.ToLower(strings.TrimSpace(pattern))
		switch {
		case pattern == "":
			continue
		case pattern == host:
			return true
		case strings.HasPrefix(pattern, "*."):
			apex := pattern[2:]
			if host == apex || strings.HasSuffix(host, "."+apex) {
				return true
			}
		case strings.HasSuffix(pattern, ":*"):
			bare := pattern[:len(pattern)-2]
			if host == bare || strings.HasPrefix(host, bare+":") {
				return true
			}
		}
	}
	return false
}

// originHost extracts "host[:port]" from an Origin header value.
func originHost(origin string) string {
	origin = strings.TrimSpace(origin)
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return origin
	}
	return u.Host
}
