package useragent

import "strings"

// Client classifies what the root route should serve for a request.
type Client int

const (
	// ClientModern gets the React bundle.
	ClientModern Client = iota
	// ClientLegacy gets the server-rendered fallback page.
	ClientLegacy
	// ClientBot gets the fallback too, crawlers cannot run the SPA.
	ClientBot
)

func (c Client) String() string {
	switch c {
	case ClientModern:
		return "modern"
	case ClientLegacy:
		return "legacy"
	case ClientBot:
		return "bot"
	default:
		return "unknown"
	}
}

// WantsFallback reports whether the reduced server-rendered page should be
// served instead of the SPA bundle.
func (c Client) WantsFallback() bool {
	return c != ClientModern
}

var botMarkers = []string{
	"bot", "crawler", "spider", "curl/", "wget/", "slurp", "facebookexternalhit",
}

var legacyMarkers = []string{
	"msie", "trident/", "opera mini", "ucbrowser", "lynx", "w3m", "blackberry",
}

// Sniff applies a best-effort heuristic over the User-Agent header.
// An empty header is treated as a bot: real browsers always send one.
func Sniff(userAgent string) Client {
	ua := strings.ToLower(strings.TrimSpace(userAgent))
	if ua == "" {
		return ClientBot
	}

	for _, marker := range botMarkers {
		if strings.Contains(ua, marker) {
			return ClientBot
		}
	}

	for _, marker := range legacyMarkers {
		if strings.Contains(ua, marker) {
			return ClientLegacy
		}
	}

	return ClientModern
}
