package crawl

import (
	"net/url"
	"path"
	"strings"
)

// assetExtensions lists file extensions that never hold convertible page
// content. Links ending in one of these are dropped before they reach the
// frontier.
var assetExtensions = map[string]struct{}{
	".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}, ".svg": {},
	".webp": {}, ".ico": {}, ".bmp": {},
	".css": {}, ".js": {}, ".mjs": {}, ".map": {},
	".woff": {}, ".woff2": {}, ".ttf": {}, ".eot": {},
	".mp4": {}, ".webm": {}, ".mp3": {}, ".wav": {},
	".zip": {}, ".tar": {}, ".gz": {}, ".tgz": {},
	".pdf": {}, ".doc": {}, ".docx": {}, ".xls": {}, ".xlsx": {},
	".json": {}, ".xml": {}, ".rss": {}, ".atom": {},
}

// IsSameDomain reports whether rawURL is hosted on the given domain.
// Unparseable URLs are treated as foreign.
func IsSameDomain(rawURL, domain string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return u.Host == domain
}

// IsStaticAsset reports whether rawURL points at a static asset such as an
// image, stylesheet, or archive.
func IsStaticAsset(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	_, ok := assetExtensions[strings.ToLower(path.Ext(u.Path))]
	return ok
}

// NormalizeURL canonicalizes a URL for deduplication: the fragment is
// dropped and a trailing slash is trimmed (the bare root path stays "/").
// Invalid URLs come back unchanged.
func NormalizeURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	u.Fragment = ""
	if u.Path != "/" {
		u.Path = strings.TrimSuffix(u.Path, "/")
	}
	return u.String()
}

// IsCrawlable combines the frontier admission checks: same domain, an http
// or https scheme, and not a static asset.
func IsCrawlable(rawURL, domain string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host == domain && !IsStaticAsset(rawURL)
}
