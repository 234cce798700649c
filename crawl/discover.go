// Package crawl provides URL discovery for --all mode.
// It discovers internal pages via sitemap.xml and link extraction,
// keeping crawling logic separate from the conversion pipeline.
package crawl

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"pkt.systems/pslog"

	"github.com/gaurav-prasanna/markpipe/core"
)

// maxPages bounds BFS crawling to avoid runaway crawls.
const maxPages = 100

// sitemapURL holds a URL from a sitemap.xml.
type sitemapURL struct {
	Loc string `xml:"loc"`
}

// sitemapIndex is the root element of a sitemap.xml.
type sitemapIndex struct {
	URLs []sitemapURL `xml:"url"`
}

// DiscoverAll finds all internal URLs to process starting from baseURL.
// It first tries sitemap.xml, then falls back to link crawling.
// The baseURL itself is always included.
func DiscoverAll(ctx context.Context, baseURL string, fetcher core.Fetcher) ([]string, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	domain := parsed.Host
	logger := pslog.Ctx(ctx)

	// Try sitemap first.
	sitemap := fmt.Sprintf("%s://%s/sitemap.xml", parsed.Scheme, domain)
	urls, err := discoverFromSitemap(ctx, sitemap, domain)
	if err == nil && len(urls) > 0 {
		logger.Info("discovered pages from sitemap", "count", len(urls))
		return urls, nil
	}
	logger.Info("no usable sitemap, falling back to link crawl", "base", baseURL)

	// Fall back to BFS link crawling.
	return discoverFromLinks(ctx, baseURL, domain, fetcher)
}

// discoverFromSitemap fetches and parses sitemap.xml for internal URLs.
func discoverFromSitemap(ctx context.Context, sitemapURL string, domain string) ([]string, error) {
	client := &http.Client{Timeout: 15 * time.Second}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sitemapURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sitemap returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var sitemap sitemapIndex
	if err := xml.Unmarshal(body, &sitemap); err != nil {
		return nil, err
	}

	var urls []string
	for _, u := range sitemap.URLs {
		if IsCrawlable(u.Loc, domain) {
			urls = append(urls, NormalizeURL(u.Loc))
		}
	}
	return urls, nil
}

// discoverFromLinks performs BFS crawling to find internal links.
func discoverFromLinks(ctx context.Context, startURL string, domain string, fetcher core.Fetcher) ([]string, error) {
	logger := pslog.Ctx(ctx)
	frontier := NewFrontier()
	frontier.Push(NormalizeURL(startURL))

	for frontier.HasPending() && frontier.Seen() < maxPages {
		currentURL := frontier.Pop()

		result, err := fetcher.Fetch(ctx, currentURL)
		if err != nil {
			// Don't let one failed page block the crawl.
			logger.Warn("skipping page", "url", currentURL, "err", err)
			continue
		}

		links, err := extractLinks(result.HTML, currentURL)
		if err != nil {
			logger.Warn("skipping unparsable page", "url", currentURL, "err", err)
			continue
		}

		for _, link := range links {
			if IsCrawlable(link, domain) {
				frontier.Push(NormalizeURL(link))
			}
		}
	}

	return frontier.Discovered(), nil
}

// extractLinks extracts all href values from <a> tags, resolving relative URLs.
func extractLinks(html string, baseURL string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	base, _ := url.Parse(baseURL)
	var links []string

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, exists := s.Attr("href")
		if !exists || href == "" {
			return
		}

		if resolved := resolveURL(href, base); resolved != "" {
			links = append(links, resolved)
		}
	})

	return links, nil
}

// resolveURL resolves a potentially relative URL against a base.
func resolveURL(href string, base *url.URL) string {
	// Skip mailto, javascript, etc.
	if strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "tel:") || strings.HasPrefix(href, "#") {
		return ""
	}

	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}

	resolved := base.ResolveReference(parsed)
	// Strip fragments.
	resolved.Fragment = ""
	return resolved.String()
}
