package crawl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSameDomain(t *testing.T) {
	assert.True(t, IsSameDomain("https://example.com/docs", "example.com"))
	assert.False(t, IsSameDomain("https://other.com/docs", "example.com"))
	assert.False(t, IsSameDomain("https://sub.example.com/", "example.com"))
	assert.False(t, IsSameDomain("::not a url::", "example.com"))
}

func TestIsStaticAsset(t *testing.T) {
	assert.True(t, IsStaticAsset("https://example.com/logo.png"))
	assert.True(t, IsStaticAsset("https://example.com/style.CSS"))
	assert.True(t, IsStaticAsset("https://example.com/feed.xml"))
	assert.False(t, IsStaticAsset("https://example.com/guide"))
	assert.False(t, IsStaticAsset("https://example.com/guide.html"))
}

func TestNormalizeURL(t *testing.T) {
	assert.Equal(t, "https://example.com/docs", NormalizeURL("https://example.com/docs/"))
	assert.Equal(t, "https://example.com/docs", NormalizeURL("https://example.com/docs#intro"))
	assert.Equal(t, "https://example.com/", NormalizeURL("https://example.com/"))
	assert.Equal(t, "::bad::", NormalizeURL("::bad::"))
}

func TestIsCrawlable(t *testing.T) {
	assert.True(t, IsCrawlable("https://example.com/docs", "example.com"))
	assert.False(t, IsCrawlable("https://example.com/logo.svg", "example.com"))
	assert.False(t, IsCrawlable("https://other.com/docs", "example.com"))
	assert.False(t, IsCrawlable("ftp://example.com/docs", "example.com"))
}

func TestFrontierDeduplicates(t *testing.T) {
	f := NewFrontier()
	f.Push("https://example.com/a")
	f.Push("https://example.com/b")
	f.Push("https://example.com/a")

	assert.Equal(t, 2, f.Seen())
	assert.True(t, f.HasPending())
	assert.Equal(t, "https://example.com/a", f.Pop())
	assert.Equal(t, "https://example.com/b", f.Pop())
	assert.False(t, f.HasPending())
	assert.Equal(t, []string{"https://example.com/a", "https://example.com/b"}, f.Discovered())
}
