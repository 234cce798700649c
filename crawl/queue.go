// Package crawl — BFS frontier with deduplication.
// Maintains a seen set so no URL is processed twice.
package crawl

// Frontier is a BFS work queue with URL deduplication.
type Frontier struct {
	items []string
	seen  map[string]bool
	idx   int // current read position
}

// NewFrontier creates an empty Frontier.
func NewFrontier() *Frontier {
	return &Frontier{
		seen: make(map[string]bool),
	}
}

// Push enqueues a URL if it hasn't been seen before.
func (f *Frontier) Push(url string) {
	if f.seen[url] {
		return
	}
	f.seen[url] = true
	f.items = append(f.items, url)
}

// HasPending returns true if there are unprocessed URLs.
func (f *Frontier) HasPending() bool {
	return f.idx < len(f.items)
}

// Pop returns the next unprocessed URL and advances the read position.
func (f *Frontier) Pop() string {
	url := f.items[f.idx]
	f.idx++
	return url
}

// Seen returns the total number of unique URLs encountered.
func (f *Frontier) Seen() int {
	return len(f.seen)
}

// Discovered returns all discovered URLs in BFS order.
func (f *Frontier) Discovered() []string {
	return f.items
}
