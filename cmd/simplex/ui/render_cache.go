// Package ui provides a cached glamour renderer for certificate markdown.
package ui

import (
	"fmt"
	"hash/fnv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// MarkdownRenderer renders markdown through glamour, caching by content and
// width. Renderers are rebuilt only when the width changes.
type MarkdownRenderer struct {
	mu       sync.Mutex
	style    string
	width    int
	renderer *glamour.TermRenderer
	cache    map[uint64]string
	maxSize  int
}

// NewMarkdownRenderer creates a renderer using a glamour style name
// ("dark", "light", "notty", ...). maxSize bounds the cache.
func NewMarkdownRenderer(style string, maxSize int) *MarkdownRenderer {
	if maxSize <= 0 {
		maxSize = 32
	}
	return &MarkdownRenderer{
		style:   style,
		cache:   make(map[uint64]string),
		maxSize: maxSize,
	}
}

// ComputeKey hashes the inputs that determine a rendering.
func ComputeKey(content string, width int) uint64 {
	h := fnv.New64a()
	h.Write([]byte(content))
	fmt.Fprintf(h, "\x00%d", width)
	return h.Sum64()
}

// Render renders md wrapped at width. On a glamour failure the raw markdown
// is returned with the error.
func (r *MarkdownRenderer) Render(md string, width int) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := ComputeKey(md, width)
	if out, ok := r.cache[key]; ok {
		return out, nil
	}

	if r.renderer == nil || r.width != width {
		tr, err := glamour.NewTermRenderer(
			glamour.WithStylePath(r.style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md, fmt.Errorf("failed to create markdown renderer: %w", err)
		}
		r.renderer = tr
		r.width = width
	}

	out, err := r.renderer.Render(md)
	if err != nil {
		return md, fmt.Errorf("failed to render markdown: %w", err)
	}
	out = strings.TrimRight(out, "\n") + "\n"

	if len(r.cache) >= r.maxSize {
		r.cache = make(map[uint64]string)
	}
	r.cache[key] = out
	return out, nil
}

// Len returns the number of cached renderings.
func (r *MarkdownRenderer) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.cache)
}

// Clear empties the cache.
func (r *MarkdownRenderer) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache = make(map[uint64]string)
}
