// Package scancache memoizes document scans by path and modification marker.
// A snapshot is replaced wholesale on every rescan and never partially
// updated, so readers always observe a consistent span list.
package scancache

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/walteh/golivehtml/pkg/document"
	"github.com/walteh/golivehtml/pkg/htmltok"
	"github.com/walteh/golivehtml/pkg/scanner"
	"gitlab.com/tozd/go/errors"
)

// TokenizeFunc produces the node event stream for a document's text.
type TokenizeFunc func(ctx context.Context, text string) []htmltok.Node

// snapshot is one cached scan result.
type snapshot struct {
	modTime time.Time
	spans   []scanner.TagSpan
}

// Cache maps document paths to their last scan. There is no eviction: the
// cache is scoped to an editor session and callers bound memory by bounding
// how many distinct documents they touch. All methods are safe for
// concurrent use.
type Cache struct {
	mu       sync.Mutex
	tokenize TokenizeFunc
	entries  map[string]snapshot
}

// Option configures a Cache.
type Option func(*Cache)

// WithTokenizer replaces the node stream producer. Mostly useful for tests
// that need to observe or fake tokenization.
func WithTokenizer(fn TokenizeFunc) Option {
	return func(c *Cache) {
		c.tokenize = fn
	}
}

// New creates an empty cache backed by the htmltok tokenizer.
func New(opts ...Option) *Cache {
	c := &Cache{
		tokenize: htmltok.Tokenize,
		entries:  make(map[string]snapshot),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ScanDocument returns the tag spans for doc, rescanning only when the
// document's modification marker differs from the cached one. Equality is
// exact: a marker moving backward forces a rescan just like one moving
// forward. The returned slice is the cached snapshot; callers must treat it
// as read-only.
func (c *Cache) ScanDocument(ctx context.Context, doc document.Document) ([]scanner.TagSpan, error) {
	modTime, err := doc.ModTime()
	if err != nil {
		return nil, errors.Errorf("resolving modification time for %s: %w", doc.Path(), err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if snap, ok := c.entries[doc.Path()]; ok && snap.modTime.Equal(modTime) {
		return snap.spans, nil
	}

	text, err := doc.Text()
	if err != nil {
		return nil, errors.Errorf("reading %s: %w", doc.Path(), err)
	}

	spans, issues := scanner.Scan(ctx, text, c.tokenize(ctx, text))
	if len(issues) > 0 {
		zerolog.Ctx(ctx).Debug().
			Str("path", doc.Path()).
			Int("issues", len(issues)).
			Msg("scan completed with tolerated issues")
	}

	c.entries[doc.Path()] = snapshot{modTime: modTime, spans: spans}
	return spans, nil
}

// Lookup returns the cached spans for path without rescanning. It reports
// false when no scan has happened for path yet.
func (c *Cache) Lookup(path string) ([]scanner.TagSpan, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap, ok := c.entries[path]
	return snap.spans, ok
}

// Invalidate drops the cached snapshot for path.
func (c *Cache) Invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, path)
}

// Len returns the number of cached documents.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
