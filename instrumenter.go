// Package golivehtml instruments HTML documents for live preview: it scans a
// document into tag spans with stable identities, injects those identities
// into a copy of the text, and resolves editor positions back to the
// enclosing tag.
package golivehtml

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/golivehtml/pkg/document"
	"github.com/walteh/golivehtml/pkg/editor"
	"github.com/walteh/golivehtml/pkg/instrument"
	"github.com/walteh/golivehtml/pkg/marks"
	"github.com/walteh/golivehtml/pkg/scancache"
	"github.com/walteh/golivehtml/pkg/scanner"
	"gitlab.com/tozd/go/errors"
)

// NoTagID is the sentinel returned when no tag covers a position.
const NoTagID = -1

// Instrumenter is the public surface of the engine. Create one per host
// process (typically at editor-manager start) and share it: the scan cache
// it owns is what makes repeated scans of unchanged documents cheap.
type Instrumenter struct {
	cache   *scancache.Cache
	tracker marks.Tracker
}

// Option configures an Instrumenter.
type Option func(*Instrumenter)

// WithCache replaces the default scan cache.
func WithCache(c *scancache.Cache) Option {
	return func(in *Instrumenter) {
		in.cache = c
	}
}

// WithTracker replaces the default in-memory range tracker, e.g. to bind the
// engine to a real editor's marker service.
func WithTracker(t marks.Tracker) Option {
	return func(in *Instrumenter) {
		in.tracker = t
	}
}

// New creates an Instrumenter with its own scan cache and in-memory range
// tracker.
func New(opts ...Option) *Instrumenter {
	in := &Instrumenter{
		cache:   scancache.New(),
		tracker: marks.NewInMemory(),
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// ScanDocument returns the document's tag spans, rescanning only when the
// document's modification marker changed since the last scan. The returned
// list is a shared snapshot; treat it as read-only.
func (in *Instrumenter) ScanDocument(ctx context.Context, doc document.Document) ([]scanner.TagSpan, error) {
	return in.cache.ScanDocument(ctx, doc)
}

// GenerateInstrumentedHTML returns the document's text with one identity
// attribute injected per tag span.
func (in *Instrumenter) GenerateInstrumentedHTML(ctx context.Context, doc document.Document) (string, error) {
	spans, err := in.cache.ScanDocument(ctx, doc)
	if err != nil {
		return "", errors.Errorf("scanning %s: %w", doc.Path(), err)
	}
	text, err := doc.Text()
	if err != nil {
		return "", errors.Errorf("reading %s: %w", doc.Path(), err)
	}
	return instrument.InstrumentedHTML(text, spans), nil
}

// MarkText seeds the range tracker for ed from the cached scan of its
// document. Calling it before any scan of the document is a caller error: it
// is logged and returned, and the tracker is left untouched.
func (in *Instrumenter) MarkText(ctx context.Context, ed *editor.Editor) error {
	path := ed.Document().Path()
	spans, ok := in.cache.Lookup(path)
	if !ok {
		err := errors.Errorf("no cached scan for %s", path)
		zerolog.Ctx(ctx).Error().
			Str("path", path).
			Str("editor", ed.ID()).
			Msg("mark text called before document was scanned")
		return err
	}
	in.tracker.MarkRanges(ed.ID(), spans, marks.CategoryTagID)
	return nil
}

// TagIDAtPosition returns the identity of the innermost tag covering pos in
// ed, or NoTagID when no tracked range contains the position. Querying an
// editor whose tracker was never seeded is a caller error (MarkText was
// skipped): it is reported through the logger and still answers NoTagID.
func (in *Instrumenter) TagIDAtPosition(ctx context.Context, ed *editor.Editor, pos int) int {
	if !in.tracker.Has(ed.ID(), marks.CategoryTagID) {
		zerolog.Ctx(ctx).Error().
			Str("path", ed.Document().Path()).
			Str("editor", ed.ID()).
			Int("pos", pos).
			Msg("tag lookup on an editor that was never marked")
		return NoTagID
	}
	hits := in.tracker.RangesAt(ed.ID(), pos, marks.CategoryTagID)
	if len(hits) == 0 {
		return NoTagID
	}
	return hits[0].ID
}

// ApplyEdit tells the range tracker about a buffer edit in ed that replaced
// removed bytes at offset at with inserted bytes, keeping position lookups
// valid between rescans.
func (in *Instrumenter) ApplyEdit(ed *editor.Editor, at, removed, inserted int) {
	in.tracker.ApplyEdit(ed.ID(), at, removed, inserted)
}
