// Package document abstracts where a document's text and modification marker
// come from. The scan cache only ever needs three things: a stable path-like
// key, the full text, and a timestamp to invalidate on.
package document

import (
	"sync"
	"time"

	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

// Document provides the text and cache-key metadata for one document.
type Document interface {
	// Path is a stable identifier for the document, used as the cache key.
	Path() string
	// Text returns the document's full current text.
	Text() (string, error)
	// ModTime returns the document's modification marker. Cache
	// invalidation compares markers for exact equality, not ordering.
	ModTime() (time.Time, error)
}

// File is a Document backed by a file on an afero filesystem.
type File struct {
	fs   afero.Fs
	path string
}

var _ Document = (*File)(nil)

// NewFile creates a file-backed document. The file is read lazily on each
// Text call; ModTime comes from a fresh Stat.
func NewFile(fs afero.Fs, path string) *File {
	return &File{fs: fs, path: path}
}

func (d *File) Path() string {
	return d.path
}

func (d *File) Text() (string, error) {
	data, err := afero.ReadFile(d.fs, d.path)
	if err != nil {
		return "", errors.Errorf("reading %s: %w", d.path, err)
	}
	return string(data), nil
}

func (d *File) ModTime() (time.Time, error) {
	info, err := d.fs.Stat(d.path)
	if err != nil {
		return time.Time{}, errors.Errorf("stating %s: %w", d.path, err)
	}
	return info.ModTime(), nil
}

// Memory is an in-memory Document for editor buffers and tests.
type Memory struct {
	mu      sync.Mutex
	path    string
	text    string
	modTime time.Time
}

var _ Document = (*Memory)(nil)

// NewMemory creates an in-memory document with the given key, text, and
// modification marker.
func NewMemory(path, text string, modTime time.Time) *Memory {
	return &Memory{path: path, text: text, modTime: modTime}
}

func (d *Memory) Path() string {
	return d.path
}

func (d *Memory) Text() (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.text, nil
}

func (d *Memory) ModTime() (time.Time, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.modTime, nil
}

// SetText replaces the document's text and modification marker, the way a
// save would on disk.
func (d *Memory) SetText(text string, modTime time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.text = text
	d.modTime = modTime
}
