// Package editor provides the handle that ties a document to its tracked
// range state.
package editor

import (
	"github.com/google/uuid"
	"github.com/walteh/golivehtml/pkg/document"
)

// Editor is a handle for one open view of a document. The ID keys tracked
// ranges, so two editors on the same document keep independent range state.
type Editor struct {
	id  string
	doc document.Document
}

// New creates a handle for doc with a fresh unique ID.
func New(doc document.Document) *Editor {
	return &Editor{id: uuid.NewString(), doc: doc}
}

// ID returns the editor's unique identifier.
func (e *Editor) ID() string {
	return e.id
}

// Document returns the document this editor is viewing.
func (e *Editor) Document() document.Document {
	return e.doc
}
