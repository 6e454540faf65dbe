package htmlparse

import (
	"mailhtml/arena"
	"mailhtml/urlx"
)

// Option configures a single ProcessPart call.
type Option func(*Document)

// WithURLSink registers a callback invoked once for every URL recorded in
// the document (tag hrefs, img srcs, and URLs mined out of query strings),
// in discovery order, including duplicates.
func WithURLSink(fn func(u *urlx.URL)) Option {
	return func(d *Document) { d.urlSink = fn }
}

// ProcessPart parses one HTML byte buffer end to end: it tokenizes tags and
// text, builds the tag tree, resolves per-tag URLs and images, folds any
// <style> blocks into a stylesheet, and runs the two-pass visibility
// cascade that produces the invisible-text exception list. The returned
// Document and everything it points to are valid only as long as the
// caller keeps a reference to the Document itself; nothing further needs
// releasing.
func ProcessPart(data []byte, opts ...Option) *Document {
	a := arena.NewArena(0)
	doc := newDocument(a)
	for _, opt := range opts {
		opt(doc)
	}

	s := &scanner{doc: doc}
	s.run(data)

	runVisibilityPass(doc)

	return doc
}
