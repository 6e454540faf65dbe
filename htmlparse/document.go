// Package htmlparse implements a lenient HTML parser and DOM normalizer
// for untrusted, frequently malformed mail bodies. It produces a tag
// tree, normalized visible text, discovered URLs, image records, and
// ranges of the rendered text that fall under invisible markup.
package htmlparse

import (
	"mailhtml/arena"
	"mailhtml/css"
	"mailhtml/urlx"
)

// DocFlag is a bitmask of document-level parse anomalies.
type DocFlag uint32

const (
	DocBadStart DocFlag = 1 << iota
	DocXML
	DocBadElements
	DocUnknownElements
	DocDuplicateElements
	DocUnbalanced
	DocTooManyTags
	DocHasDataURLs
)

// MaxTags bounds how many tags one document may add to the tree. Beyond
// this the byte stream is still consumed so the rendered text stays
// complete, but no further tag is attached.
const MaxTags = 8192

// ExceptionType classifies a span of rendered text singled out for
// special downstream handling.
type ExceptionType int

const (
	ExceptionInvisible ExceptionType = iota
	ExceptionURL
)

// Exception marks [Pos, Pos+Len) of a Document's Parsed text as requiring
// special treatment, attributed to the Tag that caused it.
type Exception struct {
	Pos  int
	Len  int
	Type ExceptionType
	Tag  *Tag
	URL  *urlx.URL // set only for ExceptionURL
}

// Document is the result of parsing one HTML byte buffer: the tag tree,
// the rendered plain text, every discovered URL and image, and the
// anomaly flags raised along the way.
type Document struct {
	arena   *arena.Arena
	buf     *arena.Buffer
	tagPool *arena.Pool[Tag]

	Root *Tag
	Tags []*Tag

	// Parsed mirrors buf.Bytes() after every write; kept as a plain slice
	// field because callers and tests read it directly.
	Parsed []byte

	Flags   DocFlag
	BaseURL *urlx.URL
	Style   *css.Stylesheet
	Images  []*Image

	Exceptions []*Exception
	urlSink    func(u *urlx.URL)
	partURLs   *urlx.Set

	tagsSeen  [numTagIDs]bool
	totalTags int
}

func newDocument(a *arena.Arena) *Document {
	return &Document{arena: a, buf: arena.NewBuffer(a), tagPool: arena.NewPool[Tag](0)}
}

// TagSeen reports whether at least one tag with this name was
// successfully added to the tree.
func (d *Document) TagSeen(name string) bool {
	id := TagIDByName(name)
	if id == UnknownTagID {
		return false
	}
	return d.tagsSeen[id]
}

// ParsedContent returns the rendered, entity-decoded, whitespace-collapsed
// visible text. The slice is valid for the life of the Document.
func (d *Document) ParsedContent() []byte {
	return d.Parsed
}

// FindEmbeddedImageByCID returns the image whose content-id matches cid
// (without the surrounding "cid:" prefix), or nil.
func (d *Document) FindEmbeddedImageByCID(cid string) *Image {
	for _, img := range d.Images {
		if img.CID == cid {
			return img
		}
	}
	return nil
}

// ImageFlag classifies how an image was referenced.
type ImageFlag uint32

const (
	ImageEmbedded ImageFlag = 1 << iota
	ImageExternal
	ImageData
)

// Image is one discovered <img>/<link rel=icon> reference, plus whatever
// the image sniffer could determine about an embedded payload.
type Image struct {
	Src    string
	URL    *urlx.URL
	Width  int
	Height int
	Flags  ImageFlag
	Tag    *Tag
	CID    string

	// Embedded holds the sniffed format/dimensions when Flags has
	// ImageData set and the payload decoded successfully.
	Embedded *EmbeddedImage
}

// EmbeddedImage is what the image sniffer determined about a data: URI
// payload.
type EmbeddedImage struct {
	Format string
	Width  int
	Height int

	// Payload is the decoded image bytes, kept around so a caller can run
	// a further pass (e.g. an average-color sample) without re-decoding
	// the data: URI itself.
	Payload []byte
}

// TagExtra is the tagged-union payload a tag may carry beyond its
// attributes: nothing, a resolved URL, or an image record.
type TagExtra interface {
	tagExtraMarker()
}

type noExtra struct{}

func (noExtra) tagExtraMarker() {}

// URLExtra wraps a tag's resolved URL (set on <a> and <base>).
type URLExtra struct {
	URL *urlx.URL
}

func (URLExtra) tagExtraMarker() {}

// ImageExtra wraps a tag's image record (set on <img> and <link rel=icon>).
type ImageExtra struct {
	Image *Image
}

func (ImageExtra) tagExtraMarker() {}

// Tag is one node of the parsed tree.
type Tag struct {
	Name  string
	ID    TagID
	Flags TagFlag

	Params []Param

	Parent   *Tag
	Children []*Tag

	ContentOffset int
	ContentLength int

	Extra TagExtra
	Block *css.Block
}

// Attr returns the first parameter value stored under component, or ""
// if the tag never recorded one.
func (t *Tag) Attr(c Component) string {
	for _, p := range t.Params {
		if p.Component == c {
			return p.Value
		}
	}
	return ""
}

// TagName, IDAttr, ClassAttr, ParentTag, and ChildTags implement
// css.BlockTag so the cascade can match selectors against this tree
// without css importing htmlparse.
func (t *Tag) TagName() string { return t.Name }
func (t *Tag) IDAttr() string  { return t.Attr(ComponentID) }
func (t *Tag) ClassAttr() string { return t.Attr(ComponentClass) }

func (t *Tag) ParentTag() css.BlockTag {
	if t.Parent == nil {
		return nil
	}
	return t.Parent
}

func (t *Tag) ChildTags() []css.BlockTag {
	out := make([]css.BlockTag, 0, len(t.Children))
	for _, c := range t.Children {
		out = append(out, c)
	}
	return out
}
