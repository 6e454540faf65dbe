package htmlparse

import (
	"encoding/base64"
	"strconv"
	"strings"

	"mailhtml/css"
	"mailhtml/imgsniff"
	"mailhtml/urlx"
)

// resolveTagURL resolves the href/src component of tag against the
// document's base URL (if any), parses it, attaches it to tag.Extra, and
// mines its query string for further URLs. The scanner calls it for <a>;
// <base>, <link rel=icon> and <img> go through processBaseTag,
// processLinkTag and processImgTag instead.
func resolveTagURL(doc *Document, tag *Tag) *urlx.URL {
	raw := tag.Attr(ComponentHref)
	if raw == "" {
		return nil
	}
	resolved := urlx.ResolveAgainstBase(raw, doc.BaseURL)
	u, err := urlx.Parse(resolved)
	if err != nil {
		return nil
	}
	tag.Extra = URLExtra{URL: u}
	mineQueryURLs(doc, u)
	recordURL(doc, u)
	return u
}

func mineQueryURLs(doc *Document, u *urlx.URL) {
	if u.Query == "" {
		return
	}
	urlx.Find(u.Query, urlx.FindAll, func(found *urlx.URL, _, _ int) {
		if found.Protocol == "mailto" && found.UserLen == 0 {
			return
		}
		found.Flags |= urlx.FlagQuery
		recordURL(doc, found)
	})
}

func recordURL(doc *Document, u *urlx.URL) {
	if doc.partURLs == nil {
		doc.partURLs = urlx.NewSet()
	}
	existing := doc.partURLs.AddOrReturn(u)
	if existing != u {
		existing.Count++
	}
	if doc.urlSink != nil {
		doc.urlSink(u)
	}
}

// processBaseTag installs the document's base URL the first time a
// <base> tag with a resolvable href is seen; later ones are ignored.
func processBaseTag(doc *Document, tag *Tag) {
	if doc.BaseURL != nil {
		return
	}
	raw := tag.Attr(ComponentHref)
	if raw == "" {
		return
	}
	u, err := urlx.Parse(raw)
	if err != nil {
		return
	}
	doc.BaseURL = u
	tag.Extra = URLExtra{URL: u}
}

// processLinkTag handles <link rel="icon">, the only <link> relation this
// normalizer cares about.
func processLinkTag(doc *Document, tag *Tag) {
	if !strings.EqualFold(tag.Attr(ComponentRel), "icon") {
		return
	}
	processImgTag(doc, tag)
}

// processImgTag resolves an <img>'s src, handling data: and cid: URIs
// specially, parses its dimensions, and returns any alt text that should
// be appended to the rendered text.
func processImgTag(doc *Document, tag *Tag) string {
	src := tag.Attr(ComponentHref)
	img := &Image{Src: src, Tag: tag}

	switch {
	case hasPrefixFold(src, "data:"):
		doc.Flags |= DocHasDataURLs
		img.Flags |= ImageData | ImageEmbedded
		if payload, ok := decodeDataURI(src); ok {
			if info, err := imgsniff.Sniff(payload); err == nil {
				img.Embedded = &EmbeddedImage{Format: info.Format, Width: info.Width, Height: info.Height, Payload: payload}
			}
		}
	case hasPrefixFold(src, "cid:"):
		img.Flags |= ImageEmbedded
		img.CID = src[len("cid:"):]
	case src != "":
		resolved := urlx.ResolveAgainstBase(src, doc.BaseURL)
		if u, err := urlx.Parse(resolved); err == nil {
			img.Flags |= ImageExternal
			img.URL = u
			recordURL(doc, u)
		}
	}

	img.Width, img.Height = imageDimensions(tag)
	tag.Extra = ImageExtra{Image: img}
	doc.Images = append(doc.Images, img)

	return tag.Attr(ComponentAlt)
}

// decodeDataURI extracts and base64-decodes the payload of a "data:"
// URI, reporting false if it carries no ";base64," marker.
func decodeDataURI(src string) ([]byte, bool) {
	marker := ";base64,"
	idx := strings.Index(src, marker)
	if idx < 0 {
		return nil, false
	}
	encoded := src[idx+len(marker):]
	// encoded_len/4*3 + 12 sizes the output comfortably above the exact
	// decoded length.
	out := make([]byte, 0, len(encoded)/4*3+12)
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		// Try again tolerating missing padding, which broken mail HTML
		// produces constantly.
		decoded, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(encoded, "="))
		if err != nil {
			return nil, false
		}
	}
	out = append(out, decoded...)
	return out, true
}

// imageDimensions resolves an image's pixel size from its width/height
// attributes, falling back to scanning the style attribute when either is
// zero or absent.
func imageDimensions(tag *Tag) (int, int) {
	w := parseDimensionAttr(tag.Attr(ComponentWidth))
	h := parseDimensionAttr(tag.Attr(ComponentHeight))
	if w == 0 || h == 0 {
		style := tag.Attr(ComponentStyle)
		if w == 0 {
			w = scanStyleDimension(style, "width")
		}
		if h == 0 {
			h = scanStyleDimension(style, "height")
		}
	}
	return w, h
}

func parseDimensionAttr(v string) int {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	n, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		return 0
	}
	return int(n)
}

// scanStyleDimension looks for key (e.g. "width") in a style attribute's
// text and reads the decimal run that follows any mixture of '=', ':',
// and whitespace — stopping at the first byte that is none of those and
// not a digit, with no sign or unit handling.
func scanStyleDimension(style, key string) int {
	lower := strings.ToLower(style)
	idx := strings.Index(lower, key)
	if idx < 0 {
		return 0
	}
	i := idx + len(key)
	for i < len(style) {
		c := style[i]
		if c == '=' || c == ':' || c == ' ' || c == '\t' {
			i++
			continue
		}
		break
	}
	start := i
	for i < len(style) && style[i] >= '0' && style[i] <= '9' {
		i++
	}
	if i == start {
		return 0
	}
	n, err := strconv.Atoi(style[start:i])
	if err != nil {
		return 0
	}
	return n
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

// processBlockTag resolves a block tag's color/bgcolor/style attributes
// into its Block, falling back to the undefined sentinel when none of
// them produced anything.
func processBlockTag(tag *Tag) {
	b := css.Undefined()
	if v := tag.Attr(ComponentColor); v != "" {
		if hex := css.HexFromString(v); hex != "" {
			b.SetFgColor(hex)
		}
	}
	if v := tag.Attr(ComponentBgColor); v != "" {
		if hex := css.HexFromString(v); hex != "" {
			b.SetBgColor(hex)
		}
	}
	if v := tag.Attr(ComponentStyle); v != "" {
		if parsed := css.ParseDeclarationBlock(v); parsed != nil {
			if parsed.Display != "" {
				b.Display = parsed.Display
			}
			if parsed.Visibility != "" {
				b.Visibility = parsed.Visibility
			}
			if parsed.FgColor != "" {
				b.FgColor = parsed.FgColor
			}
			if parsed.BgColor != "" {
				b.BgColor = parsed.BgColor
			}
		}
	}
	tag.Block = b
}
