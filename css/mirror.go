package css

import "golang.org/x/net/html"

// BlockTag is the minimal view over a block-level tag that the cascade
// needs to build a mirror DOM and run cascadia selectors against it. The
// HTML parser's Tag type implements this without either package importing
// the other: css knows nothing about htmlparse.Tag, and htmlparse depends
// on css (for Block), never the reverse.
type BlockTag interface {
	TagName() string
	IDAttr() string
	ClassAttr() string
	ParentTag() BlockTag
	ChildTags() []BlockTag
}

// Mirror is a throwaway golang.org/x/net/html.Node tree with one node per
// BlockTag, built solely so cascadia.Sel.Match (which is hard-wired to
// *html.Node) can evaluate selectors — including descendant, child, and
// sibling combinators — against this package's own BlockTag tree. It is
// never exposed as, or confused with, the HTML parser's real tag tree.
type Mirror struct {
	nodes map[BlockTag]*html.Node
}

// BuildMirror walks root's subtree (via ChildTags) and returns a Mirror
// covering every BlockTag reachable from it.
func BuildMirror(root BlockTag) *Mirror {
	m := &Mirror{nodes: make(map[BlockTag]*html.Node)}
	if root == nil {
		return m
	}
	m.build(root, nil)
	return m
}

func (m *Mirror) build(tag BlockTag, parentNode *html.Node) *html.Node {
	n := &html.Node{
		Type: html.ElementNode,
		Data: tag.TagName(),
	}
	if id := tag.IDAttr(); id != "" {
		n.Attr = append(n.Attr, html.Attribute{Key: "id", Val: id})
	}
	if class := tag.ClassAttr(); class != "" {
		n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: class})
	}
	m.nodes[tag] = n
	n.Parent = parentNode

	var prev *html.Node
	for _, child := range tag.ChildTags() {
		cn := m.build(child, n)
		if prev == nil {
			n.FirstChild = cn
		} else {
			prev.NextSibling = cn
			cn.PrevSibling = prev
		}
		prev = cn
	}
	n.LastChild = prev
	return n
}

// Node returns the mirror node for tag, or nil if tag was never part of
// the tree BuildMirror walked.
func (m *Mirror) Node(tag BlockTag) *html.Node {
	if m == nil {
		return nil
	}
	return m.nodes[tag]
}
