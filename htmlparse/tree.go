package htmlparse

// treeBuilder attaches tags to the document tree as the scanner produces
// them, repairing unbalanced nesting with a swap-and-pop strategy that
// keeps the open-tag stack small and the whole pass O(n).
type treeBuilder struct {
	stack []*Tag

	// lastClosed is the tree node that a block-closing tag actually
	// matched via checkBalance, valid for the duration of the process
	// call that set it. The scanner uses it to know which tag's own
	// parent content should resume accumulating under.
	lastClosed *Tag

	// inlineOpen counts currently-open non-empty inline tags per id.
	// Inline tags never go on stack (they don't participate in the
	// block-nesting repair), but a closing tag with no open counterpart
	// still needs to be detected as an unpaired close.
	inlineOpen [numTagIDs]int
}

// process attaches tag to the tree (or repairs/rejects it) and reports
// whether the scanner should now write content under it: false means the
// scanner should switch to content_ignore (the caller additionally checks
// for the STYLE special case).
func (tb *treeBuilder) process(doc *Document, tag *Tag) bool {
	if doc.totalTags > MaxTags {
		doc.Flags |= DocTooManyTags
	}
	doc.totalTags++

	if tag.ID == UnknownTagID {
		doc.Flags |= DocUnknownElements
		return false
	}

	var parent *Tag
	if len(tb.stack) == 0 {
		parent = doc.Root
	} else {
		parent = tb.stack[len(tb.stack)-1]
	}
	tag.Parent = parent

	if tag.Flags&(CMInline|CMEmpty) == 0 {
		switch {
		case tag.Flags&FLClosing != 0:
			tb.lastClosed = nil
			if parent == nil {
				return false
			}
			if !tb.checkBalance(tag) {
				doc.Flags |= DocUnbalanced
			}
		case tag.Flags&FLClosed != 0:
			// A self-closed block tag ("<div/>") never goes on the
			// stack: it opens and closes in the same instant.
			tb.attachAsChild(doc, parent, tag)
		default:
			return tb.openBlockTag(doc, parent, tag)
		}
	} else if tag.Flags&FLClosing == 0 {
		if tag.Flags&CMEmpty == 0 && tag.ID != UnknownTagID && int(tag.ID) < int(numTagIDs) {
			tb.inlineOpen[tag.ID]++
		}
		if parent != nil {
			if doc.totalTags <= MaxTags {
				parent.Children = append(parent.Children, tag)
			}
			if parent.Flags&(CMHead|CMUnknown|FLIgnore) != 0 {
				tag.Flags |= FLIgnore
				return false
			}
		}
	} else {
		// A closing inline/empty tag carries no content of its own and
		// never becomes a tree node; it only matters to the scanner
		// (anchor exceptions, line breaks), which reads its flags
		// directly off the parsed tag, not off the tree. It still has to
		// pair with an open tag of the same id: an extra close with
		// nothing open marks the document unbalanced.
		if tag.Flags&CMEmpty == 0 && tag.ID != UnknownTagID && int(tag.ID) < int(numTagIDs) {
			if tb.inlineOpen[tag.ID] > 0 {
				tb.inlineOpen[tag.ID]--
			} else {
				doc.Flags |= DocUnbalanced
			}
		}
	}
	return true
}

func (tb *treeBuilder) openBlockTag(doc *Document, parent, tag *Tag) bool {
	if parent != nil {
		if parent.Flags&FLIgnore != 0 {
			tag.Flags |= FLIgnore
		}
		if tag.Flags&FLClosed == 0 && parent.Flags&FLBlock == 0 && parent.ID == tag.ID {
			// Something like <a>bla<a>foo...: reopening the same tag
			// while the previous one is still open. Attach as a
			// sibling of the still-open tag, under its parent, rather
			// than nesting it inside.
			doc.Flags |= DocUnbalanced
			tag.Parent = parent.Parent
			if doc.totalTags <= MaxTags {
				if tag.Parent != nil {
					tag.Parent.Children = append(tag.Parent.Children, tag)
				} else {
					doc.Root = tag
				}
				tb.stack = append(tb.stack, tag)
			}
			return true
		}

		if doc.totalTags <= MaxTags {
			parent.Children = append(parent.Children, tag)
			if tag.Flags&FLClosed == 0 {
				tb.stack = append(tb.stack, tag)
			}
		}
	} else {
		doc.Root = tag
		if tag.Flags&FLClosed == 0 {
			tb.stack = append(tb.stack, tag)
		}
	}

	if tag.Flags&(CMHead|CMUnknown|FLIgnore) != 0 {
		tag.Flags |= FLIgnore
		return false
	}
	return true
}

func (tb *treeBuilder) attachAsChild(doc *Document, parent, tag *Tag) {
	if parent != nil {
		if doc.totalTags <= MaxTags {
			parent.Children = append(parent.Children, tag)
		}
	} else {
		doc.Root = tag
	}
}

// checkBalance implements the swap-and-pop repair: find the nearest
// still-open tag on the stack with the same id, mark it closed, then
// remove it from the stack by overwriting its slot with whatever is
// currently on top and shrinking by one. When the match was not on top,
// this reorders the remaining open tags: the former top takes the vacated
// slot, and the tag that was just below it becomes the new top (the
// parent of the next tag).
func (tb *treeBuilder) checkBalance(tag *Tag) bool {
	for i := len(tb.stack) - 1; i >= 0; i-- {
		t := tb.stack[i]
		if t.Flags&FLClosed == 0 && t.ID == tag.ID {
			t.Flags |= FLClosed
			tb.lastClosed = t
			last := len(tb.stack) - 1
			tb.stack[i] = tb.stack[last]
			tb.stack = tb.stack[:last]
			return true
		}
	}
	return false
}
