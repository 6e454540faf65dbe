package htmlparse

import "mailhtml/css"

// runVisibilityPass performs the two traversals that turn per-tag style
// attributes and a document's stylesheet into resolved visibility, and
// that turn resolved visibility into a list of invisible-text exceptions
// over the rendered text.
func runVisibilityPass(doc *Document) {
	if doc.Root == nil {
		return
	}
	accumulateContentLength(doc.Root)

	var mirror *css.Mirror
	if doc.Style != nil {
		mirror = css.BuildMirror(doc.Root)
	}
	cascadeVisibility(doc, doc.Root, nil, nil, mirror)
}

// accumulateContentLength sums each tag's descendants' content length
// into its own, post-order, so a block tag's length reflects everything
// nested beneath it. The tag's offset moves back to the earliest offset
// among its content-bearing children, so [offset, offset+length) stays
// inside the rendered text.
func accumulateContentLength(tag *Tag) {
	for _, child := range tag.Children {
		accumulateContentLength(child)
		if child.ContentLength > 0 && (tag.ContentLength == 0 || child.ContentOffset < tag.ContentOffset) {
			tag.ContentOffset = child.ContentOffset
		}
		tag.ContentLength += child.ContentLength
	}
}

// cascadeVisibility walks the tree pre-order, resolving each tag's style
// block against its parent and an optional stylesheet, then maintaining
// the document's invisible-text exception list as visibility changes
// from one level to the next.
func cascadeVisibility(doc *Document, tag *Tag, parentBlock *css.Block, active *Exception, mirror *css.Mirror) {
	if tag.Flags&CMInline != 0 {
		for _, child := range tag.Children {
			cascadeVisibility(doc, child, parentBlock, active, mirror)
		}
		return
	}

	if mirror != nil && doc.Style != nil {
		if matched := doc.Style.CheckTagBlock(tag, mirror); matched != nil {
			if tag.Block == nil {
				tag.Block = matched
			} else {
				tag.Block.PropagateFrom(matched)
			}
		}
	}
	if tag.Block == nil {
		tag.Block = css.Undefined()
	}
	if parentBlock != nil {
		tag.Block.PropagateFrom(parentBlock)
	} else {
		tag.Block.ComputeVisibility()
	}

	next := active
	if !tag.Block.IsVisible() {
		if active == nil {
			exc := &Exception{Pos: tag.ContentOffset, Len: tag.ContentLength, Type: ExceptionInvisible, Tag: tag}
			doc.Exceptions = append(doc.Exceptions, exc)
			next = exc
		}
	} else if active != nil {
		adjustException(doc, active, tag)
		next = nil
	}

	for _, child := range tag.Children {
		cascadeVisibility(doc, child, tag.Block, next, mirror)
	}
}

// adjustException narrows exc to exclude child's range, which is visible
// while exc's tag was not. Three cases: child sits at exc's head, at its
// tail, or strictly inside (which splits exc in two).
func adjustException(doc *Document, exc *Exception, child *Tag) {
	headGap := child.ContentOffset - exc.Pos
	tailGap := (exc.Pos + exc.Len) - (child.ContentOffset + child.ContentLength)

	switch {
	case headGap <= 0:
		exc.Pos = child.ContentOffset + child.ContentLength
		exc.Len -= child.ContentLength
	case tailGap <= 0:
		exc.Len = child.ContentOffset - exc.Pos
	default:
		firstLen := child.ContentOffset - exc.Pos
		secondPos := child.ContentOffset + child.ContentLength
		secondLen := exc.Len - (child.ContentOffset - exc.Pos) - child.ContentLength
		exc.Len = firstLen
		if secondLen > 0 {
			doc.Exceptions = append(doc.Exceptions, &Exception{
				Pos: secondPos, Len: secondLen, Type: ExceptionInvisible, Tag: exc.Tag,
			})
		}
	}
}
