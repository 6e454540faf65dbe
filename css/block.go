package css

import "strings"

// Block is a tag's resolved style: visibility plus foreground/background
// color. Fields left as "" are unset, which matters for PropagateFrom: an
// unset field inherits its parent's value, a set field (from an inline
// style= or color/bgcolor attribute, resolved before any stylesheet rule
// gets a chance to touch the block) never does.
type Block struct {
	Display    string // "" (unset), or a CSS display value such as "none"
	Visibility string // "" (unset), "visible", or "hidden"
	FgColor    string // "" or "#rrggbb"
	BgColor    string // "" or "#rrggbb"

	visible      bool
	visibleKnown bool
}

// Undefined returns the sentinel block for a tag that has neither
// color/bgcolor attributes nor a style attribute that parsed into
// anything: an all-unset block that still participates in propagation and
// visibility computation like any other.
func Undefined() *Block {
	return &Block{}
}

// SetFgColor records an explicitly-resolved foreground color (from a
// color="" attribute, which takes priority over anything a stylesheet
// might say later).
func (b *Block) SetFgColor(hex string) {
	b.FgColor = hex
	b.visibleKnown = false
}

// SetBgColor is SetFgColor's background counterpart.
func (b *Block) SetBgColor(hex string) {
	b.BgColor = hex
	b.visibleKnown = false
}

// lowContrastThreshold is the WCAG contrast ratio below which foreground
// text on its background is treated as practically unreadable rather
// than merely low-contrast. A ratio of 1 is an exact color match; this
// also catches near-identical colors like white-on-#fefefe that the old
// exact-string-equality check missed.
const lowContrastThreshold = 1.2

// ComputeVisibility resolves IsVisible from the block's current fields. A
// tag is invisible when explicitly display:none or visibility:hidden, or
// when its resolved foreground and background colors are so close in
// contrast that the text is unreadable regardless of the display/
// visibility properties — the classic hide-text-in-plain-sight trick.
func (b *Block) ComputeVisibility() {
	if b == nil {
		return
	}
	invisible := strings.EqualFold(b.Display, "none") ||
		strings.EqualFold(b.Visibility, "hidden") ||
		lowContrast(b.FgColor, b.BgColor)
	b.visible = !invisible
	b.visibleKnown = true
}

func lowContrast(fg, bg string) bool {
	if fg == "" || bg == "" {
		return false
	}
	fc, ok := ColorFromString(fg)
	if !ok {
		return false
	}
	bc, ok := ColorFromString(bg)
	if !ok {
		return false
	}
	return ContrastRatio(fc, bc) < lowContrastThreshold
}

// IsVisible reports the block's visibility, computing it on first access
// if ComputeVisibility has not yet run (a nil block is always visible,
// matching the parser's treatment of tags that never acquired a block).
func (b *Block) IsVisible() bool {
	if b == nil {
		return true
	}
	if !b.visibleKnown {
		b.ComputeVisibility()
	}
	return b.visible
}

// PropagateFrom fills the block's unset fields from parent and recomputes
// visibility. Fields the tag itself already resolved (inline style, color
// attributes, or an earlier stylesheet match) are never overwritten.
func (b *Block) PropagateFrom(parent *Block) {
	if b == nil || parent == nil {
		return
	}
	if b.Display == "" {
		b.Display = parent.Display
	}
	if b.Visibility == "" {
		b.Visibility = parent.Visibility
	}
	if b.FgColor == "" {
		b.FgColor = parent.FgColor
	}
	if b.BgColor == "" {
		b.BgColor = parent.BgColor
	}
	b.ComputeVisibility()
}

// Clone returns a shallow copy, used when a child tag has no block of its
// own yet and needs to inherit the parent's without aliasing it (so a
// later mutation of the child's block never leaks back into the parent's).
func (b *Block) Clone() *Block {
	if b == nil {
		return nil
	}
	c := *b
	return &c
}
