package htmlparse

import "testing"

func TestTreeBuilderSelfClosedBlockTagNeverJoinsStack(t *testing.T) {
	doc := newDocument(nil)
	tb := &treeBuilder{}

	div := &Tag{Name: "div", ID: TagDiv, Flags: FLBlock | FLClosed}
	if !tb.process(doc, div) {
		t.Fatal("expected process to report emit=true for a self-closed div")
	}
	if len(tb.stack) != 0 {
		t.Fatalf("stack = %v, want empty (self-closed tags never push)", tb.stack)
	}
	if doc.Root != div {
		t.Fatalf("Root = %v, want the self-closed div", doc.Root)
	}
}

func TestTreeBuilderUnknownTagIsIgnored(t *testing.T) {
	doc := newDocument(nil)
	tb := &treeBuilder{}

	tag := &Tag{Name: "frobnicate", ID: UnknownTagID}
	if tb.process(doc, tag) {
		t.Fatal("expected process to report emit=false for an unknown tag")
	}
	if doc.Flags&DocUnknownElements == 0 {
		t.Fatal("expected DocUnknownElements to be set")
	}
}

func TestCheckBalanceFindsNearestMatchingOpenTag(t *testing.T) {
	tb := &treeBuilder{}
	outer := &Tag{ID: TagDiv}
	inner := &Tag{ID: TagDiv}
	tb.stack = []*Tag{outer, inner}

	closing := &Tag{ID: TagDiv, Flags: FLClosing}
	if !tb.checkBalance(closing) {
		t.Fatal("expected checkBalance to find the inner open div")
	}
	if inner.Flags&FLClosed == 0 {
		t.Fatal("expected the nearest open div to be marked closed")
	}
	if len(tb.stack) != 1 {
		t.Fatalf("stack = %v, want length 1 after swap-and-pop", tb.stack)
	}
}

func TestCheckBalanceReportsFalseWhenNothingMatches(t *testing.T) {
	tb := &treeBuilder{stack: []*Tag{{ID: TagSpan}}}
	if tb.checkBalance(&Tag{ID: TagDiv, Flags: FLClosing}) {
		t.Fatal("expected checkBalance to fail when no matching open tag exists")
	}
}
