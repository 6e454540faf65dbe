package css

import "testing"

func TestColorFromString(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"hex", "#1a2b3c", "#1a2b3c", true},
		{"shorthand", "#abc", "#aabbcc", true},
		{"named_white", "white", "#ffffff", true},
		{"transparent", "transparent", "", false},
		{"rgb", "rgb(255, 64, 0)", "#ff4000", true},
		{"rgba_percent", "rgba(10%,20%,30%,0.5)", "#19334c", true},
		{"garbage", "not-a-color", "", false},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			c, ok := ColorFromString(tc.input)
			if ok != tc.ok {
				t.Fatalf("ColorFromString(%q) ok = %v, want %v", tc.input, ok, tc.ok)
			}
			if ok && c.Hex() != tc.want {
				t.Fatalf("ColorFromString(%q).Hex() = %q, want %q", tc.input, c.Hex(), tc.want)
			}
		})
	}
}

func TestBlockVisibilityDisplayNone(t *testing.T) {
	t.Parallel()
	b := &Block{Display: "none"}
	if b.IsVisible() {
		t.Fatal("display:none block should be invisible")
	}
}

func TestBlockVisibilitySameColor(t *testing.T) {
	t.Parallel()
	b := &Block{FgColor: "#ffffff", BgColor: "#ffffff"}
	if b.IsVisible() {
		t.Fatal("identical fg/bg colors should make a block invisible")
	}
}

func TestBlockVisibilityNearIdenticalColorIsInvisible(t *testing.T) {
	t.Parallel()
	b := &Block{FgColor: "#ffffff", BgColor: "#fefefe"}
	if b.IsVisible() {
		t.Fatal("near-white-on-near-white should still read as invisible under a contrast-ratio check")
	}
}

func TestBlockVisibilityDistinctColorsStayVisible(t *testing.T) {
	t.Parallel()
	b := &Block{FgColor: "#000000", BgColor: "#ffffff"}
	if !b.IsVisible() {
		t.Fatal("black text on white background has maximal contrast and must stay visible")
	}
}

func TestBlockVisibilityDefault(t *testing.T) {
	t.Parallel()
	if !Undefined().IsVisible() {
		t.Fatal("an undefined block should default to visible")
	}
	var nilBlock *Block
	if !nilBlock.IsVisible() {
		t.Fatal("a nil block should be treated as visible")
	}
}

func TestPropagateFromFillsOnlyUnsetFields(t *testing.T) {
	t.Parallel()
	parent := &Block{Display: "block", FgColor: "#111111"}
	child := &Block{FgColor: "#222222"} // already has its own fg color
	child.PropagateFrom(parent)
	if child.Display != "block" {
		t.Fatalf("child should inherit unset Display, got %q", child.Display)
	}
	if child.FgColor != "#222222" {
		t.Fatalf("child's own FgColor must not be overwritten, got %q", child.FgColor)
	}
}

func TestParseDeclarationBlock(t *testing.T) {
	t.Parallel()
	b := ParseDeclarationBlock("display: none; color: #ff0000")
	if b == nil {
		t.Fatal("expected a non-nil block")
	}
	if b.Display != "none" {
		t.Fatalf("Display = %q, want none", b.Display)
	}
	if b.FgColor != "#ff0000" {
		t.Fatalf("FgColor = %q, want #ff0000", b.FgColor)
	}
}

func TestParseDeclarationBlockMalformedFallsBackToManualSplit(t *testing.T) {
	t.Parallel()
	// Missing semicolon/garbage a strict CSS parser might reject outright;
	// the manual fallback should still recover the display property.
	b := ParseDeclarationBlock("display:none")
	if b == nil || b.Display != "none" {
		t.Fatalf("expected display:none to survive fallback parsing, got %+v", b)
	}
}

// mockTag is a minimal BlockTag used to test the mirror + cascade without
// depending on the htmlparse package (which would create an import cycle).
type mockTag struct {
	name     string
	id       string
	class    string
	parent   *mockTag
	children []*mockTag
}

func (m *mockTag) TagName() string  { return m.name }
func (m *mockTag) IDAttr() string   { return m.id }
func (m *mockTag) ClassAttr() string { return m.class }
func (m *mockTag) ParentTag() BlockTag {
	if m.parent == nil {
		return nil
	}
	return m.parent
}
func (m *mockTag) ChildTags() []BlockTag {
	out := make([]BlockTag, 0, len(m.children))
	for _, c := range m.children {
		out = append(out, c)
	}
	return out
}

func TestCheckTagBlockMatchesByClassAndID(t *testing.T) {
	t.Parallel()
	root := &mockTag{name: "body"}
	hidden := &mockTag{name: "div", class: "secret", parent: root}
	visible := &mockTag{name: "div", id: "main", parent: root}
	root.children = []*mockTag{hidden, visible}

	ss, err := ParseStylesheet(".secret { display: none; } #main { color: #123456; }", nil)
	if err != nil {
		t.Fatalf("ParseStylesheet: %v", err)
	}
	m := BuildMirror(root)

	hb := ss.CheckTagBlock(hidden, m)
	if hb == nil || hb.Display != "none" {
		t.Fatalf("expected .secret to resolve display:none, got %+v", hb)
	}
	vb := ss.CheckTagBlock(visible, m)
	if vb == nil || vb.FgColor != "#123456" {
		t.Fatalf("expected #main to resolve color, got %+v", vb)
	}
	rootBlock := ss.CheckTagBlock(root, m)
	if rootBlock != nil {
		t.Fatalf("expected no rule to match the root tag, got %+v", rootBlock)
	}
}

func TestCheckTagBlockDescendantCombinator(t *testing.T) {
	t.Parallel()
	root := &mockTag{name: "table"}
	row := &mockTag{name: "tr", parent: root}
	cell := &mockTag{name: "td", parent: row}
	root.children = []*mockTag{row}
	row.children = []*mockTag{cell}

	ss, err := ParseStylesheet("table td { visibility: hidden; }", nil)
	if err != nil {
		t.Fatalf("ParseStylesheet: %v", err)
	}
	m := BuildMirror(root)
	b := ss.CheckTagBlock(cell, m)
	if b == nil || b.Visibility != "hidden" {
		t.Fatalf("expected descendant combinator to match td, got %+v", b)
	}
}
