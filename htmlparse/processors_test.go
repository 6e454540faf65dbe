package htmlparse

import "testing"

func TestScanStyleDimensionHandlesEqualsColonAndSpace(t *testing.T) {
	cases := map[string]int{
		"width:100px":  100,
		"width=200":    200,
		"width : 300 ": 300,
		"height:nope":  0,
		"":             0,
		// scanStyleDimension matches "width" as a substring, not a bounded
		// token, so it reads straight through the embedded "width" here too.
		"max-width:50": 50,
	}
	for style, want := range cases {
		if got := scanStyleDimension(style, "width"); got != want {
			t.Fatalf("scanStyleDimension(%q, width) = %d, want %d", style, got, want)
		}
	}
}

func TestParseDimensionAttr(t *testing.T) {
	if got := parseDimensionAttr(" 42 "); got != 42 {
		t.Fatalf("got %d, want 42", got)
	}
	if got := parseDimensionAttr("abc"); got != 0 {
		t.Fatalf("got %d, want 0 for garbage", got)
	}
	if got := parseDimensionAttr(""); got != 0 {
		t.Fatalf("got %d, want 0 for empty", got)
	}
}

func TestDecodeDataURIBase64(t *testing.T) {
	// "hi" base64-encoded is "aGk=".
	data, ok := decodeDataURI("data:text/plain;base64,aGk=")
	if !ok {
		t.Fatal("expected decodeDataURI to succeed")
	}
	if string(data) != "hi" {
		t.Fatalf("decoded = %q, want hi", data)
	}
}

func TestDecodeDataURITolerantOfMissingPadding(t *testing.T) {
	// "hi" without the trailing "=" padding.
	data, ok := decodeDataURI("data:text/plain;base64,aGk")
	if !ok {
		t.Fatal("expected decodeDataURI to tolerate missing padding")
	}
	if string(data) != "hi" {
		t.Fatalf("decoded = %q, want hi", data)
	}
}

func TestDecodeDataURINoBase64MarkerFails(t *testing.T) {
	if _, ok := decodeDataURI("data:text/plain,hi"); ok {
		t.Fatal("expected decodeDataURI to fail without a ;base64, marker")
	}
}

func TestProcessBlockTagResolvesColorAndStyle(t *testing.T) {
	tag := &Tag{Name: "div", ID: TagDiv, Flags: FLBlock, Params: []Param{
		{Component: ComponentColor, Value: "#ff0000"},
		{Component: ComponentStyle, Value: "display:none"},
	}}
	processBlockTag(tag)
	if tag.Block == nil {
		t.Fatal("expected a Block to be set")
	}
	if tag.Block.FgColor == "" {
		t.Fatal("expected FgColor to be resolved from the color attribute")
	}
	if tag.Block.Display != "none" {
		t.Fatalf("Display = %q, want none", tag.Block.Display)
	}
}

func TestHasPrefixFold(t *testing.T) {
	if !hasPrefixFold("DATA:image/png", "data:") {
		t.Fatal("expected case-insensitive prefix match")
	}
	if hasPrefixFold("cid:abc", "data:") {
		t.Fatal("unexpected match")
	}
}
