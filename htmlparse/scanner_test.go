package htmlparse

import (
	"strings"
	"testing"
)

func TestImgAltTextIsAppendedToParsedContent(t *testing.T) {
	doc := ProcessPart([]byte(`<p>before <img src="http://x.test/a.png" alt="a cat"> after</p>`))
	if !strings.Contains(string(doc.Parsed), "a cat") {
		t.Fatalf("Parsed = %q, want it to contain the alt text", doc.Parsed)
	}
}

func TestBrInsertsLineBreakOnce(t *testing.T) {
	doc := ProcessPart([]byte(`<p>one<br><br>two</p>`))
	if string(doc.Parsed) != "one\r\ntwo\r\n" {
		t.Fatalf("Parsed = %q, want one line break for the consecutive <br>s and one for </p>", doc.Parsed)
	}
}

func TestClosingDivInsertsLineBreak(t *testing.T) {
	doc := ProcessPart([]byte(`<div>one</div><div>two</div>`))
	if !strings.Contains(string(doc.Parsed), "one\r\ntwo") {
		t.Fatalf("Parsed = %q, want a line break between closed divs", doc.Parsed)
	}
}

func TestStyleBlockInstallsStylesheetAndIsNotEmittedAsText(t *testing.T) {
	doc := ProcessPart([]byte(`<html><head><style>.hidden { display: none; }</style></head><body><p class="hidden">gone</p><p>here</p></body></html>`))
	if doc.Style == nil {
		t.Fatal("expected a stylesheet to be installed from the <style> block")
	}
	if strings.Contains(string(doc.Parsed), "display") {
		t.Fatalf("Parsed = %q, should not contain the raw CSS text", doc.Parsed)
	}
}

func TestBaseTagRewritesRelativeHrefs(t *testing.T) {
	doc := ProcessPart([]byte(`<html><head><base href="http://example.com/mail/"></head><body><a href="reply">x</a></body></html>`))
	if doc.BaseURL == nil {
		t.Fatal("expected a base URL to be installed")
	}
	var found bool
	for _, exc := range doc.Exceptions {
		if exc.Type == ExceptionURL && strings.HasPrefix(exc.URL.String, "http://example.com/mail/") {
			found = true
		}
	}
	if !found {
		t.Fatal("expected the relative href to resolve against the base URL")
	}
}

func TestScriptContentIsIgnoredNotEmitted(t *testing.T) {
	doc := ProcessPart([]byte(`<html><body><script>alert('should not appear')</script>visible text</body></html>`))
	if strings.Contains(string(doc.Parsed), "alert") {
		t.Fatalf("Parsed = %q, should not contain script body text", doc.Parsed)
	}
	if !strings.Contains(string(doc.Parsed), "visible text") {
		t.Fatalf("Parsed = %q, want it to contain the trailing text", doc.Parsed)
	}
}
