package htmlparse

import (
	"unicode/utf8"

	"golang.org/x/net/html"
)

// DecodeEntities decodes named (&amp;) and numeric (&#38; / &#x26;) HTML
// entities in place, returning the slice's new, possibly shorter, length.
// Unknown or unterminated entities are left verbatim, and so is a
// reference whose UTF-8 form is longer than the reference itself (such as
// &nGt;), since the buffer cannot grow. The decoder never fails: worst
// case, it writes back exactly what it read.
func DecodeEntities(buf []byte) int {
	out := buf[:0:len(buf)]
	i := 0
	for i < len(buf) {
		if buf[i] != '&' {
			out = append(out, buf[i])
			i++
			continue
		}
		span, ok := entitySpan(buf[i:])
		if !ok {
			out = append(out, buf[i])
			i++
			continue
		}
		decoded := html.UnescapeString(string(buf[i : i+span]))
		if utf8.RuneCountInString(decoded) > 2 || len(decoded) > span {
			// A known entity decodes to at most two runes; more means no
			// name matched, or only a legacy prefix did ("&notx;" against
			// "&not"). A longer decoding would overrun unread input.
			decoded = string(buf[i : i+span])
		}
		out = append(out, decoded...)
		i += span
	}
	return len(out)
}

// DecodeEntitiesString is DecodeEntities for a read-only string, returning
// a decoded copy, or s itself when it contains no '&'.
func DecodeEntitiesString(s string) string {
	if indexByte(s, '&') < 0 {
		return s
	}
	buf := []byte(s)
	return string(buf[:DecodeEntities(buf)])
}

// entitySpan reports how many bytes starting at buf[0] ('&') form a
// plausible entity reference, stopping at ';', at the first byte that
// cannot extend one, or after a bounded lookahead so a stray '&' in body
// text never triggers an unbounded scan.
func entitySpan(buf []byte) (int, bool) {
	const maxEntityLen = 32
	if len(buf) < 2 || buf[0] != '&' {
		return 0, false
	}
	n := 1
	if buf[n] == '#' {
		n++
	}
	for n < len(buf) && n < maxEntityLen {
		c := buf[n]
		switch {
		case c == ';':
			return n + 1, true
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == 'x', c == 'X':
			n++
		default:
			return 0, false
		}
	}
	return 0, false
}

func indexByte(s string, b byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}
