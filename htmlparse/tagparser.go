package htmlparse

import (
	"strings"

	"mailhtml/arena"
)

const (
	stateStart = iota
	stateName
	stateSpacesAfterName
	stateAttrName
	stateSpacesBeforeEq
	stateSpacesAfterEq
	stateStartDquote
	stateDqValue
	stateStartSquote
	stateSqValue
	stateValue
	stateIgnoreBadTag
)

// parsedTag is the raw result of scanning one tag's interior: its name and
// the ordered, entity-decoded, component-resolved attribute values.
type parsedTag struct {
	name       string
	closing    bool
	params     []Param
	selfClosed bool
	broken     bool

	// a backs name and every param value in the arena that outlives this
	// call; it is only consulted while parsing and never retained on the
	// resulting Tag.
	a *arena.Arena
}

// parseTagInterior scans data, which begins immediately after the '<' (or
// '</' when closing is true) that opened the tag, and returns the number
// of bytes consumed — including the terminating '>' — along with the
// parsed name and attributes. It never fails: malformed input yields a
// tag with broken set and whatever could be salvaged.
func parseTagInterior(data []byte, closing bool, a *arena.Arena) (int, parsedTag) {
	pt := parsedTag{closing: closing, a: a}
	state := stateStart
	var nameStart int
	var attrNameStart, attrNameEnd int
	var valueStart int
	var curComponent Component

	i := 0
	for i < len(data) {
		c := data[i]
		switch state {
		case stateStart:
			switch {
			case isAlpha(c):
				nameStart = i
				state = stateName
			case isSpace(c):
				// leading space before a name: tolerate and keep scanning.
			default:
				pt.broken = true
				state = stateIgnoreBadTag
			}
			i++

		case stateName:
			switch {
			case isAlpha(c) || isDigit(c) || c == '-' || c == ':':
				i++
			case c == '/':
				pt.name = pt.a.CopyString(DecodeEntitiesString(strings.ToLower(string(data[nameStart:i]))))
				pt.selfClosed = true
				i++
				state = stateSpacesAfterName
			case isSpace(c):
				pt.name = pt.a.CopyString(DecodeEntitiesString(strings.ToLower(string(data[nameStart:i]))))
				state = stateSpacesAfterName
				i++
			case c == '>':
				pt.name = pt.a.CopyString(DecodeEntitiesString(strings.ToLower(string(data[nameStart:i]))))
				i++
				return i, pt
			default:
				i++
			}

		case stateSpacesAfterName:
			switch {
			case isSpace(c):
				i++
			case c == '/':
				pt.selfClosed = true
				i++
			case c == '>':
				i++
				return i, pt
			case isAlpha(c):
				attrNameStart = i
				state = stateAttrName
			default:
				i++
			}

		case stateAttrName:
			switch {
			case isAlpha(c) || isDigit(c) || c == '-' || c == '_' || c == ':':
				i++
			default:
				attrNameEnd = i
				curComponent = lookupComponent(DecodeEntitiesString(strings.ToLower(string(data[attrNameStart:attrNameEnd]))))
				state = stateSpacesBeforeEq
			}

		case stateSpacesBeforeEq:
			switch {
			case isSpace(c):
				i++
			case c == '=':
				i++
				state = stateSpacesAfterEq
			case c == '>':
				// bare attribute immediately followed by '>': accepted,
				// discarded.
				i++
				return i, pt
			case c == '/':
				pt.selfClosed = true
				i++
				state = stateSpacesAfterName
			case isAlpha(c):
				// bare attribute followed directly by the next attribute
				// name: discard it and restart.
				attrNameStart = i
				state = stateAttrName
			default:
				i++
			}

		case stateSpacesAfterEq:
			switch {
			case isSpace(c):
				i++
			case c == '"':
				valueStart = i + 1
				i++
				state = stateDqValue
			case c == '\'':
				valueStart = i + 1
				i++
				state = stateSqValue
			case c == '>':
				i++
				return i, pt
			default:
				valueStart = i
				state = stateValue
			}

		case stateDqValue:
			if c == '"' {
				pt.addParam(curComponent, data[valueStart:i])
				i++
				state = stateSpacesAfterName
			} else {
				i++
			}

		case stateSqValue:
			if c == '\'' {
				pt.addParam(curComponent, data[valueStart:i])
				i++
				state = stateSpacesAfterName
			} else {
				i++
			}

		case stateValue:
			switch {
			case isSpace(c), c == '"':
				pt.addParam(curComponent, data[valueStart:i])
				i++
				state = stateSpacesAfterName
			case c == '>':
				pt.addParam(curComponent, data[valueStart:i])
				i++
				return i, pt
			case c == '/' && i+1 < len(data) && data[i+1] == '>':
				pt.addParam(curComponent, data[valueStart:i])
				pt.selfClosed = true
				i += 2
				return i, pt
			default:
				i++
			}

		case stateIgnoreBadTag:
			if c == '>' {
				i++
				return i, pt
			}
			i++
		}
	}

	// Ran off the end of the document without a closing '>': whatever was
	// assembled so far still stands, and the caller treats the whole
	// remaining buffer as consumed.
	pt.broken = true
	if state == stateName {
		pt.name = pt.a.CopyString(DecodeEntitiesString(strings.ToLower(string(data[nameStart:]))))
	}
	return len(data), pt
}

func (pt *parsedTag) addParam(c Component, raw []byte) {
	if c == ComponentNone || len(raw) == 0 {
		return
	}
	pt.params = append(pt.params, Param{Component: c, Value: pt.a.CopyString(DecodeEntitiesString(string(raw)))})
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}
