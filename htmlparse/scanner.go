package htmlparse

import (
	"log"
	"strings"

	"mailhtml/css"
)

const (
	scanParseStart = iota
	scanTagBegin
	scanSgmlTag
	scanXMLTag
	scanXMLTagEnd
	scanCompoundTag
	scanCommentTag
	scanCommentContent
	scanSgmlContent
	scanContentWrite
	scanContentIgnoreSp
	scanContentIgnore
	scanContentStyle
)

type scanner struct {
	doc *Document
	tb  treeBuilder
	pos int

	state      int
	closing    bool
	runStart   int
	needDecode bool
	saveSpace  bool
	contentTag *Tag

	obrace, ebrace int
	dashRun        int

	anchorHrefTag *Tag
}

// run drives the full parse: the outer scanner tokenizes data into tags,
// comments, and content runs, delegating a tag's interior to
// parseTagInterior and handing the result to the tree builder.
func (s *scanner) run(data []byte) {
	if len(data) == 0 {
		return
	}
	if data[0] != '<' {
		s.doc.Flags |= DocBadStart
		s.state = scanContentWrite
	} else {
		s.state = scanParseStart
	}

	for s.pos < len(data) {
		c := data[s.pos]
		switch s.state {
		case scanParseStart:
			if c == '<' {
				s.state = scanTagBegin
			} else {
				s.pos++
			}

		case scanTagBegin:
			switch c {
			case '<':
				s.pos++
			case '!':
				s.state = scanSgmlTag
				s.pos++
			case '?':
				s.doc.Flags |= DocXML
				s.state = scanXMLTag
				s.pos++
			case '/':
				s.closing = true
				s.pos++
			case '>':
				s.doc.Flags |= DocBadElements
				s.pos++
				s.beginContentWrite()
			default:
				if !isAlpha(c) {
					// Not a recognizable tag start at all: the '<' and
					// this byte are dropped and content writing resumes
					// after them.
					s.pos++
					s.beginContentWrite()
					continue
				}
				consumed, pt := parseTagInterior(data[s.pos:], s.closing, s.doc.arena)
				s.pos += consumed
				s.closing = false
				s.handleParsedTag(pt, data)
			}

		case scanSgmlTag:
			switch c {
			case '[':
				s.state = scanCompoundTag
				s.obrace, s.ebrace = 1, 0
				s.pos++
			case '-':
				s.state = scanCommentTag
				s.pos++
			default:
				s.state = scanSgmlContent
			}

		case scanSgmlContent:
			if c == '>' {
				s.pos++
				s.beginContentWrite()
			} else {
				s.pos++
			}

		case scanCompoundTag:
			switch c {
			case '[':
				s.obrace++
				s.pos++
			case ']':
				s.ebrace++
				s.pos++
			case '>':
				if s.obrace == s.ebrace {
					s.pos++
					s.beginContentWrite()
				} else {
					s.pos++
				}
			default:
				s.pos++
			}

		case scanCommentTag:
			if c != '-' {
				s.doc.Flags |= DocBadElements
				s.pos++
				s.beginContentWrite()
			} else {
				s.pos++
				s.dashRun = 0
				s.state = scanCommentContent
			}

		case scanCommentContent:
			switch {
			case c == '-':
				s.dashRun++
				s.pos++
			case c == '>' && s.dashRun >= 2:
				s.pos++
				s.beginContentWrite()
			default:
				s.dashRun = 0
				s.pos++
			}

		case scanXMLTag:
			switch c {
			case '?':
				s.state = scanXMLTagEnd
				s.pos++
			case '>':
				s.doc.Flags |= DocBadElements
				s.pos++
				s.beginContentWrite()
			default:
				s.pos++
			}

		case scanXMLTagEnd:
			if c == '>' {
				s.pos++
				s.beginContentWrite()
			} else {
				s.doc.Flags |= DocBadElements
				s.pos++
			}

		case scanContentStyle:
			s.runStyleCapture(data)

		case scanContentIgnore:
			if c == '<' {
				s.state = scanTagBegin
			} else {
				s.pos++
			}

		case scanContentWrite:
			s.runContentWrite(data)

		case scanContentIgnoreSp:
			if isSpace(c) {
				s.pos++
			} else {
				s.runStart = s.pos
				s.state = scanContentWrite
			}
		}
	}

	if s.runStart < len(data) && (s.state == scanContentWrite || s.state == scanContentIgnoreSp) {
		s.flushRun(data, len(data))
	}
}

func (s *scanner) beginContentWrite() {
	s.state = scanContentWrite
	s.runStart = s.pos
}

// handleParsedTag hands a freshly scanned tag's name and attributes to
// the tree builder and applies the per-tag side effects the document
// scanner is responsible for: newline synthesis, style capture, anchor
// exceptions, and dispatch to the image/base/link processors.
func (s *scanner) handleParsedTag(pt parsedTag, data []byte) {
	id, defaultFlags := lookupTag(pt.name)
	tag := s.doc.tagPool.New()
	tag.Name, tag.ID, tag.Flags, tag.Params = pt.name, id, defaultFlags, pt.params
	if pt.selfClosed {
		tag.Flags |= FLClosed
	}
	if pt.closing {
		tag.Flags |= FLClosing
		if tag.Flags&FLClosed != 0 {
			s.doc.Flags |= DocBadElements
		}
	}
	if pt.broken {
		tag.Flags |= FLBroken
		s.doc.Flags |= DocBadElements
	}

	s.doc.Tags = append(s.doc.Tags, tag)

	emit := s.tb.process(s.doc, tag)

	if tag.ID != UnknownTagID && int(tag.ID) < int(numTagIDs) && tag.Flags&FLClosing == 0 && s.doc.totalTags <= MaxTags {
		if tag.Flags&CMUnique != 0 && s.doc.tagsSeen[tag.ID] {
			s.doc.Flags |= DocDuplicateElements
		}
		s.doc.tagsSeen[tag.ID] = true
	}

	switch {
	case tag.Flags&(FLClosed|FLClosing) == 0:
		s.contentTag = tag
	case tag.Flags&FLClosing != 0 && tag.Flags&(CMInline|CMEmpty) == 0:
		// A block tag just closed: resume crediting content to whatever
		// tag actually enclosed it, if the closing tag paired up with a
		// real open one.
		if s.tb.lastClosed != nil {
			s.contentTag = s.tb.lastClosed.Parent
		}
	case tag.Flags&FLClosing != 0:
		// A closing inline tag (e.g. </b>) isn't tracked on the block
		// stack, so there is no specific open tag to find; fall back to
		// whatever block currently encloses it.
		s.contentTag = tag.Parent
	}

	switch {
	case tag.ID == TagBr || tag.ID == TagHr:
		s.writeLineBreak()
	case (tag.ID == TagP || tag.ID == TagTr || tag.ID == TagDiv) && tag.Flags&FLClosing != 0:
		s.writeLineBreak()
	}

	if tag.Flags&FLBlock != 0 && tag.Flags&FLClosing == 0 {
		processBlockTag(tag)
	}

	if tag.ID == TagA && tag.Flags&FLClosing == 0 {
		resolveTagURL(s.doc, tag)
		s.anchorHrefTag = tag
	} else if tag.ID == TagA && tag.Flags&FLClosing != 0 && s.anchorHrefTag != nil {
		if ue, ok := s.anchorHrefTag.Extra.(URLExtra); ok {
			s.doc.Exceptions = append(s.doc.Exceptions, &Exception{
				Pos: s.anchorHrefTag.ContentOffset, Len: s.anchorHrefTag.ContentLength,
				Type: ExceptionURL, Tag: s.anchorHrefTag, URL: ue.URL,
			})
		}
		s.anchorHrefTag = nil
	} else if tag.ID == TagBase && tag.Flags&FLClosing == 0 {
		processBaseTag(s.doc, tag)
	} else if tag.ID == TagLink && tag.Flags&FLClosing == 0 {
		processLinkTag(s.doc, tag)
	}

	if tag.ID == TagImg && tag.Flags&FLClosing == 0 {
		alt := processImgTag(s.doc, tag)
		if alt != "" {
			s.writeAltText(alt)
		}
	}

	if !emit {
		if tag.ID == TagStyle {
			s.state = scanContentStyle
			s.runStart = s.pos
		} else {
			s.state = scanContentIgnore
		}
		return
	}
	s.beginContentWrite()
}

func (s *scanner) writeLineBreak() {
	if len(s.doc.Parsed) > 0 && s.doc.Parsed[len(s.doc.Parsed)-1] == '\n' {
		return
	}
	s.writeContent("\r\n")
}

func (s *scanner) writeAltText(alt string) {
	if len(s.doc.Parsed) > 0 && !isSpace(s.doc.Parsed[len(s.doc.Parsed)-1]) {
		s.writeContent(" ")
	}
	s.writeContent(alt)
}

// writeContent appends text to the document's rendered buffer, crediting
// its length to the currently open content tag (and lazily setting that
// tag's offset the first time it receives any text).
func (s *scanner) writeContent(text string) {
	if s.contentTag != nil {
		if s.contentTag.ContentLength == 0 {
			s.contentTag.ContentOffset = s.doc.buf.Len()
		}
		s.contentTag.ContentLength += len(text)
	}
	s.doc.buf.WriteString(text)
	s.doc.Parsed = s.doc.buf.Bytes()
}

func (s *scanner) flushRun(data []byte, end int) {
	if s.runStart >= end {
		return
	}
	raw := data[s.runStart:end]
	if s.needDecode {
		s.writeContent(DecodeEntitiesString(string(raw)))
		s.needDecode = false
	} else {
		s.writeContent(string(raw))
	}
	s.runStart = end
}

func (s *scanner) runContentWrite(data []byte) {
	c := data[s.pos]
	if c != '<' {
		switch {
		case c == '&':
			s.needDecode = true
			s.pos++
		case isSpace(c):
			s.flushRun(data, s.pos)
			s.saveSpace = true
			s.pos++
			s.runStart = s.pos
			s.state = scanContentIgnoreSp
		default:
			if s.saveSpace {
				if len(s.doc.Parsed) > 0 && !isSpace(s.doc.Parsed[len(s.doc.Parsed)-1]) {
					s.writeContent(" ")
				}
				s.saveSpace = false
			}
			s.pos++
		}
		return
	}

	s.flushRun(data, s.pos)
	s.contentTag = nil
	s.state = scanTagBegin
}

// runStyleCapture looks for the next "</s" case-insensitively, treats
// everything before it as one <style> block's text, and folds it into
// the document's stylesheet.
func (s *scanner) runStyleCapture(data []byte) {
	rest := data[s.pos:]
	idx := strings.Index(strings.ToLower(string(rest)), "</s")
	if idx < 0 {
		s.pos = len(data)
		s.state = scanContentIgnore
		return
	}
	body := string(rest[:idx])
	if sheet, err := css.ParseStylesheet(body, s.doc.Style); err == nil {
		s.doc.Style = sheet
	} else {
		log.Printf("htmlparse: error parsing CSS text: %v", err)
	}
	s.pos += idx
	s.state = scanTagBegin
}
