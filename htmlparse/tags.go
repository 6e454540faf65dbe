package htmlparse

import "strings"

// TagID identifies a known tag name. UnknownTagID marks a name the
// dictionary has never heard of.
type TagID int

const UnknownTagID TagID = -1

// TagFlag is a bitmask over a tag's parse-time classification and the
// anomalies found while opening or closing it.
type TagFlag uint32

const (
	CMInline TagFlag = 1 << iota
	CMEmpty
	CMHead
	CMUnknown
	CMUnique
	FLBlock
	FLHref
	FLClosed
	FLClosing
	FLIgnore
	FLBroken
	FLImage
)

const (
	TagHTML TagID = iota
	TagHead
	TagBody
	TagTitle
	TagMeta
	TagLink
	TagStyle
	TagScript
	TagBase
	TagDiv
	TagP
	TagSpan
	TagA
	TagImg
	TagBr
	TagHr
	TagTable
	TagTr
	TagTd
	TagTh
	TagThead
	TagTbody
	TagTfoot
	TagUl
	TagOl
	TagLi
	TagB
	TagStrong
	TagI
	TagEm
	TagU
	TagSmall
	TagFont
	TagH1
	TagH2
	TagH3
	TagH4
	TagH5
	TagH6
	TagBlockquote
	TagPre
	TagCode
	TagForm
	TagInput
	TagButton
	TagLabel
	TagCenter

	numTagIDs
)

type tagDictEntry struct {
	id    TagID
	flags TagFlag
}

// tagDict is the immutable, process-wide name→{id,flags} table. It is
// built once and never mutated, so concurrent lookups are always safe.
var tagDict = map[string]tagDictEntry{
	"html":       {TagHTML, CMUnique},
	"head":       {TagHead, CMHead | CMUnique},
	"body":       {TagBody, FLBlock | CMUnique},
	"title":      {TagTitle, CMHead | CMUnique},
	"meta":       {TagMeta, CMHead | CMEmpty},
	"link":       {TagLink, CMHead | CMEmpty | FLHref},
	"style":      {TagStyle, CMHead},
	"script":     {TagScript, CMHead | CMUnknown},
	"base":       {TagBase, CMHead | CMEmpty | CMUnique | FLHref},
	"div":        {TagDiv, FLBlock},
	"p":          {TagP, FLBlock},
	"span":       {TagSpan, CMInline},
	"a":          {TagA, CMInline | FLHref},
	"img":        {TagImg, CMInline | CMEmpty | FLImage | FLHref},
	"br":         {TagBr, CMInline | CMEmpty},
	"hr":         {TagHr, FLBlock | CMEmpty},
	"table":      {TagTable, FLBlock},
	"tr":         {TagTr, FLBlock},
	"td":         {TagTd, FLBlock},
	"th":         {TagTh, FLBlock},
	"thead":      {TagThead, FLBlock},
	"tbody":      {TagTbody, FLBlock},
	"tfoot":      {TagTfoot, FLBlock},
	"ul":         {TagUl, FLBlock},
	"ol":         {TagOl, FLBlock},
	"li":         {TagLi, FLBlock},
	"b":          {TagB, CMInline},
	"strong":     {TagStrong, CMInline},
	"i":          {TagI, CMInline},
	"em":         {TagEm, CMInline},
	"u":          {TagU, CMInline},
	"small":      {TagSmall, CMInline},
	"font":       {TagFont, CMInline},
	"h1":         {TagH1, FLBlock},
	"h2":         {TagH2, FLBlock},
	"h3":         {TagH3, FLBlock},
	"h4":         {TagH4, FLBlock},
	"h5":         {TagH5, FLBlock},
	"h6":         {TagH6, FLBlock},
	"blockquote": {TagBlockquote, FLBlock},
	"pre":        {TagPre, FLBlock},
	"code":       {TagCode, CMInline},
	"form":       {TagForm, FLBlock},
	"input":      {TagInput, CMInline | CMEmpty},
	"button":     {TagButton, CMInline},
	"label":      {TagLabel, CMInline},
	"center":     {TagCenter, FLBlock},
}

var tagNameByID = func() map[TagID]string {
	m := make(map[TagID]string, len(tagDict))
	for name, entry := range tagDict {
		m[entry.id] = name
	}
	return m
}()

// TagIDByName looks up a tag name (case-insensitive) in the dictionary,
// returning UnknownTagID when the name is not recognized.
func TagIDByName(name string) TagID {
	entry, ok := tagDict[strings.ToLower(name)]
	if !ok {
		return UnknownTagID
	}
	return entry.id
}

// TagNameByID reverses TagIDByName, returning "" for an id the dictionary
// never assigned.
func TagNameByID(id TagID) string {
	return tagNameByID[id]
}

func lookupTag(name string) (TagID, TagFlag) {
	entry, ok := tagDict[strings.ToLower(name)]
	if !ok {
		return UnknownTagID, CMUnknown
	}
	return entry.id, entry.flags
}
