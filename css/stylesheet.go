package css

import (
	"fmt"
	"log"
	"strings"

	"github.com/andybalholm/cascadia"
	cssast "github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
)

// rule is one compiled selector out of a parsed stylesheet, paired with
// its declarations and the specificity/order cascadia and the source
// position give it, for applyDeclarationToCascade's later-wins-unless-less-specific
// resolution.
type rule struct {
	selector     cascadia.Sel
	specificity  cascadia.Specificity
	declarations []declaration
	order        int
}

// Stylesheet is an ordered collection of compiled rules, built
// incrementally across every <style> block the document scanner hands to
// ParseStylesheet; the prior parameter threads that accumulation so rules
// from an earlier block stay in force for later ones.
type Stylesheet struct {
	rules []rule
}

// ParseStylesheet parses one <style> block's text and appends its rules to
// prior (which may be nil for the first block). @media and @supports
// bodies are always treated as active, since this package models no
// viewport or feature set, and @import is skipped outright, since this
// package only ever sees an in-memory byte buffer with no means to fetch
// an external sheet. A parse error degrades to "no new rules from this
// block", never to discarding rules already accumulated in prior.
func ParseStylesheet(src string, prior *Stylesheet) (*Stylesheet, error) {
	ss := prior
	if ss == nil {
		ss = &Stylesheet{}
	}
	trimmed := strings.TrimSpace(src)
	if trimmed == "" {
		return ss, nil
	}
	sheet, err := parser.Parse(trimmed)
	if err != nil {
		return ss, fmt.Errorf("css: parse stylesheet: %w", err)
	}

	order := len(ss.rules)
	var walk func(list []*cssast.Rule)
	walk = func(list []*cssast.Rule) {
		for _, r := range list {
			if r == nil {
				continue
			}
			switch r.Kind {
			case cssast.AtRule:
				switch strings.ToLower(strings.TrimSpace(r.Name)) {
				case "@import":
					continue
				default:
					if r.EmbedsRules() {
						walk(r.Rules)
					}
				}
			case cssast.QualifiedRule:
				decls := convertDeclarations(r.Declarations)
				if len(decls) == 0 || len(r.Selectors) == 0 {
					continue
				}
				group, err := cascadia.ParseGroup(strings.Join(r.Selectors, ","))
				if err != nil {
					log.Printf("css: skipping unparseable selector %q: %v", strings.Join(r.Selectors, ","), err)
					continue
				}
				for _, sel := range group {
					if sel == nil || sel.PseudoElement() != "" {
						continue
					}
					ss.rules = append(ss.rules, rule{
						selector:     sel,
						specificity:  sel.Specificity(),
						declarations: decls,
						order:        order,
					})
					order++
				}
			}
		}
	}
	walk(sheet.Rules)
	return ss, nil
}

func convertDeclarations(list []*cssast.Declaration) []declaration {
	if len(list) == 0 {
		return nil
	}
	out := make([]declaration, 0, len(list))
	for _, d := range list {
		if d == nil {
			continue
		}
		prop := strings.ToLower(strings.TrimSpace(d.Property))
		val := strings.TrimSpace(d.Value)
		if prop == "" || val == "" {
			continue
		}
		out = append(out, declaration{property: prop, value: val, important: d.Important})
	}
	return out
}
