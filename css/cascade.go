package css

import (
	"strings"

	"github.com/andybalholm/cascadia"
)

// propState is one resolved cascade slot (the winning declaration so far
// for one property), tracking enough to resolve ties the way CSS does:
// !important beats normal, higher specificity beats lower, and later
// source order beats earlier when both are equal.
type propState struct {
	val       string
	spec      cascadia.Specificity
	order     int
	important bool
}

func applyDeclarationToCascade(store map[string]propState, d declaration, spec cascadia.Specificity, order int) {
	prop := strings.ToLower(strings.TrimSpace(d.property))
	value := strings.TrimSpace(d.value)
	if prop == "" || value == "" {
		return
	}
	entry := propState{val: value, spec: spec, order: order, important: d.important}
	prev, ok := store[prop]
	if !ok {
		store[prop] = entry
		return
	}
	switch {
	case prev.important && !d.important:
		return
	case d.important && !prev.important:
		store[prop] = entry
	case prev.spec.Less(spec):
		store[prop] = entry
	case spec.Less(prev.spec):
		return
	case order >= prev.order:
		store[prop] = entry
	}
}

// CheckTagBlock evaluates every rule in the stylesheet against tag's
// mirror node in m, returning the resolved Block, or nil if no rule
// matched this tag at all.
func (s *Stylesheet) CheckTagBlock(tag BlockTag, m *Mirror) *Block {
	if s == nil || m == nil {
		return nil
	}
	node := m.Node(tag)
	if node == nil {
		return nil
	}

	props := make(map[string]propState)
	matched := false
	for _, r := range s.rules {
		if r.selector == nil || !r.selector.Match(node) {
			continue
		}
		matched = true
		for _, d := range r.declarations {
			applyDeclarationToCascade(props, d, r.specificity, r.order)
		}
	}
	if !matched {
		return nil
	}

	b := &Block{}
	for prop, st := range props {
		switch prop {
		case "display":
			b.Display = strings.ToLower(st.val)
		case "visibility":
			b.Visibility = strings.ToLower(st.val)
		case "color":
			if hex := HexFromString(st.val); hex != "" {
				b.FgColor = hex
			}
		case "background", "background-color":
			if hex := colorFromBackgroundValue(st.val); hex != "" {
				b.BgColor = hex
			}
		}
	}
	return b
}
