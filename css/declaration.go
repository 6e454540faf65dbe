package css

import (
	"strings"

	"github.com/aymerick/douceur/parser"
)

// declaration is a single property:value pair out of a parsed stylesheet
// rule or a style="" attribute.
type declaration struct {
	property  string
	value     string
	important bool
}

// parseDeclarations parses a `prop: value; prop2: value2` fragment (the
// inside of a style="" attribute, or a rule's declaration block) using
// douceur, falling back to a manual split when douceur fails, yields no
// usable declaration, or hands back a property without its value, since
// adversarial or malformed mail HTML will make douceur reject or truncate
// fragments a mail client would still render.
func parseDeclarations(src string) []declaration {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil
	}
	if decls, err := parser.ParseDeclarations(src); err == nil {
		out := make([]declaration, 0, len(decls))
		lostValue := false
		for _, d := range decls {
			if d == nil {
				continue
			}
			prop := strings.ToLower(strings.TrimSpace(d.Property))
			val := strings.TrimSpace(d.Value)
			if prop != "" && val == "" {
				lostValue = true
			}
			if prop == "" || val == "" {
				continue
			}
			out = append(out, declaration{property: prop, value: val, important: d.Important})
		}
		if len(out) > 0 && !lostValue {
			return out
		}
	}

	var out []declaration
	for _, part := range strings.Split(src, ";") {
		kv := strings.SplitN(part, ":", 2)
		if len(kv) != 2 {
			continue
		}
		prop := strings.ToLower(strings.TrimSpace(kv[0]))
		value := strings.TrimSpace(kv[1])
		if prop == "" || value == "" {
			continue
		}
		important := false
		if lower := strings.ToLower(value); strings.HasSuffix(lower, "!important") {
			important = true
			value = strings.TrimSpace(value[:len(value)-len("!important")])
		}
		out = append(out, declaration{property: prop, value: value, important: important})
	}
	return out
}

// ParseDeclarationBlock parses a style="" attribute's contents directly
// into a Block's display/visibility/color/background-color fields. Any
// other property is parsed but discarded.
func ParseDeclarationBlock(src string) *Block {
	decls := parseDeclarations(src)
	if len(decls) == 0 {
		return nil
	}
	b := &Block{}
	applyDeclarationsToBlock(b, decls)
	return b
}

func applyDeclarationsToBlock(b *Block, decls []declaration) {
	for _, d := range decls {
		value := d.value
		switch d.property {
		case "display":
			b.Display = strings.ToLower(value)
		case "visibility":
			b.Visibility = strings.ToLower(value)
		case "color":
			if hex := HexFromString(value); hex != "" {
				b.FgColor = hex
			}
		case "background", "background-color":
			if hex := colorFromBackgroundValue(value); hex != "" {
				b.BgColor = hex
			}
		}
	}
}

// colorFromBackgroundValue extracts a color out of a (possibly compound)
// "background" shorthand value, e.g. "background: url(x.png) #fff".
func colorFromBackgroundValue(value string) string {
	if hex := HexFromString(value); hex != "" {
		return hex
	}
	for i := 0; i < len(value); i++ {
		if value[i] == '#' {
			j := i + 1
			for j < len(value) && isHexDigit(value[j]) {
				j++
			}
			if hex := HexFromString(value[i:j]); hex != "" {
				return hex
			}
		}
	}
	return ""
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
