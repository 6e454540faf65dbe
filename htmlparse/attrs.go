package htmlparse

import "strings"

// Component is the normalized kind of an attribute, not its literal name:
// href, src, and action all fold onto ComponentHref.
type Component int

const (
	ComponentNone Component = iota
	ComponentName
	ComponentHref
	ComponentColor
	ComponentBgColor
	ComponentStyle
	ComponentClass
	ComponentWidth
	ComponentHeight
	ComponentSize
	ComponentRel
	ComponentAlt
	ComponentID
)

// attrComponents is the frozen attribute-name → Component table. A name
// absent from it maps to ComponentNone, meaning its value is parsed but
// never stored.
var attrComponents = map[string]Component{
	"name":       ComponentName,
	"href":       ComponentHref,
	"src":        ComponentHref,
	"action":     ComponentHref,
	"color":      ComponentColor,
	"bgcolor":    ComponentBgColor,
	"style":      ComponentStyle,
	"class":      ComponentClass,
	"width":      ComponentWidth,
	"height":     ComponentHeight,
	"size":       ComponentSize,
	"rel":        ComponentRel,
	"alt":        ComponentAlt,
	"id":         ComponentID,
}

func lookupComponent(attrName string) Component {
	c, ok := attrComponents[strings.ToLower(attrName)]
	if !ok {
		return ComponentNone
	}
	return c
}

// Param is one (component, value) pair parsed off a tag. Duplicates of
// the same component are kept in parse order; Tag.Attr returns the first.
type Param struct {
	Component Component
	Value     string
}
