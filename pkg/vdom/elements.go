package vdom

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// createElement creates a new VNode with the given tag and arguments.
// Arguments can be: nil, Attr, []Attr, Props, *VNode, []*VNode, Component,
// string, EventHandler.
func createElement(tag string, args []any) *VNode {
	node := &VNode{
		Kind:     KindElement,
		Tag:      tag,
		Props:    make(Props),
		Children: make([]*VNode, 0),
	}

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			continue
		case Attr:
			node.setAttr(v)
		case []Attr:
			for _, a := range v {
				node.setAttr(a)
			}
		case Props:
			for k, val := range v {
				node.setAttr(Attr{Key: k, Value: val})
			}
		case *VNode:
			if v != nil {
				node.Children = append(node.Children, v)
			}
		case []*VNode:
			node.appendChildren(v)
		case Component:
			node.Children = append(node.Children, &VNode{
				Kind: KindComponent,
				Comp: v,
			})
		case string:
			node.Children = append(node.Children, Text(v))
		case EventHandler:
			node.Props[v.Event] = v.Handler
		}
	}

	return node
}

func (v *VNode) setAttr(a Attr) {
	if a.Key == "" {
		return
	}
	if a.Key == KeyKey {
		if s, ok := a.Value.(string); ok {
			v.Key = s
		}
	}
	// Repeated class attrs accumulate instead of replacing.
	if a.Key == ClassNameKey {
		if s, ok := a.Value.(string); ok {
			v.Props[ClassNameKey] = JoinClasses(v.Props.String(ClassNameKey), s)
			return
		}
	}
	v.Props[a.Key] = a.Value
}

func (v *VNode) appendChildren(children []*VNode) {
	for _, child := range children {
		if child != nil {
			v.Children = append(v.Children, child)
		}
	}
}

// Element builds an element from a complete Props map. Props are copied so
// the caller's map is never retained; children that are nil are dropped.
func Element(tag string, props Props, children ...*VNode) *VNode {
	node := &VNode{
		Kind:     KindElement,
		Tag:      tag,
		Props:    props.Clone(),
		Children: make([]*VNode, 0, len(children)),
	}
	if key, ok := node.Props[KeyKey].(string); ok {
		node.Key = key
	}
	node.appendChildren(children)
	return node
}

// Document structure elements

func Html(args ...any) *VNode    { return createElement("html", args) }
func Head(args ...any) *VNode    { return createElement("head", args) }
func Body(args ...any) *VNode    { return createElement("body", args) }
func Title(args ...any) *VNode   { return createElement("title", args) }
func Meta(args ...any) *VNode    { return createElement("meta", args) }
func Script(args ...any) *VNode  { return createElement("script", args) }
func StyleEl(args ...any) *VNode { return createElement("style", args) }

// Content elements

func Div(args ...any) *VNode     { return createElement("div", args) }
func Span(args ...any) *VNode    { return createElement("span", args) }
func P(args ...any) *VNode       { return createElement("p", args) }
func H1(args ...any) *VNode      { return createElement("h1", args) }
func H2(args ...any) *VNode      { return createElement("h2", args) }
func Section(args ...any) *VNode { return createElement("section", args) }
func Article(args ...any) *VNode { return createElement("article", args) }
func Main(args ...any) *VNode    { return createElement("main", args) }
func Button(args ...any) *VNode  { return createElement("button", args) }
func Img(args ...any) *VNode     { return createElement("img", args) }
func Br(args ...any) *VNode      { return createElement("br", args) }
