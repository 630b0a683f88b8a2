// Package vdom provides the virtual DOM node types used by animate.
//
// A VNode represents an element, text, fragment, component, or raw HTML.
// Props holds attributes and event handlers keyed by attribute name, with
// event handlers stored under their "on" prefixed name (e.g. "onanimationend").
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	Div(Class("card"), ID("main"),
//	    H1(Text("Title")),
//	    OnAnimationEnd(func() { ... }),
//	)
//
// Components that receive a Props map can build their root element with
// Element, which copies the map instead of applying Attr values one by one:
//
//	Element("div", props, children...)
//
// # Styles and refs
//
// Style is a map of camelCase style properties. A nil value clears a
// property, so the renderer omits it. ElementRef receives the rendered node
// and its hydration ID once the host renders the element carrying RefAttr.
package vdom
