// Package render renders vdom trees to HTML.
//
// The renderer walks a VNode tree, writes escaped HTML, assigns hydration
// IDs (data-hid) to elements that carry event handlers or an element ref,
// and collects a handler registry keyed "hid_eventname" (for example
// "h1_onanimationend") that a host uses to route client events back to Go
// functions.
//
// Style maps render as an inline style attribute in kebab-case with
// cleared (nil) properties omitted:
//
//	Div(StyleAttr(Style{"animationDuration": "500ms"}))
//	// <div style="animation-duration: 500ms"></div>
package render
