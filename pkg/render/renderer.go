package render

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/vango-dev/animate/pkg/vdom"
)

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// Pretty enables pretty-printed HTML output with indentation.
	// Should only be used in development as it increases output size.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces if not specified.
	Indent string

	// HIDPrefix is prepended to generated hydration IDs. Defaults to "h".
	HIDPrefix string
}

// Renderer handles server-side rendering of VNode trees to HTML.
// A Renderer is not safe for concurrent use.
type Renderer struct {
	config     RendererConfig
	hidCounter uint32
	handlers   map[string]any
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	if config.HIDPrefix == "" {
		config.HIDPrefix = "h"
	}
	return &Renderer{
		config:   config,
		handlers: make(map[string]any),
	}
}

// RenderToString renders a VNode tree to an HTML string.
func (r *Renderer) RenderToString(node *vdom.VNode) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams a VNode tree to the given writer.
func (r *Renderer) RenderToWriter(w io.Writer, node *vdom.VNode) error {
	return r.renderNode(w, node, 0)
}

// GetHandlers returns the handler registry collected during rendering.
// The map keys are in the format "hid_eventname" (e.g., "h1_onclick").
func (r *Renderer) GetHandlers() map[string]any {
	return r.handlers
}

// Handler returns the handler registered for hid and event ("onclick" or
// "click").
func (r *Renderer) Handler(hid, event string) (any, bool) {
	if !strings.HasPrefix(event, "on") {
		event = "on" + event
	}
	h, ok := r.handlers[hid+"_"+event]
	return h, ok
}

// Reset resets the renderer state for reuse.
// This clears the HID counter and handler registry.
func (r *Renderer) Reset() {
	r.hidCounter = 0
	r.handlers = make(map[string]any)
}

// renderNode dispatches rendering based on node kind.
func (r *Renderer) renderNode(w io.Writer, node *vdom.VNode, depth int) error {
	if node == nil {
		return nil
	}

	switch node.Kind {
	case vdom.KindElement:
		return r.renderElement(w, node, depth)
	case vdom.KindText:
		_, err := io.WriteString(w, escapeHTML(node.Text))
		return err
	case vdom.KindFragment:
		for _, child := range node.Children {
			if err := r.renderNode(w, child, depth); err != nil {
				return err
			}
		}
		return nil
	case vdom.KindComponent:
		if node.Comp == nil {
			return nil
		}
		return r.renderNode(w, node.Comp.Render(), depth)
	case vdom.KindRaw:
		_, err := io.WriteString(w, node.Text)
		return err
	default:
		return fmt.Errorf("unknown node kind: %d", node.Kind)
	}
}

// renderElement renders an HTML element with its attributes and children.
func (r *Renderer) renderElement(w io.Writer, node *vdom.VNode, depth int) error {
	tag := node.Tag
	if tag == "" {
		return fmt.Errorf("element without tag at depth %d", depth)
	}

	if r.config.Pretty && depth > 0 {
		r.writeIndent(w, depth)
	}

	if _, err := io.WriteString(w, "<"+tag); err != nil {
		return err
	}
	if err := r.renderAttributes(w, node); err != nil {
		return err
	}

	if needsHID(node) {
		node.HID = r.nextHID()
		if _, err := fmt.Fprintf(w, ` data-hid="%s"`, node.HID); err != nil {
			return err
		}
		r.registerHandlers(node)
		if ref := vdom.RefOf(node); ref != nil {
			ref.Set(node)
		}
	}

	if _, err := io.WriteString(w, ">"); err != nil {
		return err
	}
	if vdom.IsVoidElement(tag) {
		if r.config.Pretty {
			io.WriteString(w, "\n")
		}
		return nil
	}

	block := r.config.Pretty && len(node.Children) > 0 && !isInlineElement(tag)
	if block {
		io.WriteString(w, "\n")
	}
	for _, child := range node.Children {
		if err := r.renderNode(w, child, depth+1); err != nil {
			return err
		}
	}
	if block {
		r.writeIndent(w, depth)
	}

	if _, err := io.WriteString(w, "</"+tag+">"); err != nil {
		return err
	}
	if r.config.Pretty {
		io.WriteString(w, "\n")
	}
	return nil
}

// renderAttributes renders all attributes for an element in sorted order.
func (r *Renderer) renderAttributes(w io.Writer, node *vdom.VNode) error {
	if len(node.Props) == 0 {
		return nil
	}

	keys := make([]string, 0, len(node.Props))
	for key := range node.Props {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var events []string
	for _, key := range keys {
		value := node.Props[key]

		// Internal props (refs, hook configs) are never rendered.
		if strings.HasPrefix(key, "_") || key == vdom.KeyKey {
			continue
		}
		if vdom.IsEventKey(key) && isEventHandler(value) {
			events = append(events, strings.ToLower(key[2:]))
			continue
		}

		name := key
		switch key {
		case vdom.ClassNameKey:
			name = "class"
		case "htmlFor":
			name = "for"
		}

		if b, ok := value.(bool); ok {
			if b {
				if _, err := io.WriteString(w, " "+name); err != nil {
					return err
				}
			}
			continue
		}

		s := attrToString(value)
		if s == "" {
			continue
		}
		if _, err := fmt.Fprintf(w, ` %s="%s"`, name, escapeAttr(s)); err != nil {
			return err
		}
	}

	// Event marker attributes for client-side binding.
	for _, ev := range events {
		if _, err := fmt.Fprintf(w, ` data-on-%s="true"`, ev); err != nil {
			return err
		}
	}
	return nil
}

// needsHID reports whether the element is addressable from the client:
// it has event handlers or an element ref.
func needsHID(node *vdom.VNode) bool {
	return node.IsInteractive() || vdom.RefOf(node) != nil
}

// nextHID generates the next sequential hydration ID.
func (r *Renderer) nextHID() string {
	r.hidCounter++
	return r.config.HIDPrefix + strconv.FormatUint(uint64(r.hidCounter), 10)
}

// registerHandlers stores handler references for the node's HID.
func (r *Renderer) registerHandlers(node *vdom.VNode) {
	for key, value := range node.Props {
		if vdom.IsEventKey(key) && isEventHandler(value) {
			r.handlers[node.HID+"_"+key] = value
		}
	}
}

// isEventHandler returns true if the value looks like an event handler.
func isEventHandler(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case func(), func(any), vdom.EventHandler:
		return true
	case []any:
		for _, h := range v {
			if !isEventHandler(h) {
				return false
			}
		}
		return len(v) > 0
	default:
		return strings.HasPrefix(fmt.Sprintf("%T", value), "func")
	}
}

// CallHandler invokes a registered handler value with the event payload.
// It accepts func(), func(any), vdom.EventHandler, and merged []any
// handler lists, and reports whether anything was called.
func CallHandler(handler any, payload any) bool {
	switch h := handler.(type) {
	case func():
		h()
		return true
	case func(any):
		h(payload)
		return true
	case vdom.EventHandler:
		return CallHandler(h.Handler, payload)
	case []any:
		called := false
		for _, each := range h {
			if CallHandler(each, payload) {
				called = true
			}
		}
		return called
	}
	return false
}

// attrToString converts an attribute value to a string.
func attrToString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case vdom.Style:
		return v.CSS()
	case map[string]any:
		return vdom.Style(v).CSS()
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// isInlineElement reports whether pretty printing keeps tag on one line.
func isInlineElement(tag string) bool {
	switch tag {
	case "a", "b", "button", "code", "em", "i", "label", "span", "strong", "title", "h1", "h2", "p":
		return true
	}
	return false
}

// writeIndent writes indentation for pretty printing.
func (r *Renderer) writeIndent(w io.Writer, depth int) {
	io.WriteString(w, strings.Repeat(r.config.Indent, depth))
}
