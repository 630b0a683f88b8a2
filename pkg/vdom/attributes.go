package vdom

import "strings"

// attr creates an Attr with the given key and value.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Key sets the reconciliation key.
func Key(key string) Attr { return attr(KeyKey, key) }

// Class sets the className prop, joining multiple classes with spaces.
// Empty entries are skipped.
func Class(classes ...string) Attr { return attr(ClassNameKey, JoinClasses(classes...)) }

// ClassIf adds a class conditionally.
func ClassIf(condition bool, class string) Attr {
	if condition {
		return attr(ClassNameKey, class)
	}
	return Attr{} // Empty attr, will be ignored
}

// StyleAttr sets the style prop from a Style map.
func StyleAttr(style Style) Attr { return attr(StyleKey, style) }

// Data creates a data-* attribute.
// Example: Data("id", "123") → data-id="123"
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Role sets the role attribute.
func Role(role string) Attr { return attr("role", role) }

// AriaLive sets the aria-live attribute.
func AriaLive(mode string) Attr { return attr("aria-live", mode) }

// AriaBusy sets the aria-busy attribute.
func AriaBusy(busy bool) Attr { return attr("aria-busy", busy) }

// Type sets the type attribute.
func Type(t string) Attr { return attr("type", t) }

// Disabled sets the disabled attribute.
func Disabled() Attr { return attr("disabled", true) }

// AttrIf adds any attribute conditionally.
func AttrIf(condition bool, a Attr) Attr {
	if condition {
		return a
	}
	return Attr{}
}

// JoinClasses joins the non-empty class names with a single space.
// Surrounding whitespace on each entry is trimmed.
func JoinClasses(classes ...string) string {
	switch len(classes) {
	case 0:
		return ""
	case 1:
		return strings.TrimSpace(classes[0])
	}
	parts := make([]string, 0, len(classes))
	for _, c := range classes {
		if c = strings.TrimSpace(c); c != "" {
			parts = append(parts, c)
		}
	}
	return strings.Join(parts, " ")
}
