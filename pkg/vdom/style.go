package vdom

import (
	"fmt"
	"sort"
	"strings"
)

// Style is an inline style map keyed by camelCase property name
// (e.g. "animationDuration"). A nil value clears the property.
type Style map[string]any

// Clone returns a shallow copy of s. A nil Style clones to an empty map.
func (s Style) Clone() Style {
	out := make(Style, len(s)+1)
	for k, v := range s {
		out[k] = v
	}
	return out
}

// CSS renders s as an inline style declaration list with properties in
// sorted order. Cleared (nil) and empty values are omitted.
func (s Style) CSS() string {
	if len(s) == 0 {
		return ""
	}
	keys := make([]string, 0, len(s))
	for k, v := range s {
		if v == nil {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		val := styleValue(s[k])
		if val == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("; ")
		}
		b.WriteString(CSSProperty(k))
		b.WriteString(": ")
		b.WriteString(val)
	}
	return b.String()
}

// CSSProperty converts a camelCase style key into its CSS property name.
// Custom properties ("--accent") and already hyphenated names pass through.
// A leading capital marks a vendor prefix: "WebkitAnimation" becomes
// "-webkit-animation".
func CSSProperty(key string) string {
	if strings.HasPrefix(key, "--") || strings.Contains(key, "-") {
		return key
	}
	var b strings.Builder
	b.Grow(len(key) + 4)
	for _, r := range key {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte('-')
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func styleValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case *string:
		if val == nil {
			return ""
		}
		return *val
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
