package vdom

import "sync"

// ElementRef holds a reference to a rendered element.
// The renderer sets it when it emits the element carrying RefAttr; on the
// server the reference is the VNode plus its hydration ID, which is what a
// client-side handle is addressed by.
//
// ElementRef is safe for concurrent access.
type ElementRef struct {
	mu    sync.RWMutex
	node  *VNode
	isSet bool
}

// NewElementRef creates an unset ElementRef.
func NewElementRef() *ElementRef {
	return &ElementRef{}
}

// Current returns the referenced node, or nil before the first render.
func (r *ElementRef) Current() *VNode {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.node
}

// HID returns the hydration ID of the referenced node.
func (r *ElementRef) HID() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.node == nil {
		return ""
	}
	return r.node.HID
}

// Set attaches the ref to node.
func (r *ElementRef) Set(node *VNode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.node = node
	r.isSet = true
}

// IsSet returns true if the ref has been attached to a rendered element.
func (r *ElementRef) IsSet() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.isSet
}

// Clear detaches the ref.
func (r *ElementRef) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.node = nil
	r.isSet = false
}

// RefAttr attaches ref to the element it is passed to.
func RefAttr(ref *ElementRef) Attr {
	if ref == nil {
		return Attr{}
	}
	return attr(RefKey, ref)
}

// RefOf returns the ElementRef attached to node, if any.
func RefOf(node *VNode) *ElementRef {
	if node == nil || node.Props == nil {
		return nil
	}
	ref, _ := node.Props[RefKey].(*ElementRef)
	return ref
}
