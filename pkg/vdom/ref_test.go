package vdom

import "testing"

func TestElementRef(t *testing.T) {
	ref := NewElementRef()
	if ref.IsSet() || ref.Current() != nil || ref.HID() != "" {
		t.Fatal("new ref should be unset")
	}

	node := Div(RefAttr(ref))
	if RefOf(node) != ref {
		t.Fatal("RefOf should find the attached ref")
	}

	node.HID = "h3"
	ref.Set(node)
	if !ref.IsSet() || ref.Current() != node || ref.HID() != "h3" {
		t.Errorf("ref after Set = %v, hid %q", ref.Current(), ref.HID())
	}

	ref.Clear()
	if ref.IsSet() || ref.Current() != nil {
		t.Error("Clear should detach the ref")
	}
}

func TestRefAttrNil(t *testing.T) {
	if !RefAttr(nil).IsEmpty() {
		t.Error("RefAttr(nil) should be empty")
	}
	if RefOf(Div()) != nil || RefOf(nil) != nil {
		t.Error("RefOf should be nil without a ref")
	}
}
