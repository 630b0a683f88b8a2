package animate

import "github.com/vango-dev/animate/pkg/vdom"

// Container returns a Factory for a wrapped div. The div receives the
// composed className, style, and animationend handler along with every
// other prop, and renders the wrapper's children.
func Container(opts ...Option) Factory {
	return WithAnimation(containerDiv, opts...)
}

func containerDiv(props vdom.Props, children []*vdom.VNode) *vdom.VNode {
	return vdom.Element("div", props, children...)
}
