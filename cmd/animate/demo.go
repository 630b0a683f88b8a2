package main

import (
	"fmt"

	"github.com/vango-dev/animate/pkg/animate"
	"github.com/vango-dev/animate/pkg/vdom"
)

// card is the demo component wrapped by the animate commands.
func card(props vdom.Props, children []*vdom.VNode) *vdom.VNode {
	return vdom.Element("article", props,
		vdom.H2(vdom.Class("card-title"), "animate"),
		vdom.Fragment(children),
	)
}

// cardProps builds the wrapper props for the demo card from cfg.
func cardProps(cfg animate.Config) vdom.Props {
	return vdom.Props{
		animate.PropAnimationClassName:  cfg.ClassName,
		animate.PropAnimationDurationMs: cfg.Duration,
		animate.PropAnimateOnMount:      cfg.AnimateOnMount,
		vdom.ClassNameKey:               "card",
		vdom.StyleKey:                   vdom.Style{"padding": "1rem"},
	}
}

// page wraps an instance with a replay button. The button runs on d's
// loop; a replay of a running animation starts in a later task so the idle
// state renders first and the browser restarts the CSS animation.
func page(inst *animate.Instance, d animate.Dispatcher) vdom.Component {
	return vdom.Func(func() *vdom.VNode {
		return vdom.Section(vdom.Class("demo"),
			inst,
			vdom.Button(
				vdom.Type("button"),
				vdom.OnClick(func() { replay(inst, d) }),
				"Replay",
			),
		)
	})
}

func replay(inst *animate.Instance, d animate.Dispatcher) {
	if inst.Stop() {
		d.Dispatch(func() { inst.Start() })
		return
	}
	inst.Start()
}

// demoCSS returns the stylesheet for the demo page. The animation length
// comes from the inline animationDuration style.
func demoCSS(className string) string {
	return fmt.Sprintf(`body { font-family: system-ui, sans-serif; margin: 2rem; }
.card { border: 1px solid #ccc; border-radius: 8px; max-width: 24rem; }
.%s { animation-name: animate-flash; animation-timing-function: ease-in-out; }
@keyframes animate-flash {
  0%% { background: #fff; }
  50%% { background: #ffe08a; }
  100%% { background: #fff; }
}`, className)
}
