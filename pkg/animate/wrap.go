package animate

import (
	"log/slog"
	"sync"
	"time"

	"github.com/vango-dev/animate/internal/errors"
	"github.com/vango-dev/animate/pkg/vdom"
)

// Inner is the component being wrapped. It receives the composed props and
// the children passed to the wrapper.
type Inner func(props vdom.Props, children []*vdom.VNode) *vdom.VNode

// Factory builds wrapped component instances from props.
type Factory func(props vdom.Props, children ...*vdom.VNode) (*Instance, error)

// WithAnimation wraps inner with an animating state. The returned Factory
// reads animationClassName, animationDurationMs, animateOnMount, and
// instanceRef from the props of each instance; everything else reaches
// inner unchanged.
func WithAnimation(inner Inner, opts ...Option) Factory {
	o := applyOptions(opts)
	return func(props vdom.Props, children ...*vdom.VNode) (*Instance, error) {
		if inner == nil {
			return nil, errors.New("A004")
		}
		return newInstance(inner, props, children, o)
	}
}

// Instance is one mounted use of a wrapped component.
type Instance struct {
	inner    Inner
	ctrl     *Controller
	defaults Config
	logger   *slog.Logger

	mu          sync.Mutex
	props       vdom.Props
	children    []*vdom.VNode
	ref         *vdom.ElementRef
	onEnd       func()
	cache       styleCache
	unsubscribe func()
}

var _ vdom.Component = (*Instance)(nil)

func newInstance(inner Inner, props vdom.Props, children []*vdom.VNode, o options) (*Instance, error) {
	cfg, err := ConfigFromProps(props, o.defaults)
	if err != nil {
		return nil, err
	}
	ctrl, err := newController(cfg, o)
	if err != nil {
		return nil, err
	}
	ref, err := refFromProps(props)
	if err != nil {
		return nil, err
	}

	inst := &Instance{
		inner:    inner,
		ctrl:     ctrl,
		defaults: o.defaults,
		logger:   o.logger,
		props:    props.Clone(),
		children: children,
		ref:      ref,
	}
	if ctrl.Config().Strategy == StrategySignal {
		inst.onEnd = func() { inst.ctrl.End() }
	}
	if ctrl.Config().Precompute {
		inst.unsubscribe = ctrl.OnChange(inst.restyle)
	}
	return inst, nil
}

func refFromProps(props vdom.Props) (*vdom.ElementRef, error) {
	switch v := props[PropInstanceRef].(type) {
	case nil:
		return vdom.NewElementRef(), nil
	case *vdom.ElementRef:
		if v == nil {
			return vdom.NewElementRef(), nil
		}
		return v, nil
	default:
		return nil, propTypeError(PropInstanceRef, "*vdom.ElementRef", v)
	}
}

// Mount runs the mount hook. With animateOnMount the animation starts here,
// before the first render.
func (i *Instance) Mount() {
	i.ctrl.OnMount()
}

// Render implements vdom.Component.
func (i *Instance) Render() *vdom.VNode {
	cfg := i.ctrl.Config()
	animating := i.ctrl.IsAnimating()

	i.mu.Lock()
	props := i.props
	children := i.children
	style := props.Style()
	switch {
	case !cfg.stylesDuration():
	case cfg.Precompute:
		style = i.cache.get(style, animating, cfg.Duration)
	default:
		style = ComposeStyle(style, animating, cfg.Duration)
	}
	className := ComposeClassName(props.String(vdom.ClassNameKey), animating, cfg.ClassName)
	ref, onEnd := i.ref, i.onEnd
	i.mu.Unlock()

	return i.inner(ComposeProps(props, className, style, ref, onEnd), children)
}

// Update replaces the props and children of the instance, reconfiguring the
// controller and running OnConfigChange.
func (i *Instance) Update(props vdom.Props, children ...*vdom.VNode) error {
	cfg, err := ConfigFromProps(props, i.defaults)
	if err != nil {
		return err
	}
	ref, err := refFromProps(props)
	if err != nil {
		return err
	}
	if err := i.ctrl.Reconfigure(cfg); err != nil {
		return err
	}

	i.mu.Lock()
	prev := i.props
	i.props = props.Clone()
	i.children = children
	if _, ok := props[PropInstanceRef]; ok {
		i.ref = ref
	}
	i.mu.Unlock()

	i.OnConfigChange(prev, props)
	return nil
}

// OnConfigChange recomputes the decorated style right away when the
// duration or the identity of the base style map differs between prev and
// next. It only acts for precomputing instances and reports whether it
// recomputed. Maps are compared by reference, so an equal but distinct map
// counts as a change.
func (i *Instance) OnConfigChange(prev, next vdom.Props) bool {
	cfg := i.ctrl.Config()
	if !cfg.Precompute {
		return false
	}

	prevDuration := i.durationOf(prev)
	nextDuration := i.durationOf(next)
	if prevDuration == nextDuration && styleIdentity(prev.Style()) == styleIdentity(next.Style()) {
		return false
	}

	animating := i.ctrl.IsAnimating()
	i.mu.Lock()
	i.cache.recompute(next.Style(), animating, nextDuration)
	i.mu.Unlock()
	i.logger.Debug("style recomputed on config change", "class", cfg.ClassName, "duration_ms", nextDuration.Milliseconds())
	return true
}

func (i *Instance) durationOf(props vdom.Props) time.Duration {
	cfg, err := ConfigFromProps(props, i.defaults)
	if err != nil {
		return i.ctrl.Config().Duration
	}
	return cfg.WithDefaults().Duration
}

// restyle refreshes the precomputed style after a transition.
func (i *Instance) restyle(animating bool) {
	cfg := i.ctrl.Config()
	if !cfg.stylesDuration() {
		return
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	i.cache.recompute(i.props.Style(), animating, cfg.Duration)
}

// Dispose cancels any pending completion and detaches the element ref.
func (i *Instance) Dispose() {
	i.mu.Lock()
	unsubscribe := i.unsubscribe
	i.unsubscribe = nil
	ref := i.ref
	i.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	i.ctrl.OnDispose()
	if ref != nil {
		ref.Clear()
	}
}

// Start begins an animation; see Controller.Start.
func (i *Instance) Start() bool { return i.ctrl.Start() }

// Stop force-stops the animation; see Controller.Stop.
func (i *Instance) Stop() bool { return i.ctrl.Stop() }

// End delivers the completion signal; see Controller.End.
func (i *Instance) End() bool { return i.ctrl.End() }

// IsAnimating reports whether an animation is in progress.
func (i *Instance) IsAnimating() bool { return i.ctrl.IsAnimating() }

// State returns a snapshot of the controller state.
func (i *Instance) State() State { return i.ctrl.State() }

// Controller returns the instance's controller.
func (i *Instance) Controller() *Controller { return i.ctrl }

// Ref returns the element ref the rendered root is attached to.
func (i *Instance) Ref() *vdom.ElementRef {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.ref
}

// OnChange registers fn to run after every transition; see
// Controller.OnChange.
func (i *Instance) OnChange(fn func(animating bool)) func() {
	return i.ctrl.OnChange(fn)
}
