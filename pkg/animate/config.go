package animate

import (
	"fmt"
	"strings"
	"time"

	"github.com/vango-dev/animate/internal/errors"
	"github.com/vango-dev/animate/pkg/vdom"
)

// DefaultDuration is used when no animation duration is configured.
const DefaultDuration = 3000 * time.Millisecond

// Prop keys consumed by the wrapper. They are never forwarded to the inner
// component.
const (
	PropAnimationClassName  = "animationClassName"
	PropAnimationDurationMs = "animationDurationMs"
	PropAnimateOnMount      = "animateOnMount"
	PropInstanceRef         = "instanceRef"
)

// Strategy selects how an animation ends.
type Strategy string

const (
	// StrategyTimer ends the animation after Config.Duration.
	StrategyTimer Strategy = "timer"

	// StrategySignal ends the animation when the host delivers the
	// element's animationend event.
	StrategySignal Strategy = "signal"
)

// ParseStrategy parses a strategy name. The empty string selects
// StrategyTimer.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", StrategyTimer:
		return StrategyTimer, nil
	case StrategySignal:
		return StrategySignal, nil
	}
	return "", errors.New("A003").
		WithField("strategy").
		WithDetail(fmt.Sprintf("got %q", s)).
		WithSuggestion(`use "timer" or "signal"`)
}

// Config is the per-instance animation configuration.
type Config struct {
	// ClassName is the class applied while animating. Required.
	ClassName string

	// Duration is how long the timer strategy keeps the animation running,
	// and the value written to the animationDuration style.
	// Zero selects DefaultDuration unless DurationSet is true.
	Duration time.Duration

	// DurationSet marks Duration as explicitly given, so a zero Duration
	// means an immediate end instead of DefaultDuration. Under the signal
	// strategy the animationDuration style is only written when it is set.
	DurationSet bool

	// AnimateOnMount starts the animation when the instance mounts.
	AnimateOnMount bool

	// Strategy selects the completion mechanism. Empty selects StrategyTimer.
	Strategy Strategy

	// Precompute recomputes the decorated style when the configuration or
	// the animating flag changes instead of on every render.
	Precompute bool
}

// WithDefaults returns c with zero fields replaced by their defaults.
func (c Config) WithDefaults() Config {
	if c.Duration == 0 && !c.DurationSet {
		c.Duration = DefaultDuration
	}
	if c.Strategy == "" {
		c.Strategy = StrategyTimer
	}
	return c
}

// Validate reports configuration-contract violations.
func (c Config) Validate() error {
	if strings.TrimSpace(c.ClassName) == "" {
		return errors.New("A001").
			WithField(PropAnimationClassName).
			WithSuggestion(`pass the CSS class carrying the animation, e.g. "animationClassName": "flash"`)
	}
	if c.Duration < 0 {
		return errors.New("A002").
			WithField(PropAnimationDurationMs).
			WithDetail(fmt.Sprintf("got %s", c.Duration))
	}
	if c.Strategy != "" && c.Strategy != StrategyTimer && c.Strategy != StrategySignal {
		return errors.New("A003").
			WithField("strategy").
			WithDetail(fmt.Sprintf("got %q", c.Strategy))
	}
	return nil
}

// stylesDuration reports whether the animationDuration style is written.
// The signal strategy leaves it to the animation class unless a duration
// was given.
func (c Config) stylesDuration() bool {
	return c.Strategy != StrategySignal || c.DurationSet
}

// DurationMs returns the effective duration in milliseconds.
func (c Config) DurationMs() int64 {
	return c.WithDefaults().Duration.Milliseconds()
}

// ConfigFromProps overlays the wrapper props found in props onto base.
// Durations are given in milliseconds and may be any integer or float type,
// or a time.Duration.
func ConfigFromProps(props vdom.Props, base Config) (Config, error) {
	cfg := base

	if v, ok := props[PropAnimationClassName]; ok && v != nil {
		s, ok := v.(string)
		if !ok {
			return cfg, propTypeError(PropAnimationClassName, "string", v)
		}
		cfg.ClassName = s
	}

	if v, ok := props[PropAnimationDurationMs]; ok && v != nil {
		d, ok := durationFromProp(v)
		if !ok {
			return cfg, propTypeError(PropAnimationDurationMs, "number", v)
		}
		cfg.Duration = d
		cfg.DurationSet = true
	}

	if v, ok := props[PropAnimateOnMount]; ok && v != nil {
		b, ok := v.(bool)
		if !ok {
			return cfg, propTypeError(PropAnimateOnMount, "bool", v)
		}
		cfg.AnimateOnMount = b
	}

	return cfg, nil
}

func durationFromProp(v any) (time.Duration, bool) {
	switch n := v.(type) {
	case time.Duration:
		return n, true
	case int:
		return time.Duration(n) * time.Millisecond, true
	case int32:
		return time.Duration(n) * time.Millisecond, true
	case int64:
		return time.Duration(n) * time.Millisecond, true
	case uint:
		return time.Duration(n) * time.Millisecond, true
	case float32:
		return time.Duration(float64(n) * float64(time.Millisecond)), true
	case float64:
		return time.Duration(n * float64(time.Millisecond)), true
	}
	return 0, false
}

func propTypeError(field, want string, got any) error {
	return errors.New("A005").
		WithField(field).
		WithDetail(fmt.Sprintf("want %s, got %T", want, got))
}
