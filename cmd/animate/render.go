package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/vango-dev/animate/pkg/animate"
	"github.com/vango-dev/animate/pkg/render"
)

type renderOptions struct {
	className  string
	durationMs int64
	strategy   string
	pretty     bool
}

func renderCmd(configDir *string) *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the demo card in its idle and animating states",
		Long: `Render the demo card to HTML twice: once idle and once animating.

Values from animate.json are used unless overridden by flags.

Examples:
  animate render
  animate render --class=pulse --duration=750
  animate render --pretty`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configDir)
			if err != nil {
				return err
			}
			anim, err := cfg.AnimationConfig()
			if err != nil {
				return err
			}
			if opts.className != "" {
				anim.ClassName = opts.className
			}
			if opts.durationMs > 0 {
				anim.Duration = time.Duration(opts.durationMs) * time.Millisecond
			}
			if opts.strategy != "" {
				if anim.Strategy, err = animate.ParseStrategy(opts.strategy); err != nil {
					return err
				}
			}
			if err := anim.Validate(); err != nil {
				return err
			}
			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			return renderStates(cmd.OutOrStdout(), anim, opts.pretty, animate.WithLogger(logger))
		},
	}

	cmd.Flags().StringVar(&opts.className, "class", "", "Animation class name (default from animate.json)")
	cmd.Flags().Int64VarP(&opts.durationMs, "duration", "d", 0, "Animation duration in milliseconds")
	cmd.Flags().StringVar(&opts.strategy, "strategy", "", `Completion strategy: "timer" or "signal"`)
	cmd.Flags().BoolVar(&opts.pretty, "pretty", false, "Pretty-print the HTML")

	return cmd
}

// renderStates writes the idle and animating renders of the demo card to w.
// A manual scheduler keeps the timer from firing between the two renders.
func renderStates(w io.Writer, cfg animate.Config, pretty bool, opts ...animate.Option) error {
	opts = append([]animate.Option{
		animate.WithScheduler(animate.NewManualScheduler()),
		animate.WithStrategy(cfg.Strategy),
		animate.WithPrecompute(cfg.Precompute),
	}, opts...)

	props := cardProps(cfg)
	props[animate.PropAnimateOnMount] = false
	inst, err := animate.WithAnimation(card, opts...)(props)
	if err != nil {
		return err
	}
	defer inst.Dispose()
	inst.Mount()

	renderer := render.NewRenderer(render.RendererConfig{Pretty: pretty})
	states := []struct {
		label string
		prep  func()
	}{
		{"idle", func() {}},
		{"animating", func() { inst.Start() }},
	}
	for _, s := range states {
		s.prep()
		renderer.Reset()
		html, err := renderer.RenderToString(inst.Render())
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "<!-- %s -->\n%s\n", s.label, html)
	}
	return nil
}

