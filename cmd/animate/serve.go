package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/vango-dev/animate/internal/errors"
	"github.com/vango-dev/animate/pkg/animate"
	"github.com/vango-dev/animate/pkg/live"
)

func serveCmd(configDir *string) *cobra.Command {
	var (
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the demo card over a live WebSocket",
		Long: `Serve a page with the demo card. The card animates on load, and the
Replay button restarts the animation. With the signal strategy the
browser's animationend event ends the animation; with the timer strategy
the server does.

Routes:
  /         the page
  /ws       the live connection
  /metrics  Prometheus metrics

Examples:
  animate serve
  animate serve --port=8080
  animate serve --host=0.0.0.0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configDir)
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Server.Port = port
			}
			if host != "" {
				cfg.Server.Host = host
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			anim, err := cfg.AnimationConfig()
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}

			printBanner()
			info("serve")
			fmt.Println()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			loop := live.NewLoop(live.LoopConfig{Logger: logger})
			defer loop.Close()

			registry := prometheus.NewRegistry()
			registry.MustRegister(collectors.NewGoCollector())
			metrics := animate.NewMetrics(animate.WithRegistry(registry))

			factory := animate.WithAnimation(card,
				animate.WithDefaults(anim),
				animate.WithScheduler(animate.NewLoopScheduler(loop)),
				animate.WithLogger(logger),
				animate.WithMetrics(metrics),
				animate.WithContext(ctx),
			)
			inst, err := factory(cardProps(anim))
			if err != nil {
				return err
			}
			defer inst.Dispose()

			host := live.NewHost(loop, page(inst, loop), live.HostConfig{
				Title:    "animate",
				CSS:      demoCSS(anim.ClassName),
				Gatherer: registry,
				Metrics:  live.NewMetrics(animate.WithRegistry(registry)),
				Logger:   logger,
			})
			host.Watch(inst)
			inst.Mount()

			srv := &http.Server{
				Addr:              cfg.Address(),
				Handler:           host.Router(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.ListenAndServe()
			}()
			success("Listening on http://%s", cfg.Address())
			info("strategy %s, duration %s, class %q", anim.Strategy, anim.Duration, anim.ClassName)

			select {
			case err := <-errCh:
				if err != nil && err != http.ErrServerClosed {
					return errors.New("A012").WithDetail(cfg.Address()).Wrap(err)
				}
				return nil
			case <-ctx.Done():
			}

			fmt.Println("\n  Shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from animate.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from animate.json)")

	return cmd
}
