package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/animate/internal/config"
	"github.com/vango-dev/animate/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┌─┐┌┐┌┬┌┬┐┌─┐┌┬┐┌─┐
  ├─┤│││││││├─┤ │ ├┤
  ┴ ┴┘└┘┴┴ ┴┴ ┴ ┴ └─┘
`

func main() {
	var configDir string

	rootCmd := &cobra.Command{
		Use:   "animate",
		Short: "Animation-state wrapper for vango components",
		Long: `animate wraps a component with a timed or signal-driven animating state.

While animating, the wrapped element carries the animation class and an
animationDuration style. The state ends when the timer fires or when the
browser reports animationend.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configDir, "config", "c", ".", "Directory containing animate.json")

	rootCmd.AddCommand(
		initCmd(&configDir),
		renderCmd(&configDir),
		serveCmd(&configDir),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errors.FromError(err, "A060").Format())
		os.Exit(1)
	}
}

// loadConfig reads animate.json from dir, falling back to defaults when the
// file does not exist. ANIMATE_* environment variables override both.
func loadConfig(dir string) (*config.Config, error) {
	cfg := config.New()
	if config.Exists(dir) {
		var err error
		if cfg, err = config.Load(dir); err != nil {
			return nil, err
		}
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the process logger from the log section of cfg.
func newLogger(cfg *config.Config) (*slog.Logger, error) {
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts)), nil
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts)), nil
}

// printBanner prints the ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}
