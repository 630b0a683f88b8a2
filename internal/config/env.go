package config

import (
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. ANIMATE_SERVER_PORT.
const EnvPrefix = "ANIMATE"

// ApplyEnv overlays environment variables onto c. Keys follow the file
// layout with "." replaced by "_":
//
//	ANIMATE_ANIMATION_CLASS_NAME
//	ANIMATE_ANIMATION_DURATION_MS
//	ANIMATE_ANIMATION_ANIMATE_ON_MOUNT
//	ANIMATE_ANIMATION_STRATEGY
//	ANIMATE_ANIMATION_PRECOMPUTE
//	ANIMATE_SERVER_HOST
//	ANIMATE_SERVER_PORT
//	ANIMATE_LOG_LEVEL
//	ANIMATE_LOG_FORMAT
//
// Unset variables leave the current value in place.
func (c *Config) ApplyEnv() {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("animation.class_name", c.Animation.ClassName)
	v.SetDefault("animation.duration_ms", c.Animation.DurationMs)
	v.SetDefault("animation.animate_on_mount", c.Animation.AnimateOnMount)
	v.SetDefault("animation.strategy", c.Animation.Strategy)
	v.SetDefault("animation.precompute", c.Animation.Precompute)
	v.SetDefault("server.host", c.Server.Host)
	v.SetDefault("server.port", c.Server.Port)
	v.SetDefault("log.level", c.Log.Level)
	v.SetDefault("log.format", c.Log.Format)

	c.Animation.ClassName = v.GetString("animation.class_name")
	c.Animation.DurationMs = v.GetInt64("animation.duration_ms")
	c.Animation.AnimateOnMount = v.GetBool("animation.animate_on_mount")
	c.Animation.Strategy = v.GetString("animation.strategy")
	c.Animation.Precompute = v.GetBool("animation.precompute")
	c.Server.Host = v.GetString("server.host")
	c.Server.Port = v.GetInt("server.port")
	c.Log.Level = v.GetString("log.level")
	c.Log.Format = v.GetString("log.format")
}
