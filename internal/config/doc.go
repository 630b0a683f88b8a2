// Package config loads the animate.json file read by the animate CLI.
//
// # Configuration File Structure
//
//	{
//	  "animation": {
//	    "className": "flash",
//	    "durationMs": 3000,
//	    "animateOnMount": true,
//	    "strategy": "timer",
//	    "precompute": false
//	  },
//	  "server": {
//	    "host": "localhost",
//	    "port": 3000
//	  },
//	  "log": {
//	    "level": "info",
//	    "format": "text"
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	anim, err := cfg.AnimationConfig()
package config
