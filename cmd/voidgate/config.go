package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// config is resolved from environment first, then command-line flags
// override whatever was explicitly passed
type config struct {
	Scene         string        `env:"VOIDGATE_SCENE" envDefault:"portal"`
	Manifest      string        `env:"VOIDGATE_MANIFEST"`
	Color         string        `env:"VOIDGATE_COLOR" envDefault:"auto"`
	NoAudio       bool          `env:"VOIDGATE_NO_AUDIO"`
	LogPath       string        `env:"VOIDGATE_LOG"`
	WatchdogGrace time.Duration `env:"VOIDGATE_WATCHDOG_GRACE"`
}

func loadConfig() (config, error) {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	sceneFlag := flag.String("scene", cfg.Scene, "Scene: portal, blackhole")
	manifestFlag := flag.String("manifest", cfg.Manifest, "Sequence manifest path (default: embedded)")
	colorFlag := flag.String("color", cfg.Color, "Color mode: auto, truecolor, 256")
	noAudioFlag := flag.Bool("no-audio", cfg.NoAudio, "Disable audio output")
	flag.Parse()

	cfg.Scene = *sceneFlag
	cfg.Manifest = *manifestFlag
	cfg.Color = *colorFlag
	cfg.NoAudio = *noAudioFlag

	switch cfg.Scene {
	case "portal", "blackhole":
	default:
		return cfg, fmt.Errorf("unknown scene %q (want portal or blackhole)", cfg.Scene)
	}
	switch cfg.Color {
	case "auto", "truecolor", "256":
	default:
		return cfg, fmt.Errorf("unknown color mode %q (want auto, truecolor or 256)", cfg.Color)
	}
	return cfg, nil
}
