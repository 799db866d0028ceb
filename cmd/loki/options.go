package main

import (
	"flag"
	"fmt"

	"github.com/Carmen-Shannon/loki-go/config"
	"github.com/Carmen-Shannon/loki-go/engine/logger"
	"github.com/Carmen-Shannon/loki-go/engine/renderer"
	"github.com/Carmen-Shannon/loki-go/engine/window"
)

// flags holds the command line. Only flags given explicitly override the config file.
type flags struct {
	configPath string
	texture    string
	logLevel   string
	vsync      bool
	profile    bool
}

func (f *flags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.configPath, "config", "loki.yaml", "path to the YAML configuration")
	fs.StringVar(&f.texture, "texture", "", "image mapped onto the cube (png, jpeg, gif, bmp, webp)")
	fs.StringVar(&f.logLevel, "log-level", "", "minimum log level: trace, debug, info, warning, error, fatal")
	fs.BoolVar(&f.vsync, "vsync", true, "synchronize presentation with the display")
	fs.BoolVar(&f.profile, "profile", false, "log frame rate and memory statistics every second")
}

// apply copies explicitly set flags onto cfg and revalidates it.
func (f *flags) apply(fs *flag.FlagSet, cfg *config.Config) error {
	var err error
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "texture":
			cfg.Assets.Texture = f.texture
		case "log-level":
			if _, perr := logger.ParseLevel(f.logLevel); perr != nil {
				err = perr
				return
			}
			cfg.Log.Level = f.logLevel
		case "vsync":
			cfg.Renderer.VSync = f.vsync
		case "profile":
			cfg.Log.Profile = f.profile
		}
	})
	if err != nil {
		return fmt.Errorf("invalid flag: %w", err)
	}
	return cfg.Validate()
}

func windowOptions(cfg *config.Config, sink window.InputSink) []window.WindowBuilderOption {
	return []window.WindowBuilderOption{
		window.WithTitle(cfg.Window.Title),
		window.WithWidth(cfg.Window.Width),
		window.WithHeight(cfg.Window.Height),
		window.WithInputSink(sink),
	}
}

func rendererOptions(cfg *config.Config) []renderer.RendererBuilderOption {
	presentMode := renderer.PresentModeVSync
	if !cfg.Renderer.VSync {
		presentMode = renderer.PresentModeUncapped
	}
	c := cfg.Renderer.ClearColor
	return []renderer.RendererBuilderOption{
		renderer.WithPresentMode(presentMode),
		renderer.WithMSAA(renderer.MSAASampleCount(cfg.Renderer.MSAA)),
		renderer.WithClearColor(c[0], c[1], c[2], c[3]),
		renderer.WithForceSoftwareRenderer(cfg.Renderer.ForceSoftware),
	}
}
