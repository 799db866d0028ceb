// Command loki opens a window with a textured cube and a free-flying camera.
package main

import (
	"flag"
	"os"

	"github.com/Carmen-Shannon/loki-go/config"
	"github.com/Carmen-Shannon/loki-go/engine"
	"github.com/Carmen-Shannon/loki-go/engine/camera"
	"github.com/Carmen-Shannon/loki-go/engine/clock"
	"github.com/Carmen-Shannon/loki-go/engine/input"
	"github.com/Carmen-Shannon/loki-go/engine/logger"
	"github.com/Carmen-Shannon/loki-go/engine/renderer"
	"github.com/Carmen-Shannon/loki-go/engine/resource"
	"github.com/Carmen-Shannon/loki-go/engine/window"
)

func main() {
	var f flags
	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	f.register(fs)
	_ = fs.Parse(os.Args[1:])

	cfg, err := config.Load(f.configPath)
	if err != nil {
		logger.Default().Fatalf("%v", err)
	}
	if err := f.apply(fs, cfg); err != nil {
		logger.Default().Fatalf("%v", err)
	}

	log := logger.NewLogger(logger.WithLevel(cfg.LogLevel()))
	logger.SetDefault(log)

	in := input.NewAccumulator(input.DefaultBindings())
	win, err := window.NewWindow(windowOptions(cfg, in)...)
	if err != nil {
		log.Fatalf("Failed to create GLFW window: %v", err)
	}
	log.Infof("window %dx%d created", win.Width(), win.Height())

	rendererOpts := rendererOptions(cfg)
	if cfg.Assets.Texture != "" {
		loader := resource.NewLoader()
		textures, err := loader.LoadTextures(cfg.Assets.Texture)
		loader.Release()
		if err != nil {
			log.Fatalf("Failed to load texture: %v", err)
		}
		log.Debugf("texture %s loaded (%dx%d)", cfg.Assets.Texture, textures[0].Width, textures[0].Height)
		rendererOpts = append(rendererOpts, renderer.WithTexture(textures[0]))
	}

	r, err := renderer.NewRenderer(renderer.BackendTypeWGPU, win, rendererOpts...)
	if err != nil {
		log.Fatalf("Failed to initialize renderer: %v", err)
	}

	cam := camera.NewCamera(cfg.CameraOptions()...)
	log.Debugf("camera mode %s at %v", cam.Mode(), cam.Position())

	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithRenderer(r),
		engine.WithCamera(cam),
		engine.WithClock(clock.NewClock(win.Time(), cfg.ClockOptions()...)),
		engine.WithInput(in),
		engine.WithLogger(log),
		engine.WithProfiling(cfg.Log.Profile),
	)
	eng.Run()

	log.Infof("shutting down")
	r.Release()
	eng.Quit()
}
