// Package config loads the harness configuration from YAML. Every field has a default, so a
// missing file or a partial file is valid.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/Carmen-Shannon/loki-go/engine/camera"
	"github.com/Carmen-Shannon/loki-go/engine/clock"
	"github.com/Carmen-Shannon/loki-go/engine/logger"
	"gopkg.in/yaml.v3"
)

// Config is the root of the YAML document.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Camera   CameraConfig   `yaml:"camera"`
	Clock    ClockConfig    `yaml:"clock"`
	Renderer RendererConfig `yaml:"renderer"`
	Assets   AssetsConfig   `yaml:"assets"`
	Log      LogConfig      `yaml:"log"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type CameraConfig struct {
	Position    [3]float32 `yaml:"position"`
	Yaw         float32    `yaml:"yaw"`
	Pitch       float32    `yaml:"pitch"`
	Speed       float32    `yaml:"speed"`
	Sensitivity float32    `yaml:"sensitivity"`
	Fov         float32    `yaml:"fov"`

	// ZoomResetFov is restored when zooming out past the widest fov. Zero follows Fov.
	ZoomResetFov float32 `yaml:"zoom_reset_fov"`

	Near float32 `yaml:"near"`
	Far  float32 `yaml:"far"`

	// Mode is "spectator" or "fps".
	Mode         string  `yaml:"mode"`
	FrameCoupled bool    `yaml:"frame_coupled"`
	EyeHeight    float32 `yaml:"eye_height"`
	JumpSpeed    float32 `yaml:"jump_speed"`
	Gravity      float32 `yaml:"gravity"`
}

type ClockConfig struct {
	// FixedRate is the fixed update frequency in Hz.
	FixedRate     float64 `yaml:"fixed_rate"`
	MaxDeltaTime  float64 `yaml:"max_delta_time"`
	StatsInterval float64 `yaml:"stats_interval"`
}

type RendererConfig struct {
	VSync         bool       `yaml:"vsync"`
	MSAA          int        `yaml:"msaa"`
	ClearColor    [4]float64 `yaml:"clear_color"`
	ForceSoftware bool       `yaml:"force_software"`
}

type AssetsConfig struct {
	// Texture is the image mapped onto the cube. Empty means a generated checkerboard.
	Texture string `yaml:"texture"`
}

type LogConfig struct {
	Level   string `yaml:"level"`
	Profile bool   `yaml:"profile"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  800,
			Height: 600,
			Title:  "Voxel Engine",
		},
		Camera: CameraConfig{
			Position:    camera.DefaultPosition,
			Yaw:         camera.DefaultYaw,
			Pitch:       camera.DefaultPitch,
			Speed:       camera.DefaultSpeed,
			Sensitivity: camera.DefaultSensitivity,
			Fov:         camera.DefaultFov,
			Near:        camera.DefaultNear,
			Far:         camera.DefaultFar,
			Mode:        camera.ModeSpectator.String(),
			EyeHeight:   camera.DefaultEyeHeight,
			JumpSpeed:   camera.DefaultJumpSpeed,
			Gravity:     camera.DefaultGravity,
		},
		Clock: ClockConfig{
			FixedRate:     1 / clock.DefaultFixedTimeStep,
			MaxDeltaTime:  clock.DefaultMaxDeltaTime,
			StatsInterval: clock.DefaultStatsInterval,
		},
		Renderer: RendererConfig{
			VSync:      true,
			MSAA:       4,
			ClearColor: [4]float64{0.1, 0.1, 0.1, 1.0},
		},
		Log: LogConfig{
			Level: logger.LevelInfo.String(),
		},
	}
}

// Load reads path over the defaults and validates the result.
// A missing file yields the defaults.
//
// Parameters:
//   - path: the YAML file; empty means defaults only
//
// Returns:
//   - *Config: the merged configuration
//   - error: an error if the file is unreadable, malformed or invalid
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first out-of-range value.
func (c *Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	case c.Camera.Fov < camera.MinFov || c.Camera.Fov > camera.MaxFov:
		return fmt.Errorf("camera fov must be in [%v, %v], got %v", camera.MinFov, camera.MaxFov, c.Camera.Fov)
	case c.Camera.ZoomResetFov != 0 && (c.Camera.ZoomResetFov < camera.MinFov || c.Camera.ZoomResetFov > camera.MaxFov):
		return fmt.Errorf("camera zoom_reset_fov must be in [%v, %v], got %v", camera.MinFov, camera.MaxFov, c.Camera.ZoomResetFov)
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return fmt.Errorf("camera clip planes must satisfy 0 < near < far, got near=%v far=%v", c.Camera.Near, c.Camera.Far)
	case c.Camera.Speed < 0 || c.Camera.Sensitivity < 0:
		return errors.New("camera speed and sensitivity must not be negative")
	case c.Clock.FixedRate <= 0 || c.Clock.MaxDeltaTime <= 0 || c.Clock.StatsInterval <= 0:
		return errors.New("clock rates and intervals must be positive")
	case c.Renderer.MSAA != 1 && c.Renderer.MSAA != 4:
		return fmt.Errorf("renderer msaa must be 1 or 4, got %d", c.Renderer.MSAA)
	}

	if _, err := c.CameraMode(); err != nil {
		return err
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// CameraMode parses the configured camera mode.
func (c *Config) CameraMode() (camera.Mode, error) {
	switch c.Camera.Mode {
	case "", camera.ModeSpectator.String():
		return camera.ModeSpectator, nil
	case camera.ModeFPS.String():
		return camera.ModeFPS, nil
	default:
		return camera.ModeSpectator, fmt.Errorf("unknown camera mode %q", c.Camera.Mode)
	}
}

// CameraOptions translates the camera section into builder options.
// The aspect ratio follows the window size.
func (c *Config) CameraOptions() []camera.CameraBuilderOption {
	mode, _ := c.CameraMode()
	p := c.Camera.Position
	options := []camera.CameraBuilderOption{
		camera.WithPosition(p[0], p[1], p[2]),
		camera.WithYaw(c.Camera.Yaw),
		camera.WithPitch(c.Camera.Pitch),
		camera.WithSpeed(c.Camera.Speed),
		camera.WithSensitivity(c.Camera.Sensitivity),
		camera.WithFov(c.Camera.Fov),
		camera.WithAspect(float32(c.Window.Width) / float32(c.Window.Height)),
		camera.WithNear(c.Camera.Near),
		camera.WithFar(c.Camera.Far),
		camera.WithMode(mode),
		camera.WithFrameCoupledMovement(c.Camera.FrameCoupled),
		camera.WithEyeHeight(c.Camera.EyeHeight),
		camera.WithJumpSpeed(c.Camera.JumpSpeed),
		camera.WithGravity(c.Camera.Gravity),
	}
	if c.Camera.ZoomResetFov != 0 {
		options = append(options, camera.WithZoomResetFov(c.Camera.ZoomResetFov))
	}
	return options
}

// ClockOptions translates the clock section into clock options.
func (c *Config) ClockOptions() []clock.ClockOption {
	return []clock.ClockOption{
		clock.WithFixedRate(c.Clock.FixedRate),
		clock.WithMaxDeltaTime(c.Clock.MaxDeltaTime),
		clock.WithStatsInterval(c.Clock.StatsInterval),
	}
}

// LogLevel parses the configured log level, falling back to INFO.
func (c *Config) LogLevel() logger.Level {
	level, err := logger.ParseLevel(c.Log.Level)
	if err != nil {
		return logger.LevelInfo
	}
	return level
}
