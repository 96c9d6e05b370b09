package config

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/lucasb-eyer/go-colorful"
)

var ErrInvalidConfig = errors.New("invalid config")

const (
	DefaultCamera          = "0"
	DefaultFrameWidth      = 640
	DefaultFrameHeight     = 480
	DefaultFrameInterval   = 33 * time.Millisecond
	DefaultProfile         = "default"
	DefaultLogLevel        = "info"
	DefaultAnnotationColor = "#00FC7C"
	DefaultGridColor       = "#FFFFFF"
)

type Config struct {
	CameraDevice    string
	ImagePath       string
	FrameWidth      int
	FrameHeight     int
	FrameInterval   time.Duration
	Profile         string
	ProfilesFile    string
	LogLevel        string
	AnnotationColor string
	GridColor       string
}

func Default() *Config {
	return &Config{
		CameraDevice:    DefaultCamera,
		FrameWidth:      DefaultFrameWidth,
		FrameHeight:     DefaultFrameHeight,
		FrameInterval:   DefaultFrameInterval,
		Profile:         DefaultProfile,
		LogLevel:        DefaultLogLevel,
		AnnotationColor: DefaultAnnotationColor,
		GridColor:       DefaultGridColor,
	}
}

// Load builds the configuration from defaults, an optional .env file, the
// environment and finally the command line. Later sources win.
func Load(args []string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if err := cfg.applyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := cfg.applyFlags(args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	setString := func(key string, dst *string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	setString("SHAPE_CAMERA", &c.CameraDevice)
	setString("SHAPE_IMAGE", &c.ImagePath)
	setString("SHAPE_PROFILE", &c.Profile)
	setString("SHAPE_PROFILES_FILE", &c.ProfilesFile)
	setString("LOG_LEVEL", &c.LogLevel)
	setString("SHAPE_ANNOTATION_COLOR", &c.AnnotationColor)
	setString("SHAPE_GRID_COLOR", &c.GridColor)

	if v := getenv("SHAPE_WIDTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: SHAPE_WIDTH: %v", ErrInvalidConfig, err)
		}
		c.FrameWidth = n
	}
	if v := getenv("SHAPE_HEIGHT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: SHAPE_HEIGHT: %v", ErrInvalidConfig, err)
		}
		c.FrameHeight = n
	}
	if v := getenv("SHAPE_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: SHAPE_INTERVAL: %v", ErrInvalidConfig, err)
		}
		c.FrameInterval = d
	}
	return nil
}

func (c *Config) applyFlags(args []string) error {
	fs := flag.NewFlagSet("shape-detector", flag.ContinueOnError)
	fs.StringVar(&c.CameraDevice, "camera", c.CameraDevice, "camera index, video file or stream URL")
	fs.StringVar(&c.ImagePath, "image", c.ImagePath, "process a still image instead of the camera")
	fs.IntVar(&c.FrameWidth, "width", c.FrameWidth, "requested capture width")
	fs.IntVar(&c.FrameHeight, "height", c.FrameHeight, "requested capture height")
	fs.DurationVar(&c.FrameInterval, "interval", c.FrameInterval, "delay between frames")
	fs.StringVar(&c.Profile, "profile", c.Profile, "tuning profile name")
	fs.StringVar(&c.ProfilesFile, "profiles", c.ProfilesFile, "YAML file with extra profiles")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

func (c *Config) Validate() error {
	if c.FrameWidth <= 0 || c.FrameHeight <= 0 {
		return fmt.Errorf("%w: frame size %dx%d", ErrInvalidConfig, c.FrameWidth, c.FrameHeight)
	}
	if c.FrameInterval <= 0 {
		return fmt.Errorf("%w: frame interval %s", ErrInvalidConfig, c.FrameInterval)
	}
	if c.Profile == "" {
		return fmt.Errorf("%w: profile name is empty", ErrInvalidConfig)
	}
	if c.CameraDevice == "" && c.ImagePath == "" {
		return fmt.Errorf("%w: no camera or image configured", ErrInvalidConfig)
	}
	if _, err := parseColor(c.AnnotationColor); err != nil {
		return fmt.Errorf("%w: annotation color: %v", ErrInvalidConfig, err)
	}
	if _, err := parseColor(c.GridColor); err != nil {
		return fmt.Errorf("%w: grid color: %v", ErrInvalidConfig, err)
	}
	return nil
}

func (c *Config) AnnotationRGBA() color.RGBA {
	rgba, _ := parseColor(c.AnnotationColor)
	return rgba
}

func (c *Config) GridRGBA() color.RGBA {
	rgba, _ := parseColor(c.GridColor)
	return rgba
}

func parseColor(hex string) (color.RGBA, error) {
	col, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, err
	}
	r, g, b := col.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}
