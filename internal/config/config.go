// Package config loads tilescene settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/gogpu/tilescene"
)

// Environment variable names.
const (
	EnvMap            = "TILESCENE_MAP"
	EnvTexture        = "TILESCENE_TEXTURE"
	EnvViewportWidth  = "TILESCENE_VIEWPORT_WIDTH"
	EnvViewportHeight = "TILESCENE_VIEWPORT_HEIGHT"
	EnvConvention     = "TILESCENE_CONVENTION"
	EnvPivot          = "TILESCENE_PIVOT"
	EnvScanOrder      = "TILESCENE_SCAN_ORDER"
	EnvDepth          = "TILESCENE_DEPTH"
	EnvTitle          = "TILESCENE_TITLE"
	EnvClearColor     = "TILESCENE_CLEAR_COLOR"
	EnvLogLevel       = "TILESCENE_LOG_LEVEL"
	EnvAddr           = "TILESCENE_ADDR"
	EnvReadTimeout    = "TILESCENE_READ_TIMEOUT"
	EnvWriteTimeout   = "TILESCENE_WRITE_TIMEOUT"
)

// Config holds every setting of the tilescene tools.
type Config struct {
	MapPath     string
	TexturePath string

	// ViewportWidth and ViewportHeight default to the scene window size.
	// Zero selects the map's pixel size.
	ViewportWidth  float32
	ViewportHeight float32

	Profile tilescene.Profile

	Title      string
	ClearColor [4]float64
	LogLevel   slog.Level

	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Default returns the built-in configuration: a 1024x768 downward-y scene
// cleared to dark teal, served on :8080.
func Default() Config {
	return Config{
		MapPath:        "resources/map.tmx",
		ViewportWidth:  1024,
		ViewportHeight: 768,
		Profile:        tilescene.ProfileDownwardY,
		Title:          "tilescene",
		ClearColor:     [4]float64{0.00196, 0.23726, 0.21765, 1},
		LogLevel:       slog.LevelInfo,
		Addr:           ":8080",
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
	}
}

// Load reads the optional .env files, then the environment, over Default.
// Variables already set in the process environment win over .env values.
// Missing .env files are ignored; malformed ones are an error.
func Load(envFiles ...string) (Config, error) {
	for _, f := range envFiles {
		if f == "" {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return Config{}, fmt.Errorf("config: load %s: %w", f, err)
		}
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment over Default.
func FromEnv() (Config, error) {
	cfg := Default()
	var errs []error
	fail := func(key string, err error) {
		errs = append(errs, fmt.Errorf("%s: %w", key, err))
	}

	cfg.MapPath = getEnv(EnvMap, cfg.MapPath)
	cfg.TexturePath = getEnv(EnvTexture, cfg.TexturePath)
	cfg.Title = getEnv(EnvTitle, cfg.Title)
	cfg.Addr = getEnv(EnvAddr, cfg.Addr)

	if v, ok := os.LookupEnv(EnvViewportWidth); ok {
		f, err := strconv.ParseFloat(v, 32)
		if err != nil {
			fail(EnvViewportWidth, err)
		}
		cfg.ViewportWidth = float32(f)
	}
	if v, ok := os.LookupEnv(EnvViewportHeight); ok {
		f, err := strconv.ParseFloat(v, 32)
		if err != nil {
			fail(EnvViewportHeight, err)
		}
		cfg.ViewportHeight = float32(f)
	}

	if v, ok := os.LookupEnv(EnvConvention); ok {
		c, err := tilescene.ParseConvention(v)
		if err != nil {
			fail(EnvConvention, err)
		}
		cfg.Profile = ProfileFor(c)
	}
	if v, ok := os.LookupEnv(EnvPivot); ok {
		p, err := tilescene.ParsePivot(v)
		if err != nil {
			fail(EnvPivot, err)
		}
		cfg.Profile.Pivot = p
	}
	if v, ok := os.LookupEnv(EnvScanOrder); ok {
		o, err := tilescene.ParseScanOrder(v)
		if err != nil {
			fail(EnvScanOrder, err)
		}
		cfg.Profile.ScanOrder = o
	}
	if v, ok := os.LookupEnv(EnvDepth); ok {
		f, err := strconv.ParseFloat(v, 32)
		if err != nil {
			fail(EnvDepth, err)
		}
		cfg.Profile.Depth = float32(f)
	}

	if v, ok := os.LookupEnv(EnvClearColor); ok {
		c, err := ParseColor(v)
		if err != nil {
			fail(EnvClearColor, err)
		}
		cfg.ClearColor = c
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			fail(EnvLogLevel, err)
		}
	}

	for key, d := range map[string]*time.Duration{
		EnvReadTimeout:  &cfg.ReadTimeout,
		EnvWriteTimeout: &cfg.WriteTimeout,
	} {
		v, ok := os.LookupEnv(key)
		if !ok {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			fail(key, err)
			continue
		}
		*d = parsed
	}

	if len(errs) > 0 {
		return Config{}, fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return cfg, cfg.Validate()
}

// ProfileFor returns the predefined profile of convention c.
func ProfileFor(c tilescene.Convention) tilescene.Profile {
	if c == tilescene.UpwardY {
		return tilescene.ProfileUpwardY
	}
	return tilescene.ProfileDownwardY
}

// Validate reports settings no tool can run with.
func (c Config) Validate() error {
	var errs []error
	if c.MapPath == "" {
		errs = append(errs, errors.New("map path is empty"))
	}
	if c.ViewportWidth < 0 || c.ViewportHeight < 0 {
		errs = append(errs, fmt.Errorf("negative viewport %vx%v", c.ViewportWidth, c.ViewportHeight))
	}
	for i, v := range c.ClearColor {
		if v < 0 || v > 1 {
			errs = append(errs, fmt.Errorf("clear color component %d = %v outside [0, 1]", i, v))
		}
	}
	if c.ReadTimeout <= 0 || c.WriteTimeout <= 0 {
		errs = append(errs, errors.New("timeouts must be positive"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// Viewport returns the configured viewport.
func (c Config) Viewport() tilescene.Viewport {
	return tilescene.Viewport{Width: c.ViewportWidth, Height: c.ViewportHeight}
}

// ParseColor parses "r,g,b" or "r,g,b,a" with components in [0, 1].
// Alpha defaults to 1.
func ParseColor(s string) ([4]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 && len(parts) != 4 {
		return [4]float64{}, fmt.Errorf("color %q: want 3 or 4 components", s)
	}
	c := [4]float64{0, 0, 0, 1}
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return [4]float64{}, fmt.Errorf("color %q: %w", s, err)
		}
		c[i] = v
	}
	return c, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
