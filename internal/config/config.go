// Package config loads layoutkit.toml and LAYOUTKIT_* overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// DefaultPath is read when no path is given. A missing default file is not
// an error.
const DefaultPath = "layoutkit.toml"

// Config is the layoutkit.toml file.
type Config struct {
	// Verbose logs every edge change.
	Verbose bool          `toml:"verbose"`
	Scroll  ScrollConfig  `toml:"scroll"`
	Window  WindowConfig  `toml:"window"`
	Demo    DemoConfig    `toml:"demo"`
	Metrics MetricsConfig `toml:"metrics"`
	Trace   TraceConfig   `toml:"trace"`
}

type ScrollConfig struct {
	// Distance one wheel step moves content
	Gain float64 `toml:"gain"`
}

// WindowConfig is the window size used when nothing reports one (dump).
type WindowConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

type DemoConfig struct {
	// Rows initially in the demo list
	Rows int `toml:"rows"`
	// Padding between demo widgets, in cells
	Padding float64 `toml:"padding"`
}

type MetricsConfig struct {
	// Addr serves /metrics when non-empty, e.g. "127.0.0.1:9464"
	Addr string `toml:"addr"`
}

type TraceConfig struct {
	Endpoint    string `toml:"endpoint"`
	ServiceName string `toml:"service_name"`
	Insecure    bool   `toml:"insecure"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Scroll: ScrollConfig{Gain: 13},
		Window: WindowConfig{Width: 80, Height: 24},
		Demo:   DemoConfig{Rows: 12, Padding: 1},
		Trace:  TraceConfig{ServiceName: "layoutkit", Insecure: true},
	}
}

// Load reads path over the defaults, then applies environment overrides.
// An empty path reads DefaultPath if it exists.
func Load(path string) (Config, error) {
	config := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &config); err != nil {
			return config, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return config, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := config.ApplyEnv(os.LookupEnv); err != nil {
		return config, err
	}
	return config, config.Validate()
}

// ApplyEnv overrides fields from the environment:
//
//	LAYOUTKIT_VERBOSE       verbose
//	LAYOUTKIT_SCROLL_GAIN   scroll.gain
//	LAYOUTKIT_METRICS_ADDR  metrics.addr
//	LAYOUTKIT_DEMO_ROWS     demo.rows
//	OTEL_EXPORTER_OTLP_ENDPOINT, OTEL_SERVICE_NAME  trace.*
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("LAYOUTKIT_VERBOSE"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("LAYOUTKIT_VERBOSE: %w", err)
		}
		c.Verbose = b
	}
	if v, ok := lookup("LAYOUTKIT_SCROLL_GAIN"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("LAYOUTKIT_SCROLL_GAIN: %w", err)
		}
		c.Scroll.Gain = f
	}
	if v, ok := lookup("LAYOUTKIT_METRICS_ADDR"); ok {
		c.Metrics.Addr = v
	}
	if v, ok := lookup("LAYOUTKIT_DEMO_ROWS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("LAYOUTKIT_DEMO_ROWS: %w", err)
		}
		c.Demo.Rows = n
	}
	if v, ok := lookup("OTEL_EXPORTER_OTLP_ENDPOINT"); ok {
		c.Trace.Endpoint = v
	}
	if v, ok := lookup("OTEL_SERVICE_NAME"); ok && v != "" {
		c.Trace.ServiceName = v
	}
	return nil
}

// Validate rejects values the engine cannot use.
func (c Config) Validate() error {
	if c.Scroll.Gain <= 0 {
		return fmt.Errorf("scroll.gain must be positive, got %g", c.Scroll.Gain)
	}
	if c.Window.Width < 1 || c.Window.Height < 1 {
		return fmt.Errorf("window size must be at least 1x1, got %gx%g", c.Window.Width, c.Window.Height)
	}
	if c.Demo.Rows < 0 {
		return fmt.Errorf("demo.rows must not be negative, got %d", c.Demo.Rows)
	}
	if c.Demo.Padding < 0 {
		return fmt.Errorf("demo.padding must not be negative, got %g", c.Demo.Padding)
	}
	return nil
}

// Encode renders c as TOML.
func (c Config) Encode() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}
