package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "layoutkit.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_FileOverDefaults(t *testing.T) {
	path := writeFile(t, `
verbose = true

[scroll]
gain = 3.0

[metrics]
addr = "127.0.0.1:9464"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, 3.0, cfg.Scroll.Gain)
	assert.Equal(t, "127.0.0.1:9464", cfg.Metrics.Addr)
	assert.Equal(t, Default().Window, cfg.Window)
	assert.Equal(t, Default().Demo, cfg.Demo)
}

func TestLoad_MissingDefaultFile(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Window, cfg.Window)
	assert.Equal(t, Default().Demo, cfg.Demo)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoad_ParseError(t *testing.T) {
	path := writeFile(t, "scroll = [")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "[scroll]\ngain = 3.0\n")
	t.Setenv("LAYOUTKIT_SCROLL_GAIN", "7.5")
	t.Setenv("LAYOUTKIT_VERBOSE", "true")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "collector:4318")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7.5, cfg.Scroll.Gain)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, "collector:4318", cfg.Trace.Endpoint)
}

func TestApplyEnv(t *testing.T) {
	env := func(m map[string]string) func(string) (string, bool) {
		return func(k string) (string, bool) {
			v, ok := m[k]
			return v, ok
		}
	}

	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
		check   func(t *testing.T, c Config)
	}{
		{
			name: "rows and metrics",
			env:  map[string]string{"LAYOUTKIT_DEMO_ROWS": "3", "LAYOUTKIT_METRICS_ADDR": ":9000"},
			check: func(t *testing.T, c Config) {
				assert.Equal(t, 3, c.Demo.Rows)
				assert.Equal(t, ":9000", c.Metrics.Addr)
			},
		},
		{
			name: "empty service name keeps default",
			env:  map[string]string{"OTEL_SERVICE_NAME": ""},
			check: func(t *testing.T, c Config) {
				assert.Equal(t, "layoutkit", c.Trace.ServiceName)
			},
		},
		{name: "bad bool", env: map[string]string{"LAYOUTKIT_VERBOSE": "maybe"}, wantErr: true},
		{name: "bad gain", env: map[string]string{"LAYOUTKIT_SCROLL_GAIN": "fast"}, wantErr: true},
		{name: "bad rows", env: map[string]string{"LAYOUTKIT_DEMO_ROWS": "x"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			err := c.ApplyEnv(env(tt.env))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, c)
		})
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Default().Validate())

	c := Default()
	c.Scroll.Gain = 0
	assert.Error(t, c.Validate())

	c = Default()
	c.Window.Width = 0
	assert.Error(t, c.Validate())

	c = Default()
	c.Demo.Rows = -1
	assert.Error(t, c.Validate())
}

func TestEncode(t *testing.T) {
	data, err := Default().Encode()
	require.NoError(t, err)
	assert.Contains(t, string(data), "[scroll]")
	assert.Contains(t, string(data), "gain = 13")
}
