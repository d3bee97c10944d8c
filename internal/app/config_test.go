package app

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifeview/internal/input"
	_ "lifeview/internal/sims/life"
)

func TestDefaultsValidate(t *testing.T) {
	cfg := NewConfig()
	require.NoError(t, cfg.Validate())
	p, err := cfg.Palette()
	require.NoError(t, err)
	assert.Equal(t, uint8(0x33), p.Alive.R)
	assert.Equal(t, uint8(0xee), p.Dead.G)
	assert.Equal(t, uint8(0xdd), p.Grid.B)

	w, h := cfg.Geometry().CanvasSize()
	assert.Equal(t, 16*64+1, w)
	assert.Equal(t, 16*64+1, h)
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]func(*Config){
		"engine":    func(c *Config) { c.Engine = "nope" },
		"width":     func(c *Config) { c.Width = 0 },
		"cell":      func(c *Config) { c.Cell = -1 },
		"border":    func(c *Config) { c.Border = -1 },
		"tps":       func(c *Config) { c.TPS = 0 },
		"steps":     func(c *Config) { c.Steps = -1 },
		"zoom":      func(c *Config) { c.ZoomSensitivity = 0 },
		"min scale": func(c *Config) { c.MinScale = -1 },
		"drag":      func(c *Config) { c.DragThreshold = -1 },
		"hud":       func(c *Config) { c.HUDWidth = -5 },
		"pan":       func(c *Config) { c.PanButton = "thumb" },
		"color":     func(c *Config) { c.Colors.Grid = "#12" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := NewConfig()
			mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestLoadPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lifeview.toml")
	writeFile(t, path, `
width = 32
height = 24
steps = 4
pan_button = "right"

[colors]
alive = "#112233"
`)

	cfg := NewConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.Bind(fs)
	require.NoError(t, fs.Parse([]string{"-config", path, "-steps", "2", "-width", "64"}))
	require.NoError(t, cfg.Load(fs))

	assert.Equal(t, 64, cfg.Width, "explicit flag beats file")
	assert.Equal(t, 24, cfg.Height, "file beats default")
	assert.Equal(t, 2, cfg.Steps)
	assert.Equal(t, "#112233", cfg.Colors.Alive)
	assert.Equal(t, 15, cfg.Cell, "default kept")

	opts := cfg.InputOptions()
	assert.Equal(t, input.ButtonSecondary, opts.PanButton)
	assert.Equal(t, 3.0, opts.DragThreshold)
}

func TestLoadWithoutFile(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.Bind(fs)
	require.NoError(t, fs.Parse([]string{"-tps", "0"}))
	assert.ErrorIs(t, cfg.Load(fs), ErrInvalidConfig)
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	cfg := NewConfig()
	assert.ErrorIs(t, cfg.Decode([]byte("colour = 'red'\n")), ErrInvalidConfig)
	assert.Error(t, cfg.ReadFile(filepath.Join(t.TempDir(), "missing.toml")))
}

func TestEngineOptionsFromFile(t *testing.T) {
	cfg := NewConfig()
	require.NoError(t, cfg.Decode([]byte("engine = \"life\"\n[options]\nrule = \"30\"\n")))
	assert.Equal(t, map[string]string{"rule": "30"}, cfg.Options)
}

func TestWatchReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lifeview.toml")
	writeFile(t, path, "steps = 1\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	base := *NewConfig()
	ch, err := Watch(ctx, path, base, nil)
	require.NoError(t, err)

	writeFile(t, filepath.Join(dir, "other.toml"), "steps = 9\n")
	writeFile(t, path, "steps = 5\n[colors]\ndead = \"#000000\"\n")

	var got Config
	require.Eventually(t, func() bool {
		select {
		case got = <-ch:
			return got.Steps == 5
		default:
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, "#000000", got.Colors.Dead)
	assert.Equal(t, base.Width, got.Width)

	cancel()
	require.Eventually(t, func() bool {
		select {
		case _, ok := <-ch:
			return !ok
		default:
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)
}
