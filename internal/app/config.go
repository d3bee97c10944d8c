package app

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"image/color"
	"math"
	"os"

	"github.com/pelletier/go-toml/v2"

	"lifeview/internal/core"
	"lifeview/internal/input"
	"lifeview/internal/render"
	"lifeview/internal/view"
)

var (
	// ErrInvalidConfig reports a configuration value outside its allowed range.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrNoGUI is returned by NewGame in builds without the ebiten tag.
	ErrNoGUI = errors.New("the windowed viewer requires building with the 'ebiten' tag")
)

// Colors holds the canvas palette as hex strings.
type Colors struct {
	Background string `toml:"background"`
	Grid       string `toml:"grid"`
	Dead       string `toml:"dead"`
	Alive      string `toml:"alive"`
}

// Config represents the command-line and file parameters for a viewer.
type Config struct {
	Engine  string            `toml:"engine"`
	Options map[string]string `toml:"options"`
	Width   int               `toml:"width"`
	Height  int               `toml:"height"`
	Cell    int               `toml:"cell"`
	Border  int               `toml:"border"`
	Seed    int64             `toml:"seed"`
	Paused  bool              `toml:"paused"`

	TPS   int `toml:"tps"`
	Steps int `toml:"steps"`

	ZoomSensitivity float64 `toml:"zoom_sensitivity"`
	MinScale        float64 `toml:"min_scale"`
	PanButton       string  `toml:"pan_button"`
	DragThreshold   float64 `toml:"drag_threshold"`

	Colors   Colors `toml:"colors"`
	HUDWidth int    `toml:"hud_width"`
	Verbose  bool   `toml:"verbose"`

	File string `toml:"-"`
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	p := render.DefaultPalette()
	return &Config{
		Engine:          "life",
		Width:           64,
		Height:          64,
		Cell:            15,
		Border:          1,
		Seed:            42,
		TPS:             60,
		Steps:           1,
		ZoomSensitivity: view.DefaultSensitivity,
		MinScale:        view.DefaultMinScale,
		PanButton:       "left",
		DragThreshold:   3,
		Colors: Colors{
			Background: render.FormatHex(p.Background),
			Grid:       render.FormatHex(p.Grid),
			Dead:       render.FormatHex(p.Dead),
			Alive:      render.FormatHex(p.Alive),
		},
		HUDWidth: 220,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.File, "config", c.File, "TOML config file; explicit flags override it")
	fs.StringVar(&c.Engine, "engine", c.Engine, "simulation engine to run")
	fs.IntVar(&c.Width, "width", c.Width, "grid width in cells")
	fs.IntVar(&c.Height, "height", c.Height, "grid height in cells")
	fs.IntVar(&c.Cell, "cell", c.Cell, "cell size in pixels")
	fs.IntVar(&c.Border, "border", c.Border, "grid line width in pixels")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for randomize")
	fs.BoolVar(&c.Paused, "paused", c.Paused, "start with the animation paused")
	fs.IntVar(&c.TPS, "tps", c.TPS, "animation frames per second")
	fs.IntVar(&c.Steps, "steps", c.Steps, "simulation steps per frame")
	fs.Float64Var(&c.ZoomSensitivity, "zoom", c.ZoomSensitivity, "scale change per wheel notch")
	fs.Float64Var(&c.MinScale, "min-scale", c.MinScale, "smallest zoom factor")
	fs.StringVar(&c.PanButton, "pan", c.PanButton, "mouse button that pans: left or right")
	fs.Float64Var(&c.DragThreshold, "drag", c.DragThreshold, "pointer travel in pixels that turns a click into a pan")
	fs.StringVar(&c.Colors.Alive, "alive", c.Colors.Alive, "alive cell color")
	fs.StringVar(&c.Colors.Dead, "dead", c.Colors.Dead, "dead cell color")
	fs.StringVar(&c.Colors.Grid, "grid", c.Colors.Grid, "grid line color")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "control panel width in pixels (0 hides it)")
	fs.BoolVar(&c.Verbose, "v", c.Verbose, "verbose logging")
}

// Load overlays the -config file onto c and then re-applies every flag that
// was set explicitly on fs, giving defaults < file < flags.
func (c *Config) Load(fs *flag.FlagSet) error {
	if c.File == "" {
		return c.Validate()
	}
	explicit := map[string]string{}
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = f.Value.String() })

	if err := c.ReadFile(c.File); err != nil {
		return err
	}
	for name, value := range explicit {
		if err := fs.Set(name, value); err != nil {
			return fmt.Errorf("re-apply -%s: %w", name, err)
		}
	}
	return c.Validate()
}

// ReadFile decodes a TOML file over the current values of c. Keys absent
// from the file keep their current values.
func (c *Config) ReadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	return c.Decode(data)
}

// Decode applies TOML data over the current values of c.
func (c *Config) Decode(data []byte) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Validate checks every field against its allowed range.
func (c *Config) Validate() error {
	if _, ok := core.Engines()[c.Engine]; !ok {
		return fmt.Errorf("%w: unknown engine %q (have %v)", ErrInvalidConfig, c.Engine, core.EngineNames())
	}
	if err := c.Geometry().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	switch {
	case c.TPS <= 0:
		return fmt.Errorf("%w: tps must be positive, got %d", ErrInvalidConfig, c.TPS)
	case c.Steps < 0:
		return fmt.Errorf("%w: steps must not be negative, got %d", ErrInvalidConfig, c.Steps)
	case !(c.ZoomSensitivity > 0) || math.IsInf(c.ZoomSensitivity, 0):
		return fmt.Errorf("%w: zoom sensitivity must be positive, got %v", ErrInvalidConfig, c.ZoomSensitivity)
	case !(c.MinScale > 0):
		return fmt.Errorf("%w: min scale must be positive, got %v", ErrInvalidConfig, c.MinScale)
	case c.DragThreshold < 0:
		return fmt.Errorf("%w: drag threshold must not be negative, got %v", ErrInvalidConfig, c.DragThreshold)
	case c.HUDWidth < 0:
		return fmt.Errorf("%w: hud width must not be negative, got %d", ErrInvalidConfig, c.HUDWidth)
	}
	if _, err := c.Button(); err != nil {
		return err
	}
	if _, err := c.Palette(); err != nil {
		return err
	}
	return nil
}

// Geometry returns the grid geometry described by c.
func (c *Config) Geometry() view.Geometry {
	return view.Geometry{Width: c.Width, Height: c.Height, CellSize: c.Cell, BorderSize: c.Border}
}

// Palette parses the configured colors.
func (c *Config) Palette() (render.Palette, error) {
	var (
		p   render.Palette
		err error
	)
	if p.Background, err = parseColor("background", c.Colors.Background); err != nil {
		return p, err
	}
	if p.Grid, err = parseColor("grid", c.Colors.Grid); err != nil {
		return p, err
	}
	if p.Dead, err = parseColor("dead", c.Colors.Dead); err != nil {
		return p, err
	}
	if p.Alive, err = parseColor("alive", c.Colors.Alive); err != nil {
		return p, err
	}
	return p, nil
}

// Button returns the configured pan button.
func (c *Config) Button() (input.Button, error) {
	b, ok := input.ParseButton(c.PanButton)
	if !ok {
		return 0, fmt.Errorf("%w: unknown pan button %q", ErrInvalidConfig, c.PanButton)
	}
	return b, nil
}

// InputOptions returns controller options derived from c.
func (c *Config) InputOptions() input.Options {
	opts := input.DefaultOptions()
	if b, err := c.Button(); err == nil {
		opts.PanButton = b
	}
	opts.DragThreshold = c.DragThreshold
	return opts
}

func parseColor(name, hex string) (color.RGBA, error) {
	col, err := render.ParseHex(hex)
	if err != nil {
		return col, fmt.Errorf("%w: %s color: %v", ErrInvalidConfig, name, err)
	}
	return col, nil
}
