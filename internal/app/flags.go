package app

import (
	"flag"
	"fmt"
	"slices"
	"strings"

	"doomfire/internal/fire"
)

// Config represents the command-line parameters for the application.
// Zero values defer to the config file, then to the display size, then to
// fire.DefaultConfig.
type Config struct {
	Width       int
	Height      int
	Orientation string
	Seed        int64
	ConfigPath  string
	// Set holds -set key=value overrides in fire.MapKeys form.
	Set map[string]string

	Scale int
	TPS   int
	Ticks int
	Panel int
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Scale: 4, TPS: 60, Ticks: 60, Panel: 220, Set: map[string]string{}}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "w", c.Width, "grid width in cells (0 = fit the display)")
	fs.IntVar(&c.Height, "h", c.Height, "grid height in cells (0 = fit the display)")
	fs.StringVar(&c.Orientation, "orientation", c.Orientation, "portrait or landscape")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for the decay RNG (0 = clock)")
	fs.StringVar(&c.ConfigPath, "config", c.ConfigPath, "YAML fire config file")
	fs.Func("set", "override a fire setting, key=value (repeatable; keys: "+strings.Join(fire.MapKeys, ", ")+")", c.addOverride)
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "frames per second")
	fs.IntVar(&c.Ticks, "ticks", c.Ticks, "simulation ticks per second")
	fs.IntVar(&c.Panel, "panel", c.Panel, "parameter panel width in pixels (0 hides it)")
}

func (c *Config) addOverride(s string) error {
	key, value, ok := strings.Cut(s, "=")
	key = strings.TrimSpace(key)
	if !ok || !slices.Contains(fire.MapKeys, key) {
		return fmt.Errorf("want key=value with key one of %s", strings.Join(fire.MapKeys, ", "))
	}
	if c.Set == nil {
		c.Set = map[string]string{}
	}
	c.Set[key] = strings.TrimSpace(value)
	return nil
}

// FireConfig resolves the engine configuration from the file and flags. When
// neither a file nor -w/-h fixes the grid, it is derived from a display area
// of displayW x displayH pixels; pass zeros to keep the defaults.
func (c *Config) FireConfig(displayW, displayH int) (fire.Config, error) {
	cfg := fire.DefaultConfig()
	if c.ConfigPath != "" {
		loaded, err := fire.LoadConfig(c.ConfigPath)
		if err != nil {
			return fire.Config{}, err
		}
		cfg = loaded
	}
	if c.Orientation != "" {
		o, err := fire.ParseOrientation(c.Orientation)
		if err != nil {
			return fire.Config{}, err
		}
		cfg.Orientation = o
	}
	if c.ConfigPath == "" && c.Width == 0 && c.Height == 0 && displayW > 0 && displayH > 0 {
		if c.Orientation == "" {
			cfg.Orientation = fire.OrientationFor(displayW, displayH)
		}
		cfg.Width, cfg.Height = fire.GridFor(displayW, displayH, cfg.Orientation)
	}
	cfg, err := cfg.Apply(c.Set)
	if err != nil {
		return fire.Config{}, err
	}
	if c.Width != 0 {
		cfg.Width = c.Width
	}
	if c.Height != 0 {
		cfg.Height = c.Height
	}
	if c.Seed != 0 {
		cfg.Seed = c.Seed
	}
	if err := cfg.Validate(); err != nil {
		return fire.Config{}, err
	}
	return cfg, nil
}
