package fire

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfiguration is returned when an engine cannot be built from a Config.
var ErrInvalidConfiguration = errors.New("invalid fire configuration")

// Orientation selects the scan band and decay step of the propagation step.
type Orientation uint8

const (
	Portrait Orientation = iota
	Landscape
)

const (
	// PortraitDecayStep scales the uniform draw into a decay amount in portrait mode.
	PortraitDecayStep = 1.33
	// LandscapeDecayStep scales the uniform draw in landscape mode.
	LandscapeDecayStep = 1.5
	// MaxDecayStep bounds configured decay steps; larger draws would erase a
	// white-hot cell in one step anyway.
	MaxDecayStep = PaletteSize
	// DefaultRampMillis is how long a freshly lit source takes per intensity step.
	DefaultRampMillis = 80
)

// String returns the lowercase orientation name.
func (o Orientation) String() string {
	switch o {
	case Portrait:
		return "portrait"
	case Landscape:
		return "landscape"
	default:
		return "orientation(" + strconv.Itoa(int(o)) + ")"
	}
}

// DecayStep returns the orientation's default decay scale.
func (o Orientation) DecayStep() float64 {
	if o == Landscape {
		return LandscapeDecayStep
	}
	return PortraitDecayStep
}

// ParseOrientation accepts "portrait"/"landscape" and their first letters.
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "portrait", "p":
		return Portrait, nil
	case "landscape", "l":
		return Landscape, nil
	}
	return Portrait, fmt.Errorf("unknown orientation %q: %w", s, ErrInvalidConfiguration)
}

// UnmarshalYAML decodes an orientation from its name.
func (o *Orientation) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseOrientation(s)
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// MarshalYAML encodes the orientation by name.
func (o Orientation) MarshalYAML() (any, error) {
	return o.String(), nil
}

// OrientationFor picks Portrait for displays taller than wide.
func OrientationFor(displayW, displayH int) Orientation {
	if displayH > displayW {
		return Portrait
	}
	return Landscape
}

// GridFor derives grid dimensions from a display area in pixels. Portrait
// grids use one cell per 10x6 pixels, landscape grids one per 16x8.
func GridFor(displayW, displayH int, o Orientation) (int, int) {
	if o == Landscape {
		return displayW / 16, displayH / 8
	}
	return displayW / 10, displayH / 6
}

// Config holds the immutable settings of a fire engine.
type Config struct {
	Width       int         `yaml:"width"`
	Height      int         `yaml:"height"`
	Orientation Orientation `yaml:"orientation"`

	// Seed feeds the decay RNG; zero seeds from the clock.
	Seed int64 `yaml:"seed"`

	// DecayStep overrides the orientation default when positive.
	DecayStep float64 `yaml:"decay_step"`

	RampMillis int64 `yaml:"ramp_millis"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:       100,
		Height:      100,
		Orientation: Portrait,
		RampMillis:  DefaultRampMillis,
	}
}

// EffectiveDecayStep resolves the decay scale used by Step.
func (c Config) EffectiveDecayStep() float64 {
	if c.DecayStep > 0 {
		return c.DecayStep
	}
	return c.Orientation.DecayStep()
}

// Validate reports whether an engine can be built from c.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("grid %dx%d: %w", c.Width, c.Height, ErrInvalidConfiguration)
	}
	if c.Orientation != Portrait && c.Orientation != Landscape {
		return fmt.Errorf("%s: %w", c.Orientation, ErrInvalidConfiguration)
	}
	if math.IsNaN(c.DecayStep) || c.DecayStep < 0 || c.DecayStep > MaxDecayStep {
		return fmt.Errorf("decay step %g: %w", c.DecayStep, ErrInvalidConfiguration)
	}
	if c.RampMillis <= 0 {
		return fmt.Errorf("ramp millis %d: %w", c.RampMillis, ErrInvalidConfiguration)
	}
	return nil
}

// MapKeys lists the keys understood by Apply.
var MapKeys = []string{"w", "h", "orientation", "seed", "decay_step", "ramp_millis"}

// Apply overrides c with flag-style key/value pairs. Unknown keys and
// unparseable or out-of-range values fail with ErrInvalidConfiguration.
func (c Config) Apply(values map[string]string) (Config, error) {
	for key, value := range values {
		if err := c.applyKey(key, value); err != nil {
			return Config{}, err
		}
	}
	return c, nil
}

func (c *Config) applyKey(key, value string) error {
	bad := func() error {
		return fmt.Errorf("%s=%q: %w", key, value, ErrInvalidConfiguration)
	}
	switch key {
	case "w", "h":
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed <= 0 {
			return bad()
		}
		if key == "w" {
			c.Width = parsed
		} else {
			c.Height = parsed
		}
	case "orientation":
		parsed, err := ParseOrientation(value)
		if err != nil {
			return err
		}
		c.Orientation = parsed
	case "seed":
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return bad()
		}
		c.Seed = parsed
	case "decay_step":
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil || !(parsed >= 0 && parsed <= MaxDecayStep) {
			return bad()
		}
		c.DecayStep = parsed
	case "ramp_millis":
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil || parsed <= 0 {
			return bad()
		}
		c.RampMillis = parsed
	default:
		return fmt.Errorf("unknown key %q: %w", key, ErrInvalidConfiguration)
	}
	return nil
}

// LoadConfig reads a YAML config file. Keys missing from the file keep
// their DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read fire config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes a YAML document into a validated Config.
func ParseConfig(data []byte) (Config, error) {
	c := DefaultConfig()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("failed to parse fire config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}
