package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/krunch/dirty"
	"github.com/lixenwraith/krunch/input"
	"github.com/lixenwraith/krunch/parameter"
)

// DefaultPath is read when no -config flag is given and the file exists
const DefaultPath = "krunch.toml"

// Config is the decoded configuration file. Zero sections keep their defaults
type Config struct {
	Loop  LoopConfig  `toml:"loop"`
	Grid  GridConfig  `toml:"grid"`
	Dirty DirtyConfig `toml:"dirty"`
	Scene SceneConfig `toml:"scene"`
	Audio AudioConfig `toml:"audio"`
	Keys  KeysConfig  `toml:"keys"`
}

// LoopConfig holds the loop cadences
type LoopConfig struct {
	DrawMS   int `toml:"draw_ms"`
	UpdateMS int `toml:"update_ms"`
	IdleUS   int `toml:"idle_us"`
}

// GridConfig holds cell colors (0xRRGGBB) and the painted radius around each cell point
type GridConfig struct {
	Background uint32 `toml:"background"`
	Fade       uint32 `toml:"fade"`
	Cell       uint32 `toml:"cell"`
	RadiusX    int    `toml:"radius_x"`
	RadiusY    int    `toml:"radius_y"`
	StatsRate  int    `toml:"stats_rate"`
}

// DirtyConfig selects the tracker mode: "rects" or "bounds"
type DirtyConfig struct {
	Mode string `toml:"mode"`
}

// SceneConfig tunes the demo. Seed 0 seeds from the clock
type SceneConfig struct {
	Seed     int64 `toml:"seed"`
	Patterns int   `toml:"patterns"`
	Trail    int   `toml:"trail"`
}

// AudioConfig switches the cue player
type AudioConfig struct {
	Enabled bool `toml:"enabled"`
}

// KeysConfig overrides key bindings: rune or key name to action name, "none" unbinds
type KeysConfig struct {
	Runes   map[string]string `toml:"runes"`
	Special map[string]string `toml:"special"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Loop: LoopConfig{
			DrawMS:   int(parameter.DrawInterval / time.Millisecond),
			UpdateMS: int(parameter.UpdateInterval / time.Millisecond),
			IdleUS:   int(parameter.IdleSleep / time.Microsecond),
		},
		Grid: GridConfig{
			Background: parameter.Background,
			Fade:       parameter.FadeColor,
			Cell:       parameter.CellFill,
			RadiusX:    parameter.CellRadiusX,
			RadiusY:    parameter.CellRadiusY,
			StatsRate:  parameter.StatsRate,
		},
		Dirty: DirtyConfig{Mode: dirty.ModeRects.String()},
		Scene: SceneConfig{
			Patterns: parameter.PatternCount,
			Trail:    parameter.TrailLength,
		},
	}
}

// Load decodes path over the defaults. An empty path reads DefaultPath when present.
// Keys the Config does not know are an error
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	log.Printf("config: loaded %s", path)
	return cfg, nil
}

// Decode parses TOML text over the defaults, with the same rules as Load
func Decode(data string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("config: unknown key %s", undecoded[0])
	}
	return cfg, cfg.Validate()
}

// Validate rejects non-positive intervals and unknown modes
func (c Config) Validate() error {
	switch {
	case c.Loop.DrawMS <= 0:
		return fmt.Errorf("loop.draw_ms must be positive, got %d", c.Loop.DrawMS)
	case c.Loop.UpdateMS <= 0:
		return fmt.Errorf("loop.update_ms must be positive, got %d", c.Loop.UpdateMS)
	case c.Loop.IdleUS < 0:
		return fmt.Errorf("loop.idle_us must not be negative, got %d", c.Loop.IdleUS)
	case c.Grid.RadiusX < 0 || c.Grid.RadiusY < 0:
		return fmt.Errorf("grid radius must not be negative, got %d,%d", c.Grid.RadiusX, c.Grid.RadiusY)
	case c.Grid.StatsRate < 0:
		return fmt.Errorf("grid.stats_rate must not be negative, got %d", c.Grid.StatsRate)
	case c.Scene.Trail <= 0:
		return fmt.Errorf("scene.trail must be positive, got %d", c.Scene.Trail)
	case c.Scene.Patterns < 0:
		return fmt.Errorf("scene.patterns must not be negative, got %d", c.Scene.Patterns)
	}
	if _, err := dirty.ParseMode(c.Dirty.Mode); err != nil {
		return err
	}
	if _, err := c.KeyTable(); err != nil {
		return err
	}
	return nil
}

// DrawInterval returns the draw cadence
func (c Config) DrawInterval() time.Duration {
	return time.Duration(c.Loop.DrawMS) * time.Millisecond
}

// UpdateInterval returns the update cadence
func (c Config) UpdateInterval() time.Duration {
	return time.Duration(c.Loop.UpdateMS) * time.Millisecond
}

// IdleSleep returns the pause between loop iterations
func (c Config) IdleSleep() time.Duration {
	return time.Duration(c.Loop.IdleUS) * time.Microsecond
}

// DirtyMode returns the parsed tracker mode, rects when invalid
func (c Config) DirtyMode() dirty.Mode {
	m, err := dirty.ParseMode(c.Dirty.Mode)
	if err != nil {
		return dirty.ModeRects
	}
	return m
}

// KeyTable returns the default bindings with the [keys] overrides applied
func (c Config) KeyTable() (*input.KeyTable, error) {
	override, err := input.LoadKeyConfig(c.Keys.Runes, c.Keys.Special)
	if err != nil {
		return nil, err
	}
	return input.MergeKeyTable(input.DefaultKeyTable(), override), nil
}
