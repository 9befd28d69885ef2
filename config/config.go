// Package config loads editor settings from YAML.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/milk9111/blueprint/document"
	"github.com/milk9111/blueprint/dungeon"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Width    int `yaml:"width"`
	Height   int `yaml:"height"`
	TileSize int `yaml:"tile_size"`

	// Editable area origin in window pixels.
	OriginX int `yaml:"origin_x"`
	OriginY int `yaml:"origin_y"`

	// Mirror axes; zero means width-1 / height-1.
	AxisX int `yaml:"axis_x"`
	AxisY int `yaml:"axis_y"`

	Dungeon dungeon.Params `yaml:"dungeon"`

	Store     string `yaml:"store"`
	ExportDir string `yaml:"export_dir"`
	InboxDir  string `yaml:"inbox_dir"`
	Script    string `yaml:"script"`
	ShareBase string `yaml:"share_base"`
	TileMap   string `yaml:"autotile_map"`

	UndoLimit int `yaml:"undo_limit"`
	// Ticks before keyboard input is re-enabled after the text entry closes.
	InputDelay int `yaml:"input_delay"`
}

func Default() Config {
	return Config{
		Width:      document.DefaultWidth,
		Height:     document.DefaultHeight,
		TileSize:   32,
		OriginX:    850,
		OriginY:    32,
		Dungeon:    dungeon.DefaultParams(),
		Store:      "blueprint.db",
		ExportDir:  ".",
		InboxDir:   "inbox",
		Script:     "macro.tengo",
		ShareBase:  "https://blueprint.example/",
		UndoLimit:  100,
		InputDelay: 6,
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: load %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.Width < 1 || c.Height < 1:
		return fmt.Errorf("grid size %dx%d must be positive", c.Width, c.Height)
	case c.TileSize < 1:
		return fmt.Errorf("tile_size %d must be positive", c.TileSize)
	case c.Dungeon.MinSize > c.Dungeon.MaxSize:
		return fmt.Errorf("dungeon min_size %d exceeds max_size %d", c.Dungeon.MinSize, c.Dungeon.MaxSize)
	case c.UndoLimit < 0:
		return fmt.Errorf("undo_limit %d must not be negative", c.UndoLimit)
	}
	return nil
}

// Axes returns the configured mirror axes, defaulting to the grid edges.
func (c Config) Axes() (int, int) {
	x, y := c.AxisX, c.AxisY
	if x == 0 {
		x = c.Width - 1
	}
	if y == 0 {
		y = c.Height - 1
	}
	return x, y
}
