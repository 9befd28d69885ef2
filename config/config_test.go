package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("cfg = %+v", cfg)
	}
	if x, y := cfg.Axes(); x != 24 || y != 30 {
		t.Fatalf("axes = %d,%d", x, y)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blueprint.yaml")
	data := []byte("width: 40\ntile_size: 16\naxis_x: 20\ndungeon:\n  rooms: 10\n  min_size: 3\n  max_size: 5\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Width != 40 || cfg.Height != 31 || cfg.TileSize != 16 {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.Dungeon.Rooms != 10 || cfg.Dungeon.MinSize != 3 || cfg.Dungeon.MaxSize != 5 {
		t.Fatalf("dungeon = %+v", cfg.Dungeon)
	}
	if x, y := cfg.Axes(); x != 20 || y != 30 {
		t.Fatalf("axes = %d,%d", x, y)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad_yaml", "width: [\n"},
		{"zero_tile", "tile_size: -1\n"},
		{"sizes", "dungeon:\n  min_size: 9\n  max_size: 2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "c.yaml")
			if err := os.WriteFile(path, []byte(tt.body), 0o644); err != nil {
				t.Fatalf("write: %v", err)
			}
			cfg, err := Load(path)
			if err == nil {
				t.Fatalf("expected error")
			}
			if cfg != Default() {
				t.Fatalf("invalid config should fall back to defaults")
			}
		})
	}
}
