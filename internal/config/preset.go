package config

import "fmt"

// Preset represents a named world setup.
type Preset string

const (
	PresetSmall   Preset = "small"
	PresetClassic Preset = "classic"
	PresetLarge   Preset = "large"
	PresetCustom  Preset = "custom"
)

// Presets lists the known presets in display order.
func Presets() []Preset {
	return []Preset{PresetSmall, PresetClassic, PresetLarge, PresetCustom}
}

// ParsePreset validates a preset name. The empty string means no preset.
func ParsePreset(name string) (Preset, error) {
	if name == "" {
		return "", nil
	}
	for _, p := range Presets() {
		if string(p) == name {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown preset %q (want one of %v)", name, Presets())
}

// ApplyPreset modifies the configuration for a preset.
// Size presets touch only grid and snake length; custom switches to the
// deterministic spawn on the classic board.
func ApplyPreset(cfg *SnakeConfig, preset Preset) {
	switch preset {
	case PresetSmall:
		cfg.Grid = GridConfig{Rows: 10, Cols: 10}
		cfg.Snake.Length = 3
	case PresetClassic:
		cfg.Grid = GridConfig{Rows: 15, Cols: 15}
		cfg.Snake.Length = 3
	case PresetLarge:
		cfg.Grid = GridConfig{Rows: 30, Cols: 30}
		cfg.Snake.Length = 4
		cfg.Render.Zoom = min(cfg.Render.Zoom, 12)
	case PresetCustom:
		cfg.Grid = GridConfig{Rows: 15, Cols: 15}
		cfg.Snake.Length = 3
		cfg.Spawn = SpawnConfig{
			Custom:    true,
			Position:  PointConfig{Row: 7, Col: 7},
			Direction: "right",
			Food:      PointConfig{Row: 3, Col: 3},
		}
	}
}
