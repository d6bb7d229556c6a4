package config

import (
	"encoding/json"
	"os"
	"strings"
)

// KeyMapConfig holds user overrides for keybindings.
type KeyMapConfig struct {
	Bindings map[string][]string `json:"bindings,omitempty"`
}

// BindingFor returns the configured keys for an action, if present.
func (k KeyMapConfig) BindingFor(action string) ([]string, bool) {
	if len(k.Bindings) == 0 {
		return nil, false
	}
	if keys, ok := k.Bindings[action]; ok {
		return keys, true
	}
	if keys, ok := k.Bindings[strings.ToLower(action)]; ok {
		return keys, true
	}
	return nil, false
}

// Config holds the demo application configuration.
type Config struct {
	Paths *Paths

	// ThrottleMs is the minimum interval between mid-gesture scroll events,
	// in milliseconds. Zero emits only the start and end events.
	ThrottleMs int

	WindowScrolling         bool
	ScrollEnabled           bool
	ShowVerticalIndicator   bool
	ShowHorizontalIndicator bool

	KeyMap KeyMapConfig
}

// DefaultConfig returns the default configuration.
func DefaultConfig() (*Config, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return nil, err
	}

	return &Config{
		Paths:                   paths,
		ThrottleMs:              0,
		ScrollEnabled:           true,
		ShowVerticalIndicator:   true,
		ShowHorizontalIndicator: true,
		KeyMap:                  KeyMapConfig{},
	}, nil
}

// Load loads config overrides from ~/.scrollview/config.json if present.
func Load() (*Config, error) {
	cfg, err := DefaultConfig()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(cfg.Paths.ConfigPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := cfg.apply(data); err != nil {
		return nil, err
	}
	return cfg, nil
}

// apply overlays user settings onto the defaults. Absent fields keep their
// default value.
func (c *Config) apply(data []byte) error {
	var user struct {
		ThrottleMs      *int         `json:"throttle_ms"`
		WindowScrolling *bool        `json:"window_scrolling"`
		ScrollEnabled   *bool        `json:"scroll_enabled"`
		ShowVertical    *bool        `json:"show_vertical_indicator"`
		ShowHorizontal  *bool        `json:"show_horizontal_indicator"`
		KeyMap          KeyMapConfig `json:"keymap,omitempty"`
	}
	if err := json.Unmarshal(data, &user); err != nil {
		return err
	}

	if user.ThrottleMs != nil {
		c.ThrottleMs = *user.ThrottleMs
	}
	if user.WindowScrolling != nil {
		c.WindowScrolling = *user.WindowScrolling
	}
	if user.ScrollEnabled != nil {
		c.ScrollEnabled = *user.ScrollEnabled
	}
	if user.ShowVertical != nil {
		c.ShowVerticalIndicator = *user.ShowVertical
	}
	if user.ShowHorizontal != nil {
		c.ShowHorizontalIndicator = *user.ShowHorizontal
	}
	if len(user.KeyMap.Bindings) > 0 {
		c.KeyMap = user.KeyMap
	}
	return nil
}
