// Package keymap builds the demo's key bindings, applying user overrides from
// the config file on top of the defaults.
package keymap

import (
	"strings"

	"charm.land/bubbles/v2/key"

	"github.com/tuikit/scrollview"
	"github.com/tuikit/scrollview/internal/config"
)

// Action identifies a bindable action. The string value is the key used in
// the config file's keymap section.
type Action string

const (
	ActionQuit             Action = "quit"
	ActionHelp             Action = "help"
	ActionToggleWindowMode Action = "toggle_window_mode"
	ActionToggleScroll     Action = "toggle_scroll"
	ActionCycleThrottle    Action = "cycle_throttle"
	ActionToggleVBar       Action = "toggle_vertical_bar"
	ActionToggleHBar       Action = "toggle_horizontal_bar"
	ActionCopyPosition     Action = "copy_position"

	ActionScrollUp       Action = "up"
	ActionScrollDown     Action = "down"
	ActionScrollLeft     Action = "left"
	ActionScrollRight    Action = "right"
	ActionScrollPageUp   Action = "pageup"
	ActionScrollPageDown Action = "pagedown"
	ActionScrollTop      Action = "top"
	ActionScrollBottom   Action = "bottom"
)

// KeyMap holds the demo's resolved bindings.
type KeyMap struct {
	Quit             key.Binding
	Help             key.Binding
	ToggleWindowMode key.Binding
	ToggleScroll     key.Binding
	CycleThrottle    key.Binding
	ToggleVBar       key.Binding
	ToggleHBar       key.Binding
	CopyPosition     key.Binding

	// Scroll is handed to the scrollview component.
	Scroll scrollview.KeyMap
}

type bindingDef struct {
	action Action
	keys   []string
	desc   string
}

// New builds the keymap, preferring config overrides over the defaults.
func New(cfg config.KeyMapConfig) KeyMap {
	return KeyMap{
		Quit: bindingFromDef(cfg, bindingDef{
			action: ActionQuit,
			keys:   []string{"q", "ctrl+c"},
			desc:   "quit",
		}),
		Help: bindingFromDef(cfg, bindingDef{
			action: ActionHelp,
			keys:   []string{"?"},
			desc:   "help",
		}),
		ToggleWindowMode: bindingFromDef(cfg, bindingDef{
			action: ActionToggleWindowMode,
			keys:   []string{"w"},
			desc:   "window mode",
		}),
		ToggleScroll: bindingFromDef(cfg, bindingDef{
			action: ActionToggleScroll,
			keys:   []string{"s"},
			desc:   "scroll on/off",
		}),
		CycleThrottle: bindingFromDef(cfg, bindingDef{
			action: ActionCycleThrottle,
			keys:   []string{"t"},
			desc:   "throttle",
		}),
		ToggleVBar: bindingFromDef(cfg, bindingDef{
			action: ActionToggleVBar,
			keys:   []string{"v"},
			desc:   "v bar",
		}),
		ToggleHBar: bindingFromDef(cfg, bindingDef{
			action: ActionToggleHBar,
			keys:   []string{"z"},
			desc:   "h bar",
		}),
		CopyPosition: bindingFromDef(cfg, bindingDef{
			action: ActionCopyPosition,
			keys:   []string{"c"},
			desc:   "copy position",
		}),
		Scroll: scrollKeyMap(cfg),
	}
}

// scrollKeyMap resolves the component bindings, starting from the component's
// own defaults so the two stay in sync.
func scrollKeyMap(cfg config.KeyMapConfig) scrollview.KeyMap {
	km := scrollview.DefaultKeyMap()
	override := func(b *key.Binding, action Action) {
		if keys, ok := cfg.BindingFor(string(action)); ok {
			*b = key.NewBinding(key.WithKeys(keys...))
		}
	}
	override(&km.Up, ActionScrollUp)
	override(&km.Down, ActionScrollDown)
	override(&km.Left, ActionScrollLeft)
	override(&km.Right, ActionScrollRight)
	override(&km.PageUp, ActionScrollPageUp)
	override(&km.PageDown, ActionScrollPageDown)
	override(&km.Top, ActionScrollTop)
	override(&km.Bottom, ActionScrollBottom)
	return km
}

func bindingFromDef(cfg config.KeyMapConfig, def bindingDef) key.Binding {
	keys, ok := cfg.BindingFor(string(def.action))
	if !ok {
		keys = def.keys
	}
	helpKey := strings.Join(keys, "/")
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(helpKey, def.desc),
	)
}

// PrimaryKey returns the first key in the binding, if present.
func PrimaryKey(binding key.Binding) string {
	keys := binding.Keys()
	if len(keys) == 0 {
		return ""
	}
	return keys[0]
}
