// Package app is the interactive demo shell around the scrollview component.
// It wires a document into the viewport, surfaces the emitted scroll and
// layout events in a status bar, and exposes runtime toggles for the
// component's settings.
package app

import (
	"fmt"
	"runtime/debug"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	zone "github.com/lrstanley/bubblezone"

	"github.com/tuikit/scrollview"
	"github.com/tuikit/scrollview/content"
	"github.com/tuikit/scrollview/internal/config"
	"github.com/tuikit/scrollview/internal/keymap"
	"github.com/tuikit/scrollview/internal/logging"
	"github.com/tuikit/scrollview/internal/perf"
)

// chromeHeight is the number of rows reserved below the viewport for the
// status bar and key hints.
const chromeHeight = 2

// throttleSteps are the values the throttle key cycles through.
var throttleSteps = []time.Duration{0, 50 * time.Millisecond, 200 * time.Millisecond}

// ContentChangedMsg signals that the document was modified outside the UI,
// typically by the file watcher or a streaming command.
type ContentChangedMsg struct{}

// eventRecord is a snapshot of the most recent scroll event. The event's
// accessors read live state, so the values are captured at delivery time.
type eventRecord struct {
	offset scrollview.Offset
	size   scrollview.Size
	at     time.Time
}

// App is the demo's root model.
type App struct {
	keys  keymap.KeyMap
	cfg   *config.Config
	zones *zone.Manager
	view  *scrollview.Model

	title         string
	width, height int
	ready         bool
	quitting      bool
	showHelp      bool

	err error

	events int
	last   *eventRecord
	layout scrollview.Layout
	notice string
}

// New builds the demo around the given document. The title is shown in the
// status bar (typically the file name or "sample").
func New(cfg *config.Config, doc content.Content, title string) *App {
	a := &App{
		cfg:   cfg,
		keys:  keymap.New(cfg.KeyMap),
		zones: zone.New(),
		title: title,
	}
	a.view = scrollview.New(doc,
		scrollview.WithThrottle(time.Duration(cfg.ThrottleMs)*time.Millisecond),
		scrollview.WithScrollEnabled(cfg.ScrollEnabled),
		scrollview.WithWindowScrolling(cfg.WindowScrolling),
		scrollview.WithShowsVerticalScrollIndicator(cfg.ShowVerticalIndicator),
		scrollview.WithShowsHorizontalScrollIndicator(cfg.ShowHorizontalIndicator),
		scrollview.WithOnScroll(a.recordScroll),
		scrollview.WithOnLayout(a.recordLayout),
	)
	a.view.KeyMap = a.keys.Scroll
	a.view.SetZone(a.zones)
	a.view.Focus()
	return a
}

// Init starts the viewport's source binding.
func (a *App) Init() tea.Cmd {
	return a.view.Init()
}

// Shutdown releases the viewport's resources.
func (a *App) Shutdown() {
	a.view.Close()
	perf.Flush()
}

// Update handles all messages with panic recovery.
func (a *App) Update(msg tea.Msg) (model tea.Model, cmd tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			logging.Error("panic in app.Update: %v\n%s", r, debug.Stack())
			a.err = fmt.Errorf("internal error: %v", r)
			model = a
			cmd = nil
		}
	}()
	return a.update(msg)
}

func (a *App) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	defer perf.Time("update")()
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.ready = true
		a.view.SetPosition(0, 0)
		a.view.SetSize(msg.Width, msg.Height-chromeHeight)
		// The viewport also consumes the raw size for window-mode layout.
		_, cmd := a.view.Update(msg)
		return a, cmd

	case tea.KeyPressMsg:
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}
		if handled, cmd := a.handleKey(msg); handled {
			return a, cmd
		}

	case ContentChangedMsg:
		// Repaint with the reloaded document.
		return a, nil

	case clipboardResultMsg:
		if msg.err != nil {
			a.notice = fmt.Sprintf("copy failed: %v", msg.err)
		} else {
			a.notice = "position copied"
		}
		return a, nil
	}

	_, cmd := a.view.Update(msg)
	return a, cmd
}

// handleKey dispatches app-level bindings. Unhandled keys fall through to the
// viewport's own keymap.
func (a *App) handleKey(msg tea.KeyPressMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		a.quitting = true
		a.Shutdown()
		return true, tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.showHelp = true
		return true, nil

	case key.Matches(msg, a.keys.ToggleWindowMode):
		cmd := a.view.SetWindowScrolling(!a.view.WindowScrolling())
		a.notice = ""
		return true, cmd

	case key.Matches(msg, a.keys.ToggleScroll):
		a.view.SetScrollEnabled(!a.view.ScrollEnabled())
		return true, nil

	case key.Matches(msg, a.keys.CycleThrottle):
		a.view.SetThrottle(nextThrottle(a.view.Throttle()))
		return true, nil

	case key.Matches(msg, a.keys.ToggleVBar):
		a.view.SetShowsVerticalScrollIndicator(!a.view.ShowsVerticalScrollIndicator())
		return true, nil

	case key.Matches(msg, a.keys.ToggleHBar):
		a.view.SetShowsHorizontalScrollIndicator(!a.view.ShowsHorizontalScrollIndicator())
		return true, nil

	case key.Matches(msg, a.keys.CopyPosition):
		off := a.view.Offset()
		return true, a.copyToClipboard(fmt.Sprintf("%d,%d", off.X, off.Y))
	}
	return false, nil
}

func nextThrottle(cur time.Duration) time.Duration {
	for i, step := range throttleSteps {
		if step == cur {
			return throttleSteps[(i+1)%len(throttleSteps)]
		}
	}
	return throttleSteps[0]
}

func (a *App) recordScroll(e scrollview.Event) {
	a.events++
	a.last = &eventRecord{
		offset: e.ContentOffset(),
		size:   e.ContentSize(),
		at:     e.Timestamp(),
	}
}

func (a *App) recordLayout(l scrollview.Layout) {
	a.layout = l
}
