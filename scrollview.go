// Package scrollview is a viewport component for Bubble Tea that bridges raw
// wheel, motion, key and resize input into a normalized, throttled scroll
// event stream. The scroll source is either the component's own viewport
// (local mode) or the whole terminal (window mode); the emitted event shape is
// the same for both.
package scrollview

import (
	"sync"
	"time"

	tea "charm.land/bubbletea/v2"
	zone "github.com/lrstanley/bubblezone"

	"github.com/tuikit/scrollview/content"
	"github.com/tuikit/scrollview/internal/logging"
)

// wheelStep is the number of cells one wheel notch scrolls.
const wheelStep = 3

// Model is a scrollable viewport. Create it with New, hand it the usual
// Init/Update/View calls, and tell it its box with SetSize/SetPosition.
//
// All gesture and listener state is owned by the instance and lives for its
// lifetime; nothing here is package-global.
type Model struct {
	KeyMap KeyMap

	content content.Content
	styles  Styles
	zone    *zone.Manager
	zoneID  string

	// box within the window (local-mode hit testing and layout events)
	x, y          int
	width, height int

	// terminal cell grid, from the latest window size message
	termWidth, termHeight int

	// scroll position; in window mode this is the global document offset
	offsetX, offsetY int

	focused bool
	binding binding
	track   tracker

	// scrollbar thumb drag: 0 none, 1 vertical, 2 horizontal
	dragAxis int

	scrollEnabled   bool
	showVertical    bool
	showHorizontal  bool
	windowScrolling bool

	onScroll func(Event)
	onLayout func(Layout)
	onWheel  func(tea.MouseWheelMsg)
	onMotion func(tea.MouseMotionMsg)

	// pass-through slots; declared in the contract, never synthesized here
	onScrollBeginDrag     func(Event)
	onScrollEndDrag       func(Event)
	onMomentumScrollBegin func(Event)
	onMomentumScrollEnd   func(Event)

	advisoryOnce sync.Once
	watchGen     uint64
}

// Option configures a Model at construction time.
type Option func(*Model)

// WithOnScroll sets the normalized scroll event callback.
func WithOnScroll(fn func(Event)) Option { return func(m *Model) { m.onScroll = fn } }

// WithOnLayout sets the layout event callback. Local mode fires it when the
// host sets a new size; window mode synthesizes it from the terminal size.
func WithOnLayout(fn func(Layout)) Option { return func(m *Model) { m.onLayout = fn } }

// WithOnWheel forwards raw wheel input. Gated by ScrollEnabled.
func WithOnWheel(fn func(tea.MouseWheelMsg)) Option { return func(m *Model) { m.onWheel = fn } }

// WithOnMotion forwards raw mouse motion input. Gated by ScrollEnabled.
func WithOnMotion(fn func(tea.MouseMotionMsg)) Option { return func(m *Model) { m.onMotion = fn } }

// WithOnScrollBeginDrag sets a pass-through slot carried for API parity; this
// component never triggers it on its own.
func WithOnScrollBeginDrag(fn func(Event)) Option {
	return func(m *Model) { m.onScrollBeginDrag = fn }
}

// WithOnScrollEndDrag sets a pass-through slot carried for API parity.
func WithOnScrollEndDrag(fn func(Event)) Option { return func(m *Model) { m.onScrollEndDrag = fn } }

// WithOnMomentumScrollBegin sets a pass-through slot carried for API parity.
func WithOnMomentumScrollBegin(fn func(Event)) Option {
	return func(m *Model) { m.onMomentumScrollBegin = fn }
}

// WithOnMomentumScrollEnd sets a pass-through slot carried for API parity.
func WithOnMomentumScrollEnd(fn func(Event)) Option {
	return func(m *Model) { m.onMomentumScrollEnd = fn }
}

// WithScrollEnabled controls interactive scrolling (default true).
func WithScrollEnabled(enabled bool) Option { return func(m *Model) { m.scrollEnabled = enabled } }

// WithThrottle sets the minimum interval between mid-gesture scroll events.
// Zero or less emits only the start and end events (default 0).
func WithThrottle(d time.Duration) Option { return func(m *Model) { m.track.throttle = d } }

// WithShowsVerticalScrollIndicator toggles the vertical scrollbar (default true).
func WithShowsVerticalScrollIndicator(show bool) Option {
	return func(m *Model) { m.showVertical = show }
}

// WithShowsHorizontalScrollIndicator toggles the horizontal scrollbar (default true).
func WithShowsHorizontalScrollIndicator(show bool) Option {
	return func(m *Model) { m.showHorizontal = show }
}

// WithWindowScrolling selects window mode at construction (default local).
func WithWindowScrolling(on bool) Option { return func(m *Model) { m.windowScrolling = on } }

// WithStyles overrides the default scrollbar styling.
func WithStyles(s Styles) Option { return func(m *Model) { m.styles = s } }

// New creates a scrollview over the given content.
func New(c content.Content, opts ...Option) *Model {
	m := &Model{
		KeyMap:         DefaultKeyMap(),
		content:        c,
		styles:         DefaultStyles(),
		zoneID:         "scrollview",
		scrollEnabled:  true,
		showVertical:   true,
		showHorizontal: true,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Init binds the configured source mode.
func (m *Model) Init() tea.Cmd {
	return m.bind(m.mode())
}

// Close tears the component down: cancels any pending end detection and
// releases window-mode resources. Safe to call more than once.
func (m *Model) Close() {
	m.unbind()
}

// SetZone sets the shared zone manager used for local-mode hit testing. The
// zone id is namespaced with the manager's prefix support when callers mark
// multiple scrollviews.
func (m *Model) SetZone(z *zone.Manager) { m.zone = z }

// SetZoneID overrides the zone id used when marking the view.
func (m *Model) SetZoneID(id string) { m.zoneID = id }

// SetContent swaps the displayed document. In window mode the size watcher is
// rebound so the new content's capability is honored.
func (m *Model) SetContent(c content.Content) tea.Cmd {
	m.content = c
	m.clampOffsets()
	if m.binding != nil && m.mode() == modeWindow {
		m.unbind()
		return m.bind(modeWindow)
	}
	return nil
}

// SetPosition records the component's top-left corner within the window.
func (m *Model) SetPosition(x, y int) { m.x, m.y = x, y }

// SetSize sets the border-box dimensions and, in local mode, reports the new
// layout to the consumer.
func (m *Model) SetSize(width, height int) {
	m.width, m.height = width, height
	m.clampOffsets()
	if m.mode() == modeLocal && m.onLayout != nil {
		m.onLayout(Layout{X: m.x, Y: m.y, Width: width, Height: height})
	}
}

// Focus enables keyboard scrolling.
func (m *Model) Focus() { m.focused = true }

// Blur disables keyboard scrolling.
func (m *Model) Blur() { m.focused = false }

// Focused returns the focus state.
func (m *Model) Focused() bool { return m.focused }

// SetScrollEnabled toggles interactive scrolling. When disabled, wheel and
// motion input neither scrolls nor reaches the raw forwarding callbacks, so
// suppressed native behavior and suppressed callbacks stay in agreement.
func (m *Model) SetScrollEnabled(enabled bool) { m.scrollEnabled = enabled }

// ScrollEnabled reports whether interactive scrolling is on.
func (m *Model) ScrollEnabled() bool { return m.scrollEnabled }

// SetThrottle sets the minimum interval between mid-gesture emissions.
func (m *Model) SetThrottle(d time.Duration) { m.track.throttle = d }

// Throttle returns the current throttle interval.
func (m *Model) Throttle() time.Duration { return m.track.throttle }

// SetShowsVerticalScrollIndicator toggles the vertical scrollbar.
func (m *Model) SetShowsVerticalScrollIndicator(show bool) {
	m.showVertical = show
	m.clampOffsets()
}

// ShowsVerticalScrollIndicator reports whether the vertical scrollbar is shown.
func (m *Model) ShowsVerticalScrollIndicator() bool { return m.showVertical }

// SetShowsHorizontalScrollIndicator toggles the horizontal scrollbar.
func (m *Model) SetShowsHorizontalScrollIndicator(show bool) {
	m.showHorizontal = show
	m.clampOffsets()
}

// ShowsHorizontalScrollIndicator reports whether the horizontal scrollbar is shown.
func (m *Model) ShowsHorizontalScrollIndicator() bool { return m.showHorizontal }

// SetWindowScrolling switches between local and window source mode. The old
// mode's handlers are removed before the new mode's are installed, so one
// gesture is never delivered twice. The returned command carries the new
// mode's startup work (window mode emits its initial layout immediately).
func (m *Model) SetWindowScrolling(on bool) tea.Cmd {
	if on == m.windowScrolling {
		return nil
	}
	m.unbind()
	m.windowScrolling = on
	return m.bind(m.mode())
}

// WindowScrolling reports the active source mode.
func (m *Model) WindowScrolling() bool { return m.windowScrolling }

// IsScrolling reports whether a gesture is currently in progress.
func (m *Model) IsScrolling() bool { return m.track.scrolling }

// Offset returns the current scroll position.
func (m *Model) Offset() Offset { return Offset{X: m.offsetX, Y: m.offsetY} }

// ScrollTo scrolls to an absolute position. Programmatic scrolling feeds the
// same gesture state machine as interactive input.
func (m *Model) ScrollTo(x, y int) tea.Cmd {
	return m.applyScroll(x-m.offsetX, y-m.offsetY)
}

// ScrollBy scrolls by a relative delta.
func (m *Model) ScrollBy(dx, dy int) tea.Cmd {
	return m.applyScroll(dx, dy)
}

// mode returns the configured source mode.
func (m *Model) mode() sourceMode {
	if m.windowScrolling {
		return modeWindow
	}
	return modeLocal
}

// activeSource returns the measurement source for the current mode.
func (m *Model) activeSource() source {
	if m.mode() == modeWindow {
		return windowSource{m: m}
	}
	return localSource{m: m}
}

// viewportInner returns the content box: the border box minus visible
// scrollbar gutters.
func (m *Model) viewportInner() (w, h int) {
	w, h = m.width, m.height
	if m.showVertical {
		w--
	}
	if m.showHorizontal {
		h--
	}
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return w, h
}

// maxOffsets returns the largest valid offsets for the current mode.
func (m *Model) maxOffsets() (x, y int) {
	var vw, vh int
	if m.mode() == modeWindow {
		vw, vh = m.termWidth, m.termHeight
	} else {
		vw, vh = m.viewportInner()
	}
	cw, ch := 0, 0
	if m.content != nil {
		cw, ch = m.content.Width(), m.content.Len()
	}
	return max(0, cw-vw), max(0, ch-vh)
}

func (m *Model) clampOffsets() {
	mx, my := m.maxOffsets()
	m.offsetX = clamp(m.offsetX, 0, mx)
	m.offsetY = clamp(m.offsetY, 0, my)
}

// applyScroll moves the offset and, when the position actually changed, runs
// the accepted signal through the gesture tracker. The returned command
// re-arms end detection.
func (m *Model) applyScroll(dx, dy int) tea.Cmd {
	mx, my := m.maxOffsets()
	nx := clamp(m.offsetX+dx, 0, mx)
	ny := clamp(m.offsetY+dy, 0, my)
	if nx == m.offsetX && ny == m.offsetY {
		return nil
	}
	m.offsetX, m.offsetY = nx, ny
	return m.scrollSignal()
}

// scrollSignal feeds one accepted scroll occurrence to the tracker.
func (m *Model) scrollSignal() tea.Cmd {
	emit, gen := m.track.signal()
	if emit {
		m.emitScroll()
	}
	return endTick(gen)
}

// emitScroll delivers a normalized event bound to the current mode's source.
// A missing callback is a silent no-op.
func (m *Model) emitScroll() {
	if m.onScroll == nil {
		return
	}
	m.onScroll(Event{src: m.activeSource(), ts: timeNow()})
}

// emitLayout delivers the current measurement for the active mode.
func (m *Model) emitLayout() {
	if m.onLayout == nil {
		return
	}
	if m.mode() == modeWindow {
		m.onLayout(Layout{X: 0, Y: 0, Width: m.termWidth, Height: m.termHeight})
		return
	}
	m.onLayout(Layout{X: m.x, Y: m.y, Width: m.width, Height: m.height})
}

// warnNoSizeObserver logs the one-time advisory for environments without
// content size observation. It is a no-op unless logging was initialized, so
// production and test runs stay silent.
func (m *Model) warnNoSizeObserver(err error) {
	m.advisoryOnce.Do(func() {
		if err != nil {
			logging.Warn("content size observation unavailable (%v); layout updates will rely on window resizes only", err)
			return
		}
		logging.Warn("content does not support size observation; layout updates will rely on window resizes only")
	})
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
