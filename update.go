package scrollview

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
)

// Update handles input and timer messages.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)
	case tea.KeyPressMsg:
		return m.handleKey(msg)
	case tea.MouseWheelMsg:
		return m.handleWheel(msg)
	case tea.MouseMotionMsg:
		return m.handleMotion(msg)
	case tea.MouseClickMsg:
		return m.handleClick(msg)
	case tea.MouseReleaseMsg:
		m.dragAxis = 0
		return m, nil
	case scrollEndMsg:
		if m.track.timeout(msg.gen) {
			m.emitScroll()
		}
		return m, nil
	case contentSizeMsg:
		return m.handleContentSize(msg)
	}
	return m, nil
}

func (m *Model) handleWindowSize(msg tea.WindowSizeMsg) (*Model, tea.Cmd) {
	m.termWidth, m.termHeight = msg.Width, msg.Height
	if b := m.binding; b != nil && b.sourceMode() == modeWindow {
		m.clampOffsets()
		// Layout events bypass throttling.
		m.emitLayout()
	}
	return m, nil
}

func (m *Model) handleContentSize(msg contentSizeMsg) (*Model, tea.Cmd) {
	b, ok := m.binding.(windowBinding)
	if !ok || b.watch == nil || b.watch.gen != msg.gen {
		// Stale watcher from before a mode switch; drop it.
		return m, nil
	}
	m.clampOffsets()
	m.emitLayout()
	return m, listenForContentSize(b.watch)
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (*Model, tea.Cmd) {
	if m.binding == nil || !m.focused || !m.scrollEnabled {
		return m, nil
	}
	_, pageH := m.scrollPage()
	switch {
	case key.Matches(msg, m.KeyMap.Up):
		return m, m.applyScroll(0, -1)
	case key.Matches(msg, m.KeyMap.Down):
		return m, m.applyScroll(0, 1)
	case key.Matches(msg, m.KeyMap.Left):
		return m, m.applyScroll(-1, 0)
	case key.Matches(msg, m.KeyMap.Right):
		return m, m.applyScroll(1, 0)
	case key.Matches(msg, m.KeyMap.PageUp):
		return m, m.applyScroll(0, -pageH)
	case key.Matches(msg, m.KeyMap.PageDown):
		return m, m.applyScroll(0, pageH)
	case key.Matches(msg, m.KeyMap.Top):
		return m, m.ScrollTo(m.offsetX, 0)
	case key.Matches(msg, m.KeyMap.Bottom):
		_, my := m.maxOffsets()
		return m, m.ScrollTo(m.offsetX, my)
	}
	return m, nil
}

func (m *Model) handleWheel(msg tea.MouseWheelMsg) (*Model, tea.Cmd) {
	if !m.acceptsAt(msg.X, msg.Y) {
		return m, nil
	}
	if !m.scrollEnabled {
		// Scrolling is suppressed; the raw callback is bypassed too so the
		// two stay in agreement.
		return m, nil
	}
	if m.onWheel != nil {
		m.onWheel(msg)
	}
	var dx, dy int
	switch msg.Button {
	case tea.MouseWheelUp:
		dy = -wheelStep
	case tea.MouseWheelDown:
		dy = wheelStep
	case tea.MouseWheelLeft:
		dx = -wheelStep
	case tea.MouseWheelRight:
		dx = wheelStep
	default:
		return m, nil
	}
	return m, m.applyScroll(dx, dy)
}

func (m *Model) handleMotion(msg tea.MouseMotionMsg) (*Model, tea.Cmd) {
	if m.dragAxis != 0 {
		// Thumb drag is a local-mode handler; it keeps scrolling even when
		// the pointer leaves the box, matching how panes forward drags.
		return m, m.dragTo(msg.X, msg.Y)
	}
	if !m.acceptsAt(msg.X, msg.Y) {
		return m, nil
	}
	if !m.scrollEnabled {
		return m, nil
	}
	if m.onMotion != nil {
		m.onMotion(msg)
	}
	return m, nil
}

// handleClick starts a scrollbar thumb drag. Window mode has no per-view
// handlers, so clicks are ignored there.
func (m *Model) handleClick(msg tea.MouseClickMsg) (*Model, tea.Cmd) {
	b := m.binding
	if b == nil || b.sourceMode() != modeLocal {
		return m, nil
	}
	if msg.Button != tea.MouseLeft || !m.scrollEnabled || !m.inView(msg.X, msg.Y) {
		return m, nil
	}
	ox, oy := m.viewOrigin()
	rx, ry := msg.X-ox, msg.Y-oy
	innerW, innerH := m.viewportInner()
	if m.showVertical && rx == m.width-1 && ry < innerH {
		m.dragAxis = 1
		return m, m.dragTo(msg.X, msg.Y)
	}
	if m.showHorizontal && ry == m.height-1 && rx < innerW {
		m.dragAxis = 2
		return m, m.dragTo(msg.X, msg.Y)
	}
	return m, nil
}

// dragTo maps a pointer position on a gutter to an absolute offset.
func (m *Model) dragTo(x, y int) tea.Cmd {
	ox, oy := m.viewOrigin()
	innerW, innerH := m.viewportInner()
	mx, my := m.maxOffsets()
	switch m.dragAxis {
	case 1:
		if innerH <= 1 {
			return nil
		}
		ry := clamp(y-oy, 0, innerH-1)
		return m.ScrollTo(m.offsetX, ry*my/(innerH-1))
	case 2:
		if innerW <= 1 {
			return nil
		}
		rx := clamp(x-ox, 0, innerW-1)
		return m.ScrollTo(rx*mx/(innerW-1), m.offsetY)
	}
	return nil
}

// acceptsAt is the origin filter: a signal qualifies only when it comes from
// the bound source. Window mode accepts the global stream; local mode demands
// a hit inside this component's box so propagated input from unrelated
// regions is ignored.
func (m *Model) acceptsAt(x, y int) bool {
	b := m.binding
	if b == nil {
		return false
	}
	if b.sourceMode() == modeWindow {
		return true
	}
	return m.inView(x, y)
}

// inView tests window coordinates against the component's box, preferring the
// zone manager's scanned bounds when available.
func (m *Model) inView(x, y int) bool {
	if m.zone != nil {
		if info := m.zone.Get(m.zoneID); info != nil && !info.IsZero() {
			return x >= info.StartX && x <= info.EndX && y >= info.StartY && y <= info.EndY
		}
	}
	return x >= m.x && x < m.x+m.width && y >= m.y && y < m.y+m.height
}

// viewOrigin returns the component's top-left corner in window coordinates.
func (m *Model) viewOrigin() (x, y int) {
	if m.zone != nil {
		if info := m.zone.Get(m.zoneID); info != nil && !info.IsZero() {
			return info.StartX, info.StartY
		}
	}
	return m.x, m.y
}

// scrollPage returns the per-page scroll amount for the active mode.
func (m *Model) scrollPage() (w, h int) {
	if m.mode() == modeWindow {
		w, h = m.termWidth, m.termHeight
	} else {
		w, h = m.viewportInner()
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}
