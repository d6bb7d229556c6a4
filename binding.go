package scrollview

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/tuikit/scrollview/content"
)

// sourceMode selects where scroll signals are read from.
type sourceMode int

const (
	modeLocal sourceMode = iota
	modeWindow
)

// binding is the installed handler set. Exactly one of {nil, local, window}
// holds at any time; the two variants are mutually exclusive so one gesture is
// never delivered through both sources.
type binding interface {
	sourceMode() sourceMode
}

// localBinding handles input that hits the component's own box.
type localBinding struct{}

func (localBinding) sourceMode() sourceMode { return modeLocal }

// windowBinding handles global input. The per-view local handlers (click,
// thumb drag) are simply absent from this variant rather than conditionally
// cleared. watch is nil when the content cannot observe its own size.
type windowBinding struct {
	watch *watchHandle
}

func (windowBinding) sourceMode() sourceMode { return modeWindow }

// watchHandle owns the lifecycle of one content size watcher.
type watchHandle struct {
	gen    uint64
	ch     chan struct{}
	ctx    context.Context
	cancel context.CancelFunc
}

// scrollEndMsg is the debounced end-detection timeout. gen identifies the
// signal that armed it; stale generations are ignored.
type scrollEndMsg struct {
	gen uint64
}

// contentSizeMsg reports that the watched content changed size. gen ties it to
// the watcher that produced it so messages from a torn-down binding are
// dropped.
type contentSizeMsg struct {
	gen uint64
}

// endTick schedules the end-detection timeout for the given generation.
func endTick(gen uint64) tea.Cmd {
	return tea.Tick(scrollEndDelay, func(time.Time) tea.Msg {
		return scrollEndMsg{gen: gen}
	})
}

// bind installs the handler set for mode. Window mode immediately reports an
// initial layout so the consumer has a measurement before the first resize,
// and attempts to start a content size watcher, degrading to resize-only
// updates when the capability is absent.
func (m *Model) bind(mode sourceMode) tea.Cmd {
	if m.binding != nil {
		m.unbind()
	}
	if mode == modeLocal {
		m.binding = localBinding{}
		return nil
	}

	b := windowBinding{}
	if w, ok := m.content.(content.Watchable); ok {
		b.watch = m.startWatch(w)
	} else {
		m.warnNoSizeObserver(nil)
	}
	m.binding = b

	m.clampOffsets()
	m.emitLayout()
	if b.watch != nil {
		return listenForContentSize(b.watch)
	}
	return nil
}

// unbind removes exactly the listeners the active mode registered and cancels
// any in-progress gesture. Idempotent: calling it when nothing is bound (or
// twice in a row) is a no-op.
func (m *Model) unbind() {
	if m.binding == nil {
		return
	}
	if b, ok := m.binding.(windowBinding); ok && b.watch != nil {
		b.watch.cancel()
	}
	m.binding = nil
	m.dragAxis = 0
	m.track.reset()
}

// startWatch wires the content's size observation into the message loop.
// Returns nil when the watcher could not be started.
func (m *Model) startWatch(w content.Watchable) *watchHandle {
	ctx, cancel := context.WithCancel(context.Background())
	m.watchGen++
	h := &watchHandle{
		gen:    m.watchGen,
		ch:     make(chan struct{}, 1),
		ctx:    ctx,
		cancel: cancel,
	}
	err := w.Watch(ctx, func() {
		select {
		case h.ch <- struct{}{}:
		default:
		}
	})
	if err != nil {
		cancel()
		m.warnNoSizeObserver(err)
		return nil
	}
	return h
}

// listenForContentSize waits for the next size change from the watcher. The
// command completes without a message once the watcher is cancelled.
func listenForContentSize(h *watchHandle) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-h.ch:
			return contentSizeMsg{gen: h.gen}
		case <-h.ctx.Done():
			return nil
		}
	}
}
