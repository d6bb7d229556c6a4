package scrollview

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/tuikit/scrollview/content"
	"github.com/tuikit/scrollview/internal/logging"
)

func testDoc(lines, width int) *content.Buffer {
	b := content.NewBuffer("")
	row := strings.Repeat("x", width)
	for i := 0; i < lines; i++ {
		b.Append(fmt.Sprintf("%3d %s", i, row))
	}
	return b
}

// wheelAt feeds one wheel-down signal at the given window position.
func wheelAt(m *Model, x, y int) tea.Cmd {
	_, cmd := m.Update(tea.MouseWheelMsg{X: x, Y: y, Button: tea.MouseWheelDown})
	return cmd
}

func TestWheelInsideBoxScrolls(t *testing.T) {
	setClock(t)
	m := New(testDoc(100, 40))
	m.SetSize(20, 10)
	m.Init()

	wheelAt(m, 5, 5)
	if got := m.Offset().Y; got != wheelStep {
		t.Fatalf("offset.Y = %d, want %d", got, wheelStep)
	}
}

func TestWheelOutsideBoxIgnored(t *testing.T) {
	setClock(t)
	var events int
	m := New(testDoc(100, 40), WithOnScroll(func(Event) { events++ }))
	m.SetSize(20, 10)
	m.Init()

	wheelAt(m, 50, 50)
	if m.Offset().Y != 0 || events != 0 {
		t.Fatalf("signal from outside the bound source must be ignored; offset=%d events=%d",
			m.Offset().Y, events)
	}
}

func TestScrollDisabledBypassesWheelCallback(t *testing.T) {
	// Scenario: scrollEnabled=false; a wheel signal arrives; the configured
	// wheel callback is never invoked and nothing scrolls.
	setClock(t)
	wheels := 0
	m := New(testDoc(100, 40),
		WithScrollEnabled(false),
		WithOnWheel(func(tea.MouseWheelMsg) { wheels++ }))
	m.SetSize(20, 10)
	m.Init()

	wheelAt(m, 5, 5)
	if wheels != 0 {
		t.Fatalf("onWheel invoked %d times with scrolling disabled, want 0", wheels)
	}
	if m.Offset().Y != 0 {
		t.Fatalf("offset moved to %d with scrolling disabled", m.Offset().Y)
	}
}

func TestThrottledGestureEmissions(t *testing.T) {
	// Scenario: throttle=50ms, signals at t=0, t=10, t=60. Emissions happen
	// at t=0 (start) and t=60 (tick); t=10 is suppressed. The end event
	// fires once the quiet period elapses.
	clock := setClock(t)
	var stamps []time.Time
	m := New(testDoc(1000, 40),
		WithThrottle(50*time.Millisecond),
		WithOnScroll(func(ev Event) { stamps = append(stamps, ev.Timestamp()) }))
	m.SetSize(20, 10)
	m.Init()

	start := clock.t
	wheelAt(m, 5, 5)
	clock.advance(10 * time.Millisecond)
	wheelAt(m, 5, 5)
	clock.advance(50 * time.Millisecond)
	wheelAt(m, 5, 5)

	if len(stamps) != 2 {
		t.Fatalf("got %d emissions during gesture, want 2", len(stamps))
	}
	if !stamps[0].Equal(start) {
		t.Errorf("start emitted at %v, want %v", stamps[0], start)
	}
	if want := start.Add(60 * time.Millisecond); !stamps[1].Equal(want) {
		t.Errorf("tick emitted at %v, want %v", stamps[1], want)
	}

	// No further signals: the end timeout for the last generation fires.
	clock.advance(scrollEndDelay)
	m.Update(scrollEndMsg{gen: m.track.endGen})
	if len(stamps) != 3 {
		t.Fatalf("got %d emissions after quiet period, want 3", len(stamps))
	}
	if want := start.Add(160 * time.Millisecond); !stamps[2].Equal(want) {
		t.Errorf("end emitted at %v, want %v", stamps[2], want)
	}
	if m.IsScrolling() {
		t.Fatal("gesture must be idle after the end event")
	}
}

func TestZeroThrottleOnlyStartAndEnd(t *testing.T) {
	clock := setClock(t)
	events := 0
	m := New(testDoc(1000, 40), WithOnScroll(func(Event) { events++ }))
	m.SetSize(20, 10)
	m.Init()

	for i := 0; i < 15; i++ {
		wheelAt(m, 5, 5)
		clock.advance(10 * time.Millisecond)
	}
	m.Update(scrollEndMsg{gen: m.track.endGen})

	if events != 2 {
		t.Fatalf("got %d emissions, want exactly 2 (start, end)", events)
	}
}

func TestLazyEventReadsLiveSource(t *testing.T) {
	// Scenario: reading ContentOffset twice around a position change returns
	// two different values; the event is a view onto the live source, not a
	// snapshot.
	setClock(t)
	var captured Event
	m := New(testDoc(100, 40), WithOnScroll(func(ev Event) { captured = ev }))
	m.SetSize(20, 10)
	m.Init()

	wheelAt(m, 5, 5)
	first := captured.ContentOffset().Y
	wheelAt(m, 5, 5)
	second := captured.ContentOffset().Y
	if first == second {
		t.Fatalf("expected live reads to differ, got %d both times", first)
	}
	if second != m.Offset().Y {
		t.Fatalf("live read %d does not match current offset %d", second, m.Offset().Y)
	}
}

// watchedDoc is a buffer that supports size observation, recording the
// registered callback so tests can report changes on demand.
type watchedDoc struct {
	*content.Buffer

	mu       sync.Mutex
	onChange func()
}

func (d *watchedDoc) Watch(ctx context.Context, onChange func()) error {
	d.mu.Lock()
	d.onChange = onChange
	d.mu.Unlock()
	return nil
}

func (d *watchedDoc) change() {
	d.mu.Lock()
	fn := d.onChange
	d.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func TestWindowModeContentWatcher(t *testing.T) {
	setClock(t)
	doc := &watchedDoc{Buffer: testDoc(100, 40)}
	layouts := 0
	m := New(doc,
		WithWindowScrolling(true),
		WithOnLayout(func(Layout) { layouts++ }))

	listen := m.Init()
	if listen == nil {
		t.Fatal("window bind over watchable content must schedule a listen command")
	}
	if layouts != 1 {
		t.Fatalf("got %d initial layout events, want 1", layouts)
	}

	doc.change()
	msg := listen()
	sizeMsg, ok := msg.(contentSizeMsg)
	if !ok {
		t.Fatalf("listen command returned %T, want contentSizeMsg", msg)
	}

	_, next := m.Update(sizeMsg)
	if layouts != 2 {
		t.Fatalf("size change did not report a layout, got %d", layouts)
	}
	if next == nil {
		t.Fatal("watcher must re-listen after delivering a size change")
	}

	// Switching modes tears the watcher down; its in-flight message must be
	// dropped and its pending listen must complete without a message.
	m.SetWindowScrolling(false)
	m.Update(contentSizeMsg{gen: sizeMsg.gen})
	if layouts != 2 {
		t.Fatalf("message from a torn-down watcher delivered, layouts=%d", layouts)
	}
	if got := next(); got != nil {
		t.Fatalf("cancelled listen returned %v, want nil", got)
	}
}

func TestWindowModeWithoutSizeObservation(t *testing.T) {
	// Scenario: window scrolling over content with no size observation
	// capability. Binding succeeds, the advisory is issued once, and a
	// resize still triggers a layout event.
	setClock(t)
	var buf bytes.Buffer
	logging.SetOutput(&buf, logging.LevelWarn)
	t.Cleanup(func() { logging.SetEnabled(false) })

	layouts := 0
	m := New(testDoc(100, 40),
		WithWindowScrolling(true),
		WithOnLayout(func(Layout) { layouts++ }))
	if cmd := m.Init(); cmd != nil {
		t.Fatal("binding without a watcher must not schedule a listen command")
	}
	if layouts != 1 {
		t.Fatalf("got %d initial layout events, want 1", layouts)
	}

	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	if layouts != 2 {
		t.Fatalf("resize did not trigger a layout event, got %d", layouts)
	}

	if n := strings.Count(buf.String(), "size observation"); n != 1 {
		t.Fatalf("advisory issued %d times, want 1:\n%s", n, buf.String())
	}
}

func TestWindowModeLayoutUsesTerminalSize(t *testing.T) {
	setClock(t)
	var last Layout
	m := New(testDoc(100, 40),
		WithWindowScrolling(true),
		WithOnLayout(func(l Layout) { last = l }))
	m.Init()
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	if last.Width != 80 || last.Height != 24 {
		t.Fatalf("layout = %+v, want 80x24 terminal measurement", last)
	}

	wheelAt(m, 70, 20) // anywhere on screen qualifies in window mode
	if m.Offset().Y != wheelStep {
		t.Fatalf("window-mode wheel ignored, offset=%d", m.Offset().Y)
	}
}

func TestModeSwitchCancelsOldGesture(t *testing.T) {
	setClock(t)
	events := 0
	layouts := 0
	m := New(testDoc(1000, 40),
		WithOnScroll(func(Event) { events++ }),
		WithOnLayout(func(Layout) { layouts++ }))
	m.SetSize(20, 10)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m.Init()
	layouts = 0 // ignore the local layout from SetSize

	wheelAt(m, 5, 5) // start event
	staleGen := m.track.endGen
	if events != 1 {
		t.Fatalf("expected start emission, got %d", events)
	}

	m.SetWindowScrolling(true)
	if layouts != 1 {
		t.Fatalf("window bind must emit its initial layout exactly once, got %d", layouts)
	}

	// The old mode's end timer must not deliver after the switch.
	m.Update(scrollEndMsg{gen: staleGen})
	if events != 1 {
		t.Fatalf("stale end delivered after mode switch; events=%d", events)
	}
	if m.IsScrolling() {
		t.Fatal("gesture must have been cancelled by the switch")
	}
}

func TestModeSwitchNoDoubleDelivery(t *testing.T) {
	setClock(t)
	events := 0
	m := New(testDoc(1000, 40), WithOnScroll(func(Event) { events++ }))
	m.SetSize(20, 10)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m.Init()
	m.SetWindowScrolling(true)

	wheelAt(m, 5, 5) // inside the old local box and on the global screen
	if events != 1 {
		t.Fatalf("one raw signal produced %d emissions, want 1", events)
	}
}

func TestUnbindIdempotent(t *testing.T) {
	setClock(t)
	m := New(testDoc(10, 10))
	m.Close() // never bound
	m.Close()

	m.SetSize(20, 10)
	m.Init()
	m.Close()
	m.Close()
	if m.binding != nil {
		t.Fatal("binding must be nil after close")
	}

	// No signal is accepted once unbound.
	wheelAt(m, 5, 5)
	if m.Offset().Y != 0 {
		t.Fatal("unbound component must not scroll")
	}
}

func TestSetSizeReportsLocalLayout(t *testing.T) {
	setClock(t)
	var last Layout
	layouts := 0
	m := New(testDoc(10, 10), WithOnLayout(func(l Layout) { last = l; layouts++ }))
	m.SetPosition(3, 2)
	m.Init()
	m.SetSize(20, 10)

	if layouts != 1 {
		t.Fatalf("got %d layout events, want 1", layouts)
	}
	if last != (Layout{X: 3, Y: 2, Width: 20, Height: 10}) {
		t.Fatalf("layout = %+v", last)
	}
}

func TestKeyboardScrollGatedByFocusAndEnabled(t *testing.T) {
	setClock(t)
	m := New(testDoc(100, 40))
	m.SetSize(20, 10)
	m.Init()

	down := tea.KeyPressMsg{Code: 'j'}
	m.Update(down)
	if m.Offset().Y != 0 {
		t.Fatal("unfocused component must ignore keys")
	}

	m.Focus()
	m.Update(down)
	if m.Offset().Y != 1 {
		t.Fatalf("offset = %d after down key, want 1", m.Offset().Y)
	}

	m.SetScrollEnabled(false)
	m.Update(down)
	if m.Offset().Y != 1 {
		t.Fatal("disabled component must ignore keys")
	}
}

func TestProgrammaticScrollFeedsGesture(t *testing.T) {
	setClock(t)
	events := 0
	m := New(testDoc(100, 40), WithOnScroll(func(Event) { events++ }))
	m.SetSize(20, 10)
	m.Init()

	m.ScrollTo(0, 30)
	if m.Offset().Y != 30 {
		t.Fatalf("offset = %d, want 30", m.Offset().Y)
	}
	if events != 1 {
		t.Fatalf("programmatic scroll emitted %d events, want 1 (start)", events)
	}

	// Clamped no-op movement is not a signal.
	m.ScrollBy(0, 100000)
	m.ScrollBy(0, 100000)
	if m.Offset().Y == 30 {
		t.Fatal("expected clamped scroll to the bottom")
	}
	countAtBottom := events
	m.ScrollBy(0, 1)
	if events != countAtBottom {
		t.Fatal("movement clamped to the same position must not signal")
	}
}
