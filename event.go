package scrollview

import "time"

// Offset is a scroll position in cells, measured from the content origin.
type Offset struct {
	X int
	Y int
}

// Size is a width/height pair in cells.
type Size struct {
	Width  int
	Height int
}

// Layout describes the measured box of the viewport within the window.
type Layout struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Event is a normalized scroll event. Its shape is independent of whether the
// scroll source is the component's own viewport or the whole window.
//
// Offset and size accessors read the live source at call time; no snapshot is
// taken at emission. Reading a field after further scrolling observes the
// newer value, so consumers that want a point-in-time copy must read promptly.
type Event struct {
	src source
	ts  time.Time
}

// ContentOffset returns the current scrolled distance from the content origin.
func (e Event) ContentOffset() Offset {
	x, y := e.src.offset()
	return Offset{X: x, Y: y}
}

// ContentSize returns the total scrollable extent of the content.
func (e Event) ContentSize() Size {
	w, h := e.src.contentSize()
	return Size{Width: w, Height: h}
}

// LayoutMeasurement returns the visible box of the scroll source.
func (e Event) LayoutMeasurement() Size {
	w, h := e.src.viewport()
	return Size{Width: w, Height: h}
}

// Timestamp returns the wall-clock time of normalization, not of the raw
// signal that triggered it.
func (e Event) Timestamp() time.Time {
	return e.ts
}
