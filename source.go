package scrollview

// source supplies the measurements behind a normalized event. Implementations
// hold a live reference to the model so reads reflect the current state.
type source interface {
	offset() (x, y int)
	contentSize() (w, h int)
	viewport() (w, h int)
}

// localSource measures against the component's own viewport box.
type localSource struct {
	m *Model
}

func (s localSource) offset() (x, y int) {
	return s.m.offsetX, s.m.offsetY
}

func (s localSource) contentSize() (w, h int) {
	if s.m.content == nil {
		return 0, 0
	}
	return s.m.content.Width(), s.m.content.Len()
}

// viewport reports the component's border-box dimensions, scrollbar gutters
// included.
func (s localSource) viewport() (w, h int) {
	return s.m.width, s.m.height
}

// windowSource measures against the whole terminal. The viewport is the inner
// cell grid reported by the runtime, never outer pixel geometry.
type windowSource struct {
	m *Model
}

func (s windowSource) offset() (x, y int) {
	return s.m.offsetX, s.m.offsetY
}

// contentSize reports the document extent. A document shorter than the window
// still scrolls as the window's size, matching the global source semantics.
func (s windowSource) contentSize() (w, h int) {
	cw, ch := 0, 0
	if s.m.content != nil {
		cw, ch = s.m.content.Width(), s.m.content.Len()
	}
	return max(cw, s.m.termWidth), max(ch, s.m.termHeight)
}

func (s windowSource) viewport() (w, h int) {
	return s.m.termWidth, s.m.termHeight
}
