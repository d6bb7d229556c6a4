package scrollview

import "strings"

const (
	thumbRune = "█"
	trackRune = "░"
)

// thumbSpan computes the thumb's start position and length on a gutter track.
// A document that fits the viewport gets a full-length thumb.
func thumbSpan(track, visible, total, offset int) (start, size int) {
	if track < 1 {
		return 0, 0
	}
	if total <= visible {
		return 0, track
	}
	size = visible * track / total
	if size < 1 {
		size = 1
	}
	if size > track {
		size = track
	}
	maxScroll := total - visible
	start = offset * (track - size) / maxScroll
	if start < 0 {
		start = 0
	}
	if start+size > track {
		start = track - size
	}
	return start, size
}

// barMetrics returns visible/total/offset for one axis in the active mode.
func (m *Model) barMetrics(vertical bool) (visible, total, offset int) {
	src := m.activeSource()
	vw, vh := src.viewport()
	cw, ch := src.contentSize()
	if m.mode() == modeLocal {
		// The local thumb tracks the content box, not the border box.
		vw, vh = m.viewportInner()
	}
	if vertical {
		return vh, max(ch, vh), m.offsetY
	}
	return vw, max(cw, vw), m.offsetX
}

func (m *Model) renderVerticalBar(track int) string {
	visible, total, offset := m.barMetrics(true)
	start, size := thumbSpan(track, visible, total, offset)
	rows := make([]string, 0, track)
	for i := 0; i < track; i++ {
		if i >= start && i < start+size {
			rows = append(rows, m.styles.Thumb.Render(thumbRune))
		} else {
			rows = append(rows, m.styles.Track.Render(trackRune))
		}
	}
	return strings.Join(rows, "\n")
}

func (m *Model) renderHorizontalBar(track int) string {
	visible, total, offset := m.barMetrics(false)
	start, size := thumbSpan(track, visible, total, offset)
	var b strings.Builder
	if start > 0 {
		b.WriteString(m.styles.Track.Render(strings.Repeat(trackRune, start)))
	}
	if size > 0 {
		b.WriteString(m.styles.Thumb.Render(strings.Repeat(thumbRune, size)))
	}
	if rest := track - start - size; rest > 0 {
		b.WriteString(m.styles.Track.Render(strings.Repeat(trackRune, rest)))
	}
	return b.String()
}
