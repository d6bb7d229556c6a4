package scrollview

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// View renders the visible window of the content plus any scrollbar gutters.
// The result is marked with the zone manager when one is set, which is what
// makes local-mode hit testing track the component wherever the host lays it
// out.
func (m *Model) View() string {
	if m.width < 1 || m.height < 1 {
		return ""
	}
	innerW, innerH := m.viewportInner()

	rows := make([]string, 0, innerH)
	for r := 0; r < innerH; r++ {
		idx := m.offsetY + r
		var line string
		if m.content != nil && idx >= 0 && idx < m.content.Len() {
			line = ansi.Cut(m.content.Line(idx), m.offsetX, m.offsetX+innerW)
		}
		if w := ansi.StringWidth(line); w < innerW {
			line += strings.Repeat(" ", innerW-w)
		}
		rows = append(rows, line)
	}
	block := strings.Join(rows, "\n")

	if m.showVertical {
		block = lipgloss.JoinHorizontal(lipgloss.Top, block, m.renderVerticalBar(innerH))
	}
	if m.showHorizontal {
		bottom := m.renderHorizontalBar(innerW)
		if m.showVertical {
			bottom = lipgloss.JoinHorizontal(lipgloss.Top, bottom, m.styles.Corner.Render(trackRune))
		}
		block = lipgloss.JoinVertical(lipgloss.Left, block, bottom)
	}

	if m.zone != nil {
		block = m.zone.Mark(m.zoneID, block)
	}
	return block
}
