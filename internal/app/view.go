package app

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/tuikit/scrollview/internal/keymap"
	"github.com/tuikit/scrollview/internal/perf"
)

var (
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236"))
	statusKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Background(lipgloss.Color("236"))
	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))
	helpStyle = lipgloss.NewStyle().
			Padding(1, 2)
)

// View renders the viewport plus a two-line status area.
func (a *App) View() tea.View {
	defer perf.Time("view")()

	var view tea.View
	view.AltScreen = true
	view.MouseMode = tea.MouseModeCellMotion

	if a.quitting {
		view.SetContent("")
		return view
	}
	if !a.ready {
		view.SetContent("Loading...")
		return view
	}
	if a.err != nil {
		view.SetContent(fmt.Sprintf("Error: %v\n\nPress any key to quit.", a.err))
		return view
	}

	body := a.view.View()
	if a.showHelp {
		body = a.helpView()
	}

	s := lipgloss.JoinVertical(lipgloss.Left,
		body,
		a.statusLine(),
		a.hintsLine(),
	)
	view.SetContent(a.zones.Scan(s))
	return view
}

// statusLine summarizes the viewport settings and the latest scroll event.
func (a *App) statusLine() string {
	mode := "local"
	if a.view.WindowScrolling() {
		mode = "window"
	}
	scroll := "on"
	if !a.view.ScrollEnabled() {
		scroll = "off"
	}

	parts := []string{
		a.title,
		"mode " + statusKeyStyle.Render(mode),
		"scroll " + statusKeyStyle.Render(scroll),
		fmt.Sprintf("throttle %s", statusKeyStyle.Render(a.view.Throttle().String())),
		fmt.Sprintf("offset %d,%d", a.view.Offset().X, a.view.Offset().Y),
		fmt.Sprintf("view %dx%d", a.layout.Width, a.layout.Height),
	}
	if a.last != nil {
		parts = append(parts, fmt.Sprintf("events %d (last %dx%d at %s)",
			a.events, a.last.size.Width, a.last.size.Height, a.last.at.Format("15:04:05.000")))
	}
	if a.view.IsScrolling() {
		parts = append(parts, statusKeyStyle.Render("scrolling"))
	}
	if a.notice != "" {
		parts = append(parts, a.notice)
	}

	line := " " + strings.Join(parts, "  |  ")
	line = ansi.Truncate(line, a.width, "…")
	if w := ansi.StringWidth(line); w < a.width {
		line += strings.Repeat(" ", a.width-w)
	}
	return statusStyle.Render(line)
}

// hintsLine lists the app-level key bindings.
func (a *App) hintsLine() string {
	hints := []string{
		keymap.PrimaryKey(a.keys.ToggleWindowMode) + " mode",
		keymap.PrimaryKey(a.keys.ToggleScroll) + " scroll",
		keymap.PrimaryKey(a.keys.CycleThrottle) + " throttle",
		keymap.PrimaryKey(a.keys.CopyPosition) + " copy",
		keymap.PrimaryKey(a.keys.Help) + " help",
		keymap.PrimaryKey(a.keys.Quit) + " quit",
	}
	line := " " + strings.Join(hints, "  ")
	return hintStyle.Render(ansi.Truncate(line, a.width, "…"))
}

// helpView fills the viewport area with the full binding list.
func (a *App) helpView() string {
	rows := []struct {
		b    string
		desc string
	}{
		{a.keys.ToggleWindowMode.Help().Key, "toggle local/window scroll source"},
		{a.keys.ToggleScroll.Help().Key, "enable or disable scrolling"},
		{a.keys.CycleThrottle.Help().Key, "cycle scroll event throttle"},
		{a.keys.ToggleVBar.Help().Key, "toggle vertical scrollbar"},
		{a.keys.ToggleHBar.Help().Key, "toggle horizontal scrollbar"},
		{a.keys.CopyPosition.Help().Key, "copy scroll position"},
		{a.keys.Quit.Help().Key, "quit"},
	}

	var b strings.Builder
	b.WriteString("Key bindings\n\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "  %-12s %s\n", r.b, r.desc)
	}
	b.WriteString("\nArrows/hjkl scroll, pgup/pgdn page, home/end jump.\n")
	b.WriteString("Press any key to close.")

	block := helpStyle.Render(b.String())
	h := a.height - chromeHeight
	if h < 1 {
		h = 1
	}
	return lipgloss.Place(a.width, h, lipgloss.Center, lipgloss.Center, block)
}
