package app

import (
	tea "charm.land/bubbletea/v2"
	"github.com/atotto/clipboard"
)

type clipboardResultMsg struct {
	err error
}

func (a *App) copyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		return clipboardResultMsg{err: clipboard.WriteAll(text)}
	}
}
