// Package uiutil provides small helpers for Bubble Tea message plumbing.
package uiutil

import tea "charm.land/bubbletea/v2"

// CmdHandler wraps an already-built message in a command.
func CmdHandler(msg tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return msg
	}
}

// Sequenced turns a batch of messages into one command that delivers them in
// order, or nil when there are none.
func Sequenced(msgs ...tea.Msg) tea.Cmd {
	if len(msgs) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, len(msgs))
	for i, msg := range msgs {
		cmds[i] = CmdHandler(msg)
	}
	return tea.Sequence(cmds...)
}
