// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat is the bubbletea model of the MOSDAC chat TUI.

The model is a view over a session.Session. Every session call that can
block or emit events runs inside a tea.Cmd; the session's listener forwards
its events to the program as SessionEventMsg:

	sess := session.New(client, session.Options{Notifier: toasts, Dialogs: dialogs})
	m := chat.New(sess, chat.Deps{Theme: theme, Toasts: toasts, Dialogs: dialogs})
	p := tea.NewProgram(m, tea.WithAltScreen())
	sess.SetListener(chat.Listener(p))
	sess.Start()
	_, err := p.Run()
*/
package chat
