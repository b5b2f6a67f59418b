package main

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"go.tsion.dev/tsion/log"
)

// logLineMsg carries one entry read from a [log.Subscription].
type logLineMsg struct {
	line string
}

// model is the bubbletea model for the dictionary/value tree browser. It
// shows a scrollable rendering of a decoded document's dictionary entries
// and final content value in the main viewport, with a fixed-height log
// pane beneath fed by a [log.Publisher] subscription.
type model struct {
	sub *log.Subscription

	treeLines []string
	logLines  []string

	path   string
	width  int
	height int
	offset int

	maxLogLines int
}

func newModel(path string, treeLines []string, sub *log.Subscription) *model {
	return &model{
		sub:         sub,
		treeLines:   treeLines,
		path:        path,
		height:      24,
		width:       80,
		maxLogLines: 8,
	}
}

func (m *model) Init() tea.Cmd {
	return m.waitForLog()
}

// waitForLog returns a command that blocks on the subscription channel and
// delivers the next entry as a logLineMsg, re-arming itself each time
// Update processes one.
func (m *model) waitForLog() tea.Cmd {
	return func() tea.Msg {
		b, ok := <-m.sub.C()
		if !ok {
			return nil
		}

		return logLineMsg{line: strings.TrimRight(string(b), "\n")}
	}
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.sub.Close()

			return m, tea.Quit
		case "up", "k":
			if m.offset > 0 {
				m.offset--
			}
		case "down", "j":
			if m.offset < len(m.treeLines)-1 {
				m.offset++
			}
		case "g":
			m.offset = 0
		case "G":
			m.offset = max(0, len(m.treeLines)-m.viewportHeight())
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case logLineMsg:
		if msg.line != "" {
			m.logLines = append(m.logLines, msg.line)
			if len(m.logLines) > m.maxLogLines {
				m.logLines = m.logLines[len(m.logLines)-m.maxLogLines:]
			}
		}

		return m, m.waitForLog()
	}

	return m, nil
}

// viewportHeight returns how many tree lines fit above the log pane and
// its separator.
func (m *model) viewportHeight() int {
	h := m.height - m.maxLogLines - 1
	if h < 1 {
		h = 1
	}

	return h
}

func (m *model) View() tea.View {
	vh := m.viewportHeight()

	end := min(m.offset+vh, len(m.treeLines))

	var b strings.Builder

	fmt.Fprintf(&b, "%s (%d/%d)\n", m.path, end, len(m.treeLines))

	for _, line := range m.treeLines[m.offset:end] {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	b.WriteString(strings.Repeat("-", m.width))
	b.WriteByte('\n')

	for _, line := range m.logLines {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	v := tea.NewView(b.String())
	v.AltScreen = true

	return v
}
