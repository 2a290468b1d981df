package main

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/netlayers/dissect"
)

// decodedEntry is one line of input after decoding, list.Item for bubbles/list.
type decodedEntry struct {
	index int
	frame *dissect.Frame
	err   error
}

func (e decodedEntry) chainSummary() string {
	if e.err != nil {
		return "error"
	}
	return e.frame.Chain.String()
}

func (e decodedEntry) Title() string {
	status := "ok"
	if e.err != nil {
		status = "ERR"
	}
	return fmt.Sprintf("#%d [%s] %s", e.index, status, e.chainSummary())
}

func (e decodedEntry) Description() string {
	if e.err != nil {
		return e.err.Error()
	}
	return fmt.Sprintf("%d bytes consumed", e.frame.Consumed)
}

func (e decodedEntry) FilterValue() string { return e.chainSummary() }

// model is the dissect browser: a full-width list of decoded entries above
// a viewport showing the selected entry's full chain and info record,
// styled with lipgloss.
type model struct {
	list     list.Model
	viewport viewport.Model
	stats    *DecodeStats
	ready    bool
}

func newModel(entries []decodedEntry, stats *DecodeStats) model {
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = e
	}
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Decoded frames"

	return model{
		list:  l,
		stats: stats,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		listWidth := msg.Width
		listHeight := msg.Height / 2
		m.list.SetSize(listWidth, listHeight)

		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-listHeight-1)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - listHeight - 1
		}
		m.syncViewport()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	m.syncViewport()

	var vpCmd tea.Cmd
	m.viewport, vpCmd = m.viewport.Update(msg)

	return m, tea.Batch(cmd, vpCmd)
}

func (m *model) syncViewport() {
	if !m.ready {
		return
	}
	item, ok := m.list.SelectedItem().(decodedEntry)
	if !ok {
		m.viewport.SetContent("no entries")
		return
	}
	if item.err != nil {
		m.viewport.SetContent(errorStyle.Render(item.err.Error()))
		return
	}
	header := renderStatsHeader(m.stats.Summaries(), m.stats.Window())
	body := renderChain(item.frame.Chain) + "\n\n" + renderRecord(item.frame.Info, 0)
	m.viewport.SetContent(header + "\n" + body)
}

func (m model) View() string {
	if !m.ready {
		return "loading..."
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.list.View(), m.viewport.View())
}
