package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mizrakjian/monkeystats/internal/api"
	"github.com/mizrakjian/monkeystats/internal/dashboard"
	"github.com/mizrakjian/monkeystats/internal/heatmap"
)

const refreshInterval = 5 * time.Minute

var (
	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	updatedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("1"))
)

// Client is the API surface watch mode needs; satisfied by *api.Client.
type Client interface {
	Profile(ctx context.Context) (api.Profile, error)
	Streak(ctx context.Context) (api.Streak, error)
	Activity(ctx context.Context) (api.Activity, error)
	LastTest(ctx context.Context) (api.LastTest, error)
}

type Model struct {
	client        Client
	palette       heatmap.Palette
	anchorLastDay bool

	data      *dashboard.Data
	fetchedAt time.Time
	err       error
}

type dataMsg struct {
	data dashboard.Data
	err  error
}

type tickMsg time.Time

func New(client Client, palette heatmap.Palette, anchorLastDay bool) Model {
	return Model{client: client, palette: palette, anchorLastDay: anchorLastDay}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetch, tick())
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) fetch() tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var (
		data dashboard.Data
		err  error
	)
	if data.Profile, err = m.client.Profile(ctx); err != nil {
		return dataMsg{err: err}
	}
	if data.Streak, err = m.client.Streak(ctx); err != nil {
		return dataMsg{err: err}
	}
	if data.Activity, err = m.client.Activity(ctx); err != nil {
		return dataMsg{err: err}
	}
	if data.LastTest, err = m.client.LastTest(ctx); err != nil {
		return dataMsg{err: err}
	}
	return dataMsg{data: data}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			return m, m.fetch
		}

	case tickMsg:
		return m, tea.Batch(m.fetch, tick())

	case dataMsg:
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.data = &msg.data
			m.err = nil
			m.fetchedAt = time.Now()
		}
	}

	return m, nil
}

func (m Model) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) +
			helpStyle.Render("\nr: retry • q: quit")
	}

	if m.data == nil {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(dashboard.Render(*m.data, time.Now().UTC(), m.palette, m.anchorLastDay))
	b.WriteString("\n")
	b.WriteString(updatedStyle.Render(fmt.Sprintf("updated %s", m.fetchedAt.Format("15:04:05"))))
	b.WriteString(helpStyle.Render("\nr: refresh • q: quit"))

	return b.String()
}
