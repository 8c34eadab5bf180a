package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/snake-env/internal/registry"
	"github.com/vovakirdan/snake-env/internal/storage"
)

// Browser layout constants
const (
	minWidthForSidebar = 90  // Minimum width to show env list sidebar
	sidebarWidth       = 24  // Width of env list sidebar
	maxEpisodes        = 100 // Max episodes to load
)

// BrowserKeyMap defines the key bindings for the episode browser.
type BrowserKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextEnv key.Binding
	PrevEnv key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k BrowserKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextEnv, k.PrevEnv, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k BrowserKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextEnv, k.PrevEnv},
		{k.Quit},
	}
}

// DefaultBrowserKeyMap returns default key bindings.
func DefaultBrowserKeyMap() BrowserKeyMap {
	return BrowserKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextEnv: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next env"),
		),
		PrevEnv: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev env"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// BrowserModel lists the best stored episodes per environment.
type BrowserModel struct {
	envs        []registry.EnvInfo
	envCursor   int
	store       *storage.Store
	episodes    []storage.Episode
	loadErr     error
	table       table.Model
	help        help.Model
	keys        BrowserKeyMap
	width       int
	height      int
	quitting    bool
	showSidebar bool
}

// NewBrowserModel creates a browser starting at startEnv (or the first env).
func NewBrowserModel(store *storage.Store, startEnv string, width, height int) BrowserModel {
	h := help.New()
	h.ShowAll = false

	m := BrowserModel{
		envs:        registry.List(),
		store:       store,
		keys:        DefaultBrowserKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	for i, e := range m.envs {
		if e.ID == startEnv {
			m.envCursor = i
		}
	}

	m.table = m.createTable()
	if len(m.envs) > 0 {
		m.loadEpisodes(m.envs[m.envCursor].ID)
	}
	return m
}

// createTable creates a new table sized to the window.
func (m *BrowserModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Reward", Width: 8},
		{Title: "Len", Width: 5},
		{Title: "Food", Width: 5},
		{Title: "Steps", Width: 7},
		{Title: "Death", Width: 6},
		{Title: "Date", Width: 13},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadEpisodes loads the best episodes for the given env ID.
func (m *BrowserModel) loadEpisodes(envID string) {
	m.episodes, m.loadErr = nil, nil
	if m.store != nil {
		m.episodes, m.loadErr = m.store.TopEpisodes(envID, maxEpisodes)
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded episodes.
func (m *BrowserModel) updateTableRows() {
	m.table.SetRows(episodeRows(m.episodes))
	m.table.GotoTop()
}

func episodeRows(episodes []storage.Episode) []table.Row {
	rows := make([]table.Row, len(episodes))
	for i, e := range episodes {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%.1f", e.TotalReward),
			fmt.Sprintf("%d", e.Length),
			fmt.Sprintf("%d", e.FoodEaten),
			fmt.Sprintf("%d", e.Steps),
			e.DeathCause,
			e.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	return rows
}

// Init initializes the browser model.
func (m BrowserModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the browser.
func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextEnv):
			if len(m.envs) > 0 {
				m.envCursor = (m.envCursor + 1) % len(m.envs)
				m.loadEpisodes(m.envs[m.envCursor].ID)
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevEnv):
			if len(m.envs) > 0 {
				m.envCursor = (m.envCursor - 1 + len(m.envs)) % len(m.envs)
				m.loadEpisodes(m.envs[m.envCursor].ID)
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the browser.
func (m BrowserModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "EPISODES"
	if len(m.envs) > 0 {
		title = fmt.Sprintf("EPISODES - %s", m.envs[m.envCursor].Title)
	}
	b.WriteString(titleStyle.Render(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, title)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	tableRendered := tableStyle.Render(m.renderTableContent())

	if m.showSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", tableRendered))
	} else {
		b.WriteString(tableRendered)
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderSidebar renders the env list.
func (m BrowserModel) renderSidebar() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Environments\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, e := range m.envs {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.envCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + e.ID))
		sidebar.WriteString("\n")
	}

	return sidebarStyle.Render(sidebar.String())
}

// renderTableContent renders the table or an empty message.
func (m BrowserModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.loadErr != nil:
		return emptyStyle.Render("Could not load episodes:\n" + m.loadErr.Error())
	case len(m.episodes) == 0:
		return emptyStyle.Render("No episodes recorded yet.\nPlay or run an env to fill this list!")
	}
	return m.table.View()
}

// RunEpisodeBrowser runs the episode browser.
func RunEpisodeBrowser(store *storage.Store, startEnv string, width, height int) error {
	p := tea.NewProgram(
		NewBrowserModel(store, startEnv, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
