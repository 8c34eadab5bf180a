package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/snake-env/internal/core"
	"github.com/vovakirdan/snake-env/internal/gym"
	"github.com/vovakirdan/snake-env/internal/platform/term"
	"github.com/vovakirdan/snake-env/internal/registry"
	"github.com/vovakirdan/snake-env/internal/storage"
)

// EpisodeHook is called once when an episode ends. id is empty when the
// episode was not stored.
type EpisodeHook func(stats gym.Stats, id string, err error)

// Model is the Bubble Tea model for human play.
// Each tick applies the last pressed direction, or the current heading
// when no key was pressed.
type Model struct {
	env        *gym.SnakeEnv
	store      *storage.Store
	keys       PlayKeyMap
	help       help.Model
	tickRate   int
	screen     *core.Screen
	obs        core.Observation
	inputFrame core.InputFrame
	onEpisode  EpisodeHook
	paused     bool
	done       bool
	saved      bool
	quitting   bool
	err        error
}

// NewModel resets env and wraps it in a play model.
// store may be nil, in which case episodes are not saved.
func NewModel(env *gym.SnakeEnv, store *storage.Store, tickRate int) (Model, error) {
	obs, err := env.Reset()
	if err != nil {
		return Model{}, err
	}
	w, h := gym.FrameSize(obs)
	return Model{
		env:        env,
		store:      store,
		keys:       DefaultPlayKeyMap(),
		help:       help.New(),
		tickRate:   tickRate,
		screen:     core.NewScreen(w, h),
		obs:        obs,
		inputFrame: core.NewInputFrame(),
	}, nil
}

// WithEpisodeHook sets the callback run when an episode ends.
func (m Model) WithEpisodeHook(h EpisodeHook) Model {
	m.onEpisode = h
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.tickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		m.err = m.saveScreenshot()
		return m, nil
	}

	if m.keys.Apply(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.inputFrame.Has(core.ActionPause) && !m.done {
		m.paused = !m.paused
		m.inputFrame.Clear()
	}
	if m.inputFrame.Has(core.ActionRestart) && m.done {
		return m.restart()
	}

	return m, nil
}

func (m Model) restart() (tea.Model, tea.Cmd) {
	obs, err := m.env.Reset()
	if err != nil {
		m.err = err
		return m, nil
	}
	m.obs = obs
	m.done = false
	m.saved = false
	m.paused = false
	m.err = nil
	m.inputFrame.Clear()
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.paused || m.done {
		return m, tickCmd(m.tickRate)
	}

	action, ok := -1, false
	if dir, pressed := m.inputFrame.Direction(); pressed {
		action, ok = gym.ActionIndex(dir)
	}
	if !ok {
		snap, err := m.env.Snapshot()
		if err != nil {
			m.err = err
			return m, tickCmd(m.tickRate)
		}
		action = int(snap.Dir)
	}
	m.inputFrame.Clear()

	res, err := m.env.Step(action)
	m.obs = res.Observation
	if err != nil {
		m.err = err
		m.done = true
	}
	if res.Done {
		m.done = true
	}
	if m.done && !m.saved {
		m.finishEpisode()
	}

	return m, tickCmd(m.tickRate)
}

// finishEpisode stores the episode (best effort) and runs the hook.
func (m *Model) finishEpisode() {
	m.saved = true
	stats := m.env.Stats()

	var id string
	var err error
	if m.store != nil && stats.Steps > 0 {
		id, err = m.store.SaveEpisode(storage.Episode{
			EnvID:       m.env.ID(),
			Seed:        m.env.EpisodeSeed(),
			Steps:       stats.Steps,
			Length:      stats.Length,
			FoodEaten:   stats.FoodEaten,
			TotalReward: stats.TotalReward,
			DeathCause:  stats.DeathCause,
			Actions:     m.env.Actions(),
		})
	}
	if m.onEpisode != nil {
		m.onEpisode(stats, id, err)
	}
}

// saveScreenshot writes the current frame as a PNG file.
func (m *Model) saveScreenshot() error {
	img, err := m.env.Render(registry.RenderRGBArray)
	if err != nil {
		return err
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("screenshot: %w", err)
	}
	dir := filepath.Join(home, ".snake-env", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("screenshot: %w", err)
	}

	name := fmt.Sprintf("%s_%s.png", m.env.ID(), time.Now().Format("20060102_150405"))
	return gym.WritePNG(filepath.Join(dir, name), img)
}

// status returns the overlay text for the current state.
func (m Model) status() string {
	switch {
	case m.err != nil:
		return "Error: " + m.err.Error()
	case m.done:
		return "Game Over - R to restart, Q to quit"
	case m.paused:
		return "Paused - P to continue"
	}
	return ""
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	gym.DrawFrame(m.screen, m.obs, m.env.Stats(), m.status())
	return term.RenderScreen(m.screen) + "\n" + m.help.View(m.keys)
}

// ViewSize returns the terminal size the play view needs for obs.
func ViewSize(obs core.Observation) (w, h int) {
	w, h = gym.FrameSize(obs)
	return w, h + 1
}

// Done reports whether the current episode has ended.
func (m Model) Done() bool {
	return m.done
}

// Run starts the Bubble Tea program for env.
func Run(env *gym.SnakeEnv, store *storage.Store, tickRate int) error {
	model, err := NewModel(env, store, tickRate)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err = p.Run()
	return err
}
