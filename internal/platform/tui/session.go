package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/shaperun/internal/core"
	"github.com/vovakirdan/shaperun/internal/registry"
	"github.com/vovakirdan/shaperun/internal/storage"
)

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenScores
)

// SessionModel is the top-level model of one player session. It moves
// between the mode menu, a run and the scoreboard, and always returns to
// the menu. Child models end with tea.Quit, which the session swallows.
type SessionModel struct {
	store    *storage.Store
	config   core.RuntimeConfig
	origin   string // Recorded on every run played in this session
	screen   sessionScreen
	menu     MenuModel
	game     Model
	scores   ScoreboardModel
	quitting bool
}

// NewSessionModel creates a session that starts on the menu.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, origin string) SessionModel {
	return SessionModel{
		store:  store,
		config: cfg,
		origin: origin,
		menu:   NewMenuModel(store, cfg),
	}
}

func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW, m.config.ScreenH = size.Width, size.Height
	}

	var cmd tea.Cmd
	switch m.screen {
	case screenGame:
		next, c := m.game.Update(msg)
		m.game, cmd = next.(Model), c
		if m.game.IsQuitting() {
			return m.quit()
		}
		if m.game.BackToMenu() {
			return m.showMenu()
		}

	case screenScores:
		next, c := m.scores.Update(msg)
		m.scores, cmd = next.(ScoreboardModel), c
		if m.scores.IsQuitting() {
			return m.quit()
		}
		if m.scores.IsGoingBack() {
			return m.showMenu()
		}

	default:
		next, c := m.menu.Update(msg)
		m.menu, cmd = next.(MenuModel), c
		switch {
		case m.menu.IsQuitting():
			return m.quit()
		case m.menu.WantsScoreboard():
			return m.showScores()
		case m.menu.Selected() != nil:
			return m.startGame(m.menu.Selected().GameID)
		}
	}
	return m, cmd
}

func (m SessionModel) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

func (m SessionModel) showMenu() (tea.Model, tea.Cmd) {
	m.screen = screenMenu
	m.menu = NewMenuModel(m.store, m.config)
	return m, m.menu.Init()
}

func (m SessionModel) showScores() (tea.Model, tea.Cmd) {
	m.screen = screenScores
	m.scores = NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
	return m, m.scores.Init()
}

func (m SessionModel) startGame(id string) (tea.Model, tea.Cmd) {
	game, err := registry.Create(id)
	if err != nil {
		// The menu lists registered games only.
		return m.showMenu()
	}
	cfg := m.menu.Config()
	cfg.Seed = time.Now().UnixNano()
	m.game = NewModel(game, m.store, cfg).WithOrigin(m.origin)
	m.screen = screenGame
	return m, m.game.Init()
}

func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scores.View()
	default:
		return m.menu.View()
	}
}

// RunSession runs the session in the local terminal.
func RunSession(store *storage.Store, cfg core.RuntimeConfig) error {
	_, err := tea.NewProgram(NewSessionModel(store, cfg, "local"), tea.WithAltScreen()).Run()
	return err
}
