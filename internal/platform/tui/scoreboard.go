package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/shaperun/internal/registry"
	"github.com/vovakirdan/shaperun/internal/storage"
)

const (
	statsPanelWidth    = 26
	minWidthForStats   = 90
	scoreboardRunLimit = 100
)

// runView selects which runs the scoreboard lists.
type runView int

const (
	viewBest runView = iota
	viewRecent
)

func (v runView) String() string {
	if v == viewRecent {
		return "recent runs"
	}
	return "best runs"
}

type scoreboardKeys struct {
	Scroll   key.Binding
	NextMode key.Binding
	PrevMode key.Binding
	View     key.Binding
	Back     key.Binding
	Quit     key.Binding
}

func (k scoreboardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Scroll, k.NextMode, k.View, k.Back, k.Quit}
}

func (k scoreboardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.PrevMode}}
}

var defaultScoreboardKeys = scoreboardKeys{
	Scroll:   key.NewBinding(key.WithKeys("up", "down", "k", "j"), key.WithHelp("↑/↓", "scroll")),
	NextMode: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next mode")),
	PrevMode: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab", "prev mode")),
	View:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "best/recent")),
	Back:     key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boardTabStyle   = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("245"))
	boardActiveTab  = boardTabStyle.Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	boardPanelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
)

// ScoreboardModel lists stored runs for one mode at a time, with the
// mode's aggregate stats beside the table when the terminal is wide enough.
type ScoreboardModel struct {
	modes  []registry.GameInfo
	mode   int
	view   runView
	store  *storage.Store
	runs   []storage.Run
	stats  *storage.ModeStats
	table  table.Model
	help   help.Model
	keys   scoreboardKeys
	width  int
	height int

	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard showing the best runs of the first
// registered mode.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		modes:  registry.List(),
		store:  store,
		help:   help.New(),
		keys:   defaultScoreboardKeys,
		width:  width,
		height: height,
	}
	m.table = m.newTable()
	m.reload()
	return m
}

func (m ScoreboardModel) showStats() bool {
	return m.width >= minWidthForStats
}

func (m ScoreboardModel) newTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Score", Width: 7},
		{Title: "Dist", Width: 6},
		{Title: "Result", Width: 9},
		{Title: "From", Width: 6},
		{Title: "When", Width: 12},
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)

	return table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)),
		table.WithStyles(styles),
	)
}

func (m ScoreboardModel) currentMode() (registry.GameInfo, bool) {
	if len(m.modes) == 0 {
		return registry.GameInfo{}, false
	}
	return m.modes[m.mode], true
}

// reload fetches runs and stats for the selected mode and view.
func (m *ScoreboardModel) reload() {
	m.runs, m.stats = nil, nil
	info, ok := m.currentMode()
	if m.store == nil || !ok {
		m.table.SetRows(nil)
		return
	}

	if m.view == viewRecent {
		if recent, err := m.store.RecentRuns(scoreboardRunLimit); err == nil {
			for _, r := range recent {
				if r.Mode == info.ID {
					m.runs = append(m.runs, r)
				}
			}
		}
	} else if best, err := m.store.TopRuns(info.ID, scoreboardRunLimit); err == nil {
		m.runs = best
	}
	if st, err := m.store.Stats(info.ID); err == nil {
		m.stats = st
	}

	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%.0f", r.Distance),
			string(r.Outcome),
			r.Origin,
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) cycleMode(dir int) {
	if len(m.modes) == 0 {
		return
	}
	m.mode = (m.mode + dir + len(m.modes)) % len(m.modes)
	m.reload()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextMode):
			m.cycleMode(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevMode):
			m.cycleMode(-1)
			return m, nil
		case key.Matches(msg, m.keys.View):
			m.view = 1 - m.view
			m.reload()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.reload()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString(centerText("RUN HISTORY", m.width, boardTitleStyle))
	b.WriteString("\n\n")

	tabs := make([]string, len(m.modes))
	for i, info := range m.modes {
		name := strings.TrimPrefix(info.Title, "Shape Runner: ")
		if i == m.mode {
			tabs[i] = boardActiveTab.Render(name)
		} else {
			tabs[i] = boardTabStyle.Render(name)
		}
	}
	tabLine := lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + boardDimStyle.Render("  "+m.view.String())
	b.WriteString(centerText(tabLine, m.width, lipgloss.NewStyle()))
	b.WriteString("\n\n")

	body := boardPanelStyle.Render(m.tableView())
	if m.showStats() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, "  ", boardPanelStyle.Width(statsPanelWidth).Render(m.statsView()))
	}
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, body))
	b.WriteString("\n")
	b.WriteString(boardDimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) tableView() string {
	if len(m.runs) == 0 {
		return boardDimStyle.Italic(true).Padding(2, 4).Render("No runs recorded yet.\nFinish a run to set a record!")
	}
	return m.table.View()
}

func (m ScoreboardModel) statsView() string {
	if m.stats == nil || m.stats.Runs == 0 {
		return boardDimStyle.Render("No stats yet")
	}
	st := m.stats
	line := func(label, value string) string {
		return fmt.Sprintf("%-11s%s\n", label, value)
	}

	var b strings.Builder
	b.WriteString(boardTitleStyle.Render("Stats"))
	b.WriteString("\n")
	b.WriteString(line("Runs", fmt.Sprintf("%d", st.Runs)))
	b.WriteString(line("Victories", fmt.Sprintf("%d (%d%%)", st.Victories, st.Victories*100/st.Runs)))
	b.WriteString(line("High score", fmt.Sprintf("%d", st.HighScore)))
	b.WriteString(line("Best dist", fmt.Sprintf("%.0f", st.BestDistance)))
	b.WriteString(line("Avg score", fmt.Sprintf("%.0f", st.AvgScore)))
	if !st.LastPlayed.IsZero() {
		b.WriteString(line("Last run", st.LastPlayed.Format("Jan 02 15:04")))
	}
	return strings.TrimRight(b.String(), "\n")
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}
