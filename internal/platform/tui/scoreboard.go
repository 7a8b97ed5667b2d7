package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/flappy-arcade/internal/registry"
	"github.com/vovakirdan/flappy-arcade/internal/storage"
)

const (
	maxScores      = 50
	statsWidth     = 24
	minWidthBeside = 72 // below this the stats panel goes under the table
	ownRunMarker   = "▸"
)

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardTabStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	boardActiveTab  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	boardPanelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	boardLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	boardYouStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	boardEmptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(1, 2)
	boardHelpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Variant key.Binding
	Mine    key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Variant, k.Mine, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Variant, k.Mine}, {k.Back, k.Quit}}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Variant: key.NewBinding(key.WithKeys("tab", "left", "right", "h", "l"), key.WithHelp("tab", "variant")),
		Mine:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "my best run")),
		Back:    key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows the leaderboard of one variant at a time next to
// that variant's statistics and the player's saved high score. The
// player's own runs are marked and the cursor starts on their best one.
type ScoreboardModel struct {
	variants []registry.GameInfo
	current  int
	opts     Options

	scores []storage.ScoreEntry
	stats  *storage.GameStats
	err    error

	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard over variants. opts supplies the
// leaderboard, the high-score record and the player name.
func NewScoreboardModel(opts Options, variants []registry.GameInfo, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		variants: variants,
		opts:     opts.withDefaults(),
		help:     help.New(),
		keys:     DefaultScoreboardKeyMap(),
		width:    width,
		height:   height,
	}
	m.table = m.newTable()
	m.load()
	return m
}

func (m *ScoreboardModel) newTable() table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "", Width: 1},
			{Title: "Rank", Width: 5},
			{Title: "Score", Width: 6},
			{Title: "Player", Width: 14},
			{Title: "Date", Width: 12},
		}),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)),
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

// variant returns the ID of the variant on screen, or "" when there is none.
func (m ScoreboardModel) variant() string {
	if len(m.variants) == 0 {
		return ""
	}
	return m.variants[m.current].ID
}

// load refreshes the runs and statistics of the current variant.
func (m *ScoreboardModel) load() {
	m.scores, m.stats, m.err = nil, nil, nil
	if id := m.variant(); id != "" && m.opts.Store != nil {
		m.scores, m.err = m.opts.Store.TopScores(id, maxScores)
		if m.err == nil {
			m.stats, m.err = m.opts.Store.GetGameStats(id)
		}
		if m.err != nil {
			m.opts.Logger.Warn("could not load leaderboard", "variant", id, "err", m.err)
		}
	}

	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		mark := ""
		if s.Player == m.opts.Player {
			mark = ownRunMarker
		}
		rows[i] = table.Row{mark, fmt.Sprintf("#%d", i+1), fmt.Sprint(s.Score), s.Player, s.CreatedAt.Format("Jan 02 15:04")}
	}
	m.table.SetRows(rows)
	m.jumpToOwnBest()
}

// jumpToOwnBest moves the cursor to the player's highest run. Runs arrive
// best first, so that is the first one that is theirs.
func (m *ScoreboardModel) jumpToOwnBest() {
	m.table.GotoTop()
	if i := m.ownBestIndex(); i >= 0 {
		m.table.SetCursor(i)
	}
}

func (m ScoreboardModel) ownBestIndex() int {
	for i, s := range m.scores {
		if s.Player == m.opts.Player {
			return i
		}
	}
	return -1
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
		case key.Matches(msg, m.keys.Variant):
			if n := len(m.variants); n > 0 {
				step := 1
				if msg.String() == "left" || msg.String() == "h" {
					step = n - 1
				}
				m.current = (m.current + step) % n
				m.load()
			}
			return m, nil
		case key.Matches(msg, m.keys.Mine):
			m.jumpToOwnBest()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		cursor := m.table.Cursor()
		rows := m.table.Rows()
		m.table = m.newTable()
		m.table.SetRows(rows)
		m.table.SetCursor(cursor)
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
	b.WriteString(boardTitleStyle.Render("HIGH SCORES"))
	b.WriteString("\n\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	board := boardPanelStyle.Render(m.renderBoard())
	stats := boardPanelStyle.Width(statsWidth).Render(m.renderStats())
	if m.width >= minWidthBeside {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, board, " ", stats))
	} else {
		b.WriteString(lipgloss.JoinVertical(lipgloss.Left, board, stats))
	}

	b.WriteString("\n")
	b.WriteString(boardHelpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) renderTabs() string {
	tabs := make([]string, len(m.variants))
	for i, v := range m.variants {
		if i == m.current {
			tabs[i] = boardActiveTab.Render(v.Title)
		} else {
			tabs[i] = boardTabStyle.Render(v.Title)
		}
	}
	return strings.Join(tabs, " ")
}

func (m ScoreboardModel) renderBoard() string {
	switch {
	case m.opts.Store == nil:
		return boardEmptyStyle.Render("Leaderboard unavailable.")
	case m.err != nil:
		return boardEmptyStyle.Render("Could not read the leaderboard.")
	case len(m.scores) == 0:
		return boardEmptyStyle.Render("No runs recorded yet.\nFly through a pipe to get on the board!")
	}
	return m.table.View()
}

// renderStats lists the variant's statistics and the saved high score.
// The saved score covers every variant; the leaderboard is per variant.
func (m ScoreboardModel) renderStats() string {
	line := func(label string, value any) string {
		return fmt.Sprintf("%s %v\n", boardLabelStyle.Render(label), value)
	}

	var b strings.Builder
	if st := m.stats; st != nil {
		b.WriteString(line("Runs:", st.GamesCount))
		b.WriteString(line("Best:", st.HighScore))
		b.WriteString(line("Average:", fmt.Sprintf("%.1f", st.AvgScore)))
		last := "never"
		if !st.LastPlayed.IsZero() {
			last = st.LastPlayed.Format("Jan 02 15:04")
		}
		b.WriteString(line("Last:", last))
		b.WriteString("\n")
	}

	b.WriteString(boardYouStyle.Render(m.opts.Player))
	b.WriteString("\n")
	if m.opts.Keeper != nil {
		b.WriteString(line("Saved best:", m.opts.Keeper.HighScore()))
	}
	if i := m.ownBestIndex(); i >= 0 {
		b.WriteString(line("Top run:", fmt.Sprintf("%d (#%d)", m.scores[i].Score, i+1)))
	} else {
		b.WriteString(boardLabelStyle.Render("No runs here yet"))
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

// RunScoreboard runs the scoreboard screen over every registered variant.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(opts Options, width, height int) (goBack bool, err error) {
	model := NewScoreboardModel(opts, registry.List(), width, height)

	finalModel, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
