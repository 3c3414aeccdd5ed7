package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/fitlog/internal/prefs"
	"github.com/five82/fitlog/internal/state"
)

// Options configure the TUI.
type Options struct {
	Context context.Context
	Store   *state.Store
	// Trigger asks the poller for an immediate refresh of the selected day.
	Trigger func()
	LogPath string

	Prefs prefs.Prefs
	// SavePrefs is called after the user changes the theme or help mode.
	SavePrefs func(prefs.Prefs)
}

const tickInterval = 500 * time.Millisecond

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Model is the bubbletea model for the day view.
type Model struct {
	store    *state.Store
	trigger  func()
	save     func(prefs.Prefs)
	logPath  string
	keys     KeyMap
	help     help.Model
	viewport viewport.Model
	theme    Theme
	styles   Styles
	snapshot state.Snapshot
	width    int
	height   int
	ready    bool
	now      func() time.Time
}

// New builds a Model over store.
func New(opts Options) Model {
	theme := GetTheme(opts.Prefs.Theme)
	trigger := opts.Trigger
	if trigger == nil {
		trigger = func() {}
	}
	save := opts.SavePrefs
	if save == nil {
		save = func(prefs.Prefs) {}
	}
	m := Model{
		store:   opts.Store,
		trigger: trigger,
		save:    save,
		logPath: opts.LogPath,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		theme:   theme,
		styles:  theme.Styles(),
		now:     time.Now,
	}
	m.help.ShowAll = opts.Prefs.FullHelp
	m.snapshot = m.store.Snapshot()
	return m
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		if !m.ready {
			m.viewport = viewport.New(msg.Width, m.bodyHeight())
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = m.bodyHeight()
		}
		m.syncContent()
		return m, nil

	case tickMsg:
		m.snapshot = m.store.Snapshot()
		m.syncContent()
		return m, tick()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.PrevDay):
			m.selectDay(m.store.Date().AddDate(0, 0, -1))
			return m, nil
		case key.Matches(msg, m.keys.NextDay):
			m.selectDay(m.store.Date().AddDate(0, 0, 1))
			return m, nil
		case key.Matches(msg, m.keys.Today):
			m.selectDay(m.now())
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			m.trigger()
			return m, nil
		case key.Matches(msg, m.keys.Theme):
			m.theme = GetTheme(NextTheme(m.theme.Name))
			m.styles = m.theme.Styles()
			m.syncContent()
			m.savePrefs()
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			if m.ready {
				m.viewport.Height = m.bodyHeight()
			}
			m.savePrefs()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) selectDay(day time.Time) {
	m.store.SetDate(day)
	m.snapshot = m.store.Snapshot()
	m.syncContent()
	m.trigger()
}

func (m Model) savePrefs() {
	m.save(prefs.Prefs{Theme: m.theme.Name, FullHelp: m.help.ShowAll})
}

func (m *Model) syncContent() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.body())
}

func (m Model) bodyHeight() int {
	h := m.height - lipgloss.Height(m.headerView()) - lipgloss.Height(m.footerView())
	if h < 1 {
		return 1
	}
	return h
}

func (m Model) body() string {
	v := ViewFromSnapshot(m.snapshot)
	if !v.HasData && v.LastError == nil {
		return m.styles.MutedText.Render("加载中...")
	}
	parts := []string{
		m.styles.Panel.Render(RenderStats(v.Stats, m.styles)),
		RenderTimeline(v.Timeline, m.styles),
	}
	if notices := RenderNotices(v, m.styles); notices != "" {
		parts = append(parts, notices)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) headerView() string {
	parts := []string{
		m.styles.Logo.Render("fitlog"),
		m.styles.Text.Render(m.snapshot.Date.Format("2006-01-02 Mon")),
	}
	switch {
	case m.snapshot.NeedsLogin():
		parts = append(parts, m.styles.DangerText.Render("需要重新登录: fitlog login"))
	case m.snapshot.IsOffline():
		parts = append(parts, m.styles.DangerText.Render("离线"), m.styles.WarningText.Render("重试中..."))
	case !m.snapshot.LastUpdated.IsZero():
		parts = append(parts, m.styles.MutedText.Render("更新于 "+m.snapshot.LastUpdated.Format("15:04:05")))
	}
	header := strings.Join(parts, "  ")
	if m.width > 0 {
		return m.styles.Header.Width(m.width).Render(header)
	}
	return m.styles.Header.Render(header)
}

func (m Model) footerView() string {
	footer := m.help.View(m.keys)
	if m.logPath != "" && m.snapshot.LastError != nil {
		footer += "\n" + m.styles.FaintText.Render("logs "+m.logPath)
	}
	return m.styles.Footer.Render(footer)
}

func (m Model) View() string {
	if !m.ready {
		return m.styles.MutedText.Render("fitlog 启动中...")
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.headerView(), m.viewport.View(), m.footerView())
}

// Run starts the TUI and blocks until the user quits or ctx is cancelled.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Store == nil {
		return errors.New("ui: store is required")
	}
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}
