// Package tui is the terminal front end for practice sessions: a
// configuration screen that walks the position → action → depth chain,
// and a practice screen that deals hands, takes answers and shows
// feedback. All data-source work happens inside tea commands so the
// event loop never blocks on the network.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/rangedrill/internal/trainer"
)

type screen int

const (
	screenConfigure screen = iota
	screenPractice
)

type stage int

const (
	stagePosition stage = iota
	stageAction
	stageDepth
)

func (s stage) prompt() string {
	switch s {
	case stagePosition:
		return "Choose your position"
	case stageAction:
		return "Choose the action you are facing"
	default:
		return "Choose the stack depth"
	}
}

// Messages produced by boundary commands.
type (
	optionsMsg struct {
		stage   stage
		options []string
	}
	sessionStartedMsg struct{ info trainer.SessionInfo }
	handMsg           struct{ hand string }
	answeredMsg       struct {
		hand     string
		verdict  trainer.Verdict
		feedback trainer.Feedback
	}
	errorMsg struct{ err error }
)

// Model is the Bubble Tea model for the practice client.
type Model struct {
	session   *trainer.Session
	catalog   trainer.Catalog
	selection trainer.Selection
	logger    *log.Logger

	screen  screen
	stage   stage
	options []string
	cursor  int
	loading bool
	errText string

	hand        string
	permitted   []string
	actionIndex int
	feedback    *trainer.Feedback

	history []string
	log     viewport.Model

	width  int
	height int
}

// NewModel creates the model on the configuration screen.
func NewModel(session *trainer.Session, catalog trainer.Catalog, logger *log.Logger) *Model {
	return &Model{
		session: session,
		catalog: catalog,
		logger:  logger.WithPrefix("tui"),
		log:     viewport.New(10, 5),
	}
}

// Run starts the program and blocks until the user quits.
func Run(session *trainer.Session, catalog trainer.Catalog, logger *log.Logger) error {
	p := tea.NewProgram(NewModel(session, catalog, logger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui failed: %w", err)
	}
	return nil
}

// Init loads the position list.
func (m *Model) Init() tea.Cmd {
	return m.loadOptions(stagePosition)
}

// loadOptions fetches the option list for a configuration stage.
func (m *Model) loadOptions(st stage) tea.Cmd {
	m.loading = true
	return func() tea.Msg {
		var (
			opts []string
			err  error
		)
		ctx := context.Background()
		switch st {
		case stagePosition:
			opts, err = m.catalog.Positions(ctx)
		case stageAction:
			opts, err = m.catalog.ActionsFor(ctx, m.selection.Position())
		case stageDepth:
			opts, err = m.catalog.StackDepthsFor(ctx, m.selection.Position(), m.selection.Action())
		}
		if err != nil {
			return errorMsg{err}
		}
		return optionsMsg{stage: st, options: opts}
	}
}

func (m *Model) startSession() tea.Cmd {
	m.loading = true
	return func() tea.Msg {
		info, err := m.session.Start(context.Background(), &m.selection)
		if err != nil {
			return errorMsg{err}
		}
		return sessionStartedMsg{info: info}
	}
}

func (m *Model) advance() tea.Cmd {
	m.loading = true
	return func() tea.Msg {
		hand, err := m.session.Advance(context.Background())
		if err != nil {
			return errorMsg{err}
		}
		return handMsg{hand: hand}
	}
}

func (m *Model) submit(action string) tea.Cmd {
	m.loading = true
	hand := m.hand
	return func() tea.Msg {
		verdict, fb, err := m.session.Submit(context.Background(), action)
		if err != nil {
			return errorMsg{err}
		}
		return answeredMsg{hand: hand, verdict: verdict, feedback: fb}
	}
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.log.Width = max(msg.Width-2, 1)
		m.log.Height = max(min(msg.Height-14, 8), 1)
		return m, nil

	case optionsMsg:
		m.loading = false
		m.errText = ""
		m.stage = msg.stage
		m.options = msg.options
		m.cursor = 0
		return m, nil

	case sessionStartedMsg:
		m.loading = false
		m.errText = ""
		m.screen = screenPractice
		m.permitted = m.session.PermittedActions()
		m.actionIndex = 0
		m.hand = ""
		m.feedback = nil
		m.history = nil
		m.log.SetContent("")
		return m, m.advance()

	case handMsg:
		m.loading = false
		m.errText = ""
		m.hand = msg.hand
		m.feedback = nil
		m.actionIndex = 0
		return m, nil

	case answeredMsg:
		m.loading = false
		m.errText = ""
		fb := msg.feedback
		m.feedback = &fb
		m.history = append(m.history, historyLine(msg.hand, msg.verdict))
		m.log.SetContent(strings.Join(m.history, "\n"))
		m.log.GotoBottom()
		return m, nil

	case errorMsg:
		m.loading = false
		m.errText = msg.err.Error()
		m.logger.Error("Operation failed", "error", msg.err)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "ctrl+r":
		m.session.Stats().Reset()
		return m, nil
	}

	if m.screen == screenConfigure {
		return m.handleConfigureKey(msg)
	}
	return m.handlePracticeKey(msg)
}

func (m *Model) handleConfigureKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.loading {
		return m, nil
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}

	case "esc":
		switch m.stage {
		case stageAction:
			m.selection.Reset()
			return m, m.loadOptions(stagePosition)
		case stageDepth:
			m.selection.SetPosition(m.selection.Position())
			return m, m.loadOptions(stageAction)
		}

	case "enter":
		if m.cursor >= len(m.options) {
			return m, nil
		}
		choice := m.options[m.cursor]
		switch m.stage {
		case stagePosition:
			m.selection.SetPosition(choice)
			return m, m.loadOptions(stageAction)
		case stageAction:
			m.selection.SetAction(choice)
			return m, m.loadOptions(stageDepth)
		case stageDepth:
			m.selection.SetStackDepth(choice)
			return m, m.startSession()
		}
	}
	return m, nil
}

func (m *Model) handlePracticeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.loading {
		return m, nil
	}

	key := msg.String()
	switch key {
	case "q":
		return m, tea.Quit

	case "esc", "m":
		if err := m.session.ReturnToMenu(); err != nil {
			m.errText = err.Error()
			return m, nil
		}
		m.screen = screenConfigure
		m.selection.Reset()
		m.hand = ""
		m.feedback = nil
		return m, m.loadOptions(stagePosition)

	case "left", "h", "shift+tab":
		if m.actionIndex > 0 {
			m.actionIndex--
		}
		return m, nil

	case "right", "l", "tab":
		if m.actionIndex < len(m.permitted)-1 {
			m.actionIndex++
		}
		return m, nil

	case "up", "k":
		m.log.ScrollUp(1)
		return m, nil

	case "down", "j":
		m.log.ScrollDown(1)
		return m, nil

	case "n":
		if m.feedback != nil {
			return m, m.advance()
		}
		return m, nil

	case "enter", " ":
		if m.feedback != nil {
			return m, m.advance()
		}
		if m.session.CanSubmit() && m.actionIndex < len(m.permitted) {
			return m, m.submit(m.permitted[m.actionIndex])
		}
		return m, nil
	}

	// Number keys answer directly.
	if idx, ok := hotkeyIndex(key, len(m.permitted)); ok {
		m.actionIndex = idx
		if m.feedback == nil && m.session.CanSubmit() {
			return m, m.submit(m.permitted[idx])
		}
	}
	return m, nil
}

// hotkeyIndex maps a digit key to an action slot: "1" is the first
// permitted action.
func hotkeyIndex(key string, n int) (int, bool) {
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return 0, false
	}
	idx := int(key[0] - '1')
	if idx >= n {
		return 0, false
	}
	return idx, true
}

// View renders the current screen.
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.screen == screenConfigure {
		return m.viewConfigure()
	}
	return m.viewPractice()
}

func (m *Model) viewConfigure() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("rangedrill"))
	b.WriteString("\n\n")

	if crumb := breadcrumb(&m.selection); crumb != "" {
		b.WriteString(HelpStyle.Render(crumb))
		b.WriteString("\n\n")
	}

	b.WriteString(m.stage.prompt())
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(HelpStyle.Render("loading..."))
		b.WriteString("\n")
	} else {
		for i, opt := range m.options {
			if i == m.cursor {
				b.WriteString(SelectedStyle.Render("> " + opt))
			} else {
				b.WriteString("  " + opt)
			}
			b.WriteString("\n")
		}
	}

	if m.errText != "" {
		b.WriteString("\n")
		b.WriteString(ErrorStyle.Render(m.errText))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("↑↓ move • Enter select • Esc back • q quit"))
	return b.String()
}

func (m *Model) viewPractice() string {
	var b strings.Builder

	scenario := m.session.Scenario()
	b.WriteString(TitleStyle.Render("rangedrill"))
	b.WriteString("  ")
	b.WriteString(HelpStyle.Render(fmt.Sprintf("%s vs %s @ %s (%d hands in range)",
		scenario.Position, scenario.Action, scenario.StackDepth, m.session.RangeSize())))
	b.WriteString("\n\n")

	if m.hand != "" {
		b.WriteString("Your hand: ")
		b.WriteString(HandStyle.Render(m.hand))
		b.WriteString("\n\n")
	} else if m.loading {
		b.WriteString(HelpStyle.Render("dealing..."))
		b.WriteString("\n\n")
	}

	emphasized := ""
	if m.feedback != nil {
		emphasized = m.feedback.EmphasizedAction
	}
	b.WriteString(renderActions(m.permitted, m.actionIndex, emphasized))
	b.WriteString("\n")

	if m.feedback != nil {
		b.WriteString("\n")
		b.WriteString(renderFeedback(*m.feedback))
		b.WriteString("\n")
	}

	if len(m.history) > 0 {
		b.WriteString("\n")
		b.WriteString(HelpStyle.Render("Recent hands"))
		b.WriteString("\n")
		b.WriteString(m.log.View())
		b.WriteString("\n")
	}

	if m.errText != "" {
		b.WriteString("\n")
		b.WriteString(ErrorStyle.Render(m.errText))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	stats := m.session.Stats()
	b.WriteString(StatusStyle.Render(statusLine(stats.Correct(), stats.Total(), stats.FormatAccuracy(), stats.Elapsed())))
	b.WriteString("\n")
	if m.feedback != nil {
		b.WriteString(HelpStyle.Render("Enter/n next hand • m menu • ctrl+r reset stats • q quit"))
	} else {
		b.WriteString(HelpStyle.Render("←→ or 1-9 choose • Enter answer • m menu • q quit"))
	}
	return b.String()
}

// renderActions lays out the permitted actions as numbered buttons. The
// emphasized action, when set, is the reference-correct one.
func renderActions(permitted []string, cursor int, emphasized string) string {
	if len(permitted) == 0 {
		return ""
	}
	buttons := make([]string, 0, len(permitted))
	for i, a := range permitted {
		label := fmt.Sprintf("[%d %s]", i+1, a)
		style := ActionStyle(a)
		if a == emphasized {
			style = EmphasisStyle
		}
		btn := style.Render(label)
		if i == cursor && emphasized == "" {
			btn = SelectedStyle.Render("›") + btn
		} else {
			btn = " " + btn
		}
		buttons = append(buttons, btn)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, buttons...)
}

// renderFeedback formats one verdict's display block.
func renderFeedback(fb trainer.Feedback) string {
	var b strings.Builder
	if fb.Title == trainer.TitleCorrect {
		b.WriteString(CorrectStyle.Render(fb.Title))
	} else {
		b.WriteString(IncorrectStyle.Render(fb.Title))
	}
	for _, line := range fb.Detail {
		b.WriteString("\n")
		b.WriteString(line)
	}
	return b.String()
}

// historyLine summarizes one answered hand for the scrollback pane.
func historyLine(hand string, v trainer.Verdict) string {
	if v.Correct {
		return fmt.Sprintf("%s %s → %s", CorrectStyle.Render("✓"), hand, v.UserAction)
	}
	return fmt.Sprintf("%s %s → %s (correct: %s)",
		IncorrectStyle.Render("✗"), hand, v.UserAction, v.ActualAction)
}

// statusLine is the running-score summary shown under the action row.
func statusLine(correct, total int, accuracy string, elapsed time.Duration) string {
	return fmt.Sprintf("Score: %d/%d (%s) • %s", correct, total, accuracy, elapsed.Truncate(time.Second))
}

// breadcrumb shows the choices made so far during configuration.
func breadcrumb(sel *trainer.Selection) string {
	parts := []string{}
	if sel.Position() != "" {
		parts = append(parts, sel.Position())
	}
	if sel.Action() != "" {
		parts = append(parts, sel.Action())
	}
	if sel.StackDepth() != "" {
		parts = append(parts, sel.StackDepth())
	}
	return strings.Join(parts, " › ")
}
