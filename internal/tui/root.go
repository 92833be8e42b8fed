package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/portfolio-cards/gradecard/internal/grades"
	"github.com/portfolio-cards/gradecard/internal/gradestore"
	"github.com/portfolio-cards/gradecard/internal/portfolio"
)

// ViewMode represents the current screen
type ViewMode int

const (
	ViewModeCard ViewMode = iota // Profile and grade columns
	ViewModeForm                 // Add/edit/delete form
	ViewModeHelp                 // Help overlay
)

// Messages
type gradesLoadedMsg struct {
	set grades.Set
	err error
}

type gradeAddedMsg struct {
	set grades.Set
	err error
}

type gradeEditedMsg struct {
	set grades.Set
	err error
}

type gradeDeletedMsg struct {
	req gradestore.DeleteRequest
	err error
}

// flashExpiredMsg is sent when a confirmation message's timer fires
type flashExpiredMsg struct {
	seq uint64
}

// Options configures the terminal client
type Options struct {
	Profile    portfolio.Profile
	FlashDelay time.Duration
	Logger     *zap.Logger
	Debug      bool
}

// Model is the root Bubble Tea model
type Model struct {
	// Terminal dimensions
	width  int
	height int
	ready  bool

	viewMode ViewMode

	service    *portfolio.Service
	profile    portfolio.Profile
	flashDelay time.Duration
	logger     *zap.Logger

	// Card state shared with the web rendition
	card portfolio.View

	// Cursor over the grade columns
	column int
	row    int

	form *gradeForm

	keys  KeyMap
	help  help.Model
	debug DebugPanel
	now   func() time.Time
}

// NewModel creates the root model
func NewModel(service *portfolio.Service, opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.FlashDelay <= 0 {
		opts.FlashDelay = 3 * time.Second
	}

	return Model{
		viewMode:   ViewModeCard,
		service:    service,
		profile:    opts.Profile,
		flashDelay: opts.FlashDelay,
		logger:     opts.Logger,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		debug:      NewDebugPanel(opts.Debug),
		now:        time.Now,
	}
}

// Init loads the grades on mount
func (m Model) Init() tea.Cmd {
	return m.loadCmd()
}

func (m Model) loadCmd() tea.Cmd {
	svc := m.service
	return func() tea.Msg {
		set, err := svc.Load(context.Background())
		return gradesLoadedMsg{set: set, err: err}
	}
}

func (m Model) addCmd(in portfolio.AddInput) tea.Cmd {
	svc := m.service
	return func() tea.Msg {
		set, err := svc.Add(context.Background(), in)
		return gradeAddedMsg{set: set, err: err}
	}
}

func (m Model) editCmd(in portfolio.EditInput) tea.Cmd {
	svc := m.service
	return func() tea.Msg {
		set, err := svc.Edit(context.Background(), in)
		return gradeEditedMsg{set: set, err: err}
	}
}

func (m Model) deleteCmd(in portfolio.DeleteInput) tea.Cmd {
	svc := m.service
	return func() tea.Msg {
		req, err := svc.Delete(context.Background(), in)
		return gradeDeletedMsg{req: req, err: err}
	}
}

// flash shows a confirmation and schedules its removal
func (m *Model) flash(text string) tea.Cmd {
	seq := m.card.SetFlash(text, m.now(), m.flashDelay)
	return tea.Tick(m.flashDelay, func(time.Time) tea.Msg {
		return flashExpiredMsg{seq: seq}
	})
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true

	case gradesLoadedMsg:
		if msg.err != nil {
			// Already logged by the service; the card stays empty
			m.debug.AddEvent("load", "failed: "+msg.err.Error())
			return m, nil
		}
		m.card.ReplaceGrades(msg.set)
		m.gradesChanged(false)
		m.debug.AddEvent("load", "ok")

	case gradeAddedMsg:
		if msg.err != nil {
			m.debug.AddEvent("add", "failed: "+msg.err.Error())
			return m, nil
		}
		m.card.ReplaceGrades(msg.set)
		m.gradesChanged(m.formIs(portfolio.FormAdd))
		m.debug.AddEvent("add", "ok")
		return m, m.flash(portfolio.MsgAdded)

	case gradeEditedMsg:
		if msg.err != nil {
			m.debug.AddEvent("edit", "failed: "+msg.err.Error())
			return m, nil
		}
		m.card.ReplaceGrades(msg.set)
		m.gradesChanged(m.formIs(portfolio.FormEdit))
		m.debug.AddEvent("edit", "ok")
		return m, m.flash(portfolio.MsgEdited)

	case gradeDeletedMsg:
		if msg.err != nil {
			m.debug.AddEvent("delete", "failed: "+msg.err.Error())
			m.card.ShowAlert(portfolio.MsgDeleteFailed, true)
			return m, nil
		}
		m.card.RemoveScore(msg.req.Category, msg.req.Subject, msg.req.Value)
		m.gradesChanged(m.formIs(portfolio.FormDelete))
		m.debug.AddEvent("delete", "ok")
		m.card.ShowAlert(portfolio.MsgDeleted, false)

	case flashExpiredMsg:
		m.card.ClearFlash(msg.seq)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// gradesChanged keeps the cursor and open form consistent with new grades.
// clearForm also empties the form's score fields.
func (m *Model) gradesChanged(clearForm bool) {
	m.clampCursor()
	if m.form == nil {
		return
	}
	if clearForm {
		m.form.clearValues(m.card.Grades)
		return
	}
	m.form.sync(m.card.Grades)
}

func (m Model) formIs(kind portfolio.FormKind) bool {
	return m.form != nil && m.form.kind == kind
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Interrupt) {
		return m, tea.Quit
	}

	// A blocking acknowledgement captures all input until dismissed
	if m.card.Alert != nil {
		if key.Matches(msg, m.keys.Submit, m.keys.Escape) {
			m.card.DismissAlert()
		}
		return m, nil
	}

	if m.card.Detail != nil {
		if key.Matches(msg, m.keys.Escape, m.keys.Open) {
			m.card.CloseDetail()
		}
		return m, nil
	}

	switch m.viewMode {
	case ViewModeHelp:
		if key.Matches(msg, m.keys.Help, m.keys.Escape, m.keys.Quit) {
			m.viewMode = ViewModeCard
		}
		return m, nil
	case ViewModeForm:
		return m.handleFormKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.row--
		m.clampCursor()
	case key.Matches(msg, m.keys.Down):
		m.row++
		m.clampCursor()
	case key.Matches(msg, m.keys.Left):
		m.column--
		m.clampCursor()
	case key.Matches(msg, m.keys.Right):
		m.column++
		m.clampCursor()
	case key.Matches(msg, m.keys.Open):
		if c, subject, ok := m.currentSubject(); ok {
			m.card.OpenDetail(c, subject)
		}
	case key.Matches(msg, m.keys.Add):
		m.openForm(portfolio.FormAdd)
	case key.Matches(msg, m.keys.Edit):
		m.openForm(portfolio.FormEdit)
	case key.Matches(msg, m.keys.Delete):
		m.openForm(portfolio.FormDelete)
	case key.Matches(msg, m.keys.Refresh):
		m.debug.AddEvent("load", "reload requested")
		return m, m.loadCmd()
	case key.Matches(msg, m.keys.Help):
		m.viewMode = ViewModeHelp
	}
	return m, nil
}

func (m *Model) openForm(kind portfolio.FormKind) {
	f := newGradeForm(kind, m.card.Grades)
	m.form = &f
	m.viewMode = ViewModeForm
}

func (m *Model) closeForm() {
	m.form = nil
	m.viewMode = ViewModeCard
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.closeForm()
		return m, nil
	case key.Matches(msg, m.keys.Next):
		return m, m.form.cycleFocus(1)
	case key.Matches(msg, m.keys.Prev):
		return m, m.form.cycleFocus(-1)
	case key.Matches(msg, m.keys.Submit):
		return m, m.submitForm()
	}

	if m.form.focus == fieldInput {
		return m, m.form.updateInput(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Left, m.keys.Up):
		m.form.pick(-1, m.card.Grades)
	case key.Matches(msg, m.keys.Right, m.keys.Down):
		m.form.pick(1, m.card.Grades)
	}
	return m, nil
}

// submitForm validates the open form and starts the request. Invalid input
// is logged and never reaches the store.
func (m *Model) submitForm() tea.Cmd {
	f := m.form
	var err error

	switch f.kind {
	case portfolio.FormAdd:
		in := f.addInput()
		if _, err = in.Request(); err == nil {
			return m.addCmd(in)
		}
	case portfolio.FormEdit:
		in := f.editInput()
		if _, err = in.Request(); err == nil {
			return m.editCmd(in)
		}
	case portfolio.FormDelete:
		in := f.deleteInput()
		if _, err = in.Request(); err == nil {
			return m.deleteCmd(in)
		}
	}

	m.logger.Warn("invalid form", zap.String("form", string(f.kind)), zap.Error(err))
	m.debug.AddEvent(string(f.kind), "invalid: "+err.Error())
	return nil
}

// currentSubject returns the subject under the cursor
func (m Model) currentSubject() (grades.Category, string, bool) {
	if m.card.Grades == nil {
		return "", "", false
	}
	c := grades.Categories()[m.column]
	subjects := m.card.Grades.Subjects(c)
	if m.row < 0 || m.row >= len(subjects) {
		return c, "", false
	}
	return c, subjects[m.row], true
}

func (m *Model) clampCursor() {
	n := len(grades.Categories())
	if m.column < 0 {
		m.column = 0
	}
	if m.column >= n {
		m.column = n - 1
	}

	count := 0
	if m.card.Grades != nil {
		count = len(m.card.Grades.Subjects(grades.Categories()[m.column]))
	}
	if m.row >= count {
		m.row = count - 1
	}
	if m.row < 0 {
		m.row = 0
	}
}

// View renders the model
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	switch {
	case m.card.Alert != nil:
		return m.alertView()
	case m.card.Detail != nil:
		return m.detailView()
	}

	switch m.viewMode {
	case ViewModeHelp:
		return m.helpView()
	case ViewModeForm:
		return m.formView()
	default:
		return m.cardView()
	}
}

// cardView renders the profile, confirmation line and grade columns
func (m Model) cardView() string {
	sections := []string{m.renderProfile()}

	if text := m.card.Flash(m.now()); text != "" {
		sections = append(sections, SuccessStyle.Render(" "+text))
	}

	sections = append(sections, m.renderColumns(), StatusBarStyle.Render(m.help.View(m.keys)))

	if m.debug.IsEnabled() {
		sections = append(sections, m.debug.Render(m.width, 10))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderProfile() string {
	var b strings.Builder
	b.WriteString(NameStyle.Render(m.profile.Name))
	b.WriteString("\n")
	b.WriteString(DescriptionStyle.Render(m.profile.Description))

	if len(m.profile.Links) > 0 {
		links := make([]string, 0, len(m.profile.Links))
		for _, l := range m.profile.Links {
			links = append(links, LinkLabelStyle.Render(l.Label)+" "+DimStyle.Render(l.URL))
		}
		b.WriteString("\n\n")
		b.WriteString(strings.Join(links, "\n"))
	}

	width := m.width - 4
	if width < 20 {
		width = 20
	}
	return ProfileStyle.Width(width).Render(b.String())
}

func (m Model) renderColumns() string {
	if m.card.Grades == nil {
		return DimStyle.Render(" Nenhuma nota carregada. Pressione r para recarregar.")
	}

	colWidth := m.width/len(grades.Categories()) - 2
	if colWidth < 16 {
		colWidth = 16
	}

	var cols []string
	for i, c := range grades.Categories() {
		var b strings.Builder
		b.WriteString(ColumnTitleStyle.Render(string(c)))
		b.WriteString("\n")
		for j, subject := range m.card.Grades.Subjects(c) {
			b.WriteString("\n")
			if i == m.column && j == m.row {
				b.WriteString(SubjectSelectedStyle.Render("▸ " + subject))
			} else {
				b.WriteString(SubjectStyle.Render("  " + subject))
			}
		}

		style := ColumnStyle
		if i == m.column {
			style = ColumnActiveStyle
		}
		cols = append(cols, style.Width(colWidth).Render(b.String()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

// detailView renders the score detail modal
func (m Model) detailView() string {
	d := m.card.Detail

	var b strings.Builder
	b.WriteString(ModalTitleStyle.Render(string(d.Category) + " - " + d.Subject))
	b.WriteString("\n\n")
	if d.Empty() {
		b.WriteString(DimStyle.Render(portfolio.MsgNoScores))
	} else {
		b.WriteString(strings.Join(d.Lines, "\n"))
	}
	b.WriteString("\n\n")
	b.WriteString(DimStyle.Render("enter/esc Fechar"))

	return m.place(ModalStyle.Render(b.String()))
}

// alertView renders the blocking acknowledgement
func (m Model) alertView() string {
	a := m.card.Alert
	style := AlertStyle
	text := SuccessStyle.Render(a.Text)
	if a.Failed {
		style = AlertFailedStyle
		text = ErrorStyle.Render(a.Text)
	}
	return m.place(style.Render(text + "\n\n" + DimStyle.Render("enter OK")))
}

// formView renders the open form. The form stays open after a submit, so the
// confirmation line is drawn above it.
func (m Model) formView() string {
	box := ModalStyle.Render(m.form.view() + "\n" + m.help.View(formKeys(m.keys)))
	if text := m.card.Flash(m.now()); text != "" {
		box = lipgloss.JoinVertical(lipgloss.Center, SuccessStyle.Render(text), box)
	}
	return m.place(box)
}

func (m Model) helpView() string {
	h := m.help
	h.ShowAll = true
	content := ModalTitleStyle.Render("Atalhos") + "\n\n" + h.View(m.keys) + "\n\n" +
		DimStyle.Render("Pressione ? ou Esc para fechar")
	return m.place(ModalStyle.Render(content))
}

// place centers a modal box on the screen
func (m Model) place(box string) string {
	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		box,
	)
}
