package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/portfolio-cards/gradecard/internal/grades"
	"github.com/portfolio-cards/gradecard/internal/portfolio"
)

// field is one focusable row of a grade form
type field int

const (
	fieldCategory field = iota
	fieldSubject
	fieldChoice
	fieldInput
)

// picker is a cycling select with an unselected placeholder state
type picker struct {
	placeholder string
	options     []string
	index       int // -1 while the placeholder is shown
}

func newPicker(placeholder string) picker {
	return picker{placeholder: placeholder, index: -1}
}

func (p picker) value() string {
	if p.index < 0 || p.index >= len(p.options) {
		return ""
	}
	return p.options[p.index]
}

// move steps through the options, wrapping around. Returns false when there
// is nothing to pick.
func (p *picker) move(delta int) bool {
	n := len(p.options)
	if n == 0 {
		return false
	}
	switch {
	case p.index < 0 && delta > 0:
		p.index = 0
	case p.index < 0:
		p.index = n - 1
	default:
		p.index = ((p.index+delta)%n + n) % n
	}
	return true
}

// setOptions replaces the options, keeping keep selected when still present
func (p *picker) setOptions(options []string, keep string) {
	p.options = options
	p.index = -1
	for i, o := range options {
		if o == keep && keep != "" {
			p.index = i
			return
		}
	}
}

// gradeForm is the modal used to add, edit or delete a score
type gradeForm struct {
	kind  portfolio.FormKind
	text  portfolio.FormText
	sel   portfolio.Selection
	focus field

	category picker
	subject  picker
	choice   picker
	input    textinput.Model
}

func newGradeForm(kind portfolio.FormKind, set *grades.Set) gradeForm {
	text := kind.Text()

	ti := textinput.New()
	ti.Placeholder = text.Input
	ti.Prompt = "❯ "
	ti.PromptStyle = InputPromptStyle
	ti.CharLimit = 16
	ti.Width = 20

	f := gradeForm{
		kind:     kind,
		text:     text,
		focus:    fieldCategory,
		category: newPicker(text.Category),
		subject:  newPicker(text.Subject),
		choice:   newPicker(text.Choice),
		input:    ti,
	}
	f.sync(set)
	return f
}

// fields returns the focusable rows of the form in order
func (f *gradeForm) fields() []field {
	out := []field{fieldCategory, fieldSubject}
	if f.kind.HasChoice() {
		out = append(out, fieldChoice)
	}
	if f.kind.HasInput() {
		out = append(out, fieldInput)
	}
	return out
}

// cycleFocus moves focus by delta rows, wrapping around
func (f *gradeForm) cycleFocus(delta int) tea.Cmd {
	fields := f.fields()
	pos := 0
	for i, fl := range fields {
		if fl == f.focus {
			pos = i
		}
	}
	pos = ((pos+delta)%len(fields) + len(fields)) % len(fields)
	f.focus = fields[pos]

	if f.focus == fieldInput {
		return f.input.Focus()
	}
	f.input.Blur()
	return nil
}

// pick moves the focused picker. Changing the category resets the subject,
// the score choice and the typed value.
func (f *gradeForm) pick(delta int, set *grades.Set) {
	switch f.focus {
	case fieldCategory:
		if !f.category.move(delta) {
			return
		}
		next := f.sel.WithCategory(grades.Category(f.category.value()))
		if next != f.sel {
			f.input.Reset()
		}
		f.sel = next
	case fieldSubject:
		if !f.subject.move(delta) {
			return
		}
		f.sel = f.sel.WithSubject(f.subject.value())
	case fieldChoice:
		if !f.choice.move(delta) {
			return
		}
		f.sel.Choice = f.choice.value()
	default:
		return
	}
	f.sync(set)
}

// sync rebuilds picker options from the current selection and grade set
func (f *gradeForm) sync(set *grades.Set) {
	f.sel = f.sel.Normalize(set)

	categories := make([]string, 0, len(grades.Categories()))
	for _, c := range grades.Categories() {
		categories = append(categories, string(c))
	}
	f.category.setOptions(categories, string(f.sel.Category))
	f.subject.setOptions(f.sel.SubjectOptions(set), f.sel.Subject)
	f.choice.setOptions(f.sel.ChoiceOptions(set), f.sel.Choice)
}

// clearValues empties the score fields after a successful submit
func (f *gradeForm) clearValues(set *grades.Set) {
	f.sel.Choice = ""
	f.input.Reset()
	f.sync(set)
}

func (f *gradeForm) updateInput(msg tea.Msg) tea.Cmd {
	if f.focus != fieldInput {
		return nil
	}
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return cmd
}

func (f gradeForm) addInput() portfolio.AddInput {
	return portfolio.AddInput{
		Category: string(f.sel.Category),
		Subject:  f.sel.Subject,
		Value:    f.input.Value(),
	}
}

func (f gradeForm) editInput() portfolio.EditInput {
	return portfolio.EditInput{
		Category: string(f.sel.Category),
		Subject:  f.sel.Subject,
		OldValue: f.sel.Choice,
		NewValue: f.input.Value(),
	}
}

func (f gradeForm) deleteInput() portfolio.DeleteInput {
	return portfolio.DeleteInput{
		Category: string(f.sel.Category),
		Subject:  f.sel.Subject,
		Value:    f.sel.Choice,
	}
}

// view renders the form body
func (f gradeForm) view() string {
	var b strings.Builder
	b.WriteString(ModalTitleStyle.Render(f.text.Title))
	b.WriteString("\n\n")

	for _, fl := range f.fields() {
		b.WriteString(f.renderField(fl))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(DimStyle.Render("enter " + strings.ToLower(f.text.SubmitLabel) + " • esc fechar"))
	return b.String()
}

func (f gradeForm) renderField(fl field) string {
	focused := fl == f.focus
	marker := "  "
	if focused {
		marker = "▸ "
	}

	if fl == fieldInput {
		return marker + f.input.View()
	}

	var p picker
	switch fl {
	case fieldCategory:
		p = f.category
	case fieldSubject:
		p = f.subject
	case fieldChoice:
		p = f.choice
	}

	text := p.value()
	style := FieldStyle
	if text == "" {
		text = p.placeholder
		style = PlaceholderStyle
	}
	if focused {
		style = FieldFocusedStyle
	}
	row := style.Render("‹ " + text + " ›")
	if focused && len(p.options) == 0 {
		row += " " + DimStyle.Render("(vazio)")
	}
	return lipgloss.JoinHorizontal(lipgloss.Left, marker, row)
}
