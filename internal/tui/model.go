// Package tui is a terminal front-end for the registration form.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/spec-kit/event-registration/internal/domain"
	"github.com/spec-kit/event-registration/internal/form"
	"github.com/spec-kit/event-registration/internal/view"
)

// slotSubmit is the focus slot of the submit button.
const slotSubmit domain.Field = "submit"

var textFields = []domain.Field{
	domain.FieldName,
	domain.FieldEmail,
	domain.FieldAge,
	domain.FieldGuestName,
}

// Model is the bubbletea model of the form. Focus moves between the inputs
// and the submit button; leaving an input revalidates the form.
type Model struct {
	state  *form.State
	inputs map[domain.Field]textinput.Model
	focus  domain.Field
	keys   keyMap
	help   help.Model
	logger *zap.Logger
	err    error
	width  int
}

// New returns a model holding an empty form.
func New(logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}

	inputs := make(map[domain.Field]textinput.Model, len(textFields))
	for _, field := range textFields {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.CharLimit = 120
		ti.Placeholder = view.Labels[field]
		if field == domain.FieldAge {
			ti.Placeholder = "e.g. 30"
		}
		inputs[field] = ti
	}

	m := Model{
		state:  form.New(),
		inputs: inputs,
		keys:   defaultKeyMap(),
		help:   help.New(),
		logger: logger,
	}
	m.focusOn(domain.FieldName)
	return m
}

// State exposes the underlying form state.
func (m Model) State() *form.State { return m.state }

// Focused returns the focused slot.
func (m Model) Focused() domain.Field { return m.focus }

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if m.state.Submitted() {
			if msg.String() == "q" || key.Matches(msg, m.keys.Submit) {
				return m, tea.Quit
			}
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.Next):
			return m.move(1), nil
		case key.Matches(msg, m.keys.Prev):
			return m.move(-1), nil
		case key.Matches(msg, m.keys.Submit):
			if m.focus == slotSubmit {
				return m.submit(), nil
			}
			return m.move(1), nil
		case m.focus == domain.FieldAttendingWithGuest && key.Matches(msg, m.keys.Toggle):
			return m.toggleGuest(), nil
		}
	}

	return m.updateInput(msg)
}

// updateInput forwards msg to the focused text input and records the new
// value as a change event.
func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	ti, ok := m.inputs[m.focus]
	if !ok {
		return m, nil
	}
	var cmd tea.Cmd
	ti, cmd = ti.Update(msg)
	m.inputs[m.focus] = ti

	if err := m.state.SetField(m.focus, ti.Value()); err != nil {
		m.err = err
	}
	return m, cmd
}

func (m Model) slots() []domain.Field {
	slots := []domain.Field{domain.FieldName, domain.FieldEmail, domain.FieldAge, domain.FieldAttendingWithGuest}
	if m.state.GuestVisible() {
		slots = append(slots, domain.FieldGuestName)
	}
	return append(slots, slotSubmit)
}

func (m Model) move(delta int) Model {
	slots := m.slots()
	idx := 0
	for i, s := range slots {
		if s == m.focus {
			idx = i
			break
		}
	}
	next := slots[(idx+delta+len(slots))%len(slots)]

	if m.focus != slotSubmit {
		errs := m.state.Revalidate()
		m.logger.Debug("field blurred", zap.String("field", string(m.focus)), zap.Int("errors", len(errs)))
	}
	m.focusOn(next)
	return m
}

func (m *Model) focusOn(slot domain.Field) {
	for field, ti := range m.inputs {
		if field == slot {
			ti.Focus()
		} else {
			ti.Blur()
		}
		m.inputs[field] = ti
	}
	m.focus = slot
}

func (m Model) toggleGuest() Model {
	next := domain.GuestAttendanceYes
	if m.state.Values().WithGuest() {
		next = domain.GuestAttendanceNo
	}
	if err := m.state.SetField(domain.FieldAttendingWithGuest, string(next)); err != nil {
		m.err = err
	}
	return m
}

func (m Model) submit() Model {
	errs, err := m.state.Submit(context.Background())
	if err != nil {
		m.err = err
		m.logger.Warn("submit failed", zap.Error(err))
		return m
	}
	if !errs.Empty() {
		m.logger.Info("registration rejected", zap.Int("errors", len(errs)))
		return m
	}
	m.logger.Info("registration submitted")
	m.focusOn(slotSubmit)
	return m
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(view.PageTitle))
	b.WriteString("\n\n")

	if m.state.Submitted() {
		b.WriteString(cardStyle.Render(m.summaryView()))
		b.WriteString("\n\n")
		b.WriteString(optionStyle.Render("press q or enter to quit"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(cardStyle.Render(m.formView()))
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

func (m Model) formView() string {
	errs := m.state.Errors()
	var rows []string

	textRow := func(field domain.Field) {
		rows = append(rows, m.label(field), m.inputs[field].View())
		if msg, ok := errs[field]; ok {
			rows = append(rows, errorStyle.Render(msg))
		}
		rows = append(rows, "")
	}

	textRow(domain.FieldName)
	textRow(domain.FieldEmail)
	textRow(domain.FieldAge)

	rows = append(rows, m.label(domain.FieldAttendingWithGuest), m.attendanceView(), "")

	if m.state.GuestVisible() {
		textRow(domain.FieldGuestName)
	}

	button := buttonStyle
	if m.focus == slotSubmit {
		button = focusedButtonStyle
	}
	rows = append(rows, button.Render("Submit"))

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) label(field domain.Field) string {
	if m.focus == field {
		return focusedLabelStyle.Render(view.Labels[field])
	}
	return labelStyle.Render(view.Labels[field])
}

func (m Model) attendanceView() string {
	current := m.state.Values().AttendingWithGuest
	var opts []string
	for _, opt := range []domain.GuestAttendance{domain.GuestAttendanceNo, domain.GuestAttendanceYes} {
		if opt == current {
			opts = append(opts, selectedOptionStyle.Render(string(opt)))
			continue
		}
		opts = append(opts, optionStyle.Render(" "+string(opt)+" "))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, opts...)
}

func (m Model) summaryView() string {
	lines := []string{summaryTitleStyle.Render(view.SummaryTitle)}
	for _, row := range view.SummaryRows(m.state.Values()) {
		lines = append(lines, fmt.Sprintf("%s %s", labelStyle.Render(row.Label+":"), row.Value))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
