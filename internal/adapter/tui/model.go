// Package tui is the terminal front end of the fare finder. The Bubble Tea
// event loop is the UI thread: search outcomes reach the form only through
// messages handled in Update.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/flight-search/cheapest-fly/internal/domain"
	"github.com/flight-search/cheapest-fly/internal/usecase"
)

// Field indexes of the form.
const (
	fieldFrom = iota
	fieldTo
	fieldDate
	fieldCount
)

// Validator turns raw form text into a validated query.
type Validator interface {
	Validate(rawDeparture, rawDestination, rawDate string) (domain.FlightQuery, error)
}

// Submitter starts a background search, e.g. *usecase.Dispatcher.
type Submitter interface {
	Submit(query domain.FlightQuery, onResult func(domain.SearchOutcome)) domain.SequenceID
}

// Sender is satisfied by *tea.Program.
type Sender interface {
	Send(msg tea.Msg)
}

// fareDeliveryMsg carries a dispatcher closure onto the event loop.
type fareDeliveryMsg func()

// NewDeliverer returns a Deliverer that runs closures inside Update.
func NewDeliverer(s Sender) usecase.Deliverer {
	return func(fn func()) {
		s.Send(fareDeliveryMsg(fn))
	}
}

// Prefill holds initial field values.
type Prefill struct {
	From string
	To   string
	Date string
}

// Model is the search form. It is used by pointer so that delivered
// outcomes can update it in place.
type Model struct {
	inputs    [fieldCount]textinput.Model
	focus     int
	validator Validator
	submitter Submitter
	keys      KeyMap
	theme     Theme

	formErr    string
	pending    domain.SequenceID
	searching  bool
	shown      *domain.SearchOutcome
	shownQuery domain.FlightQuery
	quitting   bool
}

// NewModel creates the form. SetSubmitter must be called before the
// program runs.
func NewModel(validator Validator, prefill Prefill) *Model {
	m := &Model{
		validator: validator,
		keys:      DefaultKeyMap,
		theme:     DefaultTheme,
	}

	placeholders := [fieldCount]string{"JFK", "LAX", domain.DateLayout}
	values := [fieldCount]string{prefill.From, prefill.To, prefill.Date}
	for i := range m.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = placeholders[i]
		in.CharLimit = 16
		in.Width = 16
		in.SetValue(values[i])
		m.inputs[i] = in
	}
	m.inputs[fieldDate].Placeholder = "YYYY-MM-DD"
	m.inputs[fieldFrom].Focus()

	return m
}

// SetSubmitter wires the dispatcher. Call it after NewModel and before
// running the program.
func (m *Model) SetSubmitter(s Submitter) {
	m.submitter = s
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case fareDeliveryMsg:
		msg()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Submit):
			m.submit()
			return m, nil
		case key.Matches(msg, m.keys.Enter):
			if m.focus == fieldCount-1 {
				m.submit()
				return m, nil
			}
			return m, m.setFocus(m.focus + 1)
		case key.Matches(msg, m.keys.Next):
			return m, m.setFocus((m.focus + 1) % fieldCount)
		case key.Matches(msg, m.keys.Prev):
			return m, m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) setFocus(i int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = i
	return m.inputs[m.focus].Focus()
}

// submit validates the form and hands the query to the dispatcher.
func (m *Model) submit() {
	query, err := m.validator.Validate(
		m.inputs[fieldFrom].Value(),
		m.inputs[fieldTo].Value(),
		m.inputs[fieldDate].Value(),
	)
	if err != nil {
		m.formErr = err.Error()
		if verr, ok := domain.AsValidationError(err); ok {
			m.formErr = verr.Message
			m.setFocus(fieldIndex(verr.Field))
		}
		return
	}

	m.formErr = ""
	m.searching = true
	m.pending = m.submitter.Submit(query, func(outcome domain.SearchOutcome) {
		m.searching = false
		m.shown = &outcome
		m.shownQuery = query
	})
}

func fieldIndex(field string) int {
	switch field {
	case domain.FieldDepartureTo:
		return fieldTo
	case domain.FieldDate:
		return fieldDate
	default:
		return fieldFrom
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.theme.Title.Render("✈ cheapest-fly"))
	b.WriteString("\n\n")

	labels := [fieldCount]string{"From", "To", "Date"}
	for i, in := range m.inputs {
		label := m.theme.Label
		if i == m.focus {
			label = m.theme.FocusLabel
		}
		b.WriteString(label.Render(labels[i]))
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.formErr != "" {
		b.WriteString(m.theme.Error.Render(m.formErr))
		b.WriteString("\n")
	}
	if line := m.statusLine(); line != "" {
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.helpLine())

	return m.theme.Frame.Render(b.String())
}

func (m *Model) statusLine() string {
	if m.searching {
		return m.theme.Pending.Render(fmt.Sprintf("searching… (#%d)", m.pending))
	}
	if m.shown == nil {
		return ""
	}

	route := m.theme.Detail.Render(m.shownQuery.String() + ": ")
	if !m.shown.OK() {
		return route + m.theme.Error.Render(m.shown.Describe())
	}

	line := route + m.theme.Price.Render(m.shown.Describe())
	fare := m.shown.Fare
	var details []string
	if fare.FlightNumber != "" {
		details = append(details, fare.FlightNumber)
	}
	if !fare.DepartureTime.IsZero() {
		details = append(details, "departs "+fare.DepartureTime.Format("15:04"))
	}
	if len(details) > 0 {
		line += m.theme.Detail.Render("  " + strings.Join(details, ", "))
	}
	return line
}

func (m *Model) helpLine() string {
	parts := make([]string, 0, len(m.keys.ShortHelp()))
	for _, binding := range m.keys.ShortHelp() {
		h := binding.Help()
		parts = append(parts, m.theme.HelpKey.Render(h.Key)+" "+m.theme.HelpDesc.Render(h.Desc))
	}
	return strings.Join(parts, m.theme.HelpDesc.Render(" • "))
}

// Searching reports whether a submitted search has not been shown yet.
func (m *Model) Searching() bool { return m.searching }

// Outcome returns the outcome currently on screen, or nil.
func (m *Model) Outcome() *domain.SearchOutcome { return m.shown }

// FormError returns the inline validation message, or "".
func (m *Model) FormError() string { return m.formErr }
