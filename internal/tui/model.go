// Package tui is the interactive terminal front end of the search
// controller.
package tui

import (
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/stahnma/gh-search/internal/github"
	"github.com/stahnma/gh-search/internal/search"
)

// Controller is the part of *search.Controller the UI drives.
type Controller interface {
	Update(p search.Patch) error
	NextPage()
	PrevPage()
	Submit()
	Clear()
	SetCredential(token string)
	State() search.State
	Updates() <-chan search.State
}

const (
	fieldQuery = iota
	fieldLanguage
	fieldToken
	fieldCount
)

var fieldLabels = [fieldCount]string{"Query", "Language", "Token"}

// stateMsg carries a controller snapshot into the update loop.
type stateMsg search.State

// waitForState blocks until the controller publishes a snapshot.
func waitForState(ch <-chan search.State) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return nil
		}
		return stateMsg(s)
	}
}

// Model is the bubbletea model of the search screen.
type Model struct {
	ctrl    Controller
	keys    KeyMap
	help    help.Model
	inputs  [fieldCount]textinput.Model
	focus   int
	spinner spinner.Model

	state  search.State
	cursor int
	notice string

	width  int
	height int
	now    func() time.Time
}

// New creates the search screen. A non-empty token is shown masked in the
// token field and handed to ctrl as the credential.
func New(ctrl Controller, token string) Model {
	var inputs [fieldCount]textinput.Model
	for i := range inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 256
		ti.Width = 50
		inputs[i] = ti
	}
	inputs[fieldQuery].Placeholder = `e.g. "react typescript"`
	inputs[fieldLanguage].Placeholder = "any language"
	inputs[fieldToken].Placeholder = "optional personal access token"
	inputs[fieldToken].EchoMode = textinput.EchoPassword
	inputs[fieldToken].EchoCharacter = '•'
	inputs[fieldQuery].Focus()

	if token != "" {
		inputs[fieldToken].SetValue(token)
		ctrl.SetCredential(token)
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styleSpinner

	return Model{
		ctrl:    ctrl,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		inputs:  inputs,
		spinner: s,
		state:   ctrl.State(),
		now:     time.Now,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, waitForState(m.ctrl.Updates()))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for i := range m.inputs {
			m.inputs[i].Width = max(20, msg.Width-14)
		}
		m.help.Width = msg.Width
		return m, nil

	case stateMsg:
		m.applyState(search.State(msg))
		return m, waitForState(m.ctrl.Updates())

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// applyState keeps the newest snapshot. The cursor returns to the top
// whenever a fresh page of results lands.
func (m *Model) applyState(s search.State) {
	if s.Version < m.state.Version {
		return
	}
	if s.Status == search.StatusSuccess && m.state.Status != search.StatusSuccess {
		m.cursor = 0
	}
	m.state = s
	if m.cursor >= len(s.Items) {
		m.cursor = max(0, len(s.Items)-1)
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.NextField):
		return m, m.setFocus((m.focus + 1) % fieldCount)

	case key.Matches(msg, m.keys.PrevField):
		return m, m.setFocus((m.focus + fieldCount - 1) % fieldCount)

	case key.Matches(msg, m.keys.Submit):
		m.ctrl.Submit()
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		m.inputs[fieldQuery].Reset()
		m.inputs[fieldLanguage].Reset()
		m.cursor = 0
		m.ctrl.Clear()
		return m, nil

	case key.Matches(msg, m.keys.Sort):
		next := cycle(github.Sorts, m.ctrl.State().Filters.Sort)
		m.apply(search.Patch{Sort: &next})
		return m, nil

	case key.Matches(msg, m.keys.Order):
		next := github.OrderAsc
		if m.ctrl.State().Filters.Order == github.OrderAsc {
			next = github.OrderDesc
		}
		m.apply(search.Patch{Order: &next})
		return m, nil

	case key.Matches(msg, m.keys.PerPage):
		next := cycle(github.PerPageOptions, m.ctrl.State().Filters.PerPage)
		m.apply(search.Patch{PerPage: &next})
		return m, nil

	case key.Matches(msg, m.keys.NextPage):
		m.ctrl.NextPage()
		return m, nil

	case key.Matches(msg, m.keys.PrevPage):
		m.ctrl.PrevPage()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.state.Items)-1 {
			m.cursor++
		}
		return m, nil
	}

	return m.updateInput(msg)
}

// updateInput forwards a key to the focused field and pushes any change in
// its value to the controller.
func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	before := m.inputs[m.focus].Value()

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)

	after := m.inputs[m.focus].Value()
	if after == before {
		return m, cmd
	}
	switch m.focus {
	case fieldQuery:
		m.apply(search.Patch{Query: &after})
	case fieldLanguage:
		m.apply(search.Patch{Language: &after})
	case fieldToken:
		m.ctrl.SetCredential(after)
	}
	return m, cmd
}

func (m *Model) apply(p search.Patch) {
	if err := m.ctrl.Update(p); err != nil {
		m.notice = err.Error()
	}
}

func (m *Model) setFocus(field int) tea.Cmd {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.focus = field
	return m.inputs[field].Focus()
}

// cycle returns the option after current, wrapping around.
func cycle[T comparable](options []T, current T) T {
	i := slices.Index(options, current)
	return options[(i+1)%len(options)]
}
