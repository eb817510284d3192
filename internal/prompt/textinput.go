package prompt

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	ti "github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrCancelled is returned when the player aborts a prompt with Ctrl-C.
var ErrCancelled = errors.New("cancelled by user")

var (
	errBlankName   = errors.New("the name cannot be blank")
	errUnprintable = errors.New("the name can only hold printable characters")
)

const playerNameLimit = 32

// validPlayerName accepts partial input while it is typed. Blank names are
// only refused on submit.
func validPlayerName(name string) error {
	for _, r := range name {
		if !unicode.IsPrint(r) {
			return errUnprintable
		}
	}
	return nil
}

type playerInput struct {
	textInput ti.Model
	offered   string
	err       error
	done      bool
}

func newPlayerInput(offered string) playerInput {
	ti := ti.New()
	ti.Validate = validPlayerName
	ti.SetValue(offered)
	ti.Placeholder = offered
	ti.Focus()
	ti.CharLimit = playerNameLimit
	ti.Width = playerNameLimit

	return playerInput{
		textInput: ti,
		offered:   offered,
	}
}

func (m playerInput) Init() tea.Cmd {
	return ti.Blink
}

func (m playerInput) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.err = ErrCancelled
			m.done = true
			return m, tea.Quit
		case tea.KeyEsc:
			// keep the offered name
			m.textInput.SetValue(m.offered)
			m.done = true
			return m, tea.Quit
		case tea.KeyEnter:
			if m.name() == "" {
				m.textInput.Err = errBlankName
				return m, nil
			}
			m.done = true
			return m, tea.Quit
		}

	case error:
		m.err = msg
		return m, nil
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m playerInput) name() string {
	return strings.TrimSpace(m.textInput.Value())
}

func (m playerInput) View() string {
	if m.done {
		return ""
	}

	hint := "(press <enter> to submit, <esc> to keep the suggestion)"
	if m.textInput.Err != nil {
		hint = m.textInput.Err.Error()
	}
	return fmt.Sprintf(
		"%s\n\n%s\n\n%s\n",
		"Player name for the ranking:",
		m.textInput.View(),
		hint,
	)
}

// PlayerName asks for the name recorded next to ranked games, starting from
// offered. The answer comes back trimmed.
func PlayerName(offered string) (string, error) {
	p := tea.NewProgram(newPlayerInput(offered))
	m, err := p.Run()
	if err != nil {
		return "", err
	}

	model, ok := m.(playerInput)
	if !ok {
		return "", fmt.Errorf("unexpected model %T", m)
	}
	if model.err != nil {
		return "", model.err
	}
	return model.name(), nil
}
