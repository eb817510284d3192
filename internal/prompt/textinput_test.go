package prompt

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func typeKeys(t *testing.T, m playerInput, msgs ...tea.KeyMsg) playerInput {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(playerInput)
		require.True(t, ok)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPlayerInput(t *testing.T) {
	t.Run("enter accepts the offered name", func(t *testing.T) {
		m := typeKeys(t, newPlayerInput("brave-otter"), tea.KeyMsg{Type: tea.KeyEnter})
		require.True(t, m.done)
		require.NoError(t, m.err)
		require.Equal(t, "brave-otter", m.name())
	})

	t.Run("typed name is trimmed", func(t *testing.T) {
		m := newPlayerInput("brave-otter")
		m = typeKeys(t, m, tea.KeyMsg{Type: tea.KeyCtrlU}, runes("  ada  "), tea.KeyMsg{Type: tea.KeyEnter})
		require.True(t, m.done)
		require.Equal(t, "ada", m.name())
	})

	t.Run("blank name is refused", func(t *testing.T) {
		m := newPlayerInput("brave-otter")
		m = typeKeys(t, m, tea.KeyMsg{Type: tea.KeyCtrlU}, runes("   "), tea.KeyMsg{Type: tea.KeyEnter})
		require.False(t, m.done)
		require.ErrorIs(t, m.textInput.Err, errBlankName)
		require.Contains(t, m.View(), errBlankName.Error())

		m = typeKeys(t, m, runes("x"), tea.KeyMsg{Type: tea.KeyEnter})
		require.True(t, m.done)
		require.Equal(t, "x", m.name())
	})

	t.Run("unprintable runes are rejected", func(t *testing.T) {
		m := newPlayerInput("ada")
		m = typeKeys(t, m, runes("\u200b"))
		require.ErrorIs(t, m.textInput.Err, errUnprintable)
		require.Equal(t, "ada", m.name())
	})

	t.Run("esc keeps the offered name", func(t *testing.T) {
		m := newPlayerInput("brave-otter")
		m = typeKeys(t, m, tea.KeyMsg{Type: tea.KeyCtrlU}, runes("someone"), tea.KeyMsg{Type: tea.KeyEsc})
		require.True(t, m.done)
		require.NoError(t, m.err)
		require.Equal(t, "brave-otter", m.name())
	})

	t.Run("ctrl-c cancels", func(t *testing.T) {
		m := typeKeys(t, newPlayerInput("brave-otter"), tea.KeyMsg{Type: tea.KeyCtrlC})
		require.True(t, m.done)
		require.ErrorIs(t, m.err, ErrCancelled)
		require.Empty(t, m.View())
	})
}
