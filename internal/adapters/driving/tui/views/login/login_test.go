package login

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servilink/servilink-cli/internal/adapters/driving/tui/messages"
	"github.com/servilink/servilink-cli/internal/adapters/driving/tui/tuitest"
	"github.com/servilink/servilink-cli/internal/core/domain"
)

func typeText(v *View, text string) {
	for _, r := range text {
		v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func enter(v *View) tea.Cmd {
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return cmd
}

func TestLogin_SubmitSignsIn(t *testing.T) {
	var gotEmail, gotPassword string
	auth := &tuitest.Auth{SignInFn: func(email, password string) (*domain.User, error) {
		gotEmail, gotPassword = email, password
		u := tuitest.Contractor(3)
		return &u, nil
	}}
	v := NewView(nil, nil, auth)
	v.SetDimensions(80, 24)

	typeText(v, "carlos@example.com")
	enter(v) // moves to password
	typeText(v, "hunter2")
	cmd := enter(v)

	require.NotNil(t, cmd)
	assert.True(t, v.Submitting())

	msg := cmd()
	done, ok := msg.(messages.LoginCompleted)
	require.True(t, ok)
	require.NoError(t, done.Err)
	assert.Equal(t, "carlos@example.com", gotEmail)
	assert.Equal(t, "hunter2", gotPassword)

	v.Update(done)
	assert.False(t, v.Submitting())
	assert.Empty(t, v.email.Value())
}

func TestLogin_MissingFields(t *testing.T) {
	auth := &tuitest.Auth{}
	v := NewView(nil, nil, auth)
	v.SetDimensions(80, 24)

	v.Update(tea.KeyMsg{Type: tea.KeyTab})
	cmd := enter(v)

	assert.Nil(t, cmd)
	assert.Equal(t, "Email and password are required", v.Err())
	assert.Contains(t, v.View(), "Email and password are required")
}

func TestLogin_FailureShowsReason(t *testing.T) {
	auth := &tuitest.Auth{SignInFn: func(string, string) (*domain.User, error) {
		return nil, domain.ErrAuthRequired
	}}
	v := NewView(nil, nil, auth)
	v.SetDimensions(80, 24)
	typeText(v, "a@b.c")
	v.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeText(v, "wrong")

	msg := enter(v)()
	v.Update(msg)

	assert.Equal(t, "Please log in first.", v.Err())
	assert.Empty(t, v.password.Value(), "password cleared after failure")
	assert.Equal(t, "a@b.c", v.email.Value())
}

func TestLogin_KeysIgnoredWhileSubmitting(t *testing.T) {
	auth := &tuitest.Auth{SignInFn: func(string, string) (*domain.User, error) {
		u := tuitest.Vendor(1)
		return &u, nil
	}}
	v := NewView(nil, nil, auth)
	typeText(v, "x@y.z")
	v.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeText(v, "pw")
	require.NotNil(t, enter(v))

	assert.Nil(t, enter(v))
	typeText(v, "more")
	assert.Equal(t, "pw", v.password.Value())
}

func TestLogin_EscGoesBack(t *testing.T) {
	v := NewView(nil, nil, &tuitest.Auth{})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}
