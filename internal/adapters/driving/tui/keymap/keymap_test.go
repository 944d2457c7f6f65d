package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
)

func TestDefaultKeyMap_NavigationBindings(t *testing.T) {
	km := DefaultKeyMap()

	assert.Contains(t, km.Quit.Keys(), "q")
	assert.Contains(t, km.Quit.Keys(), "ctrl+c")
	assert.Contains(t, km.Up.Keys(), "k")
	assert.Contains(t, km.Down.Keys(), "j")
	assert.Contains(t, km.Back.Keys(), "esc")
	assert.Contains(t, km.Select.Keys(), "enter")
}

func TestDefaultKeyMap_PagingBindings(t *testing.T) {
	km := DefaultKeyMap()

	assert.Contains(t, km.NextPage.Keys(), "]")
	assert.Contains(t, km.NextPage.Keys(), "right")
	assert.Contains(t, km.PrevPage.Keys(), "[")
	assert.Contains(t, km.PrevPage.Keys(), "left")
}

func TestDefaultKeyMap_HireDoesNotShadowPaging(t *testing.T) {
	km := DefaultKeyMap()

	for _, k := range km.Hire.Keys() {
		assert.False(t, Matches(k, km.PrevPage), "hire key %q also pages", k)
	}
}

func TestShortHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.ShortHelp()

	assert.Len(t, bindings, 2)
	assert.Equal(t, km.Back, bindings[0])
	assert.Equal(t, km.Help, bindings[1])
}

func TestFullHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.FullHelp()

	assert.Len(t, bindings, 5)
	assert.Len(t, bindings[3], 5) // job actions
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("q", km.Quit))
	assert.True(t, Matches("a", km.Accept))
	assert.True(t, Matches("x", km.CancelJob))
	assert.False(t, Matches("x", km.Quit))
	assert.False(t, Matches("down", km.Up))
}

func TestBindings_HaveHelp(t *testing.T) {
	km := DefaultKeyMap()

	testCases := []struct {
		name    string
		binding key.Binding
	}{
		{"Quit", km.Quit},
		{"Help", km.Help},
		{"Back", km.Back},
		{"Submit", km.Submit},
		{"NextField", km.NextField},
		{"Sort", km.Sort},
		{"Category", km.Category},
		{"Hire", km.Hire},
		{"Accept", km.Accept},
		{"Complete", km.Complete},
		{"CancelJob", km.CancelJob},
		{"Review", km.Review},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			help := tc.binding.Help()
			assert.NotEmpty(t, help.Key, "binding should have help key")
			assert.NotEmpty(t, help.Desc, "binding should have help description")
		})
	}
}
