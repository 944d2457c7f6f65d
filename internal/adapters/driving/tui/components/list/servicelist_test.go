package list

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servilink/servilink-cli/internal/core/domain"
)

func sampleServices() []domain.Service {
	return []domain.Service{
		{ID: 1, Title: "Pipe repair", Price: 40, AvgRating: 4, Skill: &domain.Skill{Name: "Plumbing"}},
		{ID: 2, Title: "Garden cleanup", Price: 25.5, Vendor: &domain.User{Name: "Luis"}},
		{ID: 3, Title: "Wiring check", Price: 60},
	}
}

func TestServiceList_Empty(t *testing.T) {
	l := NewServiceList(nil)

	assert.True(t, l.IsEmpty())
	assert.Nil(t, l.SelectedService())
	assert.Contains(t, l.View(), "No services found")
}

func TestServiceList_RendersRows(t *testing.T) {
	l := NewServiceList(nil)
	l.SetDimensions(100, 20)
	l.SetServices(sampleServices())

	view := l.View()

	assert.Contains(t, view, "> Pipe repair")
	assert.Contains(t, view, "$40.00")
	assert.Contains(t, view, "Plumbing")
	assert.Contains(t, view, "by Luis")
	assert.Contains(t, view, "★★★★☆")
}

func TestServiceList_Navigation(t *testing.T) {
	l := NewServiceList(nil)
	l.SetServices(sampleServices())

	l.Update(tea.KeyMsg{Type: tea.KeyDown})
	l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	l.Update(tea.KeyMsg{Type: tea.KeyDown})

	require.NotNil(t, l.SelectedService())
	assert.Equal(t, int64(3), l.SelectedService().ID)

	l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, 1, l.Selected())
}

func TestServiceList_SetServicesResetsSelection(t *testing.T) {
	l := NewServiceList(nil)
	l.SetServices(sampleServices())
	l.SetSelected(2)

	l.SetServices(sampleServices()[:1])

	assert.Equal(t, 0, l.Selected())
	l.SetSelected(5)
	assert.Equal(t, 0, l.Selected())
}

func TestServiceList_ScrollsToSelection(t *testing.T) {
	l := NewServiceList(nil)
	l.SetDimensions(100, 4) // room for one service
	l.SetServices(sampleServices())
	l.SetSelected(2)

	view := l.View()

	assert.Contains(t, view, "Wiring check")
	assert.NotContains(t, view, "Pipe repair")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}
