package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/servilink/servilink-cli/internal/adapters/driving/tui/tuitest"
)

func TestPorts_Validate(t *testing.T) {
	full := func() *Ports {
		return &Ports{
			Session: tuitest.Session(t, nil),
			Auth:    &tuitest.Auth{},
			Search:  &tuitest.Search{},
			Catalog: &tuitest.Catalog{},
			Jobs:    &tuitest.Jobs{},
		}
	}

	tests := []struct {
		name   string
		mutate func(p *Ports)
		want   error
	}{
		{"complete", func(*Ports) {}, nil},
		{"no session", func(p *Ports) { p.Session = nil }, ErrMissingSessionService},
		{"no auth", func(p *Ports) { p.Auth = nil }, ErrMissingAuthService},
		{"no search", func(p *Ports) { p.Search = nil }, ErrMissingSearchService},
		{"no catalog", func(p *Ports) { p.Catalog = nil }, ErrMissingCatalogService},
		{"no jobs", func(p *Ports) { p.Jobs = nil }, ErrMissingJobService},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := full()
			tt.mutate(p)
			err := p.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestPorts_PageSizeWithoutSettings(t *testing.T) {
	p := &Ports{}

	assert.Equal(t, 0, p.pageSize())
}
