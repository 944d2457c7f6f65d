package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servilink/servilink-cli/internal/adapters/driving/tui/tuitest"
)

func TestNewServer(t *testing.T) {
	tests := []struct {
		name    string
		ports   *Ports
		wantErr error
	}{
		{
			name:    "missing search",
			ports:   &Ports{Catalog: &mockCatalogService{}},
			wantErr: ErrMissingSearchService,
		},
		{
			name:    "missing catalog",
			ports:   &Ports{Search: &mockSearchService{}},
			wantErr: ErrMissingCatalogService,
		},
		{
			name:  "catalogue only",
			ports: &Ports{Search: &mockSearchService{}, Catalog: &mockCatalogService{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, err := NewServer(tt.ports)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, srv)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, srv)
			assert.NotNil(t, srv.Handler())
		})
	}
}

func TestPorts_JobsEnabled(t *testing.T) {
	p := &Ports{Jobs: &tuitest.Jobs{}}
	assert.False(t, p.jobsEnabled())

	p.Session = tuitest.Session(t, nil)
	assert.True(t, p.jobsEnabled())
}

func TestPorts_PageSize(t *testing.T) {
	p := &Ports{}
	assert.Equal(t, 0, p.pageSize())

	p.Settings = &mockSettingsService{settings: domainSettings(4)}
	assert.Equal(t, 4, p.pageSize())
}
