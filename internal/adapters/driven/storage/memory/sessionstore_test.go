package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStore_SaveLoadClear(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	token, profile, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Empty(t, profile)

	require.NoError(t, store.Save(ctx, "tok", []byte(`{"id":1}`)))
	token, profile, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok", token)
	assert.JSONEq(t, `{"id":1}`, string(profile))

	require.NoError(t, store.SaveProfile(ctx, []byte(`{"id":2}`)))
	token, profile, _ = store.Load(ctx)
	assert.Equal(t, "tok", token)
	assert.JSONEq(t, `{"id":2}`, string(profile))

	require.NoError(t, store.Clear(ctx))
	token, profile, _ = store.Load(ctx)
	assert.Empty(t, token)
	assert.Empty(t, profile)
	assert.Equal(t, 1, store.Clears)
}

func TestSessionStore_Err(t *testing.T) {
	store := NewSessionStore()
	store.Err = errors.New("locked")
	ctx := context.Background()

	_, _, err := store.Load(ctx)
	assert.Error(t, err)
	assert.Error(t, store.Save(ctx, "t", nil))
	assert.Error(t, store.SaveProfile(ctx, nil))
	assert.Error(t, store.Clear(ctx))
}
