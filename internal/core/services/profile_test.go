package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servilink/servilink-cli/internal/adapters/driven/storage/memory"
	"github.com/servilink/servilink-cli/internal/core/domain"
)

func TestProfileService_UpdateRefreshesSession(t *testing.T) {
	backend := &mockMarketplace{updateUserFn: func(id int64, u domain.ProfileUpdate) (*domain.User, error) {
		updated := contractor
		updated.Name = *u.Name
		return &updated, nil
	}}
	session := loggedIn(contractor)
	profile := NewProfileService(backend, backend, session)

	name := "Carla R."
	user, err := profile.Update(context.Background(), domain.ProfileUpdate{Name: &name})

	require.NoError(t, err)
	assert.Equal(t, "Carla R.", user.Name)
	assert.Equal(t, "Carla R.", session.Current().User().Name)
	assert.Equal(t, "token-Carla", session.Token())
}

func TestProfileService_UpdateFailureKeepsSession(t *testing.T) {
	backend := &mockMarketplace{updateUserFn: func(int64, domain.ProfileUpdate) (*domain.User, error) {
		return nil, domain.ErrRejected
	}}
	session := loggedIn(contractor)
	profile := NewProfileService(backend, backend, session)

	name := "X"
	_, err := profile.Update(context.Background(), domain.ProfileUpdate{Name: &name})
	assert.ErrorIs(t, err, domain.ErrRejected)
	assert.Equal(t, "Carla", session.Current().User().Name)
}

func TestProfileService_Guards(t *testing.T) {
	backend := &mockMarketplace{}
	ctx := context.Background()

	anon := NewProfileService(backend, backend, NewSessionService(memory.NewSessionStore(), nil))
	name := "x"
	_, err := anon.Update(ctx, domain.ProfileUpdate{Name: &name})
	assert.ErrorIs(t, err, domain.ErrAuthRequired)
	assert.ErrorIs(t, anon.AddSkill(ctx, 1), domain.ErrAuthRequired)
	assert.ErrorIs(t, anon.RemoveSkill(ctx, 1), domain.ErrAuthRequired)
	assert.ErrorIs(t, anon.AssignSkills(ctx, []int64{1}), domain.ErrAuthRequired)

	me := NewProfileService(backend, backend, loggedIn(vendor))
	_, err = me.Update(ctx, domain.ProfileUpdate{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProfileService_Skills(t *testing.T) {
	backend := &mockMarketplace{userSkillsFn: func(userID int64) ([]domain.Skill, error) {
		assert.Equal(t, vendor.ID, userID)
		return []domain.Skill{{ID: 1, Name: "Plumbing"}}, nil
	}}
	profile := NewProfileService(backend, backend, loggedIn(vendor))
	ctx := context.Background()

	skills, err := profile.Skills(ctx, vendor.ID)
	require.NoError(t, err)
	assert.Len(t, skills, 1)

	require.NoError(t, profile.AddSkill(ctx, 2))
	require.NoError(t, profile.RemoveSkill(ctx, 1))
	assert.Equal(t, []string{"UserSkills", "AddUserSkill", "RemoveUserSkill"}, backend.Calls())
}

func TestProfileService_AssignSkills(t *testing.T) {
	var got []int64
	backend := &mockMarketplace{assignSkillsFn: func(userID int64, ids []int64) error {
		assert.Equal(t, contractor.ID, userID)
		got = ids
		return nil
	}}
	profile := NewProfileService(backend, backend, loggedIn(contractor))
	ctx := context.Background()

	require.NoError(t, profile.AssignSkills(ctx, []int64{3, 4}))
	assert.Equal(t, []int64{3, 4}, got)

	assert.ErrorIs(t, profile.AssignSkills(ctx, nil), domain.ErrInvalidInput)
	assert.Equal(t, []string{"AssignUserSkills"}, backend.Calls())

	backend.assignSkillsFn = func(int64, []int64) error { return domain.ErrRejected }
	assert.ErrorIs(t, profile.AssignSkills(ctx, []int64{9}), domain.ErrRejected)
}
