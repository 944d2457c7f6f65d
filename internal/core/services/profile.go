package services

import (
	"context"
	"fmt"

	"github.com/servilink/servilink-cli/internal/core/domain"
	"github.com/servilink/servilink-cli/internal/core/ports/driven"
	"github.com/servilink/servilink-cli/internal/core/ports/driving"
)

// Ensure ProfileService implements the interface.
var _ driving.ProfileService = (*ProfileService)(nil)

// ProfileService manages the logged-in user's profile and skills.
type ProfileService struct {
	users   driven.UserGateway
	skills  driven.SkillGateway
	session driving.SessionService
}

// NewProfileService creates a new profile service.
func NewProfileService(users driven.UserGateway, skills driven.SkillGateway, session driving.SessionService) *ProfileService {
	return &ProfileService{users: users, skills: skills, session: session}
}

// Get fetches a user by ID.
func (s *ProfileService) Get(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	user.Normalize()
	return user, nil
}

// Update edits the logged-in user's profile. The cached session profile
// is replaced only after the backend accepts the change.
func (s *ProfileService) Update(ctx context.Context, update domain.ProfileUpdate) (*domain.User, error) {
	me := s.session.Current().User()
	if me == nil {
		return nil, domain.ErrAuthRequired
	}
	if update.IsEmpty() {
		return nil, fmt.Errorf("nothing to update: %w", domain.ErrInvalidInput)
	}

	user, err := s.users.UpdateUser(ctx, me.ID, update)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	if err := s.session.UpdateUser(ctx, *user); err != nil {
		return nil, err
	}
	user.Normalize()
	return user, nil
}

// AllSkills returns the skill catalogue.
func (s *ProfileService) AllSkills(ctx context.Context) ([]domain.Skill, error) {
	skills, err := s.skills.ListSkills(ctx)
	if err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}
	return skills, nil
}

// Skills returns the skills declared by userID.
func (s *ProfileService) Skills(ctx context.Context, userID int64) ([]domain.Skill, error) {
	skills, err := s.skills.UserSkills(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list skills of user %d: %w", userID, err)
	}
	return skills, nil
}

// AddSkill attaches a skill to the logged-in user.
func (s *ProfileService) AddSkill(ctx context.Context, skillID int64) error {
	me := s.session.Current().User()
	if me == nil {
		return domain.ErrAuthRequired
	}
	if err := s.skills.AddUserSkill(ctx, me.ID, skillID); err != nil {
		return fmt.Errorf("add skill %d: %w", skillID, err)
	}
	return nil
}

// AssignSkills attaches several skills to the logged-in user at once.
func (s *ProfileService) AssignSkills(ctx context.Context, skillIDs []int64) error {
	me := s.session.Current().User()
	if me == nil {
		return domain.ErrAuthRequired
	}
	if len(skillIDs) == 0 {
		return fmt.Errorf("no skills given: %w", domain.ErrInvalidInput)
	}
	if err := s.skills.AssignUserSkills(ctx, me.ID, skillIDs); err != nil {
		return fmt.Errorf("assign skills: %w", err)
	}
	return nil
}

// RemoveSkill detaches a skill from the logged-in user.
func (s *ProfileService) RemoveSkill(ctx context.Context, skillID int64) error {
	me := s.session.Current().User()
	if me == nil {
		return domain.ErrAuthRequired
	}
	if err := s.skills.RemoveUserSkill(ctx, me.ID, skillID); err != nil {
		return fmt.Errorf("remove skill %d: %w", skillID, err)
	}
	return nil
}
