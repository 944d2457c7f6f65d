package services

import (
	"context"
	"fmt"

	"github.com/servilink/servilink-cli/internal/core/domain"
	"github.com/servilink/servilink-cli/internal/core/ports/driven"
	"github.com/servilink/servilink-cli/internal/core/ports/driving"
	"github.com/servilink/servilink-cli/internal/logger"
)

// Ensure OnboardingService implements the interface.
var _ driving.OnboardingService = (*OnboardingService)(nil)

// OnboardingService completes a newly registered vendor's setup.
type OnboardingService struct {
	users    driven.UserGateway
	skills   driven.SkillGateway
	services driven.ServiceGateway
	session  driving.SessionService
}

// NewOnboardingService creates a new onboarding service.
func NewOnboardingService(
	users driven.UserGateway,
	skills driven.SkillGateway,
	services driven.ServiceGateway,
	session driving.SessionService,
) *OnboardingService {
	return &OnboardingService{users: users, skills: skills, services: services, session: session}
}

// Complete assigns skillIDs in one request, creates every draft that has a
// title, price and category, and returns the refreshed user. Incomplete
// drafts are skipped. The session profile is refreshed when userID is the
// logged-in user.
func (s *OnboardingService) Complete(
	ctx context.Context,
	userID int64,
	skillIDs []int64,
	drafts []domain.ServiceDraft,
) (*domain.User, []domain.Service, error) {
	if userID == 0 {
		return nil, nil, fmt.Errorf("user id is required: %w", domain.ErrInvalidInput)
	}

	logger.Section("Onboarding")
	if len(skillIDs) > 0 {
		if err := s.skills.AssignUserSkills(ctx, userID, skillIDs); err != nil {
			return nil, nil, fmt.Errorf("assign skills: %w", err)
		}
		logger.Debug("assigned %d skills to user %d", len(skillIDs), userID)
	}

	var created []domain.Service
	for i, draft := range drafts {
		if err := draft.Validate(); err != nil {
			logger.Debug("skipping incomplete service draft %d", i)
			continue
		}
		draft.IsActive = true
		svc, err := s.services.CreateService(ctx, userID, draft)
		if err != nil {
			return nil, created, fmt.Errorf("create service %q: %w", draft.Title, err)
		}
		created = append(created, *svc)
	}

	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, created, fmt.Errorf("refresh user %d: %w", userID, err)
	}
	user.Normalize()

	if me := s.session.Current().User(); me != nil && me.ID == userID {
		if err := s.session.UpdateUser(ctx, *user); err != nil {
			return user, created, err
		}
	}
	return user, created, nil
}
