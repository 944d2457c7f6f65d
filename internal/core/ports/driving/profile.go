package driving

import (
	"context"

	"github.com/servilink/servilink-cli/internal/core/domain"
)

// ProfileService manages user profiles and declared skills.
type ProfileService interface {
	// Get fetches a user by ID.
	Get(ctx context.Context, id int64) (*domain.User, error)

	// Update edits the logged-in user's profile and refreshes the session.
	Update(ctx context.Context, update domain.ProfileUpdate) (*domain.User, error)

	// AllSkills returns the skill catalogue.
	AllSkills(ctx context.Context) ([]domain.Skill, error)

	// Skills returns the skills declared by userID.
	Skills(ctx context.Context, userID int64) ([]domain.Skill, error)

	// AddSkill attaches a skill to the logged-in user.
	AddSkill(ctx context.Context, skillID int64) error

	// AssignSkills attaches several skills to the logged-in user at once.
	AssignSkills(ctx context.Context, skillIDs []int64) error

	// RemoveSkill detaches a skill from the logged-in user.
	RemoveSkill(ctx context.Context, skillID int64) error
}

// OnboardingService completes a new vendor's setup.
type OnboardingService interface {
	// Complete assigns skills, creates the valid service drafts and
	// returns the refreshed user along with the created services.
	Complete(ctx context.Context, userID int64, skillIDs []int64, drafts []domain.ServiceDraft) (*domain.User, []domain.Service, error)
}
