package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/servilink/servilink-cli/internal/core/domain"
)

// ==== Users ====

// Login exchanges credentials for a token and the user profile.
func (c *Client) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/users/login", nil, loginDTO{Email: email, Password: password}, &resp); err != nil {
		return "", nil, err
	}
	if resp.AccessToken == "" || resp.User.ID == 0 {
		return "", nil, fmt.Errorf("login response missing token or user: %w", domain.ErrUnavailable)
	}
	return resp.AccessToken, resp.User.toDomain(), nil
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, reg domain.Registration) (*domain.User, error) {
	body := registerDTO{
		Name:     reg.Name,
		Email:    reg.Email,
		Phone:    reg.Phone,
		Location: reg.Location,
		Role:     reg.Role.WireValue(),
		Password: reg.Password,
	}
	var out userDTO
	if err := c.do(ctx, http.MethodPost, "/users/", nil, body, &out); err != nil {
		return nil, err
	}
	return out.toDomain(), nil
}

// GetUser fetches a user by ID.
func (c *Client) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	var out userDTO
	if err := c.do(ctx, http.MethodGet, idPath("/users/%d", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return out.toDomain(), nil
}

// UpdateUser applies a partial profile update.
func (c *Client) UpdateUser(ctx context.Context, id int64, u domain.ProfileUpdate) (*domain.User, error) {
	body := profileUpdateDTO{
		Name:              u.Name,
		Email:             u.Email,
		Phone:             u.Phone,
		Location:          u.Location,
		Bio:               u.Bio,
		ProfilePictureURL: u.ProfilePictureURL,
	}
	var out userDTO
	if err := c.do(ctx, http.MethodPut, idPath("/users/%d", id), nil, body, &out); err != nil {
		return nil, err
	}
	return out.toDomain(), nil
}

// ==== Skills ====

// ListSkills returns the whole catalogue.
func (c *Client) ListSkills(ctx context.Context) ([]domain.Skill, error) {
	var out []skillDTO
	if err := c.do(ctx, http.MethodGet, "/skills/", nil, nil, &out); err != nil {
		return nil, err
	}
	skills := make([]domain.Skill, 0, len(out))
	for i := range out {
		skills = append(skills, *out[i].toDomain())
	}
	return skills, nil
}

// UserSkills returns the skills a user declared.
func (c *Client) UserSkills(ctx context.Context, userID int64) ([]domain.Skill, error) {
	var out []userSkillDTO
	if err := c.do(ctx, http.MethodGet, idPath("/users/%d/skills", userID), nil, nil, &out); err != nil {
		return nil, err
	}
	skills := make([]domain.Skill, 0, len(out))
	for i := range out {
		skills = append(skills, *out[i].Skill.toDomain())
	}
	return skills, nil
}

// AddUserSkill attaches one skill.
func (c *Client) AddUserSkill(ctx context.Context, userID, skillID int64) error {
	return c.do(ctx, http.MethodPost, idPath("/users/%d/skills/%d", userID, skillID), nil, nil, nil)
}

// RemoveUserSkill detaches one skill.
func (c *Client) RemoveUserSkill(ctx context.Context, userID, skillID int64) error {
	return c.do(ctx, http.MethodDelete, idPath("/users/%d/skills/%d", userID, skillID), nil, nil, nil)
}

// AssignUserSkills attaches several skills in one request.
func (c *Client) AssignUserSkills(ctx context.Context, userID int64, skillIDs []int64) error {
	return c.do(ctx, http.MethodPost, idPath("/users/%d/skills", userID), nil, skillAssignmentDTO{SkillIDs: skillIDs}, nil)
}
