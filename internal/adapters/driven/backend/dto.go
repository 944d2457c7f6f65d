package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/servilink/servilink-cli/internal/core/domain"
)

// wireTime accepts the timestamp layouts the backend emits. Datetimes are
// usually naive ISO-8601 without an offset; dates are plain YYYY-MM-DD.
type wireTime struct {
	time.Time
}

var wireLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	time.DateOnly,
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *wireTime) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range wireLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognised timestamp %q", s)
}

// wireDate marshals as YYYY-MM-DD.
type wireDate time.Time

// MarshalJSON implements json.Marshaler.
func (d wireDate) MarshalJSON() ([]byte, error) {
	t := time.Time(d)
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.DateOnly))
}

type userDTO struct {
	ID                int64    `json:"id"`
	Name              string   `json:"name"`
	Email             string   `json:"email"`
	Phone             string   `json:"phone"`
	Location          string   `json:"location"`
	Bio               string   `json:"bio"`
	Role              string   `json:"role"`
	ProfilePictureURL string   `json:"profile_picture_url"`
	CreatedAt         wireTime `json:"created_at"`
}

func (u *userDTO) toDomain() *domain.User {
	if u == nil {
		return nil
	}
	user := &domain.User{
		ID:                u.ID,
		Name:              u.Name,
		Email:             u.Email,
		Phone:             u.Phone,
		Location:          u.Location,
		Bio:               u.Bio,
		RawRole:           u.Role,
		ProfilePictureURL: u.ProfilePictureURL,
		CreatedAt:         u.CreatedAt.Time,
	}
	user.Normalize()
	return user
}

type skillDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *skillDTO) toDomain() *domain.Skill {
	if s == nil {
		return nil
	}
	return &domain.Skill{ID: s.ID, Name: s.Name, Description: s.Description}
}

// userSkillDTO is one entry of GET /users/{id}/skills.
type userSkillDTO struct {
	UserID int64    `json:"user_id"`
	Skill  skillDTO `json:"skill"`
}

type serviceDTO struct {
	ID          int64     `json:"id"`
	VendorID    int64     `json:"vendor_id"`
	Vendor      *userDTO  `json:"vendor"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	SkillID     int64     `json:"skill_id"`
	Skill       *skillDTO `json:"skill"`
	ImageURL    string    `json:"image_url"`
	AvgRating   *float64  `json:"avg_rating"`
	IsActive    *bool     `json:"is_active"`
	CreatedAt   wireTime  `json:"created_at"`
}

func (s *serviceDTO) toDomain() *domain.Service {
	if s == nil {
		return nil
	}
	svc := &domain.Service{
		ID:          s.ID,
		VendorID:    s.VendorID,
		Vendor:      s.Vendor.toDomain(),
		Title:       s.Title,
		Description: s.Description,
		Price:       s.Price,
		SkillID:     s.SkillID,
		Skill:       s.Skill.toDomain(),
		ImageURL:    s.ImageURL,
		IsActive:    true,
		CreatedAt:   s.CreatedAt.Time,
	}
	if svc.VendorID == 0 && svc.Vendor != nil {
		svc.VendorID = svc.Vendor.ID
	}
	if svc.SkillID == 0 && svc.Skill != nil {
		svc.SkillID = svc.Skill.ID
	}
	if s.AvgRating != nil {
		svc.AvgRating = *s.AvgRating
	}
	if s.IsActive != nil {
		svc.IsActive = *s.IsActive
	}
	return svc
}

type serviceWriteDTO struct {
	VendorID    int64   `json:"vendor_id,omitempty"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	SkillID     int64   `json:"skill_id"`
	IsActive    bool    `json:"is_active"`
	ImageURL    string  `json:"image_url,omitempty"`
}

func newServiceWrite(vendorID int64, d domain.ServiceDraft) serviceWriteDTO {
	return serviceWriteDTO{
		VendorID:    vendorID,
		Title:       d.Title,
		Description: d.Description,
		Price:       d.Price,
		SkillID:     d.SkillID,
		IsActive:    d.IsActive,
		ImageURL:    d.ImageURL,
	}
}

type jobDTO struct {
	ID              int64       `json:"id"`
	ServiceID       int64       `json:"service_id"`
	ContractorID    int64       `json:"contractor_id"`
	VendorID        int64       `json:"vendor_id"`
	Service         *serviceDTO `json:"service"`
	ContractorUser  *userDTO    `json:"contractor_user"`
	VendorUser      *userDTO    `json:"vendor_user"`
	Status          string      `json:"status"`
	ClientConfirmed bool        `json:"client_confirmed"`
	VendorConfirmed bool        `json:"vendor_confirmed"`
	TotalAmount     *float64    `json:"total_amount"`
	StartDate       wireTime    `json:"start_date"`
	EndDate         wireTime    `json:"end_date"`
	CreatedAt       wireTime    `json:"created_at"`
}

func (j *jobDTO) toDomain() (*domain.Job, error) {
	status := domain.JobStatus(j.Status)
	if !status.IsValid() {
		return nil, fmt.Errorf("job %d has unknown status %q: %w", j.ID, j.Status, domain.ErrInvalidInput)
	}

	job := &domain.Job{
		ID:              j.ID,
		ServiceID:       j.ServiceID,
		ContractorID:    j.ContractorID,
		VendorID:        j.VendorID,
		Service:         j.Service.toDomain(),
		Contractor:      j.ContractorUser.toDomain(),
		Vendor:          j.VendorUser.toDomain(),
		Status:          status,
		ClientConfirmed: j.ClientConfirmed,
		VendorConfirmed: j.VendorConfirmed,
		StartDate:       j.StartDate.Time,
		EndDate:         j.EndDate.Time,
		CreatedAt:       j.CreatedAt.Time,
	}
	if job.ServiceID == 0 && job.Service != nil {
		job.ServiceID = job.Service.ID
	}
	if job.ContractorID == 0 && job.Contractor != nil {
		job.ContractorID = job.Contractor.ID
	}
	if job.VendorID == 0 && job.Vendor != nil {
		job.VendorID = job.Vendor.ID
	}
	if j.TotalAmount != nil {
		job.TotalAmount = *j.TotalAmount
	}
	return job, nil
}

func jobsToDomain(in []jobDTO) ([]domain.Job, error) {
	out := make([]domain.Job, 0, len(in))
	for i := range in {
		job, err := in[i].toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, *job)
	}
	return out, nil
}

type jobCreateDTO struct {
	ContractorID int64    `json:"contractor_id"`
	VendorID     int64    `json:"vendor_id"`
	ServiceID    int64    `json:"service_id"`
	Status       string   `json:"status"`
	StartDate    wireDate `json:"start_date"`
	EndDate      wireDate `json:"end_date"`
	TotalAmount  float64  `json:"total_amount"`
}

type jobActionDTO struct {
	UserID int64 `json:"user_id"`
}

// jobStatusResponse is the envelope returned by PUT /jobs/{id}/status.
type jobStatusResponse struct {
	Message string `json:"message"`
	Job     jobDTO `json:"job"`
}

type reviewDTO struct {
	ID        int64    `json:"id"`
	JobID     int64    `json:"job_id"`
	Rating    int      `json:"rating"`
	Comment   string   `json:"comment"`
	CreatedAt wireTime `json:"created_at"`
}

func (r *reviewDTO) toDomain() *domain.Review {
	return &domain.Review{ID: r.ID, JobID: r.JobID, Rating: r.Rating, Comment: r.Comment, CreatedAt: r.CreatedAt.Time}
}

type reviewCreateDTO struct {
	JobID   int64  `json:"job_id"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment,omitempty"`
}

type loginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string  `json:"access_token"`
	User        userDTO `json:"user"`
}

type registerDTO struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

// profileUpdateDTO only carries the fields being changed.
type profileUpdateDTO struct {
	Name              *string `json:"name,omitempty"`
	Email             *string `json:"email,omitempty"`
	Phone             *string `json:"phone,omitempty"`
	Location          *string `json:"location,omitempty"`
	Bio               *string `json:"bio,omitempty"`
	ProfilePictureURL *string `json:"profile_picture_url,omitempty"`
}

type skillAssignmentDTO struct {
	SkillIDs []int64 `json:"skill_ids"`
}
