package domain

import "time"

// Skill is a service category. Vendors declare skills and each
// service belongs to exactly one.
type Skill struct {
	ID          int64
	Name        string
	Description string
}

// Service is an offering posted by a vendor.
type Service struct {
	// ID is the backend identifier.
	ID int64
	// VendorID identifies the owning vendor.
	VendorID int64
	// Vendor is the embedded vendor summary, when the backend includes it.
	Vendor *User
	// Title is the short listing headline.
	Title string
	// Description is the listing body.
	Description string
	// Price is the fixed amount charged per job.
	Price float64
	// SkillID is the category of the service.
	SkillID int64
	// Skill is the embedded category, when the backend includes it.
	Skill *Skill
	// ImageURL is an optional cover image.
	ImageURL string
	// AvgRating is the mean review rating, zero when unrated.
	AvgRating float64
	// IsActive hides the service from search when false.
	IsActive bool
	// CreatedAt is when the service was posted.
	CreatedAt time.Time
}

// OwnedBy reports whether userID is the vendor of the service.
// The check is advisory; the backend enforces ownership.
func (s *Service) OwnedBy(userID int64) bool {
	if s.Vendor != nil && s.Vendor.ID != 0 {
		return s.Vendor.ID == userID
	}
	return s.VendorID == userID
}

// CategoryName returns the skill name or an empty string.
func (s *Service) CategoryName() string {
	if s.Skill == nil {
		return ""
	}
	return s.Skill.Name
}

// VendorName returns the vendor's display name or an empty string.
func (s *Service) VendorName() string {
	if s.Vendor == nil {
		return ""
	}
	return s.Vendor.Name
}

// ServiceDraft is the create/update form for a vendor service.
type ServiceDraft struct {
	Title       string
	Description string
	Price       float64
	SkillID     int64
	ImageURL    string
	IsActive    bool
}

// Validate checks the required fields.
func (d ServiceDraft) Validate() error {
	if d.Title == "" || d.SkillID == 0 || d.Price <= 0 {
		return ErrInvalidInput
	}
	return nil
}

// Review is a contractor's rating of a completed job.
type Review struct {
	ID        int64
	JobID     int64
	Rating    int
	Comment   string
	CreatedAt time.Time
}

// Rating bounds.
const (
	MinRating = 1
	MaxRating = 5
)

// ValidateRating checks that rating is within 1..5.
func ValidateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return ErrInvalidInput
	}
	return nil
}
