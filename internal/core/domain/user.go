package domain

import "time"

// User is a marketplace account as returned by the backend.
// Only the JSON fields are cached locally with the session.
type User struct {
	// ID is the backend identifier.
	ID int64 `json:"id"`
	// Name is the display name.
	Name string `json:"name"`
	// Email is the login identifier.
	Email string `json:"email"`
	// Phone is optional contact information.
	Phone string `json:"phone,omitempty"`
	// Location is a free-form city or address.
	Location string `json:"location,omitempty"`
	// Bio is an optional vendor description.
	Bio string `json:"bio,omitempty"`
	// RawRole is the role string exactly as the backend sent it.
	RawRole string `json:"role"`
	// ProfilePictureURL points to an avatar image.
	ProfilePictureURL string `json:"profile_picture_url,omitempty"`
	// CreatedAt is when the account was registered.
	CreatedAt time.Time `json:"created_at"`

	// Role is derived from RawRole when the user enters a session.
	Role Role `json:"-"`
}

// Normalize fills Role from RawRole.
func (u *User) Normalize() {
	u.Role = ParseRole(u.RawRole)
}

// IsVendor reports whether the user offers services.
func (u *User) IsVendor() bool {
	return u.Role == RoleVendor
}

// IsContractor reports whether the user hires services.
func (u *User) IsContractor() bool {
	return u.Role == RoleContractor
}

// ProfileUpdate carries the editable profile fields.
// Nil fields are left untouched.
type ProfileUpdate struct {
	Name              *string
	Email             *string
	Phone             *string
	Location          *string
	Bio               *string
	ProfilePictureURL *string
}

// IsEmpty reports whether no field is set.
func (p ProfileUpdate) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.Phone == nil &&
		p.Location == nil && p.Bio == nil && p.ProfilePictureURL == nil
}

// Registration is the sign-up form.
type Registration struct {
	Name     string
	Email    string
	Phone    string
	Location string
	Password string
	Role     Role
}

// Validate checks the required fields.
func (r Registration) Validate() error {
	if r.Name == "" || r.Email == "" || r.Password == "" {
		return ErrInvalidInput
	}
	if r.Role == RoleUnknown {
		return ErrInvalidInput
	}
	return nil
}
