package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestService_OwnedBy(t *testing.T) {
	s := Service{VendorID: 7}
	assert.True(t, s.OwnedBy(7))
	assert.False(t, s.OwnedBy(8))

	// The embedded vendor takes precedence over the flat id.
	s.Vendor = &User{ID: 9}
	assert.True(t, s.OwnedBy(9))
	assert.False(t, s.OwnedBy(7))
}

func TestService_Names(t *testing.T) {
	s := Service{}
	assert.Empty(t, s.CategoryName())
	assert.Empty(t, s.VendorName())

	s.Skill = &Skill{Name: "Plumbing"}
	s.Vendor = &User{Name: "Ana"}
	assert.Equal(t, "Plumbing", s.CategoryName())
	assert.Equal(t, "Ana", s.VendorName())
}

func TestServiceDraft_Validate(t *testing.T) {
	valid := ServiceDraft{Title: "Fix taps", Price: 100, SkillID: 2}
	assert.NoError(t, valid.Validate())

	missingTitle := valid
	missingTitle.Title = ""
	assert.True(t, errors.Is(missingTitle.Validate(), ErrInvalidInput))

	noPrice := valid
	noPrice.Price = 0
	assert.Error(t, noPrice.Validate())

	noSkill := valid
	noSkill.SkillID = 0
	assert.Error(t, noSkill.Validate())
}

func TestValidateRating(t *testing.T) {
	for r := MinRating; r <= MaxRating; r++ {
		assert.NoError(t, ValidateRating(r))
	}
	assert.ErrorIs(t, ValidateRating(0), ErrInvalidInput)
	assert.ErrorIs(t, ValidateRating(6), ErrInvalidInput)
}

func TestRegistration_Validate(t *testing.T) {
	r := Registration{Name: "Ana", Email: "ana@example.com", Password: "pw", Role: RoleVendor}
	assert.NoError(t, r.Validate())

	r.Role = RoleUnknown
	assert.ErrorIs(t, r.Validate(), ErrInvalidInput)

	r.Role = RoleContractor
	r.Email = ""
	assert.ErrorIs(t, r.Validate(), ErrInvalidInput)
}

func TestUser_Normalize(t *testing.T) {
	u := User{RawRole: "vendedor"}
	u.Normalize()
	assert.True(t, u.IsVendor())
	assert.False(t, u.IsContractor())

	assert.True(t, ProfileUpdate{}.IsEmpty())
	name := "x"
	assert.False(t, ProfileUpdate{Name: &name}.IsEmpty())
}
