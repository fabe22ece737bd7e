package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnumVocabularies(t *testing.T) {
	assert.True(t, AccountStatusActive.Valid())
	assert.True(t, AccountStatusInactive.Valid())
	assert.True(t, AccountStatusSuspended.Valid())
	assert.False(t, AccountStatus("deleted").Valid())

	assert.True(t, PlanFree.Valid())
	assert.True(t, PlanBasic.Valid())
	assert.True(t, PlanPremium.Valid())
	assert.False(t, SubscriptionPlan("platinum").Valid())

	assert.True(t, RoleUser.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, UserRole("user").Valid())
}

func TestNewUserDefaults(t *testing.T) {
	user := NewUser("new@example.com")

	assert.Equal(t, "new@example.com", user.Email)
	assert.Equal(t, AccountStatusActive, user.AccountStatus)
	assert.Equal(t, PlanFree, user.Plan)
	assert.Equal(t, RoleUser, user.Role)
	assert.Equal(t, DefaultProfileImage, user.ProfileImage)
	assert.Equal(t, "email", user.AuthProvider)
	assert.False(t, user.IsVerified)
	assert.Nil(t, user.PasswordHash)
	assert.False(t, user.CreatedAt.IsZero())
	assert.False(t, user.UpdatedAt.Before(user.CreatedAt))
}

func TestUserUpdateIsEmpty(t *testing.T) {
	assert.True(t, UserUpdate{}.IsEmpty())

	name := "Ada"
	assert.False(t, UserUpdate{FirstName: &name}.IsEmpty())

	verified := false
	// Explicitly supplied false is still a supplied field.
	assert.False(t, UserUpdate{IsVerified: &verified}.IsEmpty())
}
