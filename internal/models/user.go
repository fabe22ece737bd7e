package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultProfileImage is the placeholder avatar assigned to new accounts.
const DefaultProfileImage = "https://res.cloudinary.com/dg0i0hsqe/image/upload/v1731829933/default-profile_klmgwm.png"

// AccountStatus is the lifecycle state of a user account.
type AccountStatus string

const (
	AccountStatusActive    AccountStatus = "active"
	AccountStatusInactive  AccountStatus = "inactive"
	AccountStatusSuspended AccountStatus = "suspended"
)

// Valid reports whether the status is one of the defined values.
func (s AccountStatus) Valid() bool {
	switch s {
	case AccountStatusActive, AccountStatusInactive, AccountStatusSuspended:
		return true
	}
	return false
}

// SubscriptionPlan is the billing tier of a user account.
type SubscriptionPlan string

const (
	PlanFree    SubscriptionPlan = "free"
	PlanBasic   SubscriptionPlan = "basic"
	PlanPremium SubscriptionPlan = "premium"
)

// Valid reports whether the plan is one of the defined values.
func (p SubscriptionPlan) Valid() bool {
	switch p {
	case PlanFree, PlanBasic, PlanPremium:
		return true
	}
	return false
}

// UserRole distinguishes regular users from administrators.
type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleAdmin UserRole = "ADMIN"
)

// Valid reports whether the role is one of the defined values.
func (r UserRole) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User represents a user account.
// PasswordHash only ever holds a bcrypt hash; plaintext never reaches the store.
type User struct {
	ID            uuid.UUID        `json:"id" db:"id"`
	FirstName     *string          `json:"first_name,omitempty" db:"first_name"`
	LastName      *string          `json:"last_name,omitempty" db:"last_name"`
	Email         string           `json:"email" db:"email"`
	PhoneNumber   *string          `json:"phone_number,omitempty" db:"phone_number"`
	PasswordHash  *string          `json:"-" db:"password_hash"`
	IsVerified    bool             `json:"is_verified" db:"is_verified"`
	AccountStatus AccountStatus    `json:"account_status" db:"account_status"`
	Plan          SubscriptionPlan `json:"plan" db:"plan"`
	Role          UserRole         `json:"role" db:"role"`
	ProfileImage  string           `json:"profile_image" db:"profile_image"`
	AuthProvider  string           `json:"auth_provider" db:"auth_provider"`
	OTP           *string          `json:"-" db:"otp"`
	OTPCreatedAt  *time.Time       `json:"-" db:"otp_created_at"`
	OTPAttempts   int              `json:"-" db:"otp_attempts"`
	CreatedAt     time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at" db:"updated_at"`
}

// NewUser constructs a user record with the documented defaults.
// Called exactly once, at registration time.
func NewUser(email string) *User {
	now := time.Now().UTC()
	return &User{
		ID:            uuid.New(),
		Email:         email,
		AccountStatus: AccountStatusActive,
		Plan:          PlanFree,
		Role:          RoleUser,
		ProfileImage:  DefaultProfileImage,
		AuthProvider:  "email",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// UserUpdate is a partial change set for a user record. A nil field means
// "not supplied"; only non-nil fields are written. Password carries plaintext
// from the request and must be hashed before it is handed to the repository.
type UserUpdate struct {
	FirstName     *string           `json:"first_name,omitempty"`
	LastName      *string           `json:"last_name,omitempty"`
	Email         *string           `json:"email,omitempty" validate:"omitempty,email"`
	PhoneNumber   *string           `json:"phone_number,omitempty"`
	Password      *string           `json:"password,omitempty" validate:"omitempty,min=8"`
	IsVerified    *bool             `json:"is_verified,omitempty"`
	AccountStatus *AccountStatus    `json:"account_status,omitempty"`
	Plan          *SubscriptionPlan `json:"plan,omitempty"`
	Role          *UserRole         `json:"role,omitempty"`
}

// IsEmpty reports whether no field at all was supplied.
func (u UserUpdate) IsEmpty() bool {
	return u.FirstName == nil &&
		u.LastName == nil &&
		u.Email == nil &&
		u.PhoneNumber == nil &&
		u.Password == nil &&
		u.IsVerified == nil &&
		u.AccountStatus == nil &&
		u.Plan == nil &&
		u.Role == nil
}
