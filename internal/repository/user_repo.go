// Package repository provides data access layer implementations.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/naturalize-app/api/internal/models"
)

const userColumns = `id, first_name, last_name, email, phone_number, password_hash, is_verified,
	       account_status, plan, role, profile_image, auth_provider,
	       otp, otp_created_at, otp_attempts, created_at, updated_at`

// UserPatch is the storage-level change set for a partial user update.
// Passwords arrive here already hashed; the service layer owns hashing.
type UserPatch struct {
	FirstName     *string
	LastName      *string
	Email         *string
	PhoneNumber   *string
	PasswordHash  *string
	IsVerified    *bool
	AccountStatus *models.AccountStatus
	Plan          *models.SubscriptionPlan
	Role          *models.UserRole
	ProfileImage  *string
}

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, skip, limit int) ([]*models.User, error)
	Update(ctx context.Context, id uuid.UUID, patch UserPatch) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type userRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new user repository.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepo{pool: pool}
}

// Create inserts a new user into the database.
func (r *userRepo) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, first_name, last_name, email, phone_number, password_hash, is_verified,
		                   account_status, plan, role, profile_image, auth_provider, otp_attempts)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at, updated_at`

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	return r.pool.QueryRow(ctx, query,
		user.ID,
		user.FirstName,
		user.LastName,
		user.Email,
		user.PhoneNumber,
		user.PasswordHash,
		user.IsVerified,
		user.AccountStatus,
		user.Plan,
		user.Role,
		user.ProfileImage,
		user.AuthProvider,
		user.OTPAttempts,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
}

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.PhoneNumber,
		&user.PasswordHash,
		&user.IsVerified,
		&user.AccountStatus,
		&user.Plan,
		&user.Role,
		&user.ProfileImage,
		&user.AuthProvider,
		&user.OTP,
		&user.OTPCreatedAt,
		&user.OTPAttempts,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID retrieves a user by its UUID.
func (r *userRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.pool.QueryRow(ctx, query, id))
}

// GetByEmail retrieves a user by email address.
func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.pool.QueryRow(ctx, query, email))
}

// List retrieves users ordered by creation time, newest first.
func (r *userRepo) List(ctx context.Context, skip, limit int) ([]*models.User, error) {
	query := `SELECT ` + userColumns + `
		FROM users
		ORDER BY created_at DESC
		OFFSET $1 LIMIT $2`

	rows, err := r.pool.Query(ctx, query, skip, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// Update applies the non-nil fields of patch to the user row and bumps
// updated_at. Fields not present in the patch are left untouched.
func (r *userRepo) Update(ctx context.Context, id uuid.UUID, patch UserPatch) error {
	sets := []string{}
	args := []any{id}
	argIndex := 2

	add := func(column string, value any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argIndex))
		args = append(args, value)
		argIndex++
	}

	if patch.FirstName != nil {
		add("first_name", *patch.FirstName)
	}
	if patch.LastName != nil {
		add("last_name", *patch.LastName)
	}
	if patch.Email != nil {
		add("email", *patch.Email)
	}
	if patch.PhoneNumber != nil {
		add("phone_number", *patch.PhoneNumber)
	}
	if patch.PasswordHash != nil {
		add("password_hash", *patch.PasswordHash)
	}
	if patch.IsVerified != nil {
		add("is_verified", *patch.IsVerified)
	}
	if patch.AccountStatus != nil {
		add("account_status", *patch.AccountStatus)
	}
	if patch.Plan != nil {
		add("plan", *patch.Plan)
	}
	if patch.Role != nil {
		add("role", *patch.Role)
	}
	if patch.ProfileImage != nil {
		add("profile_image", *patch.ProfileImage)
	}

	if len(sets) == 0 {
		return nil
	}

	query := "UPDATE users SET " + strings.Join(sets, ", ") + ", updated_at = NOW() WHERE id = $1"
	_, err := r.pool.Exec(ctx, query, args...)
	return err
}

// Delete permanently removes a user row. Returns false if no row existed.
func (r *userRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
