package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	Create(ctx context.Context, user User) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	Update(ctx context.Context, user User) (User, error)
	SetRefreshTokenHash(ctx context.Context, id uuid.UUID, hash []byte) error
	AddProject(ctx context.Context, userID, projectID uuid.UUID) error
	RemoveProject(ctx context.Context, userID, projectID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// User represents a registered account.
//
// PasswordHash and RefreshTokenHash never leave the service layer.
type User struct {
	ID               uuid.UUID
	Username         string
	Email            string
	FullName         string
	PasswordHash     []byte
	RefreshTokenHash []byte
	ProjectIDs       []uuid.UUID
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// RegisterParams contains parameters to register a user.
type RegisterParams struct {
	FullName string
	Email    string
	Username string
	Password string
}

// LoginParams contains login credentials. Either Email or Username is set.
type LoginParams struct {
	Email    string
	Username string
	Password string
}

// UpdateAccountParams contains the editable account fields.
type UpdateAccountParams struct {
	FullName string
	Email    string
}

// Session is the result of a successful login or token refresh.
type Session struct {
	User         User
	AccessToken  string
	RefreshToken string
}
