package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/tasktracker-server/internal/apperror"
	"github.com/dtroode/tasktracker-server/internal/logger"
	"github.com/dtroode/tasktracker-server/internal/model"
)

type Auth struct {
	userStore    model.UserStore
	projectStore model.ProjectStore
	hasher       model.PasswordHasher
	tokenService *TokenService
	links        *Links
	logger       *logger.Logger
}

func NewAuth(
	userStore model.UserStore,
	projectStore model.ProjectStore,
	hasher model.PasswordHasher,
	tokenService *TokenService,
	links *Links,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore:    userStore,
		projectStore: projectStore,
		hasher:       hasher,
		tokenService: tokenService,
		links:        links,
		logger:       logger,
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (a *Auth) Register(ctx context.Context, params model.RegisterParams) (model.User, error) {
	username := normalize(params.Username)
	email := normalize(params.Email)
	fullName := strings.TrimSpace(params.FullName)

	if username == "" || email == "" || fullName == "" || strings.TrimSpace(params.Password) == "" {
		return model.User{}, apperror.NewErrAllFieldsRequired()
	}

	a.logger.Debug("Auth service: starting user registration",
		"username", username,
		"email", email)

	if err := a.ensureFree(ctx, username, email); err != nil {
		return model.User{}, err
	}

	hash, err := a.hasher.Hash(params.Password)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user, err := a.userStore.Create(ctx, model.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		FullName:     fullName,
		PasswordHash: hash,
		ProjectIDs:   []uuid.UUID{},
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if errors.Is(err, model.ErrConflict) {
		return model.User{}, apperror.NewErrUserExists()
	}
	if err != nil {
		a.logger.Error("Auth service: failed to create user",
			"username", username,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	a.logger.Info("Auth service: user registered",
		"user_id", user.ID,
		"username", username)

	return sanitize(user), nil
}

func (a *Auth) ensureFree(ctx context.Context, username, email string) error {
	for _, lookup := range []func() (model.User, error){
		func() (model.User, error) { return a.userStore.GetByUsername(ctx, username) },
		func() (model.User, error) { return a.userStore.GetByEmail(ctx, email) },
	} {
		_, err := lookup()
		if err == nil {
			return apperror.NewErrUserExists()
		}
		if !errors.Is(err, model.ErrNotFound) {
			return fmt.Errorf("failed to check existing user: %w", err)
		}
	}
	return nil
}

func (a *Auth) Login(ctx context.Context, params model.LoginParams) (model.Session, error) {
	email := normalize(params.Email)
	username := normalize(params.Username)

	if email == "" && username == "" {
		return model.Session{}, apperror.BadRequest("Username or email is required")
	}

	var (
		user model.User
		err  error
	)
	if email != "" {
		user, err = a.userStore.GetByEmail(ctx, email)
	} else {
		user, err = a.userStore.GetByUsername(ctx, username)
	}
	if errors.Is(err, model.ErrNotFound) {
		return model.Session{}, apperror.NewErrUserNotFound()
	}
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to get user: %w", err)
	}

	if err := a.hasher.Compare(user.PasswordHash, params.Password); err != nil {
		a.logger.Info("Auth service: login rejected",
			"user_id", user.ID)
		return model.Session{}, apperror.NewErrIncorrectPassword()
	}

	access, refresh, err := a.tokenService.Issue(ctx, user.ID)
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: user logged in",
		"user_id", user.ID)

	return model.Session{User: sanitize(user), AccessToken: access, RefreshToken: refresh}, nil
}

// RefreshSession exchanges a refresh token for a new token pair.
func (a *Auth) RefreshSession(ctx context.Context, refreshToken string) (model.Session, error) {
	if refreshToken == "" {
		return model.Session{}, apperror.NewErrMissingAuthorizationToken()
	}

	userID, access, refresh, err := a.tokenService.Refresh(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, model.ErrTokenInvalid) || errors.Is(err, model.ErrTokenRevoked) || errors.Is(err, model.ErrTokenMismatch) {
			return model.Session{}, apperror.NewErrInvalidRefreshToken()
		}
		return model.Session{}, fmt.Errorf("failed to refresh token: %w", err)
	}

	user, err := a.userStore.GetByID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Session{}, apperror.NewErrInvalidRefreshToken()
	}
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to get user: %w", err)
	}

	return model.Session{User: sanitize(user), AccessToken: access, RefreshToken: refresh}, nil
}

// Logout revokes the caller's refresh token. Repeated calls succeed.
func (a *Auth) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := a.tokenService.Revoke(ctx, userID); err != nil {
		return err
	}

	a.logger.Info("Auth service: user logged out",
		"user_id", userID)

	return nil
}

func (a *Auth) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	if oldPassword == "" || strings.TrimSpace(newPassword) == "" {
		return apperror.NewErrAllFieldsRequired()
	}

	user, err := a.getUser(ctx, userID)
	if err != nil {
		return err
	}

	if err := a.hasher.Compare(user.PasswordHash, oldPassword); err != nil {
		return apperror.BadRequest("Invalid old password")
	}

	hash, err := a.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = hash
	if _, err := a.userStore.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	a.logger.Info("Auth service: password changed",
		"user_id", userID)

	return nil
}

func (a *Auth) CurrentUser(ctx context.Context, userID uuid.UUID) (model.User, error) {
	user, err := a.getUser(ctx, userID)
	if err != nil {
		return model.User{}, err
	}
	return sanitize(user), nil
}

func (a *Auth) UpdateAccount(ctx context.Context, userID uuid.UUID, params model.UpdateAccountParams) (model.User, error) {
	fullName := strings.TrimSpace(params.FullName)
	email := normalize(params.Email)
	if fullName == "" || email == "" {
		return model.User{}, apperror.NewErrAllFieldsRequired()
	}

	user, err := a.getUser(ctx, userID)
	if err != nil {
		return model.User{}, err
	}

	user.FullName = fullName
	user.Email = email

	updated, err := a.userStore.Update(ctx, user)
	if errors.Is(err, model.ErrConflict) {
		return model.User{}, apperror.NewErrEmailIsTaken(email)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	return sanitize(updated), nil
}

// DeleteAccount removes the caller and everything that references it.
// The password is verified only when provided.
func (a *Auth) DeleteAccount(ctx context.Context, userID uuid.UUID, password string) error {
	user, err := a.getUser(ctx, userID)
	if err != nil {
		return err
	}

	if password != "" {
		if err := a.hasher.Compare(user.PasswordHash, password); err != nil {
			return apperror.Unauthorized("Invalid password")
		}
	}

	if err := a.links.DeleteUser(ctx, userID); err != nil {
		a.logger.Error("Auth service: failed to delete account",
			"user_id", userID,
			"error", err.Error())
		return err
	}

	return nil
}

// UserProjects returns the projects referenced by the caller's own project
// list. Member lists are omitted.
func (a *Auth) UserProjects(ctx context.Context, userID uuid.UUID) ([]model.Project, error) {
	user, err := a.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	projects, err := a.projectStore.GetByIDs(ctx, user.ProjectIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get user projects: %w", err)
	}

	for i := range projects {
		projects[i].MemberIDs = nil
	}

	return projects, nil
}

func (a *Auth) getUser(ctx context.Context, userID uuid.UUID) (model.User, error) {
	user, err := a.userStore.GetByID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, apperror.NewErrUserNotFound()
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func sanitize(u model.User) model.User {
	u.PasswordHash = nil
	u.RefreshTokenHash = nil
	return u
}
