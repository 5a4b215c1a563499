package service

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/tasktracker-server/internal/logger"
	"github.com/dtroode/tasktracker-server/internal/model"
)

// TokenService provides high-level operations for issuing, refreshing,
// and revoking tokens. A user has at most one active refresh token; its
// SHA-256 hash is kept on the user record and overwritten on every issue.
type TokenService struct {
	manager model.TokenManager
	store   model.UserStore
	logger  *logger.Logger
}

func NewTokenService(manager model.TokenManager, store model.UserStore, logger *logger.Logger) *TokenService {
	return &TokenService{manager: manager, store: store, logger: logger}
}

func (s *TokenService) Issue(ctx context.Context, userID uuid.UUID) (accessToken string, refreshToken string, err error) {
	access, err := s.manager.GenerateAccessToken(userID)
	if err != nil {
		return "", "", fmt.Errorf("issue access: %w", err)
	}

	refresh, err := s.manager.GenerateRefreshToken(userID)
	if err != nil {
		return "", "", fmt.Errorf("issue refresh: %w", err)
	}

	if err := s.store.SetRefreshTokenHash(ctx, userID, hashRefresh(refresh)); err != nil {
		return "", "", fmt.Errorf("persist refresh: %w", err)
	}

	return access, refresh, nil
}

// Refresh validates the presented refresh token against the stored one and
// rotates both tokens.
func (s *TokenService) Refresh(ctx context.Context, presentedRefresh string) (userID uuid.UUID, newAccess string, newRefresh string, err error) {
	userID, err = s.manager.ParseRefreshToken(presentedRefresh)
	if err != nil {
		return uuid.Nil, "", "", errors.Join(model.ErrTokenInvalid, err)
	}

	user, err := s.store.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return uuid.Nil, "", "", errors.Join(model.ErrTokenInvalid, err)
		}
		return uuid.Nil, "", "", fmt.Errorf("load refresh owner: %w", err)
	}

	if err := validateStored(user.RefreshTokenHash, hashRefresh(presentedRefresh)); err != nil {
		s.logger.Info("Token service: refresh token rejected",
			"user_id", userID,
			"error", err.Error())
		return uuid.Nil, "", "", err
	}

	access, refresh, err := s.Issue(ctx, userID)
	if err != nil {
		return uuid.Nil, "", "", err
	}

	return userID, access, refresh, nil
}

// Revoke clears the stored refresh token of userID. Unknown users are ignored.
func (s *TokenService) Revoke(ctx context.Context, userID uuid.UUID) error {
	err := s.store.SetRefreshTokenHash(ctx, userID, nil)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return fmt.Errorf("revoke refresh: %w", err)
	}
	return nil
}

func (s *TokenService) GetUserID(_ context.Context, token string) (uuid.UUID, error) {
	return s.manager.ParseAccessToken(token)
}

func hashRefresh(token string) []byte {
	h := sha256.Sum256([]byte(token))
	return h[:]
}

func validateStored(stored, presentedHash []byte) error {
	if len(stored) == 0 {
		return model.ErrTokenRevoked
	}
	if subtle.ConstantTimeCompare(stored, presentedHash) != 1 {
		return model.ErrTokenMismatch
	}
	return nil
}
