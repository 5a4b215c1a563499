package context

import (
	"context"

	"github.com/google/uuid"

	"github.com/dtroode/tasktracker-server/internal/model"
)

type contextKey string

// userIDKey is the context key the authenticated user ID is stored under.
const userIDKey contextKey = "user_id"

var _ model.ContextManager = (*Manager)(nil)

// Manager stores and retrieves the authenticated user ID in a request context.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetUserIDToContext returns a copy of ctx carrying userID.
func (m *Manager) SetUserIDToContext(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserIDFromContext returns the user ID stored in ctx, if any. A nil UUID
// is reported as absent.
func (m *Manager) GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(userIDKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, false
	}
	return userID, true
}
