package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/tasktracker-server/internal/apperror"
	"github.com/dtroode/tasktracker-server/internal/hasher"
	"github.com/dtroode/tasktracker-server/internal/model"
	"github.com/dtroode/tasktracker-server/internal/repository/memory"
	"github.com/dtroode/tasktracker-server/internal/testutil"
	"github.com/dtroode/tasktracker-server/internal/token"
)

// env wires every service over one in-memory store.
type env struct {
	store    *memory.Store
	links    *Links
	tokens   *TokenService
	auth     *Auth
	projects *Project
	tasks    *Task
	summary  *Summary
}

func newEnv(t *testing.T) *env {
	t.Helper()

	log := testutil.MakeNoopLogger()
	store := memory.New()

	jwt := token.NewJWT(token.Options{
		AccessSecret:  "access-secret",
		AccessTTL:     time.Hour,
		RefreshSecret: "refresh-secret",
		RefreshTTL:    24 * time.Hour,
	})

	links := NewLinks(store.Users(), store.Projects(), store.Tasks(), log)
	tokens := NewTokenService(jwt, store.Users(), log)

	return &env{
		store:    store,
		links:    links,
		tokens:   tokens,
		auth:     NewAuth(store.Users(), store.Projects(), hasher.NewBcrypt(bcrypt.MinCost), tokens, links, log),
		projects: NewProject(store.Users(), store.Projects(), store.Tasks(), links, log),
		tasks:    NewTask(store.Users(), store.Projects(), store.Tasks(), links, log),
		summary:  NewSummary(store.Users(), store.Projects(), store.Tasks(), nil, t.TempDir(), log),
	}
}

func (e *env) register(t *testing.T, username string) model.User {
	t.Helper()

	u, err := e.auth.Register(context.Background(), model.RegisterParams{
		FullName: "User " + username,
		Email:    username + "@example.com",
		Username: username,
		Password: "secret-" + username,
	})
	require.NoError(t, err)
	return u
}

func (e *env) createProject(t *testing.T, callerID uuid.UUID, name string) model.Project {
	t.Helper()

	p, err := e.projects.Create(context.Background(), callerID, model.CreateProjectParams{
		Name:        name,
		Description: name + " description",
	})
	require.NoError(t, err)
	return p
}

func (e *env) createTask(t *testing.T, callerID, projectID, assignee uuid.UUID, name string, start, end time.Time) model.Task {
	t.Helper()

	task, err := e.tasks.Create(context.Background(), callerID, model.CreateTaskParams{
		Name:        name,
		Description: name + " description",
		AssignedTo:  assignee,
		ProjectID:   projectID,
		StartTime:   start,
		EndTime:     end,
	})
	require.NoError(t, err)
	return task
}

func requireStatus(t *testing.T, err error, status int) {
	t.Helper()

	var apiErr *apperror.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, status, apiErr.StatusCode, apiErr.Message)
}
