package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/tasktracker-server/internal/model"
)

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	users := New().Users()

	alice := model.User{ID: uuid.New(), Username: "alice", Email: "alice@example.com", FullName: "Alice"}
	_, err := users.Create(ctx, alice)
	require.NoError(t, err)

	_, err = users.Create(ctx, model.User{ID: uuid.New(), Username: "alice", Email: "other@example.com"})
	require.ErrorIs(t, err, model.ErrConflict)

	got, err := users.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)
	assert.NotNil(t, got.ProjectIDs)

	_, err = users.GetByUsername(ctx, "nobody")
	require.ErrorIs(t, err, model.ErrNotFound)

	projectID := uuid.New()
	require.NoError(t, users.AddProject(ctx, alice.ID, projectID))
	require.NoError(t, users.AddProject(ctx, alice.ID, projectID))
	got, err = users.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{projectID}, got.ProjectIDs)

	// returned values are copies
	got.ProjectIDs[0] = uuid.Nil
	again, err := users.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, projectID, again.ProjectIDs[0])

	require.NoError(t, users.RemoveProject(ctx, alice.ID, projectID))
	require.NoError(t, users.SetRefreshTokenHash(ctx, alice.ID, []byte("h")))
	got, err = users.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, got.ProjectIDs)
	assert.Equal(t, []byte("h"), got.RefreshTokenHash)

	bob := model.User{ID: uuid.New(), Username: "bob", Email: "bob@example.com"}
	_, err = users.Create(ctx, bob)
	require.NoError(t, err)

	got.Email = "bob@example.com"
	_, err = users.Update(ctx, got)
	require.ErrorIs(t, err, model.ErrConflict)

	list, err := users.GetByIDs(ctx, []uuid.UUID{bob.ID, uuid.New(), alice.ID})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, bob.ID, list[0].ID)
	assert.Equal(t, alice.ID, list[1].ID)

	require.NoError(t, users.Delete(ctx, bob.ID))
	require.ErrorIs(t, users.Delete(ctx, bob.ID), model.ErrNotFound)
	require.ErrorIs(t, users.AddProject(ctx, bob.ID, projectID), model.ErrNotFound)
}

func TestProjectRepository(t *testing.T) {
	ctx := context.Background()
	projects := New().Projects()
	member := uuid.New()

	first := model.Project{ID: uuid.New(), Name: "first", Status: model.ProjectStatusActive}
	second := model.Project{ID: uuid.New(), Name: "second", Status: model.ProjectStatusActive}
	_, err := projects.Create(ctx, first)
	require.NoError(t, err)
	_, err = projects.Create(ctx, second)
	require.NoError(t, err)

	require.NoError(t, projects.AddMember(ctx, second.ID, member))
	require.NoError(t, projects.AddMember(ctx, first.ID, member))
	require.NoError(t, projects.AddMember(ctx, first.ID, member))

	listed, err := projects.ListByMember(ctx, member)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "first", listed[0].Name)
	assert.Equal(t, []uuid.UUID{member}, listed[0].MemberIDs)

	taskID := uuid.New()
	require.NoError(t, projects.AddTask(ctx, first.ID, taskID))
	first.Status = model.ProjectStatusArchived
	updated, err := projects.Update(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, model.ProjectStatusArchived, updated.Status)
	assert.Equal(t, []uuid.UUID{taskID}, updated.TaskIDs)

	require.NoError(t, projects.RemoveTask(ctx, first.ID, taskID))
	require.NoError(t, projects.RemoveMember(ctx, first.ID, member))
	got, err := projects.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Empty(t, got.TaskIDs)
	assert.Empty(t, got.MemberIDs)

	require.NoError(t, projects.Delete(ctx, first.ID))
	_, err = projects.GetByID(ctx, first.ID)
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestTaskRepository(t *testing.T) {
	ctx := context.Background()
	tasks := New().Tasks()
	projectID, user := uuid.New(), uuid.New()
	now := time.Now()

	t1 := model.Task{ID: uuid.New(), Name: "t1", ProjectID: projectID, AssignedTo: user, StartTime: now, EndTime: now.Add(time.Hour)}
	t2 := model.Task{ID: uuid.New(), Name: "t2", ProjectID: projectID, AssignedTo: uuid.New(), StartTime: now, EndTime: now.Add(time.Hour)}
	t3 := model.Task{ID: uuid.New(), Name: "t3", ProjectID: uuid.New(), AssignedTo: user, StartTime: now, EndTime: now.Add(time.Hour)}
	for _, task := range []model.Task{t1, t2, t3} {
		_, err := tasks.Create(ctx, task)
		require.NoError(t, err)
	}

	byProject, err := tasks.ListByProject(ctx, projectID)
	require.NoError(t, err)
	require.Len(t, byProject, 2)
	assert.Equal(t, "t1", byProject[0].Name)
	assert.Equal(t, "t2", byProject[1].Name)

	byIDs, err := tasks.GetByIDs(ctx, []uuid.UUID{t2.ID, uuid.New(), t1.ID})
	require.NoError(t, err)
	require.Len(t, byIDs, 2)
	assert.Equal(t, "t2", byIDs[0].Name)

	require.NoError(t, tasks.DeleteByAssignee(ctx, user))
	_, err = tasks.GetByID(ctx, t1.ID)
	require.ErrorIs(t, err, model.ErrNotFound)
	_, err = tasks.GetByID(ctx, t3.ID)
	require.ErrorIs(t, err, model.ErrNotFound)

	require.NoError(t, tasks.DeleteByProject(ctx, projectID))
	_, err = tasks.GetByID(ctx, t2.ID)
	require.ErrorIs(t, err, model.ErrNotFound)
	require.ErrorIs(t, tasks.Delete(ctx, t2.ID), model.ErrNotFound)
}

func TestProjectRepository_ConcurrentAddTask(t *testing.T) {
	ctx := context.Background()
	projects := New().Projects()
	p := model.Project{ID: uuid.New(), Name: "busy"}
	_, err := projects.Create(ctx, p)
	require.NoError(t, err)

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, projects.AddTask(ctx, p.ID, uuid.New()))
		}()
	}
	wg.Wait()

	got, err := projects.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, got.TaskIDs, n)
}
