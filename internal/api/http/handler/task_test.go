package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpctx "github.com/dtroode/tasktracker-server/internal/api/http/context"
	"github.com/dtroode/tasktracker-server/internal/model"
	"github.com/dtroode/tasktracker-server/internal/testutil"
)

type taskServiceStub struct {
	TaskService

	create func(uuid.UUID, model.CreateTaskParams) (model.Task, error)
	update func(model.UpdateTaskParams) (model.Task, error)
	list   func(uuid.UUID) ([]model.Task, error)
}

func (s taskServiceStub) Create(_ context.Context, caller uuid.UUID, p model.CreateTaskParams) (model.Task, error) {
	return s.create(caller, p)
}

func (s taskServiceStub) Update(_ context.Context, _, _, _ uuid.UUID, p model.UpdateTaskParams) (model.Task, error) {
	return s.update(p)
}

func (s taskServiceStub) List(_ context.Context, _, projectID uuid.UUID) ([]model.Task, error) {
	return s.list(projectID)
}

func TestTask_Create(t *testing.T) {
	t.Parallel()

	caller := uuid.New()
	projectID := uuid.New()
	assignee := uuid.New()

	tests := []struct {
		name       string
		body       string
		vars       map[string]string
		wantStatus int
		wantCalled bool
	}{
		{
			name: "project from path",
			body: `{"name":"t","description":"d","assignedTo":"` + assignee.String() +
				`","startTime":"2024-01-01T10:00:00Z","endTime":"2024-01-01T11:00:00Z"}`,
			vars:       map[string]string{"projectId": projectID.String()},
			wantStatus: http.StatusCreated,
			wantCalled: true,
		},
		{
			name: "matching body project",
			body: `{"name":"t","description":"d","assignedTo":"` + assignee.String() + `","project":"` + projectID.String() +
				`","startTime":"2024-01-01T10:00:00Z","endTime":"2024-01-01T11:00:00Z"}`,
			vars:       map[string]string{"projectId": projectID.String()},
			wantStatus: http.StatusCreated,
			wantCalled: true,
		},
		{
			name:       "mismatched body project",
			body:       `{"name":"t","project":"` + uuid.NewString() + `"}`,
			vars:       map[string]string{"projectId": projectID.String()},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid assignee",
			body:       `{"name":"t","assignedTo":"bob"}`,
			vars:       map[string]string{"projectId": projectID.String()},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid path id",
			body:       `{}`,
			vars:       map[string]string{"projectId": "abc"},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			called := false
			h := NewTask(taskServiceStub{
				create: func(c uuid.UUID, p model.CreateTaskParams) (model.Task, error) {
					called = true
					assert.Equal(t, caller, c)
					assert.Equal(t, projectID, p.ProjectID)
					assert.Equal(t, assignee, p.AssignedTo)
					return model.Task{
						ID:         uuid.New(),
						Name:       p.Name,
						ProjectID:  p.ProjectID,
						AssignedTo: p.AssignedTo,
						StartTime:  p.StartTime,
						EndTime:    p.EndTime,
					}, nil
				},
			}, httpctx.NewManager(), testBodyLimit, testutil.MakeNoopLogger())

			w := httptest.NewRecorder()
			h.Create(w, newRequest(http.MethodPost, tt.body, caller, tt.vars))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantCalled, called)
			if !tt.wantCalled {
				return
			}

			env := decodeEnvelope(t, w)
			var data taskResponse
			require.NoError(t, json.Unmarshal(env.Data, &data))
			assert.Equal(t, 1.0, data.Duration)
			assert.True(t, data.Completed)
			assert.Equal(t, projectID, data.Project)
		})
	}
}

func TestTask_ListComputesCompleted(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	projectID := uuid.New()

	h := NewTask(taskServiceStub{
		list: func(id uuid.UUID) ([]model.Task, error) {
			assert.Equal(t, projectID, id)
			return []model.Task{
				{ID: uuid.New(), StartTime: now.Add(-2 * time.Hour), EndTime: now.Add(-time.Hour)},
				{ID: uuid.New(), StartTime: now.Add(-time.Hour), EndTime: now},
				{ID: uuid.New(), StartTime: now, EndTime: now.Add(90 * time.Minute)},
			}, nil
		},
	}, httpctx.NewManager(), testBodyLimit, testutil.MakeNoopLogger())
	h.now = func() time.Time { return now }

	w := httptest.NewRecorder()
	h.List(w, newRequest(http.MethodGet, "", uuid.New(), map[string]string{"projectId": projectID.String()}))

	require.Equal(t, http.StatusOK, w.Code)

	var data []taskResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &data))
	require.Len(t, data, 3)
	assert.True(t, data[0].Completed)
	assert.False(t, data[1].Completed, "ending exactly now is not completed")
	assert.False(t, data[2].Completed)
	assert.Equal(t, 1.5, data[2].Duration)
}

func TestTask_UpdateParsesAssignee(t *testing.T) {
	t.Parallel()

	assignee := uuid.New()
	vars := map[string]string{"projectId": uuid.NewString(), "taskId": uuid.NewString()}

	h := NewTask(taskServiceStub{
		update: func(p model.UpdateTaskParams) (model.Task, error) {
			require.NotNil(t, p.AssignedTo)
			assert.Equal(t, assignee, *p.AssignedTo)
			assert.Nil(t, p.Name)
			return model.Task{AssignedTo: *p.AssignedTo}, nil
		},
	}, httpctx.NewManager(), testBodyLimit, testutil.MakeNoopLogger())

	w := httptest.NewRecorder()
	h.Update(w, newRequest(http.MethodPatch, `{"assignedTo":"`+assignee.String()+`"}`, uuid.New(), vars))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	h.Update(w, newRequest(http.MethodPatch, `{"assignedTo":"x"}`, uuid.New(), vars))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
