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
	"github.com/dtroode/tasktracker-server/internal/apperror"
	"github.com/dtroode/tasktracker-server/internal/model"
	"github.com/dtroode/tasktracker-server/internal/testutil"
)

type projectServiceStub struct {
	ProjectService

	addMember    func(projectID, userID uuid.UUID) (model.Project, error)
	changeStatus func(status string) (model.Project, error)
	update       func(model.UpdateProjectParams) (model.Project, error)
	list         func(callerID uuid.UUID) ([]model.ProjectWithTasks, error)
}

func (s projectServiceStub) List(_ context.Context, callerID uuid.UUID) ([]model.ProjectWithTasks, error) {
	return s.list(callerID)
}

func (s projectServiceStub) AddMember(_ context.Context, _, projectID, userID uuid.UUID) (model.Project, error) {
	return s.addMember(projectID, userID)
}

func (s projectServiceStub) ChangeStatus(_ context.Context, _, _ uuid.UUID, status string) (model.Project, error) {
	return s.changeStatus(status)
}

func (s projectServiceStub) Update(_ context.Context, _, _ uuid.UUID, p model.UpdateProjectParams) (model.Project, error) {
	return s.update(p)
}

func newProjectHandler(svc ProjectService) *Project {
	return NewProject(svc, httpctx.NewManager(), testBodyLimit, testutil.MakeNoopLogger())
}

func TestProject_AddMember(t *testing.T) {
	t.Parallel()

	projectID := uuid.New()
	member := uuid.New()
	vars := map[string]string{"projectId": projectID.String()}

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantMsg    string
	}{
		{name: "added", body: `{"userId":"` + member.String() + `"}`, wantStatus: http.StatusOK, wantMsg: "Member added successfully"},
		{name: "missing user id", body: `{}`, wantStatus: http.StatusBadRequest, wantMsg: "User ID is required"},
		{name: "invalid user id", body: `{"userId":"me"}`, wantStatus: http.StatusBadRequest, wantMsg: "Invalid userId"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := newProjectHandler(projectServiceStub{
				addMember: func(pID, uID uuid.UUID) (model.Project, error) {
					assert.Equal(t, projectID, pID)
					assert.Equal(t, member, uID)
					return model.Project{ID: pID, MemberIDs: []uuid.UUID{uuid.New(), uID}}, nil
				},
			})

			w := httptest.NewRecorder()
			h.AddMember(w, newRequest(http.MethodPost, tt.body, uuid.New(), vars))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantMsg, decodeEnvelope(t, w).Message)
		})
	}
}

func TestProject_ChangeStatusMessage(t *testing.T) {
	t.Parallel()

	h := newProjectHandler(projectServiceStub{
		changeStatus: func(status string) (model.Project, error) {
			if !model.ProjectStatus(status).Valid() {
				return model.Project{}, apperror.NewErrInvalidStatus()
			}
			return model.Project{ID: uuid.New(), Status: model.ProjectStatus(status)}, nil
		},
	})
	vars := map[string]string{"projectId": uuid.NewString()}

	w := httptest.NewRecorder()
	h.ChangeStatus(w, newRequest(http.MethodPatch, `{"status":"archived"}`, uuid.New(), vars))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Project status changed to archived", decodeEnvelope(t, w).Message)

	w = httptest.NewRecorder()
	h.ChangeStatus(w, newRequest(http.MethodPatch, `{"status":"paused"}`, uuid.New(), vars))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProject_UpdatePassesOnlyGivenFields(t *testing.T) {
	t.Parallel()

	h := newProjectHandler(projectServiceStub{
		update: func(p model.UpdateProjectParams) (model.Project, error) {
			require.NotNil(t, p.Name)
			assert.Equal(t, "renamed", *p.Name)
			assert.Nil(t, p.Description)
			assert.Nil(t, p.Status)
			return model.Project{ID: uuid.New(), Name: *p.Name, Status: model.ProjectStatusActive}, nil
		},
	})

	w := httptest.NewRecorder()
	h.Update(w, newRequest(http.MethodPatch, `{"name":"renamed"}`, uuid.New(), map[string]string{"projectId": uuid.NewString()}))
	require.Equal(t, http.StatusOK, w.Code)

	var data projectResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &data))
	assert.Equal(t, "renamed", data.Name)
	assert.Empty(t, data.Tasks)
	assert.NotNil(t, data.Tasks)
}

func TestProject_ListRendersTasks(t *testing.T) {
	t.Parallel()

	caller := uuid.New()
	projectID := uuid.New()
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	task := model.Task{
		ID:         uuid.New(),
		Name:       "design",
		AssignedTo: caller,
		ProjectID:  projectID,
		StartTime:  start,
		EndTime:    start.Add(90 * time.Minute),
	}

	h := newProjectHandler(projectServiceStub{
		list: func(id uuid.UUID) ([]model.ProjectWithTasks, error) {
			assert.Equal(t, caller, id)
			return []model.ProjectWithTasks{
				{
					Project: model.Project{ID: projectID, Name: "Apollo", MemberIDs: []uuid.UUID{caller}, TaskIDs: []uuid.UUID{task.ID}},
					Tasks:   []model.Task{task},
				},
				{Project: model.Project{ID: uuid.New(), Name: "Empty", MemberIDs: []uuid.UUID{caller}}},
			}, nil
		},
	})
	h.now = func() time.Time { return start.Add(2 * time.Hour) }

	w := httptest.NewRecorder()
	h.List(w, newRequest(http.MethodGet, "", caller, nil))
	require.Equal(t, http.StatusOK, w.Code)

	var data []struct {
		ID    uuid.UUID      `json:"id"`
		Name  string         `json:"name"`
		Tasks []taskResponse `json:"tasks"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &data))
	require.Len(t, data, 2)

	assert.Equal(t, projectID, data[0].ID)
	require.Len(t, data[0].Tasks, 1)
	assert.Equal(t, task.ID, data[0].Tasks[0].ID)
	assert.Equal(t, "design", data[0].Tasks[0].Name)
	assert.InDelta(t, 1.5, data[0].Tasks[0].Duration, 1e-9)
	assert.True(t, data[0].Tasks[0].Completed)

	assert.NotNil(t, data[1].Tasks)
	assert.Empty(t, data[1].Tasks)
}

func TestProject_ListError(t *testing.T) {
	t.Parallel()

	h := newProjectHandler(projectServiceStub{
		list: func(uuid.UUID) ([]model.ProjectWithTasks, error) {
			return nil, assert.AnError
		},
	})

	w := httptest.NewRecorder()
	h.List(w, newRequest(http.MethodGet, "", uuid.New(), nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
