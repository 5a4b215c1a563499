package handler

import (
	"context"
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpctx "github.com/dtroode/tasktracker-server/internal/api/http/context"
	"github.com/dtroode/tasktracker-server/internal/model"
	"github.com/dtroode/tasktracker-server/internal/repository/memory"
	"github.com/dtroode/tasktracker-server/internal/service"
	"github.com/dtroode/tasktracker-server/internal/testutil"
)

type exportRecorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *exportRecorder) RecordExport(scope string, success bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := "error"
	if success {
		result = "ok"
	}
	r.calls = append(r.calls, scope+":"+result)
}

type summaryFixture struct {
	handler   *Summary
	recorder  *exportRecorder
	tempDir   string
	owner     uuid.UUID
	outsider  uuid.UUID
	projectID uuid.UUID
}

func newSummaryFixture(t *testing.T) summaryFixture {
	t.Helper()

	ctx := context.Background()
	store := memory.New()
	now := time.Now().UTC()

	owner := model.User{ID: uuid.New(), Username: "owner", Email: "owner@example.com", FullName: "Owner", CreatedAt: now, UpdatedAt: now}
	outsider := model.User{ID: uuid.New(), Username: "out", Email: "out@example.com", FullName: "Out", CreatedAt: now, UpdatedAt: now}
	project := model.Project{
		ID:          uuid.New(),
		Name:        "Apollo",
		Description: "moon",
		Status:      model.ProjectStatusActive,
		MemberIDs:   []uuid.UUID{owner.ID},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	task := model.Task{
		ID:          uuid.New(),
		Name:        "launch",
		Description: "go",
		AssignedTo:  owner.ID,
		ProjectID:   project.ID,
		StartTime:   now.Add(-3 * time.Hour),
		EndTime:     now.Add(-time.Hour),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	project.TaskIDs = []uuid.UUID{task.ID}
	owner.ProjectIDs = []uuid.UUID{project.ID}

	_, err := store.Users().Create(ctx, owner)
	require.NoError(t, err)
	_, err = store.Users().Create(ctx, outsider)
	require.NoError(t, err)
	_, err = store.Projects().Create(ctx, project)
	require.NoError(t, err)
	_, err = store.Tasks().Create(ctx, task)
	require.NoError(t, err)

	tempDir := t.TempDir()
	logger := testutil.MakeNoopLogger()
	svc := service.NewSummary(store.Users(), store.Projects(), store.Tasks(), nil, tempDir, logger)
	recorder := &exportRecorder{}

	return summaryFixture{
		handler:   NewSummary(svc, httpctx.NewManager(), recorder, logger),
		recorder:  recorder,
		tempDir:   tempDir,
		owner:     owner.ID,
		outsider:  outsider.ID,
		projectID: project.ID,
	}
}

func TestSummary_ProjectStreamsCSV(t *testing.T) {
	t.Parallel()

	f := newSummaryFixture(t)

	w := httptest.NewRecorder()
	f.handler.Project(w, newRequest(http.MethodGet, "", f.owner, map[string]string{"projectId": f.projectID.String()}))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), `attachment; filename="project-summary-Apollo-`)
	assert.Contains(t, w.Header().Get("Content-Disposition"), `filename*=UTF-8''project-summary-Apollo-`)

	records, err := csv.NewReader(w.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Project Name", records[0][0])
	assert.Equal(t, "Apollo", records[1][0])

	entries, err := os.ReadDir(f.tempDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "artifact must be removed after streaming")

	assert.Equal(t, []string{"project:ok"}, f.recorder.calls)
}

func TestSummary_ProjectForbidden(t *testing.T) {
	t.Parallel()

	f := newSummaryFixture(t)

	w := httptest.NewRecorder()
	f.handler.Project(w, newRequest(http.MethodGet, "", f.outsider, map[string]string{"projectId": f.projectID.String()}))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, []string{"project:error"}, f.recorder.calls)
}

func TestSummary_AllProjects(t *testing.T) {
	t.Parallel()

	f := newSummaryFixture(t)

	w := httptest.NewRecorder()
	f.handler.AllProjects(w, newRequest(http.MethodGet, "", f.owner, nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "all-projects-summary-")

	w = httptest.NewRecorder()
	f.handler.AllProjects(w, newRequest(http.MethodGet, "", f.outsider, nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "No projects found", decodeEnvelope(t, w).Message)

	assert.Equal(t, []string{"all:ok", "all:error"}, f.recorder.calls)
}

func TestContentDisposition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		filename string
		want     string
	}{
		{
			name:     "ascii",
			filename: "report.csv",
			want:     `attachment; filename="report.csv"; filename*=UTF-8''report.csv`,
		},
		{
			name:     "cyrillic",
			filename: "Проект.csv",
			want:     `attachment; filename="______.csv"; filename*=UTF-8''%D0%9F%D1%80%D0%BE%D0%B5%D0%BA%D1%82.csv`,
		},
		{
			name:     "quotes and spaces",
			filename: `a "b"\c.csv`,
			want:     `attachment; filename="a _b__c.csv"; filename*=UTF-8''a%20%22b%22%5Cc.csv`,
		},
		{
			name:     "control characters",
			filename: "a\r\nb.csv",
			want:     `attachment; filename="a__b.csv"; filename*=UTF-8''a%0D%0Ab.csv`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, contentDisposition(tt.filename))
		})
	}
}
