package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/tasktracker-server/internal/apperror"
	"github.com/dtroode/tasktracker-server/internal/export"
	"github.com/dtroode/tasktracker-server/internal/logger"
	"github.com/dtroode/tasktracker-server/internal/model"
)

const (
	summaryDateLayout    = "2006-01-02"
	summaryStampLayout   = "2006-01-02T15:04:05.000Z"
	unassignedLabel      = "Unassigned"
	noTasksLabel         = "No tasks"
	summaryArchivePrefix = "summaries"
)

// ProjectSnapshot is a project together with its resolved members and tasks.
type ProjectSnapshot struct {
	Project model.Project
	Members []model.User
	Tasks   []model.Task
}

// Artifact is a summary export backed by a temporary file. Close removes
// the file.
type Artifact struct {
	Filename string
	file     *os.File
}

func (a *Artifact) Read(p []byte) (int, error) {
	return a.file.Read(p)
}

func (a *Artifact) Close() error {
	name := a.file.Name()
	closeErr := a.file.Close()
	if err := os.Remove(name); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove export: %w", err)
	}
	return closeErr
}

// Summary builds CSV summaries of projects.
type Summary struct {
	userStore    model.UserStore
	projectStore model.ProjectStore
	taskStore    model.TaskStore
	storage      model.Storage
	tempDir      string
	logger       *logger.Logger
	now          func() time.Time
}

// NewSummary creates a Summary. storage may be nil, in which case exports
// are not archived.
func NewSummary(
	userStore model.UserStore,
	projectStore model.ProjectStore,
	taskStore model.TaskStore,
	storage model.Storage,
	tempDir string,
	logger *logger.Logger,
) *Summary {
	return &Summary{
		userStore:    userStore,
		projectStore: projectStore,
		taskStore:    taskStore,
		storage:      storage,
		tempDir:      tempDir,
		logger:       logger,
		now:          time.Now,
	}
}

// AllProjects exports every project the caller is a member of.
func (s *Summary) AllProjects(ctx context.Context, callerID uuid.UUID) (*Artifact, error) {
	if _, err := s.userStore.GetByID(ctx, callerID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, apperror.NewErrUserNotFound()
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	projects, err := s.projectStore.ListByMember(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	if len(projects) == 0 {
		return nil, apperror.NotFound("No projects found")
	}

	now := s.now().UTC()
	return s.export(ctx, callerID, projects, "all-projects-summary-"+stamp(now)+".csv", now)
}

// Project exports a single project the caller is a member of.
func (s *Summary) Project(ctx context.Context, callerID, projectID uuid.UUID) (*Artifact, error) {
	project, err := loadProject(ctx, s.projectStore, projectID)
	if err != nil {
		return nil, err
	}

	if !isMember(callerID, project) {
		return nil, apperror.NewErrNotProjectMember("access this project's summary")
	}

	now := s.now().UTC()
	filename := "project-summary-" + safeFilename(project.Name) + "-" + stamp(now) + ".csv"
	return s.export(ctx, callerID, []model.Project{project}, filename, now)
}

func (s *Summary) export(ctx context.Context, callerID uuid.UUID, projects []model.Project, filename string, now time.Time) (*Artifact, error) {
	snapshots, assignees, err := s.snapshot(ctx, projects)
	if err != nil {
		return nil, err
	}

	rows := BuildSummaryRows(snapshots, assignees, now)

	file, err := os.CreateTemp(s.tempDir, "summary-*.csv")
	if err != nil {
		return nil, fmt.Errorf("failed to create export file: %w", err)
	}
	artifact := &Artifact{Filename: filename, file: file}

	if err := export.WriteCSV(file, rows); err != nil {
		artifact.Close()
		return nil, fmt.Errorf("failed to write export: %w", err)
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		artifact.Close()
		return nil, fmt.Errorf("failed to rewind export: %w", err)
	}

	s.archive(ctx, callerID, artifact)

	s.logger.Info("Summary service: export ready",
		"user_id", callerID,
		"projects", len(projects),
		"rows", len(rows),
		"filename", filename)

	return artifact, nil
}

// archive uploads a copy of the export. Failures are logged and ignored.
func (s *Summary) archive(ctx context.Context, callerID uuid.UUID, artifact *Artifact) {
	if s.storage == nil {
		return
	}

	size := int64(-1)
	if info, err := artifact.file.Stat(); err == nil {
		size = info.Size()
	} else {
		s.logger.Warn("Summary service: failed to stat export, archiving as a stream",
			"error", err.Error())
	}

	key := path.Join(summaryArchivePrefix, callerID.String(), artifact.Filename)
	if err := s.storage.Upload(ctx, key, artifact.file, size); err != nil {
		s.logger.Warn("Summary service: failed to archive export",
			"key", key,
			"error", err.Error())
	}

	if _, err := artifact.file.Seek(0, io.SeekStart); err != nil {
		s.logger.Warn("Summary service: failed to rewind export after archive",
			"error", err.Error())
	}
}

func (s *Summary) snapshot(ctx context.Context, projects []model.Project) ([]ProjectSnapshot, map[uuid.UUID]model.User, error) {
	snapshots := make([]ProjectSnapshot, 0, len(projects))
	assigneeIDs := make([]uuid.UUID, 0)

	for _, p := range projects {
		members, err := s.userStore.GetByIDs(ctx, p.MemberIDs)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get project members: %w", err)
		}

		tasks, err := s.taskStore.GetByIDs(ctx, p.TaskIDs)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get project tasks: %w", err)
		}

		for _, t := range tasks {
			assigneeIDs = append(assigneeIDs, t.AssignedTo)
		}

		snapshots = append(snapshots, ProjectSnapshot{Project: p, Members: members, Tasks: tasks})
	}

	users, err := s.userStore.GetByIDs(ctx, assigneeIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get assignees: %w", err)
	}

	assignees := make(map[uuid.UUID]model.User, len(users))
	for _, u := range users {
		assignees[u.ID] = u
	}

	return snapshots, assignees, nil
}

// BuildSummaryRows flattens snapshots into export rows. A project without
// tasks yields one placeholder row; otherwise there is one row per task and
// Total Hours is the running sum of durations within the project.
func BuildSummaryRows(snapshots []ProjectSnapshot, assignees map[uuid.UUID]model.User, now time.Time) []model.SummaryRow {
	rows := make([]model.SummaryRow, 0, len(snapshots))

	for _, snap := range snapshots {
		p := snap.Project

		names := make([]string, 0, len(snap.Members))
		for _, m := range snap.Members {
			names = append(names, m.FullName)
		}

		base := model.SummaryRow{
			ProjectName:        p.Name,
			ProjectDescription: p.Description,
			ProjectStatus:      string(p.Status),
			ProjectCreatedAt:   p.CreatedAt.UTC().Format(summaryDateLayout),
			ProjectUsers:       strings.Join(names, ", "),
		}

		if len(snap.Tasks) == 0 {
			row := base
			row.TotalTasks = "0"
			row.CompletedTasks = "0"
			row.TotalHours = "0"
			row.TaskName = noTasksLabel
			rows = append(rows, row)
			continue
		}

		completed := 0
		for _, t := range snap.Tasks {
			if t.Completed(now) {
				completed++
			}
		}

		var total float64
		for _, t := range snap.Tasks {
			duration := t.Duration()
			total += duration

			assignee := unassignedLabel
			if u, ok := assignees[t.AssignedTo]; ok && u.FullName != "" {
				assignee = u.FullName
			}

			row := base
			row.TotalTasks = strconv.Itoa(len(snap.Tasks))
			row.CompletedTasks = strconv.Itoa(completed)
			row.TotalHours = strconv.FormatFloat(total, 'f', 2, 64)
			row.TaskName = t.Name
			row.TaskDescription = t.Description
			row.TaskAssignedTo = assignee
			row.TaskStartTime = t.StartTime.UTC().Format(summaryDateLayout)
			row.TaskEndTime = t.EndTime.UTC().Format(summaryDateLayout)
			row.TaskDuration = strconv.FormatFloat(duration, 'f', 2, 64)
			rows = append(rows, row)
		}
	}

	return rows
}

func stamp(t time.Time) string {
	return strings.ReplaceAll(t.UTC().Format(summaryStampLayout), ":", "-")
}

// safeFilename keeps a project name usable inside a Content-Disposition
// filename.
func safeFilename(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || r == '"' || r == ':':
			return '-'
		case r < 0x20 || r == 0x7f:
			return -1
		default:
			return r
		}
	}, name)
}
