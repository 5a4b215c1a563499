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

// Project implements project operations on behalf of an authenticated caller.
type Project struct {
	userStore    model.UserStore
	projectStore model.ProjectStore
	taskStore    model.TaskStore
	links        *Links
	logger       *logger.Logger
}

func NewProject(
	userStore model.UserStore,
	projectStore model.ProjectStore,
	taskStore model.TaskStore,
	links *Links,
	logger *logger.Logger,
) *Project {
	return &Project{
		userStore:    userStore,
		projectStore: projectStore,
		taskStore:    taskStore,
		links:        links,
		logger:       logger,
	}
}

func (s *Project) Create(ctx context.Context, callerID uuid.UUID, params model.CreateProjectParams) (model.Project, error) {
	name := strings.TrimSpace(params.Name)
	description := strings.TrimSpace(params.Description)
	if name == "" || description == "" {
		return model.Project{}, apperror.NewErrAllFieldsRequired()
	}

	if _, err := s.userStore.GetByID(ctx, callerID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Project{}, apperror.NewErrUserNotFound()
		}
		return model.Project{}, fmt.Errorf("failed to get user: %w", err)
	}

	now := time.Now().UTC()
	project, err := s.projectStore.Create(ctx, model.Project{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		Status:      model.ProjectStatusActive,
		MemberIDs:   []uuid.UUID{},
		TaskIDs:     []uuid.UUID{},
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to create project: %w", err)
	}

	if err := s.links.AddMember(ctx, project.ID, callerID); err != nil {
		s.logger.Error("Project service: failed to link creator",
			"project_id", project.ID,
			"user_id", callerID,
			"error", err.Error())
		return model.Project{}, err
	}
	project.MemberIDs = append(project.MemberIDs, callerID)

	s.logger.Info("Project service: project created",
		"project_id", project.ID,
		"user_id", callerID)

	return project, nil
}

// List returns every project the caller is a member of, each with its tasks
// resolved in task list order. Dangling task references are skipped.
func (s *Project) List(ctx context.Context, callerID uuid.UUID) ([]model.ProjectWithTasks, error) {
	projects, err := s.projectStore.ListByMember(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	out := make([]model.ProjectWithTasks, 0, len(projects))
	for _, p := range projects {
		tasks, err := s.taskStore.GetByIDs(ctx, p.TaskIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to get tasks of project %s: %w", p.ID, err)
		}
		out = append(out, model.ProjectWithTasks{Project: p, Tasks: tasks})
	}
	return out, nil
}

func (s *Project) Get(ctx context.Context, callerID, projectID uuid.UUID) (model.Project, error) {
	return s.authorize(ctx, callerID, projectID, "view this project")
}

// Update applies the given fields. Blank name or description values count as
// absent, so a project always keeps both.
func (s *Project) Update(ctx context.Context, callerID, projectID uuid.UUID, params model.UpdateProjectParams) (model.Project, error) {
	params.Name = nonBlank(params.Name)
	params.Description = nonBlank(params.Description)
	if params.Name == nil && params.Description == nil && params.Status == nil {
		return model.Project{}, apperror.BadRequest("At least one field is required for update")
	}
	if params.Status != nil && !model.ProjectStatus(*params.Status).Valid() {
		return model.Project{}, apperror.NewErrInvalidStatus()
	}

	project, err := s.authorize(ctx, callerID, projectID, "update this project")
	if err != nil {
		return model.Project{}, err
	}

	if params.Name != nil {
		project.Name = *params.Name
	}
	if params.Description != nil {
		project.Description = *params.Description
	}
	if params.Status != nil {
		project.Status = model.ProjectStatus(*params.Status)
	}

	return s.save(ctx, project)
}

func (s *Project) ChangeStatus(ctx context.Context, callerID, projectID uuid.UUID, status string) (model.Project, error) {
	if status == "" {
		return model.Project{}, apperror.BadRequest("Project ID and status are required")
	}
	if !model.ProjectStatus(status).Valid() {
		return model.Project{}, apperror.NewErrInvalidStatus()
	}

	project, err := s.authorize(ctx, callerID, projectID, "update this project status")
	if err != nil {
		return model.Project{}, err
	}

	project.Status = model.ProjectStatus(status)
	return s.save(ctx, project)
}

func (s *Project) Delete(ctx context.Context, callerID, projectID uuid.UUID) error {
	project, err := s.authorize(ctx, callerID, projectID, "delete this project")
	if err != nil {
		return err
	}

	if err := s.links.DeleteProject(ctx, project); err != nil {
		s.logger.Error("Project service: failed to delete project",
			"project_id", projectID,
			"error", err.Error())
		return err
	}

	return nil
}

// AddMember adds userID to the project. Adding an existing member is a no-op.
func (s *Project) AddMember(ctx context.Context, callerID, projectID, userID uuid.UUID) (model.Project, error) {
	project, err := s.authorize(ctx, callerID, projectID, "manage members of this project")
	if err != nil {
		return model.Project{}, err
	}

	if _, err := s.userStore.GetByID(ctx, userID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Project{}, apperror.NewErrUserNotFound()
		}
		return model.Project{}, fmt.Errorf("failed to get user: %w", err)
	}

	if err := s.links.AddMember(ctx, project.ID, userID); err != nil {
		return model.Project{}, err
	}

	return s.reload(ctx, project.ID)
}

// RemoveMember removes userID from the project. The last member cannot leave.
func (s *Project) RemoveMember(ctx context.Context, callerID, projectID, userID uuid.UUID) (model.Project, error) {
	project, err := s.authorize(ctx, callerID, projectID, "manage members of this project")
	if err != nil {
		return model.Project{}, err
	}

	if !isMember(userID, project) {
		return model.Project{}, apperror.NewErrUserNotFound()
	}
	if len(project.MemberIDs) == 1 {
		return model.Project{}, apperror.BadRequest("Project must keep at least one member")
	}

	if err := s.links.RemoveMember(ctx, project.ID, userID); err != nil {
		return model.Project{}, err
	}

	return s.reload(ctx, project.ID)
}

// authorize loads the project and checks that callerID is a member.
func (s *Project) authorize(ctx context.Context, callerID, projectID uuid.UUID, action string) (model.Project, error) {
	project, err := loadProject(ctx, s.projectStore, projectID)
	if err != nil {
		return model.Project{}, err
	}

	if !isMember(callerID, project) {
		s.logger.Info("Project service: access denied",
			"project_id", projectID,
			"user_id", callerID,
			"action", action)
		return model.Project{}, apperror.NewErrNotProjectMember(action)
	}

	return project, nil
}

func (s *Project) save(ctx context.Context, project model.Project) (model.Project, error) {
	updated, err := s.projectStore.Update(ctx, project)
	if errors.Is(err, model.ErrNotFound) {
		return model.Project{}, apperror.NewErrProjectNotFound()
	}
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to update project: %w", err)
	}
	return updated, nil
}

func (s *Project) reload(ctx context.Context, projectID uuid.UUID) (model.Project, error) {
	return loadProject(ctx, s.projectStore, projectID)
}

func loadProject(ctx context.Context, store model.ProjectStore, projectID uuid.UUID) (model.Project, error) {
	project, err := store.GetByID(ctx, projectID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Project{}, apperror.NewErrProjectNotFound()
	}
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to get project: %w", err)
	}
	return project, nil
}

// nonBlank returns the trimmed value, or nil when it is empty.
func nonBlank(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
