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

// Task implements task operations nested under a project.
type Task struct {
	userStore    model.UserStore
	projectStore model.ProjectStore
	taskStore    model.TaskStore
	links        *Links
	logger       *logger.Logger
}

func NewTask(
	userStore model.UserStore,
	projectStore model.ProjectStore,
	taskStore model.TaskStore,
	links *Links,
	logger *logger.Logger,
) *Task {
	return &Task{
		userStore:    userStore,
		projectStore: projectStore,
		taskStore:    taskStore,
		links:        links,
		logger:       logger,
	}
}

// Create validates every field before touching the stores, then checks the
// project, the assignee and the caller's membership in that order.
func (s *Task) Create(ctx context.Context, callerID uuid.UUID, params model.CreateTaskParams) (model.Task, error) {
	name := strings.TrimSpace(params.Name)
	description := strings.TrimSpace(params.Description)
	if name == "" || description == "" ||
		params.AssignedTo == uuid.Nil || params.ProjectID == uuid.Nil ||
		params.StartTime.IsZero() || params.EndTime.IsZero() {
		return model.Task{}, apperror.NewErrAllFieldsRequired()
	}
	if params.EndTime.Before(params.StartTime) {
		return model.Task{}, apperror.BadRequest("End time must not be before start time")
	}

	project, err := loadProject(ctx, s.projectStore, params.ProjectID)
	if err != nil {
		return model.Task{}, err
	}

	if err := s.ensureAssignee(ctx, params.AssignedTo); err != nil {
		return model.Task{}, err
	}

	if !isMember(callerID, project) {
		return model.Task{}, apperror.NewErrNotProjectMember("create tasks for this project")
	}

	now := time.Now().UTC()
	task, err := s.taskStore.Create(ctx, model.Task{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		AssignedTo:  params.AssignedTo,
		ProjectID:   project.ID,
		StartTime:   params.StartTime.UTC(),
		EndTime:     params.EndTime.UTC(),
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to create task: %w", err)
	}

	if err := s.links.AddTask(ctx, project.ID, task.ID); err != nil {
		s.logger.Error("Task service: failed to link task",
			"task_id", task.ID,
			"project_id", project.ID,
			"error", err.Error())
		return model.Task{}, err
	}

	s.logger.Info("Task service: task created",
		"task_id", task.ID,
		"project_id", project.ID,
		"user_id", callerID)

	return task, nil
}

func (s *Task) List(ctx context.Context, callerID, projectID uuid.UUID) ([]model.Task, error) {
	project, err := loadProject(ctx, s.projectStore, projectID)
	if err != nil {
		return nil, err
	}

	if !isMember(callerID, project) {
		return nil, apperror.NewErrNotProjectMember("view tasks for this project")
	}

	tasks, err := s.taskStore.ListByProject(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, nil
}

func (s *Task) Get(ctx context.Context, callerID, projectID, taskID uuid.UUID) (model.Task, error) {
	task, _, err := s.authorize(ctx, callerID, projectID, taskID, "view tasks for this project")
	return task, err
}

func (s *Task) Update(ctx context.Context, callerID, projectID, taskID uuid.UUID, params model.UpdateTaskParams) (model.Task, error) {
	task, _, err := s.authorize(ctx, callerID, projectID, taskID, "update this task")
	if err != nil {
		return model.Task{}, err
	}

	if params.AssignedTo != nil && *params.AssignedTo != task.AssignedTo {
		if err := s.ensureAssignee(ctx, *params.AssignedTo); err != nil {
			return model.Task{}, err
		}
		task.AssignedTo = *params.AssignedTo
	}
	if params.Name != nil && strings.TrimSpace(*params.Name) != "" {
		task.Name = strings.TrimSpace(*params.Name)
	}
	if params.Description != nil && strings.TrimSpace(*params.Description) != "" {
		task.Description = strings.TrimSpace(*params.Description)
	}
	if params.StartTime != nil {
		task.StartTime = params.StartTime.UTC()
	}
	if params.EndTime != nil {
		task.EndTime = params.EndTime.UTC()
	}
	if task.EndTime.Before(task.StartTime) {
		return model.Task{}, apperror.BadRequest("End time must not be before start time")
	}

	updated, err := s.taskStore.Update(ctx, task)
	if errors.Is(err, model.ErrNotFound) {
		return model.Task{}, apperror.NewErrTaskNotFound()
	}
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to update task: %w", err)
	}

	return updated, nil
}

// Delete removes the task and prunes it from the project's task list.
func (s *Task) Delete(ctx context.Context, callerID, projectID, taskID uuid.UUID) error {
	task, project, err := s.authorize(ctx, callerID, projectID, taskID, "delete this task")
	if err != nil {
		return err
	}

	err = s.taskStore.Delete(ctx, task.ID)
	if errors.Is(err, model.ErrNotFound) {
		return apperror.NewErrTaskNotFound()
	}
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	if err := s.links.RemoveTask(ctx, project.ID, task.ID); err != nil {
		return err
	}

	s.logger.Info("Task service: task deleted",
		"task_id", task.ID,
		"project_id", project.ID,
		"user_id", callerID)

	return nil
}

// authorize loads the task, resolves its project and checks membership.
// A task that belongs to a different project than projectID is reported
// as not found.
func (s *Task) authorize(ctx context.Context, callerID, projectID, taskID uuid.UUID, action string) (model.Task, model.Project, error) {
	task, err := s.taskStore.GetByID(ctx, taskID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Task{}, model.Project{}, apperror.NewErrTaskNotFound()
	}
	if err != nil {
		return model.Task{}, model.Project{}, fmt.Errorf("failed to get task: %w", err)
	}
	if task.ProjectID != projectID {
		return model.Task{}, model.Project{}, apperror.NewErrTaskNotFound()
	}

	project, err := s.projectStore.GetByID(ctx, task.ProjectID)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return model.Task{}, model.Project{}, fmt.Errorf("failed to get project: %w", err)
	}
	if err != nil || !isMember(callerID, project) {
		return model.Task{}, model.Project{}, apperror.NewErrNotProjectMember(action)
	}

	return task, project, nil
}

func (s *Task) ensureAssignee(ctx context.Context, userID uuid.UUID) error {
	_, err := s.userStore.GetByID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return apperror.NewErrAssigneeNotFound()
	}
	if err != nil {
		return fmt.Errorf("failed to get assignee: %w", err)
	}
	return nil
}
