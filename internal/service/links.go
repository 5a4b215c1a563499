package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/tasktracker-server/internal/logger"
	"github.com/dtroode/tasktracker-server/internal/model"
)

// Links keeps the cross references between users, projects and tasks
// consistent. Every relationship change goes through one of its methods.
//
// Steps are not transactional; a failure leaves the steps already
// applied in place and is returned to the caller.
type Links struct {
	users    model.UserStore
	projects model.ProjectStore
	tasks    model.TaskStore
	logger   *logger.Logger
}

func NewLinks(users model.UserStore, projects model.ProjectStore, tasks model.TaskStore, logger *logger.Logger) *Links {
	return &Links{users: users, projects: projects, tasks: tasks, logger: logger}
}

// AddMember records membership on both the project and the user.
func (l *Links) AddMember(ctx context.Context, projectID, userID uuid.UUID) error {
	if err := l.projects.AddMember(ctx, projectID, userID); err != nil {
		return fmt.Errorf("failed to add project member: %w", err)
	}
	if err := l.users.AddProject(ctx, userID, projectID); err != nil {
		return fmt.Errorf("failed to add user project: %w", err)
	}
	return nil
}

// RemoveMember drops membership from both sides. A user that no longer
// exists is ignored on the user side.
func (l *Links) RemoveMember(ctx context.Context, projectID, userID uuid.UUID) error {
	if err := l.projects.RemoveMember(ctx, projectID, userID); err != nil {
		return fmt.Errorf("failed to remove project member: %w", err)
	}
	err := l.users.RemoveProject(ctx, userID, projectID)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return fmt.Errorf("failed to remove user project: %w", err)
	}
	return nil
}

func (l *Links) AddTask(ctx context.Context, projectID, taskID uuid.UUID) error {
	if err := l.projects.AddTask(ctx, projectID, taskID); err != nil {
		return fmt.Errorf("failed to add project task: %w", err)
	}
	return nil
}

func (l *Links) RemoveTask(ctx context.Context, projectID, taskID uuid.UUID) error {
	err := l.projects.RemoveTask(ctx, projectID, taskID)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return fmt.Errorf("failed to remove project task: %w", err)
	}
	return nil
}

// DeleteProject detaches the project from every member, deletes its tasks
// and then the project itself.
func (l *Links) DeleteProject(ctx context.Context, project model.Project) error {
	for _, memberID := range project.MemberIDs {
		err := l.users.RemoveProject(ctx, memberID, project.ID)
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			return fmt.Errorf("failed to detach member %s: %w", memberID, err)
		}
	}

	if err := l.tasks.DeleteByProject(ctx, project.ID); err != nil {
		return fmt.Errorf("failed to delete project tasks: %w", err)
	}

	if err := l.projects.Delete(ctx, project.ID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	l.logger.Info("Links: project deleted",
		"project_id", project.ID,
		"members", len(project.MemberIDs))

	return nil
}

// DeleteUser deletes the tasks assigned to the user, removes the user from
// every project membership and deletes the user. Project task lists keep
// the identifiers of the deleted tasks.
func (l *Links) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	if err := l.tasks.DeleteByAssignee(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete assigned tasks: %w", err)
	}

	projects, err := l.projects.ListByMember(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to list user projects: %w", err)
	}

	for _, p := range projects {
		err := l.projects.RemoveMember(ctx, p.ID, userID)
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			return fmt.Errorf("failed to remove member from project %s: %w", p.ID, err)
		}
	}

	if err := l.users.Delete(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	l.logger.Info("Links: user deleted",
		"user_id", userID,
		"projects", len(projects))

	return nil
}
