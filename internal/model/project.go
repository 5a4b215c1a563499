package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ProjectStore defines persistence operations for projects.
//
// Member and task lists are mutated only through AddMember, RemoveMember,
// AddTask and RemoveTask so concurrent writers do not overwrite each other.
type ProjectStore interface {
	Create(ctx context.Context, project Project) (Project, error)
	GetByID(ctx context.Context, id uuid.UUID) (Project, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]Project, error)
	ListByMember(ctx context.Context, userID uuid.UUID) ([]Project, error)
	Update(ctx context.Context, project Project) (Project, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AddMember(ctx context.Context, projectID, userID uuid.UUID) error
	RemoveMember(ctx context.Context, projectID, userID uuid.UUID) error
	AddTask(ctx context.Context, projectID, taskID uuid.UUID) error
	RemoveTask(ctx context.Context, projectID, taskID uuid.UUID) error
}

// ProjectStatus enumerates project lifecycle states.
type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusArchived  ProjectStatus = "archived"
)

// Valid reports whether s is one of the known statuses.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusActive, ProjectStatusCompleted, ProjectStatusArchived:
		return true
	default:
		return false
	}
}

// Project is shared by all of its members. The creator is the first member.
type Project struct {
	ID          uuid.UUID
	Name        string
	Description string
	Status      ProjectStatus
	MemberIDs   []uuid.UUID
	TaskIDs     []uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProjectWithTasks is a project together with its resolved tasks.
type ProjectWithTasks struct {
	Project
	Tasks []Task
}

// CreateProjectParams contains parameters to create a project.
type CreateProjectParams struct {
	Name        string
	Description string
}

// UpdateProjectParams contains optional project fields. Nil means unchanged.
type UpdateProjectParams struct {
	Name        *string
	Description *string
	Status      *string
}
