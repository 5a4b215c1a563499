package model

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
)

// TaskStore defines persistence operations for tasks.
type TaskStore interface {
	Create(ctx context.Context, task Task) (Task, error)
	GetByID(ctx context.Context, id uuid.UUID) (Task, error)
	// GetByIDs returns the tasks in the order of ids, skipping unknown ones.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]Task, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]Task, error)
	Update(ctx context.Context, task Task) (Task, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByAssignee(ctx context.Context, userID uuid.UUID) error
	DeleteByProject(ctx context.Context, projectID uuid.UUID) error
}

// Task belongs to exactly one project and is assigned to exactly one user.
type Task struct {
	ID          uuid.UUID
	Name        string
	Description string
	AssignedTo  uuid.UUID
	ProjectID   uuid.UUID
	StartTime   time.Time
	EndTime     time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Duration returns EndTime - StartTime in hours, rounded to two decimals.
func (t Task) Duration() float64 {
	return RoundHours(t.EndTime.Sub(t.StartTime).Hours())
}

// Completed reports whether the task ended strictly before now.
func (t Task) Completed(now time.Time) bool {
	return t.EndTime.Before(now)
}

// RoundHours rounds h to two decimal places.
func RoundHours(h float64) float64 {
	return math.Round(h*100) / 100
}

// CreateTaskParams contains parameters to create a task.
type CreateTaskParams struct {
	Name        string
	Description string
	AssignedTo  uuid.UUID
	ProjectID   uuid.UUID
	StartTime   time.Time
	EndTime     time.Time
}

// UpdateTaskParams contains optional task fields. Nil means unchanged.
type UpdateTaskParams struct {
	Name        *string
	Description *string
	AssignedTo  *uuid.UUID
	StartTime   *time.Time
	EndTime     *time.Time
}
