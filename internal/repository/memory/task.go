package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/tasktracker-server/internal/model"
)

var _ model.TaskStore = (*TaskRepository)(nil)

type taskRecord struct {
	model.Task
}

// TaskRepository is the task view of a Store.
type TaskRepository struct {
	s *Store
}

func (r *TaskRepository) Create(_ context.Context, task model.Task) (model.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.tasks[task.ID]; ok {
		return model.Task{}, model.ErrConflict
	}

	r.s.tasks[task.ID] = taskRecord{Task: task}
	r.s.taskOrder = append(r.s.taskOrder, task.ID)
	return task, nil
}

func (r *TaskRepository) GetByID(_ context.Context, id uuid.UUID) (model.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rec, ok := r.s.tasks[id]
	if !ok {
		return model.Task{}, model.ErrNotFound
	}
	return rec.Task, nil
}

func (r *TaskRepository) GetByIDs(_ context.Context, ids []uuid.UUID) ([]model.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	tasks := make([]model.Task, 0, len(ids))
	for _, id := range ids {
		if rec, ok := r.s.tasks[id]; ok {
			tasks = append(tasks, rec.Task)
		}
	}
	return tasks, nil
}

func (r *TaskRepository) ListByProject(_ context.Context, projectID uuid.UUID) ([]model.Task, error) {
	return r.filter(func(t model.Task) bool { return t.ProjectID == projectID }), nil
}

func (r *TaskRepository) Update(_ context.Context, task model.Task) (model.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.tasks[task.ID]
	if !ok {
		return model.Task{}, model.ErrNotFound
	}

	rec.Name = task.Name
	rec.Description = task.Description
	rec.AssignedTo = task.AssignedTo
	rec.StartTime = task.StartTime
	rec.EndTime = task.EndTime
	rec.UpdatedAt = time.Now().UTC()
	r.s.tasks[task.ID] = rec
	return rec.Task, nil
}

func (r *TaskRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.tasks[id]; !ok {
		return model.ErrNotFound
	}
	r.deleteLocked(id)
	return nil
}

func (r *TaskRepository) DeleteByAssignee(_ context.Context, userID uuid.UUID) error {
	r.deleteWhere(func(t model.Task) bool { return t.AssignedTo == userID })
	return nil
}

func (r *TaskRepository) DeleteByProject(_ context.Context, projectID uuid.UUID) error {
	r.deleteWhere(func(t model.Task) bool { return t.ProjectID == projectID })
	return nil
}

func (r *TaskRepository) filter(match func(model.Task) bool) []model.Task {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	tasks := []model.Task{}
	for _, id := range r.s.taskOrder {
		if rec := r.s.tasks[id]; match(rec.Task) {
			tasks = append(tasks, rec.Task)
		}
	}
	return tasks
}

func (r *TaskRepository) deleteWhere(match func(model.Task) bool) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, rec := range r.s.tasks {
		if match(rec.Task) {
			r.deleteLocked(id)
		}
	}
}

func (r *TaskRepository) deleteLocked(id uuid.UUID) {
	delete(r.s.tasks, id)
	r.s.taskOrder = removeID(r.s.taskOrder, id)
}
