package memory

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/tasktracker-server/internal/model"
)

var _ model.ProjectStore = (*ProjectRepository)(nil)

type projectRecord struct {
	model.Project
}

// ProjectRepository is the project view of a Store.
type ProjectRepository struct {
	s *Store
}

func cloneProject(p model.Project) model.Project {
	p.MemberIDs = cloneIDs(p.MemberIDs)
	p.TaskIDs = cloneIDs(p.TaskIDs)
	return p
}

func (r *ProjectRepository) Create(_ context.Context, project model.Project) (model.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.projects[project.ID]; ok {
		return model.Project{}, model.ErrConflict
	}

	project = cloneProject(project)
	r.s.projects[project.ID] = projectRecord{Project: project}
	r.s.projectOrder = append(r.s.projectOrder, project.ID)
	return cloneProject(project), nil
}

func (r *ProjectRepository) GetByID(_ context.Context, id uuid.UUID) (model.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rec, ok := r.s.projects[id]
	if !ok {
		return model.Project{}, model.ErrNotFound
	}
	return cloneProject(rec.Project), nil
}

func (r *ProjectRepository) GetByIDs(_ context.Context, ids []uuid.UUID) ([]model.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	projects := make([]model.Project, 0, len(ids))
	for _, id := range ids {
		if rec, ok := r.s.projects[id]; ok {
			projects = append(projects, cloneProject(rec.Project))
		}
	}
	return projects, nil
}

func (r *ProjectRepository) ListByMember(_ context.Context, userID uuid.UUID) ([]model.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	projects := []model.Project{}
	for _, id := range r.s.projectOrder {
		rec := r.s.projects[id]
		if slices.Contains(rec.MemberIDs, userID) {
			projects = append(projects, cloneProject(rec.Project))
		}
	}
	return projects, nil
}

func (r *ProjectRepository) Update(_ context.Context, project model.Project) (model.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.projects[project.ID]
	if !ok {
		return model.Project{}, model.ErrNotFound
	}

	rec.Name = project.Name
	rec.Description = project.Description
	rec.Status = project.Status
	rec.UpdatedAt = time.Now().UTC()
	r.s.projects[project.ID] = rec
	return cloneProject(rec.Project), nil
}

func (r *ProjectRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.projects[id]; !ok {
		return model.ErrNotFound
	}
	delete(r.s.projects, id)
	r.s.projectOrder = removeID(r.s.projectOrder, id)
	return nil
}

func (r *ProjectRepository) AddMember(_ context.Context, projectID, userID uuid.UUID) error {
	return r.mutate(projectID, func(p *model.Project) {
		p.MemberIDs = appendUnique(p.MemberIDs, userID)
	})
}

func (r *ProjectRepository) RemoveMember(_ context.Context, projectID, userID uuid.UUID) error {
	return r.mutate(projectID, func(p *model.Project) {
		p.MemberIDs = removeID(p.MemberIDs, userID)
	})
}

func (r *ProjectRepository) AddTask(_ context.Context, projectID, taskID uuid.UUID) error {
	return r.mutate(projectID, func(p *model.Project) {
		p.TaskIDs = append(p.TaskIDs, taskID)
	})
}

func (r *ProjectRepository) RemoveTask(_ context.Context, projectID, taskID uuid.UUID) error {
	return r.mutate(projectID, func(p *model.Project) {
		p.TaskIDs = removeID(p.TaskIDs, taskID)
	})
}

func (r *ProjectRepository) mutate(id uuid.UUID, fn func(*model.Project)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.projects[id]
	if !ok {
		return model.ErrNotFound
	}
	fn(&rec.Project)
	rec.UpdatedAt = time.Now().UTC()
	r.s.projects[id] = rec
	return nil
}
