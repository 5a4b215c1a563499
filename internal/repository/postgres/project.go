package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/tasktracker-server/internal/model"
)

var _ model.ProjectStore = (*ProjectRepository)(nil)

const projectColumns = `id, name, description, status, member_ids, task_ids, created_at, updated_at`

type ProjectRepository struct {
	db *Connection
}

func NewProjectRepository(db *Connection) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func scanProject(row rowScanner) (model.Project, error) {
	var p model.Project
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Status, &p.MemberIDs, &p.TaskIDs, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return model.Project{}, err
	}
	if p.MemberIDs == nil {
		p.MemberIDs = []uuid.UUID{}
	}
	if p.TaskIDs == nil {
		p.TaskIDs = []uuid.UUID{}
	}
	return p, nil
}

func (r *ProjectRepository) Create(ctx context.Context, project model.Project) (model.Project, error) {
	query := `INSERT INTO projects (id, name, description, status, member_ids, task_ids, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING ` + projectColumns

	members, tasks := project.MemberIDs, project.TaskIDs
	if members == nil {
		members = []uuid.UUID{}
	}
	if tasks == nil {
		tasks = []uuid.UUID{}
	}

	saved, err := scanProject(r.db.QueryRow(ctx, query,
		project.ID, project.Name, project.Description, project.Status, members, tasks,
		project.CreatedAt, project.UpdatedAt,
	))
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to create project: %w", err)
	}

	return saved, nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`

	p, err := scanProject(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Project{}, model.ErrNotFound
		}
		return model.Project{}, fmt.Errorf("failed to get project by id: %w", err)
	}

	return p, nil
}

func (r *ProjectRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Project, error) {
	query := `SELECT p.id, p.name, p.description, p.status, p.member_ids, p.task_ids, p.created_at, p.updated_at
			  FROM unnest($1::uuid[]) WITH ORDINALITY AS ids(id, ord)
			  JOIN projects p ON p.id = ids.id
			  ORDER BY ids.ord`

	return r.list(ctx, "get projects by ids", query, ids)
}

func (r *ProjectRepository) ListByMember(ctx context.Context, userID uuid.UUID) ([]model.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE $1::uuid = ANY(member_ids) ORDER BY created_at`

	return r.list(ctx, "list projects by member", query, userID)
}

func (r *ProjectRepository) list(ctx context.Context, op, query string, args ...any) ([]model.Project, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to %s: %w", op, err)
	}
	defer rows.Close()

	projects := []model.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to %s: %w", op, err)
	}

	return projects, nil
}

// Update persists name, description and status. Member and task lists are left untouched.
func (r *ProjectRepository) Update(ctx context.Context, project model.Project) (model.Project, error) {
	query := `UPDATE projects SET name = $2, description = $3, status = $4, updated_at = NOW()
			  WHERE id = $1
			  RETURNING ` + projectColumns

	saved, err := scanProject(r.db.QueryRow(ctx, query, project.ID, project.Name, project.Description, project.Status))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Project{}, model.ErrNotFound
		}
		return model.Project{}, fmt.Errorf("failed to update project: %w", err)
	}

	return saved, nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.exec(ctx, "delete project", `DELETE FROM projects WHERE id = $1`, id)
}

func (r *ProjectRepository) AddMember(ctx context.Context, projectID, userID uuid.UUID) error {
	query := `UPDATE projects
			  SET member_ids = CASE WHEN $2::uuid = ANY(member_ids) THEN member_ids ELSE array_append(member_ids, $2::uuid) END,
			      updated_at = NOW()
			  WHERE id = $1`
	return r.exec(ctx, "add project member", query, projectID, userID)
}

func (r *ProjectRepository) RemoveMember(ctx context.Context, projectID, userID uuid.UUID) error {
	query := `UPDATE projects SET member_ids = array_remove(member_ids, $2::uuid), updated_at = NOW() WHERE id = $1`
	return r.exec(ctx, "remove project member", query, projectID, userID)
}

func (r *ProjectRepository) AddTask(ctx context.Context, projectID, taskID uuid.UUID) error {
	query := `UPDATE projects SET task_ids = array_append(task_ids, $2::uuid), updated_at = NOW() WHERE id = $1`
	return r.exec(ctx, "add project task", query, projectID, taskID)
}

func (r *ProjectRepository) RemoveTask(ctx context.Context, projectID, taskID uuid.UUID) error {
	query := `UPDATE projects SET task_ids = array_remove(task_ids, $2::uuid), updated_at = NOW() WHERE id = $1`
	return r.exec(ctx, "remove project task", query, projectID, taskID)
}

func (r *ProjectRepository) exec(ctx context.Context, op, query string, args ...any) error {
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to %s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
