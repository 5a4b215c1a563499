package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/tasktracker-server/internal/api/http/response"
	"github.com/dtroode/tasktracker-server/internal/logger"
	"github.com/dtroode/tasktracker-server/internal/model"
)

// ProjectService defines project and membership operations.
type ProjectService interface {
	Create(ctx context.Context, callerID uuid.UUID, params model.CreateProjectParams) (model.Project, error)
	List(ctx context.Context, callerID uuid.UUID) ([]model.ProjectWithTasks, error)
	Get(ctx context.Context, callerID, projectID uuid.UUID) (model.Project, error)
	Update(ctx context.Context, callerID, projectID uuid.UUID, params model.UpdateProjectParams) (model.Project, error)
	ChangeStatus(ctx context.Context, callerID, projectID uuid.UUID, status string) (model.Project, error)
	Delete(ctx context.Context, callerID, projectID uuid.UUID) error
	AddMember(ctx context.Context, callerID, projectID, userID uuid.UUID) (model.Project, error)
	RemoveMember(ctx context.Context, callerID, projectID, userID uuid.UUID) (model.Project, error)
}

// Project handles the /projects endpoints.
type Project struct {
	projectService ProjectService
	contextManager model.ContextManager
	decoder        decoder
	logger         *logger.Logger
	now            func() time.Time
}

// NewProject creates a new Project handler.
func NewProject(projectService ProjectService, contextManager model.ContextManager, bodyLimit int64, logger *logger.Logger) *Project {
	return &Project{
		projectService: projectService,
		contextManager: contextManager,
		decoder:        decoder{limit: bodyLimit},
		logger:         logger,
		now:            time.Now,
	}
}

func (h *Project) Create(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(h.contextManager, r)
	if err != nil {
		response.Error(w, err)
		return
	}

	var req createProjectRequest
	if err := h.decoder.decode(w, r, &req, false); err != nil {
		response.Error(w, err)
		return
	}

	project, err := h.projectService.Create(r.Context(), caller, model.CreateProjectParams{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, h.logger, "Project handler: create failed", err)
		return
	}

	response.JSON(w, http.StatusCreated, toProjectResponse(project), "Project created successfully")
}

func (h *Project) List(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(h.contextManager, r)
	if err != nil {
		response.Error(w, err)
		return
	}

	projects, err := h.projectService.List(r.Context(), caller)
	if err != nil {
		writeError(w, h.logger, "Project handler: list failed", err)
		return
	}

	response.JSON(w, http.StatusOK, toProjectListResponses(projects, h.now()), "User projects fetched successfully")
}

func (h *Project) Get(w http.ResponseWriter, r *http.Request) {
	caller, projectID, err := h.target(r)
	if err != nil {
		response.Error(w, err)
		return
	}

	project, err := h.projectService.Get(r.Context(), caller, projectID)
	if err != nil {
		writeError(w, h.logger, "Project handler: get failed", err)
		return
	}

	response.JSON(w, http.StatusOK, toProjectResponse(project), "Project fetched successfully")
}

func (h *Project) Update(w http.ResponseWriter, r *http.Request) {
	caller, projectID, err := h.target(r)
	if err != nil {
		response.Error(w, err)
		return
	}

	var req updateProjectRequest
	if err := h.decoder.decode(w, r, &req, false); err != nil {
		response.Error(w, err)
		return
	}

	project, err := h.projectService.Update(r.Context(), caller, projectID, model.UpdateProjectParams{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		writeError(w, h.logger, "Project handler: update failed", err)
		return
	}

	response.JSON(w, http.StatusOK, toProjectResponse(project), "Project updated successfully")
}

func (h *Project) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	caller, projectID, err := h.target(r)
	if err != nil {
		response.Error(w, err)
		return
	}

	var req changeStatusRequest
	if err := h.decoder.decode(w, r, &req, false); err != nil {
		response.Error(w, err)
		return
	}

	project, err := h.projectService.ChangeStatus(r.Context(), caller, projectID, req.Status)
	if err != nil {
		writeError(w, h.logger, "Project handler: status change failed", err)
		return
	}

	response.JSON(w, http.StatusOK, toProjectResponse(project), "Project status changed to "+string(project.Status))
}

func (h *Project) Delete(w http.ResponseWriter, r *http.Request) {
	caller, projectID, err := h.target(r)
	if err != nil {
		response.Error(w, err)
		return
	}

	if err := h.projectService.Delete(r.Context(), caller, projectID); err != nil {
		writeError(w, h.logger, "Project handler: delete failed", err)
		return
	}

	response.JSON(w, http.StatusOK, struct{}{}, "Project deleted successfully")
}

func (h *Project) AddMember(w http.ResponseWriter, r *http.Request) {
	caller, projectID, err := h.target(r)
	if err != nil {
		response.Error(w, err)
		return
	}

	var req addMemberRequest
	if err := h.decoder.decode(w, r, &req, false); err != nil {
		response.Error(w, err)
		return
	}
	userID, err := parseOptionalID(req.UserID, "userId")
	if err != nil {
		response.Error(w, err)
		return
	}
	if userID == uuid.Nil {
		response.Error(w, errUserIDRequired)
		return
	}

	project, err := h.projectService.AddMember(r.Context(), caller, projectID, userID)
	if err != nil {
		writeError(w, h.logger, "Project handler: add member failed", err)
		return
	}

	response.JSON(w, http.StatusOK, toProjectResponse(project), "Member added successfully")
}

func (h *Project) RemoveMember(w http.ResponseWriter, r *http.Request) {
	caller, projectID, err := h.target(r)
	if err != nil {
		response.Error(w, err)
		return
	}
	userID, err := pathID(r, "userId")
	if err != nil {
		response.Error(w, err)
		return
	}

	project, err := h.projectService.RemoveMember(r.Context(), caller, projectID, userID)
	if err != nil {
		writeError(w, h.logger, "Project handler: remove member failed", err)
		return
	}

	response.JSON(w, http.StatusOK, toProjectResponse(project), "Member removed successfully")
}

// target resolves the caller and the projectId path variable.
func (h *Project) target(r *http.Request) (uuid.UUID, uuid.UUID, error) {
	caller, err := callerID(h.contextManager, r)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	projectID, err := pathID(r, "projectId")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return caller, projectID, nil
}
