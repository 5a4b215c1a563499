package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/tasktracker-server/internal/api/http/response"
	"github.com/dtroode/tasktracker-server/internal/apperror"
	"github.com/dtroode/tasktracker-server/internal/logger"
	"github.com/dtroode/tasktracker-server/internal/model"
)

// TaskService defines operations on tasks nested under a project.
type TaskService interface {
	Create(ctx context.Context, callerID uuid.UUID, params model.CreateTaskParams) (model.Task, error)
	List(ctx context.Context, callerID, projectID uuid.UUID) ([]model.Task, error)
	Get(ctx context.Context, callerID, projectID, taskID uuid.UUID) (model.Task, error)
	Update(ctx context.Context, callerID, projectID, taskID uuid.UUID, params model.UpdateTaskParams) (model.Task, error)
	Delete(ctx context.Context, callerID, projectID, taskID uuid.UUID) error
}

// Task handles the /projects/{projectId}/tasks endpoints.
type Task struct {
	taskService    TaskService
	contextManager model.ContextManager
	decoder        decoder
	logger         *logger.Logger
	now            func() time.Time
}

// NewTask creates a new Task handler.
func NewTask(taskService TaskService, contextManager model.ContextManager, bodyLimit int64, logger *logger.Logger) *Task {
	return &Task{
		taskService:    taskService,
		contextManager: contextManager,
		decoder:        decoder{limit: bodyLimit},
		logger:         logger,
		now:            time.Now,
	}
}

// Create takes the project from the path. A project in the body must match it.
func (h *Task) Create(w http.ResponseWriter, r *http.Request) {
	caller, projectID, err := h.target(r)
	if err != nil {
		response.Error(w, err)
		return
	}

	var req createTaskRequest
	if err := h.decoder.decode(w, r, &req, false); err != nil {
		response.Error(w, err)
		return
	}

	bodyProject, err := parseOptionalID(req.Project, "project")
	if err != nil {
		response.Error(w, err)
		return
	}
	if bodyProject != uuid.Nil && bodyProject != projectID {
		response.Error(w, apperror.BadRequest("Project in body does not match the path"))
		return
	}
	assignee, err := parseOptionalID(req.AssignedTo, "assignedTo")
	if err != nil {
		response.Error(w, err)
		return
	}

	params := model.CreateTaskParams{
		Name:        req.Name,
		Description: req.Description,
		AssignedTo:  assignee,
		ProjectID:   projectID,
	}
	if req.StartTime != nil {
		params.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		params.EndTime = *req.EndTime
	}

	task, err := h.taskService.Create(r.Context(), caller, params)
	if err != nil {
		writeError(w, h.logger, "Task handler: create failed", err)
		return
	}

	response.JSON(w, http.StatusCreated, toTaskResponse(task, h.now()), "Task created successfully")
}

func (h *Task) List(w http.ResponseWriter, r *http.Request) {
	caller, projectID, err := h.target(r)
	if err != nil {
		response.Error(w, err)
		return
	}

	tasks, err := h.taskService.List(r.Context(), caller, projectID)
	if err != nil {
		writeError(w, h.logger, "Task handler: list failed", err)
		return
	}

	response.JSON(w, http.StatusOK, toTaskResponses(tasks, h.now()), "Tasks fetched successfully")
}

func (h *Task) Get(w http.ResponseWriter, r *http.Request) {
	caller, projectID, taskID, err := h.taskTarget(r)
	if err != nil {
		response.Error(w, err)
		return
	}

	task, err := h.taskService.Get(r.Context(), caller, projectID, taskID)
	if err != nil {
		writeError(w, h.logger, "Task handler: get failed", err)
		return
	}

	response.JSON(w, http.StatusOK, toTaskResponse(task, h.now()), "Task fetched successfully")
}

func (h *Task) Update(w http.ResponseWriter, r *http.Request) {
	caller, projectID, taskID, err := h.taskTarget(r)
	if err != nil {
		response.Error(w, err)
		return
	}

	var req updateTaskRequest
	if err := h.decoder.decode(w, r, &req, false); err != nil {
		response.Error(w, err)
		return
	}

	params := model.UpdateTaskParams{
		Name:        req.Name,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	}
	if req.AssignedTo != nil {
		assignee, err := uuid.Parse(*req.AssignedTo)
		if err != nil {
			response.Error(w, apperror.NewErrInvalidID("assignedTo"))
			return
		}
		params.AssignedTo = &assignee
	}

	task, err := h.taskService.Update(r.Context(), caller, projectID, taskID, params)
	if err != nil {
		writeError(w, h.logger, "Task handler: update failed", err)
		return
	}

	response.JSON(w, http.StatusOK, toTaskResponse(task, h.now()), "Task updated successfully")
}

func (h *Task) Delete(w http.ResponseWriter, r *http.Request) {
	caller, projectID, taskID, err := h.taskTarget(r)
	if err != nil {
		response.Error(w, err)
		return
	}

	if err := h.taskService.Delete(r.Context(), caller, projectID, taskID); err != nil {
		writeError(w, h.logger, "Task handler: delete failed", err)
		return
	}

	response.JSON(w, http.StatusOK, struct{}{}, "Task deleted successfully")
}

func (h *Task) target(r *http.Request) (uuid.UUID, uuid.UUID, error) {
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

func (h *Task) taskTarget(r *http.Request) (caller, projectID, taskID uuid.UUID, err error) {
	caller, projectID, err = h.target(r)
	if err != nil {
		return
	}
	taskID, err = pathID(r, "taskId")
	return
}
