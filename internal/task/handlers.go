package task

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sprintsync/sprintsync-api/internal/auth"
	apierrors "github.com/sprintsync/sprintsync-api/internal/errors"
	"github.com/sprintsync/sprintsync-api/internal/events"
	"github.com/sprintsync/sprintsync-api/internal/logger"
)

const (
	msgTaskNotFound  = "Task not found."
	msgInvalidStatus = "Valid status is required. Options: TODO, IN_PROGRESS, DONE"
)

// Handler handles HTTP requests for task operations.
type Handler struct {
	service *Service
	events  *events.Emitter
	logger  *logger.Logger
}

// NewHandler creates a new task handler. emitter may be nil.
func NewHandler(service *Service, emitter *events.Emitter, logger *logger.Logger) *Handler {
	return &Handler{
		service: service,
		events:  emitter,
		logger:  logger,
	}
}

// RegisterRoutes mounts the task routes on an authenticated group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.CreateTask)
	rg.GET("", h.ListTasks)
	rg.GET("/:id", h.GetTask)
	rg.PUT("/:id", h.UpdateTask)
	rg.PATCH("/:id/status", h.UpdateStatus)
	rg.DELETE("/:id", h.DeleteTask)
}

// CreateTask handles POST /tasks
func (h *Handler) CreateTask(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.AbortWithBadRequest(c, "Invalid request body.", map[string]any{"reason": err.Error()})
		return
	}

	task, err := h.service.CreateTask(c.Request.Context(), userID, req)
	if err != nil {
		h.abortWithServiceError(c, "failed to create task", err)
		return
	}

	h.events.Emit(c.Request.Context(), events.SubjectTaskCreated, userID, task)
	c.JSON(http.StatusCreated, TaskResponse{Message: "Task created successfully.", Task: task})
}

// ListTasks handles GET /tasks?status=
func (h *Handler) ListTasks(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	tasks, err := h.service.ListTasks(c.Request.Context(), userID, Status(c.Query("status")))
	if err != nil {
		h.abortWithServiceError(c, "failed to list tasks", err)
		return
	}

	c.JSON(http.StatusOK, ListTasksResponse{Tasks: tasks, Count: len(tasks)})
}

// GetTask handles GET /tasks/:id
func (h *Handler) GetTask(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	task, err := h.service.GetTask(c.Request.Context(), userID, taskID)
	if err != nil {
		h.abortWithServiceError(c, "failed to get task", err)
		return
	}

	c.JSON(http.StatusOK, TaskResponse{Task: task})
}

// UpdateTask handles PUT /tasks/:id
func (h *Handler) UpdateTask(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.AbortWithBadRequest(c, "Invalid request body.", map[string]any{"reason": err.Error()})
		return
	}

	task, err := h.service.UpdateTask(c.Request.Context(), userID, taskID, req)
	if err != nil {
		h.abortWithServiceError(c, "failed to update task", err)
		return
	}

	h.events.Emit(c.Request.Context(), events.SubjectTaskUpdated, userID, task)
	c.JSON(http.StatusOK, TaskResponse{Message: "Task updated successfully.", Task: task})
}

// UpdateStatus handles PATCH /tasks/:id/status
func (h *Handler) UpdateStatus(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.AbortWithBadRequest(c, msgInvalidStatus, nil)
		return
	}

	task, err := h.service.UpdateStatus(c.Request.Context(), userID, taskID, req.Status)
	if err != nil {
		h.abortWithServiceError(c, "failed to update task status", err)
		return
	}

	h.events.Emit(c.Request.Context(), events.SubjectTaskUpdated, userID, task)
	c.JSON(http.StatusOK, TaskResponse{Message: "Task status updated successfully.", Task: task})
}

// DeleteTask handles DELETE /tasks/:id
func (h *Handler) DeleteTask(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	if err := h.service.DeleteTask(c.Request.Context(), userID, taskID); err != nil {
		h.abortWithServiceError(c, "failed to delete task", err)
		return
	}

	h.events.Emit(c.Request.Context(), events.SubjectTaskDeleted, userID, gin.H{"id": taskID})
	c.JSON(http.StatusOK, DeleteTaskResponse{Message: "Task deleted successfully."})
}

func (h *Handler) requireUser(c *gin.Context) (int64, bool) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		apierrors.AbortWithUnauthorized(c, "Unauthorized", nil)
		return 0, false
	}
	return userID, true
}

// taskIDParam parses :id. Ids that cannot exist are reported as not found.
func taskIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		apierrors.AbortWithNotFound(c, msgTaskNotFound, nil)
		return 0, false
	}

	ctx := logger.WithTaskID(c.Request.Context(), c.Param("id"))
	c.Request = c.Request.WithContext(ctx)
	return id, true
}

func (h *Handler) abortWithServiceError(c *gin.Context, msg string, err error) {
	switch {
	case errors.Is(err, ErrTaskNotFound):
		apierrors.AbortWithNotFound(c, msgTaskNotFound, nil)
	case errors.Is(err, ErrTitleRequired):
		apierrors.AbortWithBadRequest(c, "Title is required.", nil)
	case errors.Is(err, ErrInvalidStatus):
		apierrors.AbortWithBadRequest(c, msgInvalidStatus, nil)
	case errors.Is(err, ErrInvalidTotalMinutes):
		apierrors.AbortWithBadRequest(c, "Total minutes must be a non-negative integer.", nil)
	default:
		h.logger.WithComponent("task-handler").LogError(c.Request.Context(), err, msg)
		apierrors.AbortWithInternal(c, "Internal Server Error", nil)
	}
}
