package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/bdfdm25/task-manager/internal/auth"
	dom "github.com/bdfdm25/task-manager/internal/domain"
	"github.com/bdfdm25/task-manager/internal/dto"
	"github.com/bdfdm25/task-manager/internal/repo"
	"github.com/bdfdm25/task-manager/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TaskHandler struct {
	svc *service.TaskService
}

func NewTaskHandler(svc *service.TaskService) *TaskHandler {
	return &TaskHandler{svc: svc}
}

// Create godoc
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateTaskRequest  true  "Task body"
// @Success      201   {object}  dto.TaskResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	t, err := h.svc.Create(c.Request.Context(), user.ID, dom.Task{
		Code:               req.TaskCode,
		Title:              req.Title,
		Description:        req.Description,
		Status:             dom.Status(req.Status),
		Priority:           dom.Priority(req.Priority),
		Category:           req.Category,
		AssignedTo:         req.AssignedTo,
		EstimatedHours:     req.EstimatedHours,
		Deadline:           req.Deadline.Ptr(),
		Tags:               req.Tags,
		NotifyOnCompletion: req.NotifyOnCompletion,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDeadline):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrCodeTaken):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create task"})
		}
		return
	}
	c.JSON(http.StatusCreated, dto.TaskToResponse(t))
}

// List godoc
// @Summary      List the caller's tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        status  query  string  false  "Exact status match"  Enums(open, in_progress, done)
// @Param        search  query  string  false  "Substring match on title or description"
// @Success      200  {array}   dto.TaskResponse
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var filter dto.TaskFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		bindingError(c, err)
		return
	}
	list, err := h.svc.List(c.Request.Context(), user.ID, filter.Status, filter.Search)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list tasks"})
		return
	}
	c.JSON(http.StatusOK, dto.TasksToResponses(list))
}

// GetByID godoc
// @Summary      Get a task by ID
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task ID"
// @Success      200  {object}  dto.TaskResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /tasks/{id} [get]
func (h *TaskHandler) GetByID(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	t, err := h.svc.GetByID(c.Request.Context(), user.ID, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not get task"})
		return
	}
	c.JSON(http.StatusOK, dto.TaskToResponse(t))
}

// Update godoc
// @Summary      Partially update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string  true  "Task ID"
// @Param        body  body      dto.UpdateTaskRequest  true  "Fields to change"
// @Success      200   {object}  dto.TaskResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /tasks/{id} [patch]
func (h *TaskHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	patch := repo.TaskPatch{
		Code:               req.TaskCode,
		Title:              req.Title,
		Description:        req.Description,
		Status:             req.Status,
		Priority:           req.Priority,
		Category:           req.Category,
		AssignedTo:         req.AssignedTo,
		EstimatedHours:     req.EstimatedHours,
		Tags:               req.Tags,
		NotifyOnCompletion: req.NotifyOnCompletion,
	}
	if req.Deadline != nil {
		patch.Deadline = req.Deadline.Ptr()
	}

	t, err := h.svc.Update(c.Request.Context(), user.ID, id, patch)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		case errors.Is(err, service.ErrInvalidDeadline):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrCodeTaken):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update task"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.TaskToResponse(t))
}

// Delete godoc
// @Summary      Delete a task
// @Tags         tasks
// @Security     BearerAuth
// @Param        id   path  string  true  "Task ID"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), user.ID, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete task"})
		return
	}
	c.Status(http.StatusNoContent)
}

// CheckCode godoc
// @Summary      Check whether a task code is already used by the caller
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        code  path      string  true  "Task code, e.g. TASK-001"
// @Success      200   {boolean}  boolean
// @Failure      500   {object}  map[string]string
// @Router       /tasks/check-code/{code} [get]
func (h *TaskHandler) CheckCode(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	code := strings.ToUpper(strings.TrimSpace(c.Param("code")))
	exists, err := h.svc.CodeExists(c.Request.Context(), user.ID, code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not check task code"})
		return
	}
	c.JSON(http.StatusOK, exists)
}

func currentUser(c *gin.Context) (dom.User, bool) {
	user, ok := auth.UserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
	}
	return user, ok
}

func parseID(c *gin.Context) (string, bool) {
	raw := c.Param("id")
	if _, err := uuid.Parse(raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return "", false
	}
	return raw, true
}
