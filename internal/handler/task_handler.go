package handler

import (
	"context"
	"net/http"

	"taskdesk/internal/model"

	"github.com/gin-gonic/gin"
)

// TaskService is the part of the query facade the task routes use.
type TaskService interface {
	ListTasks(ctx context.Context, search string, status model.StatusFilter) ([]model.Task, error)
	GetTask(ctx context.Context, id int64) (*model.Task, error)
	CreateTask(ctx context.Context, fields model.TaskFields) (model.Task, error)
	UpdateTask(ctx context.Context, id int64, patch model.TaskPatch) (model.Task, error)
	DeleteTask(ctx context.Context, id int64) (model.Deletion, error)
}

type TaskHandler struct {
	svc TaskService
}

func NewTaskHandler(svc TaskService) *TaskHandler {
	RegisterValidators()
	return &TaskHandler{svc: svc}
}

// GetAll godoc
// @Summary      List tasks
// @Description  Tasks in creation order with their assigned employee. search matches title and description; status is All, Todo, In Progress or Done.
// @Tags         Tasks
// @Produce      json
// @Param        search  query  string  false  "Search term"
// @Param        status  query  string  false  "Status filter"  Enums(All, Todo, In Progress, Done)
// @Success      200  {array}   model.Task
// @Failure      400  {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /tasks [get]
func (h *TaskHandler) GetAll(c *gin.Context) {
	status, err := model.ParseStatusFilter(c.Query("status"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status filter"})
		return
	}

	tasks, err := h.svc.ListTasks(c.Request.Context(), c.Query("search"), status)
	if err != nil {
		respondError(c, err, "Failed to retrieve tasks")
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// GetByID godoc
// @Summary      Get a task
// @Tags         Tasks
// @Produce      json
// @Param        id   path  int  true  "Task ID"
// @Success      200  {object}  model.Task
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /tasks/{id} [get]
func (h *TaskHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	task, err := h.svc.GetTask(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to retrieve task")
		return
	}
	if task == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found."})
		return
	}

	c.JSON(http.StatusOK, task)
}

// Create godoc
// @Summary      Create a task
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Param        task  body  model.TaskFields  true  "Task"
// @Success      201  {object}  model.Task
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse  "Assigned employee does not exist"
// @Security     BearerAuth
// @Router       /tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var req model.TaskFields
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	task, err := h.svc.CreateTask(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to create task")
		return
	}

	c.JSON(http.StatusCreated, task)
}

// Update godoc
// @Summary      Update a task
// @Description  Partial update. employee_id: null unassigns the task; omitting it keeps the current assignee.
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Param        id    path  int              true  "Task ID"
// @Param        task  body  model.TaskPatch  true  "Fields to change"
// @Success      200  {object}  model.Task
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /tasks/{id} [put]
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	var req model.TaskPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	task, err := h.svc.UpdateTask(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err, "Failed to update task")
		return
	}

	c.JSON(http.StatusOK, task)
}

// Delete godoc
// @Summary      Delete a task
// @Tags         Tasks
// @Produce      json
// @Param        id   path  int  true  "Task ID"
// @Success      200  {object}  model.Deletion
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	deletion, err := h.svc.DeleteTask(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to delete task")
		return
	}

	c.JSON(http.StatusOK, deletion)
}
