package handler

import (
	"context"
	"net/http"

	"taskdesk/internal/model"

	"github.com/gin-gonic/gin"
)

// EmployeeService is the part of the query facade the employee routes use.
type EmployeeService interface {
	ListEmployees(ctx context.Context, search string) ([]model.Employee, error)
	GetEmployee(ctx context.Context, id int64) (*model.Employee, error)
	CreateEmployee(ctx context.Context, fields model.EmployeeFields) (model.Employee, error)
	UpdateEmployee(ctx context.Context, id int64, patch model.EmployeePatch) (model.Employee, error)
	DeleteEmployee(ctx context.Context, id int64) (model.Deletion, error)
}

type EmployeeHandler struct {
	svc EmployeeService
}

func NewEmployeeHandler(svc EmployeeService) *EmployeeHandler {
	RegisterValidators()
	return &EmployeeHandler{svc: svc}
}

// GetAll godoc
// @Summary      List employees
// @Description  Employees in creation order, optionally filtered by a case-insensitive search over name, email and role
// @Tags         Employees
// @Produce      json
// @Param        search  query  string  false  "Search term"
// @Success      200  {array}   model.Employee
// @Failure      401  {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /employees [get]
func (h *EmployeeHandler) GetAll(c *gin.Context) {
	employees, err := h.svc.ListEmployees(c.Request.Context(), c.Query("search"))
	if err != nil {
		respondError(c, err, "Failed to retrieve employees")
		return
	}
	c.JSON(http.StatusOK, employees)
}

// GetByID godoc
// @Summary      Get an employee
// @Tags         Employees
// @Produce      json
// @Param        id   path  int  true  "Employee ID"
// @Success      200  {object}  model.Employee
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /employees/{id} [get]
func (h *EmployeeHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid employee ID format"})
		return
	}

	employee, err := h.svc.GetEmployee(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to retrieve employee")
		return
	}
	if employee == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found."})
		return
	}

	c.JSON(http.StatusOK, employee)
}

// Create godoc
// @Summary      Create an employee
// @Tags         Employees
// @Accept       json
// @Produce      json
// @Param        employee  body  model.EmployeeFields  true  "Employee"
// @Success      201  {object}  model.Employee
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /employees [post]
func (h *EmployeeHandler) Create(c *gin.Context) {
	var req model.EmployeeFields
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	employee, err := h.svc.CreateEmployee(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to create employee")
		return
	}

	c.JSON(http.StatusCreated, employee)
}

// Update godoc
// @Summary      Update an employee
// @Description  Partial update. The id and created_at fields are never changed.
// @Tags         Employees
// @Accept       json
// @Produce      json
// @Param        id        path  int                  true  "Employee ID"
// @Param        employee  body  model.EmployeePatch  true  "Fields to change"
// @Success      200  {object}  model.Employee
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /employees/{id} [put]
func (h *EmployeeHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid employee ID format"})
		return
	}

	var req model.EmployeePatch
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	employee, err := h.svc.UpdateEmployee(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err, "Failed to update employee")
		return
	}

	c.JSON(http.StatusOK, employee)
}

// Delete godoc
// @Summary      Delete an employee
// @Description  Also deletes every task assigned to the employee.
// @Tags         Employees
// @Produce      json
// @Param        id   path  int  true  "Employee ID"
// @Success      200  {object}  model.Deletion
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /employees/{id} [delete]
func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid employee ID format"})
		return
	}

	deletion, err := h.svc.DeleteEmployee(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to delete employee")
		return
	}

	c.JSON(http.StatusOK, deletion)
}
