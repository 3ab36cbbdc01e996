package handler_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"taskdesk/internal/handler"
	"taskdesk/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createEmployee(t *testing.T, r *gin.Engine, name, email, role string) model.Employee {
	t.Helper()
	resp := doJSON(r, http.MethodPost, "/employees", gin.H{"name": name, "email": email, "role": role})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	return decode[model.Employee](t, resp)
}

func TestEmployeeHandler_Create_Success(t *testing.T) {
	// Arrange
	router, _ := setupRouter(t)

	// Act
	resp := doJSON(router, http.MethodPost, "/employees", gin.H{
		"name":  "John Doe",
		"email": "john@example.com",
		"role":  "Developer",
	})

	// Assert
	assert.Equal(t, http.StatusCreated, resp.Code)
	employee := decode[model.Employee](t, resp)
	assert.Equal(t, int64(1), employee.ID)
	assert.Equal(t, "John Doe", employee.Name)
	assert.True(t, employee.CreatedAt.Equal(fixedNow))
}

func TestEmployeeHandler_Create_Validation(t *testing.T) {
	router, store := setupRouter(t)

	tests := []struct {
		name string
		body any
	}{
		{"missing name", gin.H{"email": "a@example.com", "role": "Dev"}},
		{"blank name", gin.H{"name": "   ", "email": "a@example.com", "role": "Dev"}},
		{"bad email", gin.H{"name": "A", "email": "not-an-email", "role": "Dev"}},
		{"blank role", gin.H{"name": "A", "email": "a@example.com", "role": " "}},
		{"malformed json", `{"name":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(router, http.MethodPost, "/employees", tt.body)

			assert.Equal(t, http.StatusBadRequest, resp.Code)
			assert.Equal(t, "Invalid request", errorMessage(t, resp))
		})
	}

	employees, _ := store.Counts()
	assert.Zero(t, employees)
}

func TestEmployeeHandler_Create_DuplicateEmail(t *testing.T) {
	router, _ := setupRouter(t)
	createEmployee(t, router, "John Doe", "john@example.com", "Developer")

	resp := doJSON(router, http.MethodPost, "/employees", gin.H{
		"name": "Other", "email": "JOHN@example.com", "role": "Designer",
	})

	assert.Equal(t, http.StatusConflict, resp.Code)
	assert.Equal(t, "Email already exists.", errorMessage(t, resp))
}

func TestEmployeeHandler_GetAll_Search(t *testing.T) {
	router, _ := setupRouter(t)
	createEmployee(t, router, "John Doe", "john@example.com", "Developer")
	createEmployee(t, router, "Jane Smith", "jane@example.com", "Designer")

	resp := doJSON(router, http.MethodGet, "/employees?search=DESIGN", nil)

	assert.Equal(t, http.StatusOK, resp.Code)
	employees := decode[[]model.Employee](t, resp)
	require.Len(t, employees, 1)
	assert.Equal(t, "Jane Smith", employees[0].Name)

	resp = doJSON(router, http.MethodGet, "/employees", nil)
	assert.Len(t, decode[[]model.Employee](t, resp), 2)
}

func TestEmployeeHandler_GetByID(t *testing.T) {
	router, _ := setupRouter(t)
	created := createEmployee(t, router, "John Doe", "john@example.com", "Developer")

	tests := []struct {
		name     string
		path     string
		wantCode int
	}{
		{"found", "/employees/1", http.StatusOK},
		{"absent", "/employees/42", http.StatusNotFound},
		{"not a number", "/employees/abc", http.StatusBadRequest},
		{"zero", "/employees/0", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(router, http.MethodGet, tt.path, nil)
			assert.Equal(t, tt.wantCode, resp.Code)
		})
	}

	resp := doJSON(router, http.MethodGet, "/employees/1", nil)
	assert.Equal(t, created, decode[model.Employee](t, resp))
}

func TestEmployeeHandler_Update_IgnoresIdentityFields(t *testing.T) {
	// Arrange
	router, _ := setupRouter(t)
	created := createEmployee(t, router, "John Doe", "john@example.com", "Developer")

	// Act
	resp := doJSON(router, http.MethodPut, "/employees/1", gin.H{
		"id":         999,
		"created_at": "2000-01-01T00:00:00Z",
		"role":       "Lead",
	})

	// Assert
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	updated := decode[model.Employee](t, resp)
	assert.Equal(t, created.ID, updated.ID)
	assert.True(t, created.CreatedAt.Equal(updated.CreatedAt))
	assert.Equal(t, "Lead", updated.Role)
	assert.Equal(t, "John Doe", updated.Name)

	assert.Equal(t, http.StatusNotFound, doJSON(router, http.MethodGet, "/employees/999", nil).Code)
}

func TestEmployeeHandler_Update_Errors(t *testing.T) {
	router, _ := setupRouter(t)
	createEmployee(t, router, "John Doe", "john@example.com", "Developer")
	createEmployee(t, router, "Jane Smith", "jane@example.com", "Designer")

	resp := doJSON(router, http.MethodPut, "/employees/2", gin.H{"email": "john@example.com"})
	assert.Equal(t, http.StatusConflict, resp.Code)

	resp = doJSON(router, http.MethodPut, "/employees/7", gin.H{"name": "Ghost"})
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "Employee not found.", errorMessage(t, resp))

	resp = doJSON(router, http.MethodPut, "/employees/2", gin.H{"name": ""})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestEmployeeHandler_Delete_Cascades(t *testing.T) {
	// Arrange
	router, store := setupRouter(t)
	createEmployee(t, router, "John Doe", "john@example.com", "Developer")
	createEmployee(t, router, "Jane Smith", "jane@example.com", "Designer")
	for _, assignee := range []int64{1, 1, 2} {
		resp := doJSON(router, http.MethodPost, "/tasks", gin.H{
			"title": "Task", "status": "Todo", "employee_id": assignee,
		})
		require.Equal(t, http.StatusCreated, resp.Code)
	}

	// Act
	resp := doJSON(router, http.MethodDelete, "/employees/1", nil)

	// Assert
	require.Equal(t, http.StatusOK, resp.Code)
	deletion := decode[model.Deletion](t, resp)
	assert.Equal(t, "Employee deleted successfully", deletion.Message)
	assert.Equal(t, 2, deletion.CascadedTasks)

	employees, tasks := store.Counts()
	assert.Equal(t, 1, employees)
	assert.Equal(t, 1, tasks)

	resp = doJSON(router, http.MethodDelete, "/employees/1", nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

type mockEmployeeService struct {
	mock.Mock
}

func (m *mockEmployeeService) ListEmployees(ctx context.Context, search string) ([]model.Employee, error) {
	args := m.Called(ctx, search)
	employees, _ := args.Get(0).([]model.Employee)
	return employees, args.Error(1)
}

func (m *mockEmployeeService) GetEmployee(ctx context.Context, id int64) (*model.Employee, error) {
	args := m.Called(ctx, id)
	employee, _ := args.Get(0).(*model.Employee)
	return employee, args.Error(1)
}

func (m *mockEmployeeService) CreateEmployee(ctx context.Context, fields model.EmployeeFields) (model.Employee, error) {
	args := m.Called(ctx, fields)
	return args.Get(0).(model.Employee), args.Error(1)
}

func (m *mockEmployeeService) UpdateEmployee(ctx context.Context, id int64, patch model.EmployeePatch) (model.Employee, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(model.Employee), args.Error(1)
}

func (m *mockEmployeeService) DeleteEmployee(ctx context.Context, id int64) (model.Deletion, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Deletion), args.Error(1)
}

func TestEmployeeHandler_ServiceFailures(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := new(mockEmployeeService)
	h := handler.NewEmployeeHandler(svc)
	r := gin.New()
	r.GET("/employees", h.GetAll)
	r.DELETE("/employees/:id", h.Delete)

	svc.On("ListEmployees", mock.Anything, "").Return(nil, errors.New("boom"))
	svc.On("DeleteEmployee", mock.Anything, int64(3)).Return(model.Deletion{}, context.Canceled)

	resp := doJSON(r, http.MethodGet, "/employees", nil)
	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.Equal(t, "Failed to retrieve employees", errorMessage(t, resp))

	resp = doJSON(r, http.MethodDelete, "/employees/3", nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)

	svc.AssertExpectations(t)
}
