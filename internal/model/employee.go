package model

import "time"

type Employee struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// EmployeeFields carries everything a caller may set when creating an employee.
type EmployeeFields struct {
	Name  string `json:"name" binding:"required,notblank"`
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"required,notblank"`
}

// EmployeePatch is a partial update. Nil fields are left untouched.
type EmployeePatch struct {
	Name  *string `json:"name" binding:"omitempty,notblank"`
	Email *string `json:"email" binding:"omitempty,email"`
	Role  *string `json:"role" binding:"omitempty,notblank"`
}

// Apply merges the patch into e. Identity fields are never touched.
func (p EmployeePatch) Apply(e *Employee) {
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.Email != nil {
		e.Email = *p.Email
	}
	if p.Role != nil {
		e.Role = *p.Role
	}
}

// Deletion confirms a delete. CascadedTasks counts tasks removed along with an employee.
type Deletion struct {
	Message       string `json:"message"`
	CascadedTasks int    `json:"cascaded_tasks,omitempty"`
}
