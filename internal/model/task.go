package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "Todo"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusDone       TaskStatus = "Done"
)

// TaskStatuses lists the statuses in display order.
var TaskStatuses = []TaskStatus{TaskStatusTodo, TaskStatusInProgress, TaskStatusDone}

func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

// StatusFilter selects tasks by status. StatusAll (or the zero value) disables filtering.
type StatusFilter string

const StatusAll StatusFilter = "All"

// ParseStatusFilter accepts "All", "" or one of the task statuses, ignoring case.
func ParseStatusFilter(raw string) (StatusFilter, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, string(StatusAll)) {
		return StatusAll, nil
	}
	for _, s := range TaskStatuses {
		if strings.EqualFold(raw, string(s)) {
			return StatusFilter(s), nil
		}
	}
	return "", fmt.Errorf("invalid status filter %q", raw)
}

// Matches reports whether a task with status s passes the filter.
func (f StatusFilter) Matches(s TaskStatus) bool {
	if f == "" || f == StatusAll {
		return true
	}
	return TaskStatus(f) == s
}

// Task is the read shape of a task. Employee is resolved at read time from
// EmployeeID and is nil when the task is unassigned.
type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	EmployeeID  *int64     `json:"employee_id"`
	CreatedAt   time.Time  `json:"created_at"`
	Employee    *Employee  `json:"employee,omitempty"`
}

type TaskFields struct {
	Title       string     `json:"title" binding:"required,notblank"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status" binding:"required,taskstatus"`
	EmployeeID  *int64     `json:"employee_id"`
}

type TaskPatch struct {
	Title       *string     `json:"title" binding:"omitempty,notblank"`
	Description *string     `json:"description"`
	Status      *TaskStatus `json:"status" binding:"omitempty,taskstatus"`
	Employee    EmployeeRef `json:"employee_id"`
}

// EmployeeRef is the assignment part of a TaskPatch. It distinguishes an
// absent key (Set == false) from an explicit null (Set == true, ID == nil).
type EmployeeRef struct {
	Set bool
	ID  *int64
}

// AssignTo returns a ref that assigns the task to id.
func AssignTo(id int64) EmployeeRef {
	return EmployeeRef{Set: true, ID: &id}
}

// Unassign returns a ref that clears the assignment.
func Unassign() EmployeeRef {
	return EmployeeRef{Set: true}
}

func (r *EmployeeRef) UnmarshalJSON(data []byte) error {
	r.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		r.ID = nil
		return nil
	}
	var id int64
	if err := json.Unmarshal(data, &id); err != nil {
		return fmt.Errorf("employee_id: %w", err)
	}
	r.ID = &id
	return nil
}

func (r EmployeeRef) MarshalJSON() ([]byte, error) {
	if r.ID == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*r.ID)
}

// Apply merges the patch into t. Identity fields are never touched.
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Employee.Set {
		t.EmployeeID = cloneID(p.Employee.ID)
	}
}

func cloneID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
