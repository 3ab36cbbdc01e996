package viewstate

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"taskdesk/internal/model"
)

var (
	ErrTaskMissing     = errors.New("Task not found.")
	ErrEmployeeMissing = errors.New("Employee not found.")
)

type TaskFormSource interface {
	ListEmployees(ctx context.Context, search string) ([]model.Employee, error)
	GetTask(ctx context.Context, id int64) (*model.Task, error)
}

type EmployeeFormSource interface {
	GetEmployee(ctx context.Context, id int64) (*model.Employee, error)
}

// TaskForm is the data the task form needs: assignee options and, when
// editing, the task itself.
type TaskForm struct {
	Employees []model.Employee
	Task      *model.Task
}

// LoadTaskForm fetches the employee options and, for taskID > 0, the task,
// concurrently.
func LoadTaskForm(ctx context.Context, src TaskFormSource, taskID int64) (TaskForm, error) {
	var form TaskForm
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		employees, err := src.ListEmployees(ctx, "")
		if err != nil {
			return err
		}
		form.Employees = employees
		return nil
	})
	if taskID > 0 {
		g.Go(func() error {
			task, err := src.GetTask(ctx, taskID)
			if err != nil {
				return err
			}
			if task == nil {
				return ErrTaskMissing
			}
			form.Task = task
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return TaskForm{}, err
	}
	return form, nil
}

// LoadEmployeeForm returns the employee being edited.
func LoadEmployeeForm(ctx context.Context, src EmployeeFormSource, id int64) (model.Employee, error) {
	employee, err := src.GetEmployee(ctx, id)
	if err != nil {
		return model.Employee{}, err
	}
	if employee == nil {
		return model.Employee{}, ErrEmployeeMissing
	}
	return *employee, nil
}
