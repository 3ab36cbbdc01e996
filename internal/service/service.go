// Package service is the query facade used by handlers and view state. Every
// operation runs against the store to completion, then waits on the
// configured Delayer before handing the result back.
package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"taskdesk/internal/model"
	"taskdesk/internal/repository"
)

const DefaultLatency = 300 * time.Millisecond

const (
	opListEmployees  = "list_employees"
	opGetEmployee    = "get_employee"
	opCreateEmployee = "create_employee"
	opUpdateEmployee = "update_employee"
	opDeleteEmployee = "delete_employee"
	opListTasks      = "list_tasks"
	opGetTask        = "get_task"
	opCreateTask     = "create_task"
	opUpdateTask     = "update_task"
	opDeleteTask     = "delete_task"
)

const (
	employeeDeletedMessage = "Employee deleted successfully"
	taskDeletedMessage     = "Task deleted successfully"
)

type Service struct {
	employees repository.EmployeeRepositoryInterface
	tasks     repository.TaskRepositoryInterface
	delay     Delayer
	logger    *zap.Logger
	metrics   *Metrics
}

type Option func(*Service)

// WithDelay sets the delay strategy. The default is FixedDelay(DefaultLatency).
func WithDelay(d Delayer) Option {
	return func(s *Service) {
		if d != nil {
			s.delay = d
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithMetrics(m *Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func New(
	employees repository.EmployeeRepositoryInterface,
	tasks repository.TaskRepositoryInterface,
	opts ...Option,
) *Service {
	s := &Service{
		employees: employees,
		tasks:     tasks,
		delay:     FixedDelay(DefaultLatency),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewFromStore wires both repositories over one store.
func NewFromStore(store *repository.Store, opts ...Option) *Service {
	return New(repository.NewEmployeeRepository(store), repository.NewTaskRepository(store), opts...)
}

// finish waits out the simulated latency and records the outcome of op.
// Reads give up when ctx ends.
func (s *Service) finish(ctx context.Context, op string, started time.Time, err error, fields ...zap.Field) error {
	if err == nil {
		err = s.delay.Wait(ctx)
	}
	return s.record(op, started, err, fields...)
}

// finishMutation is finish for operations that changed the store. The wait
// ignores cancellation so an applied change is never reported as a failure.
func (s *Service) finishMutation(ctx context.Context, op string, started time.Time, err error, fields ...zap.Field) error {
	if err == nil {
		err = s.delay.Wait(context.WithoutCancel(ctx))
	}
	return s.record(op, started, err, fields...)
}

func (s *Service) record(op string, started time.Time, err error, fields ...zap.Field) error {
	s.metrics.observe(op, started, err)

	fields = append(fields, zap.String("operation", op), zap.Duration("duration", time.Since(started)))
	if err != nil {
		s.logger.Warn("operation failed", append(fields, zap.Error(err))...)
		return err
	}
	s.logger.Debug("operation completed", fields...)
	return nil
}

func (s *Service) ListEmployees(ctx context.Context, search string) ([]model.Employee, error) {
	started := time.Now()
	employees, err := s.employees.List(ctx, repository.EmployeeFilter{Search: search})
	if err = s.finish(ctx, opListEmployees, started, err, zap.String("search", search), zap.Int("count", len(employees))); err != nil {
		return nil, err
	}
	return employees, nil
}

// GetEmployee returns nil without error when the employee does not exist.
func (s *Service) GetEmployee(ctx context.Context, id int64) (*model.Employee, error) {
	started := time.Now()
	employee, err := s.employees.GetByID(ctx, id)
	if err = s.finish(ctx, opGetEmployee, started, err, zap.Int64("employee_id", id)); err != nil {
		return nil, err
	}
	return employee, nil
}

func (s *Service) CreateEmployee(ctx context.Context, fields model.EmployeeFields) (model.Employee, error) {
	started := time.Now()
	employee, err := s.employees.Create(ctx, fields)
	if err = s.finishMutation(ctx, opCreateEmployee, started, err, zap.Int64("employee_id", employee.ID)); err != nil {
		return model.Employee{}, err
	}
	return employee, nil
}

func (s *Service) UpdateEmployee(ctx context.Context, id int64, patch model.EmployeePatch) (model.Employee, error) {
	started := time.Now()
	employee, err := s.employees.Update(ctx, id, patch)
	if err = s.finishMutation(ctx, opUpdateEmployee, started, err, zap.Int64("employee_id", id)); err != nil {
		return model.Employee{}, err
	}
	return employee, nil
}

// DeleteEmployee removes the employee together with every task assigned to it.
func (s *Service) DeleteEmployee(ctx context.Context, id int64) (model.Deletion, error) {
	started := time.Now()
	cascaded, err := s.employees.Delete(ctx, id)
	if err = s.finishMutation(ctx, opDeleteEmployee, started, err, zap.Int64("employee_id", id), zap.Int("cascaded_tasks", cascaded)); err != nil {
		return model.Deletion{}, err
	}
	return model.Deletion{Message: employeeDeletedMessage, CascadedTasks: cascaded}, nil
}

func (s *Service) ListTasks(ctx context.Context, search string, status model.StatusFilter) ([]model.Task, error) {
	started := time.Now()
	tasks, err := s.tasks.List(ctx, repository.TaskFilter{Search: search, Status: status})
	if err = s.finish(ctx, opListTasks, started, err,
		zap.String("search", search), zap.String("status", string(status)), zap.Int("count", len(tasks))); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTask returns nil without error when the task does not exist.
func (s *Service) GetTask(ctx context.Context, id int64) (*model.Task, error) {
	started := time.Now()
	task, err := s.tasks.GetByID(ctx, id)
	if err = s.finish(ctx, opGetTask, started, err, zap.Int64("task_id", id)); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *Service) CreateTask(ctx context.Context, fields model.TaskFields) (model.Task, error) {
	started := time.Now()
	task, err := s.tasks.Create(ctx, fields)
	if err = s.finishMutation(ctx, opCreateTask, started, err, zap.Int64("task_id", task.ID)); err != nil {
		return model.Task{}, err
	}
	return task, nil
}

func (s *Service) UpdateTask(ctx context.Context, id int64, patch model.TaskPatch) (model.Task, error) {
	started := time.Now()
	task, err := s.tasks.Update(ctx, id, patch)
	if err = s.finishMutation(ctx, opUpdateTask, started, err, zap.Int64("task_id", id)); err != nil {
		return model.Task{}, err
	}
	return task, nil
}

func (s *Service) DeleteTask(ctx context.Context, id int64) (model.Deletion, error) {
	started := time.Now()
	err := s.tasks.Delete(ctx, id)
	if err = s.finishMutation(ctx, opDeleteTask, started, err, zap.Int64("task_id", id)); err != nil {
		return model.Deletion{}, err
	}
	return model.Deletion{Message: taskDeletedMessage}, nil
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, repository.ErrNotFound):
		return "not_found"
	case errors.Is(err, repository.ErrDuplicateEmail):
		return "duplicate_email"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "error"
	}
}
