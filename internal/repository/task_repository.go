package repository

import (
	"context"

	"taskdesk/internal/model"
)

type TaskRepository struct {
	store *Store
}

type TaskRepositoryInterface interface {
	List(ctx context.Context, filter TaskFilter) ([]model.Task, error)
	GetByID(ctx context.Context, id int64) (*model.Task, error)
	Create(ctx context.Context, fields model.TaskFields) (model.Task, error)
	Update(ctx context.Context, id int64, patch model.TaskPatch) (model.Task, error)
	Delete(ctx context.Context, id int64) error
}

var _ TaskRepositoryInterface = (*TaskRepository)(nil)

func NewTaskRepository(store *Store) *TaskRepository {
	return &TaskRepository{store: store}
}

// List returns the tasks matching filter in insertion order, each joined
// with its assigned employee.
func (r *TaskRepository) List(_ context.Context, filter TaskFilter) ([]model.Task, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	tasks := make([]model.Task, 0, r.store.tasks.len())
	r.store.tasks.each(func(row taskRow) bool {
		t := r.store.resolveTask(row)
		if filter.Matches(t) {
			tasks = append(tasks, t)
		}
		return true
	})
	return tasks, nil
}

// GetByID returns nil, nil when no task has the id.
func (r *TaskRepository) GetByID(_ context.Context, id int64) (*model.Task, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	row, ok := r.store.tasks.get(id)
	if !ok {
		return nil, nil
	}
	t := r.store.resolveTask(row)
	return &t, nil
}

// Create appends a task. An employee_id that does not resolve is rejected.
func (r *TaskRepository) Create(_ context.Context, fields model.TaskFields) (model.Task, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if fields.EmployeeID != nil && !r.store.employeeExists(*fields.EmployeeID) {
		return model.Task{}, &NotFoundError{Entity: EntityEmployee, ID: *fields.EmployeeID}
	}
	now := r.store.nowFn()
	row := r.store.tasks.insert(func(id int64) taskRow {
		return taskRow{
			ID:          id,
			Title:       fields.Title,
			Description: fields.Description,
			Status:      fields.Status,
			EmployeeID:  cloneID(fields.EmployeeID),
			CreatedAt:   now,
		}
	})
	return r.store.resolveTask(row), nil
}

// Update merges patch into the stored task. On error nothing changes.
func (r *TaskRepository) Update(_ context.Context, id int64, patch model.TaskPatch) (model.Task, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	row, ok := r.store.tasks.get(id)
	if !ok {
		return model.Task{}, &NotFoundError{Entity: EntityTask, ID: id}
	}
	if patch.Employee.Set && patch.Employee.ID != nil && !r.store.employeeExists(*patch.Employee.ID) {
		return model.Task{}, &NotFoundError{Entity: EntityEmployee, ID: *patch.Employee.ID}
	}

	t := r.store.resolveTask(row)
	patch.Apply(&t)
	row = taskRow{
		ID:          row.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		EmployeeID:  t.EmployeeID,
		CreatedAt:   row.CreatedAt,
	}
	r.store.tasks.put(id, row)
	return r.store.resolveTask(row), nil
}

func (r *TaskRepository) Delete(_ context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if !r.store.tasks.remove(id) {
		return &NotFoundError{Entity: EntityTask, ID: id}
	}
	return nil
}
