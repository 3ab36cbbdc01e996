package repository

import (
	"context"

	"taskdesk/internal/model"
)

type EmployeeRepository struct {
	store *Store
}

type EmployeeRepositoryInterface interface {
	List(ctx context.Context, filter EmployeeFilter) ([]model.Employee, error)
	GetByID(ctx context.Context, id int64) (*model.Employee, error)
	Create(ctx context.Context, fields model.EmployeeFields) (model.Employee, error)
	Update(ctx context.Context, id int64, patch model.EmployeePatch) (model.Employee, error)
	Delete(ctx context.Context, id int64) (int, error)
}

var _ EmployeeRepositoryInterface = (*EmployeeRepository)(nil)

func NewEmployeeRepository(store *Store) *EmployeeRepository {
	return &EmployeeRepository{store: store}
}

// List returns the employees matching filter in insertion order.
func (r *EmployeeRepository) List(_ context.Context, filter EmployeeFilter) ([]model.Employee, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	employees := make([]model.Employee, 0, r.store.employees.len())
	r.store.employees.each(func(e model.Employee) bool {
		if filter.Matches(e) {
			employees = append(employees, e)
		}
		return true
	})
	return employees, nil
}

// GetByID returns nil, nil when no employee has the id.
func (r *EmployeeRepository) GetByID(_ context.Context, id int64) (*model.Employee, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	e, ok := r.store.employees.get(id)
	if !ok {
		return nil, nil
	}
	return &e, nil
}

// Create assigns the next id and creation time and appends the employee.
func (r *EmployeeRepository) Create(_ context.Context, fields model.EmployeeFields) (model.Employee, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if r.store.emailTaken(fields.Email, 0) {
		return model.Employee{}, &DuplicateEmailError{Email: fields.Email}
	}
	now := r.store.nowFn()
	return r.store.employees.insert(func(id int64) model.Employee {
		return model.Employee{
			ID:        id,
			Name:      fields.Name,
			Email:     fields.Email,
			Role:      fields.Role,
			CreatedAt: now,
		}
	}), nil
}

// Update merges patch into the stored employee. On error nothing changes.
func (r *EmployeeRepository) Update(_ context.Context, id int64, patch model.EmployeePatch) (model.Employee, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	e, ok := r.store.employees.get(id)
	if !ok {
		return model.Employee{}, &NotFoundError{Entity: EntityEmployee, ID: id}
	}
	if patch.Email != nil && r.store.emailTaken(*patch.Email, id) {
		return model.Employee{}, &DuplicateEmailError{Email: *patch.Email}
	}
	patch.Apply(&e)
	r.store.employees.put(id, e)
	return e, nil
}

// Delete removes the employee and, in the same critical section, every task
// assigned to it. It returns the number of tasks removed.
func (r *EmployeeRepository) Delete(_ context.Context, id int64) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if !r.store.employees.remove(id) {
		return 0, &NotFoundError{Entity: EntityEmployee, ID: id}
	}
	return r.store.tasks.removeWhere(func(t taskRow) bool {
		return t.EmployeeID != nil && *t.EmployeeID == id
	}), nil
}
