package repository

import (
	"sync"
	"time"

	"taskdesk/internal/model"
)

// table is an insertion-ordered id -> row mapping with its own id sequence.
type table[T any] struct {
	rows  map[int64]T
	order []int64
	next  int64
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[int64]T), next: 1}
}

func (t *table[T]) insert(row func(id int64) T) T {
	id := t.next
	t.next++
	r := row(id)
	t.rows[id] = r
	t.order = append(t.order, id)
	return r
}

func (t *table[T]) get(id int64) (T, bool) {
	r, ok := t.rows[id]
	return r, ok
}

func (t *table[T]) put(id int64, r T) {
	t.rows[id] = r
}

func (t *table[T]) remove(id int64) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	for i, v := range t.order {
		if v == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return true
}

// removeWhere drops every row matching pred and returns how many were removed.
func (t *table[T]) removeWhere(pred func(T) bool) int {
	kept := t.order[:0]
	removed := 0
	for _, id := range t.order {
		if pred(t.rows[id]) {
			delete(t.rows, id)
			removed++
			continue
		}
		kept = append(kept, id)
	}
	t.order = kept
	return removed
}

func (t *table[T]) each(fn func(T) bool) {
	for _, id := range t.order {
		if !fn(t.rows[id]) {
			return
		}
	}
}

func (t *table[T]) len() int {
	return len(t.order)
}

// taskRow is the stored form of a task. It never carries the resolved employee.
type taskRow struct {
	ID          int64
	Title       string
	Description string
	Status      model.TaskStatus
	EmployeeID  *int64
	CreatedAt   time.Time
}

// Store owns the employee and task collections. Both repositories share one
// lock so that cross-collection operations such as cascade delete are atomic.
type Store struct {
	mu        sync.RWMutex
	employees *table[model.Employee]
	tasks     *table[taskRow]
	nowFn     func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for created_at.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.nowFn = now
		}
	}
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		employees: newTable[model.Employee](),
		tasks:     newTable[taskRow](),
		nowFn:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Counts returns the number of stored employees and tasks.
func (s *Store) Counts() (employees, tasks int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.employees.len(), s.tasks.len()
}

// emailTaken reports whether another employee already uses email. Caller holds the lock.
func (s *Store) emailTaken(email string, exceptID int64) bool {
	taken := false
	s.employees.each(func(e model.Employee) bool {
		if e.ID != exceptID && equalEmail(e.Email, email) {
			taken = true
			return false
		}
		return true
	})
	return taken
}

// employeeExists reports whether id resolves. Caller holds the lock.
func (s *Store) employeeExists(id int64) bool {
	_, ok := s.employees.get(id)
	return ok
}

// resolveTask joins a stored row with its employee. Caller holds the lock.
func (s *Store) resolveTask(r taskRow) model.Task {
	t := model.Task{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
		EmployeeID:  cloneID(r.EmployeeID),
		CreatedAt:   r.CreatedAt,
	}
	if r.EmployeeID != nil {
		if e, ok := s.employees.get(*r.EmployeeID); ok {
			t.Employee = &e
		}
	}
	return t
}

func cloneID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
