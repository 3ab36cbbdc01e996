// Package viewstate holds the caller-side state behind the employee and task
// pages: debounced searches, latest-request-wins list refreshes, refresh after
// delete and form loading.
package viewstate

import (
	"context"
	"sync"
	"time"

	"taskdesk/internal/model"
)

type EmployeeSource interface {
	ListEmployees(ctx context.Context, search string) ([]model.Employee, error)
	DeleteEmployee(ctx context.Context, id int64) (model.Deletion, error)
}

type TaskSource interface {
	ListTasks(ctx context.Context, search string, status model.StatusFilter) ([]model.Task, error)
	DeleteTask(ctx context.Context, id int64) (model.Deletion, error)
}

// ListState is what a list page renders. Loading is only set while the list
// is empty, so later searches keep showing the previous items.
type ListState[T any] struct {
	Items   []T
	Loading bool
	Err     error
}

type query struct {
	search string
	status model.StatusFilter
}

type listView[T any] struct {
	fetch    func(ctx context.Context, q query) ([]T, error)
	debounce *Debouncer
	latest   Latest[[]T]
	ctx      context.Context
	cancel   context.CancelFunc

	mu    sync.Mutex
	q     query
	state ListState[T]
}

func newListView[T any](debounce time.Duration, fetch func(context.Context, query) ([]T, error)) *listView[T] {
	ctx, cancel := context.WithCancel(context.Background())
	return &listView[T]{
		fetch:    fetch,
		debounce: NewDebouncer(debounce),
		ctx:      ctx,
		cancel:   cancel,
		q:        query{status: model.StatusAll},
		state:    ListState[T]{Loading: true},
	}
}

func (v *listView[T]) update(mut func(*query)) {
	v.mu.Lock()
	mut(&v.q)
	v.mu.Unlock()
	v.debounce.Schedule(func() { _ = v.refresh(v.ctx) })
}

// refresh fetches with the current query. A superseded refresh returns nil
// and leaves the state to the newer one.
func (v *listView[T]) refresh(ctx context.Context) error {
	v.mu.Lock()
	q := v.q
	if len(v.state.Items) == 0 {
		v.state.Loading = true
	}
	v.mu.Unlock()

	var failed error
	v.latest.Do(ctx,
		func(ctx context.Context) ([]T, error) { return v.fetch(ctx, q) },
		func(items []T, err error) {
			v.mu.Lock()
			defer v.mu.Unlock()
			v.state.Loading = false
			if err != nil {
				v.state.Err = err
				failed = err
				return
			}
			v.state.Items = items
			v.state.Err = nil
		})
	return failed
}

func (v *listView[T]) snapshot() ListState[T] {
	v.mu.Lock()
	defer v.mu.Unlock()
	s := v.state
	s.Items = append([]T(nil), v.state.Items...)
	return s
}

func (v *listView[T]) close() {
	v.cancel()
	v.debounce.Stop()
}

// EmployeeList backs the employee list page.
type EmployeeList struct {
	src  EmployeeSource
	view *listView[model.Employee]
}

func NewEmployeeList(src EmployeeSource, debounce time.Duration) *EmployeeList {
	return &EmployeeList{
		src: src,
		view: newListView(debounce, func(ctx context.Context, q query) ([]model.Employee, error) {
			return src.ListEmployees(ctx, q.search)
		}),
	}
}

// SetSearch changes the search term; the list refreshes after the debounce.
func (l *EmployeeList) SetSearch(term string) {
	l.view.update(func(q *query) { q.search = term })
}

func (l *EmployeeList) Refresh(ctx context.Context) error {
	return l.view.refresh(ctx)
}

// Delete removes the employee and reloads the list with the current search.
func (l *EmployeeList) Delete(ctx context.Context, id int64) (model.Deletion, error) {
	deletion, err := l.src.DeleteEmployee(ctx, id)
	if err != nil {
		return model.Deletion{}, err
	}
	return deletion, l.view.refresh(ctx)
}

func (l *EmployeeList) State() ListState[model.Employee] {
	return l.view.snapshot()
}

// Close cancels in-flight debounced refreshes and waits for them to return.
func (l *EmployeeList) Close() {
	l.view.close()
}

// TaskList backs the task list page.
type TaskList struct {
	src  TaskSource
	view *listView[model.Task]
}

func NewTaskList(src TaskSource, debounce time.Duration) *TaskList {
	return &TaskList{
		src: src,
		view: newListView(debounce, func(ctx context.Context, q query) ([]model.Task, error) {
			return src.ListTasks(ctx, q.search, q.status)
		}),
	}
}

func (l *TaskList) SetSearch(term string) {
	l.view.update(func(q *query) { q.search = term })
}

func (l *TaskList) SetStatus(status model.StatusFilter) {
	l.view.update(func(q *query) { q.status = status })
}

func (l *TaskList) Refresh(ctx context.Context) error {
	return l.view.refresh(ctx)
}

// Delete removes the task and reloads the list with the current filters.
func (l *TaskList) Delete(ctx context.Context, id int64) (model.Deletion, error) {
	deletion, err := l.src.DeleteTask(ctx, id)
	if err != nil {
		return model.Deletion{}, err
	}
	return deletion, l.view.refresh(ctx)
}

func (l *TaskList) State() ListState[model.Task] {
	return l.view.snapshot()
}

func (l *TaskList) Close() {
	l.view.close()
}
