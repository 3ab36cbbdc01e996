package viewstate_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"taskdesk/internal/model"
	"taskdesk/internal/repository"
	"taskdesk/internal/service"
	"taskdesk/internal/viewstate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func seededService(t *testing.T) *service.Service {
	t.Helper()
	store := repository.NewStore()
	require.NoError(t, repository.Seed(context.Background(), store))
	return service.NewFromStore(store, service.WithDelay(service.NoDelay{}))
}

// countingSource counts list calls so tests can observe debouncing.
type countingSource struct {
	*service.Service
	lists atomic.Int32
	err   error
}

func (c *countingSource) ListEmployees(ctx context.Context, search string) ([]model.Employee, error) {
	c.lists.Add(1)
	if c.err != nil {
		return nil, c.err
	}
	return c.Service.ListEmployees(ctx, search)
}

func names(employees []model.Employee) []string {
	out := make([]string, 0, len(employees))
	for _, e := range employees {
		out = append(out, e.Name)
	}
	return out
}

func TestEmployeeList_InitialState(t *testing.T) {
	list := viewstate.NewEmployeeList(seededService(t), time.Millisecond)
	defer list.Close()

	state := list.State()

	assert.True(t, state.Loading)
	assert.Empty(t, state.Items)
	assert.NoError(t, state.Err)
}

func TestEmployeeList_Refresh(t *testing.T) {
	list := viewstate.NewEmployeeList(seededService(t), time.Millisecond)
	defer list.Close()

	require.NoError(t, list.Refresh(context.Background()))

	state := list.State()
	assert.False(t, state.Loading)
	assert.Equal(t, []string{"Alice Johnson", "Bob Williams", "Charlie Brown"}, names(state.Items))
}

func TestEmployeeList_SearchIsDebounced(t *testing.T) {
	src := &countingSource{Service: seededService(t)}
	list := viewstate.NewEmployeeList(src, 50*time.Millisecond)
	defer list.Close()

	for _, term := range []string{"b", "bo", "bob"} {
		list.SetSearch(term)
	}

	require.Eventually(t, func() bool {
		return len(list.State().Items) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"Bob Williams"}, names(list.State().Items))
	assert.Equal(t, int32(1), src.lists.Load())
}

func TestEmployeeList_RefreshErrorKeepsItems(t *testing.T) {
	src := &countingSource{Service: seededService(t)}
	list := viewstate.NewEmployeeList(src, time.Millisecond)
	defer list.Close()
	require.NoError(t, list.Refresh(context.Background()))

	src.err = assert.AnError
	err := list.Refresh(context.Background())

	assert.ErrorIs(t, err, assert.AnError)
	state := list.State()
	assert.ErrorIs(t, state.Err, assert.AnError)
	assert.Len(t, state.Items, 3)
	assert.False(t, state.Loading)
}

func TestEmployeeList_DeleteRefreshesWithCurrentSearch(t *testing.T) {
	svc := seededService(t)
	list := viewstate.NewEmployeeList(svc, time.Millisecond)
	defer list.Close()
	list.SetSearch("developer")
	require.Eventually(t, func() bool { return len(list.State().Items) == 2 }, time.Second, 5*time.Millisecond)

	deletion, err := list.Delete(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, 2, deletion.CascadedTasks)
	assert.Equal(t, []string{"Bob Williams"}, names(list.State().Items))
}

func TestEmployeeList_DeleteMissing(t *testing.T) {
	list := viewstate.NewEmployeeList(seededService(t), time.Millisecond)
	defer list.Close()

	_, err := list.Delete(context.Background(), 99)

	assert.EqualError(t, err, "Employee not found.")
}

func TestTaskList_StatusAndSearch(t *testing.T) {
	list := viewstate.NewTaskList(seededService(t), 10*time.Millisecond)
	defer list.Close()

	list.SetStatus(model.StatusFilter(model.TaskStatusInProgress))
	list.SetSearch("pipeline")

	require.Eventually(t, func() bool {
		items := list.State().Items
		return len(items) == 1 && items[0].Title == "Setup CI/CD Pipeline"
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, "Bob Williams", list.State().Items[0].Employee.Name)
}

func TestTaskList_Delete(t *testing.T) {
	list := viewstate.NewTaskList(seededService(t), time.Millisecond)
	defer list.Close()
	require.NoError(t, list.Refresh(context.Background()))
	require.Len(t, list.State().Items, 5)

	deletion, err := list.Delete(context.Background(), 2)

	require.NoError(t, err)
	assert.Equal(t, "Task deleted successfully", deletion.Message)
	items := list.State().Items
	require.Len(t, items, 4)
	for _, task := range items {
		assert.NotEqual(t, int64(2), task.ID)
	}
}

func TestTaskList_StateIsACopy(t *testing.T) {
	list := viewstate.NewTaskList(seededService(t), time.Millisecond)
	defer list.Close()
	require.NoError(t, list.Refresh(context.Background()))

	state := list.State()
	state.Items[0].Title = "mutated"

	assert.Equal(t, "Design Homepage UI", list.State().Items[0].Title)
}
