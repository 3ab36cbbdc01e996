package viewstate

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLatest_DropsOlderResultArrivingLate(t *testing.T) {
	var latest Latest[string]
	started := make(chan struct{})
	release := make(chan struct{})
	var applied []string
	var wg sync.WaitGroup

	wg.Add(1)
	var firstApplied bool
	go func() {
		defer wg.Done()
		firstApplied = latest.Do(context.Background(),
			func(context.Context) (string, error) {
				close(started)
				<-release // ignores cancellation, like a request already on the wire
				return "first", nil
			},
			func(v string, _ error) { applied = append(applied, v) })
	}()
	<-started

	secondApplied := latest.Do(context.Background(),
		func(context.Context) (string, error) { return "second", nil },
		func(v string, _ error) { applied = append(applied, v) })
	close(release)
	wg.Wait()

	assert.True(t, secondApplied)
	assert.False(t, firstApplied)
	assert.Equal(t, []string{"second"}, applied)
}

func TestLatest_CancelsSupersededRequest(t *testing.T) {
	var latest Latest[string]
	started := make(chan struct{})
	var wg sync.WaitGroup
	var firstErr error
	var firstApplied bool

	wg.Add(1)
	go func() {
		defer wg.Done()
		firstApplied = latest.Do(context.Background(),
			func(ctx context.Context) (string, error) {
				close(started)
				<-ctx.Done()
				firstErr = ctx.Err()
				return "", ctx.Err()
			},
			func(string, error) {})
	}()
	<-started

	// Issuing the second request cancels the first before it returns.
	var got string
	latest.Do(context.Background(),
		func(context.Context) (string, error) {
			wg.Wait()
			return "second", nil
		},
		func(v string, _ error) { got = v })

	assert.ErrorIs(t, firstErr, context.Canceled)
	assert.False(t, firstApplied)
	assert.Equal(t, "second", got)
}

func TestLatest_InOrderResultsAllApply(t *testing.T) {
	var latest Latest[int]
	var applied []int

	for i := 1; i <= 3; i++ {
		n := i
		ok := latest.Do(context.Background(),
			func(context.Context) (int, error) { return n, nil },
			func(v int, _ error) { applied = append(applied, v) })
		assert.True(t, ok)
	}

	assert.Equal(t, []int{1, 2, 3}, applied)
}
