package promise

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	rifterrors "github.com/riftlang/riftbuild/pkg/errors"
)

func TestPromiseAwaitReceivesValue(t *testing.T) {
	t.Parallel()

	p := New[string]()
	require.NoError(t, p.Complete("pickle-uri"))

	outcome, err := p.Await(context.Background())
	require.NoError(t, err)
	require.True(t, outcome.HasValue)
	require.Equal(t, "pickle-uri", outcome.Value)
}

func TestPromiseAwaitReceivesSentinel(t *testing.T) {
	t.Parallel()

	p := New[string]()
	require.NoError(t, p.Fail(FailPromise))

	outcome, err := p.Await(context.Background())
	require.NoError(t, err)
	require.False(t, outcome.HasValue)
	require.Equal(t, FailPromise, outcome.FailKind)
}

func TestPromiseSecondWriteIsProgrammerError(t *testing.T) {
	t.Parallel()

	p := New[int]()
	require.NoError(t, p.Complete(1))

	err := p.Complete(2)
	require.Error(t, err)

	var violation *rifterrors.PromiseViolationError
	require.ErrorAs(t, err, &violation)
}

func TestPromiseAwaitUnblocksOnCancellation(t *testing.T) {
	t.Parallel()

	p := New[int]()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := p.Await(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPromiseConcurrentAwaitersAllObserveSameOutcome(t *testing.T) {
	t.Parallel()

	p := New[string]()
	const readers = 20

	var wg sync.WaitGroup
	results := make([]Outcome[string], readers)
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			outcome, err := p.Await(context.Background())
			require.NoError(t, err)
			results[i] = outcome
		}(i)
	}

	require.NoError(t, p.Complete("shared-uri"))
	wg.Wait()

	for _, r := range results {
		require.True(t, r.HasValue)
		require.Equal(t, "shared-uri", r.Value)
	}
}

func TestCompletedAndFailedHelpers(t *testing.T) {
	t.Parallel()

	completed := Completed("uri")
	require.True(t, completed.Resolved())

	failed := Failed[string](CompletePromise)
	outcome, err := failed.Await(context.Background())
	require.NoError(t, err)
	require.False(t, outcome.HasValue)
	require.Equal(t, CompletePromise, outcome.FailKind)
}
