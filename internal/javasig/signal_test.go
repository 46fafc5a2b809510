package javasig

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCombine_ContinueIsIdentity(t *testing.T) {
	t.Parallel()

	out := Combine(Continue(), Continue())
	require.Equal(t, ContinueCompilation, out.Kind)
}

func TestCombine_FailFastDominates(t *testing.T) {
	t.Parallel()

	out := Combine(Continue(), FailFast("core"))
	require.Equal(t, FailFastCompilation, out.Kind)
	require.Equal(t, []string{"core"}, out.Blocked)
}

func TestCombine_FailFastListsConcatenate(t *testing.T) {
	t.Parallel()

	out := Combine(FailFast("core"), FailFast("http"))
	require.Equal(t, FailFastCompilation, out.Kind)
	require.ElementsMatch(t, []string{"core", "http"}, out.Blocked)
}

func TestFold_AllContinueYieldsContinue(t *testing.T) {
	t.Parallel()

	tasks := []Task{
		func(context.Context) JavaSignal { return Continue() },
		func(context.Context) JavaSignal { return Continue() },
		func(context.Context) JavaSignal { return Continue() },
	}

	out := Fold(context.Background(), tasks)
	require.Equal(t, ContinueCompilation, out.Kind)
}

func TestFold_AnyFailFastDominatesAndConcatenates(t *testing.T) {
	t.Parallel()

	tasks := []Task{
		func(context.Context) JavaSignal { return Continue() },
		func(context.Context) JavaSignal { return FailFast("core") },
		func(context.Context) JavaSignal { return FailFast("http") },
	}

	out := Fold(context.Background(), tasks)
	require.Equal(t, FailFastCompilation, out.Kind)
	require.Equal(t, []string{"core", "http"}, out.Blocked)
}

func TestFold_AwaitsEveryTaskEvenThoughResultIsAlreadyDetermined(t *testing.T) {
	t.Parallel()

	invoked := make(chan string, 3)
	tasks := []Task{
		func(context.Context) JavaSignal { invoked <- "a"; return FailFast("a") },
		func(context.Context) JavaSignal { invoked <- "b"; return Continue() },
		func(context.Context) JavaSignal { invoked <- "c"; return Continue() },
	}

	Fold(context.Background(), tasks)
	close(invoked)

	var names []string
	for n := range invoked {
		names = append(names, n)
	}
	require.Len(t, names, 3)
}

func TestFold_EmptyYieldsContinue(t *testing.T) {
	t.Parallel()

	out := Fold(context.Background(), nil)
	require.Equal(t, ContinueCompilation, out.Kind)
}
