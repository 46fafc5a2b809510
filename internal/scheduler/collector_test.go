package scheduler

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/riftlang/riftbuild/internal/buildstate"
	"github.com/riftlang/riftbuild/internal/project"
	"github.com/stretchr/testify/require"
)

func TestCollectDedupesSharedSubDagAcrossParents(t *testing.T) {
	t.Parallel()

	leafB := project.NewLeaf(proj("B"))
	nodeA := project.NewParent(proj("A"), leafB)
	nodeC := project.NewParent(proj("C"), leafB)
	root := project.NewAggregate(nodeA, nodeC)

	rec := newRecordingCompiler(nil)
	buf := &bytes.Buffer{}
	w := NewWalker(testSetup(), rec.Func(), true, NewPool(4), testLogger(t, buf))
	resultDag := w.Traverse(context.Background(), root)

	state := buildstate.New()
	collected := Collect(context.Background(), resultDag, state, testLogger(t, buf))

	require.Equal(t, Ok, collected.Status)
	_, ok := state.Result("B")
	require.True(t, ok)

	// B's compile itself only ever ran once (walker memoisation); the
	// collector visiting B twice through A and C must not be observable
	// as a duplicate failure or a crash.
	require.Equal(t, 1, rec.count("B"))
}

func TestCollectLogsStackForFailedCompile(t *testing.T) {
	t.Parallel()

	leafA := project.NewLeaf(proj("A"))

	rec := newRecordingCompiler(map[string]error{"A": errors.New("NullPointerException")})
	buf := &bytes.Buffer{}
	log := testLogger(t, buf)
	w := NewWalker(testSetup(), rec.Func(), true, NewPool(4), log)
	resultDag := w.Traverse(context.Background(), leafA)

	state := buildstate.New()
	collected := Collect(context.Background(), resultDag, state, log)

	require.Equal(t, CompilationError, collected.Status)
	require.Equal(t, []string{"A"}, collected.Failed)
	require.Contains(t, buf.String(), "NullPointerException")
}
