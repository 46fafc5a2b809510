package toolchain

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/riftlang/riftbuild/internal/bundle"
	"github.com/riftlang/riftbuild/internal/compiler"
	"github.com/riftlang/riftbuild/internal/javasig"
	"github.com/riftlang/riftbuild/internal/logger"
	"github.com/riftlang/riftbuild/internal/project"
	"github.com/riftlang/riftbuild/internal/promise"
	"github.com/stretchr/testify/require"
)

type fakeInvoker struct {
	pickleErr error
	fullErr   error
	javaErr   error
}

func (f *fakeInvoker) CompilePickle(ctx context.Context, name string, sources, classpath, picklepath []string) (string, error) {
	if f.pickleErr != nil {
		return "", f.pickleErr
	}
	return "pickle://" + name, nil
}

func (f *fakeInvoker) CompileFull(ctx context.Context, name string, sources, classpath, picklepath []string) error {
	return f.fullErr
}

func (f *fakeInvoker) CompileJava(ctx context.Context, name string, javaSources, classpath []string) error {
	return f.javaErr
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	l, err := logger.New(logger.Options{Level: "trace", Writer: &bytes.Buffer{}})
	require.NoError(t, err)
	return l
}

func continueSignal(context.Context) javasig.JavaSignal { return javasig.Continue() }

func TestCompileFuncHappyPathCompletesPicklePromise(t *testing.T) {
	t.Parallel()

	p := &project.Project{Name: "core", Sources: []string{"A.scala"}}
	b := bundle.FromProject(p)

	in := compiler.Inputs{
		Bundle:               b,
		PickleReady:          promise.New[string](),
		CompleteJava:         promise.New[struct{}](),
		TransitiveJavaSignal: continueSignal,
	}

	fn := New(&fakeInvoker{}, testLogger(t))
	result := fn(context.Background(), in)

	require.Equal(t, compiler.Ok, result.Status)
	outcome, err := in.PickleReady.Await(context.Background())
	require.NoError(t, err)
	require.True(t, outcome.HasValue)
	require.Equal(t, "pickle://core", outcome.Value)
}

func TestCompileFuncPickleFailureFailsPromiseAndReturnsNotOk(t *testing.T) {
	t.Parallel()

	p := &project.Project{Name: "core", Sources: []string{"A.scala"}}
	b := bundle.FromProject(p)

	in := compiler.Inputs{
		Bundle:               b,
		PickleReady:          promise.New[string](),
		CompleteJava:         promise.New[struct{}](),
		TransitiveJavaSignal: continueSignal,
	}

	fn := New(&fakeInvoker{pickleErr: errors.New("boom")}, testLogger(t))
	result := fn(context.Background(), in)

	require.Equal(t, compiler.NotOk, result.Status)
	require.Equal(t, compiler.Failed, result.Kind)

	outcome, err := in.PickleReady.Await(context.Background())
	require.NoError(t, err)
	require.False(t, outcome.HasValue)
	require.Equal(t, promise.FailPromise, outcome.FailKind)
}

func TestCompileFuncTransitiveFailFastBlocksWithoutFullCompile(t *testing.T) {
	t.Parallel()

	p := &project.Project{Name: "app", Sources: []string{"B.scala"}}
	b := bundle.FromProject(p)

	invoker := &fakeInvoker{fullErr: errors.New("should not be called")}
	in := compiler.Inputs{
		Bundle:      b,
		PickleReady: promise.New[string](),
		CompleteJava: promise.New[struct{}](),
		TransitiveJavaSignal: func(context.Context) javasig.JavaSignal {
			return javasig.FailFast("core")
		},
	}

	fn := New(invoker, testLogger(t))
	result := fn(context.Background(), in)

	require.Equal(t, compiler.NotOk, result.Status)
	require.Equal(t, compiler.Blocked, result.Kind)
	require.Equal(t, []string{"core"}, result.BlockedBy)
}

func TestCompileFuncJavaOnlyBundleSkipsPickleAndFullCompile(t *testing.T) {
	t.Parallel()

	p := &project.Project{Name: "javalib", JavaSources: []string{"J.java"}}
	b := bundle.FromProject(p)
	require.True(t, b.JavaOnly)

	in := compiler.Inputs{
		Bundle:               b,
		PickleReady:          promise.New[string](),
		CompleteJava:         promise.New[struct{}](),
		TransitiveJavaSignal: continueSignal,
	}

	fn := New(&fakeInvoker{}, testLogger(t))
	result := fn(context.Background(), in)

	require.Equal(t, compiler.Ok, result.Status)
	outcome, err := in.CompleteJava.Await(context.Background())
	require.NoError(t, err)
	require.True(t, outcome.HasValue)
}

func TestCompileFuncNoSourcesReturnsEarlyOkWithoutTouchingPromises(t *testing.T) {
	t.Parallel()

	p := &project.Project{Name: "empty"}
	b := bundle.FromProject(p)

	in := compiler.Inputs{
		Bundle:               b,
		PickleReady:          promise.New[string](),
		CompleteJava:         promise.New[struct{}](),
		TransitiveJavaSignal: continueSignal,
	}

	fn := New(&fakeInvoker{}, testLogger(t))
	result := fn(context.Background(), in)

	require.Equal(t, compiler.Ok, result.Status)
	require.False(t, in.PickleReady.Resolved())
	require.False(t, in.CompleteJava.Resolved())
}
