// Package scheduler implements the DAG Walker, Pipeline Coordinator and
// Result Collector: the memoised traversal that schedules a project DAG
// at most once per invocation, assembles each node's Inputs, and folds
// the resulting Dag[PartialCompileResult] into an aggregate build status.
package scheduler

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riftlang/riftbuild/internal/bundle"
	"github.com/riftlang/riftbuild/internal/compiler"
	"github.com/riftlang/riftbuild/internal/javasig"
	"github.com/riftlang/riftbuild/internal/logger"
	"github.com/riftlang/riftbuild/internal/partial"
	"github.com/riftlang/riftbuild/internal/project"
	"github.com/riftlang/riftbuild/internal/promise"
)

// Walker holds the state of one traversal: the memoisation map keyed by
// input-DAG pointer identity, and the injected setup/compile operations.
// Construct a fresh Walker per invocation; it is not meant to be reused
// across separate `compile` calls.
type Walker struct {
	setup    compiler.SetupFunc
	compile  compiler.Func
	pipeline bool
	pool     *Pool
	log      *logger.Logger
	notify   NotifyFunc

	mu   sync.Mutex
	memo map[*project.Dag[*project.Project]]*memoEntry
}

type memoEntry struct {
	once sync.Once
	node *partial.Node
}

// NotifyFunc is an optional progress hook the caller supplies so a live
// reporter can render each project's lifecycle as it happens, instead of
// only after the whole traversal returns. It is a side channel: the
// Walker's actual scheduling and promise semantics never depend on it.
type NotifyFunc func(project, status, detail string)

// NewWalker constructs a Walker for one traversal.
func NewWalker(setup compiler.SetupFunc, compile compiler.Func, pipeline bool, pool *Pool, log *logger.Logger) *Walker {
	return &Walker{
		setup:    setup,
		compile:  compile,
		pipeline: pipeline,
		pool:     pool,
		log:      log,
		memo:     make(map[*project.Dag[*project.Project]]*memoEntry),
	}
}

// WithNotify attaches a progress hook and returns the same Walker for
// chaining at construction time.
func (w *Walker) WithNotify(fn NotifyFunc) *Walker {
	w.notify = fn
	return w
}

func (w *Walker) emit(project, status, detail string) {
	if w.notify != nil {
		w.notify(project, status, detail)
	}
}

// Traverse schedules dag and returns the result DAG with the same shape.
func (w *Walker) Traverse(ctx context.Context, dag *project.Dag[*project.Project]) *partial.Node {
	return w.schedule(ctx, dag)
}

func (w *Walker) schedule(ctx context.Context, d *project.Dag[*project.Project]) *partial.Node {
	w.mu.Lock()
	entry, ok := w.memo[d]
	if !ok {
		entry = &memoEntry{}
		w.memo[d] = entry
	}
	w.mu.Unlock()

	entry.once.Do(func() {
		entry.node = w.scheduleUncached(ctx, d)
	})
	return entry.node
}

func (w *Walker) scheduleUncached(ctx context.Context, d *project.Dag[*project.Project]) *partial.Node {
	switch d.Shape {
	case project.Leaf:
		return w.scheduleProjectNode(ctx, project.Leaf, d.Value, nil)

	case project.Parent:
		deps := gather(ctx, d.Children, w.schedule)
		return w.scheduleProjectNode(ctx, project.Parent, d.Value, deps)

	case project.Aggregate:
		children := gather(ctx, d.Children, w.schedule)
		failures := collectFailurePayloads(children)
		value := &partial.Result{Kind: partial.Empty}
		if len(failures) > 0 {
			value = &partial.Result{Kind: partial.Failures, Failures: failures}
		}
		return &partial.Node{Shape: project.Aggregate, Value: value, Children: children}

	default:
		return &partial.Node{Shape: d.Shape, Value: &partial.Result{Kind: partial.Empty}}
	}
}

// gather runs fn over every item concurrently, preserving input order in
// the result slice.
func gather(ctx context.Context, items []*project.Dag[*project.Project], fn func(context.Context, *project.Dag[*project.Project]) *partial.Node) []*partial.Node {
	out := make([]*partial.Node, len(items))
	var wg sync.WaitGroup
	wg.Add(len(items))
	for i, item := range items {
		go func(i int, item *project.Dag[*project.Project]) {
			defer wg.Done()
			out[i] = fn(ctx, item)
		}(i, item)
	}
	wg.Wait()
	return out
}

// scheduleProjectNode is the unified Leaf/Parent scheduling step. The
// same code path serves both pipeline and non-pipeline mode:
// in non-pipeline mode every upstream pickleReady promise is already
// pre-resolved by the time it's awaited here, so the pipeline-specific
// "await pickle readiness" step below degrades to an instant read.
func (w *Walker) scheduleProjectNode(ctx context.Context, shape project.Shape, proj *project.Project, deps []*partial.Node) *partial.Node {
	b := w.setup(proj)
	w.emit(proj.Name, "scheduled", "")

	if blockedBy := structurallyBlocked(deps); len(blockedBy) > 0 {
		return w.synthesizeBlocked(shape, b, blockedBy, deps)
	}

	_, _, _, early := b.ToSourcesAndInstance()
	if early != nil {
		return w.synthesizeEarlySuccess(shape, b, early, deps)
	}

	transitive := collectTransitiveSuccesses(deps)

	picklepath, dynamicBlockedBy := awaitPicklepath(ctx, transitive)
	if len(dynamicBlockedBy) > 0 {
		return w.synthesizeBlocked(shape, b, dynamicBlockedBy, deps)
	}

	oracleEntries := make(map[string]*promise.Promise[struct{}])
	tasks := make([]javasig.Task, 0, len(transitive))
	for _, s := range transitive {
		if s.Bundle != nil && len(s.Bundle.JavaSources) > 0 {
			oracleEntries[s.Bundle.Project.Name] = s.CompleteJava
		}
		tasks = append(tasks, s.JavaTrigger)
	}

	pickleReady := promise.New[string]()
	var completeJava *promise.Promise[struct{}]
	if w.pipeline {
		completeJava = promise.New[struct{}]()
	} else {
		completeJava = promise.Completed(struct{}{})
	}

	in := compiler.Inputs{
		Bundle:       b,
		Picklepath:   picklepath,
		PickleReady:  pickleReady,
		CompleteJava: completeJava,
		TransitiveJavaSignal: func(ctx context.Context) javasig.JavaSignal {
			return javasig.Fold(ctx, tasks)
		},
		Oracle:               newOracle(oracleEntries),
		SeparateJavaAndScala: w.pipeline,
	}

	javaTrigger := makeJavaTrigger(b.Project.Name, completeJava)

	w.emit(b.Project.Name, "running", "")

	if w.pipeline {
		ongoing := promise.New[*compiler.FinalCompileResult]()
		w.pool.Fork(ctx, func() {
			result := w.compile(ctx, in)
			w.finalizePickleAndJava(in, result, b)
			w.emitOutcome(b.Project.Name, result)
			_ = ongoing.Complete(&compiler.FinalCompileResult{Bundle: b, Result: result})
		})
		// The node's result becomes visible to its parents once its own
		// pickle promise resolves; a FailPromise there makes it a Failure.
		if outcome, err := pickleReady.Await(ctx); err == nil && !outcome.HasValue && outcome.FailKind == promise.FailPromise {
			var failErr error
			if final, ferr := ongoing.Await(ctx); ferr == nil {
				failErr = final.Value.Result.Err
			}
			return &partial.Node{
				Shape: shape,
				Value: &partial.Result{Kind: partial.Failure, Failure: &partial.FailurePayload{
					Bundle: b, Cause: promise.FailPromise, Err: failErr, Ongoing: ongoing,
				}},
				Children: deps,
			}
		}
		return successNode(shape, b, pickleReady, completeJava, javaTrigger, ongoing, deps)
	}

	result := w.compile(ctx, in)
	w.finalizePickleAndJava(in, result, b)
	w.emitOutcome(b.Project.Name, result)
	ongoing := promise.Completed(&compiler.FinalCompileResult{Bundle: b, Result: result})

	if result.Status == compiler.NotOk {
		return &partial.Node{
			Shape: shape,
			Value: &partial.Result{Kind: partial.Failure, Failure: &partial.FailurePayload{
				Bundle: b, Cause: promise.FailPromise, Err: result.Err, Ongoing: ongoing,
			}},
			Children: deps,
		}
	}
	return successNode(shape, b, pickleReady, completeJava, javaTrigger, ongoing, deps)
}

func (w *Walker) emitOutcome(name string, result compiler.Result) {
	if result.IsOk() {
		w.emit(name, "ok", "")
		return
	}
	if result.Kind == compiler.Blocked {
		w.emit(name, "blocked", fmt.Sprintf("blocked by %v", result.BlockedBy))
		return
	}
	detail := ""
	if result.Err != nil {
		detail = result.Err.Error()
	}
	w.emit(name, "failed", detail)
}

func successNode(shape project.Shape, b *bundle.CompileBundle, pickleReady *promise.Promise[string], completeJava *promise.Promise[struct{}], javaTrigger javasig.Task, ongoing *promise.Promise[*compiler.FinalCompileResult], deps []*partial.Node) *partial.Node {
	return &partial.Node{
		Shape: shape,
		Value: &partial.Result{Kind: partial.Success, Success: &partial.SuccessPayload{
			Bundle: b, PickleReady: pickleReady, CompleteJava: completeJava, JavaTrigger: javaTrigger, Ongoing: ongoing,
		}},
		Children: deps,
	}
}

// finalizePickleAndJava applies the post-compile completion policy. It
// is exercised in both modes. In non-pipeline mode CompleteJava is
// pre-completed, and a compile operation that leaves in.PickleReady
// unresolved gets it completed here with CompletePromise (or FailPromise
// on failure) and no pipelining warning.
func (w *Walker) finalizePickleAndJava(in compiler.Inputs, result compiler.Result, b *bundle.CompileBundle) {
	if !in.PickleReady.Resolved() {
		if result.Status == compiler.NotOk {
			_ = in.PickleReady.Fail(promise.FailPromise)
		} else {
			_ = in.PickleReady.Fail(promise.CompletePromise)
			if w.pipeline && !b.JavaOnly {
				w.log.Warn(fmt.Sprintf("%s: pipelining requested but not used", b.Project.Name))
			}
		}
	} else {
		outcome, _ := in.PickleReady.Await(context.Background())
		if outcome.HasValue {
			w.log.Debug(fmt.Sprintf("%s: pickle produced", b.Project.Name))
		} else if w.pipeline {
			w.log.Warn(fmt.Sprintf("%s: pipelining expected but pickle is empty", b.Project.Name))
		}
	}

	if !in.CompleteJava.Resolved() {
		if result.Status == compiler.NotOk {
			_ = in.CompleteJava.Fail(promise.FailPromise)
		} else {
			_ = in.CompleteJava.Complete(struct{}{})
		}
	}
}

func (w *Walker) synthesizeBlocked(shape project.Shape, b *bundle.CompileBundle, blockedBy []string, deps []*partial.Node) *partial.Node {
	result := compiler.Result{Status: compiler.NotOk, Kind: compiler.Blocked, BlockedBy: blockedBy}
	w.emit(b.Project.Name, "blocked", fmt.Sprintf("blocked by %v", blockedBy))
	ongoing := promise.Completed(&compiler.FinalCompileResult{Bundle: b, Result: result})
	return &partial.Node{
		Shape: shape,
		Value: &partial.Result{Kind: partial.Failure, Failure: &partial.FailurePayload{
			Bundle: b, Cause: promise.BlockURI, BlockedBy: blockedBy, Ongoing: ongoing,
		}},
		Children: deps,
	}
}

func (w *Walker) synthesizeEarlySuccess(shape project.Shape, b *bundle.CompileBundle, early *bundle.EarlyResult, deps []*partial.Node) *partial.Node {
	result := compiler.Result{Status: compiler.Ok}
	ongoing := promise.Completed(&compiler.FinalCompileResult{Bundle: b, Result: result})
	pickleReady := promise.Failed[string](promise.CompletePromise)
	completeJava := promise.Completed(struct{}{})
	javaTrigger := makeJavaTrigger(b.Project.Name, completeJava)

	w.log.Debug(fmt.Sprintf("%s: early result (%s)", b.Project.Name, early.Reason))
	w.emit(b.Project.Name, "ok", early.Reason)

	return successNode(shape, b, pickleReady, completeJava, javaTrigger, ongoing, deps)
}

func makeJavaTrigger(projectName string, completeJava *promise.Promise[struct{}]) javasig.Task {
	var once sync.Once
	var result javasig.JavaSignal
	return func(ctx context.Context) javasig.JavaSignal {
		once.Do(func() {
			outcome, err := completeJava.Await(ctx)
			if err != nil || !outcome.HasValue {
				result = javasig.FailFast(projectName)
			} else {
				result = javasig.Continue()
			}
		})
		return result
	}
}

func structurallyBlocked(deps []*partial.Node) []string {
	var names []string
	for _, dep := range deps {
		if blocked, blockedNames := partial.Blocked(dep); blocked {
			names = append(names, blockedNames...)
		}
	}
	return dedupeSorted(names)
}

func collectTransitiveSuccesses(deps []*partial.Node) []*partial.SuccessPayload {
	var out []*partial.SuccessPayload
	for _, dep := range deps {
		out = append(out, partial.CollectSuccesses(dep)...)
	}
	return out
}

// awaitPicklepath blocks on every transitive success's pickleReady
// promise and builds the ordered picklepath, so pickle URIs appear in
// the downstream picklepath in deterministic depth-first order. An
// upstream whose pickle await is cancelled, or whose pickle promise
// resolved to FailPromise, is reported as blocking this node instead of
// contributing a pickle.
func awaitPicklepath(ctx context.Context, transitive []*partial.SuccessPayload) (picklepath []string, blockedBy []string) {
	picklepath = make([]string, 0, len(transitive))
	for _, s := range transitive {
		outcome, err := s.PickleReady.Await(ctx)
		name := ""
		if s.Bundle != nil {
			name = s.Bundle.Project.Name
		}
		switch {
		case err != nil:
			if name != "" {
				blockedBy = append(blockedBy, name)
			}
		case outcome.HasValue:
			picklepath = append(picklepath, outcome.Value)
		case outcome.FailKind == promise.FailPromise:
			if name != "" {
				blockedBy = append(blockedBy, name)
			}
		}
	}
	return picklepath, dedupeSorted(blockedBy)
}

func collectFailurePayloads(children []*partial.Node) []partial.FailurePayload {
	var out []partial.FailurePayload
	for _, c := range children {
		if c == nil || c.Value == nil {
			continue
		}
		switch c.Value.Kind {
		case partial.Failure:
			if c.Value.Failure != nil {
				out = append(out, *c.Value.Failure)
			}
		case partial.Failures:
			out = append(out, c.Value.Failures...)
		}
	}
	return out
}

func dedupeSorted(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
