package scheduler

import (
	"context"
	"fmt"

	"github.com/riftlang/riftbuild/internal/buildstate"
	"github.com/riftlang/riftbuild/internal/compiler"
	"github.com/riftlang/riftbuild/internal/logger"
	"github.com/riftlang/riftbuild/internal/project"
)

// UserMode records how the surrounding CLI wants work batched. Compile
// carries it in the Request but does not read it.
type UserMode int

const (
	Sequential UserMode = iota
	Parallel
)

// Request is the compile() operation's parameter record.
type Request struct {
	State          *buildstate.State
	Root           *project.Dag[*project.Project]
	ReporterConfig any

	SequentialGate bool
	UserMode       UserMode
	Pipeline       bool
	ExcludeRoot    bool

	Setup   compiler.SetupFunc
	Compile compiler.Func
	Pool    *Pool
	Log     *logger.Logger
	Notify  NotifyFunc
}

// Response is compile()'s return value: the new state plus its aggregate
// status.
type Response struct {
	State  *buildstate.State
	Status Status
	Failed []string
}

// Compile is the core's single exposed operation: it applies the
// sequential pre-check, walks the DAG, and collects the result.
func Compile(ctx context.Context, req Request) Response {
	root := req.Root
	if req.ExcludeRoot {
		root = project.NewAggregate(root.Children...)
	}

	if req.SequentialGate {
		if blockedBy := blockedByPriorFailure(req.State, root); len(blockedBy) > 0 {
			req.Log.Warn(fmt.Sprintf("sequential gate: prior failure(s) for %v, skipping compile", blockedBy))
			return Response{State: req.State, Status: CompilationError, Failed: blockedBy}
		}
	}

	pool := req.Pool
	if pool == nil {
		pool = NewPool(0)
	}

	walker := NewWalker(req.Setup, req.Compile, req.Pipeline, pool, req.Log).WithNotify(req.Notify)
	resultDag := walker.Traverse(ctx, root)

	newState := req.State.Clone()
	collected := Collect(ctx, resultDag, newState, req.Log)

	return Response{State: newState, Status: collected.Status, Failed: collected.Failed}
}

// blockedByPriorFailure computes the transitive dependency set of root and
// reports the names among them whose prior recorded result was NotOk.
// This is a plain user-level pre-check over project names, not the
// structural Blocked() predicate — it runs before any scheduling
// happens at all.
func blockedByPriorFailure(state *buildstate.State, root *project.Dag[*project.Project]) []string {
	seen := make(map[*project.Dag[*project.Project]]struct{})
	var blocked []string

	var visit func(d *project.Dag[*project.Project])
	visit = func(d *project.Dag[*project.Project]) {
		if d == nil {
			return
		}
		if _, ok := seen[d]; ok {
			return
		}
		seen[d] = struct{}{}

		if d.Value != nil {
			if prior, ok := state.Result(d.Value.Name); ok && prior.Status == compiler.NotOk {
				blocked = append(blocked, d.Value.Name)
			}
		}
		for _, c := range d.Children {
			visit(c)
		}
	}
	visit(root)

	return dedupeSorted(blocked)
}
