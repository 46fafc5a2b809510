package scheduler

import (
	"context"
	"fmt"

	"github.com/riftlang/riftbuild/internal/buildstate"
	"github.com/riftlang/riftbuild/internal/compiler"
	"github.com/riftlang/riftbuild/internal/logger"
	"github.com/riftlang/riftbuild/internal/partial"
	"github.com/riftlang/riftbuild/internal/promise"
)

// Status is the aggregate exit status a compile invocation reports. An
// invalid command-line option belongs to the surrounding CLI and is out
// of scope here.
type Status int

const (
	Ok Status = iota
	CompilationError
)

func (s Status) String() string {
	if s == CompilationError {
		return "CompilationError"
	}
	return "Ok"
}

// CollectResult is the outcome of folding a result DAG.
type CollectResult struct {
	Status Status
	Failed []string
}

// Collect performs a depth-first fold over the result DAG: it flattens
// it, awaits each node's ongoing final result,
// records it into state, and partitions by outcome.
//
// A sub-DAG reachable from more than one parent appears more than once
// in the literal flatten (the walker memoises scheduling, not the shape
// of the output tree its parents point into). Recording the same
// project's result twice is idempotent, but logging it twice would be
// noisy, so this dedupes by project name on first occurrence before
// recording and logging.
func Collect(ctx context.Context, root *partial.Node, state *buildstate.State, log *logger.Logger) CollectResult {
	seen := make(map[string]struct{})
	var failed []string

	for _, n := range root.Flatten() {
		if n == nil || n.Value == nil {
			continue
		}
		switch n.Value.Kind {
		case partial.Success:
			collectOne(ctx, n.Value.Success.Bundle.Project.Name, n.Value.Success.Ongoing, seen, state, log, &failed)
		case partial.Failure:
			f := n.Value.Failure
			if f == nil || f.Bundle == nil {
				continue
			}
			collectOne(ctx, f.Bundle.Project.Name, f.Ongoing, seen, state, log, &failed)
		case partial.Failures:
			for i := range n.Value.Failures {
				f := n.Value.Failures[i]
				if f.Bundle == nil {
					continue
				}
				collectOne(ctx, f.Bundle.Project.Name, f.Ongoing, seen, state, log, &failed)
			}
		}
	}

	status := Ok
	if len(failed) > 0 {
		status = CompilationError
	}
	return CollectResult{Status: status, Failed: dedupeSorted(failed)}
}

func collectOne(ctx context.Context, name string, ongoing *promise.Promise[*compiler.FinalCompileResult], seen map[string]struct{}, state *buildstate.State, log *logger.Logger, failed *[]string) {
	if name == "" {
		return
	}
	if _, ok := seen[name]; ok {
		return
	}
	seen[name] = struct{}{}

	outcome, err := ongoing.Await(ctx)
	if err != nil {
		log.Warn(fmt.Sprintf("%s: cancelled before its final result was collected", name))
		return
	}

	final := outcome.Value
	state.Record(name, final.Result)

	if final.Result.Status != compiler.NotOk {
		return
	}
	*failed = append(*failed, name)

	switch final.Result.Kind {
	case compiler.Blocked:
		log.Warn(fmt.Sprintf("%s: blocked by %v", name, final.Result.BlockedBy))
	case compiler.Failed, compiler.GlobalError:
		log.Error(final.Result.Err, fmt.Sprintf("%s: compile failed", name))
		if final.Result.Err != nil {
			log.Trace(fmt.Sprintf("%s: %+v", name, final.Result.Err))
		}
	case compiler.Cancelled:
		log.Warn(fmt.Sprintf("%s: compile cancelled", name))
	}
}
