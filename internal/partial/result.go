// Package partial implements the partial compile result algebra: the
// PartialCompileResult sum type and the fold rule that decides whether a
// node's subtree is blocked.
package partial

import (
	"github.com/riftlang/riftbuild/internal/bundle"
	"github.com/riftlang/riftbuild/internal/compiler"
	"github.com/riftlang/riftbuild/internal/javasig"
	"github.com/riftlang/riftbuild/internal/project"
	"github.com/riftlang/riftbuild/internal/promise"
)

// Kind tags the four PartialCompileResult variants.
type Kind int

const (
	// Empty is a passthrough node: an Aggregate with no project of its
	// own and no failure beneath it.
	Empty Kind = iota
	// Success means the node started successfully; its full compile
	// result may still be in flight (pipeline mode).
	Success
	// Failure means the node itself failed, or was blocked by a failed
	// upstream.
	Failure
	// Failures aggregates sibling failures under an Aggregate node.
	Failures
)

// SuccessPayload is the PartialSuccess variant's content.
type SuccessPayload struct {
	Bundle       *bundle.CompileBundle
	PickleReady  *promise.Promise[string]
	CompleteJava *promise.Promise[struct{}]
	JavaTrigger  javasig.Task
	Ongoing      *promise.Promise[*compiler.FinalCompileResult]
}

// FailurePayload is the PartialFailure variant's content.
type FailurePayload struct {
	Bundle    *bundle.CompileBundle
	Cause     promise.FailKind // FailPromise or BlockURI
	BlockedBy []string         // populated when Cause == BlockURI
	Err       error            // captured throwable when Cause == FailPromise
	Ongoing   *promise.Promise[*compiler.FinalCompileResult]
}

// Result is the tagged union. Exactly one of Success/Failure/Failures is
// populated, matching Kind.
type Result struct {
	Kind     Kind
	Success  *SuccessPayload
	Failure  *FailurePayload
	Failures []FailurePayload
}

// ProjectName returns the project this result's root refers to, or ""
// for Empty/Failures nodes that have none of their own.
func (r *Result) ProjectName() string {
	if r == nil {
		return ""
	}
	switch r.Kind {
	case Success:
		if r.Success != nil && r.Success.Bundle != nil {
			return r.Success.Bundle.Project.Name
		}
	case Failure:
		if r.Failure != nil && r.Failure.Bundle != nil {
			return r.Failure.Bundle.Project.Name
		}
	}
	return ""
}

// Node is the shape the DAG Walker produces: project.Dag specialised to
// carry partial results.
type Node = project.Dag[*Result]

// Blocked determines whether d's subtree should prevent further
// descent. It inspects only the root of each sub-DAG — deeper blocking
// has already been folded upward into that root at construction time —
// except for Aggregate, where the first blocked child (left to right)
// wins.
func Blocked(d *Node) (bool, []string) {
	if d == nil {
		return false, nil
	}

	switch d.Shape {
	case project.Leaf, project.Parent:
		return blockedByRoot(d.Value)
	case project.Aggregate:
		for _, child := range d.Children {
			if blocked, names := Blocked(child); blocked {
				return true, names
			}
		}
		return false, nil
	default:
		return false, nil
	}
}

func blockedByRoot(r *Result) (bool, []string) {
	if r == nil {
		return false, nil
	}
	switch r.Kind {
	case Success, Empty:
		return false, nil
	case Failure:
		if r.Failure == nil {
			return true, nil
		}
		name := ""
		if r.Failure.Bundle != nil {
			name = r.Failure.Bundle.Project.Name
		}
		if name != "" {
			return true, []string{name}
		}
		return true, nil
	case Failures:
		if len(r.Failures) == 0 {
			return false, nil
		}
		first := r.Failures[0]
		if first.Bundle != nil {
			return true, []string{first.Bundle.Project.Name}
		}
		return true, nil
	default:
		return false, nil
	}
}

// CollectSuccesses flattens d's subtree in depth-first pre-order and
// returns every SuccessPayload found. This is how the Pipeline
// Coordinator gathers transitive upstream successes to build a
// picklepath and a CompilerOracle.
func CollectSuccesses(d *Node) []*SuccessPayload {
	var out []*SuccessPayload
	d.Walk(func(n *Node) {
		if n.Value != nil && n.Value.Kind == Success {
			out = append(out, n.Value.Success)
		}
	})
	return out
}
