// Package javasig implements the JavaSignal commutative monoid: the
// aggregation rule downstream nodes use to learn whether any transitive
// upstream's Java compilation has failed before starting their own
// late-phase Java work.
package javasig

import (
	"context"
	"sort"
	"sync"
)

// Kind distinguishes the two JavaSignal variants.
type Kind int

const (
	ContinueCompilation Kind = iota
	FailFastCompilation
)

// JavaSignal is either "keep going" or "abort, here's who failed".
type JavaSignal struct {
	Kind    Kind
	Blocked []string
}

// Continue returns the identity element of the monoid.
func Continue() JavaSignal {
	return JavaSignal{Kind: ContinueCompilation}
}

// FailFast returns a signal naming the projects whose Java compilation
// failed.
func FailFast(projects ...string) JavaSignal {
	return JavaSignal{Kind: FailFastCompilation, Blocked: append([]string(nil), projects...)}
}

// Combine folds two signals per the table:
//
//	Continue ⊕ Continue        = Continue
//	Continue ⊕ FailFast(ps)     = FailFast(ps)
//	FailFast(ps) ⊕ FailFast(qs) = FailFast(ps ++ qs)
func Combine(a, b JavaSignal) JavaSignal {
	if a.Kind == ContinueCompilation && b.Kind == ContinueCompilation {
		return Continue()
	}
	return FailFast(append(append([]string{}, a.Blocked...), b.Blocked...)...)
}

// Task is a lazy, memoised computation of one upstream's contribution to
// the aggregate signal. Implementations must be idempotent: Fold invokes
// every task exactly once concurrently, but a Task may also be reused and
// invoked again elsewhere (e.g. a direct dependent re-querying a
// transitive upstream it also shares), so callers that need "exactly
// once" semantics should memoise internally (see scheduler.makeJavaTrigger).
type Task func(ctx context.Context) JavaSignal

// Fold evaluates every task concurrently and combines the results. It
// does not short-circuit: every task is awaited so no upstream promise is
// left pending. Order within a FailFast result is not observable
// and is sorted here only to make test assertions deterministic.
func Fold(ctx context.Context, tasks []Task) JavaSignal {
	if len(tasks) == 0 {
		return Continue()
	}

	results := make([]JavaSignal, len(tasks))
	var wg sync.WaitGroup
	wg.Add(len(tasks))
	for i, task := range tasks {
		go func(i int, task Task) {
			defer wg.Done()
			results[i] = task(ctx)
		}(i, task)
	}
	wg.Wait()

	out := Continue()
	for _, r := range results {
		out = Combine(out, r)
	}
	if out.Kind == FailFastCompilation {
		sort.Strings(out.Blocked)
	}
	return out
}
