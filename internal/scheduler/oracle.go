package scheduler

import (
	"context"

	"github.com/riftlang/riftbuild/internal/promise"
)

// mapOracle implements compiler.Oracle over the completeJava promises of
// every transitive upstream that carries Java sources.
type mapOracle struct {
	entries map[string]*promise.Promise[struct{}]
}

func newOracle(entries map[string]*promise.Promise[struct{}]) *mapOracle {
	return &mapOracle{entries: entries}
}

// AwaitJava reports whether project's Java compilation completed
// successfully. A project absent from the oracle (no Java sources
// upstream) is trivially safe to reference.
func (o *mapOracle) AwaitJava(ctx context.Context, project string) (bool, error) {
	p, ok := o.entries[project]
	if !ok {
		return true, nil
	}
	outcome, err := p.Await(ctx)
	if err != nil {
		return false, err
	}
	return outcome.HasValue, nil
}
