// Package buildstate holds the build-wide result cache threaded across
// invocations, feeding both post-compile bookkeeping and the sequential
// pre-check gate.
package buildstate

import (
	"sync"

	"github.com/riftlang/riftbuild/internal/compiler"
)

// State is the previous-results cache a compile invocation reads before
// scheduling and writes back to once the Result Collector finishes.
// Results holds the latest outcome per project; LastOk is monotonic and
// only ever advances on an Ok outcome, so a later failure never erases
// the last time a project actually compiled.
type State struct {
	mu      sync.RWMutex
	Results map[string]compiler.Result
	LastOk  map[string]compiler.Result
}

// New returns an empty state.
func New() *State {
	return &State{
		Results: make(map[string]compiler.Result),
		LastOk:  make(map[string]compiler.Result),
	}
}

// Record stores result as the latest outcome for project, advancing
// LastOk when it succeeded.
func (s *State) Record(project string, result compiler.Result) {
	if s == nil || project == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Results[project] = result
	if result.IsOk() {
		s.LastOk[project] = result
	}
}

// Result returns the latest recorded outcome for project, if any. Used
// by the sequential pre-check.
func (s *State) Result(project string) (compiler.Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.Results[project]
	return r, ok
}

// LastOkResult returns the most recent Ok outcome for project, if any.
func (s *State) LastOkResult(project string) (compiler.Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.LastOk[project]
	return r, ok
}

// Clone returns a copy of s, used when a compile invocation must hand back
// a new state without aliasing the caller's maps.
func (s *State) Clone() *State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := New()
	for k, v := range s.Results {
		out.Results[k] = v
	}
	for k, v := range s.LastOk {
		out.LastOk[k] = v
	}
	return out
}
