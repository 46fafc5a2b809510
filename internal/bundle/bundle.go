// Package bundle implements the pure mapping from a Project to the
// CompileBundle the scheduler hands to a compile operation.
package bundle

import (
	"fmt"

	"github.com/riftlang/riftbuild/internal/project"
)

// CompilerInstance is an opaque handle to a constructed compiler. The
// core never inspects its contents — only whether one was required and
// produced — so it is a thin marker rather than a real compiler binding.
// Constructing the real thing is an external collaborator's job.
type CompilerInstance struct {
	ID string
}

// CompileBundle is the self-contained unit a compile operation needs.
type CompileBundle struct {
	Project          *project.Project
	Sources          []string
	CompilerInstance *CompilerInstance
	JavaSources      []string
	JavaOnly         bool
}

// FromProject derives a CompileBundle from a Project. The mapping is
// pure: it never errors and never touches I/O; early termination is
// decided later, by ToSourcesAndInstance, once the bundle is in hand.
func FromProject(p *project.Project) *CompileBundle {
	javaOnly := !p.HasSources() && p.HasJavaSources()

	var instance *CompilerInstance
	if !javaOnly {
		instance = &CompilerInstance{ID: fmt.Sprintf("%s-compiler", p.Name)}
	}

	return &CompileBundle{
		Project:          p,
		Sources:          p.Sources,
		CompilerInstance: instance,
		JavaSources:      p.JavaSources,
		JavaOnly:         javaOnly,
	}
}

// EarlyResult is returned by ToSourcesAndInstance when the bundle
// short-circuits compilation entirely. It is not a failure: the node is
// treated as trivially, successfully done.
type EarlyResult struct {
	Reason string
}

// ToSourcesAndInstance yields the triple a compile invocation needs, or
// an EarlyResult when there is nothing to compile: no sources, or a
// Scala/native bundle with no compiler instance.
func (b *CompileBundle) ToSourcesAndInstance() (sources []string, instance *CompilerInstance, javaOnly bool, early *EarlyResult) {
	if len(b.Sources) == 0 && len(b.JavaSources) == 0 {
		return nil, nil, false, &EarlyResult{Reason: "no sources"}
	}
	if !b.JavaOnly && b.CompilerInstance == nil {
		return nil, nil, false, &EarlyResult{Reason: "no compiler instance"}
	}
	return b.Sources, b.CompilerInstance, b.JavaOnly, nil
}
