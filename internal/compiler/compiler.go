// Package compiler defines the injected compile operation's contract:
// the Inputs a node is handed, the Oracle it can consult about upstream
// Java completion, and the Result vocabulary it returns. The operation
// itself — the actual compiler invocation — is an external collaborator
// supplied by the caller; this package only pins down the shape of that
// boundary.
package compiler

import (
	"context"

	"github.com/riftlang/riftbuild/internal/bundle"
	"github.com/riftlang/riftbuild/internal/javasig"
	"github.com/riftlang/riftbuild/internal/project"
	"github.com/riftlang/riftbuild/internal/promise"
)

// Status is the coarse outcome of a compile operation.
type Status int

const (
	Ok Status = iota
	NotOk
)

// NotOkKind refines a NotOk status.
type NotOkKind int

const (
	Failed NotOkKind = iota
	Blocked
	Cancelled
	GlobalError
)

// Result is the terminal outcome of one node's compile operation.
type Result struct {
	Status    Status
	Kind      NotOkKind // meaningful when Status == NotOk
	BlockedBy []string  // populated when Kind == Blocked
	Err       error     // captured throwable when Kind == Failed or GlobalError
}

// IsOk reports whether the result represents success.
func (r Result) IsOk() bool { return r.Status == Ok }

// FinalCompileResult pairs a bundle with its compiler's terminal result.
type FinalCompileResult struct {
	Bundle *bundle.CompileBundle
	Result Result
}

// Oracle exposes, for each upstream project with Java sources, whether
// its Java compilation completed successfully. The compile operation
// consults this to decide whether referencing upstream Java symbols is
// safe.
type Oracle interface {
	AwaitJava(ctx context.Context, project string) (safe bool, err error)
}

// Inputs is the record handed to the injected compile operation.
type Inputs struct {
	Bundle     *bundle.CompileBundle
	Picklepath []string

	PickleReady  *promise.Promise[string]
	CompleteJava *promise.Promise[struct{}]

	// TransitiveJavaSignal is a lazy value: it is not evaluated until a
	// caller actually asks for it, so no upstream completeJava promise is
	// awaited before it's needed.
	TransitiveJavaSignal func(ctx context.Context) javasig.JavaSignal

	Oracle Oracle

	SeparateJavaAndScala bool
}

// SetupFunc maps a project to a CompileBundle. Pure: given the same
// project it always returns an equivalent bundle.
type SetupFunc func(p *project.Project) *bundle.CompileBundle

// Func is the injected per-project compile operation, from Inputs to a
// terminal Result. Implementations that want to signal pickle readiness
// or Java completion before the operation itself returns do so by
// writing to in.PickleReady / in.CompleteJava as soon as those phases
// finish internally.
type Func func(ctx context.Context, in Inputs) Result
