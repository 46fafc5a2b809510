// Package toolchain supplies the concrete compiler.Func the scheduling
// core treats as an injected external collaborator: it shells out to a
// real Scala/Java compiler process and plays its two-phase output back
// against the core's Inputs protocol.
package toolchain

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/riftlang/riftbuild/internal/compiler"
	"github.com/riftlang/riftbuild/internal/execrun"
	"github.com/riftlang/riftbuild/internal/javasig"
	"github.com/riftlang/riftbuild/internal/logger"
	"github.com/riftlang/riftbuild/internal/promise"
)

// Invoker runs one external compiler process. The default Invoker shells
// out to the configured compiler binaries; tests supply a fake.
type Invoker interface {
	CompilePickle(ctx context.Context, bundleName string, sources, classpath, picklepath []string) (pickleURI string, err error)
	CompileFull(ctx context.Context, bundleName string, sources, classpath, picklepath []string) error
	CompileJava(ctx context.Context, bundleName string, javaSources, classpath []string) error
}

// ProcessInvoker runs a real scalac/javac-shaped command line via
// os/exec: build argv, run with context cancellation, and put the
// captured stderr (or stdout when stderr is empty) into error messages.
type ProcessInvoker struct {
	ScalaCompiler string // e.g. "scalac"
	JavaCompiler  string // e.g. "javac"
}

func NewProcessInvoker() *ProcessInvoker {
	return &ProcessInvoker{ScalaCompiler: "scalac", JavaCompiler: "javac"}
}

func (p *ProcessInvoker) CompilePickle(ctx context.Context, bundleName string, sources, classpath, picklepath []string) (string, error) {
	args := []string{"-Ypickle-write", "-Ystop-after:pickler"}
	args = append(args, classpathArgs(classpath, picklepath)...)
	args = append(args, sources...)

	cmd := exec.CommandContext(ctx, p.ScalaCompiler, args...)
	res, err := execrun.RunStreaming(cmd)
	if err != nil {
		return "", fmt.Errorf("%s: pickle phase failed: %w: %s", bundleName, err, execrun.PrimaryOutput(res))
	}
	return fmt.Sprintf("pickle://%s", bundleName), nil
}

func (p *ProcessInvoker) CompileFull(ctx context.Context, bundleName string, sources, classpath, picklepath []string) error {
	args := classpathArgs(classpath, picklepath)
	args = append(args, sources...)

	cmd := exec.CommandContext(ctx, p.ScalaCompiler, args...)
	res, err := execrun.RunStreaming(cmd)
	if err != nil {
		return fmt.Errorf("%s: full compile failed: %w: %s", bundleName, err, execrun.PrimaryOutput(res))
	}
	return nil
}

func (p *ProcessInvoker) CompileJava(ctx context.Context, bundleName string, javaSources, classpath []string) error {
	args := []string{}
	if len(classpath) > 0 {
		args = append(args, "-cp", strings.Join(classpath, ":"))
	}
	args = append(args, javaSources...)

	cmd := exec.CommandContext(ctx, p.JavaCompiler, args...)
	res, err := execrun.RunStreaming(cmd)
	if err != nil {
		return fmt.Errorf("%s: java compile failed: %w: %s", bundleName, err, execrun.PrimaryOutput(res))
	}
	return nil
}

func classpathArgs(classpath, picklepath []string) []string {
	combined := append(append([]string(nil), classpath...), picklepath...)
	if len(combined) == 0 {
		return nil
	}
	return []string{"-classpath", strings.Join(combined, ":")}
}

// New builds the compiler.Func riftbuild wires into the scheduler's
// Walker. It plays Java and Scala phases against the shared Inputs
// protocol: pickle emission feeds PickleReady, Java completion feeds
// CompleteJava, and TransitiveJavaSignal gates the full compile phase
// before it starts. The Oracle is not consulted.
func New(invoker Invoker, log *logger.Logger) compiler.Func {
	return func(ctx context.Context, in compiler.Inputs) compiler.Result {
		sources, instance, javaOnly, early := in.Bundle.ToSourcesAndInstance()
		if early != nil {
			return compiler.Result{Status: compiler.Ok}
		}

		name := in.Bundle.Project.Name

		if len(in.Bundle.JavaSources) > 0 {
			if err := invoker.CompileJava(ctx, name, in.Bundle.JavaSources, in.Bundle.Project.Classpath); err != nil {
				_ = in.PickleReady.Fail(promise.FailPromise)
				_ = in.CompleteJava.Fail(promise.FailPromise)
				log.Error(err, fmt.Sprintf("%s: java compile failed", name))
				return compiler.Result{Status: compiler.NotOk, Kind: compiler.Failed, Err: err}
			}
			_ = in.CompleteJava.Complete(struct{}{})
		}

		if javaOnly {
			_ = in.PickleReady.Fail(promise.CompletePromise)
			return compiler.Result{Status: compiler.Ok}
		}

		if instance == nil {
			return compiler.Result{Status: compiler.Ok}
		}

		pickleURI, err := invoker.CompilePickle(ctx, name, sources, in.Bundle.Project.Classpath, in.Picklepath)
		if err != nil {
			_ = in.PickleReady.Fail(promise.FailPromise)
			log.Error(err, fmt.Sprintf("%s: pickle compile failed", name))
			return compiler.Result{Status: compiler.NotOk, Kind: compiler.Failed, Err: err}
		}
		_ = in.PickleReady.Complete(pickleURI)

		signal := in.TransitiveJavaSignal(ctx)
		if signal.Kind == javasig.FailFastCompilation {
			log.Warn(fmt.Sprintf("%s: blocked by upstream java failure: %v", name, signal.Blocked))
			return compiler.Result{Status: compiler.NotOk, Kind: compiler.Blocked, BlockedBy: signal.Blocked}
		}

		if err := invoker.CompileFull(ctx, name, sources, in.Bundle.Project.Classpath, in.Picklepath); err != nil {
			log.Error(err, fmt.Sprintf("%s: full compile failed", name))
			return compiler.Result{Status: compiler.NotOk, Kind: compiler.Failed, Err: err}
		}

		return compiler.Result{Status: compiler.Ok}
	}
}
