package main

import (
	"context"
	"fmt"
	"os"

	"github.com/riftlang/riftbuild/internal/buildstate"
	"github.com/riftlang/riftbuild/internal/bundle"
	"github.com/riftlang/riftbuild/internal/config"
	"github.com/riftlang/riftbuild/internal/gitinfo"
	"github.com/riftlang/riftbuild/internal/logger"
	"github.com/riftlang/riftbuild/internal/reporter"
	"github.com/riftlang/riftbuild/internal/scheduler"
	"github.com/riftlang/riftbuild/internal/toolchain"
	"github.com/spf13/cobra"
)

type compileOptions struct {
	pipeline    bool
	parallel    bool
	excludeRoot bool
	plainOutput bool
}

func newCompileCmd(root *rootFlags) *cobra.Command {
	opts := compileOptions{}

	cmd := &cobra.Command{
		Use:   "compile",
		Short: "compile the project dependency graph",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(cmd, root, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.pipeline, "pipeline", false, "overlap dependents' early compile phase with dependencies' late phase")
	cmd.Flags().BoolVar(&opts.parallel, "parallel", true, "allow concurrent forked compiles in pipeline mode; false limits them to one at a time and enables the prior-failure gate")
	cmd.Flags().BoolVar(&opts.excludeRoot, "exclude-root", false, "compile only the root's dependencies, not the root itself")
	cmd.Flags().BoolVar(&opts.plainOutput, "plain", false, "force line-per-event output instead of the interactive dashboard")

	return cmd
}

func runCompile(cmd *cobra.Command, root *rootFlags, opts compileOptions) error {
	level := "info"
	if root.verbose {
		level = "debug"
	}
	log, err := logger.New(logger.Options{Level: level, HumanReadable: root.humanLogs})
	if err != nil {
		return fmt.Errorf("configuring logger: %w", err)
	}

	if info, _ := gitinfo.Resolve("."); info != nil {
		log = log.WithFields(map[string]any{
			"commit": info.CommitSHA,
			"branch": info.Branch,
			"dirty":  info.Dirty,
		})
		log.Info(fmt.Sprintf("building at %s (branch %s, dirty=%v)", info.CommitSHA, info.Branch, info.Dirty))
	}

	doc, err := config.ParseFile(root.configPath)
	if err != nil {
		return err
	}

	nodes, err := config.BuildGraph(doc)
	if err != nil {
		return err
	}
	graphRoot := config.AllProjects(nodes)

	userMode := scheduler.Sequential
	if opts.parallel {
		userMode = scheduler.Parallel
	}

	pool := scheduler.NewPool(0)
	if !opts.parallel {
		pool = scheduler.NewPool(1)
	}

	events := make(chan reporter.Event, 64)
	rep := reporter.New(reporter.Config{Writer: cmd.OutOrStdout(), ForcePlain: opts.plainOutput})

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	reporterErr := make(chan error, 1)
	go func() {
		reporterErr <- rep.Run(ctx, events)
	}()

	notify := func(project, status, detail string) {
		events <- reporter.Event{Project: project, Status: mapStatus(status), Detail: detail}
	}

	resp := scheduler.Compile(ctx, scheduler.Request{
		State:          buildstate.New(),
		Root:           graphRoot,
		SequentialGate: !opts.parallel,
		UserMode:       userMode,
		Pipeline:       opts.pipeline,
		ExcludeRoot:    opts.excludeRoot,
		Setup:          bundle.FromProject,
		Compile:        toolchain.New(toolchain.NewProcessInvoker(), log),
		Pool:           pool,
		Log:            log,
		Notify:         notify,
	})

	close(events)
	if err := <-reporterErr; err != nil {
		log.Warn(fmt.Sprintf("reporter: %v", err))
	}

	if resp.Status != scheduler.Ok {
		fmt.Fprintf(os.Stderr, "compilation failed: %v\n", resp.Failed)
		return fmt.Errorf("compilation failed for %d project(s)", len(resp.Failed))
	}

	return nil
}

func mapStatus(status string) reporter.EventStatus {
	switch status {
	case "scheduled":
		return reporter.Scheduled
	case "running":
		return reporter.Running
	case "pickle":
		return reporter.PickleReady
	case "ok":
		return reporter.Ok
	case "failed":
		return reporter.Failed
	case "blocked":
		return reporter.Blocked
	default:
		return reporter.Scheduled
	}
}
