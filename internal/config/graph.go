package config

import (
	"fmt"
	"sort"

	"github.com/riftlang/riftbuild/internal/project"
)

// BuildGraph turns a validated Document into project.Dag nodes, one per
// project, keyed by name. A project depended on by more than one other
// project gets exactly one Dag node, shared by pointer identity across
// every dependent's Children slice — this is what lets the DAG Walker's
// pointer-keyed memoisation collapse diamonds into a single compile.
func BuildGraph(doc *Document) (map[string]*project.Dag[*project.Project], error) {
	if doc == nil {
		return nil, fmt.Errorf("config: nil document")
	}

	nodes := make(map[string]*project.Dag[*project.Project], len(doc.Projects))
	for _, spec := range doc.Projects {
		nodes[spec.Name] = &project.Dag[*project.Project]{
			Shape: project.Leaf,
			Value: toProject(spec),
		}
	}

	for _, spec := range doc.Projects {
		if len(spec.DependsOn) == 0 {
			continue
		}
		node := nodes[spec.Name]
		node.Shape = project.Parent
		node.Children = make([]*project.Dag[*project.Project], 0, len(spec.DependsOn))
		for _, dep := range spec.DependsOn {
			node.Children = append(node.Children, nodes[dep])
		}
	}

	return nodes, nil
}

func toProject(spec ProjectSpec) *project.Project {
	platform := project.PlatformJVM
	switch spec.Platform {
	case "js":
		platform = project.PlatformJS
	case "native":
		platform = project.PlatformNative
	}
	return &project.Project{
		Name:           spec.Name,
		Sources:        spec.Sources,
		JavaSources:    spec.JavaSources,
		Classpath:      spec.Classpath,
		CompileOptions: spec.CompileOptions,
		Platform:       platform,
	}
}

// AllProjects returns an Aggregate node grouping every project in nodes,
// useful as the traversal root when no single root project is named and
// the whole graph should compile instead. Children are ordered by name
// so the aggregate's compile order and reported events are deterministic
// across runs, independent of map iteration order.
func AllProjects(nodes map[string]*project.Dag[*project.Project]) *project.Dag[*project.Project] {
	names := make([]string, 0, len(nodes))
	for name := range nodes {
		names = append(names, name)
	}
	sort.Strings(names)

	children := make([]*project.Dag[*project.Project], 0, len(nodes))
	for _, name := range names {
		children = append(children, nodes[name])
	}
	return project.NewAggregate(children...)
}
