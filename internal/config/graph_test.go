package config

import (
	"testing"

	"github.com/riftlang/riftbuild/internal/project"
	"github.com/stretchr/testify/require"
)

func TestBuildGraphSharesDiamondDependencyByIdentity(t *testing.T) {
	t.Parallel()

	doc := &Document{
		Version: "1.0",
		Projects: []ProjectSpec{
			{Name: "base"},
			{Name: "left", DependsOn: []string{"base"}},
			{Name: "right", DependsOn: []string{"base"}},
			{Name: "top", DependsOn: []string{"left", "right"}},
		},
	}

	nodes, err := BuildGraph(doc)
	require.NoError(t, err)

	top := nodes["top"]
	require.Equal(t, project.Parent, top.Shape)
	require.Same(t, nodes["left"].Children[0], nodes["right"].Children[0],
		"left and right must point at the exact same base Dag node for memoisation to collapse the diamond")
}

func TestBuildGraphLeafHasNoChildren(t *testing.T) {
	t.Parallel()

	doc := &Document{
		Version:  "1.0",
		Projects: []ProjectSpec{{Name: "solo"}},
	}

	nodes, err := BuildGraph(doc)
	require.NoError(t, err)
	require.Equal(t, project.Leaf, nodes["solo"].Shape)
	require.Empty(t, nodes["solo"].Children)
}

func TestAllProjectsOrdersChildrenByNameRegardlessOfMapIteration(t *testing.T) {
	t.Parallel()

	doc := &Document{
		Version: "1.0",
		Projects: []ProjectSpec{
			{Name: "zebra"},
			{Name: "apple"},
			{Name: "mango"},
		},
	}

	nodes, err := BuildGraph(doc)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		root := AllProjects(nodes)
		var got []string
		for _, child := range root.Children {
			got = append(got, child.Value.Name)
		}
		require.Equal(t, []string{"apple", "mango", "zebra"}, got)
	}
}
