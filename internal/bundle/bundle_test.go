package bundle

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/riftlang/riftbuild/internal/project"
)

func TestFromProject_ScalaProjectGetsCompilerInstance(t *testing.T) {
	t.Parallel()

	p := &project.Project{Name: "core", Sources: []string{"Core.scala"}}
	b := FromProject(p)

	require.False(t, b.JavaOnly)
	require.NotNil(t, b.CompilerInstance)
	require.Equal(t, "core-compiler", b.CompilerInstance.ID)
}

func TestFromProject_JavaOnlyProjectGetsNoCompilerInstance(t *testing.T) {
	t.Parallel()

	p := &project.Project{Name: "util", JavaSources: []string{"Util.java"}}
	b := FromProject(p)

	require.True(t, b.JavaOnly)
	require.Nil(t, b.CompilerInstance)
}

func TestToSourcesAndInstance_NoSourcesShortCircuits(t *testing.T) {
	t.Parallel()

	p := &project.Project{Name: "empty"}
	b := FromProject(p)

	sources, instance, _, early := b.ToSourcesAndInstance()
	require.Nil(t, sources)
	require.Nil(t, instance)
	require.NotNil(t, early)
	require.Equal(t, "no sources", early.Reason)
}

func TestToSourcesAndInstance_SuccessTriple(t *testing.T) {
	t.Parallel()

	p := &project.Project{Name: "core", Sources: []string{"Core.scala"}}
	b := FromProject(p)

	sources, instance, javaOnly, early := b.ToSourcesAndInstance()
	require.Nil(t, early)
	require.Equal(t, []string{"Core.scala"}, sources)
	require.NotNil(t, instance)
	require.False(t, javaOnly)
}

func TestToSourcesAndInstance_JavaOnlyNeedsNoInstance(t *testing.T) {
	t.Parallel()

	p := &project.Project{Name: "util", JavaSources: []string{"Util.java"}}
	b := FromProject(p)

	sources, instance, javaOnly, early := b.ToSourcesAndInstance()
	require.Nil(t, early)
	require.Nil(t, sources)
	require.Nil(t, instance)
	require.True(t, javaOnly)
}
