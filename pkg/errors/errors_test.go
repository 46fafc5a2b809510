package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseErrorWrapsUnderlying(t *testing.T) {
	t.Parallel()

	underlying := fmt.Errorf("unexpected token")
	err := NewParseError("projects.yaml", 12, underlying)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, "projects.yaml", parseErr.Path)
	require.Equal(t, 12, parseErr.Line)
	require.True(t, stdErrors.Is(err, underlying))
	require.Contains(t, err.Error(), "projects.yaml")
}

func TestValidationErrorAggregatesFields(t *testing.T) {
	t.Parallel()

	err := NewValidationError("projects[1].depends_on", "references unknown project", nil)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "projects[1].depends_on", validationErr.Field)
	require.Contains(t, validationErr.Message, "references unknown project")
}

func TestCompileFailureErrorIncludesProjectContext(t *testing.T) {
	t.Parallel()

	underlying := stdErrors.New("NullPointerException")
	err := NewCompileFailureError("core", underlying)

	var compileErr *CompileFailureError
	require.ErrorAs(t, err, &compileErr)
	require.Equal(t, "core", compileErr.Project)
	require.True(t, stdErrors.Is(err, underlying))
}

func TestBlockedErrorListsIntransitiveBlockers(t *testing.T) {
	t.Parallel()

	err := NewBlockedError("app", []string{"core", "http"})

	var blockedErr *BlockedError
	require.ErrorAs(t, err, &blockedErr)
	require.Equal(t, "app", blockedErr.Project)
	require.ElementsMatch(t, []string{"core", "http"}, blockedErr.Projects)
	require.Contains(t, err.Error(), "core")
	require.Contains(t, err.Error(), "http")
}

func TestPromiseViolationErrorMessage(t *testing.T) {
	t.Parallel()

	err := NewPromiseViolationError("pickleReady written twice for core")
	require.Contains(t, err.Error(), "pickleReady written twice for core")
}
