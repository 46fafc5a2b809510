package config

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	rifterrors "github.com/riftlang/riftbuild/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	semverPattern      = regexp.MustCompile(`^\d+\.\d+(?:\.\d+)?(?:-[0-9A-Za-z-.]+)?(?:\+[0-9A-Za-z-.]+)?$`)
	projectNamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("semver", func(fl validator.FieldLevel) bool {
			return semverPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("project_name", func(fl validator.FieldLevel) bool {
			return projectNamePattern.MatchString(fl.Field().String())
		})

		validateInst = v
	})

	return validateInst
}

// Validate performs schema and cross-field validation on doc: duplicate
// project names, dangling depends_on references, and dependency cycles.
func Validate(doc *Document) error {
	if doc == nil {
		return rifterrors.NewValidationError("document", "configuration is nil", nil)
	}

	v := validatorInstance()
	if err := v.Struct(doc); err != nil {
		return convertValidationError(err)
	}

	byName := make(map[string]int, len(doc.Projects))
	for i, p := range doc.Projects {
		if _, exists := byName[p.Name]; exists {
			return rifterrors.NewValidationError(fieldForProject(i, "name"), fmt.Sprintf("duplicate project name %q", p.Name), nil)
		}
		byName[p.Name] = i
	}

	for i, p := range doc.Projects {
		for _, dep := range p.DependsOn {
			if _, ok := byName[dep]; !ok {
				return rifterrors.NewValidationError(fieldForProject(i, "depends_on"), fmt.Sprintf("references unknown project %q", dep), nil)
			}
			if dep == p.Name {
				return rifterrors.NewValidationError(fieldForProject(i, "depends_on"), fmt.Sprintf("project %q depends on itself", p.Name), nil)
			}
		}
	}

	if cycle := detectCycle(doc.Projects); len(cycle) > 0 {
		return rifterrors.NewValidationError("projects", fmt.Sprintf("dependency cycle detected: %s", strings.Join(cycle, " -> ")), nil)
	}

	return nil
}

func convertValidationError(err error) error {
	if err == nil {
		return nil
	}
	if ves, ok := err.(validator.ValidationErrors); ok {
		ve := ves[0]
		field := yamlishFieldName(ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		return rifterrors.NewValidationError(field, msg, err)
	}
	return rifterrors.NewValidationError("document", err.Error(), err)
}

func yamlishFieldName(fe validator.FieldError) string {
	ns := fe.StructNamespace()
	parts := strings.Split(ns, ".")
	lowered := make([]string, 0, len(parts))
	for _, part := range parts {
		lowered = append(lowered, strings.ToLower(part))
	}
	return strings.Join(lowered, ".")
}

func fieldForProject(index int, field string) string {
	return fmt.Sprintf("projects[%d].%s", index, field)
}

// detectCycle returns the project names participating in a dependency
// cycle, or nil if the graph is acyclic.
func detectCycle(projects []ProjectSpec) []string {
	graph := make(map[string][]string, len(projects))
	for _, p := range projects {
		graph[p.Name] = p.DependsOn
	}

	visiting := make(map[string]bool, len(projects))
	visited := make(map[string]bool, len(projects))
	var stack []string
	var cycle []string

	var dfs func(string) bool
	dfs = func(node string) bool {
		visiting[node] = true
		stack = append(stack, node)

		for _, dep := range graph[node] {
			if !visited[dep] {
				if visiting[dep] {
					if idx := indexOf(stack, dep); idx >= 0 {
						cycle = append(append([]string{}, stack[idx:]...), dep)
					}
					return true
				}
				if dfs(dep) {
					return true
				}
			}
		}

		visiting[node] = false
		visited[node] = true
		stack = stack[:len(stack)-1]
		return false
	}

	names := make([]string, 0, len(projects))
	for _, p := range projects {
		names = append(names, p.Name)
	}
	sort.Strings(names)

	for _, name := range names {
		if visited[name] {
			continue
		}
		if dfs(name) {
			break
		}
	}

	return cycle
}

func indexOf(slice []string, target string) int {
	for i, v := range slice {
		if v == target {
			return i
		}
	}
	return -1
}
