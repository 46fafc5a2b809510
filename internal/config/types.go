// Package config loads and validates the YAML project-graph document the
// CLI points riftbuild at, and turns it into the project.Dag the
// scheduling core walks.
package config

// Document is the top-level YAML shape: a flat list of projects, each
// naming its direct dependencies by project name.
type Document struct {
	Version  string        `yaml:"version" validate:"required,semver"`
	Projects []ProjectSpec `yaml:"projects" validate:"required,min=1,dive"`
}

// ProjectSpec is one project entry in the document.
type ProjectSpec struct {
	Name           string   `yaml:"name" validate:"required,project_name"`
	Sources        []string `yaml:"sources,omitempty"`
	JavaSources    []string `yaml:"java_sources,omitempty" validate:"omitempty,dive,required"`
	Classpath      []string `yaml:"classpath,omitempty"`
	CompileOptions []string `yaml:"compile_options,omitempty" validate:"omitempty,dive,required"`
	Platform       string   `yaml:"platform,omitempty" validate:"omitempty,oneof=jvm js native"`
	DependsOn      []string `yaml:"depends_on,omitempty" validate:"omitempty,dive,required"`
}
