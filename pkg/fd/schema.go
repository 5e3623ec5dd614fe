package fd

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

// SchemaDependency is the on-disk form of a single functional dependency.
type SchemaDependency struct {
	LHS []string `json:"lhs,omitempty"`
	RHS []string `json:"rhs"`
}

// Schema describes a relational schema: its functional dependencies plus an
// optional default target attribute set.
type Schema struct {
	Dependencies []SchemaDependency `json:"dependencies"`
	Target       []string           `json:"target,omitempty"`
}

func LoadSchemaFile(file string) (*Schema, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	schema := &Schema{}
	if err := yaml.Unmarshal(data, schema); err != nil {
		return nil, fmt.Errorf("failed to parse schema file %s: %w", file, err)
	}
	return schema, nil
}

func WriteSchemaFile(file string, schema *Schema) error {
	data, err := yaml.Marshal(schema)
	if err != nil {
		return err
	}
	return os.WriteFile(file, data, 0660)
}

// Deps converts the schema into normalized dependencies.
func (s *Schema) Deps() []Dependency[string] {
	fds := make([]Dependency[string], 0, len(s.Dependencies))
	for _, d := range s.Dependencies {
		fds = append(fds, New(Set(d.LHS...), Set(d.RHS...)))
	}
	return fds
}

func (s *Schema) TargetSet() AttrSet[string] {
	return Set(s.Target...)
}
