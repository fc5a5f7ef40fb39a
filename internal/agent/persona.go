package agent

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// PersonaSpec is the agent's system instruction, tool wording and sampling
// style, loaded from a YAML file at startup so prompt iteration never needs
// a rebuild.
type PersonaSpec struct {
	System string `yaml:"system"`
	Tool   struct {
		Description string `yaml:"description"`
	} `yaml:"tool"`
	Style struct {
		Temperature float32 `yaml:"temperature"`
		MaxTokens   int     `yaml:"max_tokens"`
	} `yaml:"style"`
}

func LoadPersona(path string) (PersonaSpec, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return PersonaSpec{}, fmt.Errorf("read persona spec: %w", err)
	}
	var spec PersonaSpec
	if err := yaml.Unmarshal(b, &spec); err != nil {
		return PersonaSpec{}, fmt.Errorf("parse persona spec: %w", err)
	}
	if strings.TrimSpace(spec.System) == "" {
		return PersonaSpec{}, fmt.Errorf("persona spec %s has no system instruction", path)
	}
	if spec.Style.Temperature <= 0 {
		spec.Style.Temperature = 0.3
	}
	if spec.Style.MaxTokens <= 0 {
		spec.Style.MaxTokens = 600
	}
	return spec, nil
}
