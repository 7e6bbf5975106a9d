package seed

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed fixtures.yaml
var fixturesYAML []byte

type StackFixture struct {
	Name     string `yaml:"name"`
	Category string `yaml:"category"`
	Color    string `yaml:"color"`
}

type RepoFixture struct {
	Name     string `yaml:"name"`
	Language string `yaml:"language"`
	URL      string `yaml:"url"`
}

// Fixtures is the static pool random payloads are drawn from.
type Fixtures struct {
	FirstNames          []string       `yaml:"first_names"`
	LastNames           []string       `yaml:"last_names"`
	Locations           []string       `yaml:"locations"`
	Bios                []string       `yaml:"bios"`
	Timezones           []string       `yaml:"timezones"`
	Languages           []string       `yaml:"languages"`
	TechStacks          []StackFixture `yaml:"tech_stacks"`
	Repositories        []RepoFixture  `yaml:"repositories"`
	ProjectTitles       []string       `yaml:"project_titles"`
	ProjectDescriptions []string       `yaml:"project_descriptions"`
}

// LoadFixtures parses the embedded fixture file.
func LoadFixtures() (*Fixtures, error) {
	return ParseFixtures(fixturesYAML)
}

// ParseFixtures decodes YAML fixtures and checks that every pool the
// generator draws from is non-empty.
func ParseFixtures(data []byte) (*Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}

	pools := map[string]int{
		"first_names":          len(f.FirstNames),
		"last_names":           len(f.LastNames),
		"locations":            len(f.Locations),
		"bios":                 len(f.Bios),
		"timezones":            len(f.Timezones),
		"languages":            len(f.Languages),
		"tech_stacks":          len(f.TechStacks),
		"repositories":         len(f.Repositories),
		"project_titles":       len(f.ProjectTitles),
		"project_descriptions": len(f.ProjectDescriptions),
	}
	var errs []error
	for name, n := range pools {
		if n == 0 {
			errs = append(errs, fmt.Errorf("fixtures: %s is empty", name))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return &f, nil
}
