package testutil

import (
	"embed"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

// TestdataFS holds the embedded test data files.
//
//go:embed testdata
var TestdataFS embed.FS

// ReadTestData reads and returns the content of an embedded test file.
func ReadTestData(name string) ([]byte, error) {
	path := fmt.Sprintf("testdata/%s", name)
	data, err := fs.ReadFile(TestdataFS, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read test data file '%s': %w", name, err)
	}
	return data, nil
}

// Scenario is one fixture case: an operation, a path and a document.
type Scenario struct {
	Name     string `yaml:"name"`
	Op       string `yaml:"op"` // view, set or over
	Path     string `yaml:"path"`
	Fn       string `yaml:"fn"` // name of the function applied by over
	Input    any    `yaml:"input"`
	Value    any    `yaml:"value"`
	Expected any    `yaml:"expected"`
	Error    string `yaml:"error"`
}

// ReadScenarios decodes an embedded YAML list of scenarios.
func ReadScenarios(name string) ([]Scenario, error) {
	data, err := ReadTestData(name)
	if err != nil {
		return nil, err
	}
	var scenarios []Scenario
	if err := yaml.Unmarshal(data, &scenarios); err != nil {
		return nil, fmt.Errorf("failed to decode scenarios in '%s': %w", name, err)
	}
	return scenarios, nil
}
