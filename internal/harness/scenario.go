package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario defines one conformance scenario.
type Scenario struct {
	// Name uniquely identifies this scenario; it also names the
	// golden trace file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Document is the inline UI document the scenario runs against.
	// Optional; scenarios that only exercise actions may omit it.
	Document string `yaml:"document,omitempty"`

	// Seed pre-populates the state store before the document's own
	// state block is applied. Host seeds win over document seeds.
	Seed map[string]string `yaml:"seed,omitempty"`

	// Actions are dispatched in order after seeding.
	Actions []string `yaml:"actions"`

	// Assertions validate the final state and the event trace.
	Assertions Assertions `yaml:"assertions,omitempty"`

	// Session is the fixed token the run's journal records under.
	// Empty defaults to "test-session" so golden traces stay
	// deterministic.
	Session string `yaml:"session,omitempty"`
}

// Assertions validate a finished scenario run.
type Assertions struct {
	// State asserts final store values, key by key.
	State map[string]string `yaml:"state,omitempty"`

	// Trace asserts the exact rendered trace lines, in order.
	Trace []string `yaml:"trace,omitempty"`
}

// LoadScenario reads and validates a scenario YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}

	var s Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", filepath.Base(path), err)
	}

	if s.Name == "" {
		return nil, fmt.Errorf("scenario %s: missing name", filepath.Base(path))
	}
	if len(s.Actions) == 0 {
		return nil, fmt.Errorf("scenario %s: no actions", s.Name)
	}
	if s.Session == "" {
		s.Session = "test-session"
	}
	return &s, nil
}

// LoadScenarios loads every *.yaml scenario under dir, sorted by path.
func LoadScenarios(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("glob scenarios: %w", err)
	}

	scenarios := make([]*Scenario, 0, len(paths))
	for _, path := range paths {
		s, err := LoadScenario(path)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}
