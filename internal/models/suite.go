package models

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultTurns is the number of simulated turn pairs per persona when a
// suite does not specify one.
const DefaultTurns = 3

// personaTemplate is the stock candidate-role instruction, parameterized by
// persona name.
const personaTemplate = "Rolle: Du simulierst Bewerber:innen. Persona: %s. Halte dich an die Beschreibung aus der Dokumentation."

// stockPersonas are the candidate profiles every regression run covers when
// the suite does not define its own.
var stockPersonas = []string{"best_case", "weak", "zero_knowledge"}

// DefaultRubric returns the standard interview grading rubric.
func DefaultRubric() Rubric {
	return Rubric{
		"struktur_klarheit":     20,
		"passung_beispiele":     25,
		"fachliche_korrektheit": 20,
		"kommunikation":         20,
		"reflexion":             15,
	}
}

// DefaultPersonas returns the stock persona prompts in their canonical order.
func DefaultPersonas() []PersonaSpec {
	specs := make([]PersonaSpec, 0, len(stockPersonas))
	for _, name := range stockPersonas {
		specs = append(specs, PersonaSpec{
			ID:     name,
			Prompt: fmt.Sprintf(personaTemplate, name),
		})
	}
	return specs
}

// Suite is the YAML definition of one regression run: a set of scenarios
// simulated against a shared persona set and rubric.
type Suite struct {
	Name      string         `yaml:"name"`
	Config    SuiteConfig    `yaml:"config"`
	Rubric    Rubric         `yaml:"rubric,omitempty"`
	Personas  []PersonaSpec  `yaml:"personas,omitempty"`
	Scenarios []ScenarioSpec `yaml:"scenarios"`
}

// SuiteConfig controls execution behavior.
type SuiteConfig struct {
	Turns       int     `yaml:"turns"`
	Temperature float64 `yaml:"temperature,omitempty"`
	Model       string  `yaml:"model,omitempty"`
	Parallel    bool    `yaml:"parallel,omitempty"`
	Workers     int     `yaml:"max_workers,omitempty"`
}

// PersonaSpec names one synthetic candidate profile.
type PersonaSpec struct {
	ID     string `yaml:"id"`
	Prompt string `yaml:"prompt"`
}

// ScenarioSpec is one authored interview scenario under regression.
type ScenarioSpec struct {
	Tag        string `yaml:"tag"`
	Name       string `yaml:"name,omitempty"`
	MainPrompt string `yaml:"main_prompt"`
}

// LoadSuite reads, defaults and validates a suite from a YAML file.
func LoadSuite(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var suite Suite
	if err := yaml.Unmarshal(data, &suite); err != nil {
		return nil, fmt.Errorf("parsing suite %s: %w", path, err)
	}

	suite.ApplyDefaults()
	if err := suite.Validate(); err != nil {
		return nil, fmt.Errorf("invalid suite %s: %w", path, err)
	}

	return &suite, nil
}

// ApplyDefaults fills omitted fields with the stock configuration.
func (s *Suite) ApplyDefaults() {
	if s.Config.Turns == 0 {
		s.Config.Turns = DefaultTurns
	}
	if len(s.Rubric) == 0 {
		s.Rubric = DefaultRubric()
	}
	if len(s.Personas) == 0 {
		s.Personas = DefaultPersonas()
	}
}

// Validate checks that the suite can run.
func (s *Suite) Validate() error {
	if s.Config.Turns < 0 {
		return fmt.Errorf("turns must be >= 0, got %d", s.Config.Turns)
	}
	if s.Config.Workers < 0 {
		return fmt.Errorf("max_workers must be >= 0, got %d", s.Config.Workers)
	}
	if err := s.Rubric.Validate(); err != nil {
		return err
	}
	if len(s.Scenarios) == 0 {
		return fmt.Errorf("suite defines no scenarios")
	}
	seen := make(map[string]bool, len(s.Scenarios))
	for i, sc := range s.Scenarios {
		if strings.TrimSpace(sc.Tag) == "" {
			return fmt.Errorf("scenario %d has no tag", i)
		}
		if seen[sc.Tag] {
			return fmt.Errorf("duplicate scenario tag %q", sc.Tag)
		}
		seen[sc.Tag] = true
	}
	// Duplicate persona ids surface here rather than at batch time.
	if _, err := s.PersonaSet(); err != nil {
		return err
	}
	return nil
}

// PersonaSet builds the ordered persona set used for every scenario batch.
func (s *Suite) PersonaSet() (*PersonaSet, error) {
	set := NewPersonaSet()
	for _, p := range s.Personas {
		if err := set.Add(p.ID, p.Prompt); err != nil {
			return nil, err
		}
	}
	return set, nil
}
