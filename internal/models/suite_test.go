package models

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSuiteFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "suite.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSuite_AppliesDefaults(t *testing.T) {
	path := writeSuiteFile(t, `
name: smoke
scenarios:
  - tag: bewerbung_junior_data_analyst
    name: Bewerbungsgespräch – Junior Data Analyst
    main_prompt: Du führst ein Bewerbungsgespräch.
`)

	suite, err := LoadSuite(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultTurns, suite.Config.Turns)
	assert.Equal(t, DefaultRubric(), suite.Rubric)

	require.Len(t, suite.Personas, 3)
	assert.Equal(t, "best_case", suite.Personas[0].ID)
	assert.Equal(t, "weak", suite.Personas[1].ID)
	assert.Equal(t, "zero_knowledge", suite.Personas[2].ID)
	assert.Contains(t, suite.Personas[0].Prompt, "Persona: best_case")
}

func TestLoadSuite_ExplicitConfig(t *testing.T) {
	path := writeSuiteFile(t, `
name: full
config:
  turns: 5
  temperature: 0.4
  parallel: true
  max_workers: 2
rubric:
  struktur_klarheit: 20
personas:
  - id: best_case
    prompt: Du bist die Idealbesetzung.
scenarios:
  - tag: s1
    main_prompt: p1
  - tag: s2
    main_prompt: p2
`)

	suite, err := LoadSuite(path)
	require.NoError(t, err)

	assert.Equal(t, 5, suite.Config.Turns)
	assert.True(t, suite.Config.Parallel)
	assert.Equal(t, 2, suite.Config.Workers)
	assert.Equal(t, Rubric{"struktur_klarheit": 20}, suite.Rubric)
	require.Len(t, suite.Personas, 1)
	require.Len(t, suite.Scenarios, 2)
}

func TestLoadSuite_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"no scenarios", "name: empty\n"},
		{"duplicate scenario tags", `
name: dup
scenarios:
  - tag: same
    main_prompt: a
  - tag: same
    main_prompt: b
`},
		{"blank scenario tag", `
name: blank
scenarios:
  - tag: "  "
    main_prompt: a
`},
		{"negative turns", `
name: neg
config:
  turns: -1
scenarios:
  - tag: s
    main_prompt: a
`},
		{"negative rubric weight", `
name: rubric
rubric:
  kommunikation: -5
scenarios:
  - tag: s
    main_prompt: a
`},
		{"duplicate personas", `
name: personas
personas:
  - id: weak
    prompt: a
  - id: weak
    prompt: b
scenarios:
  - tag: s
    main_prompt: a
`},
		{"not yaml", "::::{"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSuite(writeSuiteFile(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadSuite_MissingFile(t *testing.T) {
	_, err := LoadSuite(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestSuitePersonaSet_Order(t *testing.T) {
	suite := Suite{
		Personas: []PersonaSpec{
			{ID: "zero_knowledge", Prompt: "z"},
			{ID: "best_case", Prompt: "b"},
		},
	}

	set, err := suite.PersonaSet()
	require.NoError(t, err)
	assert.Equal(t, []string{"zero_knowledge", "best_case"}, set.IDs())
}
