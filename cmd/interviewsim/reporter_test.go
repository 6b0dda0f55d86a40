package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/trainexus/interviewsim/internal/models"
)

func commentFixture() []models.ScenarioResult {
	return []models.ScenarioResult{
		{
			Tag: "bewerbung_junior_data_analyst",
			Evaluations: []models.Evaluation{
				{Persona: "best_case", Scores: map[string]int{models.OverallKey: 82}, Passed: true},
				{
					Persona:      "weak",
					Scores:       map[string]int{models.OverallKey: 48},
					Improvements: []string{"Beispiele konkretisieren", "Struktur verbessern"},
				},
			},
		},
	}
}

func TestFormatGitHubComment_Failing(t *testing.T) {
	comment := FormatGitHubComment(commentFixture(), "offline")

	assert.Contains(t, comment, "## 🧪 Interview Simulation Regression")
	assert.Contains(t, comment, "❌ Failed")
	assert.Contains(t, comment, "**Personas:** 1/2 passed")
	assert.Contains(t, comment, "**Backend:** offline")
	assert.Contains(t, comment, "| Scenario | Persona | Overall | Status |")
	assert.Contains(t, comment, "| bewerbung_junior_data_analyst | best_case | 82 | ✅ |")
	assert.Contains(t, comment, "| bewerbung_junior_data_analyst | weak | 48 | ❌ |")
	assert.Contains(t, comment, "### Suggested Improvements")
	assert.Contains(t, comment, "- **bewerbung_junior_data_analyst / weak**: Beispiele konkretisieren; Struktur verbessern")
}

func TestFormatGitHubComment_AllPassing(t *testing.T) {
	results := commentFixture()
	results[0].Evaluations[1].Passed = true

	comment := FormatGitHubComment(results, "live")
	assert.Contains(t, comment, "✅ Passed")
	assert.Contains(t, comment, "**Personas:** 2/2 passed")
	assert.NotContains(t, comment, "### Suggested Improvements")
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "250ms", formatDuration(250*time.Millisecond))
	assert.Equal(t, "2.5s", formatDuration(2500*time.Millisecond))
}

func TestCountFailed(t *testing.T) {
	results := commentFixture()
	assert.Equal(t, 1, countFailed(results))

	results[0].Evaluations[1].Passed = true
	assert.Equal(t, 0, countFailed(results))

	assert.Equal(t, 0, countFailed(nil))
}

func TestFormatGitHubComment_TableRowCount(t *testing.T) {
	comment := FormatGitHubComment(commentFixture(), "offline")

	rows := 0
	for _, line := range strings.Split(comment, "\n") {
		if strings.HasPrefix(line, "| bewerbung_junior_data_analyst |") {
			rows++
		}
	}
	assert.Equal(t, 2, rows)
}
