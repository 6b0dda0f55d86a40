package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/trainexus/interviewsim/internal/models"
	"github.com/trainexus/interviewsim/internal/reporting"
)

// formatDuration formats a duration in a consistent, human-readable way.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

// printResultTable prints the default per-scenario result listing.
func printResultTable(results []models.ScenarioResult, mode string, elapsed time.Duration) {
	total := 0
	passed := 0

	fmt.Println()
	for i := range results {
		sr := &results[i]
		fmt.Printf("%s:\n", sr.Tag)
		for j := range sr.Evaluations {
			eval := &sr.Evaluations[j]
			total++
			status := "FAIL"
			if eval.Passed {
				passed++
				status = "PASS"
			}
			fmt.Printf("  %-20s %s  overall=%d  %s\n",
				eval.Persona, status, eval.Overall(), reporting.InterpretScore(eval.Overall()))
		}
	}

	rate := 0.0
	if total > 0 {
		rate = float64(passed) / float64(total)
	}
	fmt.Printf("\n%s — %d/%d passed in %s (%s backend)\n",
		reporting.InterpretPassRate(rate), passed, total, formatDuration(elapsed), mode)
}

// FormatGitHubComment formats scenario results as a markdown comment for
// GitHub PRs.
func FormatGitHubComment(results []models.ScenarioResult, mode string) string {
	var b strings.Builder

	total := 0
	passed := 0
	for i := range results {
		for j := range results[i].Evaluations {
			total++
			if results[i].Evaluations[j].Passed {
				passed++
			}
		}
	}

	b.WriteString("## 🧪 Interview Simulation Regression\n\n")

	statusIcon := "✅ Passed"
	if passed < total {
		statusIcon = "❌ Failed"
	}
	b.WriteString(fmt.Sprintf("**Status:** %s | **Personas:** %d/%d passed | **Backend:** %s\n\n",
		statusIcon, passed, total, mode))

	b.WriteString("| Scenario | Persona | Overall | Status |\n")
	b.WriteString("|----------|---------|---------|--------|\n")

	for i := range results {
		sr := &results[i]
		for j := range sr.Evaluations {
			eval := &sr.Evaluations[j]
			icon := "✅"
			if !eval.Passed {
				icon = "❌"
			}
			b.WriteString(fmt.Sprintf("| %s | %s | %d | %s |\n",
				sr.Tag, eval.Persona, eval.Overall(), icon))
		}
	}
	b.WriteString("\n")

	// Improvement notes for failed personas
	failedNotes := false
	for i := range results {
		sr := &results[i]
		for j := range sr.Evaluations {
			eval := &sr.Evaluations[j]
			if eval.Passed || len(eval.Improvements) == 0 {
				continue
			}
			if !failedNotes {
				b.WriteString("### Suggested Improvements\n\n")
				failedNotes = true
			}
			b.WriteString(fmt.Sprintf("- **%s / %s**: %s\n", sr.Tag, eval.Persona,
				strings.Join(eval.Improvements, "; ")))
		}
	}
	if failedNotes {
		b.WriteString("\n")
	}

	return b.String()
}
