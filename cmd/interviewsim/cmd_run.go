package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/trainexus/interviewsim/internal/backend"
	"github.com/trainexus/interviewsim/internal/models"
	"github.com/trainexus/interviewsim/internal/orchestration"
	"github.com/trainexus/interviewsim/internal/reporting"
)

var (
	outputDir string
	junitPath string
	format    string
	parallel  bool
	workers   int
	turns     int
	modelID   string
	verbose   bool
)

func newRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <suite.yaml>",
		Short: "Run a scenario regression suite",
		Long: `Run a regression suite from a YAML suite file.

Every scenario's main prompt is simulated against each persona, and every
transcript is scored against the suite rubric. Results are printed as a
table; use --output-dir and --junit for CI reports.`,
		Args: cobra.ExactArgs(1),
		RunE: runCommandE,
	}

	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Directory for the CSV regression report")
	cmd.Flags().StringVar(&junitPath, "junit", "", "Write a JUnit XML report to this path")
	cmd.Flags().StringVar(&format, "format", "default", "Output format: default, github-comment")
	cmd.Flags().BoolVar(&parallel, "parallel", false, "Run personas concurrently")
	cmd.Flags().IntVar(&workers, "workers", 0, "Number of concurrent workers (default: 4, requires --parallel)")
	cmd.Flags().IntVar(&turns, "turns", 0, "Override the number of turn pairs per persona")
	cmd.Flags().StringVar(&modelID, "model", "", "Model to use for the live backend (overrides suite config)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output with per-persona progress")

	return cmd
}

func runCommandE(cmd *cobra.Command, args []string) error {
	suite, err := models.LoadSuite(args[0])
	if err != nil {
		return fmt.Errorf("failed to load suite: %w", err)
	}

	// Flag overrides
	if turns > 0 {
		suite.Config.Turns = turns
	}
	if modelID != "" {
		suite.Config.Model = modelID
	}
	if parallel {
		suite.Config.Parallel = true
	}
	if workers > 0 {
		suite.Config.Workers = workers
	}

	personas, err := suite.PersonaSet()
	if err != nil {
		return err
	}

	// Resolved once for the whole run: either every batch is live or every
	// batch is offline.
	responder := backend.Resolve(backend.Config{Model: suite.Config.Model})
	mode := "offline"
	if responder.Live() {
		mode = "live"
	}
	fmt.Printf("Suite: %s (%d scenarios, %d personas, %d turns, %s backend)\n\n",
		suite.Name, len(suite.Scenarios), personas.Len(), suite.Config.Turns, mode)

	var opts []orchestration.RunnerOption
	if suite.Config.Parallel {
		opts = append(opts, orchestration.WithParallel(suite.Config.Workers))
	}
	runner := orchestration.NewRunner(responder, opts...)
	if verbose {
		runner.OnProgress(printProgress)
	}

	start := time.Now()
	var results []models.ScenarioResult

	for _, scenario := range suite.Scenarios {
		if scenario.MainPrompt == "" {
			slog.Warn("scenario has no main prompt, skipping", "tag", scenario.Tag)
			continue
		}

		scenarioStart := time.Now()
		evaluations, err := runner.RunBatch(cmd.Context(), orchestration.Batch{
			MainPrompt:  scenario.MainPrompt,
			Personas:    personas,
			Rubric:      suite.Rubric,
			Turns:       suite.Config.Turns,
			Temperature: suite.Config.Temperature,
		})
		if err != nil {
			return fmt.Errorf("scenario %q: %w", scenario.Tag, err)
		}

		results = append(results, models.ScenarioResult{
			Tag:         scenario.Tag,
			Name:        scenario.Name,
			Evaluations: evaluations,
			DurationMs:  time.Since(scenarioStart).Milliseconds(),
		})
	}

	if len(results) == 0 {
		return fmt.Errorf("no scenarios with a main prompt found")
	}

	if err := writeReports(results); err != nil {
		return err
	}

	switch format {
	case "github-comment":
		fmt.Println(FormatGitHubComment(results, mode))
	default:
		printResultTable(results, mode, time.Since(start))
	}

	if failed := countFailed(results); failed > 0 {
		return &PersonaFailureError{
			Message: fmt.Sprintf("%d persona evaluation(s) below pass threshold", failed),
		}
	}
	return nil
}

func writeReports(results []models.ScenarioResult) error {
	now := time.Now()

	if outputDir != "" {
		path, err := reporting.WriteCSVFile(outputDir, now, reporting.FlattenAll(results))
		if err != nil {
			return fmt.Errorf("writing CSV report: %w", err)
		}
		fmt.Printf("CSV report written to %s\n", path)
	}

	if junitPath != "" {
		f, err := os.Create(junitPath)
		if err != nil {
			return fmt.Errorf("creating JUnit report: %w", err)
		}
		defer f.Close()
		if err := reporting.WriteJUnit(f, reporting.ConvertToJUnit(results, now)); err != nil {
			return fmt.Errorf("writing JUnit report: %w", err)
		}
		fmt.Printf("JUnit report written to %s\n", junitPath)
	}

	return nil
}

func printProgress(event orchestration.ProgressEvent) {
	switch event.EventType {
	case orchestration.EventPersonaStart:
		fmt.Printf("  • %s (%d/%d) ...\n", event.Persona, event.PersonaNum, event.Total)
	case orchestration.EventPersonaComplete:
		status := "FAIL"
		if event.Passed {
			status = "PASS"
		}
		fmt.Printf("  • %s (%d/%d) %s score=%d (%dms)\n",
			event.Persona, event.PersonaNum, event.Total, status, event.Overall, event.DurationMs)
	}
}

func countFailed(results []models.ScenarioResult) int {
	failed := 0
	for i := range results {
		for j := range results[i].Evaluations {
			if !results[i].Evaluations[j].Passed {
				failed++
			}
		}
	}
	return failed
}
