// Package reporting renders batch results into the formats consumed by CI:
// the flat CSV regression report and JUnit XML.
package reporting

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/trainexus/interviewsim/internal/models"
)

// csvHeader matches the legacy CI export consumed by downstream dashboards.
var csvHeader = []string{"scenario", "persona", "score", "passed"}

// WriteCSV writes flat evaluation records as a regression report.
func WriteCSV(w io.Writer, records []models.FlatRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write report header: %w", err)
	}
	for _, rec := range records {
		passed := "no"
		if rec.Passed {
			passed = "yes"
		}
		row := []string{rec.Scenario, rec.Persona, strconv.Itoa(rec.Overall), passed}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write report row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReportFilename returns the timestamped report name, e.g.
// ci_20260115_093000.csv.
func ReportFilename(ts time.Time) string {
	return fmt.Sprintf("ci_%s.csv", ts.UTC().Format("20060102_150405"))
}

// WriteCSVFile writes the report into dir and returns the file path.
func WriteCSVFile(dir string, ts time.Time, records []models.FlatRecord) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}

	path := filepath.Join(dir, ReportFilename(ts))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create report: %w", err)
	}
	defer f.Close()

	if err := WriteCSV(f, records); err != nil {
		return "", err
	}
	return path, nil
}

// FlattenAll collects the flat records of several scenario results in order.
func FlattenAll(results []models.ScenarioResult) []models.FlatRecord {
	var records []models.FlatRecord
	for i := range results {
		records = append(records, results[i].Flatten()...)
	}
	return records
}
