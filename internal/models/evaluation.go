package models

// OverallKey is the synthetic aggregate category present in every Evaluation.
const OverallKey = "overall"

// PassThreshold is the minimum overall score for a passing evaluation.
const PassThreshold = 60

// Evaluation is the rubric-based judgment of one persona's transcript.
// It is immutable once produced.
type Evaluation struct {
	Persona      string         `json:"persona"`
	Scores       map[string]int `json:"scores"`
	Highlights   []string       `json:"highlights"`
	Improvements []string       `json:"improvements"`
	Notes        string         `json:"notes"`
	Passed       bool           `json:"passed"`
}

// Overall returns the aggregate score, or 0 when the key is absent.
func (e *Evaluation) Overall() int {
	return e.Scores[OverallKey]
}

// FlatRecord is the tabular view of an Evaluation consumed by CSV reports.
type FlatRecord struct {
	Scenario string `json:"scenario"`
	Persona  string `json:"persona"`
	Overall  int    `json:"overall_score"`
	Passed   bool   `json:"passed"`
}

// Flatten projects the evaluation onto a flat report record.
func (e *Evaluation) Flatten(scenario string) FlatRecord {
	return FlatRecord{
		Scenario: scenario,
		Persona:  e.Persona,
		Overall:  e.Overall(),
		Passed:   e.Passed,
	}
}

// ScenarioResult groups the evaluations of one scenario's batch run.
type ScenarioResult struct {
	Tag         string       `json:"tag"`
	Name        string       `json:"name"`
	Evaluations []Evaluation `json:"evaluations"`
	DurationMs  int64        `json:"duration_ms"`
}

// Flatten projects every evaluation onto flat report records, in batch order.
func (s *ScenarioResult) Flatten() []FlatRecord {
	records := make([]FlatRecord, 0, len(s.Evaluations))
	for i := range s.Evaluations {
		records = append(records, s.Evaluations[i].Flatten(s.Tag))
	}
	return records
}

// Passed reports whether every persona in the scenario passed.
func (s *ScenarioResult) Passed() bool {
	for i := range s.Evaluations {
		if !s.Evaluations[i].Passed {
			return false
		}
	}
	return true
}
