// Package evaluation converts a simulated transcript and a weighted rubric
// into a summative, rubric-based judgment.
package evaluation

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/trainexus/interviewsim/internal/backend"
	"github.com/trainexus/interviewsim/internal/models"
)

// Offline scoring heuristic, preserved exactly from the legacy scorer:
// clamp(60 + len/100, 40, 95) over the rendered transcript length. The
// empty-transcript result (60, passing) is a documented consequence of the
// formula, not a bug.
const (
	offlineBase  = 60
	offlineFloor = 40
	offlineCeil  = 95
)

var (
	offlineHighlights   = []string{"Offline high-level feedback"}
	offlineImprovements = []string{"Verbesserungsvorschläge offline"}
)

const offlineNotes = "Offline evaluation (no live backend)"

// Evaluator grades transcripts with the backend resolved for this run. The
// offline path is total: it never fails and never performs I/O.
type Evaluator struct {
	responder backend.Responder
}

// New returns an evaluator bound to the run's backend handle.
func New(responder backend.Responder) *Evaluator {
	return &Evaluator{responder: responder}
}

// Evaluate grades one persona's transcript against the rubric. Neither input
// is mutated.
func (ev *Evaluator) Evaluate(ctx context.Context, transcript models.Transcript, rubric models.Rubric, persona string) (*models.Evaluation, error) {
	blob := transcript.Render()
	if !ev.responder.Live() {
		return ev.evaluateOffline(blob, rubric, persona), nil
	}
	return ev.evaluateLive(ctx, blob, rubric, persona)
}

func (ev *Evaluator) evaluateOffline(blob string, rubric models.Rubric, persona string) *models.Evaluation {
	base := offlineBase + utf8.RuneCountInString(blob)/100
	if base < offlineFloor {
		base = offlineFloor
	}
	if base > offlineCeil {
		base = offlineCeil
	}

	categories := rubric.Categories()
	scores := make(map[string]int, len(categories)+1)
	sum := 0
	for _, category := range categories {
		scores[category] = base
		sum += base
	}
	// Integer division truncates toward zero, matching the legacy scorer.
	overall := sum / len(categories)
	scores[models.OverallKey] = overall

	return &models.Evaluation{
		Persona:      persona,
		Scores:       scores,
		Highlights:   append([]string(nil), offlineHighlights...),
		Improvements: append([]string(nil), offlineImprovements...),
		Notes:        offlineNotes,
		Passed:       overall >= models.PassThreshold,
	}
}

func (ev *Evaluator) evaluateLive(ctx context.Context, blob string, rubric models.Rubric, persona string) (*models.Evaluation, error) {
	review, err := ev.responder.CompleteStructured(ctx, []backend.Message{
		{Role: backend.MessageRoleSystem, Content: gradingInstruction(rubric)},
		{Role: backend.MessageRoleUser, Content: blob},
	})
	if err != nil {
		return nil, fmt.Errorf("evaluating persona %q: %w", persona, err)
	}

	// Missing "overall" defaults to 0 rather than failing the evaluation.
	// Deliberate availability-over-strictness call; everything else about
	// the payload shape is enforced by the decoder.
	overall := review.Scores[models.OverallKey]

	scores := make(map[string]int, len(review.Scores)+1)
	for category, score := range review.Scores {
		scores[category] = score
	}
	scores[models.OverallKey] = overall

	return &models.Evaluation{
		Persona:      persona,
		Scores:       scores,
		Highlights:   review.Highlights,
		Improvements: review.Improvements,
		Notes:        review.Notes,
		Passed:       overall >= models.PassThreshold,
	}, nil
}

// gradingInstruction builds the judge's system prompt: grade the transcript
// against the rubric and answer with strict JSON only.
func gradingInstruction(rubric models.Rubric) string {
	var b strings.Builder
	b.WriteString("Bewerte das folgende Interview-Transkript auf Basis der Rubrik. ")
	b.WriteString("Vergib pro Kategorie eine ganze Zahl von 0 bis 100.\n\nRubrik:\n")
	for _, category := range rubric.Categories() {
		b.WriteString(fmt.Sprintf("- %s (Gewicht %d)\n", category, rubric[category]))
	}
	b.WriteString("\nAntworte ausschliesslich mit einem JSON-Objekt mit den Feldern ")
	b.WriteString(`"scores" (Kategorie -> Ganzzahl 0-100, inklusive "overall"), `)
	b.WriteString(`"highlights" (maximal 3 Strings), "improvements" (maximal 3 Strings) und "notes" (String).`)
	return b.String()
}
