// Package orchestration runs persona batches: every persona in a set is
// simulated against one main prompt and its transcript scored, with results
// reported in persona insertion order.
package orchestration

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/trainexus/interviewsim/internal/backend"
	"github.com/trainexus/interviewsim/internal/evaluation"
	"github.com/trainexus/interviewsim/internal/models"
	"github.com/trainexus/interviewsim/internal/simulation"
)

// EventType represents the type of progress event.
type EventType string

// EventType constants
const (
	EventBatchStart      EventType = "batch_start"
	EventBatchComplete   EventType = "batch_complete"
	EventPersonaStart    EventType = "persona_start"
	EventPersonaComplete EventType = "persona_complete"
)

// ProgressEvent is a progress update emitted while a batch runs.
type ProgressEvent struct {
	EventType  EventType
	Persona    string
	PersonaNum int
	Total      int
	Overall    int
	Passed     bool
	DurationMs int64
}

// ProgressListener receives progress updates.
type ProgressListener func(event ProgressEvent)

// Runner executes persona batches against one resolved backend.
type Runner struct {
	responder backend.Responder
	evaluator *evaluation.Evaluator

	parallel bool
	workers  int

	progressMu sync.Mutex
	listeners  []ProgressListener
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithParallel enables bounded concurrent persona execution. Output order is
// unaffected: results are reassembled into persona insertion order. Workers
// <= 0 falls back to 4.
func WithParallel(workers int) RunnerOption {
	return func(r *Runner) {
		r.parallel = true
		if workers <= 0 {
			workers = 4
		}
		r.workers = workers
	}
}

// NewRunner creates a batch runner bound to the run's backend handle.
func NewRunner(responder backend.Responder, opts ...RunnerOption) *Runner {
	r := &Runner{
		responder: responder,
		evaluator: evaluation.New(responder),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// OnProgress registers a progress listener.
func (r *Runner) OnProgress(listener ProgressListener) {
	r.progressMu.Lock()
	defer r.progressMu.Unlock()
	r.listeners = append(r.listeners, listener)
}

func (r *Runner) notifyProgress(event ProgressEvent) {
	r.progressMu.Lock()
	listeners := make([]ProgressListener, len(r.listeners))
	copy(listeners, r.listeners)
	r.progressMu.Unlock()

	for _, listener := range listeners {
		listener(event)
	}
}

// Batch describes one regression batch: all personas against one main prompt
// with one rubric.
type Batch struct {
	MainPrompt  string
	Personas    *models.PersonaSet
	Rubric      models.Rubric
	Turns       int
	Temperature float64
}

// RunBatch simulates and evaluates every persona, returning evaluations in
// persona insertion order. The policy is fail-fast: the first persona fault
// aborts the batch and propagates, annotated with the persona id (and the
// iteration index for simulation faults). The rubric is validated before any
// backend call is issued.
func (r *Runner) RunBatch(ctx context.Context, batch Batch) ([]models.Evaluation, error) {
	if err := batch.Rubric.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rubric: %w", err)
	}
	if batch.Personas == nil || batch.Personas.Len() == 0 {
		return nil, errors.New("batch has no personas")
	}

	ids := batch.Personas.IDs()
	start := time.Now()
	r.notifyProgress(ProgressEvent{EventType: EventBatchStart, Total: len(ids)})

	var results []models.Evaluation
	var err error
	if r.parallel {
		results, err = r.runParallel(ctx, batch, ids)
	} else {
		results, err = r.runSequential(ctx, batch, ids)
	}
	if err != nil {
		return nil, err
	}

	r.notifyProgress(ProgressEvent{
		EventType:  EventBatchComplete,
		Total:      len(ids),
		DurationMs: time.Since(start).Milliseconds(),
	})
	return results, nil
}

func (r *Runner) runSequential(ctx context.Context, batch Batch, ids []string) ([]models.Evaluation, error) {
	results := make([]models.Evaluation, 0, len(ids))

	for i, id := range ids {
		eval, err := r.runPersona(ctx, batch, id, i+1, len(ids))
		if err != nil {
			return nil, err
		}
		results = append(results, *eval)
	}

	return results, nil
}

func (r *Runner) runParallel(ctx context.Context, batch Batch, ids []string) ([]models.Evaluation, error) {
	// Personas are independent: no shared history, and the backend handle is
	// safe for concurrent use. Results land in their input slot so output
	// order never depends on completion order.
	results := make([]models.Evaluation, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i, id := range ids {
		g.Go(func() error {
			eval, err := r.runPersona(gctx, batch, id, i+1, len(ids))
			if err != nil {
				return err
			}
			results[i] = *eval
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *Runner) runPersona(ctx context.Context, batch Batch, id string, num, total int) (*models.Evaluation, error) {
	prompt, ok := batch.Personas.Prompt(id)
	if !ok {
		return nil, fmt.Errorf("persona %q missing from set", id)
	}

	r.notifyProgress(ProgressEvent{
		EventType:  EventPersonaStart,
		Persona:    id,
		PersonaNum: num,
		Total:      total,
	})
	start := time.Now()

	sim, err := simulation.Simulate(ctx, r.responder, simulation.Request{
		MainPrompt:    batch.MainPrompt,
		PersonaPrompt: prompt,
		PersonaID:     id,
		Turns:         batch.Turns,
		Temperature:   batch.Temperature,
	})
	if err != nil {
		return nil, err
	}

	eval, err := r.evaluator.Evaluate(ctx, sim.Transcript, batch.Rubric, id)
	if err != nil {
		return nil, err
	}

	r.notifyProgress(ProgressEvent{
		EventType:  EventPersonaComplete,
		Persona:    id,
		PersonaNum: num,
		Total:      total,
		Overall:    eval.Overall(),
		Passed:     eval.Passed,
		DurationMs: time.Since(start).Milliseconds(),
	})
	return eval, nil
}
