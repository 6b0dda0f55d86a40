// Package simulation drives one fixed-length dialogue between an interviewer
// prompt and a role-played candidate persona.
package simulation

import (
	"context"
	"fmt"

	"github.com/trainexus/interviewsim/internal/backend"
	"github.com/trainexus/interviewsim/internal/models"
)

// Greeting is the fixed assistant opener seeding every simulated dialogue.
const Greeting = "Hallo, willkommen."

// sentinel is the injected user turn that asks the backend to produce the
// next candidate reply.
const sentinel = "<simulate>"

// DefaultTemperature is used when the request leaves temperature unset.
const DefaultTemperature = 0.2

// Request parameterizes one persona simulation.
type Request struct {
	MainPrompt    string
	PersonaPrompt string
	PersonaID     string
	Turns         int
	// Temperature of 0 selects DefaultTemperature.
	Temperature float64
}

// Error attributes a backend fault to the persona and iteration it occurred
// in, so the batch orchestrator can report which run broke.
type Error struct {
	Persona   string
	Iteration int
	Err       error
}

func (e *Error) Error() string {
	return fmt.Sprintf("simulation: persona %q, iteration %d: %v", e.Persona, e.Iteration, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Simulate runs a dialogue of exactly req.Turns learner/assistant pairs. The
// internal history is primed with the main prompt and the greeting; those
// seed turns are not part of the returned transcript. Turns == 0 is valid
// and yields an empty transcript without any backend call.
//
// Each iteration issues two strictly sequential backend calls: the learner
// turn (history plus the persona instruction and the sentinel) and the
// interviewer reply (updated history alone, without the persona
// instruction). Iteration i+1 sees the full history through iteration i, so
// turns within one persona cannot be generated concurrently.
func Simulate(ctx context.Context, responder backend.Responder, req Request) (*models.SimulationResult, error) {
	temperature := req.Temperature
	if temperature == 0 {
		temperature = DefaultTemperature
	}

	personaTurn := backend.Message{Role: backend.MessageRoleSystem, Content: req.PersonaPrompt}
	history := []backend.Message{
		{Role: backend.MessageRoleSystem, Content: req.MainPrompt},
		{Role: backend.MessageRoleAssistant, Content: Greeting},
	}

	transcript := make(models.Transcript, 0, 2*max(req.Turns, 0))

	for i := 0; i < req.Turns; i++ {
		prompt := make([]backend.Message, 0, len(history)+2)
		prompt = append(prompt, history...)
		prompt = append(prompt, personaTurn, backend.Message{Role: backend.MessageRoleUser, Content: sentinel})

		learner, err := responder.Complete(ctx, prompt, temperature)
		if err != nil {
			return nil, &Error{Persona: req.PersonaID, Iteration: i, Err: err}
		}
		transcript = append(transcript, models.Turn{Role: models.RoleLearner, Content: learner})
		history = append(history, backend.Message{Role: backend.MessageRoleUser, Content: learner})

		reply, err := responder.Complete(ctx, history, temperature)
		if err != nil {
			return nil, &Error{Persona: req.PersonaID, Iteration: i, Err: err}
		}
		transcript = append(transcript, models.Turn{Role: models.RoleAssistant, Content: reply})
		history = append(history, backend.Message{Role: backend.MessageRoleAssistant, Content: reply})
	}

	return &models.SimulationResult{
		Persona:    req.PersonaID,
		Transcript: transcript,
		Metadata: models.SimulationMetadata{
			Persona:   req.PersonaID,
			TurnCount: req.Turns,
		},
	}, nil
}
