package simulation

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trainexus/interviewsim/internal/backend"
	"github.com/trainexus/interviewsim/internal/models"
)

// countingResponder wraps another responder and counts Complete calls.
type countingResponder struct {
	backend.Responder
	calls atomic.Int64
}

func (c *countingResponder) Complete(ctx context.Context, messages []backend.Message, temperature float64) (string, error) {
	c.calls.Add(1)
	return c.Responder.Complete(ctx, messages, temperature)
}

// failingResponder fails on the nth Complete call (1-based).
type failingResponder struct {
	failOn int
	calls  int
}

func (f *failingResponder) Complete(context.Context, []backend.Message, float64) (string, error) {
	f.calls++
	if f.calls >= f.failOn {
		return "", &backend.CallError{Op: "complete", Err: errors.New("boom")}
	}
	return fmt.Sprintf("reply %d", f.calls), nil
}

func (f *failingResponder) CompleteStructured(context.Context, []backend.Message) (*backend.StructuredReview, error) {
	return nil, backend.ErrUnavailable
}

func (f *failingResponder) Live() bool { return true }

func TestSimulate_TranscriptShape(t *testing.T) {
	for _, turns := range []int{1, 2, 5} {
		t.Run(fmt.Sprintf("turns_%d", turns), func(t *testing.T) {
			result, err := Simulate(context.Background(), backend.NewOffline(), Request{
				MainPrompt:    "sys",
				PersonaPrompt: "persona",
				PersonaID:     "best_case",
				Turns:         turns,
			})
			require.NoError(t, err)

			assert.Len(t, result.Transcript, 2*turns)
			for i, turn := range result.Transcript {
				want := models.RoleLearner
				if i%2 == 1 {
					want = models.RoleAssistant
				}
				assert.Equal(t, want, turn.Role, "turn %d", i)
			}

			assert.Equal(t, "best_case", result.Persona)
			assert.Equal(t, "best_case", result.Metadata.Persona)
			assert.Equal(t, turns, result.Metadata.TurnCount)
		})
	}
}

func TestSimulate_SingleTurnOffline(t *testing.T) {
	result, err := Simulate(context.Background(), backend.NewOffline(), Request{
		MainPrompt:    "sys",
		PersonaPrompt: "persona",
		PersonaID:     "best_case",
		Turns:         1,
	})
	require.NoError(t, err)
	require.Len(t, result.Transcript, 2)

	// The offline stub echoes user-role content: the learner call sees only
	// the sentinel, the interviewer call sees the learner's reply.
	assert.Equal(t, models.RoleLearner, result.Transcript[0].Role)
	assert.Equal(t, "[offline-response] <simulate>", result.Transcript[0].Content)

	assert.Equal(t, models.RoleAssistant, result.Transcript[1].Role)
	assert.Equal(t, "[offline-response] [offline-response] <simulate>", result.Transcript[1].Content)
}

func TestSimulate_ZeroTurns(t *testing.T) {
	counting := &countingResponder{Responder: backend.NewOffline()}

	result, err := Simulate(context.Background(), counting, Request{
		MainPrompt:    "sys",
		PersonaPrompt: "persona",
		PersonaID:     "weak",
		Turns:         0,
	})
	require.NoError(t, err)

	assert.Empty(t, result.Transcript)
	assert.Equal(t, int64(0), counting.calls.Load(), "no backend calls for zero turns")
}

func TestSimulate_TwoCallsPerTurn(t *testing.T) {
	counting := &countingResponder{Responder: backend.NewOffline()}

	_, err := Simulate(context.Background(), counting, Request{
		MainPrompt:    "sys",
		PersonaPrompt: "persona",
		PersonaID:     "weak",
		Turns:         3,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(6), counting.calls.Load())
}

func TestSimulate_FaultCarriesPersonaAndIteration(t *testing.T) {
	tests := []struct {
		name          string
		failOn        int
		wantIteration int
	}{
		{"learner call of first iteration", 1, 0},
		{"interviewer call of first iteration", 2, 0},
		{"learner call of third iteration", 5, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Simulate(context.Background(), &failingResponder{failOn: tt.failOn}, Request{
				MainPrompt:    "sys",
				PersonaPrompt: "persona",
				PersonaID:     "weak",
				Turns:         4,
			})
			require.Error(t, err)

			var simErr *Error
			require.True(t, errors.As(err, &simErr))
			assert.Equal(t, "weak", simErr.Persona)
			assert.Equal(t, tt.wantIteration, simErr.Iteration)

			var callErr *backend.CallError
			assert.True(t, errors.As(err, &callErr), "cause should unwrap to *backend.CallError")
		})
	}
}

func TestSimulate_DeterministicOffline(t *testing.T) {
	req := Request{
		MainPrompt:    "sys",
		PersonaPrompt: "persona",
		PersonaID:     "best_case",
		Turns:         3,
	}

	first, err := Simulate(context.Background(), backend.NewOffline(), req)
	require.NoError(t, err)
	second, err := Simulate(context.Background(), backend.NewOffline(), req)
	require.NoError(t, err)

	assert.Equal(t, first.Transcript, second.Transcript)
}
