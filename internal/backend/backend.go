// Package backend provides the text-completion capability consumed by the
// conversation driver and the evaluator. The live implementation talks to
// the Anthropic Messages API; the offline stub is a deterministic pure
// function used for reproducible, dependency-free regression runs.
package backend

import (
	"context"
	"os"
)

// Message roles use the wire vocabulary of chat completion APIs. The
// simulation's "learner" turns are injected as user-role messages.
const (
	MessageRoleSystem    = "system"
	MessageRoleUser      = "user"
	MessageRoleAssistant = "assistant"
)

// Message is one entry in the ordered prompt sent to a backend.
type Message struct {
	Role    string
	Content string
}

// Responder is the polymorphic completion capability. Implementations must
// be safe for concurrent use; persona batches may share one handle.
type Responder interface {
	// Complete returns a single text completion for the message sequence.
	Complete(ctx context.Context, messages []Message, temperature float64) (string, error)

	// CompleteStructured returns the strict judge payload used by the live
	// evaluator. The offline stub does not implement it and returns
	// ErrUnavailable; the offline evaluation path never calls it.
	CompleteStructured(ctx context.Context, messages []Message) (*StructuredReview, error)

	// Live reports whether this backend performs network I/O.
	Live() bool
}

// Config parameterizes backend resolution.
type Config struct {
	// Model overrides the default completion model.
	Model string
	// APIKey overrides the ANTHROPIC_API_KEY environment variable.
	APIKey string
}

// Resolve performs the availability probe exactly once and returns the
// backend handle for the whole run. A missing API key is configuration, not
// an error: it selects offline mode for the entire batch, so a run either
// fully executes live or fully executes offline.
func Resolve(cfg Config) Responder {
	key := cfg.APIKey
	if key == "" {
		key = os.Getenv("ANTHROPIC_API_KEY")
	}
	if key == "" {
		return NewOffline()
	}
	return NewLive(cfg.Model, key)
}
