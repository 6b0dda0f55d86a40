package backend

import (
	"context"
	"strings"
)

const (
	offlineMarker   = "[offline-response] "
	offlineMaxRunes = 200
)

// Offline is the deterministic stub used when no API key is configured.
// Output is a pure function of the input messages: the user-role contents
// joined with spaces, truncated to the first 200 characters, behind a fixed
// marker tag. Identical inputs produce byte-identical outputs.
type Offline struct{}

// NewOffline returns the offline stub.
func NewOffline() *Offline { return &Offline{} }

// Live implements [Responder].
func (*Offline) Live() bool { return false }

// Complete implements [Responder]. It performs no I/O and never fails.
func (*Offline) Complete(_ context.Context, messages []Message, _ float64) (string, error) {
	var parts []string
	for _, m := range messages {
		if m.Role == MessageRoleUser {
			parts = append(parts, m.Content)
		}
	}
	combined := strings.Join(parts, " ")
	if runes := []rune(combined); len(runes) > offlineMaxRunes {
		combined = string(runes[:offlineMaxRunes])
	}
	return offlineMarker + combined, nil
}

// CompleteStructured implements [Responder]. The offline evaluation path
// scores deterministically without a judge, so this is never reached from
// the harness itself.
func (*Offline) CompleteStructured(context.Context, []Message) (*StructuredReview, error) {
	return nil, ErrUnavailable
}
