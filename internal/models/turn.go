package models

import (
	"fmt"
	"strings"
)

// Role identifies who produced a dialogue turn.
type Role string

const (
	RoleSystem    Role = "system"
	RoleLearner   Role = "learner"
	RoleAssistant Role = "assistant"
)

// Turn is a single utterance in a simulated dialogue. Turns are immutable
// once appended to a transcript.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Transcript is the ordered record of turns produced by one simulation run.
// It is append-only while the run is in progress and read-only afterwards.
type Transcript []Turn

// Render flattens the transcript into the text blob graded by the evaluator:
// one "role: content" line per turn, in transcript order, untruncated.
func (t Transcript) Render() string {
	lines := make([]string, 0, len(t))
	for _, turn := range t {
		lines = append(lines, fmt.Sprintf("%s: %s", turn.Role, turn.Content))
	}
	return strings.Join(lines, "\n")
}

// SimulationMetadata records how a simulation was parameterized.
type SimulationMetadata struct {
	Persona   string `json:"persona"`
	TurnCount int    `json:"turn_count"`
}

// SimulationResult is the output of one conversation-driver invocation.
type SimulationResult struct {
	Persona    string             `json:"persona"`
	Transcript Transcript         `json:"transcript"`
	Metadata   SimulationMetadata `json:"metadata"`
}
