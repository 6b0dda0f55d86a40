package models

import "fmt"

// PersonaSet is an insertion-ordered mapping from persona id to the persona
// instruction prompt. Batch output echoes insertion order, which keeps
// regression reports reproducible across runs.
type PersonaSet struct {
	order   []string
	prompts map[string]string
}

// NewPersonaSet returns an empty set.
func NewPersonaSet() *PersonaSet {
	return &PersonaSet{prompts: make(map[string]string)}
}

// Add registers a persona. Duplicate ids are rejected.
func (s *PersonaSet) Add(id, prompt string) error {
	if id == "" {
		return fmt.Errorf("persona id must not be empty")
	}
	if _, exists := s.prompts[id]; exists {
		return fmt.Errorf("duplicate persona id %q", id)
	}
	s.order = append(s.order, id)
	s.prompts[id] = prompt
	return nil
}

// Len returns the number of personas.
func (s *PersonaSet) Len() int {
	return len(s.order)
}

// IDs returns the persona ids in insertion order.
func (s *PersonaSet) IDs() []string {
	ids := make([]string, len(s.order))
	copy(ids, s.order)
	return ids
}

// Prompt returns the instruction prompt for a persona.
func (s *PersonaSet) Prompt(id string) (string, bool) {
	prompt, ok := s.prompts[id]
	return prompt, ok
}
