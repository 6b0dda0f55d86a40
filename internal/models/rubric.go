package models

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultCategory is substituted when a rubric has no categories, so that
// aggregation always has at least one score to average.
const DefaultCategory = "general"

// Rubric maps author-defined scoring categories to integer weights.
type Rubric map[string]int

// Validate rejects malformed rubrics before any simulation work starts.
func (r Rubric) Validate() error {
	for name, weight := range r {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("rubric contains a blank category name")
		}
		if weight < 0 {
			return fmt.Errorf("rubric category %q has negative weight %d", name, weight)
		}
	}
	return nil
}

// Categories returns the category names sorted for deterministic iteration.
// An empty rubric degrades to the single DefaultCategory.
func (r Rubric) Categories() []string {
	if len(r) == 0 {
		return []string{DefaultCategory}
	}
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
