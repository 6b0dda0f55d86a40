package models

import (
	"reflect"
	"testing"
)

func TestRubricValidate(t *testing.T) {
	tests := []struct {
		name    string
		rubric  Rubric
		wantErr bool
	}{
		{"valid", Rubric{"struktur_klarheit": 20, "reflexion": 15}, false},
		{"empty is tolerated", Rubric{}, false},
		{"nil is tolerated", nil, false},
		{"zero weight ok", Rubric{"kommunikation": 0}, false},
		{"negative weight", Rubric{"kommunikation": -1}, true},
		{"blank category", Rubric{"  ": 10}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rubric.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRubricCategories_SortedAndStable(t *testing.T) {
	r := Rubric{"b": 1, "a": 2, "c": 3}
	want := []string{"a", "b", "c"}
	if got := r.Categories(); !reflect.DeepEqual(got, want) {
		t.Errorf("Categories() = %v, want %v", got, want)
	}
}

func TestRubricCategories_EmptyDegradesToDefault(t *testing.T) {
	want := []string{DefaultCategory}
	if got := (Rubric{}).Categories(); !reflect.DeepEqual(got, want) {
		t.Errorf("Categories() = %v, want %v", got, want)
	}
	var nilRubric Rubric
	if got := nilRubric.Categories(); !reflect.DeepEqual(got, want) {
		t.Errorf("Categories() on nil = %v, want %v", got, want)
	}
}
