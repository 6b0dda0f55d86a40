package reporting

import "fmt"

// InterpretScore returns a plain-language label for an overall score (0-100).
func InterpretScore(score int) string {
	switch {
	case score > 90:
		return "Excellent (>90)"
	case score >= 70:
		return "Good (70-90)"
	case score >= 60:
		return "Passing (60-70)"
	default:
		return "Failing (<60)"
	}
}

// InterpretPassRate returns a human-readable explanation of a pass rate (0-1).
func InterpretPassRate(rate float64) string {
	pct := rate * 100
	switch {
	case pct >= 100:
		return fmt.Sprintf("All personas passed (%.0f%%)", pct)
	case pct >= 80:
		return fmt.Sprintf("Most personas passed (%.0f%%)", pct)
	case pct >= 50:
		return fmt.Sprintf("About half the personas passed (%.0f%%)", pct)
	default:
		return fmt.Sprintf("Few personas passed (%.0f%%)", pct)
	}
}
