package reporting

import (
	"encoding/xml"
	"fmt"
	"io"
	"time"

	"github.com/trainexus/interviewsim/internal/models"
)

// JUnit XML schema types

// JUnitTestSuites is the top-level container.
type JUnitTestSuites struct {
	XMLName    xml.Name         `xml:"testsuites"`
	Tests      int              `xml:"tests,attr"`
	Failures   int              `xml:"failures,attr"`
	Time       float64          `xml:"time,attr"`
	TestSuites []JUnitTestSuite `xml:"testsuite"`
}

// JUnitTestSuite maps to one scenario batch.
type JUnitTestSuite struct {
	XMLName   xml.Name        `xml:"testsuite"`
	Name      string          `xml:"name,attr"`
	Tests     int             `xml:"tests,attr"`
	Failures  int             `xml:"failures,attr"`
	Time      float64         `xml:"time,attr"`
	Timestamp string          `xml:"timestamp,attr"`
	TestCases []JUnitTestCase `xml:"testcase"`
}

// JUnitTestCase maps to one persona evaluation.
type JUnitTestCase struct {
	XMLName   xml.Name      `xml:"testcase"`
	Name      string        `xml:"name,attr"`
	Classname string        `xml:"classname,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
}

// JUnitFailure represents a persona that scored below the pass threshold.
type JUnitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// ConvertToJUnit converts scenario results to JUnit XML format: one
// testsuite per scenario, one testcase per persona.
func ConvertToJUnit(results []models.ScenarioResult, ts time.Time) *JUnitTestSuites {
	suites := &JUnitTestSuites{}

	for i := range results {
		sr := &results[i]
		suite := JUnitTestSuite{
			Name:      sr.Tag,
			Tests:     len(sr.Evaluations),
			Time:      float64(sr.DurationMs) / 1000.0,
			Timestamp: ts.UTC().Format(time.RFC3339),
		}

		for j := range sr.Evaluations {
			eval := &sr.Evaluations[j]
			tc := JUnitTestCase{
				Name:      eval.Persona,
				Classname: sr.Tag,
			}
			if !eval.Passed {
				suite.Failures++
				tc.Failure = &JUnitFailure{
					Message: fmt.Sprintf("overall score %d below pass threshold %d", eval.Overall(), models.PassThreshold),
					Type:    "EvaluationFailed",
					Body:    eval.Notes,
				}
			}
			suite.TestCases = append(suite.TestCases, tc)
		}

		suites.Tests += suite.Tests
		suites.Failures += suite.Failures
		suites.Time += suite.Time
		suites.TestSuites = append(suites.TestSuites, suite)
	}

	return suites
}

// WriteJUnit serializes the suites as indented XML with the standard header.
func WriteJUnit(w io.Writer, suites *JUnitTestSuites) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(suites); err != nil {
		return fmt.Errorf("encode junit report: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}
