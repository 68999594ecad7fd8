package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/petstore-qa/petstore-contract-tests/framework/ldtest"
)

// Summary is the content of the file written by WriteSummary.
type Summary struct {
	Total   int           `json:"total"`
	Passed  int           `json:"passed"`
	Failed  int           `json:"failed"`
	Skipped int           `json:"skipped"`
	Tests   []TestSummary `json:"tests"`
}

type TestSummary struct {
	Name       string   `json:"name"`
	Status     string   `json:"status"`
	DurationMS int64    `json:"durationMs"`
	Errors     []string `json:"errors,omitempty"`
}

// Summarize counts the outcomes of every test that has no subtests.
func Summarize(results ldtest.Results) Summary {
	s := Summary{Tests: []TestSummary{}}
	for _, r := range results.Leaves() {
		ts := TestSummary{
			Name:       r.TestID.String(),
			DurationMS: r.Stop.Sub(r.Start).Milliseconds(),
		}
		switch {
		case r.Failed():
			ts.Status = allureStatusFailed
			s.Failed++
		case r.Skipped:
			ts.Status = allureStatusSkipped
			s.Skipped++
		default:
			ts.Status = allureStatusPassed
			s.Passed++
		}
		for _, e := range r.Errors {
			ts.Errors = append(ts.Errors, e.Error())
		}
		s.Tests = append(s.Tests, ts)
		s.Total++
	}
	return s
}

// WriteSummary writes the Summary of results to a JSON file, creating its directory if necessary.
func WriteSummary(path string, results ldtest.Results) error {
	data, err := json.MarshalIndent(Summarize(results), "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("could not create summary directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("could not write summary file: %w", err)
	}
	return nil
}
