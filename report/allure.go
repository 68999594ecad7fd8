package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/petstore-qa/petstore-contract-tests/framework/ldtest"

	"github.com/google/uuid"
)

// Allure status values.
const (
	allureStatusPassed  = "passed"
	allureStatusFailed  = "failed"
	allureStatusBroken  = "broken"
	allureStatusSkipped = "skipped"

	allureStageFinished = "finished"
)

type allureResult struct {
	UUID          string              `json:"uuid"`
	HistoryID     string              `json:"historyId"`
	Name          string              `json:"name"`
	FullName      string              `json:"fullName"`
	Status        string              `json:"status"`
	StatusDetails *allureStatusDetail `json:"statusDetails,omitempty"`
	Stage         string              `json:"stage"`
	Steps         []allureStep        `json:"steps"`
	Parameters    []allureParameter   `json:"parameters"`
	Labels        []allureLabel       `json:"labels"`
	Start         int64               `json:"start"`
	Stop          int64               `json:"stop"`
}

type allureStatusDetail struct {
	Message string `json:"message,omitempty"`
	Trace   string `json:"trace,omitempty"`
}

type allureStep struct {
	Name   string       `json:"name"`
	Status string       `json:"status"`
	Stage  string       `json:"stage"`
	Steps  []allureStep `json:"steps"`
	Start  int64        `json:"start"`
	Stop   int64        `json:"stop"`
}

type allureParameter struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type allureLabel struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// WriteAllureResults writes one "<uuid>-result.json" file into dir for every test that has no
// subtests. The directory is created if it does not exist; existing files in it are left alone,
// so that results of several runs can be combined.
func WriteAllureResults(dir string, results ldtest.Results) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("could not create report directory: %w", err)
	}
	for _, r := range results.Leaves() {
		ar := makeAllureResult(r)
		data, err := json.MarshalIndent(ar, "", "  ")
		if err != nil {
			return err
		}
		path := filepath.Join(dir, ar.UUID+"-result.json")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("could not write report file: %w", err)
		}
	}
	return nil
}

func makeAllureResult(r ldtest.TestResult) allureResult {
	fullName := r.TestID.String()
	ar := allureResult{
		UUID: uuid.New().String(),
		// the history ID must be the same in every run, so that Allure can track each test over time
		HistoryID:  uuid.NewSHA1(uuid.NameSpaceURL, []byte(fullName)).String(),
		Name:       r.TestID.Title(),
		FullName:   fullName,
		Status:     allureStatusOf(r),
		Stage:      allureStageFinished,
		Steps:      makeAllureSteps(r.Steps),
		Parameters: []allureParameter{},
		Labels: []allureLabel{
			{Name: "feature", Value: r.TestID.Feature()},
			{Name: "suite", Value: r.TestID.Feature()},
			{Name: "framework", Value: "ldtest"},
		},
		Start: millis(r.Start),
		Stop:  millis(r.Stop),
	}
	for _, p := range r.Parameters {
		ar.Parameters = append(ar.Parameters, allureParameter{Name: p.Name, Value: p.Value})
	}
	if r.Skipped && r.SkipReason != "" {
		ar.StatusDetails = &allureStatusDetail{Message: r.SkipReason}
	}
	if len(r.Errors) != 0 {
		var messages []string
		for _, e := range r.Errors {
			messages = append(messages, strings.TrimSpace(e.Error()))
		}
		ar.StatusDetails = &allureStatusDetail{
			Message: firstLine(messages[0]),
			Trace:   strings.Join(messages, "\n\n"),
		}
	}
	return ar
}

// allureStatusOf distinguishes "broken", meaning the test crashed, from "failed", meaning an
// assertion did not hold.
func allureStatusOf(r ldtest.TestResult) string {
	switch {
	case r.Failed():
		if hasBrokenStep(r.Steps) || hasUnexpectedPanic(r.Errors) {
			return allureStatusBroken
		}
		return allureStatusFailed
	case r.Skipped:
		return allureStatusSkipped
	default:
		return allureStatusPassed
	}
}

func hasBrokenStep(steps []ldtest.StepResult) bool {
	for _, s := range steps {
		if s.Status == ldtest.StepBroken || hasBrokenStep(s.Steps) {
			return true
		}
	}
	return false
}

func hasUnexpectedPanic(errs []error) bool {
	for _, e := range errs {
		var pe ldtest.PanicError
		if errors.As(e, &pe) {
			return true
		}
	}
	return false
}

func makeAllureSteps(steps []ldtest.StepResult) []allureStep {
	ret := []allureStep{}
	for _, s := range steps {
		ret = append(ret, allureStep{
			Name:   s.Name,
			Status: string(s.Status),
			Stage:  allureStageFinished,
			Steps:  makeAllureSteps(s.Steps),
			Start:  millis(s.Start),
			Stop:   millis(s.Stop),
		})
	}
	return ret
}

func millis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixNano() / int64(time.Millisecond)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
