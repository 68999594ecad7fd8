package ldtest

import (
	"strings"
	"time"
)

type Results struct {
	Tests    []TestResult
	Failures []TestResult
}

type TestResult struct {
	TestID      TestID
	Errors      []error
	Skipped     bool
	SkipReason  string
	HasSubtests bool
	Steps       []StepResult
	Parameters  []Parameter
	Start       time.Time
	Stop        time.Time
}

// StepStatus describes the outcome of a step.
type StepStatus string

const (
	StepPassed  StepStatus = "passed"
	StepFailed  StepStatus = "failed"
	StepBroken  StepStatus = "broken"
	StepSkipped StepStatus = "skipped"
)

// StepResult is one named step within a test, as recorded by T.Step. Steps can be nested.
type StepResult struct {
	Name   string
	Status StepStatus
	Start  time.Time
	Stop   time.Time
	Steps  []StepResult
}

// Parameter is a named input of a parameterized test, as recorded by T.Parameter.
type Parameter struct {
	Name  string
	Value string
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// Leaves returns the results of all tests that did not have subtests of their own.
func (r Results) Leaves() []TestResult {
	var ret []TestResult
	for _, t := range r.Tests {
		if !t.HasSubtests {
			ret = append(ret, t)
		}
	}
	return ret
}

func (r TestResult) Failed() bool {
	return len(r.Errors) != 0
}

type TestID struct {
	Path []string
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

// Plus returns a new TestID for a subtest of this one.
func (t TestID) Plus(name string) TestID {
	return TestID{Path: append(append([]string(nil), t.Path...), name)}
}

// Feature returns the top-level group name of the test, which the Pet Store suite uses to
// group tests by resource.
func (t TestID) Feature() string {
	if len(t.Path) == 0 {
		return ""
	}
	return t.Path[0]
}

// Title returns the name of the test itself without its parent groups.
func (t TestID) Title() string {
	if len(t.Path) == 0 {
		return ""
	}
	return t.Path[len(t.Path)-1]
}
