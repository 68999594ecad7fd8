package ldtest

import (
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/petstore-qa/petstore-contract-tests/framework"
)

type environment struct {
	config  TestConfiguration
	results Results
}

// TestConfiguration contains the parameters for a test run.
type TestConfiguration struct {
	// Filter is an optional function for determining which tests to run.
	Filter Filter

	// TestLogger receives progress notifications. If nil, nothing is reported.
	TestLogger TestLogger

	// Context is an optional value of any type, which will be returned by T.Context(). This
	// is how domain-specific test code gets access to things like the service client.
	Context interface{}
}

// PanicError is recorded when test code panics for any reason other than a failed require
// assertion or a skip.
type PanicError struct {
	Where string
	Value interface{}
	Stack string
}

func (e PanicError) Error() string {
	return fmt.Sprintf("unexpected panic in %s: %+v\n%s", e.Where, e.Value, e.Stack)
}

// T represents a test or subtest.
//
// It implements the same basic functionality as Go's testing.T, but in an environment that is
// outside of the Go test runner, and with some extra features that are convenient for contract
// tests: debug logging that is only shown for failed tests, deferred cleanup actions that are
// guaranteed to run, and named steps for structured reports.
//
// To make test assertions, use the assert and require packages, passing the *T as if it were
// a *testing.T.
type T struct {
	env         *environment
	id          TestID
	debugLogger framework.CapturingLogger
	failed      bool
	skipped     bool
	skipReason  string
	hasSubtests bool
	errors      []error
	cleanups    []func()
	steps       []StepResult
	openSteps   []*StepResult
	parameters  []Parameter
}

// Run starts a root test and runs action within it. It returns the results of every test and
// subtest that was run.
func Run(
	config TestConfiguration,
	action func(*T),
) Results {
	if config.TestLogger == nil {
		config.TestLogger = nullTestLogger{}
	}
	env := &environment{config: config}
	t := &T{env: env}
	t.run(action)
	return env.results
}

func (t *T) run(action func(*T)) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			t.recordPanic(r)
		}
		t.runCleanups()
		result := TestResult{
			TestID:      t.id,
			Errors:      t.errors,
			Skipped:     t.skipped,
			SkipReason:  t.skipReason,
			HasSubtests: t.hasSubtests,
			Steps:       t.steps,
			Parameters:  t.parameters,
			Start:       start,
			Stop:        time.Now(),
		}
		t.env.results.Tests = append(t.env.results.Tests, result)
		if t.failed {
			t.env.results.Failures = append(t.env.results.Failures, result)
		}
	}()

	action(t)
}

func (t *T) recordPanic(r interface{}) {
	if _, ok := r.(*T); ok {
		if t.skipped {
			return
		}
		t.failed = true
		if len(t.errors) == 0 {
			t.addError(errors.New("test failed with no failure message"))
		}
		return
	}
	t.failed = true
	t.addError(PanicError{Where: "test", Value: r, Stack: string(debug.Stack())})
}

func (t *T) runCleanups() {
	for len(t.cleanups) > 0 {
		n := len(t.cleanups) - 1
		cleanup := t.cleanups[n]
		t.cleanups = t.cleanups[:n]
		t.runCleanup(cleanup)
	}
}

func (t *T) runCleanup(cleanup func()) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(*T); ok {
				// a require assertion failed inside the cleanup; Errorf was already called
				t.failed = true
				return
			}
			t.failed = true
			t.addError(PanicError{Where: "deferred cleanup", Value: r, Stack: string(debug.Stack())})
		}
	}()
	cleanup()
}

func (t *T) addError(err error) {
	t.errors = append(t.errors, err)
	t.env.config.TestLogger.TestError(t.id, err)
}

// ID returns the identifier of this test.
func (t *T) ID() TestID {
	return t.id
}

// Context returns the value that was specified in TestConfiguration.Context.
func (t *T) Context() interface{} {
	return t.env.config.Context
}

// Run runs a subtest. This is equivalent to the Run method of testing.T.
//
// The subtest is skipped without running if the configured Filter excludes it. A failure in
// the subtest does not stop the parent test.
func (t *T) Run(name string, action func(*T)) {
	id := t.id.Plus(name)
	t.hasSubtests = true

	logger := t.env.config.TestLogger
	filter := t.env.config.Filter
	if filter != nil && !filter(id) {
		return
	}
	logger.TestStarted(id)
	t1 := &T{
		id:  id,
		env: t.env,
	}
	t1.run(action)
	if t1.skipped {
		logger.TestSkipped(id, t1.skipReason)
	} else {
		logger.TestFinished(id, t1.failed, t1.debugLogger.Output())
	}
}

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.failed = true
	t.addError(fmt.Errorf(format, args...))
}

// FailNow is called by assertions when a test should fail and immediately exit. The methods
// in the require package call FailNow.
func (t *T) FailNow() {
	t.failed = true
	panic(t)
}

// Failed returns true if the test has failed so far.
func (t *T) Failed() bool {
	return t.failed
}

// Skip causes the test to immediately exit without failing. Deferred cleanups still run.
func (t *T) Skip() {
	t.skipped = true
	panic(t)
}

// SkipWithReason is the same as Skip, but provides an explanation for the test logger.
func (t *T) SkipWithReason(reason string) {
	t.skipReason = reason
	t.Skip()
}

// Defer schedules a function to be run at the end of the test, regardless of whether the test
// passed, failed, or exited early. Deferred functions run in reverse order of scheduling. If one
// of them panics, the failure is recorded and the remaining ones still run.
func (t *T) Defer(cleanup func()) {
	t.cleanups = append(t.cleanups, cleanup)
}

// Debug writes a message to the debug output of the test, which is shown by the test logger
// at the end of the test if debug output is enabled.
func (t *T) Debug(message string, args ...interface{}) {
	t.debugLogger.Printf(message, args...)
}

// DebugLogger returns a Logger that writes to the debug output of the test.
func (t *T) DebugLogger() framework.Logger {
	return &t.debugLogger
}

// Parameter records a named input of a parameterized test, for reports.
func (t *T) Parameter(name string, value interface{}) {
	t.parameters = append(t.parameters, Parameter{Name: name, Value: fmt.Sprint(value)})
}
