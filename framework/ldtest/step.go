package ldtest

import "time"

// Step runs action as a named step of the test. Steps show up in the debug output and in
// structured reports; they can be nested.
//
// If the test exits early during the step, because of a failed require assertion or a panic,
// the step is recorded with the corresponding status and the exit continues as usual.
func (t *T) Step(name string, action func()) {
	step := &StepResult{Name: name, Start: time.Now()}
	errorCount := len(t.errors)
	t.openSteps = append(t.openSteps, step)
	t.debugLogger.SetStep(name)
	t.Debug("Step started")

	status := StepBroken
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(*T); ok {
				if t.skipped {
					status = StepSkipped
				} else {
					status = StepFailed
				}
			}
			t.closeStep(step, status)
			panic(r)
		}
		t.closeStep(step, status)
	}()

	action()

	if len(t.errors) > errorCount {
		status = StepFailed
	} else {
		status = StepPassed
	}
}

func (t *T) closeStep(step *StepResult, status StepStatus) {
	step.Status = status
	step.Stop = time.Now()
	t.Debug("Step %s", step.Status)
	t.openSteps = t.openSteps[:len(t.openSteps)-1]
	if n := len(t.openSteps); n > 0 {
		parent := t.openSteps[n-1]
		parent.Steps = append(parent.Steps, *step)
		t.debugLogger.SetStep(parent.Name)
	} else {
		t.steps = append(t.steps, *step)
		t.debugLogger.SetStep("")
	}
}
