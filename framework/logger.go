package framework

import (
	"fmt"
	"io"
	"sync"
	"time"
)

const timestampFormat = "2006-01-02 15:04:05.000"

// Logger is the minimal logging interface used throughout the test harness.
type Logger interface {
	Printf(message string, args ...interface{})
}

type nullLogger struct{}

func (n nullLogger) Printf(message string, args ...interface{}) {}

// NullLogger returns a Logger that discards everything.
func NullLogger() Logger { return nullLogger{} }

type prefixedLogger struct {
	prefix string
	target Logger
}

func (p prefixedLogger) Printf(message string, args ...interface{}) {
	p.target.Printf(p.prefix+message, args...)
}

// PrefixedLogger returns a Logger that adds a fixed prefix to every message before passing it
// to target.
func PrefixedLogger(target Logger, prefix string) Logger {
	if target == nil {
		return NullLogger()
	}
	return prefixedLogger{prefix: prefix, target: target}
}

// CapturedMessage is one line of debug output. Step is the name of the innermost test step
// that was running when it was logged, if any.
type CapturedMessage struct {
	Time    time.Time
	Step    string
	Message string
}

type CapturedOutput []CapturedMessage

// CapturingLogger accumulates log output in memory, labelling each message with the current
// step. It holds the debug output of one test, which is only shown if the test fails or if the
// user asked for all debug output.
type CapturingLogger struct {
	messages []CapturedMessage
	step     string
	mu       sync.Mutex
}

func (l *CapturingLogger) Printf(message string, args ...interface{}) {
	m := CapturedMessage{Time: time.Now(), Message: fmt.Sprintf(message, args...)}
	l.mu.Lock()
	defer l.mu.Unlock()
	m.Step = l.step
	l.messages = append(l.messages, m)
}

// SetStep changes the step name that later messages are labelled with. An empty name means
// no step.
func (l *CapturingLogger) SetStep(name string) {
	l.mu.Lock()
	l.step = name
	l.mu.Unlock()
}

// Output returns a snapshot of everything logged so far.
func (l *CapturingLogger) Output() CapturedOutput {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append(CapturedOutput(nil), l.messages...)
}

// Dump writes each message on its own line, as "<prefix>[<time>] <message>", with the step
// name in braces after the time when there is one.
func (output CapturedOutput) Dump(dest io.Writer, prefix string) {
	for _, m := range output {
		stamp := m.Time.Format(timestampFormat)
		if m.Step == "" {
			fmt.Fprintf(dest, "%s[%s] %s\n", prefix, stamp, m.Message)
		} else {
			fmt.Fprintf(dest, "%s[%s] {%s} %s\n", prefix, stamp, m.Step, m.Message)
		}
	}
}
