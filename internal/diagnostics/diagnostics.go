// Package diagnostics is the developer-facing event facility. Core and
// presentation code receive a Recorder and report (severity, message) pairs
// through it; where those end up is the Recorder's business.
package diagnostics

import (
	"context"
	"sync"

	"github.com/okian/hueblend/pkg/logger"
)

// Severity classifies a diagnostic event.
type Severity int

// Severities, most severe first.
const (
	Error Severity = iota
	Warning
	Info
)

var severityLabels = [...]string{
	Error:   "Error",
	Warning: "Warning",
	Info:    "Info",
}

// CSS colour names used when a severity is rendered in a page.
var severityColors = [...]string{
	Error:   "red",
	Warning: "orange",
	Info:    "royalblue",
}

// Label returns the human readable name, e.g. "Warning".
func (s Severity) Label() string {
	if s < Error || s > Info {
		return "Unknown"
	}
	return severityLabels[s]
}

// Color returns the CSS colour name associated with the severity.
func (s Severity) Color() string {
	if s < Error || s > Info {
		return "gray"
	}
	return severityColors[s]
}

func (s Severity) String() string { return s.Label() }

// Recorder records diagnostic events.
type Recorder interface {
	Record(ctx context.Context, severity Severity, message string)
}

// RecorderFunc adapts a function to Recorder.
type RecorderFunc func(ctx context.Context, severity Severity, message string)

// Record calls f.
func (f RecorderFunc) Record(ctx context.Context, severity Severity, message string) {
	f(ctx, severity, message)
}

// Nop discards every event.
var Nop Recorder = RecorderFunc(func(context.Context, Severity, string) {})

// FromLogger forwards events to a structured logger at the matching level.
func FromLogger(l logger.Logger) Recorder {
	return &loggerRecorder{log: l}
}

type loggerRecorder struct {
	log logger.Logger
}

func (r *loggerRecorder) Record(ctx context.Context, severity Severity, message string) {
	field := logger.String("severity", severity.Label())
	switch severity {
	case Error:
		r.log.Error(ctx, message, field)
	case Warning:
		r.log.Warn(ctx, message, field)
	default:
		r.log.Info(ctx, message, field)
	}
}

// Event is a recorded diagnostic.
type Event struct {
	Severity Severity
	Message  string
}

// Memory keeps events in memory. Safe for concurrent use.
type Memory struct {
	mu     sync.Mutex
	events []Event
}

// NewMemory creates an empty Memory recorder.
func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Record(_ context.Context, severity Severity, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, Event{Severity: severity, Message: message})
}

// Events returns a copy of the recorded events in order.
func (m *Memory) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out
}

// Count returns how many events of the given severity were recorded.
func (m *Memory) Count(severity Severity) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.events {
		if e.Severity == severity {
			n++
		}
	}
	return n
}
