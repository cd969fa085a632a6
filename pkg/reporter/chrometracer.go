package reporter

import (
	"github.com/sairamkotha/XCLogParser/pkg/buildstep"
)

// ChromeTracer reports steps as a Chrome trace event array, loadable in
// chrome://tracing or Perfetto for a timeline view of the build.
type ChromeTracer struct{}

// NewChromeTracer creates a ChromeTracer reporter.
func NewChromeTracer() *ChromeTracer {
	return &ChromeTracer{}
}

// traceEvent is one complete ("X") event in the trace format.
type traceEvent struct {
	Name      string            `json:"name"`
	Category  string            `json:"cat"`
	Phase     string            `json:"ph"`
	Timestamp float64           `json:"ts"`
	Duration  float64           `json:"dur"`
	PID       int               `json:"pid"`
	TID       int               `json:"tid"`
	Args      map[string]string `json:"args,omitempty"`
}

// Report emits one event per step. Each target gets its own thread id
// so its command invocations, including nested ones, stack under it in
// the timeline.
func (c *ChromeTracer) Report(root buildstep.BuildStep) (string, error) {
	events := []traceEvent{stepEvent(root, 0)}
	for i, target := range root.SubSteps {
		tid := i + 1
		events = append(events, stepEvent(target, tid))
		events = appendDetailEvents(events, target.SubSteps, tid)
	}
	return marshal(events)
}

func appendDetailEvents(events []traceEvent, details []buildstep.BuildStep, tid int) []traceEvent {
	for _, d := range details {
		events = append(events, stepEvent(d, tid))
		events = appendDetailEvents(events, d.SubSteps, tid)
	}
	return events
}

func stepEvent(step buildstep.BuildStep, tid int) traceEvent {
	return traceEvent{
		Name:      step.Title,
		Category:  string(step.DetailCategory),
		Phase:     "X",
		Timestamp: float64(step.StartTimestamp) * 1e6,
		Duration:  step.Duration * 1e6,
		PID:       0,
		TID:       tid,
		Args: map[string]string{
			"signature": step.Signature,
		},
	}
}
