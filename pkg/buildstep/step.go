// Package buildstep models the result of an Xcode build as a tree of
// discrete steps. Steps are pure data — the parser builds the tree, the
// reporters decide presentation.
package buildstep

// StepKind identifies the level of a step in the build tree.
type StepKind string

const (
	StepKindMain   StepKind = "main"   // the whole build
	StepKindTarget StepKind = "target" // one build target
	StepKindDetail StepKind = "detail" // one concrete action within a target
)

// BuildStep is one node of the build-result tree: the whole build, one
// target, or one concrete action (compile, link, copy...).
//
// A step exclusively owns its SubSteps; ParentIdentifier is a back-reference
// only. The tree is built once by the parser and is read-only afterwards,
// except for the aggregate counters (see RollUpCounts) and the detail
// category applied by Classify.
type BuildStep struct {
	Identifier       string   `json:"identifier"`
	ParentIdentifier string   `json:"parentIdentifier"`
	BuildIdentifier  string   `json:"buildIdentifier"`
	Kind             StepKind `json:"stepKind"`
	// DetailCategory is CategoryNone unless Kind is StepKindDetail.
	DetailCategory DetailCategory `json:"detailCategory"`

	MachineName  string `json:"machineName"`
	Domain       string `json:"domain"`
	Title        string `json:"title"`
	Signature    string `json:"signature"`
	Schema       string `json:"schema"`
	Architecture string `json:"architecture"`
	DocumentURL  string `json:"documentURL"`
	BuildStatus  string `json:"buildStatus"`

	StartDate      string  `json:"startDate"` // ISO-8601
	EndDate        string  `json:"endDate"`   // ISO-8601
	StartTimestamp int64   `json:"startTimestamp"`
	EndTimestamp   int64   `json:"endTimestamp"`
	Duration       float64 `json:"duration"` // seconds

	// WarningCount and ErrorCount are sums over all descendant detail
	// steps for main and target steps; for a detail step they count the
	// issues attributed to that single step.
	WarningCount int `json:"warningCount"`
	ErrorCount   int `json:"errorCount"`

	Notes              []Notice            `json:"notes"`
	SwiftFunctionTimes []SwiftFunctionTime `json:"swiftFunctionTimes"`

	// SubSteps holds the children in build-log order. A child's
	// StartTimestamp is not guaranteed to be >= its parent's: a cached
	// resource-copy step may report an earlier timestamp than its
	// enclosing target.
	SubSteps []BuildStep `json:"subSteps"`
}

// SwiftFunctionTime is one per-function compile timing emitted when the
// build ran with -debug-time-function-bodies.
type SwiftFunctionTime struct {
	File           string  `json:"file"`
	DurationMS     float64 `json:"durationMS"`
	StartingLine   int     `json:"startingLine"`
	StartingColumn int     `json:"startingColumn"`
	Signature      string  `json:"signature"`
}

// RollUpCounts fills WarningCount and ErrorCount on main and target steps
// with the sums over their descendant detail steps. Counts already
// attributed to detail steps are left untouched.
func (s *BuildStep) RollUpCounts() {
	for i := range s.SubSteps {
		s.SubSteps[i].RollUpCounts()
	}
	if s.Kind == StepKindDetail {
		return
	}
	var warnings, errors int
	for i := range s.SubSteps {
		w, e := s.SubSteps[i].detailCounts()
		warnings += w
		errors += e
	}
	s.WarningCount = warnings
	s.ErrorCount = errors
}

// detailCounts sums the issue counts of every detail step in s's subtree,
// including s itself.
func (s *BuildStep) detailCounts() (warnings, errors int) {
	if s.Kind == StepKindDetail {
		warnings, errors = s.WarningCount, s.ErrorCount
	}
	for i := range s.SubSteps {
		w, e := s.SubSteps[i].detailCounts()
		warnings += w
		errors += e
	}
	return warnings, errors
}
