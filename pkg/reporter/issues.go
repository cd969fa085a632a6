package reporter

import (
	"github.com/sairamkotha/XCLogParser/pkg/buildstep"
)

// Issues reports only the diagnostics of a build, grouped into errors
// and warnings, each tagged with the step that produced it.
type Issues struct{}

// NewIssues creates an Issues reporter.
func NewIssues() *Issues {
	return &Issues{}
}

type issuesOutput struct {
	Errors   []issue `json:"errors"`
	Warnings []issue `json:"warnings"`
}

type issue struct {
	buildstep.Notice
	StepIdentifier string `json:"stepIdentifier"`
	StepSignature  string `json:"stepSignature"`
}

// Report walks the tree and formats every error and warning notice.
func (i *Issues) Report(root buildstep.BuildStep) (string, error) {
	out := issuesOutput{
		Errors:   []issue{},
		Warnings: []issue{},
	}
	collectIssues(root, &out)
	return marshal(out)
}

func collectIssues(step buildstep.BuildStep, out *issuesOutput) {
	for _, n := range step.Notes {
		entry := issue{
			Notice:         n,
			StepIdentifier: step.Identifier,
			StepSignature:  step.Signature,
		}
		switch {
		case n.IsError():
			out.Errors = append(out.Errors, entry)
		case n.IsWarning():
			out.Warnings = append(out.Warnings, entry)
		}
	}
	for _, sub := range step.SubSteps {
		collectIssues(sub, out)
	}
}
