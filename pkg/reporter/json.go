package reporter

import (
	"encoding/json"
	"fmt"

	"github.com/sairamkotha/XCLogParser/pkg/buildstep"
)

// JSON reports the full step tree as indented JSON.
type JSON struct{}

// NewJSON creates a JSON reporter.
func NewJSON() *JSON {
	return &JSON{}
}

// Report formats the whole tree, sub-steps nested in place.
func (j *JSON) Report(root buildstep.BuildStep) (string, error) {
	return marshal(root)
}

// FlatJSON reports the flattened step sequence as a JSON array.
type FlatJSON struct{}

// NewFlatJSON creates a FlatJSON reporter.
func NewFlatJSON() *FlatJSON {
	return &FlatJSON{}
}

// Report formats the tree as the flat document-order array, one element
// per step down to command invocations.
func (f *FlatJSON) Report(root buildstep.BuildStep) (string, error) {
	return marshal(buildstep.Flatten(root))
}

// SummaryJSON reports only the root step, sub-steps stripped.
type SummaryJSON struct{}

// NewSummaryJSON creates a SummaryJSON reporter.
func NewSummaryJSON() *SummaryJSON {
	return &SummaryJSON{}
}

// Report formats the root step with an empty subSteps array, keeping
// the rolled-up counts and overall timings.
func (s *SummaryJSON) Report(root buildstep.BuildStep) (string, error) {
	summary := root
	summary.SubSteps = []buildstep.BuildStep{}
	return marshal(summary)
}

func marshal(v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding report: %w", err)
	}
	return string(data) + "\n", nil
}
