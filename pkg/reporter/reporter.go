// Package reporter provides output reporters for parsed build step trees.
package reporter

import (
	"fmt"

	"github.com/sairamkotha/XCLogParser/pkg/buildstep"
)

// Reporter converts a build step tree to formatted output.
type Reporter interface {
	Report(root buildstep.BuildStep) (string, error)
}

// ByName returns the reporter registered under name.
func ByName(name string, opts Options) (Reporter, error) {
	switch name {
	case "json":
		return NewJSON(), nil
	case "flatJson":
		return NewFlatJSON(), nil
	case "summaryJson":
		return NewSummaryJSON(), nil
	case "issues":
		return NewIssues(), nil
	case "chromeTracer":
		return NewChromeTracer(), nil
	case "html":
		return NewHTML(), nil
	case "console":
		return NewConsole(ThemeByName(opts.Theme), opts.Width), nil
	default:
		return nil, fmt.Errorf("unknown reporter %q", name)
	}
}

// Options carries presentation knobs that only some reporters use.
type Options struct {
	Theme string
	Width int
}
