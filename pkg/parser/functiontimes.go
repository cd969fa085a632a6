package parser

import (
	"regexp"
	"strconv"

	"github.com/sairamkotha/XCLogParser/pkg/buildstep"
)

// functionTimeRe matches the per-function timing lines the Swift compiler
// emits under -debug-time-function-bodies:
//
//	0.12ms	/path/to/File.swift:10:6	instance method foo()
var functionTimeRe = regexp.MustCompile(`(?m)^\s*(\d+\.\d+)ms\t([^\t]+):(\d+):(\d+)\t(.+)$`)

// parseSwiftFunctionTimes scans a compile step's text blocks for function
// timing lines. Returns nil when the build ran without the timing
// instrumentation.
func parseSwiftFunctionTimes(blocks ...string) []buildstep.SwiftFunctionTime {
	var times []buildstep.SwiftFunctionTime
	for _, block := range blocks {
		for _, m := range functionTimeRe.FindAllStringSubmatch(block, -1) {
			if m[2] == "<invalid loc>" {
				continue
			}
			duration, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				continue
			}
			line, _ := strconv.Atoi(m[3])
			column, _ := strconv.Atoi(m[4])
			times = append(times, buildstep.SwiftFunctionTime{
				File:           "file://" + m[2],
				DurationMS:     duration,
				StartingLine:   line,
				StartingColumn: column,
				Signature:      m[5],
			})
		}
	}
	return times
}
