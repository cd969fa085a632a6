package reporter

import (
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sairamkotha/XCLogParser/pkg/buildstep"
)

func sampleBuild() buildstep.BuildStep {
	compile := buildstep.BuildStep{
		Identifier:       "mac_3",
		ParentIdentifier: "mac_2",
		BuildIdentifier:  "mac_1",
		Kind:             buildstep.StepKindDetail,
		DetailCategory:   buildstep.CategorySwiftCompilation,
		Title:            "Compile A.swift",
		Signature:        "CompileSwift normal arm64 A.swift",
		StartTimestamp:   978307300,
		EndTimestamp:     978307302,
		Duration:         2,
		WarningCount:     1,
		Notes: []buildstep.Notice{
			{Type: buildstep.NoticeTypeWarning, Title: "unused variable", DocumentURL: "file:///A.swift", StartingLine: 4},
		},
		SubSteps: []buildstep.BuildStep{},
	}
	link := buildstep.BuildStep{
		Identifier:       "mac_4",
		ParentIdentifier: "mac_2",
		BuildIdentifier:  "mac_1",
		Kind:             buildstep.StepKindDetail,
		DetailCategory:   buildstep.CategoryLinker,
		Title:            "Link App",
		Signature:        "Ld App normal arm64",
		StartTimestamp:   978307302,
		EndTimestamp:     978307303,
		Duration:         1,
		ErrorCount:       1,
		Notes: []buildstep.Notice{
			{Type: buildstep.NoticeTypeError, Title: "undefined symbol", Severity: 2},
		},
		SubSteps: []buildstep.BuildStep{},
	}
	target := buildstep.BuildStep{
		Identifier:       "mac_2",
		ParentIdentifier: "mac_1",
		BuildIdentifier:  "mac_1",
		Kind:             buildstep.StepKindTarget,
		DetailCategory:   buildstep.CategoryNone,
		Title:            "Build target App",
		Duration:         3,
		WarningCount:     1,
		ErrorCount:       1,
		SubSteps:         []buildstep.BuildStep{compile, link},
	}
	return buildstep.BuildStep{
		Identifier:      "mac_1",
		BuildIdentifier: "mac_1",
		Kind:            buildstep.StepKindMain,
		DetailCategory:  buildstep.CategoryNone,
		Title:           "Build App",
		BuildStatus:     "failed",
		StartTimestamp:  978307300,
		EndTimestamp:    978307304,
		Duration:        4,
		WarningCount:    1,
		ErrorCount:      1,
		SubSteps:        []buildstep.BuildStep{target},
	}
}

func TestByName(t *testing.T) {
	for _, name := range []string{"json", "flatJson", "summaryJson", "issues", "chromeTracer", "html", "console"} {
		r, err := ByName(name, Options{Theme: "mono"})
		require.NoError(t, err, name)
		assert.NotNil(t, r, name)
	}

	_, err := ByName("yaml", Options{})
	assert.Error(t, err)
}

func TestJSON_NestedTree(t *testing.T) {
	out, err := NewJSON().Report(sampleBuild())
	require.NoError(t, err)

	var decoded buildstep.BuildStep
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "mac_1", decoded.Identifier)
	require.Len(t, decoded.SubSteps, 1)
	assert.Len(t, decoded.SubSteps[0].SubSteps, 2)
}

func TestFlatJSON_SequenceOrder(t *testing.T) {
	out, err := NewFlatJSON().Report(sampleBuild())
	require.NoError(t, err)

	var flat []buildstep.BuildStep
	require.NoError(t, json.Unmarshal([]byte(out), &flat))
	require.Len(t, flat, 4)
	assert.Equal(t, "mac_1", flat[0].Identifier)
	assert.Equal(t, "mac_2", flat[1].Identifier)
	assert.Equal(t, "mac_3", flat[2].Identifier)
	assert.Equal(t, "mac_4", flat[3].Identifier)
	for _, step := range flat {
		assert.Empty(t, step.SubSteps)
	}
}

func TestSummaryJSON_RootOnly(t *testing.T) {
	out, err := NewSummaryJSON().Report(sampleBuild())
	require.NoError(t, err)

	var decoded buildstep.BuildStep
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "Build App", decoded.Title)
	assert.Equal(t, 1, decoded.ErrorCount)
	assert.Empty(t, decoded.SubSteps)
	assert.Contains(t, out, `"subSteps": []`)
}

func TestIssues_GroupsBySeverity(t *testing.T) {
	out, err := NewIssues().Report(sampleBuild())
	require.NoError(t, err)

	var decoded issuesOutput
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded.Errors, 1)
	require.Len(t, decoded.Warnings, 1)
	assert.Equal(t, "undefined symbol", decoded.Errors[0].Title)
	assert.Equal(t, "mac_4", decoded.Errors[0].StepIdentifier)
	assert.Equal(t, "unused variable", decoded.Warnings[0].Title)
	assert.Equal(t, "CompileSwift normal arm64 A.swift", decoded.Warnings[0].StepSignature)
}

func TestChromeTracer_Events(t *testing.T) {
	out, err := NewChromeTracer().Report(sampleBuild())
	require.NoError(t, err)

	var events []traceEvent
	require.NoError(t, json.Unmarshal([]byte(out), &events))
	require.Len(t, events, 4)

	assert.Equal(t, "Build App", events[0].Name)
	assert.Equal(t, "X", events[0].Phase)
	assert.Equal(t, 0, events[0].TID)

	assert.Equal(t, "Build target App", events[1].Name)
	assert.Equal(t, 1, events[1].TID)
	assert.Equal(t, 1, events[2].TID)

	assert.Equal(t, "Compile A.swift", events[2].Name)
	assert.Equal(t, "swiftCompilation", events[2].Category)
	assert.InDelta(t, 978307300e6, events[2].Timestamp, 1)
	assert.InDelta(t, 2e6, events[2].Duration, 1)
}

func TestChromeTracer_NestedInvocationEvents(t *testing.T) {
	build := sampleBuild()
	compile := &build.SubSteps[0].SubSteps[0]
	compile.SubSteps = []buildstep.BuildStep{
		{
			Identifier:     "mac_5",
			Kind:           buildstep.StepKindDetail,
			DetailCategory: buildstep.CategorySwiftCompilation,
			Title:          "Compile B.swift",
			StartTimestamp: 978307301,
			EndTimestamp:   978307302,
			Duration:       1,
			SubSteps:       []buildstep.BuildStep{},
		},
	}

	out, err := NewChromeTracer().Report(build)
	require.NoError(t, err)

	var events []traceEvent
	require.NoError(t, json.Unmarshal([]byte(out), &events))
	require.Len(t, events, 5)

	// Nested invocations stay on their target's thread, right after
	// their parent.
	assert.Equal(t, "Compile A.swift", events[2].Name)
	assert.Equal(t, "Compile B.swift", events[3].Name)
	assert.Equal(t, events[2].TID, events[3].TID)
	assert.Equal(t, "Link App", events[4].Name)
}

func TestHTML_ContainsStepsAndStatus(t *testing.T) {
	out, err := NewHTML().Report(sampleBuild())
	require.NoError(t, err)

	assert.Contains(t, out, "<title>Build App</title>")
	assert.Contains(t, out, "Build target App")
	assert.Contains(t, out, "Compile A.swift")
	assert.Contains(t, out, `class="failed"`)
	assert.Contains(t, out, "4.00s")
}

func TestConsole_MonoOutput(t *testing.T) {
	out, err := NewConsole(MonoTheme(), 100).Report(sampleBuild())
	require.NoError(t, err)

	assert.Contains(t, out, "Build App")
	assert.Contains(t, out, "1 errors")
	assert.Contains(t, out, "Targets")
	assert.Contains(t, out, "Build target App")
	assert.Contains(t, out, "Slowest steps")
	assert.Contains(t, out, "Swift Compilation")

	lines := strings.Split(out, "\n")
	assert.Greater(t, len(lines), 5)
}

// A single console reporter is shared across goroutines when the CLI
// parses several logs at once.
func TestConsole_SharedAcrossGoroutines(t *testing.T) {
	rep := NewConsole(MonoTheme(), 100)
	build := sampleBuild()

	want, err := rep.Report(build)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := rep.Report(build)
			assert.NoError(t, err)
			assert.Equal(t, want, out)
		}()
	}
	wg.Wait()
}
