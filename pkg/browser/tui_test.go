package browser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sairamkotha/XCLogParser/pkg/buildstep"
)

func sampleTree() buildstep.BuildStep {
	detail := buildstep.BuildStep{
		Identifier: "mac_3",
		Kind:       buildstep.StepKindDetail,
		Title:      "Compile A.swift",
		Duration:   1.5,
		SubSteps:   []buildstep.BuildStep{},
	}
	target := buildstep.BuildStep{
		Identifier: "mac_2",
		Kind:       buildstep.StepKindTarget,
		Title:      "Build target App",
		SubSteps:   []buildstep.BuildStep{detail},
	}
	return buildstep.BuildStep{
		Identifier: "mac_1",
		Kind:       buildstep.StepKindMain,
		Title:      "Build App",
		SubSteps:   []buildstep.BuildStep{target},
	}
}

func TestNewModel_RootExpandedOnly(t *testing.T) {
	m := newModel(sampleTree())

	require.Len(t, m.rows, 2)
	assert.Equal(t, "mac_1", m.rows[0].step.Identifier)
	assert.Equal(t, 0, m.rows[0].depth)
	assert.Equal(t, "mac_2", m.rows[1].step.Identifier)
	assert.Equal(t, 1, m.rows[1].depth)
}

func TestRebuildRows_ExpandAndCollapse(t *testing.T) {
	m := newModel(sampleTree())

	m.expanded["mac_2"] = true
	m.rebuildRows()
	require.Len(t, m.rows, 3)
	assert.Equal(t, "mac_3", m.rows[2].step.Identifier)
	assert.Equal(t, 2, m.rows[2].depth)

	m.expanded["mac_1"] = false
	m.rebuildRows()
	require.Len(t, m.rows, 1)
}

func TestRebuildRows_ClampsSelection(t *testing.T) {
	m := newModel(sampleTree())
	m.expanded["mac_2"] = true
	m.rebuildRows()
	m.selected = 2

	m.expanded["mac_1"] = false
	m.rebuildRows()
	assert.Equal(t, 0, m.selected)
}

func TestStepDetail_Fields(t *testing.T) {
	step := buildstep.BuildStep{
		Kind:           buildstep.StepKindDetail,
		DetailCategory: buildstep.CategorySwiftCompilation,
		Title:          "Compile A.swift",
		Signature:      "CompileSwift normal arm64 A.swift",
		Architecture:   "arm64",
		Duration:       2.5,
		Notes: []buildstep.Notice{
			{Type: buildstep.NoticeTypeWarning, Title: "unused variable"},
		},
		SwiftFunctionTimes: []buildstep.SwiftFunctionTime{
			{DurationMS: 4.5, Signature: "compute()"},
		},
	}

	out := stepDetail(step)
	assert.Contains(t, out, "Compile A.swift")
	assert.Contains(t, out, "swiftCompilation")
	assert.Contains(t, out, "arm64")
	assert.Contains(t, out, "unused variable")
	assert.Contains(t, out, "compute()")
}

func TestFitLines(t *testing.T) {
	padded := fitLines("a\nb", 4)
	assert.Len(t, strings.Split(padded, "\n"), 4)

	cut := fitLines("a\nb\nc\nd", 2)
	assert.Equal(t, "a\nb", cut)
}
