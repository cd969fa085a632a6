package parser

import (
	"fmt"
	"strings"
	"time"

	"github.com/sairamkotha/XCLogParser/pkg/buildstep"
)

// appleReferenceOffset converts Core Data reference dates (seconds since
// 2001-01-01 UTC) to Unix seconds.
const appleReferenceOffset = 978307200

// BuildOptions configures the section-to-step conversion.
type BuildOptions struct {
	// MachineName overrides the resolved machine identifier used to build
	// step identifiers.
	MachineName string
	// Redacted strips user names from paths in titles, signatures and
	// document URLs.
	Redacted bool
}

// StepBuilder converts a decoded ActivityLog into a BuildStep tree: the
// main section becomes the main step, its subsections the targets, and
// theirs the detail steps. Detail steps are classified from their
// signatures and issue counts are rolled up into their ancestors.
type StepBuilder struct {
	machineName string
	redacted    bool
	counter     int
}

// NewStepBuilder creates a builder, resolving the machine name when no
// override is given.
func NewStepBuilder(opts BuildOptions) *StepBuilder {
	name := opts.MachineName
	if name == "" {
		name = ResolveMachineName()
	}
	return &StepBuilder{machineName: name, redacted: opts.Redacted}
}

// Build converts the log into its build-step tree.
func (b *StepBuilder) Build(log *ActivityLog) (*buildstep.BuildStep, error) {
	if log == nil || log.MainSection == nil {
		return nil, fmt.Errorf("activity log has no main section")
	}

	main := log.MainSection
	buildID := b.identifier(main)
	status := buildStatus(main)
	schema := schemaName(main)

	root := b.step(main, buildID, buildstep.StepKindMain, "", buildID, status, schema)
	root.Identifier = buildID

	for i := range main.SubSections {
		target := &main.SubSections[i]
		targetStep := b.step(target, b.identifier(target), buildstep.StepKindTarget, buildID, buildID, status, schema)
		for j := range target.SubSections {
			targetStep.SubSteps = append(targetStep.SubSteps,
				b.detailStep(&target.SubSections[j], targetStep.Identifier, buildID, status, schema))
		}
		root.SubSteps = append(root.SubSteps, targetStep)
	}

	root.RollUpCounts()
	return &root, nil
}

// detailStep converts a command section, recursing into any nested
// subsections as further detail steps.
func (b *StepBuilder) detailStep(s *LogSection, parentID, buildID, status, schema string) buildstep.BuildStep {
	step := b.step(s, b.identifier(s), buildstep.StepKindDetail, parentID, buildID, status, schema)
	step.DetailCategory = buildstep.Classify(step.Signature)
	step.Notes = b.notices(s)
	for _, n := range step.Notes {
		switch {
		case n.IsError():
			step.ErrorCount++
		case n.IsWarning():
			step.WarningCount++
		}
	}
	if step.DetailCategory == buildstep.CategorySwiftCompilation ||
		step.DetailCategory == buildstep.CategorySwiftAggregatedCompilation {
		step.SwiftFunctionTimes = parseSwiftFunctionTimes(s.Text, s.CommandDetail)
	}
	for i := range s.SubSections {
		step.SubSteps = append(step.SubSteps,
			b.detailStep(&s.SubSections[i], step.Identifier, buildID, status, schema))
	}
	return step
}

// step fills the fields every step kind shares.
func (b *StepBuilder) step(s *LogSection, id string, kind buildstep.StepKind, parentID, buildID, status, schema string) buildstep.BuildStep {
	start := s.TimeStarted + appleReferenceOffset
	end := s.TimeStopped + appleReferenceOffset
	duration := s.TimeStopped - s.TimeStarted
	if duration < 0 {
		duration = 0
	}

	step := buildstep.BuildStep{
		Identifier:       id,
		ParentIdentifier: parentID,
		BuildIdentifier:  buildID,
		Kind:             kind,
		DetailCategory:   buildstep.CategoryNone,
		MachineName:      b.machineName,
		Domain:           s.DomainType,
		Title:            b.redact(s.Title),
		Signature:        b.redact(s.Signature),
		Schema:           schema,
		Architecture:     architecture(s.Signature),
		BuildStatus:      status,
		StartDate:        isoDate(start),
		EndDate:          isoDate(end),
		StartTimestamp:   int64(start),
		EndTimestamp:     int64(end),
		Duration:         duration,
		SubSteps:         []buildstep.BuildStep{},
	}
	if s.Location != nil {
		step.DocumentURL = b.redact(s.Location.DocumentURL)
	}
	return step
}

// identifier builds a stable step identifier from the machine name and the
// section's unique identifier, falling back to a per-build counter for
// sections that carry none.
func (b *StepBuilder) identifier(s *LogSection) string {
	if s.UniqueIdentifier != "" {
		return b.machineName + "_" + s.UniqueIdentifier
	}
	b.counter++
	return fmt.Sprintf("%s_%d", b.machineName, b.counter)
}

func (b *StepBuilder) redact(s string) string {
	if !b.redacted {
		return s
	}
	return RedactUserPaths(s)
}

// buildStatus derives the overall status from the main section's localized
// result ("Build succeeded", "Build failed").
func buildStatus(main *LogSection) string {
	result := strings.ToLower(main.LocalizedResult)
	switch {
	case strings.Contains(result, "succeeded"):
		return "succeeded"
	case strings.Contains(result, "failed"):
		return "failed"
	case main.WasCancelled:
		return "cancelled"
	default:
		return result
	}
}

// schemaName extracts the scheme from the main section title, e.g.
// "Build App" or "Clean App".
func schemaName(main *LogSection) string {
	title := main.Title
	for _, prefix := range []string{"Build ", "Clean ", "Analyze ", "Test "} {
		if strings.HasPrefix(title, prefix) {
			return strings.TrimPrefix(title, prefix)
		}
	}
	return title
}

// architecture pulls the target architecture out of signatures like
// "CompileSwift normal arm64 File.swift".
func architecture(signature string) string {
	fields := strings.Fields(signature)
	for i, f := range fields {
		if f == "normal" && i+1 < len(fields) {
			return fields[i+1]
		}
	}
	return ""
}

// isoDate formats Unix seconds (with fraction) as an ISO-8601 UTC string.
func isoDate(unixSeconds float64) string {
	sec := int64(unixSeconds)
	nsec := int64((unixSeconds - float64(sec)) * float64(time.Second))
	return time.Unix(sec, nsec).UTC().Format("2006-01-02T15:04:05.000Z0700")
}
