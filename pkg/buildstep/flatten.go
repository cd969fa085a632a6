package buildstep

// Flatten converts a step tree into an ordered sequence of records for
// reporting, in document order: the build, then each target followed by its
// detail steps.
//
// Only the first three tree levels (main, target, detail) are normalized to
// childless copies. If a detail step itself has children, they stay attached
// to that step's copy verbatim, subtrees included. The bound is a deliberate
// trade-off favoring an iterative, fixed-cost traversal over unbounded
// recursion; callers of the flattened form rely on it, so do not deepen it
// without revisiting them.
//
// The input tree is never mutated.
func Flatten(root BuildStep) []BuildStep {
	flat := make([]BuildStep, 0, 1+len(root.SubSteps))
	flat = append(flat, root.withoutSubSteps())
	for _, target := range root.SubSteps {
		flat = append(flat, target.withoutSubSteps())
		for _, detail := range target.SubSteps {
			record := detail.withoutSubSteps()
			if len(detail.SubSteps) > 0 {
				record.SubSteps = append(record.SubSteps, detail.SubSteps...)
			}
			flat = append(flat, record)
		}
	}
	return flat
}

// withoutSubSteps returns a copy of the step with an empty (non-nil) child
// list, so flattened records encode subSteps as [] rather than null.
func (s BuildStep) withoutSubSteps() BuildStep {
	s.SubSteps = []BuildStep{}
	return s
}
