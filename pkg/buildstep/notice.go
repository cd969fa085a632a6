package buildstep

// NoticeType classifies a diagnostic attached to a build step.
type NoticeType string

const (
	NoticeTypeNote              NoticeType = "note"
	NoticeTypeWarning           NoticeType = "warning"
	NoticeTypeError             NoticeType = "error"
	NoticeTypeAnalyzerWarning   NoticeType = "analyzerWarning"
	NoticeTypeDeprecatedWarning NoticeType = "deprecatedWarning"
)

// Notice is one diagnostic record (error, warning or note) parsed from the
// build log and attributed to a single step.
type Notice struct {
	Type           NoticeType `json:"type"`
	Title          string     `json:"title"`
	Detail         string     `json:"detail,omitempty"`
	DocumentURL    string     `json:"documentURL"`
	Severity       int        `json:"severity"`
	StartingLine   int        `json:"startingLineNumber"`
	EndingLine     int        `json:"endingLineNumber"`
	StartingColumn int        `json:"startingColumnNumber"`
	EndingColumn   int        `json:"endingColumnNumber"`
}

// IsError reports whether the notice counts toward a step's ErrorCount.
func (n Notice) IsError() bool {
	return n.Type == NoticeTypeError
}

// IsWarning reports whether the notice counts toward a step's WarningCount.
func (n Notice) IsWarning() bool {
	switch n.Type {
	case NoticeTypeWarning, NoticeTypeAnalyzerWarning, NoticeTypeDeprecatedWarning:
		return true
	default:
		return false
	}
}
