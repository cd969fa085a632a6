package parser

import (
	"strings"

	"github.com/sairamkotha/XCLogParser/pkg/buildstep"
)

// notices flattens a section's message tree into diagnostic records. Only
// leaf messages become notices; group messages exist to nest their
// children.
func (b *StepBuilder) notices(s *LogSection) []buildstep.Notice {
	var out []buildstep.Notice
	for i := range s.Messages {
		out = b.appendNotices(out, &s.Messages[i])
	}
	return out
}

func (b *StepBuilder) appendNotices(out []buildstep.Notice, m *LogMessage) []buildstep.Notice {
	if len(m.SubMessages) > 0 {
		for i := range m.SubMessages {
			out = b.appendNotices(out, &m.SubMessages[i])
		}
		return out
	}

	n := buildstep.Notice{
		Type:     classifyNotice(m),
		Title:    b.redact(m.Title),
		Detail:   b.redact(m.AdditionalDescription),
		Severity: m.Severity,
	}
	if m.Location != nil {
		n.DocumentURL = b.redact(m.Location.DocumentURL)
		n.StartingLine = m.Location.StartingLine
		n.EndingLine = m.Location.EndingLine
		n.StartingColumn = m.Location.StartingColumn
		n.EndingColumn = m.Location.EndingColumn
	}
	return append(out, n)
}

// classifyNotice maps a message to a notice type. The message class and
// category identifier are the most specific signals; title prefixes and
// severity are fallbacks for messages that carry neither.
func classifyNotice(m *LogMessage) buildstep.NoticeType {
	switch {
	case strings.Contains(m.CategoryIdent, "Deprecation"):
		return buildstep.NoticeTypeDeprecatedWarning
	case m.Class == classActivityLogAnalyzerMessage,
		strings.Contains(m.CategoryIdent, "Analyzer"):
		return buildstep.NoticeTypeAnalyzerWarning
	}

	title := strings.ToLower(m.Title)
	switch {
	case strings.HasPrefix(title, "error:") || m.Severity >= 2:
		return buildstep.NoticeTypeError
	case strings.HasPrefix(title, "warning:") || m.Severity == 1:
		return buildstep.NoticeTypeWarning
	default:
		return buildstep.NoticeTypeNote
	}
}
