package parser

// Known activity-log class names. Section subclasses share the base
// section field layout.
const (
	classActivityLogSection           = "IDEActivityLogSection"
	classActivityLogMajorGroup        = "IDEActivityLogMajorGroupSection"
	classActivityLogCommandInvocation = "IDEActivityLogCommandInvocationSection"
	classActivityLogUnitTestSection   = "IDEActivityLogUnitTestSection"
	classCommandLineBuildLog          = "IDECommandLineBuildLog"
	classActivityLogMessage           = "IDEActivityLogMessage"
	classActivityLogAnalyzerMessage   = "IDEActivityLogAnalyzerResultMessage"
	classDocumentLocation             = "DVTDocumentLocation"
	classTextDocumentLocation         = "DVTTextDocumentLocation"
)

// ActivityLog is the decoded content of one .xcactivitylog file.
type ActivityLog struct {
	Version     int         `json:"version"`
	MainSection *LogSection `json:"mainSection"`
}

// LogSection is one section of the activity log. The main section covers
// the whole build, its subsections the targets, and theirs the individual
// build commands.
type LogSection struct {
	Class               string            `json:"class"`
	SectionType         int               `json:"sectionType"`
	DomainType          string            `json:"domainType"`
	Title               string            `json:"title"`
	Signature           string            `json:"signature"`
	TimeStarted         float64           `json:"timeStartedRecording"` // Core Data reference date
	TimeStopped         float64           `json:"timeStoppedRecording"`
	SubSections         []LogSection      `json:"subSections"`
	Text                string            `json:"text"`
	Messages            []LogMessage      `json:"messages"`
	WasCancelled        bool              `json:"wasCancelled"`
	IsQuiet             bool              `json:"isQuiet"`
	WasFetchedFromCache bool              `json:"wasFetchedFromCache"`
	Subtitle            string            `json:"subtitle"`
	Location            *DocumentLocation `json:"location"`
	CommandDetail       string            `json:"commandDetailDescription"`
	UniqueIdentifier    string            `json:"uniqueIdentifier"`
	LocalizedResult     string            `json:"localizedResultString"`
	XCBuildSignature    string            `json:"xcbuildSignature"`
}

// LogMessage is one diagnostic message inside a section.
type LogMessage struct {
	Class                 string             `json:"class"`
	Title                 string             `json:"title"`
	ShortTitle            string             `json:"shortTitle"`
	TimeEmitted           uint64             `json:"timeEmitted"`
	RangeStart            uint64             `json:"rangeStartInSectionText"`
	RangeEnd              uint64             `json:"rangeEndInSectionText"`
	SubMessages           []LogMessage       `json:"subMessages"`
	Severity              int                `json:"severity"`
	Type                  string             `json:"type"`
	Location              *DocumentLocation  `json:"location"`
	CategoryIdent         string             `json:"categoryIdent"`
	SecondaryLocations    []DocumentLocation `json:"secondaryLocations"`
	AdditionalDescription string             `json:"additionalDescription"`
}

// DocumentLocation points a message at a position inside a source document.
// Base DVTDocumentLocation instances carry only the URL and timestamp; the
// text subclass adds line/column/character ranges.
type DocumentLocation struct {
	Class               string  `json:"class"`
	DocumentURL         string  `json:"documentURLString"`
	Timestamp           float64 `json:"timestamp"`
	StartingLine        int     `json:"startingLineNumber"`
	StartingColumn      int     `json:"startingColumnNumber"`
	EndingLine          int     `json:"endingLineNumber"`
	EndingColumn        int     `json:"endingColumnNumber"`
	CharacterRangeEnd   int     `json:"characterRangeEnd"`
	CharacterRangeStart int     `json:"characterRangeStart"`
	LocationEncoding    int     `json:"locationEncoding"`
}
