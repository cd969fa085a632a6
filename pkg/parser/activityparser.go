package parser

import (
	"errors"
	"fmt"
	"io"
)

// ActivityParser decodes a lexed SLF0 token stream into an ActivityLog.
type ActivityParser struct {
	lex *Lexer
}

// ParseActivityLog decodes a decompressed SLF0 stream.
func ParseActivityLog(data []byte) (*ActivityLog, error) {
	lex, err := NewLexer(data)
	if err != nil {
		return nil, err
	}
	p := &ActivityParser{lex: lex}

	version, err := p.parseInt("log version")
	if err != nil {
		return nil, err
	}

	main, err := p.parseSection()
	if err != nil {
		return nil, fmt.Errorf("parsing main section: %w", err)
	}

	return &ActivityLog{Version: int(version), MainSection: main}, nil
}

// ParseActivityLogFile reads, decompresses and decodes an .xcactivitylog.
func ParseActivityLogFile(path string) (*ActivityLog, error) {
	data, err := ReadActivityLog(path)
	if err != nil {
		return nil, err
	}
	return ParseActivityLog(data)
}

// next returns the next semantic token. Class-name definitions are
// registered by the lexer and skipped here; they carry no field value.
func (p *ActivityParser) next() (Token, error) {
	for {
		tok, err := p.lex.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return Token{}, fmt.Errorf("unexpected end of token stream")
			}
			return Token{}, err
		}
		if tok.Kind == TokenClassName {
			continue
		}
		return tok, nil
	}
}

func (p *ActivityParser) parseInt(field string) (uint64, error) {
	tok, err := p.next()
	if err != nil {
		return 0, err
	}
	if tok.Kind != TokenInt {
		return 0, fmt.Errorf("%s: expected int token, got %s", field, tok.Kind)
	}
	return tok.IntValue, nil
}

func (p *ActivityParser) parseBool(field string) (bool, error) {
	v, err := p.parseInt(field)
	return v != 0, err
}

func (p *ActivityParser) parseDouble(field string) (float64, error) {
	tok, err := p.next()
	if err != nil {
		return 0, err
	}
	switch tok.Kind {
	case TokenDouble:
		return tok.DoubleValue, nil
	case TokenNull:
		return 0, nil
	default:
		return 0, fmt.Errorf("%s: expected double token, got %s", field, tok.Kind)
	}
}

// parseString accepts a null token as the empty string; optional text
// fields are encoded as nulls.
func (p *ActivityParser) parseString(field string) (string, error) {
	tok, err := p.next()
	if err != nil {
		return "", err
	}
	switch tok.Kind {
	case TokenString:
		return tok.StringValue, nil
	case TokenNull:
		return "", nil
	default:
		return "", fmt.Errorf("%s: expected string token, got %s", field, tok.Kind)
	}
}

// parseListHeader returns the element count, treating null as an empty list.
func (p *ActivityParser) parseListHeader(field string) (int, error) {
	tok, err := p.next()
	if err != nil {
		return 0, err
	}
	switch tok.Kind {
	case TokenList:
		return int(tok.IntValue), nil
	case TokenNull:
		return 0, nil
	default:
		return 0, fmt.Errorf("%s: expected list token, got %s", field, tok.Kind)
	}
}

// parseClassInstance expects an instance token and resolves its class name.
// A null token resolves to "", letting callers treat the value as absent.
func (p *ActivityParser) parseClassInstance(field string) (string, error) {
	tok, err := p.next()
	if err != nil {
		return "", err
	}
	switch tok.Kind {
	case TokenClassInstance:
		return p.lex.ClassName(tok.IntValue)
	case TokenNull:
		return "", nil
	default:
		return "", fmt.Errorf("%s: expected class instance, got %s", field, tok.Kind)
	}
}

func isSectionClass(name string) bool {
	switch name {
	case classActivityLogSection, classActivityLogMajorGroup,
		classActivityLogCommandInvocation, classActivityLogUnitTestSection,
		classCommandLineBuildLog:
		return true
	}
	return false
}

func isMessageClass(name string) bool {
	switch name {
	case classActivityLogMessage, classActivityLogAnalyzerMessage:
		return true
	}
	return false
}

func (p *ActivityParser) parseSection() (*LogSection, error) {
	class, err := p.parseClassInstance("section")
	if err != nil {
		return nil, err
	}
	if !isSectionClass(class) {
		return nil, fmt.Errorf("unexpected section class %q", class)
	}

	s := LogSection{Class: class}
	if v, err := p.parseInt("sectionType"); err != nil {
		return nil, err
	} else {
		s.SectionType = int(v)
	}
	if s.DomainType, err = p.parseString("domainType"); err != nil {
		return nil, err
	}
	if s.Title, err = p.parseString("title"); err != nil {
		return nil, err
	}
	if s.Signature, err = p.parseString("signature"); err != nil {
		return nil, err
	}
	if s.TimeStarted, err = p.parseDouble("timeStartedRecording"); err != nil {
		return nil, err
	}
	if s.TimeStopped, err = p.parseDouble("timeStoppedRecording"); err != nil {
		return nil, err
	}

	count, err := p.parseListHeader("subSections")
	if err != nil {
		return nil, err
	}
	for i := 0; i < count; i++ {
		sub, err := p.parseSection()
		if err != nil {
			return nil, fmt.Errorf("subsection %d of %q: %w", i, s.Signature, err)
		}
		s.SubSections = append(s.SubSections, *sub)
	}

	if s.Text, err = p.parseString("text"); err != nil {
		return nil, err
	}

	count, err = p.parseListHeader("messages")
	if err != nil {
		return nil, err
	}
	for i := 0; i < count; i++ {
		msg, err := p.parseMessage()
		if err != nil {
			return nil, fmt.Errorf("message %d of %q: %w", i, s.Signature, err)
		}
		s.Messages = append(s.Messages, *msg)
	}

	if s.WasCancelled, err = p.parseBool("wasCancelled"); err != nil {
		return nil, err
	}
	if s.IsQuiet, err = p.parseBool("isQuiet"); err != nil {
		return nil, err
	}
	if s.WasFetchedFromCache, err = p.parseBool("wasFetchedFromCache"); err != nil {
		return nil, err
	}
	if s.Subtitle, err = p.parseString("subtitle"); err != nil {
		return nil, err
	}
	if s.Location, err = p.parseLocation(); err != nil {
		return nil, err
	}
	if s.CommandDetail, err = p.parseString("commandDetailDescription"); err != nil {
		return nil, err
	}
	if s.UniqueIdentifier, err = p.parseString("uniqueIdentifier"); err != nil {
		return nil, err
	}
	if s.LocalizedResult, err = p.parseString("localizedResultString"); err != nil {
		return nil, err
	}
	if s.XCBuildSignature, err = p.parseString("xcbuildSignature"); err != nil {
		return nil, err
	}
	return &s, nil
}

func (p *ActivityParser) parseMessage() (*LogMessage, error) {
	class, err := p.parseClassInstance("message")
	if err != nil {
		return nil, err
	}
	if !isMessageClass(class) {
		return nil, fmt.Errorf("unexpected message class %q", class)
	}

	m := LogMessage{Class: class}
	if m.Title, err = p.parseString("title"); err != nil {
		return nil, err
	}
	if m.ShortTitle, err = p.parseString("shortTitle"); err != nil {
		return nil, err
	}
	if m.TimeEmitted, err = p.parseInt("timeEmitted"); err != nil {
		return nil, err
	}
	if m.RangeEnd, err = p.parseInt("rangeEndInSectionText"); err != nil {
		return nil, err
	}
	if m.RangeStart, err = p.parseInt("rangeStartInSectionText"); err != nil {
		return nil, err
	}

	count, err := p.parseListHeader("subMessages")
	if err != nil {
		return nil, err
	}
	for i := 0; i < count; i++ {
		sub, err := p.parseMessage()
		if err != nil {
			return nil, fmt.Errorf("submessage %d: %w", i, err)
		}
		m.SubMessages = append(m.SubMessages, *sub)
	}

	if v, err := p.parseInt("severity"); err != nil {
		return nil, err
	} else {
		m.Severity = int(v)
	}
	if m.Type, err = p.parseString("type"); err != nil {
		return nil, err
	}
	if m.Location, err = p.parseLocation(); err != nil {
		return nil, err
	}
	if m.CategoryIdent, err = p.parseString("categoryIdent"); err != nil {
		return nil, err
	}

	count, err = p.parseListHeader("secondaryLocations")
	if err != nil {
		return nil, err
	}
	for i := 0; i < count; i++ {
		loc, err := p.parseLocation()
		if err != nil {
			return nil, fmt.Errorf("secondary location %d: %w", i, err)
		}
		if loc != nil {
			m.SecondaryLocations = append(m.SecondaryLocations, *loc)
		}
	}

	if m.AdditionalDescription, err = p.parseString("additionalDescription"); err != nil {
		return nil, err
	}
	return &m, nil
}

// parseLocation decodes a DVTDocumentLocation instance, or nil for a null
// token. The text subclass carries line/column/range fields after the URL
// and timestamp.
func (p *ActivityParser) parseLocation() (*DocumentLocation, error) {
	class, err := p.parseClassInstance("location")
	if err != nil {
		return nil, err
	}
	if class == "" {
		return nil, nil
	}
	if class != classDocumentLocation && class != classTextDocumentLocation {
		return nil, fmt.Errorf("unexpected location class %q", class)
	}

	loc := DocumentLocation{Class: class}
	if loc.DocumentURL, err = p.parseString("documentURLString"); err != nil {
		return nil, err
	}
	if loc.Timestamp, err = p.parseDouble("timestamp"); err != nil {
		return nil, err
	}
	if class == classDocumentLocation {
		return &loc, nil
	}

	ints := []*int{
		&loc.StartingLine, &loc.StartingColumn,
		&loc.EndingLine, &loc.EndingColumn,
		&loc.CharacterRangeEnd, &loc.CharacterRangeStart,
		&loc.LocationEncoding,
	}
	for _, dst := range ints {
		v, err := p.parseInt("location field")
		if err != nil {
			return nil, err
		}
		*dst = int(v)
	}
	return &loc, nil
}
