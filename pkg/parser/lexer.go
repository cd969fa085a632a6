package parser

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
)

// slfHeader opens every activity log token stream.
const slfHeader = "SLF0"

// Lexer tokenizes a decompressed SLF0 byte stream. Each token is a payload
// of digits (hex digits for doubles) followed by a single delimiter byte:
//
//	#  int         decimal payload
//	^  double      hex payload, IEEE-754 bit pattern
//	"  string      decimal payload = byte length, content follows
//	%  class name  decimal payload = byte length, name follows
//	@  instance    decimal payload = 1-based index into seen class names
//	-  null        no payload
//	(  list        decimal payload = element count
type Lexer struct {
	data       []byte
	pos        int
	classNames []string
}

// NewLexer creates a lexer over a decompressed token stream and validates
// the SLF0 header.
func NewLexer(data []byte) (*Lexer, error) {
	if !bytes.HasPrefix(data, []byte(slfHeader)) {
		return nil, fmt.Errorf("not an SLF0 activity log (bad header)")
	}
	return &Lexer{data: data, pos: len(slfHeader)}, nil
}

// ClassName resolves a 1-based class reference from a classInstance token.
func (l *Lexer) ClassName(ref uint64) (string, error) {
	if ref == 0 || ref > uint64(len(l.classNames)) {
		return "", fmt.Errorf("class reference %d out of range (have %d class names)", ref, len(l.classNames))
	}
	return l.classNames[ref-1], nil
}

// Next returns the next token, or io.EOF when the stream is exhausted.
func (l *Lexer) Next() (Token, error) {
	if l.pos >= len(l.data) {
		return Token{}, io.EOF
	}

	start := l.pos
	for l.pos < len(l.data) && isPayloadByte(l.data[l.pos]) {
		l.pos++
	}
	payload := string(l.data[start:l.pos])

	if l.pos >= len(l.data) {
		return Token{}, fmt.Errorf("truncated token at offset %d", start)
	}
	delim := l.data[l.pos]
	l.pos++

	switch delim {
	case '#':
		v, err := strconv.ParseUint(payload, 10, 64)
		if err != nil {
			return Token{}, fmt.Errorf("bad int payload %q at offset %d: %w", payload, start, err)
		}
		return Token{Kind: TokenInt, IntValue: v}, nil

	case '^':
		bits, err := strconv.ParseUint(payload, 16, 64)
		if err != nil {
			return Token{}, fmt.Errorf("bad double payload %q at offset %d: %w", payload, start, err)
		}
		return Token{Kind: TokenDouble, DoubleValue: math.Float64frombits(bits)}, nil

	case '"':
		content, err := l.take(payload, start)
		if err != nil {
			return Token{}, err
		}
		return Token{Kind: TokenString, StringValue: content}, nil

	case '%':
		name, err := l.take(payload, start)
		if err != nil {
			return Token{}, err
		}
		l.classNames = append(l.classNames, name)
		return Token{Kind: TokenClassName, StringValue: name}, nil

	case '@':
		ref, err := strconv.ParseUint(payload, 10, 64)
		if err != nil {
			return Token{}, fmt.Errorf("bad class reference %q at offset %d: %w", payload, start, err)
		}
		return Token{Kind: TokenClassInstance, IntValue: ref}, nil

	case '-':
		if payload != "" {
			return Token{}, fmt.Errorf("null token with payload %q at offset %d", payload, start)
		}
		return Token{Kind: TokenNull}, nil

	case '(':
		count, err := strconv.ParseUint(payload, 10, 64)
		if err != nil {
			return Token{}, fmt.Errorf("bad list count %q at offset %d: %w", payload, start, err)
		}
		return Token{Kind: TokenList, IntValue: count}, nil

	default:
		return Token{}, fmt.Errorf("unexpected delimiter %q at offset %d", delim, l.pos-1)
	}
}

// take reads a length-prefixed chunk for string and class-name tokens.
func (l *Lexer) take(payload string, start int) (string, error) {
	n, err := strconv.ParseUint(payload, 10, 32)
	if err != nil {
		return "", fmt.Errorf("bad length %q at offset %d: %w", payload, start, err)
	}
	end := l.pos + int(n)
	if end > len(l.data) {
		return "", fmt.Errorf("truncated content at offset %d: want %d bytes, have %d", l.pos, n, len(l.data)-l.pos)
	}
	content := string(l.data[l.pos:end])
	l.pos = end
	return content, nil
}

func isPayloadByte(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f')
}

// ReadActivityLog opens an .xcactivitylog file, transparently decompressing
// the gzip wrapper when present, and returns the raw SLF0 stream.
func ReadActivityLog(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening activity log: %w", err)
	}
	defer f.Close()

	header := make([]byte, 2)
	if _, err := io.ReadFull(f, header); err != nil {
		return nil, fmt.Errorf("reading activity log header: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewinding activity log: %w", err)
	}

	var r io.Reader = f
	if header[0] == 0x1f && header[1] == 0x8b {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("decompressing activity log: %w", err)
		}
		defer gz.Close()
		r = gz
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading activity log: %w", err)
	}
	return data, nil
}
