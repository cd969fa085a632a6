// Package parser reads Xcode .xcactivitylog files (gzip-wrapped SLF0 token
// streams) into an activity-log model and converts them into build-step
// trees.
package parser

import "fmt"

// TokenKind identifies an SLF0 token type.
type TokenKind int

const (
	TokenInt TokenKind = iota
	TokenDouble
	TokenString
	TokenClassName
	TokenClassInstance
	TokenNull
	TokenList
)

func (k TokenKind) String() string {
	switch k {
	case TokenInt:
		return "int"
	case TokenDouble:
		return "double"
	case TokenString:
		return "string"
	case TokenClassName:
		return "className"
	case TokenClassInstance:
		return "classInstance"
	case TokenNull:
		return "null"
	case TokenList:
		return "list"
	default:
		return fmt.Sprintf("TokenKind(%d)", int(k))
	}
}

// Token is one lexed SLF0 token. IntValue carries the payload for int,
// list (element count) and classInstance (class reference) tokens.
type Token struct {
	Kind        TokenKind
	IntValue    uint64
	DoubleValue float64
	StringValue string
}
