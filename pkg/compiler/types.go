package compiler

import "strings"

// IdentifierType is the declared type tag of an identifier-table entry.
type IdentifierType int

const (
	TypeUnknown IdentifierType = iota
	TypeFunction
	TypeInt
	TypeFloat
	TypeChar
	TypeBool
	TypeVoid
	TypeString
	TypeArray
)

var identifierTypeNames = [...]string{
	TypeUnknown:  "unknown",
	TypeFunction: "function",
	TypeInt:      "int",
	TypeFloat:    "float",
	TypeChar:     "char",
	TypeBool:     "bool",
	TypeVoid:     "void",
	TypeString:   "string",
	TypeArray:    "array",
}

func (t IdentifierType) String() string {
	if int(t) >= 0 && int(t) < len(identifierTypeNames) {
		return identifierTypeNames[t]
	}
	return "unknown"
}

// TypeFromToken maps a type-name token to its tag.
func TypeFromToken(tt TokenType) (IdentifierType, bool) {
	switch tt {
	case INT:
		return TypeInt, true
	case FLOAT:
		return TypeFloat, true
	case CHAR:
		return TypeChar, true
	case BOOL:
		return TypeBool, true
	case VOID:
		return TypeVoid, true
	case STRING:
		return TypeString, true
	case ARRAY:
		return TypeArray, true
	}
	return TypeUnknown, false
}

// typeFromSpelling maps a spelling such as "int" or "array<int>" to its tag.
func typeFromSpelling(s string) IdentifierType {
	if strings.HasPrefix(s, "array<") {
		return TypeArray
	}
	for i, name := range identifierTypeNames {
		if name == s {
			return IdentifierType(i)
		}
	}
	return TypeUnknown
}

// literalType is the type of a literal token; true/false are bool.
func literalType(tok Token) IdentifierType {
	switch tok.Type {
	case INT_LIT:
		return TypeInt
	case FLOAT_LIT:
		return TypeFloat
	case STRING_LIT:
		return TypeString
	case CHAR_LIT:
		return TypeChar
	case KEYWORD:
		if tok.Lexeme == "true" || tok.Lexeme == "false" {
			return TypeBool
		}
	}
	return TypeUnknown
}

// ElementType strips one array level from a spelling: "array<array<int>>"
// becomes "array<int>". Non-array spellings yield "".
func ElementType(spelling string) string {
	if !strings.HasPrefix(spelling, "array<") || !strings.HasSuffix(spelling, ">") {
		return ""
	}
	return spelling[len("array<") : len(spelling)-1]
}

// compatible reports whether a value of type actual may be stored in a
// slot of type expected. Unknown matches everything.
func compatible(expected, actual IdentifierType) bool {
	return expected == TypeUnknown || actual == TypeUnknown || expected == actual
}

// assignable is compatible over spellings. Arrays compare their full
// spelling so that element type and depth must agree.
func assignable(expected, actual string) bool {
	et, at := typeFromSpelling(expected), typeFromSpelling(actual)
	if !compatible(et, at) {
		return false
	}
	if et == TypeArray && at == TypeArray {
		return expected == actual
	}
	return true
}
