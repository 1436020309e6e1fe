package hindic

// Type is the closed set of primitive types the language supports,
// plus a sentinel that marks "an earlier error made this unknowable".
// Keeping it as its own enum (rather than reusing TokenType as a
// type-or-sentinel union) keeps the concrete type lattice closed, per
// the scanner/analyzer design note.
type Type int

const (
	TypeInt Type = iota
	TypeFloat
	TypeChar
	TypeVoid
	TypeError
)

func (t Type) String() string {
	switch t {
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeChar:
		return "char"
	case TypeVoid:
		return "void"
	default:
		return "<error>"
	}
}

// typeFromKeyword converts a type-keyword TokenType (TokenInt,
// TokenFloat, TokenChar, TokenVoid) into a Type. ok is false for any
// other TokenType.
func typeFromKeyword(tt TokenType) (Type, bool) {
	switch tt {
	case TokenInt:
		return TypeInt, true
	case TokenFloat:
		return TypeFloat, true
	case TokenChar:
		return TypeChar, true
	case TokenVoid:
		return TypeVoid, true
	default:
		return TypeError, false
	}
}

// isTypeKeyword reports whether tt starts a declaration.
func isTypeKeyword(tt TokenType) bool {
	_, ok := typeFromKeyword(tt)
	return ok
}
