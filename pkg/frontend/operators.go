package frontend

type Operator uint64

const (
	OperatorEqual              Operator = iota // '='
	OperatorGreaterThan                        // '>'
	OperatorLessThan                           // '<'
	OperatorPlus                               // '+'
	OperatorMinus                              // '-'
	OperatorAsterisk                           // '*'
	OperatorSlash                              // '/'
	OperatorCaret                              // '^'
	OperatorPercent                            // '%'
	OperatorExclamation                        // '!'
	OperatorQuestionMark                       // '?'
	OperatorNotEqual                           // "!="
	OperatorLessThanEqualTo                    // "<="
	OperatorGreaterThanEqualTo                 // ">="
	OperatorAndAnd                             // "&&"
	OperatorOrOr                               // "||"
)

func (o Operator) String() string {
	switch o {
	case OperatorEqual:
		return "="
	case OperatorGreaterThan:
		return ">"
	case OperatorLessThan:
		return "<"
	case OperatorPlus:
		return "+"
	case OperatorMinus:
		return "-"
	case OperatorAsterisk:
		return "*"
	case OperatorSlash:
		return "/"
	case OperatorCaret:
		return "^"
	case OperatorPercent:
		return "%"
	case OperatorExclamation:
		return "!"
	case OperatorQuestionMark:
		return "?"
	case OperatorNotEqual:
		return "!="
	case OperatorLessThanEqualTo:
		return "<="
	case OperatorGreaterThanEqualTo:
		return ">="
	case OperatorAndAnd:
		return "&&"
	case OperatorOrOr:
		return "||"
	}

	return ""
}
