package fieldref

// Qualifier is the access qualification propagated from an instance to its
// field references.
type Qualifier uint8

const (
	Mutable       Qualifier = 0
	Const         Qualifier = 1 << 0
	Volatile      Qualifier = 1 << 1
	ConstVolatile           = Const | Volatile
)

func (q Qualifier) IsConst() bool    { return q&Const != 0 }
func (q Qualifier) IsVolatile() bool { return q&Volatile != 0 }

func (q Qualifier) String() string {
	switch q {
	case Mutable:
		return "mutable"
	case Const:
		return "const"
	case Volatile:
		return "volatile"
	case ConstVolatile:
		return "const volatile"
	default:
		return "invalid"
	}
}
