package auth

// Level is the per-request authorization classification. It is derived from
// the Authorization header and the account record on every request, and is
// never persisted or cached anywhere.
type Level int

const (
	LevelAnonymous      Level = iota // no usable session
	LevelDeniedDisabled              // valid session, but the account was disabled by an admin
	LevelUser                        // valid session, regular account
	LevelAdmin                       // valid session, administrator account
)

func (l Level) String() string {
	switch l {
	case LevelAnonymous:
		return "anonymous"
	case LevelDeniedDisabled:
		return "denied-disabled"
	case LevelUser:
		return "user"
	case LevelAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

// Satisfies reports whether a caller at this level may use an operation
// requiring at least the given level. Admin implies user; a disabled
// account satisfies nothing.
func (l Level) Satisfies(required Level) bool {
	switch required {
	case LevelAdmin:
		return l == LevelAdmin
	case LevelUser:
		return l == LevelAdmin || l == LevelUser
	default:
		return true
	}
}
