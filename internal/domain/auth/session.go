package auth

// Phase is the lifecycle state of a session, derived from its fields.
type Phase string

const (
	PhaseIdle            Phase = "idle"
	PhasePending         Phase = "pending"
	PhaseAuthenticated   Phase = "authenticated"
	PhaseUnauthenticated Phase = "unauthenticated"
)

// Session is the client-side authentication state.
// Values are replaced wholesale by Reduce; callers never mutate a Session in place.
type Session struct {
	User            *User  `json:"user"`
	IsAuthenticated bool   `json:"isAuthenticated"`
	Loading         bool   `json:"loading"`
	Error           string `json:"error,omitempty"`
	// Message carries the last success notice (e.g. after signup).
	Message string `json:"message,omitempty"`
}

// InitialSession is the state before the startup token check resolves.
func InitialSession() Session {
	return Session{Loading: true}
}

// Phase derives the lifecycle phase.
func (s Session) Phase() Phase {
	switch {
	case s.Loading:
		return PhasePending
	case s.IsAuthenticated && s.User != nil:
		return PhaseAuthenticated
	case s.Error != "":
		return PhaseUnauthenticated
	case s.Message != "":
		return PhaseIdle
	default:
		return PhaseUnauthenticated
	}
}

// Email returns the authenticated user's email or "".
func (s Session) Email() string {
	if s.User == nil {
		return ""
	}
	return s.User.Email
}

func cloneUser(u *User) *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

// Clone returns a copy that shares no memory with s.
func (s Session) Clone() Session {
	s.User = cloneUser(s.User)
	return s
}
