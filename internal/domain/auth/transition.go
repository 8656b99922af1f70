package auth

// Event is a named session transition. The set of events is closed:
// only types in this package implement it.
type Event interface {
	event()
}

type (
	LoginStarted   struct{}
	LoginSucceeded struct {
		User  User
		Token string
	}
	LoginFailed     struct{ Message string }
	SignupStarted   struct{}
	SignupSucceeded struct{ Message string }
	SignupFailed    struct{ Message string }
	LoggedOut       struct{}
	LoadingSet      struct{ Loading bool }
	ErrorCleared    struct{}
	// UserSet records the outcome of a token check; a nil User means unauthenticated.
	UserSet struct{ User *User }
)

func (LoginStarted) event()    {}
func (LoginSucceeded) event()  {}
func (LoginFailed) event()     {}
func (SignupStarted) event()   {}
func (SignupSucceeded) event() {}
func (SignupFailed) event()    {}
func (LoggedOut) event()       {}
func (LoadingSet) event()      {}
func (ErrorCleared) event()    {}
func (UserSet) event()         {}

// Reduce applies ev to s and returns the next state. It is pure.
func Reduce(s Session, ev Event) Session {
	next := s
	next.User = cloneUser(s.User)

	switch e := ev.(type) {
	case LoginStarted, SignupStarted:
		next.Loading = true
		next.Error = ""
		next.Message = ""
	case LoginSucceeded:
		u := e.User
		next.User = &u
		next.IsAuthenticated = true
		next.Loading = false
		next.Error = ""
	case SignupSucceeded:
		next.Loading = false
		next.Error = ""
		next.Message = e.Message
	case LoginFailed:
		next = failed(next, e.Message)
	case SignupFailed:
		next = failed(next, e.Message)
	case LoggedOut:
		next.User = nil
		next.IsAuthenticated = false
		next.Loading = false
		next.Error = ""
		next.Message = ""
	case LoadingSet:
		next.Loading = e.Loading
	case ErrorCleared:
		next.Error = ""
	case UserSet:
		next.User = cloneUser(e.User)
		next.IsAuthenticated = e.User != nil
		next.Loading = false
		next.Error = ""
	default:
		return s
	}
	return next
}

func failed(s Session, message string) Session {
	s.User = nil
	s.IsAuthenticated = false
	s.Loading = false
	s.Error = message
	s.Message = ""
	return s
}
