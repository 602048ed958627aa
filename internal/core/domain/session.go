package domain

// SessionState is derived from the Session flags; it is never stored.
type SessionState string

const (
	SessionAnonymous      SessionState = "anonymous"
	SessionAuthenticating SessionState = "authenticating"
	SessionAuthenticated  SessionState = "authenticated"
)

// Session is the single authenticated identity of the running process.
type Session struct {
	User            *User  `json:"user"`
	IsAuthenticated bool   `json:"isAuthenticated"`
	Loading         bool   `json:"loading"`
	Error           string `json:"error,omitempty"`
}

// State reports which lifecycle state the flags describe.
func (s Session) State() SessionState {
	switch {
	case s.Loading:
		return SessionAuthenticating
	case s.IsAuthenticated && s.User != nil:
		return SessionAuthenticated
	default:
		return SessionAnonymous
	}
}
