package client

// User is the account a session belongs to
type User struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Session is the explicit auth state of one client user. It is created by
// Login or Restore, passed to every protected call, and cleared by Logout
// or by any 401 answer.
type Session struct {
	token string
	user  *User
}

// NewSession wraps an existing token, e.g. one read from disk
func NewSession(token string) *Session {
	return &Session{token: token}
}

// Token returns the bearer token, empty once cleared
func (s *Session) Token() string {
	if s == nil {
		return ""
	}
	return s.token
}

// User returns the session owner when known
func (s *Session) User() *User {
	if s == nil {
		return nil
	}
	return s.user
}

// Authenticated reports whether the session still holds a token
func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// Clear forgets the token and user
func (s *Session) Clear() {
	if s == nil {
		return
	}
	s.token = ""
	s.user = nil
}
