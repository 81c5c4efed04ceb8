package domain

// Session is the tuple of truth for "who is logged in". It is replaced
// wholesale by a successful login or verification and destroyed by logout;
// there is no partial-update path.
type Session struct {
	Token string
	User  *UserProfile
}

// IsAuthenticated reports whether the session is complete. A token without a
// user, or a user without a token, is an incomplete session and counts as
// not authenticated.
func (s Session) IsAuthenticated() bool {
	return s.Token != "" && s.User != nil
}

// Role returns the session's role, derived from the user profile. It is
// never stored independently; absent user means absent role.
func (s Session) Role() (Role, bool) {
	if s.User == nil {
		return "", false
	}
	return s.User.Role, true
}
