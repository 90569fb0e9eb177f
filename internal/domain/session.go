package domain

// Session holds the current authenticated identity, if any. Exactly one
// instance exists per AuthStore.
type Session struct {
	User *User
}

// Authenticated reports whether a user is logged in. It is derived from the
// user pointer rather than stored, so the two can never diverge.
func (s Session) Authenticated() bool {
	return s.User != nil
}
