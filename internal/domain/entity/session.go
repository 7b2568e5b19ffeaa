package entity

import "time"

// Session is one issued operator login with an explicit lifecycle
// (issued, expires, revoked). The JWT handed to the client carries the
// session ID; revocation is checked against this record.
type Session struct {
	ID        string
	Username  string
	IssuedAt  time.Time
	ExpiresAt time.Time
	RevokedAt *time.Time
}

// Active reports whether the session can still be used at the given instant.
func (s *Session) Active(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}
