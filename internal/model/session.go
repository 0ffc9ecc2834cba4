package model

import "time"

// Session is the storefront's belief about who is logged in. Email is
// either empty or a single authenticated principal.
type Session struct {
	Email          string
	Bootstrapped   bool
	BootstrappedAt time.Time
}

func (s *Session) Authenticated() bool {
	return s != nil && s.Email != ""
}
