// Package state holds the client's shared mutable state.
//
// Each slice is written exclusively through its apply methods, which
// correspond to the three observable phases of an async action
// (pending/fulfilled/rejected). Views read slices; they never mutate them.
package state

import "dormshare-cli/internal/model"

// AuthState is the session slice.
type AuthState struct {
	Token   string
	User    *model.User
	Loading bool
	Err     string
}

// IsAuthenticated holds iff both a token and a resolved user snapshot are
// present.
func (s *AuthState) IsAuthenticated() bool {
	return s.Token != "" && s.User != nil
}

// Begin marks a login/register/rehydrate call as in flight.
func (s *AuthState) Begin() {
	s.Loading = true
	s.Err = ""
}

// ApplySession records a successful login or registration.
func (s *AuthState) ApplySession(token string, u model.User) {
	s.Loading = false
	s.Token = token
	s.User = &u
	s.Err = ""
}

// ApplyUser records a successful profile fetch (session rehydration or a
// profile update echo). The token is left as-is.
func (s *AuthState) ApplyUser(u model.User) {
	s.Loading = false
	s.User = &u
	s.Err = ""
}

// Reject records a failed auth call. Existing data is left unchanged, so a
// failed rehydrate keeps the stored token but never flips IsAuthenticated.
func (s *AuthState) Reject(msg string) {
	s.Loading = false
	s.Err = msg
}

// Clear drops the session (logout).
func (s *AuthState) Clear() {
	*s = AuthState{}
}
