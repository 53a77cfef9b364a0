package tui

import (
	"dormshare-cli/internal/api"
	"dormshare-cli/internal/model"
)

type view int

const (
	viewBrowse view = iota
	viewDetail
	viewForm
	viewLogin
	viewRegister
	viewProfile
	viewMine
)

// protectedView reports whether a view sits behind the auth gate.
func protectedView(v view) bool {
	switch v {
	case viewForm, viewProfile, viewMine:
		return true
	}
	return false
}

type mineTab int

const (
	mineListings mineTab = iota
	mineRentals
)

// Async settlements. Every network call completes as exactly one of these;
// err is the human-readable message ("" means fulfilled).

type sessionResolvedMsg struct {
	user model.User
	err  string
}

type authResultMsg struct {
	sess api.Session
	err  string
}

type itemsFetchedMsg struct {
	gen   int
	items []model.Item
	// cacheable marks an unfiltered listing eligible to refresh the
	// offline cache, if its generation wins.
	cacheable bool
	err       string
}

// searchDebounceMsg coalesces keystrokes; only the newest seq fires a fetch.
type searchDebounceMsg struct{ seq int }

type itemLoadedMsg struct {
	item model.Item
	err  string
}

type itemSavedMsg struct {
	item    model.Item
	created bool
	err     string
}

type itemDeletedMsg struct {
	id  string
	err string
}

type itemRentedMsg struct {
	item model.Item
	err  string
}

type itemReturnedMsg struct {
	item model.Item
	err  string
}

type mineLoadedMsg struct {
	tab   mineTab
	items []model.Item
	err   string
}

type profileSavedMsg struct {
	user model.User
	err  string
}

type passwordChangedMsg struct{ err string }

type flashDoneMsg struct{ seq int }
