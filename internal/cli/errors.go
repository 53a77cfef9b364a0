package cli

import "errors"

var errNotLoggedIn = errors.New("not logged in: run `dormshare login` first")

// requireAuth is an advisory gate only; the server enforces authorization
// on every protected call regardless.
func requireAuth(app *App) error {
	if app.client.Token == "" {
		return errNotLoggedIn
	}
	return nil
}
