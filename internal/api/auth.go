package api

import (
	"context"
	"net/http"

	"dormshare-cli/internal/model"
)

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Registration struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	HostelRoom  string `json:"hostelRoom"`
	PhoneNumber string `json:"phoneNumber"`
}

// Session is the login/register response: an opaque bearer token plus the
// resolved profile snapshot.
type Session struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

func (c *Client) Login(ctx context.Context, creds Credentials) (Session, error) {
	var sess Session
	if err := c.do(ctx, http.MethodPost, "/auth/login", creds, &sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

func (c *Client) Register(ctx context.Context, reg Registration) (Session, error) {
	var sess Session
	if err := c.do(ctx, http.MethodPost, "/auth/register", reg, &sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// Me rehydrates the current user's profile from a stored token.
func (c *Client) Me(ctx context.Context) (model.User, error) {
	var env struct {
		Data model.User `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &env); err != nil {
		return model.User{}, err
	}
	return env.Data, nil
}
