package api

import (
	"context"
	"net/http"

	"dormshare-cli/internal/model"
)

// MyListings returns the items the current user has listed.
func (c *Client) MyListings(ctx context.Context) ([]model.Item, error) {
	var env struct {
		Data []model.Item `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/users/items", nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// MyRentals returns the items the current user is currently renting.
func (c *Client) MyRentals(ctx context.Context) ([]model.Item, error) {
	var env struct {
		Data []model.Item `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/users/rentals", nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

type ProfilePatch struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	HostelRoom  string `json:"hostelRoom"`
	PhoneNumber string `json:"phoneNumber"`
}

func (c *Client) UpdateProfile(ctx context.Context, p ProfilePatch) (model.User, error) {
	var env struct {
		Data model.User `json:"data"`
	}
	if err := c.do(ctx, http.MethodPatch, "/users/profile", p, &env); err != nil {
		return model.User{}, err
	}
	return env.Data, nil
}

func (c *Client) ChangePassword(ctx context.Context, current, next string) error {
	body := struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}{CurrentPassword: current, NewPassword: next}
	return c.do(ctx, http.MethodPatch, "/users/change-password", body, nil)
}
