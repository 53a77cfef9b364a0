package api

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"dormshare-cli/internal/model"
)

type ListFilter struct {
	Search   string
	Category model.Category
}

func (f ListFilter) query() string {
	q := url.Values{}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Category != "" {
		q.Set("category", string(f.Category))
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

func (c *Client) ListItems(ctx context.Context, f ListFilter) ([]model.Item, error) {
	var env struct {
		Data []model.Item `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/items"+f.query(), nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (c *Client) GetItem(ctx context.Context, id string) (model.Item, error) {
	var env struct {
		Data model.Item `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/items/"+url.PathEscape(id), nil, &env); err != nil {
		return model.Item{}, err
	}
	return env.Data, nil
}

// ItemDraft is a new listing: the server fills in id, owner and status.
type ItemDraft struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Category    model.Category `json:"category"`
	Price       float64        `json:"price"`
	Images      []string       `json:"images"`
}

func (c *Client) CreateItem(ctx context.Context, d ItemDraft) (model.Item, error) {
	var env struct {
		Data model.Item `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/items", d, &env); err != nil {
		return model.Item{}, err
	}
	return env.Data, nil
}

// ItemPatch carries only the fields being changed.
type ItemPatch struct {
	Title       *string         `json:"title,omitempty"`
	Description *string         `json:"description,omitempty"`
	Category    *model.Category `json:"category,omitempty"`
	Price       *float64        `json:"price,omitempty"`
	Images      []string        `json:"images,omitempty"`
}

func (c *Client) UpdateItem(ctx context.Context, id string, p ItemPatch) (model.Item, error) {
	var env struct {
		Data model.Item `json:"data"`
	}
	if err := c.do(ctx, http.MethodPatch, "/items/"+url.PathEscape(id), p, &env); err != nil {
		return model.Item{}, err
	}
	return env.Data, nil
}

func (c *Client) DeleteItem(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/items/"+url.PathEscape(id), nil, nil)
}

// RentItem submits a rental ending at endDate. The returned item carries the
// authoritative status/renter/end-date.
func (c *Client) RentItem(ctx context.Context, id string, endDate time.Time) (model.Item, error) {
	body := struct {
		EndDate time.Time `json:"endDate"`
	}{EndDate: endDate}

	var env struct {
		Data model.Item `json:"data"`
	}
	if err := c.do(ctx, http.MethodPatch, "/items/"+url.PathEscape(id)+"/rent", body, &env); err != nil {
		return model.Item{}, err
	}
	return env.Data, nil
}

func (c *Client) ReturnItem(ctx context.Context, id string) (model.Item, error) {
	var env struct {
		Data model.Item `json:"data"`
	}
	// Empty-bodied transition; the server clears renter and resets status.
	if err := c.do(ctx, http.MethodPatch, "/items/"+url.PathEscape(id)+"/return", struct{}{}, &env); err != nil {
		return model.Item{}, err
	}
	return env.Data, nil
}
