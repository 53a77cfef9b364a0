package tui

import (
	"context"
	"time"

	"dormshare-cli/internal/api"
	"dormshare-cli/internal/cache"
	"dormshare-cli/internal/model"

	tea "github.com/charmbracelet/bubbletea"
)

// Commands are the only place network calls happen; each returns exactly
// one settlement message. In-flight calls are never cancelled; staleness is
// handled at the receiving end (generation/seq checks).

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func meCmd(c *api.Client) tea.Cmd {
	return func() tea.Msg {
		user, err := c.Me(context.Background())
		return sessionResolvedMsg{user: user, err: errString(err)}
	}
}

func loginCmd(c *api.Client, creds api.Credentials) tea.Cmd {
	return func() tea.Msg {
		sess, err := c.Login(context.Background(), creds)
		return authResultMsg{sess: sess, err: errString(err)}
	}
}

func registerCmd(c *api.Client, reg api.Registration) tea.Cmd {
	return func() tea.Msg {
		sess, err := c.Register(context.Background(), reg)
		return authResultMsg{sess: sess, err: errString(err)}
	}
}

func fetchItemsCmd(c *api.Client, f api.ListFilter, gen int) tea.Cmd {
	return func() tea.Msg {
		items, err := c.ListItems(context.Background(), f)
		return itemsFetchedMsg{
			gen:   gen,
			items: items,
			// Unfiltered listings are cache candidates, but the handler
			// decides after the generation check.
			cacheable: err == nil && f.Search == "" && f.Category == "",
			err:       errString(err),
		}
	}
}

func saveListingCmd(cs cache.Store, items []model.Item) tea.Cmd {
	return func() tea.Msg {
		// Best-effort; the cache is never authoritative.
		_ = cs.SaveListing(context.Background(), items)
		return nil
	}
}

func loadItemCmd(c *api.Client, id string) tea.Cmd {
	return func() tea.Msg {
		it, err := c.GetItem(context.Background(), id)
		return itemLoadedMsg{item: it, err: errString(err)}
	}
}

func createItemCmd(c *api.Client, d api.ItemDraft) tea.Cmd {
	return func() tea.Msg {
		it, err := c.CreateItem(context.Background(), d)
		return itemSavedMsg{item: it, created: true, err: errString(err)}
	}
}

func updateItemCmd(c *api.Client, id string, p api.ItemPatch) tea.Cmd {
	return func() tea.Msg {
		it, err := c.UpdateItem(context.Background(), id, p)
		return itemSavedMsg{item: it, err: errString(err)}
	}
}

func deleteItemCmd(c *api.Client, id string) tea.Cmd {
	return func() tea.Msg {
		err := c.DeleteItem(context.Background(), id)
		return itemDeletedMsg{id: id, err: errString(err)}
	}
}

func rentItemCmd(c *api.Client, id string, days int) tea.Cmd {
	return func() tea.Msg {
		endDate := time.Now().UTC().AddDate(0, 0, days)
		it, err := c.RentItem(context.Background(), id, endDate)
		return itemRentedMsg{item: it, err: errString(err)}
	}
}

func returnItemCmd(c *api.Client, id string) tea.Cmd {
	return func() tea.Msg {
		it, err := c.ReturnItem(context.Background(), id)
		return itemReturnedMsg{item: it, err: errString(err)}
	}
}

func loadMineCmd(c *api.Client, tab mineTab) tea.Cmd {
	return func() tea.Msg {
		if tab == mineListings {
			got, err := c.MyListings(context.Background())
			return mineLoadedMsg{tab: tab, items: got, err: errString(err)}
		}
		got, err := c.MyRentals(context.Background())
		return mineLoadedMsg{tab: tab, items: got, err: errString(err)}
	}
}

func saveProfileCmd(c *api.Client, p api.ProfilePatch) tea.Cmd {
	return func() tea.Msg {
		user, err := c.UpdateProfile(context.Background(), p)
		return profileSavedMsg{user: user, err: errString(err)}
	}
}

func changePasswordCmd(c *api.Client, current, next string) tea.Cmd {
	return func() tea.Msg {
		err := c.ChangePassword(context.Background(), current, next)
		return passwordChangedMsg{err: errString(err)}
	}
}
