package tui

import (
	"fmt"

	"dormshare-cli/internal/model"

	"github.com/charmbracelet/bubbles/list"
	xansi "github.com/charmbracelet/x/ansi"
)

// itemCard wraps an Item for bubbles' list.
type itemCard struct {
	item model.Item
}

func (c itemCard) FilterValue() string { return c.item.Title }

func (c itemCard) Title() string {
	return fmt.Sprintf("%s  ₹%s/day", c.item.Title, fmtPrice(c.item.Price))
}

func (c itemCard) Description() string {
	status := string(c.item.Status)
	line := fmt.Sprintf("%s · %s · room %s", c.item.Category, status, c.item.Owner.HostelRoom)
	return truncateANSI(line, 60)
}

func fmtPrice(p float64) string {
	if p == float64(int64(p)) {
		return fmt.Sprintf("%d", int64(p))
	}
	return fmt.Sprintf("%.2f", p)
}

// truncateANSI trims to w columns, ANSI-aware, with an ellipsis.
func truncateANSI(s string, w int) string {
	if w <= 1 {
		return s
	}
	if xansi.StringWidth(s) <= w {
		return s
	}
	return xansi.Cut(s, 0, w-1) + "…"
}

func cardsFor(items []model.Item) []list.Item {
	cards := make([]list.Item, 0, len(items))
	for _, it := range items {
		cards = append(cards, itemCard{item: it})
	}
	return cards
}

func newList(title string, items []list.Item) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	// We render our own header/footer, so keep list chrome minimal.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	// Search/filtering goes through the server, not the local list filter.
	l.SetFilteringEnabled(false)
	l.SetStatusBarItemName("item", "items")
	// The app uses ESC as "back", never "quit".
	l.KeyMap.Quit.SetKeys("ctrl+c")
	return l
}
