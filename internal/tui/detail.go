package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"dormshare-cli/internal/model"
)

// detailModel holds the view-local copy of one item. Rent/return update
// this copy only; the shared listing is untouched until the next fetch.
type detailModel struct {
	item    *model.Item
	days    int
	loading bool
	busy    bool
}

func (m appModel) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || m.detail.item == nil {
		return m, nil
	}

	it := *m.detail.item
	userID := ""
	if m.auth.User != nil {
		userID = m.auth.User.ID
	}

	switch key.String() {
	case "esc", "backspace":
		m.view = viewBrowse
		return m, nil
	case "+", "=":
		m.detail.days++
		return m, nil
	case "-":
		if m.detail.days > 1 {
			m.detail.days--
		}
		return m, nil
	case "r":
		if m.detail.busy || it.Status != model.StatusAvailable || it.IsOwnedBy(userID) {
			return m, nil
		}
		if !m.auth.IsAuthenticated() {
			m.returnTo = viewDetail
			m.view = viewLogin
			return m, textinput.Blink
		}
		m.detail.busy = true
		return m, rentItemCmd(m.client, it.ID, m.detail.days)
	case "R":
		if m.detail.busy || !it.IsRentedBy(userID) {
			return m, nil
		}
		m.detail.busy = true
		return m, returnItemCmd(m.client, it.ID)
	case "e":
		if !it.IsOwnedBy(userID) {
			return m, nil
		}
		m.form = newFormModel(&it)
		return m.navigate(viewForm)
	case "d":
		if m.detail.busy || !it.IsOwnedBy(userID) {
			return m, nil
		}
		m.detail.busy = true
		m.items.Begin()
		return m, deleteItemCmd(m.client, it.ID)
	}
	return m, nil
}

func (m appModel) viewDetail() string {
	if m.detail.item == nil {
		return styleMuted().Render("No item selected.")
	}
	it := *m.detail.item

	userID := ""
	if m.auth.User != nil {
		userID = m.auth.User.ID
	}

	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}

	var b strings.Builder

	title := styleHeader().Render(it.Title)
	if m.detail.loading {
		title += "  " + m.spin.View()
	}
	b.WriteString(title + "\n")
	b.WriteString(lipgloss.NewStyle().Foreground(colorAccent).Bold(true).
		Render(fmt.Sprintf("₹%s/day", fmtPrice(it.Price))) + "\n\n")

	badge := styleStatus(it.Status == model.StatusRented).Render(string(it.Status))
	b.WriteString(fmt.Sprintf("%s  %s\n\n", styleMuted().Render(string(it.Category)), badge))

	if desc := renderMarkdown(it.Description, w); desc != "" {
		b.WriteString(desc + "\n\n")
	}

	b.WriteString(styleMuted().Render("Owner") + "\n")
	b.WriteString(fmt.Sprintf("%s · room %s\n\n", it.Owner.Name, it.Owner.HostelRoom))

	if len(it.Images) > 0 {
		b.WriteString(styleMuted().Render("Images") + "\n")
		for _, img := range it.Images {
			b.WriteString(truncateANSI(img, w) + "\n")
		}
		b.WriteString("\n")
	}

	switch {
	case it.Status == model.StatusRented:
		renter := "-"
		if it.CurrentRenter != nil {
			renter = it.CurrentRenter.Name
		}
		until := "-"
		if it.RentalEndDate != nil {
			until = it.RentalEndDate.Format("2006-01-02")
		}
		b.WriteString(fmt.Sprintf("Rented by %s until %s\n", renter, until))
		if it.IsRentedBy(userID) {
			b.WriteString(styleMuted().Render("Press R to return this item.") + "\n")
		}
	case !it.IsOwnedBy(userID):
		total := it.Price * float64(m.detail.days)
		plural := ""
		if m.detail.days > 1 {
			plural = "s"
		}
		b.WriteString(fmt.Sprintf("Rent for %d day%s  (+/- to adjust)\n", m.detail.days, plural))
		b.WriteString(fmt.Sprintf("Total cost: ₹%s\n", fmtPrice(total)))
	default:
		b.WriteString(styleMuted().Render("This is your listing. Press e to edit, d to delete.") + "\n")
	}

	if m.detail.busy {
		b.WriteString("\n" + m.spin.View() + " Working…")
	}

	return b.String()
}
